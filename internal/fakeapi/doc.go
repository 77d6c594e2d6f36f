// Package fakeapi is an in-memory implementation of the Beehive dashboard
// REST API. It backs the admin client's integration tests and can be run
// locally through cmd/fakeapi.
//
// It mirrors the backend's wire shapes: bare arrays for most lists, a
// paginated {data, current_page, last_page, total} product list, single
// records under "article", "career", "project" or "data", and 422 bodies of
// the form {"message": "...", "errors": {"field": ["..."]}}.
package fakeapi
