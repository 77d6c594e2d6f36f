// Package crud implements the list/create/edit/delete cycle shared by every
// resource the admin client manages.
//
// # Overview
//
// A Resource describes one backend collection: where it lives, how its wire
// shape maps to the canonical record, how a draft is validated and encoded.
// Controller is the list view for that resource. It owns the local copy of
// the collection and is the only thing that mutates it, and only on the
// success path of a request. Form is the create form and EditModal the edit
// modal; both run the same Idle → Validating → Submitting → Idle cycle and
// refuse a second submit while one is in flight.
//
// Relation fields are bounded by a Selection (min/max with an explicit
// over-max Policy) and their options come from an Options set of Resolvers
// that load independently of the list. Attachments distinguish pending local
// files from persisted references so only new files are uploaded.
//
// # Errors
//
// Client-side validation fails with *ValidationError before any request is
// sent. Transport failures are the client package's errors, classified with
// client.Classify. A 401 from any call invokes Config.OnUnauthorized.
// Nothing is retried.
//
// # Concurrency
//
// Controller, Form and EditModal are safe for concurrent use. When two
// responses race (an edit and a reload), the one applied last wins. After
// Detach (controller) or Discard (form), late responses are dropped.
package crud
