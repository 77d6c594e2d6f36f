// Package client contains the transport layer of the admin client.
//
// # Overview
//
// The package provides:
//  1. A transport-agnostic API contract (see the Client interface): Login,
//     Logout, and the generic Get/Send/Delete calls the CRUD controllers
//     are built on.
//  2. A concrete REST implementation (see HTTPClient) that injects the
//     bearer token from a TokenSource, stamps every request with an
//     X-Request-ID, encodes JSON or multipart bodies (with the `_method`
//     override for updates), and optionally paces requests with a rate
//     limiter.
//  3. Envelope helpers (Unwrap, UnwrapList) that strip the `{data: ...}` or
//     `{<resource>: ...}` wrappers the backend uses inconsistently.
//
// # Error Handling
//
// Transport conditions are exposed as sentinel errors that callers can match
// with errors.Is: ErrUnavailable (no response) and ErrUnauthorized (401).
// Every other non-2xx response is returned as *APIError, which carries the
// server message and its field-level validation map. Classify maps any error
// to one of the four Kinds shown to the operator.
//
// Nothing is retried. A retry is always a manual action.
//
// # Concurrency & Contexts
//
// HTTPClient is safe for concurrent use. All operations accept
// context.Context and honor cancellation.
package client
