// Package common contains constants and small helpers shared by the admin
// client, the CLI and the fake backend.
package common

const (
	// AuthorizationHeader carries "Bearer <token>" on authenticated requests.
	AuthorizationHeader = "Authorization"

	// RequestIDHeader carries a per-request UUID for log correlation.
	RequestIDHeader = "X-Request-ID"

	// MethodOverrideField is the multipart field that turns a POST into a PUT
	// for backends that cannot parse multipart bodies on PUT.
	MethodOverrideField = "_method"

	// BearerPrefix precedes the token in AuthorizationHeader.
	BearerPrefix = "Bearer "
)
