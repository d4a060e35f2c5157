// Package apperror defines the error taxonomy surfaced by the HTTP API.
//
// Services return *Error values of kind NotFound, BadRequest, Forbidden,
// Unauthorized or Internal; handlers pass them to Respond, which writes
// `{"message": ..., "details": [...]}` with the matching status. Internal
// causes are logged by the caller and never written to the response.
package apperror
