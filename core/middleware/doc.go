// Package middleware contains HTTP middleware for the Fiber application.
//
// # Components
//
//   - auth: decodes HS256 bearer tokens into an authz.Identity. Anonymous
//     requests pass through; RequireIdentity and RequireScopes guard writes.
//   - rayid: assigns every request a ray id, stored in Locals and echoed in
//     the X-Ray-ID response header for tracing.
package middleware
