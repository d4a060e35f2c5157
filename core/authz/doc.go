// Package authz holds the caller identity and the member management predicate.
//
// Write paths reject callers for which CanManageMember is false. Read paths
// use the same predicate to decide whether secure fields are redacted.
package authz
