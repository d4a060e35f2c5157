package authz

import "strings"

// AdminRoles are the role names that grant administrative access.
var AdminRoles = []string{"administrator", "admin"}

// Identity is the decoded caller of a request.
type Identity struct {
	// UserID is the token subject.
	UserID string
	// Handle is the member handle of a user token. Empty for machines.
	Handle string
	// Roles are the user's role names.
	Roles []string
	// Scopes are the granted scopes of a machine token.
	Scopes []string
	// IsMachine marks a client-credentials (machine-to-machine) token.
	IsMachine bool
}

// Actor returns the identifier stamped on rows written by this identity.
func (i *Identity) Actor() string {
	if i == nil {
		return ""
	}
	if i.Handle != "" {
		return i.Handle
	}
	return i.UserID
}

// HasScope reports whether the identity carries the given scope.
func (i *Identity) HasScope(scope string) bool {
	if i == nil {
		return false
	}
	for _, s := range i.Scopes {
		if s == scope {
			return true
		}
	}
	return false
}

// HasAdminRole reports whether the identity holds an administrative role.
// Role names compare case-insensitively.
func HasAdminRole(identity *Identity) bool {
	if identity == nil {
		return false
	}
	for _, role := range identity.Roles {
		for _, admin := range AdminRoles {
			if strings.EqualFold(strings.TrimSpace(role), admin) {
				return true
			}
		}
	}
	return false
}

// CanManageMember reports whether identity may modify the member with the
// given handle: machines and admins always can, users only themselves.
func CanManageMember(identity *Identity, memberHandle string) bool {
	if identity == nil {
		return false
	}
	if identity.IsMachine || HasAdminRole(identity) {
		return true
	}
	return identity.Handle != "" && strings.EqualFold(identity.Handle, memberHandle)
}
