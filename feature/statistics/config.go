package statistics

import "strings"

// Config holds group scoping and redaction settings for statistics.
type Config struct {
	// PublicGroupID is the group id reported for public statistics records.
	PublicGroupID int64 `mapstructure:"public_group_id" default:"-1"`
	// SecureFields are removed from statistics documents for callers that
	// cannot manage the member.
	SecureFields string `mapstructure:"secure_fields" default:"createdBy,updatedBy"`
	// MemberSecureFields are removed from member profiles for the same callers.
	MemberSecureFields string `mapstructure:"member_secure_fields" default:"email,addresses"`
}

// SecureFieldList returns SecureFields as a list.
func (c Config) SecureFieldList() []string {
	return splitList(c.SecureFields)
}

// MemberSecureFieldList returns MemberSecureFields as a list.
func (c Config) MemberSecureFieldList() []string {
	return splitList(c.MemberSecureFields)
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
