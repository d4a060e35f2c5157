package utils

import (
	"strconv"
	"strings"

	"member-api/core/apperror"
)

// ParseCommaSeparated splits a comma separated query value and checks every
// entry against allowed. An empty input returns nil. Empty entries, entries
// outside allowed (when allowed is non-empty) and repeated entries are
// rejected with a BadRequest.
func ParseCommaSeparated(value string, allowed []string) ([]string, error) {
	if strings.TrimSpace(value) == "" {
		return nil, nil
	}

	allowedSet := make(map[string]struct{}, len(allowed))
	for _, a := range allowed {
		allowedSet[a] = struct{}{}
	}

	parts := strings.Split(value, ",")
	out := make([]string, 0, len(parts))
	seen := make(map[string]struct{}, len(parts))
	for _, part := range parts {
		part = strings.TrimSpace(part)
		if part == "" {
			return nil, apperror.BadRequest("Empty value.")
		}
		if len(allowedSet) > 0 {
			if _, ok := allowedSet[part]; !ok {
				return nil, apperror.BadRequest("Invalid value: %s", part)
			}
		}
		if _, dup := seen[part]; dup {
			return nil, apperror.BadRequest("Duplicate values: %s", part)
		}
		seen[part] = struct{}{}
		out = append(out, part)
	}
	return out, nil
}

// ParseInt64List parses a comma separated list of integer identifiers.
func ParseInt64List(value string) ([]int64, error) {
	parts, err := ParseCommaSeparated(value, nil)
	if err != nil || parts == nil {
		return nil, err
	}

	ids := make([]int64, 0, len(parts))
	for _, part := range parts {
		id, err := strconv.ParseInt(part, 10, 64)
		if err != nil {
			return nil, apperror.BadRequest("Invalid value: %s", part)
		}
		ids = append(ids, id)
	}
	return ids, nil
}
