package statistics

import (
	"context"

	"member-api/core/authz"
	"member-api/core/utils"
	memberModels "member-api/feature/member/models"
)

// GroupResolver decides which statistics groups a caller may read.
type GroupResolver interface {
	AllowedGroups(ctx context.Context, identity *authz.Identity, m *memberModels.Member, groupIDs string) ([]int64, error)
}

// DefaultGroupResolver lets managers of a member read any requested group.
// Everyone else, and any request without groupIds, reads the public group.
type DefaultGroupResolver struct {
	PublicGroupID int64
}

// AllowedGroups parses groupIDs and filters it for the caller.
func (r DefaultGroupResolver) AllowedGroups(_ context.Context, identity *authz.Identity, m *memberModels.Member, groupIDs string) ([]int64, error) {
	ids, err := utils.ParseInt64List(groupIDs)
	if err != nil {
		return nil, err
	}
	if len(ids) == 0 || !authz.CanManageMember(identity, m.HandleLower) {
		return []int64{r.PublicGroupID}, nil
	}
	return ids, nil
}

