// Package models defines the GORM models of member statistics.
//
// Ownership is strictly hierarchical: MemberStats owns one block per track
// (develop, design, data science, copilot), and blocks own their line items.
// MemberHistoryStats owns develop and data science history entries directly.
package models

// All returns every statistics model, parents before children.
func All() []any {
	return []any{
		&MemberStats{},
		&MemberDevelopStats{},
		&MemberDevelopStatsItem{},
		&MemberDesignStats{},
		&MemberDesignStatsItem{},
		&MemberDataScienceStats{},
		&MemberSrmStats{},
		&MemberSrmChallengeDetail{},
		&MemberSrmDivisionDetail{},
		&MemberMarathonStats{},
		&MemberCopilotStats{},
		&MemberHistoryStats{},
		&MemberDevelopHistoryStats{},
		&MemberDataScienceHistoryStats{},
		&DistributionStats{},
	}
}
