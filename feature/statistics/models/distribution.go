package models

import "gorm.io/datatypes"

// DistributionStats counts members per rating range for a track.
// Buckets maps range names (e.g. ratingRange0To099) to member counts.
type DistributionStats struct {
	ID       int64             `gorm:"column:id;primaryKey"`
	Track    string            `gorm:"column:track;type:varchar(32);not null;index"`
	SubTrack string            `gorm:"column:sub_track;type:varchar(64);not null"`
	Buckets  datatypes.JSONMap `gorm:"column:distribution"`
	Audit
}

func (DistributionStats) TableName() string {
	return "distribution_stats"
}
