package models

import "time"

// MemberHistoryStats is the rating history record of a member for one scope.
type MemberHistoryStats struct {
	ID        int64  `gorm:"column:id;primaryKey"`
	UserID    int64  `gorm:"column:user_id;not null;index:idx_member_history_stats_scope"`
	GroupID   *int64 `gorm:"column:group_id;index:idx_member_history_stats_scope"`
	IsPrivate bool   `gorm:"column:is_private;not null;default:false"`
	Audit

	Develop     []MemberDevelopHistoryStats     `gorm:"foreignKey:HistoryStatsID;constraint:OnDelete:CASCADE"`
	DataScience []MemberDataScienceHistoryStats `gorm:"foreignKey:HistoryStatsID;constraint:OnDelete:CASCADE"`
}

func (MemberHistoryStats) TableName() string {
	return "member_history_stats"
}

// MemberDevelopHistoryStats is one DEVELOP rating change.
type MemberDevelopHistoryStats struct {
	ID             int64      `gorm:"column:id;primaryKey"`
	HistoryStatsID int64      `gorm:"column:history_stats_id;index;not null"`
	ChallengeID    int64      `gorm:"column:challenge_id;not null"`
	ChallengeName  string     `gorm:"column:challenge_name;type:varchar(255);not null"`
	RatingDate     *time.Time `gorm:"column:rating_date"`
	NewRating      int64      `gorm:"column:new_rating;not null"`
	SubTrack       string     `gorm:"column:sub_track;type:varchar(64);not null"`
	SubTrackID     int64      `gorm:"column:sub_track_id;not null"`
	Audit
}

func (MemberDevelopHistoryStats) TableName() string {
	return "member_develop_history_stats"
}

// MemberDataScienceHistoryStats is one SRM or Marathon Match result.
type MemberDataScienceHistoryStats struct {
	ID             int64      `gorm:"column:id;primaryKey"`
	HistoryStatsID int64      `gorm:"column:history_stats_id;index;not null"`
	ChallengeID    int64      `gorm:"column:challenge_id;not null"`
	ChallengeName  string     `gorm:"column:challenge_name;type:varchar(255);not null"`
	Date           *time.Time `gorm:"column:date"`
	Rating         int64      `gorm:"column:rating;not null"`
	Placement      int64      `gorm:"column:placement;not null"`
	Percentile     float64    `gorm:"column:percentile;not null"`
	SubTrack       string     `gorm:"column:sub_track;type:varchar(64);not null"`
	SubTrackID     int64      `gorm:"column:sub_track_id;not null"`
	Audit
}

func (MemberDataScienceHistoryStats) TableName() string {
	return "member_data_science_history_stats"
}
