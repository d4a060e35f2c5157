package models

import "time"

// Audit holds the creation and modification stamps shared by every table.
type Audit struct {
	CreatedAt time.Time `gorm:"column:created_at;not null"`
	UpdatedAt time.Time `gorm:"column:updated_at;not null"`
	CreatedBy string    `gorm:"column:created_by;type:varchar(64);not null"`
	UpdatedBy *string   `gorm:"column:updated_by;type:varchar(64)"`
}

// MemberStats is the current statistics record of a member for one scope.
// A nil GroupID with IsPrivate false is the public record.
type MemberStats struct {
	ID             int64  `gorm:"column:id;primaryKey"`
	UserID         int64  `gorm:"column:user_id;not null;index:idx_member_stats_scope"`
	GroupID        *int64 `gorm:"column:group_id;index:idx_member_stats_scope"`
	IsPrivate      bool   `gorm:"column:is_private;not null;default:false"`
	Challenges     *int64 `gorm:"column:challenges"`
	Wins           *int64 `gorm:"column:wins"`
	MemberRatingID *int64 `gorm:"column:member_rating_id"`
	Audit

	Develop     *MemberDevelopStats     `gorm:"foreignKey:MemberStatsID;constraint:OnDelete:CASCADE"`
	Design      *MemberDesignStats      `gorm:"foreignKey:MemberStatsID;constraint:OnDelete:CASCADE"`
	DataScience *MemberDataScienceStats `gorm:"foreignKey:MemberStatsID;constraint:OnDelete:CASCADE"`
	Copilot     *MemberCopilotStats     `gorm:"foreignKey:MemberStatsID;constraint:OnDelete:CASCADE"`
}

func (MemberStats) TableName() string {
	return "member_stats"
}

// MemberDevelopStats aggregates the DEVELOP track.
type MemberDevelopStats struct {
	ID                   int64      `gorm:"column:id;primaryKey"`
	MemberStatsID        int64      `gorm:"column:member_stats_id;uniqueIndex;not null"`
	Challenges           *int64     `gorm:"column:challenges"`
	Wins                 *int64     `gorm:"column:wins"`
	MostRecentSubmission *time.Time `gorm:"column:most_recent_submission"`
	MostRecentEventDate  *time.Time `gorm:"column:most_recent_event_date"`
	Audit

	Items []MemberDevelopStatsItem `gorm:"foreignKey:DevelopStatsID;constraint:OnDelete:CASCADE"`
}

func (MemberDevelopStats) TableName() string {
	return "member_develop_stats"
}

// MemberDevelopStatsItem holds DEVELOP statistics of one sub track.
type MemberDevelopStatsItem struct {
	ID                   int64      `gorm:"column:id;primaryKey"`
	DevelopStatsID       int64      `gorm:"column:develop_stats_id;index;not null"`
	Name                 string     `gorm:"column:name;type:varchar(64);not null"`
	SubTrackID           int64      `gorm:"column:sub_track_id;not null"`
	Challenges           *int64     `gorm:"column:challenges"`
	Wins                 *int64     `gorm:"column:wins"`
	MostRecentSubmission *time.Time `gorm:"column:most_recent_submission"`
	MostRecentEventDate  *time.Time `gorm:"column:most_recent_event_date"`

	// Submission statistics.
	NumInquiries         *int64   `gorm:"column:num_inquiries"`
	Submissions          *int64   `gorm:"column:submissions"`
	PassedScreening      *int64   `gorm:"column:passed_screening"`
	PassedReview         *int64   `gorm:"column:passed_review"`
	Appeals              *int64   `gorm:"column:appeals"`
	AppealSuccessRate    *float64 `gorm:"column:appeal_success_rate"`
	MinScore             *float64 `gorm:"column:min_score"`
	MaxScore             *float64 `gorm:"column:max_score"`
	AvgScore             *float64 `gorm:"column:avg_score"`
	AvgPlacement         *float64 `gorm:"column:avg_placement"`
	ReviewSuccessRate    *float64 `gorm:"column:review_success_rate"`
	ScreeningSuccessRate *float64 `gorm:"column:screening_success_rate"`
	SubmissionRate       *float64 `gorm:"column:submission_rate"`
	WinPercent           *float64 `gorm:"column:win_percent"`

	// Rank statistics.
	Rating             *float64 `gorm:"column:rating"`
	MinRating          *float64 `gorm:"column:min_rating"`
	MaxRating          *float64 `gorm:"column:max_rating"`
	Volatility         *float64 `gorm:"column:volatility"`
	Reliability        *float64 `gorm:"column:reliability"`
	OverallRank        *int64   `gorm:"column:overall_rank"`
	OverallSchoolRank  *int64   `gorm:"column:overall_school_rank"`
	OverallCountryRank *int64   `gorm:"column:overall_country_rank"`
	OverallPercentile  *float64 `gorm:"column:overall_percentile"`
	ActiveRank         *int64   `gorm:"column:active_rank"`
	ActiveSchoolRank   *int64   `gorm:"column:active_school_rank"`
	ActiveCountryRank  *int64   `gorm:"column:active_country_rank"`
	ActivePercentile   *float64 `gorm:"column:active_percentile"`
	Audit
}

func (MemberDevelopStatsItem) TableName() string {
	return "member_develop_stats_item"
}

// MemberDesignStats aggregates the DESIGN track.
type MemberDesignStats struct {
	ID                   int64      `gorm:"column:id;primaryKey"`
	MemberStatsID        int64      `gorm:"column:member_stats_id;uniqueIndex;not null"`
	Challenges           *int64     `gorm:"column:challenges"`
	Wins                 *int64     `gorm:"column:wins"`
	MostRecentSubmission *time.Time `gorm:"column:most_recent_submission"`
	MostRecentEventDate  *time.Time `gorm:"column:most_recent_event_date"`
	Audit

	Items []MemberDesignStatsItem `gorm:"foreignKey:DesignStatsID;constraint:OnDelete:CASCADE"`
}

func (MemberDesignStats) TableName() string {
	return "member_design_stats"
}

// MemberDesignStatsItem holds DESIGN statistics of one sub track.
type MemberDesignStatsItem struct {
	ID                   int64      `gorm:"column:id;primaryKey"`
	DesignStatsID        int64      `gorm:"column:design_stats_id;index;not null"`
	Name                 string     `gorm:"column:name;type:varchar(64);not null"`
	SubTrackID           int64      `gorm:"column:sub_track_id;not null"`
	Challenges           *int64     `gorm:"column:challenges"`
	Wins                 *int64     `gorm:"column:wins"`
	MostRecentSubmission *time.Time `gorm:"column:most_recent_submission"`
	MostRecentEventDate  *time.Time `gorm:"column:most_recent_event_date"`
	NumInquiries         *int64     `gorm:"column:num_inquiries"`
	Submissions          *int64     `gorm:"column:submissions"`
	PassedScreening      *int64     `gorm:"column:passed_screening"`
	AvgPlacement         *float64   `gorm:"column:avg_placement"`
	ScreeningSuccessRate *float64   `gorm:"column:screening_success_rate"`
	SubmissionRate       *float64   `gorm:"column:submission_rate"`
	WinPercent           *float64   `gorm:"column:win_percent"`
	Audit
}

func (MemberDesignStatsItem) TableName() string {
	return "member_design_stats_item"
}

// MemberDataScienceStats aggregates the DATA_SCIENCE track.
type MemberDataScienceStats struct {
	ID                   int64      `gorm:"column:id;primaryKey"`
	MemberStatsID        int64      `gorm:"column:member_stats_id;uniqueIndex;not null"`
	Challenges           *int64     `gorm:"column:challenges"`
	Wins                 *int64     `gorm:"column:wins"`
	MostRecentSubmission *time.Time `gorm:"column:most_recent_submission"`
	MostRecentEventDate  *time.Time `gorm:"column:most_recent_event_date"`
	MostRecentEventName  *string    `gorm:"column:most_recent_event_name;type:varchar(128)"`
	Audit

	Srm      *MemberSrmStats      `gorm:"foreignKey:DataScienceStatsID;constraint:OnDelete:CASCADE"`
	Marathon *MemberMarathonStats `gorm:"foreignKey:DataScienceStatsID;constraint:OnDelete:CASCADE"`
}

func (MemberDataScienceStats) TableName() string {
	return "member_data_science_stats"
}

// MemberSrmStats holds Single Round Match statistics.
type MemberSrmStats struct {
	ID                   int64      `gorm:"column:id;primaryKey"`
	DataScienceStatsID   int64      `gorm:"column:data_science_stats_id;uniqueIndex;not null"`
	Challenges           *int64     `gorm:"column:challenges"`
	Wins                 *int64     `gorm:"column:wins"`
	MostRecentSubmission *time.Time `gorm:"column:most_recent_submission"`
	MostRecentEventDate  *time.Time `gorm:"column:most_recent_event_date"`
	MostRecentEventName  *string    `gorm:"column:most_recent_event_name;type:varchar(128)"`
	Rating               *int64     `gorm:"column:rating"`
	Percentile           *float64   `gorm:"column:percentile"`
	Rank                 *int64     `gorm:"column:rank"`
	CountryRank          *int64     `gorm:"column:country_rank"`
	SchoolRank           *int64     `gorm:"column:school_rank"`
	Volatility           *int64     `gorm:"column:volatility"`
	MaximumRating        *int64     `gorm:"column:maximum_rating"`
	MinimumRating        *int64     `gorm:"column:minimum_rating"`
	DefaultLanguage      *string    `gorm:"column:default_language;type:varchar(32)"`
	Competitions         *int64     `gorm:"column:competitions"`
	Audit

	ChallengeDetails []MemberSrmChallengeDetail `gorm:"foreignKey:SrmStatsID;constraint:OnDelete:CASCADE"`
	Divisions        []MemberSrmDivisionDetail  `gorm:"foreignKey:SrmStatsID;constraint:OnDelete:CASCADE"`
}

func (MemberSrmStats) TableName() string {
	return "member_srm_stats"
}

// MemberSrmChallengeDetail counts SRM problems attempted at one level.
type MemberSrmChallengeDetail struct {
	ID               int64  `gorm:"column:id;primaryKey"`
	SrmStatsID       int64  `gorm:"column:srm_stats_id;index;not null"`
	LevelName        string `gorm:"column:level_name;type:varchar(32);not null"`
	Challenges       *int64 `gorm:"column:challenges"`
	FailedChallenges *int64 `gorm:"column:failed_challenges"`
	Audit
}

func (MemberSrmChallengeDetail) TableName() string {
	return "member_srm_challenge_detail"
}

// MemberSrmDivisionDetail holds SRM results of one level in one division.
type MemberSrmDivisionDetail struct {
	ID                int64  `gorm:"column:id;primaryKey"`
	SrmStatsID        int64  `gorm:"column:srm_stats_id;index;not null"`
	DivisionName      string `gorm:"column:division_name;type:varchar(16);not null"`
	LevelName         string `gorm:"column:level_name;type:varchar(32);not null"`
	ProblemsSubmitted *int64 `gorm:"column:problems_submitted"`
	ProblemsSysByTest *int64 `gorm:"column:problems_sys_by_test"`
	ProblemsFailed    *int64 `gorm:"column:problems_failed"`
	Audit
}

func (MemberSrmDivisionDetail) TableName() string {
	return "member_srm_division_detail"
}

// MemberMarathonStats holds Marathon Match statistics.
type MemberMarathonStats struct {
	ID                   int64      `gorm:"column:id;primaryKey"`
	DataScienceStatsID   int64      `gorm:"column:data_science_stats_id;uniqueIndex;not null"`
	Challenges           *int64     `gorm:"column:challenges"`
	Wins                 *int64     `gorm:"column:wins"`
	MostRecentSubmission *time.Time `gorm:"column:most_recent_submission"`
	MostRecentEventDate  *time.Time `gorm:"column:most_recent_event_date"`
	MostRecentEventName  *string    `gorm:"column:most_recent_event_name;type:varchar(128)"`
	Rating               *int64     `gorm:"column:rating"`
	Competitions         *int64     `gorm:"column:competitions"`
	AvgRank              *float64   `gorm:"column:avg_rank"`
	AvgNumSubmissions    *float64   `gorm:"column:avg_num_submissions"`
	BestRank             *int64     `gorm:"column:best_rank"`
	TopFiveFinishes      *int64     `gorm:"column:top_five_finishes"`
	TopTenFinishes       *int64     `gorm:"column:top_ten_finishes"`
	Rank                 *int64     `gorm:"column:rank"`
	Percentile           *float64   `gorm:"column:percentile"`
	Volatility           *int64     `gorm:"column:volatility"`
	MinimumRating        *int64     `gorm:"column:minimum_rating"`
	MaximumRating        *int64     `gorm:"column:maximum_rating"`
	CountryRank          *int64     `gorm:"column:country_rank"`
	SchoolRank           *int64     `gorm:"column:school_rank"`
	DefaultLanguage      *string    `gorm:"column:default_language;type:varchar(32)"`
	Audit
}

func (MemberMarathonStats) TableName() string {
	return "member_marathon_stats"
}

// MemberCopilotStats holds COPILOT statistics.
type MemberCopilotStats struct {
	ID             int64    `gorm:"column:id;primaryKey"`
	MemberStatsID  int64    `gorm:"column:member_stats_id;uniqueIndex;not null"`
	Contests       *int64   `gorm:"column:contests"`
	Projects       *int64   `gorm:"column:projects"`
	Failures       *int64   `gorm:"column:failures"`
	Reposts        *int64   `gorm:"column:reposts"`
	ActiveContests *int64   `gorm:"column:active_contests"`
	ActiveProjects *int64   `gorm:"column:active_projects"`
	Fulfillment    *float64 `gorm:"column:fulfillment"`
	Audit
}

func (MemberCopilotStats) TableName() string {
	return "member_copilot_stats"
}
