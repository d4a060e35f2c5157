package statistics

import (
	"member-api/core/apperror"
	"member-api/core/utils"
)

// StatsItemPayload is one sub-track line item of the DEVELOP or DESIGN track.
// Items carrying an id update that row; items without one are inserted.
type StatsItemPayload struct {
	ID                   *int64  `json:"id"`
	Name                 *string `json:"name" validate:"required"`
	SubTrackID           *int64  `json:"subTrackId" validate:"required"`
	Challenges           *int64  `json:"challenges"`
	Wins                 *int64  `json:"wins"`
	MostRecentSubmission *string `json:"mostRecentSubmission" validate:"omitempty,date"`
	MostRecentEventDate  *string `json:"mostRecentEventDate" validate:"omitempty,date"`
}

// TrackPayload carries the aggregates of a DEVELOP or DESIGN track block.
// A nil Items leaves the persisted items untouched; a non-nil Items, even an
// empty one, replaces them.
type TrackPayload struct {
	ID                   *int64             `json:"id"`
	Challenges           *int64             `json:"challenges"`
	Wins                 *int64             `json:"wins"`
	MostRecentSubmission *string            `json:"mostRecentSubmission" validate:"omitempty,date"`
	MostRecentEventDate  *string            `json:"mostRecentEventDate" validate:"omitempty,date"`
	Items                []StatsItemPayload `json:"items" validate:"omitempty,dive"`
}

// SrmChallengeDetailPayload counts SRM problems at one level.
type SrmChallengeDetailPayload struct {
	ID               *int64  `json:"id"`
	LevelName        *string `json:"levelName" validate:"required"`
	Challenges       *int64  `json:"challenges"`
	FailedChallenges *int64  `json:"failedChallenges"`
}

// SrmDivisionPayload holds SRM results of one level in one division.
type SrmDivisionPayload struct {
	ID                *int64  `json:"id"`
	DivisionName      *string `json:"divisionName" validate:"required,oneof=division1 division2"`
	LevelName         *string `json:"levelName" validate:"required"`
	ProblemsSubmitted *int64  `json:"problemsSubmitted"`
	ProblemsSysByTest *int64  `json:"problemsSysByTest"`
	ProblemsFailed    *int64  `json:"problemsFailed"`
}

// SrmPayload carries Single Round Match statistics.
type SrmPayload struct {
	ID                   *int64                      `json:"id"`
	Challenges           *int64                      `json:"challenges"`
	Wins                 *int64                      `json:"wins"`
	MostRecentSubmission *string                     `json:"mostRecentSubmission" validate:"omitempty,date"`
	MostRecentEventDate  *string                     `json:"mostRecentEventDate" validate:"omitempty,date"`
	MostRecentEventName  *string                     `json:"mostRecentEventName"`
	Rating               *int64                      `json:"rating"`
	Percentile           *float64                    `json:"percentile"`
	Rank                 *int64                      `json:"rank"`
	CountryRank          *int64                      `json:"countryRank"`
	SchoolRank           *int64                      `json:"schoolRank"`
	Volatility           *int64                      `json:"volatility"`
	MaximumRating        *int64                      `json:"maximumRating"`
	MinimumRating        *int64                      `json:"minimumRating"`
	DefaultLanguage      *string                     `json:"defaultLanguage"`
	Competitions         *int64                      `json:"competitions"`
	ChallengeDetails     []SrmChallengeDetailPayload `json:"challengeDetails" validate:"omitempty,dive"`
	Divisions            []SrmDivisionPayload        `json:"divisions" validate:"omitempty,dive"`
}

// MarathonPayload carries Marathon Match statistics.
type MarathonPayload struct {
	ID                   *int64   `json:"id"`
	Challenges           *int64   `json:"challenges"`
	Wins                 *int64   `json:"wins"`
	MostRecentSubmission *string  `json:"mostRecentSubmission" validate:"omitempty,date"`
	MostRecentEventDate  *string  `json:"mostRecentEventDate" validate:"omitempty,date"`
	MostRecentEventName  *string  `json:"mostRecentEventName"`
	Rating               *int64   `json:"rating"`
	Competitions         *int64   `json:"competitions"`
	AvgRank              *float64 `json:"avgRank"`
	AvgNumSubmissions    *float64 `json:"avgNumSubmissions"`
	BestRank             *int64   `json:"bestRank"`
	TopFiveFinishes      *int64   `json:"topFiveFinishes"`
	TopTenFinishes       *int64   `json:"topTenFinishes"`
	Rank                 *int64   `json:"rank"`
	Percentile           *float64 `json:"percentile"`
	Volatility           *int64   `json:"volatility"`
	MinimumRating        *int64   `json:"minimumRating"`
	MaximumRating        *int64   `json:"maximumRating"`
	CountryRank          *int64   `json:"countryRank"`
	SchoolRank           *int64   `json:"schoolRank"`
	DefaultLanguage      *string  `json:"defaultLanguage"`
}

// DataSciencePayload carries the DATA_SCIENCE track block.
type DataSciencePayload struct {
	ID                   *int64           `json:"id"`
	Challenges           *int64           `json:"challenges"`
	Wins                 *int64           `json:"wins"`
	MostRecentSubmission *string          `json:"mostRecentSubmission" validate:"omitempty,date"`
	MostRecentEventDate  *string          `json:"mostRecentEventDate" validate:"omitempty,date"`
	MostRecentEventName  *string          `json:"mostRecentEventName"`
	SRM                  *SrmPayload      `json:"srm"`
	Marathon             *MarathonPayload `json:"marathon"`
}

// CopilotPayload carries COPILOT statistics.
type CopilotPayload struct {
	ID             *int64   `json:"id"`
	Contests       *int64   `json:"contests"`
	Projects       *int64   `json:"projects"`
	Failures       *int64   `json:"failures"`
	Reposts        *int64   `json:"reposts"`
	ActiveContests *int64   `json:"activeContests"`
	ActiveProjects *int64   `json:"activeProjects"`
	Fulfillment    *float64 `json:"fulfillment"`
}

// MemberStatsPayload is the body of member statistics create and update.
type MemberStatsPayload struct {
	GroupID     *int64              `json:"groupId"`
	IsPrivate   *bool               `json:"isPrivate"`
	Challenges  *int64              `json:"challenges"`
	Wins        *int64              `json:"wins"`
	MaxRatingID *int64              `json:"maxRatingId"`
	Develop     *TrackPayload       `json:"develop"`
	Design      *TrackPayload       `json:"design"`
	DataScience *DataSciencePayload `json:"dataScience"`
	Copilot     *CopilotPayload     `json:"copilot"`
}

// DevelopHistoryPayload is one DEVELOP rating change.
type DevelopHistoryPayload struct {
	ID            *int64  `json:"id"`
	ChallengeID   *int64  `json:"challengeId" validate:"required"`
	ChallengeName *string `json:"challengeName" validate:"required"`
	RatingDate    *string `json:"ratingDate" validate:"required,date"`
	NewRating     *int64  `json:"newRating" validate:"required"`
	SubTrack      *string `json:"subTrack" validate:"required"`
	SubTrackID    *int64  `json:"subTrackId" validate:"required"`
}

// DataScienceHistoryPayload is one SRM or Marathon Match result.
type DataScienceHistoryPayload struct {
	ID            *int64   `json:"id"`
	ChallengeID   *int64   `json:"challengeId" validate:"required"`
	ChallengeName *string  `json:"challengeName" validate:"required"`
	Date          *string  `json:"date" validate:"required,date"`
	Rating        *int64   `json:"rating" validate:"required"`
	Placement     *int64   `json:"placement" validate:"required"`
	Percentile    *float64 `json:"percentile" validate:"required"`
	SubTrack      *string  `json:"subTrack" validate:"required,oneof=SRM MARATHON_MATCH"`
	SubTrackID    *int64   `json:"subTrackId" validate:"required"`
}

// HistoryPayload is the body of history statistics create and update.
type HistoryPayload struct {
	GroupID     *int64                      `json:"groupId"`
	IsPrivate   *bool                       `json:"isPrivate"`
	Develop     []DevelopHistoryPayload     `json:"develop" validate:"omitempty,dive"`
	DataScience []DataScienceHistoryPayload `json:"dataScience" validate:"omitempty,dive"`
}

// Scope selects the public record (GroupID nil) or the private record of a
// group.
type Scope struct {
	GroupID *int64
}

// Private reports whether the scope names a group.
func (s Scope) Private() bool {
	return s.GroupID != nil
}

// scopeOf derives the record scope of a write. A group id makes the record
// private; isPrivate may only restate that.
func scopeOf(groupID *int64, isPrivate *bool) (Scope, error) {
	if isPrivate != nil && *isPrivate != (groupID != nil) {
		if *isPrivate {
			return Scope{}, apperror.BadRequest("groupId is required for private statistics")
		}
		return Scope{}, apperror.BadRequest("isPrivate must be true when groupId is set")
	}
	return Scope{GroupID: groupID}, nil
}

// columnSet maps non-nil payload values to column names. Dates are parsed.
type columnSet map[string]any

func setValue[T any](c columnSet, column string, v *T) {
	if v != nil {
		c[column] = *v
	}
}

func (c columnSet) setDate(column string, v *string) error {
	t, err := utils.ParseOptionalDate(v)
	if err != nil {
		return apperror.BadRequest("%s must be a valid date", column)
	}
	if t != nil {
		c[column] = *t
	}
	return nil
}

func (p StatsItemPayload) columns() (map[string]any, error) {
	c := columnSet{}
	setValue(c, "name", p.Name)
	setValue(c, "sub_track_id", p.SubTrackID)
	setValue(c, "challenges", p.Challenges)
	setValue(c, "wins", p.Wins)
	if err := c.setDate("most_recent_submission", p.MostRecentSubmission); err != nil {
		return nil, err
	}
	if err := c.setDate("most_recent_event_date", p.MostRecentEventDate); err != nil {
		return nil, err
	}
	return c, nil
}

func (p TrackPayload) columns() (map[string]any, error) {
	c := columnSet{}
	setValue(c, "challenges", p.Challenges)
	setValue(c, "wins", p.Wins)
	if err := c.setDate("most_recent_submission", p.MostRecentSubmission); err != nil {
		return nil, err
	}
	if err := c.setDate("most_recent_event_date", p.MostRecentEventDate); err != nil {
		return nil, err
	}
	return c, nil
}

func (p DataSciencePayload) columns() (map[string]any, error) {
	c := columnSet{}
	setValue(c, "challenges", p.Challenges)
	setValue(c, "wins", p.Wins)
	setValue(c, "most_recent_event_name", p.MostRecentEventName)
	if err := c.setDate("most_recent_submission", p.MostRecentSubmission); err != nil {
		return nil, err
	}
	if err := c.setDate("most_recent_event_date", p.MostRecentEventDate); err != nil {
		return nil, err
	}
	return c, nil
}

func (p SrmPayload) columns() (map[string]any, error) {
	c := columnSet{}
	setValue(c, "challenges", p.Challenges)
	setValue(c, "wins", p.Wins)
	setValue(c, "most_recent_event_name", p.MostRecentEventName)
	setValue(c, "rating", p.Rating)
	setValue(c, "percentile", p.Percentile)
	setValue(c, "rank", p.Rank)
	setValue(c, "country_rank", p.CountryRank)
	setValue(c, "school_rank", p.SchoolRank)
	setValue(c, "volatility", p.Volatility)
	setValue(c, "maximum_rating", p.MaximumRating)
	setValue(c, "minimum_rating", p.MinimumRating)
	setValue(c, "default_language", p.DefaultLanguage)
	setValue(c, "competitions", p.Competitions)
	if err := c.setDate("most_recent_submission", p.MostRecentSubmission); err != nil {
		return nil, err
	}
	if err := c.setDate("most_recent_event_date", p.MostRecentEventDate); err != nil {
		return nil, err
	}
	return c, nil
}

func (p SrmChallengeDetailPayload) columns() (map[string]any, error) {
	c := columnSet{}
	setValue(c, "level_name", p.LevelName)
	setValue(c, "challenges", p.Challenges)
	setValue(c, "failed_challenges", p.FailedChallenges)
	return c, nil
}

func (p SrmDivisionPayload) columns() (map[string]any, error) {
	c := columnSet{}
	setValue(c, "division_name", p.DivisionName)
	setValue(c, "level_name", p.LevelName)
	setValue(c, "problems_submitted", p.ProblemsSubmitted)
	setValue(c, "problems_sys_by_test", p.ProblemsSysByTest)
	setValue(c, "problems_failed", p.ProblemsFailed)
	return c, nil
}

func (p MarathonPayload) columns() (map[string]any, error) {
	c := columnSet{}
	setValue(c, "challenges", p.Challenges)
	setValue(c, "wins", p.Wins)
	setValue(c, "most_recent_event_name", p.MostRecentEventName)
	setValue(c, "rating", p.Rating)
	setValue(c, "competitions", p.Competitions)
	setValue(c, "avg_rank", p.AvgRank)
	setValue(c, "avg_num_submissions", p.AvgNumSubmissions)
	setValue(c, "best_rank", p.BestRank)
	setValue(c, "top_five_finishes", p.TopFiveFinishes)
	setValue(c, "top_ten_finishes", p.TopTenFinishes)
	setValue(c, "rank", p.Rank)
	setValue(c, "percentile", p.Percentile)
	setValue(c, "volatility", p.Volatility)
	setValue(c, "minimum_rating", p.MinimumRating)
	setValue(c, "maximum_rating", p.MaximumRating)
	setValue(c, "country_rank", p.CountryRank)
	setValue(c, "school_rank", p.SchoolRank)
	setValue(c, "default_language", p.DefaultLanguage)
	if err := c.setDate("most_recent_submission", p.MostRecentSubmission); err != nil {
		return nil, err
	}
	if err := c.setDate("most_recent_event_date", p.MostRecentEventDate); err != nil {
		return nil, err
	}
	return c, nil
}

func (p CopilotPayload) columns() (map[string]any, error) {
	c := columnSet{}
	setValue(c, "contests", p.Contests)
	setValue(c, "projects", p.Projects)
	setValue(c, "failures", p.Failures)
	setValue(c, "reposts", p.Reposts)
	setValue(c, "active_contests", p.ActiveContests)
	setValue(c, "active_projects", p.ActiveProjects)
	setValue(c, "fulfillment", p.Fulfillment)
	return c, nil
}

func (p DevelopHistoryPayload) columns() (map[string]any, error) {
	c := columnSet{}
	setValue(c, "challenge_id", p.ChallengeID)
	setValue(c, "challenge_name", p.ChallengeName)
	setValue(c, "new_rating", p.NewRating)
	setValue(c, "sub_track", p.SubTrack)
	setValue(c, "sub_track_id", p.SubTrackID)
	if err := c.setDate("rating_date", p.RatingDate); err != nil {
		return nil, err
	}
	return c, nil
}

func (p DataScienceHistoryPayload) columns() (map[string]any, error) {
	c := columnSet{}
	setValue(c, "challenge_id", p.ChallengeID)
	setValue(c, "challenge_name", p.ChallengeName)
	setValue(c, "rating", p.Rating)
	setValue(c, "placement", p.Placement)
	setValue(c, "percentile", p.Percentile)
	setValue(c, "sub_track", p.SubTrack)
	setValue(c, "sub_track_id", p.SubTrackID)
	if err := c.setDate("date", p.Date); err != nil {
		return nil, err
	}
	return c, nil
}
