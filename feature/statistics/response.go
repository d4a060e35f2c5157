package statistics

import (
	"sort"

	"member-api/core/utils"
	"member-api/feature/member"
	memberModels "member-api/feature/member/models"
	"member-api/feature/statistics/models"
)

// Document is a response object keyed by field name.
type Document = map[string]any

// TrackDocument holds the aggregates of the DEVELOP or DESIGN track.
type TrackDocument[S any] struct {
	Challenges           *int64 `json:"challenges"`
	Wins                 *int64 `json:"wins"`
	MostRecentSubmission *int64 `json:"mostRecentSubmission"`
	MostRecentEventDate  *int64 `json:"mostRecentEventDate"`
	SubTracks            []S    `json:"subTracks"`
}

// DevelopSubmissionsDocument holds submission statistics of a DEVELOP sub track.
type DevelopSubmissionsDocument struct {
	NumInquiries         *int64   `json:"numInquiries"`
	Submissions          *int64   `json:"submissions"`
	PassedScreening      *int64   `json:"passedScreening"`
	PassedReview         *int64   `json:"passedReview"`
	Appeals              *int64   `json:"appeals"`
	AppealSuccessRate    *float64 `json:"appealSuccessRate"`
	MinScore             *float64 `json:"minScore"`
	MaxScore             *float64 `json:"maxScore"`
	AvgScore             *float64 `json:"avgScore"`
	AvgPlacement         *float64 `json:"avgPlacement"`
	ReviewSuccessRate    *float64 `json:"reviewSuccessRate"`
	ScreeningSuccessRate *float64 `json:"screeningSuccessRate"`
	SubmissionRate       *float64 `json:"submissionRate"`
	WinPercent           *float64 `json:"winPercent"`
}

// DevelopRankDocument holds rank statistics of a DEVELOP sub track.
type DevelopRankDocument struct {
	Rating             *float64 `json:"rating"`
	MinRating          *float64 `json:"minRating"`
	MaxRating          *float64 `json:"maxRating"`
	Volatility         *float64 `json:"volatility"`
	Reliability        *float64 `json:"reliability"`
	OverallRank        *int64   `json:"overallRank"`
	OverallSchoolRank  *int64   `json:"overallSchoolRank"`
	OverallCountryRank *int64   `json:"overallCountryRank"`
	OverallPercentile  *float64 `json:"overallPercentile"`
	ActiveRank         *int64   `json:"activeRank"`
	ActiveSchoolRank   *int64   `json:"activeSchoolRank"`
	ActiveCountryRank  *int64   `json:"activeCountryRank"`
	ActivePercentile   *float64 `json:"activePercentile"`
}

// DevelopSubTrackDocument is one DEVELOP sub track. ID is the sub track id.
type DevelopSubTrackDocument struct {
	ID                   int64                      `json:"id"`
	Name                 string                     `json:"name"`
	Challenges           *int64                     `json:"challenges"`
	Wins                 *int64                     `json:"wins"`
	MostRecentSubmission *int64                     `json:"mostRecentSubmission"`
	MostRecentEventDate  *int64                     `json:"mostRecentEventDate"`
	Submissions          DevelopSubmissionsDocument `json:"submissions"`
	Rank                 DevelopRankDocument        `json:"rank"`
}

// DesignSubTrackDocument is one DESIGN sub track. ID is the sub track id.
type DesignSubTrackDocument struct {
	ID                   int64    `json:"id"`
	Name                 string   `json:"name"`
	Challenges           *int64   `json:"challenges"`
	Wins                 *int64   `json:"wins"`
	NumInquiries         *int64   `json:"numInquiries"`
	Submissions          *int64   `json:"submissions"`
	PassedScreening      *int64   `json:"passedScreening"`
	AvgPlacement         *float64 `json:"avgPlacement"`
	ScreeningSuccessRate *float64 `json:"screeningSuccessRate"`
	SubmissionRate       *float64 `json:"submissionRate"`
	WinPercent           *float64 `json:"winPercent"`
	MostRecentSubmission *int64   `json:"mostRecentSubmission"`
	MostRecentEventDate  *int64   `json:"mostRecentEventDate"`
}

// SrmRankDocument holds SRM rank statistics.
type SrmRankDocument struct {
	Rating          *int64   `json:"rating"`
	Percentile      *float64 `json:"percentile"`
	Rank            *int64   `json:"rank"`
	CountryRank     *int64   `json:"countryRank"`
	SchoolRank      *int64   `json:"schoolRank"`
	Volatility      *int64   `json:"volatility"`
	MaximumRating   *int64   `json:"maximumRating"`
	MinimumRating   *int64   `json:"minimumRating"`
	DefaultLanguage *string  `json:"defaultLanguage"`
	Competitions    *int64   `json:"competitions"`
}

// ChallengeDetailDocument counts SRM problems at one level.
type ChallengeDetailDocument struct {
	Challenges       *int64 `json:"challenges"`
	LevelName        string `json:"levelName"`
	FailedChallenges *int64 `json:"failedChallenges"`
}

// DivisionDocument holds SRM results of one level.
type DivisionDocument struct {
	ProblemsSubmitted *int64 `json:"problemsSubmitted"`
	ProblemsSysByTest *int64 `json:"problemsSysByTest"`
	ProblemsFailed    *int64 `json:"problemsFailed"`
	LevelName         string `json:"levelName"`
}

// SrmDocument is the SRM part of DATA_SCIENCE. Detail lists are present only
// when non-empty.
type SrmDocument struct {
	Challenges           *int64                    `json:"challenges"`
	Wins                 *int64                    `json:"wins"`
	MostRecentSubmission *int64                    `json:"mostRecentSubmission"`
	MostRecentEventDate  *int64                    `json:"mostRecentEventDate"`
	MostRecentEventName  *string                   `json:"mostRecentEventName"`
	Rank                 SrmRankDocument           `json:"rank"`
	ChallengeDetails     []ChallengeDetailDocument `json:"challengeDetails,omitempty"`
	Division1            []DivisionDocument        `json:"division1,omitempty"`
	Division2            []DivisionDocument        `json:"division2,omitempty"`
}

// MarathonRankDocument holds Marathon Match rank statistics.
type MarathonRankDocument struct {
	Rating            *int64   `json:"rating"`
	Competitions      *int64   `json:"competitions"`
	AvgRank           *float64 `json:"avgRank"`
	AvgNumSubmissions *float64 `json:"avgNumSubmissions"`
	BestRank          *int64   `json:"bestRank"`
	TopFiveFinishes   *int64   `json:"topFiveFinishes"`
	TopTenFinishes    *int64   `json:"topTenFinishes"`
	Rank              *int64   `json:"rank"`
	Percentile        *float64 `json:"percentile"`
	Volatility        *int64   `json:"volatility"`
	MinimumRating     *int64   `json:"minimumRating"`
	MaximumRating     *int64   `json:"maximumRating"`
	CountryRank       *int64   `json:"countryRank"`
	SchoolRank        *int64   `json:"schoolRank"`
	DefaultLanguage   *string  `json:"defaultLanguage"`
}

// MarathonDocument is the MARATHON_MATCH part of DATA_SCIENCE.
type MarathonDocument struct {
	Challenges           *int64               `json:"challenges"`
	Wins                 *int64               `json:"wins"`
	MostRecentSubmission *int64               `json:"mostRecentSubmission"`
	MostRecentEventDate  *int64               `json:"mostRecentEventDate"`
	MostRecentEventName  *string              `json:"mostRecentEventName"`
	Rank                 MarathonRankDocument `json:"rank"`
}

// DataScienceDocument is the DATA_SCIENCE track. SRM and MARATHON_MATCH are
// present only when recorded.
type DataScienceDocument struct {
	Challenges           *int64            `json:"challenges"`
	Wins                 *int64            `json:"wins"`
	MostRecentSubmission *int64            `json:"mostRecentSubmission"`
	MostRecentEventDate  *int64            `json:"mostRecentEventDate"`
	MostRecentEventName  *string           `json:"mostRecentEventName"`
	SRM                  *SrmDocument      `json:"SRM,omitempty"`
	MarathonMatch        *MarathonDocument `json:"MARATHON_MATCH,omitempty"`
}

// CopilotDocument is the COPILOT track.
type CopilotDocument struct {
	Contests       *int64   `json:"contests"`
	Projects       *int64   `json:"projects"`
	Failures       *int64   `json:"failures"`
	Reposts        *int64   `json:"reposts"`
	ActiveContests *int64   `json:"activeContests"`
	ActiveProjects *int64   `json:"activeProjects"`
	Fulfillment    *float64 `json:"fulfillment"`
}

// DevelopHistoryEntryDocument is one DEVELOP rating change.
type DevelopHistoryEntryDocument struct {
	ChallengeName string `json:"challengeName"`
	NewRating     int64  `json:"newRating"`
	ChallengeID   int64  `json:"challengeId"`
	RatingDate    *int64 `json:"ratingDate"`
}

// HistorySubTrackDocument groups the DEVELOP history of one sub track.
type HistorySubTrackDocument struct {
	ID      int64                         `json:"id"`
	Name    string                        `json:"name"`
	History []DevelopHistoryEntryDocument `json:"history"`
}

// DevelopHistoryDocument is the DEVELOP part of a history document.
type DevelopHistoryDocument struct {
	SubTracks []HistorySubTrackDocument `json:"subTracks"`
}

// DataScienceHistoryEntryDocument is one SRM or Marathon Match result.
type DataScienceHistoryEntryDocument struct {
	ChallengeName string  `json:"challengeName"`
	Rating        int64   `json:"rating"`
	Placement     int64   `json:"placement"`
	Percentile    float64 `json:"percentile"`
	ChallengeID   int64   `json:"challengeId"`
	Date          *int64  `json:"date"`
}

// HistoryListDocument wraps a list of data science results.
type HistoryListDocument struct {
	History []DataScienceHistoryEntryDocument `json:"history"`
}

// DataScienceHistoryDocument is the DATA_SCIENCE part of a history document.
type DataScienceHistoryDocument struct {
	SRM           *HistoryListDocument `json:"SRM,omitempty"`
	MarathonMatch *HistoryListDocument `json:"MARATHON_MATCH,omitempty"`
}

// Data science history sub tracks.
const (
	SubTrackSRM      = "SRM"
	SubTrackMarathon = "MARATHON_MATCH"
)

// BuildStatsResponse converts a statistics record into its response document.
// Only tracks present on the record appear. A non-empty fields list restricts
// the top-level keys.
func BuildStatsResponse(m *memberModels.Member, stats *models.MemberStats, fields []string) Document {
	doc := Document{
		"userId":      m.UserID,
		"groupId":     stats.GroupID,
		"handle":      m.Handle,
		"handleLower": m.HandleLower,
		"challenges":  stats.Challenges,
		"wins":        stats.Wins,
	}
	if m.MaxRating != nil {
		doc["maxRating"] = member.NewMaxRatingDocument(m.MaxRating)
	}
	if stats.Develop != nil {
		doc["DEVELOP"] = buildDevelop(stats.Develop)
	}
	if stats.Design != nil {
		doc["DESIGN"] = buildDesign(stats.Design)
	}
	if stats.DataScience != nil {
		doc["DATA_SCIENCE"] = buildDataScience(stats.DataScience)
	}
	if stats.Copilot != nil {
		c := stats.Copilot
		doc["COPILOT"] = CopilotDocument{
			Contests:       c.Contests,
			Projects:       c.Projects,
			Failures:       c.Failures,
			Reposts:        c.Reposts,
			ActiveContests: c.ActiveContests,
			ActiveProjects: c.ActiveProjects,
			Fulfillment:    c.Fulfillment,
		}
	}
	addAudit(doc, stats.Audit)
	return FilterFields(doc, fields)
}

func buildDevelop(d *models.MemberDevelopStats) TrackDocument[DevelopSubTrackDocument] {
	subTracks := make([]DevelopSubTrackDocument, 0, len(d.Items))
	for _, t := range d.Items {
		subTracks = append(subTracks, DevelopSubTrackDocument{
			ID:                   t.SubTrackID,
			Name:                 t.Name,
			Challenges:           t.Challenges,
			Wins:                 t.Wins,
			MostRecentSubmission: utils.EpochMillis(t.MostRecentSubmission),
			MostRecentEventDate:  utils.EpochMillis(t.MostRecentEventDate),
			Submissions: DevelopSubmissionsDocument{
				NumInquiries:         t.NumInquiries,
				Submissions:          t.Submissions,
				PassedScreening:      t.PassedScreening,
				PassedReview:         t.PassedReview,
				Appeals:              t.Appeals,
				AppealSuccessRate:    t.AppealSuccessRate,
				MinScore:             t.MinScore,
				MaxScore:             t.MaxScore,
				AvgScore:             t.AvgScore,
				AvgPlacement:         t.AvgPlacement,
				ReviewSuccessRate:    t.ReviewSuccessRate,
				ScreeningSuccessRate: t.ScreeningSuccessRate,
				SubmissionRate:       t.SubmissionRate,
				WinPercent:           t.WinPercent,
			},
			Rank: DevelopRankDocument{
				Rating:             t.Rating,
				MinRating:          t.MinRating,
				MaxRating:          t.MaxRating,
				Volatility:         t.Volatility,
				Reliability:        t.Reliability,
				OverallRank:        t.OverallRank,
				OverallSchoolRank:  t.OverallSchoolRank,
				OverallCountryRank: t.OverallCountryRank,
				OverallPercentile:  t.OverallPercentile,
				ActiveRank:         t.ActiveRank,
				ActiveSchoolRank:   t.ActiveSchoolRank,
				ActiveCountryRank:  t.ActiveCountryRank,
				ActivePercentile:   t.ActivePercentile,
			},
		})
	}
	return TrackDocument[DevelopSubTrackDocument]{
		Challenges:           d.Challenges,
		Wins:                 d.Wins,
		MostRecentSubmission: utils.EpochMillis(d.MostRecentSubmission),
		MostRecentEventDate:  utils.EpochMillis(d.MostRecentEventDate),
		SubTracks:            subTracks,
	}
}

func buildDesign(d *models.MemberDesignStats) TrackDocument[DesignSubTrackDocument] {
	subTracks := make([]DesignSubTrackDocument, 0, len(d.Items))
	for _, t := range d.Items {
		subTracks = append(subTracks, DesignSubTrackDocument{
			ID:                   t.SubTrackID,
			Name:                 t.Name,
			Challenges:           t.Challenges,
			Wins:                 t.Wins,
			NumInquiries:         t.NumInquiries,
			Submissions:          t.Submissions,
			PassedScreening:      t.PassedScreening,
			AvgPlacement:         t.AvgPlacement,
			ScreeningSuccessRate: t.ScreeningSuccessRate,
			SubmissionRate:       t.SubmissionRate,
			WinPercent:           t.WinPercent,
			MostRecentSubmission: utils.EpochMillis(t.MostRecentSubmission),
			MostRecentEventDate:  utils.EpochMillis(t.MostRecentEventDate),
		})
	}
	return TrackDocument[DesignSubTrackDocument]{
		Challenges:           d.Challenges,
		Wins:                 d.Wins,
		MostRecentSubmission: utils.EpochMillis(d.MostRecentSubmission),
		MostRecentEventDate:  utils.EpochMillis(d.MostRecentEventDate),
		SubTracks:            subTracks,
	}
}

func buildDataScience(d *models.MemberDataScienceStats) DataScienceDocument {
	doc := DataScienceDocument{
		Challenges:           d.Challenges,
		Wins:                 d.Wins,
		MostRecentSubmission: utils.EpochMillis(d.MostRecentSubmission),
		MostRecentEventDate:  utils.EpochMillis(d.MostRecentEventDate),
		MostRecentEventName:  d.MostRecentEventName,
	}
	if s := d.Srm; s != nil {
		srm := &SrmDocument{
			Challenges:           s.Challenges,
			Wins:                 s.Wins,
			MostRecentSubmission: utils.EpochMillis(s.MostRecentSubmission),
			MostRecentEventDate:  utils.EpochMillis(s.MostRecentEventDate),
			MostRecentEventName:  s.MostRecentEventName,
			Rank: SrmRankDocument{
				Rating:          s.Rating,
				Percentile:      s.Percentile,
				Rank:            s.Rank,
				CountryRank:     s.CountryRank,
				SchoolRank:      s.SchoolRank,
				Volatility:      s.Volatility,
				MaximumRating:   s.MaximumRating,
				MinimumRating:   s.MinimumRating,
				DefaultLanguage: s.DefaultLanguage,
				Competitions:    s.Competitions,
			},
		}
		for _, cd := range s.ChallengeDetails {
			srm.ChallengeDetails = append(srm.ChallengeDetails, ChallengeDetailDocument{
				Challenges:       cd.Challenges,
				LevelName:        cd.LevelName,
				FailedChallenges: cd.FailedChallenges,
			})
		}
		for _, div := range s.Divisions {
			entry := DivisionDocument{
				ProblemsSubmitted: div.ProblemsSubmitted,
				ProblemsSysByTest: div.ProblemsSysByTest,
				ProblemsFailed:    div.ProblemsFailed,
				LevelName:         div.LevelName,
			}
			switch div.DivisionName {
			case "division1":
				srm.Division1 = append(srm.Division1, entry)
			case "division2":
				srm.Division2 = append(srm.Division2, entry)
			}
		}
		doc.SRM = srm
	}
	if mm := d.Marathon; mm != nil {
		doc.MarathonMatch = &MarathonDocument{
			Challenges:           mm.Challenges,
			Wins:                 mm.Wins,
			MostRecentSubmission: utils.EpochMillis(mm.MostRecentSubmission),
			MostRecentEventDate:  utils.EpochMillis(mm.MostRecentEventDate),
			MostRecentEventName:  mm.MostRecentEventName,
			Rank: MarathonRankDocument{
				Rating:            mm.Rating,
				Competitions:      mm.Competitions,
				AvgRank:           mm.AvgRank,
				AvgNumSubmissions: mm.AvgNumSubmissions,
				BestRank:          mm.BestRank,
				TopFiveFinishes:   mm.TopFiveFinishes,
				TopTenFinishes:    mm.TopTenFinishes,
				Rank:              mm.Rank,
				Percentile:        mm.Percentile,
				Volatility:        mm.Volatility,
				MinimumRating:     mm.MinimumRating,
				MaximumRating:     mm.MaximumRating,
				CountryRank:       mm.CountryRank,
				SchoolRank:        mm.SchoolRank,
				DefaultLanguage:   mm.DefaultLanguage,
			},
		}
	}
	return doc
}

// BuildStatsHistoryResponse converts a history record into its response
// document. DEVELOP history is grouped by sub track id in ascending order and
// DATA_SCIENCE history is split into SRM and MARATHON_MATCH. Empty tracks are
// left out.
func BuildStatsHistoryResponse(m *memberModels.Member, history *models.MemberHistoryStats, fields []string) Document {
	doc := Document{
		"userId":      m.UserID,
		"groupId":     history.GroupID,
		"handle":      m.Handle,
		"handleLower": m.HandleLower,
	}

	if len(history.Develop) > 0 {
		groups := map[int64]*HistorySubTrackDocument{}
		var order []int64
		for _, h := range history.Develop {
			g, ok := groups[h.SubTrackID]
			if !ok {
				g = &HistorySubTrackDocument{ID: h.SubTrackID, Name: h.SubTrack}
				groups[h.SubTrackID] = g
				order = append(order, h.SubTrackID)
			}
			g.History = append(g.History, DevelopHistoryEntryDocument{
				ChallengeName: h.ChallengeName,
				NewRating:     h.NewRating,
				ChallengeID:   h.ChallengeID,
				RatingDate:    utils.EpochMillis(h.RatingDate),
			})
		}
		sort.Slice(order, func(i, j int) bool { return order[i] < order[j] })

		develop := DevelopHistoryDocument{SubTracks: make([]HistorySubTrackDocument, 0, len(order))}
		for _, id := range order {
			develop.SubTracks = append(develop.SubTracks, *groups[id])
		}
		doc["DEVELOP"] = develop
	}

	if len(history.DataScience) > 0 {
		var ds DataScienceHistoryDocument
		for _, h := range history.DataScience {
			entry := DataScienceHistoryEntryDocument{
				ChallengeName: h.ChallengeName,
				Rating:        h.Rating,
				Placement:     h.Placement,
				Percentile:    h.Percentile,
				ChallengeID:   h.ChallengeID,
				Date:          utils.EpochMillis(h.Date),
			}
			switch h.SubTrack {
			case SubTrackSRM:
				if ds.SRM == nil {
					ds.SRM = &HistoryListDocument{}
				}
				ds.SRM.History = append(ds.SRM.History, entry)
			case SubTrackMarathon:
				if ds.MarathonMatch == nil {
					ds.MarathonMatch = &HistoryListDocument{}
				}
				ds.MarathonMatch.History = append(ds.MarathonMatch.History, entry)
			}
		}
		doc["DATA_SCIENCE"] = ds
	}

	addAudit(doc, history.Audit)
	return FilterFields(doc, fields)
}

func addAudit(doc Document, a models.Audit) {
	doc["createdAt"] = utils.Millis(a.CreatedAt)
	doc["updatedAt"] = utils.Millis(a.UpdatedAt)
	doc["createdBy"] = a.CreatedBy
	doc["updatedBy"] = a.UpdatedBy
}

// FilterFields returns the keys of doc named in fields. An empty fields list
// returns doc itself.
func FilterFields(doc Document, fields []string) Document {
	if len(fields) == 0 {
		return doc
	}
	picked := make(Document, len(fields))
	for _, f := range fields {
		if v, ok := doc[f]; ok {
			picked[f] = v
		}
	}
	return picked
}

// redact removes secure fields from every document.
func redact(docs []Document, secureFields []string) {
	for _, doc := range docs {
		for _, f := range secureFields {
			delete(doc, f)
		}
	}
}
