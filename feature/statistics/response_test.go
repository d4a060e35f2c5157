package statistics_test

import (
	"encoding/json"
	"testing"
	"time"

	memberModels "member-api/feature/member/models"
	"member-api/feature/statistics"
	"member-api/feature/statistics/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	created = time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)
	updated = time.Date(2024, 2, 3, 4, 5, 6, 0, time.UTC)
)

func testMember() *memberModels.Member {
	return &memberModels.Member{
		UserID:      40154303,
		Handle:      "TonyJ",
		HandleLower: "tonyj",
		MaxRating:   &memberModels.MaxRating{Rating: 1600, RatingColor: "#FCD617"},
	}
}

func testAudit() models.Audit {
	return models.Audit{CreatedAt: created, UpdatedAt: updated, CreatedBy: "seed"}
}

// asJSON renders a document the way the HTTP layer does.
func asJSON(t *testing.T, v any) map[string]any {
	t.Helper()
	raw, err := json.Marshal(v)
	require.NoError(t, err)
	var out map[string]any
	require.NoError(t, json.Unmarshal(raw, &out))
	return out
}

func TestBuildStatsResponse(t *testing.T) {
	submitted := time.Date(2023, 5, 6, 0, 0, 0, 0, time.UTC)
	stats := &models.MemberStats{
		ID:         1,
		GroupID:    int64Ptr(-1),
		Challenges: int64Ptr(12),
		Wins:       int64Ptr(3),
		Audit:      testAudit(),
		Develop: &models.MemberDevelopStats{
			Challenges:           int64Ptr(10),
			MostRecentSubmission: &submitted,
			Items: []models.MemberDevelopStatsItem{
				{ID: 10, Name: "CODE", SubTrackID: 201, Wins: int64Ptr(2), Rating: floatPtr(1650)},
			},
		},
		DataScience: &models.MemberDataScienceStats{
			Srm: &models.MemberSrmStats{
				Rating: int64Ptr(1200),
				Divisions: []models.MemberSrmDivisionDetail{
					{DivisionName: "division2", LevelName: "Level One", ProblemsSubmitted: int64Ptr(4)},
				},
			},
		},
	}

	doc := asJSON(t, statistics.BuildStatsResponse(testMember(), stats, nil))

	assert.Equal(t, float64(40154303), doc["userId"])
	assert.Equal(t, float64(-1), doc["groupId"])
	assert.Equal(t, float64(created.UnixMilli()), doc["createdAt"])
	assert.Equal(t, map[string]any{"rating": float64(1600), "track": nil, "subTrack": nil, "ratingColor": "#FCD617"}, doc["maxRating"])
	assert.NotContains(t, doc, "DESIGN")
	assert.NotContains(t, doc, "COPILOT")

	develop := doc["DEVELOP"].(map[string]any)
	assert.Equal(t, float64(submitted.UnixMilli()), develop["mostRecentSubmission"])
	assert.Contains(t, develop, "mostRecentEventDate")
	assert.Nil(t, develop["mostRecentEventDate"])
	assert.Nil(t, develop["wins"])

	subTracks := develop["subTracks"].([]any)
	require.Len(t, subTracks, 1)
	sub := subTracks[0].(map[string]any)
	assert.Equal(t, float64(201), sub["id"])
	assert.Equal(t, "CODE", sub["name"])
	assert.Equal(t, float64(1650), sub["rank"].(map[string]any)["rating"])
	assert.Nil(t, sub["submissions"].(map[string]any)["submissions"])

	ds := doc["DATA_SCIENCE"].(map[string]any)
	assert.NotContains(t, ds, "MARATHON_MATCH")
	srm := ds["SRM"].(map[string]any)
	assert.NotContains(t, srm, "division1")
	assert.NotContains(t, srm, "challengeDetails")
	require.Len(t, srm["division2"], 1)
	assert.Equal(t, "Level One", srm["division2"].([]any)[0].(map[string]any)["levelName"])
}

func TestBuildStatsResponseIsPure(t *testing.T) {
	stats := &models.MemberStats{GroupID: int64Ptr(5), Audit: testAudit(),
		Design: &models.MemberDesignStats{Items: []models.MemberDesignStatsItem{{Name: "WEB", SubTrackID: 3}}}}
	m := testMember()

	first := asJSON(t, statistics.BuildStatsResponse(m, stats, nil))
	second := asJSON(t, statistics.BuildStatsResponse(m, stats, nil))
	assert.Equal(t, first, second)
	assert.Equal(t, int64(5), *stats.GroupID)
	assert.Len(t, stats.Design.Items, 1)
}

func TestBuildStatsResponseFields(t *testing.T) {
	stats := &models.MemberStats{Challenges: int64Ptr(1), Audit: testAudit()}

	doc := statistics.BuildStatsResponse(testMember(), stats, []string{"handle", "challenges", "DEVELOP"})
	assert.Equal(t, statistics.Document{"handle": "TonyJ", "challenges": int64Ptr(1)}, doc)
}

func TestBuildStatsHistoryResponse(t *testing.T) {
	day := func(d int) *time.Time { v := time.Date(2023, 1, d, 0, 0, 0, 0, time.UTC); return &v }
	history := &models.MemberHistoryStats{
		Audit: testAudit(),
		Develop: []models.MemberDevelopHistoryStats{
			{ID: 1, ChallengeID: 1, ChallengeName: "B1", NewRating: 1500, SubTrack: "DEVELOPMENT", SubTrackID: 112, RatingDate: day(2)},
			{ID: 2, ChallengeID: 2, ChallengeName: "A1", NewRating: 1400, SubTrack: "CODE", SubTrackID: 39, RatingDate: day(3)},
			{ID: 3, ChallengeID: 3, ChallengeName: "B2", NewRating: 1550, SubTrack: "DEVELOPMENT", SubTrackID: 112},
		},
		DataScience: []models.MemberDataScienceHistoryStats{
			{ID: 4, ChallengeID: 7, ChallengeName: "SRM 1", Rating: 1200, Placement: 3, Percentile: 90.5, SubTrack: "SRM", Date: day(4)},
			{ID: 5, ChallengeID: 8, ChallengeName: "TCO", Rating: 1300, Placement: 1, Percentile: 99, SubTrack: "UNKNOWN"},
		},
	}

	doc := asJSON(t, statistics.BuildStatsHistoryResponse(testMember(), history, nil))
	assert.Nil(t, doc["groupId"])

	subTracks := doc["DEVELOP"].(map[string]any)["subTracks"].([]any)
	require.Len(t, subTracks, 2)
	code := subTracks[0].(map[string]any)
	assert.Equal(t, float64(39), code["id"])
	assert.Equal(t, "CODE", code["name"])

	dev := subTracks[1].(map[string]any)["history"].([]any)
	require.Len(t, dev, 2)
	assert.Equal(t, "B1", dev[0].(map[string]any)["challengeName"])
	assert.Equal(t, float64(day(2).UnixMilli()), dev[0].(map[string]any)["ratingDate"])
	assert.Nil(t, dev[1].(map[string]any)["ratingDate"])

	ds := doc["DATA_SCIENCE"].(map[string]any)
	assert.NotContains(t, ds, "MARATHON_MATCH")
	srm := ds["SRM"].(map[string]any)["history"].([]any)
	require.Len(t, srm, 1)
	assert.Equal(t, 90.5, srm[0].(map[string]any)["percentile"])
}

func TestBuildStatsHistoryResponseEmptyTracks(t *testing.T) {
	doc := statistics.BuildStatsHistoryResponse(testMember(), &models.MemberHistoryStats{Audit: testAudit()}, nil)
	assert.NotContains(t, doc, "DEVELOP")
	assert.NotContains(t, doc, "DATA_SCIENCE")
}

func TestFilterFields(t *testing.T) {
	doc := statistics.Document{"a": 1, "b": 2}
	assert.Equal(t, doc, statistics.FilterFields(doc, nil))
	assert.Equal(t, statistics.Document{"b": 2}, statistics.FilterFields(doc, []string{"b", "missing"}))
}
