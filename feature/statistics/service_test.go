package statistics_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"
	"time"

	"member-api/core/apperror"
	"member-api/core/authz"
	"member-api/core/database"
	"member-api/core/metrics"
	"member-api/core/middleware/auth"
	"member-api/feature/member"
	memberModels "member-api/feature/member/models"
	"member-api/feature/statistics"
	"member-api/feature/statistics/models"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

const secret = "stats-secret"

func strPtr(s string) *string     { return &s }
func int64Ptr(i int64) *int64     { return &i }
func floatPtr(f float64) *float64 { return &f }

var (
	owner   = &authz.Identity{Handle: "TonyJ"}
	admin   = &authz.Identity{Handle: "boss", Roles: []string{"Administrator"}}
	machine = &authz.Identity{UserID: "svc@clients", IsMachine: true}
	other   = &authz.Identity{Handle: "someone"}
)

var testConfig = statistics.Config{PublicGroupID: -1, SecureFields: "createdBy,updatedBy"}

func setupDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := database.Connect(database.Config{Driver: "sqlite", Name: ":memory:"})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(memberModels.All()...))
	require.NoError(t, db.AutoMigrate(models.All()...))

	m := memberModels.Member{
		UserID:      40154303,
		Handle:      "TonyJ",
		HandleLower: "tonyj",
		Status:      "ACTIVE",
		CreatedAt:   created,
		UpdatedAt:   created,
		CreatedBy:   "seed",
	}
	require.NoError(t, db.Create(&m).Error)
	return db
}

func newService(db *gorm.DB, mgr *metrics.Manager) *statistics.Service {
	return statistics.NewService(db, member.NewRepository(db),
		statistics.DefaultGroupResolver{PublicGroupID: testConfig.PublicGroupID}, testConfig, mgr, zap.NewNop())
}

// seedStats stores a public record with develop items 10 and 20.
func seedStats(t *testing.T, db *gorm.DB) {
	t.Helper()
	stats := models.MemberStats{
		ID:         1,
		UserID:     40154303,
		Challenges: int64Ptr(5),
		Audit:      testAudit(),
		Develop: &models.MemberDevelopStats{
			ID:    1,
			Audit: testAudit(),
			Items: []models.MemberDevelopStatsItem{
				{ID: 10, Name: "CODE", SubTrackID: 39, Wins: int64Ptr(1), Audit: testAudit()},
				{ID: 20, Name: "F2F", SubTrackID: 40, Audit: testAudit()},
			},
		},
	}
	require.NoError(t, db.Create(&stats).Error)
}

// counterValue sums the counter samples of name whose label matches value.
func counterValue(t *testing.T, mgr *metrics.Manager, name, label, value string) float64 {
	t.Helper()
	families, err := mgr.Registry().Gather()
	require.NoError(t, err)

	var total float64
	for _, f := range families {
		if f.GetName() != name {
			continue
		}
		for _, m := range f.GetMetric() {
			for _, l := range m.GetLabel() {
				if l.GetName() == label && l.GetValue() == value {
					total += m.GetCounter().GetValue()
				}
			}
		}
	}
	return total
}

func developItems(t *testing.T, db *gorm.DB) []models.MemberDevelopStatsItem {
	t.Helper()
	var items []models.MemberDevelopStatsItem
	require.NoError(t, db.Order("id").Find(&items).Error)
	return items
}

func TestUpdateMemberStatsReconcilesItems(t *testing.T) {
	db := setupDB(t)
	seedStats(t, db)
	mgr := metrics.NewManager()
	svc := newService(db, mgr)

	body := `{"develop":{"items":[{"id":10,"name":"CODE","subTrackId":39,"wins":4},{"name":"new","subTrackId":41,"challenges":2}]}}`
	doc, err := svc.UpdateMemberStats(context.Background(), owner, "tonyj", []byte(body))
	require.NoError(t, err)

	items := developItems(t, db)
	require.Len(t, items, 2)
	assert.Equal(t, int64(10), items[0].ID)
	assert.Equal(t, int64(4), *items[0].Wins)
	require.NotNil(t, items[0].UpdatedBy)
	assert.Equal(t, "TonyJ", *items[0].UpdatedBy)
	assert.Equal(t, "new", items[1].Name)
	assert.Equal(t, int64(2), *items[1].Challenges)
	assert.Equal(t, "TonyJ", items[1].CreatedBy)

	develop := doc["DEVELOP"].(statistics.TrackDocument[statistics.DevelopSubTrackDocument])
	require.Len(t, develop.SubTracks, 2)
	assert.Equal(t, int64(-1), *doc["groupId"].(*int64))

	assert.Equal(t, float64(1), counterValue(t, mgr, "member_api_reconcile_actions_total", "action", "delete"))
	assert.Equal(t, float64(1), counterValue(t, mgr, "member_api_reconcile_actions_total", "action", "update"))
	assert.Equal(t, float64(1), counterValue(t, mgr, "member_api_reconcile_actions_total", "action", "insert"))
}

func TestUpdateMemberStatsIsIdempotent(t *testing.T) {
	db := setupDB(t)
	seedStats(t, db)
	svc := newService(db, nil)

	body := `{"develop":{"items":[{"id":10,"name":"CODE","subTrackId":39,"wins":4},{"id":20,"name":"F2F","subTrackId":40}]}}`
	_, err := svc.UpdateMemberStats(context.Background(), owner, "tonyj", []byte(body))
	require.NoError(t, err)
	first := developItems(t, db)

	_, err = svc.UpdateMemberStats(context.Background(), owner, "tonyj", []byte(body))
	require.NoError(t, err)
	second := developItems(t, db)

	require.Len(t, second, 2)
	for i := range first {
		assert.Equal(t, first[i].ID, second[i].ID)
		assert.Equal(t, first[i].Name, second[i].Name)
		assert.Equal(t, first[i].Wins, second[i].Wins)
	}
}

func TestUpdateMemberStatsOmittedTrackUntouched(t *testing.T) {
	db := setupDB(t)
	seedStats(t, db)
	svc := newService(db, nil)

	_, err := svc.UpdateMemberStats(context.Background(), owner, "tonyj", []byte(`{"challenges":9}`))
	require.NoError(t, err)
	assert.Len(t, developItems(t, db), 2)

	var stats models.MemberStats
	require.NoError(t, db.First(&stats, 1).Error)
	assert.Equal(t, int64(9), *stats.Challenges)
}

func TestUpdateMemberStatsTrackWithoutItemsClearsThem(t *testing.T) {
	db := setupDB(t)
	seedStats(t, db)
	svc := newService(db, nil)

	_, err := svc.UpdateMemberStats(context.Background(), owner, "tonyj", []byte(`{"develop":{"wins":3}}`))
	require.NoError(t, err)
	assert.Empty(t, developItems(t, db))

	var develop models.MemberDevelopStats
	require.NoError(t, db.First(&develop, 1).Error)
	require.NotNil(t, develop.Wins)
	assert.Equal(t, int64(3), *develop.Wins)
}

func TestUpdateMemberStatsIsAtomic(t *testing.T) {
	db := setupDB(t)
	seedStats(t, db)
	mgr := metrics.NewManager()
	svc := newService(db, mgr)

	// Item 99 does not exist, so the deletes and the insert must not persist.
	body := `{"challenges":100,"develop":{"items":[{"id":99,"name":"ghost","subTrackId":1},{"name":"new","subTrackId":2}]}}`
	_, err := svc.UpdateMemberStats(context.Background(), owner, "tonyj", []byte(body))
	require.Error(t, err)
	assert.True(t, apperror.Is(err, apperror.KindNotFound))

	items := developItems(t, db)
	require.Len(t, items, 2)
	assert.Equal(t, []int64{10, 20}, []int64{items[0].ID, items[1].ID})

	var stats models.MemberStats
	require.NoError(t, db.First(&stats, 1).Error)
	assert.Equal(t, int64(5), *stats.Challenges)
	assert.Zero(t, counterValue(t, mgr, "member_api_reconcile_failures_total", "operation", "updateMemberStats"))
}

func TestUpdateMemberStatsCountsStorageFailures(t *testing.T) {
	db := setupDB(t)
	seedStats(t, db)
	mgr := metrics.NewManager()
	svc := newService(db, mgr)

	require.NoError(t, db.Callback().Update().Before("gorm:update").Register("fail_update", func(tx *gorm.DB) {
		_ = tx.AddError(errors.New("database is locked"))
	}))

	_, err := svc.UpdateMemberStats(context.Background(), owner, "tonyj", []byte(`{"challenges":100}`))
	require.Error(t, err)
	assert.False(t, apperror.Is(err, apperror.KindBadRequest))
	assert.False(t, apperror.Is(err, apperror.KindNotFound))
	assert.Equal(t, float64(1), counterValue(t, mgr, "member_api_reconcile_failures_total", "operation", "updateMemberStats"))

	var stats models.MemberStats
	require.NoError(t, db.First(&stats, 1).Error)
	assert.Equal(t, int64(5), *stats.Challenges)
}

func TestUpdateMemberStatsCreatesMissingBlocks(t *testing.T) {
	db := setupDB(t)
	seedStats(t, db)
	svc := newService(db, nil)

	body := `{
		"design":{"challenges":3,"items":[{"id":5,"name":"WEB","subTrackId":17}]},
		"dataScience":{"srm":{"rating":1300,"divisions":[{"divisionName":"division1","levelName":"Level One","problemsSubmitted":2}]},"marathon":{"rating":1500}},
		"copilot":{"contests":4,"fulfillment":92.5}
	}`
	doc, err := svc.UpdateMemberStats(context.Background(), machine, "tonyj", []byte(body))
	require.NoError(t, err)

	design := doc["DESIGN"].(statistics.TrackDocument[statistics.DesignSubTrackDocument])
	require.Len(t, design.SubTracks, 1)
	assert.Equal(t, int64(17), design.SubTracks[0].ID)

	ds := doc["DATA_SCIENCE"].(statistics.DataScienceDocument)
	require.NotNil(t, ds.SRM)
	assert.Equal(t, int64(1300), *ds.SRM.Rank.Rating)
	require.Len(t, ds.SRM.Division1, 1)
	require.NotNil(t, ds.MarathonMatch)
	assert.Equal(t, int64(1500), *ds.MarathonMatch.Rank.Rating)

	copilot := doc["COPILOT"].(statistics.CopilotDocument)
	assert.Equal(t, 92.5, *copilot.Fulfillment)

	// Second pass updates the SRM block in place and reconciles divisions.
	var division models.MemberSrmDivisionDetail
	require.NoError(t, db.First(&division).Error)
	body = `{"dataScience":{"srm":{"rating":1350,"divisions":[{"id":` + strconv.FormatInt(division.ID, 10) + `,"divisionName":"division2","levelName":"Level Two"}]}}}`
	doc, err = svc.UpdateMemberStats(context.Background(), machine, "tonyj", []byte(body))
	require.NoError(t, err)

	ds = doc["DATA_SCIENCE"].(statistics.DataScienceDocument)
	assert.Equal(t, int64(1350), *ds.SRM.Rank.Rating)
	assert.Empty(t, ds.SRM.Division1)
	require.Len(t, ds.SRM.Division2, 1)
	assert.Equal(t, "Level Two", ds.SRM.Division2[0].LevelName)
	require.NotNil(t, ds.MarathonMatch)

	var count int64
	require.NoError(t, db.Model(&models.MemberSrmStats{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestMemberStatsAuthorization(t *testing.T) {
	db := setupDB(t)
	seedStats(t, db)
	svc := newService(db, nil)
	body := []byte(`{"develop":{"items":[]}}`)

	for name, identity := range map[string]*authz.Identity{"anonymous": nil, "other member": other} {
		t.Run(name, func(t *testing.T) {
			_, err := svc.UpdateMemberStats(context.Background(), identity, "tonyj", body)
			require.Error(t, err)
			assert.True(t, apperror.Is(err, apperror.KindForbidden))
			assert.Equal(t, "You are not allowed to update the member statistics.", err.Error())
		})
	}
	assert.Len(t, developItems(t, db), 2)

	t.Run("admin", func(t *testing.T) {
		_, err := svc.UpdateMemberStats(context.Background(), admin, "TONYJ", body)
		require.NoError(t, err)
		assert.Empty(t, developItems(t, db))
	})

	t.Run("unknown member before payload", func(t *testing.T) {
		_, err := svc.UpdateMemberStats(context.Background(), owner, "ghost", []byte(`not json`))
		assert.True(t, apperror.Is(err, apperror.KindNotFound))
	})
}

func TestMemberStatsValidation(t *testing.T) {
	db := setupDB(t)
	seedStats(t, db)
	svc := newService(db, nil)

	tests := map[string]struct {
		body    string
		message string
	}{
		"Unknown field":    {`{"foo":1}`, `"foo" is not allowed`},
		"Wrong type":       {`{"challenges":"many"}`, "challenges must be a number"},
		"Missing name":     {`{"develop":{"items":[{"subTrackId":1}]}}`, "name is required"},
		"Bad date":         {`{"develop":{"mostRecentSubmission":"yesterday"}}`, "mostRecentSubmission must be a valid date"},
		"Private no group": {`{"isPrivate":true}`, "groupId is required for private statistics"},
	}
	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := svc.UpdateMemberStats(context.Background(), owner, "tonyj", []byte(tc.body))
			require.Error(t, err)
			assert.True(t, apperror.Is(err, apperror.KindBadRequest))
			assert.Contains(t, err.Error(), tc.message)
		})
	}
	assert.Len(t, developItems(t, db), 2)
}

func TestCreateMemberStats(t *testing.T) {
	db := setupDB(t)
	svc := newService(db, nil)

	body := `{"groupId":20000001,"challenges":7,"develop":{"challenges":4,"items":[{"id":555,"name":"CODE","subTrackId":39}]},"copilot":{"projects":2}}`
	doc, err := svc.CreateMemberStats(context.Background(), owner, "tonyj", []byte(body))
	require.NoError(t, err)
	assert.Equal(t, int64(20000001), *doc["groupId"].(*int64))
	assert.Equal(t, int64(7), *doc["challenges"].(*int64))

	items := developItems(t, db)
	require.Len(t, items, 1)
	assert.NotEqual(t, int64(555), items[0].ID)

	var stats models.MemberStats
	require.NoError(t, db.First(&stats).Error)
	assert.True(t, stats.IsPrivate)
	assert.Equal(t, "TonyJ", stats.CreatedBy)

	_, err = svc.CreateMemberStats(context.Background(), owner, "tonyj", []byte(body))
	require.Error(t, err)
	assert.True(t, apperror.Is(err, apperror.KindBadRequest))

	// A public record is a separate scope.
	_, err = svc.CreateMemberStats(context.Background(), owner, "tonyj", []byte(`{"wins":1}`))
	require.NoError(t, err)
}

func TestGetMemberStats(t *testing.T) {
	db := setupDB(t)
	seedStats(t, db)
	private := models.MemberStats{UserID: 40154303, GroupID: int64Ptr(77), IsPrivate: true, Wins: int64Ptr(9), Audit: testAudit()}
	require.NoError(t, db.Create(&private).Error)
	svc := newService(db, nil)

	t.Run("Public by default and redacted", func(t *testing.T) {
		docs, err := svc.GetMemberStats(context.Background(), nil, "tonyj", "", "")
		require.NoError(t, err)
		require.Len(t, docs, 1)
		assert.Equal(t, int64(-1), *docs[0]["groupId"].(*int64))
		assert.NotContains(t, docs[0], "createdBy")
	})

	t.Run("Non manager cannot read private groups", func(t *testing.T) {
		docs, err := svc.GetMemberStats(context.Background(), other, "tonyj", "77", "")
		require.NoError(t, err)
		require.Len(t, docs, 1)
		assert.Equal(t, int64(-1), *docs[0]["groupId"].(*int64))
	})

	t.Run("Manager reads groups in order", func(t *testing.T) {
		docs, err := svc.GetMemberStats(context.Background(), owner, "tonyj", "77,-1,12345", "groupId,wins,createdBy")
		require.NoError(t, err)
		require.Len(t, docs, 2)
		assert.Equal(t, int64(77), *docs[0]["groupId"].(*int64))
		assert.Equal(t, int64(9), *docs[0]["wins"].(*int64))
		assert.Equal(t, int64(-1), *docs[1]["groupId"].(*int64))
		assert.Equal(t, "seed", docs[0]["createdBy"])
	})

	t.Run("Invalid fields", func(t *testing.T) {
		_, err := svc.GetMemberStats(context.Background(), owner, "tonyj", "", "wins,wins")
		require.Error(t, err)
		assert.Equal(t, "Duplicate values: wins", err.Error())
	})
}

func TestHistoryStats(t *testing.T) {
	db := setupDB(t)
	svc := newService(db, nil)

	body := `{"develop":[{"challengeId":999,"challengeName":"C","ratingDate":"2023-01-01","newRating":1700,"subTrack":"SRM","subTrackId":1}]}`
	doc, err := svc.CreateHistoryStats(context.Background(), owner, "tonyj", []byte(body))
	require.NoError(t, err)

	develop := doc["DEVELOP"].(statistics.DevelopHistoryDocument)
	require.Len(t, develop.SubTracks, 1)
	entry := develop.SubTracks[0].History[0]
	assert.Equal(t, "C", entry.ChallengeName)
	assert.Equal(t, int64(999), entry.ChallengeID)
	assert.Equal(t, time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC).UnixMilli(), *entry.RatingDate)

	_, err = svc.CreateHistoryStats(context.Background(), owner, "tonyj", []byte(body))
	assert.True(t, apperror.Is(err, apperror.KindBadRequest))

	var stored []models.MemberDevelopHistoryStats
	require.NoError(t, db.Find(&stored).Error)
	require.Len(t, stored, 1)

	update := `{"develop":[],"dataScience":[{"challengeId":5,"challengeName":"SRM 5","date":"2023-02-01","rating":1200,"placement":2,"percentile":88.5,"subTrack":"SRM","subTrackId":2}]}`
	doc, err = svc.UpdateHistoryStats(context.Background(), owner, "tonyj", []byte(update))
	require.NoError(t, err)
	assert.NotContains(t, doc, "DEVELOP")
	ds := doc["DATA_SCIENCE"].(statistics.DataScienceHistoryDocument)
	require.NotNil(t, ds.SRM)
	assert.Equal(t, 88.5, ds.SRM.History[0].Percentile)

	docs, err := svc.GetHistoryStats(context.Background(), nil, "tonyj", "", "DATA_SCIENCE,groupId")
	require.NoError(t, err)
	require.Len(t, docs, 1)
	assert.Len(t, docs[0], 2)

	t.Run("Missing record", func(t *testing.T) {
		_, err := svc.UpdateHistoryStats(context.Background(), owner, "tonyj", []byte(`{"groupId":5,"develop":[]}`))
		require.Error(t, err)
		assert.Equal(t, "Member history statistics not found", err.Error())
	})

	t.Run("Forbidden", func(t *testing.T) {
		_, err := svc.CreateHistoryStats(context.Background(), other, "tonyj", []byte(body))
		assert.Equal(t, "You are not allowed to create the member history statistics.", err.Error())
	})

	t.Run("Missing required fields", func(t *testing.T) {
		_, err := svc.UpdateHistoryStats(context.Background(), owner, "tonyj", []byte(`{"develop":[{"challengeName":"x"}]}`))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "challengeId is required")
		assert.Contains(t, err.Error(), "ratingDate is required")
	})

	t.Run("Unknown data science sub track", func(t *testing.T) {
		bad := `{"dataScience":[{"challengeId":6,"challengeName":"TCO","date":"2023-03-01","rating":1300,"placement":4,"percentile":70,"subTrack":"TCO","subTrackId":3}]}`
		_, err := svc.UpdateHistoryStats(context.Background(), owner, "tonyj", []byte(bad))
		require.Error(t, err)
		assert.True(t, apperror.Is(err, apperror.KindBadRequest))
		assert.Contains(t, err.Error(), "subTrack must be one of [SRM, MARATHON_MATCH]")
	})
}

func TestUpdateHistoryStatsOmittedListIsCleared(t *testing.T) {
	db := setupDB(t)
	svc := newService(db, nil)

	body := `{
		"develop":[{"challengeId":1,"challengeName":"D","ratingDate":"2023-01-01","newRating":1500,"subTrack":"CODE","subTrackId":39}],
		"dataScience":[{"challengeId":2,"challengeName":"S","date":"2023-01-02","rating":1200,"placement":1,"percentile":99,"subTrack":"SRM","subTrackId":2}]
	}`
	_, err := svc.CreateHistoryStats(context.Background(), owner, "tonyj", []byte(body))
	require.NoError(t, err)

	_, err = svc.UpdateHistoryStats(context.Background(), owner, "tonyj", []byte(`{"develop":[]}`))
	require.NoError(t, err)

	var develop, dataScience int64
	require.NoError(t, db.Model(&models.MemberDevelopHistoryStats{}).Count(&develop).Error)
	require.NoError(t, db.Model(&models.MemberDataScienceHistoryStats{}).Count(&dataScience).Error)
	assert.Zero(t, develop)
	assert.Zero(t, dataScience)
}

func TestGetDistribution(t *testing.T) {
	db := setupDB(t)
	svc := newService(db, nil)

	later := created.Add(time.Hour)
	rows := []models.DistributionStats{
		{Track: "DEVELOP", SubTrack: "CODE", Buckets: datatypes.JSONMap{"ratingRange0To099": 2, "ratingRange100To199": 1},
			Audit: models.Audit{CreatedAt: later, UpdatedAt: later, CreatedBy: "b", UpdatedBy: strPtr("b")}},
		{Track: "DEVELOP", SubTrack: "F2F", Buckets: datatypes.JSONMap{"ratingRange0To099": 3},
			Audit: models.Audit{CreatedAt: created, UpdatedAt: updated, CreatedBy: "a", UpdatedBy: strPtr("a")}},
		{Track: "DATA_SCIENCE", SubTrack: "SRM", Buckets: datatypes.JSONMap{"ratingRange0To099": 100},
			Audit: testAudit()},
	}
	require.NoError(t, db.Create(&rows).Error)

	doc, err := svc.GetDistribution(context.Background(), "develop", "", "")
	require.NoError(t, err)
	assert.Equal(t, map[string]int64{"ratingRange0To099": 5, "ratingRange100To199": 1}, doc["distribution"])
	assert.Equal(t, "develop", doc["track"])
	assert.NotContains(t, doc, "subTrack")
	assert.Equal(t, created.UnixMilli(), doc["createdAt"])
	assert.Equal(t, "a", doc["createdBy"])
	assert.Equal(t, updated.UnixMilli(), doc["updatedAt"])

	_, err = svc.GetDistribution(context.Background(), "DESIGN", "", "")
	require.Error(t, err)
	assert.Equal(t, "No member distribution statistics is found.", err.Error())

	doc, err = svc.GetDistribution(context.Background(), "", "srm", "distribution")
	require.NoError(t, err)
	assert.Equal(t, statistics.Document{"distribution": map[string]int64{"ratingRange0To099": 100}}, doc)
}

func newApp(t *testing.T, db *gorm.DB) *fiber.App {
	t.Helper()
	app := fiber.New()
	app.Use(auth.New(auth.Config{Secret: secret}))
	require.NoError(t, statistics.NewFeature(db, testConfig, nil, zap.NewNop()).Load(app))
	return app
}

func bearer(t *testing.T, claims auth.Claims) string {
	t.Helper()
	token, err := auth.Issue(secret, claims, time.Hour)
	require.NoError(t, err)
	return "Bearer " + token
}

func TestHandlers(t *testing.T) {
	db := setupDB(t)
	seedStats(t, db)
	app := newApp(t, db)

	t.Run("Patch stats", func(t *testing.T) {
		req := httptest.NewRequest("PATCH", "/members/tonyj/stats",
			strings.NewReader(`{"develop":{"items":[{"id":10,"name":"CODE","subTrackId":39},{"name":"new","subTrackId":41}]}}`))
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("Authorization", bearer(t, auth.Claims{Handle: "TonyJ"}))
		resp, err := app.Test(req)
		require.NoError(t, err)
		require.Equal(t, 200, resp.StatusCode)

		var body map[string]any
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
		subTracks := body["DEVELOP"].(map[string]any)["subTracks"].([]any)
		assert.Len(t, subTracks, 2)

		items := developItems(t, db)
		require.Len(t, items, 2)
		assert.Equal(t, int64(10), items[0].ID)
		assert.Equal(t, "new", items[1].Name)
	})

	t.Run("Write without token", func(t *testing.T) {
		req := httptest.NewRequest("POST", "/members/tonyj/stats/history", strings.NewReader(`{}`))
		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, 401, resp.StatusCode)
	})

	t.Run("Machine token without scope", func(t *testing.T) {
		req := httptest.NewRequest("POST", "/members/tonyj/stats/history", strings.NewReader(`{}`))
		req.Header.Set("Authorization", bearer(t, auth.Claims{GrantType: auth.GrantClientCredentials, Scope: "read:user_stats",
			RegisteredClaims: jwt.RegisteredClaims{Subject: "svc@clients"}}))
		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, 403, resp.StatusCode)
	})

	t.Run("Create history", func(t *testing.T) {
		req := httptest.NewRequest("POST", "/members/tonyj/stats/history",
			strings.NewReader(`{"develop":[{"challengeId":999,"challengeName":"C","ratingDate":"2023-01-01","newRating":1700,"subTrack":"SRM","subTrackId":1}]}`))
		req.Header.Set("Authorization", bearer(t, auth.Claims{GrantType: auth.GrantClientCredentials, Scope: "create:user_stats",
			RegisteredClaims: jwt.RegisteredClaims{Subject: "svc@clients"}}))
		resp, err := app.Test(req)
		require.NoError(t, err)
		require.Equal(t, 201, resp.StatusCode)

		var body map[string]any
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
		history := body["DEVELOP"].(map[string]any)["subTracks"].([]any)[0].(map[string]any)["history"].([]any)
		assert.Equal(t, "C", history[0].(map[string]any)["challengeName"])
	})

	t.Run("Get history anonymously", func(t *testing.T) {
		resp, err := app.Test(httptest.NewRequest("GET", "/members/tonyj/stats/history", nil))
		require.NoError(t, err)
		require.Equal(t, 200, resp.StatusCode)

		var body []map[string]any
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
		require.Len(t, body, 1)
		assert.NotContains(t, body[0], "createdBy")
		assert.Equal(t, float64(-1), body[0]["groupId"])
	})

	t.Run("Bad payload", func(t *testing.T) {
		req := httptest.NewRequest("PATCH", "/members/tonyj/stats", strings.NewReader(`{"develop":{"items":[{"id":10}]}}`))
		req.Header.Set("Authorization", bearer(t, auth.Claims{Handle: "TonyJ"}))
		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, 400, resp.StatusCode)

		var body apperror.Body
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
		assert.Equal(t, []string{"name is required", "subTrackId is required"}, body.Details)
	})

	t.Run("Distribution not found", func(t *testing.T) {
		resp, err := app.Test(httptest.NewRequest("GET", "/members/stats/distribution?track=DESIGN", nil))
		require.NoError(t, err)
		assert.Equal(t, 404, resp.StatusCode)
	})
}
