package http

import (
	"bytes"
	"database/sql"
	"encoding/base64"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/rwalker123/draco-sub018/internal/booking"
	"github.com/rwalker123/draco-sub018/internal/config"
	"github.com/rwalker123/draco-sub018/internal/database"
	"github.com/rwalker123/draco-sub018/internal/league"
	"github.com/rwalker123/draco-sub018/internal/metrics"
	"github.com/rwalker123/draco-sub018/internal/notifier"
	"github.com/rwalker123/draco-sub018/internal/pubsub"
	"github.com/rwalker123/draco-sub018/internal/schedule"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vmihailenco/msgpack/v5"
)

// setupTestServer initializes a server backed by a test database and mock
// notifier/pubsub clients.
func setupTestServer(t *testing.T) (*Server, *sql.DB, *notifier.MockNotifier, *pubsub.MockPubSubClient, func()) {
	t.Helper()

	db, dbTeardown, err := database.InitDB(":memory:", "", "", "../../migrations")
	require.NoError(t, err)

	leagueStore := league.New(db)
	bookingStore := booking.New(db)
	reg := prometheus.NewRegistry()
	metricsSvc := metrics.NewService(reg)
	mockNotifier := notifier.NewMock()
	mockPubsub := pubsub.NewMock("test-project")
	engine := schedule.NewEngine(leagueStore, bookingStore, metricsSvc)

	server := NewServer(
		leagueStore,
		engine,
		metricsSvc,
		metrics.NewMetricsHandler(reg),
		config.Config{ApplyTopic: "apply-events"},
		mockNotifier,
		mockPubsub,
	)

	teardown := func() {
		dbTeardown()
		db.Close()
	}
	return server, db, mockNotifier, mockPubsub, teardown
}

// seedSchedulingData inserts one account with a season, two teams, a field,
// an umpire, an availability rule and one unscheduled game.
func seedSchedulingData(t *testing.T, db *sql.DB) {
	t.Helper()
	stmts := []string{
		`INSERT INTO accounts (id, name, time_zone) VALUES ('acct-1', 'Test League', 'America/New_York')`,
		`INSERT INTO seasons (id, account_id, name) VALUES ('season-1', 'acct-1', '2026 Spring')`,
		`INSERT INTO league_seasons (id, season_id, league_id, league_name) VALUES ('ls-1', 'season-1', 'league-1', 'Recreational')`,
		`INSERT INTO team_seasons (id, season_id, team_id, name, league_season_id) VALUES
			('ts-1', 'season-1', 'team-1', 'Hawks', 'ls-1'),
			('ts-2', 'season-1', 'team-2', 'Cyclones', 'ls-1')`,
		`INSERT INTO fields (id, account_id, name, has_lights, max_parallel_games) VALUES ('field-1', 'acct-1', 'Riverside', 1, 1)`,
		`INSERT INTO umpires (id, account_id, name) VALUES ('ump-1', 'acct-1', 'Angela Ruiz')`,
		`INSERT INTO field_availability_rules
			(id, season_id, field_id, start_date, end_date, days_of_week_mask, start_time_local, end_time_local, start_increment_minutes, enabled)
			VALUES ('rule-1', 'season-1', 'field-1', '2026-05-01', '2026-05-31', 127, '18:00', '21:00', 60, 1)`,
		`INSERT INTO games (id, account_id, season_id, league_season_id, home_team_season_id, visitor_team_season_id)
			VALUES ('game-1', 'acct-1', 'season-1', 'ls-1', 'ts-1', 'ts-2')`,
	}
	for _, stmt := range stmts {
		_, err := db.Exec(stmt)
		require.NoError(t, err)
	}
}

func TestHealthCheckHandler(t *testing.T) {
	server, _, _, _, teardown := setupTestServer(t)
	defer teardown()

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rr := httptest.NewRecorder()
	server.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "OK!", rr.Body.String())
}

func TestPreviewHandler(t *testing.T) {
	server, db, _, _, teardown := setupTestServer(t)
	defer teardown()
	seedSchedulingData(t, db)

	t.Run("returns the assembled preview", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/schedule/preview?accountId=acct-1&seasonId=season-1", nil)
		rr := httptest.NewRecorder()
		server.ServeHTTP(rr, req)

		require.Equal(t, http.StatusOK, rr.Code)
		var preview schedule.ProblemSpecPreview
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &preview))
		assert.Equal(t, "2026-05-01", preview.Season.StartDate)
		assert.Len(t, preview.Teams, 2)
		assert.Len(t, preview.Games, 1)
		assert.NotEmpty(t, preview.Slots)
	})

	t.Run("missing params", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/schedule/preview?accountId=acct-1", nil)
		rr := httptest.NewRecorder()
		server.ServeHTTP(rr, req)
		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})

	t.Run("unknown account maps to 404", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/schedule/preview?accountId=acct-99&seasonId=season-1", nil)
		rr := httptest.NewRecorder()
		server.ServeHTTP(rr, req)
		assert.Equal(t, http.StatusNotFound, rr.Code)
	})
}

func TestProblemSpecHandler(t *testing.T) {
	server, db, _, _, teardown := setupTestServer(t)
	defer teardown()
	seedSchedulingData(t, db)

	t.Run("builds the solver spec", func(t *testing.T) {
		body, _ := json.Marshal(map[string]any{
			"accountId": "acct-1",
			"seasonId":  "season-1",
			"constraints": map[string]any{
				"hard": map[string]any{"requireLightsAfter": map[string]any{"startHourLocal": 18}},
			},
		})
		req := httptest.NewRequest(http.MethodPost, "/schedule/problem-spec", bytes.NewReader(body))
		rr := httptest.NewRecorder()
		server.ServeHTTP(rr, req)

		require.Equal(t, http.StatusOK, rr.Code)
		var spec schedule.ProblemSpec
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &spec))
		require.Len(t, spec.Games, 1)
		require.NotNil(t, spec.Constraints)
		assert.Equal(t, "America/New_York", spec.Constraints.Hard.RequireLightsAfter.TimeZone)
	})

	t.Run("rejects GET", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/schedule/problem-spec", nil)
		rr := httptest.NewRecorder()
		server.ServeHTTP(rr, req)
		assert.Equal(t, http.StatusMethodNotAllowed, rr.Code)
	})

	t.Run("filtering away every game maps to 400", func(t *testing.T) {
		body, _ := json.Marshal(map[string]any{
			"accountId": "acct-1",
			"seasonId":  "season-1",
			"gameIds":   []string{"game-99"},
		})
		req := httptest.NewRequest(http.MethodPost, "/schedule/problem-spec", bytes.NewReader(body))
		rr := httptest.NewRecorder()
		server.ServeHTTP(rr, req)
		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})
}

func TestApplyHandler(t *testing.T) {
	applyBody := func(runID string) []byte {
		body, _ := json.Marshal(map[string]any{
			"accountId": "acct-1",
			"runId":     runID,
			"assignments": []map[string]any{
				{
					"gameId":    "game-1",
					"fieldId":   "field-1",
					"startTime": "2026-05-02T18:00:00Z",
					"umpireIds": []string{"ump-1"},
				},
			},
			"constraints": map[string]any{
				"hard": map[string]any{"noTeamOverlap": true, "noFieldOverlap": true},
			},
		})
		return body
	}

	t.Run("applies and publishes on the configured topic", func(t *testing.T) {
		server, db, mockNotifier, mockPubsub, teardown := setupTestServer(t)
		defer teardown()
		seedSchedulingData(t, db)

		req := httptest.NewRequest(http.MethodPost, "/schedule/apply", bytes.NewReader(applyBody("run-1")))
		rr := httptest.NewRecorder()
		server.ServeHTTP(rr, req)

		require.Equal(t, http.StatusOK, rr.Code)
		var result schedule.ApplyResult
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &result))
		assert.Equal(t, schedule.StatusApplied, result.Status)
		assert.Equal(t, []string{"game-1"}, result.Applied)

		// The assignment is durable.
		var startTime int64
		err := db.QueryRow(`SELECT start_time FROM games WHERE id = 'game-1'`).Scan(&startTime)
		require.NoError(t, err)
		assert.Equal(t, time.Date(2026, 5, 2, 18, 0, 0, 0, time.UTC).Unix(), startTime)

		require.Len(t, mockPubsub.SendMessageCalls, 1)
		assert.Equal(t, "apply-events", mockPubsub.SendMessageCalls[0].Topic)
		// The summary rides the published event, not the request path.
		assert.Empty(t, mockNotifier.SendApplySummaryCalls)
	})

	t.Run("dry run validates without persisting or publishing", func(t *testing.T) {
		server, db, mockNotifier, mockPubsub, teardown := setupTestServer(t)
		defer teardown()
		seedSchedulingData(t, db)

		req := httptest.NewRequest(http.MethodPost, "/schedule/apply?dry_run=true", bytes.NewReader(applyBody("run-2")))
		rr := httptest.NewRecorder()
		server.ServeHTTP(rr, req)

		require.Equal(t, http.StatusOK, rr.Code)
		var result schedule.ApplyResult
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &result))
		assert.Equal(t, schedule.StatusApplied, result.Status)

		var startTime sql.NullInt64
		err := db.QueryRow(`SELECT start_time FROM games WHERE id = 'game-1'`).Scan(&startTime)
		require.NoError(t, err)
		assert.False(t, startTime.Valid)

		require.Len(t, mockNotifier.SendApplySummaryCalls, 1)
		assert.True(t, mockNotifier.SendApplySummaryCalls[0].DryRun)
		assert.Empty(t, mockPubsub.SendMessageCalls)
	})

	t.Run("missing accountId", func(t *testing.T) {
		server, _, _, _, teardown := setupTestServer(t)
		defer teardown()

		req := httptest.NewRequest(http.MethodPost, "/schedule/apply", bytes.NewReader([]byte(`{"assignments":[]}`)))
		rr := httptest.NewRecorder()
		server.ServeHTTP(rr, req)
		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})
}

func TestScheduleAppliedHandler(t *testing.T) {
	pushEnvelope := func(t *testing.T, result schedule.ApplyResult) []byte {
		t.Helper()
		payload, err := msgpack.Marshal(result)
		require.NoError(t, err)
		body, err := json.Marshal(map[string]any{
			"subscription": "projects/test-project/subscriptions/schedule-applied",
			"message": map[string]any{
				"data": base64.StdEncoding.EncodeToString(payload),
			},
		})
		require.NoError(t, err)
		return body
	}

	t.Run("decodes the event and sends the summary", func(t *testing.T) {
		server, _, mockNotifier, mockPubsub, teardown := setupTestServer(t)
		defer teardown()
		mockPubsub.ProcessMessageFunc = func(data []byte, returnValue any) error {
			return msgpack.Unmarshal(data, returnValue)
		}

		result := schedule.ApplyResult{
			RunID:   "run-1",
			Status:  schedule.StatusPartial,
			Applied: []string{"game-1"},
			Skipped: []schedule.SkipRecord{{GameID: "game-2", Reason: "Game not found"}},
		}
		req := httptest.NewRequest(http.MethodPost, "/pubsub/schedule-applied", bytes.NewReader(pushEnvelope(t, result)))
		rr := httptest.NewRecorder()
		server.ServeHTTP(rr, req)

		require.Equal(t, http.StatusOK, rr.Code)
		require.Len(t, mockNotifier.SendApplySummaryCalls, 1)
		sent := mockNotifier.SendApplySummaryCalls[0]
		assert.Equal(t, "run-1", sent.Result.RunID)
		assert.Equal(t, schedule.StatusPartial, sent.Result.Status)
		assert.False(t, sent.DryRun)
	})

	t.Run("invalid wrapper JSON", func(t *testing.T) {
		server, _, _, _, teardown := setupTestServer(t)
		defer teardown()

		req := httptest.NewRequest(http.MethodPost, "/pubsub/schedule-applied", bytes.NewReader([]byte("not json")))
		rr := httptest.NewRecorder()
		server.ServeHTTP(rr, req)
		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})

	t.Run("invalid base64 payload", func(t *testing.T) {
		server, _, _, _, teardown := setupTestServer(t)
		defer teardown()

		body := []byte(`{"subscription":"s","message":{"data":"%%%"}}`)
		req := httptest.NewRequest(http.MethodPost, "/pubsub/schedule-applied", bytes.NewReader(body))
		rr := httptest.NewRecorder()
		server.ServeHTTP(rr, req)
		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})
}

func TestRulesHandler(t *testing.T) {
	server, db, _, _, teardown := setupTestServer(t)
	defer teardown()
	seedSchedulingData(t, db)

	req := httptest.NewRequest(http.MethodGet, "/schedule/rules?seasonId=season-1", nil)
	rr := httptest.NewRecorder()
	server.ServeHTTP(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)
	var rules []league.AvailabilityRule
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &rules))
	require.Len(t, rules, 1)
	assert.Equal(t, "rule-1", rules[0].ID)
}
