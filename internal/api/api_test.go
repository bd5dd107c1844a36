package api_test

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"zerowaste/internal/api"
	"zerowaste/internal/auth"
	"zerowaste/internal/calendar"
	"zerowaste/internal/catalog"
	"zerowaste/internal/config"
	"zerowaste/internal/database"
	"zerowaste/internal/store"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gofiber/fiber/v2"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// A Thursday.
var today = calendar.NewDate(2025, time.November, 20)

func testConfig() config.Config {
	return config.Config{
		JWTSecret:           strings.Repeat("k", 32),
		JWTRefreshSecret:    strings.Repeat("r", 32),
		AccessTokenMinutes:  15,
		RefreshTokenDays:    7,
		RememberRefreshDays: 30,
		AllowedOrigins:      "http://localhost:5173",
	}
}

func newApp(t *testing.T, cfg config.Config, s *store.Store) *fiber.App {
	t.Helper()
	srv := api.NewServer(cfg, s, catalog.Default(), calendar.FixedClock{Day: today})
	return api.NewApp(srv)
}

func setupTestApp(t *testing.T) *fiber.App {
	t.Helper()
	db, err := database.Initialize(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return newApp(t, testConfig(), store.New(db))
}

type call struct {
	method  string
	path    string
	body    any
	token   string
	cookies []*http.Cookie
}

func do(t *testing.T, app *fiber.App, c call) (*http.Response, []byte) {
	t.Helper()
	var r io.Reader
	if c.body != nil {
		b, err := json.Marshal(c.body)
		require.NoError(t, err)
		r = bytes.NewReader(b)
	}
	req := httptest.NewRequest(c.method, c.path, r)
	if c.body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}
	for _, ck := range c.cookies {
		req.AddCookie(ck)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp, body
}

func decode[T any](t *testing.T, body []byte) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(body, &v), string(body))
	return v
}

type authResp struct {
	Token string `json:"token"`
	User  struct {
		ID           int    `json:"id"`
		Email        string `json:"email"`
		Name         string `json:"name"`
		ProfileColor string `json:"profile_color"`
		Bio          string `json:"bio"`
	} `json:"user"`
}

func register(t *testing.T, app *fiber.App, name string) authResp {
	t.Helper()
	resp, body := do(t, app, call{method: "POST", path: "/api/auth/register", body: map[string]any{
		"email": name + "@example.com", "password": "password123", "name": name,
	}})
	require.Equal(t, fiber.StatusCreated, resp.StatusCode, string(body))
	return decode[authResp](t, body)
}

func refreshCookie(resp *http.Response) *http.Cookie {
	for _, c := range resp.Cookies() {
		if c.Name == "refresh_token" {
			return c
		}
	}
	return nil
}

func TestRegisterLoginRefreshLogout(t *testing.T) {
	app := setupTestApp(t)

	reg := register(t, app, "minji")
	assert.NotEmpty(t, reg.Token)
	assert.Equal(t, "minji", reg.User.Name)
	assert.Equal(t, "bg-green-300", reg.User.ProfileColor)
	assert.Equal(t, "친환경 실천 중!", reg.User.Bio)

	resp, _ := do(t, app, call{method: "POST", path: "/api/auth/register", body: map[string]any{
		"email": "minji@example.com", "password": "x", "name": "again",
	}})
	assert.Equal(t, fiber.StatusConflict, resp.StatusCode)

	resp, _ = do(t, app, call{method: "POST", path: "/api/auth/login", body: map[string]any{
		"email": "minji@example.com", "password": "wrong",
	}})
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)

	resp, body := do(t, app, call{method: "POST", path: "/api/auth/login", body: map[string]any{
		"email": "minji@example.com", "password": "password123",
	}})
	require.Equal(t, fiber.StatusOK, resp.StatusCode, string(body))
	login := decode[authResp](t, body)
	cookie := refreshCookie(resp)
	require.NotNil(t, cookie)
	assert.True(t, cookie.HttpOnly)

	resp, body = do(t, app, call{method: "GET", path: "/api/users/me", token: login.Token})
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, "minji@example.com", decode[map[string]any](t, body)["email"])

	resp, body = do(t, app, call{method: "POST", path: "/api/auth/refresh", cookies: []*http.Cookie{cookie}})
	require.Equal(t, fiber.StatusOK, resp.StatusCode, string(body))
	assert.NotEmpty(t, decode[authResp](t, body).Token)
	rotated := refreshCookie(resp)
	require.NotNil(t, rotated)
	assert.NotEqual(t, cookie.Value, rotated.Value)

	resp, _ = do(t, app, call{method: "POST", path: "/api/auth/refresh", cookies: []*http.Cookie{cookie}})
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode, "rotated token is revoked")

	resp, _ = do(t, app, call{method: "POST", path: "/api/auth/logout", cookies: []*http.Cookie{rotated}})
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	resp, _ = do(t, app, call{method: "POST", path: "/api/auth/refresh", cookies: []*http.Cookie{rotated}})
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestProtectedRoutesNeedToken(t *testing.T) {
	app := setupTestApp(t)

	resp, body := do(t, app, call{method: "GET", path: "/api/users/me"})
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, "Missing authorization header", decode[map[string]string](t, body)["error"])

	resp, _ = do(t, app, call{method: "GET", path: "/api/days/week-summary", token: "garbage"})
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestUpdateProfile(t *testing.T) {
	app := setupTestApp(t)
	u := register(t, app, "jun")

	resp, body := do(t, app, call{method: "PUT", path: "/api/users/me", token: u.Token, body: map[string]any{
		"bio": "텀블러 챌린지 중",
	}})
	require.Equal(t, fiber.StatusOK, resp.StatusCode, string(body))
	got := decode[map[string]any](t, body)
	assert.Equal(t, "텀블러 챌린지 중", got["bio"])
	assert.Equal(t, "jun", got["name"])

	resp, _ = do(t, app, call{method: "PUT", path: "/api/users/me", token: u.Token, body: map[string]any{"name": " "}})
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestPublicEndpoints(t *testing.T) {
	app := setupTestApp(t)

	resp, body := do(t, app, call{method: "GET", path: "/health"})
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.JSONEq(t, `{"status":"ok"}`, string(body))

	resp, body = do(t, app, call{method: "GET", path: "/api/config"})
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.JSONEq(t, `{"disableRegistration":false}`, string(body))

	resp, body = do(t, app, call{method: "GET", path: "/api/missions/catalog"})
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	entries := decode[[]map[string]any](t, body)
	require.NotEmpty(t, entries)
	assert.Equal(t, "텀블러 사용하기", entries[0]["name"])

	resp, _ = do(t, app, call{method: "GET", path: "/api/push/vapid-public-key"})
	assert.Equal(t, fiber.StatusServiceUnavailable, resp.StatusCode)
}

func TestServerDate(t *testing.T) {
	app := setupTestApp(t)
	u := register(t, app, "a")
	resp, body := do(t, app, call{method: "GET", path: "/api/server/date", token: u.Token})
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, `"2025-11-20"`, string(body))
}

func TestDisableRegistration(t *testing.T) {
	db, err := database.Initialize(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	cfg := testConfig()
	cfg.DisableRegistration = true
	app := newApp(t, cfg, store.New(db))

	resp, _ := do(t, app, call{method: "POST", path: "/api/auth/register", body: map[string]any{
		"email": "a@example.com", "password": "password123", "name": "a",
	}})
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)

	_, body := do(t, app, call{method: "GET", path: "/api/config"})
	assert.JSONEq(t, `{"disableRegistration":true}`, string(body))
}

type entry struct {
	ID         *int   `json:"id"`
	SubMission string `json:"sub_mission"`
	Completed  bool   `json:"completed"`
	Source     string `json:"source"`
	Mission    struct {
		ID       int    `json:"id"`
		Name     string `json:"name"`
		Category string `json:"category"`
	} `json:"mission"`
}

func addMission(t *testing.T, app *fiber.App, token, date, label string, week bool) (*http.Response, []byte) {
	t.Helper()
	return do(t, app, call{method: "POST", path: "/api/days/" + date + "/missions", token: token, body: map[string]any{
		"mission_id": 1, "submission": label, "apply_to_week": week,
	}})
}

func TestDayMissions(t *testing.T) {
	app := setupTestApp(t)
	u := register(t, app, "a")

	resp, body := addMission(t, app, u.Token, "2025-11-20", "텀블러 사용하기", false)
	require.Equal(t, fiber.StatusCreated, resp.StatusCode, string(body))
	first := decode[entry](t, body)
	require.NotNil(t, first.ID)
	assert.Equal(t, "explicit", first.Source)
	assert.Equal(t, "일회용품 줄이기", first.Mission.Category)
	assert.Equal(t, "텀블러 사용하기", first.Mission.Name)

	resp, _ = addMission(t, app, u.Token, "2025-11-20", "텀블러 사용하기", false)
	assert.Equal(t, fiber.StatusConflict, resp.StatusCode, "duplicate label")

	for _, label := range []string{"장바구니 챙기기", "일회용 젓가락 안 받기"} {
		resp, body = addMission(t, app, u.Token, "2025-11-20", label, false)
		require.Equal(t, fiber.StatusCreated, resp.StatusCode, string(body))
	}
	resp, _ = addMission(t, app, u.Token, "2025-11-20", "물티슈 대신 손수건 사용하기", false)
	assert.Equal(t, fiber.StatusConflict, resp.StatusCode, "fourth mission of the day")

	resp, _ = addMission(t, app, u.Token, "2025-11-21", "텀블러 사용하기", false)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode, "only today")
	resp, _ = addMission(t, app, u.Token, "2025-11-20", "없는 미션", false)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode, "label outside the catalog")
	resp, _ = addMission(t, app, u.Token, "not-a-date", "텀블러 사용하기", false)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

	resp, body = do(t, app, call{method: "GET", path: "/api/days/2025-11-20/missions", token: u.Token})
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Len(t, decode[[]entry](t, body), 3)

	id := *first.ID
	resp, body = do(t, app, call{method: "PATCH", path: fmt.Sprintf("/api/days/2025-11-20/missions/%d/complete", id),
		token: u.Token, body: map[string]any{"completed": true}})
	require.Equal(t, fiber.StatusOK, resp.StatusCode, string(body))
	assert.True(t, decode[entry](t, body).Completed)

	resp, _ = do(t, app, call{method: "PATCH", path: fmt.Sprintf("/api/days/2025-11-19/missions/%d/complete", id),
		token: u.Token, body: map[string]any{"completed": true}})
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode, "record is scoped by date")

	other := register(t, app, "b")
	resp, _ = do(t, app, call{method: "DELETE", path: fmt.Sprintf("/api/days/2025-11-20/missions/%d", id), token: other.Token})
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode, "record is scoped by owner")

	resp, _ = do(t, app, call{method: "DELETE", path: fmt.Sprintf("/api/days/2025-11-20/missions/%d", id), token: u.Token})
	assert.Equal(t, fiber.StatusNoContent, resp.StatusCode)
	resp, _ = do(t, app, call{method: "DELETE", path: fmt.Sprintf("/api/days/2025-11-20/missions/%d", id), token: u.Token})
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)

	resp, _ = do(t, app, call{method: "DELETE", path: "/api/days/2025-11-20/missions/abc", token: u.Token})
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode, "non-numeric id matches no route")
}

func TestBatchAdd(t *testing.T) {
	app := setupTestApp(t)
	u := register(t, app, "a")

	for _, label := range []string{"텀블러 사용하기", "장바구니 챙기기", "일회용 젓가락 안 받기"} {
		resp, _ := addMission(t, app, u.Token, "2025-11-20", label, false)
		require.Equal(t, fiber.StatusCreated, resp.StatusCode)
	}

	resp, body := addMission(t, app, u.Token, "2025-11-20", "물티슈 대신 손수건 사용하기", true)
	require.Equal(t, fiber.StatusCreated, resp.StatusCode, string(body))
	res := decode[struct {
		Created        []string `json:"created"`
		Skipped        []string `json:"skipped"`
		SkippedDetails []struct {
			Date   string `json:"date"`
			Reason string `json:"reason"`
		} `json:"skipped_details"`
		Missions []entry `json:"missions"`
	}](t, body)
	assert.Equal(t, []string{"2025-11-21", "2025-11-22", "2025-11-23"}, res.Created)
	assert.Equal(t, []string{"2025-11-20"}, res.Skipped)
	require.Len(t, res.SkippedDetails, 1)
	assert.Equal(t, "daily_limit", res.SkippedDetails[0].Reason)
	assert.Len(t, res.Missions, 3)

	resp, _ = addMission(t, app, u.Token, "2025-11-10", "텀블러 사용하기", true)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode, "week already over")
}

func TestWeekSummaryIsLenient(t *testing.T) {
	app := setupTestApp(t)
	u := register(t, app, "a")
	resp, _ := addMission(t, app, u.Token, "2025-11-20", "텀블러 사용하기", false)
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)

	for _, q := range []string{"", "?date=", "?date=undefined", "?date=not-a-date"} {
		resp, body := do(t, app, call{method: "GET", path: "/api/days/week-summary" + q, token: u.Token})
		require.Equal(t, fiber.StatusOK, resp.StatusCode, q)
		days := decode[[]struct {
			Date  string `json:"date"`
			Total int    `json:"total_missions"`
		}](t, body)
		require.Len(t, days, 7, q)
		assert.Equal(t, "2025-11-17", days[0].Date, q)
		assert.Equal(t, "2025-11-23", days[6].Date, q)
		assert.Equal(t, 1, days[3].Total, q)
	}

	resp, body := do(t, app, call{method: "GET", path: "/api/days/week-summary?date=2025-11-10", token: u.Token})
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	days := decode[[]map[string]any](t, body)
	assert.Equal(t, "2025-11-10", days[0]["date"])
}

func TestWeekSummaryStoreFailure(t *testing.T) {
	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	mock.ExpectQuery("FROM day_missions").WillReturnError(errors.New("disk I/O error"))

	cfg := testConfig()
	app := newApp(t, cfg, store.New(sqlx.NewDb(mockDB, "sqlite3")))

	token, err := auth.NewManager(cfg).GenerateToken(1, "a@example.com")
	require.NoError(t, err)

	resp, body := do(t, app, call{method: "GET", path: "/api/days/week-summary", token: token})
	assert.Equal(t, fiber.StatusInternalServerError, resp.StatusCode)
	assert.Equal(t, "internal error", decode[map[string]string](t, body)["error"])
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRoutines(t *testing.T) {
	app := setupTestApp(t)
	u := register(t, app, "a")

	create := func(body map[string]any) (*http.Response, []byte) {
		return do(t, app, call{method: "POST", path: "/api/personal-routines", token: u.Token, body: body})
	}

	resp, body := create(map[string]any{"mission_id": 1, "submission": "장바구니 챙기기", "date": "2025-11-19"})
	require.Equal(t, fiber.StatusCreated, resp.StatusCode, string(body))
	routine := decode[map[string]any](t, body)
	assert.Equal(t, "2025-11-17", routine["week_start_date"])

	resp, _ = create(map[string]any{"mission_id": 1, "submission": "장바구니 챙기기", "date": "2025-11-19"})
	assert.Equal(t, fiber.StatusOK, resp.StatusCode, "same routine again is returned as is")

	resp, _ = create(map[string]any{"mission_id": 1, "date": "2025-11-19", "week_start_date": "2025-11-24"})
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

	resp, body = do(t, app, call{method: "GET", path: "/api/days/2025-11-18/missions", token: u.Token})
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Empty(t, decode[[]entry](t, body), "not shown before its start date")

	resp, body = do(t, app, call{method: "GET", path: "/api/days/2025-11-22/missions", token: u.Token})
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	view := decode[[]entry](t, body)
	require.Len(t, view, 1)
	assert.Equal(t, "routine", view[0].Source)
	assert.Nil(t, view[0].ID)

	resp, body = do(t, app, call{method: "GET", path: "/api/personal-routines?week_start_date=2025-11-19", token: u.Token})
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Len(t, decode[[]map[string]any](t, body), 1, "non-Monday is normalized")

	resp, body = do(t, app, call{method: "GET", path: "/api/personal-routines/week/2025-11-24", token: u.Token})
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Empty(t, decode[[]map[string]any](t, body))

	id := int(routine["id"].(float64))
	resp, _ = do(t, app, call{method: "DELETE", path: fmt.Sprintf("/api/personal-routines/%d", id), token: u.Token})
	assert.Equal(t, fiber.StatusNoContent, resp.StatusCode)
	resp, _ = do(t, app, call{method: "DELETE", path: fmt.Sprintf("/api/personal-routines/%d", id), token: u.Token})
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}

func TestGroupsInvitesFriendsAndRanking(t *testing.T) {
	app := setupTestApp(t)
	a := register(t, app, "a")
	b := register(t, app, "b")

	resp, body := do(t, app, call{method: "POST", path: "/api/group-missions", token: a.Token, body: map[string]any{"name": "텀블러 모임"}})
	require.Equal(t, fiber.StatusCreated, resp.StatusCode, string(body))
	group := decode[map[string]any](t, body)
	gid := int(group["id"].(float64))

	resp, _ = do(t, app, call{method: "POST", path: fmt.Sprintf("/api/group-missions/%d/join", gid), token: a.Token})
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	resp, _ = do(t, app, call{method: "POST", path: fmt.Sprintf("/api/group-missions/%d/join", gid), token: a.Token})
	assert.Equal(t, fiber.StatusConflict, resp.StatusCode)

	resp, _ = do(t, app, call{method: "POST", path: "/api/friends", token: a.Token, body: map[string]any{"friend_id": b.User.ID}})
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)
	resp, body = do(t, app, call{method: "GET", path: "/api/friends", token: b.Token})
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	friends := decode[[]map[string]any](t, body)
	require.Len(t, friends, 1)
	assert.Equal(t, "a", friends[0]["name"])
	assert.Contains(t, friends[0], "activeDays")

	resp, body = do(t, app, call{method: "POST", path: fmt.Sprintf("/api/group-missions/%d/invite", gid), token: a.Token,
		body: map[string]any{"friend_ids": []int{b.User.ID}}})
	require.Equal(t, fiber.StatusCreated, resp.StatusCode, string(body))

	resp, body = do(t, app, call{method: "GET", path: "/api/invites/received", token: b.Token})
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	invites := decode[[]map[string]any](t, body)
	require.Len(t, invites, 1)
	inviteID := int(invites[0]["id"].(float64))

	resp, body = do(t, app, call{method: "POST", path: fmt.Sprintf("/api/invites/%d/accept", inviteID), token: b.Token})
	require.Equal(t, fiber.StatusOK, resp.StatusCode, string(body))
	assert.Equal(t, float64(2), decode[map[string]any](t, body)["member_count"])

	for _, u := range []authResp{a, b} {
		resp, body = do(t, app, call{method: "POST", path: fmt.Sprintf("/api/group-missions/%d/check", gid), token: u.Token,
			body: map[string]any{"date": "2025-11-20", "completed": true}})
		require.Equal(t, fiber.StatusOK, resp.StatusCode, string(body))
	}

	resp, body = do(t, app, call{method: "GET", path: "/api/group-missions/my?date=2025-11-20", token: b.Token})
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	mine := decode[[]map[string]any](t, body)
	require.Len(t, mine, 1)
	assert.Equal(t, true, mine[0]["checked"])
	assert.Equal(t, float64(4), mine[0]["total_score"])

	resp, body = do(t, app, call{method: "GET", path: "/api/ranking/personal", token: a.Token})
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	personal := decode[[]map[string]any](t, body)
	require.Len(t, personal, 2)
	assert.Equal(t, float64(2), personal[0]["score"], "2-member group is not full")

	resp, body = do(t, app, call{method: "GET", path: "/api/ranking/group", token: a.Token})
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	require.Len(t, decode[[]map[string]any](t, body), 1)

	resp, body = do(t, app, call{method: "GET", path: "/api/ranking/my", token: b.Token})
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	my := decode[map[string]any](t, body)
	assert.Contains(t, my, "personal_rank")
	assert.Len(t, my["group_ranks"], 1)

	resp, _ = do(t, app, call{method: "DELETE", path: fmt.Sprintf("/api/group-missions/%d/leave", gid), token: b.Token})
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	resp, _ = do(t, app, call{method: "POST", path: fmt.Sprintf("/api/group-missions/%d/check", gid), token: b.Token,
		body: map[string]any{"date": "2025-11-20", "completed": true}})
	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)

	resp, _ = do(t, app, call{method: "GET", path: "/api/group-missions/999", token: a.Token})
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
	resp, _ = do(t, app, call{method: "DELETE", path: fmt.Sprintf("/api/friends/%d", b.User.ID), token: a.Token})
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}

func TestPushSubscription(t *testing.T) {
	app := setupTestApp(t)
	u := register(t, app, "a")

	resp, _ := do(t, app, call{method: "POST", path: "/api/push/subscribe", token: u.Token, body: map[string]any{"endpoint": "https://push/x"}})
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

	sub := map[string]any{"endpoint": "https://push/x", "p256dh": "key", "auth": "secret"}
	resp, _ = do(t, app, call{method: "POST", path: "/api/push/subscribe", token: u.Token, body: sub})
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	resp, _ = do(t, app, call{method: "POST", path: "/api/push/subscribe", token: u.Token, body: sub})
	assert.Equal(t, fiber.StatusOK, resp.StatusCode, "subscribing twice updates")

	resp, _ = do(t, app, call{method: "DELETE", path: "/api/push/unsubscribe", token: u.Token, body: map[string]any{"endpoint": "https://push/x"}})
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}
