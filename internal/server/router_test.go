package server

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/logvault/logvault/internal/config"
	"github.com/logvault/logvault/internal/model"
	"github.com/logvault/logvault/internal/repository"
	"github.com/logvault/logvault/internal/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testServer struct {
	router *gin.Engine
	store  *repository.Store
}

func newTestServer(t *testing.T, now service.Clock) *testServer {
	t.Helper()
	gin.SetMode(gin.TestMode)

	cfg := config.Default()
	store := repository.NewMemoryStore()
	deps := Deps{
		Logs:          service.NewLogService(store.Logs, cfg.Service.Source, cfg.Database.Timeout(), now),
		Analytics:     service.NewAnalyticsService(store.Analytics, cfg.Database.Timeout(), now),
		Authenticator: service.NewAuthenticator(cfg.Auth.Username, cfg.Auth.PasswordHash),
	}
	return &testServer{router: NewRouter(cfg, deps), store: store}
}

func (s *testServer) do(method, target, body string, auth bool) *httptest.ResponseRecorder {
	var reader *bytes.Reader
	if body != "" {
		reader = bytes.NewReader([]byte(body))
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, target, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if auth {
		req.SetBasicAuth("admin", "password")
	}
	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, req)
	return rec
}

func (s *testServer) allLogs(t *testing.T) []*model.ErrorLog {
	t.Helper()
	logs, err := s.store.Logs.List(context.Background(), 0, 1000)
	require.NoError(t, err)
	return logs
}

func (s *testServer) allAnalytics(t *testing.T) []*model.AnalyticsLog {
	t.Helper()
	entries, err := s.store.Analytics.List(context.Background(), 0, 1000)
	require.NoError(t, err)
	return entries
}

func TestSubmitThenReadBack(t *testing.T) {
	s := newTestServer(t, nil)

	rec := s.do(http.MethodPost, "/log", `{"project_source":"svc-a","error_message":"boom"}`, true)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var resp model.SubmitResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "success", resp.Status)
	assert.Regexp(t, `^[0-9a-f]{24}$`, resp.ID)

	rec = s.do(http.MethodGet, "/logs?limit=1", "", false)
	require.Equal(t, http.StatusOK, rec.Code)
	var logs []map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &logs))
	require.Len(t, logs, 1)
	assert.Equal(t, resp.ID, logs[0]["id"])
	assert.Equal(t, "svc-a", logs[0]["project_source"])
	assert.Equal(t, "boom", logs[0]["error_message"])
	assert.Nil(t, logs[0]["additional_info"])
}

func TestSubmitKeepsServerCreatedAt(t *testing.T) {
	s := newTestServer(t, nil)
	before := time.Now().UTC()

	body := `{"project_source":"svc-a","error_message":"boom","timestamp":"2001-02-03T04:05:06+05:30","additional_info":{"user":"42"}}`
	rec := s.do(http.MethodPost, "/log", body, true)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	after := time.Now().UTC()

	logs := s.allLogs(t)
	require.Len(t, logs, 1)
	assert.False(t, logs[0].CreatedAt.Before(before))
	assert.False(t, logs[0].CreatedAt.After(after))
	assert.True(t, logs[0].Timestamp.Equal(time.Date(2001, 2, 2, 22, 35, 6, 0, time.UTC)))
	assert.Equal(t, map[string]any{"user": "42"}, logs[0].AdditionalInfo)
}

func TestSubmitAcceptsTimestampWithoutOffset(t *testing.T) {
	s := newTestServer(t, nil)

	body := `{"project_source":"svc-a","error_message":"boom","timestamp":"2026-10-15T10:00:00.123456"}`
	rec := s.do(http.MethodPost, "/log", body, true)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	logs := s.allLogs(t)
	require.Len(t, logs, 1)
	assert.True(t, logs[0].Timestamp.Equal(time.Date(2026, 10, 15, 10, 0, 0, 123456000, time.UTC)))
}

func TestSubmitRejectsBadCredentials(t *testing.T) {
	s := newTestServer(t, nil)

	req := httptest.NewRequest(http.MethodPost, "/log", strings.NewReader(`{"project_source":"svc-a","error_message":"boom"}`))
	req.Header.Set("Content-Type", "application/json")
	req.SetBasicAuth("wrong_user", "wrong_pass")
	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.NotEmpty(t, rec.Header().Get("WWW-Authenticate"))
	assert.Empty(t, s.allLogs(t))

	rec = s.do(http.MethodPost, "/log", `{"project_source":"svc-a","error_message":"boom"}`, false)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Empty(t, s.allLogs(t))
}

func TestSubmitValidation(t *testing.T) {
	cases := []struct {
		name      string
		body      string
		wantField string
	}{
		{name: "project_source too long", body: `{"project_source":"` + strings.Repeat("a", 101) + `","error_message":"boom"}`, wantField: "project_source"},
		{name: "project_source missing", body: `{"error_message":"boom"}`, wantField: "project_source"},
		{name: "error_message missing", body: `{"project_source":"svc-a"}`, wantField: "error_message"},
		{name: "malformed json", body: `{"project_source":`},
		{name: "bad timestamp", body: `{"project_source":"svc-a","error_message":"boom","timestamp":"yesterday"}`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			s := newTestServer(t, nil)
			rec := s.do(http.MethodPost, "/log", tc.body, true)

			require.Equal(t, http.StatusBadRequest, rec.Code, rec.Body.String())
			assert.Contains(t, rec.Body.String(), "INVALID_REQUEST")
			if tc.wantField != "" {
				assert.Contains(t, rec.Body.String(), `"field":"`+tc.wantField+`"`)
			}
			assert.Empty(t, s.allLogs(t))
		})
	}
}

func TestProjectSourceAtLimitIsAccepted(t *testing.T) {
	s := newTestServer(t, nil)
	// 100 characters, more than 100 bytes.
	source := strings.Repeat("é", 100)
	rec := s.do(http.MethodPost, "/log", `{"project_source":"`+source+`","error_message":"boom"}`, true)
	assert.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
}

func TestListLogsPaging(t *testing.T) {
	s := newTestServer(t, nil)
	for i := 0; i < 7; i++ {
		rec := s.do(http.MethodPost, "/log", `{"project_source":"svc-a","error_message":"boom"}`, true)
		require.Equal(t, http.StatusOK, rec.Code)
	}

	rec := s.do(http.MethodGet, "/logs?skip=0&limit=5", "", false)
	require.Equal(t, http.StatusOK, rec.Code)
	var logs []model.ErrorLog
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &logs))
	require.Len(t, logs, 5)
	for i := 1; i < len(logs); i++ {
		assert.False(t, logs[i].CreatedAt.After(logs[i-1].CreatedAt))
	}

	rec = s.do(http.MethodGet, "/logs", "", false)
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &logs))
	assert.Len(t, logs, 7)

	rec = s.do(http.MethodGet, "/logs?limit=0", "", false)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `[]`, rec.Body.String())

	for _, bad := range []string{"/logs?limit=-1", "/logs?skip=-3", "/logs?limit=ten", "/analytics?skip=x"} {
		rec = s.do(http.MethodGet, bad, "", false)
		assert.Equal(t, http.StatusBadRequest, rec.Code, bad)
	}
}

func TestCurrentOnlyReturnsToday(t *testing.T) {
	now := time.Date(2026, 10, 15, 9, 0, 0, 0, time.UTC)
	current := now
	s := newTestServer(t, func() time.Time { return current })

	current = now.Add(-10 * time.Hour) // yesterday 23:00 UTC
	require.Equal(t, http.StatusOK, s.do(http.MethodPost, "/log", `{"project_source":"old","error_message":"x"}`, true).Code)
	current = time.Date(2026, 10, 15, 0, 0, 0, 0, time.UTC)
	require.Equal(t, http.StatusOK, s.do(http.MethodPost, "/log", `{"project_source":"midnight","error_message":"x"}`, true).Code)
	current = now
	require.Equal(t, http.StatusOK, s.do(http.MethodPost, "/log", `{"project_source":"new","error_message":"x"}`, true).Code)

	rec := s.do(http.MethodGet, "/current", "", false)
	require.Equal(t, http.StatusOK, rec.Code)
	var logs []model.ErrorLog
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &logs))
	require.Len(t, logs, 2)
	assert.Equal(t, "new", logs[0].ProjectSource)
	assert.Equal(t, "midnight", logs[1].ProjectSource)
	for _, l := range logs {
		assert.False(t, l.CreatedAt.Before(service.StartOfDay(now)))
	}
}

func TestEveryRequestProducesOneAnalyticsEntry(t *testing.T) {
	s := newTestServer(t, nil)

	s.do(http.MethodPost, "/log", `{"project_source":"svc-a","error_message":"boom"}`, true)
	s.do(http.MethodPost, "/log", `{"project_source":"svc-a","error_message":"boom"}`, false)
	s.do(http.MethodGet, "/logs?limit=3", "", false)
	s.do(http.MethodGet, "/nowhere", "", false)

	entries := s.allAnalytics(t)
	require.Len(t, entries, 4)

	byPathStatus := map[string]int{}
	for _, e := range entries {
		byPathStatus[e.Method+" "+e.Endpoint+" "+http.StatusText(e.ResponseStatus)]++
	}
	assert.Equal(t, map[string]int{
		"POST /log OK":           1,
		"POST /log Unauthorized": 1,
		"GET /logs OK":           1,
		"GET /nowhere Not Found": 1,
	}, byPathStatus)

	rec := s.do(http.MethodGet, "/analytics?limit=2", "", false)
	require.Equal(t, http.StatusOK, rec.Code)
	var listed []model.AnalyticsLog
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &listed))
	require.Len(t, listed, 2)
	assert.False(t, listed[0].Timestamp.Before(listed[1].Timestamp))

	// The failed submission is analytics only, never an error log.
	assert.Len(t, s.allLogs(t), 1)
}

func TestHealth(t *testing.T) {
	s := newTestServer(t, nil)
	rec := s.do(http.MethodGet, "/health", "", false)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok","service":"logvault"}`, rec.Body.String())
}
