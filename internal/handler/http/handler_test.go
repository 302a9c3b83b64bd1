// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MKhiriev/go-attendance-sync/internal/config"
	"github.com/MKhiriev/go-attendance-sync/internal/logger"
	"github.com/MKhiriev/go-attendance-sync/internal/mock"
	"github.com/MKhiriev/go-attendance-sync/internal/service"
	"github.com/MKhiriev/go-attendance-sync/internal/store"
	"github.com/MKhiriev/go-attendance-sync/internal/utils"
	"github.com/MKhiriev/go-attendance-sync/models"
)

const (
	testAdminKey    = "admin-secret"
	testAdminIssuer = "attendance-device"
)

type testMocks struct {
	appInfo    *mock.MockAppInfoService
	attendance *mock.MockAttendanceService
	engine     *mock.MockSyncEngine
	job        *mock.MockSyncJob
}

func newTestRouter(t *testing.T, adminKey string) (*chi.Mux, testMocks) {
	t.Helper()
	ctrl := gomock.NewController(t)

	m := testMocks{
		appInfo:    mock.NewMockAppInfoService(ctrl),
		attendance: mock.NewMockAttendanceService(ctrl),
		engine:     mock.NewMockSyncEngine(ctrl),
		job:        mock.NewMockSyncJob(ctrl),
	}
	services := &service.Services{
		AppInfoService:    m.appInfo,
		AttendanceService: m.attendance,
		SyncEngine:        m.engine,
		SyncJob:           m.job,
	}
	cfg := config.App{AdminTokenKey: adminKey, AdminTokenIssuer: testAdminIssuer}

	return NewHandler(services, cfg, logger.Nop()).Init(), m
}

func do(router http.Handler, method, target, body string, header ...string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	for i := 0; i+1 < len(header); i += 2 {
		req.Header.Set(header[i], header[i+1])
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func adminToken(t *testing.T, key, issuer string, d time.Duration) string {
	t.Helper()
	token, err := utils.GenerateJWTToken(issuer, "maintenance", d, key)
	require.NoError(t, err)
	return "Bearer " + token.SignedString
}

// ── version ──────────────────────────────────────────────────────────────────

func TestGetAppVersion(t *testing.T) {
	router, m := newTestRouter(t, "")
	m.appInfo.EXPECT().GetAppVersion(gomock.Any()).Return("v1.2.3")

	rec := do(router, http.MethodGet, "/api/version", "")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "v1.2.3", rec.Body.String())
	assert.Contains(t, rec.Header().Get("Content-Type"), "text/plain")
}

// ── scans ────────────────────────────────────────────────────────────────────

func TestHandleScan(t *testing.T) {
	router, m := newTestRouter(t, "")
	scannedAt := time.Date(2026, 3, 2, 5, 15, 0, 0, time.UTC)
	m.attendance.EXPECT().HandleScan(gomock.Any(), "EF 01").Return(models.ScanResult{
		UID:       "EF 01",
		Approved:  true,
		Entry:     "2026-03-02T05:15:00Z,EF 01",
		ScannedAt: scannedAt,
	}, nil)

	rec := do(router, http.MethodPost, "/api/scans", `{"uid":"EF 01"}`)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"uid":"EF 01","approved":true,"entry":"2026-03-02T05:15:00Z,EF 01","scanned_at":"2026-03-02T05:15:00Z"}`, rec.Body.String())
}

func TestHandleScan_Errors(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		serviceErr error
		wantStatus int
	}{
		{name: "invalid json", body: `{"uid":`, wantStatus: http.StatusBadRequest},
		{name: "invalid uid", body: `{"uid":""}`, serviceErr: service.ErrInvalidDataProvided, wantStatus: http.StatusBadRequest},
		{name: "storage failure", body: `{"uid":"AB"}`, serviceErr: fmt.Errorf("append activity: %w", errStorage), wantStatus: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router, m := newTestRouter(t, "")
			if tt.serviceErr != nil {
				m.attendance.EXPECT().HandleScan(gomock.Any(), gomock.Any()).Return(models.ScanResult{}, tt.serviceErr)
			}

			rec := do(router, http.MethodPost, "/api/scans", tt.body)

			assert.Equal(t, tt.wantStatus, rec.Code)
		})
	}
}

// ── registrations ────────────────────────────────────────────────────────────

func TestAddRegistration(t *testing.T) {
	tests := []struct {
		name       string
		serviceErr error
		wantStatus int
	}{
		{name: "created", wantStatus: http.StatusCreated},
		{name: "already registered", serviceErr: fmt.Errorf("%w: id 7", service.ErrAlreadyRegistered), wantStatus: http.StatusConflict},
		{name: "invalid", serviceErr: service.ErrInvalidDataProvided, wantStatus: http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router, m := newTestRouter(t, "")
			m.attendance.EXPECT().AddPendingRegistration(gomock.Any(), "7", "AB CD").Return(tt.serviceErr)

			rec := do(router, http.MethodPost, "/api/registrations", `{"id":"7","uid":"AB CD"}`)

			assert.Equal(t, tt.wantStatus, rec.Code)
			if tt.serviceErr == nil {
				assert.JSONEq(t, `{"id":"7","uid":"AB CD"}`, rec.Body.String())
			}
		})
	}
}

func TestAddRegistration_InvalidJSON(t *testing.T) {
	router, _ := newTestRouter(t, "")

	rec := do(router, http.MethodPost, "/api/registrations", `not json`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestRequestBody_SizeLimit(t *testing.T) {
	body := `{"id":"7","uid":"` + strings.Repeat("A", maxRequestBodySize) + `"}`

	for _, path := range []string{"/api/registrations", "/api/scans"} {
		t.Run(path, func(t *testing.T) {
			router, _ := newTestRouter(t, "")

			rec := do(router, http.MethodPost, path, body)

			assert.Equal(t, http.StatusRequestEntityTooLarge, rec.Code)
		})
	}
}

func TestGetRegistration(t *testing.T) {
	router, m := newTestRouter(t, "")
	m.attendance.EXPECT().IsRegistered(gomock.Any(), "7").Return(true, nil)
	m.attendance.EXPECT().IsRegistered(gomock.Any(), "8").Return(false, nil)

	rec := do(router, http.MethodGet, "/api/registrations/7", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"registered":true}`, rec.Body.String())

	rec = do(router, http.MethodGet, "/api/registrations/8", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"registered":false}`, rec.Body.String())
}

func TestGetApproval(t *testing.T) {
	router, m := newTestRouter(t, "")
	m.attendance.EXPECT().IsApproved(gomock.Any(), "EF01").Return(true, nil)

	rec := do(router, http.MethodGet, "/api/approvals/EF01", "")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"approved":true}`, rec.Body.String())
}

func TestGetApproval_StorageError(t *testing.T) {
	router, m := newTestRouter(t, "")
	m.attendance.EXPECT().IsApproved(gomock.Any(), "EF01").Return(false, errStorage)

	rec := do(router, http.MethodGet, "/api/approvals/EF01", "")

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

// ── sync ─────────────────────────────────────────────────────────────────────

func TestTriggerSync(t *testing.T) {
	tests := []struct {
		name      string
		running   bool
		exhausted []models.Dataset
		want      string
	}{
		{name: "idle", want: `{"running":false,"exhausted":[]}`},
		{name: "running", running: true, want: `{"running":true,"exhausted":[]}`},
		{
			name:      "exhausted datasets",
			exhausted: []models.Dataset{models.PendingList, models.ActivityLog},
			want:      `{"running":false,"exhausted":["pending_list","activity_log"]}`,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router, m := newTestRouter(t, "")
			m.engine.EXPECT().Running().Return(tt.running)
			m.engine.EXPECT().Exhausted().Return(tt.exhausted)
			m.job.EXPECT().Trigger()

			rec := do(router, http.MethodPost, "/api/sync", "")

			require.Equal(t, http.StatusAccepted, rec.Code)
			assert.JSONEq(t, tt.want, rec.Body.String())
		})
	}
}

// ── admin ────────────────────────────────────────────────────────────────────

func TestAdminRoutes_DisabledWithoutKey(t *testing.T) {
	router, _ := newTestRouter(t, "")

	rec := do(router, http.MethodPost, "/api/admin/wipe", "")

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestAdminRoutes_Unauthorized(t *testing.T) {
	tests := []struct {
		name   string
		header string
	}{
		{name: "no header"},
		{name: "wrong scheme", header: "Basic abc"},
		{name: "garbage token", header: "Bearer abc"},
		{name: "wrong key", header: adminToken(t, "other-key", testAdminIssuer, time.Hour)},
		{name: "wrong issuer", header: adminToken(t, testAdminKey, "someone-else", time.Hour)},
		{name: "expired", header: adminToken(t, testAdminKey, testAdminIssuer, -time.Minute)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router, _ := newTestRouter(t, testAdminKey)

			var header []string
			if tt.header != "" {
				header = []string{"Authorization", tt.header}
			}
			rec := do(router, http.MethodPost, "/api/admin/wipe", "", header...)

			assert.Equal(t, http.StatusUnauthorized, rec.Code)
		})
	}
}

func TestGetDataset(t *testing.T) {
	router, m := newTestRouter(t, testAdminKey)
	m.attendance.EXPECT().ReadDataset(gomock.Any(), models.AllowList).Return("1,A\n2,B\n", nil)

	rec := do(router, http.MethodGet, "/api/admin/datasets/allow_list", "",
		"Authorization", adminToken(t, testAdminKey, testAdminIssuer, time.Hour))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "1,A\n2,B\n", rec.Body.String())
}

func TestGetDataset_Unknown(t *testing.T) {
	router, _ := newTestRouter(t, testAdminKey)

	rec := do(router, http.MethodGet, "/api/admin/datasets/students", "",
		"Authorization", adminToken(t, testAdminKey, testAdminIssuer, time.Hour))

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestWipe(t *testing.T) {
	tests := []struct {
		name       string
		wipeErr    error
		wantStatus int
	}{
		{name: "wiped", wantStatus: http.StatusNoContent},
		{name: "sync running", wipeErr: service.ErrSyncAlreadyRunning, wantStatus: http.StatusConflict},
		{name: "storage failure", wipeErr: fmt.Errorf("wipe: %w", errStorage), wantStatus: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router, m := newTestRouter(t, testAdminKey)
			m.engine.EXPECT().Wipe(gomock.Any()).DoAndReturn(func(ctx context.Context) error {
				operator, ok := utils.GetOperatorFromContext(ctx)
				assert.True(t, ok)
				assert.Equal(t, "maintenance", operator)
				return tt.wipeErr
			})

			rec := do(router, http.MethodPost, "/api/admin/wipe", "",
				"Authorization", adminToken(t, testAdminKey, testAdminIssuer, time.Hour))

			assert.Equal(t, tt.wantStatus, rec.Code)
		})
	}
}

// ── routing & middleware ─────────────────────────────────────────────────────

func TestRouter_WrongMethodIsNotFound(t *testing.T) {
	router, _ := newTestRouter(t, "")

	for _, tc := range []struct{ method, target string }{
		{http.MethodGet, "/api/scans"},
		{http.MethodDelete, "/api/version"},
		{http.MethodPut, "/api/sync"},
	} {
		rec := do(router, tc.method, tc.target, "")
		assert.Equal(t, http.StatusNotFound, rec.Code, "%s %s", tc.method, tc.target)
	}
}

func TestRouter_SetsTraceID(t *testing.T) {
	router, m := newTestRouter(t, "")
	m.appInfo.EXPECT().GetAppVersion(gomock.Any()).Return("v1").Times(2)

	rec := do(router, http.MethodGet, "/api/version", "")
	_, err := uuid.Parse(rec.Header().Get(traceIDHeader))
	assert.NoError(t, err, "generated trace id must be a UUID")

	rec = do(router, http.MethodGet, "/api/version", "", traceIDHeader, "custom-trace")
	assert.Equal(t, "custom-trace", rec.Header().Get(traceIDHeader))
}

func TestWithLogging_WritesAccessLog(t *testing.T) {
	var buf bytes.Buffer
	h := &Handler{
		traceIDs: utils.NewUUIDGenerator(),
		logger:   &logger.Logger{Logger: zerolog.New(&buf)},
	}
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte("created"))
	})

	req := httptest.NewRequest(http.MethodPost, "/api/registrations?x=1", nil)
	req.Header.Set(traceIDHeader, "trace-42")
	rec := httptest.NewRecorder()
	h.withTraceID(h.withLogging(next)).ServeHTTP(rec, req)

	out := buf.String()
	assert.Contains(t, out, `"trace_id":"trace-42"`)
	assert.Contains(t, out, `"method":"POST"`)
	assert.Contains(t, out, `"uri":"/api/registrations?x=1"`)
	assert.Contains(t, out, `"status":201`)
	assert.Contains(t, out, `"size":7`)
	assert.Contains(t, out, `"level":"info"`)
}

func TestWithLogging_LevelFollowsStatus(t *testing.T) {
	tests := []struct {
		status int
		level  string
	}{
		{status: 0, level: "info"},
		{status: http.StatusNoContent, level: "info"},
		{status: http.StatusConflict, level: "warn"},
		{status: http.StatusInternalServerError, level: "error"},
	}

	for _, tt := range tests {
		t.Run(http.StatusText(tt.status), func(t *testing.T) {
			var buf bytes.Buffer
			h := &Handler{
				traceIDs: utils.NewUUIDGenerator(),
				logger:   &logger.Logger{Logger: zerolog.New(&buf)},
			}
			next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				if tt.status != 0 {
					w.WriteHeader(tt.status)
				}
			})

			h.withTraceID(h.withLogging(next)).ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodPost, "/api/sync", nil))

			assert.Contains(t, buf.String(), `"level":"`+tt.level+`"`)
		})
	}
}

func TestResponseWriter_WriteHeaderOnce(t *testing.T) {
	rec := httptest.NewRecorder()
	w := &responseWriter{ResponseWriter: rec}

	w.WriteHeader(http.StatusAccepted)
	w.WriteHeader(http.StatusInternalServerError)
	_, _ = w.Write([]byte("ok"))

	assert.Equal(t, http.StatusAccepted, w.status)
	assert.Equal(t, http.StatusAccepted, rec.Code)
	assert.Equal(t, 2, w.size)
}

func TestStatusFromError_Unknown(t *testing.T) {
	assert.Equal(t, http.StatusInternalServerError, statusFromError(fmt.Errorf("boom")))
	assert.Equal(t, http.StatusNotFound, statusFromError(fmt.Errorf("x: %w", models.ErrUnknownDataset)))
}

var errStorage = fmt.Errorf("disk: %w", store.ErrStorageOpen)
