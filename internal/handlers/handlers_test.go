package handlers

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/fitlog-app/fitlog-backend/internal/apperrors"
	"github.com/fitlog-app/fitlog-backend/internal/models"
	"github.com/fitlog-app/fitlog-backend/internal/services"
)

// mockBackend implements IdentityService, ExerciseRecorder and LogQuerier
// with canned results, recording the arguments it was called with.
type mockBackend struct {
	createdUser    models.User
	listedUsers    []models.User
	exerciseResult services.ExerciseResult
	logResult      services.LogResult
	err            error

	gotUsername    string
	gotUserID      string
	gotDescription string
	gotDuration    int
	gotDate        string
	gotFrom        string
	gotTo          string
	gotLimit       string
}

func (m *mockBackend) CreateUser(ctx context.Context, username string) (models.User, error) {
	m.gotUsername = username
	if m.err != nil {
		return models.User{}, m.err
	}
	return m.createdUser, nil
}

func (m *mockBackend) ListUsers(ctx context.Context) ([]models.User, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.listedUsers, nil
}

func (m *mockBackend) RecordExercise(ctx context.Context, userID, description string, duration int, date string) (services.ExerciseResult, error) {
	m.gotUserID = userID
	m.gotDescription = description
	m.gotDuration = duration
	m.gotDate = date
	if m.err != nil {
		return services.ExerciseResult{}, m.err
	}
	return m.exerciseResult, nil
}

func (m *mockBackend) GetLogs(ctx context.Context, userID, from, to, limit string) (services.LogResult, error) {
	m.gotUserID = userID
	m.gotFrom = from
	m.gotTo = to
	m.gotLimit = limit
	if m.err != nil {
		return services.LogResult{}, m.err
	}
	return m.logResult, nil
}

func newTestHandler(m *mockBackend) *Handler {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return New(logger, m, m, m)
}

func withURLParam(r *http.Request, key, value string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add(key, value)
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
}

func formRequest(method, target string, fields url.Values) *http.Request {
	req := httptest.NewRequest(method, target, strings.NewReader(fields.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return req
}

func TestCreateUserForm(t *testing.T) {
	id := primitive.NewObjectID()
	backend := &mockBackend{
		createdUser: models.User{ID: id, Username: "fcc_test", CreatedAt: time.Now()},
	}
	h := newTestHandler(backend)

	req := formRequest(http.MethodPost, "/api/users", url.Values{"username": {"fcc_test"}})
	rr := httptest.NewRecorder()
	h.CreateUser(rr, req)

	if rr.Code != http.StatusCreated {
		t.Fatalf("expected 201 got %d: %s", rr.Code, rr.Body.String())
	}
	if backend.gotUsername != "fcc_test" {
		t.Fatalf("expected username fcc_test got %q", backend.gotUsername)
	}

	var resp UserResponse
	if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.Username != "fcc_test" {
		t.Fatalf("unexpected username %q", resp.Username)
	}
	if resp.ID != id.Hex() {
		t.Fatalf("expected _id %s got %s", id.Hex(), resp.ID)
	}
}

func TestCreateUserJSON(t *testing.T) {
	id := primitive.NewObjectID()
	backend := &mockBackend{
		createdUser: models.User{ID: id, Username: "json_user"},
	}
	h := newTestHandler(backend)

	req := httptest.NewRequest(http.MethodPost, "/api/users", strings.NewReader(`{"username":"json_user"}`))
	req.Header.Set("Content-Type", "application/json")
	rr := httptest.NewRecorder()
	h.CreateUser(rr, req)

	if rr.Code != http.StatusCreated {
		t.Fatalf("expected 201 got %d: %s", rr.Code, rr.Body.String())
	}
	if backend.gotUsername != "json_user" {
		t.Fatalf("expected username json_user got %q", backend.gotUsername)
	}
}

func TestCreateUserMissingUsername(t *testing.T) {
	h := newTestHandler(&mockBackend{})

	req := formRequest(http.MethodPost, "/api/users", url.Values{})
	rr := httptest.NewRecorder()
	h.CreateUser(rr, req)

	if rr.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", rr.Code)
	}

	var resp apperrors.ErrorResponse
	if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.Code != "VALIDATION_FAILED" {
		t.Fatalf("expected code VALIDATION_FAILED got %q", resp.Code)
	}
}

func TestListUsers(t *testing.T) {
	first := primitive.NewObjectID()
	second := primitive.NewObjectID()
	backend := &mockBackend{
		listedUsers: []models.User{
			{ID: first, Username: "alpha"},
			{ID: second, Username: "beta"},
		},
	}
	h := newTestHandler(backend)

	req := httptest.NewRequest(http.MethodGet, "/api/users", nil)
	rr := httptest.NewRecorder()
	h.ListUsers(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", rr.Code)
	}

	var resp []UserResponse
	if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if len(resp) != 2 {
		t.Fatalf("expected 2 users got %d", len(resp))
	}
	if resp[0].Username != "alpha" || resp[0].ID != first.Hex() {
		t.Fatalf("unexpected first user %+v", resp[0])
	}
}

func TestListUsersEmptyIsArray(t *testing.T) {
	h := newTestHandler(&mockBackend{})

	req := httptest.NewRequest(http.MethodGet, "/api/users", nil)
	rr := httptest.NewRecorder()
	h.ListUsers(rr, req)

	if body := strings.TrimSpace(rr.Body.String()); body != "[]" {
		t.Fatalf("expected empty array got %s", body)
	}
}

func TestRecordExercise(t *testing.T) {
	userID := primitive.NewObjectID().Hex()
	backend := &mockBackend{
		exerciseResult: services.ExerciseResult{
			Username:    "fcc_test",
			Description: "test run",
			Duration:    30,
			Date:        "Sun Jan 15 2023",
			UserID:      userID,
		},
	}
	h := newTestHandler(backend)

	req := formRequest(http.MethodPost, "/api/users/"+userID+"/exercises", url.Values{
		"description": {"test run"},
		"duration":    {"30"},
		"date":        {"2023-01-15"},
	})
	req = withURLParam(req, "_id", userID)
	rr := httptest.NewRecorder()
	h.RecordExercise(rr, req)

	if rr.Code != http.StatusCreated {
		t.Fatalf("expected 201 got %d: %s", rr.Code, rr.Body.String())
	}
	if backend.gotUserID != userID {
		t.Fatalf("expected user id %s got %s", userID, backend.gotUserID)
	}
	if backend.gotDuration != 30 {
		t.Fatalf("expected duration 30 got %d", backend.gotDuration)
	}
	if backend.gotDate != "2023-01-15" {
		t.Fatalf("expected date 2023-01-15 got %q", backend.gotDate)
	}

	var resp ExerciseResponse
	if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.Username != "fcc_test" || resp.Description != "test run" || resp.Duration != 30 {
		t.Fatalf("unexpected response %+v", resp)
	}
	if resp.Date != "Sun Jan 15 2023" {
		t.Fatalf("unexpected date %q", resp.Date)
	}
	if resp.ID != userID {
		t.Fatalf("expected _id to echo the request user id, got %q", resp.ID)
	}
}

func TestRecordExerciseJSONDuration(t *testing.T) {
	userID := primitive.NewObjectID().Hex()
	backend := &mockBackend{
		exerciseResult: services.ExerciseResult{Username: "u", Description: "lift", Duration: 45, Date: "Mon Jan 01 2024", UserID: userID},
	}
	h := newTestHandler(backend)

	// JSON clients may send duration as a number or a string
	for _, body := range []string{
		`{"description":"lift","duration":45}`,
		`{"description":"lift","duration":"45"}`,
	} {
		req := httptest.NewRequest(http.MethodPost, "/api/users/"+userID+"/exercises", strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		req = withURLParam(req, "_id", userID)
		rr := httptest.NewRecorder()
		h.RecordExercise(rr, req)

		if rr.Code != http.StatusCreated {
			t.Fatalf("body %s: expected 201 got %d: %s", body, rr.Code, rr.Body.String())
		}
		if backend.gotDuration != 45 {
			t.Fatalf("body %s: expected duration 45 got %d", body, backend.gotDuration)
		}
	}
}

func TestRecordExerciseMissingDescription(t *testing.T) {
	h := newTestHandler(&mockBackend{})

	req := formRequest(http.MethodPost, "/api/users/abc/exercises", url.Values{"duration": {"30"}})
	req = withURLParam(req, "_id", "abc")
	rr := httptest.NewRecorder()
	h.RecordExercise(rr, req)

	if rr.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", rr.Code)
	}
}

func TestRecordExerciseInvalidDuration(t *testing.T) {
	h := newTestHandler(&mockBackend{})

	req := formRequest(http.MethodPost, "/api/users/abc/exercises", url.Values{
		"description": {"test run"},
		"duration":    {"half an hour"},
	})
	req = withURLParam(req, "_id", "abc")
	rr := httptest.NewRecorder()
	h.RecordExercise(rr, req)

	if rr.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", rr.Code)
	}
}

func TestRecordExerciseUserNotFound(t *testing.T) {
	h := newTestHandler(&mockBackend{err: apperrors.ErrUserNotFound})

	req := formRequest(http.MethodPost, "/api/users/missing/exercises", url.Values{
		"description": {"test run"},
		"duration":    {"30"},
	})
	req = withURLParam(req, "_id", "missing")
	rr := httptest.NewRecorder()
	h.RecordExercise(rr, req)

	if rr.Code != http.StatusNotFound {
		t.Fatalf("expected 404 got %d", rr.Code)
	}

	var resp apperrors.ErrorResponse
	if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.Code != "USER_NOT_FOUND" {
		t.Fatalf("expected code USER_NOT_FOUND got %q", resp.Code)
	}
}

func TestGetLogs(t *testing.T) {
	userID := primitive.NewObjectID().Hex()
	backend := &mockBackend{
		logResult: services.LogResult{
			UserID:   userID,
			Username: "fcc_test",
			Count:    1,
			Entries: []services.LogEntry{
				{Description: "test run", Duration: 30, Date: "Sun Jan 15 2023"},
			},
		},
	}
	h := newTestHandler(backend)

	req := httptest.NewRequest(http.MethodGet, "/api/users/"+userID+"/logs?from=2023-01-01&to=2023-12-31&limit=5", nil)
	req = withURLParam(req, "_id", userID)
	rr := httptest.NewRecorder()
	h.GetLogs(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d: %s", rr.Code, rr.Body.String())
	}
	if backend.gotFrom != "2023-01-01" || backend.gotTo != "2023-12-31" || backend.gotLimit != "5" {
		t.Fatalf("query parameters not forwarded: from=%q to=%q limit=%q", backend.gotFrom, backend.gotTo, backend.gotLimit)
	}

	var resp LogResponse
	if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.ID != userID || resp.Username != "fcc_test" {
		t.Fatalf("unexpected response header fields %+v", resp)
	}
	if resp.Count != 1 || len(resp.Log) != 1 {
		t.Fatalf("expected count 1 with one entry, got count %d len %d", resp.Count, len(resp.Log))
	}
	entry := resp.Log[0]
	if entry.Description != "test run" || entry.Duration != 30 || entry.Date != "Sun Jan 15 2023" {
		t.Fatalf("unexpected log entry %+v", entry)
	}
}

func TestGetLogsEmptyLogIsArray(t *testing.T) {
	userID := primitive.NewObjectID().Hex()
	backend := &mockBackend{
		logResult: services.LogResult{UserID: userID, Username: "fcc_test"},
	}
	h := newTestHandler(backend)

	req := httptest.NewRequest(http.MethodGet, "/api/users/"+userID+"/logs", nil)
	req = withURLParam(req, "_id", userID)
	rr := httptest.NewRecorder()
	h.GetLogs(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", rr.Code)
	}
	if !strings.Contains(rr.Body.String(), `"log":[]`) {
		t.Fatalf("expected empty log array in body %s", rr.Body.String())
	}
}

func TestGetLogsUserNotFound(t *testing.T) {
	h := newTestHandler(&mockBackend{err: apperrors.ErrUserNotFound})

	req := httptest.NewRequest(http.MethodGet, "/api/users/missing/logs", nil)
	req = withURLParam(req, "_id", "missing")
	rr := httptest.NewRecorder()
	h.GetLogs(rr, req)

	if rr.Code != http.StatusNotFound {
		t.Fatalf("expected 404 got %d", rr.Code)
	}
}

func TestGetLogsStorageError(t *testing.T) {
	h := newTestHandler(&mockBackend{err: apperrors.NewStorageError("find exercises", context.DeadlineExceeded)})

	req := httptest.NewRequest(http.MethodGet, "/api/users/abc/logs", nil)
	req = withURLParam(req, "_id", "abc")
	rr := httptest.NewRecorder()
	h.GetLogs(rr, req)

	if rr.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500 got %d", rr.Code)
	}

	var resp apperrors.ErrorResponse
	if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.Code != "STORAGE_ERROR" {
		t.Fatalf("expected code STORAGE_ERROR got %q", resp.Code)
	}
}

func TestLanding(t *testing.T) {
	h := newTestHandler(&mockBackend{})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rr := httptest.NewRecorder()
	h.Landing(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", rr.Code)
	}
	if ct := rr.Header().Get("Content-Type"); !strings.Contains(ct, "text/html") {
		t.Fatalf("expected html content type got %q", ct)
	}
	if !strings.Contains(rr.Body.String(), "Exercise Tracker") {
		t.Fatalf("landing page missing title")
	}
}
