package http

import (
	"bytes"
	"encoding/json"
	"io"
	nethttp "net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/spec-kit/job-board/internal/api/http/handlers"
	"github.com/spec-kit/job-board/internal/auth"
	"github.com/spec-kit/job-board/internal/config"
	"github.com/spec-kit/job-board/internal/events"
	"github.com/spec-kit/job-board/internal/observability"
	"github.com/spec-kit/job-board/internal/repository/memstore"
	"github.com/spec-kit/job-board/internal/service"
	"github.com/spec-kit/job-board/internal/validator"
)

type testServer struct {
	app   *fiber.App
	store *memstore.Store
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	cfg := config.Config{
		App: config.AppConfig{Name: "job-board-test"},
		Auth: config.AuthConfig{
			JWTSecret:             "test-secret",
			AccessTokenTTLMinutes: 60,
			BcryptCost:            bcrypt.MinCost,
		},
		Listing: config.ListingConfig{MaxJobs: 100, ActiveJobs: 20},
	}
	logger := zap.NewNop()
	store := memstore.New()
	dispatcher := events.NewInMemoryDispatcher()
	metrics := observability.NewMetrics()
	v := validator.New()

	authService := service.NewAuthService(cfg, service.AuthDependencies{
		UserRepo:  store.Users(),
		AdminRepo: store.Admins(),
		Logger:    logger,
	})
	jobService := service.NewJobService(cfg, service.JobDependencies{
		JobRepo:         store.Jobs(),
		ApplicationRepo: store.Applications(),
		Transactor:      store,
		Dispatcher:      dispatcher,
		Logger:          logger,
	})
	applicationService := service.NewApplicationService(service.ApplicationDependencies{
		JobRepo:         store.Jobs(),
		ApplicationRepo: store.Applications(),
		UserRepo:        store.Users(),
		Transactor:      store,
		Dispatcher:      dispatcher,
		Logger:          logger,
	})

	app := NewApp(cfg, logger)
	RegisterMiddlewares(app, cfg, logger, metrics)
	RegisterRoutes(app, RouteConfig{
		Health:         handlers.NewHealthHandler(cfg.App.Name, "test", "memory", nil, metrics),
		Jobs:           handlers.NewJobsHandler(jobService, v),
		Applications:   handlers.NewApplicationsHandler(applicationService, v),
		Admins:         handlers.NewAdminsHandler(authService, v),
		Users:          handlers.NewUsersHandler(authService, v),
		AuthMiddleware: auth.NewAuthMiddleware(authService.TokenManager(), store.Users(), store.Admins()),
	})
	return &testServer{app: app, store: store}
}

func (s *testServer) do(t *testing.T, method, path string, body any, token string) (int, map[string]any) {
	t.Helper()
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := s.app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	decoded := map[string]any{}
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	if len(raw) > 0 {
		require.NoError(t, json.Unmarshal(raw, &decoded), string(raw))
	}
	return resp.StatusCode, decoded
}

func (s *testServer) createJob(t *testing.T, fields map[string]any) string {
	t.Helper()
	body := map[string]any{
		"title":           "Backend Engineer",
		"company":         "Acme",
		"jobType":         "Full-time",
		"experienceLevel": "Mid Level",
		"location":        "Berlin",
	}
	for k, v := range fields {
		body[k] = v
	}
	status, resp := s.do(t, nethttp.MethodPost, "/jobs", body, "")
	require.Equal(t, nethttp.StatusCreated, status, resp)
	return resp["job"].(map[string]any)["id"].(string)
}

func applyBody(userID string) map[string]any {
	return map[string]any{
		"userId":    userID,
		"userName":  "Candidate " + userID,
		"userEmail": userID + "@example.com",
		"resume":    "https://cdn.example.com/" + userID + ".pdf",
	}
}

func TestApplicationHappyPath(t *testing.T) {
	s := newTestServer(t)
	jobID := s.createJob(t, map[string]any{"status": "Active"})

	status, resp := s.do(t, nethttp.MethodPost, "/jobs/"+jobID+"/apply", applyBody("U1"), "")
	require.Equal(t, nethttp.StatusCreated, status, resp)
	assert.Equal(t, true, resp["success"])
	application := resp["application"].(map[string]any)
	assert.Equal(t, "Pending", application["status"])
	assert.Equal(t, "Backend Engineer", application["jobTitle"])

	status, resp = s.do(t, nethttp.MethodGet, "/jobs/"+jobID, nil, "")
	require.Equal(t, nethttp.StatusOK, status)
	job := resp["job"].(map[string]any)
	assert.Equal(t, float64(1), job["applicationsCount"])
	assert.Equal(t, float64(1), job["views"])

	status, resp = s.do(t, nethttp.MethodPost, "/jobs/"+jobID+"/apply", applyBody("U1"), "")
	assert.Equal(t, nethttp.StatusBadRequest, status)
	assert.Equal(t, false, resp["success"])
	assert.Equal(t, "CONFLICT", resp["error"])
	assert.Contains(t, resp["message"], "already applied")

	status, resp = s.do(t, nethttp.MethodGet, "/jobs/"+jobID+"/applications", nil, "")
	require.Equal(t, nethttp.StatusOK, status)
	assert.Equal(t, float64(1), resp["count"])
	assert.Equal(t, "Backend Engineer", resp["jobTitle"])
	assert.Equal(t, "Acme", resp["companyName"])

	status, resp = s.do(t, nethttp.MethodGet, "/jobs/"+jobID+"/check-application/U1", nil, "")
	require.Equal(t, nethttp.StatusOK, status)
	assert.Equal(t, true, resp["hasApplied"])

	status, resp = s.do(t, nethttp.MethodGet, "/jobs/"+jobID+"/check-application/U2", nil, "")
	require.Equal(t, nethttp.StatusOK, status)
	assert.Equal(t, false, resp["hasApplied"])
	assert.Nil(t, resp["application"])

	status, resp = s.do(t, nethttp.MethodGet, "/jobs/user/applications/U1", nil, "")
	require.Equal(t, nethttp.StatusOK, status)
	assert.Equal(t, float64(1), resp["count"])
}

func TestApplyToInactiveJob(t *testing.T) {
	s := newTestServer(t)
	jobID := s.createJob(t, map[string]any{"status": "Closed"})

	status, resp := s.do(t, nethttp.MethodPost, "/jobs/"+jobID+"/apply", applyBody("U1"), "")
	assert.Equal(t, nethttp.StatusBadRequest, status)
	assert.Equal(t, "INVALID_STATE", resp["error"])

	status, resp = s.do(t, nethttp.MethodGet, "/jobs/"+jobID+"/applications", nil, "")
	require.Equal(t, nethttp.StatusOK, status)
	assert.Equal(t, float64(0), resp["count"])
}

func TestApplyValidationAndMissingJob(t *testing.T) {
	s := newTestServer(t)
	jobID := s.createJob(t, nil)

	status, resp := s.do(t, nethttp.MethodPost, "/jobs/"+jobID+"/apply", map[string]any{"userName": "X"}, "")
	assert.Equal(t, nethttp.StatusBadRequest, status)
	assert.Equal(t, "INVALID_ARGUMENT", resp["error"])
	assert.ElementsMatch(t, []any{"userId is required", "resume is required"}, resp["errors"])

	status, resp = s.do(t, nethttp.MethodPost, "/jobs/does-not-exist/apply", applyBody("U1"), "")
	assert.Equal(t, nethttp.StatusNotFound, status)
	assert.Equal(t, "Job not found", resp["message"])
}

func TestCreateJobWithBogusType(t *testing.T) {
	s := newTestServer(t)

	status, resp := s.do(t, nethttp.MethodPost, "/jobs", map[string]any{
		"title": "T", "company": "C", "jobType": "Bogus", "experienceLevel": "Fresher",
	}, "")
	assert.Equal(t, nethttp.StatusBadRequest, status)
	assert.Equal(t, "INVALID_ARGUMENT", resp["error"])

	status, resp = s.do(t, nethttp.MethodGet, "/jobs", nil, "")
	require.Equal(t, nethttp.StatusOK, status)
	assert.Equal(t, float64(0), resp["count"])
}

func TestDeleteJobCascadeAndRedelete(t *testing.T) {
	s := newTestServer(t)
	jobID := s.createJob(t, nil)
	for _, user := range []string{"U1", "U2", "U3"} {
		status, _ := s.do(t, nethttp.MethodPost, "/jobs/"+jobID+"/apply", applyBody(user), "")
		require.Equal(t, nethttp.StatusCreated, status)
	}

	status, resp := s.do(t, nethttp.MethodDelete, "/jobs/"+jobID, nil, "")
	require.Equal(t, nethttp.StatusOK, status)
	assert.Equal(t, float64(3), resp["applicationsRemoved"])

	for _, user := range []string{"U1", "U2", "U3"} {
		_, resp = s.do(t, nethttp.MethodGet, "/jobs/user/applications/"+user, nil, "")
		assert.Equal(t, float64(0), resp["count"])
	}

	status, _ = s.do(t, nethttp.MethodGet, "/jobs/"+jobID, nil, "")
	assert.Equal(t, nethttp.StatusNotFound, status)
	status, resp = s.do(t, nethttp.MethodDelete, "/jobs/"+jobID, nil, "")
	assert.Equal(t, nethttp.StatusNotFound, status)
	assert.Equal(t, "NOT_FOUND", resp["error"])
}

func TestUpdateApplicationStatusRoute(t *testing.T) {
	s := newTestServer(t)
	jobID := s.createJob(t, nil)
	_, resp := s.do(t, nethttp.MethodPost, "/jobs/"+jobID+"/apply", applyBody("U1"), "")
	appID := resp["application"].(map[string]any)["id"].(string)

	status, resp := s.do(t, nethttp.MethodPut, "/jobs/applications/"+appID, map[string]any{"status": "Hired"}, "")
	assert.Equal(t, nethttp.StatusBadRequest, status)
	assert.Contains(t, resp["message"], "Invalid status")

	status, resp = s.do(t, nethttp.MethodPut, "/jobs/applications/"+appID, map[string]any{"status": "Shortlisted", "notes": "call back"}, "")
	require.Equal(t, nethttp.StatusOK, status)
	application := resp["application"].(map[string]any)
	assert.Equal(t, "Shortlisted", application["status"])
	assert.Equal(t, "call back", application["notes"])

	status, _ = s.do(t, nethttp.MethodPut, "/jobs/applications/missing", map[string]any{"status": "Reviewed"}, "")
	assert.Equal(t, nethttp.StatusNotFound, status)

	status, _ = s.do(t, nethttp.MethodDelete, "/jobs/applications/"+appID, nil, "")
	assert.Equal(t, nethttp.StatusOK, status)
	status, _ = s.do(t, nethttp.MethodGet, "/jobs/applications/"+appID, nil, "")
	assert.Equal(t, nethttp.StatusNotFound, status)
}

func TestListJobsRoutes(t *testing.T) {
	s := newTestServer(t)
	s.createJob(t, map[string]any{"title": "Go Developer", "location": "Remote"})
	s.createJob(t, map[string]any{"title": "Designer", "jobType": "Contract"})
	s.createJob(t, map[string]any{"title": "Draft Role", "status": "Draft"})

	status, resp := s.do(t, nethttp.MethodGet, "/jobs?search=go&jobType=Full-time", nil, "")
	require.Equal(t, nethttp.StatusOK, status)
	require.Equal(t, float64(1), resp["count"])
	assert.Equal(t, "Go Developer", resp["jobs"].([]any)[0].(map[string]any)["title"])

	status, resp = s.do(t, nethttp.MethodGet, "/jobs/active", nil, "")
	require.Equal(t, nethttp.StatusOK, status)
	assert.Equal(t, float64(2), resp["count"])
}

func TestAdminFlow(t *testing.T) {
	s := newTestServer(t)
	register := map[string]any{
		"name":        "Riley",
		"email":       "HR@Acme.io",
		"password":    "secret1",
		"companyName": "Acme",
		"acceptTerms": true,
	}

	status, resp := s.do(t, nethttp.MethodPost, "/admin/register", register, "")
	require.Equal(t, nethttp.StatusCreated, status, resp)
	admin := resp["admin"].(map[string]any)
	assert.Equal(t, "hr@acme.io", admin["email"])
	assert.NotContains(t, admin, "password")
	assert.NotContains(t, admin, "passwordHash")

	status, resp = s.do(t, nethttp.MethodPost, "/admin/register", register, "")
	assert.Equal(t, nethttp.StatusBadRequest, status)
	assert.Equal(t, "CONFLICT", resp["error"])

	noTerms := map[string]any{"name": "A", "email": "a@acme.io", "password": "secret1", "companyName": "Acme"}
	status, resp = s.do(t, nethttp.MethodPost, "/admin/register", noTerms, "")
	assert.Equal(t, nethttp.StatusBadRequest, status)
	assert.Contains(t, resp["errors"], "acceptTerms must be accepted")

	status, _ = s.do(t, nethttp.MethodPost, "/admin/login", map[string]any{"email": "nobody@acme.io", "password": "secret1"}, "")
	assert.Equal(t, nethttp.StatusNotFound, status)
	status, _ = s.do(t, nethttp.MethodPost, "/admin/login", map[string]any{"email": "hr@acme.io", "password": "wrong1"}, "")
	assert.Equal(t, nethttp.StatusUnauthorized, status)

	status, resp = s.do(t, nethttp.MethodPost, "/admin/login", map[string]any{"email": "hr@acme.io", "password": "secret1"}, "")
	require.Equal(t, nethttp.StatusOK, status)
	token := resp["auth"].(map[string]any)["token"].(string)

	status, resp = s.do(t, nethttp.MethodPost, "/jobs", map[string]any{
		"title": "Platform Engineer", "company": "Acme", "jobType": "Remote", "experienceLevel": "Senior Level",
	}, token)
	require.Equal(t, nethttp.StatusCreated, status)
	assert.Equal(t, "Riley", resp["job"].(map[string]any)["postedBy"])

	status, resp = s.do(t, nethttp.MethodGet, "/admin/jobs", nil, token)
	require.Equal(t, nethttp.StatusOK, status)
	assert.Equal(t, float64(1), resp["count"])

	status, resp = s.do(t, nethttp.MethodGet, "/admin/stats", nil, token)
	require.Equal(t, nethttp.StatusOK, status)
	assert.Equal(t, float64(1), resp["stats"].(map[string]any)["totalJobs"])

	status, _ = s.do(t, nethttp.MethodGet, "/admin/profile", nil, "")
	assert.Equal(t, nethttp.StatusUnauthorized, status)

	status, _ = s.do(t, nethttp.MethodDelete, "/admin/profile", nil, token)
	require.Equal(t, nethttp.StatusOK, status)

	status, resp = s.do(t, nethttp.MethodPost, "/admin/login", map[string]any{"email": "hr@acme.io", "password": "secret1"}, "")
	assert.Equal(t, nethttp.StatusUnauthorized, status)
	assert.Equal(t, "FORBIDDEN", resp["error"])

	status, resp = s.do(t, nethttp.MethodGet, "/jobs", nil, "")
	require.Equal(t, nethttp.StatusOK, status)
	assert.Equal(t, float64(1), resp["count"], "jobs of deactivated admins stay listed")
}

func TestUserFlow(t *testing.T) {
	s := newTestServer(t)

	status, resp := s.do(t, nethttp.MethodPost, "/users/register", map[string]any{
		"name": "Sam", "email": "sam@example.com", "password": "secret1", "phone": "555-0100",
	}, "")
	require.Equal(t, nethttp.StatusCreated, status, resp)
	user := resp["user"].(map[string]any)
	assert.Equal(t, "candidate", user["role"])
	userID := user["id"].(string)

	status, resp = s.do(t, nethttp.MethodPost, "/users/register", map[string]any{
		"name": "Sam", "email": "not-an-email", "password": "1",
	}, "")
	assert.Equal(t, nethttp.StatusBadRequest, status)
	assert.Len(t, resp["errors"], 2)

	status, _ = s.do(t, nethttp.MethodPost, "/users/login", map[string]any{"email": "ghost@example.com", "password": "secret1"}, "")
	assert.Equal(t, nethttp.StatusUnauthorized, status)

	status, resp = s.do(t, nethttp.MethodPost, "/users/login", map[string]any{"email": "sam@example.com", "password": "secret1"}, "")
	require.Equal(t, nethttp.StatusOK, status)
	token := resp["auth"].(map[string]any)["token"].(string)

	status, resp = s.do(t, nethttp.MethodGet, "/users/me", nil, token)
	require.Equal(t, nethttp.StatusOK, status)
	assert.Equal(t, userID, resp["user"].(map[string]any)["id"])

	// Contact details come from the account when omitted.
	jobID := s.createJob(t, nil)
	status, resp = s.do(t, nethttp.MethodPost, "/jobs/"+jobID+"/apply", map[string]any{"userId": userID, "resume": "cv.pdf"}, "")
	require.Equal(t, nethttp.StatusCreated, status, resp)
	assert.Equal(t, "555-0100", resp["application"].(map[string]any)["userPhone"])

	status, _ = s.do(t, nethttp.MethodPut, "/users/me/password", map[string]any{"currentPassword": "nope", "newPassword": "secret2"}, token)
	assert.Equal(t, nethttp.StatusUnauthorized, status)
	status, _ = s.do(t, nethttp.MethodPut, "/users/me/password", map[string]any{"currentPassword": "secret1", "newPassword": "secret2"}, token)
	assert.Equal(t, nethttp.StatusOK, status)
}

func TestHealthAndUnknownRoutes(t *testing.T) {
	s := newTestServer(t)

	status, resp := s.do(t, nethttp.MethodGet, "/health/live", nil, "")
	require.Equal(t, nethttp.StatusOK, status)
	assert.Equal(t, "memory", resp["storage"])

	status, _ = s.do(t, nethttp.MethodGet, "/health/ready", nil, "")
	assert.Equal(t, nethttp.StatusOK, status)

	status, resp = s.do(t, nethttp.MethodGet, "/nope", nil, "")
	assert.Equal(t, nethttp.StatusNotFound, status)
	assert.Equal(t, false, resp["success"])

	status, resp = s.do(t, nethttp.MethodGet, "/health/metrics", nil, "")
	require.Equal(t, nethttp.StatusOK, status)
	assert.NotEmpty(t, resp["metrics"].(map[string]any)["requests"])
}
