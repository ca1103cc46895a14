package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"firebase.google.com/go/v4/auth"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/example/carhub/internal/config"
	"github.com/example/carhub/internal/core"
	"github.com/example/carhub/internal/db"
	"github.com/example/carhub/internal/db/dbtest"
	"github.com/example/carhub/internal/metrics"
	"github.com/example/carhub/internal/middleware"
)

type fakeVerifier map[string]*auth.Token

func (f fakeVerifier) VerifyIDToken(_ context.Context, idToken string) (*auth.Token, error) {
	if tok, ok := f[idToken]; ok {
		return tok, nil
	}
	return nil, errors.New("ID token has expired")
}

type testServer struct {
	router     *gin.Engine
	users      *dbtest.UserRepository
	interests  *dbtest.InterestRepository
	testDrives *dbtest.TestDriveRepository
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	gin.SetMode(gin.TestMode)
	logger := zap.NewNop()
	clock := dbtest.Clock(time.Date(2024, 5, 1, 8, 0, 0, 0, time.UTC))

	s := &testServer{
		router:     gin.New(),
		users:      dbtest.NewUserRepository(clock),
		interests:  dbtest.NewInterestRepository(clock),
		testDrives: dbtest.NewTestDriveRepository(clock),
	}
	verifier := fakeVerifier{
		"token-u1": {UID: "u1", Claims: map[string]interface{}{
			"email":          "u1@example.com",
			"email_verified": true,
			"name":           "User One",
			"iss":            "https://securetoken.google.com/demo",
			"role":           "buyer",
		}},
		"token-u2": {UID: "u2", Claims: map[string]interface{}{"email": "u2@example.com"}},
	}
	appConfig := &config.Config{PublicPaths: config.DefaultPublicPaths}

	s.router.Use(middleware.RecoveryMiddleware(logger))
	SetupRoutes(s.router, appConfig, logger, verifier, metrics.New(),
		core.NewUserService(s.users, logger),
		core.NewInterestService(s.interests, logger),
		core.NewTestDriveService(s.testDrives, logger),
	)
	return s
}

type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   *struct {
		Message string `json:"message"`
		Code    string `json:"code"`
	} `json:"error"`
}

func (s *testServer) do(t *testing.T, method, path, token string, body interface{}) (int, envelope) {
	t.Helper()
	var reader *bytes.Reader
	switch b := body.(type) {
	case nil:
		reader = bytes.NewReader(nil)
	case string:
		reader = bytes.NewReader([]byte(b))
	default:
		raw, err := json.Marshal(b)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, req)

	var env envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env), rec.Body.String())
	return rec.Code, env
}

func decodeData(t *testing.T, env envelope, out interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(env.Data, out))
}

func assertError(t *testing.T, env envelope, code, message string) {
	t.Helper()
	assert.False(t, env.Success)
	require.NotNil(t, env.Error)
	assert.Equal(t, code, env.Error.Code)
	assert.Equal(t, message, env.Error.Message)
}

func TestScenario_ProfileAndInterest(t *testing.T) {
	s := newTestServer(t)

	status, env := s.do(t, http.MethodGet, "/v1/api/user/me", "token-u1", nil)
	require.Equal(t, http.StatusOK, status)
	var profile map[string]interface{}
	decodeData(t, env, &profile)
	assert.Equal(t, "u1", profile["uid"])
	assert.Equal(t, "u1@example.com", profile["email"])
	assert.Equal(t, "", profile["name"])
	assert.Equal(t, map[string]interface{}{}, profile["attributes"])
	assert.Equal(t, []interface{}{}, profile["audiences"])
	assert.NotContains(t, profile, "abTestGroup")
	firstUpdatedAt := profile["updatedAt"]

	status, env = s.do(t, http.MethodPut, "/v1/api/user/me", "token-u1", map[string]interface{}{"name": "Alex"})
	require.Equal(t, http.StatusOK, status)
	decodeData(t, env, &profile)
	assert.Equal(t, "Alex", profile["name"])
	assert.Equal(t, "", profile["city"])
	assert.NotEqual(t, firstUpdatedAt, profile["updatedAt"])

	status, env = s.do(t, http.MethodPost, "/v1/api/interests", "token-u1", map[string]string{"carId": "c1", "carOwner": "o1"})
	require.Equal(t, http.StatusCreated, status)
	var created map[string]interface{}
	decodeData(t, env, &created)
	assert.NotEmpty(t, created["id"])
	assert.Equal(t, "u1", created["userId"])
	assert.NotEmpty(t, created["createdAt"])

	status, env = s.do(t, http.MethodGet, "/v1/api/interests", "token-u1", nil)
	require.Equal(t, http.StatusOK, status)
	var list []map[string]interface{}
	decodeData(t, env, &list)
	require.Len(t, list, 1)
	assert.Equal(t, created, list[0])
}

func TestGetCurrentUser_Idempotent(t *testing.T) {
	s := newTestServer(t)

	_, first := s.do(t, http.MethodGet, "/v1/api/user/me", "token-u1", nil)
	_, second := s.do(t, http.MethodGet, "/v1/api/user/me", "token-u1", nil)

	assert.JSONEq(t, string(first.Data), string(second.Data))
	assert.Equal(t, 1, s.users.Saves)
}

func TestMissingToken(t *testing.T) {
	s := newTestServer(t)

	status, env := s.do(t, http.MethodGet, "/v1/api/user/me", "", nil)

	assert.Equal(t, http.StatusUnauthorized, status)
	assertError(t, env, "UNAUTHORIZED", "Missing or invalid Authorization header")
	assert.Empty(t, s.users.Profiles)
}

func TestInvalidToken(t *testing.T) {
	s := newTestServer(t)

	status, env := s.do(t, http.MethodGet, "/v1/api/interests", "forged", nil)

	assert.Equal(t, http.StatusUnauthorized, status)
	assertError(t, env, "UNAUTHORIZED", "Invalid or expired token")
}

func TestHealthIsPublic(t *testing.T) {
	s := newTestServer(t)

	for _, path := range []string{"/health", "/actuator/health"} {
		rec := httptest.NewRecorder()
		s.router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
		assert.Equal(t, http.StatusOK, rec.Code, path)
		assert.JSONEq(t, `{"status":"UP"}`, rec.Body.String(), path)
	}

	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "carhub_http_inflight_requests")
}

func TestVerifyToken(t *testing.T) {
	s := newTestServer(t)

	status, env := s.do(t, http.MethodPost, "/v1/api/auth/verify", "token-u1", nil)
	require.Equal(t, http.StatusOK, status)
	assert.JSONEq(t, `{
		"uid": "u1",
		"email": "u1@example.com",
		"name": "User One",
		"emailVerified": true,
		"claims": {"name": "User One", "role": "buyer"}
	}`, string(env.Data))

	status, env = s.do(t, http.MethodPost, "/v1/api/auth/verify", "token-u2", nil)
	require.Equal(t, http.StatusOK, status)
	assert.JSONEq(t, `{"uid":"u2","email":"u2@example.com","emailVerified":false}`, string(env.Data))
}

func TestUpdateUser_Validation(t *testing.T) {
	s := newTestServer(t)
	s.do(t, http.MethodGet, "/v1/api/user/me", "token-u1", nil)

	status, env := s.do(t, http.MethodPut, "/v1/api/user/me", "token-u1", map[string]string{"name": "   ", "city": "Berlin"})

	assert.Equal(t, http.StatusBadRequest, status)
	assertError(t, env, "VALIDATION_ERROR", "Name is required")
	assert.Equal(t, "", s.users.Profiles["u1"].City)
}

func TestUpdateUser_PartialFields(t *testing.T) {
	s := newTestServer(t)
	s.do(t, http.MethodGet, "/v1/api/user/me", "token-u1", nil)
	s.do(t, http.MethodPut, "/v1/api/user/me", "token-u1", map[string]interface{}{
		"name":       "Alex",
		"city":       "Berlin",
		"attributes": map[string]interface{}{"budget": 30000},
	})

	status, env := s.do(t, http.MethodPut, "/v1/api/user/me", "token-u1", map[string]interface{}{
		"name":        "Alexandra",
		"audiences":   []string{"suv"},
		"abTestGroup": "B",
	})
	require.Equal(t, http.StatusOK, status)

	var profile map[string]interface{}
	decodeData(t, env, &profile)
	assert.Equal(t, "Alexandra", profile["name"])
	assert.Equal(t, "Berlin", profile["city"])
	assert.Equal(t, map[string]interface{}{"budget": float64(30000)}, profile["attributes"])
	assert.Equal(t, []interface{}{"suv"}, profile["audiences"])
	assert.Equal(t, "B", profile["abTestGroup"])
}

func TestUpdateUser_NotFound(t *testing.T) {
	s := newTestServer(t)

	status, env := s.do(t, http.MethodPut, "/v1/api/user/me", "token-u1", map[string]string{"name": "Alex"})

	assert.Equal(t, http.StatusNotFound, status)
	assertError(t, env, "NOT_FOUND", "User not found: u1")
}

func TestMalformedBody(t *testing.T) {
	s := newTestServer(t)

	status, env := s.do(t, http.MethodPost, "/v1/api/interests", "token-u1", `{"carId":`)
	assert.Equal(t, http.StatusBadRequest, status)
	assertError(t, env, "BAD_REQUEST", "Malformed request body")

	status, env = s.do(t, http.MethodPost, "/v1/api/test-drives", "token-u1", map[string]string{
		"carId": "c1", "carOwner": "o1", "dealerId": "d1", "preferredDate": "next tuesday",
	})
	assert.Equal(t, http.StatusBadRequest, status)
	assertError(t, env, "BAD_REQUEST", "Malformed request body")
}

func TestCreateInterest_Validation(t *testing.T) {
	s := newTestServer(t)

	status, env := s.do(t, http.MethodPost, "/v1/api/interests", "token-u1", map[string]string{"carOwner": ""})

	assert.Equal(t, http.StatusBadRequest, status)
	assertError(t, env, "VALIDATION_ERROR", "Car ID is required, Car owner is required")
	assert.Empty(t, s.interests.Interests)
}

func TestTestDrives(t *testing.T) {
	s := newTestServer(t)

	status, env := s.do(t, http.MethodPost, "/v1/api/test-drives", "token-u1", map[string]string{"carId": "c1"})
	assert.Equal(t, http.StatusBadRequest, status)
	assertError(t, env, "VALIDATION_ERROR", "Car owner is required, Dealer ID is required, Preferred date is required")

	body := map[string]string{
		"carId": "c1", "carOwner": "o1", "dealerId": "d1",
		"preferredDate": "2024-06-01T14:30:00",
		"userId":        "someone-else",
	}
	status, env = s.do(t, http.MethodPost, "/v1/api/test-drives", "token-u1", body)
	require.Equal(t, http.StatusCreated, status)
	var created map[string]interface{}
	decodeData(t, env, &created)
	assert.Equal(t, "requested", created["status"])
	assert.Equal(t, "u1", created["userId"])
	assert.Equal(t, "2024-06-01T14:30:00", created["preferredDate"])
	assert.NotEmpty(t, created["id"])

	_, env = s.do(t, http.MethodGet, "/v1/api/test-drives", "token-u2", nil)
	assert.JSONEq(t, `[]`, string(env.Data))

	_, env = s.do(t, http.MethodGet, "/v1/api/test-drives", "token-u1", nil)
	var list []map[string]interface{}
	decodeData(t, env, &list)
	require.Len(t, list, 1)
	assert.Equal(t, created["id"], list[0]["id"])
}

func TestPersistenceFailure(t *testing.T) {
	s := newTestServer(t)
	s.interests.Err = &db.PersistenceError{Op: "failed to list interests", Err: context.DeadlineExceeded}

	status, env := s.do(t, http.MethodGet, "/v1/api/interests", "token-u1", nil)

	assert.Equal(t, http.StatusInternalServerError, status)
	assertError(t, env, "FIRESTORE_ERROR", "Database operation failed")
}

func TestUnexpectedFailure(t *testing.T) {
	s := newTestServer(t)
	s.testDrives.Err = errors.New("boom")

	status, env := s.do(t, http.MethodGet, "/v1/api/test-drives", "token-u1", nil)

	assert.Equal(t, http.StatusInternalServerError, status)
	assertError(t, env, "INTERNAL_ERROR", "An unexpected error occurred")
}

func TestHandlerWithoutIdentity(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	h := NewInterestHandler(core.NewInterestService(dbtest.NewInterestRepository(db.SystemClock), zap.NewNop()), zap.NewNop())
	router.GET("/interests", h.ListInterests)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/interests", nil))

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.JSONEq(t, `{"success":false,"error":{"message":"User not authenticated","code":"UNAUTHORIZED"}}`, rec.Body.String())
}
