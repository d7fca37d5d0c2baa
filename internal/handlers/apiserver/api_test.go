package apiserver

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ironmind/internal/config"
	"ironmind/internal/exercises"
	"ironmind/internal/middleware"
	"ironmind/internal/services"
	"ironmind/internal/storage"
	"ironmind/internal/storage/storagetest"
)

type testAPI struct {
	t      *testing.T
	router *mux.Router
}

func newTestAPI(t *testing.T, catalog *exercises.Catalog) *testAPI {
	t.Helper()
	db := storagetest.Open(t)
	cfg := config.Config{
		Auth:       config.AuthConfig{JWTSecretKey: "api-secret", JWTExpiry: time.Hour, Issuer: "test"},
		FriendCode: config.FriendCodeConfig{Length: 8, MaxRetries: 10},
	}

	userRepo := storage.NewGormUserRepository(db)
	relRepo := storage.NewGormRelationshipRepository(db)
	workoutRepo := storage.NewGormWorkoutRepository(db)

	h := Handlers{
		Auth:     NewAuthHandler(services.NewAuthService(userRepo, nil, cfg)),
		User:     NewUserHandler(services.NewUserService(userRepo, relRepo, nil)),
		Friend:   NewFriendHandler(services.NewFriendService(relRepo, userRepo, nil, nil)),
		Plan:     NewPlanHandler(services.NewPlanService(userRepo, workoutRepo)),
		Exercise: NewExerciseHandler(catalog),
	}
	r := mux.NewRouter()
	RegisterRoutes(r, h, middleware.AuthMiddleware(cfg.Auth.JWTSecretKey, nil))
	return &testAPI{t: t, router: r}
}

func (a *testAPI) do(method, path, token string, body interface{}) *httptest.ResponseRecorder {
	a.t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(a.t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	a.router.ServeHTTP(rec, req)
	return rec
}

type signedUp struct {
	token string
	id    uint
	code  string
}

func (a *testAPI) signup(email, name string) signedUp {
	a.t.Helper()
	rec := a.do(http.MethodPost, "/auth/signup", "", map[string]interface{}{
		"email":         email,
		"password":      "secret1",
		"name":          name,
		"age":           25,
		"weight":        150,
		"workoutVolume": "5-6",
		"goals":         []string{"strength"},
	})
	require.Equal(a.t, http.StatusCreated, rec.Code, rec.Body.String())

	var res struct {
		Token string `json:"token"`
		User  struct {
			ID         uint   `json:"id"`
			FriendCode string `json:"friend_code"`
		} `json:"user"`
	}
	require.NoError(a.t, json.Unmarshal(rec.Body.Bytes(), &res))
	return signedUp{token: res.Token, id: res.User.ID, code: res.User.FriendCode}
}

func errorMessage(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var body ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body.Error
}

func TestSignupDuplicateEmail(t *testing.T) {
	api := newTestAPI(t, nil)
	api.signup("ana@example.com", "Ana")

	rec := api.do(http.MethodPost, "/auth/signup", "", map[string]interface{}{
		"email": "ANA@example.com", "password": "secret1", "name": "Other",
		"age": 30, "weight": 150, "goals": []string{"fat_loss"},
	})
	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Equal(t, "Email already registered", errorMessage(t, rec))

	rec = api.do(http.MethodGet, "/auth/email-exists?email=ana@example.com", "", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"exists":true}`, rec.Body.String())
}

func TestProtectedRoutesRequireToken(t *testing.T) {
	api := newTestAPI(t, nil)
	rec := api.do(http.MethodGet, "/api/v1/friends", "", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestFriendFlowStatusCodes(t *testing.T) {
	api := newTestAPI(t, nil)
	ana := api.signup("ana@example.com", "Ana")
	ben := api.signup("ben@example.com", "Ben")

	rec := api.do(http.MethodPost, "/api/v1/friends/requests", ana.token, map[string]string{"friend_code": ""})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Invalid friend code.", errorMessage(t, rec))

	rec = api.do(http.MethodPost, "/api/v1/friends/requests", ana.token, map[string]string{"friend_code": "ZZZZZZZZ"})
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = api.do(http.MethodPost, "/api/v1/friends/requests", ana.token, map[string]string{"friend_code": ana.code})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "You cannot add yourself.", errorMessage(t, rec))

	rec = api.do(http.MethodPost, "/api/v1/friends/requests", ana.token, map[string]string{"friend_code": "#" + ben.code})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	rec = api.do(http.MethodPost, "/api/v1/friends/requests", ben.token, map[string]string{"friend_code": ana.code})
	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Equal(t, "A friend request already exists.", errorMessage(t, rec))

	rec = api.do(http.MethodGet, "/api/v1/friends/requests/incoming", ben.token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var incoming []struct {
		ID   uint   `json:"id"`
		Name string `json:"name"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &incoming))
	require.Len(t, incoming, 1)
	assert.Equal(t, "Ana", incoming[0].Name)

	// 发起人接受自己的请求与请求不存在无法区分
	rec = api.do(http.MethodPost, pathFor("/api/v1/friends/requests/%d/accept", ben.id), ana.token, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "Request not found.", errorMessage(t, rec))

	rec = api.do(http.MethodPost, pathFor("/api/v1/friends/requests/%d/accept", ana.id), ben.token, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = api.do(http.MethodGet, "/api/v1/friends", ana.token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var friends []struct {
		ID         uint   `json:"id"`
		FriendCode string `json:"friend_code"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &friends))
	require.Len(t, friends, 1)
	assert.Equal(t, ben.id, friends[0].ID)
	assert.Equal(t, ben.code, friends[0].FriendCode)

	rec = api.do(http.MethodPost, "/api/v1/friends/requests", ben.token, map[string]string{"friend_code": ana.code})
	assert.Equal(t, "You are already friends.", errorMessage(t, rec))

	rec = api.do(http.MethodPost, pathFor("/api/v1/friends/%d/block", ben.id), ana.token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	rec = api.do(http.MethodPost, "/api/v1/friends/requests", ben.token, map[string]string{"friend_code": ana.code})
	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Equal(t, "Cannot send request.", errorMessage(t, rec))

	rec = api.do(http.MethodDelete, pathFor("/api/v1/friends/%d", ben.id), ana.token, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "Friendship not found.", errorMessage(t, rec))
}

func TestWorkoutEndpoints(t *testing.T) {
	api := newTestAPI(t, nil)
	ana := api.signup("ana@example.com", "Ana")

	rec := api.do(http.MethodPost, "/api/v1/plans/preview", ana.token, map[string]interface{}{"workoutVolume": "3-4"})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"split":"upper_lower"`)

	rec = api.do(http.MethodPost, "/api/v1/workouts", ana.token, nil)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	var workout struct {
		ID uint `json:"id"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &workout))

	rec = api.do(http.MethodGet, pathFor("/api/v1/workouts/%d", workout.ID), ana.token, nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"split":"ppl"`)

	rec = api.do(http.MethodPost, pathFor("/api/v1/workouts/%d/feedback", workout.ID), ana.token, map[string]int{"rating": 9})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	rec = api.do(http.MethodPost, pathFor("/api/v1/workouts/%d/feedback", workout.ID), ana.token, map[string]int{"rating": 5})
	assert.Equal(t, http.StatusCreated, rec.Code)
}

func TestThemeAndSearch(t *testing.T) {
	api := newTestAPI(t, nil)
	ana := api.signup("ana@example.com", "Ana")
	api.signup("anabel@example.com", "Anabel")

	rec := api.do(http.MethodPatch, "/api/v1/users/me/theme", ana.token, map[string]string{"theme": "neon"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	rec = api.do(http.MethodPatch, "/api/v1/users/me/theme", ana.token, map[string]string{"theme": "dark"})
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = api.do(http.MethodGet, "/api/v1/users/me", ana.token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"theme":"dark"`)
	assert.NotContains(t, rec.Body.String(), "password")

	rec = api.do(http.MethodGet, "/api/v1/users/search?q=ana", ana.token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Anabel")
}

func strPtr(s string) *string { return &s }

func TestExerciseEndpoints(t *testing.T) {
	catalog := exercises.New([]exercises.Exercise{
		{ID: "a", Name: "Bench Press", Category: "strength", Equipment: strPtr("barbell"), PrimaryMuscles: []string{"chest"}},
		{ID: "b", Name: "Squat", Category: "strength", Equipment: strPtr("barbell"), PrimaryMuscles: []string{"quadriceps"}},
	})
	api := newTestAPI(t, catalog)

	rec := api.do(http.MethodGet, "/exercises/health", "", nil)
	assert.JSONEq(t, `{"status":"healthy","exercises_loaded":2}`, rec.Body.String())

	rec = api.do(http.MethodGet, "/exercises?per_page=1", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"has_more":true`)

	rec = api.do(http.MethodGet, "/exercises/search?q=squat", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"total_found":1`)

	rec = api.do(http.MethodGet, "/exercises/search?limit=500", "", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = api.do(http.MethodGet, "/exercises/by-muscle/chest", "", nil)
	assert.Contains(t, rec.Body.String(), `"count":1`)

	rec = api.do(http.MethodGet, "/exercises/random?count=0", "", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = api.do(http.MethodGet, "/exercises/stats", "", nil)
	assert.Contains(t, rec.Body.String(), `"total_exercises":2`)
}

func TestExerciseEndpointsWithoutCatalog(t *testing.T) {
	api := newTestAPI(t, nil)
	rec := api.do(http.MethodGet, "/exercises/muscle-groups", "", nil)
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.Equal(t, "Exercise data not loaded", errorMessage(t, rec))
}

func pathFor(format string, id uint) string {
	return fmt.Sprintf(format, id)
}
