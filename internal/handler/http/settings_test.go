package http

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/jwtauth/v5"

	"github.com/punchdeck/attendance-backend-go/internal/domain/policy"
	"github.com/punchdeck/attendance-backend-go/internal/handler/http/middleware"
	"github.com/punchdeck/attendance-backend-go/internal/pkg/jwt"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSettingsService struct {
	values map[string]string
}

func (f *fakeSettingsService) Values(ctx context.Context) (map[string]string, error) {
	return f.values, nil
}

func (f *fakeSettingsService) Update(ctx context.Context, values map[string]string) (map[string]string, error) {
	for k, v := range values {
		f.values[k] = v
	}
	return f.values, nil
}

func (f *fakeSettingsService) Snapshot(ctx context.Context) (policy.Policy, error) {
	return policy.FromValues(f.values), nil
}

func decodeEnvelope(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

func TestSettingsHandler_Get(t *testing.T) {
	handler := NewSettingsHandler(&fakeSettingsService{values: policy.DefaultValues()})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/settings", nil)
	rec := httptest.NewRecorder()
	handler.Get(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	body := decodeEnvelope(t, rec)
	assert.Equal(t, true, body["success"])
	data := body["data"].(map[string]any)
	assert.Equal(t, "09:30", data["standard_start_time"])
	assert.Equal(t, "14:00", data["half_day_time"])
}

func TestSettingsHandler_Update(t *testing.T) {
	svc := &fakeSettingsService{values: policy.DefaultValues()}
	handler := NewSettingsHandler(svc)

	payload, _ := json.Marshal(map[string]string{"standard_start_time": "10:00"})
	req := httptest.NewRequest(http.MethodPost, "/api/v1/settings", bytes.NewReader(payload))
	rec := httptest.NewRecorder()
	handler.Update(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "10:00", svc.values["standard_start_time"])
}

func TestSettingsHandler_UpdateRejectsEmptyBody(t *testing.T) {
	handler := NewSettingsHandler(&fakeSettingsService{values: policy.DefaultValues()})

	req := httptest.NewRequest(http.MethodPost, "/api/v1/settings", bytes.NewReader([]byte(`{}`)))
	rec := httptest.NewRecorder()
	handler.Update(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestAuthRequired_RejectsMissingToken(t *testing.T) {
	jwtService := jwt.NewJWTService("test-secret-key-for-jwt", "1h", "24h")

	protected := middleware.AuthRequired(jwtService.JWTAuth())(
		http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusOK)
		}))
	wrapped := jwtauth.Verifier(jwtService.JWTAuth())(protected)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/statistics", nil)
	rec := httptest.NewRecorder()
	wrapped.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthRequired_AcceptsAccessToken(t *testing.T) {
	jwtService := jwt.NewJWTService("test-secret-key-for-jwt", "1h", "24h")
	token, _, err := jwtService.GenerateAccessToken("user-1", "admin@example.com")
	require.NoError(t, err)

	protected := middleware.AuthRequired(jwtService.JWTAuth())(
		http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusOK)
		}))
	wrapped := jwtauth.Verifier(jwtService.JWTAuth())(protected)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/statistics", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	wrapped.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestAuthRequired_RejectsRefreshToken(t *testing.T) {
	jwtService := jwt.NewJWTService("test-secret-key-for-jwt", "1h", "24h")
	token, _, err := jwtService.GenerateRefreshToken("user-1")
	require.NoError(t, err)

	protected := middleware.AuthRequired(jwtService.JWTAuth())(
		http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusOK)
		}))
	wrapped := jwtauth.Verifier(jwtService.JWTAuth())(protected)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/statistics", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	wrapped.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
