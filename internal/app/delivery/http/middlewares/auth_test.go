package middlewares

import (
	"caresync-service/internal/app/config"
	"caresync-service/internal/pkg/constvars"
	"caresync-service/internal/pkg/utils"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func testMiddlewares() *Middlewares {
	return NewMiddlewares(zap.NewNop(), &config.InternalConfig{
		JWT: config.JWT{Secret: "test-secret", ExpTimeInHour: 1},
	})
}

func TestStaffAuthValidToken(t *testing.T) {
	m := testMiddlewares()

	token, err := utils.GenerateStaffJWT("staff-42", "test-secret", 1)
	require.NoError(t, err)

	var gotStaffID string
	handler := m.StaffAuth(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotStaffID, _ = r.Context().Value(constvars.CONTEXT_STAFF_ID_KEY).(string)
		w.WriteHeader(http.StatusOK)
	}))

	request := httptest.NewRequest(http.MethodPost, "/bills", nil)
	request.Header.Set(constvars.HeaderAuthorization, "Bearer "+token)
	recorder := httptest.NewRecorder()

	handler.ServeHTTP(recorder, request)

	assert.Equal(t, http.StatusOK, recorder.Code)
	assert.Equal(t, "staff-42", gotStaffID)
}

func TestStaffAuthMissingHeader(t *testing.T) {
	m := testMiddlewares()

	handler := m.StaffAuth(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler must not be reached")
	}))

	request := httptest.NewRequest(http.MethodPost, "/bills", nil)
	recorder := httptest.NewRecorder()

	handler.ServeHTTP(recorder, request)

	assert.Equal(t, http.StatusUnauthorized, recorder.Code)
}

func TestStaffAuthWrongSecret(t *testing.T) {
	m := testMiddlewares()

	token, err := utils.GenerateStaffJWT("staff-42", "another-secret", 1)
	require.NoError(t, err)

	handler := m.StaffAuth(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler must not be reached")
	}))

	request := httptest.NewRequest(http.MethodPost, "/bills", nil)
	request.Header.Set(constvars.HeaderAuthorization, "Bearer "+token)
	recorder := httptest.NewRecorder()

	handler.ServeHTTP(recorder, request)

	assert.Equal(t, http.StatusUnauthorized, recorder.Code)
}

func TestRequestIDMiddlewareGeneratesID(t *testing.T) {
	m := testMiddlewares()

	handler := m.RequestIDMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID, _ := r.Context().Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
		assert.Contains(t, requestID, constvars.REQUEST_ID_PREFIX)
		w.WriteHeader(http.StatusOK)
	}))

	request := httptest.NewRequest(http.MethodGet, "/appointments", nil)
	recorder := httptest.NewRecorder()

	handler.ServeHTTP(recorder, request)

	assert.NotEmpty(t, recorder.Header().Get(constvars.HeaderXRequestID))
}

func TestRequestIDMiddlewareKeepsClientID(t *testing.T) {
	m := testMiddlewares()

	handler := m.RequestIDMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID, _ := r.Context().Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
		assert.Equal(t, "client-supplied-id", requestID)
		w.WriteHeader(http.StatusOK)
	}))

	request := httptest.NewRequest(http.MethodGet, "/appointments", nil)
	request.Header.Set(constvars.HeaderXRequestID, "client-supplied-id")
	recorder := httptest.NewRecorder()

	handler.ServeHTTP(recorder, request)

	assert.Equal(t, "client-supplied-id", recorder.Header().Get(constvars.HeaderXRequestID))
}
