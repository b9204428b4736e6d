package handlers_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/localboost/localboost-backend/internal/handlers"
	"github.com/localboost/localboost-backend/internal/routes"
	"github.com/localboost/localboost-backend/internal/services"
)

func newRouter() *chi.Mux {
	r := chi.NewRouter()
	routes.SetupRoutes(r)
	return r
}

func TestSearchHelpEmptyQuery(t *testing.T) {
	rec := httptest.NewRecorder()
	newRouter().ServeHTTP(rec, httptest.NewRequest("GET", "/api/help/search", nil))

	require.Equal(t, http.StatusOK, rec.Code)

	var resp handlers.SearchHelpResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Equal(t, "", resp.Query)
	assert.Equal(t, len(services.AllHelpTopics()), resp.Total)
	for _, topic := range resp.Results {
		assert.Zero(t, topic.Relevance)
	}
}

func TestSearchHelpRanked(t *testing.T) {
	rec := httptest.NewRecorder()
	newRouter().ServeHTTP(rec, httptest.NewRequest("GET", "/api/help/search?q=captcha", nil))

	require.Equal(t, http.StatusOK, rec.Code)

	var resp handlers.SearchHelpResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	require.NotEmpty(t, resp.Results)
	assert.Equal(t, "captcha", resp.Query)
	for i := 1; i < len(resp.Results); i++ {
		assert.GreaterOrEqual(t, resp.Results[i-1].Relevance, resp.Results[i].Relevance)
	}
}

func TestCreateReviewValidationDoesNotBurnCaptcha(t *testing.T) {
	// Fixable mistakes are reported before the review token is even looked
	// at, so the caller keeps their solved CAPTCHA for the retry.
	cases := []struct {
		name string
		body string
		want string
	}{
		{
			"invalid rating",
			`{"business_id":"5f8a2d1e-0000-4000-8000-000000000001","rating":9,"content":"wonderful place to eat"}`,
			"Rating must be between 1 and 5",
		},
		{
			// nine characters in twenty-seven bytes; counted as characters
			"short multibyte content",
			`{"business_id":"5f8a2d1e-0000-4000-8000-000000000001","rating":5,"content":"ありがとう存じます"}`,
			"Review must be at least 10 characters long",
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			newRouter().ServeHTTP(rec, httptest.NewRequest("POST", "/api/reviews", strings.NewReader(tc.body)))

			require.Equal(t, http.StatusBadRequest, rec.Code)

			var resp handlers.CreateReviewResponse
			require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
			assert.False(t, resp.Success)
			assert.Equal(t, tc.want, resp.Message)
		})
	}
}

func TestCreateReviewBadBusinessID(t *testing.T) {
	body := strings.NewReader(`{"business_id":"x","rating":5,"content":"wonderful place to eat"}`)
	rec := httptest.NewRecorder()
	newRouter().ServeHTTP(rec, httptest.NewRequest("POST", "/api/reviews", body))

	require.Equal(t, http.StatusNotFound, rec.Code)

	var resp handlers.CreateReviewResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.False(t, resp.Success)
	assert.Equal(t, "Business not found", resp.Message)
}

func TestVerifyCaptchaBadBody(t *testing.T) {
	rec := httptest.NewRecorder()
	newRouter().ServeHTTP(rec, httptest.NewRequest("POST", "/api/captcha/verify", strings.NewReader("{")))

	require.Equal(t, http.StatusBadRequest, rec.Code)

	var resp handlers.VerifyCaptchaResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.False(t, resp.Success)
}

func TestVerifyCaptchaSetsVisitorCookie(t *testing.T) {
	rec := httptest.NewRecorder()
	newRouter().ServeHTTP(rec, httptest.NewRequest("POST", "/api/captcha/verify", strings.NewReader("{")))

	var found bool
	for _, c := range rec.Result().Cookies() {
		if c.Name == services.VisitorCookie {
			found = true
			assert.True(t, c.HttpOnly)
			assert.NotEmpty(t, c.Value)
		}
	}
	assert.True(t, found, "first contact should receive a visitor cookie")
}

func TestGetBusinessDetailBadID(t *testing.T) {
	rec := httptest.NewRecorder()
	newRouter().ServeHTTP(rec, httptest.NewRequest("GET", "/api/businesses/not-a-uuid", nil))

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestRemoveFavoriteBadID(t *testing.T) {
	rec := httptest.NewRecorder()
	newRouter().ServeHTTP(rec, httptest.NewRequest("DELETE", "/api/favorites/not-a-uuid", nil))

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestUploadPhotoUnconfigured(t *testing.T) {
	prev := handlers.Cloudinary
	handlers.Cloudinary = nil
	defer func() { handlers.Cloudinary = prev }()

	rec := httptest.NewRecorder()
	newRouter().ServeHTTP(rec, httptest.NewRequest("POST", "/api/businesses/x/photo", nil))

	require.Equal(t, http.StatusServiceUnavailable, rec.Code)

	var resp handlers.UploadPhotoResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.False(t, resp.Success)
}

func TestSignupValidation(t *testing.T) {
	cases := []struct {
		name string
		body string
		want string
	}{
		{"short username", `{"username":"ab","email":"a@b.com","password":"longenough"}`, "Username must be at least 3 characters long"},
		{"bad email", `{"username":"alice","email":"nope","password":"longenough"}`, "A valid email address is required"},
		{"short password", `{"username":"alice","email":"a@b.com","password":"short"}`, "Password must be at least 8 characters long"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			newRouter().ServeHTTP(rec, httptest.NewRequest("POST", "/api/auth/signup", strings.NewReader(tc.body)))

			require.Equal(t, http.StatusBadRequest, rec.Code)

			var resp handlers.AuthResponse
			require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
			assert.False(t, resp.Success)
			assert.Equal(t, tc.want, resp.Message)
		})
	}
}

func TestGetMeWithoutSession(t *testing.T) {
	rec := httptest.NewRecorder()
	newRouter().ServeHTTP(rec, httptest.NewRequest("GET", "/api/auth/me", nil))

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
