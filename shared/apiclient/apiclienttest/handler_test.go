package apiclienttest

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/typewell/typewell/shared/api"
	"github.com/typewell/typewell/shared/jwt"
)

func createRequest(t *testing.T, method, url string, body []byte, cookies ...*http.Cookie) *http.Request {
	t.Helper()
	req := httptest.NewRequest(method, url, bytes.NewBuffer(body))
	for _, c := range cookies {
		req.AddCookie(c)
	}
	return req
}

func newTestRouter(t *testing.T) http.Handler {
	t.Helper()
	return NewRouter(NewHandler(NewStore(), NewAuth(jwt.New("test", time.Hour), false)))
}

func sessionCookie(t *testing.T, rr *httptest.ResponseRecorder) *http.Cookie {
	t.Helper()
	for _, c := range rr.Result().Cookies() {
		if c.Name == jwt.CookieName {
			return c
		}
	}
	t.Fatalf("no %s cookie in response", jwt.CookieName)
	return nil
}

func TestRegister_SetsSessionAndSanitizes(t *testing.T) {
	router := newTestRouter(t)

	rr := httptest.NewRecorder()
	body := []byte(`{"username":"<b>alice</b>","email":"a@b.com","password":"x"}`)
	router.ServeHTTP(rr, createRequest(t, http.MethodPost, "/register", body))

	require.Equal(t, http.StatusCreated, rr.Code)
	cookie := sessionCookie(t, rr)
	assert.True(t, cookie.HttpOnly)

	var resp api.AuthResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	require.NotNil(t, resp.User)
	assert.Equal(t, "alice", resp.User.Username)
}

func TestRegister_MarkupOnlyUsername(t *testing.T) {
	router := newTestRouter(t)

	rr := httptest.NewRecorder()
	body := []byte(`{"username":"<script></script>","email":"a@b.com","password":"x"}`)
	router.ServeHTTP(rr, createRequest(t, http.MethodPost, "/register", body))

	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.JSONEq(t, `{"error":"Username is empty"}`, rr.Body.String())
}

func TestAuthRequiredRoutes(t *testing.T) {
	router := newTestRouter(t)
	routes := []struct {
		method string
		path   string
	}{
		{http.MethodGet, "/user"},
		{http.MethodPatch, "/user"},
		{http.MethodDelete, "/user"},
		{http.MethodDelete, "/user/stats"},
		{http.MethodPatch, "/user/profilepicture"},
		{http.MethodPatch, "/user/profilepicture/reset"},
		{http.MethodPatch, "/user/badges"},
		{http.MethodPatch, "/user/settings"},
		{http.MethodPost, "/edit/username"},
		{http.MethodPost, "/edit/email"},
	}
	for _, rt := range routes {
		t.Run(rt.method+" "+rt.path, func(t *testing.T) {
			t.Run("no cookie", func(t *testing.T) {
				rr := httptest.NewRecorder()
				router.ServeHTTP(rr, createRequest(t, rt.method, rt.path, nil))
				assert.Equal(t, http.StatusUnauthorized, rr.Code)
				assert.JSONEq(t, `{"error":"Please sign-in"}`, rr.Body.String())
			})
			t.Run("forged cookie", func(t *testing.T) {
				rr := httptest.NewRecorder()
				forged := &http.Cookie{Name: jwt.CookieName, Value: "forged"}
				router.ServeHTTP(rr, createRequest(t, rt.method, rt.path, nil, forged))
				assert.Equal(t, http.StatusUnauthorized, rr.Code)
			})
		})
	}
}

func TestUpdateSettings_RejectsNonObject(t *testing.T) {
	router := newTestRouter(t)

	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, createRequest(t, http.MethodPost, "/register", []byte(`{"username":"alice","email":"a@b.com","password":"x"}`)))
	require.Equal(t, http.StatusCreated, rr.Code)
	cookie := sessionCookie(t, rr)

	for _, body := range []string{`null`, `[1,2]`, `nope`} {
		rr = httptest.NewRecorder()
		router.ServeHTTP(rr, createRequest(t, http.MethodPatch, "/user/settings", []byte(body), cookie))
		assert.Equal(t, http.StatusBadRequest, rr.Code, body)
	}

	rr = httptest.NewRecorder()
	router.ServeHTTP(rr, createRequest(t, http.MethodPatch, "/user/settings", []byte(`{"caret":"line"}`), cookie))
	require.Equal(t, http.StatusOK, rr.Code)
	var resp api.UserResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.Equal(t, "line", resp.User.Settings["caret"])
}

func TestUnknownRoute(t *testing.T) {
	router := newTestRouter(t)

	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, createRequest(t, http.MethodGet, "/nope", nil))
	assert.Equal(t, http.StatusNotFound, rr.Code)
	assert.Equal(t, "application/json", rr.Header().Get("Content-Type"))

	rr = httptest.NewRecorder()
	router.ServeHTTP(rr, createRequest(t, http.MethodPut, "/login", nil))
	assert.Equal(t, http.StatusMethodNotAllowed, rr.Code)
}

func TestRecorder(t *testing.T) {
	srv := NewServer()
	defer srv.Close()

	resp, err := http.Post(srv.URL+"/user/search", "application/json", bytes.NewBufferString(`{"query":"x"}`))
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	req, ok := srv.Last()
	require.True(t, ok)
	assert.Equal(t, http.MethodPost, req.Method)
	assert.Equal(t, "/user/search", req.Path)
	assert.Equal(t, `{"query":"x"}`, string(req.Body))

	srv.Reset()
	_, ok = srv.Last()
	assert.False(t, ok)
}

func TestLimitCredentials(t *testing.T) {
	calls := 0
	deny := func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			calls++
			w.WriteHeader(http.StatusTooManyRequests)
		})
	}
	h := NewHandler(NewStore(), NewAuth(jwt.New("test", time.Hour), false)).LimitCredentials(deny)
	router := NewRouter(h)

	for _, path := range []string{"/register", "/login", "/confirm"} {
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, createRequest(t, http.MethodPost, path, []byte(`{}`)))
		assert.Equal(t, http.StatusTooManyRequests, rr.Code, path)
	}

	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, createRequest(t, http.MethodPost, "/user/search", []byte(`{"query":"x"}`)))
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, 3, calls)
}
