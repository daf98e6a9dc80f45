package router

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"portfolio/internal/auth"
	"portfolio/internal/cache"
	"portfolio/internal/config"
	"portfolio/internal/db"
	"portfolio/internal/handler"
	"portfolio/internal/repository"
	"portfolio/internal/service"
)

type testServer struct {
	e   *echo.Echo
	cfg *config.Config
}

func newTestServer(t *testing.T, cfg *config.Config) *testServer {
	t.Helper()
	if cfg == nil {
		cfg = &config.Config{InitAdminEnabled: true, LoginRateLimit: 1000, MessageRateLimit: 1000}
	}

	gormDB, err := db.NewSQLite("file:" + uuid.NewString() + "?mode=memory&cache=shared")
	require.NoError(t, err)
	require.NoError(t, db.Migrate(gormDB))
	t.Cleanup(func() {
		if sqlDB, err := gormDB.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})

	cacheClient := cache.NewMemory()
	sessions := auth.NewSessionService("router-test-secret", auth.NewTokenStore(cacheClient))

	authService := service.NewAuthService(repository.NewAdminRepository(gormDB), sessions)
	h := Handlers{
		Auth:    handler.NewAuthHandler(authService, cfg.CookieSecure),
		Skill:   handler.NewSkillHandler(service.NewSkillService(repository.NewSkillRepository(gormDB), cacheClient, cfg.CacheTTL)),
		Project: handler.NewProjectHandler(service.NewProjectService(repository.NewProjectRepository(gormDB), cacheClient, cfg.CacheTTL)),
		Info: handler.NewInfoHandler(
			service.NewAboutService(repository.NewAboutInfoRepository(gormDB), cacheClient, cfg.CacheTTL),
			service.NewContactService(repository.NewContactInfoRepository(gormDB), cacheClient, cfg.CacheTTL),
		),
		Message: handler.NewMessageHandler(service.NewMessageService(repository.NewMessageRepository(gormDB))),
	}

	e := echo.New()
	Register(e, cfg, h, sessions)
	return &testServer{e: e, cfg: cfg}
}

func (s *testServer) do(t *testing.T, method, path, body string, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	for _, c := range cookies {
		req.AddCookie(c)
	}
	rec := httptest.NewRecorder()
	s.e.ServeHTTP(rec, req)
	return rec
}

// login creates the admin and returns the session cookie.
func (s *testServer) login(t *testing.T) *http.Cookie {
	t.Helper()
	creds := `{"username":"admin","password":"s3cret"}`
	rec := s.do(t, http.MethodPost, "/api/init-admin", creds)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	rec = s.do(t, http.MethodPost, "/api/auth/login", creds)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	return sessionCookie(t, rec)
}

func sessionCookie(t *testing.T, rec *httptest.ResponseRecorder) *http.Cookie {
	t.Helper()
	for _, c := range rec.Result().Cookies() {
		if c.Name == auth.SessionCookieName {
			return c
		}
	}
	t.Fatalf("no %s cookie in response", auth.SessionCookieName)
	return nil
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body), rec.Body.String())
	return body
}

func TestRoot(t *testing.T) {
	s := newTestServer(t, nil)

	rec := s.do(t, http.MethodGet, "/", "")
	require.Equal(t, http.StatusOK, rec.Code)
	body := decode(t, rec)
	assert.Equal(t, "ok", body["status"])
	assert.Equal(t, "Portfolio API is running", body["message"])

	rec = s.do(t, http.MethodGet, "/healthz", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ok", rec.Body.String())
}

func TestLoginSetsSessionCookie(t *testing.T) {
	s := newTestServer(t, nil)
	cookie := s.login(t)

	assert.NotEmpty(t, cookie.Value)
	assert.True(t, cookie.HttpOnly)
	assert.Equal(t, "/", cookie.Path)
	assert.Equal(t, 86400, cookie.MaxAge)
	assert.Equal(t, http.SameSiteLaxMode, cookie.SameSite)

	rec := s.do(t, http.MethodGet, "/api/auth/check", "", cookie)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, true, decode(t, rec)["authenticated"])
}

func TestLoginBodyHasNoToken(t *testing.T) {
	s := newTestServer(t, nil)
	creds := `{"username":"admin","password":"s3cret"}`
	require.Equal(t, http.StatusOK, s.do(t, http.MethodPost, "/api/init-admin", creds).Code)

	rec := s.do(t, http.MethodPost, "/api/auth/login", creds)
	require.Equal(t, http.StatusOK, rec.Code)
	cookie := sessionCookie(t, rec)
	assert.NotContains(t, rec.Body.String(), cookie.Value)
	body := decode(t, rec)
	assert.Equal(t, true, body["success"])
}

func TestLoginFailures(t *testing.T) {
	s := newTestServer(t, nil)
	require.Equal(t, http.StatusOK, s.do(t, http.MethodPost, "/api/init-admin", `{"username":"admin","password":"s3cret"}`).Code)

	wrongPassword := s.do(t, http.MethodPost, "/api/auth/login", `{"username":"admin","password":"nope"}`)
	unknownUser := s.do(t, http.MethodPost, "/api/auth/login", `{"username":"ghost","password":"s3cret"}`)
	missing := s.do(t, http.MethodPost, "/api/auth/login", `{"username":"admin"}`)

	assert.Equal(t, http.StatusUnauthorized, wrongPassword.Code)
	assert.Equal(t, http.StatusUnauthorized, unknownUser.Code)
	assert.Equal(t, wrongPassword.Body.String(), unknownUser.Body.String())
	assert.Empty(t, wrongPassword.Result().Cookies())
	assert.Equal(t, http.StatusBadRequest, missing.Code)
}

func TestInitAdminConflict(t *testing.T) {
	s := newTestServer(t, nil)
	creds := `{"username":"admin","password":"s3cret"}`
	require.Equal(t, http.StatusOK, s.do(t, http.MethodPost, "/api/init-admin", creds).Code)

	rec := s.do(t, http.MethodPost, "/api/init-admin", creds)
	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Equal(t, "ADMIN_EXISTS", decode(t, rec)["code"])
}

func TestInitAdminDisabled(t *testing.T) {
	s := newTestServer(t, &config.Config{InitAdminEnabled: false})
	rec := s.do(t, http.MethodPost, "/api/init-admin", `{"username":"admin","password":"s3cret"}`)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestCheckWithoutSession(t *testing.T) {
	s := newTestServer(t, nil)

	rec := s.do(t, http.MethodGet, "/api/auth/check", "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, false, decode(t, rec)["authenticated"])

	rec = s.do(t, http.MethodGet, "/api/auth/check", "", &http.Cookie{Name: auth.SessionCookieName, Value: "garbage"})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestLogoutClearsAndRevokesSession(t *testing.T) {
	s := newTestServer(t, nil)
	cookie := s.login(t)

	rec := s.do(t, http.MethodPost, "/api/auth/logout", "", cookie)
	require.Equal(t, http.StatusOK, rec.Code)
	cleared := sessionCookie(t, rec)
	assert.Empty(t, cleared.Value)
	assert.Less(t, cleared.MaxAge, 0)

	rec = s.do(t, http.MethodGet, "/api/auth/check", "", cookie)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = s.do(t, http.MethodPost, "/api/auth/logout", "")
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestSessionGuard(t *testing.T) {
	s := newTestServer(t, nil)
	skill := `{"name":"Go","description":"Backend","iconUrl":"https://x/go.svg"}`

	protected := []struct {
		method, path, body string
	}{
		{http.MethodPost, "/api/skills", skill},
		{http.MethodPut, "/api/skills/x", skill},
		{http.MethodDelete, "/api/skills/x", ""},
		{http.MethodPost, "/api/projects", `{"title":"t","description":"d","technologies":["Go"]}`},
		{http.MethodPut, "/api/projects/x", `{"title":"t","description":"d","technologies":["Go"]}`},
		{http.MethodDelete, "/api/projects/x", ""},
		{http.MethodPut, "/api/about", `{"key":"bio","value":"hi"}`},
		{http.MethodPut, "/api/contact-info", `{"key":"email","value":"me@example.com"}`},
		{http.MethodGet, "/api/messages", ""},
		{http.MethodPut, "/api/messages/x", `{"read":true}`},
		{http.MethodDelete, "/api/messages/x", ""},
	}
	for _, p := range protected {
		t.Run(p.method+" "+p.path, func(t *testing.T) {
			rec := s.do(t, p.method, p.path, p.body)
			assert.Equal(t, http.StatusUnauthorized, rec.Code)
		})
	}

	rec := s.do(t, http.MethodGet, "/api/skills", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, decode(t, rec)["skills"])

	cookie := s.login(t)
	rec = s.do(t, http.MethodPost, "/api/skills", skill, cookie)
	assert.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
}

func TestSkillEndpoints(t *testing.T) {
	s := newTestServer(t, nil)
	cookie := s.login(t)

	rec := s.do(t, http.MethodPost, "/api/skills", `{"name":"Go","description":"Backend","iconUrl":"https://x/go.svg"}`, cookie)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	created := decode(t, rec)["skill"].(map[string]interface{})
	assert.Equal(t, "image", created["type"])
	assert.Equal(t, "Backend", created["category"])
	assert.Equal(t, float64(0), created["order"])
	id := created["id"].(string)

	rec = s.do(t, http.MethodPost, "/api/skills", `{"name":"Go","description":"Backend"}`, cookie)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "name, description, and iconUrl are required", decode(t, rec)["error"])

	rec = s.do(t, http.MethodPost, "/api/skills", `{"name":"Go","description":"d","iconUrl":"u","type":"svg"}`, cookie)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = s.do(t, http.MethodPut, "/api/skills/"+id, `{"name":"Go","description":"Systems","iconUrl":"u","order":2}`, cookie)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Systems", decode(t, rec)["skill"].(map[string]interface{})["description"])

	rec = s.do(t, http.MethodPut, "/api/skills/missing", `{"name":"Go","description":"d","iconUrl":"u"}`, cookie)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = s.do(t, http.MethodDelete, "/api/skills/"+id, "", cookie)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, true, decode(t, rec)["success"])

	rec = s.do(t, http.MethodGet, "/api/skills", "")
	assert.Empty(t, decode(t, rec)["skills"])
}

func TestProjectEndpoints(t *testing.T) {
	s := newTestServer(t, nil)
	cookie := s.login(t)

	rec := s.do(t, http.MethodPost, "/api/projects", `{"title":"API","description":"Backend","technologies":["Go","Redis"]}`, cookie)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	project := decode(t, rec)["project"].(map[string]interface{})
	assert.Equal(t, true, project["featured"])
	assert.Nil(t, project["projectUrl"])
	assert.Equal(t, []interface{}{"Go", "Redis"}, project["technologies"])

	rec = s.do(t, http.MethodPost, "/api/projects", `{"title":"API","description":"Backend","technologies":[]}`, cookie)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = s.do(t, http.MethodPut, "/api/projects/missing", `{"title":"API","description":"Backend","technologies":["Go"]}`, cookie)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "NOT_FOUND", decode(t, rec)["code"])

	rec = s.do(t, http.MethodGet, "/api/projects", "")
	require.Equal(t, http.StatusOK, rec.Code)
	projects := decode(t, rec)["projects"].([]interface{})
	require.Len(t, projects, 1)
	assert.Equal(t, []interface{}{"Go", "Redis"}, projects[0].(map[string]interface{})["technologies"])
}

func TestInfoEndpoints(t *testing.T) {
	s := newTestServer(t, nil)
	cookie := s.login(t)

	rec := s.do(t, http.MethodGet, "/api/about", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, map[string]interface{}{}, decode(t, rec)["aboutInfo"])

	for _, value := range []string{"first", "second"} {
		rec = s.do(t, http.MethodPut, "/api/about", `{"key":"bio","value":"`+value+`"}`, cookie)
		require.Equal(t, http.StatusOK, rec.Code)
	}
	rec = s.do(t, http.MethodGet, "/api/about", "")
	assert.Equal(t, map[string]interface{}{"bio": "second"}, decode(t, rec)["aboutInfo"])

	rec = s.do(t, http.MethodPut, "/api/contact-info", `{"key":"email"}`, cookie)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = s.do(t, http.MethodPut, "/api/contact-info", `{"key":"phone","value":""}`, cookie)
	require.Equal(t, http.StatusOK, rec.Code)
	rec = s.do(t, http.MethodGet, "/api/contact-info", "")
	assert.Equal(t, map[string]interface{}{"phone": ""}, decode(t, rec)["contactInfo"])
}

func TestMessageEndpoints(t *testing.T) {
	s := newTestServer(t, nil)

	rec := s.do(t, http.MethodPost, "/api/messages", `{"name":"Ada","email":"ada@example.com"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = s.do(t, http.MethodPost, "/api/messages", `{"name":"Ada","email":"not-an-email","message":"hi"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "email must be a valid email address", decode(t, rec)["error"])

	rec = s.do(t, http.MethodPost, "/api/messages", `{"name":"Ada","email":"ada@example.com","message":"Hello"}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	msg := decode(t, rec)["message"].(map[string]interface{})
	assert.Equal(t, false, msg["read"])
	id := msg["id"].(string)

	cookie := s.login(t)
	rec = s.do(t, http.MethodGet, "/api/messages", "", cookie)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, decode(t, rec)["messages"], 1)

	rec = s.do(t, http.MethodPut, "/api/messages/"+id, `{"read":true}`, cookie)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, true, decode(t, rec)["message"].(map[string]interface{})["read"])

	rec = s.do(t, http.MethodPut, "/api/messages/missing", `{"read":true}`, cookie)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = s.do(t, http.MethodDelete, "/api/messages/missing", "", cookie)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestMessageRateLimit(t *testing.T) {
	s := newTestServer(t, &config.Config{MessageRateLimit: 1})
	body := `{"name":"Ada","email":"ada@example.com","message":"Hello"}`

	assert.Equal(t, http.StatusOK, s.do(t, http.MethodPost, "/api/messages", body).Code)
	assert.Equal(t, http.StatusTooManyRequests, s.do(t, http.MethodPost, "/api/messages", body).Code)
}

func TestLoginRateLimitIgnoresSpoofedForwardedFor(t *testing.T) {
	s := newTestServer(t, &config.Config{LoginRateLimit: 1})

	var codes []int
	for _, spoofed := range []string{"1.1.1.1", "2.2.2.2", "3.3.3.3", "4.4.4.4"} {
		req := httptest.NewRequest(http.MethodPost, "/api/auth/login", strings.NewReader(`{"username":"admin","password":"nope"}`))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
		req.Header.Set(echo.HeaderXForwardedFor, spoofed)
		req.RemoteAddr = "203.0.113.9:40000"
		rec := httptest.NewRecorder()
		s.e.ServeHTTP(rec, req)
		codes = append(codes, rec.Code)
	}

	assert.Equal(t, []int{http.StatusUnauthorized, http.StatusTooManyRequests, http.StatusTooManyRequests, http.StatusTooManyRequests}, codes)
}

func TestRateLimitTrustsPrivateProxy(t *testing.T) {
	s := newTestServer(t, &config.Config{MessageRateLimit: 1})
	body := `{"name":"Ada","email":"ada@example.com","message":"Hello"}`

	for _, client := range []string{"198.51.100.1", "198.51.100.2"} {
		req := httptest.NewRequest(http.MethodPost, "/api/messages", strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
		req.Header.Set(echo.HeaderXForwardedFor, client)
		req.RemoteAddr = "10.0.0.2:40000"
		rec := httptest.NewRecorder()
		s.e.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusOK, rec.Code, client)
	}
}

func TestCORSAllowsCredentials(t *testing.T) {
	s := newTestServer(t, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/skills", nil)
	req.Header.Set("Origin", "https://portfolio.example")
	rec := httptest.NewRecorder()
	s.e.ServeHTTP(rec, req)

	assert.Equal(t, "https://portfolio.example", rec.Header().Get("Access-Control-Allow-Origin"))
	assert.Equal(t, "true", rec.Header().Get("Access-Control-Allow-Credentials"))
}
