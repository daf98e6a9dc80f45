package router

import (
	"net/http"
	"time"

	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/cors"
	echoSwagger "github.com/swaggo/echo-swagger"
	"golang.org/x/time/rate"

	"portfolio/internal/auth"
	"portfolio/internal/config"
	apperrors "portfolio/internal/errors"
	"portfolio/internal/handler"
	"portfolio/internal/metrics"
)

// Handlers groups the HTTP handlers mounted by Register.
type Handlers struct {
	Auth    *handler.AuthHandler
	Skill   *handler.SkillHandler
	Project *handler.ProjectHandler
	Info    *handler.InfoHandler
	Message *handler.MessageHandler
}

// Register wires routes and middleware.
func Register(e *echo.Echo, cfg *config.Config, h Handlers, sessions *auth.SessionService) {
	// X-Forwarded-For is honoured only when set by a proxy on loopback or a
	// private network; anyone else is identified by the socket address.
	e.IPExtractor = echo.ExtractIPFromXFFHeader(
		echo.TrustLoopback(true),
		echo.TrustLinkLocal(false),
		echo.TrustPrivateNet(true),
	)

	e.Use(middleware.RequestID())
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	e.Use(echo.WrapMiddleware(newCORS().Handler))
	e.Use(metrics.Middleware())

	e.Validator = NewCustomValidator()

	e.GET("/", handler.Root)
	e.GET("/healthz", handler.Healthz)
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	api := e.Group("/api")
	guard := SessionGuard(sessions)

	// Auth
	api.POST("/auth/login", h.Auth.Login, RateLimit(cfg.LoginRateLimit))
	api.GET("/auth/check", h.Auth.Check)
	api.POST("/auth/logout", h.Auth.Logout)
	if cfg.InitAdminEnabled {
		api.POST("/init-admin", h.Auth.InitAdmin)
	}

	// Skills
	api.GET("/skills", h.Skill.ListSkills)
	api.POST("/skills", h.Skill.CreateSkill, guard)
	api.PUT("/skills/:id", h.Skill.UpdateSkill, guard)
	api.DELETE("/skills/:id", h.Skill.DeleteSkill, guard)

	// Projects
	api.GET("/projects", h.Project.ListProjects)
	api.POST("/projects", h.Project.CreateProject, guard)
	api.PUT("/projects/:id", h.Project.UpdateProject, guard)
	api.DELETE("/projects/:id", h.Project.DeleteProject, guard)

	// About and contact
	api.GET("/about", h.Info.GetAbout)
	api.PUT("/about", h.Info.UpdateAbout, guard)
	api.GET("/contact-info", h.Info.GetContact)
	api.PUT("/contact-info", h.Info.UpdateContact, guard)

	// Messages
	api.POST("/messages", h.Message.CreateMessage, RateLimit(cfg.MessageRateLimit))
	api.GET("/messages", h.Message.ListMessages, guard)
	api.PUT("/messages/:id", h.Message.MarkRead, guard)
	api.DELETE("/messages/:id", h.Message.DeleteMessage, guard)
}

func newCORS() *cors.Cors {
	return cors.New(cors.Options{
		AllowOriginFunc:  func(string) bool { return true },
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowedHeaders:   []string{"Content-Type", "Authorization"},
		AllowCredentials: true,
	})
}

// SessionGuard rejects requests without a live session cookie. The verified
// claims are stored under the "session" context key.
func SessionGuard(sessions *auth.SessionService) echo.MiddlewareFunc {
	return echojwt.WithConfig(echojwt.Config{
		ContextKey:  "session",
		TokenLookup: "cookie:" + auth.SessionCookieName,
		ParseTokenFunc: func(c echo.Context, token string) (interface{}, error) {
			return sessions.Verify(c.Request().Context(), token)
		},
		ErrorHandler: func(c echo.Context, err error) error {
			httpErr := apperrors.MapErrorToHTTP(apperrors.ErrInvalidSession)
			return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
		},
	})
}

// RateLimit allows perMinute requests per client IP, with bursts of the
// same size. A non-positive limit disables limiting.
func RateLimit(perMinute int) echo.MiddlewareFunc {
	if perMinute <= 0 {
		return func(next echo.HandlerFunc) echo.HandlerFunc { return next }
	}
	store := middleware.NewRateLimiterMemoryStoreWithConfig(middleware.RateLimiterMemoryStoreConfig{
		Rate:      rate.Limit(float64(perMinute) / 60),
		Burst:     perMinute,
		ExpiresIn: 3 * time.Minute,
	})
	return middleware.RateLimiterWithConfig(middleware.RateLimiterConfig{
		Store: store,
		IdentifierExtractor: func(c echo.Context) (string, error) {
			return c.RealIP(), nil
		},
		ErrorHandler: func(c echo.Context, err error) error {
			return echo.NewHTTPError(http.StatusForbidden, apperrors.ErrorResponse{
				Error: "unable to identify client",
				Code:  "FORBIDDEN",
			})
		},
		DenyHandler: func(c echo.Context, identifier string, err error) error {
			return echo.NewHTTPError(http.StatusTooManyRequests, apperrors.ErrorResponse{
				Error: "too many requests",
				Code:  "RATE_LIMITED",
			})
		},
	})
}
