// Package httpapi exposes the authentication operations over HTTP. The
// handlers are thin: decode the payload, call the service, map the result.
package httpapi

import (
	"context"
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"

	"github.com/stnkworkshop/auth-service/internal/common"
	"github.com/stnkworkshop/auth-service/internal/logging"
	"github.com/stnkworkshop/auth-service/internal/server/config"
	"github.com/stnkworkshop/auth-service/internal/server/services"
)

const refreshCookieName = "refreshToken"

// AuthService is the service surface the handlers need.
type AuthService interface {
	Register(ctx context.Context, params services.RegisterParams) error
	VerifyCode(ctx context.Context, email string, code int) (*services.TokenPair, error)
	Login(ctx context.Context, email, password string) (*services.TokenPair, error)
	Refresh(ctx context.Context, refreshToken string) (*services.TokenPair, error)
	Logout(ctx context.Context, refreshToken string) error
}

// Server wires the fiber app, middleware, and routes around an AuthService.
type Server struct {
	app        *fiber.App
	auth       AuthService
	logger     logging.Logger
	addr       string
	refreshTTL time.Duration
}

// NewServer builds the HTTP server: CORS with credentials for the configured
// origins, panic recovery, request ids, and the /auth route group.
func NewServer(auth AuthService, cfg *config.Config, logger logging.Logger) *Server {
	s := &Server{
		auth:       auth,
		logger:     logger,
		addr:       cfg.EndpointAddr,
		refreshTTL: cfg.RefreshTokenValidityDuration,
	}

	app := fiber.New(fiber.Config{
		ErrorHandler:          s.errorHandler,
		DisableStartupMessage: true,
	})
	app.Use(recover.New())
	app.Use(requestid.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.CORSOrigins,
		AllowCredentials: true,
	}))

	g := app.Group("/auth")
	g.Post("/signup", s.handleSignup)
	g.Post("/login", s.handleLogin)
	g.Post("/verifyCode", s.handleVerifyCode)
	g.Get("/refresh", s.handleRefresh)
	g.Delete("/logout", s.handleLogout)

	s.app = app
	return s
}

// Run starts serving and blocks until the listener stops.
func (s *Server) Run() error {
	s.logger.Info(context.Background(), "starting http server", "addr", s.addr)
	return s.app.Listen(s.addr)
}

// Shutdown drains in-flight requests and stops the listener.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.app.ShutdownWithContext(ctx)
}

// errorHandler maps typed service failures to status codes. Anything untyped
// is logged and reported as an opaque 500.
func (s *Server) errorHandler(c *fiber.Ctx, err error) error {
	switch common.KindOf(err) {
	case common.KindBadRequest:
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	case common.KindNotFound:
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": err.Error()})
	case common.KindUnauthorized:
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": err.Error()})
	}

	var fiberErr *fiber.Error
	if errors.As(err, &fiberErr) {
		return c.Status(fiberErr.Code).JSON(fiber.Map{"message": fiberErr.Message})
	}

	s.logger.Error(c.UserContext(), "request failed", "method", c.Method(), "path", c.Path(), "error", err.Error())
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "Unexpected error"})
}

func (s *Server) setRefreshCookie(c *fiber.Ctx, token string) {
	c.Cookie(&fiber.Cookie{
		Name:     refreshCookieName,
		Value:    token,
		MaxAge:   int(s.refreshTTL.Seconds()),
		HTTPOnly: true,
		Secure:   true,
		SameSite: fiber.CookieSameSiteNoneMode,
	})
}

func (s *Server) clearRefreshCookie(c *fiber.Ctx) {
	c.Cookie(&fiber.Cookie{
		Name:     refreshCookieName,
		Value:    "",
		Expires:  time.Unix(0, 0),
		HTTPOnly: true,
		Secure:   true,
		SameSite: fiber.CookieSameSiteNoneMode,
	})
}
