package httpapi

import (
	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/go-ozzo/ozzo-validation/is"
	"github.com/gofiber/fiber/v2"

	"github.com/stnkworkshop/auth-service/internal/common"
	"github.com/stnkworkshop/auth-service/internal/server/services"
)

type signupRequest struct {
	Username string `json:"username"`
	GameID   int64  `json:"gameId"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Activity string `json:"activity"`
}

func (r signupRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Email, validation.Required, is.Email),
		validation.Field(&r.Password, validation.Required, validation.Length(8, 32)),
	)
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type verifyCodeRequest struct {
	Email            string `json:"email"`
	VerificationCode int    `json:"verificationCode"`
}

func (s *Server) handleSignup(c *fiber.Ctx) error {
	var req signupRequest
	if err := c.BodyParser(&req); err != nil {
		return common.NewBadRequest("invalid request body")
	}
	if err := req.Validate(); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Registration error",
			"errors":  err,
		})
	}

	err := s.auth.Register(c.UserContext(), services.RegisterParams{
		Username: req.Username,
		GameID:   req.GameID,
		Email:    req.Email,
		Password: req.Password,
		Activity: req.Activity,
	})
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{"message": "Success"})
}

func (s *Server) handleLogin(c *fiber.Ctx) error {
	var req loginRequest
	if err := c.BodyParser(&req); err != nil {
		return common.NewBadRequest("invalid request body")
	}

	pair, err := s.auth.Login(c.UserContext(), req.Email, req.Password)
	if err != nil {
		return err
	}

	s.setRefreshCookie(c, pair.RefreshToken)
	return c.JSON(fiber.Map{"accessToken": pair.AccessToken})
}

func (s *Server) handleVerifyCode(c *fiber.Ctx) error {
	var req verifyCodeRequest
	if err := c.BodyParser(&req); err != nil {
		return common.NewBadRequest("invalid request body")
	}

	pair, err := s.auth.VerifyCode(c.UserContext(), req.Email, req.VerificationCode)
	if err != nil {
		return err
	}

	s.setRefreshCookie(c, pair.RefreshToken)
	return c.JSON(fiber.Map{"accessToken": pair.AccessToken})
}

func (s *Server) handleRefresh(c *fiber.Ctx) error {
	pair, err := s.auth.Refresh(c.UserContext(), c.Cookies(refreshCookieName))
	if err != nil {
		return err
	}

	s.setRefreshCookie(c, pair.RefreshToken)
	return c.JSON(fiber.Map{"accessToken": pair.AccessToken})
}

func (s *Server) handleLogout(c *fiber.Ctx) error {
	if err := s.auth.Logout(c.UserContext(), c.Cookies(refreshCookieName)); err != nil {
		return err
	}

	s.clearRefreshCookie(c)
	return c.JSON(fiber.Map{"message": "Success"})
}
