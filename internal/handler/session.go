package handler

import (
	"github.com/deppfellow/web420-api/internal/model"
	"github.com/deppfellow/web420-api/internal/server"
	"github.com/deppfellow/web420-api/internal/service"
	"github.com/labstack/echo/v4"
)

type SessionHandler struct {
	Handler
	sessions *service.SessionService
}

func NewSessionHandler(s *server.Server, sessions *service.SessionService) *SessionHandler {
	return &SessionHandler{
		Handler:  NewHandler(s),
		sessions: sessions,
	}
}

func (h *SessionHandler) Signup(c echo.Context, req *model.SignupRequest) (*model.SignupResponse, error) {
	user, err := h.sessions.Signup(c.Request().Context(), req)
	if err != nil {
		return nil, err
	}

	return &model.SignupResponse{
		Message: service.MessageRegistered,
		User:    user.View(),
	}, nil
}

func (h *SessionHandler) Login(c echo.Context, req *model.LoginRequest) (*model.MessageResponse, error) {
	if err := h.sessions.Login(c.Request().Context(), req); err != nil {
		return nil, err
	}
	return &model.MessageResponse{Message: service.MessageLoggedIn}, nil
}
