package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/vet-backoffice/internal/httperr"
	"github.com/BruksfildServices01/vet-backoffice/internal/httpresp"
	"github.com/BruksfildServices01/vet-backoffice/internal/middleware"
	"github.com/BruksfildServices01/vet-backoffice/internal/models"
	"github.com/BruksfildServices01/vet-backoffice/internal/session"
	ucAuth "github.com/BruksfildServices01/vet-backoffice/internal/usecase/auth"
)

type AuthHandler struct {
	auth     *ucAuth.Service
	sessions *session.Manager
}

func NewAuthHandler(auth *ucAuth.Service, sessions *session.Manager) *AuthHandler {
	return &AuthHandler{auth: auth, sessions: sessions}
}

// --------- Requests ---------

type RegisterRequest struct {
	Name       string `json:"name" binding:"required"`
	Email      string `json:"email" binding:"required,email"`
	Password   string `json:"password" binding:"required,min=8,max=72"`
	ClinicName string `json:"clinic_name"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type sessionResponse struct {
	User  *models.User `json:"user"`
	Token string       `json:"token"`
}

// --------- Handlers ---------

func (h *AuthHandler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.Validation(c, err)
		return
	}

	res, err := h.auth.Register(c.Request.Context(), ucAuth.RegisterInput{
		Name:       req.Name,
		Email:      req.Email,
		Password:   req.Password,
		ClinicName: req.ClinicName,
	})
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	h.sessions.SetCookie(c, res.Token, res.Claims.ExpiresAt)
	httpresp.Created(c, sessionResponse{User: res.User, Token: res.Token})
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.Validation(c, err)
		return
	}

	res, err := h.auth.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	h.sessions.SetCookie(c, res.Token, res.Claims.ExpiresAt)
	httpresp.OK(c, sessionResponse{User: res.User, Token: res.Token})
}

func (h *AuthHandler) Logout(c *gin.Context) {
	if err := h.auth.Logout(c.Request.Context(), middleware.Session(c)); err != nil {
		httperr.Respond(c, err)
		return
	}

	h.sessions.ClearCookie(c)
	httpresp.NoContent(c)
}

func (h *AuthHandler) Me(c *gin.Context) {
	u, err := h.auth.Me(c.Request.Context(), middleware.UserID(c))
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.OK(c, gin.H{"user": u})
}
