package handler

import (
	"net/http"

	"github.com/AnnCris/ROYDENT/internal/apierror"
	"github.com/AnnCris/ROYDENT/internal/dto"
	"github.com/AnnCris/ROYDENT/internal/middleware"
	"github.com/AnnCris/ROYDENT/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type AuthHandler struct {
	auth     service.AuthService
	registro service.RegistroService
}

func NewAuthHandler(auth service.AuthService, registro service.RegistroService) *AuthHandler {
	return &AuthHandler{auth: auth, registro: registro}
}

// Login godoc
// @Summary Login de usuario
// @Tags auth
// @Accept json
// @Produce json
// @Param body body dto.LoginRequest true "Credenciales"
// @Success 200 {object} dto.LoginResponse
// @Failure 401 {object} apierror.APIError
// @Router /v1/auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.auth.Login(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *AuthHandler) Refresh(c *gin.Context) {
	var req dto.RefreshRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.auth.Refresh(c.Request.Context(), req.RefreshToken)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Registro godoc
// @Summary Registro publico de clientes
// @Tags auth
// @Accept json
// @Produce json
// @Param body body dto.RegistroRequest true "Datos de registro"
// @Success 201 {object} dto.RegistroResponse
// @Failure 409 {object} apierror.APIError
// @Failure 422 {object} apierror.ValidationError
// @Router /v1/auth/registro [post]
func (h *AuthHandler) Registro(c *gin.Context) {
	var req dto.RegistroRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.registro.Registrar(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

func (h *AuthHandler) Perfil(c *gin.Context) {
	uid, ok := currentUserID(c)
	if !ok {
		return
	}
	resp, err := h.auth.Perfil(c.Request.Context(), uid)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *AuthHandler) ActualizarPerfil(c *gin.Context) {
	uid, ok := currentUserID(c)
	if !ok {
		return
	}
	var req dto.ActualizarPerfilRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.auth.ActualizarPerfil(c.Request.Context(), uid, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *AuthHandler) CambiarPassword(c *gin.Context) {
	uid, ok := currentUserID(c)
	if !ok {
		return
	}
	var req dto.CambiarPasswordRequest
	if !bindAndValidate(c, &req) {
		return
	}
	if err := h.auth.CambiarPassword(c.Request.Context(), uid, req); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"mensaje": "contrasena actualizada"})
}

// ── Disponibilidad (pre-registro, publicos) ──────────────────────────────────

func (h *AuthHandler) DisponibilidadUsuario(c *gin.Context) {
	valor := c.Query("valor")
	if valor == "" {
		c.JSON(http.StatusBadRequest, apierror.New("parametro 'valor' requerido"))
		return
	}
	resp, err := h.registro.DisponibilidadUsuario(c.Request.Context(), valor)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *AuthHandler) DisponibilidadCedula(c *gin.Context) {
	valor := c.Query("valor")
	if valor == "" {
		c.JSON(http.StatusBadRequest, apierror.New("parametro 'valor' requerido"))
		return
	}
	resp, err := h.registro.DisponibilidadCedula(c.Request.Context(), valor)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *AuthHandler) DisponibilidadCorreo(c *gin.Context) {
	valor := c.Query("valor")
	if valor == "" {
		c.JSON(http.StatusBadRequest, apierror.New("parametro 'valor' requerido"))
		return
	}
	resp, err := h.registro.DisponibilidadCorreo(c.Request.Context(), valor)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// currentUserID extracts the authenticated user's id from the JWT claims.
func currentUserID(c *gin.Context) (uuid.UUID, bool) {
	claims := middleware.GetClaims(c)
	if claims == nil {
		c.JSON(http.StatusUnauthorized, apierror.New("Autenticacion requerida"))
		return uuid.Nil, false
	}
	uid, err := uuid.Parse(claims.UserID)
	if err != nil {
		c.JSON(http.StatusUnauthorized, apierror.New("Token invalido o expirado"))
		return uuid.Nil, false
	}
	return uid, true
}
