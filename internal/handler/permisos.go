package handler

import (
	"net/http"

	"github.com/AnnCris/ROYDENT/internal/dto"
	"github.com/AnnCris/ROYDENT/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type PermisosHandler struct{ svc service.PermisoService }

func NewPermisosHandler(svc service.PermisoService) *PermisosHandler {
	return &PermisosHandler{svc: svc}
}

func (h *PermisosHandler) Catalogo(c *gin.Context) {
	resp, err := h.svc.ListarCatalogo(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *PermisosHandler) Roles(c *gin.Context) {
	resp, err := h.svc.ListarRoles(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *PermisosHandler) PermisosDeRol(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	resp, err := h.svc.PermisosDeRol(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// ActualizarPermisosDeRol replaces the whole grant set of a role.
func (h *PermisosHandler) ActualizarPermisosDeRol(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req dto.ActualizarPermisosRolRequest
	if !bindAndValidate(c, &req) {
		return
	}

	asignadoPor := uuid.Nil
	if uid, ok := currentUserID(c); ok {
		asignadoPor = uid
	} else {
		return
	}

	resp, err := h.svc.ActualizarPermisosDeRol(c.Request.Context(), id, req, asignadoPor)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *PermisosHandler) Matriz(c *gin.Context) {
	resp, err := h.svc.Matriz(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// MisPermisos answers the caller's resolved permission codes.
func (h *PermisosHandler) MisPermisos(c *gin.Context) {
	uid, ok := currentUserID(c)
	if !ok {
		return
	}
	codigos, err := h.svc.ResolverCodigos(c.Request.Context(), uid)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.PermisosUsuarioResponse{UsuarioID: uid.String(), Permisos: codigos})
}

// PermisosDeUsuario answers any user's resolved permission codes (admin view).
func (h *PermisosHandler) PermisosDeUsuario(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	codigos, err := h.svc.ResolverCodigos(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.PermisosUsuarioResponse{UsuarioID: id.String(), Permisos: codigos})
}
