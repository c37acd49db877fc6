package dto

// ─── Request DTOs ────────────────────────────────────────────────────────────

type ActualizarPermisosRolRequest struct {
	PermisoIDs []string `json:"permiso_ids" validate:"required,dive,uuid"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type PermisoResponse struct {
	ID            string  `json:"id"`
	NombrePermiso string  `json:"nombre_permiso"`
	CodigoPermiso string  `json:"codigo_permiso"`
	Modulo        string  `json:"modulo"`
	TipoPermiso   string  `json:"tipo_permiso"`
	Descripcion   *string `json:"descripcion,omitempty"`
}

type RolResponse struct {
	ID          string  `json:"id"`
	NombreRol   string  `json:"nombre_rol"`
	Descripcion *string `json:"descripcion,omitempty"`
	Sucursal    string  `json:"sucursal"`
}

type RolPermisosResponse struct {
	Rol      RolResponse       `json:"rol"`
	Permisos []PermisoResponse `json:"permisos"`
}

// MatrizPermisosResponse maps every role to its granted permission codes,
// with the full catalog alongside so a UI can render the whole grid.
type MatrizPermisosResponse struct {
	Roles    []RolResponse       `json:"roles"`
	Permisos []PermisoResponse   `json:"permisos"`
	Matriz   map[string][]string `json:"matriz"` // nombre_rol -> codigos
}

type PermisosUsuarioResponse struct {
	UsuarioID string   `json:"usuario_id"`
	Permisos  []string `json:"permisos"`
}
