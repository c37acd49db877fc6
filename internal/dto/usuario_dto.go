package dto

// ─── Request DTOs ────────────────────────────────────────────────────────────

type CrearUsuarioRequest struct {
	Nombre          string  `json:"nombre"           validate:"required,nombre_persona"`
	ApellidoPaterno string  `json:"apellido_paterno" validate:"required,nombre_persona"`
	ApellidoMaterno *string `json:"apellido_materno" validate:"omitempty,nombre_persona"`
	CedulaIdentidad string  `json:"cedula_identidad" validate:"required,cedula_bo"`
	NumeroCelular   *string `json:"numero_celular"   validate:"omitempty,celular_bo"`
	Correo          *string `json:"correo"           validate:"omitempty,email"`
	NombreUsuario   string  `json:"nombre_usuario"   validate:"required,min=3,max=20"`
	Password        string  `json:"password"         validate:"required,min=6"`
	Rol             string  `json:"rol"              validate:"required,oneof=ADMINISTRADOR VENDEDOR_ROYDENT VENDEDOR_MUNDO_MEDICO CLIENTE"`
}

type ActualizarUsuarioRequest struct {
	Nombre          *string `json:"nombre"           validate:"omitempty,nombre_persona"`
	ApellidoPaterno *string `json:"apellido_paterno" validate:"omitempty,nombre_persona"`
	ApellidoMaterno *string `json:"apellido_materno" validate:"omitempty,nombre_persona"`
	NumeroCelular   *string `json:"numero_celular"   validate:"omitempty,celular_bo"`
	Correo          *string `json:"correo"           validate:"omitempty,email"`
	Rol             *string `json:"rol"              validate:"omitempty,oneof=ADMINISTRADOR VENDEDOR_ROYDENT VENDEDOR_MUNDO_MEDICO CLIENTE"`
	Password        *string `json:"password"         validate:"omitempty,min=6"`
}

// UsuarioFilter collects the list-endpoint query params.
type UsuarioFilter struct {
	Busqueda string `form:"busqueda"`
	Estado   string `form:"estado" binding:"omitempty,oneof=activo inactivo"`
	Rol      string `form:"rol"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type UsuarioResponse struct {
	ID              string  `json:"id"`
	NombreUsuario   string  `json:"nombre_usuario"`
	Nombre          string  `json:"nombre"`
	ApellidoPaterno string  `json:"apellido_paterno"`
	ApellidoMaterno *string `json:"apellido_materno"`
	NombreCompleto  string  `json:"nombre_completo"`
	CedulaIdentidad string  `json:"cedula_identidad"`
	NumeroCelular   *string `json:"numero_celular"`
	Correo          *string `json:"correo"`
	Rol             *string `json:"rol"`
	Sucursal        string  `json:"sucursal"`
	Activo          bool    `json:"activo"`
	UltimoLogin     *string `json:"ultimo_login"`
	FechaCreacion   string  `json:"fecha_creacion"`
}

type UsuarioStats struct {
	Total           int64 `json:"total"`
	Activos         int64 `json:"activos"`
	Inactivos       int64 `json:"inactivos"`
	Administradores int64 `json:"administradores"`
	Vendedores      int64 `json:"vendedores"`
}
