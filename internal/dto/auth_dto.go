package dto

// ─── Request DTOs ────────────────────────────────────────────────────────────

type LoginRequest struct {
	NombreUsuario string `json:"nombre_usuario" validate:"required,min=1"`
	Password      string `json:"password"       validate:"required,min=1"`
}

type RefreshRequest struct {
	RefreshToken string `json:"refresh_token" validate:"required"`
}

type RegistroRequest struct {
	Nombre          string  `json:"nombre"           validate:"required,nombre_persona"`
	ApellidoPaterno string  `json:"apellido_paterno" validate:"required,nombre_persona"`
	ApellidoMaterno *string `json:"apellido_materno" validate:"omitempty,nombre_persona"`
	CedulaIdentidad string  `json:"cedula_identidad" validate:"required,cedula_bo"`
	NumeroCelular   *string `json:"numero_celular"   validate:"omitempty,celular_bo"`
	Correo          *string `json:"correo"           validate:"omitempty,email"`
	NombreUsuario   string  `json:"nombre_usuario"   validate:"required,min=3,max=20"`
	Password        string  `json:"password"         validate:"required,min=6"`
	PasswordConfirm string  `json:"password_confirm" validate:"required,eqfield=Password"`
}

type CambiarPasswordRequest struct {
	PasswordActual  string `json:"password_actual"  validate:"required"`
	PasswordNueva   string `json:"password_nueva"   validate:"required,min=6"`
	PasswordConfirm string `json:"password_confirm" validate:"required,eqfield=PasswordNueva"`
}

type ActualizarPerfilRequest struct {
	Nombre          *string `json:"nombre"           validate:"omitempty,nombre_persona"`
	ApellidoPaterno *string `json:"apellido_paterno" validate:"omitempty,nombre_persona"`
	ApellidoMaterno *string `json:"apellido_materno" validate:"omitempty,nombre_persona"`
	NumeroCelular   *string `json:"numero_celular"   validate:"omitempty,celular_bo"`
	Correo          *string `json:"correo"           validate:"omitempty,email"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type PerfilResponse struct {
	ID              string   `json:"id"`
	NombreUsuario   string   `json:"nombre_usuario"`
	Nombre          string   `json:"nombre"`
	ApellidoPaterno string   `json:"apellido_paterno"`
	ApellidoMaterno *string  `json:"apellido_materno"`
	NombreCompleto  string   `json:"nombre_completo"`
	CedulaIdentidad string   `json:"cedula_identidad"`
	NumeroCelular   *string  `json:"numero_celular"`
	Correo          *string  `json:"correo"`
	Rol             *string  `json:"rol"`
	Sucursal        string   `json:"sucursal"`
	Permisos        []string `json:"permisos"`
	Activo          bool     `json:"activo"`
	UltimoLogin     *string  `json:"ultimo_login"`
}

type LoginResponse struct {
	AccessToken  string         `json:"access_token"`
	RefreshToken string         `json:"refresh_token"`
	TokenType    string         `json:"token_type"`
	ExpiresIn    int            `json:"expires_in"` // seconds
	Usuario      PerfilResponse `json:"usuario"`
}

type RegistroResponse struct {
	Usuario   PerfilResponse `json:"usuario"`
	ClienteID string         `json:"cliente_id"`
	Mensaje   string         `json:"mensaje"`
}

type DisponibilidadResponse struct {
	Disponible bool   `json:"disponible"`
	Mensaje    string `json:"mensaje,omitempty"`
}
