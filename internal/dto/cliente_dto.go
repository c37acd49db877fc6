package dto

import "github.com/shopspring/decimal"

// ─── Request DTOs ────────────────────────────────────────────────────────────

// CrearClienteRequest builds the whole Persona→Usuario→Cliente graph in one
// call. Password is optional: omitted means the backoffice creates a client
// that cannot log in yet.
type CrearClienteRequest struct {
	Nombre          string  `json:"nombre"           validate:"required,nombre_persona"`
	ApellidoPaterno string  `json:"apellido_paterno" validate:"required,nombre_persona"`
	ApellidoMaterno *string `json:"apellido_materno" validate:"omitempty,nombre_persona"`
	CedulaIdentidad string  `json:"cedula_identidad" validate:"required,cedula_bo"`
	NumeroCelular   *string `json:"numero_celular"   validate:"omitempty,celular_bo"`
	Correo          *string `json:"correo"           validate:"omitempty,email"`
	NombreUsuario   string  `json:"nombre_usuario"   validate:"required,min=3,max=20"`
	Password        *string `json:"password"         validate:"omitempty,min=6"`

	TipoCliente       string           `json:"tipo_cliente"       validate:"omitempty"`
	RazonSocial       *string          `json:"razon_social"`
	NIT               *string          `json:"nit"`
	Ciudad            *string          `json:"ciudad"`
	Direccion         *string          `json:"direccion"`
	Especialidad      *string          `json:"especialidad"`
	EsVIP             bool             `json:"es_vip"`
	LimiteCredito     *decimal.Decimal `json:"limite_credito"     validate:"omitempty,gte=0"`
	DescuentoEspecial *decimal.Decimal `json:"descuento_especial" validate:"omitempty,gte=0,lte=100"`
	Observaciones     *string          `json:"observaciones"`
}

type ActualizarClienteRequest struct {
	TipoCliente       *string          `json:"tipo_cliente"`
	RazonSocial       *string          `json:"razon_social"`
	NIT               *string          `json:"nit"`
	Ciudad            *string          `json:"ciudad"`
	Direccion         *string          `json:"direccion"`
	Especialidad      *string          `json:"especialidad"`
	Estado            *string          `json:"estado"             validate:"omitempty,oneof=ACTIVO INACTIVO VIP SUSPENDIDO"`
	EsVIP             *bool            `json:"es_vip"`
	LimiteCredito     *decimal.Decimal `json:"limite_credito"     validate:"omitempty,gte=0"`
	DescuentoEspecial *decimal.Decimal `json:"descuento_especial" validate:"omitempty,gte=0,lte=100"`
	Observaciones     *string          `json:"observaciones"`
}

type ClienteFilter struct {
	Busqueda    string `form:"busqueda"`
	Estado      string `form:"estado" binding:"omitempty,oneof=ACTIVO INACTIVO VIP SUSPENDIDO"`
	TipoCliente string `form:"tipo_cliente"`
	SoloVIP     bool   `form:"solo_vip"`
	Ciudad      string `form:"ciudad"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type TipoClienteResponse struct {
	ID          string  `json:"id"`
	Codigo      string  `json:"codigo"`
	NombreTipo  string  `json:"nombre_tipo"`
	Descripcion *string `json:"descripcion,omitempty"`
}

type ClienteResponse struct {
	ID                string              `json:"id"`
	UsuarioID         string              `json:"usuario_id"`
	NombreUsuario     string              `json:"nombre_usuario"`
	NombreCompleto    string              `json:"nombre_completo"`
	CedulaIdentidad   string              `json:"cedula_identidad"`
	NumeroCelular     *string             `json:"numero_celular"`
	Correo            *string             `json:"correo"`
	TipoCliente       TipoClienteResponse `json:"tipo_cliente"`
	RazonSocial       *string             `json:"razon_social"`
	NIT               *string             `json:"nit"`
	Ciudad            *string             `json:"ciudad"`
	Direccion         *string             `json:"direccion"`
	Especialidad      *string             `json:"especialidad"`
	Estado            string              `json:"estado"`
	EsVIP             bool                `json:"es_vip"`
	LimiteCredito     decimal.Decimal     `json:"limite_credito"`
	DescuentoEspecial decimal.Decimal     `json:"descuento_especial"`
	Observaciones     *string             `json:"observaciones"`
	FechaRegistro     string              `json:"fecha_registro"`
}

type ClienteStats struct {
	Total   int64            `json:"total"`
	Activos int64            `json:"activos"`
	VIP     int64            `json:"vip"`
	PorTipo map[string]int64 `json:"por_tipo"`
}
