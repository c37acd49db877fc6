package dto

import "github.com/shopspring/decimal"

// ─── Request DTOs ────────────────────────────────────────────────────────────

type CrearProveedorRequest struct {
	Nombre          string           `json:"nombre"           validate:"required,min=2,max=150"`
	NIT             string           `json:"nit"              validate:"required,min=5,max=20"`
	TipoProveedor   string           `json:"tipo_proveedor"   validate:"required,oneof=DISTRIBUIDOR FABRICANTE IMPORTADOR MAYORISTA MINORISTA"`
	Telefono        *string          `json:"telefono"`
	Email           *string          `json:"email"            validate:"omitempty,email"`
	Pais            *string          `json:"pais"`
	Ciudad          *string          `json:"ciudad"`
	Direccion       *string          `json:"direccion"`
	PersonaContacto *string          `json:"persona_contacto"`
	CargoContacto   *string          `json:"cargo_contacto"`
	CondicionesPago *string          `json:"condiciones_pago"`
	DiasCredito     int              `json:"dias_credito"     validate:"gte=0,lte=365"`
	Calificacion    *decimal.Decimal `json:"calificacion"     validate:"omitempty,gte=0,lte=5"`
	EsPremium       bool             `json:"es_premium"`
	Observaciones   *string          `json:"observaciones"`
}

type ActualizarProveedorRequest struct {
	Nombre          *string          `json:"nombre"           validate:"omitempty,min=2,max=150"`
	NIT             *string          `json:"nit"              validate:"omitempty,min=5,max=20"`
	TipoProveedor   *string          `json:"tipo_proveedor"   validate:"omitempty,oneof=DISTRIBUIDOR FABRICANTE IMPORTADOR MAYORISTA MINORISTA"`
	Telefono        *string          `json:"telefono"`
	Email           *string          `json:"email"            validate:"omitempty,email"`
	Pais            *string          `json:"pais"`
	Ciudad          *string          `json:"ciudad"`
	Direccion       *string          `json:"direccion"`
	PersonaContacto *string          `json:"persona_contacto"`
	CargoContacto   *string          `json:"cargo_contacto"`
	CondicionesPago *string          `json:"condiciones_pago"`
	DiasCredito     *int             `json:"dias_credito"     validate:"omitempty,gte=0,lte=365"`
	Calificacion    *decimal.Decimal `json:"calificacion"     validate:"omitempty,gte=0,lte=5"`
	Estado          *string          `json:"estado"           validate:"omitempty,oneof=ACTIVO INACTIVO PREMIUM SUSPENDIDO"`
	EsPremium       *bool            `json:"es_premium"`
	Observaciones   *string          `json:"observaciones"`
}

type ProveedorFilter struct {
	Busqueda    string `form:"busqueda"`
	Estado      string `form:"estado" binding:"omitempty,oneof=ACTIVO INACTIVO PREMIUM SUSPENDIDO"`
	Tipo        string `form:"tipo"   binding:"omitempty,oneof=DISTRIBUIDOR FABRICANTE IMPORTADOR MAYORISTA MINORISTA"`
	SoloPremium bool   `form:"solo_premium"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type ProveedorResponse struct {
	ID              string          `json:"id"`
	Nombre          string          `json:"nombre"`
	NIT             string          `json:"nit"`
	TipoProveedor   string          `json:"tipo_proveedor"`
	Telefono        *string         `json:"telefono"`
	Email           *string         `json:"email"`
	Pais            *string         `json:"pais"`
	Ciudad          *string         `json:"ciudad"`
	Direccion       *string         `json:"direccion"`
	PersonaContacto *string         `json:"persona_contacto"`
	CargoContacto   *string         `json:"cargo_contacto"`
	CondicionesPago *string         `json:"condiciones_pago"`
	DiasCredito     int             `json:"dias_credito"`
	Calificacion    decimal.Decimal `json:"calificacion"`
	Estado          string          `json:"estado"`
	EsPremium       bool            `json:"es_premium"`
	Observaciones   *string         `json:"observaciones"`
	FechaRegistro   string          `json:"fecha_registro"`
}

type ProveedorStats struct {
	Total   int64            `json:"total"`
	Activos int64            `json:"activos"`
	Premium int64            `json:"premium"`
	PorTipo map[string]int64 `json:"por_tipo"`
}
