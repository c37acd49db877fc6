package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCedula(t *testing.T) {
	cases := []struct {
		entrada string
		valida  bool
	}{
		{"1234567", true},
		{"12345678", true},
		{"1234567-LP", true},
		{"  1234567-lp ", true}, // normalized to uppercase
		{"123456", false},       // too short
		{"123456789", false},    // too long
		{"1234567-", false},
		{"1234567-LPZA", false}, // suffix max 3 letters
		{"abc1234", false},
		{"", false},
	}
	for _, c := range cases {
		assert.Equal(t, c.valida, CedulaValida(NormalizarCedula(c.entrada)), "cedula %q", c.entrada)
	}
}

func TestCelular(t *testing.T) {
	cases := []struct {
		entrada string
		valido  bool
	}{
		{"70123456", true},
		{"60123456", true},
		{"7012-3456", true},   // separators stripped
		{"(701) 23456", true}, // same
		{"50123456", false},   // must start with 6 or 7
		{"7012345", false},    // 7 digits
		{"701234567", false},  // 9 digits
		{"", false},
	}
	for _, c := range cases {
		assert.Equal(t, c.valido, CelularValido(NormalizarCelular(c.entrada)), "celular %q", c.entrada)
	}
}

func TestUsuarioValido(t *testing.T) {
	assert.True(t, UsuarioValido("juan.perez"))
	assert.True(t, UsuarioValido("user_01"))
	assert.True(t, UsuarioValido("abc"))
	assert.False(t, UsuarioValido("ab"), "under 3 chars")
	assert.False(t, UsuarioValido("a23456789012345678901"), "over 20 chars")
	assert.False(t, UsuarioValido("Juan"), "uppercase not allowed")
	assert.False(t, UsuarioValido("juan perez"), "spaces not allowed")
	assert.False(t, UsuarioValido("juan@perez"))
}

func TestNombre(t *testing.T) {
	assert.True(t, NombreValido("Juan"))
	assert.True(t, NombreValido("María José"))
	assert.False(t, NombreValido("J"), "single rune")
	assert.False(t, NombreValido("Juan2"))
	assert.False(t, NombreValido(""))

	assert.Equal(t, "Juan Pérez", NormalizarNombre("  juan   pérez "))
	assert.Equal(t, "Maria", NormalizarNombre("MARIA"))
}

func TestCorreo(t *testing.T) {
	assert.True(t, CorreoValido(NormalizarCorreo(" Juan@Example.COM ")))
	assert.Equal(t, "juan@example.com", NormalizarCorreo(" Juan@Example.COM "))
	assert.False(t, CorreoValido("juan@example"))
	assert.False(t, CorreoValido("juan.example.com"))
}

func TestPasswordFuerte(t *testing.T) {
	assert.Empty(t, PasswordFuerte("Abc12!"))
	assert.Empty(t, PasswordFuerte(`Segura2026.`))

	assert.NotEmpty(t, PasswordFuerte("Ab1!"), "too short")
	assert.NotEmpty(t, PasswordFuerte("abc123!!"), "no uppercase")
	assert.NotEmpty(t, PasswordFuerte("ABC123!!"), "no lowercase")
	assert.NotEmpty(t, PasswordFuerte("Abcdef!!"), "no digit")
	assert.NotEmpty(t, PasswordFuerte("Abcdef12"), "no special char")
}

func TestSucursal(t *testing.T) {
	assert.Equal(t, "deposito", Sucursal(RolAdministrador))
	assert.Equal(t, "roydent", Sucursal(RolVendedorRoydent))
	assert.Equal(t, "mundo_medico", Sucursal(RolVendedorMundoMedico))
	assert.Equal(t, "", Sucursal(RolCliente))
	assert.Equal(t, "", Sucursal("OTRO"))
}

func TestNombreCompleto(t *testing.T) {
	materno := "Quispe"
	p := Persona{Nombre: "Ana", ApellidoPaterno: "Mamani", ApellidoMaterno: &materno}
	assert.Equal(t, "Ana Mamani Quispe", p.NombreCompleto())

	p.ApellidoMaterno = nil
	assert.Equal(t, "Ana Mamani", p.NombreCompleto())
}
