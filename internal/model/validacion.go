package model

import (
	"regexp"
	"strings"
	"unicode"
)

// Validation patterns for Bolivian identity data. DTO validation exposes
// these through custom validator tags (see handler package); services call
// the Normalizar* helpers before persisting.
var (
	// cedulaPattern: 7-8 digits plus optional departmental suffix (-LP, -SC, ...)
	cedulaPattern = regexp.MustCompile(`^\d{7,8}(-[A-Z]{1,3})?$`)
	// celularPattern: 8 digits starting with 6 or 7
	celularPattern = regexp.MustCompile(`^[67]\d{7}$`)
	// nombrePattern: letters (including accented) and spaces only
	nombrePattern = regexp.MustCompile(`^[a-zA-ZÀ-ÿ\s]+$`)
	// usuarioPattern: lowercase letters, digits, dots, hyphens, underscores
	usuarioPattern = regexp.MustCompile(`^[a-z0-9._-]+$`)
	correoPattern  = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)

	noDigitos = regexp.MustCompile(`[^\d]`)
)

// NormalizarCedula trims and uppercases so "1234567-lp" becomes "1234567-LP".
func NormalizarCedula(cedula string) string {
	return strings.ToUpper(strings.TrimSpace(cedula))
}

// CedulaValida reports whether the already-normalized cédula matches the
// documented pattern.
func CedulaValida(cedula string) bool { return cedulaPattern.MatchString(cedula) }

// NormalizarCelular strips every non-digit character ("7012-3456" → "70123456").
func NormalizarCelular(celular string) string {
	return noDigitos.ReplaceAllString(strings.TrimSpace(celular), "")
}

func CelularValido(celular string) bool { return celularPattern.MatchString(celular) }

// NormalizarCorreo lowercases and trims.
func NormalizarCorreo(correo string) string {
	return strings.ToLower(strings.TrimSpace(correo))
}

func CorreoValido(correo string) bool { return correoPattern.MatchString(correo) }

// NormalizarUsuario lowercases and trims the login name.
func NormalizarUsuario(nombreUsuario string) string {
	return strings.ToLower(strings.TrimSpace(nombreUsuario))
}

func UsuarioValido(nombreUsuario string) bool {
	n := len(nombreUsuario)
	return n >= 3 && n <= 20 && usuarioPattern.MatchString(nombreUsuario)
}

// NombreValido checks a personal name: 2-50 chars, letters and spaces.
func NombreValido(nombre string) bool {
	n := strings.TrimSpace(nombre)
	return len([]rune(n)) >= 2 && len([]rune(n)) <= 50 && nombrePattern.MatchString(n)
}

// NormalizarNombre trims and title-cases each word ("juan pérez" → "Juan Pérez").
func NormalizarNombre(nombre string) string {
	words := strings.Fields(strings.TrimSpace(nombre))
	for i, w := range words {
		runes := []rune(strings.ToLower(w))
		runes[0] = unicode.ToUpper(runes[0])
		words[i] = string(runes)
	}
	return strings.Join(words, " ")
}

// PasswordFuerte enforces the registration password policy: at least 6
// chars with one uppercase, one lowercase, one digit and one special
// character. Returns the first unmet requirement, or "".
func PasswordFuerte(password string) string {
	if len(password) < 6 {
		return "debe tener al menos 6 caracteres"
	}
	if len(password) > 128 {
		return "no puede tener mas de 128 caracteres"
	}
	var mayus, minus, digito, especial bool
	for _, r := range password {
		switch {
		case unicode.IsUpper(r):
			mayus = true
		case unicode.IsLower(r):
			minus = true
		case unicode.IsDigit(r):
			digito = true
		case strings.ContainsRune(`!@#$%^&*(),.?":{}|<>`, r):
			especial = true
		}
	}
	switch {
	case !mayus:
		return "debe contener al menos una letra mayuscula"
	case !minus:
		return "debe contener al menos una letra minuscula"
	case !digito:
		return "debe contener al menos un numero"
	case !especial:
		return `debe contener al menos un caracter especial (!@#$%^&*(),.?":{}|<>)`
	}
	return ""
}
