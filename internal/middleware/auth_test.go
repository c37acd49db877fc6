package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/AnnCris/ROYDENT/internal/model"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test_jwt_secret_32_chars_minimum!"

func signToken(t *testing.T, userID, rol string, dur time.Duration) string {
	t.Helper()
	claims := jwt.MapClaims{
		"user_id":  userID,
		"username": "testuser",
		"rol":      rol,
		"sucursal": model.Sucursal(rol),
		"exp":      time.Now().Add(dur).Unix(),
		"iat":      time.Now().Unix(),
	}
	s, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
	require.NoError(t, err)
	return s
}

// stubResolver answers a fixed permission set (or a fixed error).
type stubResolver struct {
	codigos map[string]bool
	err     error
}

func (r *stubResolver) TienePermiso(_ context.Context, _ uuid.UUID, codigo string) (bool, error) {
	if r.err != nil {
		return false, r.err
	}
	return r.codigos[codigo], nil
}

func testRouter(resolver PermisoResolver) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(JWTAuth(testSecret))
	r.GET("/protegido", func(c *gin.Context) {
		claims := GetClaims(c)
		c.JSON(http.StatusOK, gin.H{"user_id": claims.UserID, "sucursal": claims.Sucursal})
	})
	r.GET("/admin", RequireRole(model.RolAdministrador), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})
	if resolver != nil {
		r.GET("/clientes", RequirePermiso(resolver, "VER_CLIENTES"), func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{"ok": true})
		})
	}
	return r
}

func doGet(r *gin.Engine, path, token string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, path, nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	r.ServeHTTP(w, req)
	return w
}

func TestJWTAuth_SinToken(t *testing.T) {
	w := doGet(testRouter(nil), "/protegido", "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestJWTAuth_TokenValido(t *testing.T) {
	tok := signToken(t, uuid.NewString(), model.RolVendedorRoydent, time.Hour)
	w := doGet(testRouter(nil), "/protegido", tok)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "roydent")
}

func TestJWTAuth_TokenExpirado(t *testing.T) {
	tok := signToken(t, uuid.NewString(), model.RolCliente, -time.Minute)
	w := doGet(testRouter(nil), "/protegido", tok)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestJWTAuth_FirmaIncorrecta(t *testing.T) {
	claims := jwt.MapClaims{"user_id": uuid.NewString(), "exp": time.Now().Add(time.Hour).Unix()}
	tok, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("otro_secreto_distinto_32_chars!!"))
	require.NoError(t, err)

	w := doGet(testRouter(nil), "/protegido", tok)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRequireRole(t *testing.T) {
	r := testRouter(nil)

	admin := signToken(t, uuid.NewString(), model.RolAdministrador, time.Hour)
	assert.Equal(t, http.StatusOK, doGet(r, "/admin", admin).Code)

	cliente := signToken(t, uuid.NewString(), model.RolCliente, time.Hour)
	assert.Equal(t, http.StatusForbidden, doGet(r, "/admin", cliente).Code)
}

func TestRequirePermiso_Concedido(t *testing.T) {
	r := testRouter(&stubResolver{codigos: map[string]bool{"VER_CLIENTES": true}})
	tok := signToken(t, uuid.NewString(), model.RolVendedorRoydent, time.Hour)
	assert.Equal(t, http.StatusOK, doGet(r, "/clientes", tok).Code)
}

func TestRequirePermiso_Denegado(t *testing.T) {
	r := testRouter(&stubResolver{codigos: map[string]bool{}})
	tok := signToken(t, uuid.NewString(), model.RolCliente, time.Hour)
	assert.Equal(t, http.StatusForbidden, doGet(r, "/clientes", tok).Code)
}

func TestRequirePermiso_ResolverFalla(t *testing.T) {
	r := testRouter(&stubResolver{err: errors.New("redis caido")})
	tok := signToken(t, uuid.NewString(), model.RolAdministrador, time.Hour)
	assert.Equal(t, http.StatusInternalServerError, doGet(r, "/clientes", tok).Code)
}

func TestRequirePermiso_UserIDInvalido(t *testing.T) {
	r := testRouter(&stubResolver{codigos: map[string]bool{"VER_CLIENTES": true}})
	tok := signToken(t, "no-es-uuid", model.RolAdministrador, time.Hour)
	assert.Equal(t, http.StatusUnauthorized, doGet(r, "/clientes", tok).Code)
}

func TestRequestID(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(RequestID())
	r.GET("/", func(c *gin.Context) { c.Status(http.StatusOK) })

	// Generated when absent.
	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/", nil)
	r.ServeHTTP(w, req)
	generado := w.Header().Get("X-Request-ID")
	require.NotEmpty(t, generado)
	_, err := uuid.Parse(generado)
	assert.NoError(t, err)

	// Honored when the caller supplies one.
	w = httptest.NewRecorder()
	req, _ = http.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("X-Request-ID", "traza-123")
	r.ServeHTTP(w, req)
	assert.Equal(t, "traza-123", w.Header().Get("X-Request-ID"))
}
