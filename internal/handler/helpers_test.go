package handler

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/AnnCris/ROYDENT/internal/apierror"
	"github.com/AnnCris/ROYDENT/internal/dto"
	"github.com/AnnCris/ROYDENT/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func postJSON(t *testing.T, handler gin.HandlerFunc, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.POST("/", handler)

	raw, err := json.Marshal(body)
	require.NoError(t, err)
	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodPost, "/", bytes.NewReader(raw))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)
	return w
}

func bindRegistro(c *gin.Context) {
	var req dto.RegistroRequest
	if !bindAndValidate(c, &req) {
		return
	}
	c.Status(http.StatusOK)
}

func TestBindAndValidate_RegistroValido(t *testing.T) {
	w := postJSON(t, bindRegistro, gin.H{
		"nombre":           "Juan",
		"apellido_paterno": "Perez",
		"cedula_identidad": "1234567-LP",
		"numero_celular":   "70123456",
		"nombre_usuario":   "juan.perez",
		"password":         "Segura1!",
		"password_confirm": "Segura1!",
	})
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestBindAndValidate_CamposInvalidos(t *testing.T) {
	w := postJSON(t, bindRegistro, gin.H{
		"nombre":           "Juan2", // digits not allowed
		"apellido_paterno": "Perez",
		"cedula_identidad": "12",       // too short
		"numero_celular":   "50123456", // must start 6/7
		"nombre_usuario":   "juan.perez",
		"password":         "Segura1!",
		"password_confirm": "distinta", // eqfield
	})
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)

	var resp apierror.ValidationError
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Contains(t, resp.Fields, "Nombre")
	assert.Contains(t, resp.Fields, "CedulaIdentidad")
	assert.Contains(t, resp.Fields, "NumeroCelular")
	assert.Contains(t, resp.Fields, "PasswordConfirm")
}

func TestBindAndValidate_JSONRoto(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.POST("/", bindRegistro)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodPost, "/", bytes.NewReader([]byte("{no es json")))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

// ── respondError ──────────────────────────────────────────────────────────────

func respondWith(err error) *httptest.ResponseRecorder {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	respondError(c, err)
	return w
}

func TestRespondError_Mapeo(t *testing.T) {
	cases := []struct {
		err    error
		status int
	}{
		{service.ErrNoEncontrado, http.StatusNotFound},
		{service.ErrConflicto, http.StatusConflict},
		{service.ErrCredenciales, http.StatusUnauthorized},
		{service.ErrTokenInvalido, http.StatusUnauthorized},
		{service.ErrCuentaDesactivada, http.StatusForbidden},
		{assert.AnError, http.StatusInternalServerError},
	}
	for _, c := range cases {
		assert.Equal(t, c.status, respondWith(c.err).Code, "error %v", c.err)
	}
}

func TestRespondError_Validacion(t *testing.T) {
	err := &service.ErrValidacion{Campos: map[string]string{"password": "muy debil"}}
	w := respondWith(err)
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)

	var resp apierror.ValidationError
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "muy debil", resp.Fields["password"])
}

func TestRespondError_NoFiltraDetallesInternos(t *testing.T) {
	w := respondWith(assert.AnError)
	var resp apierror.APIError
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "Error interno del servidor", resp.Detail)
}
