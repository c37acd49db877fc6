package handler

import (
	"errors"
	"net/http"
	"reflect"

	"github.com/AnnCris/ROYDENT/internal/apierror"
	"github.com/AnnCris/ROYDENT/internal/model"
	"github.com/AnnCris/ROYDENT/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

var validate = validator.New()

func init() {
	// Register decimal.Decimal as a numeric type so that validator tags like
	// min=0, gt=0, required work without panicking ("Bad field type decimal.Decimal").
	validate.RegisterCustomTypeFunc(func(field reflect.Value) interface{} {
		if v, ok := field.Interface().(decimal.Decimal); ok {
			f, _ := v.Float64()
			return f
		}
		return nil
	}, decimal.Decimal{})

	// Bolivian formats.
	validate.RegisterValidation("cedula_bo", func(fl validator.FieldLevel) bool {
		return model.CedulaValida(model.NormalizarCedula(fl.Field().String()))
	})
	validate.RegisterValidation("celular_bo", func(fl validator.FieldLevel) bool {
		return model.CelularValido(model.NormalizarCelular(fl.Field().String()))
	})
	validate.RegisterValidation("nombre_persona", func(fl validator.FieldLevel) bool {
		return model.NombreValido(fl.Field().String())
	})
}

// bindAndValidate binds JSON body and runs go-playground/validator tags.
// Returns false and writes the error response if validation fails —
// the caller should return immediately without writing another response.
func bindAndValidate(c *gin.Context, req interface{}) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("JSON invalido: "+err.Error()))
		return false
	}
	if err := validate.Struct(req); err != nil {
		fields := make(map[string]string)
		for _, fe := range err.(validator.ValidationErrors) {
			fields[fe.Field()] = fe.Tag()
		}
		c.JSON(http.StatusUnprocessableEntity, apierror.NewValidation(fields))
		return false
	}
	return true
}

// bindQuery binds query-string filters; malformed values answer 400.
func bindQuery(c *gin.Context, filter interface{}) bool {
	if err := c.ShouldBindQuery(filter); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("filtros invalidos: "+err.Error()))
		return false
	}
	return true
}

// respondError maps service errors to HTTP statuses. Unknown errors go
// through the error-handler middleware as 500s without leaking details.
func respondError(c *gin.Context, err error) {
	var ev *service.ErrValidacion
	switch {
	case errors.As(err, &ev):
		c.JSON(http.StatusUnprocessableEntity, apierror.NewValidation(ev.Campos))
	case errors.Is(err, service.ErrConflicto):
		c.JSON(http.StatusConflict, apierror.New(err.Error()))
	case errors.Is(err, service.ErrNoEncontrado):
		c.JSON(http.StatusNotFound, apierror.New(err.Error()))
	case errors.Is(err, service.ErrCredenciales), errors.Is(err, service.ErrTokenInvalido):
		c.JSON(http.StatusUnauthorized, apierror.New(err.Error()))
	case errors.Is(err, service.ErrCuentaDesactivada):
		c.JSON(http.StatusForbidden, apierror.New(err.Error()))
	default:
		_ = c.Error(err)
		c.JSON(http.StatusInternalServerError, apierror.New("Error interno del servidor"))
	}
}
