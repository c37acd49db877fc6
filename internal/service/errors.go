package service

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
)

// Sentinel errors the handler layer maps to HTTP statuses.
var (
	ErrNoEncontrado      = errors.New("recurso no encontrado")
	ErrConflicto         = errors.New("conflicto")
	ErrCredenciales      = errors.New("credenciales invalidas")
	ErrCuentaDesactivada = errors.New("la cuenta esta desactivada")
	ErrTokenInvalido     = errors.New("token invalido o expirado")
)

// ErrValidacion carries per-field messages for semantic checks that the
// request-binding validator cannot express (password strength, cross-record
// uniqueness and similar).
type ErrValidacion struct {
	Campos map[string]string
}

func (e *ErrValidacion) Error() string {
	for campo, msg := range e.Campos {
		return fmt.Sprintf("%s: %s", campo, msg)
	}
	return "datos invalidos"
}

func validacion(campo, mensaje string) error {
	return &ErrValidacion{Campos: map[string]string{campo: mensaje}}
}

func conflicto(mensaje string) error {
	return fmt.Errorf("%w: %s", ErrConflicto, mensaje)
}

func noEncontrado(recurso string) error {
	return fmt.Errorf("%w: %s", ErrNoEncontrado, recurso)
}

// runTx executes fn inside a GORM transaction when db is available,
// otherwise calls fn with nil (lets unit tests stub repositories).
// The pre-flight uniqueness checks run outside the transaction, so the
// loser of a concurrent race hits the unique index in here; that
// violation is still a conflict, not an internal error.
func runTx(ctx context.Context, db *gorm.DB, fn func(tx *gorm.DB) error) error {
	var err error
	if db == nil {
		err = fn(nil)
	} else {
		err = db.WithContext(ctx).Transaction(fn)
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return conflicto("ya existe un registro con esos datos")
	}
	return err
}
