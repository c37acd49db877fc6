package infra

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var errFallo = errors.New("smtp timeout")

func fallar() error  { return errFallo }
func triunfo() error { return nil }

func TestCircuitBreaker_AbreTrasUmbral(t *testing.T) {
	cb := NewCircuitBreaker(CircuitBreakerConfig{FailureThreshold: 3, SuccessThreshold: 1, OpenTimeout: time.Minute})

	for i := 0; i < 3; i++ {
		assert.ErrorIs(t, cb.Execute(fallar), errFallo)
	}
	assert.Equal(t, CBOpen, cb.State())

	// While open every call fast-fails without invoking fn.
	llamado := false
	err := cb.Execute(func() error { llamado = true; return nil })
	assert.ErrorIs(t, err, ErrCircuitOpen)
	assert.False(t, llamado)
}

func TestCircuitBreaker_ExitoResetaContador(t *testing.T) {
	cb := NewCircuitBreaker(CircuitBreakerConfig{FailureThreshold: 3, SuccessThreshold: 1, OpenTimeout: time.Minute})

	require.Error(t, cb.Execute(fallar))
	require.Error(t, cb.Execute(fallar))
	require.NoError(t, cb.Execute(triunfo))
	require.Error(t, cb.Execute(fallar))
	require.Error(t, cb.Execute(fallar))
	assert.Equal(t, CBClosed, cb.State(), "la racha se corto, no debe abrir")
}

func TestCircuitBreaker_HalfOpenCierraConExitos(t *testing.T) {
	cb := NewCircuitBreaker(CircuitBreakerConfig{FailureThreshold: 1, SuccessThreshold: 2, OpenTimeout: 10 * time.Millisecond})

	require.Error(t, cb.Execute(fallar))
	require.Equal(t, CBOpen, cb.State())

	time.Sleep(15 * time.Millisecond)
	require.Equal(t, CBHalfOpen, cb.State())

	require.NoError(t, cb.Execute(triunfo))
	assert.Equal(t, CBHalfOpen, cb.State(), "un exito no alcanza")
	require.NoError(t, cb.Execute(triunfo))
	assert.Equal(t, CBClosed, cb.State())
}

func TestCircuitBreaker_HalfOpenReabreConFallo(t *testing.T) {
	cb := NewCircuitBreaker(CircuitBreakerConfig{FailureThreshold: 1, SuccessThreshold: 2, OpenTimeout: 10 * time.Millisecond})

	require.Error(t, cb.Execute(fallar))
	time.Sleep(15 * time.Millisecond)
	require.Equal(t, CBHalfOpen, cb.State())

	require.Error(t, cb.Execute(fallar))
	assert.Equal(t, CBOpen, cb.State())
}

func TestCircuitBreaker_Defaults(t *testing.T) {
	cb := NewCircuitBreaker(CircuitBreakerConfig{})
	assert.Equal(t, CBClosed, cb.State())
	assert.Equal(t, "closed", cb.State().String())
}
