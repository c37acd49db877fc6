package service

import (
	"context"
	"testing"

	"github.com/AnnCris/ROYDENT/internal/dto"
	"github.com/AnnCris/ROYDENT/internal/model"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// seedCliente wires Persona+Usuario(CLIENTE)+Cliente through the stubs.
func seedCliente(t *testing.T, f *fixture, nombreUsuario, cedula string, nit *string) *model.Cliente {
	t.Helper()
	u := f.seedUsuario(nombreUsuario, "Segura1!", cedula, model.RolCliente)
	tipo, err := f.clientes.FirstOrCreateTipoTx(nil, TipoParticular, TipoParticularNombre)
	require.NoError(t, err)
	c := &model.Cliente{
		UsuarioID: u.ID, TipoClienteID: tipo.ID, NIT: nit, Estado: model.ClienteActivo,
	}
	require.NoError(t, f.clientes.CreateTx(nil, c))
	return c
}

func TestEliminarCliente_Cascada(t *testing.T) {
	f := newFixture()
	c := seedCliente(t, f, "cliente1", "1234567", nil)

	require.NoError(t, f.clienteSvc().Eliminar(context.Background(), c.ID))

	assert.Equal(t, model.ClienteInactivo, f.store.clientes[c.ID].Estado)
	assert.False(t, f.store.usuarios[c.UsuarioID].IsActive, "pierde el login")
	for _, ur := range f.store.asignaciones {
		if ur.UsuarioID == c.UsuarioID {
			assert.Equal(t, model.EstadoInactivo, ur.Estado)
		}
	}
}

func TestActivarCliente_RestauraLoginNoRoles(t *testing.T) {
	f := newFixture()
	c := seedCliente(t, f, "cliente1", "1234567", nil)
	svc := f.clienteSvc()

	require.NoError(t, svc.Eliminar(context.Background(), c.ID))
	require.NoError(t, svc.Activar(context.Background(), c.ID))

	assert.Equal(t, model.ClienteActivo, f.store.clientes[c.ID].Estado)
	assert.True(t, f.store.usuarios[c.UsuarioID].IsActive)

	activos, err := f.roles.ListActivosDeUsuario(context.Background(), c.UsuarioID)
	require.NoError(t, err)
	assert.Empty(t, activos)
}

func TestActualizarCliente_NITDuplicado(t *testing.T) {
	f := newFixture()
	nitAjeno := "1023456028"
	seedCliente(t, f, "dueno", "1234567", &nitAjeno)
	mio := seedCliente(t, f, "mio", "7654321", nil)

	_, err := f.clienteSvc().Actualizar(context.Background(), mio.ID, dto.ActualizarClienteRequest{NIT: &nitAjeno})
	assert.ErrorIs(t, err, ErrConflicto)
}

func TestActualizarCliente_PropioNITNoConflicta(t *testing.T) {
	f := newFixture()
	nit := "1023456028"
	c := seedCliente(t, f, "dueno", "1234567", &nit)
	vip := true

	resp, err := f.clienteSvc().Actualizar(context.Background(), c.ID, dto.ActualizarClienteRequest{
		NIT: &nit, EsVIP: &vip,
	})
	require.NoError(t, err)
	assert.True(t, resp.EsVIP)
}

func TestActualizarCliente_TipoDesconocido(t *testing.T) {
	f := newFixture()
	c := seedCliente(t, f, "cliente1", "1234567", nil)
	malo := "ASTRONAUTA"

	_, err := f.clienteSvc().Actualizar(context.Background(), c.ID, dto.ActualizarClienteRequest{TipoCliente: &malo})
	var ev *ErrValidacion
	require.ErrorAs(t, err, &ev)
	assert.Contains(t, ev.Campos, "tipo_cliente")
}

func TestObtenerCliente_NoEncontrado(t *testing.T) {
	f := newFixture()
	_, err := f.clienteSvc().Obtener(context.Background(), uuid.New())
	assert.ErrorIs(t, err, ErrNoEncontrado)
}

func TestListarClientes_SoloVIP(t *testing.T) {
	f := newFixture()
	seedCliente(t, f, "normal", "1234567", nil)
	vip := seedCliente(t, f, "especial", "7654321", nil)
	f.store.clientes[vip.ID].EsVIP = true

	resp, err := f.clienteSvc().Listar(context.Background(), dto.ClienteFilter{SoloVIP: true})
	require.NoError(t, err)
	require.Len(t, resp, 1)
	assert.Equal(t, "especial", resp[0].NombreUsuario)
}

func TestEstadisticasClientes(t *testing.T) {
	f := newFixture()
	seedCliente(t, f, "uno", "1234567", nil)
	dos := seedCliente(t, f, "dos", "7654321", nil)
	f.store.clientes[dos.ID].EsVIP = true

	stats, err := f.clienteSvc().Estadisticas(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(2), stats.Total)
	assert.Equal(t, int64(2), stats.Activos)
	assert.Equal(t, int64(1), stats.VIP)
	assert.Equal(t, int64(2), stats.PorTipo[TipoParticular])
}
