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

func proveedorSvcTest(f *fixture) ProveedorService {
	return NewProveedorService(&stubProveedorRepo{s: f.store})
}

func crearProveedorReq(nombre, nit string) dto.CrearProveedorRequest {
	return dto.CrearProveedorRequest{
		Nombre:        nombre,
		NIT:           nit,
		TipoProveedor: model.ProveedorDistribuidor,
	}
}

func TestCrearProveedor(t *testing.T) {
	f := newFixture()
	svc := proveedorSvcTest(f)

	resp, err := svc.Crear(context.Background(), crearProveedorReq("Dental Import SRL", "1023456028"))
	require.NoError(t, err)
	assert.Equal(t, model.ProveedorActivo, resp.Estado)
	assert.False(t, resp.EsPremium)
}

func TestCrearProveedor_PremiumArrancaPremium(t *testing.T) {
	f := newFixture()
	svc := proveedorSvcTest(f)

	req := crearProveedorReq("Dental Import SRL", "1023456028")
	req.EsPremium = true
	resp, err := svc.Crear(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, model.ProveedorPremium, resp.Estado)
}

func TestCrearProveedor_NITDuplicado(t *testing.T) {
	f := newFixture()
	svc := proveedorSvcTest(f)

	_, err := svc.Crear(context.Background(), crearProveedorReq("Uno", "1023456028"))
	require.NoError(t, err)

	_, err = svc.Crear(context.Background(), crearProveedorReq("Otro", "1023456028"))
	assert.ErrorIs(t, err, ErrConflicto)
}

func TestActualizarProveedor_PropioNITNoConflicta(t *testing.T) {
	f := newFixture()
	svc := proveedorSvcTest(f)

	creado, err := svc.Crear(context.Background(), crearProveedorReq("Uno", "1023456028"))
	require.NoError(t, err)
	id := uuid.MustParse(creado.ID)

	nit := "1023456028"
	nombre := "Uno Renombrado"
	resp, err := svc.Actualizar(context.Background(), id, dto.ActualizarProveedorRequest{NIT: &nit, Nombre: &nombre})
	require.NoError(t, err)
	assert.Equal(t, "Uno Renombrado", resp.Nombre)
}

func TestDesactivarYActivarProveedor(t *testing.T) {
	f := newFixture()
	svc := proveedorSvcTest(f)

	req := crearProveedorReq("Premium SRL", "1023456028")
	req.EsPremium = true
	creado, err := svc.Crear(context.Background(), req)
	require.NoError(t, err)
	id := uuid.MustParse(creado.ID)

	require.NoError(t, svc.Desactivar(context.Background(), id))
	bajado, err := svc.Obtener(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, model.ProveedorInactivo, bajado.Estado)

	// Reactivation restores PREMIUM for premium suppliers, ACTIVO otherwise.
	require.NoError(t, svc.Activar(context.Background(), id))
	subido, err := svc.Obtener(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, model.ProveedorPremium, subido.Estado)
}

func TestObtenerProveedor_NoEncontrado(t *testing.T) {
	f := newFixture()
	_, err := proveedorSvcTest(f).Obtener(context.Background(), uuid.New())
	assert.ErrorIs(t, err, ErrNoEncontrado)
}
