package service

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/AnnCris/ROYDENT/internal/config"
	"github.com/AnnCris/ROYDENT/internal/dto"
	"github.com/AnnCris/ROYDENT/internal/model"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// ── In-memory store shared by the repository stubs ────────────────────────────

type memStore struct {
	personas     map[uuid.UUID]*model.Persona
	usuarios     map[uuid.UUID]*model.Usuario
	roles        map[uuid.UUID]*model.Rol
	asignaciones []*model.UsuarioRol
	permisos     map[uuid.UUID]*model.Permiso
	rolPermisos  []*model.RolPermiso
	tipos        map[uuid.UUID]*model.TipoCliente
	clientes     map[uuid.UUID]*model.Cliente
	proveedores  map[uuid.UUID]*model.Proveedor
}

func newMemStore() *memStore {
	return &memStore{
		personas:    map[uuid.UUID]*model.Persona{},
		usuarios:    map[uuid.UUID]*model.Usuario{},
		roles:       map[uuid.UUID]*model.Rol{},
		permisos:    map[uuid.UUID]*model.Permiso{},
		tipos:       map[uuid.UUID]*model.TipoCliente{},
		clientes:    map[uuid.UUID]*model.Cliente{},
		proveedores: map[uuid.UUID]*model.Proveedor{},
	}
}

// usuarioConRelaciones mimics the Preloads the real repository does.
func (m *memStore) usuarioConRelaciones(u *model.Usuario) *model.Usuario {
	out := *u
	if p, ok := m.personas[u.PersonaID]; ok {
		out.Persona = *p
	}
	out.Roles = nil
	for _, ur := range m.asignaciones {
		if ur.UsuarioID == u.ID {
			copia := *ur
			if r, ok := m.roles[ur.RolID]; ok {
				copia.Rol = *r
			}
			out.Roles = append(out.Roles, copia)
		}
	}
	return &out
}

// ── UsuarioRepository stub ────────────────────────────────────────────────────

type stubUsuarioRepo struct {
	s *memStore

	// createPersonaErr, when set, is returned by CreatePersonaTx. Simulates
	// a constraint firing inside the transaction (e.g. the loser of a
	// uniqueness race that passed the pre-flight checks).
	createPersonaErr error
}

func (r *stubUsuarioRepo) CreatePersonaTx(_ *gorm.DB, p *model.Persona) error {
	if r.createPersonaErr != nil {
		return r.createPersonaErr
	}
	p.ID = uuid.New()
	r.s.personas[p.ID] = p
	return nil
}

func (r *stubUsuarioRepo) CreateTx(_ *gorm.DB, u *model.Usuario) error {
	u.ID = uuid.New()
	u.CreatedAt = time.Now()
	r.s.usuarios[u.ID] = u
	return nil
}

func (r *stubUsuarioRepo) FindByUsername(_ context.Context, nombreUsuario string) (*model.Usuario, error) {
	for _, u := range r.s.usuarios {
		if u.NombreUsuario == nombreUsuario {
			return r.s.usuarioConRelaciones(u), nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *stubUsuarioRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Usuario, error) {
	u, ok := r.s.usuarios[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return r.s.usuarioConRelaciones(u), nil
}

func (r *stubUsuarioRepo) List(_ context.Context, filter dto.UsuarioFilter) ([]model.Usuario, error) {
	var out []model.Usuario
	for _, u := range r.s.usuarios {
		if filter.Estado == "activo" && !u.IsActive {
			continue
		}
		if filter.Estado == "inactivo" && u.IsActive {
			continue
		}
		if filter.Busqueda != "" && !strings.Contains(u.NombreUsuario, strings.ToLower(filter.Busqueda)) {
			continue
		}
		out = append(out, *r.s.usuarioConRelaciones(u))
	}
	return out, nil
}

func (r *stubUsuarioRepo) UpdatePersona(_ context.Context, p *model.Persona) error {
	copia := *p
	r.s.personas[p.ID] = &copia
	return nil
}

func (r *stubUsuarioRepo) UpdatePassword(_ context.Context, id uuid.UUID, hash string) error {
	u, ok := r.s.usuarios[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	u.PasswordHash = hash
	return nil
}

func (r *stubUsuarioRepo) UpdateUltimoLogin(_ context.Context, id uuid.UUID) error {
	u, ok := r.s.usuarios[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	now := time.Now()
	u.UltimoLogin = &now
	return nil
}

func (r *stubUsuarioRepo) SetActive(_ context.Context, _ *gorm.DB, id uuid.UUID, active bool) error {
	u, ok := r.s.usuarios[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	u.IsActive = active
	return nil
}

func (r *stubUsuarioRepo) ExistsUsername(_ context.Context, nombreUsuario string) (bool, error) {
	for _, u := range r.s.usuarios {
		if u.NombreUsuario == nombreUsuario {
			return true, nil
		}
	}
	return false, nil
}

func (r *stubUsuarioRepo) ExistsCedula(_ context.Context, cedula string) (bool, error) {
	for _, p := range r.s.personas {
		if p.CedulaIdentidad == cedula {
			return true, nil
		}
	}
	return false, nil
}

func (r *stubUsuarioRepo) ExistsCorreo(_ context.Context, correo string, excluirPersona uuid.UUID) (bool, error) {
	for _, p := range r.s.personas {
		if p.ID == excluirPersona {
			continue
		}
		if p.Correo != nil && *p.Correo == correo {
			return true, nil
		}
	}
	return false, nil
}

func (r *stubUsuarioRepo) Stats(_ context.Context) (*dto.UsuarioStats, error) {
	stats := &dto.UsuarioStats{}
	for _, u := range r.s.usuarios {
		stats.Total++
		if u.IsActive {
			stats.Activos++
		} else {
			stats.Inactivos++
		}
	}
	return stats, nil
}

func (r *stubUsuarioRepo) DB() *gorm.DB { return nil }

// ── RolRepository stub ────────────────────────────────────────────────────────

type stubRolRepo struct{ s *memStore }

func (r *stubRolRepo) FindByNombre(_ context.Context, nombre string) (*model.Rol, error) {
	for _, rol := range r.s.roles {
		if rol.NombreRol == nombre {
			copia := *rol
			return &copia, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *stubRolRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Rol, error) {
	rol, ok := r.s.roles[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	copia := *rol
	return &copia, nil
}

func (r *stubRolRepo) List(_ context.Context) ([]model.Rol, error) {
	var out []model.Rol
	for _, rol := range r.s.roles {
		out = append(out, *rol)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].NombreRol < out[j].NombreRol })
	return out, nil
}

func (r *stubRolRepo) ListActivosDeUsuario(_ context.Context, usuarioID uuid.UUID) ([]model.UsuarioRol, error) {
	var out []model.UsuarioRol
	for _, ur := range r.s.asignaciones {
		if ur.UsuarioID != usuarioID || ur.Estado != model.EstadoActivo {
			continue
		}
		copia := *ur
		if rol, ok := r.s.roles[ur.RolID]; ok {
			copia.Rol = *rol
		}
		out = append(out, copia)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].FechaAsignacion.Before(out[j].FechaAsignacion) })
	return out, nil
}

func (r *stubRolRepo) AsignarTx(_ *gorm.DB, ur *model.UsuarioRol) error {
	ur.ID = uuid.New()
	if ur.FechaAsignacion.IsZero() {
		ur.FechaAsignacion = time.Now()
	}
	r.s.asignaciones = append(r.s.asignaciones, ur)
	return nil
}

func (r *stubRolRepo) DesactivarTodosTx(_ *gorm.DB, usuarioID uuid.UUID) error {
	for _, ur := range r.s.asignaciones {
		if ur.UsuarioID == usuarioID && ur.Estado == model.EstadoActivo {
			ur.Estado = model.EstadoInactivo
		}
	}
	return nil
}

func (r *stubRolRepo) ActivarOAsignarTx(_ *gorm.DB, usuarioID, rolID uuid.UUID) error {
	for _, ur := range r.s.asignaciones {
		if ur.UsuarioID == usuarioID && ur.RolID == rolID {
			ur.Estado = model.EstadoActivo
			return nil
		}
	}
	return r.AsignarTx(nil, &model.UsuarioRol{UsuarioID: usuarioID, RolID: rolID, Estado: model.EstadoActivo})
}

// ── PermisoRepository stub ────────────────────────────────────────────────────

type stubPermisoRepo struct{ s *memStore }

func (r *stubPermisoRepo) List(_ context.Context) ([]model.Permiso, error) {
	var out []model.Permiso
	for _, p := range r.s.permisos {
		out = append(out, *p)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Modulo != out[j].Modulo {
			return out[i].Modulo < out[j].Modulo
		}
		return out[i].TipoPermiso < out[j].TipoPermiso
	})
	return out, nil
}

func (r *stubPermisoRepo) FindByIDs(_ context.Context, ids []uuid.UUID) ([]model.Permiso, error) {
	var out []model.Permiso
	for _, id := range ids {
		if p, ok := r.s.permisos[id]; ok {
			out = append(out, *p)
		}
	}
	return out, nil
}

func (r *stubPermisoRepo) ListCodigosDeUsuario(_ context.Context, usuarioID uuid.UUID) ([]string, error) {
	visto := map[string]bool{}
	codigos := []string{}
	for _, ur := range r.s.asignaciones {
		if ur.UsuarioID != usuarioID || ur.Estado != model.EstadoActivo {
			continue
		}
		for _, rp := range r.s.rolPermisos {
			if rp.RolID != ur.RolID {
				continue
			}
			p, ok := r.s.permisos[rp.PermisoID]
			if !ok || visto[p.CodigoPermiso] {
				continue
			}
			visto[p.CodigoPermiso] = true
			codigos = append(codigos, p.CodigoPermiso)
		}
	}
	sort.Strings(codigos)
	return codigos, nil
}

func (r *stubPermisoRepo) ListByRol(_ context.Context, rolID uuid.UUID) ([]model.RolPermiso, error) {
	var out []model.RolPermiso
	for _, rp := range r.s.rolPermisos {
		if rp.RolID != rolID {
			continue
		}
		copia := *rp
		if p, ok := r.s.permisos[rp.PermisoID]; ok {
			copia.Permiso = *p
		}
		out = append(out, copia)
	}
	return out, nil
}

func (r *stubPermisoRepo) ReplaceForRol(_ context.Context, rolID uuid.UUID, permisoIDs []uuid.UUID, asignadoPor *uuid.UUID) error {
	restantes := r.s.rolPermisos[:0]
	for _, rp := range r.s.rolPermisos {
		if rp.RolID != rolID {
			restantes = append(restantes, rp)
		}
	}
	r.s.rolPermisos = restantes
	for _, pid := range permisoIDs {
		r.s.rolPermisos = append(r.s.rolPermisos, &model.RolPermiso{
			ID: uuid.New(), RolID: rolID, PermisoID: pid, AsignadoPorID: asignadoPor,
		})
	}
	return nil
}

// ── ClienteRepository stub ────────────────────────────────────────────────────

type stubClienteRepo struct{ s *memStore }

func (r *stubClienteRepo) clienteConRelaciones(c *model.Cliente) *model.Cliente {
	out := *c
	if u, ok := r.s.usuarios[c.UsuarioID]; ok {
		out.Usuario = *r.s.usuarioConRelaciones(u)
	}
	if t, ok := r.s.tipos[c.TipoClienteID]; ok {
		out.TipoCliente = *t
	}
	return &out
}

func (r *stubClienteRepo) CreateTx(_ *gorm.DB, c *model.Cliente) error {
	c.ID = uuid.New()
	c.FechaRegistro = time.Now()
	r.s.clientes[c.ID] = c
	return nil
}

func (r *stubClienteRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Cliente, error) {
	c, ok := r.s.clientes[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return r.clienteConRelaciones(c), nil
}

func (r *stubClienteRepo) FindByUsuario(_ context.Context, usuarioID uuid.UUID) (*model.Cliente, error) {
	for _, c := range r.s.clientes {
		if c.UsuarioID == usuarioID {
			return r.clienteConRelaciones(c), nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *stubClienteRepo) List(_ context.Context, filter dto.ClienteFilter) ([]model.Cliente, error) {
	var out []model.Cliente
	for _, c := range r.s.clientes {
		if filter.Estado != "" && c.Estado != filter.Estado {
			continue
		}
		if filter.SoloVIP && !c.EsVIP {
			continue
		}
		out = append(out, *r.clienteConRelaciones(c))
	}
	return out, nil
}

func (r *stubClienteRepo) Update(_ context.Context, c *model.Cliente) error {
	if _, ok := r.s.clientes[c.ID]; !ok {
		return gorm.ErrRecordNotFound
	}
	copia := *c
	r.s.clientes[c.ID] = &copia
	return nil
}

func (r *stubClienteRepo) SetEstado(_ context.Context, _ *gorm.DB, id uuid.UUID, estado string) error {
	c, ok := r.s.clientes[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	c.Estado = estado
	return nil
}

func (r *stubClienteRepo) ExistsNIT(_ context.Context, nit string, excluir uuid.UUID) (bool, error) {
	for _, c := range r.s.clientes {
		if c.ID == excluir {
			continue
		}
		if c.NIT != nil && *c.NIT == nit {
			return true, nil
		}
	}
	return false, nil
}

func (r *stubClienteRepo) Stats(_ context.Context) (*dto.ClienteStats, error) {
	stats := &dto.ClienteStats{PorTipo: map[string]int64{}}
	for _, c := range r.s.clientes {
		stats.Total++
		if c.Estado == model.ClienteActivo {
			stats.Activos++
		}
		if c.EsVIP {
			stats.VIP++
		}
		if t, ok := r.s.tipos[c.TipoClienteID]; ok {
			stats.PorTipo[t.Codigo]++
		}
	}
	return stats, nil
}

func (r *stubClienteRepo) FindTipoByID(_ context.Context, id uuid.UUID) (*model.TipoCliente, error) {
	t, ok := r.s.tipos[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	copia := *t
	return &copia, nil
}

func (r *stubClienteRepo) FindTipoByCodigo(_ context.Context, codigo string) (*model.TipoCliente, error) {
	for _, t := range r.s.tipos {
		if t.Codigo == codigo {
			copia := *t
			return &copia, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *stubClienteRepo) FirstOrCreateTipoTx(_ *gorm.DB, codigo, nombre string) (*model.TipoCliente, error) {
	for _, t := range r.s.tipos {
		if t.Codigo == codigo {
			copia := *t
			return &copia, nil
		}
	}
	t := &model.TipoCliente{ID: uuid.New(), Codigo: codigo, NombreTipo: nombre}
	r.s.tipos[t.ID] = t
	copia := *t
	return &copia, nil
}

func (r *stubClienteRepo) ListTipos(_ context.Context) ([]model.TipoCliente, error) {
	var out []model.TipoCliente
	for _, t := range r.s.tipos {
		out = append(out, *t)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].NombreTipo < out[j].NombreTipo })
	return out, nil
}

// ── ProveedorRepository stub ──────────────────────────────────────────────────

type stubProveedorRepo struct{ s *memStore }

func (r *stubProveedorRepo) Create(_ context.Context, p *model.Proveedor) error {
	p.ID = uuid.New()
	p.FechaRegistro = time.Now()
	r.s.proveedores[p.ID] = p
	return nil
}

func (r *stubProveedorRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Proveedor, error) {
	p, ok := r.s.proveedores[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	copia := *p
	return &copia, nil
}

func (r *stubProveedorRepo) List(_ context.Context, filter dto.ProveedorFilter) ([]model.Proveedor, error) {
	var out []model.Proveedor
	for _, p := range r.s.proveedores {
		if filter.Estado != "" && p.Estado != filter.Estado {
			continue
		}
		if filter.SoloPremium && !p.EsPremium {
			continue
		}
		out = append(out, *p)
	}
	return out, nil
}

func (r *stubProveedorRepo) Update(_ context.Context, p *model.Proveedor) error {
	if _, ok := r.s.proveedores[p.ID]; !ok {
		return gorm.ErrRecordNotFound
	}
	copia := *p
	r.s.proveedores[p.ID] = &copia
	return nil
}

func (r *stubProveedorRepo) SetEstado(_ context.Context, id uuid.UUID, estado string) error {
	p, ok := r.s.proveedores[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	p.Estado = estado
	return nil
}

func (r *stubProveedorRepo) ExistsNIT(_ context.Context, nit string, excluir uuid.UUID) (bool, error) {
	for _, p := range r.s.proveedores {
		if p.ID == excluir {
			continue
		}
		if p.NIT == nit {
			return true, nil
		}
	}
	return false, nil
}

func (r *stubProveedorRepo) Stats(_ context.Context) (*dto.ProveedorStats, error) {
	stats := &dto.ProveedorStats{PorTipo: map[string]int64{}}
	for _, p := range r.s.proveedores {
		stats.Total++
		if p.Estado != model.ProveedorInactivo {
			stats.Activos++
		}
		if p.EsPremium {
			stats.Premium++
		}
		stats.PorTipo[p.TipoProveedor]++
	}
	return stats, nil
}

// ── Email queue stub ──────────────────────────────────────────────────────────

type stubEmailQueue struct {
	enviados []string // destinatarios
}

func (q *stubEmailQueue) EncolarBienvenida(_ context.Context, destinatario, _, _ string) error {
	q.enviados = append(q.enviados, destinatario)
	return nil
}

// ── Fixture ───────────────────────────────────────────────────────────────────

const testSecret = "test_jwt_secret_32_chars_minimum!"

type fixture struct {
	store    *memStore
	usuarios *stubUsuarioRepo
	roles    *stubRolRepo
	permisos *stubPermisoRepo
	clientes *stubClienteRepo
	emails   *stubEmailQueue
}

func newFixture() *fixture {
	s := newMemStore()
	f := &fixture{
		store:    s,
		usuarios: &stubUsuarioRepo{s: s},
		roles:    &stubRolRepo{s: s},
		permisos: &stubPermisoRepo{s: s},
		clientes: &stubClienteRepo{s: s},
		emails:   &stubEmailQueue{},
	}
	for _, nombre := range []string{
		model.RolAdministrador, model.RolVendedorRoydent,
		model.RolVendedorMundoMedico, model.RolCliente,
	} {
		rol := &model.Rol{ID: uuid.New(), NombreRol: nombre}
		s.roles[rol.ID] = rol
	}
	return f
}

func (f *fixture) rol(nombre string) *model.Rol {
	rol, _ := f.roles.FindByNombre(context.Background(), nombre)
	return rol
}

func (f *fixture) seedPermiso(codigo, modulo, tipo string) *model.Permiso {
	p := &model.Permiso{
		ID: uuid.New(), NombrePermiso: codigo, CodigoPermiso: codigo,
		Modulo: modulo, TipoPermiso: tipo,
	}
	f.store.permisos[p.ID] = p
	return p
}

func (f *fixture) grant(rolID, permisoID uuid.UUID) {
	f.store.rolPermisos = append(f.store.rolPermisos, &model.RolPermiso{
		ID: uuid.New(), RolID: rolID, PermisoID: permisoID,
	})
}

// seedUsuario creates the Persona+Usuario pair directly in the store, with
// an ACTIVO role assignment when rolNombre is not empty.
func (f *fixture) seedUsuario(nombreUsuario, password, cedula, rolNombre string) *model.Usuario {
	hash, _ := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	persona := &model.Persona{
		ID: uuid.New(), Nombre: "Maria", ApellidoPaterno: "Flores", CedulaIdentidad: cedula,
	}
	f.store.personas[persona.ID] = persona
	u := &model.Usuario{
		ID: uuid.New(), PersonaID: persona.ID, NombreUsuario: nombreUsuario,
		PasswordHash: string(hash), IsActive: true, CreatedAt: time.Now(),
	}
	f.store.usuarios[u.ID] = u
	if rolNombre != "" {
		rol := f.rol(rolNombre)
		f.store.asignaciones = append(f.store.asignaciones, &model.UsuarioRol{
			ID: uuid.New(), UsuarioID: u.ID, RolID: rol.ID,
			Estado: model.EstadoActivo, FechaAsignacion: time.Now(),
		})
	}
	return u
}

func (f *fixture) permisoSvc() PermisoService {
	return NewPermisoService(f.usuarios, f.permisos, f.roles, nil)
}

func (f *fixture) registroSvc() RegistroService {
	return NewRegistroService(f.usuarios, f.roles, f.clientes, f.permisoSvc(), f.emails)
}

func (f *fixture) authSvc() AuthService {
	return NewAuthService(f.usuarios, f.roles, f.permisoSvc(), testCfg())
}

func (f *fixture) usuarioSvc() UsuarioService {
	return NewUsuarioService(f.usuarios, f.roles, f.registroSvc(), f.permisoSvc())
}

func (f *fixture) clienteSvc() ClienteService {
	return NewClienteService(f.clientes, f.usuarios, f.roles, f.registroSvc(), f.permisoSvc(), "")
}

func testCfg() *config.Config {
	return &config.Config{
		JWTSecret:          testSecret,
		JWTExpirationHours: 8,
		JWTRefreshHours:    24,
	}
}
