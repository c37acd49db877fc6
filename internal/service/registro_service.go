package service

import (
	"context"
	"errors"

	"github.com/AnnCris/ROYDENT/internal/dto"
	"github.com/AnnCris/ROYDENT/internal/model"
	"github.com/AnnCris/ROYDENT/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// TipoParticular is the fallback client type: self-registrations and
// backoffice creations without an explicit type land here.
const (
	TipoParticular       = "PARTICULAR"
	TipoParticularNombre = "Particular"
)

// EmailQueue decouples registration from mail delivery: the welcome email
// is enqueued after the transaction commits and sent by a worker.
type EmailQueue interface {
	EncolarBienvenida(ctx context.Context, destinatario, nombreCompleto, nombreUsuario string) error
}

// RegistroService builds the Persona→Usuario→UsuarioRol(→Cliente) graph in
// one transaction: either every row exists afterwards or none does.
type RegistroService interface {
	Registrar(ctx context.Context, req dto.RegistroRequest) (*dto.RegistroResponse, error)
	CrearUsuario(ctx context.Context, req dto.CrearUsuarioRequest) (*model.Usuario, error)
	CrearCliente(ctx context.Context, req dto.CrearClienteRequest) (*model.Cliente, error)
	DisponibilidadUsuario(ctx context.Context, nombreUsuario string) (*dto.DisponibilidadResponse, error)
	DisponibilidadCedula(ctx context.Context, cedula string) (*dto.DisponibilidadResponse, error)
	DisponibilidadCorreo(ctx context.Context, correo string) (*dto.DisponibilidadResponse, error)
}

type registroService struct {
	usuarios repository.UsuarioRepository
	roles    repository.RolRepository
	clientes repository.ClienteRepository
	permisos PermisoService
	emails   EmailQueue
}

func NewRegistroService(
	usuarios repository.UsuarioRepository,
	roles repository.RolRepository,
	clientes repository.ClienteRepository,
	permisos PermisoService,
	emails EmailQueue,
) RegistroService {
	return &registroService{usuarios: usuarios, roles: roles, clientes: clientes, permisos: permisos, emails: emails}
}

// datosPersona holds the normalized identity fields shared by all three
// entry points.
type datosPersona struct {
	Nombre          string
	ApellidoPaterno string
	ApellidoMaterno *string
	Cedula          string
	Celular         *string
	Correo          *string
	NombreUsuario   string
	Password        string // empty means "no login yet": a random hash is stored
}

func (s *registroService) Registrar(ctx context.Context, req dto.RegistroRequest) (*dto.RegistroResponse, error) {
	datos, err := s.normalizar(ctx, datosPersona{
		Nombre:          req.Nombre,
		ApellidoPaterno: req.ApellidoPaterno,
		ApellidoMaterno: req.ApellidoMaterno,
		Cedula:          req.CedulaIdentidad,
		Celular:         req.NumeroCelular,
		Correo:          req.Correo,
		NombreUsuario:   req.NombreUsuario,
		Password:        req.Password,
	})
	if err != nil {
		return nil, err
	}
	if motivo := model.PasswordFuerte(req.Password); motivo != "" {
		return nil, validacion("password", motivo)
	}

	var usuario *model.Usuario
	var cliente *model.Cliente
	txErr := runTx(ctx, s.usuarios.DB(), func(tx *gorm.DB) error {
		var err error
		usuario, err = s.crearGrafoTx(ctx, tx, datos, model.RolCliente)
		if err != nil {
			return err
		}
		cliente, err = s.crearClienteTx(tx, usuario.ID, clienteDatos{TipoCodigo: TipoParticular})
		return err
	})
	if txErr != nil {
		return nil, txErr
	}

	s.enviarBienvenida(ctx, usuario)

	completo, err := s.usuarios.FindByID(ctx, usuario.ID)
	if err != nil {
		return nil, err
	}
	perfil, err := perfilDeUsuario(ctx, s.roles, s.permisos, completo)
	if err != nil {
		return nil, err
	}
	return &dto.RegistroResponse{
		Usuario:   *perfil,
		ClienteID: cliente.ID.String(),
		Mensaje:   "registro exitoso",
	}, nil
}

func (s *registroService) CrearUsuario(ctx context.Context, req dto.CrearUsuarioRequest) (*model.Usuario, error) {
	datos, err := s.normalizar(ctx, datosPersona{
		Nombre:          req.Nombre,
		ApellidoPaterno: req.ApellidoPaterno,
		ApellidoMaterno: req.ApellidoMaterno,
		Cedula:          req.CedulaIdentidad,
		Celular:         req.NumeroCelular,
		Correo:          req.Correo,
		NombreUsuario:   req.NombreUsuario,
		Password:        req.Password,
	})
	if err != nil {
		return nil, err
	}
	if motivo := model.PasswordFuerte(req.Password); motivo != "" {
		return nil, validacion("password", motivo)
	}

	var usuario *model.Usuario
	txErr := runTx(ctx, s.usuarios.DB(), func(tx *gorm.DB) error {
		var err error
		usuario, err = s.crearGrafoTx(ctx, tx, datos, req.Rol)
		if err != nil {
			return err
		}
		// Every CLIENTE gets its commercial wrapper even via the admin path.
		if req.Rol == model.RolCliente {
			_, err = s.crearClienteTx(tx, usuario.ID, clienteDatos{TipoCodigo: TipoParticular})
		}
		return err
	})
	if txErr != nil {
		return nil, txErr
	}

	s.enviarBienvenida(ctx, usuario)
	return s.usuarios.FindByID(ctx, usuario.ID)
}

func (s *registroService) CrearCliente(ctx context.Context, req dto.CrearClienteRequest) (*model.Cliente, error) {
	password := ""
	if req.Password != nil {
		password = *req.Password
	}
	datos, err := s.normalizar(ctx, datosPersona{
		Nombre:          req.Nombre,
		ApellidoPaterno: req.ApellidoPaterno,
		ApellidoMaterno: req.ApellidoMaterno,
		Cedula:          req.CedulaIdentidad,
		Celular:         req.NumeroCelular,
		Correo:          req.Correo,
		NombreUsuario:   req.NombreUsuario,
		Password:        password,
	})
	if err != nil {
		return nil, err
	}
	if password != "" {
		if motivo := model.PasswordFuerte(password); motivo != "" {
			return nil, validacion("password", motivo)
		}
	}
	if req.NIT != nil {
		existe, err := s.clientes.ExistsNIT(ctx, *req.NIT, uuid.Nil)
		if err != nil {
			return nil, err
		}
		if existe {
			return nil, conflicto("el NIT ya esta registrado")
		}
	}

	cd := clienteDatos{
		TipoCodigo:    req.TipoCliente,
		RazonSocial:   req.RazonSocial,
		NIT:           req.NIT,
		Ciudad:        req.Ciudad,
		Direccion:     req.Direccion,
		Especialidad:  req.Especialidad,
		EsVIP:         req.EsVIP,
		Observaciones: req.Observaciones,
	}
	if cd.TipoCodigo == "" {
		cd.TipoCodigo = TipoParticular
	}
	if req.LimiteCredito != nil {
		cd.LimiteCredito = req.LimiteCredito
	}
	if req.DescuentoEspecial != nil {
		cd.DescuentoEspecial = req.DescuentoEspecial
	}

	var usuario *model.Usuario
	var cliente *model.Cliente
	txErr := runTx(ctx, s.usuarios.DB(), func(tx *gorm.DB) error {
		var err error
		usuario, err = s.crearGrafoTx(ctx, tx, datos, model.RolCliente)
		if err != nil {
			return err
		}
		cliente, err = s.crearClienteTx(tx, usuario.ID, cd)
		return err
	})
	if txErr != nil {
		return nil, txErr
	}

	if password != "" {
		s.enviarBienvenida(ctx, usuario)
	}
	return s.clientes.FindByID(ctx, cliente.ID)
}

// ─── Disponibilidad ──────────────────────────────────────────────────────────

func (s *registroService) DisponibilidadUsuario(ctx context.Context, nombreUsuario string) (*dto.DisponibilidadResponse, error) {
	normalizado := model.NormalizarUsuario(nombreUsuario)
	if !model.UsuarioValido(normalizado) {
		return &dto.DisponibilidadResponse{Disponible: false, Mensaje: "nombre de usuario invalido: 3-20 caracteres [a-z0-9._-]"}, nil
	}
	existe, err := s.usuarios.ExistsUsername(ctx, normalizado)
	if err != nil {
		return nil, err
	}
	if existe {
		return &dto.DisponibilidadResponse{Disponible: false, Mensaje: "el nombre de usuario ya esta en uso"}, nil
	}
	return &dto.DisponibilidadResponse{Disponible: true}, nil
}

func (s *registroService) DisponibilidadCedula(ctx context.Context, cedula string) (*dto.DisponibilidadResponse, error) {
	normalizada := model.NormalizarCedula(cedula)
	if !model.CedulaValida(normalizada) {
		return &dto.DisponibilidadResponse{Disponible: false, Mensaje: "cedula invalida"}, nil
	}
	existe, err := s.usuarios.ExistsCedula(ctx, normalizada)
	if err != nil {
		return nil, err
	}
	if existe {
		return &dto.DisponibilidadResponse{Disponible: false, Mensaje: "la cedula de identidad ya esta registrada"}, nil
	}
	return &dto.DisponibilidadResponse{Disponible: true}, nil
}

func (s *registroService) DisponibilidadCorreo(ctx context.Context, correo string) (*dto.DisponibilidadResponse, error) {
	normalizado := model.NormalizarCorreo(correo)
	if !model.CorreoValido(normalizado) {
		return &dto.DisponibilidadResponse{Disponible: false, Mensaje: "correo invalido"}, nil
	}
	existe, err := s.usuarios.ExistsCorreo(ctx, normalizado, uuid.Nil)
	if err != nil {
		return nil, err
	}
	if existe {
		return &dto.DisponibilidadResponse{Disponible: false, Mensaje: "el correo ya esta registrado"}, nil
	}
	return &dto.DisponibilidadResponse{Disponible: true}, nil
}

// ─── Workflow internals ──────────────────────────────────────────────────────

// normalizar canonicalizes identity fields and runs the pre-flight
// uniqueness checks. Duplicates found later by the DB constraints still
// roll the transaction back; these checks only give better error messages.
func (s *registroService) normalizar(ctx context.Context, datos datosPersona) (datosPersona, error) {
	datos.Nombre = model.NormalizarNombre(datos.Nombre)
	datos.ApellidoPaterno = model.NormalizarNombre(datos.ApellidoPaterno)
	if datos.ApellidoMaterno != nil {
		n := model.NormalizarNombre(*datos.ApellidoMaterno)
		datos.ApellidoMaterno = &n
	}
	datos.Cedula = model.NormalizarCedula(datos.Cedula)
	if !model.CedulaValida(datos.Cedula) {
		return datos, validacion("cedula_identidad", "cedula invalida: se esperan 7-8 digitos con extension opcional")
	}
	if datos.Celular != nil {
		n := model.NormalizarCelular(*datos.Celular)
		if !model.CelularValido(n) {
			return datos, validacion("numero_celular", "celular invalido: 8 digitos comenzando en 6 o 7")
		}
		datos.Celular = &n
	}
	if datos.Correo != nil {
		n := model.NormalizarCorreo(*datos.Correo)
		if !model.CorreoValido(n) {
			return datos, validacion("correo", "correo invalido")
		}
		datos.Correo = &n
	}
	datos.NombreUsuario = model.NormalizarUsuario(datos.NombreUsuario)
	if !model.UsuarioValido(datos.NombreUsuario) {
		return datos, validacion("nombre_usuario", "nombre de usuario invalido: 3-20 caracteres [a-z0-9._-]")
	}

	if existe, err := s.usuarios.ExistsUsername(ctx, datos.NombreUsuario); err != nil {
		return datos, err
	} else if existe {
		return datos, conflicto("el nombre de usuario ya esta en uso")
	}
	if existe, err := s.usuarios.ExistsCedula(ctx, datos.Cedula); err != nil {
		return datos, err
	} else if existe {
		return datos, conflicto("la cedula de identidad ya esta registrada")
	}
	if datos.Correo != nil {
		if existe, err := s.usuarios.ExistsCorreo(ctx, *datos.Correo, uuid.Nil); err != nil {
			return datos, err
		} else if existe {
			return datos, conflicto("el correo ya esta registrado")
		}
	}
	return datos, nil
}

// crearGrafoTx creates Persona, Usuario and the role assignment inside tx.
func (s *registroService) crearGrafoTx(ctx context.Context, tx *gorm.DB, datos datosPersona, rolNombre string) (*model.Usuario, error) {
	rol, err := s.roles.FindByNombre(ctx, rolNombre)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, validacion("rol", "rol desconocido: "+rolNombre)
		}
		return nil, err
	}

	persona := &model.Persona{
		Nombre:          datos.Nombre,
		ApellidoPaterno: datos.ApellidoPaterno,
		ApellidoMaterno: datos.ApellidoMaterno,
		CedulaIdentidad: datos.Cedula,
		NumeroCelular:   datos.Celular,
		Correo:          datos.Correo,
	}
	if err := s.usuarios.CreatePersonaTx(tx, persona); err != nil {
		return nil, err
	}

	password := datos.Password
	if password == "" {
		// No credentials yet: store a hash of random bytes nobody knows.
		password = uuid.NewString() + uuid.NewString()
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), 12)
	if err != nil {
		return nil, err
	}
	usuario := &model.Usuario{
		PersonaID:     persona.ID,
		NombreUsuario: datos.NombreUsuario,
		PasswordHash:  string(hash),
		IsActive:      true,
	}
	if err := s.usuarios.CreateTx(tx, usuario); err != nil {
		return nil, err
	}

	if err := s.roles.AsignarTx(tx, &model.UsuarioRol{
		UsuarioID: usuario.ID,
		RolID:     rol.ID,
		Estado:    model.EstadoActivo,
	}); err != nil {
		return nil, err
	}
	usuario.Persona = *persona
	return usuario, nil
}

type clienteDatos struct {
	TipoCodigo        string
	RazonSocial       *string
	NIT               *string
	Ciudad            *string
	Direccion         *string
	Especialidad      *string
	EsVIP             bool
	LimiteCredito     *decimal.Decimal
	DescuentoEspecial *decimal.Decimal
	Observaciones     *string
}

func (s *registroService) crearClienteTx(tx *gorm.DB, usuarioID uuid.UUID, cd clienteDatos) (*model.Cliente, error) {
	tipo, err := s.clientes.FirstOrCreateTipoTx(tx, cd.TipoCodigo, nombreTipoPorDefecto(cd.TipoCodigo))
	if err != nil {
		return nil, err
	}

	cliente := &model.Cliente{
		UsuarioID:     usuarioID,
		TipoClienteID: tipo.ID,
		RazonSocial:   cd.RazonSocial,
		NIT:           cd.NIT,
		Ciudad:        cd.Ciudad,
		Direccion:     cd.Direccion,
		Especialidad:  cd.Especialidad,
		Estado:        model.ClienteActivo,
		EsVIP:         cd.EsVIP,
		Observaciones: cd.Observaciones,
	}
	if cd.LimiteCredito != nil {
		cliente.LimiteCredito = *cd.LimiteCredito
	}
	if cd.DescuentoEspecial != nil {
		cliente.DescuentoEspecial = *cd.DescuentoEspecial
	}
	if err := s.clientes.CreateTx(tx, cliente); err != nil {
		return nil, err
	}
	return cliente, nil
}

func (s *registroService) enviarBienvenida(ctx context.Context, usuario *model.Usuario) {
	if s.emails == nil || usuario.Persona.Correo == nil {
		return
	}
	if err := s.emails.EncolarBienvenida(ctx, *usuario.Persona.Correo, usuario.NombreCompleto(), usuario.NombreUsuario); err != nil {
		log.Warn().Err(err).Str("usuario", usuario.NombreUsuario).Msg("no se pudo encolar email de bienvenida")
	}
}

func nombreTipoPorDefecto(codigo string) string {
	if codigo == TipoParticular {
		return TipoParticularNombre
	}
	return codigo
}
