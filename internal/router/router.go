package router

import (
	"time"

	"github.com/AnnCris/ROYDENT/internal/config"
	"github.com/AnnCris/ROYDENT/internal/handler"
	"github.com/AnnCris/ROYDENT/internal/middleware"
	"github.com/AnnCris/ROYDENT/internal/model"
	"github.com/AnnCris/ROYDENT/internal/repository"
	"github.com/AnnCris/ROYDENT/internal/service"
	"github.com/AnnCris/ROYDENT/internal/worker"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// New wires all dependencies and returns a configured Gin engine.
// Dependency graph: Handler ← Service ← Repository ← DB/Redis
func New(cfg *config.Config, db *gorm.DB, rdb *redis.Client) *gin.Engine {
	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	// Global middleware chain (order matters)
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger())
	r.Use(middleware.Recovery())
	r.Use(middleware.CORS())
	r.Use(middleware.ErrorHandler())
	r.Use(middleware.RateLimiter(1000, time.Minute)) // 1000 req/min per IP

	// ── Repositories ─────────────────────────────────────────────────────────
	usuarioRepo := repository.NewUsuarioRepository(db)
	rolRepo := repository.NewRolRepository(db)
	permisoRepo := repository.NewPermisoRepository(db)
	clienteRepo := repository.NewClienteRepository(db)
	proveedorRepo := repository.NewProveedorRepository(db)

	// ── Services ─────────────────────────────────────────────────────────────
	permisoSvc := service.NewPermisoService(usuarioRepo, permisoRepo, rolRepo, rdb)
	authSvc := service.NewAuthService(usuarioRepo, rolRepo, permisoSvc, cfg)

	// Worker dispatcher — injected into services that enqueue async jobs
	dispatcher := worker.NewDispatcher(rdb)

	registroSvc := service.NewRegistroService(usuarioRepo, rolRepo, clienteRepo, permisoSvc, dispatcher)
	usuarioSvc := service.NewUsuarioService(usuarioRepo, rolRepo, registroSvc, permisoSvc)
	clienteSvc := service.NewClienteService(clienteRepo, usuarioRepo, rolRepo, registroSvc, permisoSvc, cfg.PDFStoragePath)
	proveedorSvc := service.NewProveedorService(proveedorRepo)

	// ── Handlers ─────────────────────────────────────────────────────────────
	authH := handler.NewAuthHandler(authSvc, registroSvc)
	usuariosH := handler.NewUsuariosHandler(usuarioSvc)
	clientesH := handler.NewClientesHandler(clienteSvc)
	proveedoresH := handler.NewProveedoresHandler(proveedorSvc)
	permisosH := handler.NewPermisosHandler(permisoSvc)

	// ── Routes ───────────────────────────────────────────────────────────────

	// Public
	r.GET("/health", handler.Health(db, rdb))

	// Auth (public)
	auth := r.Group("/v1/auth")
	{
		auth.POST("/login", middleware.AuthRateLimiter(), authH.Login)
		auth.POST("/refresh", authH.Refresh)
		auth.POST("/registro", middleware.AuthRateLimiter(), authH.Registro)
		auth.GET("/disponibilidad/usuario", authH.DisponibilidadUsuario)
		auth.GET("/disponibilidad/cedula", authH.DisponibilidadCedula)
		auth.GET("/disponibilidad/correo", authH.DisponibilidadCorreo)
	}

	// Protected routes
	jwtMW := middleware.JWTAuth(cfg.JWTSecret)
	permiso := func(codigo string) gin.HandlerFunc {
		return middleware.RequirePermiso(permisoSvc, codigo)
	}

	v1 := r.Group("/v1", jwtMW)
	{
		// Perfil propio — JWT only, no permission code
		perfil := v1.Group("/auth")
		{
			perfil.GET("/perfil", authH.Perfil)
			perfil.PUT("/perfil", authH.ActualizarPerfil)
			perfil.POST("/cambiar-password", authH.CambiarPassword)
			perfil.GET("/permisos", permisosH.MisPermisos)
		}

		usuarios := v1.Group("/usuarios")
		{
			usuarios.GET("", permiso("VER_USUARIOS"), usuariosH.Listar)
			usuarios.GET("/estadisticas", permiso("VER_USUARIOS"), usuariosH.Estadisticas)
			usuarios.GET("/:id", permiso("VER_USUARIOS"), usuariosH.Obtener)
			usuarios.GET("/:id/permisos", permiso("VER_USUARIOS"), permisosH.PermisosDeUsuario)
			usuarios.POST("", permiso("CREAR_USUARIOS"), usuariosH.Crear)
			usuarios.PUT("/:id", permiso("EDITAR_USUARIOS"), usuariosH.Actualizar)
			usuarios.DELETE("/:id", permiso("ELIMINAR_USUARIOS"), usuariosH.Desactivar)
			usuarios.PATCH("/:id/activar", permiso("EDITAR_USUARIOS"), usuariosH.Activar)
		}

		clientes := v1.Group("/clientes")
		{
			clientes.GET("", permiso("VER_CLIENTES"), clientesH.Listar)
			clientes.GET("/tipos", permiso("VER_CLIENTES"), clientesH.Tipos)
			clientes.GET("/estadisticas", permiso("VER_CLIENTES"), clientesH.Estadisticas)
			clientes.GET("/exportar-pdf", permiso("EXPORTAR_REPORTES"), clientesH.ExportarPDF)
			clientes.GET("/:id", permiso("VER_CLIENTES"), clientesH.Obtener)
			clientes.POST("", permiso("CREAR_CLIENTES"), clientesH.Crear)
			clientes.PUT("/:id", permiso("EDITAR_CLIENTES"), clientesH.Actualizar)
			clientes.DELETE("/:id", permiso("EDITAR_CLIENTES"), clientesH.Eliminar)
			clientes.PATCH("/:id/activar", permiso("EDITAR_CLIENTES"), clientesH.Activar)
		}

		// Proveedores are backoffice-only: gated on the admin role rather
		// than a permission code.
		proveedores := v1.Group("/proveedores", middleware.RequireRole(model.RolAdministrador))
		{
			proveedores.GET("", proveedoresH.Listar)
			proveedores.GET("/estadisticas", proveedoresH.Estadisticas)
			proveedores.GET("/:id", proveedoresH.Obtener)
			proveedores.POST("", proveedoresH.Crear)
			proveedores.PUT("/:id", proveedoresH.Actualizar)
			proveedores.DELETE("/:id", proveedoresH.Desactivar)
			proveedores.PATCH("/:id/activar", proveedoresH.Activar)
		}

		permisos := v1.Group("/permisos")
		{
			permisos.GET("", permiso("VER_CONFIGURACION"), permisosH.Catalogo)
			permisos.GET("/roles", permiso("VER_CONFIGURACION"), permisosH.Roles)
			permisos.GET("/matriz", permiso("VER_CONFIGURACION"), permisosH.Matriz)
			permisos.GET("/roles/:id", permiso("VER_CONFIGURACION"), permisosH.PermisosDeRol)
			permisos.PUT("/roles/:id", permiso("EDITAR_CONFIGURACION"), permisosH.ActualizarPermisosDeRol)
		}
	}

	// Swagger UI — only enabled outside production
	if cfg.Env != "production" {
		r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	return r
}
