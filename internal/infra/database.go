package infra

import (
	"fmt"

	"github.com/AnnCris/ROYDENT/internal/model"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NewDatabase establishes a GORM connection backed by pgx and runs
// AutoMigrate to create / update all tables. The schema is small and fully
// expressible through struct tags, so no SQL patch layer is needed.
func NewDatabase(dsn string) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
		// Surfaces unique-index violations as gorm.ErrDuplicatedKey so the
		// services can map the loser of a uniqueness race to a conflict.
		TranslateError: true,
	})
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(25)
	sqlDB.SetMaxIdleConns(5)

	if err := RunMigrations(db); err != nil {
		return nil, fmt.Errorf("AutoMigrate: %w", err)
	}

	return db, nil
}

// RunMigrations creates or updates all tables. Also used by integration tests
// against a disposable container database.
func RunMigrations(db *gorm.DB) error {
	return db.AutoMigrate(
		&model.Persona{},
		&model.Usuario{},
		&model.Rol{},
		&model.UsuarioRol{},
		&model.Permiso{},
		&model.RolPermiso{},
		&model.TipoCliente{},
		&model.Cliente{},
		&model.Proveedor{},
	)
}
