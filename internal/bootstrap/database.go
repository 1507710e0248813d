package bootstrap

import (
	"fmt"

	"github.com/jmoiron/sqlx"
	dbconfig "github.com/jonesrussell/north-cloud/seo-monitor/internal/config/database"
	"github.com/jonesrussell/north-cloud/seo-monitor/internal/database"
)

// DatabaseComponents holds the connection pool and every repository built on it.
type DatabaseComponents struct {
	DB         *sqlx.DB
	Sites      *database.SiteRepository
	Keywords   *database.KeywordRepository
	Positions  *database.PositionRepository
	Listings   *database.ListingRepository
	Backlinks  *database.BacklinkRepository
	Alerts     *database.AlertRepository
	Executions *database.ExecutionRepository
	Changes    *database.ChangeRepository
}

// SetupDatabase connects to PostgreSQL and creates all repositories.
func SetupDatabase(cfg *dbconfig.Config) (*DatabaseComponents, error) {
	db, err := database.NewPostgresConnection(databaseConfig(cfg))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	return NewDatabaseComponents(db), nil
}

// NewDatabaseComponents creates every repository on one shared pool.
func NewDatabaseComponents(db *sqlx.DB) *DatabaseComponents {
	return &DatabaseComponents{
		DB:         db,
		Sites:      database.NewSiteRepository(db),
		Keywords:   database.NewKeywordRepository(db),
		Positions:  database.NewPositionRepository(db),
		Listings:   database.NewListingRepository(db),
		Backlinks:  database.NewBacklinkRepository(db),
		Alerts:     database.NewAlertRepository(db),
		Executions: database.NewExecutionRepository(db),
		Changes:    database.NewChangeRepository(db),
	}
}

// Close closes the connection pool.
func (d *DatabaseComponents) Close() error {
	return d.DB.Close()
}

// databaseConfig converts the viper-loaded settings into a connection config.
func databaseConfig(cfg *dbconfig.Config) database.Config {
	return database.Config{
		Host:     cfg.Host,
		Port:     cfg.Port,
		User:     cfg.User,
		Password: cfg.Password,
		DBName:   cfg.DBName,
		SSLMode:  cfg.SSLMode,
	}
}
