// Package testutils provides helpers shared by integration tests.
package testutils

import (
	"context"
	"fmt"
	"time"

	"github.com/jonesrussell/north-cloud/seo-monitor/internal/database"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

const (
	// DefaultPostgresImage is the image used for integration databases.
	DefaultPostgresImage = "postgres:16-alpine"
	// DefaultPostgresStartupTimeout bounds container start-up.
	DefaultPostgresStartupTimeout = 60 * time.Second

	postgresPort     = "5432/tcp"
	postgresUser     = "seo"
	postgresPassword = "seo"
	postgresDB       = "seo_monitor_test"
)

// PostgresContainer manages a throwaway PostgreSQL instance.
type PostgresContainer struct {
	Container testcontainers.Container
	Host      string
	Port      string
}

// StartPostgres starts a PostgreSQL container for testing.
// It returns a container instance that should be stopped with Stop().
func StartPostgres(ctx context.Context) (*PostgresContainer, error) {
	req := testcontainers.ContainerRequest{
		Image:        DefaultPostgresImage,
		ExposedPorts: []string{postgresPort},
		Env: map[string]string{
			"POSTGRES_USER":     postgresUser,
			"POSTGRES_PASSWORD": postgresPassword,
			"POSTGRES_DB":       postgresDB,
		},
		// The server logs readiness twice: once for the init pass and once for real.
		WaitingFor: wait.ForAll(
			wait.ForLog("database system is ready to accept connections").WithOccurrence(2),
			wait.ForListeningPort(postgresPort),
		).WithDeadline(DefaultPostgresStartupTimeout),
	}

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to start postgres container: %w", err)
	}

	host, err := container.Host(ctx)
	if err != nil {
		_ = container.Terminate(ctx)
		return nil, fmt.Errorf("failed to get container host: %w", err)
	}

	mappedPort, err := container.MappedPort(ctx, postgresPort)
	if err != nil {
		_ = container.Terminate(ctx)
		return nil, fmt.Errorf("failed to get container port: %w", err)
	}

	return &PostgresContainer{
		Container: container,
		Host:      host,
		Port:      mappedPort.Port(),
	}, nil
}

// Config returns connection settings for the container.
func (p *PostgresContainer) Config() database.Config {
	return database.Config{
		Host:     p.Host,
		Port:     p.Port,
		User:     postgresUser,
		Password: postgresPassword,
		DBName:   postgresDB,
		SSLMode:  "disable",
	}
}

// Stop stops and removes the PostgreSQL container.
func (p *PostgresContainer) Stop(ctx context.Context) error {
	if p.Container == nil {
		return nil
	}
	return p.Container.Terminate(ctx)
}
