package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"strings"

	database "cloud.google.com/go/spanner/admin/database/apiv1"
	"cloud.google.com/go/spanner/admin/database/apiv1/databasepb"
	instance "cloud.google.com/go/spanner/admin/instance/apiv1"
	"cloud.google.com/go/spanner/admin/instance/apiv1/instancepb"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/light-bringer/decant-store/internal/config"
	"github.com/light-bringer/decant-store/internal/pkg/logging"
	"github.com/light-bringer/decant-store/internal/services"
	"github.com/light-bringer/decant-store/migrations"
)

var driver = flag.String("driver", "", "Store to migrate (spanner or postgres); defaults to DATABASE_DRIVER")

// spannerPath is a parsed projects/P/instances/I/databases/D name.
type spannerPath struct {
	project, instance, database string
}

func (p spannerPath) instanceName() string {
	return fmt.Sprintf("projects/%s/instances/%s", p.project, p.instance)
}

func (p spannerPath) databaseName() string {
	return p.instanceName() + "/databases/" + p.database
}

func parseSpannerPath(name string) (spannerPath, error) {
	parts := strings.Split(name, "/")
	if len(parts) != 6 || parts[0] != "projects" || parts[2] != "instances" || parts[4] != "databases" {
		return spannerPath{}, fmt.Errorf("invalid spanner database %q", name)
	}
	return spannerPath{project: parts[1], instance: parts[3], database: parts[5]}, nil
}

func main() {
	flag.Parse()

	ctx := context.Background()
	logger := logging.New(os.Stdout, false, slog.LevelInfo)

	cfg, err := config.Load()
	if err != nil {
		logger.Error("invalid configuration", "error", err)
		os.Exit(1)
	}
	if *driver != "" {
		cfg.Database.Driver = *driver
	}

	switch cfg.Database.Driver {
	case config.DriverSpanner:
		err = migrateSpanner(ctx, logger, cfg.Database.SpannerDatabase)
	case config.DriverPostgres:
		err = migratePostgres(ctx, cfg.Database.URL)
	default:
		err = fmt.Errorf("driver %q has no schema", cfg.Database.Driver)
	}
	if err != nil {
		logger.Error("migration failed", "error", err)
		os.Exit(1)
	}

	logger.Info("migrations completed successfully", "driver", cfg.Database.Driver)
}

func migratePostgres(ctx context.Context, databaseURL string) error {
	db, err := services.OpenPostgres(databaseURL)
	if err != nil {
		return err
	}
	defer db.Close()

	return migrations.ApplyPostgres(ctx, db)
}

func migrateSpanner(ctx context.Context, logger *slog.Logger, name string) error {
	path, err := parseSpannerPath(name)
	if err != nil {
		return err
	}

	if host := os.Getenv("SPANNER_EMULATOR_HOST"); host != "" {
		logger.Info("using spanner emulator", "host", host)
		if err := ensureInstance(ctx, logger, path); err != nil {
			return fmt.Errorf("failed to ensure instance: %w", err)
		}
	}

	if err := ensureDatabase(ctx, logger, path); err != nil {
		return fmt.Errorf("failed to ensure database: %w", err)
	}

	return applySpannerMigrations(ctx, logger, path)
}

// ensureInstance creates the emulator instance when it is missing.
func ensureInstance(ctx context.Context, logger *slog.Logger, path spannerPath) error {
	instanceAdmin, err := instance.NewInstanceAdminClient(ctx)
	if err != nil {
		return fmt.Errorf("failed to create instance admin client: %w", err)
	}
	defer instanceAdmin.Close()

	_, err = instanceAdmin.GetInstance(ctx, &instancepb.GetInstanceRequest{Name: path.instanceName()})
	if err == nil {
		return nil
	}
	if status.Code(err) != codes.NotFound {
		return fmt.Errorf("failed to check instance: %w", err)
	}

	logger.Info("creating instance", "instance", path.instance)
	op, err := instanceAdmin.CreateInstance(ctx, &instancepb.CreateInstanceRequest{
		Parent:     "projects/" + path.project,
		InstanceId: path.instance,
		Instance: &instancepb.Instance{
			Config:      fmt.Sprintf("projects/%s/instanceConfigs/emulator-config", path.project),
			DisplayName: "Development Instance",
			NodeCount:   1,
		},
	})
	if err != nil {
		if status.Code(err) == codes.AlreadyExists {
			return nil
		}
		return fmt.Errorf("failed to create instance: %w", err)
	}
	if _, err := op.Wait(ctx); err != nil && status.Code(err) != codes.AlreadyExists {
		logger.Warn("instance creation did not complete cleanly", "error", err)
	}
	return nil
}

func ensureDatabase(ctx context.Context, logger *slog.Logger, path spannerPath) error {
	adminClient, err := database.NewDatabaseAdminClient(ctx)
	if err != nil {
		return fmt.Errorf("failed to create admin client: %w", err)
	}
	defer adminClient.Close()

	_, err = adminClient.GetDatabase(ctx, &databasepb.GetDatabaseRequest{Name: path.databaseName()})
	if err == nil {
		return nil
	}
	if status.Code(err) != codes.NotFound {
		return fmt.Errorf("failed to check database: %w", err)
	}

	logger.Info("creating database", "database", path.database)
	op, err := adminClient.CreateDatabase(ctx, &databasepb.CreateDatabaseRequest{
		Parent:          path.instanceName(),
		CreateStatement: fmt.Sprintf("CREATE DATABASE `%s`", path.database),
	})
	if err != nil {
		if status.Code(err) == codes.AlreadyExists {
			return nil
		}
		return fmt.Errorf("failed to create database: %w", err)
	}
	if _, err := op.Wait(ctx); err != nil {
		return fmt.Errorf("failed to wait for database creation: %w", err)
	}
	return nil
}

// applySpannerMigrations submits each migration file as one DDL batch.
// Tables that already exist are skipped.
func applySpannerMigrations(ctx context.Context, logger *slog.Logger, path spannerPath) error {
	adminClient, err := database.NewDatabaseAdminClient(ctx)
	if err != nil {
		return fmt.Errorf("failed to create admin client: %w", err)
	}
	defer adminClient.Close()

	all, err := migrations.Load(migrations.DialectSpanner)
	if err != nil {
		return err
	}

	for _, m := range all {
		logger.Info("applying migration", "name", m.Name)

		op, err := adminClient.UpdateDatabaseDdl(ctx, &databasepb.UpdateDatabaseDdlRequest{
			Database:   path.databaseName(),
			Statements: m.Statements,
		})
		if err != nil {
			return fmt.Errorf("failed to start DDL update for %s: %w", m.Name, err)
		}
		if err := op.Wait(ctx); err != nil {
			if status.Code(err) == codes.FailedPrecondition && strings.Contains(err.Error(), "Duplicate name") {
				logger.Info("migration already applied", "name", m.Name)
				continue
			}
			return fmt.Errorf("failed to apply DDL for %s: %w", m.Name, err)
		}
	}
	return nil
}
