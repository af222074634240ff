package main

import (
	"flag"
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/shopadmin/backend/internal/infrastructure/config"
	"github.com/shopadmin/backend/internal/infrastructure/logger"
	"github.com/shopadmin/backend/internal/infrastructure/migration"
)

const usage = `Usage: migrate <command> [arguments]

Commands:
  up                 Apply all pending migrations
  down               Roll back the last migration
  steps <n>          Apply n migrations (negative rolls back)
  version            Print the current schema version
  force <version>    Set the schema version without running migrations
  create <name>      Create a new migration file pair
  list               List migration files
`

func main() {
	var (
		path = flag.String("path", "migrations", "migrations directory")
		url  = flag.String("database", "", "database URL (defaults to the configured database)")
	)
	flag.Usage = func() {
		fmt.Fprint(os.Stderr, usage)
		flag.PrintDefaults()
	}
	flag.Parse()

	if flag.NArg() < 1 {
		flag.Usage()
		os.Exit(2)
	}
	command := flag.Arg(0)

	appLogger := logger.New("info", "console", "stderr")
	defer logger.Sync(appLogger)

	// create and list work without a database connection
	switch command {
	case "create":
		if flag.NArg() < 2 {
			fatal(appLogger, "create requires a migration name")
		}
		file, err := migration.CreateMigration(*path, flag.Arg(1))
		if err != nil {
			fatal(appLogger, "failed to create migration", zap.Error(err))
		}
		fmt.Println(file.UpPath)
		fmt.Println(file.DownPath)
		return
	case "list":
		names, err := migration.ListMigrations(*path)
		if err != nil {
			fatal(appLogger, "failed to list migrations", zap.Error(err))
		}
		for _, name := range names {
			fmt.Println(name)
		}
		return
	}

	databaseURL := *url
	if databaseURL == "" {
		cfg, err := config.Load()
		if err != nil {
			fatal(appLogger, "failed to load config", zap.Error(err))
		}
		databaseURL = cfg.Database.URL()
	}

	migrator, err := migration.NewFromURL(databaseURL, *path, appLogger)
	if err != nil {
		fatal(appLogger, "failed to initialize migrator", zap.Error(err))
	}
	defer func() {
		if err := migrator.Close(); err != nil {
			appLogger.Error("failed to close migrator", zap.Error(err))
		}
	}()

	switch command {
	case "up":
		if err := migrator.Up(); err != nil {
			fatal(appLogger, "migration up failed", zap.Error(err))
		}
	case "down":
		if err := migrator.Down(); err != nil {
			fatal(appLogger, "migration down failed", zap.Error(err))
		}
	case "steps":
		if flag.NArg() < 2 {
			fatal(appLogger, "steps requires a count")
		}
		var n int
		if _, err := fmt.Sscanf(flag.Arg(1), "%d", &n); err != nil || n == 0 {
			fatal(appLogger, "steps requires a non-zero integer count")
		}
		if err := migrator.Steps(n); err != nil {
			fatal(appLogger, "migration steps failed", zap.Error(err))
		}
	case "version":
		version, dirty, err := migrator.Version()
		if err != nil {
			fatal(appLogger, "failed to read schema version", zap.Error(err))
		}
		fmt.Printf("version=%d dirty=%t\n", version, dirty)
	case "force":
		if flag.NArg() < 2 {
			fatal(appLogger, "force requires a version")
		}
		var version int
		if _, err := fmt.Sscanf(flag.Arg(1), "%d", &version); err != nil {
			fatal(appLogger, "force requires an integer version")
		}
		if err := migrator.Force(version); err != nil {
			fatal(appLogger, "migration force failed", zap.Error(err))
		}
	default:
		flag.Usage()
		os.Exit(2)
	}
}

func fatal(l *zap.Logger, msg string, fields ...zap.Field) {
	l.Error(msg, fields...)
	logger.Sync(l)
	os.Exit(1)
}
