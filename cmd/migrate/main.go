// Command migrate applies the embedded PostgreSQL schema of a service
package main

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"strconv"

	"github.com/Aidin1998/apiexercises/internal/config"
	"github.com/Aidin1998/apiexercises/internal/database/migrations"
	"github.com/Aidin1998/apiexercises/pkg/logger"
	"github.com/golang-migrate/migrate/v4"
	"go.uber.org/zap"
)

func main() {
	app := flag.String("app", "", "service whose migrations to run (instaclone, jwtauth, recipes)")
	dbURL := flag.String("database-url", "", "postgres URL, defaults to the service's database.dsn")
	flag.Usage = usage
	flag.Parse()

	args := flag.Args()
	if len(args) == 0 || *app == "" {
		usage()
		os.Exit(2)
	}

	cfg, err := config.Load(*app)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load configuration: %v\n", err)
		os.Exit(1)
	}
	log, err := logger.NewLogger(cfg.Log.Level, "migrate")
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to create logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	url := *dbURL
	if url == "" {
		url = cfg.Database.DSN
	}

	m, err := migrations.New(*app, url)
	if err != nil {
		log.Fatal("Migration init failed", zap.Error(err))
	}
	defer m.Close()
	m.Log = migrateLogger{log.Sugar()}

	if err := run(m, args); err != nil {
		log.Fatal("Migration failed", zap.String("app", *app), zap.String("command", args[0]), zap.Error(err))
	}
}

func run(m *migrate.Migrate, args []string) error {
	switch args[0] {
	case "up":
		if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
			return err
		}
	case "down":
		steps := 1
		if len(args) > 1 {
			n, err := strconv.Atoi(args[1])
			if err != nil || n < 1 {
				return fmt.Errorf("invalid steps argument %q", args[1])
			}
			steps = n
		}
		if err := m.Steps(-steps); err != nil && !errors.Is(err, migrate.ErrNoChange) {
			return err
		}
	case "version":
		v, dirty, err := m.Version()
		if err != nil && !errors.Is(err, migrate.ErrNilVersion) {
			return err
		}
		fmt.Printf("version: %d  dirty: %v\n", v, dirty)
	case "force":
		if len(args) < 2 {
			return errors.New("force needs a version argument")
		}
		v, err := strconv.Atoi(args[1])
		if err != nil {
			return fmt.Errorf("invalid version %q", args[1])
		}
		return m.Force(v)
	default:
		return fmt.Errorf("unknown command %q", args[0])
	}
	return nil
}

type migrateLogger struct {
	log *zap.SugaredLogger
}

func (l migrateLogger) Printf(format string, v ...interface{}) {
	l.log.Infof(format, v...)
}

func (l migrateLogger) Verbose() bool { return false }

func usage() {
	fmt.Fprintln(os.Stderr, `Usage: migrate -app <service> [-database-url <url>] <command> [args]

Commands:
  up           Apply all pending migrations
  down [N]     Roll back N migrations (default: 1)
  version      Print the current migration version
  force <V>    Set the migration version, clearing the dirty flag`)
}
