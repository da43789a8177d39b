// Package main is the entry point for the ledger manager CLI.
package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"gitlab.com/yelinaung/ledger-manager/internal/config"
	"gitlab.com/yelinaung/ledger-manager/internal/csvio"
	"gitlab.com/yelinaung/ledger-manager/internal/database"
	"gitlab.com/yelinaung/ledger-manager/internal/ledger"
	"gitlab.com/yelinaung/ledger-manager/internal/logger"
	"gitlab.com/yelinaung/ledger-manager/internal/models"
	"gitlab.com/yelinaung/ledger-manager/internal/stats"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

const usage = `usage: ledger-manager <command> [args]

commands:
  register <username> <password>   create a user
  balance  <username>              print the user's balance
  import   <username> <file>       import records from a CSV file
  export   <file>                  export all records to a CSV file
  chart    <dir>                   render daily statistics charts into dir
  version                          print build information
`

func main() {
	if len(os.Args) > 1 && os.Args[1] == "version" {
		fmt.Printf("ledger-manager %s (commit: %s, built: %s)\n", version, commit, date)
		return
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	cfg, err := config.Load()
	if err != nil {
		logger.Log.Fatal().Err(err).Msg("Failed to load config")
	}

	logger.SetLevel(cfg.LogLevel)

	pool, err := database.Connect(ctx, cfg.DatabaseURL)
	if err != nil {
		logger.Log.Fatal().Err(err).Msg("Failed to connect to database")
	}
	defer pool.Close()

	if err := database.RunMigrations(ctx, pool); err != nil {
		logger.Log.Fatal().Err(err).Msg("Failed to run migrations")
	}

	svc := ledger.NewService(pool)

	if err := svc.Bootstrap(ctx, cfg.DefaultCategories); err != nil {
		logger.Log.Fatal().Err(err).Msg("Failed to bootstrap default categories")
	}

	if err := run(ctx, svc, os.Args[1:]); err != nil {
		logger.Log.Fatal().Err(err).Msg("Command failed")
	}
}

func run(ctx context.Context, svc *ledger.Service, args []string) error {
	if len(args) == 0 {
		fmt.Fprint(os.Stderr, usage)
		return nil
	}

	switch args[0] {
	case "register":
		if len(args) != 3 {
			return fmt.Errorf("register needs <username> <password>")
		}
		user, err := svc.Register(ctx, args[1], args[2])
		if err != nil {
			return err
		}
		fmt.Printf("registered user %s (id %d)\n", user.Username, user.ID)
		return nil

	case "balance":
		if len(args) != 2 {
			return fmt.Errorf("balance needs <username>")
		}
		user, err := svc.UserByUsername(ctx, args[1])
		if err != nil {
			return err
		}
		records, err := svc.ListRecords(ctx, user.ID)
		if err != nil {
			return err
		}
		fmt.Printf("balance for %s: %s\n", user.Username, ledger.Balance(records))
		return nil

	case "import":
		if len(args) != 3 {
			return fmt.Errorf("import needs <username> <file>")
		}
		user, err := svc.UserByUsername(ctx, args[1])
		if err != nil {
			return err
		}
		count, err := svc.ImportFile(ctx, user.ID, args[2])
		if err != nil {
			return err
		}
		fmt.Printf("imported %d records\n", count)
		return nil

	case "export":
		if len(args) != 2 {
			return fmt.Errorf("export needs <file>")
		}
		records, err := svc.AllRecords(ctx)
		if err != nil {
			return err
		}
		if err := csvio.ExportFile(args[1], records); err != nil {
			return err
		}
		fmt.Printf("exported %d records to %s\n", len(records), args[1])
		return nil

	case "chart":
		if len(args) != 2 {
			return fmt.Errorf("chart needs <dir>")
		}
		records, err := svc.AllRecords(ctx)
		if err != nil {
			return err
		}
		return renderCharts(args[1], records)

	default:
		fmt.Fprint(os.Stderr, usage)
		return fmt.Errorf("unknown command %q", args[0])
	}
}

// renderCharts writes the daily net-sum line chart and the per-type daily bar
// charts into dir.
func renderCharts(dir string, records []models.Record) error {
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return fmt.Errorf("failed to create chart dir: %w", err)
	}

	charts := []struct {
		file    string
		records []models.Record
		title   string
		bars    bool
	}{
		{"SumPerDay.png", records, "Daily Net Sum", false},
		{"IncomeDailyBars.png", filterByType(records, models.Income), "Daily Income", true},
		{"ExpenditureDailyBars.png", filterByType(records, models.Expenditure), "Daily Expenditure", true},
	}

	for _, c := range charts {
		points := stats.DailyNetSeries(c.records)
		if len(points) == 0 {
			continue
		}

		var data []byte
		var err error
		if c.bars {
			data, err = stats.RenderDailyBars(points, c.title)
		} else {
			data, err = stats.RenderSeries(points, c.title)
		}
		if err != nil {
			return err
		}

		path := filepath.Join(dir, c.file)
		if err := os.WriteFile(path, data, 0o600); err != nil {
			return fmt.Errorf("failed to write chart %s: %w", path, err)
		}
		fmt.Printf("wrote %s\n", path)
	}
	return nil
}

func filterByType(records []models.Record, t models.RecordType) []models.Record {
	f := ledger.Filter{Type: &t}
	return f.Apply(records)
}
