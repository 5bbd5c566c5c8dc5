package cli

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/mrlokans/bookstore/internal/audit"
	"github.com/mrlokans/bookstore/internal/cache"
	"github.com/mrlokans/bookstore/internal/config"
	"github.com/mrlokans/bookstore/internal/database"
	"github.com/mrlokans/bookstore/internal/database/seed"
	"github.com/mrlokans/bookstore/internal/services"
)

// SeedCommand imports a seed file into the catalog database outside the server.
type SeedCommand struct {
	FilePath     string
	DatabasePath string
	DryRun       bool

	Out io.Writer
}

func NewSeedCommand() *SeedCommand {
	return &SeedCommand{Out: os.Stdout}
}

func (cmd *SeedCommand) ParseFlags(args []string) error {
	fs := flag.NewFlagSet("seed", flag.ContinueOnError)

	fs.StringVar(&cmd.FilePath, "file", config.DefaultSeedFilePath, "Path to the seed file (.json, .yaml or .yml)")
	fs.StringVar(&cmd.DatabasePath, "db", config.DefaultDatabasePath, "Path to the catalog database file")
	fs.BoolVar(&cmd.DryRun, "dry-run", false, "Parse the seed file and print what would be imported")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s seed [options]\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "Import authors, stores, books and their links from a seed file.\n")
		fmt.Fprintf(os.Stderr, "Nothing is written when the catalog already has data.\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		fs.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  %s seed -file ./seed/seed-data.json -db ./bookstore.db\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  %s seed -file catalog.yaml -dry-run\n", os.Args[0])
	}

	if err := fs.Parse(args); err != nil {
		return err
	}

	if cmd.FilePath == "" {
		return fmt.Errorf("required flag -file not provided")
	}

	return nil
}

func (cmd *SeedCommand) Run(ctx context.Context) error {
	fmt.Fprintf(cmd.Out, "File: %s\n", cmd.FilePath)

	if cmd.DryRun {
		data, err := seed.Load(cmd.FilePath)
		if err != nil {
			return fmt.Errorf("failed to read seed file: %w", err)
		}
		fmt.Fprintf(cmd.Out, "Authors: %d\nStores: %d\nBooks: %d\nBook authors: %d\nStore books: %d\n",
			len(data.Authors), len(data.Stores), len(data.Books), len(data.BookAuthors), len(data.StoreBooks))
		fmt.Fprintln(cmd.Out, "Dry run complete. Use without -dry-run to import.")
		return nil
	}

	absDBPath, err := filepath.Abs(cmd.DatabasePath)
	if err != nil {
		return fmt.Errorf("failed to get absolute path for database: %w", err)
	}
	fmt.Fprintf(cmd.Out, "Database: %s\n", absDBPath)

	db, err := database.NewDatabase(absDBPath)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	defer db.Close()

	svc := services.NewSeedService(seed.NewRepository(db.DB, audit.NewRecorder()), cmd.FilePath, cache.New(0))
	message, err := svc.Seed(ctx)
	if err != nil {
		return err
	}

	fmt.Fprintln(cmd.Out, message)
	return nil
}
