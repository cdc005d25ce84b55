package main

import (
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/pflag"

	"github.com/ciaranmay/revise/internal/cli"
	"github.com/ciaranmay/revise/internal/config"
	"github.com/ciaranmay/revise/internal/deck"
	"github.com/ciaranmay/revise/internal/storage"
)

func main() {
	// 1. Define and parse command-line flags
	flags := config.Flags()
	flags.String("import", "", "Import a deck (directory or git URL) and exit")
	flags.String("subject", "", "Subject to import the deck into")
	if err := flags.Parse(os.Args[1:]); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return
		}
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	cfg, err := config.Load(flags)
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	// 2. Open the database
	db, err := storage.Open(cfg.DBPath)
	if err != nil {
		slog.Error("failed to open database", "path", cfg.DBPath, "error", err)
		os.Exit(1)
	}
	defer db.Close()
	slog.Info("database opened", "path", cfg.DBPath)

	// 3. One-shot deck import, if requested
	if source, _ := flags.GetString("import"); source != "" {
		subject, _ := flags.GetString("subject")
		if subject == "" {
			slog.Error("--import requires --subject")
			os.Exit(2)
		}
		report, err := deck.Import(db, subject, source, cfg.ReposDir)
		if err != nil {
			slog.Error("deck import failed", "source", source, "error", err)
			os.Exit(1)
		}
		fmt.Printf("Imported %d new flashcards (%d already present, %d errors).\n",
			report.Imported, report.Skipped, len(report.Errors))
		for _, e := range report.Errors {
			fmt.Printf("- %v\n", e)
		}
		return
	}

	// 4. Interactive shell
	app := cli.New(db, os.Stdin, os.Stdout, cfg.DecksDir, cfg.ReposDir)
	if err := app.Run(); err != nil {
		slog.Error("session failed", "error", err)
		os.Exit(1)
	}
}
