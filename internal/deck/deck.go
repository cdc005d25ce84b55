// Package deck imports flashcards from markdown deck files into a subject.
// A deck source is either a local directory or a git repository, which is
// cloned into a local cache first. Cards already present in the subject
// (matched by normalized content) are skipped, so imports are repeatable.
package deck

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/ciaranmay/revise/internal/gitsource"
	"github.com/ciaranmay/revise/internal/match"
	"github.com/ciaranmay/revise/internal/parser"
	"github.com/ciaranmay/revise/internal/storage"
)

// Report summarizes one import run.
type Report struct {
	Parsed   int // entries found in deck files
	Imported int // new cards inserted
	Skipped  int // entries already present in the subject
	Errors   []error
}

// Import loads every deck file under source into the named subject, creating
// the subject if it does not exist. Git sources are fetched into reposDir
// before scanning. Per-file parse failures are collected into the report;
// only source-level failures abort the run.
func Import(db *storage.DB, subjectName, source, reposDir string) (Report, error) {
	var report Report

	if gitsource.IsRepoURL(source) {
		if err := os.MkdirAll(reposDir, 0o755); err != nil {
			return report, fmt.Errorf("failed to create repos directory: %w", err)
		}
		localPath, err := gitsource.LocalPath(reposDir, source)
		if err != nil {
			return report, err
		}
		if err := gitsource.Fetch(source, localPath); err != nil {
			return report, err
		}
		source = localPath
	}

	subject, err := db.FindSubject(subjectName)
	if errors.Is(err, storage.ErrNotFound) {
		subject, err = db.CreateSubject(subjectName)
	}
	if err != nil {
		return report, err
	}

	existing, err := db.SubjectCards(subject.ID)
	if err != nil {
		return report, err
	}
	seen := make(map[string]bool, len(existing))
	for _, c := range existing {
		seen[match.Fingerprint(c.Question, c.Answer)] = true
	}

	walkErr := filepath.WalkDir(source, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !strings.HasSuffix(strings.ToLower(d.Name()), ".md") {
			return nil
		}

		entries, parseErr := parser.ParseFile(path)
		if parseErr != nil {
			report.Errors = append(report.Errors, fmt.Errorf("parsing %s: %w", path, parseErr))
			return nil
		}

		for _, entry := range entries {
			report.Parsed++
			fp := match.Fingerprint(entry.Question, entry.Answer)
			if seen[fp] {
				report.Skipped++
				continue
			}
			if _, err := db.InsertCard(subject.ID, entry.Question, entry.Answer); err != nil {
				report.Errors = append(report.Errors, fmt.Errorf("inserting card from %s: %w", path, err))
				continue
			}
			seen[fp] = true
			report.Imported++
		}
		return nil
	})
	if walkErr != nil {
		return report, fmt.Errorf("failed to scan deck source %s: %w", source, walkErr)
	}

	slog.Info("deck import complete",
		"subject", subjectName,
		"source", source,
		"parsed", report.Parsed,
		"imported", report.Imported,
		"skipped", report.Skipped,
		"errors", len(report.Errors),
	)
	return report, nil
}
