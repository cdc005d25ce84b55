package deck

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/ciaranmay/revise/internal/domain"
	"github.com/ciaranmay/revise/internal/storage"
)

func writeDeck(t *testing.T, dir, name, content string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write deck file: %v", err)
	}
}

func TestImport(t *testing.T) {
	db, err := storage.Open(":memory:")
	if err != nil {
		t.Fatalf("failed to open in-memory database: %v", err)
	}
	defer db.Close()

	dir := t.TempDir()
	writeDeck(t, dir, "capitals.md", `
Q: Capital of France?
A: Paris
---
Q: Capital of Spain?
A: Madrid
`)
	writeDeck(t, dir, "notes.txt", "Q: not a deck file\nA: ignored")

	report, err := Import(db, "Geography", dir, t.TempDir())
	if err != nil {
		t.Fatalf("Import: %v", err)
	}
	if report.Parsed != 2 || report.Imported != 2 || report.Skipped != 0 {
		t.Errorf("report = %+v, want 2 parsed, 2 imported", report)
	}
	if len(report.Errors) != 0 {
		t.Errorf("unexpected import errors: %v", report.Errors)
	}

	subject, err := db.FindSubject("Geography")
	if err != nil {
		t.Fatalf("expected import to create the subject: %v", err)
	}
	cards, err := db.SubjectCards(subject.ID)
	if err != nil {
		t.Fatalf("SubjectCards: %v", err)
	}
	if len(cards) != 2 {
		t.Fatalf("expected 2 cards, got %d", len(cards))
	}
	for _, c := range cards {
		if c.Tier != domain.Weak || c.Correct != 0 || c.Incorrect != 0 {
			t.Errorf("imported card should start weak with zero counters: %+v", c)
		}
	}

	t.Run("reimport skips existing cards", func(t *testing.T) {
		report, err := Import(db, "Geography", dir, t.TempDir())
		if err != nil {
			t.Fatalf("Import: %v", err)
		}
		if report.Imported != 0 || report.Skipped != 2 {
			t.Errorf("report = %+v, want everything skipped", report)
		}
	})

	t.Run("normalized duplicates are skipped", func(t *testing.T) {
		other := t.TempDir()
		writeDeck(t, other, "dup.md", "Q: capital of france?\nA:  PARIS \n")
		report, err := Import(db, "Geography", other, t.TempDir())
		if err != nil {
			t.Fatalf("Import: %v", err)
		}
		if report.Imported != 0 || report.Skipped != 1 {
			t.Errorf("report = %+v, want the duplicate skipped", report)
		}
	})

	t.Run("missing source aborts", func(t *testing.T) {
		if _, err := Import(db, "Geography", filepath.Join(dir, "nope"), t.TempDir()); err == nil {
			t.Error("expected an error for a missing source directory")
		}
	})
}
