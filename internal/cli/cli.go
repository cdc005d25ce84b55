// Package cli implements the interactive console shell: subject selection,
// card authoring, deck import, and the turn-based revision loop.
package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/ciaranmay/revise/internal/deck"
	"github.com/ciaranmay/revise/internal/domain"
	"github.com/ciaranmay/revise/internal/session"
	"github.com/ciaranmay/revise/internal/storage"
)

// App is the interactive shell. Input and output are injected so the whole
// flow can be driven by tests.
type App struct {
	db       *storage.DB
	scanner  *bufio.Scanner
	out      io.Writer
	decksDir string
	reposDir string
}

// New creates a shell reading user input from in and writing to out.
func New(db *storage.DB, in io.Reader, out io.Writer, decksDir, reposDir string) *App {
	return &App{
		db:       db,
		scanner:  bufio.NewScanner(in),
		out:      out,
		decksDir: decksDir,
		reposDir: reposDir,
	}
}

func (a *App) printf(format string, args ...any) {
	fmt.Fprintf(a.out, format, args...)
}

// readLine reads one trimmed input line; ok is false at end of input.
func (a *App) readLine() (string, bool) {
	if !a.scanner.Scan() {
		return "", false
	}
	return strings.TrimSpace(a.scanner.Text()), true
}

func (a *App) prompt(msg string) (string, bool) {
	a.printf("%s\n", msg)
	return a.readLine()
}

// Run drives one sitting: pick or create a subject, then loop over the
// subject menu until the user quits. Returns nil on end of input.
func (a *App) Run() error {
	subject, ok, err := a.chooseSubject()
	if err != nil || !ok {
		return err
	}

	for {
		choice, ok := a.prompt(fmt.Sprintf(`
Subject: %s
1. Revise
2. Add flashcards
3. Edit a flashcard
4. Remove a flashcard
5. Import a deck
6. Delete this subject
q. Quit`, subject.Name))
		if !ok {
			return nil
		}

		switch choice {
		case "1":
			err = a.revise(subject)
		case "2":
			err = a.addCards(subject)
		case "3":
			err = a.editCard(subject)
		case "4":
			err = a.removeCard(subject)
		case "5":
			err = a.importDeck(subject)
		case "6":
			deleted, derr := a.deleteSubject(subject)
			if derr != nil {
				return derr
			}
			if deleted {
				return nil
			}
		case "q", "Q":
			return nil
		default:
			a.printf("Unknown option %q.\n", choice)
		}
		if err != nil {
			return err
		}
	}
}

func (a *App) chooseSubject() (domain.Subject, bool, error) {
	for {
		subjects, err := a.db.ListSubjects()
		if err != nil {
			return domain.Subject{}, false, err
		}

		if len(subjects) == 0 {
			a.printf("No subjects yet.\n")
			return a.createSubject()
		}

		a.printf("Subjects:\n")
		for i, s := range subjects {
			a.printf("%d. %s\n", i+1, s.Name)
		}
		input, ok := a.prompt("\nSelect a subject by number, or type 'new' to create one.")
		if !ok {
			return domain.Subject{}, false, nil
		}
		if strings.EqualFold(input, "new") {
			return a.createSubject()
		}

		n, err := strconv.Atoi(input)
		if err != nil || n < 1 || n > len(subjects) {
			a.printf("No such subject %q.\n", input)
			continue
		}
		return subjects[n-1], true, nil
	}
}

func (a *App) createSubject() (domain.Subject, bool, error) {
	name, ok := a.prompt("Creating new subject. Please enter the name of the subject:")
	if !ok {
		return domain.Subject{}, false, nil
	}
	if name == "" {
		a.printf("Subject name cannot be empty.\n")
		return a.chooseSubject()
	}
	subject, err := a.db.CreateSubject(name)
	if err != nil {
		return domain.Subject{}, false, err
	}
	return subject, true, nil
}

func (a *App) addCards(subject domain.Subject) error {
	for {
		input, ok := a.prompt("Would you like to add a flashcard? (y/n)")
		if !ok || !strings.EqualFold(input, "y") {
			return nil
		}

		question, ok := a.prompt("Enter the question:")
		if !ok {
			return nil
		}
		answer, ok := a.prompt("Enter the answer:")
		if !ok {
			return nil
		}

		if _, err := a.db.InsertCard(subject.ID, question, answer); err != nil {
			return err
		}
		a.printf("Flashcard added!\n")
	}
}

// pickCard lists the subject's cards with their stats and reads a card key.
func (a *App) pickCard(subject domain.Subject) (domain.Card, bool, error) {
	cards, err := a.db.SubjectCards(subject.ID)
	if err != nil {
		return domain.Card{}, false, err
	}
	if len(cards) == 0 {
		a.printf("This subject has no flashcards.\n")
		return domain.Card{}, false, nil
	}

	for _, c := range cards {
		a.printf("%d. [%s] %s -> %s (%d correct, %d incorrect)\n",
			c.ID, c.Tier, c.Question, c.Answer, c.Correct, c.Incorrect)
	}
	input, ok := a.prompt("\nSelect a flashcard by its number.")
	if !ok {
		return domain.Card{}, false, nil
	}
	id, err := strconv.ParseInt(input, 10, 64)
	if err == nil {
		for _, c := range cards {
			if c.ID == id {
				return c, true, nil
			}
		}
	}
	a.printf("No such flashcard %q.\n", input)
	return domain.Card{}, false, nil
}

func (a *App) editCard(subject domain.Subject) error {
	card, ok, err := a.pickCard(subject)
	if err != nil || !ok {
		return err
	}

	field, ok := a.prompt("Edit the question or the answer? (q/a)")
	if !ok {
		return nil
	}
	value, ok := a.prompt("Enter the new text:")
	if !ok {
		return nil
	}

	question, answer := card.Question, card.Answer
	switch strings.ToLower(field) {
	case "q":
		question = value
	case "a":
		answer = value
	default:
		a.printf("Unknown field %q.\n", field)
		return nil
	}

	if err := a.db.UpdateCardText(card.ID, question, answer); err != nil {
		return err
	}
	a.printf("Flashcard updated!\n")
	return nil
}

func (a *App) removeCard(subject domain.Subject) error {
	card, ok, err := a.pickCard(subject)
	if err != nil || !ok {
		return err
	}
	if err := a.db.DeleteCard(card.ID); err != nil {
		return err
	}
	a.printf("Flashcard removed!\n")
	return nil
}

func (a *App) importDeck(subject domain.Subject) error {
	msg := "Enter a deck directory or git URL:"
	if a.decksDir != "" {
		msg = fmt.Sprintf("Enter a deck directory or git URL (blank for %s):", a.decksDir)
	}
	source, ok := a.prompt(msg)
	if !ok {
		return nil
	}
	if source == "" {
		if a.decksDir == "" {
			a.printf("No deck source given.\n")
			return nil
		}
		source = a.decksDir
	}

	report, err := deck.Import(a.db, subject.Name, source, a.reposDir)
	if err != nil {
		a.printf("Import failed: %v\n", err)
		return nil
	}
	a.printf("Imported %d new flashcards (%d already present).\n", report.Imported, report.Skipped)
	for _, e := range report.Errors {
		a.printf("- %v\n", e)
	}
	return nil
}

func (a *App) deleteSubject(subject domain.Subject) (bool, error) {
	input, ok := a.prompt("IRREVERSIBLE ACTION - CONFIRMATION REQUIRED: Are you sure you want to remove this subject? (y/N)")
	if !ok || !strings.EqualFold(input, "y") {
		a.printf("Subject not removed.\n")
		return false, nil
	}
	if err := a.db.DeleteSubject(subject.Name); err != nil {
		return false, err
	}
	a.printf("Subject removed!\n")
	return true, nil
}

func (a *App) revise(subject domain.Subject) error {
	input, ok := a.prompt("Revise which set? (weak, learning, strong)")
	if !ok {
		return nil
	}
	tier, err := domain.ParseTier(input)
	if err != nil {
		a.printf("Invalid input. Defaulting to weak flashcards.\n")
		tier = domain.Weak
	}

	sess, err := session.Start(a.db, subject.Name, tier)
	if err != nil {
		return err
	}

	for {
		card, ok := sess.Draw()
		if !ok {
			break
		}

		answer, ok := a.prompt(card.Question)
		if !ok {
			a.printf("Session abandoned; no changes saved.\n")
			return nil
		}
		a.printf("\nYour answer: %s\nActual answer: %s\n", answer, card.Answer)

		fb, err := sess.Submit(answer, func(given, stored string) bool {
			confirm, ok := a.prompt("Was your answer correct? (y/n)")
			return ok && strings.EqualFold(confirm, "y")
		})
		if err != nil {
			return err
		}

		if fb.Correct {
			a.printf("Well done! Your accuracy is now %.2f.\n", fb.Accuracy)
		} else {
			a.printf("Whoops! Your accuracy is now %.2f.\n", fb.Accuracy)
		}
	}

	summary, err := sess.Finalize(time.Now())
	if err != nil && !errors.Is(err, session.ErrStoreWrite) {
		return err
	}
	a.renderSummary(summary)
	if err != nil {
		a.printf("WARNING: results could not be saved: %v\n", err)
	}
	return nil
}

func (a *App) renderSummary(s session.Summary) {
	a.printf("\nPost flashcard breakdown:\n")
	if s.CardsPracticed == 0 {
		a.printf("No cards practiced!\n")
		return
	}

	noun := "card"
	if s.CardsPracticed > 1 {
		noun = "cards"
	}
	a.printf("You practiced %d %s, and got %d of those correct. That's %.0f%%!\n",
		s.CardsPracticed, noun, s.Correct, s.PercentAccuracy)

	a.printf("\nLearning progress breakdown:\n")
	a.printf("Cards moving upwards:\n")
	if len(s.Promoted) == 0 {
		a.printf("None!\n")
	}
	for _, q := range s.Promoted {
		a.printf("- %s\n", q)
	}
	a.printf("Cards moving down:\n")
	if len(s.Demoted) == 0 {
		a.printf("None!\n")
	}
	for _, q := range s.Demoted {
		a.printf("- %s\n", q)
	}
}
