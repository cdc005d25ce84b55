package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/ciaranmay/revise/internal/domain"
	_ "modernc.org/sqlite" // Registers the sqlite driver
)

// ErrNotFound is returned when a subject or card does not exist.
// Use errors.Is to check for it.
var ErrNotFound = errors.New("storage: not found")

// DB wraps the SQL database connection.
type DB struct {
	conn *sql.DB
}

// Open creates a new database connection and ensures the schema is up to date.
func Open(dsn string) (*DB, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	// SQLite allows only one writer at a time.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		return nil, fmt.Errorf("failed to enable foreign keys: %w", err)
	}

	// Execute the schema to create tables if they don't exist.
	if _, err := db.Exec(schema); err != nil {
		return nil, fmt.Errorf("failed to apply schema: %w", err)
	}

	return &DB{conn: db}, nil
}

// Close closes the database connection.
func (db *DB) Close() error {
	return db.conn.Close()
}

// CreateSubject inserts a new subject and returns it with its assigned ID.
func (db *DB) CreateSubject(name string) (domain.Subject, error) {
	createdAt := time.Now().UTC()
	res, err := db.conn.Exec(`
		INSERT INTO subjects (name, created_at)
		VALUES (?, ?)
	`, name, createdAt)
	if err != nil {
		return domain.Subject{}, fmt.Errorf("failed to insert subject %s: %w", name, err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return domain.Subject{}, fmt.Errorf("failed to get last insert ID for subject %s: %w", name, err)
	}
	return domain.Subject{ID: id, Name: name, CreatedAt: createdAt}, nil
}

// FindSubject retrieves a subject by name.
func (db *DB) FindSubject(name string) (domain.Subject, error) {
	var s domain.Subject
	row := db.conn.QueryRow(`
		SELECT id, name, created_at
		FROM subjects WHERE name = ?
	`, name)

	err := row.Scan(&s.ID, &s.Name, &s.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Subject{}, fmt.Errorf("subject %s: %w", name, ErrNotFound)
		}
		return domain.Subject{}, fmt.Errorf("failed to find subject %s: %w", name, err)
	}
	return s, nil
}

// ListSubjects retrieves all stored subjects, ordered by name.
func (db *DB) ListSubjects() ([]domain.Subject, error) {
	rows, err := db.conn.Query(`
		SELECT id, name, created_at
		FROM subjects ORDER BY name
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to list subjects: %w", err)
	}
	defer rows.Close()

	var subjects []domain.Subject
	for rows.Next() {
		var s domain.Subject
		if err := rows.Scan(&s.ID, &s.Name, &s.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan subject row: %w", err)
		}
		subjects = append(subjects, s)
	}
	return subjects, rows.Err()
}

// DeleteSubject removes a subject; its cards and revision records cascade.
func (db *DB) DeleteSubject(name string) error {
	res, err := db.conn.Exec(`
		DELETE FROM subjects
		WHERE name = ?
	`, name)
	if err != nil {
		return fmt.Errorf("failed to delete subject %s: %w", name, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check delete of subject %s: %w", name, err)
	}
	if n == 0 {
		return fmt.Errorf("subject %s: %w", name, ErrNotFound)
	}
	return nil
}

// InsertCard adds a new card to a subject. New cards start in the weak tier
// with zero counters.
func (db *DB) InsertCard(subjectID int64, question, answer string) (domain.Card, error) {
	res, err := db.conn.Exec(`
		INSERT INTO cards (subject_id, tier, question, answer, correct, incorrect)
		VALUES (?, ?, ?, ?, 0, 0)
	`, subjectID, int(domain.Weak), question, answer)
	if err != nil {
		return domain.Card{}, fmt.Errorf("failed to insert card for subject %d: %w", subjectID, err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return domain.Card{}, fmt.Errorf("failed to get last insert ID for card: %w", err)
	}
	return domain.Card{
		ID:        id,
		SubjectID: subjectID,
		Tier:      domain.Weak,
		Question:  question,
		Answer:    answer,
	}, nil
}

// UpdateCardText replaces a card's question and answer.
func (db *DB) UpdateCardText(cardID int64, question, answer string) error {
	res, err := db.conn.Exec(`
		UPDATE cards
		SET question = ?, answer = ?
		WHERE id = ?
	`, question, answer, cardID)
	if err != nil {
		return fmt.Errorf("failed to update card %d: %w", cardID, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check update of card %d: %w", cardID, err)
	}
	if n == 0 {
		return fmt.Errorf("card %d: %w", cardID, ErrNotFound)
	}
	return nil
}

// DeleteCard removes a card by its key.
func (db *DB) DeleteCard(cardID int64) error {
	res, err := db.conn.Exec(`
		DELETE FROM cards
		WHERE id = ?
	`, cardID)
	if err != nil {
		return fmt.Errorf("failed to delete card %d: %w", cardID, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check delete of card %d: %w", cardID, err)
	}
	if n == 0 {
		return fmt.Errorf("card %d: %w", cardID, ErrNotFound)
	}
	return nil
}

// SubjectCards retrieves every card belonging to a subject, in storage order.
func (db *DB) SubjectCards(subjectID int64) ([]domain.Card, error) {
	rows, err := db.conn.Query(`
		SELECT id, subject_id, tier, question, answer, correct, incorrect
		FROM cards WHERE subject_id = ?
		ORDER BY id
	`, subjectID)
	if err != nil {
		return nil, fmt.Errorf("failed to get cards for subject %d: %w", subjectID, err)
	}
	defer rows.Close()
	return scanCards(rows)
}

// ListCards retrieves a subject's cards in one tier, in storage order.
// Returns ErrNotFound when the subject does not exist; an existing subject
// with no cards in the tier yields an empty slice.
func (db *DB) ListCards(subject string, tier domain.Tier) ([]domain.Card, error) {
	s, err := db.FindSubject(subject)
	if err != nil {
		return nil, err
	}

	rows, err := db.conn.Query(`
		SELECT id, subject_id, tier, question, answer, correct, incorrect
		FROM cards WHERE subject_id = ? AND tier = ?
		ORDER BY id
	`, s.ID, int(tier))
	if err != nil {
		return nil, fmt.Errorf("failed to get %s cards for subject %s: %w", tier, subject, err)
	}
	defer rows.Close()
	return scanCards(rows)
}

func scanCards(rows *sql.Rows) ([]domain.Card, error) {
	var cards []domain.Card
	for rows.Next() {
		var c domain.Card
		var tier int
		if err := rows.Scan(&c.ID, &c.SubjectID, &tier, &c.Question, &c.Answer, &c.Correct, &c.Incorrect); err != nil {
			return nil, fmt.Errorf("failed to scan card row: %w", err)
		}
		c.Tier = domain.Tier(tier)
		if !c.Tier.IsValid() {
			return nil, fmt.Errorf("card %d has invalid tier %d", c.ID, tier)
		}
		cards = append(cards, c)
	}
	return cards, rows.Err()
}

// CardCounters retrieves a card's attempt counters.
func (db *DB) CardCounters(cardID int64) (correct, incorrect int, err error) {
	row := db.conn.QueryRow(`
		SELECT correct, incorrect
		FROM cards WHERE id = ?
	`, cardID)

	if err := row.Scan(&correct, &incorrect); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, 0, fmt.Errorf("card %d: %w", cardID, ErrNotFound)
		}
		return 0, 0, fmt.Errorf("failed to get counters for card %d: %w", cardID, err)
	}
	return correct, incorrect, nil
}

// ApplyReviewBatch writes a session's card updates in a single transaction, so
// one finishing batch is applied together or not at all.
func (db *DB) ApplyReviewBatch(updates []domain.ReviewUpdate) error {
	if len(updates) == 0 {
		return nil
	}

	tx, err := db.conn.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin review batch: %w", err)
	}
	defer tx.Rollback()

	for _, u := range updates {
		res, err := tx.Exec(`
			UPDATE cards
			SET tier = ?, correct = ?, incorrect = ?
			WHERE id = ?
		`, int(u.Tier), u.Correct, u.Incorrect, u.CardID)
		if err != nil {
			return fmt.Errorf("failed to update card %d in review batch: %w", u.CardID, err)
		}
		n, err := res.RowsAffected()
		if err != nil {
			return fmt.Errorf("failed to check update of card %d in review batch: %w", u.CardID, err)
		}
		if n == 0 {
			return fmt.Errorf("card %d: %w", u.CardID, ErrNotFound)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit review batch: %w", err)
	}
	return nil
}

// TouchSubjectRevision records when a subject's tier was last practiced.
func (db *DB) TouchSubjectRevision(subject string, tier domain.Tier, at time.Time) error {
	s, err := db.FindSubject(subject)
	if err != nil {
		return err
	}

	_, err = db.conn.Exec(`
		INSERT INTO revisions (subject_id, tier, revised_at)
		VALUES (?, ?, ?)
		ON CONFLICT(subject_id, tier) DO UPDATE SET revised_at = excluded.revised_at
	`, s.ID, int(tier), at.UTC())
	if err != nil {
		return fmt.Errorf("failed to touch revision for subject %s tier %s: %w", subject, tier, err)
	}
	return nil
}

// SubjectRevisions retrieves the per-tier last-practiced times for a subject.
func (db *DB) SubjectRevisions(subjectID int64) ([]domain.Revision, error) {
	rows, err := db.conn.Query(`
		SELECT subject_id, tier, revised_at
		FROM revisions WHERE subject_id = ?
		ORDER BY tier
	`, subjectID)
	if err != nil {
		return nil, fmt.Errorf("failed to get revisions for subject %d: %w", subjectID, err)
	}
	defer rows.Close()

	var revisions []domain.Revision
	for rows.Next() {
		var r domain.Revision
		var tier int
		if err := rows.Scan(&r.SubjectID, &tier, &r.RevisedAt); err != nil {
			return nil, fmt.Errorf("failed to scan revision row: %w", err)
		}
		r.Tier = domain.Tier(tier)
		revisions = append(revisions, r)
	}
	return revisions, rows.Err()
}
