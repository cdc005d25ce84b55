package storage

const schema = `
-- The 'subjects' table is the unit of card storage; one row per subject.
CREATE TABLE IF NOT EXISTS subjects (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    name TEXT NOT NULL UNIQUE,
    created_at DATETIME NOT NULL
);

-- The 'cards' table stores every flashcard, keyed to its subject.
-- tier: 0 = weak, 1 = learning, 2 = strong.
CREATE TABLE IF NOT EXISTS cards (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    subject_id INTEGER NOT NULL,
    tier INTEGER NOT NULL DEFAULT 0,
    question TEXT NOT NULL,
    answer TEXT NOT NULL,
    correct INTEGER NOT NULL DEFAULT 0,
    incorrect INTEGER NOT NULL DEFAULT 0,

    FOREIGN KEY(subject_id) REFERENCES subjects(id) ON DELETE CASCADE
);

-- The 'revisions' table records when each tier of a subject was last practiced.
CREATE TABLE IF NOT EXISTS revisions (
    subject_id INTEGER NOT NULL,
    tier INTEGER NOT NULL,
    revised_at DATETIME NOT NULL,

    PRIMARY KEY(subject_id, tier),
    FOREIGN KEY(subject_id) REFERENCES subjects(id) ON DELETE CASCADE
);
`
