// ABOUTME: SQLite schema for flashcard and quiz storage
// ABOUTME: Flashcards carry a version column backing optimistic locking
package sqlite

// Schema contains all SQL statements for database initialization
const Schema = `
-- Flashcards with SM-2 scheduling fields
CREATE TABLE IF NOT EXISTS flashcards (
    id TEXT PRIMARY KEY,
    subject_id TEXT NOT NULL,
    file_id TEXT,
    front TEXT NOT NULL,
    back TEXT NOT NULL,
    repetition INTEGER NOT NULL DEFAULT 0,
    interval INTEGER NOT NULL DEFAULT 0,
    ease_factor REAL NOT NULL DEFAULT 2.5,
    next_review DATETIME NOT NULL,
    status TEXT NOT NULL DEFAULT 'new',
    version INTEGER NOT NULL DEFAULT 1,
    created_at DATETIME DEFAULT CURRENT_TIMESTAMP
);

-- Saved quizzes; questions stored as a JSON blob
CREATE TABLE IF NOT EXISTS quizzes (
    id TEXT PRIMARY KEY,
    subject_id TEXT NOT NULL,
    title TEXT NOT NULL,
    file_ids TEXT,
    questions TEXT NOT NULL,
    created_at DATETIME DEFAULT CURRENT_TIMESTAMP
);

CREATE INDEX IF NOT EXISTS idx_flashcards_subject ON flashcards(subject_id);
CREATE INDEX IF NOT EXISTS idx_flashcards_due ON flashcards(subject_id, next_review);
CREATE INDEX IF NOT EXISTS idx_quizzes_subject ON quizzes(subject_id);
`

// SchemaVersion is the current schema version for migrations
const SchemaVersion = 1
