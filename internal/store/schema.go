package store

// Timestamps are stored as unix milliseconds so both drivers share one
// representation. A progress_resets row with an empty set_id marks a reset
// of every set.

const schemaSQLite = `
PRAGMA foreign_keys=ON;
` + schemaCommon

const schemaPostgres = schemaCommon

const schemaCommon = `
CREATE TABLE IF NOT EXISTS users (
    id TEXT PRIMARY KEY,
    email TEXT NOT NULL UNIQUE,
    name TEXT NOT NULL,
    password_hash TEXT NOT NULL,
    role TEXT NOT NULL DEFAULT 'user',
    created_at BIGINT NOT NULL
);

CREATE TABLE IF NOT EXISTS user_sessions (
    id TEXT PRIMARY KEY,
    user_id TEXT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
    token_hash TEXT NOT NULL UNIQUE,
    expires_at BIGINT NOT NULL
);

CREATE TABLE IF NOT EXISTS study_sets (
    id TEXT PRIMARY KEY,
    title TEXT NOT NULL UNIQUE,
    description TEXT NOT NULL DEFAULT '',
    version TEXT NOT NULL DEFAULT '1.0',
    created_at BIGINT NOT NULL
);

CREATE TABLE IF NOT EXISTS questions (
    set_id TEXT NOT NULL REFERENCES study_sets(id) ON DELETE CASCADE,
    id TEXT NOT NULL,
    type TEXT NOT NULL,
    stem TEXT NOT NULL,
    explanation TEXT NOT NULL DEFAULT '',
    select_count INTEGER,
    difficulty TEXT NOT NULL DEFAULT '',
    domain TEXT NOT NULL DEFAULT '',
    tags TEXT NOT NULL DEFAULT '[]',
    position INTEGER NOT NULL DEFAULT 0,
    updated_at BIGINT NOT NULL,
    PRIMARY KEY (set_id, id)
);

CREATE TABLE IF NOT EXISTS question_options (
    set_id TEXT NOT NULL,
    question_id TEXT NOT NULL,
    id TEXT NOT NULL,
    text TEXT NOT NULL,
    is_correct BOOLEAN NOT NULL,
    position INTEGER NOT NULL,
    PRIMARY KEY (set_id, question_id, id),
    FOREIGN KEY (set_id, question_id) REFERENCES questions(set_id, id) ON DELETE CASCADE
);

CREATE TABLE IF NOT EXISTS progress_events (
    submission_id TEXT PRIMARY KEY,
    user_id TEXT NOT NULL,
    set_id TEXT NOT NULL,
    question_id TEXT NOT NULL,
    result TEXT NOT NULL,
    recorded_at BIGINT NOT NULL
);

CREATE TABLE IF NOT EXISTS user_progress (
    user_id TEXT NOT NULL,
    set_id TEXT NOT NULL,
    question_id TEXT NOT NULL,
    correct_count INTEGER NOT NULL DEFAULT 0,
    wrong_count INTEGER NOT NULL DEFAULT 0,
    last_result TEXT NOT NULL,
    last_seen BIGINT NOT NULL,
    streak INTEGER NOT NULL DEFAULT 0,
    PRIMARY KEY (user_id, set_id, question_id)
);

CREATE TABLE IF NOT EXISTS progress_resets (
    user_id TEXT NOT NULL,
    set_id TEXT NOT NULL,
    reset_at BIGINT NOT NULL,
    PRIMARY KEY (user_id, set_id)
);

CREATE INDEX IF NOT EXISTS idx_user_sessions_expires ON user_sessions(expires_at);
CREATE INDEX IF NOT EXISTS idx_progress_events_user_set ON progress_events(user_id, set_id);
`
