package store

// migration is a single versioned schema change.
type migration struct {
	version int
	sql     string
}

// migrations are applied in order; each entry must also record its own
// version in schema_version.
var migrations = []migration{
	{
		version: 1,
		sql: `
CREATE TABLE IF NOT EXISTS schema_version (
	version INTEGER PRIMARY KEY
);

CREATE TABLE IF NOT EXISTS notifications (
	position      INTEGER PRIMARY KEY,
	id            INTEGER NOT NULL,
	kind          TEXT NOT NULL,
	message       TEXT NOT NULL,
	created_label TEXT NOT NULL,
	read          INTEGER NOT NULL DEFAULT 0
);

CREATE TABLE IF NOT EXISTS chat_messages (
	position    INTEGER PRIMARY KEY,
	role        TEXT NOT NULL,
	content     TEXT NOT NULL,
	timestamp   TEXT NOT NULL,
	model       TEXT NOT NULL DEFAULT '',
	tokens_used INTEGER NOT NULL DEFAULT 0
);

CREATE TABLE IF NOT EXISTS session (
	id           TEXT PRIMARY KEY,
	email        TEXT NOT NULL,
	display_name TEXT NOT NULL,
	created_at   TIMESTAMP NOT NULL
);

INSERT INTO schema_version (version) VALUES (1);
`,
	},
}
