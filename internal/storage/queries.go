package storage

// Database schema queries
const (
	queryCreateEntitiesTable = `CREATE TABLE IF NOT EXISTS entities (
		collection TEXT NOT NULL,
		owner TEXT NOT NULL DEFAULT '',
		key TEXT NOT NULL,
		value TEXT NOT NULL,
		updated_at DATETIME DEFAULT CURRENT_TIMESTAMP,
		PRIMARY KEY (collection, owner, key)
	)`

	queryCreateVersionsTable = `CREATE TABLE IF NOT EXISTS collection_versions (
		collection TEXT PRIMARY KEY,
		version INTEGER NOT NULL DEFAULT 0
	)`

	queryCreateIndexEntitiesOwner = `CREATE INDEX IF NOT EXISTS idx_entities_owner ON entities(collection, owner)`

	querySelectEntity = `SELECT value FROM entities WHERE collection = ? AND owner = ? AND key = ?`

	queryUpsertEntity = `INSERT INTO entities (collection, owner, key, value, updated_at)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT (collection, owner, key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`

	queryDeleteEntity = `DELETE FROM entities WHERE collection = ? AND owner = ? AND key = ?`

	queryEnsureVersion = `INSERT OR IGNORE INTO collection_versions (collection, version) VALUES (?, 0)`
	queryBumpVersion   = `UPDATE collection_versions SET version = version + 1 WHERE collection = ?`

	querySelectEntities = `SELECT collection, owner, key, value FROM entities ORDER BY collection, owner, key`
	querySelectVersions = `SELECT collection, version FROM collection_versions`

	querySelectConversationOrder = `SELECT key FROM entities
		WHERE collection = ? AND owner = ''
		ORDER BY json_extract(value, '$.lastVisibleActionCreated') DESC, key ASC
		LIMIT ?`

	queryGroupByCollection = `SELECT collection, COUNT(*) FROM entities GROUP BY collection`
)
