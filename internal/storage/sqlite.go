package storage

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"

	"github.com/jasperwreed/sidebar/internal/models"
)

type SQLiteStore struct {
	writeDB *sql.DB // Single connection for writes
	readDB  *sql.DB // Pool of connections for reads
	dbPath  string
}

// DefaultDatabasePath returns ~/.sidebar/sidebar.db
func DefaultDatabasePath() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(homeDir, ".sidebar", "sidebar.db"), nil
}

func NewSQLiteStore(dbPath string) (*SQLiteStore, error) {
	config := DefaultConfig()
	config.Path = dbPath
	return NewSQLiteStoreWithConfig(config)
}

func NewSQLiteStoreWithConfig(config *Config) (*SQLiteStore, error) {
	dbPath := config.Path
	if dbPath == "" {
		path, err := DefaultDatabasePath()
		if err != nil {
			return nil, err
		}
		dbPath = path
	}

	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}

	// Open write connection (single connection)
	writeDB, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open write database: %w", err)
	}
	writeDB.SetMaxOpenConns(1)

	readDB, err := sql.Open("sqlite", dbPath)
	if err != nil {
		writeDB.Close()
		return nil, fmt.Errorf("failed to open read database: %w", err)
	}
	readDB.SetMaxOpenConns(config.MaxOpenConns)
	readDB.SetMaxIdleConns(config.MaxIdleConns)
	readDB.SetConnMaxLifetime(config.ConnMaxLifetime)

	store := &SQLiteStore{
		writeDB: writeDB,
		readDB:  readDB,
		dbPath:  dbPath,
	}

	if err := store.initializeDB(config); err != nil {
		store.Close()
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	if err := store.createTables(); err != nil {
		store.Close()
		return nil, fmt.Errorf("failed to create tables: %w", err)
	}

	return store, nil
}

func (s *SQLiteStore) initializeDB(config *Config) error {
	for _, pragma := range config.pragmas() {
		if _, err := s.writeDB.Exec(pragma); err != nil {
			return fmt.Errorf("failed to set %s: %w", pragma, err)
		}
	}
	return nil
}

func (s *SQLiteStore) createTables() error {
	queries := []string{
		queryCreateEntitiesTable,
		queryCreateVersionsTable,
		queryCreateIndexEntitiesOwner,
	}

	for _, query := range queries {
		if _, err := s.writeDB.Exec(query); err != nil {
			return fmt.Errorf("failed to execute query: %w", err)
		}
	}

	return nil
}

// Path returns the database file location.
func (s *SQLiteStore) Path() string {
	return s.dbPath
}

// Apply writes a single update.
func (s *SQLiteStore) Apply(u Update) error {
	return s.ApplyAll([]Update{u})
}

// ApplyAll writes updates in one transaction. Each touched collection has
// its version bumped once per update so snapshot readers see the change.
func (s *SQLiteStore) ApplyAll(updates []Update) error {
	for _, u := range updates {
		if err := u.Validate(); err != nil {
			return err
		}
	}

	tx, err := s.writeDB.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	now := time.Now()
	for _, u := range updates {
		if err := applyUpdate(tx, u, now); err != nil {
			return fmt.Errorf("failed to apply %s %s/%s: %w", u.Op, u.Collection, u.Key, err)
		}
		if _, err := tx.Exec(queryEnsureVersion, u.Collection); err != nil {
			return fmt.Errorf("failed to register collection version: %w", err)
		}
		if _, err := tx.Exec(queryBumpVersion, u.Collection); err != nil {
			return fmt.Errorf("failed to bump collection version: %w", err)
		}
	}

	return tx.Commit()
}

func applyUpdate(tx *sql.Tx, u Update, now time.Time) error {
	if u.Op == OpRemove {
		_, err := tx.Exec(queryDeleteEntity, u.Collection, u.Owner, u.Key)
		return err
	}

	value := []byte(u.Value)
	if u.Op == OpMerge {
		var existing string
		err := tx.QueryRow(querySelectEntity, u.Collection, u.Owner, u.Key).Scan(&existing)
		if err != nil && err != sql.ErrNoRows {
			return err
		}
		merged, err := mergeValues([]byte(existing), value)
		if err != nil {
			return err
		}
		value = merged
	}

	// Reject documents the snapshot loader could not decode.
	scratch := models.NewSnapshot()
	scratch.Dismissed = make(map[string]models.DismissedTooltip)
	if err := decodeInto(scratch, u.Collection, u.Owner, u.Key, value); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidUpdate, err)
	}

	_, err := tx.Exec(queryUpsertEntity, u.Collection, u.Owner, u.Key, string(value), now)
	return err
}

// LoadSnapshot reads every collection into a new snapshot. Versions and
// entities come from one read transaction so they always agree.
func (s *SQLiteStore) LoadSnapshot() (*models.Snapshot, error) {
	tx, err := s.readDB.BeginTx(context.Background(), &sql.TxOptions{ReadOnly: true})
	if err != nil {
		return nil, fmt.Errorf("failed to begin read transaction: %w", err)
	}
	defer tx.Rollback()

	snap := models.NewSnapshot()
	snap.Dismissed = make(map[string]models.DismissedTooltip)

	versions, err := versionsFrom(tx)
	if err != nil {
		return nil, err
	}
	for collection, version := range versions {
		snap.Versions.Set(collection, version)
	}

	rows, err := tx.Query(querySelectEntities)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var collection, owner, key, value string
		if err := rows.Scan(&collection, &owner, &key, &value); err != nil {
			return nil, err
		}
		if err := decodeInto(snap, collection, owner, key, []byte(value)); err != nil {
			return nil, fmt.Errorf("failed to decode %s/%s: %w", collection, key, err)
		}
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return snap, nil
}

// querier is satisfied by *sql.DB and *sql.Tx.
type querier interface {
	Query(query string, args ...any) (*sql.Rows, error)
}

func versionsFrom(q querier) (map[string]uint64, error) {
	rows, err := q.Query(querySelectVersions)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	versions := make(map[string]uint64)
	for rows.Next() {
		var collection string
		var version int64
		if err := rows.Scan(&collection, &version); err != nil {
			return nil, err
		}
		versions[collection] = uint64(version)
	}
	return versions, rows.Err()
}

// ListConversationIDs returns conversation ids, most recently active
// first. A limit of zero or less returns every conversation.
func (s *SQLiteStore) ListConversationIDs(limit int) ([]string, error) {
	if limit <= 0 {
		limit = -1
	}
	rows, err := s.readDB.Query(querySelectConversationOrder, models.CollectionConversation, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

func (s *SQLiteStore) GetStats() (*models.StoreStats, error) {
	stats := &models.StoreStats{
		Collections: make(map[string]int),
	}

	rows, err := s.readDB.Query(queryGroupByCollection)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var collection string
		var count int
		if err := rows.Scan(&collection, &count); err != nil {
			return nil, fmt.Errorf("failed to scan collection count: %w", err)
		}
		stats.Collections[collection] = count
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to count entries: %w", err)
	}

	stats.Versions, err = versionsFrom(s.readDB)
	if err != nil {
		return nil, err
	}

	return stats, nil
}

func (s *SQLiteStore) Close() error {
	var errs []error

	// Run PRAGMA optimize before closing for better long-term performance
	if _, err := s.writeDB.Exec("PRAGMA optimize"); err != nil {
		errs = append(errs, fmt.Errorf("failed to optimize: %w", err))
	}

	if err := s.readDB.Close(); err != nil {
		errs = append(errs, fmt.Errorf("failed to close read db: %w", err))
	}

	if err := s.writeDB.Close(); err != nil {
		errs = append(errs, fmt.Errorf("failed to close write db: %w", err))
	}

	if len(errs) > 0 {
		return fmt.Errorf("close errors: %v", errs)
	}

	return nil
}
