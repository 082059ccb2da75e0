package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"

	"rendervault/internal/domain"
	"rendervault/internal/logging"
	"rendervault/internal/ports"

	_ "modernc.org/sqlite"
)

// Index implements ports.PoolIndex using SQLite
type Index struct {
	db     *sql.DB
	dbPath string
	log    zerolog.Logger
}

// Ensure Index implements PoolIndex
var _ ports.PoolIndex = (*Index)(nil)

// NewIndex creates a new SQLite index
func NewIndex(log zerolog.Logger) *Index {
	return &Index{log: logging.Component(log, "index")}
}

// Open opens the index at dbPath, creating the file and its tables if absent
func (idx *Index) Open(dbPath string) error {
	if dbPath == "" {
		return domain.NewPathError("open index", dbPath, domain.ErrInvalidArgument, nil)
	}
	idx.dbPath = dbPath

	_, statErr := os.Stat(dbPath)
	existed := statErr == nil

	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return domain.NewPathError("create index directory", filepath.Dir(dbPath), domain.ErrIOFailure, err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return domain.NewPathError("open index", dbPath, domain.ErrIOFailure, err)
	}
	idx.db = db

	_, err = db.Exec(`
		PRAGMA synchronous = NORMAL;
		PRAGMA journal_mode = WAL;
		PRAGMA temp_store = MEMORY;
		PRAGMA busy_timeout = 5000;
	`)
	if err != nil {
		db.Close()
		return domain.NewPathError("configure index", dbPath, domain.ErrIOFailure, err)
	}

	if existed {
		idx.log.Debug().Str("path", dbPath).Msg("index already exists")
	}

	// IF NOT EXISTS keeps this a no-op for an existing index
	for _, c := range domain.PoolCategories() {
		l, _ := domain.LayoutFor(c)
		_, err := db.Exec(fmt.Sprintf(`
			CREATE TABLE IF NOT EXISTS %s (
				ID INTEGER PRIMARY KEY AUTOINCREMENT,
				NAME CHAR(128) NOT NULL,
				PATH TEXT NOT NULL
			);`, l.Table))
		if err != nil {
			db.Close()
			return domain.NewPathError("create table "+l.Table, dbPath, domain.ErrIOFailure, err)
		}
	}

	if !existed {
		idx.log.Info().Str("path", dbPath).Msg("created index")
	}
	return nil
}

// Close closes the database connection
func (idx *Index) Close() error {
	if idx.db == nil {
		return nil
	}
	// Best effort: optimize is advisory
	idx.db.Exec(`PRAGMA optimize;`)
	return idx.db.Close()
}

// tableFor maps a category to its table name. Only indexed categories have one.
func tableFor(c domain.Category) (string, error) {
	l, err := domain.LayoutFor(c)
	if err != nil {
		return "", err
	}
	if !l.Indexed {
		return "", fmt.Errorf("%w: category %s has no index table", domain.ErrInvalidArgument, c)
	}
	return l.Table, nil
}

// Insert adds a pool row. Duplicate names within a category are rejected.
func (idx *Index) Insert(ctx context.Context, category domain.Category, name, root string) error {
	if name == "" || root == "" {
		idx.log.Error().Str("name", name).Str("path", root).Msg("can't insert pool, name and path are required")
		return fmt.Errorf("%w: pool name and path are required", domain.ErrInvalidArgument)
	}

	tx, err := idx.BeginTx(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	exists, err := tx.Exists(category, name)
	if err != nil {
		return idx.fail("insert", category, name, err)
	}
	if exists {
		idx.log.Error().Stringer("category", category).Str("name", name).Msg("can't insert pool, name already indexed")
		return fmt.Errorf("%w: %s pool %q", domain.ErrAlreadyExists, category, name)
	}

	if err := tx.Insert(category, name, root); err != nil {
		return idx.fail("insert", category, name, err)
	}
	if err := tx.Commit(); err != nil {
		return idx.fail("insert", category, name, err)
	}

	idx.log.Debug().Stringer("category", category).Str("name", name).Str("path", root).Msg("indexed pool")
	return nil
}

// Delete removes the row whose name matches exactly
func (idx *Index) Delete(ctx context.Context, category domain.Category, name string) error {
	table, err := tableFor(category)
	if err != nil {
		return err
	}

	res, err := idx.db.ExecContext(ctx, fmt.Sprintf(`DELETE FROM %s WHERE NAME = ?`, table), name)
	if err != nil {
		return idx.fail("delete", category, name, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return idx.fail("delete", category, name, err)
	}
	if n == 0 {
		return fmt.Errorf("%w: %s pool %q", domain.ErrNotFound, category, name)
	}

	idx.log.Debug().Stringer("category", category).Str("name", name).Msg("removed pool from index")
	return nil
}

// Select returns all pools of a category sorted by name
func (idx *Index) Select(ctx context.Context, category domain.Category) ([]domain.Pool, error) {
	table, err := tableFor(category)
	if err != nil {
		return nil, err
	}

	rows, err := idx.db.QueryContext(ctx, fmt.Sprintf(`SELECT NAME, PATH FROM %s ORDER BY NAME ASC, ID ASC`, table))
	if err != nil {
		return nil, idx.fail("select", category, "", err)
	}
	defer rows.Close()

	var pools []domain.Pool
	for rows.Next() {
		p := domain.Pool{Category: category}
		if err := rows.Scan(&p.Name, &p.Root); err != nil {
			return nil, idx.fail("select", category, "", err)
		}
		pools = append(pools, p)
	}
	if err := rows.Err(); err != nil {
		return nil, idx.fail("select", category, "", err)
	}
	return pools, nil
}

// Get retrieves a single pool by name
func (idx *Index) Get(ctx context.Context, category domain.Category, name string) (domain.Pool, error) {
	table, err := tableFor(category)
	if err != nil {
		return domain.Pool{}, err
	}

	p := domain.Pool{Category: category}
	err = idx.db.QueryRowContext(ctx,
		fmt.Sprintf(`SELECT NAME, PATH FROM %s WHERE NAME = ? ORDER BY ID LIMIT 1`, table), name,
	).Scan(&p.Name, &p.Root)

	if errors.Is(err, sql.ErrNoRows) {
		return domain.Pool{}, fmt.Errorf("%w: %s pool %q", domain.ErrNotFound, category, name)
	}
	if err != nil {
		return domain.Pool{}, idx.fail("get", category, name, err)
	}
	return p, nil
}

// SelectAll returns every category's pools, one entry per indexed category
func (idx *Index) SelectAll(ctx context.Context) (map[domain.Category][]domain.Pool, error) {
	all := make(map[domain.Category][]domain.Pool, len(domain.PoolCategories()))
	for _, c := range domain.PoolCategories() {
		pools, err := idx.Select(ctx, c)
		if err != nil {
			return nil, err
		}
		all[c] = pools
	}
	return all, nil
}

// BeginTx starts a new transaction
func (idx *Index) BeginTx(ctx context.Context) (ports.IndexTx, error) {
	tx, err := idx.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, domain.NewPathError("begin transaction", idx.dbPath, domain.ErrIOFailure, err)
	}
	return &indexTx{tx: tx}, nil
}

func (idx *Index) fail(op string, category domain.Category, name string, err error) error {
	idx.log.Error().Err(err).Str("op", op).Stringer("category", category).Str("name", name).Msg("index operation failed")
	if errors.Is(err, domain.ErrInvalidArgument) {
		return err
	}
	return domain.NewPathError(op+" pool "+name, idx.dbPath, domain.ErrIOFailure, err)
}
