package sqlite

import (
	"context"
	"database/sql"
	"embed"
	"encoding/binary"
	"fmt"
	"io/fs"
	"math"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/custodia-labs/lexdraft/internal/adapters/driven/storage/sqlite/migrations"
	"github.com/custodia-labs/lexdraft/internal/adapters/driven/storage/vectorindex"
	"github.com/custodia-labs/lexdraft/internal/core/domain"
	"github.com/custodia-labs/lexdraft/internal/core/ports/driven"
)

// Ensure Partition implements the interface.
var _ driven.VectorPartition = (*Partition)(nil)

// DatabaseFile is the file name of each partition database.
const DatabaseFile = "vectors.db"

// Partition is one durable vector partition.
type Partition struct {
	mu    sync.RWMutex
	db    *sql.DB
	path  string
	name  domain.Partition
	index *vectorindex.Index
}

// Open opens or creates the partition database under dataDir/<name>.
func Open(dataDir string, name domain.Partition) (*Partition, error) {
	if !name.IsValid() {
		return nil, fmt.Errorf("%w: %q", domain.ErrInvalidPartition, name)
	}
	if dataDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("getting home directory: %w", err)
		}
		dataDir = filepath.Join(home, ".lexdraft", "data")
	}

	dir := filepath.Join(dataDir, string(name))
	if err := os.MkdirAll(dir, 0700); err != nil {
		return nil, fmt.Errorf("%w: creating partition directory: %v", domain.ErrStoreUnavailable, err)
	}

	dbPath := filepath.Join(dir, DatabaseFile)
	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("%w: opening database: %v", domain.ErrStoreUnavailable, err)
	}

	p := &Partition{
		db:    db,
		path:  dbPath,
		name:  name,
		index: vectorindex.New(),
	}

	if err := p.migrate(migrations.FS); err != nil {
		db.Close()
		return nil, fmt.Errorf("%w: running migrations: %v", domain.ErrStoreUnavailable, err)
	}
	if err := p.load(context.Background()); err != nil {
		db.Close()
		return nil, fmt.Errorf("%w: loading entries: %v", domain.ErrStoreUnavailable, err)
	}
	return p, nil
}

// Name returns the partition name.
func (p *Partition) Name() domain.Partition {
	return p.name
}

// Path returns the database file path.
func (p *Partition) Path() string {
	return p.path
}

// Close closes the database connection.
func (p *Partition) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.db.Close()
}

// migrate runs all pending migrations.
func (p *Partition) migrate(fsys embed.FS) error {
	_, err := p.db.Exec(`
		CREATE TABLE IF NOT EXISTS schema_migrations (
			version INTEGER PRIMARY KEY,
			applied_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)
	`)
	if err != nil {
		return fmt.Errorf("creating schema_migrations table: %w", err)
	}

	var current int
	if err := p.db.QueryRow("SELECT COALESCE(MAX(version), 0) FROM schema_migrations").Scan(&current); err != nil {
		return fmt.Errorf("getting current version: %w", err)
	}

	entries, err := fs.ReadDir(fsys, ".")
	if err != nil {
		return fmt.Errorf("reading migrations directory: %w", err)
	}

	var upFiles []string
	for _, entry := range entries {
		if strings.HasSuffix(entry.Name(), ".up.sql") {
			upFiles = append(upFiles, entry.Name())
		}
	}
	sort.Strings(upFiles)

	for _, name := range upFiles {
		var version int
		if _, err := fmt.Sscanf(name, "%d_", &version); err != nil || version <= current {
			continue
		}
		content, err := fs.ReadFile(fsys, name)
		if err != nil {
			return fmt.Errorf("reading migration %s: %w", name, err)
		}
		if _, err := p.db.Exec(string(content)); err != nil {
			return fmt.Errorf("executing migration %s: %w", name, err)
		}
	}
	return nil
}

// load fills the in-memory index from the database.
func (p *Partition) load(ctx context.Context) error {
	rows, err := p.db.QueryContext(ctx,
		`SELECT id, text, source, category, embedding, created_at FROM entries ORDER BY seq`)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var (
			e    domain.StoreEntry
			blob []byte
		)
		if err := rows.Scan(&e.ID, &e.Text, &e.Source, &e.Category, &blob, &e.CreatedAt); err != nil {
			return err
		}
		e.Embedding = bytesToFloat32Slice(blob)
		p.index.Put(e)
	}
	return rows.Err()
}

// Upsert stores entries in one transaction, overwriting existing IDs.
func (p *Partition) Upsert(ctx context.Context, entries []domain.StoreEntry) error {
	if len(entries) == 0 {
		return nil
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.write(ctx, entries, nil)
}

// ReplaceSources upserts entries and deletes older entries of their sources
// in one transaction.
func (p *Partition) ReplaceSources(ctx context.Context, entries []domain.StoreEntry) error {
	if len(entries) == 0 {
		return nil
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.write(ctx, entries, p.index.Stale(entries))
}

// write deletes stale IDs and upserts entries, then mirrors the committed
// change into the index. Callers hold the write lock.
func (p *Partition) write(ctx context.Context, entries []domain.StoreEntry, stale []string) error {
	tx, err := p.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("%w: %v", domain.ErrStoreUnavailable, err)
	}
	defer tx.Rollback() //nolint:errcheck // no-op after commit

	if len(stale) > 0 {
		del, err := tx.PrepareContext(ctx, `DELETE FROM entries WHERE id = ?`)
		if err != nil {
			return fmt.Errorf("preparing delete: %w", err)
		}
		defer del.Close()
		for _, id := range stale {
			if _, err := del.ExecContext(ctx, id); err != nil {
				return fmt.Errorf("deleting entry %s: %w", id, err)
			}
		}
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO entries (id, text, source, category, embedding, dimensions, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			text = excluded.text,
			source = excluded.source,
			category = excluded.category,
			embedding = excluded.embedding,
			dimensions = excluded.dimensions,
			updated_at = excluded.updated_at
	`)
	if err != nil {
		return fmt.Errorf("preparing upsert: %w", err)
	}
	defer stmt.Close()

	now := time.Now().UTC()
	stored := make([]domain.StoreEntry, 0, len(entries))
	for _, e := range entries {
		if e.CreatedAt.IsZero() {
			e.CreatedAt = now
		}
		if prev, ok := p.index.Get(e.ID); ok {
			e.CreatedAt = prev.CreatedAt
		}
		_, err := stmt.ExecContext(ctx,
			e.ID, e.Text, e.Source, e.Category,
			float32SliceToBytes(e.Embedding), len(e.Embedding),
			e.CreatedAt, now,
		)
		if err != nil {
			return fmt.Errorf("upserting entry %s: %w", e.ID, err)
		}
		stored = append(stored, e)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing upsert: %w", err)
	}
	p.index.Remove(stale...)
	for _, e := range stored {
		p.index.Put(e)
	}
	return nil
}

// Search returns up to k entries nearest to query.
func (p *Partition) Search(ctx context.Context, query []float32, k int, category string) ([]domain.SearchHit, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.index.Search(query, k, category), nil
}

// Count returns the number of entries.
func (p *Partition) Count(_ context.Context) (int, error) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.index.Len(), nil
}

// Stats summarises the partition.
func (p *Partition) Stats(_ context.Context) (domain.PartitionStats, error) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.index.Stats(p.name), nil
}

// Entries returns every entry in insertion order.
func (p *Partition) Entries(_ context.Context) ([]domain.StoreEntry, error) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.index.Entries(), nil
}

// Clear deletes every entry of this partition only.
func (p *Partition) Clear(ctx context.Context) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if _, err := p.db.ExecContext(ctx, "DELETE FROM entries"); err != nil {
		return fmt.Errorf("%w: clearing %s: %v", domain.ErrStoreUnavailable, p.name, err)
	}
	p.index.Reset()
	return nil
}

// float32SliceToBytes converts a []float32 to a byte slice for storage.
func float32SliceToBytes(floats []float32) []byte {
	buf := make([]byte, len(floats)*4)
	for i, f := range floats {
		binary.LittleEndian.PutUint32(buf[i*4:], math.Float32bits(f))
	}
	return buf
}

// bytesToFloat32Slice converts a byte slice back to []float32.
func bytesToFloat32Slice(data []byte) []float32 {
	floats := make([]float32, len(data)/4)
	for i := range floats {
		floats[i] = math.Float32frombits(binary.LittleEndian.Uint32(data[i*4:]))
	}
	return floats
}
