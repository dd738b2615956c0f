package store

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "github.com/duckdb/duckdb-go/v2"
	"github.com/intelligrit/osrs-drops/internal/model"
)

// Store caches scraped drop tables in DuckDB.
type Store struct {
	DB      *sql.DB
	DataDir string
}

// New opens (or creates) a DuckDB database in the given data directory.
func New(dataDir string) (*Store, error) {
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		return nil, fmt.Errorf("creating data dir: %w", err)
	}

	dbPath := filepath.Join(dataDir, "osrs-drops.duckdb")
	db, err := sql.Open("duckdb", dbPath)
	if err != nil {
		return nil, fmt.Errorf("opening duckdb: %w", err)
	}

	s := &Store{DB: db, DataDir: dataDir}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrating schema: %w", err)
	}

	return s, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.DB.Close()
}

func (s *Store) migrate() error {
	if _, err := s.DB.Exec("CREATE SEQUENCE IF NOT EXISTS drops_seq"); err != nil {
		return fmt.Errorf("creating sequence: %w", err)
	}

	stmts := []string{
		`CREATE TABLE IF NOT EXISTS monsters (
			page TEXT PRIMARY KEY,
			url TEXT NOT NULL,
			drops_url TEXT NOT NULL,
			scraped_at TEXT NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS drops (
			id INTEGER PRIMARY KEY DEFAULT nextval('drops_seq'),
			page TEXT NOT NULL,
			table_pos INTEGER NOT NULL,
			table_type TEXT NOT NULL,
			row_pos INTEGER NOT NULL,
			image_url TEXT NOT NULL,
			name TEXT NOT NULL,
			quantity INTEGER NOT NULL,
			rarity_text TEXT NOT NULL,
			rarity DOUBLE,
			price BIGINT
		)`,
	}
	for _, stmt := range stmts {
		if _, err := s.DB.Exec(stmt); err != nil {
			return fmt.Errorf("executing migration %q: %w", stmt[:40], err)
		}
	}

	return nil
}

// WriteDrops replaces the cached tables for a monster page. A page with no
// tables is still recorded so later lookups can skip the fetch.
func (s *Store) WriteDrops(md *model.MonsterDrops) error {
	tx, err := s.DB.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.Exec("DELETE FROM drops WHERE page = ?", md.Page); err != nil {
		return err
	}

	if _, err := tx.Exec("INSERT OR REPLACE INTO monsters (page, url, drops_url, scraped_at) VALUES (?, ?, ?, ?)",
		md.Page, md.URL, md.DropsURL, md.ScrapedAt); err != nil {
		return err
	}

	if md.Tables == nil {
		return tx.Commit()
	}

	stmt, err := tx.Prepare(`INSERT INTO drops (page, table_pos, table_type, row_pos, image_url, name, quantity, rarity_text, rarity, price)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	tablePos := 0
	for typ, entries := range md.Tables.All() {
		for rowPos, e := range entries {
			rarity := sql.NullFloat64{Float64: e.Rarity.Value, Valid: e.Rarity.Known}
			price := sql.NullInt64{Int64: int64(e.Price.Value), Valid: e.Price.Known}
			if _, err := stmt.Exec(md.Page, tablePos, string(typ), rowPos, e.ImageURL, e.Name, e.Quantity, e.RarityText, rarity, price); err != nil {
				return fmt.Errorf("inserting %s row %d: %w", typ, rowPos, err)
			}
		}
		tablePos++
	}

	return tx.Commit()
}

// ReadDrops loads the cached tables for a monster page. It returns
// sql.ErrNoRows when the page has never been stored.
func (s *Store) ReadDrops(page string) (*model.MonsterDrops, error) {
	md := &model.MonsterDrops{Page: page, Tables: model.NewDropTables()}

	err := s.DB.QueryRow("SELECT url, drops_url, scraped_at FROM monsters WHERE page = ?", page).
		Scan(&md.URL, &md.DropsURL, &md.ScrapedAt)
	if err != nil {
		return nil, err
	}

	rows, err := s.DB.Query(`SELECT table_type, image_url, name, quantity, rarity_text, rarity, price
		FROM drops WHERE page = ? ORDER BY table_pos, row_pos`, page)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var (
		current model.DropTableType
		entries []model.DropEntry
	)
	flush := func() {
		if len(entries) > 0 {
			md.Tables.Set(current, entries)
		}
	}

	for rows.Next() {
		var (
			typ    string
			e      model.DropEntry
			rarity sql.NullFloat64
			price  sql.NullInt64
		)
		if err := rows.Scan(&typ, &e.ImageURL, &e.Name, &e.Quantity, &e.RarityText, &rarity, &price); err != nil {
			return nil, err
		}
		if rarity.Valid {
			e.Rarity = model.KnownRatio(rarity.Float64)
		}
		if price.Valid {
			e.Price = model.KnownAmount(int(price.Int64))
		}

		t := model.DropTableType(typ)
		if t != current {
			flush()
			current, entries = t, nil
		}
		entries = append(entries, e)
	}
	flush()

	return md, rows.Err()
}

// DropsExist checks if a monster page has been cached.
func (s *Store) DropsExist(page string) bool {
	var n int
	s.DB.QueryRow("SELECT 1 FROM monsters WHERE page = ?", page).Scan(&n)
	return n == 1
}

// Monsters lists cached monster pages by name.
func (s *Store) Monsters() ([]model.MonsterSummary, error) {
	rows, err := s.DB.Query(`SELECT m.page, m.url, m.scraped_at,
			COUNT(DISTINCT d.table_pos), COUNT(d.id)
		FROM monsters m LEFT JOIN drops d ON d.page = m.page
		GROUP BY m.page, m.url, m.scraped_at
		ORDER BY m.page`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []model.MonsterSummary{}
	for rows.Next() {
		var m model.MonsterSummary
		if err := rows.Scan(&m.Page, &m.URL, &m.ScrapedAt, &m.TableCount, &m.EntryCount); err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	return out, rows.Err()
}

// MonsterCount returns the number of cached monster pages.
func (s *Store) MonsterCount() int {
	var n int
	s.DB.QueryRow("SELECT COUNT(*) FROM monsters").Scan(&n)
	return n
}

// EntryCount returns the number of cached drop rows.
func (s *Store) EntryCount() int {
	var n int
	s.DB.QueryRow("SELECT COUNT(*) FROM drops").Scan(&n)
	return n
}

// EntryCountByType returns cached drop rows per table type.
func (s *Store) EntryCountByType() map[string]int {
	m := make(map[string]int)
	rows, err := s.DB.Query("SELECT table_type, COUNT(*) FROM drops GROUP BY table_type ORDER BY table_type")
	if err != nil {
		return m
	}
	defer rows.Close()
	for rows.Next() {
		var typ string
		var cnt int
		rows.Scan(&typ, &cnt)
		m[typ] = cnt
	}
	return m
}
