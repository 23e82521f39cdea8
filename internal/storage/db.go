package storage

import (
	"database/sql"
	"encoding/json"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"

	"agrisight/internal/catalog"
)

type DB struct {
	conn *sql.DB
}

func Open(path string) (*DB, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}

	conn, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}

	if _, err := conn.Exec(`PRAGMA journal_mode = WAL;`); err != nil {
		_ = conn.Close()
		return nil, err
	}

	db := &DB{conn: conn}
	if err := db.init(); err != nil {
		_ = conn.Close()
		return nil, err
	}

	return db, nil
}

func (d *DB) Close() error {
	return d.conn.Close()
}

func (d *DB) init() error {
	schema := `
CREATE TABLE IF NOT EXISTS catalog_products (
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  company TEXT NOT NULL,
  product TEXT NOT NULL,
  position INTEGER NOT NULL,
  UNIQUE(company, product)
);
CREATE INDEX IF NOT EXISTS idx_catalog_company ON catalog_products(company);
CREATE INDEX IF NOT EXISTS idx_catalog_product ON catalog_products(product);

CREATE TABLE IF NOT EXISTS runs (
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  traceId TEXT NOT NULL,
  mode TEXT NOT NULL,
  countsJson TEXT NOT NULL,
  timingsJson TEXT NOT NULL,
  createdAt TEXT NOT NULL DEFAULT CURRENT_TIMESTAMP
);
`

	_, err := d.conn.Exec(schema)
	return err
}

// SaveCatalog replaces the stored catalog wholesale. Position preserves the
// per-company registration order so LoadCatalog rebuilds an equal catalog.
func (d *DB) SaveCatalog(cat *catalog.Catalog) error {
	tx, err := d.conn.Begin()
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.Exec(`DELETE FROM catalog_products`); err != nil {
		return err
	}

	stmt, err := tx.Prepare(`INSERT INTO catalog_products (company, product, position) VALUES (?, ?, ?)`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, company := range cat.Companies() {
		for i, product := range cat.Products(company) {
			if _, err := stmt.Exec(company, product, i); err != nil {
				return err
			}
		}
	}

	return tx.Commit()
}

func (d *DB) LoadCatalog() (*catalog.Catalog, error) {
	rows, err := d.conn.Query(`
SELECT company, product FROM catalog_products ORDER BY company ASC, position ASC
`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	byCompany := map[string][]string{}
	var order []string
	for rows.Next() {
		var company, product string
		if err := rows.Scan(&company, &product); err != nil {
			return nil, err
		}
		if _, ok := byCompany[company]; !ok {
			order = append(order, company)
		}
		byCompany[company] = append(byCompany[company], product)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	cat := catalog.New()
	for _, company := range order {
		cat.Add(company, byCompany[company])
	}
	return cat, nil
}

type RunRow struct {
	ID        int
	TraceID   string
	Mode      string
	Counts    map[string]int
	Timings   map[string]float64
	CreatedAt string
}

func (d *DB) InsertRun(traceID, mode string, counts map[string]int, timings map[string]float64) error {
	countsJSON, _ := json.Marshal(counts)
	timingsJSON, _ := json.Marshal(timings)
	_, err := d.conn.Exec(`
INSERT INTO runs (traceId, mode, countsJson, timingsJson) VALUES (?, ?, ?, ?)
`, traceID, mode, string(countsJSON), string(timingsJSON))
	return err
}

func (d *DB) ListRuns(limit int) ([]RunRow, error) {
	rows, err := d.conn.Query(`
SELECT id, traceId, mode, countsJson, timingsJson, createdAt
FROM runs ORDER BY id DESC LIMIT ?
`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []RunRow
	for rows.Next() {
		var row RunRow
		var countsJSON, timingsJSON string
		if err := rows.Scan(&row.ID, &row.TraceID, &row.Mode, &countsJSON, &timingsJSON, &row.CreatedAt); err != nil {
			return nil, err
		}
		_ = json.Unmarshal([]byte(countsJSON), &row.Counts)
		_ = json.Unmarshal([]byte(timingsJSON), &row.Timings)
		out = append(out, row)
	}
	return out, rows.Err()
}
