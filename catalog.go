package vpixels

import (
	"database/sql"
	"fmt"

	_ "github.com/mattn/go-sqlite3"
)

// Catalog is a SQLite database of identified images. Files with identical
// contents share one content row.
type Catalog struct {
	db *sql.DB
}

// NewCatalog opens or creates the catalog in file.
func NewCatalog(file string) (*Catalog, error) {
	db, err := sql.Open("sqlite3", fmt.Sprintf("%s?_foreign_keys=on", file))
	if err != nil {
		return nil, err
	}
	// Writers are serialised, SQLite only allows one at a time
	db.SetMaxOpenConns(1)

	if _, err = db.Exec("CREATE TABLE IF NOT EXISTS content (id INTEGER PRIMARY KEY NOT NULL, sha1 TEXT NOT NULL UNIQUE, format TEXT NOT NULL, width INTEGER NOT NULL, height INTEGER NOT NULL, depth INTEGER NOT NULL, frames INTEGER NOT NULL, colors INTEGER NOT NULL)"); err != nil {
		db.Close()
		return nil, err
	}

	if _, err = db.Exec("CREATE TABLE IF NOT EXISTS image (id INTEGER PRIMARY KEY NOT NULL, path TEXT NOT NULL UNIQUE, content_id INTEGER NOT NULL, FOREIGN KEY(content_id) REFERENCES content(id))"); err != nil {
		db.Close()
		return nil, err
	}

	return &Catalog{
		db: db,
	}, nil
}

// Close closes the database.
func (c *Catalog) Close() error {
	return c.db.Close()
}

// addContent returns the id of the content row for info, creating it if
// needed. Concurrent adds of the same contents resolve to one row.
func (c *Catalog) addContent(info *Info) (int64, error) {
	if _, err := c.db.Exec("INSERT OR IGNORE INTO content (sha1, format, width, height, depth, frames, colors) VALUES (?, ?, ?, ?, ?, ?, ?)", info.SHA1, info.Format, info.Width, info.Height, info.BitDepth, info.Frames, info.ColorTableSize); err != nil {
		return 0, err
	}

	var id int64
	if err := c.db.QueryRow("SELECT id FROM content WHERE sha1 = ?", info.SHA1).Scan(&id); err != nil {
		return 0, err
	}
	return id, nil
}

// Add records info against its path, replacing any earlier entry for the
// same path.
func (c *Catalog) Add(info *Info) error {
	content, err := c.addContent(info)
	if err != nil {
		return err
	}

	if _, err := c.db.Exec("INSERT OR REPLACE INTO image (path, content_id) VALUES (?, ?)", info.Path, content); err != nil {
		return err
	}

	return nil
}

const selectInfo = "SELECT i.path, c.sha1, c.format, c.width, c.height, c.depth, c.frames, c.colors FROM image AS i JOIN content AS c ON i.content_id = c.id"

type scanner interface {
	Scan(...interface{}) error
}

func scanInfo(s scanner) (*Info, error) {
	info := new(Info)
	if err := s.Scan(&info.Path, &info.SHA1, &info.Format, &info.Width, &info.Height, &info.BitDepth, &info.Frames, &info.ColorTableSize); err != nil {
		return nil, err
	}
	return info, nil
}

// Find returns the entry for path, or nil if there is none.
func (c *Catalog) Find(path string) (*Info, error) {
	switch info, err := scanInfo(c.db.QueryRow(selectInfo+" WHERE i.path = ?", path)); err {
	case sql.ErrNoRows:
		return nil, nil
	case nil:
		return info, nil
	default:
		return nil, err
	}
}

func (c *Catalog) query(query string, args ...interface{}) ([]Info, error) {
	rows, err := c.db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var infos []Info
	for rows.Next() {
		info, err := scanInfo(rows)
		if err != nil {
			return nil, err
		}
		infos = append(infos, *info)
	}

	return infos, rows.Err()
}

// List returns every entry ordered by path.
func (c *Catalog) List() ([]Info, error) {
	return c.query(selectInfo + " ORDER BY i.path")
}

// Duplicates returns every entry sharing the contents identified by sha1,
// ordered by path.
func (c *Catalog) Duplicates(sha1 string) ([]Info, error) {
	return c.query(selectInfo+" WHERE c.sha1 = ? ORDER BY i.path", sha1)
}
