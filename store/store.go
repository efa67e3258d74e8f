/*
Package store persists tilemaps in a local SQLite database.

Tileset pixel data is deduplicated: any number of maps sharing one atlas
reference a single tileset row, keyed by the SHA-1 of its serialized
form.
*/
package store

import (
	"crypto/sha1"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/bodgit/tilemap"
	_ "github.com/mattn/go-sqlite3"
)

// DB is a handle to a tilemap database.
type DB struct {
	db *sql.DB
}

// New opens the database in file, creating it and its schema if
// necessary.
func New(file string) (*DB, error) {
	db, err := sql.Open("sqlite3", fmt.Sprintf("%s?_foreign_keys=on", file))
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(10)

	if _, err = db.Exec("CREATE TABLE IF NOT EXISTS tileset (id INTEGER PRIMARY KEY NOT NULL, sha1 TEXT NOT NULL UNIQUE, data BLOB NOT NULL)"); err != nil {
		return nil, err
	}

	if _, err = db.Exec("CREATE TABLE IF NOT EXISTS map (id INTEGER PRIMARY KEY NOT NULL, name TEXT NOT NULL UNIQUE, tileset_id INTEGER NOT NULL, data BLOB NOT NULL, FOREIGN KEY(tileset_id) REFERENCES tileset(id))"); err != nil {
		return nil, err
	}

	return &DB{db: db}, nil
}

// Close closes the database.
func (d *DB) Close() error {
	return d.db.Close()
}

// gridJSON is the persisted form of a map minus its tileset, which is
// stored separately so it can be shared. Tile counts and other derived
// values are recomputed on load, never stored.
type gridJSON struct {
	Tiles  []tilemap.Tile `json:"tiles"`
	Width  uint32         `json:"width"`
	Height uint32         `json:"height"`
}

// Save stores m under name, replacing any previous map with that name.
func (d *DB) Save(name string, m *tilemap.Map) error {
	ts, err := json.Marshal(m.Tileset())
	if err != nil {
		return err
	}
	sum := fmt.Sprintf("%x", sha1.Sum(ts))

	grid, err := json.Marshal(gridJSON{
		Tiles:  m.Tiles(),
		Width:  uint32(m.Width()),
		Height: uint32(m.Height()),
	})
	if err != nil {
		return err
	}

	tx, err := d.db.Begin()
	if err != nil {
		return err
	}

	var id int64
	switch err := tx.QueryRow("SELECT id FROM tileset WHERE sha1 = ?", sum).Scan(&id); err {
	case sql.ErrNoRows:
		res, err := tx.Exec("INSERT INTO tileset (sha1, data) VALUES (?, ?)", sum, ts)
		if err != nil {
			tx.Rollback()
			return err
		}
		if id, err = res.LastInsertId(); err != nil {
			tx.Rollback()
			return err
		}
	case nil:
	default:
		tx.Rollback()
		return err
	}

	if _, err := tx.Exec("INSERT INTO map (name, tileset_id, data) VALUES (?, ?, ?) ON CONFLICT(name) DO UPDATE SET tileset_id = excluded.tileset_id, data = excluded.data", name, id, grid); err != nil {
		tx.Rollback()
		return err
	}

	return tx.Commit()
}

// Load returns the map stored under name.
func (d *DB) Load(name string) (*tilemap.Map, error) {
	var grid, ts []byte
	switch err := d.db.QueryRow("SELECT map.data, tileset.data FROM map JOIN tileset ON map.tileset_id = tileset.id WHERE map.name = ?", name).Scan(&grid, &ts); err {
	case sql.ErrNoRows:
		return nil, fmt.Errorf("store: no map named %q", name)
	case nil:
	default:
		return nil, err
	}

	var tileset tilemap.Tileset
	if err := json.Unmarshal(ts, &tileset); err != nil {
		return nil, err
	}

	var g gridJSON
	if err := json.Unmarshal(grid, &g); err != nil {
		return nil, err
	}
	if uint64(len(g.Tiles)) != uint64(g.Width)*uint64(g.Height) {
		return nil, errors.New("store: tile count does not match map dimensions")
	}

	m := tilemap.NewMap(g.Width, g.Height, &tileset)
	copy(m.Tiles(), g.Tiles)

	return m, nil
}

// List returns the names of all stored maps, sorted.
func (d *DB) List() ([]string, error) {
	rows, err := d.db.Query("SELECT name FROM map ORDER BY name")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, err
		}
		names = append(names, name)
	}

	return names, rows.Err()
}

// Delete removes the map stored under name. Tileset rows no longer
// referenced by any map are removed as well.
func (d *DB) Delete(name string) error {
	res, err := d.db.Exec("DELETE FROM map WHERE name = ?", name)
	if err != nil {
		return err
	}

	if n, err := res.RowsAffected(); err != nil {
		return err
	} else if n == 0 {
		return fmt.Errorf("store: no map named %q", name)
	}

	_, err = d.db.Exec("DELETE FROM tileset WHERE id NOT IN (SELECT tileset_id FROM map)")
	return err
}
