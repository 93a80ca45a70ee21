package sqlite

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/hoshinonyaruko/gridsnake/structs"
	_ "github.com/mattn/go-sqlite3"
)

const createTicksTableSQL = `
CREATE TABLE IF NOT EXISTS Ticks (
    Seq INTEGER PRIMARY KEY AUTOINCREMENT,
    GroupID TEXT NOT NULL,
    Requested TEXT,
    Effective TEXT,
    Outcome TEXT,
    Edge TEXT,
    HeadCol INTEGER,
    HeadRow INTEGER,
    Score INTEGER,
    CreatedAt INTEGER
);
`

const createTicksIndexSQL = `
CREATE INDEX IF NOT EXISTS idx_ticks_group ON Ticks (GroupID);
`

// Open opens the journal database and creates its tables.
func Open(dsn string) (*sql.DB, error) {
	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, err
	}
	// sqlite 单写者；":memory:" 每个连接都是独立的库
	db.SetMaxOpenConns(1)
	if err := InitializeDatabase(db); err != nil {
		db.Close()
		return nil, err
	}
	return db, nil
}

func executeSQL(db *sql.DB, sqlStatement string) error {
	if _, err := db.Exec(sqlStatement); err != nil {
		return fmt.Errorf("executing SQL statement %q: %w", sqlStatement, err)
	}
	return nil
}

func InitializeDatabase(db *sql.DB) error {
	if err := executeSQL(db, createTicksTableSQL); err != nil {
		return err
	}
	return executeSQL(db, createTicksIndexSQL)
}

// RecordTick appends one tick outcome. requested is nil when the host kept the direction.
func RecordTick(db *sql.DB, groupID string, requested *structs.Direction, res structs.TickResult, score uint8) error {
	req := ""
	if requested != nil {
		req = requested.String()
	}
	_, err := db.Exec("INSERT INTO Ticks (GroupID, Requested, Effective, Outcome, Edge, HeadCol, HeadRow, Score, CreatedAt) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)",
		groupID, req, res.Effective.String(), res.Outcome.String(), res.Edge.String(),
		res.Head.Col, res.Head.Row, score, time.Now().Unix())
	return err
}

// ListTicks returns the journal for groupID, oldest first.
func ListTicks(db *sql.DB, groupID string) ([]structs.TickRecord, error) {
	rows, err := db.Query("SELECT Seq, GroupID, Requested, Effective, Outcome, Edge, HeadCol, HeadRow, Score, CreatedAt FROM Ticks WHERE GroupID = ? ORDER BY Seq", groupID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	records := []structs.TickRecord{}
	for rows.Next() {
		var r structs.TickRecord
		if err := rows.Scan(&r.Seq, &r.GroupID, &r.Requested, &r.Effective, &r.Outcome, &r.Edge, &r.HeadCol, &r.HeadRow, &r.Score, &r.CreatedAt); err != nil {
			return nil, err
		}
		records = append(records, r)
	}
	return records, rows.Err()
}

// DeleteTicks drops every journal row of groupID.
func DeleteTicks(db *sql.DB, groupID string) error {
	_, err := db.Exec("DELETE FROM Ticks WHERE GroupID = ?", groupID)
	return err
}
