// Package report turns a CDR snapshot into an Excel workbook with per-caller
// totals. Aggregation runs through a throwaway in-memory SQLite database.
package report

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/mattn/go-sqlite3"
	"github.com/xuri/excelize/v2"

	"github.com/jalad-shrimali/cdr-billing/cdr"
)

const blankParty = "(blank)"

// PartyTotal aggregates the calls placed by one sender.
type PartyTotal struct {
	Party   string `json:"party"`
	Calls   int    `json:"calls"`
	TotalMs int64  `json:"total_ms"`
}

type Summary struct {
	Records     int          `json:"records"`
	TotalMs     int64        `json:"total_ms"`
	ByCaller    []PartyTotal `json:"by_caller"`    // party ascending
	MaxCalls    []PartyTotal `json:"max_calls"`    // calls descending
	MaxDuration []PartyTotal `json:"max_duration"` // duration descending
}

const schema = `
CREATE TABLE cdrs (
    seq       INTEGER PRIMARY KEY,
    call_id   TEXT NOT NULL,
    sender    TEXT NOT NULL,
    receiver  TEXT NOT NULL,
    ts        TEXT NOT NULL,
    duration  INTEGER NOT NULL
)`

// Summarize computes caller totals for recs.
func Summarize(ctx context.Context, recs []cdr.Record) (Summary, error) {
	db, err := sql.Open("sqlite3", ":memory:")
	if err != nil {
		return Summary{}, fmt.Errorf("open sqlite: %w", err)
	}
	defer db.Close()
	// every connection to :memory: is a separate database
	db.SetMaxOpenConns(1)

	if _, err := db.ExecContext(ctx, schema); err != nil {
		return Summary{}, fmt.Errorf("create schema: %w", err)
	}
	if err := insertAll(ctx, db, recs); err != nil {
		return Summary{}, err
	}

	var s Summary
	if err := db.QueryRowContext(ctx,
		`SELECT COUNT(*), COALESCE(SUM(duration), 0) FROM cdrs`).Scan(&s.Records, &s.TotalMs); err != nil {
		return Summary{}, fmt.Errorf("totals: %w", err)
	}

	const agg = `SELECT sender, COUNT(*) AS calls, SUM(duration) AS dur FROM cdrs GROUP BY sender `
	if s.ByCaller, err = queryTotals(ctx, db, agg+`ORDER BY sender`); err != nil {
		return Summary{}, err
	}
	if s.MaxCalls, err = queryTotals(ctx, db, agg+`ORDER BY calls DESC, sender`); err != nil {
		return Summary{}, err
	}
	if s.MaxDuration, err = queryTotals(ctx, db, agg+`ORDER BY dur DESC, sender`); err != nil {
		return Summary{}, err
	}
	return s, nil
}

func insertAll(ctx context.Context, db *sql.DB, recs []cdr.Record) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO cdrs (call_id, sender, receiver, ts, duration) VALUES (?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("prepare insert: %w", err)
	}
	defer stmt.Close()

	for _, r := range recs {
		sender := r.Sender
		if sender == "" {
			sender = blankParty
		}
		if _, err := stmt.ExecContext(ctx, r.CallID, sender, r.Receiver, r.Timestamp, r.Duration); err != nil {
			return fmt.Errorf("insert %s: %w", r.CallID, err)
		}
	}
	return tx.Commit()
}

func queryTotals(ctx context.Context, db *sql.DB, q string) ([]PartyTotal, error) {
	rows, err := db.QueryContext(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("aggregate: %w", err)
	}
	defer rows.Close()

	var out []PartyTotal
	for rows.Next() {
		var p PartyTotal
		if err := rows.Scan(&p.Party, &p.Calls, &p.TotalMs); err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

/* ──────────── workbook ──────────── */

var reportHeader = []string{"CallID", "Sender", "Receiver", "Timestamp", "Duration (ms)"}

// WriteXLSX saves recs, in the given order, plus the caller totals as a
// workbook at path.
func WriteXLSX(ctx context.Context, path string, recs []cdr.Record) error {
	sum, err := Summarize(ctx, recs)
	if err != nil {
		return err
	}

	rows := [][]any{toAny(reportHeader)}
	for _, r := range recs {
		rows = append(rows, []any{r.CallID, r.Sender, r.Receiver, r.Timestamp, r.Duration})
	}

	x := excelize.NewFile()
	defer x.Close()

	add := func(name string, rows [][]any) error {
		idx, err := x.NewSheet(name)
		if err != nil {
			return err
		}
		for r, row := range rows {
			for c, v := range row {
				cell, err := excelize.CoordinatesToCellName(c+1, r+1)
				if err != nil {
					return err
				}
				if err := x.SetCellValue(name, cell, v); err != nil {
					return err
				}
			}
		}
		if name == "report" {
			x.SetActiveSheet(idx)
		}
		return nil
	}

	sheets := []struct {
		name string
		rows [][]any
	}{
		{"report", rows},
		{"summary", totalsRows([]string{"Sender", "Total Calls", "Total Duration (ms)"}, sum.ByCaller)},
		{"max_calls", totalsRows([]string{"Sender", "Total Calls", "Total Duration (ms)"}, sum.MaxCalls)},
		{"max_duration", totalsRows([]string{"Sender", "Total Calls", "Total Duration (ms)"}, sum.MaxDuration)},
	}
	for _, s := range sheets {
		if err := add(s.name, s.rows); err != nil {
			return fmt.Errorf("sheet %s: %w", s.name, err)
		}
	}
	if err := x.DeleteSheet("Sheet1"); err != nil {
		return err
	}

	if err := x.SaveAs(path); err != nil {
		return fmt.Errorf("%w: %v", cdr.ErrIO, err)
	}
	return nil
}

func totalsRows(head []string, totals []PartyTotal) [][]any {
	rows := [][]any{toAny(head)}
	for _, p := range totals {
		rows = append(rows, []any{p.Party, p.Calls, p.TotalMs})
	}
	return rows
}

func toAny(ss []string) []any {
	out := make([]any, len(ss))
	for i, s := range ss {
		out[i] = s
	}
	return out
}
