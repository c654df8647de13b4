package desk

import (
	"io"

	"github.com/jalad-shrimali/cdr-billing/cdr"
)

// Request is one typed command issued by the shell. The set is closed.
type Request interface {
	op() string
}

/* ──────────── CDR requests ──────────── */

// LoadFile replaces the CDR collection with the contents of Path.
type LoadFile struct{ Path string }

// LoadReader replaces the CDR collection with R; Name is used in the status line.
type LoadReader struct {
	Name string
	R    io.Reader
}

type Records struct{}

type LinearSearch struct{ CallID string }

type BinarySearch struct{ CallID string }

type SortByDuration struct{}

// ExportFile writes the delimited export to Path.
type ExportFile struct{ Path string }

// ExportWorkbook writes the .xlsx report to Path.
type ExportWorkbook struct{ Path string }

/* ──────────── city requests ──────────── */

type InsertAtBeginning struct{ City string }

type InsertAtEnd struct{ City string }

type InsertAtPosition struct {
	City string
	Pos  int
}

type DeleteAtBeginning struct{}

type DeleteAtEnd struct{}

type DeleteAtPosition struct{ Pos int }

type Cities struct{}

type DisplayForward struct{}

type DisplayBackward struct{}

type CityCount struct{}

type MiddleCity struct{}

func (LoadFile) op() string          { return "load_file" }
func (LoadReader) op() string        { return "load" }
func (Records) op() string           { return "records" }
func (LinearSearch) op() string      { return "linear_search" }
func (BinarySearch) op() string      { return "binary_search" }
func (SortByDuration) op() string    { return "sort_by_duration" }
func (ExportFile) op() string        { return "export_csv" }
func (ExportWorkbook) op() string    { return "export_xlsx" }
func (InsertAtBeginning) op() string { return "insert_at_beginning" }
func (InsertAtEnd) op() string       { return "insert_at_end" }
func (InsertAtPosition) op() string  { return "insert_at_position" }
func (DeleteAtBeginning) op() string { return "delete_at_beginning" }
func (DeleteAtEnd) op() string       { return "delete_at_end" }
func (DeleteAtPosition) op() string  { return "delete_at_position" }
func (Cities) op() string            { return "cities" }
func (DisplayForward) op() string    { return "display_forward" }
func (DisplayBackward) op() string   { return "display_backward" }
func (CityCount) op() string         { return "city_count" }
func (MiddleCity) op() string        { return "middle_city" }

// Result is the snapshot handed back after every request. Mutating requests
// always carry the full post-mutation view so the shell can re-render.
type Result struct {
	Status   string        `json:"status"`
	Records  []cdr.Record  `json:"records,omitempty"`
	Record   *cdr.Record   `json:"record,omitempty"`
	Index    *int          `json:"index,omitempty"` // 0-based row in the live collection
	Warnings []cdr.Warning `json:"warnings,omitempty"`
	Cities   []string      `json:"cities,omitempty"`
	Text     string        `json:"text,omitempty"`
	Count    int           `json:"count"`
}
