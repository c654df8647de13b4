// Package desk is the single entry point the shell drives. It owns one CDR
// store and one city list, serialises access to each with its own mutex, and
// answers every typed Request with a Result snapshot.
package desk

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"sync"

	"github.com/rs/zerolog"

	"github.com/jalad-shrimali/cdr-billing/cdr"
	"github.com/jalad-shrimali/cdr-billing/city"
	"github.com/jalad-shrimali/cdr-billing/logger"
	"github.com/jalad-shrimali/cdr-billing/metrics"
	"github.com/jalad-shrimali/cdr-billing/report"
)

var (
	ErrInvalidCity        = errors.New("invalid city")
	ErrPositionOutOfRange = errors.New("position out of range")
	ErrListEmpty          = errors.New("list empty")
	ErrNotFound           = errors.New("not found")
	ErrNothingToExport    = errors.New("no records to export")
	ErrUnknownCommand     = errors.New("unknown command")
)

// Desk owns the CDR store and the city list.
type Desk struct {
	cdrMu sync.Mutex
	store *cdr.Store

	cityMu    sync.Mutex
	cities    *city.List
	validator *city.Validator

	log *zerolog.Logger
}

// Option configures a Desk.
type Option func(d *Desk)

func WithLogger(l zerolog.Logger) Option {
	return func(d *Desk) {
		d.log = &l
	}
}

// New returns a Desk with an empty store and list.
func New(opts ...Option) *Desk {
	d := &Desk{
		store:     cdr.NewStore(),
		cities:    city.New(),
		validator: city.NewValidator(),
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

func (d *Desk) logger(ctx context.Context) *zerolog.Logger {
	if d.log != nil {
		return d.log
	}
	return logger.WithCtx(ctx)
}

// Execute runs req to completion on the caller's goroutine.
func (d *Desk) Execute(ctx context.Context, req Request) (Result, error) {
	if err := ctx.Err(); err != nil {
		return Result{}, err
	}

	switch r := req.(type) {
	case LoadFile, LoadReader, Records, LinearSearch, BinarySearch, SortByDuration, ExportFile, ExportWorkbook:
		d.cdrMu.Lock()
		defer d.cdrMu.Unlock()
		return d.execCDR(ctx, r)
	case InsertAtBeginning, InsertAtEnd, InsertAtPosition, DeleteAtBeginning, DeleteAtEnd, DeleteAtPosition,
		Cities, DisplayForward, DisplayBackward, CityCount, MiddleCity:
		d.cityMu.Lock()
		defer d.cityMu.Unlock()
		return d.execCity(ctx, r)
	default:
		return Result{}, fmt.Errorf("%w: %T", ErrUnknownCommand, req)
	}
}

/* ──────────── CDR ──────────── */

func (d *Desk) execCDR(ctx context.Context, req Request) (Result, error) {
	log := d.logger(ctx)

	switch r := req.(type) {
	case LoadFile:
		warns, err := d.store.LoadFile(r.Path)
		return d.loaded(ctx, filepath.Base(r.Path), warns, err)

	case LoadReader:
		warns, err := d.store.Load(r.R)
		return d.loaded(ctx, r.Name, warns, err)

	case Records:
		recs := d.store.Records()
		return Result{Status: fmt.Sprintf("%d records", len(recs)), Records: recs, Count: len(recs)}, nil

	case LinearSearch:
		q := strings.TrimSpace(r.CallID)
		if q == "" {
			return Result{Status: "Enter a Call ID"}, fmt.Errorf("%w: empty call id", ErrNotFound)
		}
		i, ok := d.store.LinearSearch(q)
		metrics.RecordSearch("linear", ok)
		if !ok {
			return Result{Status: "Linear search: not found " + q}, fmt.Errorf("%w: call id %q", ErrNotFound, q)
		}
		rec, _ := d.store.At(i)
		return Result{Status: "Linear search: found " + q, Record: &rec, Index: &i, Text: rec.Details(), Count: 1}, nil

	case BinarySearch:
		q := strings.TrimSpace(r.CallID)
		if q == "" {
			return Result{Status: "Enter a Call ID"}, fmt.Errorf("%w: empty call id", ErrNotFound)
		}
		rec, ok := d.store.BinarySearch(q)
		metrics.RecordSearch("binary", ok)
		if !ok {
			return Result{Status: "Binary search: not found " + q}, fmt.Errorf("%w: call id %q", ErrNotFound, q)
		}
		res := Result{Status: "Binary search: found " + q, Record: &rec, Text: rec.Details(), Count: 1}
		if i, ok := d.store.LinearSearch(rec.CallID); ok {
			res.Index = &i
		}
		return res, nil

	case SortByDuration:
		if d.store.Len() < 2 {
			return Result{Status: "Not enough records to sort.", Records: d.store.Records(), Count: d.store.Len()}, nil
		}
		d.store.SortByDuration()
		log.Info().Str("op", r.op()).Int("records", d.store.Len()).Msg("sorted")
		return Result{Status: "Selection sort by duration completed.", Records: d.store.Records(), Count: d.store.Len()}, nil

	case ExportFile:
		return d.export(ctx, "csv", r.Path, func() error { return d.store.ExportFile(r.Path) })

	case ExportWorkbook:
		return d.export(ctx, "xlsx", r.Path, func() error {
			return report.WriteXLSX(ctx, r.Path, d.store.Records())
		})
	}
	return Result{}, fmt.Errorf("%w: %T", ErrUnknownCommand, req)
}

func (d *Desk) loaded(ctx context.Context, name string, warns []cdr.Warning, err error) (Result, error) {
	log := d.logger(ctx)
	if err != nil {
		metrics.RecordLoadFailure()
		log.Error().Err(err).Str("source", name).Msg("load failed")
		return Result{Status: "Failed to read file: " + name, Count: d.store.Len()}, err
	}

	n := d.store.Len()
	metrics.RecordLoad(n)
	for _, w := range warns {
		metrics.RecordParseWarning(string(w.Kind))
		log.Debug().Int("line", w.Line).Str("kind", string(w.Kind)).Msg("parse warning")
	}
	log.Info().Str("source", name).Int("records", n).Int("warnings", len(warns)).Msg("cdrs loaded")

	return Result{
		Status:   fmt.Sprintf("Loaded %d records from %s", n, name),
		Records:  d.store.Records(),
		Warnings: warns,
		Count:    n,
	}, nil
}

func (d *Desk) export(ctx context.Context, format, path string, write func() error) (Result, error) {
	log := d.logger(ctx)
	n := d.store.Len()
	if n == 0 {
		metrics.RecordExport(format, false)
		return Result{Status: "No records to export."}, ErrNothingToExport
	}
	if err := write(); err != nil {
		metrics.RecordExport(format, false)
		log.Error().Err(err).Str("format", format).Str("path", path).Msg("export failed")
		return Result{Status: "Export failed: " + err.Error()}, err
	}
	metrics.RecordExport(format, true)
	log.Info().Str("format", format).Str("path", path).Int("records", n).Msg("exported")
	return Result{Status: fmt.Sprintf("Exported %d records to %s", n, filepath.Base(path)), Text: path, Count: n}, nil
}

/* ──────────── cities ──────────── */

func (d *Desk) execCity(ctx context.Context, req Request) (Result, error) {
	log := d.logger(ctx)

	switch r := req.(type) {
	case InsertAtBeginning:
		name, err := d.checkCity(r.City)
		if err != nil {
			return d.rejected(r.op(), "Invalid city!", err)
		}
		d.cities.InsertAtBeginning(name)
		return d.mutated(log, r.op(), "Inserted at beginning: "+name), nil

	case InsertAtEnd:
		name, err := d.checkCity(r.City)
		if err != nil {
			return d.rejected(r.op(), "Invalid city!", err)
		}
		d.cities.InsertAtEnd(name)
		return d.mutated(log, r.op(), "Inserted at end: "+name), nil

	case InsertAtPosition:
		name, err := d.checkCity(r.City)
		if err != nil {
			return d.rejected(r.op(), "Invalid city!", err)
		}
		if !d.cities.InsertAtPosition(name, r.Pos) {
			return d.rejected(r.op(), "Position out of range",
				fmt.Errorf("%w: %d not in [1, %d]", ErrPositionOutOfRange, r.Pos, d.cities.Size()+1))
		}
		return d.mutated(log, r.op(), fmt.Sprintf("Inserted %s at %d", name, r.Pos)), nil

	case DeleteAtBeginning:
		if !d.cities.DeleteAtBeginning() {
			return d.rejected(r.op(), "List empty", ErrListEmpty)
		}
		return d.mutated(log, r.op(), "Deleted at beginning"), nil

	case DeleteAtEnd:
		if !d.cities.DeleteAtEnd() {
			return d.rejected(r.op(), "List empty", ErrListEmpty)
		}
		return d.mutated(log, r.op(), "Deleted at end"), nil

	case DeleteAtPosition:
		if !d.cities.DeleteAtPosition(r.Pos) {
			return d.rejected(r.op(), "Invalid position",
				fmt.Errorf("%w: %d not in [1, %d]", ErrPositionOutOfRange, r.Pos, d.cities.Size()))
		}
		return d.mutated(log, r.op(), fmt.Sprintf("Deleted at position %d", r.Pos)), nil

	case Cities:
		return d.citySnapshot("Ready"), nil

	case DisplayForward:
		res := d.citySnapshot("Displayed forward.")
		res.Text = d.cities.DisplayForward()
		return res, nil

	case DisplayBackward:
		res := d.citySnapshot("Displayed backward.")
		res.Cities = d.cities.Backward()
		res.Text = d.cities.DisplayBackward()
		return res, nil

	case CityCount:
		res := d.citySnapshot("Displayed count.")
		res.Text = fmt.Sprintf("Number of cities: %d", d.cities.Size())
		return res, nil

	case MiddleCity:
		res := d.citySnapshot("Displayed middle city.")
		res.Text = d.cities.MiddleCity()
		return res, nil
	}
	return Result{}, fmt.Errorf("%w: %T", ErrUnknownCommand, req)
}

func (d *Desk) checkCity(raw string) (string, error) {
	name := strings.TrimSpace(raw)
	if err := d.validator.Validate(name); err != nil {
		return "", fmt.Errorf("%w: %w", ErrInvalidCity, err)
	}
	return name, nil
}

func (d *Desk) citySnapshot(status string) Result {
	return Result{Status: status, Cities: d.cities.ToList(), Count: d.cities.Size()}
}

func (d *Desk) mutated(log *zerolog.Logger, op, status string) Result {
	metrics.RecordCityOp(op, true)
	log.Debug().Str("op", op).Int("size", d.cities.Size()).Msg(status)
	return d.citySnapshot(status)
}

func (d *Desk) rejected(op, status string, err error) (Result, error) {
	metrics.RecordCityOp(op, false)
	return d.citySnapshot(status), err
}
