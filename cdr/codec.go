package cdr

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/jalad-shrimali/cdr-billing/timestamp"
)

/* ──────────── export layout (keep order) ──────────── */

var header = []string{"CallID", "Sender", "Receiver", "Timestamp", "Duration"}

// Header is the first line written by Serialize.
func Header() string { return strings.Join(header, ",") }

const minFields = 5

/* ──────────── warnings ──────────── */

// WarningKind classifies a recoverable problem met while parsing.
type WarningKind string

const (
	// MalformedRecord: fewer than five fields, the line was dropped.
	MalformedRecord WarningKind = "malformed_record"
	// NumericParseFailure: duration was not a non-negative integer, 0 was used.
	NumericParseFailure WarningKind = "numeric_parse_failure"
)

// Warning points at the input line (1-based) that triggered it.
type Warning struct {
	Line int         `json:"line"`
	Kind WarningKind `json:"kind"`
	Text string      `json:"text"`
}

func (w Warning) String() string {
	return fmt.Sprintf("line %d: %s: %q", w.Line, w.Kind, w.Text)
}

// Batch is the outcome of one Parse call.
type Batch struct {
	Records  []Record
	Warnings []Warning
}

/* ──────────── ingestion ──────────── */

// Parse reads one record per line. Fields are split on every comma, there is
// no quoting or escaping. Blank lines are ignored, short lines are dropped and
// a bad duration becomes 0; both are reported as warnings. A leading line
// equal to the export header is skipped. Only a read fault is an error, in
// which case nothing parsed so far is returned.
func Parse(r io.Reader) (Batch, error) {
	var b Batch
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	ln := 0
	seenData := false
	for sc.Scan() {
		ln++
		line := sc.Text()
		if strings.TrimSpace(line) == "" {
			continue
		}
		if !seenData {
			seenData = true
			if isHeader(line) {
				continue
			}
		}

		rec, warn, ok := parseLine(line)
		if warn != nil {
			warn.Line = ln
			b.Warnings = append(b.Warnings, *warn)
		}
		if ok {
			b.Records = append(b.Records, rec)
		}
	}
	if err := sc.Err(); err != nil {
		return Batch{}, fmt.Errorf("%w: read line %d: %v", ErrIO, ln+1, err)
	}
	return b, nil
}

// ParseText is Parse over an in-memory string; it cannot fail.
func ParseText(text string) Batch {
	b, _ := Parse(strings.NewReader(text))
	return b
}

func parseLine(line string) (Record, *Warning, bool) {
	parts := strings.Split(line, ",")
	if len(parts) < minFields {
		return Record{}, &Warning{Kind: MalformedRecord, Text: line}, false
	}
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}

	rec := Record{
		CallID:    parts[0],
		Sender:    parts[1],
		Receiver:  parts[2],
		Timestamp: timestamp.Normalize(parts[3]),
	}
	d, err := strconv.ParseInt(parts[4], 10, 64)
	if err != nil || d < 0 {
		return rec, &Warning{Kind: NumericParseFailure, Text: parts[4]}, true
	}
	rec.Duration = d
	return rec, nil, true
}

func isHeader(line string) bool {
	parts := strings.Split(line, ",")
	if len(parts) != len(header) {
		return false
	}
	for i, p := range parts {
		if !strings.EqualFold(strings.TrimSpace(p), header[i]) {
			return false
		}
	}
	return true
}

/* ──────────── export ──────────── */

// Serialize writes the header and one line per record. Text fields are
// quoted only when they contain a comma, a double quote or a newline;
// duration is always a bare integer.
func Serialize(w io.Writer, recs []Record) error {
	bw := bufio.NewWriter(w)
	if _, err := bw.WriteString(Header() + "\n"); err != nil {
		return fmt.Errorf("%w: %v", ErrIO, err)
	}
	for _, c := range recs {
		line := quote(c.CallID) + "," + quote(c.Sender) + "," + quote(c.Receiver) + "," +
			quote(c.Timestamp) + "," + strconv.FormatInt(c.Duration, 10) + "\n"
		if _, err := bw.WriteString(line); err != nil {
			return fmt.Errorf("%w: %v", ErrIO, err)
		}
	}
	if err := bw.Flush(); err != nil {
		return fmt.Errorf("%w: %v", ErrIO, err)
	}
	return nil
}

// SerializeText is Serialize into a string.
func SerializeText(recs []Record) string {
	var sb strings.Builder
	_ = Serialize(&sb, recs)
	return sb.String()
}

func quote(s string) string {
	if strings.ContainsAny(s, ",\"\n") {
		return `"` + strings.ReplaceAll(s, `"`, `""`) + `"`
	}
	return s
}
