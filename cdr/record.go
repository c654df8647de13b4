// Package cdr holds call detail records in memory: ingestion from comma
// delimited text, lookup by call ID, ordering by duration and export.
package cdr

import (
	"errors"
	"fmt"
	"strings"
)

// ErrIO marks a read or write fault on the underlying stream or file.
var ErrIO = errors.New("cdr: i/o fault")

// Record is one call. Values are never modified after ingestion; the store
// only reorders them.
type Record struct {
	CallID    string `json:"call_id"`
	Sender    string `json:"sender"`
	Receiver  string `json:"receiver"`
	Timestamp string `json:"timestamp"`
	Duration  int64  `json:"duration_ms"`
}

// MatchesID compares call IDs without regard to case.
func (r Record) MatchesID(id string) bool {
	return strings.EqualFold(r.CallID, id)
}

// Details is the multi-line description shown for a single record.
func (r Record) Details() string {
	return fmt.Sprintf("Call ID: %s\nSender: %s\nReceiver: %s\nTimestamp: %s\nDuration: %d ms",
		r.CallID, r.Sender, r.Receiver, r.Timestamp, r.Duration)
}

func idKey(id string) string { return strings.ToLower(id) }
