package cdr

import (
	"fmt"
	"io"
	"os"
	"sort"
	"strings"
)

// Store keeps records in load order until SortByDuration reorders them.
// It is not safe for concurrent use.
type Store struct {
	records []Record
}

// NewStore returns an empty store.
func NewStore() *Store { return &Store{} }

// Load replaces the whole collection with the batch parsed from r. On a read
// fault the previous collection is kept.
func (s *Store) Load(r io.Reader) ([]Warning, error) {
	b, err := Parse(r)
	if err != nil {
		return nil, err
	}
	s.records = b.Records
	return b.Warnings, nil
}

// LoadFile is Load over a file on disk.
func (s *Store) LoadFile(path string) ([]Warning, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrIO, err)
	}
	defer f.Close()
	return s.Load(f)
}

// Len is the number of loaded records.
func (s *Store) Len() int { return len(s.records) }

// Records returns a copy of the collection in current order.
func (s *Store) Records() []Record {
	return append([]Record(nil), s.records...)
}

// At returns the record at a 0-based index.
func (s *Store) At(i int) (Record, bool) {
	if i < 0 || i >= len(s.records) {
		return Record{}, false
	}
	return s.records[i], true
}

// LinearSearch returns the index of the first record whose call ID equals id,
// ignoring case.
func (s *Store) LinearSearch(id string) (int, bool) {
	for i, c := range s.records {
		if c.MatchesID(id) {
			return i, true
		}
	}
	return -1, false
}

// BinarySearch sorts a throwaway copy by call ID and bisects it. With
// duplicate IDs any one of them may come back.
func (s *Store) BinarySearch(id string) (Record, bool) {
	if len(s.records) == 0 {
		return Record{}, false
	}
	cp := s.Records()
	sort.Slice(cp, func(i, j int) bool { return idKey(cp[i].CallID) < idKey(cp[j].CallID) })

	want := idKey(id)
	l, r := 0, len(cp)-1
	for l <= r {
		m := int(uint(l+r) >> 1)
		switch cmp := strings.Compare(idKey(cp[m].CallID), want); {
		case cmp == 0:
			return cp[m], true
		case cmp < 0:
			l = m + 1
		default:
			r = m - 1
		}
	}
	return Record{}, false
}

// SortByDuration is an in-place selection sort, ascending. The leftmost
// minimum of each suffix is swapped forward, so equal durations may change
// relative order.
func (s *Store) SortByDuration() {
	n := len(s.records)
	for i := 0; i < n-1; i++ {
		lo := i
		for j := i + 1; j < n; j++ {
			if s.records[j].Duration < s.records[lo].Duration {
				lo = j
			}
		}
		if lo != i {
			s.records[i], s.records[lo] = s.records[lo], s.records[i]
		}
	}
}

// Export writes the collection in current order.
func (s *Store) Export(w io.Writer) error {
	return Serialize(w, s.records)
}

// ExportText is Export rendered to a string.
func (s *Store) ExportText() string {
	return SerializeText(s.records)
}

// ExportFile writes the collection to path, truncating it.
func (s *Store) ExportFile(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrIO, err)
	}
	if err := s.Export(f); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("%w: %v", ErrIO, err)
	}
	return nil
}
