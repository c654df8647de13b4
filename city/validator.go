package city

import (
	"embed"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/go-playground/validator/v10"
)

// ErrInvalidCity is returned for names outside the whitelist.
var ErrInvalidCity = errors.New("city: not in whitelist")

/* ──────────── embedded whitelist ──────────── */
//go:embed data/cities.csv
var dataFS embed.FS

var (
	whitelist []string          // file order
	known     map[string]string // lower(name) → spelling from the file
)

func init() {
	names, err := loadWhitelist("data/cities.csv")
	if err != nil {
		panic(fmt.Errorf("city whitelist: %w", err))
	}
	whitelist = names
	known = make(map[string]string, len(names))
	for _, n := range names {
		known[strings.ToLower(n)] = n
	}
}

func loadWhitelist(path string) ([]string, error) {
	f, err := dataFS.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	r := csv.NewReader(f)
	head, err := r.Read()
	if err != nil {
		return nil, err
	}
	iCity := -1
	for i, h := range head {
		if strings.EqualFold(strings.TrimSpace(h), "city") {
			iCity = i
		}
	}
	if iCity == -1 {
		return nil, fmt.Errorf("no city column in %s", path)
	}

	var out []string
	for {
		rec, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		if iCity >= len(rec) {
			continue
		}
		if name := strings.TrimSpace(rec[iCity]); name != "" {
			out = append(out, name)
		}
	}
	return out, nil
}

// Whitelist returns the accepted city names.
func Whitelist() []string { return append([]string(nil), whitelist...) }

// Canonical returns the whitelist spelling of name, matched without case.
func Canonical(name string) (string, bool) {
	c, ok := known[strings.ToLower(name)]
	return c, ok
}

/* ──────────── validator ──────────── */

const tagCity = "zmcity"

type candidate struct {
	Name string `validate:"required,zmcity"`
}

// Validator checks names against the whitelist before they reach a List.
type Validator struct {
	v *validator.Validate
}

func NewValidator() *Validator {
	v := validator.New()
	if err := v.RegisterValidation(tagCity, func(fl validator.FieldLevel) bool {
		_, ok := Canonical(fl.Field().String())
		return ok
	}); err != nil {
		panic(err)
	}
	return &Validator{v: v}
}

// Validate returns ErrInvalidCity (wrapped) when name is not whitelisted.
// The comparison ignores case but not surrounding spaces.
func (v *Validator) Validate(name string) error {
	if err := v.v.Struct(candidate{Name: name}); err != nil {
		var ve validator.ValidationErrors
		if errors.As(err, &ve) {
			return fmt.Errorf("%w: %q", ErrInvalidCity, name)
		}
		return err
	}
	return nil
}

func (v *Validator) IsValid(name string) bool { return v.Validate(name) == nil }
