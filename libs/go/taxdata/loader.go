// Package taxdata loads the versioned federal and state tax tables that ship
// embedded in the binary. Tables are parsed once per process and are
// read-only afterwards.
package taxdata

import (
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"path"
	"sort"
	"strconv"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"
)

//go:embed tables/*.yaml
var embedded embed.FS

// ErrUnsupportedTaxYear is returned when no tables exist for a year.
var ErrUnsupportedTaxYear = errors.New("unsupported tax year")

// Tables is the complete constant set for one tax year.
type Tables struct {
	TaxYear int
	Federal *Federal
	States  map[string]State
}

// State returns the table for a two-letter state code.
func (t *Tables) State(code string) (State, bool) {
	s, ok := t.States[strings.ToUpper(code)]
	return s, ok
}

type federalFile struct {
	TaxYear int     `yaml:"taxYear"`
	Federal Federal `yaml:"federal"`
}

type statesFile struct {
	TaxYear int              `yaml:"taxYear"`
	States  map[string]State `yaml:"states"`
}

var (
	loadOnce sync.Once
	loaded   map[int]*Tables
	loadErr  error
)

// ForYear returns the embedded tables for year.
func ForYear(year int) (*Tables, error) {
	loadOnce.Do(func() {
		loaded, loadErr = Load(embedded)
	})
	if loadErr != nil {
		return nil, loadErr
	}
	t, ok := loaded[year]
	if !ok {
		return nil, fmt.Errorf("%w: %d", ErrUnsupportedTaxYear, year)
	}
	return t, nil
}

// SupportedYears lists the years with embedded tables, ascending.
func SupportedYears() []int {
	loadOnce.Do(func() {
		loaded, loadErr = Load(embedded)
	})
	years := make([]int, 0, len(loaded))
	for y := range loaded {
		years = append(years, y)
	}
	sort.Ints(years)
	return years
}

// Load parses every tables/federal_<year>.yaml in fsys together with the
// matching tables/states_<year>.yaml.
func Load(fsys fs.FS) (map[int]*Tables, error) {
	matches, err := fs.Glob(fsys, "tables/federal_*.yaml")
	if err != nil {
		return nil, err
	}
	out := make(map[int]*Tables, len(matches))
	for _, name := range matches {
		year, err := yearOf(name, "federal_")
		if err != nil {
			return nil, err
		}

		var fed federalFile
		if err := decodeFile(fsys, name, &fed); err != nil {
			return nil, err
		}
		if fed.TaxYear != year {
			return nil, fmt.Errorf("%s: taxYear %d does not match file name", name, fed.TaxYear)
		}

		var st statesFile
		statesName := fmt.Sprintf("tables/states_%d.yaml", year)
		if err := decodeFile(fsys, statesName, &st); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, err
		}
		states := make(map[string]State, len(st.States))
		for code, s := range st.States {
			states[strings.ToUpper(code)] = s
		}

		federal := fed.Federal
		out[year] = &Tables{TaxYear: year, Federal: &federal, States: states}
	}
	return out, nil
}

func decodeFile(fsys fs.FS, name string, v interface{}) error {
	data, err := fs.ReadFile(fsys, name)
	if err != nil {
		return err
	}
	if err := yaml.Unmarshal(data, v); err != nil {
		return fmt.Errorf("%s: %w", name, err)
	}
	return nil
}

func yearOf(name, prefix string) (int, error) {
	base := strings.TrimSuffix(path.Base(name), ".yaml")
	year, err := strconv.Atoi(strings.TrimPrefix(base, prefix))
	if err != nil {
		return 0, fmt.Errorf("%s: cannot derive tax year: %w", name, err)
	}
	return year, nil
}
