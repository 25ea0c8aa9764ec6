package dataset

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strconv"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/c9s/riskstat/pkg/datasource/csvsource"
	"github.com/c9s/riskstat/pkg/types"
)

var log = logrus.WithField("component", "dataset")

const (
	DefaultConstituentPattern = "hs300stocks_%d.csv"
	DefaultKLinePattern       = "hs300stocks_kdata_%d.csv"
)

var constituentFileRegExp = regexp.MustCompile(`^hs300stocks_(\d{4})\.csv$`)

// Loader reads the yearly constituent and daily k-line exports from a directory.
type Loader struct {
	Dir string

	// ConstituentPattern and KLinePattern are fmt patterns taking the year.
	ConstituentPattern string
	KLinePattern       string
}

func NewLoader(dir string) *Loader {
	return &Loader{
		Dir:                dir,
		ConstituentPattern: DefaultConstituentPattern,
		KLinePattern:       DefaultKLinePattern,
	}
}

func (l *Loader) constituentPath(year int) string {
	pattern := l.ConstituentPattern
	if pattern == "" {
		pattern = DefaultConstituentPattern
	}
	return filepath.Join(l.Dir, fmt.Sprintf(pattern, year))
}

func (l *Loader) klinePath(year int) string {
	pattern := l.KLinePattern
	if pattern == "" {
		pattern = DefaultKLinePattern
	}
	return filepath.Join(l.Dir, fmt.Sprintf(pattern, year))
}

// Constituents returns the membership rows of the given year.
func (l *Loader) Constituents(year int) ([]types.Constituent, error) {
	return csvsource.ReadConstituentsFromFile(l.constituentPath(year))
}

// KLines returns the daily bars of the given year without weights.
func (l *Loader) KLines(year int) ([]types.Record, error) {
	path := l.klinePath(year)
	if _, err := os.Stat(path); err != nil {
		return nil, errors.Wrapf(err, "k-line file of %d", year)
	}
	return csvsource.ReadKLinesFromCSV(path)
}

// Load returns the daily bars of the given year left-joined with the constituent weight on code.
func (l *Loader) Load(year int) ([]types.Record, error) {
	records, err := l.KLines(year)
	if err != nil {
		return nil, err
	}

	constituents, err := l.Constituents(year)
	if err != nil {
		return nil, err
	}

	joined := Join(records, constituents)
	log.Debugf("loaded %d records and %d constituents of %d", len(joined), len(constituents), year)
	return joined, nil
}

// Join sets the weight of each record from the constituent with the same code.
// Records without a constituent keep HasWeight=false.
func Join(records []types.Record, constituents []types.Constituent) []types.Record {
	weights := make(map[string]float64, len(constituents))
	for _, c := range constituents {
		weights[c.Code] = c.Weight
	}

	out := make([]types.Record, len(records))
	for i, r := range records {
		if w, ok := weights[r.Code]; ok {
			r.Weight = w
			r.HasWeight = true
		}
		out[i] = r
	}
	return out
}

// ConstituentYears lists the years that have a constituent file in the directory, ascending.
func (l *Loader) ConstituentYears() ([]int, error) {
	entries, err := os.ReadDir(l.Dir)
	if err != nil {
		return nil, err
	}

	var years []int
	for _, e := range entries {
		if e.IsDir() {
			continue
		}

		m := constituentFileRegExp.FindStringSubmatch(e.Name())
		if m == nil {
			continue
		}

		year, err := strconv.Atoi(m[1])
		if err != nil {
			continue
		}
		years = append(years, year)
	}

	sort.Ints(years)
	return years, nil
}
