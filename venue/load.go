// SPDX-License-Identifier: MIT

package venue

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/juju/errors"
)

// LoadFile reads venues from a .csv or .parquet file and validates them.
func LoadFile(path string) ([]Venue, error) {
	var (
		vs  []Venue
		err error
	)
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		vs, err = loadCSV(path)
	case ".parquet", ".pq":
		vs, err = ReadParquet(path)
	default:
		return nil, errors.Annotatef(ErrUnsupportedFormat, "%s", path)
	}
	if err != nil {
		return nil, err
	}
	if err = Validate(vs); err != nil {
		return nil, errors.Annotatef(err, "%s", path)
	}

	return vs, nil
}

func loadCSV(path string) ([]Venue, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Trace(err)
	}
	defer f.Close()

	vs, err := ReadCSV(f)
	if err != nil {
		return nil, errors.Annotatef(err, "%s", path)
	}

	return vs, nil
}
