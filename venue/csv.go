// SPDX-License-Identifier: MIT

package venue

import (
	"encoding/csv"
	"io"
	"strconv"
	"strings"

	"github.com/juju/errors"
)

// Accepted header spellings, compared case-insensitively after trimming.
var (
	idHeaders   = []string{"id"}
	nameHeaders = []string{"name", "venue", "venue name"}
	latHeaders  = []string{"lat", "latitude"}
	lonHeaders  = []string{"lon", "lng", "long", "longitude"}
)

// ReadCSV parses venues from r. The first record is a header naming the
// id, name, latitude and longitude columns; extra columns are ignored.
// It does not call Validate.
func ReadCSV(r io.Reader) ([]Venue, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if err == io.EOF {
		return nil, errors.Annotate(ErrInvalidInput, "csv: empty input")
	}
	if err != nil {
		return nil, errors.Annotatef(ErrInvalidInput, "csv header: %v", err)
	}
	cols, err := locateColumns(header)
	if err != nil {
		return nil, err
	}

	var out []Venue
	line := 1
	for {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		line++
		if err != nil {
			return nil, errors.Annotatef(ErrInvalidInput, "csv line %d: %v", line, err)
		}
		if isBlank(rec) {
			continue
		}
		v, err := parseRecord(rec, cols)
		if err != nil {
			return nil, errors.Annotatef(err, "csv line %d", line)
		}
		out = append(out, v)
	}

	return out, nil
}

// columns holds the record positions of the four required fields.
type columns struct{ id, name, lat, lon int }

func locateColumns(header []string) (columns, error) {
	c := columns{id: -1, name: -1, lat: -1, lon: -1}
	for i, h := range header {
		h = strings.ToLower(strings.TrimSpace(strings.TrimPrefix(h, "\ufeff")))
		switch {
		case c.id < 0 && contains(idHeaders, h):
			c.id = i
		case c.name < 0 && contains(nameHeaders, h):
			c.name = i
		case c.lat < 0 && contains(latHeaders, h):
			c.lat = i
		case c.lon < 0 && contains(lonHeaders, h):
			c.lon = i
		}
	}
	if c.id < 0 || c.name < 0 || c.lat < 0 || c.lon < 0 {
		return c, errors.Annotatef(ErrInvalidInput, "csv header %q: need id, name, latitude and longitude columns", header)
	}

	return c, nil
}

func parseRecord(rec []string, c columns) (Venue, error) {
	field := func(i int) (string, error) {
		if i >= len(rec) {
			return "", errors.Annotatef(ErrInvalidInput, "missing column %d", i+1)
		}
		return strings.TrimSpace(rec[i]), nil
	}

	var (
		v   Venue
		s   string
		err error
	)
	if s, err = field(c.id); err != nil {
		return v, err
	}
	if v.ID, err = strconv.Atoi(s); err != nil {
		return v, errors.Annotatef(ErrInvalidInput, "id %q", s)
	}
	if v.Name, err = field(c.name); err != nil {
		return v, err
	}
	if s, err = field(c.lat); err != nil {
		return v, err
	}
	if v.Lat, err = strconv.ParseFloat(s, 64); err != nil {
		return v, errors.Annotatef(ErrInvalidInput, "latitude %q", s)
	}
	if s, err = field(c.lon); err != nil {
		return v, err
	}
	if v.Lon, err = strconv.ParseFloat(s, 64); err != nil {
		return v, errors.Annotatef(ErrInvalidInput, "longitude %q", s)
	}

	return v, nil
}

func contains(set []string, s string) bool {
	for _, x := range set {
		if x == s {
			return true
		}
	}
	return false
}

func isBlank(rec []string) bool {
	for _, f := range rec {
		if strings.TrimSpace(f) != "" {
			return false
		}
	}
	return true
}
