// SPDX-License-Identifier: MIT

package venue

import (
	"github.com/juju/errors"
	"github.com/xitongsys/parquet-go-source/local"
	"github.com/xitongsys/parquet-go/reader"
	"github.com/xitongsys/parquet-go/writer"
)

// parquetGoRoutines is the parallelism handed to parquet-go; venue files
// are tiny, one worker is enough.
const parquetGoRoutines int64 = 1

// parquetVenue is the on-disk row layout.
type parquetVenue struct {
	ID   int64   `parquet:"name=id, type=INT64"`
	Name string  `parquet:"name=name, type=UTF8"`
	Lat  float64 `parquet:"name=lat, type=DOUBLE"`
	Lon  float64 `parquet:"name=lon, type=DOUBLE"`
}

// ReadParquet loads every row of the Parquet file at path.
// It does not call Validate.
func ReadParquet(path string) ([]Venue, error) {
	fr, err := local.NewLocalFileReader(path)
	if err != nil {
		return nil, errors.Annotatef(err, "open parquet %s", path)
	}
	defer fr.Close()

	pr, err := reader.NewParquetReader(fr, new(parquetVenue), parquetGoRoutines)
	if err != nil {
		return nil, errors.Annotatef(ErrInvalidInput, "parquet reader %s: %v", path, err)
	}
	defer pr.ReadStop()

	rows := make([]parquetVenue, int(pr.GetNumRows()))
	if err = pr.Read(&rows); err != nil {
		return nil, errors.Annotatef(ErrInvalidInput, "read parquet %s: %v", path, err)
	}

	out := make([]Venue, len(rows))
	for i, r := range rows {
		out[i] = Venue{ID: int(r.ID), Name: r.Name, Lat: r.Lat, Lon: r.Lon}
	}

	return out, nil
}

// WriteParquet stores vs at path, replacing any existing file.
func WriteParquet(path string, vs []Venue) error {
	fw, err := local.NewLocalFileWriter(path)
	if err != nil {
		return errors.Annotatef(err, "create parquet %s", path)
	}

	pw, err := writer.NewParquetWriter(fw, new(parquetVenue), parquetGoRoutines)
	if err != nil {
		_ = fw.Close()
		return errors.Annotatef(err, "parquet writer %s", path)
	}
	for _, v := range vs {
		row := parquetVenue{ID: int64(v.ID), Name: v.Name, Lat: v.Lat, Lon: v.Lon}
		if err = pw.Write(row); err != nil {
			_ = fw.Close()
			return errors.Annotatef(err, "write parquet row %d", v.ID)
		}
	}
	if err = pw.WriteStop(); err != nil {
		_ = fw.Close()
		return errors.Annotatef(err, "parquet WriteStop %s", path)
	}

	return errors.Trace(fw.Close())
}
