package venue_test

import (
	"math"
	"path/filepath"
	"strings"
	"testing"

	"github.com/liam-crow/stats-blog/venue"
	"github.com/stretchr/testify/require"
)

func TestValidate(t *testing.T) {
	ok := []venue.Venue{
		{ID: 2, Name: "B", Lat: -37.8, Lon: 144.9},
		{ID: 1, Name: "A", Lat: 90, Lon: -180},
	}
	require.NoError(t, venue.Validate(ok))

	cases := []struct {
		name string
		vs   []venue.Venue
	}{
		{"empty", nil},
		{"single", []venue.Venue{{ID: 1}}},
		{"duplicate id", []venue.Venue{{ID: 1}, {ID: 1}}},
		{"gap in ids", []venue.Venue{{ID: 1}, {ID: 3}}},
		{"zero id", []venue.Venue{{ID: 0}, {ID: 1}}},
		{"lat too large", []venue.Venue{{ID: 1, Lat: 90.5}, {ID: 2}}},
		{"lon too small", []venue.Venue{{ID: 1}, {ID: 2, Lon: -180.1}}},
		{"lat NaN", []venue.Venue{{ID: 1, Lat: math.NaN()}, {ID: 2}}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			require.ErrorIs(t, venue.Validate(tc.vs), venue.ErrInvalidInput)
		})
	}
}

func TestSortByID(t *testing.T) {
	in := []venue.Venue{{ID: 3}, {ID: 1}, {ID: 2}}
	out := venue.SortByID(in)
	for i, v := range out {
		require.Equal(t, i+1, v.ID)
		require.Equal(t, i, v.Index())
	}
	require.Equal(t, 3, in[0].ID, "input must not be reordered")
}

func TestReadCSV_HeaderAliases(t *testing.T) {
	vs, err := venue.ReadCSV(strings.NewReader("Latitude,Longitude,Venue Name,Id\n-37.82,144.98,MCG,1\n"))
	require.NoError(t, err)
	require.Equal(t, []venue.Venue{{ID: 1, Name: "MCG", Lat: -37.82, Lon: 144.98}}, vs)
}

func TestReadCSV_Errors(t *testing.T) {
	cases := map[string]string{
		"empty":          "",
		"missing column": "id,name,lat\n1,A,0\n",
		"bad id":         "id,name,lat,lon\nx,A,0,0\n",
		"bad lat":        "id,name,lat,lon\n1,A,north,0\n",
		"short row":      "id,name,lat,lon\n1,A\n",
	}
	for name, in := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := venue.ReadCSV(strings.NewReader(in))
			require.ErrorIs(t, err, venue.ErrInvalidInput)
		})
	}
}

func TestLoadFile_CSV(t *testing.T) {
	vs, err := venue.LoadFile(filepath.Join("testdata", "square.csv"))
	require.NoError(t, err)
	require.Len(t, vs, 4)
	require.Equal(t, "North West", vs[3].Name)
	require.Equal(t, 1.0, vs[3].Lat)
	require.Equal(t, 0.0, vs[3].Lon)
}

func TestLoadFile_UnsupportedFormat(t *testing.T) {
	_, err := venue.LoadFile("venues.xlsx")
	require.ErrorIs(t, err, venue.ErrUnsupportedFormat)
}

func TestParquetRoundTrip(t *testing.T) {
	want := []venue.Venue{
		{ID: 1, Name: "Melbourne Cricket Ground", Lat: -37.82, Lon: 144.9834},
		{ID: 2, Name: "Adelaide Oval", Lat: -34.9156, Lon: 138.5961},
		{ID: 3, Name: "Optus Stadium", Lat: -31.9512, Lon: 115.889},
	}
	path := filepath.Join(t.TempDir(), "venues.parquet")
	require.NoError(t, venue.WriteParquet(path, want))

	got, err := venue.LoadFile(path)
	require.NoError(t, err)
	require.Equal(t, want, got)
}
