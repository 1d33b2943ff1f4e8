package report

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"

	"github.com/diwise/mac-explorer/pkg/types"
	"github.com/matryer/is"
)

func TestBuildReport(t *testing.T) {
	is := is.New(t)

	box := types.GeoBox{TopLat: 40.71284, TopLon: -74.00601, BottomLat: 40.70000, BottomLon: -74.01000}
	r, err := Build(box, types.ExportBundle{
		Vendors: []types.VendorAggregate{
			{Vendor: "Samsung", Count: 1},
			{Vendor: "Unknown", Count: 7},
			{Vendor: "Apple", Count: 2},
		},
		SSIDs:     []string{"home", "office"},
		Hostnames: []string{"laptop"},
		MACs:      []string{"aa", "bb", "cc"},
	})
	is.NoErr(err)

	is.Equal(r.Filename, "box_40.7128,-74.0060_40.7000,-74.0100.csv")
	is.Equal(string(r.Body), expectedReport)
}

func TestThatRowsAreSortedByCountAndKeepSourceOrderOnTies(t *testing.T) {
	is := is.New(t)

	rows, err := Rows([]types.VendorAggregate{
		{Vendor: "B", Count: 1},
		{Vendor: "A", Count: 5},
		{Vendor: "C", Count: 1},
		{Vendor: "D", Count: 3},
	})
	is.NoErr(err)

	vendors := []string{}
	for _, r := range rows {
		vendors = append(vendors, r.Vendor)
	}
	is.Equal(vendors, []string{"A", "D", "B", "C"})
}

func TestThatUnknownVendorIsNeverReported(t *testing.T) {
	is := is.New(t)

	rows, err := Rows([]types.VendorAggregate{
		{Vendor: "Unknown", Count: 100},
		{Vendor: "Apple", Count: 1},
	})
	is.NoErr(err)

	is.Equal(len(rows), 1)
	is.Equal(rows[0], Row{Vendor: "Apple", Count: 1, Percentage: "100.00"})
}

func TestThatPercentagesSumToOneHundred(t *testing.T) {
	is := is.New(t)

	rows, err := Rows([]types.VendorAggregate{
		{Vendor: "A", Count: 1},
		{Vendor: "B", Count: 1},
		{Vendor: "C", Count: 1},
	})
	is.NoErr(err)

	sum := 0.0
	for _, r := range rows {
		is.Equal(r.Percentage, "33.33")
		p, err := strconv.ParseFloat(r.Percentage, 64)
		is.NoErr(err)
		sum += p
	}

	is.True(sum > 99.98 && sum < 100.02)
}

func TestPercentageRounding(t *testing.T) {
	is := is.New(t)

	is.Equal(Percentage(2, 3), "66.67")
	is.Equal(Percentage(1, 8), "12.50")
	is.Equal(Percentage(1, 800), "0.13")
	is.Equal(Percentage(0, 5), "0.00")
	is.Equal(Percentage(5, 5), "100.00")
}

func TestThatPercentageRoundsTheComputedFloat(t *testing.T) {
	is := is.New(t)

	// 100*201/20000 is stored as 1.00499999...
	is.Equal(Percentage(201, 20000), "1.00")
	is.Equal(Percentage(1, 200000), "0.00")
	is.Equal(Percentage(999, 1000), "99.90")
}

func TestThatOnlyUnknownVendorsIsNoData(t *testing.T) {
	is := is.New(t)

	_, err := Build(types.WorldBox, types.ExportBundle{
		Vendors: []types.VendorAggregate{{Vendor: "Unknown", Count: 3}},
	})
	is.True(errors.Is(err, ErrNoData))
}

func TestThatZeroTotalIsNoData(t *testing.T) {
	is := is.New(t)

	_, err := Build(types.WorldBox, types.ExportBundle{
		Vendors: []types.VendorAggregate{{Vendor: "Apple", Count: 0}},
	})
	is.True(errors.Is(err, ErrNoData))
}

func TestFilenameAlwaysHasFourDecimals(t *testing.T) {
	is := is.New(t)

	is.Equal(Filename(types.WorldBox), "box_90.0000,180.0000_-90.0000,-180.0000.csv")
	is.Equal(Filename(types.GeoBox{TopLat: 1.123456789, TopLon: -0.00001, BottomLat: 0, BottomLon: 2.5}), "box_1.1235,-0.0000_0.0000,2.5000.csv")
}

func TestThatFilenameRoundsHalvesAwayFromZero(t *testing.T) {
	is := is.New(t)

	is.Equal(Filename(types.GeoBox{TopLat: 0.03125, TopLon: 1.03125, BottomLat: -0.03125, BottomLon: 2.5}), "box_0.0313,1.0313_-0.0313,2.5000.csv")
	is.Equal(Filename(types.GeoBox{TopLat: 9.99995, TopLon: -179.99999, BottomLat: 1e-5, BottomLon: 0}), "box_10.0000,-180.0000_0.0000,0.0000.csv")
}

func TestFilenameDoesNotPrintNegativeZero(t *testing.T) {
	is := is.New(t)

	negZero := 0.0
	negZero = -negZero

	is.True(!strings.Contains(Filename(types.GeoBox{TopLat: negZero}), "-0.0000,"))
}

func TestThatEmptyListsStillGetSectionHeaders(t *testing.T) {
	is := is.New(t)

	r, err := Build(types.WorldBox, types.ExportBundle{
		Vendors: []types.VendorAggregate{{Vendor: "Apple", Count: 4}},
	})
	is.NoErr(err)

	is.Equal(string(r.Body), "Vendor,Count,Percentage\n\"Apple\",4,100.00\n\nObserved SSIDs:\n\nObserved Hostnames:\n\nObserved MACs:\n")
}

func TestWriteToAndSave(t *testing.T) {
	is := is.New(t)

	r, err := Build(types.WorldBox, types.ExportBundle{
		Vendors: []types.VendorAggregate{{Vendor: "Apple", Count: 4}},
	})
	is.NoErr(err)

	buf := &bytes.Buffer{}
	n, err := r.WriteTo(buf)
	is.NoErr(err)
	is.Equal(int(n), len(r.Body))

	dir := t.TempDir()
	path, err := r.Save(dir)
	is.NoErr(err)
	is.Equal(path, filepath.Join(dir, "box_90.0000,180.0000_-90.0000,-180.0000.csv"))

	b, err := os.ReadFile(path)
	is.NoErr(err)
	is.Equal(b, buf.Bytes())
}

const expectedReport string = `Vendor,Count,Percentage
"Apple",2,66.67
"Samsung",1,33.33

Observed SSIDs:
home
office

Observed Hostnames:
laptop

Observed MACs:
aa
bb
cc
`
