package report

import (
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"strings"

	"github.com/diwise/mac-explorer/pkg/types"
	"github.com/samber/lo"
)

var (
	ErrNoRegion = errors.New("draw a region first")
	ErrNoData   = errors.New("no vendor data to export")
)

const ContentType string = "text/csv"

type Row struct {
	Vendor     string `json:"vendor"`
	Count      int    `json:"count"`
	Percentage string `json:"percentage"`
}

type Report struct {
	Box      types.GeoBox `json:"box"`
	Filename string       `json:"filename"`
	Rows     []Row        `json:"rows"`
	Body     []byte       `json:"-"`
}

// Build turns the aggregates for box into a csv report. Unknown vendors are
// left out and the remaining rows are sorted by count, largest first.
func Build(box types.GeoBox, bundle types.ExportBundle) (Report, error) {
	rows, err := Rows(bundle.Vendors)
	if err != nil {
		return Report{}, err
	}

	sb := strings.Builder{}
	sb.WriteString("Vendor,Count,Percentage\n")
	for _, r := range rows {
		sb.WriteString(fmt.Sprintf("\"%s\",%d,%s\n", r.Vendor, r.Count, r.Percentage))
	}

	writeSection(&sb, "Observed SSIDs:", bundle.SSIDs)
	writeSection(&sb, "Observed Hostnames:", bundle.Hostnames)
	writeSection(&sb, "Observed MACs:", bundle.MACs)

	return Report{
		Box:      box,
		Filename: Filename(box),
		Rows:     rows,
		Body:     []byte(sb.String()),
	}, nil
}

func Rows(vendors []types.VendorAggregate) ([]Row, error) {
	known := lo.Filter(vendors, func(v types.VendorAggregate, _ int) bool {
		return v.Vendor != types.UnknownVendor
	})

	slices.SortStableFunc(known, func(a, b types.VendorAggregate) int {
		return b.Count - a.Count
	})

	total := lo.SumBy(known, func(v types.VendorAggregate) int {
		return v.Count
	})

	if len(known) == 0 || total <= 0 {
		return nil, ErrNoData
	}

	return lo.Map(known, func(v types.VendorAggregate, _ int) Row {
		return Row{
			Vendor:     v.Vendor,
			Count:      v.Count,
			Percentage: Percentage(v.Count, total),
		}
	}), nil
}

// Percentage formats 100*count/total with exactly two decimals.
func Percentage(count, total int) string {
	if total <= 0 {
		return "0.00"
	}

	return toFixed(float64(count)/float64(total)*100, 2)
}

func Filename(box types.GeoBox) string {
	return fmt.Sprintf("box_%s,%s_%s,%s.csv",
		fixed4(box.TopLat), fixed4(box.TopLon), fixed4(box.BottomLat), fixed4(box.BottomLon))
}

func (r Report) WriteTo(w io.Writer) (int64, error) {
	n, err := w.Write(r.Body)
	return int64(n), err
}

// Save writes the report into dir using its derived file name.
func (r Report) Save(dir string) (string, error) {
	path := filepath.Join(dir, r.Filename)

	err := os.WriteFile(path, r.Body, 0644)
	if err != nil {
		return "", fmt.Errorf("failed to write report %s: %w", path, err)
	}

	return path, nil
}

func writeSection(sb *strings.Builder, title string, items []string) {
	sb.WriteString("\n")
	sb.WriteString(title)
	sb.WriteString("\n")
	for _, item := range items {
		sb.WriteString(item)
		sb.WriteString("\n")
	}
}

func fixed4(v float64) string {
	return toFixed(v, 4)
}

// toFixed rounds the exact decimal value of v to the given number of
// decimals, with halves rounded away from zero. Zero is never signed.
func toFixed(v float64, decimals int) string {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return strconv.FormatFloat(v, 'f', decimals, 64)
	}

	sign := ""
	if v == 0 {
		v = 0
	} else if v < 0 {
		sign = "-"
		v = -v
	}

	// 1100 fraction digits is enough to print any float64 exactly
	exact := strconv.FormatFloat(v, 'f', 1100, 64)
	dot := strings.IndexByte(exact, '.')

	digits := []byte(exact[:dot] + exact[dot+1:dot+1+decimals])
	if exact[dot+1+decimals] >= '5' {
		digits = roundUp(digits)
	}

	whole, fraction := digits[:len(digits)-decimals], digits[len(digits)-decimals:]
	if decimals == 0 {
		return sign + string(whole)
	}

	return sign + string(whole) + "." + string(fraction)
}

func roundUp(digits []byte) []byte {
	for i := len(digits) - 1; i >= 0; i-- {
		if digits[i] < '9' {
			digits[i]++
			return digits
		}
		digits[i] = '0'
	}

	return append([]byte{'1'}, digits...)
}
