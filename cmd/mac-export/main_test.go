package main

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/diwise/mac-explorer/internal/pkg/application/report"
	"github.com/matryer/is"
)

func TestExportWritesReport(t *testing.T) {
	is := is.New(t)

	backend := newBackend(`{"vendors":[{"vendor":"Apple","count":3},{"vendor":"Unknown","count":1}],"all_macs":["aa"],"all_ssids":[],"all_hostnames":[]}`)
	defer backend.Close()

	dir := t.TempDir()
	out, err := run("export", "--backend", backend.URL, "-n", "2", "-e", "2", "-s", "1", "-w", "1", "-o", dir)
	is.NoErr(err)

	path := filepath.Join(dir, "box_2.0000,2.0000_1.0000,1.0000.csv")
	is.Equal(strings.TrimSpace(out), path)

	b, err := os.ReadFile(path)
	is.NoErr(err)
	is.True(strings.HasPrefix(string(b), "Vendor,Count,Percentage\n\"Apple\",3,100.00\n"))
}

func TestThatExportWithoutVendorsFails(t *testing.T) {
	is := is.New(t)

	backend := newBackend(`{"vendors":[{"vendor":"Unknown","count":1}]}`)
	defer backend.Close()

	_, err := run("export", "--backend", backend.URL, "-n", "2", "-e", "2", "-s", "1", "-w", "1", "-o", t.TempDir())
	is.True(errors.Is(err, report.ErrNoData))
}

func TestThatExportRequiresBox(t *testing.T) {
	is := is.New(t)

	_, err := run("export", "-n", "2")
	is.True(err != nil)
}

func TestIdentities(t *testing.T) {
	is := is.New(t)

	backend := newBackend("")
	defer backend.Close()

	out, err := run("identities", "--backend", backend.URL)
	is.NoErr(err)
	is.Equal(out, "aa\nbb\n")
}

func run(args ...string) (string, error) {
	cmd := newRootCmd(context.Background())

	out := &bytes.Buffer{}
	cmd.SetOut(out)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs(args)

	err := cmd.Execute()
	return out.String(), err
}

func newBackend(aggregates string) *httptest.Server {
	mux := http.NewServeMux()
	mux.HandleFunc("/vendors_in_box", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(aggregates))
	})
	mux.HandleFunc("/macs", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`["aa","bb"]`))
	})
	return httptest.NewServer(mux)
}
