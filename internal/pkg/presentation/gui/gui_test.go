package gui

import (
	"context"
	"errors"
	"html/template"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/diwise/mac-explorer/internal/pkg/application/explorer"
	"github.com/diwise/mac-explorer/pkg/client"
	"github.com/go-chi/chi/v5"
	"github.com/matryer/is"
	"github.com/rs/zerolog"
)

func TestIndexListsKnownIdentities(t *testing.T) {
	is := is.New(t)

	router := setupTest(t, func(ctx context.Context) ([]string, error) {
		return []string{"aa:bb", "cc:dd"}, nil
	}, "")

	code, body := get(router, "/")
	is.Equal(code, http.StatusOK)
	is.True(strings.Contains(body, `<option value="aa:bb">`))
	is.True(strings.Contains(body, `<option value="cc:dd">`))
}

func TestThatIndexRendersWithoutBackend(t *testing.T) {
	is := is.New(t)

	router := setupTest(t, func(ctx context.Context) ([]string, error) {
		return nil, client.ErrBackendUnavailable
	}, "")

	code, body := get(router, "/")
	is.Equal(code, http.StatusOK)
	is.True(strings.Contains(body, "<title>MAC Explorer</title>"))
}

func TestStaticAssets(t *testing.T) {
	is := is.New(t)

	dir := t.TempDir()
	is.NoErr(os.WriteFile(filepath.Join(dir, "map.js"), []byte("console.log('map')"), 0644))

	router := setupTest(t, func(ctx context.Context) ([]string, error) {
		return nil, errors.New("unused")
	}, dir)

	code, body := get(router, "/static/map.js")
	is.Equal(code, http.StatusOK)
	is.Equal(body, "console.log('map')")
}

func TestThatFailedRenderRespondsWithServerError(t *testing.T) {
	is := is.New(t)

	page := template.Must(template.New("broken.html").Parse(`<p>{{ .Missing }}</p>`))

	w := httptest.NewRecorder()
	renderPage(zerolog.Nop(), w, page, struct{}{})

	is.Equal(w.Code, http.StatusInternalServerError)
	is.Equal(w.Body.Len(), 0)
	is.Equal(w.Header().Get("Content-Type"), "")
}

func setupTest(t *testing.T, known func(ctx context.Context) ([]string, error), assetsDir string) *chi.Mux {
	app, err := explorer.New(&client.BackendClientMock{KnownIdentitiesFunc: known}, nil, nil)
	if err != nil {
		t.Fatal(err)
	}

	return RegisterHandlers(zerolog.Nop(), chi.NewRouter(), app, assetsDir)
}

func get(router http.Handler, path string) (int, string) {
	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))

	res := w.Result()
	defer res.Body.Close()
	b, _ := io.ReadAll(res.Body)

	return res.StatusCode, string(b)
}
