package gui

import (
	"bytes"
	"html/template"
	"net/http"
	"strings"

	"github.com/diwise/mac-explorer/internal/pkg/application/explorer"
	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel"
)

var tracer = otel.Tracer("mac-explorer/gui")

var index = template.Must(template.New("index.html").Parse(indexTemplate))

// RegisterHandlers serves the map page and, if assetsDir is set, the scripts
// and styles it loads from /static/.
func RegisterHandlers(log zerolog.Logger, router *chi.Mux, app explorer.App, assetsDir string) *chi.Mux {

	if assetsDir != "" {
		FileServer(router, "/static", http.Dir(assetsDir))
	}

	router.Get("/", NewIndexHandler(log, app))

	return router
}

func NewIndexHandler(log zerolog.Logger, app explorer.App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "index")
		defer span.End()

		macs, err := app.KnownIdentities(ctx)
		if err != nil {
			// the page still works without autocomplete
			log.Warn().Err(err).Msg("could not fetch known mac addresses")
			macs = []string{}
		}

		data := struct {
			Title string
			MACs  []string
		}{
			Title: "MAC Explorer",
			MACs:  macs,
		}

		renderPage(log, w, index, data)
	}
}

func renderPage(log zerolog.Logger, w http.ResponseWriter, page *template.Template, data any) {
	buf := &bytes.Buffer{}

	if err := page.Execute(buf, data); err != nil {
		log.Error().Err(err).Msgf("could not render %s", page.Name())
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	w.Header().Add("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	w.Write(buf.Bytes())
}

func FileServer(r chi.Router, path string, root http.FileSystem) {
	if strings.ContainsAny(path, "{}*") {
		panic("FileServer does not permit any URL parameters.")
	}

	if path != "/" && path[len(path)-1] != '/' {
		r.Get(path, http.RedirectHandler(path+"/", http.StatusMovedPermanently).ServeHTTP)
		path += "/"
	}
	path += "*"

	r.Get(path, func(w http.ResponseWriter, r *http.Request) {
		rctx := chi.RouteContext(r.Context())
		pathPrefix := strings.TrimSuffix(rctx.RoutePattern(), "/*")
		fs := http.StripPrefix(pathPrefix, http.FileServer(root))
		fs.ServeHTTP(w, r)
	})
}

const indexTemplate string = `<!DOCTYPE html>
<html>
<head>
  <meta charset="utf-8">
  <title>{{.Title}}</title>
  <link rel="stylesheet" href="/static/map.css">
</head>
<body>
  <div id="controls">
    <input id="mac" list="known-macs" placeholder="MAC address">
    <datalist id="known-macs">{{range .MACs}}
      <option value="{{.}}">{{end}}
    </datalist>
    <button id="lookup">Look up</button>
    <button id="export">Export</button>
    <span id="loading">Loading sightings...</span>
  </div>
  <div id="map"></div>
  <pre id="summary"></pre>
  <script src="/static/map.js"></script>
</body>
</html>
`
