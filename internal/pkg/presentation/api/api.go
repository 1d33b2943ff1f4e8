package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/diwise/mac-explorer/internal/pkg/application/explorer"
	"github.com/diwise/mac-explorer/internal/pkg/application/region"
	"github.com/diwise/mac-explorer/internal/pkg/application/report"
	"github.com/diwise/mac-explorer/internal/pkg/application/webevents"
	"github.com/diwise/service-chassis/pkg/infrastructure/o11y"
	"github.com/diwise/service-chassis/pkg/infrastructure/o11y/logging"
	"github.com/diwise/service-chassis/pkg/infrastructure/o11y/tracing"
	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel"
)

const SessionParam string = "sessionID"

var tracer = otel.Tracer("mac-explorer/api")

func RegisterHandlers(ctx context.Context, router *chi.Mux, app explorer.App, events webevents.WebEvents) *chi.Mux {

	router.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})

	log := logging.GetFromContext(ctx)

	router.Route("/api/v0", func(r chi.Router) {
		r.Get("/macs", knownIdentitiesHandler(log, app))

		r.Route("/sessions", func(r chi.Router) {
			r.Post("/", createSessionHandler(log, app))

			r.Route("/{"+SessionParam+"}", func(r chi.Router) {
				r.Get("/", getSessionHandler(log, app))
				r.Delete("/", deleteSessionHandler(log, app))
				r.Get("/events", sessionEventsHandler(log, app, events))
				r.Post("/initialize", initializeHandler(log, app))
				r.Post("/regions", drawRegionHandler(log, app))
				r.Post("/identity", lookupIdentityHandler(log, app))
				r.Post("/selection", selectionHandler(log, app))
				r.Get("/export", exportHandler(log, app))
			})
		})
	})

	return router
}

func knownIdentitiesHandler(log zerolog.Logger, app explorer.App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var err error
		defer r.Body.Close()

		ctx, span := tracer.Start(r.Context(), "known-identities")
		defer func() { tracing.RecordAnyErrorAndEndSpan(err, span) }()
		_, ctx, requestLogger := o11y.AddTraceIDToLoggerAndStoreInContext(span, log, ctx)

		macs, err := app.KnownIdentities(ctx)
		if err != nil {
			requestLogger.Error().Err(err).Msg("unable to fetch known mac addresses")
			w.WriteHeader(http.StatusBadGateway)
			return
		}

		writeJSON(requestLogger, w, http.StatusOK, macs)
	}
}

func createSessionHandler(log zerolog.Logger, app explorer.App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		defer r.Body.Close()

		ctx, span := tracer.Start(r.Context(), "create-session")
		defer span.End()
		_, ctx, requestLogger := o11y.AddTraceIDToLoggerAndStoreInContext(span, log, ctx)

		s := app.NewSession(ctx)

		writeJSON(requestLogger, w, http.StatusCreated, struct {
			ID string `json:"id"`
		}{s.ID()})
	}
}

func getSessionHandler(log zerolog.Logger, app explorer.App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var err error
		defer r.Body.Close()

		_, span := tracer.Start(r.Context(), "get-session")
		defer func() { tracing.RecordAnyErrorAndEndSpan(err, span) }()

		s, err := app.Session(chi.URLParam(r, SessionParam))
		if err != nil {
			w.WriteHeader(http.StatusNotFound)
			return
		}

		writeJSON(log, w, http.StatusOK, s.Snapshot())
	}
}

func deleteSessionHandler(log zerolog.Logger, app explorer.App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var err error
		defer r.Body.Close()

		ctx, span := tracer.Start(r.Context(), "delete-session")
		defer func() { tracing.RecordAnyErrorAndEndSpan(err, span) }()
		_, ctx, _ = o11y.AddTraceIDToLoggerAndStoreInContext(span, log, ctx)

		err = app.CloseSession(ctx, chi.URLParam(r, SessionParam))
		if err != nil {
			w.WriteHeader(http.StatusNotFound)
			return
		}

		w.WriteHeader(http.StatusNoContent)
	}
}

func sessionEventsHandler(log zerolog.Logger, app explorer.App, events webevents.WebEvents) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sessionID := chi.URLParam(r, SessionParam)

		if _, err := app.Session(sessionID); err != nil {
			w.WriteHeader(http.StatusNotFound)
			return
		}

		log.Debug().Str("session_id", sessionID).Msg("event stream opened")

		events.Server().ServeHTTP(w, r)
	}
}

func initializeHandler(log zerolog.Logger, app explorer.App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var err error
		defer r.Body.Close()

		ctx, span := tracer.Start(r.Context(), "initialize")
		defer func() { tracing.RecordAnyErrorAndEndSpan(err, span) }()
		_, ctx, requestLogger := o11y.AddTraceIDToLoggerAndStoreInContext(span, log, ctx)

		s, err := app.Session(chi.URLParam(r, SessionParam))
		if err != nil {
			w.WriteHeader(http.StatusNotFound)
			return
		}

		result, err := s.Initialize(ctx)
		if err != nil {
			writeError(requestLogger, w, err, result)
			return
		}

		writeJSON(requestLogger, w, http.StatusOK, result)
	}
}

func drawRegionHandler(log zerolog.Logger, app explorer.App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var err error
		defer r.Body.Close()

		ctx, span := tracer.Start(r.Context(), "draw-region")
		defer func() { tracing.RecordAnyErrorAndEndSpan(err, span) }()
		_, ctx, requestLogger := o11y.AddTraceIDToLoggerAndStoreInContext(span, log, ctx)

		s, err := app.Session(chi.URLParam(r, SessionParam))
		if err != nil {
			w.WriteHeader(http.StatusNotFound)
			return
		}

		var rect region.Rectangle
		err = readJSON(r.Body, &rect)
		if err != nil {
			requestLogger.Error().Err(err).Msg("unable to read region")
			w.WriteHeader(http.StatusBadRequest)
			return
		}

		result, err := s.DrawRegion(ctx, rect)
		if err != nil {
			writeError(requestLogger, w, err, result)
			return
		}

		writeJSON(requestLogger, w, http.StatusOK, result)
	}
}

type identityRequest struct {
	MACAddress string   `json:"mac_address"`
	Lat        *float64 `json:"lat,omitempty"`
	Lon        *float64 `json:"lon,omitempty"`
}

func lookupIdentityHandler(log zerolog.Logger, app explorer.App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var err error
		defer r.Body.Close()

		ctx, span := tracer.Start(r.Context(), "lookup-identity")
		defer func() { tracing.RecordAnyErrorAndEndSpan(err, span) }()
		_, ctx, requestLogger := o11y.AddTraceIDToLoggerAndStoreInContext(span, log, ctx)

		s, err := app.Session(chi.URLParam(r, SessionParam))
		if err != nil {
			w.WriteHeader(http.StatusNotFound)
			return
		}

		req := identityRequest{}
		err = readJSON(r.Body, &req)
		if err != nil {
			requestLogger.Error().Err(err).Msg("unable to read identity")
			w.WriteHeader(http.StatusBadRequest)
			return
		}

		result, err := s.LookupIdentity(ctx, req.MACAddress)
		if err != nil {
			writeError(requestLogger, w, err, result)
			return
		}

		writeJSON(requestLogger, w, http.StatusOK, result)
	}
}

func selectionHandler(log zerolog.Logger, app explorer.App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var err error
		defer r.Body.Close()

		ctx, span := tracer.Start(r.Context(), "select-marker")
		defer func() { tracing.RecordAnyErrorAndEndSpan(err, span) }()
		_, ctx, requestLogger := o11y.AddTraceIDToLoggerAndStoreInContext(span, log, ctx)

		s, err := app.Session(chi.URLParam(r, SessionParam))
		if err != nil {
			w.WriteHeader(http.StatusNotFound)
			return
		}

		req := identityRequest{}
		err = readJSON(r.Body, &req)
		if err != nil {
			requestLogger.Error().Err(err).Msg("unable to read selection")
			w.WriteHeader(http.StatusBadRequest)
			return
		}

		var content any
		if req.MACAddress == "" && req.Lat != nil && req.Lon != nil {
			content, err = s.SelectAt(ctx, *req.Lat, *req.Lon)
		} else {
			content, err = s.SelectMarker(ctx, req.MACAddress)
		}

		if err != nil {
			writeError(requestLogger, w, err, nil)
			return
		}

		writeJSON(requestLogger, w, http.StatusOK, content)
	}
}

func exportHandler(log zerolog.Logger, app explorer.App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var err error
		defer r.Body.Close()

		ctx, span := tracer.Start(r.Context(), "export")
		defer func() { tracing.RecordAnyErrorAndEndSpan(err, span) }()
		_, ctx, requestLogger := o11y.AddTraceIDToLoggerAndStoreInContext(span, log, ctx)

		s, err := app.Session(chi.URLParam(r, SessionParam))
		if err != nil {
			w.WriteHeader(http.StatusNotFound)
			return
		}

		rep, err := s.Export(ctx)
		if err != nil {
			writeError(requestLogger, w, err, nil)
			return
		}

		w.Header().Add("Content-Type", report.ContentType)
		w.Header().Add("Content-Disposition", fmt.Sprintf("attachment; filename=\"%s\"", rep.Filename))
		w.WriteHeader(http.StatusOK)

		if _, err = rep.WriteTo(w); err != nil {
			requestLogger.Error().Err(err).Msgf("could not send report %s", rep.Filename)
		}
	}
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, explorer.ErrSessionNotFound):
		return http.StatusNotFound
	case errors.Is(err, explorer.ErrEmptyIdentity):
		return http.StatusBadRequest
	case errors.Is(err, explorer.ErrSuperseded):
		return http.StatusConflict
	case errors.Is(err, report.ErrNoRegion):
		return http.StatusPreconditionFailed
	case errors.Is(err, report.ErrNoData), errors.Is(err, explorer.ErrNoMarkers):
		return http.StatusNotFound
	default:
		return http.StatusBadGateway
	}
}

// writeError responds with the notice raised by err, or with the partial
// result when the request was replaced by a newer one.
func writeError(log zerolog.Logger, w http.ResponseWriter, err error, result any) {
	code := statusFor(err)

	if notice, ok := explorer.NoticeFrom(err); ok {
		log.Debug().Err(err).Msgf("responding with notice %s", notice.Kind)
		writeJSON(log, w, code, notice)
		return
	}

	if code == http.StatusConflict && result != nil {
		writeJSON(log, w, code, result)
		return
	}

	if code == http.StatusBadGateway {
		log.Error().Err(err).Msg("request failed")
	}

	w.WriteHeader(code)
}

func readJSON(body io.Reader, v any) error {
	b, err := io.ReadAll(body)
	if err != nil {
		return err
	}

	return json.Unmarshal(b, v)
}

func writeJSON(log zerolog.Logger, w http.ResponseWriter, code int, v any) {
	b, err := json.Marshal(v)
	if err != nil {
		log.Error().Err(err).Msg("unable to marshal response")
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	w.Header().Add("Content-Type", "application/json")
	w.WriteHeader(code)
	w.Write(b)
}
