package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/diwise/mac-explorer/pkg/types"
	"github.com/diwise/service-chassis/pkg/infrastructure/o11y/logging"
	"github.com/diwise/service-chassis/pkg/infrastructure/o11y/tracing"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.opentelemetry.io/otel"
	"golang.org/x/sys/unix"
)

var (
	ErrTransport          = errors.New("backend transport failure")
	ErrBackendUnavailable = errors.New("backend unavailable")
	ErrUnexpectedStatus   = errors.New("unexpected response status")
	ErrDecode             = errors.New("failed to decode backend response")
	ErrNotFound           = errors.New("not found")
)

//go:generate moq -rm -out backendclient_mock.go . BackendClient

// BackendClient talks to the graph/location store that owns all sightings.
type BackendClient interface {
	KnownIdentities(ctx context.Context) ([]string, error)
	QueryRegion(ctx context.Context, box types.GeoBox) ([]types.LocationRecord, error)
	QueryIdentity(ctx context.Context, mac string) ([]types.LocationRecord, error)
	QuerySummary(ctx context.Context, mac string) ([]types.SummaryEntry, error)
	QueryAggregates(ctx context.Context, box types.GeoBox) (types.ExportBundle, error)
}

type backendClient struct {
	url        string
	httpClient http.Client
}

var tracer = otel.Tracer("mac-explorer/client")

func New(backendUrl string) BackendClient {
	return &backendClient{
		url: strings.TrimSuffix(backendUrl, "/"),
		httpClient: http.Client{
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		},
	}
}

type identityRequest struct {
	MacAddress string `json:"mac_address"`
}

type location struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

func (c *backendClient) KnownIdentities(ctx context.Context) ([]string, error) {
	var err error
	ctx, span := tracer.Start(ctx, "known-identities")
	defer func() { tracing.RecordAnyErrorAndEndSpan(err, span) }()

	identities := []string{}
	_, err = c.do(ctx, http.MethodGet, "/macs", nil, &identities)
	if err != nil {
		return nil, err
	}

	return identities, nil
}

func (c *backendClient) QueryRegion(ctx context.Context, box types.GeoBox) ([]types.LocationRecord, error) {
	var err error
	ctx, span := tracer.Start(ctx, "query-region")
	defer func() { tracing.RecordAnyErrorAndEndSpan(err, span) }()

	log := logging.GetFromContext(ctx)
	log.Debug().Msgf("querying sightings within %+v", box)

	records := []types.LocationRecord{}
	_, err = c.do(ctx, http.MethodPost, "/query", box, &records)
	if err != nil {
		return nil, err
	}

	return records, nil
}

func (c *backendClient) QueryIdentity(ctx context.Context, mac string) ([]types.LocationRecord, error) {
	var err error
	ctx, span := tracer.Start(ctx, "query-identity")
	defer func() { tracing.RecordAnyErrorAndEndSpan(err, span) }()

	locations := []location{}
	code, err := c.do(ctx, http.MethodPost, "/mac_location", identityRequest{MacAddress: mac}, &locations)
	if code == http.StatusNotFound {
		err = fmt.Errorf("no locations for %s: %w", mac, ErrNotFound)
		return nil, err
	}
	if err != nil {
		return nil, err
	}

	if len(locations) == 0 {
		err = fmt.Errorf("backend returned an empty list of locations for %s: %w", mac, ErrNotFound)
		return nil, err
	}

	records := make([]types.LocationRecord, 0, len(locations))
	for _, l := range locations {
		records = append(records, types.LocationRecord{Identity: mac, Lat: l.Lat, Lon: l.Lon})
	}

	return records, nil
}

func (c *backendClient) QuerySummary(ctx context.Context, mac string) ([]types.SummaryEntry, error) {
	var err error
	ctx, span := tracer.Start(ctx, "query-summary")
	defer func() { tracing.RecordAnyErrorAndEndSpan(err, span) }()

	entries := []types.SummaryEntry{}
	_, err = c.do(ctx, http.MethodPost, "/mac_summary", identityRequest{MacAddress: mac}, &entries)
	if err != nil {
		return nil, err
	}

	return entries, nil
}

func (c *backendClient) QueryAggregates(ctx context.Context, box types.GeoBox) (types.ExportBundle, error) {
	var err error
	ctx, span := tracer.Start(ctx, "query-aggregates")
	defer func() { tracing.RecordAnyErrorAndEndSpan(err, span) }()

	bundle := types.ExportBundle{}
	_, err = c.do(ctx, http.MethodPost, "/vendors_in_box", box, &bundle)
	if err != nil {
		return types.ExportBundle{}, err
	}

	return bundle, nil
}

// do sends body as json (if not nil) and decodes a 200 response into result.
// The status code is returned whenever a response was received.
func (c *backendClient) do(ctx context.Context, method, path string, body any, result any) (int, error) {
	log := logging.GetFromContext(ctx)

	var reqBody io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return 0, fmt.Errorf("failed to marshal request body: %w", err)
		}
		reqBody = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.url+path, reqBody)
	if err != nil {
		return 0, fmt.Errorf("failed to create http request: %w", err)
	}

	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if errors.Is(err, unix.ECONNREFUSED) {
			return 0, fmt.Errorf("%w: %w: %w", ErrTransport, ErrBackendUnavailable, err)
		}
		return 0, fmt.Errorf("%w: %w", ErrTransport, err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return resp.StatusCode, fmt.Errorf("%w: failed to read response body: %w", ErrTransport, err)
	}

	if resp.StatusCode != http.StatusOK {
		log.Error().Msgf("request %s %s failed with status code %d", method, path, resp.StatusCode)
		return resp.StatusCode, fmt.Errorf("%w: %s returned %d", ErrUnexpectedStatus, path, resp.StatusCode)
	}

	err = json.Unmarshal(respBody, result)
	if err != nil {
		return resp.StatusCode, fmt.Errorf("%w: %w", ErrDecode, err)
	}

	return resp.StatusCode, nil
}
