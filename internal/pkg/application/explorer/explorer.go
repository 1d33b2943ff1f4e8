package explorer

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/diwise/mac-explorer/internal/pkg/application/colors"
	"github.com/diwise/mac-explorer/pkg/client"
	"github.com/diwise/service-chassis/pkg/infrastructure/o11y/logging"
	"github.com/google/uuid"
)

var ErrSessionNotFound = errors.New("session not found")

// Publisher pushes session events to the map page.
type Publisher interface {
	Publish(channel, event string, data any) error
	Close(channel string)
}

type App interface {
	NewSession(ctx context.Context) *Session
	Session(id string) (*Session, error)
	CloseSession(ctx context.Context, id string) error
	KnownIdentities(ctx context.Context) ([]string, error)
}

type app struct {
	backend client.BackendClient
	events  Publisher
	palette colors.Palette
	padding int

	mu sync.RWMutex
	// TODO: evict sessions whose page went away without deleting them
	sessions map[string]*Session
}

func New(backend client.BackendClient, events Publisher, cfg *Config) (App, error) {
	palette, err := cfg.palette()
	if err != nil {
		return nil, fmt.Errorf("invalid palette configuration: %w", err)
	}

	return &app{
		backend:  backend,
		events:   events,
		palette:  palette,
		padding:  cfg.padding(),
		sessions: map[string]*Session{},
	}, nil
}

func (a *app) NewSession(ctx context.Context) *Session {
	s := newSession(uuid.NewString(), a.backend, a.events, a.palette, a.padding)

	a.mu.Lock()
	a.sessions[s.ID()] = s
	a.mu.Unlock()

	log := logging.GetFromContext(ctx)
	log.Info().Str("session_id", s.ID()).Msg("session created")

	return s
}

func (a *app) Session(id string) (*Session, error) {
	a.mu.RLock()
	defer a.mu.RUnlock()

	s, ok := a.sessions[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrSessionNotFound, id)
	}

	return s, nil
}

func (a *app) CloseSession(ctx context.Context, id string) error {
	a.mu.Lock()
	_, ok := a.sessions[id]
	delete(a.sessions, id)
	a.mu.Unlock()

	if !ok {
		return fmt.Errorf("%w: %s", ErrSessionNotFound, id)
	}

	if a.events != nil {
		a.events.Close(id)
	}

	log := logging.GetFromContext(ctx)
	log.Info().Str("session_id", id).Msg("session closed")

	return nil
}

func (a *app) KnownIdentities(ctx context.Context) ([]string, error) {
	return a.backend.KnownIdentities(ctx)
}
