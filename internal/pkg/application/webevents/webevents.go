package webevents

import (
	"encoding/json"
	"fmt"
	"net/http"

	gosse "github.com/alexandrevicenzi/go-sse"
	"github.com/go-chi/chi/v5"
)

// WebEvents streams session events to the map page. Every session gets its
// own channel, named after the session id in the request path.
type WebEvents interface {
	Server() *gosse.Server
	Shutdown()
	Publish(channel, event string, data any) error
	Close(channel string)
}

type webEvents struct {
	s *gosse.Server
}

func New(sessionParam string) WebEvents {
	return &webEvents{
		s: gosse.NewServer(&gosse.Options{
			ChannelNameFunc: func(r *http.Request) string {
				return chi.URLParam(r, sessionParam)
			},
		}),
	}
}

func (we *webEvents) Server() *gosse.Server {
	return we.s
}

func (we *webEvents) Shutdown() {
	we.s.Shutdown()
}

func (we *webEvents) Publish(channel, event string, data any) error {
	b, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("failed to marshal %s event: %w", event, err)
	}

	if !we.s.HasChannel(channel) {
		return nil
	}

	message := gosse.NewMessage("", string(b), event)
	we.s.SendMessage(channel, message)

	return nil
}

func (we *webEvents) Close(channel string) {
	if we.s.HasChannel(channel) {
		we.s.CloseChannel(channel)
	}
}
