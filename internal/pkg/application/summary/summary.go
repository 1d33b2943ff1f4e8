package summary

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
	"sync"

	"github.com/diwise/mac-explorer/pkg/types"
)

const NoRelationships string = "No relationships found for this MAC."

type Block struct {
	Relationship string   `json:"relationship"`
	Labels       []string `json:"labels"`
	Properties   string   `json:"properties"`
}

type Content struct {
	Identity    string  `json:"mac"`
	Blocks      []Block `json:"blocks"`
	Placeholder string  `json:"placeholder,omitempty"`
}

func NewContent(identity string, entries []types.SummaryEntry) Content {
	c := Content{
		Identity: identity,
		Blocks:   make([]Block, 0, len(entries)),
	}

	if len(entries) == 0 {
		c.Placeholder = NoRelationships
		return c
	}

	for _, e := range entries {
		labels := make([]string, len(e.Labels))
		copy(labels, e.Labels)

		c.Blocks = append(c.Blocks, Block{
			Relationship: e.Relationship,
			Labels:       labels,
			Properties:   indent(e.Properties),
		})
	}

	return c
}

func (c Content) Text() string {
	if len(c.Blocks) == 0 {
		return c.Placeholder
	}

	sb := strings.Builder{}
	for i, b := range c.Blocks {
		if i > 0 {
			sb.WriteString("\n")
		}
		sb.WriteString(fmt.Sprintf("%s → %s\n", b.Relationship, strings.Join(b.Labels, ", ")))
		sb.WriteString(b.Properties)
		sb.WriteString("\n")
	}

	return sb.String()
}

// Panel holds the detail shown for one identity. Every Show call replaces
// the previous content completely.
type Panel struct {
	mu      sync.RWMutex
	content Content
}

func NewPanel() *Panel {
	return &Panel{
		content: Content{Blocks: []Block{}},
	}
}

func (p *Panel) Show(identity string, entries []types.SummaryEntry) Content {
	c := NewContent(identity, entries)

	p.mu.Lock()
	p.content = c
	p.mu.Unlock()

	return c
}

func (p *Panel) Content() Content {
	p.mu.RLock()
	defer p.mu.RUnlock()

	return p.content
}

// indent pretty prints the properties with keys in the order the backend
// sent them.
func indent(properties json.RawMessage) string {
	raw := bytes.TrimSpace(properties)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return "{}"
	}

	buf := &bytes.Buffer{}
	if err := json.Indent(buf, raw, "", "  "); err != nil {
		return string(raw)
	}

	return buf.String()
}
