package explorer

import (
	"io"

	"github.com/diwise/mac-explorer/internal/pkg/application/colors"
	"github.com/diwise/mac-explorer/internal/pkg/application/render"
	yaml "gopkg.in/yaml.v2"
)

type ViewportConfig struct {
	Padding *int `yaml:"padding"`
}

type Config struct {
	Palette  []string       `yaml:"palette"`
	Viewport ViewportConfig `yaml:"viewport"`
}

func LoadConfiguration(data io.Reader) (*Config, error) {
	buf, err := io.ReadAll(data)
	if err != nil {
		return nil, err
	}

	cfg := Config{}
	if err := yaml.Unmarshal(buf, &cfg); err == nil {
		return &cfg, nil
	} else {
		return nil, err
	}
}

func (c *Config) palette() (colors.Palette, error) {
	if c == nil || len(c.Palette) == 0 {
		return colors.DefaultPalette, nil
	}
	return colors.NewPalette(c.Palette...)
}

func (c *Config) padding() int {
	if c == nil || c.Viewport.Padding == nil {
		return render.DefaultPadding
	}
	return *c.Viewport.Padding
}
