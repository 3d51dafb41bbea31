// Package theme loads overlay styling from a YAML file and watches it for
// changes so a running program can restyle the overlay live.
package theme

import (
	"fmt"
	"os"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/goccy/go-yaml"
	colorful "github.com/lucasb-eyer/go-colorful"

	"github.com/chatter/keycast/internal/overlay"
)

// file is the on-disk theme shape. Pointer fields distinguish "absent"
// from zero so partial themes only override what they mention.
type file struct {
	Hold      string  `yaml:"hold"`
	Fade      string  `yaml:"fade"`
	Curve     string  `yaml:"curve"`
	Separator *string `yaml:"separator"`
	Align     string  `yaml:"align"`
	Offset    *int    `yaml:"offset"`

	Chip struct {
		Foreground string `yaml:"foreground"`
		Background string `yaml:"background"`
		Bold       *bool  `yaml:"bold"`
		Padding    *int   `yaml:"padding"`
		Margin     *int   `yaml:"margin"`
	} `yaml:"chip"`
}

// Load reads a theme file and merges it over the default styles. An empty
// path or a missing file yields the defaults unchanged; malformed values
// are errors.
func Load(path string) (overlay.Styles, error) {
	styles := overlay.DefaultStyles()

	if path == "" {
		return styles, nil
	}

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return styles, nil
	}
	if err != nil {
		return styles, fmt.Errorf("reading theme %s: %w", path, err)
	}

	var f file
	if err := yaml.Unmarshal(data, &f); err != nil {
		return styles, fmt.Errorf("parsing theme %s: %w", path, err)
	}

	if err := f.apply(&styles); err != nil {
		return overlay.DefaultStyles(), fmt.Errorf("theme %s: %w", path, err)
	}

	return styles, nil
}

func (f *file) apply(styles *overlay.Styles) error {
	if f.Hold != "" {
		d, err := parseDuration("hold", f.Hold)
		if err != nil {
			return err
		}
		styles.Hold = d
	}

	if f.Fade != "" {
		d, err := parseDuration("fade", f.Fade)
		if err != nil {
			return err
		}
		styles.Fade = d
	}

	switch f.Curve {
	case "":
	case "ease-out":
		styles.Curve = overlay.EaseOutCubic
	case "linear":
		styles.Curve = overlay.EaseLinear
	default:
		return fmt.Errorf("unknown curve %q (use ease-out or linear)", f.Curve)
	}

	switch f.Align {
	case "":
	case "left":
		styles.Align = lipgloss.Left
	case "center":
		styles.Align = lipgloss.Center
	case "right":
		styles.Align = lipgloss.Right
	default:
		return fmt.Errorf("unknown align %q (use left, center or right)", f.Align)
	}

	if f.Separator != nil {
		styles.Separator = *f.Separator
	}
	if f.Offset != nil {
		if *f.Offset < 0 {
			return fmt.Errorf("offset must not be negative, got %d", *f.Offset)
		}
		styles.Offset = *f.Offset
	}

	if f.Chip.Foreground != "" {
		if _, err := colorful.Hex(f.Chip.Foreground); err != nil {
			return fmt.Errorf("chip foreground %q: %w", f.Chip.Foreground, err)
		}
		styles.Foreground = f.Chip.Foreground
	}
	if f.Chip.Background != "" {
		if _, err := colorful.Hex(f.Chip.Background); err != nil {
			return fmt.Errorf("chip background %q: %w", f.Chip.Background, err)
		}
		styles.Background = f.Chip.Background
	}

	if f.Chip.Bold != nil {
		styles.Bold = *f.Chip.Bold
	}
	if f.Chip.Padding != nil {
		styles.Padding = *f.Chip.Padding
	}
	if f.Chip.Margin != nil {
		styles.Margin = *f.Chip.Margin
	}

	return nil
}

func parseDuration(name, value string) (time.Duration, error) {
	d, err := time.ParseDuration(value)
	if err != nil {
		return 0, fmt.Errorf("parsing %s duration %q: %w", name, value, err)
	}
	if d <= 0 {
		return 0, fmt.Errorf("%s duration must be positive, got %s", name, d)
	}
	return d, nil
}
