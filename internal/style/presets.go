package style

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

// Preset is a named, reusable style stored on disk as TOML overrides over
// the defaults.
type Preset struct {
	Name      string    `toml:"name"`
	Overrides Overrides `toml:"style"`
}

// Resolve applies the preset to the default style.
func (p Preset) Resolve() (Config, error) {
	cfg, err := Apply(Default(), p.Overrides)
	if err != nil {
		return Config{}, fmt.Errorf("preset %q: %w", p.Name, err)
	}
	return cfg, nil
}

func presetPath(dir, name string) string {
	return filepath.Join(dir, name+".toml")
}

// LoadPreset reads a named preset from the presets directory.
func LoadPreset(dir, name string) (Preset, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return Preset{}, fmt.Errorf("preset name is required")
	}
	data, err := os.ReadFile(presetPath(dir, name))
	if err != nil {
		return Preset{}, fmt.Errorf("read preset: %w", err)
	}
	var preset Preset
	if err := toml.Unmarshal(data, &preset); err != nil {
		return Preset{}, fmt.Errorf("parse preset %q: %w", name, err)
	}
	if preset.Name == "" {
		preset.Name = name
	}
	// Fail on bad values now instead of at render time.
	if _, err := preset.Resolve(); err != nil {
		return Preset{}, err
	}
	return preset, nil
}

// SavePreset writes a preset to the presets directory, creating it as
// needed.
func SavePreset(dir string, preset Preset) error {
	if strings.TrimSpace(preset.Name) == "" {
		return fmt.Errorf("preset name is required")
	}
	if _, err := preset.Resolve(); err != nil {
		return err
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create presets directory: %w", err)
	}
	data, err := toml.Marshal(preset)
	if err != nil {
		return fmt.Errorf("encode preset: %w", err)
	}
	if err := os.WriteFile(presetPath(dir, preset.Name), data, 0o644); err != nil {
		return fmt.Errorf("write preset: %w", err)
	}
	return nil
}

// ListPresets returns the sorted names of all presets in the directory. A
// missing directory yields an empty list.
func ListPresets(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("read presets directory: %w", err)
	}
	var names []string
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".toml") {
			continue
		}
		names = append(names, strings.TrimSuffix(entry.Name(), ".toml"))
	}
	sort.Strings(names)
	return names, nil
}
