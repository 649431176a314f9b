// Package config loads and resolves the optional prism.yaml project
// configuration.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/mod/modfile"
	"golang.org/x/mod/module"
	"gopkg.in/yaml.v3"
)

// Config represents the optional prism.yaml configuration.
type Config struct {
	App    AppConfig    `yaml:"app"`
	Window WindowConfig `yaml:"window"`
}

// AppConfig contains application metadata.
type AppConfig struct {
	Name string `yaml:"name,omitempty"`
	ID   string `yaml:"id,omitempty"`
}

// WindowConfig contains the main window defaults applied at startup.
type WindowConfig struct {
	Title      string  `yaml:"title,omitempty"`
	Width      float64 `yaml:"width,omitempty"`
	Height     float64 `yaml:"height,omitempty"`
	Resizable  *bool   `yaml:"resizable,omitempty"`
	Background string  `yaml:"background,omitempty"`
}

// Resolved contains resolved configuration values with defaults applied.
type Resolved struct {
	Root       string
	ModulePath string
	AppName    string
	AppID      string

	WindowTitle  string
	WindowWidth  float64
	WindowHeight float64
	Resizable    bool
	// Background is the window clear color as 0xAARRGGBB.
	Background uint32
}

// Defaults for window attributes when prism.yaml leaves them unset.
const (
	DefaultWindowWidth  = 1024
	DefaultWindowHeight = 768
	DefaultBackground   = 0xFFFFFFFF
)

// LoadOptional reads prism.yaml if present.
func LoadOptional(dir string) (*Config, error) {
	path := filepath.Join(dir, "prism.yaml")
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return &Config{}, nil
		}
		return nil, fmt.Errorf("failed to read prism.yaml: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse prism.yaml: %w", err)
	}

	return &cfg, nil
}

// Resolve loads prism.yaml (if present) and resolves defaults from the
// enclosing Go module.
func Resolve(dir string) (*Resolved, error) {
	modulePath, err := modulePath(dir)
	if err != nil {
		return nil, err
	}

	cfg, err := LoadOptional(dir)
	if err != nil {
		return nil, err
	}

	appName := strings.TrimSpace(cfg.App.Name)
	if appName == "" {
		appName = defaultAppName(modulePath, dir)
	}

	appID := strings.TrimSpace(cfg.App.ID)
	if appID == "" {
		appID = defaultAppID(modulePath, appName)
	}

	title := strings.TrimSpace(cfg.Window.Title)
	if title == "" {
		title = appName
	}

	width := cfg.Window.Width
	if width <= 0 {
		width = DefaultWindowWidth
	}
	height := cfg.Window.Height
	if height <= 0 {
		height = DefaultWindowHeight
	}

	resizable := true
	if cfg.Window.Resizable != nil {
		resizable = *cfg.Window.Resizable
	}

	background, err := parseBackground(cfg.Window.Background)
	if err != nil {
		return nil, err
	}

	return &Resolved{
		Root:         dir,
		ModulePath:   modulePath,
		AppName:      appName,
		AppID:        appID,
		WindowTitle:  title,
		WindowWidth:  width,
		WindowHeight: height,
		Resizable:    resizable,
		Background:   background,
	}, nil
}

// FindProjectRoot walks up from the current directory to find go.mod.
func FindProjectRoot() (string, error) {
	dir, err := os.Getwd()
	if err != nil {
		return "", err
	}

	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir, nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return "", fmt.Errorf("not in a Go module (no go.mod found)")
		}
		dir = parent
	}
}

func modulePath(dir string) (string, error) {
	data, err := os.ReadFile(filepath.Join(dir, "go.mod"))
	if err != nil {
		return "", fmt.Errorf("failed to read go.mod: %w", err)
	}
	path := modfile.ModulePath(data)
	if path == "" {
		return "", fmt.Errorf("could not determine module path from go.mod")
	}
	return path, nil
}

func defaultAppName(modulePath, dir string) string {
	base := filepath.Base(dir)
	modName, _, ok := module.SplitPathVersion(modulePath)
	if ok {
		parts := strings.Split(modName, "/")
		if len(parts) > 0 {
			base = parts[len(parts)-1]
		}
	}
	if base == "" {
		return "prism_app"
	}
	return base
}

func defaultAppID(modulePath, appName string) string {
	parts := strings.Split(modulePath, "/")
	if len(parts) < 2 || !strings.Contains(parts[0], ".") {
		return fmt.Sprintf("com.example.%s", sanitizeSegment(appName))
	}

	host := strings.Split(parts[0], ".")
	for i, j := 0, len(host)-1; i < j; i, j = i+1, j-1 {
		host[i], host[j] = host[j], host[i]
	}

	var segments []string
	for _, p := range append(host, parts[1:]...) {
		if p == "" {
			continue
		}
		segments = append(segments, sanitizeSegment(p))
	}

	return strings.Join(segments, ".")
}

func sanitizeSegment(segment string) string {
	segment = strings.TrimSpace(segment)

	var out []rune
	for _, r := range segment {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			out = append(out, r)
		case r >= 'A' && r <= 'Z':
			out = append(out, r+('a'-'A'))
		}
	}

	if len(out) == 0 {
		return "app"
	}
	return string(out)
}

// parseBackground accepts "#RRGGBB" or "#AARRGGBB". Empty input resolves
// to the default opaque white.
func parseBackground(s string) (uint32, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return DefaultBackground, nil
	}
	hex := strings.TrimPrefix(s, "#")
	if len(hex) != 6 && len(hex) != 8 {
		return 0, fmt.Errorf("invalid background color %q: want #RRGGBB or #AARRGGBB", s)
	}

	var value uint32
	for _, r := range hex {
		var digit uint32
		switch {
		case r >= '0' && r <= '9':
			digit = uint32(r - '0')
		case r >= 'a' && r <= 'f':
			digit = uint32(r-'a') + 10
		case r >= 'A' && r <= 'F':
			digit = uint32(r-'A') + 10
		default:
			return 0, fmt.Errorf("invalid background color %q: bad hex digit %q", s, r)
		}
		value = value<<4 | digit
	}
	if len(hex) == 6 {
		value |= 0xFF000000
	}
	return value, nil
}
