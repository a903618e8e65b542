// Package config loads gsearch settings from layered JSONC files.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/tailscale/hujson"

	"github.com/calvinalkan/gsearch/internal/recent"
)

// Config holds all configuration options.
type Config struct {
	// From config files (serialized)
	RecentFile string `json:"recent_file,omitempty"`
	Browser    string `json:"browser,omitempty"`
	MaxRecent  int    `json:"max_recent,omitempty"`

	// Resolved (computed, not serialized)
	EffectiveCwd  string `json:"-"` // Absolute working directory (from -C flag or os.Getwd)
	RecentFileAbs string `json:"-"` // Absolute path to the recent-queries file

	// Sources tracks which config files were loaded (for diagnostics)
	Sources Sources `json:"-"`
}

// Sources tracks which config files were loaded.
type Sources struct {
	Global  string // Path to global config if loaded, empty otherwise
	Project string // Path to project config if loaded, empty otherwise
}

// FileName is the project config file name.
const FileName = ".gsearch.json"

// Default returns the default configuration. RecentFile stays empty until
// Load picks a location from the environment.
func Default() Config {
	return Config{
		MaxRecent: recent.MaxEntries,
	}
}

// globalPath returns $XDG_CONFIG_HOME/gsearch/config.json, or
// ~/.config/gsearch/config.json, or "" when neither can be determined.
func globalPath(env map[string]string) string {
	if xdg := env["XDG_CONFIG_HOME"]; xdg != "" {
		return filepath.Join(xdg, "gsearch", "config.json")
	}

	if home := env["HOME"]; home != "" {
		return filepath.Join(home, ".config", "gsearch", "config.json")
	}

	return ""
}

// defaultRecentFile prefers the XDG state directory and falls back to a
// dotfile in the working directory.
func defaultRecentFile(env map[string]string, workDir string) string {
	if xdg := env["XDG_STATE_HOME"]; xdg != "" {
		return filepath.Join(xdg, "gsearch", "recent.ini")
	}

	if home := env["HOME"]; home != "" {
		return filepath.Join(home, ".local", "state", "gsearch", "recent.ini")
	}

	return filepath.Join(workDir, ".gsearch-recent.ini")
}

// LoadInput holds the inputs for Load.
type LoadInput struct {
	WorkDirOverride    string            // -C/--cwd flag value; if empty, os.Getwd() is used
	ConfigPath         string            // -c/--config flag value
	RecentFileOverride string            // --recent-file flag value; empty means no override
	Env                map[string]string // environment variables
}

// Load resolves configuration with the following precedence (highest wins):
// 1. Defaults
// 2. Global user config
// 3. Project config (.gsearch.json), or the explicit -c file
// 4. CLI overrides.
func Load(input LoadInput) (Config, error) {
	workDir := input.WorkDirOverride
	if workDir == "" {
		var err error

		workDir, err = os.Getwd()
		if err != nil {
			return Config{}, fmt.Errorf("cannot get working directory: %w", err)
		}
	}

	cfg := Default()

	globalCfg, gPath, err := loadGlobal(input.Env)
	if err != nil {
		return Config{}, err
	}

	cfg.Sources.Global = gPath
	cfg = merge(cfg, globalCfg)

	projectCfg, pPath, err := loadProject(workDir, input.ConfigPath)
	if err != nil {
		return Config{}, err
	}

	cfg.Sources.Project = pPath
	cfg = merge(cfg, projectCfg)

	if input.RecentFileOverride != "" {
		cfg.RecentFile = input.RecentFileOverride
	}

	if err := validate(cfg); err != nil {
		return Config{}, err
	}

	cfg.EffectiveCwd = workDir

	switch {
	case cfg.RecentFile == "":
		cfg.RecentFileAbs = defaultRecentFile(input.Env, workDir)
	case filepath.IsAbs(cfg.RecentFile):
		cfg.RecentFileAbs = cfg.RecentFile
	default:
		cfg.RecentFileAbs = filepath.Join(workDir, cfg.RecentFile)
	}

	return cfg, nil
}

func loadGlobal(env map[string]string) (Config, string, error) {
	path := globalPath(env)
	if path == "" {
		return Config{}, "", nil
	}

	cfg, loaded, err := loadFile(path, false)
	if err != nil || !loaded {
		return Config{}, "", err
	}

	return cfg, path, nil
}

// loadProject loads .gsearch.json from workDir, or configPath when given.
// An explicit file must exist.
func loadProject(workDir, configPath string) (Config, string, error) {
	path := filepath.Join(workDir, FileName)
	mustExist := false

	if configPath != "" {
		path = configPath
		if !filepath.IsAbs(path) {
			path = filepath.Join(workDir, path)
		}

		mustExist = true

		if _, err := os.Stat(path); err != nil {
			return Config{}, "", fmt.Errorf("%w: %s", ErrConfigFileNotFound, configPath)
		}
	}

	cfg, loaded, err := loadFile(path, mustExist)
	if err != nil || !loaded {
		return Config{}, "", err
	}

	return cfg, path, nil
}

// loadFile reads and parses one config file. A missing optional file
// yields loaded == false.
func loadFile(path string, mustExist bool) (Config, bool, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if mustExist {
			return Config{}, false, fmt.Errorf("%w: %s", ErrConfigFileRead, path)
		}

		return Config{}, false, nil
	}

	cfg, err := parse(data)
	if err != nil {
		return Config{}, false, fmt.Errorf("%w %s: %w", ErrConfigInvalid, path, err)
	}

	return cfg, true, nil
}

func parse(data []byte) (Config, error) {
	standardized, err := hujson.Standardize(data)
	if err != nil {
		return Config{}, fmt.Errorf("invalid JSONC: %w", err)
	}

	var cfg Config

	if err := json.Unmarshal(standardized, &cfg); err != nil {
		return Config{}, fmt.Errorf("invalid JSON: %w", err)
	}

	// omitempty cannot tell a missing key from an explicit "" or 0.
	var raw map[string]json.RawMessage

	_ = json.Unmarshal(standardized, &raw)

	if v, ok := raw["recent_file"]; ok && string(v) == `""` {
		return Config{}, ErrRecentFileEmpty
	}

	if _, ok := raw["max_recent"]; ok && !validMaxRecent(cfg.MaxRecent) {
		return Config{}, fmt.Errorf("%w (got %d)", ErrMaxRecentRange, cfg.MaxRecent)
	}

	return cfg, nil
}

func merge(base, overlay Config) Config {
	if overlay.RecentFile != "" {
		base.RecentFile = overlay.RecentFile
	}

	if overlay.Browser != "" {
		base.Browser = overlay.Browser
	}

	if overlay.MaxRecent != 0 {
		base.MaxRecent = overlay.MaxRecent
	}

	return base
}

func validate(cfg Config) error {
	if !validMaxRecent(cfg.MaxRecent) {
		return fmt.Errorf("%w (got %d)", ErrMaxRecentRange, cfg.MaxRecent)
	}

	return nil
}

func validMaxRecent(n int) bool {
	return n >= 1 && n <= recent.MaxEntries
}
