package config

import (
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/dkoosis/podium/pkg/render"
)

// Source names where a resolved value came from.
const (
	SourceCLI     = "cli"
	SourceEnv     = "env"
	SourceFile    = "file"
	SourceDefault = "default"
)

// CliFlags holds the values of command-line flags.
type CliFlags struct {
	ConfigFile  string
	BackendURL  string
	Refresh     time.Duration
	Debounce    time.Duration
	Timeout     time.Duration
	Theme       string
	Brand       string
	NoColor     bool
	Debug       bool
	LogFile     string
	MetricsAddr string

	// Flags to track if they were explicitly set by the user
	RefreshSet  bool
	DebounceSet bool
	TimeoutSet  bool
	NoColorSet  bool
	DebugSet    bool
}

// ResolvedConfig holds the final configuration after applying all priority rules.
type ResolvedConfig struct {
	BackendURL  string
	Refresh     time.Duration
	Debounce    time.Duration
	Timeout     time.Duration
	Theme       string
	Brand       string
	NoColor     bool
	Debug       bool
	LogFile     string
	MetricsAddr string
	Palette     render.Palette
	Avatars     map[int]string

	// ConfigPath is the YAML file that was read, "" if none.
	ConfigPath string
	// Sources maps each setting name to cli, env, file or default.
	Sources map[string]string
}

// ResolveConfig resolves configuration from all sources with explicit priority order:
// CLI > environment > file > defaults.
func ResolveConfig(flags CliFlags) (*ResolvedConfig, error) {
	path := flags.ConfigFile
	if path == "" {
		path = FindConfigPath()
	}
	file, err := LoadConfig(path)
	if err != nil {
		return nil, err
	}

	r := &ResolvedConfig{
		Palette:    file.Palette.Merge(render.DefaultPalette()),
		Avatars:    mergeAvatars(file.Avatars),
		ConfigPath: path,
		Sources:    make(map[string]string),
	}

	r.BackendURL = r.resolveString("backend_url", flags.BackendURL, []string{"PODIUM_URL"}, file.BackendURL, DefaultBackendURL)
	r.Theme = r.resolveString("theme", flags.Theme, []string{"PODIUM_THEME"}, file.Theme, DefaultTheme)
	r.Brand = r.resolveString("brand", flags.Brand, []string{"PODIUM_BRAND"}, file.Brand, DefaultBrand)
	r.LogFile = r.resolveString("log_file", flags.LogFile, []string{"PODIUM_LOG_FILE"}, file.LogFile, "")
	r.MetricsAddr = r.resolveString("metrics_addr", flags.MetricsAddr, []string{"PODIUM_METRICS_ADDR"}, file.MetricsAddr, "")

	if r.Refresh, err = r.resolveDuration("refresh", flags.Refresh, flags.RefreshSet, "PODIUM_REFRESH", file.Refresh, DefaultRefresh); err != nil {
		return nil, err
	}
	if r.Debounce, err = r.resolveDuration("debounce", flags.Debounce, flags.DebounceSet, "PODIUM_DEBOUNCE", file.Debounce, DefaultDebounce); err != nil {
		return nil, err
	}
	if r.Timeout, err = r.resolveDuration("timeout", flags.Timeout, flags.TimeoutSet, "PODIUM_TIMEOUT", file.Timeout, DefaultTimeout); err != nil {
		return nil, err
	}

	r.NoColor = r.resolveBool("no_color", flags.NoColor, flags.NoColorSet, []string{"PODIUM_NO_COLOR", "NO_COLOR"}, file.NoColor)
	r.Debug = r.resolveBool("debug", flags.Debug, flags.DebugSet, []string{"PODIUM_DEBUG"}, file.Debug)

	if err := r.validate(); err != nil {
		return nil, err
	}
	return r, nil
}

func (r *ResolvedConfig) validate() error {
	u, err := url.Parse(r.BackendURL)
	if err != nil {
		return fmt.Errorf("invalid backend url %q: %w", r.BackendURL, err)
	}
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("invalid backend url %q: want an absolute http(s) url", r.BackendURL)
	}
	if r.Refresh <= 0 {
		return fmt.Errorf("refresh interval must be positive, got %s", r.Refresh)
	}
	if r.Debounce < 0 {
		return fmt.Errorf("debounce must not be negative, got %s", r.Debounce)
	}
	if r.Timeout <= 0 {
		return fmt.Errorf("timeout must be positive, got %s", r.Timeout)
	}
	switch r.Theme {
	case "neon", "mono":
	default:
		return fmt.Errorf("unknown theme %q (expected neon, mono)", r.Theme)
	}
	return nil
}

func (r *ResolvedConfig) resolveString(name, cli string, envKeys []string, file, def string) string {
	if cli != "" {
		r.Sources[name] = SourceCLI
		return cli
	}
	for _, k := range envKeys {
		if v := strings.TrimSpace(os.Getenv(k)); v != "" {
			r.Sources[name] = SourceEnv
			return v
		}
	}
	if file != "" {
		r.Sources[name] = SourceFile
		return file
	}
	r.Sources[name] = SourceDefault
	return def
}

func (r *ResolvedConfig) resolveDuration(name string, cli time.Duration, cliSet bool, envKey string, file *time.Duration, def time.Duration) (time.Duration, error) {
	if cliSet {
		r.Sources[name] = SourceCLI
		return cli, nil
	}
	if v := strings.TrimSpace(os.Getenv(envKey)); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return 0, fmt.Errorf("%s: invalid duration %q: %w", envKey, v, err)
		}
		r.Sources[name] = SourceEnv
		return d, nil
	}
	if file != nil {
		r.Sources[name] = SourceFile
		return *file, nil
	}
	r.Sources[name] = SourceDefault
	return def, nil
}

func (r *ResolvedConfig) resolveBool(name string, cli, cliSet bool, envKeys []string, file bool) bool {
	if cliSet {
		r.Sources[name] = SourceCLI
		return cli
	}
	if v := getEnvBool(envKeys...); v != nil {
		r.Sources[name] = SourceEnv
		return *v
	}
	if file {
		r.Sources[name] = SourceFile
		return true
	}
	r.Sources[name] = SourceDefault
	return false
}

// getEnvBool returns the first parseable boolean among keys, or nil.
// NO_COLOR follows its convention: any non-empty value means true.
func getEnvBool(keys ...string) *bool {
	for _, k := range keys {
		v, ok := os.LookupEnv(k)
		if !ok || v == "" {
			continue
		}
		if k == "NO_COLOR" {
			b := true
			return &b
		}
		if b, err := strconv.ParseBool(v); err == nil {
			return &b
		}
	}
	return nil
}

func mergeAvatars(file map[int]string) map[int]string {
	out := render.DefaultAvatars()
	for place, glyph := range file {
		if glyph != "" {
			out[place] = glyph
		}
	}
	return out
}
