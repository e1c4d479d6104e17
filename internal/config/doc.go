// Package config handles configuration loading and merging for podium.
//
// # Configuration Precedence
//
// Configuration values are resolved in the following order (highest to lowest priority):
//
//  1. CLI flags (--url, --refresh, --debounce, --theme, --no-color, etc.)
//  2. Environment variables (PODIUM_URL, PODIUM_REFRESH, NO_COLOR, ...), including
//     values loaded from a .env file
//  3. YAML config file (.podium.yaml in local directory or ~/.config/podium/.podium.yaml)
//  4. Hardcoded defaults
//
// When a higher-priority source sets a value, it overrides any lower-priority values.
//
// # Key Configuration Options
//
//   - BackendURL: root of the leaderboard service; requests go to {BackendURL}/leaderboard
//   - Refresh: period of the background refetch (default 5s)
//   - Debounce: quiet time after the last search keystroke before fetching (default 300ms, 0 disables)
//   - Timeout: per-request timeout (default 10s)
//   - Theme: neon (default) or mono
//   - Palette and Avatars: podium colours and place glyphs, YAML only
//
// # Environment Variables
//
//   - PODIUM_URL, PODIUM_REFRESH, PODIUM_DEBOUNCE, PODIUM_TIMEOUT
//   - PODIUM_THEME, PODIUM_BRAND
//   - PODIUM_NO_COLOR: boolean; NO_COLOR: any non-empty value disables colors
//   - PODIUM_DEBUG: enables debug logging
//   - PODIUM_LOG_FILE, PODIUM_METRICS_ADDR
package config
