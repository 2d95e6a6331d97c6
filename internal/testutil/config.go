package testutil

import (
	"testing"

	"github.com/spf13/viper"

	"github.com/mlahtinen/shelfmark/internal/config"
)

// ConfigState holds the state of the config package variables.
type ConfigState struct {
	NotesOutputDir string
	DownloadCovers bool
	UserAgent      string
}

// SaveConfigState captures the current state of config package variables.
func SaveConfigState() ConfigState {
	return ConfigState{
		NotesOutputDir: config.NotesOutputDir,
		DownloadCovers: config.DownloadCovers,
		UserAgent:      config.UserAgent,
	}
}

// RestoreConfigState restores the config package variables to a saved state.
func RestoreConfigState(state ConfigState) {
	config.NotesOutputDir = state.NotesOutputDir
	config.DownloadCovers = state.DownloadCovers
	config.UserAgent = state.UserAgent
}

// ResetConfig saves the current config state and schedules restoration
// when the test completes. It also resets viper.
func ResetConfig(t *testing.T) {
	t.Helper()

	state := SaveConfigState()
	viper.Reset()

	t.Cleanup(func() {
		RestoreConfigState(state)
		viper.Reset()
	})
}

// SetViperValue sets a viper configuration value and schedules cleanup.
func SetViperValue(t *testing.T, key string, value any) {
	t.Helper()

	oldValue := viper.Get(key)
	hadValue := viper.IsSet(key)

	viper.Set(key, value)

	t.Cleanup(func() {
		if hadValue {
			viper.Set(key, oldValue)
		}
		// viper has no Unset, so a previously unset key stays set.
	})
}

// SetupTestCache configures viper for test caching with a temporary
// directory. Returns the cache directory path.
func SetupTestCache(t *testing.T, env *TestEnv) string {
	t.Helper()

	cacheDir := env.Path("cache")
	env.MkdirAll("cache")

	viper.Set("cache.dbfile", env.Path("cache", "test-cache.db"))
	viper.Set("cache.ttl", "168h")

	return cacheDir
}

// SetupTestShelf configures a temporary shelf database and returns its path.
func SetupTestShelf(t *testing.T, env *TestEnv) string {
	t.Helper()

	dbPath := env.Path("shelf.db")
	SetViperValue(t, "shelf.dbfile", dbPath)
	return dbPath
}

// SetupNotesOutput points the notes output directory at the test environment.
func SetupNotesOutput(t *testing.T, env *TestEnv) {
	t.Helper()

	SetViperValue(t, "notesoutputdir", env.RootDir())
}
