package config

import (
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
)

func TestSetDownloadCovers(t *testing.T) {
	originalValue := DownloadCovers
	t.Cleanup(func() { DownloadCovers = originalValue })

	SetDownloadCovers(true)
	assert.True(t, DownloadCovers)

	SetDownloadCovers(false)
	assert.False(t, DownloadCovers)
}

func TestInitConfigDefaults(t *testing.T) {
	viper.Reset()
	t.Cleanup(viper.Reset)

	InitConfig()

	assert.Equal(t, "./notes/", NotesOutputDir)
	assert.True(t, DownloadCovers)
	assert.Empty(t, UserAgent)
}

func TestInitConfigReadsViper(t *testing.T) {
	viper.Reset()
	t.Cleanup(viper.Reset)

	viper.Set("notesoutputdir", "/data/books")
	viper.Set("downloadcovers", false)
	viper.Set("openlibrary.useragent", "mybot/2.0 (me@example.com)")

	InitConfig()

	assert.Equal(t, "/data/books", NotesOutputDir)
	assert.False(t, DownloadCovers)
	assert.Equal(t, "mybot/2.0 (me@example.com)", UserAgent)
}
