package config

import (
	"github.com/spf13/viper"
)

// Global configuration variables
var (
	// NotesOutputDir is the directory markdown notes are exported into
	NotesOutputDir string
	// DownloadCovers controls whether cover images are saved for added books
	DownloadCovers bool
	// UserAgent is sent with every catalog request
	UserAgent string
)

// InitConfig initializes the global configuration
func InitConfig() {
	// Set default values
	viper.SetDefault("notesoutputdir", "./notes/")
	viper.SetDefault("downloadcovers", true)
	viper.SetDefault("openlibrary.useragent", "")

	// Get values from viper
	NotesOutputDir = viper.GetString("notesoutputdir")
	DownloadCovers = viper.GetBool("downloadcovers")
	UserAgent = viper.GetString("openlibrary.useragent")
}

// SetDownloadCovers sets the DownloadCovers flag
func SetDownloadCovers(download bool) {
	DownloadCovers = download
}
