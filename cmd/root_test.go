package cmd

import (
	"os"
	"testing"

	"github.com/alecthomas/kong"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mlahtinen/shelfmark/internal/config"
)

func resetCmdState(t *testing.T) {
	origCovers := config.DownloadCovers

	t.Cleanup(func() {
		config.DownloadCovers = origCovers
		viper.Reset()
	})

	viper.Reset()
}

func parseCLI(t *testing.T, args ...string) (*CLI, *kong.Context) {
	t.Helper()

	originalArgs := os.Args
	os.Args = append([]string{"shelfmark"}, args...)
	t.Cleanup(func() { os.Args = originalArgs })

	cli := &CLI{}
	ctx := kong.Parse(cli,
		kong.Name("shelfmark"),
		kong.Description("A personal book tracker backed by the OpenLibrary catalog."),
		kong.UsageOnError(),
		kong.Exit(func(code int) {
			t.Fatalf("unexpected Kong exit %d", code)
		}),
	)

	return cli, ctx
}

func TestUpdateGlobalConfig(t *testing.T) {
	resetCmdState(t)

	cli := &CLI{
		NoCovers:    true,
		CacheDBFile: "/tmp/cache.db",
		CacheTTL:    "12h",
		ShelfDBFile: "/tmp/shelf.db",
	}

	updateGlobalConfig(cli)

	assert.False(t, config.DownloadCovers)
	assert.Equal(t, "/tmp/cache.db", viper.GetString("cache.dbfile"))
	assert.Equal(t, "12h", viper.GetString("cache.ttl"))
	assert.Equal(t, "/tmp/shelf.db", viper.GetString("shelf.dbfile"))
}

func TestSearchCommandParsing(t *testing.T) {
	resetCmdState(t)

	cli, _ := parseCLI(t, "search", "the", "hobbit", "--limit", "5", "--no-cache", "--json")

	assert.Equal(t, []string{"the", "hobbit"}, cli.Search.Query)
	assert.Equal(t, 5, cli.Search.Limit)
	assert.True(t, cli.Search.NoCache)
	assert.True(t, cli.Search.JSON)
}

func TestResolveCommandParsing(t *testing.T) {
	resetCmdState(t)

	cli, _ := parseCLI(t, "resolve", "OL45883W",
		"--edition", "OL7353617M",
		"--fallback-author", "J. R. R. Tolkien")

	assert.Equal(t, "OL45883W", cli.Resolve.ID)
	assert.Equal(t, "OL7353617M", cli.Resolve.Edition)
	assert.Equal(t, "J. R. R. Tolkien", cli.Resolve.FallbackAuthor)
}

func TestAddCommandParsing(t *testing.T) {
	resetCmdState(t)

	cli, _ := parseCLI(t, "add", "OL45883W", "--status", "reading")

	assert.Equal(t, "OL45883W", cli.Add.ID)
	assert.Equal(t, "reading", cli.Add.Status)
	assert.True(t, cli.Add.Note, "note export should default to true")
}

func TestAddCommandRejectsInvalidStatus(t *testing.T) {
	resetCmdState(t)

	cli := &CLI{}
	parser, err := kong.New(cli, kong.Name("shelfmark"))
	require.NoError(t, err)

	_, parseErr := parser.Parse([]string{"add", "OL45883W", "--status", "abandoned"})
	assert.Error(t, parseErr, "invalid status enum should fail parsing")
}

func TestShelfCommandParsing(t *testing.T) {
	resetCmdState(t)

	cli, _ := parseCLI(t, "shelf", "rate", "OL7353617M", "5")
	assert.Equal(t, "OL7353617M", cli.Shelf.Rate.ID)
	assert.Equal(t, 5, cli.Shelf.Rate.Rating)

	cli, _ = parseCLI(t, "shelf", "status", "OL7353617M", "read")
	assert.Equal(t, "read", cli.Shelf.Status.Status)
}

func TestCLIDefaultFlags(t *testing.T) {
	resetCmdState(t)

	cli, _ := parseCLI(t, "shelf", "list")

	assert.False(t, cli.NoCovers, "NoCovers should default to false")
	assert.Equal(t, "./cache.db", cli.CacheDBFile, "CacheDBFile should default to ./cache.db")
	assert.Equal(t, "168h", cli.CacheTTL, "CacheTTL should default to 168h")
	assert.Equal(t, "./shelf.db", cli.ShelfDBFile, "ShelfDBFile should default to ./shelf.db")
}

func TestCLIFlagsOverrideDefaults(t *testing.T) {
	resetCmdState(t)

	cli, _ := parseCLI(t,
		"--no-covers",
		"--cache-db-file", "/custom/cache.db",
		"--cache-ttl", "24h",
		"--shelf-db-file", "/custom/shelf.db",
		"shelf", "list")

	assert.True(t, cli.NoCovers)
	assert.Equal(t, "/custom/cache.db", cli.CacheDBFile)
	assert.Equal(t, "24h", cli.CacheTTL)
	assert.Equal(t, "/custom/shelf.db", cli.ShelfDBFile)
}

func TestInitConfigDefaults(t *testing.T) {
	resetCmdState(t)

	// Set defaults directly without calling initConfig to avoid touching
	// the filesystem for a config file.
	viper.SetDefault("notesoutputdir", "./notes/")
	viper.SetDefault("downloadcovers", true)
	viper.SetDefault("cache.dbfile", "./cache.db")
	viper.SetDefault("cache.ttl", "168h")
	viper.SetDefault("shelf.dbfile", "./shelf.db")

	assert.Equal(t, "./notes/", viper.GetString("notesoutputdir"))
	assert.True(t, viper.GetBool("downloadcovers"))
	assert.Equal(t, "./cache.db", viper.GetString("cache.dbfile"))
	assert.Equal(t, "168h", viper.GetString("cache.ttl"))
	assert.Equal(t, "./shelf.db", viper.GetString("shelf.dbfile"))
}

func TestInitLogging(t *testing.T) {
	require.NotPanics(t, func() {
		initLogging()
	})
}

func TestCommandStructure(t *testing.T) {
	resetCmdState(t)

	cli := &CLI{}

	assert.NotNil(t, cli.Shelf)
	assert.NotNil(t, cli.Cache)
	assert.NotNil(t, cli.Search)
	assert.NotNil(t, cli.Export)
}
