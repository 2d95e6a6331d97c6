package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/alecthomas/kong"
	"github.com/lepinkainen/humanlog"
	"github.com/spf13/viper"

	"github.com/mlahtinen/shelfmark/internal/cache"
	"github.com/mlahtinen/shelfmark/internal/catalog"
	"github.com/mlahtinen/shelfmark/internal/config"
	"github.com/mlahtinen/shelfmark/internal/covers"
	"github.com/mlahtinen/shelfmark/internal/notes"
	"github.com/mlahtinen/shelfmark/internal/openlibrary"
	"github.com/mlahtinen/shelfmark/internal/shelf"
)

// CLI represents the complete command structure for the shelfmark application
type CLI struct {
	// Global flags
	NoCovers bool `help:"Skip downloading cover images when adding books"`

	// Cache flags
	CacheDBFile string `help:"Path to cache SQLite database file" default:"./cache.db"`
	CacheTTL    string `help:"Cache time-to-live duration (e.g., 168h for 7 days)" default:"168h"`

	// Shelf flags
	ShelfDBFile string `help:"Path to shelf SQLite database file" default:"./shelf.db"`

	Search   SearchCmd   `cmd:"" help:"Search the OpenLibrary catalog"`
	Book     BookCmd     `cmd:"" help:"Show resolved details for a book or work"`
	Isbn     IsbnCmd     `cmd:"" help:"Look up an edition by ISBN"`
	Work     WorkCmd     `cmd:"" help:"Show raw work metadata"`
	Editions EditionsCmd `cmd:"" help:"List editions of a work"`
	Resolve  ResolveCmd  `cmd:"" help:"Resolve the best edition of a work, bypassing the cache"`
	Add      AddCmd      `cmd:"" help:"Add a book to the shelf"`
	Shelf    ShelfCmd    `cmd:"" help:"Manage the shelf"`
	Export   ExportCmd   `cmd:"" help:"Export shelf books as markdown notes"`
	Cache    CacheCmd    `cmd:"" help:"Manage the response cache"`
}

// SearchCmd represents the search command
type SearchCmd struct {
	Query   []string `arg:"" help:"Search terms"`
	Limit   int      `help:"Maximum number of results" default:"20"`
	Page    int      `help:"Result page to fetch"`
	Sort    string   `help:"Sort order (e.g. new, old, rating)"`
	Lang    string   `help:"Preferred language code for editions"`
	NoCache bool     `help:"Bypass the response cache"`
	JSON    bool     `help:"Print results as JSON"`
}

// BookCmd represents the book command
type BookCmd struct {
	ID string `arg:"" help:"Edition or work identifier (e.g. OL7353617M, /works/OL45883W)"`
}

// IsbnCmd represents the isbn command
type IsbnCmd struct {
	ISBN string `arg:"" help:"ISBN-10 or ISBN-13, hyphens allowed"`
}

// WorkCmd represents the work command
type WorkCmd struct {
	ID string `arg:"" help:"Work identifier"`
}

// EditionsCmd represents the editions command
type EditionsCmd struct {
	ID    string `arg:"" help:"Work identifier"`
	Limit int    `help:"Maximum number of editions to list" default:"50"`
}

// ResolveCmd represents the resolve command
type ResolveCmd struct {
	ID             string `arg:"" help:"Edition or work identifier"`
	Edition        string `help:"Use this specific edition instead of scoring candidates"`
	FallbackAuthor string `help:"Author name to use when none can be resolved"`
}

// AddCmd represents the add command
type AddCmd struct {
	ID     string `arg:"" help:"Edition or work identifier to add"`
	Status string `help:"Reading status" enum:"want-to-read,reading,read" default:"want-to-read"`
	Note   bool   `help:"Also export a markdown note" default:"true"`
}

// ShelfCmd represents the shelf command and its subcommands
type ShelfCmd struct {
	List   ShelfListCmd   `cmd:"" default:"1" help:"List saved books"`
	Remove ShelfRemoveCmd `cmd:"" help:"Remove a book from the shelf"`
	Rate   ShelfRateCmd   `cmd:"" help:"Rate a saved book"`
	Status ShelfStatusCmd `cmd:"" help:"Change the reading status of a saved book"`
}

// ShelfListCmd lists saved books
type ShelfListCmd struct {
	JSON bool `help:"Print the shelf as JSON"`
}

// ShelfRemoveCmd removes a saved book
type ShelfRemoveCmd struct {
	ID string `arg:"" help:"Edition identifier of the saved book"`
}

// ShelfRateCmd rates a saved book
type ShelfRateCmd struct {
	ID     string `arg:"" help:"Edition identifier of the saved book"`
	Rating int    `arg:"" help:"Rating from 0 to 5"`
}

// ShelfStatusCmd changes the reading status of a saved book
type ShelfStatusCmd struct {
	ID     string `arg:"" help:"Edition identifier of the saved book"`
	Status string `arg:"" help:"New status" enum:"want-to-read,reading,read"`
}

// ExportCmd represents the export command
type ExportCmd struct {
	Output    string `short:"o" help:"Directory to write notes into (defaults to notesoutputdir)"`
	Overwrite bool   `help:"Overwrite existing note files"`
}

// CacheCmd represents the cache command and its subcommands
type CacheCmd struct {
	Invalidate cache.InvalidateCacheCmd `cmd:"" help:"Drop all cached entries in a namespace"`
}

// Execute runs the Kong-based CLI
func Execute() {
	initLogging()
	initConfig()

	var cli CLI

	ctx := kong.Parse(&cli,
		kong.Name("shelfmark"),
		kong.Description("A personal book tracker backed by the OpenLibrary catalog."),
		kong.UsageOnError(),
	)

	updateGlobalConfig(&cli)

	err := ctx.Run()
	if err != nil {
		slog.Error("Command failed", "error", err)
		os.Exit(1)
	}
}

func initConfig() {
	viper.SetDefault("notesoutputdir", "./notes/")
	viper.SetDefault("downloadcovers", true)

	// Cache defaults
	viper.SetDefault("cache.dbfile", "./cache.db")
	viper.SetDefault("cache.ttl", "168h") // 7 days

	// Shelf defaults
	viper.SetDefault("shelf.dbfile", "./shelf.db")

	viper.AutomaticEnv()

	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			slog.Debug("No config file found, using defaults")
		} else {
			slog.Error("Fatal error config file", "error", err)
			os.Exit(1)
		}
	}

	// Initialize global config
	config.InitConfig()
}

func updateGlobalConfig(cli *CLI) {
	config.SetDownloadCovers(!cli.NoCovers)

	// Update cache config
	viper.Set("cache.dbfile", cli.CacheDBFile)
	viper.Set("cache.ttl", cli.CacheTTL)

	// Update shelf config
	viper.Set("shelf.dbfile", cli.ShelfDBFile)
}

// newService builds the catalog service. The client rate-limits itself
// to the upstream's requested pace by default.
func newService() *catalog.Service {
	var opts []openlibrary.Option
	if config.UserAgent != "" {
		opts = append(opts, openlibrary.WithUserAgent(config.UserAgent))
	}
	return catalog.NewService(openlibrary.NewClient(opts...))
}

// openShelf connects to the configured shelf database.
func openShelf() (shelf.Store, error) {
	store := shelf.NewSQLiteStore(viper.GetString("shelf.dbfile"))
	if err := store.Connect(); err != nil {
		return nil, fmt.Errorf("failed to open shelf database: %w", err)
	}
	return store, nil
}

func printJSON(v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(data))
	return nil
}

// Run methods for each command

func (s *SearchCmd) Run() error {
	service := newService()

	result, err := service.SearchBooks(context.Background(), openlibrary.SearchQuery{
		Q:     strings.Join(s.Query, " "),
		Limit: s.Limit,
		Page:  s.Page,
		Sort:  s.Sort,
		Lang:  s.Lang,
	}, s.NoCache)
	if err != nil {
		return err
	}

	if s.JSON {
		return printJSON(result)
	}

	if len(result.Docs) == 0 {
		fmt.Println("No results.")
		return nil
	}

	fmt.Printf("%d results (showing %d):\n\n", result.NumFound, len(result.Docs))
	for _, doc := range result.Docs {
		author := strings.Join(doc.AuthorName, ", ")
		if author == "" {
			author = openlibrary.UnknownAuthor
		}
		fmt.Printf("  %-12s %s", doc.OLID(), doc.Title)
		if doc.FirstPublishYear > 0 {
			fmt.Printf(" (%d)", doc.FirstPublishYear)
		}
		fmt.Printf("\n  %-12s %s\n\n", "", author)
	}
	return nil
}

func (b *BookCmd) Run() error {
	service := newService()

	book, err := service.GetBookDetails(context.Background(), b.ID)
	if err != nil {
		return err
	}
	return printJSON(book)
}

func (i *IsbnCmd) Run() error {
	service := newService()

	edition, err := service.GetBookByISBN(context.Background(), i.ISBN)
	if err != nil {
		return err
	}
	return printJSON(edition)
}

func (w *WorkCmd) Run() error {
	service := newService()

	work, err := service.GetWork(context.Background(), w.ID)
	if err != nil {
		return err
	}
	return printJSON(work)
}

func (e *EditionsCmd) Run() error {
	service := newService()

	list, err := service.GetWorkEditions(context.Background(), e.ID, e.Limit)
	if err != nil {
		return err
	}

	fmt.Printf("%d editions (showing %d):\n\n", list.Size, len(list.Entries))
	for _, edition := range list.Entries {
		score := openlibrary.ScoreEdition(edition)
		fmt.Printf("  %-12s score=%-4d %s", edition.OLID(), score, edition.Title)
		if edition.PublishDate != "" {
			fmt.Printf(" (%s)", edition.PublishDate)
		}
		fmt.Println()
	}
	return nil
}

func (r *ResolveCmd) Run() error {
	service := newService()

	book, err := service.ResolveBestEdition(context.Background(), r.ID, openlibrary.ResolveOptions{
		EditionID:      r.Edition,
		FallbackAuthor: r.FallbackAuthor,
	})
	if err != nil {
		return err
	}
	return printJSON(book)
}

func (a *AddCmd) Run() error {
	ctx := context.Background()
	service := newService()

	resolved, err := service.GetBookDetails(ctx, a.ID)
	if err != nil {
		return err
	}

	store, err := openShelf()
	if err != nil {
		return err
	}
	defer func() {
		_ = store.Close()
	}()

	book := bookFromResolved(resolved, a.Status)

	if config.DownloadCovers {
		if path, err := downloadCover(ctx, service.Client(), resolved.Edition); err != nil {
			slog.Warn("Cover download failed", "olid", book.OLID, "error", err)
		} else if path != "" {
			book.CoverPath = path
		}
	}

	if err := store.Add(book); err != nil {
		return err
	}
	slog.Info("Added to shelf", "olid", book.OLID, "title", book.Title, "author", book.Author)

	if a.Note {
		notePath, written, err := notes.Write(book, config.NotesOutputDir, false)
		if err != nil {
			return err
		}
		if written {
			slog.Info("Wrote note", "path", notePath)
		}
	}
	return nil
}

// bookFromResolved flattens a resolved edition into a shelf record.
func bookFromResolved(resolved *openlibrary.ResolvedBook, status string) shelf.Book {
	edition := resolved.Edition
	book := shelf.Book{
		OLID:        edition.OLID(),
		WorkID:      resolved.WorkID,
		Title:       edition.Title,
		Author:      resolved.Author,
		Pages:       edition.NumberOfPages,
		PublishDate: edition.PublishDate,
		Description: resolved.Description,
		Status:      status,
	}
	if len(edition.ISBN10) > 0 {
		book.ISBN10 = edition.ISBN10[0]
	}
	if len(edition.ISBN13) > 0 {
		book.ISBN13 = edition.ISBN13[0]
	}
	if len(edition.Publishers) > 0 {
		book.Publisher = edition.Publishers[0]
	}
	return book
}

// downloadCover saves the edition's cover next to the notes directory,
// checking cover availability through the cached prober first. Returns an
// empty path when the edition has no cover.
func downloadCover(ctx context.Context, client *openlibrary.Client, edition openlibrary.Edition) (string, error) {
	olid := edition.OLID()

	checker := covers.NewChecker(client)
	if !edition.HasCover() && !checker.HasCover(ctx, olid) {
		return "", nil
	}

	coverDir := filepath.Join(config.NotesOutputDir, "covers")
	if err := os.MkdirAll(coverDir, 0o755); err != nil {
		return "", err
	}

	savePath := filepath.Join(coverDir, olid+".jpg")
	if err := client.DownloadCover(ctx, client.CoverURL(olid, openlibrary.CoverLarge), savePath, 0); err != nil {
		return "", err
	}
	return savePath, nil
}

func (l *ShelfListCmd) Run() error {
	store, err := openShelf()
	if err != nil {
		return err
	}
	defer func() {
		_ = store.Close()
	}()

	books, err := store.List()
	if err != nil {
		return err
	}

	if l.JSON {
		return printJSON(books)
	}

	if len(books) == 0 {
		fmt.Println("The shelf is empty.")
		return nil
	}

	for _, book := range books {
		rating := ""
		if book.Rating > 0 {
			rating = " " + strings.Repeat("*", book.Rating)
		}
		fmt.Printf("  %-12s [%s]%s %s (%s)\n", book.OLID, book.Status, rating, book.Title, book.Author)
	}
	return nil
}

func (r *ShelfRemoveCmd) Run() error {
	return withShelf(func(store shelf.Store) error {
		id, err := openlibrary.ParseIdentifier(r.ID)
		if err != nil {
			return err
		}
		if err := store.Remove(id.String()); err != nil {
			return err
		}
		slog.Info("Removed from shelf", "olid", id.String())
		return nil
	})
}

func (r *ShelfRateCmd) Run() error {
	return withShelf(func(store shelf.Store) error {
		id, err := openlibrary.ParseIdentifier(r.ID)
		if err != nil {
			return err
		}
		return store.SetRating(id.String(), r.Rating)
	})
}

func (s *ShelfStatusCmd) Run() error {
	return withShelf(func(store shelf.Store) error {
		id, err := openlibrary.ParseIdentifier(s.ID)
		if err != nil {
			return err
		}
		return store.SetStatus(id.String(), s.Status)
	})
}

// withShelf runs fn against the configured shelf store and closes it after.
func withShelf(fn func(shelf.Store) error) error {
	store, err := openShelf()
	if err != nil {
		return err
	}
	defer func() {
		_ = store.Close()
	}()
	return fn(store)
}

func (e *ExportCmd) Run() error {
	outputDir := e.Output
	if outputDir == "" {
		outputDir = config.NotesOutputDir
	}

	return withShelf(func(store shelf.Store) error {
		books, err := store.List()
		if err != nil {
			return err
		}

		written := 0
		for _, book := range books {
			_, ok, err := notes.Write(book, outputDir, e.Overwrite)
			if err != nil {
				return fmt.Errorf("failed to export %s: %w", book.OLID, err)
			}
			if ok {
				written++
			}
		}
		slog.Info("Export complete", "books", len(books), "written", written, "directory", outputDir)
		return nil
	})
}

func initLogging() {
	// Create a human-readable handler for logging
	handler := humanlog.NewHandler(os.Stdout, &humanlog.Options{
		Level: slog.LevelInfo,
	})

	// Set the default logger
	slog.SetDefault(slog.New(handler))
}
