package notes

import (
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mlahtinen/shelfmark/internal/shelf"
	"github.com/mlahtinen/shelfmark/internal/testutil"
)

func sampleBook() shelf.Book {
	return shelf.Book{
		OLID:        "OL7353617M",
		WorkID:      "OL45883W",
		Title:       "The Hobbit",
		Author:      "J. R. R. Tolkien",
		ISBN10:      "0345339681",
		ISBN13:      "9780345339683",
		Pages:       310,
		PublishDate: "1986",
		Publisher:   "Del Rey",
		Description: "In a hole in the ground there lived a hobbit.",
		Status:      shelf.StatusRead,
		Rating:      5,
		AddedAt:     time.Date(2025, 3, 14, 12, 0, 0, 0, time.UTC),
	}
}

func TestBuildNote(t *testing.T) {
	data, err := Build(sampleBook())
	require.NoError(t, err)
	content := string(data)

	assert.True(t, strings.HasPrefix(content, "---\n"), "note should start with frontmatter")
	assert.Contains(t, content, "title: The Hobbit\n")
	assert.Contains(t, content, "type: book\n")
	assert.Contains(t, content, "author: J. R. R. Tolkien\n")
	assert.Contains(t, content, "olid: OL7353617M\n")
	assert.Contains(t, content, "work_id: OL45883W\n")
	assert.Contains(t, content, "isbn13: \"9780345339683\"\n")
	assert.Contains(t, content, "pages: 310\n")
	assert.Contains(t, content, "status: read\n")
	assert.Contains(t, content, "rating: 5\n")
	assert.Contains(t, content, "date_added:")
	assert.Contains(t, content, "2025-03-14")

	assert.Contains(t, content, "# The Hobbit\n")
	assert.Contains(t, content, "In a hole in the ground there lived a hobbit.")
}

func TestBuildNoteOmitsEmptyFields(t *testing.T) {
	book := shelf.Book{OLID: "OL1M", Title: "Bare", Author: "Nobody"}

	data, err := Build(book)
	require.NoError(t, err)
	content := string(data)

	assert.NotContains(t, content, "isbn")
	assert.NotContains(t, content, "rating")
	assert.NotContains(t, content, "date_added")
	assert.NotContains(t, content, "work_id")
}

func TestBuildNoteIsDeterministic(t *testing.T) {
	first, err := Build(sampleBook())
	require.NoError(t, err)
	second, err := Build(sampleBook())
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestWriteNote(t *testing.T) {
	env := testutil.NewTestEnv(t)

	path, written, err := Write(sampleBook(), env.RootDir(), false)
	require.NoError(t, err)
	assert.True(t, written)
	assert.Equal(t, env.Path("The Hobbit.md"), path)

	env.RequireFileExists("The Hobbit.md")
	assert.Contains(t, env.ReadFileString("The Hobbit.md"), "title: The Hobbit")
}

func TestWriteNoteSkipsExistingWithoutOverwrite(t *testing.T) {
	env := testutil.NewTestEnv(t)
	env.WriteFileString("The Hobbit.md", "user edits")

	path, written, err := Write(sampleBook(), env.RootDir(), false)
	require.NoError(t, err)
	assert.False(t, written)
	assert.Equal(t, env.Path("The Hobbit.md"), path)

	assert.Equal(t, "user edits", env.ReadFileString("The Hobbit.md"),
		"existing note must be left alone")
}

func TestWriteNoteOverwrites(t *testing.T) {
	env := testutil.NewTestEnv(t)
	env.WriteFileString("The Hobbit.md", "stale")

	_, written, err := Write(sampleBook(), env.RootDir(), true)
	require.NoError(t, err)
	assert.True(t, written)
	assert.Contains(t, env.ReadFileString("The Hobbit.md"), "title: The Hobbit")
}

func TestWriteNoteCreatesDirectory(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "notes")

	_, written, err := Write(sampleBook(), dir, false)
	require.NoError(t, err)
	assert.True(t, written)
}

func TestSanitizeFilename(t *testing.T) {
	book := sampleBook()
	book.Title = "Harry Potter: Tome 1/2"

	path, _, err := Write(book, t.TempDir(), false)
	require.NoError(t, err)
	assert.Equal(t, "Harry Potter - Tome 1-2.md", filepath.Base(path))
}
