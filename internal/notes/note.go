// Package notes exports saved books as markdown notes with YAML
// frontmatter, suitable for a personal knowledge base.
package notes

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/mlahtinen/shelfmark/internal/shelf"
)

// frontmatter is the YAML header of an exported note. Field order here is
// the serialization order, keeping exports deterministic.
type frontmatter struct {
	Title       string `yaml:"title"`
	Type        string `yaml:"type"`
	Author      string `yaml:"author"`
	OLID        string `yaml:"olid"`
	WorkID      string `yaml:"work_id,omitempty"`
	ISBN10      string `yaml:"isbn,omitempty"`
	ISBN13      string `yaml:"isbn13,omitempty"`
	Pages       int    `yaml:"pages,omitempty"`
	PublishDate string `yaml:"publish_date,omitempty"`
	Publisher   string `yaml:"publisher,omitempty"`
	Status      string `yaml:"status,omitempty"`
	Rating      int    `yaml:"rating,omitempty"`
	Cover       string `yaml:"cover,omitempty"`
	AddedAt     string `yaml:"date_added,omitempty"`
}

// Build renders a saved book as a markdown note.
func Build(book shelf.Book) ([]byte, error) {
	fm := frontmatter{
		Title:       book.Title,
		Type:        "book",
		Author:      book.Author,
		OLID:        book.OLID,
		WorkID:      book.WorkID,
		ISBN10:      book.ISBN10,
		ISBN13:      book.ISBN13,
		Pages:       book.Pages,
		PublishDate: book.PublishDate,
		Publisher:   book.Publisher,
		Status:      book.Status,
		Rating:      book.Rating,
		Cover:       book.CoverPath,
	}
	if !book.AddedAt.IsZero() {
		fm.AddedAt = book.AddedAt.UTC().Format("2006-01-02")
	}

	fmBytes, err := yaml.Marshal(fm)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal frontmatter: %w", err)
	}

	var buf bytes.Buffer
	buf.WriteString("---\n")
	buf.Write(fmBytes)
	buf.WriteString("---\n")

	fmt.Fprintf(&buf, "\n# %s\n", book.Title)
	fmt.Fprintf(&buf, "\n*%s*\n", book.Author)
	if book.Description != "" {
		fmt.Fprintf(&buf, "\n%s\n", book.Description)
	}

	return buf.Bytes(), nil
}

// Write renders a book note into directory, returning the file path and
// whether it was written. An existing note is left alone unless overwrite
// is set.
func Write(book shelf.Book, directory string, overwrite bool) (string, bool, error) {
	notePath := filepath.Join(directory, sanitizeFilename(book.Title)+".md")

	if !overwrite {
		if _, err := os.Stat(notePath); err == nil {
			return notePath, false, nil
		}
	}

	data, err := Build(book)
	if err != nil {
		return "", false, err
	}

	if err := os.MkdirAll(directory, 0o755); err != nil {
		return "", false, err
	}
	if err := os.WriteFile(notePath, data, 0o644); err != nil {
		return "", false, err
	}
	return notePath, true, nil
}

// sanitizeFilename replaces characters that do not survive in file names.
func sanitizeFilename(name string) string {
	name = strings.ReplaceAll(name, ":", " -")
	name = strings.ReplaceAll(name, "/", "-")
	name = strings.ReplaceAll(name, "\\", "-")
	return strings.TrimSpace(name)
}
