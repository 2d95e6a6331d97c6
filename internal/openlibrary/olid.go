package openlibrary

import (
	"fmt"
	"regexp"
	"strings"
)

// IdentifierKind distinguishes the Open Library identifier namespaces.
// The suffix letter of an OLID carries the same information (M = edition,
// W = work, A = author), but the shared syntactic check below accepts any
// suffix; callers state the kind they expect for error messages only.
type IdentifierKind string

const (
	KindBook   IdentifierKind = "book"
	KindWork   IdentifierKind = "work"
	KindAuthor IdentifierKind = "author"
)

// olidPattern matches a bare OLID like OL12345M, OL678W or OL9A.
var olidPattern = regexp.MustCompile(`^OL[0-9]+[A-Z]$`)

// InvalidIdentifierError is returned when a string cannot be parsed as an OLID.
type InvalidIdentifierError struct {
	Raw  string
	Kind IdentifierKind
}

func (e *InvalidIdentifierError) Error() string {
	if e.Kind != "" {
		return fmt.Sprintf("invalid %s identifier: %q", e.Kind, e.Raw)
	}
	return fmt.Sprintf("invalid identifier: %q", e.Raw)
}

// Identifier is a parsed Open Library identifier. The zero value is invalid;
// identifiers are only produced by ParseIdentifier and never mutated.
type Identifier struct {
	code string
}

func (id Identifier) String() string { return id.code }

// Kind reports the namespace encoded in the identifier's suffix letter.
// Unknown suffix letters return an empty kind.
func (id Identifier) Kind() IdentifierKind {
	if id.code == "" {
		return ""
	}
	switch id.code[len(id.code)-1] {
	case 'M':
		return KindBook
	case 'W':
		return KindWork
	case 'A':
		return KindAuthor
	}
	return ""
}

// ParseIdentifier parses a bare OLID or one embedded in a catalog key such
// as "/works/OL123W". Stripping the path prefix is optional and idempotent:
// ParseIdentifier("/works/"+c) equals ParseIdentifier(c) for any valid c.
func ParseIdentifier(raw string) (Identifier, error) {
	code := stripKeyPrefix(raw)
	if !olidPattern.MatchString(code) {
		return Identifier{}, &InvalidIdentifierError{Raw: raw}
	}
	return Identifier{code: code}, nil
}

// Classify validates raw as an OLID and returns the bare code. The expected
// kind is not enforced syntactically (both OL1M and OL1W pass the same
// pattern); it only shapes the error message, matching how callers already
// know which endpoint they are about to hit.
func Classify(raw string, expected IdentifierKind) (string, error) {
	code := stripKeyPrefix(raw)
	if !olidPattern.MatchString(code) {
		return "", &InvalidIdentifierError{Raw: raw, Kind: expected}
	}
	return code, nil
}

func stripKeyPrefix(raw string) string {
	s := strings.TrimSpace(raw)
	for _, prefix := range []string{"/books/", "/works/", "/authors/"} {
		if rest, ok := strings.CutPrefix(s, prefix); ok {
			return rest
		}
	}
	return s
}
