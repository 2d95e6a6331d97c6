package openlibrary

import (
	"fmt"
	"strings"
)

// InvalidISBNError is returned when a string is not a plausible ISBN-10 or
// ISBN-13 after stripping hyphens and spaces.
type InvalidISBNError struct {
	Raw string
}

func (e *InvalidISBNError) Error() string {
	return fmt.Sprintf("invalid ISBN: %q", e.Raw)
}

// CleanISBN strips hyphens and spaces and upper-cases a trailing check
// character, returning an error unless the result looks like an ISBN-10
// (nine digits plus a digit or X) or an ISBN-13 (thirteen digits).
func CleanISBN(raw string) (string, error) {
	cleaned := strings.ToUpper(strings.NewReplacer("-", "", " ", "").Replace(strings.TrimSpace(raw)))
	if !looksLikeISBN10(cleaned) && !looksLikeISBN13(cleaned) {
		return "", &InvalidISBNError{Raw: raw}
	}
	return cleaned, nil
}

// ValidateISBN reports whether the cleaned string is a valid ISBN-10 or
// ISBN-13, including the check digit.
func ValidateISBN(isbn string) bool {
	cleaned, err := CleanISBN(isbn)
	if err != nil {
		return false
	}
	switch len(cleaned) {
	case 10:
		return validISBN10(cleaned)
	case 13:
		return validISBN13(cleaned)
	}
	return false
}

// ConvertISBN10To13 converts a valid ISBN-10 to its ISBN-13 form by
// prepending 978 to the first nine digits and recomputing the check digit.
func ConvertISBN10To13(isbn10 string) (string, error) {
	cleaned, err := CleanISBN(isbn10)
	if err != nil {
		return "", err
	}
	if len(cleaned) != 10 || !validISBN10(cleaned) {
		return "", &InvalidISBNError{Raw: isbn10}
	}
	body := "978" + cleaned[:9]
	return body + string(rune('0'+isbn13CheckDigit(body))), nil
}

func looksLikeISBN10(s string) bool {
	if len(s) != 10 {
		return false
	}
	for i := 0; i < 9; i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	last := s[9]
	return last == 'X' || (last >= '0' && last <= '9')
}

func looksLikeISBN13(s string) bool {
	if len(s) != 13 {
		return false
	}
	for i := 0; i < 13; i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}

// validISBN10 checks the weighted sum mod 11, weights 10..1, X worth 10.
func validISBN10(s string) bool {
	sum := 0
	for i := 0; i < 10; i++ {
		value := 0
		if s[i] == 'X' {
			if i != 9 {
				return false
			}
			value = 10
		} else {
			value = int(s[i] - '0')
		}
		sum += value * (10 - i)
	}
	return sum%11 == 0
}

// validISBN13 checks the weighted sum mod 10, weights alternating 1 and 3.
func validISBN13(s string) bool {
	return isbn13CheckDigit(s[:12]) == int(s[12]-'0')
}

func isbn13CheckDigit(first12 string) int {
	sum := 0
	for i := 0; i < 12; i++ {
		digit := int(first12[i] - '0')
		if i%2 == 1 {
			digit *= 3
		}
		sum += digit
	}
	return (10 - sum%10) % 10
}
