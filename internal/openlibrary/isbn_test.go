package openlibrary

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCleanISBN(t *testing.T) {
	tests := []struct {
		raw  string
		want string
	}{
		{"0-306-40615-2", "0306406152"},
		{"978-0-306-40615-7", "9780306406157"},
		{" 0 306 40615 2 ", "0306406152"},
		{"080442957x", "080442957X"},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			got, err := CleanISBN(tt.raw)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestCleanISBNRejectsWrongShape(t *testing.T) {
	for _, raw := range []string{
		"",
		"abc",
		"123456789",      // too short
		"12345678901234", // too long
		"X306406152",     // X not in check position
		"978030640615X",  // ISBN-13 cannot end in X
	} {
		t.Run(raw, func(t *testing.T) {
			_, err := CleanISBN(raw)
			var invalid *InvalidISBNError
			require.ErrorAs(t, err, &invalid)
		})
	}
}

func TestValidateISBN(t *testing.T) {
	assert.True(t, ValidateISBN("0306406152"))
	assert.True(t, ValidateISBN("0-306-40615-2"))
	assert.True(t, ValidateISBN("080442957X"))
	assert.True(t, ValidateISBN("9780306406157"))
	assert.True(t, ValidateISBN("978-0-306-40615-7"))

	// Bad check digits
	assert.False(t, ValidateISBN("0306406153"))
	assert.False(t, ValidateISBN("9780306406158"))
	assert.False(t, ValidateISBN("garbage"))
}

func TestConvertISBN10To13(t *testing.T) {
	got, err := ConvertISBN10To13("0-306-40615-2")
	require.NoError(t, err)
	assert.Equal(t, "9780306406157", got)

	got, err = ConvertISBN10To13("080442957X")
	require.NoError(t, err)
	assert.True(t, ValidateISBN(got))
	assert.Equal(t, "978080442957", got[:12])
}

func TestConvertISBN10To13RejectsInvalid(t *testing.T) {
	_, err := ConvertISBN10To13("0306406153") // bad check digit
	assert.Error(t, err)

	_, err = ConvertISBN10To13("9780306406157") // already ISBN-13
	assert.Error(t, err)
}
