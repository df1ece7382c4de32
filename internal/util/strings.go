package util

import (
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"
)

// ToValidUTF8 ensures a string is valid UTF-8.
// Invalid input is decoded as Latin-1 (ISO-8859-1), which is what older
// spreadsheet exports from branch offices tend to use.
func ToValidUTF8(s string) string {
	if utf8.ValidString(s) {
		return s
	}

	decoded, err := charmap.ISO8859_1.NewDecoder().String(s)
	if err == nil {
		return decoded
	}

	// Latin-1 maps 1:1 to codepoints 0-255
	runes := make([]rune, len(s))
	for i := 0; i < len(s); i++ {
		runes[i] = rune(s[i])
	}
	return string(runes)
}

// TrimBOM strips a leading UTF-8 byte order mark.
func TrimBOM(s string) string {
	return strings.TrimPrefix(s, "\ufeff")
}
