package codefmt

import (
	"strings"
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/sublee/caseval/internal/lcs"
)

// UpperCamel capitalizes the first letter of name and keeps the rest.
//
//	UpperCamel("z")         // "Z"
//	UpperCamel("firstName") // "FirstName"
func UpperCamel(name string) string {
	_, size := utf8.DecodeRuneInString(name)
	if size == 0 {
		return name
	}
	return cases.Upper(language.Und).String(name[:size]) + name[size:]
}

// LowerCamel lowercases the first word of name. An initialism is lowercased
// as a whole.
//
//	LowerCamel("Title")   // "title"
//	LowerCamel("URLPath") // "urlPath"
func LowerCamel(name string) string {
	words := lcs.SplitWords(name)
	if len(words) == 0 {
		return name
	}
	words[0] = cases.Lower(language.Und).String(words[0])
	return strings.Join(words, "")
}

// IsIdentFragment reports whether s can be spliced into a Go identifier:
// it is non-empty and made of letters, digits and underscores only.
func IsIdentFragment(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r == '_' || 'a' <= r && r <= 'z' || 'A' <= r && r <= 'Z' || '0' <= r && r <= '9' {
			continue
		}
		return false
	}
	return true
}
