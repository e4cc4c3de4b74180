package bindgen

import (
	"go/token"
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/unicode/norm"
)

// Identifiers the generated method bodies use. Parameters with these names
// get the Arg suffix, as do Go keywords.
var bodyIdents = map[string]bool{
	"api":     true,
	"ctx":     true,
	"out":     true,
	"err":     true,
	"zero":    true,
	"binder":  true,
	"types":   true,
	"context": true,
}

// Method names taken by the generated API types.
var reservedMethods = map[string]bool{
	"Close": true,
}

const argSuffix = "Arg"

// MethodName converts a declaration name into an exported Go identifier:
// pedersen_compress_fields becomes PedersenCompressFields.
func MethodName(name string) string {
	return strings.Join(words(name), "")
}

// ParamName converts a parameter name into a lowerCamelCase identifier that
// cannot clash with the generated code: hash_index becomes hashIndex and
// type becomes typeArg.
func ParamName(name string) string {
	w := words(name)
	if len(w) == 0 {
		return ""
	}
	w[0] = lowerFirst(w[0])
	id := strings.Join(w, "")
	if token.IsKeyword(id) || bodyIdents[id] {
		id += argSuffix
	}
	return id
}

// FieldName converts an output name into an exported struct field name.
func FieldName(name string) string {
	return MethodName(name)
}

// words splits s on separators and title-cases the first letter of each
// word. The rest is kept as is, so blake2s stays Blake2s and fromBuffer
// becomes FromBuffer.
func words(s string) []string {
	s = norm.NFC.String(s)
	parts := strings.FieldsFunc(s, func(r rune) bool {
		switch r {
		case '_', '-', '.', ':', ' ', '\t':
			return true
		}
		return false
	})
	title := cases.Title(language.Und)
	for i, p := range parts {
		_, size := utf8.DecodeRuneInString(p)
		parts[i] = title.String(p[:size]) + p[size:]
	}
	return parts
}

func lowerFirst(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}
	return string(unicode.ToLower(r)) + s[size:]
}

// validIdent reports whether s is a usable Go identifier.
func validIdent(s string) bool {
	return token.IsIdentifier(s)
}
