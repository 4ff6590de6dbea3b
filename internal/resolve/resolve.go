// Package resolve maps user tokens (a title or a 0-based display index) to
// server identifiers.
//
// A token is compared to every title, and if it is a non-negative decimal
// integer (ASCII digits, optionally after one '+') it is also
// compared to every position. The first item in enumeration order that
// satisfies either test wins. A list where a task is literally titled "2"
// and a different task sits at index 2 therefore binds "2" to whichever of
// the two the server returns first.
//
// Positions are only valid for the enumeration they were taken from, so
// callers must resolve against a snapshot fetched immediately before use and
// resolve every token of a batch against that same snapshot.
package resolve

import (
	"strconv"
	"strings"
	"unicode"

	"gid/internal/service"
)

// Lookup returns the ID of the first item matching token, or false.
func Lookup(token string, items []service.Item) (string, bool) {
	idx, isIndex := parseIndex(token)
	for i, item := range items {
		if item.Title == token || (isIndex && i == idx) {
			return item.ID, true
		}
	}
	return "", false
}

// Resolve is Lookup that fails with *service.IdentifierNotFoundError.
func Resolve(token string, items []service.Item) (string, error) {
	id, ok := Lookup(token, items)
	if !ok {
		return "", &service.IdentifierNotFoundError{Token: token}
	}
	return id, nil
}

// ResolveAll resolves tokens in order against one enumeration.
// It stops at the first token that does not resolve.
func ResolveAll(tokens []string, items []service.Item) ([]string, error) {
	ids := make([]string, 0, len(tokens))
	for _, token := range tokens {
		id, err := Resolve(token, items)
		if err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, nil
}

// parseIndex parses a non-negative decimal index. One leading '+' is allowed.
func parseIndex(token string) (int, bool) {
	digits := strings.TrimPrefix(token, "+")
	if !isAllDigits(digits) {
		return 0, false
	}
	n, err := strconv.Atoi(digits)
	if err != nil {
		return 0, false
	}
	return n, true
}

// isAllDigits returns true if s consists only of ASCII digits and is non-empty.
func isAllDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r > unicode.MaxASCII || !unicode.IsDigit(r) {
			return false
		}
	}
	return true
}
