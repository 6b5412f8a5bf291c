package repository

import (
	"strconv"
	"strings"
)

// KeywordSeparator joins keyword lists in stores that keep them as one string
const KeywordSeparator = "<stop_word>"

func encodeKeywords(keywords []string) string {
	return strings.Join(keywords, KeywordSeparator)
}

// decodeKeywords splits a stored list as is: surrounding spaces and empty
// pieces are part of the keywords
func decodeKeywords(s string) []string {
	if s == "" {
		return nil
	}
	return strings.Split(s, KeywordSeparator)
}

// flagFromString treats "", "0", "false" and anything unparsable as off
func flagFromString(s string) bool {
	s = strings.TrimSpace(s)
	if s == "" {
		return false
	}
	if n, err := strconv.ParseInt(s, 10, 64); err == nil {
		return n != 0
	}
	on, err := strconv.ParseBool(s)
	return err == nil && on
}

func flagToString(on bool) string {
	if on {
		return "1"
	}
	return "0"
}
