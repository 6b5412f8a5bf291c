package domain

import (
	"strconv"
	"strings"

	"github.com/samber/lo"
)

// Record is a stored forwarding filter. Flags are already normalized: a
// missing, zero or false stored value is false.
type Record struct {
	ID         string   `json:"id"`
	Audio      bool     `json:"audio"`
	Video      bool     `json:"video"`
	Photo      bool     `json:"photo"`
	Sticker    bool     `json:"sticker"`
	Document   bool     `json:"document"`
	Hashtag    bool     `json:"hashtag"`
	Link       bool     `json:"link"`
	Contain    []string `json:"contain,omitempty"`
	NotContain []string `json:"notcontain,omitempty"`
}

// ActiveSet holds the criteria of a record that are switched on
type ActiveSet map[Criterion]struct{}

// Has reports whether c is active
func (s ActiveSet) Has(c Criterion) bool {
	_, ok := s[c]
	return ok
}

// Criteria returns the active criteria in declaration order
func (s ActiveSet) Criteria() []Criterion {
	return lo.FilterMap(CriterionNames(), func(name string, _ int) (Criterion, bool) {
		c := Criterion(name)
		return c, s.Has(c)
	})
}

// IsActive reports whether the given criterion is switched on in the record
func (r *Record) IsActive(c Criterion) bool {
	switch c {
	case CriterionAudio:
		return r.Audio
	case CriterionVideo:
		return r.Video
	case CriterionPhoto:
		return r.Photo
	case CriterionSticker:
		return r.Sticker
	case CriterionDocument:
		return r.Document
	case CriterionHashtag:
		return r.Hashtag
	case CriterionLink:
		return r.Link
	case CriterionContain:
		return len(r.Contain) > 0
	case CriterionNotcontain:
		return len(r.NotContain) > 0
	}
	return false
}

// Keywords returns the keyword list behind a content criterion
func (r *Record) Keywords(c Criterion) []string {
	switch c {
	case CriterionContain:
		return r.Contain
	case CriterionNotcontain:
		return r.NotContain
	}
	return nil
}

// Set updates one criterion from its textual form. Flags accept
// on/off/yes/no and anything strconv.ParseBool does; keyword criteria take a
// comma-separated list, an empty value clears them.
func (r *Record) Set(c Criterion, value string) error {
	if c == CriterionContain || c == CriterionNotcontain {
		keywords := SplitKeywords(value)
		if c == CriterionContain {
			r.Contain = keywords
		} else {
			r.NotContain = keywords
		}
		return nil
	}

	on, err := parseFlag(value)
	if err != nil {
		return err
	}

	switch c {
	case CriterionAudio:
		r.Audio = on
	case CriterionVideo:
		r.Video = on
	case CriterionPhoto:
		r.Photo = on
	case CriterionSticker:
		r.Sticker = on
	case CriterionDocument:
		r.Document = on
	case CriterionHashtag:
		r.Hashtag = on
	case CriterionLink:
		r.Link = on
	default:
		return ErrInvalidCriterion
	}
	return nil
}

// SplitKeywords parses an admin supplied comma-separated list, trimming
// entries and dropping blank ones. Case is kept; matching lowercases only
// the message text.
func SplitKeywords(s string) []string {
	if s == "" {
		return nil
	}
	keywords := lo.Compact(lo.Map(strings.Split(s, ","), func(k string, _ int) string {
		return strings.TrimSpace(k)
	}))
	if len(keywords) == 0 {
		return nil
	}
	return keywords
}

func parseFlag(value string) (bool, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "on", "yes":
		return true, nil
	case "off", "no", "":
		return false, nil
	}
	return strconv.ParseBool(value)
}
