package domain

import (
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"
	"time"
)

// Document is a row of the document table as served by the tagging backend.
type Document struct {
	// ID is the backend identifier (the stored file name).
	ID string `json:"id" yaml:"id"`

	// Title is the human-readable title.
	Title string `json:"title" yaml:"title"`

	// Type is the file type (e.g. "pdf", "docx").
	Type string `json:"type" yaml:"type"`

	// Language is the detected document language.
	Language string `json:"language" yaml:"language"`

	// Size is the file size in bytes.
	Size int64 `json:"size" yaml:"size"`

	// CreationDate is when the document was created, normalised to UTC.
	CreationDate time.Time `json:"creation_date" yaml:"creation_date"`

	// Keywords is unique by value and sorted ascending by value.
	Keywords []Keyword `json:"keywords" yaml:"keywords"`
}

// Clone returns a deep copy of the document.
func (d Document) Clone() Document {
	out := d
	if d.Keywords != nil {
		out.Keywords = make([]Keyword, len(d.Keywords))
		copy(out.Keywords, d.Keywords)
	}
	return out
}

// HasKeyword reports whether a keyword with the given value is attached.
func (d *Document) HasKeyword(value string) bool {
	return d.KeywordIndex(value) >= 0
}

// KeywordIndex returns the index of the first keyword with the given value, or -1.
func (d *Document) KeywordIndex(value string) int {
	for i := range d.Keywords {
		if d.Keywords[i].Value == value {
			return i
		}
	}
	return -1
}

// KeywordValues returns the keyword values in order.
func (d *Document) KeywordValues() []string {
	values := make([]string, len(d.Keywords))
	for i := range d.Keywords {
		values[i] = d.Keywords[i].Value
	}
	return values
}

// SortKeywords restores ascending order by value.
// The sort is stable so equal values keep their relative order.
func (d *Document) SortKeywords() {
	sort.SliceStable(d.Keywords, func(i, j int) bool {
		return d.Keywords[i].Value < d.Keywords[j].Value
	})
}

// DisplayTitle returns the title, falling back to the ID.
func (d *Document) DisplayTitle() string {
	if d.Title != "" {
		return d.Title
	}
	return d.ID
}

// Creation date layouts accepted from the backend, tried in order.
var creationDateLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
	time.RFC1123,
	time.RFC1123Z,
}

// ParseCreationDate normalises a raw creation date into a UTC timestamp.
// Accepted inputs are time.Time, date strings in the common layouts,
// numeric strings and numbers (unix seconds, or milliseconds when the
// value is too large to be seconds). A nil or empty value yields the zero time.
func ParseCreationDate(raw any) (time.Time, error) {
	switch v := raw.(type) {
	case nil:
		return time.Time{}, nil
	case time.Time:
		return v.UTC(), nil
	case float64:
		return unixToTime(v), nil
	case int64:
		return unixToTime(float64(v)), nil
	case int:
		return unixToTime(float64(v)), nil
	case string:
		s := strings.TrimSpace(v)
		if s == "" {
			return time.Time{}, nil
		}
		for _, layout := range creationDateLayouts {
			if t, err := time.Parse(layout, s); err == nil {
				return t.UTC(), nil
			}
		}
		if f, err := strconv.ParseFloat(s, 64); err == nil {
			return unixToTime(f), nil
		}
		return time.Time{}, fmt.Errorf("%w: unrecognised creation date %q", ErrInvalidInput, s)
	default:
		return time.Time{}, fmt.Errorf("%w: unsupported creation date type %T", ErrInvalidInput, raw)
	}
}

// millisThreshold separates unix seconds from unix milliseconds (year 5138 in seconds).
const millisThreshold = 1e11

func unixToTime(v float64) time.Time {
	if math.Abs(v) >= millisThreshold {
		return time.UnixMilli(int64(v)).UTC()
	}
	sec, frac := math.Modf(v)
	return time.Unix(int64(sec), int64(frac*1e9)).UTC()
}
