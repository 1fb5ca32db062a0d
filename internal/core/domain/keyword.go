package domain

import "fmt"

// KeywordType records how a keyword was attached to a document.
type KeywordType string

const (
	// KeywordManual is a keyword added by hand.
	KeywordManual KeywordType = "MANUAL"

	// KeywordModelType is a keyword added from a keyword model.
	KeywordModelType KeywordType = "KWM"

	// KeywordML is a keyword added by automated tagging.
	KeywordML KeywordType = "ML"
)

// Valid reports whether the type is one of the known keyword types.
func (t KeywordType) Valid() bool {
	switch t {
	case KeywordManual, KeywordModelType, KeywordML:
		return true
	}
	return false
}

// ParseKeywordType converts a string to a KeywordType.
func ParseKeywordType(s string) (KeywordType, error) {
	t := KeywordType(s)
	if !t.Valid() {
		return "", fmt.Errorf("%w: unknown keyword type %q", ErrInvalidInput, s)
	}
	return t, nil
}

// Keyword is a tag attached to a document.
// Two keywords are the same keyword when their values are equal, whatever their type.
type Keyword struct {
	Value string      `json:"value" yaml:"value"`
	Type  KeywordType `json:"type" yaml:"type"`
}

// KeywordCatalogEntry is a known keyword together with the ancestor ids
// that are applied along with it.
type KeywordCatalogEntry struct {
	// ID is the keyword value.
	ID string `json:"id" yaml:"id"`

	// KWM is the display label of the keyword model the entry belongs to.
	KWM string `json:"kwm" yaml:"kwm"`

	// Parents are ancestor entry ids, applied in order after ID.
	Parents []string `json:"parents" yaml:"parents"`
}

// ApplyIDs returns the ordered ids to apply for this entry: the entry itself
// followed by its parents.
func (e KeywordCatalogEntry) ApplyIDs() []string {
	ids := make([]string, 0, len(e.Parents)+1)
	ids = append(ids, e.ID)
	return append(ids, e.Parents...)
}

// KeywordModel is a predefined hierarchy of keywords.
type KeywordModel struct {
	ID string `json:"id" yaml:"id"`

	// Hierarchy is the serialised model tree as stored by the backend.
	Hierarchy string `json:"hierarchy" yaml:"hierarchy"`

	Keywords []string `json:"keywords" yaml:"keywords"`
}
