package domain

import "net/http"

// TaggingMethod names a mechanism that assigns tags to documents.
type TaggingMethod struct {
	Name string      `json:"name" yaml:"name"`
	Type KeywordType `json:"type" yaml:"type"`
}

// Built-in tagging methods offered to the user.
var (
	MethodKeywordModel = TaggingMethod{Name: "Keyword Model", Type: KeywordModelType}
	MethodAutomated    = TaggingMethod{Name: "Automated", Type: KeywordML}
)

// TaggingMethods returns the selectable tagging methods, keyword model first.
func TaggingMethods() []TaggingMethod {
	return []TaggingMethod{MethodKeywordModel, MethodAutomated}
}

// TaggingMethodByType looks up a built-in tagging method.
func TaggingMethodByType(t KeywordType) (TaggingMethod, bool) {
	for _, m := range TaggingMethods() {
		if m.Type == t {
			return m, true
		}
	}
	return TaggingMethod{}, false
}

// TaggingRequest asks the backend to run a tagging method over documents.
// It is built per submission and not kept afterwards.
type TaggingRequest struct {
	// JobID identifies the submission on the backend.
	JobID string

	// Method is the chosen tagging method.
	Method TaggingMethod

	// KeywordModel is required for the keyword model method.
	KeywordModel *KeywordModel

	// Documents are the targeted documents.
	Documents []Document
}

// TaggingResponse is the backend reply to a tagging submission.
type TaggingResponse struct {
	Status  int
	Message string
}

// OK reports whether the submission succeeded. 200 is the only success status.
func (r TaggingResponse) OK() bool {
	return r.Status == http.StatusOK
}
