package rest

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/Alma-hanif/infinitag/internal/core/domain"
	"github.com/Alma-hanif/infinitag/internal/logger"
)

// documentDTO is a document as sent over the wire.
// The size and creation date arrive in several shapes and are normalised on
// decode.
type documentDTO struct {
	ID           string       `json:"id"`
	Title        string       `json:"title,omitempty"`
	Type         string       `json:"type,omitempty"`
	Language     string       `json:"language,omitempty"`
	Size         any          `json:"size,omitempty"`
	CreationDate any          `json:"creation_date,omitempty"`
	Keywords     []keywordDTO `json:"keywords"`
}

type keywordDTO struct {
	Value string `json:"value"`
	Type  string `json:"type"`
}

type catalogEntryDTO struct {
	ID      string   `json:"id"`
	KWM     string   `json:"kwm"`
	Parents []string `json:"parents"`
}

type keywordModelDTO struct {
	ID        string   `json:"id"`
	Hierarchy string   `json:"hierarchy"`
	Keywords  []string `json:"keywords"`
}

type taggingMethodDTO struct {
	Name string `json:"name"`
	Type string `json:"type"`
}

type taggingRequestDTO struct {
	TaggingMethod taggingMethodDTO `json:"taggingMethod"`
	KeywordModel  *keywordModelDTO `json:"keywordModel"`
	Documents     []documentDTO    `json:"documents"`
	JobID         string           `json:"jobId"`
}

type changeKeywordsDTO struct {
	ID       string       `json:"id"`
	Keywords []keywordDTO `json:"keywords"`
}

type documentRefDTO struct {
	ID string `json:"id"`
}

type healthDTO struct {
	Status string `json:"status"`
}

type messageDTO struct {
	Message string `json:"message"`
	Error   string `json:"error"`
}

func toDocumentDTO(doc *domain.Document) documentDTO {
	dto := documentDTO{
		ID:       doc.ID,
		Title:    doc.Title,
		Type:     doc.Type,
		Language: doc.Language,
		Size:     doc.Size,
		Keywords: toKeywordDTOs(doc.Keywords),
	}
	if !doc.CreationDate.IsZero() {
		dto.CreationDate = doc.CreationDate.UTC().Format(time.RFC3339)
	}
	return dto
}

func toKeywordDTOs(keywords []domain.Keyword) []keywordDTO {
	out := make([]keywordDTO, len(keywords))
	for i, kw := range keywords {
		out[i] = keywordDTO{Value: kw.Value, Type: string(kw.Type)}
	}
	return out
}

// toDomain converts the wire document. A size or creation date that cannot
// be read is logged and left zero so one bad field does not hide the row.
func (d documentDTO) toDomain() domain.Document {
	doc := domain.Document{
		ID:       d.ID,
		Title:    d.Title,
		Type:     d.Type,
		Language: d.Language,
	}
	size, err := parseSize(d.Size)
	if err != nil {
		logger.Warn("document %s: %v, showing no size", d.ID, err)
	}
	doc.Size = size

	created, err := domain.ParseCreationDate(d.CreationDate)
	if err != nil {
		logger.Warn("document %s: %v, showing no creation date", d.ID, err)
	}
	doc.CreationDate = created

	doc.Keywords = make([]domain.Keyword, 0, len(d.Keywords))
	for _, kw := range d.Keywords {
		t, err := domain.ParseKeywordType(kw.Type)
		if err != nil {
			logger.Debug("document %s: keyword %q has type %q, treating as %s", d.ID, kw.Value, kw.Type, domain.KeywordManual)
			t = domain.KeywordManual
		}
		doc.Keywords = append(doc.Keywords, domain.Keyword{Value: kw.Value, Type: t})
	}
	doc.SortKeywords()
	return doc
}

// parseSize reads a byte count sent as a number or a numeric string.
// Fractions are rounded to the nearest byte.
func parseSize(v any) (int64, error) {
	var f float64
	switch s := v.(type) {
	case nil:
		return 0, nil
	case float64:
		f = s
	case int64:
		return s, nil
	case string:
		s = strings.TrimSpace(s)
		if s == "" {
			return 0, nil
		}
		if n, err := strconv.ParseInt(s, 10, 64); err == nil {
			return n, nil
		}
		parsed, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return 0, fmt.Errorf("invalid size %q", s)
		}
		f = parsed
	default:
		return 0, fmt.Errorf("invalid size %v", v)
	}
	if f < 0 || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, fmt.Errorf("invalid size %v", v)
	}
	return int64(math.Round(f)), nil
}

// decodeDocuments accepts both a bare array and the {"docs": [...]} envelope.
func decodeDocuments(raw []byte) ([]documentDTO, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 {
		return nil, nil
	}
	var dtos []documentDTO
	if trimmed[0] == '[' {
		if err := json.Unmarshal(trimmed, &dtos); err != nil {
			return nil, err
		}
		return dtos, nil
	}
	var envelope struct {
		Docs []documentDTO `json:"docs"`
	}
	if err := json.Unmarshal(trimmed, &envelope); err != nil {
		return nil, err
	}
	return envelope.Docs, nil
}

// decodeUploaded accepts the created document, bare or wrapped in {"doc": ...}.
// An empty reply yields an empty document.
func decodeUploaded(raw []byte) (documentDTO, error) {
	var dto documentDTO
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || trimmed[0] != '{' {
		return dto, nil
	}
	var envelope struct {
		Doc *documentDTO `json:"doc"`
	}
	if err := json.Unmarshal(trimmed, &envelope); err == nil && envelope.Doc != nil {
		return *envelope.Doc, nil
	}
	if err := json.Unmarshal(trimmed, &dto); err != nil {
		return documentDTO{}, err
	}
	return dto, nil
}
