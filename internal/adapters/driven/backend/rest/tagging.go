package rest

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/Alma-hanif/infinitag/internal/core/domain"
)

// SubmitTagging posts a tagging job. Any HTTP reply is returned as a
// response; only transport failures are errors.
func (c *Client) SubmitTagging(ctx context.Context, req domain.TaggingRequest) (*domain.TaggingResponse, error) {
	body := taggingRequestDTO{
		TaggingMethod: taggingMethodDTO{Name: req.Method.Name, Type: string(req.Method.Type)},
		Documents:     make([]documentDTO, len(req.Documents)),
		JobID:         req.JobID,
	}
	if req.KeywordModel != nil {
		body.KeywordModel = &keywordModelDTO{
			ID:        req.KeywordModel.ID,
			Hierarchy: req.KeywordModel.Hierarchy,
			Keywords:  req.KeywordModel.Keywords,
		}
	}
	for i := range req.Documents {
		body.Documents[i] = toDocumentDTO(&req.Documents[i])
	}
	data, err := marshalJSON(body)
	if err != nil {
		return nil, err
	}

	resp, err := c.do(ctx, http.MethodPost, "/apply", data, "application/json")
	if err != nil {
		var apiErr *APIError
		if errors.As(err, &apiErr) {
			return &domain.TaggingResponse{Status: apiErr.StatusCode, Message: apiErr.Message}, nil
		}
		return nil, fmt.Errorf("apply tagging: %w", err)
	}
	defer resp.Body.Close()

	msg, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	return &domain.TaggingResponse{Status: resp.StatusCode, Message: strings.TrimSpace(string(msg))}, nil
}

// Health returns the status reported by the backend.
func (c *Client) Health(ctx context.Context) (string, error) {
	var out healthDTO
	if err := c.doJSON(ctx, http.MethodGet, "/health", nil, &out); err != nil {
		return "", fmt.Errorf("health: %w", err)
	}
	return out.Status, nil
}

func marshalJSON(v any) (io.Reader, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("marshal request: %w", err)
	}
	return bytes.NewReader(data), nil
}
