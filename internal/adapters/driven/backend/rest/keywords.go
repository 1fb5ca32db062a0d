package rest

import (
	"context"
	"fmt"
	"net/http"

	"github.com/Alma-hanif/infinitag/internal/core/domain"
)

// FetchKeywordCatalog returns the known keywords with their parents.
func (c *Client) FetchKeywordCatalog(ctx context.Context) ([]domain.KeywordCatalogEntry, error) {
	var dtos []catalogEntryDTO
	if err := c.doJSON(ctx, http.MethodGet, "/keywordlist", nil, &dtos); err != nil {
		return nil, fmt.Errorf("fetch keyword list: %w", err)
	}
	entries := make([]domain.KeywordCatalogEntry, len(dtos))
	for i, dto := range dtos {
		entries[i] = domain.KeywordCatalogEntry{ID: dto.ID, KWM: dto.KWM, Parents: dto.Parents}
	}
	return entries, nil
}

// FetchKeywordModels returns the predefined keyword models.
func (c *Client) FetchKeywordModels(ctx context.Context) ([]domain.KeywordModel, error) {
	var dtos []keywordModelDTO
	if err := c.doJSON(ctx, http.MethodGet, "/models", nil, &dtos); err != nil {
		return nil, fmt.Errorf("fetch keyword models: %w", err)
	}
	models := make([]domain.KeywordModel, len(dtos))
	for i, dto := range dtos {
		models[i] = domain.KeywordModel{ID: dto.ID, Hierarchy: dto.Hierarchy, Keywords: dto.Keywords}
	}
	return models, nil
}
