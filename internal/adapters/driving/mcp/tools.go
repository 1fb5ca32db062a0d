package mcp

import (
	"context"
	"fmt"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/Alma-hanif/infinitag/internal/core/domain"
	"github.com/Alma-hanif/infinitag/internal/core/ports/driving"
	"github.com/Alma-hanif/infinitag/internal/logger"
)

const defaultLimit = 50

// ListDocumentsInput is the input schema for the list_documents tool.
type ListDocumentsInput struct {
	Filter  string `json:"filter,omitempty" jsonschema:"case-sensitive term matched against title, language, size, type and keywords"`
	Limit   int    `json:"limit,omitempty" jsonschema:"maximum number of documents to return (default 50)"`
	Refresh bool   `json:"refresh,omitempty" jsonschema:"fetch the documents from the server first"`
}

// ListDocumentsOutput is the output schema for the list_documents tool.
type ListDocumentsOutput struct {
	Documents []DocumentOutput `json:"documents"`
	Count     int              `json:"count"`
	Total     int              `json:"total"`
}

// DocumentOutput represents a single document.
type DocumentOutput struct {
	ID           string          `json:"id"`
	Title        string          `json:"title"`
	Type         string          `json:"type,omitempty"`
	Language     string          `json:"language,omitempty"`
	Size         int64           `json:"size"`
	CreationDate string          `json:"creation_date,omitempty"`
	Keywords     []KeywordOutput `json:"keywords"`
	Unsynced     bool            `json:"unsynced,omitempty"`
}

// KeywordOutput represents a keyword attached to a document.
type KeywordOutput struct {
	Value string `json:"value"`
	Type  string `json:"type"`
}

// SearchKeywordsInput is the input schema for the search_keywords tool.
type SearchKeywordsInput struct {
	Prefix string `json:"prefix,omitempty" jsonschema:"keyword prefix, case-insensitive; empty lists everything"`
	Limit  int    `json:"limit,omitempty" jsonschema:"maximum number of keywords to return (default 50)"`
}

// SearchKeywordsOutput is the output schema for the search_keywords tool.
type SearchKeywordsOutput struct {
	Keywords []KeywordEntryOutput `json:"keywords"`
	Count    int                  `json:"count"`
}

// KeywordEntryOutput represents a catalog keyword.
type KeywordEntryOutput struct {
	ID      string   `json:"id"`
	Model   string   `json:"model,omitempty"`
	Parents []string `json:"parents,omitempty"`
}

// KeywordChangeInput is the input schema for apply_keyword and remove_keyword.
type KeywordChangeInput struct {
	DocumentID string `json:"document_id" jsonschema:"id of the document to change"`
	Keyword    string `json:"keyword" jsonschema:"keyword value"`
}

// KeywordChangeOutput is the output schema for apply_keyword and remove_keyword.
type KeywordChangeOutput struct {
	Document   DocumentOutput `json:"document"`
	Added      []string       `json:"added,omitempty"`
	Removed    []string       `json:"removed,omitempty"`
	Duplicates []string       `json:"duplicates,omitempty"`
	Persisted  bool           `json:"persisted"`
}

// registerTools registers all tool handlers with the MCP server.
func (s *Server) registerTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "list_documents",
		Description: "List documents on the tagging server with their keywords",
	}, s.handleListDocuments)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "search_keywords",
		Description: "Find catalog keywords by prefix",
	}, s.handleSearchKeywords)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "apply_keyword",
		Description: "Attach a keyword and its parent keywords to a document",
	}, s.handleApplyKeyword)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "remove_keyword",
		Description: "Remove a keyword from a document",
	}, s.handleRemoveKeyword)
}

func (s *Server) handleListDocuments(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input ListDocumentsInput,
) (*mcp.CallToolResult, ListDocumentsOutput, error) {
	if input.Refresh || len(s.ports.Table.All()) == 0 {
		if err := s.ports.Tagging.Refresh(ctx); err != nil {
			return nil, ListDocumentsOutput{}, err
		}
	}
	limit := input.Limit
	if limit <= 0 {
		limit = defaultLimit
	}

	docs := s.ports.Table.Matching(input.Filter)
	total := len(docs)
	if len(docs) > limit {
		docs = docs[:limit]
	}
	unsynced := s.ports.Table.Unsynced()

	output := ListDocumentsOutput{
		Documents: make([]DocumentOutput, len(docs)),
		Count:     len(docs),
		Total:     total,
	}
	for i := range docs {
		output.Documents[i] = toDocumentOutput(&docs[i], unsynced)
	}
	return nil, output, nil
}

func (s *Server) handleSearchKeywords(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input SearchKeywordsInput,
) (*mcp.CallToolResult, SearchKeywordsOutput, error) {
	if s.ports.Catalog == nil {
		return nil, SearchKeywordsOutput{Keywords: []KeywordEntryOutput{}}, nil
	}
	if err := s.ensureCatalog(ctx); err != nil {
		return nil, SearchKeywordsOutput{}, err
	}
	limit := input.Limit
	if limit <= 0 {
		limit = defaultLimit
	}

	entries := s.ports.Catalog.Search(input.Prefix)
	if len(entries) > limit {
		entries = entries[:limit]
	}
	output := SearchKeywordsOutput{
		Keywords: make([]KeywordEntryOutput, len(entries)),
		Count:    len(entries),
	}
	for i, e := range entries {
		output.Keywords[i] = KeywordEntryOutput{ID: e.ID, Model: e.KWM, Parents: e.Parents}
	}
	return nil, output, nil
}

func (s *Server) handleApplyKeyword(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input KeywordChangeInput,
) (*mcp.CallToolResult, KeywordChangeOutput, error) {
	if input.DocumentID == "" || input.Keyword == "" {
		return nil, KeywordChangeOutput{}, fmt.Errorf("%w: document_id and keyword are required", domain.ErrInvalidInput)
	}

	entry := domain.KeywordCatalogEntry{ID: input.Keyword}
	if s.ports.Catalog != nil {
		if err := s.ensureCatalog(ctx); err != nil {
			logger.Warn("keyword catalog unavailable: %v", err)
		} else if found, ok := s.ports.Catalog.Entry(input.Keyword); ok {
			entry = found
		}
	}

	result, err := s.ports.Tagging.ApplyKeyword(ctx, input.DocumentID, entry)
	if result != nil {
		s.save(ctx)
	}
	if err != nil {
		return nil, KeywordChangeOutput{}, err
	}
	return nil, s.toChangeOutput(result), nil
}

func (s *Server) handleRemoveKeyword(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input KeywordChangeInput,
) (*mcp.CallToolResult, KeywordChangeOutput, error) {
	if input.DocumentID == "" || input.Keyword == "" {
		return nil, KeywordChangeOutput{}, fmt.Errorf("%w: document_id and keyword are required", domain.ErrInvalidInput)
	}

	result, err := s.ports.Tagging.RemoveKeyword(ctx, input.DocumentID, input.Keyword)
	if result != nil {
		s.save(ctx)
	}
	if err != nil {
		return nil, KeywordChangeOutput{}, err
	}
	return nil, s.toChangeOutput(result), nil
}

// ensureCatalog loads the catalog the first time it is needed.
func (s *Server) ensureCatalog(ctx context.Context) error {
	if len(s.ports.Catalog.Entries()) > 0 {
		return nil
	}
	return s.ports.Catalog.Load(ctx)
}

func (s *Server) save(ctx context.Context) {
	if s.ports.Workspace == nil {
		return
	}
	if err := s.ports.Workspace.SaveWorkspace(ctx); err != nil {
		logger.Warn("save workspace: %v", err)
	}
}

func (s *Server) toChangeOutput(result *driving.ApplyResult) KeywordChangeOutput {
	return KeywordChangeOutput{
		Document:   toDocumentOutput(&result.Document, s.ports.Table.Unsynced()),
		Added:      result.Added,
		Removed:    result.Removed,
		Duplicates: result.Duplicates,
		Persisted:  result.Persisted,
	}
}

func toDocumentOutput(doc *domain.Document, unsynced map[string]domain.UnsyncedRow) DocumentOutput {
	out := DocumentOutput{
		ID:       doc.ID,
		Title:    doc.Title,
		Type:     doc.Type,
		Language: doc.Language,
		Size:     doc.Size,
		Keywords: make([]KeywordOutput, len(doc.Keywords)),
	}
	if !doc.CreationDate.IsZero() {
		out.CreationDate = doc.CreationDate.UTC().Format(time.RFC3339)
	}
	for i, kw := range doc.Keywords {
		out.Keywords[i] = KeywordOutput{Value: kw.Value, Type: string(kw.Type)}
	}
	_, out.Unsynced = unsynced[doc.ID]
	return out
}
