package rest

import (
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"path/filepath"

	"github.com/Alma-hanif/infinitag/internal/core/domain"
)

// FetchDocuments returns every document known to the backend.
func (c *Client) FetchDocuments(ctx context.Context) ([]domain.Document, error) {
	resp, err := c.do(ctx, http.MethodGet, "/documents", nil, "")
	if err != nil {
		return nil, fmt.Errorf("fetch documents: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read documents: %w", err)
	}
	dtos, err := decodeDocuments(raw)
	if err != nil {
		return nil, fmt.Errorf("decode documents: %w", err)
	}

	docs := make([]domain.Document, 0, len(dtos))
	for _, dto := range dtos {
		docs = append(docs, dto.toDomain())
	}
	return docs, nil
}

// PersistKeywords overwrites the keyword set of doc on the backend.
func (c *Client) PersistKeywords(ctx context.Context, doc *domain.Document) error {
	body := changeKeywordsDTO{ID: doc.ID, Keywords: toKeywordDTOs(doc.Keywords)}
	if err := c.doJSON(ctx, http.MethodPatch, "/changekeywords", body, nil); err != nil {
		return fmt.Errorf("change keywords of %s: %w", doc.ID, err)
	}
	return nil
}

// UploadDocument sends content as a multipart "file" field and returns the
// created document.
func (c *Client) UploadDocument(ctx context.Context, name string, content io.Reader) (*domain.Document, error) {
	pr, pw := io.Pipe()
	mw := multipart.NewWriter(pw)

	go func() {
		part, err := mw.CreateFormFile("file", filepath.Base(name))
		if err != nil {
			pw.CloseWithError(err)
			return
		}
		if _, err := io.Copy(part, content); err != nil {
			pw.CloseWithError(err)
			return
		}
		pw.CloseWithError(mw.Close())
	}()

	resp, err := c.do(ctx, http.MethodPost, "/upload", pr, mw.FormDataContentType())
	// Unblock the writer if the request ended before consuming the body.
	_ = pr.Close()
	if err != nil {
		return nil, fmt.Errorf("upload %s: %w", name, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read upload reply: %w", err)
	}
	dto, err := decodeUploaded(raw)
	if err != nil {
		return nil, fmt.Errorf("decode upload reply: %w", err)
	}
	if dto.ID == "" {
		dto.ID = filepath.Base(name)
	}
	doc := dto.toDomain()
	if doc.Title == "" {
		doc.Title = filepath.Base(name)
	}
	return &doc, nil
}

// DownloadDocuments streams the requested documents into w.
func (c *Client) DownloadDocuments(ctx context.Context, ids []string, w io.Writer) error {
	refs := make([]documentRefDTO, len(ids))
	for i, id := range ids {
		refs[i] = documentRefDTO{ID: id}
	}
	data, err := marshalJSON(refs)
	if err != nil {
		return err
	}

	resp, err := c.do(ctx, http.MethodPost, "/download", data, "application/json")
	if err != nil {
		return fmt.Errorf("download: %w", err)
	}
	defer resp.Body.Close()

	if _, err := io.Copy(w, resp.Body); err != nil {
		return fmt.Errorf("write download: %w", err)
	}
	return nil
}
