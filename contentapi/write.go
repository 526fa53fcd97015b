package contentapi

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
)

// WriteClient extends the read client with mutation and asset upload
// support. It requires a write token.
type WriteClient struct {
	*Client
}

// NewWriter builds a write client. The writer always talks to the live
// API, never the CDN.
func NewWriter(cfg Config, opts ...Option) (*WriteClient, error) {
	if cfg.Token == "" {
		return nil, errors.New("contentapi: write token is required")
	}
	cfg.UseCDN = false
	client, err := New(cfg, opts...)
	if err != nil {
		return nil, err
	}
	return &WriteClient{Client: client}, nil
}

type mutation map[string]any

type mutateResponse struct {
	Results []struct {
		ID string `json:"id"`
	} `json:"results"`
}

// Create stores a new document and returns its generated id.
func (w *WriteClient) Create(ctx context.Context, doc map[string]any) (string, error) {
	resp, err := w.mutate(ctx, []mutation{{"create": doc}})
	if err != nil {
		return "", err
	}
	if len(resp.Results) == 0 {
		return "", errors.New("contentapi: create returned no document id")
	}
	return resp.Results[0].ID, nil
}

// Patch sets fields on an existing document.
func (w *WriteClient) Patch(ctx context.Context, id string, set map[string]any) error {
	if len(set) == 0 {
		return nil
	}
	_, err := w.mutate(ctx, []mutation{{"patch": map[string]any{"id": id, "set": set}}})
	return err
}

func (w *WriteClient) mutate(ctx context.Context, mutations []mutation) (*mutateResponse, error) {
	payload, err := json.Marshal(map[string]any{"mutations": mutations})
	if err != nil {
		return nil, fmt.Errorf("contentapi: encode mutations: %w", err)
	}

	endpoint := fmt.Sprintf("%s/v%s/data/mutate/%s?returnIds=true",
		w.baseURL(), w.cfg.APIVersion, url.PathEscape(w.cfg.Dataset))

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("contentapi: build mutate request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+w.cfg.Token)

	resp, err := w.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusInternalServerError {
		return nil, fmt.Errorf("%w: status %d", ErrUnavailable, resp.StatusCode)
	}
	if resp.StatusCode != http.StatusOK {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("contentapi: mutation failed with status %d: %s", resp.StatusCode, strings.TrimSpace(string(snippet)))
	}

	var decoded mutateResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return nil, fmt.Errorf("contentapi: decode mutate response: %w", err)
	}
	return &decoded, nil
}

type assetEnvelope struct {
	Document AssetDocument `json:"document"`
}

// UploadImage stores an image asset and returns its document. Empty
// payloads are rejected by the service, so callers should skip zero-length
// files before calling.
func (w *WriteClient) UploadImage(ctx context.Context, filename, contentType string, data io.Reader) (*AssetDocument, error) {
	values := url.Values{}
	if filename != "" {
		values.Set("filename", filename)
	}
	endpoint := fmt.Sprintf("%s/v%s/assets/images/%s",
		w.baseURL(), w.cfg.APIVersion, url.PathEscape(w.cfg.Dataset))
	if encoded := values.Encode(); encoded != "" {
		endpoint += "?" + encoded
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, data)
	if err != nil {
		return nil, fmt.Errorf("contentapi: build upload request: %w", err)
	}
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("Authorization", "Bearer "+w.cfg.Token)

	resp, err := w.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("contentapi: asset upload failed with status %d: %s", resp.StatusCode, strings.TrimSpace(string(snippet)))
	}

	var envelope assetEnvelope
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		return nil, fmt.Errorf("contentapi: decode upload response: %w", err)
	}
	if envelope.Document.ID == "" {
		return nil, errors.New("contentapi: asset upload returned no document")
	}
	return &envelope.Document, nil
}

type idResult struct {
	ID string `json:"_id"`
}

// FindAuthorID resolves an existing author by slug or exact name. Returns
// an empty id when no author matches.
func (w *WriteClient) FindAuthorID(ctx context.Context, slug, name string) (string, error) {
	var out *idResult
	err := w.fetch(ctx, queryAuthorIDBySlugOrName, map[string]string{"slug": slug, "name": name}, &out)
	if err != nil {
		return "", err
	}
	if out == nil {
		return "", nil
	}
	return out.ID, nil
}

// FindCategoryID resolves an existing category by slug or exact title.
// Returns an empty id when no category matches.
func (w *WriteClient) FindCategoryID(ctx context.Context, slug, title string) (string, error) {
	var out *idResult
	err := w.fetch(ctx, queryCategoryIDBySlugOrTitle, map[string]string{"slug": slug, "title": title}, &out)
	if err != nil {
		return "", err
	}
	if out == nil {
		return "", nil
	}
	return out.ID, nil
}
