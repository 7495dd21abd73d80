package store

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

// RESTStore talks to a hosted PostgREST-style backend. Rows are plain
// JSON objects; filters, ordering and limits map onto query parameters.
type RESTStore struct {
	baseURL string
	apiKey  string
	http    *http.Client
}

// NewRESTStore returns nil unless both the base URL and the access key
// are present. A nil handle stays nil for the lifetime of the process;
// consumers substitute fallback behavior instead of retrying.
func NewRESTStore(baseURL, apiKey string) *RESTStore {
	if baseURL == "" || apiKey == "" {
		return nil
	}
	return &RESTStore{
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
		http:    &http.Client{Timeout: 30 * time.Second},
	}
}

func (s *RESTStore) endpoint(collection string) string {
	return s.baseURL + "/rest/v1/" + collection
}

func (s *RESTStore) do(ctx context.Context, method, rawURL string, body any, prefer string) (*http.Response, error) {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("encode row: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, rawURL, reader)
	if err != nil {
		return nil, err
	}
	req.Header.Set("apikey", s.apiKey)
	req.Header.Set("Authorization", "Bearer "+s.apiKey)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if prefer != "" {
		req.Header.Set("Prefer", prefer)
	}

	resp, err := s.http.Do(req)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode >= 400 {
		defer resp.Body.Close()
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("store: %s %s: status %d: %s", method, rawURL, resp.StatusCode, strings.TrimSpace(string(msg)))
	}
	return resp, nil
}

func (s *RESTStore) Select(ctx context.Context, collection string, q Query) ([]json.RawMessage, error) {
	params := url.Values{}
	params.Set("select", "*")
	for col, val := range q.Eq {
		params.Set(col, "eq."+val)
	}
	if q.OrderBy != "" {
		dir := "asc"
		if q.Desc {
			dir = "desc"
		}
		params.Set("order", q.OrderBy+"."+dir)
	}
	if q.Limit > 0 {
		params.Set("limit", strconv.Itoa(q.Limit))
	}

	resp, err := s.do(ctx, http.MethodGet, s.endpoint(collection)+"?"+params.Encode(), nil, "")
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	var rows []json.RawMessage
	if err := json.NewDecoder(resp.Body).Decode(&rows); err != nil {
		return nil, fmt.Errorf("decode %s rows: %w", collection, err)
	}
	return rows, nil
}

func (s *RESTStore) Insert(ctx context.Context, collection string, row any) error {
	resp, err := s.do(ctx, http.MethodPost, s.endpoint(collection), row, "return=minimal")
	if err != nil {
		return err
	}
	return resp.Body.Close()
}

func (s *RESTStore) Upsert(ctx context.Context, collection string, row any) error {
	resp, err := s.do(ctx, http.MethodPost, s.endpoint(collection), row, "resolution=merge-duplicates,return=minimal")
	if err != nil {
		return err
	}
	return resp.Body.Close()
}

func (s *RESTStore) Update(ctx context.Context, collection, id string, row any) error {
	params := url.Values{}
	params.Set("id", "eq."+id)
	resp, err := s.do(ctx, http.MethodPatch, s.endpoint(collection)+"?"+params.Encode(), row, "return=minimal")
	if err != nil {
		return err
	}
	return resp.Body.Close()
}

// Delete asks for the deleted rows back so a miss is detectable; the
// backend reports 200 either way.
func (s *RESTStore) Delete(ctx context.Context, collection, id string) error {
	params := url.Values{}
	params.Set("id", "eq."+id)
	resp, err := s.do(ctx, http.MethodDelete, s.endpoint(collection)+"?"+params.Encode(), nil, "return=representation")
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	var deleted []json.RawMessage
	if err := json.NewDecoder(resp.Body).Decode(&deleted); err != nil {
		return fmt.Errorf("decode %s delete result: %w", collection, err)
	}
	if len(deleted) == 0 {
		return fmt.Errorf("delete from %s: id %s: %w", collection, id, ErrNotFound)
	}
	return nil
}

func (s *RESTStore) Close() error { return nil }
