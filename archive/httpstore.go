/* Copyright © 2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package archive

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/mikeb26/enginetourney/internal"
)

// maximum accepted document size
const maxDocumentBytes = 16 << 20

// HTTPStore reads documents published under a base URL as
// <base>/<name>.json. It is read-only.
type HTTPStore struct {
	baseURL string
	client  *http.Client
}

var _ DocumentStore = (*HTTPStore)(nil)

// NewHTTPStore returns a store reading from baseURL through client, which is
// usually the cached client from internal.NewCachedHttpClient. A nil client
// means http.DefaultClient.
func NewHTTPStore(baseURL string, client *http.Client) *HTTPStore {
	if client == nil {
		client = http.DefaultClient
	}

	return &HTTPStore{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  client,
	}
}

func (s *HTTPStore) Load(ctx context.Context, name string) ([]byte, error) {
	if err := ValidateName(name); err != nil {
		return nil, err
	}
	docURL := s.baseURL + "/" + url.PathEscape(name) + docSuffix

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, docURL, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", internal.UserAgent)
	req.Header.Set("Accept", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("httpstore: unable to fetch %v: %w", docURL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, fmt.Errorf("%v: %w", name, ErrNotFound)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("httpstore: unexpected status fetching %v: %v",
			docURL, resp.Status)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxDocumentBytes+1))
	if err != nil {
		return nil, fmt.Errorf("httpstore: unable to read %v: %w", docURL, err)
	}
	if len(data) > maxDocumentBytes {
		return nil, fmt.Errorf("httpstore: %v exceeds %v bytes", docURL,
			maxDocumentBytes)
	}

	return data, nil
}

func (s *HTTPStore) Save(_ context.Context, name string, _ []byte) error {
	return fmt.Errorf("%v: %w", name, ErrReadOnly)
}
