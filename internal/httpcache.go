/* Copyright © 2025-2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package internal

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gregjones/httpcache"
)

// NewCachedHttpClient returns an http.Client that caches responses in cache,
// typically an s3store.Store shared with other instances. A nil cache falls
// back to an in-memory cache instead of no cache. It also enforces a
// client-side TTL by rewriting origin cache headers.
func NewCachedHttpClient(cache httpcache.Cache, maxAge time.Duration) *http.Client {
	return newCachedHttpClient(cache, maxAge, http.DefaultTransport)
}

func newCachedHttpClient(cache httpcache.Cache, maxAge time.Duration,
	next http.RoundTripper) *http.Client {

	if cache == nil {
		cache = httpcache.NewMemoryCache()
	}

	hc := httpcache.NewTransport(cache)
	// the TTL has to be applied below httpcache so that it sees the rewritten
	// headers when deciding whether to store a response
	hc.Transport = &ttlTransport{
		next:   next,
		maxAge: maxAge,
	}

	return &http.Client{Transport: hc}
}

// ttlTransport tags outgoing requests with our user agent and replaces the
// origin's caching policy on the way back.
type ttlTransport struct {
	next   http.RoundTripper
	maxAge time.Duration
}

func (t *ttlTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	if req.Header.Get("User-Agent") == "" {
		// RoundTrippers must not modify the caller's request
		req = req.Clone(req.Context())
		req.Header.Set("User-Agent", UserAgent)
	}

	resp, err := t.next.RoundTrip(req)
	if err != nil {
		return nil, err
	}
	t.rewrite(resp.Header, resp.StatusCode)

	return resp, nil
}

// rewrite makes successful documents cacheable for maxAge and everything
// else uncacheable, whatever the origin asked for.
func (t *ttlTransport) rewrite(header http.Header, status int) {
	header.Del("Pragma")
	header.Del("Expires")
	if status != http.StatusOK {
		header.Set("Cache-Control", "no-store")
		return
	}
	header.Set("Cache-Control", fmt.Sprintf("public, max-age=%d",
		int(t.maxAge/time.Second)))
}
