/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

package load

import (
	"context"
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"
	"time"

	"bennypowers.dev/snipshift/internal/version"
)

const (
	// DefaultTimeout bounds a single remote snippet file download.
	DefaultTimeout = 30 * time.Second

	// DefaultMaxSize caps a remote snippet file at 10 MB.
	DefaultMaxSize int64 = 10 * 1024 * 1024

	maxRedirects = 10
)

var (
	// ErrStatus is returned for any response other than 200 OK.
	ErrStatus = errors.New("unexpected response status")

	// ErrTooLarge is returned when a snippet file exceeds the size limit.
	ErrTooLarge = errors.New("snippet file exceeds the size limit")

	// ErrHTMLPage is returned when the server answers with a web page, as
	// code hosts do for a file's browser view.
	ErrHTMLPage = errors.New("received an HTML page instead of a snippet file; use a link to the raw file")

	// ErrRedirectScheme is returned when a redirect points outside http and https.
	ErrRedirectScheme = errors.New("redirect to a non-http location")

	// ErrTooManyRedirects is returned after maxRedirects redirects.
	ErrTooManyRedirects = errors.New("too many redirects")
)

// RemoteError reports a failed download of a remote snippet file.
type RemoteError struct {
	URL string

	// Status is the HTTP status code, or 0 when no response arrived.
	Status int

	Err error
}

func (e *RemoteError) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("fetching %s: HTTP %d: %v", e.URL, e.Status, e.Err)
	}
	return fmt.Sprintf("fetching %s: %v", e.URL, e.Err)
}

func (e *RemoteError) Unwrap() error {
	return e.Err
}

// Fetcher downloads the bytes of a remote snippet file.
type Fetcher interface {
	Fetch(ctx context.Context, url string) ([]byte, error)
}

// HTTPFetcher downloads snippet files over HTTP. Every error it returns is
// a *RemoteError.
type HTTPFetcher struct {
	maxSize int64
	client  *http.Client
}

// NewHTTPFetcher returns an HTTPFetcher that rejects files over maxSize bytes.
func NewHTTPFetcher(maxSize int64) *HTTPFetcher {
	return &HTTPFetcher{
		maxSize: maxSize,
		client:  &http.Client{CheckRedirect: checkRedirect},
	}
}

func checkRedirect(req *http.Request, via []*http.Request) error {
	if len(via) >= maxRedirects {
		return ErrTooManyRedirects
	}
	if !IsRemote(req.URL.String()) {
		return fmt.Errorf("%w: %s", ErrRedirectScheme, req.URL.Redacted())
	}
	return nil
}

// Fetch implements Fetcher.
func (f *HTTPFetcher) Fetch(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, &RemoteError{URL: url, Err: err}
	}
	req.Header.Set("User-Agent", "snipshift/"+version.Get())

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, &RemoteError{URL: url, Err: unwrapClientError(err)}
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, &RemoteError{URL: url, Status: resp.StatusCode, Err: ErrStatus}
	}
	if mediaType, _, err := mime.ParseMediaType(resp.Header.Get("Content-Type")); err == nil && mediaType == "text/html" {
		return nil, &RemoteError{URL: url, Status: resp.StatusCode, Err: ErrHTMLPage}
	}

	content, err := io.ReadAll(io.LimitReader(resp.Body, f.maxSize+1))
	if err != nil {
		return nil, &RemoteError{URL: url, Status: resp.StatusCode, Err: err}
	}
	if int64(len(content)) > f.maxSize {
		return nil, &RemoteError{
			URL:    url,
			Status: resp.StatusCode,
			Err:    fmt.Errorf("%w of %d bytes", ErrTooLarge, f.maxSize),
		}
	}

	return content, nil
}

// unwrapClientError drops the *url.Error layer, whose message repeats the URL.
func unwrapClientError(err error) error {
	if inner := errors.Unwrap(err); inner != nil {
		return inner
	}
	return err
}
