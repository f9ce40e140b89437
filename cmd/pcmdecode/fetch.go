// SPDX-License-Identifier: EPL-2.0

package main

import (
	"context"
	"fmt"
	"io"
	"mime"
	"net/http"
	"net/url"
	"path"
	"strings"

	"github.com/ik5/pcmdecoder/codec"
)

// maxFetchSize bounds the body read from a URL.
const maxFetchSize = 512 << 20

func isURL(s string) bool {
	return strings.HasPrefix(s, "http://") || strings.HasPrefix(s, "https://")
}

func urlPath(s string) string {
	u, err := url.Parse(s)
	if err != nil {
		return s
	}
	return u.Path
}

// fetch downloads raw into memory. The hint comes from the URL path, or
// from the Content-Type when the path has no extension.
func fetch(ctx context.Context, raw string) ([]byte, codec.Hint, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, raw, nil)
	if err != nil {
		return nil, codec.Hint{}, fmt.Errorf("fetch: %w", err)
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return nil, codec.Hint{}, fmt.Errorf("fetch: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, codec.Hint{}, fmt.Errorf("fetch: unexpected status %s", resp.Status)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxFetchSize+1))
	if err != nil {
		return nil, codec.Hint{}, fmt.Errorf("fetch: read body: %w", err)
	}
	if len(data) > maxFetchSize {
		return nil, codec.Hint{}, fmt.Errorf("fetch: body exceeds %d bytes", maxFetchSize)
	}

	hint := codec.Hint{Extension: path.Ext(urlPath(raw))}
	if hint.Extension == "" {
		hint.Extension = extFromContentType(resp.Header.Get("Content-Type"))
	}
	return data, hint, nil
}

func extFromContentType(ct string) string {
	mt, _, err := mime.ParseMediaType(ct)
	if err != nil {
		return ""
	}
	switch mt {
	case "audio/wav", "audio/x-wav", "audio/wave", "audio/vnd.wave":
		return "wav"
	case "audio/aiff", "audio/x-aiff":
		return "aiff"
	case "audio/flac", "audio/x-flac":
		return "flac"
	case "audio/ogg", "application/ogg", "audio/vorbis":
		return "ogg"
	case "audio/mpeg", "audio/mp3":
		return "mp3"
	}
	return ""
}
