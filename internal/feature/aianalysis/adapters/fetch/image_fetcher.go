// Package fetch はリモートURLからの画像取得アダプターを提供します。
package fetch

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"

	"vufs_backend/internal/feature/aianalysis/usecase"
)

// HTTPImageFetcher はHTTP経由でリモート画像を取得するImageFetcher実装です。
type HTTPImageFetcher struct {
	client *http.Client
}

// HTTPImageFetcherがImageFetcherを実装していることをコンパイル時に検証します。
var _ usecase.ImageFetcher = (*HTTPImageFetcher)(nil)

// NewHTTPImageFetcher は指定されたHTTPクライアントでHTTPImageFetcherの新しいインスタンスを生成します。
// クライアントはplatform/http.NewHTTPClientで生成されたタイムアウト付きのものを渡します。
func NewHTTPImageFetcher(client *http.Client) *HTTPImageFetcher {
	return &HTTPImageFetcher{client: client}
}

// Fetch はURLから画像バイト列を取得します。
// 画像以外のContent-Typeやサイズ上限超過はエラーとして扱います。
func (f *HTTPImageFetcher) Fetch(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("invalid image url: %w", err)
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("image fetch failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("image fetch returned status %d", resp.StatusCode)
	}

	if ct := resp.Header.Get("Content-Type"); ct != "" && !strings.HasPrefix(ct, "image/") {
		return nil, fmt.Errorf("unexpected content type %q", ct)
	}

	// 上限+1バイトで読み、超過を検出する
	data, err := io.ReadAll(io.LimitReader(resp.Body, usecase.MaxImageSize+1))
	if err != nil {
		return nil, fmt.Errorf("failed to read image body: %w", err)
	}
	if len(data) > usecase.MaxImageSize {
		return nil, fmt.Errorf("image exceeds maximum size of %d bytes", usecase.MaxImageSize)
	}
	if len(data) == 0 {
		return nil, fmt.Errorf("image body is empty")
	}

	return data, nil
}
