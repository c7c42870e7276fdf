package out

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"

	mediaout "tutorcast/internal/modules/media/port/out"
)

const probeBytes = 4096

type HTTPAssetChecker struct {
	baseURL string
	client  *http.Client
}

func NewHTTPAssetChecker(baseURL string, client *http.Client) mediaout.AssetChecker {
	if client == nil {
		client = &http.Client{}
	}
	return &HTTPAssetChecker{baseURL: strings.TrimRight(baseURL, "/"), client: client}
}

func (c *HTTPAssetChecker) Check(ctx context.Context, path string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return fmt.Errorf("build probe request: %w", err)
	}
	req.Header.Set("Range", fmt.Sprintf("bytes=0-%d", probeBytes-1))
	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("probe asset: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusPartialContent {
		return fmt.Errorf("probe asset: unexpected status %d", resp.StatusCode)
	}
	n, err := io.Copy(io.Discard, io.LimitReader(resp.Body, probeBytes))
	if err != nil {
		return fmt.Errorf("read asset: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("asset %s is empty", path)
	}
	return nil
}
