package imagepkg

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"net/http"
	"time"

	"github.com/disintegration/imaging"
	"golang.org/x/time/rate"

	"github.com/youruser/killfeedapp/internal/util"
)

// Fetcher downloads and decodes a remote image.
type Fetcher interface {
	Fetch(ctx context.Context, url string) (image.Image, error)
}

// HTTPFetcher is the production Fetcher. Every request is bounded by the
// client timeout and, when configured, by a shared rate limit.
type HTTPFetcher struct {
	client  *http.Client
	limiter *rate.Limiter
}

// NewHTTPFetcher returns a fetcher; ratePerSec <= 0 disables throttling.
func NewHTTPFetcher(timeout time.Duration, ratePerSec float64) *HTTPFetcher {
	f := &HTTPFetcher{client: &http.Client{Timeout: timeout}}
	if ratePerSec > 0 {
		f.limiter = rate.NewLimiter(rate.Limit(ratePerSec), max(1, int(ratePerSec)))
	}
	return f
}

func (f *HTTPFetcher) Fetch(ctx context.Context, url string) (image.Image, error) {
	if f.limiter != nil {
		if err := f.limiter.Wait(ctx); err != nil {
			return nil, err
		}
	}
	body, err := util.GetBytes(ctx, f.client, url)
	if err != nil {
		return nil, err
	}
	img, err := imaging.Decode(bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", url, err)
	}
	return img, nil
}
