package render

import (
	"context"
	"fmt"
	"image"
	"image/color"
	"net/http"
	"sync"
	"time"

	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	"golang.org/x/image/draw"
)

// Pixel values below this are printed black; everything else stays
// white. Thermal printers have no grey.
const monoThreshold = 128

// ImageFetcher retrieves the remote code images referenced by
// spreadsheet rows.
type ImageFetcher interface {
	Fetch(ctx context.Context, url string) (image.Image, error)
}

// RateLimiter spaces requests so bulk runs do not hammer the image host.
type RateLimiter struct {
	mu            sync.Mutex
	nextAllowedAt time.Time
	interval      time.Duration
}

func NewRateLimiter(requestsPerSecond int) *RateLimiter {
	if requestsPerSecond <= 0 {
		requestsPerSecond = 1
	}
	return &RateLimiter{interval: time.Second / time.Duration(requestsPerSecond)}
}

func (r *RateLimiter) WaitTurn() {
	r.mu.Lock()
	now := time.Now()
	scheduled := now
	if r.nextAllowedAt.After(now) {
		scheduled = r.nextAllowedAt
	}
	r.nextAllowedAt = scheduled.Add(r.interval)
	r.mu.Unlock()

	if sleep := time.Until(scheduled); sleep > 0 {
		time.Sleep(sleep)
	}
}

// HTTPFetcher downloads code images over HTTP with a shared rate limit.
type HTTPFetcher struct {
	client  *http.Client
	limiter *RateLimiter
}

func NewHTTPFetcher(timeout time.Duration, requestsPerSecond int) *HTTPFetcher {
	return &HTTPFetcher{
		client:  &http.Client{Timeout: timeout},
		limiter: NewRateLimiter(requestsPerSecond),
	}
}

func (f *HTTPFetcher) Fetch(ctx context.Context, url string) (image.Image, error) {
	f.limiter.WaitTurn()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("build image request: %w", err)
	}
	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch code image: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetch code image: status %d from %s", resp.StatusCode, url)
	}
	img, _, err := image.Decode(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("decode code image: %w", err)
	}
	return img, nil
}

// Monochrome thresholds the image to pure black and white and scales it
// to a sizePx square. Nearest-neighbor keeps module edges crisp for
// scanner readability.
func Monochrome(src image.Image, sizePx int) image.Image {
	bounds := src.Bounds()
	bw := image.NewGray(bounds)
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			g := color.GrayModel.Convert(src.At(x, y)).(color.Gray)
			if g.Y < monoThreshold {
				bw.SetGray(x, y, color.Gray{Y: 0})
			} else {
				bw.SetGray(x, y, color.Gray{Y: 255})
			}
		}
	}

	out := image.NewGray(image.Rect(0, 0, sizePx, sizePx))
	draw.NearestNeighbor.Scale(out, out.Bounds(), bw, bounds, draw.Src, nil)
	return out
}
