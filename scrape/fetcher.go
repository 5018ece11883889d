package scrape

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/chromedp/chromedp"
	"go.uber.org/zap"
)

const userAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) " +
	"AppleWebKit/537.36 (KHTML, like Gecko) Chrome/115.0 Safari/537.36"

// Fetcher loads a page and returns its rendered HTML once the marker
// selector is present. Implementations report ErrLoadTimeout when the
// marker never appears and ErrInvalidRace when the site's error box does.
type Fetcher interface {
	Fetch(ctx context.Context, url, markerSel string) (string, error)
}

// BrowserOptions configure a scraping browser session.
type BrowserOptions struct {
	Headless      bool
	WaitSec       int
	ScreenshotDir string
}

/// Browser drives one headless Chrome session. It is a scoped resource:
// acquire with NewBrowser, release with Close on every exit path. A single
// Browser must not be shared across concurrent scrapes.
type Browser struct {
	allocCancel context.CancelFunc
	ctx         context.Context
	cancel      context.CancelFunc
	opts        BrowserOptions
}

// NewBrowser starts a Chrome session with automation signals disguised:
// the AutomationControlled blink feature and the enable-automation switch
// are turned off and a realistic user agent is set, mirroring what the
// source site is known to fingerprint.
func NewBrowser(ctx context.Context, opts BrowserOptions) (*Browser, error) {
	if opts.WaitSec <= 0 {
		opts.WaitSec = 10
	}

	allocOpts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", opts.Headless),
		chromedp.Flag("no-sandbox", true),
		chromedp.Flag("disable-dev-shm-usage", true),
		chromedp.Flag("disable-blink-features", "AutomationControlled"),
		chromedp.Flag("enable-automation", false),
		chromedp.WindowSize(1920, 1080),
		chromedp.UserAgent(userAgent),
	)

	allocCtx, allocCancel := chromedp.NewExecAllocator(ctx, allocOpts...)
	browserCtx, cancel := chromedp.NewContext(allocCtx)

	// Start the browser process now so a broken Chrome install surfaces
	// here instead of on the first Fetch.
	if err := chromedp.Run(browserCtx); err != nil {
		cancel()
		allocCancel()
		return nil, fmt.Errorf("start browser: %w", err)
	}

	return &Browser{
		allocCancel: allocCancel,
		ctx:         browserCtx,
		cancel:      cancel,
		opts:        opts,
	}, nil
}

// Close quits the browser session.
func (b *Browser) Close() {
	b.cancel()
	b.allocCancel()
}

// errorBoxSel is the site's "no such race" indicator.
const errorBoxSel = ".Race_Error_Box"

// Fetch navigates to url and returns the document HTML after markerSel
// becomes present, within the configured wait.
func (b *Browser) Fetch(ctx context.Context, url, markerSel string) (string, error) {
	timeout := time.Duration(b.opts.WaitSec) * time.Second
	runCtx, cancel := context.WithTimeout(b.ctx, timeout)
	defer cancel()

	var html string
	err := chromedp.Run(runCtx,
		chromedp.Navigate(url),
		chromedp.WaitReady(markerSel, chromedp.ByQuery),
		chromedp.OuterHTML("html", &html, chromedp.ByQuery),
	)
	if err == nil {
		return html, nil
	}

	if errors.Is(err, context.DeadlineExceeded) {
		// The marker never showed up. Distinguish a dead page from the
		// site's own error box before reporting a plain timeout.
		if b.hasErrorBox() {
			return "", ErrInvalidRace
		}
		b.screenshot(url)
		return "", fmt.Errorf("%w: %s (marker %q)", ErrLoadTimeout, url, markerSel)
	}
	if errors.Is(err, context.Canceled) {
		return "", err
	}

	b.screenshot(url)
	return "", fmt.Errorf("fetch %s: %w", url, err)
}

func (b *Browser) hasErrorBox() bool {
	checkCtx, cancel := context.WithTimeout(b.ctx, 2*time.Second)
	defer cancel()

	var count int
	err := chromedp.Run(checkCtx, chromedp.Evaluate(
		fmt.Sprintf(`document.querySelectorAll(%q).length`, errorBoxSel), &count,
	))
	return err == nil && count > 0
}

// screenshot saves a post-mortem capture of the current page. Best effort:
// a failed screenshot is logged and otherwise ignored.
func (b *Browser) screenshot(url string) {
	if b.opts.ScreenshotDir == "" {
		return
	}
	shotCtx, cancel := context.WithTimeout(b.ctx, 5*time.Second)
	defer cancel()

	var buf []byte
	if err := chromedp.Run(shotCtx, chromedp.CaptureScreenshot(&buf)); err != nil {
		zap.L().Warn("capture failure screenshot", zap.String("url", url), zap.Error(err))
		return
	}
	if err := os.MkdirAll(b.opts.ScreenshotDir, 0o755); err != nil {
		zap.L().Warn("screenshot dir", zap.Error(err))
		return
	}
	name := fmt.Sprintf("fetch_failed_%s.png", time.Now().Format("20060102_150405"))
	path := filepath.Join(b.opts.ScreenshotDir, name)
	if err := os.WriteFile(path, buf, 0o644); err != nil {
		zap.L().Warn("write screenshot", zap.String("path", path), zap.Error(err))
		return
	}
	zap.L().Info("saved failure screenshot", zap.String("path", path), zap.String("url", url))
}
