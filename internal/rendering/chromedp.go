package rendering

import (
	"context"
	"os"
	"path/filepath"
	"time"

	"github.com/chromedp/cdproto/cdp"
	"github.com/chromedp/cdproto/emulation"
	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"
	"github.com/sirupsen/logrus"

	"github.com/jonathan/profile-card/internal/config"
	"github.com/jonathan/profile-card/internal/logging"
	"github.com/jonathan/profile-card/internal/types"
)

// DefaultTimeout bounds a single render including browser start-up.
const DefaultTimeout = 30 * time.Second

// Renderer produces the PNG image of a card.
type Renderer interface {
	Render(ctx context.Context, card types.CardData) ([]byte, error)
}

// ChromedpRenderer renders cards with a headless Chrome. Each call starts its
// own browser, so concurrent renders share nothing but the font cache.
type ChromedpRenderer struct {
	fonts      *FontCache
	chromePath string
	timeout    time.Duration
	logger     *logrus.Logger
}

// NewChromedpRenderer creates a renderer from the rendering config.
func NewChromedpRenderer(cfg config.RenderingConfig, logger *logrus.Logger) *ChromedpRenderer {
	timeout := time.Duration(cfg.TimeoutSeconds) * time.Second
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	if logger == nil {
		logger = logging.Discard()
	}
	return &ChromedpRenderer{
		fonts:      NewFontCache(cfg.FontsDir),
		chromePath: cfg.ChromePath,
		timeout:    timeout,
		logger:     logger,
	}
}

// Render lays out card and captures the CardWidth x CardHeight region of the
// page as PNG. card is used as given; callers clamp it first.
func (r *ChromedpRenderer) Render(ctx context.Context, card types.CardData) ([]byte, error) {
	start := time.Now()

	fonts, err := r.fonts.Load(ctx)
	if err != nil {
		return nil, &RenderError{Step: StepFonts, Cause: err}
	}

	html, err := BuildCardHTML(card, fonts)
	if err != nil {
		return nil, err
	}

	tmpDir, err := os.MkdirTemp("", "profile-card-")
	if err != nil {
		return nil, &RenderError{Step: StepPage, Cause: err}
	}
	defer func() { _ = os.RemoveAll(tmpDir) }()

	htmlPath := filepath.Join(tmpDir, "card.html")
	if err := os.WriteFile(htmlPath, []byte(html), 0o600); err != nil {
		return nil, &RenderError{Step: StepPage, Cause: err}
	}

	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", true),
		chromedp.Flag("no-sandbox", true),
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("disable-dev-shm-usage", true),
	)
	if r.chromePath != "" {
		opts = append(opts, chromedp.ExecPath(r.chromePath))
	}

	allocCtx, cancelAlloc := chromedp.NewExecAllocator(ctx, opts...)
	defer cancelAlloc()

	browserCtx, cancelBrowser := chromedp.NewContext(allocCtx)
	defer cancelBrowser()

	browserCtx, cancelTimeout := context.WithTimeout(browserCtx, r.timeout)
	defer cancelTimeout()

	var png []byte
	err = chromedp.Run(browserCtx,
		chromedp.EmulateViewport(CardWidth, CardHeight),
		chromedp.ActionFunc(func(ctx context.Context) error {
			return emulation.SetDefaultBackgroundColorOverride().
				WithColor(&cdp.RGBA{R: 0, G: 0, B: 0, A: 0}).
				Do(ctx)
		}),
		chromedp.Navigate("file://"+htmlPath),
		chromedp.WaitReady("#card", chromedp.ByQuery),
		chromedp.ActionFunc(func(ctx context.Context) error {
			var err error
			png, err = page.CaptureScreenshot().
				WithFormat(page.CaptureScreenshotFormatPng).
				WithClip(&page.Viewport{X: 0, Y: 0, Width: CardWidth, Height: CardHeight, Scale: 1}).
				Do(ctx)
			return err
		}),
	)
	if err != nil {
		return nil, &RenderError{Step: StepCapture, Cause: err}
	}

	r.logger.WithFields(logrus.Fields{
		"elapsed_ms": time.Since(start).Milliseconds(),
		"bytes":      len(png),
		"fonts":      len(fonts.Faces),
	}).Debug("render.ok")

	return png, nil
}
