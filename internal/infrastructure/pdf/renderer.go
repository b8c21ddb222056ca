package pdf

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"
	"github.com/sangkips/backoffice-api/internal/config"
	"go.uber.org/zap"
)

const (
	defaultTimeout = 30 * time.Second

	// A4 in inches.
	paperWidth  = 8.27
	paperHeight = 11.7
)

// ErrEmptyDocument is returned for blank HTML input.
var ErrEmptyDocument = errors.New("html document is empty")

// ChromeRenderer prints HTML to PDF through a shared Chrome allocator.
type ChromeRenderer struct {
	timeout     time.Duration
	logger      *zap.Logger
	allocCtx    context.Context
	allocCancel context.CancelFunc
}

// NewChromeRenderer prepares the allocator. Chrome itself starts lazily on
// the first render.
func NewChromeRenderer(cfg config.PDFConfig, logger *zap.Logger) *ChromeRenderer {
	if logger == nil {
		logger = zap.NewNop()
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	r := &ChromeRenderer{timeout: timeout, logger: logger}

	if cfg.ChromeURL != "" {
		r.allocCtx, r.allocCancel = chromedp.NewRemoteAllocator(context.Background(), cfg.ChromeURL)
		return r
	}

	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("disable-dev-shm-usage", true),
		chromedp.Flag("disable-extensions", true),
		chromedp.Flag("font-render-hinting", "none"),
	)
	if cfg.NoSandbox {
		opts = append(opts, chromedp.NoSandbox)
	}
	r.allocCtx, r.allocCancel = chromedp.NewExecAllocator(context.Background(), opts...)
	return r
}

// Render prints html as an A4 PDF.
func (r *ChromeRenderer) Render(ctx context.Context, html string) ([]byte, error) {
	if strings.TrimSpace(html) == "" {
		return nil, ErrEmptyDocument
	}

	start := time.Now()
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	browserCtx, browserCancel := chromedp.NewContext(r.allocCtx,
		chromedp.WithLogf(func(format string, args ...interface{}) {
			r.logger.Debug(fmt.Sprintf(format, args...))
		}),
	)
	defer browserCancel()

	// Tie the browser tab to the caller's deadline.
	stop := context.AfterFunc(ctx, browserCancel)
	defer stop()

	var pdfData []byte
	err := chromedp.Run(browserCtx,
		chromedp.Navigate("about:blank"),
		chromedp.ActionFunc(func(ctx context.Context) error {
			frameTree, err := page.GetFrameTree().Do(ctx)
			if err != nil {
				return err
			}
			return page.SetDocumentContent(frameTree.Frame.ID, html).Do(ctx)
		}),
		chromedp.ActionFunc(func(ctx context.Context) error {
			data, _, err := page.PrintToPDF().
				WithPrintBackground(true).
				WithPaperWidth(paperWidth).
				WithPaperHeight(paperHeight).
				WithPreferCSSPageSize(true).
				Do(ctx)
			if err != nil {
				return err
			}
			pdfData = data
			return nil
		}),
	)
	if err != nil {
		if ctx.Err() == context.DeadlineExceeded {
			return nil, fmt.Errorf("pdf rendering timed out after %v: %w", r.timeout, err)
		}
		r.logger.Error("chromedp rendering failed", zap.Error(err))
		return nil, fmt.Errorf("render pdf: %w", err)
	}
	if len(pdfData) == 0 {
		return nil, errors.New("render pdf: generated document is empty")
	}

	r.logger.Debug("pdf rendered",
		zap.Int("bytes", len(pdfData)),
		zap.Duration("duration", time.Since(start)))
	return pdfData, nil
}

// Close shuts down the browser allocator.
func (r *ChromeRenderer) Close() {
	if r.allocCancel != nil {
		r.allocCancel()
	}
}
