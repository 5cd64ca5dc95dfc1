package fetch

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/chromedp/chromedp"
)

// MinDescriptionLength is the shortest description a statically fetched
// posting may have before it is treated as a script-rendered page
const MinDescriptionLength = 200

// settleDelay gives client-side rendering time to fill the page
const settleDelay = 2 * time.Second

// NeedsRender reports whether a statically extracted posting looks like the
// empty shell of a JavaScript-rendered job board
func NeedsRender(p *Posting) bool {
	return p == nil || p.Title == "" || len(strings.TrimSpace(p.Description)) < MinDescriptionLength
}

// Render loads pageURL in headless Chrome and returns the rendered HTML.
// Chrome or Chromium must be installed.
func Render(ctx context.Context, pageURL string, timeout time.Duration) (string, error) {
	log.Printf("[fetch] rendering %s in headless browser", pageURL)

	allocCtx, cancel := chromedp.NewExecAllocator(ctx,
		append(chromedp.DefaultExecAllocatorOptions[:],
			chromedp.Flag("headless", true),
			chromedp.Flag("disable-gpu", true),
			chromedp.Flag("no-sandbox", true),
			chromedp.Flag("disable-dev-shm-usage", true),
			chromedp.UserAgent(DefaultUserAgent),
		)...,
	)
	defer cancel()

	browserCtx, cancel := chromedp.NewContext(allocCtx)
	defer cancel()

	browserCtx, cancel = context.WithTimeout(browserCtx, timeout)
	defer cancel()

	var html string
	err := chromedp.Run(browserCtx,
		chromedp.Navigate(pageURL),
		chromedp.WaitReady("body"),
		chromedp.Sleep(settleDelay),
		chromedp.OuterHTML("html", &html),
	)
	if err != nil {
		return "", &Error{URL: pageURL, Message: "browser rendering failed", Cause: err}
	}

	log.Printf("[fetch] rendered %s: %d bytes", pageURL, len(html))
	return html, nil
}

// renderPosting re-extracts the posting from the browser-rendered page. When
// rendering fails the static result, if any, is kept.
func renderPosting(ctx context.Context, pageURL string, opts *Options, static *Posting, staticErr error) (*Posting, error) {
	html, err := Render(ctx, pageURL, opts.Timeout)
	if err != nil {
		if static != nil {
			log.Printf("[fetch] keeping static result: %v", err)
			return static, nil
		}
		return nil, fmt.Errorf("%w (static fetch: %v)", err, staticErr)
	}

	rendered, err := ExtractPosting(html, pageURL)
	if err != nil && static != nil {
		return static, nil
	}
	return rendered, err
}
