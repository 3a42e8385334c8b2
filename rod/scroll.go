package rod

import (
	"context"

	"github.com/go-rod/rod"
)

const (
	scrollToBottom   = `function() { this.scrollTop = this.scrollHeight; }`
	scrollToFallback = `function() { this.scrollTo(0, this.scrollHeight); }`
)

// scrollPanel scrolls the results panel to the bottom f.scrolls times so the
// listing loads more places. Only context cancellation is returned as an
// error; a missing panel or a failed scroll is logged and skipped.
func (f *Fetcher) scrollPanel(ctx context.Context, page *rod.Page) error {
	if f.scrolls <= 0 || f.panelSelector == "" {
		return nil
	}

	panel, err := page.Timeout(f.panelWait).Element(f.panelSelector)
	if err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		f.logger.Warn("results panel not found; skipping scrolling",
			"selector", f.panelSelector,
			"err", err,
		)
		return nil
	}
	panel = panel.CancelTimeout().Context(ctx)

	for i := range f.scrolls {
		f.logger.Debug("scroll", "iteration", i+1, "of", f.scrolls)
		if _, err := panel.Eval(scrollToBottom); err != nil {
			if _, err := panel.Eval(scrollToFallback); err != nil && ctx.Err() == nil {
				f.logger.Warn("scroll failed", "iteration", i+1, "err", err)
			}
		}
		if err := sleep(ctx, f.scrollDelay); err != nil {
			return err
		}
	}
	return nil
}
