package rod

import (
	"fmt"
	"sync"

	"github.com/fwojciec/placelist"
	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
)

// DefaultRecycleAfter is the number of pages a browser serves before it is
// replaced with a fresh one.
const DefaultRecycleAfter = 50

// DefaultUserAgent is a desktop user agent; map listings render their
// results panel only for desktop clients.
const DefaultUserAgent = "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/127.0.0.0 Safari/537.36"

// browserPool owns a single headless Chrome instance and replaces it after a
// fixed number of pages. Chrome memory keeps growing on long-running
// listing sessions even when every page is closed.
type browserPool struct {
	mu           sync.Mutex
	browser      *rod.Browser
	launcher     *launcher.Launcher
	served       int
	recycleAfter int
	userAgent    string
}

func newBrowserPool(recycleAfter int, userAgent string) (*browserPool, error) {
	p := &browserPool{recycleAfter: recycleAfter, userAgent: userAgent}
	if err := p.launch(); err != nil {
		return nil, err
	}
	return p, nil
}

// acquire returns the browser for the next page, recycling it first if it
// has served recycleAfter pages. If a fresh browser cannot be launched the
// old one keeps serving.
func (p *browserPool) acquire() (*rod.Browser, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.browser == nil {
		return nil, placelist.Errorf(placelist.EINVALID, "fetcher is closed")
	}

	if p.recycleAfter > 0 && p.served >= p.recycleAfter {
		oldBrowser, oldLauncher := p.browser, p.launcher
		if err := p.launch(); err != nil {
			p.browser, p.launcher = oldBrowser, oldLauncher
		} else {
			_ = oldBrowser.Close()
			oldLauncher.Kill()
			p.served = 0
		}
	}

	p.served++
	return p.browser, nil
}

// launch starts a browser and stores it in the pool. Must be called with mu
// held or before the pool is shared.
func (p *browserPool) launch() error {
	l := launcher.New().
		Set("disable-blink-features", "AutomationControlled").
		Set("disable-dev-shm-usage").
		Set("disable-gpu").
		Set("window-size", "1400,1000").
		Set("user-agent", p.userAgent).
		Leakless(true).
		Headless(true)

	u, err := l.Launch()
	if err != nil {
		return fmt.Errorf("launching browser: %w", err)
	}

	browser := rod.New().ControlURL(u)
	if err := browser.Connect(); err != nil {
		l.Kill()
		return fmt.Errorf("connecting to browser: %w", err)
	}

	p.browser = browser
	p.launcher = l
	return nil
}

func (p *browserPool) close() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	var err error
	if p.browser != nil {
		err = p.browser.Close()
		p.browser = nil
	}
	if p.launcher != nil {
		p.launcher.Kill()
		p.launcher = nil
	}
	return err
}
