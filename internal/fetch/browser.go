package fetch

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

type BrowserOptions struct {
	// path to a chromium binary, when empty rod looks one up or downloads it
	Bin     string
	Headful bool
	// per page navigation timeout
	Timeout time.Duration
	// how long the network has to be quiet for the page to count as loaded
	IdleTime time.Duration
}

// BrowserFetcher renders pages in a shared headless chromium. Every fetch
// runs in its own incognito browsing context.
type BrowserFetcher struct {
	launcher *launcher.Launcher
	browser  *rod.Browser
	timeout  time.Duration
	idle     time.Duration
}

func LaunchBrowser(ctx context.Context, opts BrowserOptions) (*BrowserFetcher, error) {
	ctx, span := tracer.Start(ctx, "browser:Launch")
	defer span.End()

	l := launcher.New().
		Context(ctx).
		Headless(!opts.Headful)
	if opts.Bin != "" {
		l = l.Bin(opts.Bin)
	}

	controlUrl, err := l.Launch()
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to launch browser")
		return nil, fmt.Errorf("launch browser: %w", err)
	}

	browser := rod.New().ControlURL(controlUrl)
	err = browser.Connect()
	if err != nil {
		l.Kill()
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to connect to browser")
		return nil, fmt.Errorf("connect to browser: %w", err)
	}
	slog.DebugContext(ctx, "browser launched", "control_url", controlUrl)

	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	idle := opts.IdleTime
	if idle <= 0 {
		idle = 500 * time.Millisecond
	}

	return &BrowserFetcher{
		launcher: l,
		browser:  browser,
		timeout:  timeout,
		idle:     idle,
	}, nil
}

func (f *BrowserFetcher) Close() error {
	err := f.browser.Close()
	f.launcher.Cleanup()
	return err
}

func (f *BrowserFetcher) Fetch(ctx context.Context, url string) (string, error) {
	ctx, span := tracer.Start(ctx, "browser:Fetch")
	defer span.End()
	span.SetAttributes(attribute.String("url", url))

	incognito, err := f.browser.Incognito()
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to create browsing context")
		return "", fmt.Errorf("create browsing context: %w", err)
	}
	defer func() {
		err := incognito.Close()
		if err != nil {
			slog.WarnContext(ctx, "failed to release browsing context", "url", url, "err", err)
		}
	}()

	page, err := incognito.Page(proto.TargetCreateTarget{})
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to open page")
		return "", fmt.Errorf("open page: %w", err)
	}
	page = page.Context(ctx).Timeout(f.timeout)
	defer page.CancelTimeout()

	html, err := f.load(page, url)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return "", err
	}
	return html, nil
}

// documentResponseFailed reports whether chromium refused to render an
// error response that came without a body.
func documentResponseFailed(err error) bool {
	var navErr *rod.NavigationError
	return errors.As(err, &navErr) && navErr.Reason == "net::ERR_HTTP_RESPONSE_CODE_FAILURE"
}

func statusError(status int) error {
	switch status {
	case 0:
		return ErrNoResponse
	case http.StatusNotFound:
		return ErrNotFound
	}
	return nil
}

func (f *BrowserFetcher) load(page *rod.Page, url string) (string, error) {
	// both waits below listen to network events, the domain has to stay
	// enabled until the last of them is done
	restore := page.EnableDomain(&proto.NetworkEnable{})
	defer restore()

	status := 0
	waitDocument := page.EachEvent(func(e *proto.NetworkResponseReceived) bool {
		if e.Type != proto.NetworkResourceTypeDocument {
			return false
		}
		status = e.Response.Status
		return true
	})
	waitIdle := page.WaitRequestIdle(f.idle, nil, nil, nil)

	err := page.Navigate(url)
	if err != nil {
		if documentResponseFailed(err) {
			waitDocument()
			if status == http.StatusNotFound {
				return "", ErrNotFound
			}
		}
		return "", fmt.Errorf("navigate %s: %w", url, err)
	}

	waitDocument()
	if err := page.GetContext().Err(); err != nil {
		return "", fmt.Errorf("navigate %s: %w", url, err)
	}
	err = statusError(status)
	if err != nil {
		return "", err
	}

	waitIdle()
	if err := page.GetContext().Err(); err != nil {
		return "", fmt.Errorf("wait for network idle %s: %w", url, err)
	}

	html, err := page.HTML()
	if err != nil {
		return "", fmt.Errorf("read html %s: %w", url, err)
	}
	return html, nil
}
