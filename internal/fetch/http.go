package fetch

import (
	"context"
	"fmt"
	"net/http"
	"promptscrape/lib/restyutil"
	"promptscrape/lib/telemetry"
	"time"

	cloudflarebp "github.com/DaRealFreak/cloudflare-bp-go"
	"github.com/go-resty/resty/v2"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

const userAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/123.0.0.0 Safari/537.36"

type HTTPOptions struct {
	Timeout          time.Duration
	CloudflareBypass bool
	InstrumentOutput restyutil.InstrumentOutput
}

// HTTPFetcher fetches pages with plain GET requests, it does not run any
// javascript on the page.
type HTTPFetcher struct {
	client *resty.Client
}

func NewHTTPFetcher(opts HTTPOptions) *HTTPFetcher {
	client := resty.New()
	client.SetHeader("user-agent", userAgent)
	if opts.Timeout > 0 {
		client.SetTimeout(opts.Timeout)
	}
	if opts.CloudflareBypass {
		client.GetClient().Transport = cloudflarebp.AddCloudFlareByPass(client.GetClient().Transport)
	}

	telemetry.InstrumentResty(client, "promptscrape/fetch/http")
	restyutil.InstrumentClient(client, opts.InstrumentOutput)

	return &HTTPFetcher{client: client}
}

func (f *HTTPFetcher) Fetch(ctx context.Context, url string) (string, error) {
	ctx, span := tracer.Start(ctx, "http:Fetch")
	defer span.End()
	span.SetAttributes(attribute.String("url", url))

	res, err := f.client.R().
		SetContext(ctx).
		Get(url)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to fetch")
		return "", fmt.Errorf("fetch %s: %w", url, err)
	}

	span.SetAttributes(attribute.Int("status", res.StatusCode()))
	if res.StatusCode() == http.StatusNotFound {
		return "", ErrNotFound
	}
	return res.String(), nil
}
