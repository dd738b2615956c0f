package scraper

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/go-resty/resty/v2"
	"github.com/intelligrit/osrs-drops/internal/model"
)

// DefaultUserAgent identifies the client to the wiki.
const DefaultUserAgent = "osrs-drops/1.0 (+https://github.com/intelligrit/osrs-drops)"

var (
	// ErrFetch marks failures to retrieve a page: transport errors and
	// non-2xx responses.
	ErrFetch = errors.New("fetching wiki page")
	// ErrNoName is returned for names that sanitize to nothing.
	ErrNoName = errors.New("empty monster name")
)

// Options configures a Client. Zero fields fall back to defaults.
type Options struct {
	Origin    string
	UserAgent string
	Timeout   time.Duration
	Retries   int
	// RateLimit is requests per second; zero disables pacing.
	RateLimit float64
	Logger    *slog.Logger
}

// Client fetches monster pages and extracts their drop tables. It is safe
// for concurrent use.
type Client struct {
	http      *resty.Client
	limiter   *RateLimiter
	extractor Extractor
	origin    string
	log       *slog.Logger
}

// NewClient builds a Client from opts.
func NewClient(opts Options) *Client {
	if opts.Origin == "" {
		opts.Origin = DefaultOrigin
	}
	opts.Origin = strings.TrimRight(opts.Origin, "/")
	if opts.UserAgent == "" {
		opts.UserAgent = DefaultUserAgent
	}
	if opts.Timeout <= 0 {
		opts.Timeout = 30 * time.Second
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}

	httpClient := resty.New().
		SetBaseURL(opts.Origin).
		SetHeader("User-Agent", opts.UserAgent).
		SetTimeout(opts.Timeout).
		SetRetryCount(opts.Retries)

	c := &Client{
		http:      httpClient,
		limiter:   NewRateLimiter(opts.RateLimit),
		extractor: Extractor{Origin: opts.Origin},
		origin:    opts.Origin,
		log:       opts.Logger,
	}
	c.instrument()
	return c
}

// Origin returns the wiki origin used for requests and image URLs.
func (c *Client) Origin() string {
	return c.origin
}

// WikiURL returns the page URL for name.
func (c *Client) WikiURL(name string) string {
	return WikiURL(c.origin, name)
}

// DropsURL returns the drops section link for name.
func (c *Client) DropsURL(name string) string {
	return DropsURL(c.origin, name)
}

func (c *Client) instrument() {
	c.http.OnBeforeRequest(func(_ *resty.Client, req *resty.Request) error {
		c.log.DebugContext(req.Context(), "start request", "method", req.Method, "url", req.URL)
		return nil
	})
	c.http.OnAfterResponse(func(_ *resty.Client, res *resty.Response) error {
		c.log.DebugContext(res.Request.Context(), "finish request",
			"url", res.Request.URL,
			"status", res.StatusCode(),
			"bytes", len(res.Body()),
			"elapsed", res.Time(),
		)
		return nil
	})
	c.http.OnError(func(req *resty.Request, err error) {
		c.log.DebugContext(req.Context(), "request failed", "url", req.URL, "err", err)
	})
}

// fetch returns the body of the page at path.
func (c *Client) fetch(ctx context.Context, path string) (string, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return "", fmt.Errorf("rate limiter: %w", err)
	}

	res, err := c.http.R().SetContext(ctx).Get(path)
	if err != nil {
		return "", fmt.Errorf("%w %s: %w", ErrFetch, path, err)
	}
	if !res.IsSuccess() {
		return "", fmt.Errorf("%w %s: status %d", ErrFetch, path, res.StatusCode())
	}

	return res.String(), nil
}

// FetchDrops fetches the page for name and extracts its drop tables. Fetch
// failures wrap ErrFetch; a page with no recognizable tables, or an empty
// body, gives an empty result and no error.
func (c *Client) FetchDrops(ctx context.Context, name string) (*model.DropTables, error) {
	if SanitizeName(name) == "" {
		return nil, ErrNoName
	}

	body, err := c.fetch(ctx, pagePath(name))
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(body) == "" {
		return model.NewDropTables(), nil
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("parsing %s HTML: %w", name, err)
	}

	return c.extractor.Extract(doc), nil
}

// FetchMonster is FetchDrops with the page title, links and scrape time
// attached.
func (c *Client) FetchMonster(ctx context.Context, name string) (*model.MonsterDrops, error) {
	tables, err := c.FetchDrops(ctx, name)
	if err != nil {
		return nil, err
	}
	return &model.MonsterDrops{
		Page:      SanitizeName(name),
		URL:       c.WikiURL(name),
		DropsURL:  c.DropsURL(name),
		ScrapedAt: time.Now().UTC().Format(time.RFC3339),
		Tables:    tables,
	}, nil
}

// Drops is FetchDrops without the error: any failure is logged and gives an
// empty result.
func (c *Client) Drops(ctx context.Context, name string) *model.DropTables {
	tables, err := c.FetchDrops(ctx, name)
	if err != nil {
		c.log.WarnContext(ctx, "drop lookup failed", "monster", name, "err", err)
		return model.NewDropTables()
	}
	return tables
}
