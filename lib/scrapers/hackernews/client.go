package hackernews

import (
	"bytes"
	"context"
	"fmt"
	"net/http/cookiejar"
	"net/url"
	"time"

	"hnclient/lib/telemetry"

	"github.com/PuerkitoBio/goquery"
	"github.com/go-resty/resty/v2"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/codes"
)

var tracer = otel.Tracer("scrapers/hackernews")

const defaultBaseUrl = "https://news.ycombinator.com"

const userAgent = "Mozilla/5.0 (X11; Linux x86_64; rv:109.0) Gecko/20100101 Firefox/115.0"

// Client reads public Hacker News pages. It owns the session cookie jar;
// vote affordances extracted through one client are only valid for that
// client's session. See AuthenticatedClient for actions requiring an
// account.
type Client struct {
	BaseUrl *url.URL
	Http    *resty.Client
}

type ClientOptions struct {
	// BaseUrl overrides https://news.ycombinator.com, mainly for tests.
	BaseUrl string
}

func NewClient(opts ClientOptions) (*Client, error) {
	rawUrl := opts.BaseUrl
	if rawUrl == "" {
		rawUrl = defaultBaseUrl
	}
	baseUrl, err := url.Parse(rawUrl)
	if err != nil {
		return nil, err
	}

	client := resty.New()
	client.SetBaseURL(rawUrl)
	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil, err
	}
	client.SetCookieJar(jar)
	client.SetHeader("user-agent", userAgent)
	client.SetRedirectPolicy(resty.DomainCheckRedirectPolicy(baseUrl.Hostname()))
	client.SetTimeout(time.Second * 30)

	telemetry.InstrumentResty(client, "scrapers/hackernews/http")

	return &Client{
		BaseUrl: baseUrl,
		Http:    client,
	}, nil
}

func (c *Client) getDocument(ctx context.Context, path string) (*goquery.Document, error) {
	res, err := c.Http.R().
		SetContext(ctx).
		Get(path)
	if err != nil {
		return nil, err
	}
	if res.IsError() {
		return nil, StatusError{Code: res.StatusCode()}
	}
	return goquery.NewDocumentFromReader(bytes.NewBuffer(res.Body()))
}

// Top returns the posts on the given front-page listing page. Pages start
// at 1. Listing records never carry comment bodies.
func (c *Client) Top(ctx context.Context, page uint) ([]Post, error) {
	ctx, span := tracer.Start(ctx, "client:Top")
	defer span.End()

	doc, err := c.getDocument(ctx, fmt.Sprintf("news?p=%d", page))
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to fetch listing")
		return nil, err
	}
	posts, err := parseListing(doc)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to extract listing")
		return nil, err
	}
	return posts, nil
}

// Submission returns a single post with its full comment forest.
func (c *Client) Submission(ctx context.Context, id string) (Post, error) {
	ctx, span := tracer.Start(ctx, "client:Submission")
	defer span.End()

	doc, err := c.getDocument(ctx, fmt.Sprintf("item?id=%s", url.QueryEscape(id)))
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to fetch submission")
		return Post{}, err
	}
	post, err := parseSubmission(id, doc)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to extract submission")
		return Post{}, err
	}
	return post, nil
}
