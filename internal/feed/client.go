package feed

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/valyala/fasthttp"

	"league-tracker/internal/constants"
)

// ErrNotCSV means the endpoint answered with something that is recognizably
// not the published sheet (an HTML error page, a redirect stub, an empty
// body). Callers fall back to the stored snapshot on this error.
var ErrNotCSV = errors.New("feed: response is not CSV")

// Client fetches the published spreadsheet feeds. It performs no retries
// itself; the refresh service decides what to do on failure.
type Client struct {
	client *fasthttp.Client
}

func NewClient() *Client {
	return &Client{
		client: &fasthttp.Client{
			MaxConnsPerHost:     16,
			ReadTimeout:         constants.FeedTimeout,
			WriteTimeout:        constants.FeedTimeout,
			MaxIdleConnDuration: 1 * time.Minute,
		},
	}
}

// Fetch downloads one feed as text. The context deadline bounds the whole
// request; published sheets answer with redirects, so those are followed.
func (c *Client) Fetch(ctx context.Context, url string) (string, error) {
	req := fasthttp.AcquireRequest()
	resp := fasthttp.AcquireResponse()
	defer fasthttp.ReleaseRequest(req)
	defer fasthttp.ReleaseResponse(resp)

	req.SetRequestURI(url)
	req.Header.SetMethod(fasthttp.MethodGet)

	deadline, ok := ctx.Deadline()
	if !ok {
		deadline = time.Now().Add(constants.FeedTimeout)
	}
	if err := c.doRedirects(req, resp, deadline); err != nil {
		return "", fmt.Errorf("feed: fetch %s: %w", url, err)
	}

	if resp.StatusCode() != fasthttp.StatusOK {
		return "", fmt.Errorf("%w: status %d", ErrNotCSV, resp.StatusCode())
	}

	body := string(resp.Body())
	if looksLikeMarkup(body) {
		return "", ErrNotCSV
	}
	return body, nil
}

// doRedirects follows up to a handful of redirects, re-checking the deadline
// at each hop. fasthttp's DoDeadline does not follow redirects on its own.
func (c *Client) doRedirects(req *fasthttp.Request, resp *fasthttp.Response, deadline time.Time) error {
	for hop := 0; hop < constants.FeedMaxRedirects; hop++ {
		if err := c.client.DoDeadline(req, resp, deadline); err != nil {
			return err
		}
		status := resp.StatusCode()
		if status < 300 || status >= 400 {
			return nil
		}
		location := resp.Header.Peek(fasthttp.HeaderLocation)
		if len(location) == 0 {
			return nil
		}
		req.URI().UpdateBytes(location)
		resp.Reset()
	}
	return fmt.Errorf("too many redirects")
}

func looksLikeMarkup(body string) bool {
	trimmed := strings.TrimSpace(body)
	return trimmed == "" || strings.HasPrefix(trimmed, "<")
}
