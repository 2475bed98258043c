// Package catalog is a thin client for the remote movie catalog (TMDB v3).
// It exposes title search and detail lookup, authenticates with a v4 read
// access token, and reduces every failure to ErrCatalogUnavailable or
// ErrCatalogMalformed.
package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/oauth2"
	"golang.org/x/text/language"
)

const (
	// DefaultBaseURL is the public TMDB v3 endpoint.
	DefaultBaseURL = "https://api.themoviedb.org/3"
	// DefaultTimeout bounds a single remote call.
	DefaultTimeout = 8 * time.Second

	endpointSearch = "search"
	endpointMovie  = "movie"
)

var tracer = otel.Tracer("catalog")

// SearchResult is one candidate returned by Search, in remote order.
type SearchResult struct {
	ID          int64  `json:"id"`
	Title       string `json:"title"`
	ReleaseDate string `json:"release_date"`
	PosterPath  string `json:"poster_path"`
	Overview    string `json:"overview"`
}

// Detail is the subset of a movie record needed to add it to the collection.
type Detail struct {
	ID            int64  `json:"id"`
	OriginalTitle string `json:"original_title"`
	ReleaseDate   string `json:"release_date"`
	PosterPath    string `json:"poster_path"`
	Overview      string `json:"overview"`
}

// Options configures a Client.
type Options struct {
	BaseURL      string
	Token        string
	Language     string
	IncludeAdult bool
	Timeout      time.Duration
}

// Client provides access to the remote catalog. It is safe for concurrent use.
type Client struct {
	baseURL      string
	language     string
	includeAdult bool
	timeout      time.Duration
	httpClient   *http.Client
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient overrides the default HTTP client. Bearer authentication is
// layered on top of its transport.
func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		if client != nil {
			c.httpClient = client
		}
	}
}

// New creates a catalog client.
func New(opts Options, extra ...Option) (*Client, error) {
	token := strings.TrimSpace(opts.Token)
	if token == "" {
		return nil, errors.New("catalog token required")
	}
	base := strings.TrimSpace(opts.BaseURL)
	if base == "" {
		base = DefaultBaseURL
	}
	if _, err := url.ParseRequestURI(base); err != nil {
		return nil, fmt.Errorf("parse catalog base url: %w", err)
	}
	lang := ""
	if s := strings.TrimSpace(opts.Language); s != "" {
		tag, err := language.Parse(s)
		if err != nil {
			return nil, fmt.Errorf("catalog language %q: %w", s, err)
		}
		lang = tag.String()
	}
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	c := &Client{
		baseURL:      strings.TrimRight(base, "/"),
		language:     lang,
		includeAdult: opts.IncludeAdult,
		timeout:      timeout,
		httpClient:   &http.Client{Timeout: timeout},
	}
	for _, opt := range extra {
		opt(c)
	}

	// Copy so a caller-supplied client is not mutated.
	hc := *c.httpClient
	hc.Transport = &oauth2.Transport{
		Source: oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token, TokenType: "Bearer"}),
		Base:   hc.Transport,
	}
	c.httpClient = &hc
	return c, nil
}

// Search returns the first page of title matches for query, in remote order.
func (c *Client) Search(ctx context.Context, query string) ([]SearchResult, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, ErrEmptyQuery
	}

	params := url.Values{}
	params.Set("query", query)
	params.Set("include_adult", strconv.FormatBool(c.includeAdult))
	params.Set("page", "1")
	if c.language != "" {
		params.Set("language", c.language)
	}

	var payload struct {
		Results *[]struct {
			ID          int64   `json:"id"`
			Title       string  `json:"title"`
			ReleaseDate string  `json:"release_date"`
			PosterPath  *string `json:"poster_path"`
			Overview    string  `json:"overview"`
		} `json:"results"`
	}
	check := func() error {
		if payload.Results == nil {
			return errors.New("missing results")
		}
		return nil
	}
	if err := c.get(ctx, endpointSearch, "/search/movie", params, &payload, check); err != nil {
		return nil, err
	}

	out := make([]SearchResult, 0, len(*payload.Results))
	for _, r := range *payload.Results {
		sr := SearchResult{ID: r.ID, Title: r.Title, ReleaseDate: r.ReleaseDate, Overview: r.Overview}
		if r.PosterPath != nil {
			sr.PosterPath = *r.PosterPath
		}
		out = append(out, sr)
	}
	return out, nil
}

// Movie fetches the detail record for a remote id.
func (c *Client) Movie(ctx context.Context, id int64) (*Detail, error) {
	if id <= 0 {
		return nil, ErrInvalidID
	}

	params := url.Values{}
	if c.language != "" {
		params.Set("language", c.language)
	}

	var payload struct {
		ID            int64   `json:"id"`
		OriginalTitle *string `json:"original_title"`
		ReleaseDate   *string `json:"release_date"`
		PosterPath    *string `json:"poster_path"`
		Overview      *string `json:"overview"`
	}
	check := func() error {
		var missing []string
		for _, f := range []struct {
			name string
			v    *string
		}{
			{"original_title", payload.OriginalTitle},
			{"release_date", payload.ReleaseDate},
			{"poster_path", payload.PosterPath},
			{"overview", payload.Overview},
		} {
			if f.v == nil {
				missing = append(missing, f.name)
			}
		}
		if len(missing) > 0 {
			return fmt.Errorf("missing %s", strings.Join(missing, ", "))
		}
		if strings.TrimSpace(*payload.OriginalTitle) == "" {
			return errors.New("blank original_title")
		}
		return nil
	}
	path := "/movie/" + strconv.FormatInt(id, 10)
	if err := c.get(ctx, endpointMovie, path, params, &payload, check); err != nil {
		return nil, err
	}

	return &Detail{
		ID:            id,
		OriginalTitle: *payload.OriginalTitle,
		ReleaseDate:   *payload.ReleaseDate,
		PosterPath:    *payload.PosterPath,
		Overview:      *payload.Overview,
	}, nil
}

// get performs one GET, decodes a 2xx JSON body into out and runs check on
// the decoded value. Returned errors wrap ErrCatalogUnavailable or
// ErrCatalogMalformed.
func (c *Client) get(ctx context.Context, endpoint, path string, params url.Values, out any, check func() error) error {
	ctx, span := tracer.Start(ctx, "catalog."+endpoint)
	defer span.End()
	span.SetAttributes(attribute.String("catalog.path", path))

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	endpointURL, err := url.Parse(c.baseURL + path)
	if err != nil {
		return fmt.Errorf("parse catalog url: %w", err)
	}
	endpointURL.RawQuery = params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpointURL.String(), nil)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	latency := time.Since(start)
	if err != nil {
		err = fmt.Errorf("%w: execute request (latency=%v): %v", ErrCatalogUnavailable, latency, err)
		recordSpanError(span, err)
		observe(endpoint, outcomeUnavailable, latency)
		return err
	}
	defer resp.Body.Close()
	span.SetAttributes(attribute.Int("http.status_code", resp.StatusCode))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		err = fmt.Errorf("%w: %s returned %d (latency=%v)", ErrCatalogUnavailable, endpoint, resp.StatusCode, latency)
		recordSpanError(span, err)
		observe(endpoint, outcomeUnavailable, latency)
		return err
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		// A deadline hit while streaming the body is still an availability problem.
		var ne net.Error
		if ctx.Err() != nil || (errors.As(err, &ne) && ne.Timeout()) {
			err = fmt.Errorf("%w: read response: %v", ErrCatalogUnavailable, err)
			recordSpanError(span, err)
			observe(endpoint, outcomeUnavailable, time.Since(start))
			return err
		}
		err = fmt.Errorf("%w: decode %s response: %v", ErrCatalogMalformed, endpoint, err)
		recordSpanError(span, err)
		observe(endpoint, outcomeMalformed, time.Since(start))
		return err
	}
	if check != nil {
		if err := check(); err != nil {
			err = fmt.Errorf("%w: %s response: %v", ErrCatalogMalformed, endpoint, err)
			recordSpanError(span, err)
			observe(endpoint, outcomeMalformed, time.Since(start))
			return err
		}
	}

	observe(endpoint, outcomeOK, time.Since(start))
	return nil
}

func recordSpanError(span trace.Span, err error) {
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
}
