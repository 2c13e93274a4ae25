package yatranslate

import (
	"context"
	"encoding/json"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httputil"
	"net/url"
	"path"
	"strconv"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
)

const (
	baseURL = "https://translate.yandex.net/api/v1.5/tr"
	version = "0.1.0"

	defaultTimeout = 60 * time.Second

	// maxErrorBodySize bounds how much of a failed response is read for its detail message.
	maxErrorBodySize = 64 * 1024
)

// Logical endpoint names understood by makeURL.
const (
	endpointLangs     = "langs"
	endpointDetect    = "detect"
	endpointTranslate = "translate"
)

// endpoints maps logical endpoint names to URL path segments.
var endpoints = map[string]string{
	endpointLangs:     "getLangs",
	endpointDetect:    "detect",
	endpointTranslate: "translate",
}

// Format selects the response format requested from the API.
type Format int8

const (
	// FormatJSON requests JSON responses. It is the default.
	FormatJSON Format = iota
	// FormatXML requests XML responses.
	FormatXML
)

// String returns the string representation of the Format.
func (f Format) String() string {
	if f == FormatXML {
		return "xml"
	}
	return "json"
}

// suffix is appended to the base URL to select the response format.
func (f Format) suffix() string {
	if f == FormatXML {
		return ""
	}
	return ".json"
}

// Client represents a Yandex Translate API client.
//
// A Client is not safe for concurrent use: the language cache is not guarded.
type Client struct {
	apiKey     string             // API authentication key
	baseURL    string             // Base URL without the format suffix
	suffix     string             // ".json" in JSON mode, empty in XML mode
	format     Format             // Requested response format
	userAgent  string             // User-Agent header value sent with requests
	httpClient *http.Client       // Underlying HTTP client used for requests
	logger     logrus.FieldLogger // Receives request logs and probe warnings
	trace      bool               // Dump requests and responses through logger
	langs      langsSlot          // Last fetched language list
}

// Option defines a functional option for configuring the Client.
type Option func(c *Client)

// NewClient creates a new Yandex Translate API client with the given API key and optional configurations.
// An empty key is rejected with the 401 Error before anything else happens.
func NewClient(apiKey string, opts ...Option) (*Client, error) {
	if apiKey == "" {
		return nil, NewError(http.StatusUnauthorized)
	}

	client := &Client{
		apiKey:  apiKey,
		baseURL: baseURL,
		format:  FormatJSON,
		httpClient: &http.Client{
			Timeout: defaultTimeout,
		},
		userAgent: "yatranslate-go/" + version,
		logger:    logrus.New(),
	}
	for _, opt := range opts {
		opt(client)
	}

	client.suffix = client.format.suffix()
	if client.trace {
		prev := client.httpClient.Transport
		if prev == nil {
			prev = http.DefaultTransport
		}
		client.httpClient.Transport = &loggingRoundTripper{
			Proxied: prev,
			Logger:  client.logger,
		}
	}
	return client, nil
}

// WithFormat returns an Option that selects the response format.
func WithFormat(format Format) Option {
	return func(c *Client) {
		c.format = format
	}
}

// WithBaseURL returns an Option that sets a custom base URL for the client.
// The format suffix and endpoint path are appended to it.
func WithBaseURL(baseURL string) Option {
	return func(c *Client) {
		c.baseURL = strings.TrimSuffix(baseURL, "/")
	}
}

// WithUserAgent returns an Option that sets the User-Agent header for HTTP requests.
func WithUserAgent(userAgent string) Option {
	return func(c *Client) {
		c.userAgent = userAgent
	}
}

// WithHTTPClient returns an Option that replaces the underlying HTTP client.
// The client is copied, so later options never modify the caller's value.
func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *Client) {
		if httpClient != nil {
			hc := *httpClient
			c.httpClient = &hc
		}
	}
}

// WithTimeout returns an Option that sets the timeout of the underlying HTTP client.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		c.httpClient.Timeout = timeout
	}
}

// WithProxy returns an Option that configures the client to use the specified proxy URL.
func WithProxy(proxy url.URL) Option {
	return func(c *Client) {
		c.httpClient.Transport = &http.Transport{
			Proxy: http.ProxyURL(&proxy),
		}
	}
}

// WithLogger returns an Option that sets the logger used by the client.
func WithLogger(logger logrus.FieldLogger) Option {
	return func(c *Client) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithTrace returns an Option that enables HTTP request and response logging for debugging.
// Dumps include the API key.
func WithTrace() Option {
	return func(c *Client) {
		c.trace = true
	}
}

// Format returns the response format the client requests.
func (c *Client) Format() Format {
	return c.format
}

// payload is the result of a combined request. Exactly one field is set.
type payload struct {
	raw  []byte          // JSONP callback response
	json json.RawMessage // JSON mode
	xml  *Node           // XML mode
}

// errorResponse represents the error message returned by the API in JSON or XML format.
type errorResponse struct {
	Code    int    `json:"code" xml:"code,attr"`
	Message string `json:"message" xml:"message,attr"`
}

// makeURL joins the base URL (or override, when non-empty) with the endpoint path.
func (c *Client) makeURL(endpoint, override string) (string, error) {
	segment, ok := endpoints[endpoint]
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownEndpoint, endpoint)
	}
	if override != "" {
		return override + segment, nil
	}
	return c.baseURL + c.suffix + "/" + segment, nil
}

// makeCombinedRequest resolves the endpoint and dispatches to the raw, XML or JSON
// request depending on the callback parameter and the configured format.
func (c *Client) makeCombinedRequest(ctx context.Context, endpoint string, post bool, p Params, extra url.Values) (*payload, error) {
	u, err := c.makeURL(endpoint, "")
	if err != nil {
		return nil, err
	}
	values := c.formParams(p, extra)

	switch {
	case values.Has(paramCallback):
		raw, err := c.makeRequest(ctx, u, post, values, p.Proxy)
		if err != nil {
			return nil, err
		}
		return &payload{raw: raw}, nil
	case c.format == FormatXML:
		root, err := c.makeRequestXML(ctx, u, post, values, p.Proxy)
		if err != nil {
			return nil, err
		}
		return &payload{xml: root}, nil
	default:
		data, err := c.makeRequestJSON(ctx, u, post, values, p.Proxy)
		if err != nil {
			return nil, err
		}
		return &payload{json: data}, nil
	}
}

// makeRequestJSON performs the request and returns the body as validated JSON.
func (c *Client) makeRequestJSON(ctx context.Context, rawURL string, post bool, values url.Values, proxy *url.URL) (json.RawMessage, error) {
	body, err := c.makeRequest(ctx, rawURL, post, values, proxy)
	if err != nil {
		return nil, err
	}
	var data json.RawMessage
	if err := json.Unmarshal(body, &data); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}
	return data, nil
}

// makeRequestXML performs the request and parses the body into a Node tree.
func (c *Client) makeRequestXML(ctx context.Context, rawURL string, post bool, values url.Values, proxy *url.URL) (*Node, error) {
	body, err := c.makeRequest(ctx, rawURL, post, values, proxy)
	if err != nil {
		return nil, err
	}
	return parseXML(body)
}

// makeRequest sends a GET or POST request and returns the raw response body.
// Statuses of 400 and above are returned as *Error without decoding the payload.
// Transport errors are returned as they come from the HTTP client.
func (c *Client) makeRequest(ctx context.Context, rawURL string, post bool, values url.Values, proxy *url.URL) (body []byte, err error) {
	req, err := c.newRequest(ctx, rawURL, post, values)
	if err != nil {
		return nil, err
	}
	endpoint := path.Base(req.URL.Path)

	start := time.Now()
	res, err := c.clientFor(proxy).Do(req)
	if err != nil {
		observeRequest(endpoint, "error", time.Since(start))
		c.logger.WithError(err).WithFields(logrus.Fields{
			"endpoint": endpoint,
			"method":   req.Method,
		}).Debug("Request failed")
		return nil, err
	}

	defer func() {
		if closeErr := res.Body.Close(); closeErr != nil {
			err = errors.Join(err, closeErr)
		}
	}()

	duration := time.Since(start)
	observeRequest(endpoint, strconv.Itoa(res.StatusCode), duration)
	c.logger.WithFields(logrus.Fields{
		"endpoint":    endpoint,
		"method":      req.Method,
		"status_code": res.StatusCode,
		"duration_ms": duration.Milliseconds(),
	}).Debug("Request completed")

	if res.StatusCode >= http.StatusBadRequest {
		apiErr := NewError(res.StatusCode)
		apiErr.Detail = decodeErrorDetail(res.Body)
		return nil, apiErr
	}

	body, err = io.ReadAll(res.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}
	return body, nil
}

// newRequest builds the HTTP request. GET carries values in the query string,
// POST sends them form-encoded in the body.
func (c *Client) newRequest(ctx context.Context, rawURL string, post bool, values url.Values) (*http.Request, error) {
	var req *http.Request
	if post {
		r, err := http.NewRequestWithContext(ctx, http.MethodPost, rawURL, strings.NewReader(values.Encode()))
		if err != nil {
			return nil, err
		}
		r.Header.Set("Content-Type", "application/x-www-form-urlencoded")
		req = r
	} else {
		u, err := url.Parse(rawURL)
		if err != nil {
			return nil, err
		}
		query := u.Query()
		for name, vals := range values {
			query[name] = vals
		}
		u.RawQuery = query.Encode()
		r, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
		if err != nil {
			return nil, err
		}
		req = r
	}

	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}
	return req, nil
}

// clientFor returns the HTTP client to use for a request, routed through proxy when set.
func (c *Client) clientFor(proxy *url.URL) *http.Client {
	if proxy == nil {
		return c.httpClient
	}
	hc := *c.httpClient
	hc.Transport = proxiedTransport(c.httpClient.Transport, proxy)
	return &hc
}

// proxiedTransport returns a copy of rt routed through proxy. Transports it
// cannot reconfigure are returned unchanged.
func proxiedTransport(rt http.RoundTripper, proxy *url.URL) http.RoundTripper {
	switch t := rt.(type) {
	case nil:
		return proxiedTransport(http.DefaultTransport, proxy)
	case *http.Transport:
		tr := t.Clone()
		tr.Proxy = http.ProxyURL(proxy)
		return tr
	case *loggingRoundTripper:
		return &loggingRoundTripper{
			Proxied: proxiedTransport(t.Proxied, proxy),
			Logger:  t.Logger,
		}
	default:
		return rt
	}
}

// decodeErrorDetail extracts the server's message from an error body, JSON or XML.
func decodeErrorDetail(r io.Reader) string {
	data, err := io.ReadAll(io.LimitReader(r, maxErrorBodySize))
	if err != nil || len(data) == 0 {
		return ""
	}
	var errRes errorResponse
	if err := json.Unmarshal(data, &errRes); err == nil {
		return errRes.Message
	}
	if err := xml.Unmarshal(data, &errRes); err == nil {
		return errRes.Message
	}
	return ""
}

// loggingRoundTripper is an http.RoundTripper that logs HTTP requests and responses.
type loggingRoundTripper struct {
	Proxied http.RoundTripper
	Logger  logrus.FieldLogger
}

// RoundTrip implements the RoundTripper interface.
// It logs the outgoing HTTP request and the incoming HTTP response for debugging.
func (lrt *loggingRoundTripper) RoundTrip(req *http.Request) (*http.Response, error) {
	reqDump, err := httputil.DumpRequestOut(req, true)
	if err != nil {
		lrt.Logger.WithError(err).Warn("Error dumping request")
	} else {
		lrt.Logger.Infof("HTTP Request:\n%s", string(reqDump))
	}

	res, err := lrt.Proxied.RoundTrip(req)
	if err != nil {
		lrt.Logger.WithError(err).Warn("Error during round trip")
		return nil, err
	}

	resDump, err := httputil.DumpResponse(res, true)
	if err != nil {
		lrt.Logger.WithError(err).Warn("Error dumping response")
	} else {
		lrt.Logger.Infof("HTTP Response:\n%s", string(resDump))
	}

	return res, nil
}
