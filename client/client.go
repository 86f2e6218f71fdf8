// Copyright 2022 Molecula Corp. (DBA FeatureBase).
// SPDX-License-Identifier: Apache-2.0
package client

import (
	"context"
	"encoding/json"
	"fmt"
	"net"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/featurebasedb/taboo"
	"github.com/featurebasedb/taboo/logger"
	"github.com/hashicorp/go-retryablehttp"
	"github.com/pkg/errors"
	"golang.org/x/time/rate"
)

const (
	// DefaultPort is the port the taboo server binds its manage API to.
	DefaultPort = 1079

	// AttachPath is the manage API endpoint for attaching items.
	AttachPath = "/attach"
)

// Names of the manage API request parameters.
const (
	ParamKey      = "key"
	ParamSign     = "sign"
	ParamPrefixes = "prefixes"
	ParamItem     = "item"
	ParamUpsert   = "upsert"
)

// ensure Client can be used by the ingest driver.
var _ taboo.Attacher = (*Client)(nil)

// Client is the HTTP client for the manage API of a taboo server.
type Client struct {
	base    *url.URL
	key     string
	signer  Signer
	upsert  bool
	retries int

	client  *retryablehttp.Client
	limiter *rate.Limiter
	logger  logger.Logger
}

// NewClient creates a client for the manage API at host:port. host may carry
// a scheme ("https://idx.example.com"); plain http is assumed otherwise. key
// and secret authenticate every request.
func NewClient(host string, port int, key, secret string, options ...ClientOption) (*Client, error) {
	clientOptions := &ClientOptions{}
	if err := clientOptions.addOptions(options...); err != nil {
		return nil, err
	}
	clientOptions = clientOptions.withDefaults()

	base, err := baseURL(host, port)
	if err != nil {
		return nil, err
	}
	if key == "" {
		return nil, ErrEmptyKey
	}

	c := &Client{
		base: base,
		key:  key,
		signer: Signer{
			Secret:    secret,
			Delimiter: clientOptions.SignDelimiter,
			Hyphen:    clientOptions.SignHyphen,
		},
		upsert:  *clientOptions.upsert,
		retries: clientOptions.Retries,
		logger:  clientOptions.logger,
	}

	c.client = retryablehttp.NewClient()
	c.client.HTTPClient.Timeout = clientOptions.Timeout
	c.client.RetryMax = clientOptions.Retries
	c.client.RetryWaitMin = clientOptions.RetryWaitMin
	c.client.RetryWaitMax = clientOptions.RetryWaitMax
	c.client.Logger = leveledLogger{c.logger}
	// hand the last response back so its status and body can be reported.
	c.client.ErrorHandler = retryablehttp.PassthroughErrorHandler

	if clientOptions.RateLimit > 0 {
		c.limiter = rate.NewLimiter(rate.Limit(clientOptions.RateLimit), 1)
	}
	return c, nil
}

func baseURL(host string, port int) (*url.URL, error) {
	if host == "" {
		return nil, ErrEmptyHost
	}
	if port <= 0 || port > 65535 {
		return nil, ErrInvalidPort
	}
	scheme := "http"
	if i := strings.Index(host, "://"); i >= 0 {
		scheme, host = host[:i], host[i+3:]
	}
	return &url.URL{
		Scheme: scheme,
		Host:   net.JoinHostPort(host, strconv.Itoa(port)),
	}, nil
}

// URL returns the base URL of the manage API.
func (c *Client) URL() string {
	return c.base.String()
}

// Attach registers item under every prefix in prefixes. An empty prefix set
// is still sent; whether to accept it is up to the server.
//
// Errors are coded taboo.ErrAttach, or taboo.ErrAttachExhausted when retries
// were configured and none of the attempts succeeded.
func (c *Client) Attach(ctx context.Context, prefixes taboo.Prefixes, item *taboo.Item) error {
	if prefixes == nil {
		prefixes = taboo.Prefixes{}
	}
	prefixesJSON, err := json.Marshal(prefixes)
	if err != nil {
		return taboo.NewErrAttach(item, errors.Wrap(err, "encoding prefixes"))
	}
	itemJSON, err := json.Marshal(item)
	if err != nil {
		return taboo.NewErrAttach(item, errors.Wrap(err, "encoding item"))
	}

	params := url.Values{}
	params.Set(ParamPrefixes, string(prefixesJSON))
	params.Set(ParamItem, string(itemJSON))
	if c.upsert {
		params.Set(ParamUpsert, "1")
	} else {
		params.Set(ParamUpsert, "0")
	}

	start := time.Now()
	resp, retryable, err := c.post(ctx, AttachPath, params)
	observeRequest(AttachPath, start, err)
	if err != nil {
		if retryable && c.retries > 0 {
			return taboo.NewErrAttachExhausted(item, c.retries+1, err)
		}
		return taboo.NewErrAttach(item, err)
	}
	if !resp.OK() {
		return taboo.NewErrAttachRejected(item, resp.Code, resp.Description())
	}
	return nil
}

// post signs params and sends them to path. A non-nil error means no usable
// reply was received: a transport failure, a non-2xx status or an
// undecodable body. retryable tells whether the client's retry policy
// considers the failure transient, in which case every configured retry has
// already been spent.
func (c *Client) post(ctx context.Context, path string, params url.Values) (resp *Response, retryable bool, err error) {
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, false, errors.Wrap(err, "waiting for rate limiter")
		}
	}

	params.Set(ParamKey, c.key)
	params.Del(ParamSign)
	params.Set(ParamSign, c.signer.Sign(path, http.MethodPost, params))

	u := *c.base
	u.Path = path
	req, err := retryablehttp.NewRequestWithContext(ctx, http.MethodPost, u.String(), strings.NewReader(params.Encode()))
	if err != nil {
		return nil, false, errors.Wrap(err, "building request")
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Accept", "application/json")

	httpResp, doErr := c.client.Do(req)
	if httpResp != nil {
		defer httpResp.Body.Close()
	}
	retryable, _ = retryablehttp.DefaultRetryPolicy(ctx, httpResp, doErr)
	if doErr != nil {
		return nil, retryable, errors.Wrap(doErr, "sending request")
	}

	if httpResp.StatusCode < 200 || httpResp.StatusCode > 299 {
		if body, derr := decodeResponse(httpResp.Body); derr == nil {
			return nil, retryable, errors.Errorf("server error (%d) %s: code %d: %s",
				httpResp.StatusCode, http.StatusText(httpResp.StatusCode), body.Code, body.Description())
		}
		return nil, retryable, errors.Errorf("server error (%d) %s", httpResp.StatusCode, http.StatusText(httpResp.StatusCode))
	}
	resp, err = decodeResponse(httpResp.Body)
	return resp, false, err
}

// leveledLogger lets retryablehttp log through our logger.
type leveledLogger struct {
	l logger.Logger
}

func (ll leveledLogger) Error(msg string, keysAndValues ...interface{}) {
	ll.l.Errorf("%s", kvString(msg, keysAndValues))
}

func (ll leveledLogger) Info(msg string, keysAndValues ...interface{}) {
	ll.l.Debugf("%s", kvString(msg, keysAndValues))
}

func (ll leveledLogger) Debug(msg string, keysAndValues ...interface{}) {
	ll.l.Debugf("%s", kvString(msg, keysAndValues))
}

func (ll leveledLogger) Warn(msg string, keysAndValues ...interface{}) {
	ll.l.Warnf("%s", kvString(msg, keysAndValues))
}

func kvString(msg string, keysAndValues []interface{}) string {
	var b strings.Builder
	b.WriteString(msg)
	for i := 0; i+1 < len(keysAndValues); i += 2 {
		fmt.Fprintf(&b, " %v=%v", keysAndValues[i], keysAndValues[i+1])
	}
	return b.String()
}
