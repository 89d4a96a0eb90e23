// Package api is the single boundary to the Food Boot backend: one
// typed operation per capability, a bearer header when the operation
// needs an identity, and the response envelope decoded for the caller.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/vvduth/food-boot-client/api/apierr"
	"github.com/vvduth/food-boot-client/rate"
)

// TokenSource hands out the bearer token of the current session, or
// the empty string when nobody is logged in.
type TokenSource interface {
	Token() string
}

type Config struct {
	BaseURL string
	Client  *http.Client
	Token   TokenSource
	Limiter *rate.Limiter
	Log     logrus.FieldLogger
}

type Client struct {
	baseURL string
	http    *http.Client
	token   TokenSource
	limiter *rate.Limiter
	log     logrus.FieldLogger
}

func New(cfg Config) *Client {
	c := &Client{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		http:    cfg.Client,
		token:   cfg.Token,
		limiter: cfg.Limiter,
		log:     cfg.Log,
	}
	if c.http == nil {
		c.http = http.DefaultClient
	}
	if c.log == nil {
		c.log = logrus.New()
	}
	return c
}

// call issues one request and decodes the envelope. A nil out discards
// the data field. auth toggles the bearer header; public reads omit it.
func (c *Client) call(ctx context.Context, method, path string, query url.Values, body interface{}, auth bool, out interface{}) error {
	if c.limiter != nil && method != http.MethodGet {
		if !c.limiter.Check(method + " " + path) {
			return apierr.Validation("too many requests, slow down")
		}
	}

	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("cannot marshal request body: %w", err)
		}
		reader = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.url(path, query), reader)
	if err != nil {
		return fmt.Errorf("cannot build request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	return c.send(req, auth, out)
}

// callMultipart is call for file-bearing payloads.
func (c *Client) callMultipart(ctx context.Context, method, path string, fields map[string]string, fileField, fileName string, file io.Reader, out interface{}) error {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)

	for k, v := range fields {
		if err := mw.WriteField(k, v); err != nil {
			return fmt.Errorf("writing field %s: %w", k, err)
		}
	}

	if file != nil {
		fw, err := mw.CreateFormFile(fileField, fileName)
		if err != nil {
			return fmt.Errorf("creating file part: %w", err)
		}
		if _, err := io.Copy(fw, file); err != nil {
			return fmt.Errorf("copying file part: %w", err)
		}
	}

	if err := mw.Close(); err != nil {
		return fmt.Errorf("closing multipart body: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.url(path, nil), &buf)
	if err != nil {
		return fmt.Errorf("cannot build request: %w", err)
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())

	return c.send(req, true, out)
}

func (c *Client) send(req *http.Request, auth bool, out interface{}) error {
	if auth && c.token != nil {
		if tok := c.token.Token(); tok != "" {
			req.Header.Set("Authorization", "Bearer "+tok)
		}
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return apierr.Transport(err)
	}
	defer resp.Body.Close()

	b, err := io.ReadAll(resp.Body)
	if err != nil {
		return apierr.Transport(fmt.Errorf("reading response body: %w", err))
	}

	var env Envelope
	if err := json.Unmarshal(b, &env); err != nil {
		if resp.StatusCode < 200 || resp.StatusCode > 299 {
			return apierr.Backend(resp.StatusCode, http.StatusText(resp.StatusCode))
		}
		return apierr.Transport(fmt.Errorf("cannot decode response envelope: %w", err))
	}

	if !env.OK() {
		return apierr.Backend(env.StatusCode, env.Message)
	}

	if out != nil {
		if err := env.Decode(out); err != nil {
			return apierr.Transport(err)
		}
	}
	return nil
}

func (c *Client) url(path string, query url.Values) string {
	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}
	return u
}
