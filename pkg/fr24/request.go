package fr24

import (
	"bytes"
	"compress/gzip"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sort"
	"strings"

	"github.com/andybalholm/brotli"
)

// requestOptions describes a single call to the remote service.
type requestOptions struct {
	// url is the full endpoint URL, without query string.
	url string

	// params is serialized into the query string as-is. Values that need
	// percent-escaping must arrive pre-encoded; the bounds parameter relies
	// on that to keep its escaped commas intact.
	params map[string]string

	// headers for the request.
	headers map[string]string

	// form, when non-nil, turns the request into a POST with the values as
	// form data. Otherwise the request is a GET.
	form url.Values

	// cookies attached to the request.
	cookies map[string]string

	// acceptStatus lists error status codes that are returned to the caller
	// instead of being reported as an HTTPError.
	acceptStatus []int

	// acceptAnyStatus hands every status code back to the caller for its own
	// classification. Status 520 still maps to ServiceOverloadedError.
	acceptAnyStatus bool
}

// Response is the decoded result of one HTTP call.
type Response struct {
	// StatusCode of the response.
	StatusCode int

	// Headers of the response.
	Headers http.Header

	body        []byte
	contentType string
	cookies     map[string]string
}

// Bytes returns the response payload after content-encoding was undone.
func (r *Response) Bytes() []byte {
	return r.body
}

// Cookies returns the cookies set by the response, keyed by name.
func (r *Response) Cookies() map[string]string {
	return r.cookies
}

// IsJSON reports whether the response declared a JSON content type.
func (r *Response) IsJSON() bool {
	return strings.Contains(r.contentType, "application/json")
}

// JSON decodes the payload as a JSON object. Responses that did not declare
// a JSON content type are rejected rather than decoded blindly.
func (r *Response) JSON() (map[string]any, error) {
	if !r.IsJSON() {
		return nil, fmt.Errorf("decode response from JSON: unexpected content type %q", r.contentType)
	}

	var content map[string]any
	if err := json.Unmarshal(r.body, &content); err != nil {
		return nil, fmt.Errorf("decode response from JSON: %w", err)
	}
	return content, nil
}

// sendRequest performs a single HTTP round-trip against the remote service.
//
// The response payload is decompressed according to Content-Encoding (brotli
// or gzip); a payload that fails to decompress is passed through untouched so
// that JSON decoding can fail explicitly downstream. Status 520 maps to
// ServiceOverloadedError, any other non-whitelisted error status to HTTPError.
func (c *Client) sendRequest(opts requestOptions) (*Response, error) {
	target := opts.url
	if len(opts.params) > 0 {
		target += "?" + encodeParams(opts.params)
	}

	var req *http.Request
	var err error

	if opts.form == nil {
		req, err = http.NewRequest(http.MethodGet, target, nil)
	} else {
		req, err = http.NewRequest(http.MethodPost, target, strings.NewReader(opts.form.Encode()))
		if err == nil {
			req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
		}
	}
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	for key, value := range opts.headers {
		req.Header.Set(key, value)
	}
	for name, value := range opts.cookies {
		req.AddCookie(&http.Cookie{Name: name, Value: value})
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("http request: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	cookies := make(map[string]string)
	for _, cookie := range resp.Cookies() {
		cookies[cookie.Name] = cookie.Value
	}

	response := &Response{
		StatusCode:  resp.StatusCode,
		Headers:     resp.Header,
		body:        decodePayload(raw, resp.Header.Get("Content-Encoding")),
		contentType: resp.Header.Get("Content-Type"),
		cookies:     cookies,
	}

	if resp.StatusCode == 520 {
		return nil, &ServiceOverloadedError{StatusCode: resp.StatusCode, Body: response.body}
	}

	if resp.StatusCode >= 400 && !opts.acceptAnyStatus && !statusAccepted(resp.StatusCode, opts.acceptStatus) {
		return nil, &HTTPError{StatusCode: resp.StatusCode, URL: opts.url, Body: response.body}
	}

	return response, nil
}

// encodeParams joins pre-encoded key=value pairs with "&". Keys are sorted so
// outgoing URLs are deterministic.
func encodeParams(params map[string]string) string {
	keys := make([]string, 0, len(params))
	for key := range params {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	pairs := make([]string, 0, len(keys))
	for _, key := range keys {
		pairs = append(pairs, key+"="+params[key])
	}
	return strings.Join(pairs, "&")
}

// decodePayload undoes the response content encoding. Failures fall back to
// the raw bytes silently.
func decodePayload(raw []byte, encoding string) []byte {
	switch encoding {
	case "br":
		decoded, err := io.ReadAll(brotli.NewReader(bytes.NewReader(raw)))
		if err != nil {
			return raw
		}
		return decoded
	case "gzip":
		reader, err := gzip.NewReader(bytes.NewReader(raw))
		if err != nil {
			return raw
		}
		decoded, err := io.ReadAll(reader)
		if err != nil {
			return raw
		}
		return decoded
	default:
		return raw
	}
}

func statusAccepted(status int, accepted []int) bool {
	for _, code := range accepted {
		if status == code {
			return true
		}
	}
	return false
}
