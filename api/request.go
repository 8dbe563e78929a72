package api

import (
	"io"
	"log"
	"net/http"
	"net/url"
	"unicode/utf8"
)

const maxBodyBytes int64 = 1 << 20

// Request is built once per inbound request before it is dispatched.
// Query parameters are parsed right away; the form body is parsed
// the first time it is accessed and kept afterwards.
type Request struct {
	w http.ResponseWriter
	r *http.Request

	queryParams map[string]string

	rawBody     []byte
	bodyText    string
	hasBodyText bool

	form       map[string]string
	formParsed bool

	sent bool
}

func NewRequest(w http.ResponseWriter, r *http.Request) *Request {
	req := &Request{
		w:           w,
		r:           r,
		queryParams: parseForm(r.URL.RawQuery),
	}

	// The body is only read when its length is announced
	if r.ContentLength > 0 || r.Header.Get("Content-Length") != "" {
		req.loadBody()
	}
	return req
}

func (req *Request) loadBody() {
	size := req.r.ContentLength
	if size < 0 || size > maxBodyBytes {
		size = maxBodyBytes
	}

	raw, err := io.ReadAll(io.LimitReader(req.r.Body, size))
	if err != nil {
		log.Printf("failed to read request body [%s]: %s\n", req.r.RemoteAddr, err)
		return
	}
	req.rawBody = raw

	if utf8.Valid(raw) {
		req.bodyText = string(raw)
		req.hasBodyText = true
	}
}

// parseForm decodes key=value pairs separated by '&'. For a
// repeated key the last value wins and pairs with a blank value
// are dropped. Pairs that fail to decode are skipped.
func parseForm(raw string) map[string]string {
	parsed := make(map[string]string)

	values, _ := url.ParseQuery(raw)
	for key, vals := range values {
		if len(vals) == 0 {
			continue
		}
		if last := vals[len(vals)-1]; last != "" {
			parsed[key] = last
		}
	}
	return parsed
}

func (req *Request) Method() string {
	return req.r.Method
}

func (req *Request) Path() string {
	return req.r.URL.Path
}

func (req *Request) HttpRequest() *http.Request {
	return req.r
}

func (req *Request) ResponseWriter() http.ResponseWriter {
	return req.w
}

func (req *Request) QueryParams() map[string]string {
	return req.queryParams
}

func (req *Request) HasParam(name string) bool {
	_, prs := req.queryParams[name]
	return prs
}

func (req *Request) Param(name string) (string, bool) {
	value, prs := req.queryParams[name]
	return value, prs
}

// HasParams reports whether every name is a query parameter.
func (req *Request) HasParams(names ...string) bool {
	all := true
	for _, name := range names {
		all = req.HasParam(name) && all
	}
	return all
}

func (req *Request) RawBody() []byte {
	return req.rawBody
}

// BodyText returns the body decoded as UTF-8. The second value is false
// when no body was announced or it was not valid text.
func (req *Request) BodyText() (string, bool) {
	return req.bodyText, req.hasBodyText
}

func (req *Request) Form() map[string]string {
	if !req.formParsed {
		req.form = parseForm(req.bodyText)
		req.formParsed = true
	}
	return req.form
}

func (req *Request) HasFormValue(name string) bool {
	_, prs := req.Form()[name]
	return prs
}

func (req *Request) FormValue(name string) (string, bool) {
	value, prs := req.Form()[name]
	return value, prs
}

// HasFormValues reports whether every name is a field of the form body.
func (req *Request) HasFormValues(names ...string) bool {
	all := true
	for _, name := range names {
		all = req.HasFormValue(name) && all
	}
	return all
}

func (req *Request) SetHeader(key, value string) {
	req.w.Header().Set(key, value)
}

func (req *Request) Sent() bool {
	return req.sent
}

// markSent is used when the connection was taken over, e.g. by a websocket upgrade.
func (req *Request) markSent() {
	req.sent = true
}

// Send writes the status and an optional message. Only the first
// call on a request has an effect.
func (req *Request) Send(status int, message string) error {
	if req.sent {
		return nil
	}
	req.sent = true

	if message != "" && req.w.Header().Get("Content-Type") == "" {
		req.w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	}
	req.w.WriteHeader(status)

	if message == "" {
		return nil
	}
	_, err := io.WriteString(req.w, message)
	return err
}
