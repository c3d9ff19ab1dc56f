package http

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
)

type RequestOption func(req *http.Request) *http.Request

func WithContext(ctx context.Context) RequestOption {
	return func(req *http.Request) *http.Request {
		return req.WithContext(ctx)
	}
}

func WithHeader(key string, value string, values ...string) RequestOption {
	return func(req *http.Request) *http.Request {
		req.Header.Add(key, value)
		for _, v := range values {
			req.Header.Add(key, v)
		}
		return req
	}
}

// = WithHeader("Content-Type", ctyp)
func ContentType(ctyp string) RequestOption {
	return WithHeader("Content-Type", ctyp)
}

// = WithHeader("Authorization", "Bearer "+token)
func Bearer(token string) RequestOption {
	return WithHeader(echo.HeaderAuthorization, "Bearer "+token)
}

func WithCookie(name string, value string) RequestOption {
	return func(req *http.Request) *http.Request {
		req.AddCookie(&http.Cookie{Name: name, Value: value})
		return req
	}
}

func Request(e *echo.Echo, method string, target string, body io.Reader, reqopts ...RequestOption) (echo.Context, *httptest.ResponseRecorder) {
	req := httptest.NewRequest(method, target, body)
	for _, opt := range reqopts {
		req = opt(req)
	}
	resp := httptest.NewRecorder()

	ctx := e.NewContext(req, resp)
	return ctx, resp
}

func Get(e *echo.Echo, target string, reqopts ...RequestOption) (echo.Context, *httptest.ResponseRecorder) {
	return Request(e, http.MethodGet, target, nil, reqopts...)
}

func Post(e *echo.Echo, target string, data io.Reader, reqopts ...RequestOption) (echo.Context, *httptest.ResponseRecorder) {
	return Request(e, http.MethodPost, target, data, reqopts...)
}

func Put(e *echo.Echo, target string, data io.Reader, reqopts ...RequestOption) (echo.Context, *httptest.ResponseRecorder) {
	return Request(e, http.MethodPut, target, data, reqopts...)
}

func Delete(e *echo.Echo, target string, reqopts ...RequestOption) (echo.Context, *httptest.ResponseRecorder) {
	return Request(e, http.MethodDelete, target, nil, reqopts...)
}

// JSON marshals v as request body.
//
// Use with ContentType("application/json").
func JSON(t *testing.T, v any) io.Reader {
	t.Helper()
	buf, err := json.Marshal(v)
	if err != nil {
		t.Fatal(err)
	}
	return bytes.NewReader(buf)
}

// Multipart builds a multipart/form-data body with one file part.
//
// It returns the body and its content type.
func Multipart(t *testing.T, field string, filename string, contentType string, content []byte) (io.Reader, string) {
	t.Helper()
	buf := new(bytes.Buffer)
	w := multipart.NewWriter(buf)

	h := textproto.MIMEHeader{}
	h.Set(
		"Content-Disposition",
		`form-data; name="`+field+`"; filename="`+strings.ReplaceAll(filename, `"`, `\"`)+`"`,
	)
	h.Set("Content-Type", contentType)
	part, err := w.CreatePart(h)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := part.Write(content); err != nil {
		t.Fatal(err)
	}
	if err := w.Close(); err != nil {
		t.Fatal(err)
	}
	return buf, w.FormDataContentType()
}

// Cookie finds the cookie named so in the response.
func Cookie(resp *httptest.ResponseRecorder, name string) (*http.Cookie, bool) {
	for _, c := range resp.Result().Cookies() {
		if c.Name == name {
			return c, true
		}
	}
	return nil, false
}
