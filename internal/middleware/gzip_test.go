package middleware

import (
	"bytes"
	"compress/gzip"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestWithGzip_CompressesWhenAccepted(t *testing.T) {
	h := WithGzip(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("payload payload payload"))
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Accept-Encoding", "gzip")
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)

	if rr.Header().Get("Content-Encoding") != "gzip" {
		t.Fatalf("expected gzip content encoding")
	}
	zr, err := gzip.NewReader(rr.Body)
	if err != nil {
		t.Fatalf("response is not gzip: %v", err)
	}
	body, _ := io.ReadAll(zr)
	if string(body) != "payload payload payload" {
		t.Fatalf("round trip mismatch: %q", body)
	}
}

func TestWithGzip_PassthroughWithoutAcceptHeader(t *testing.T) {
	h := WithGzip(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("plain"))
	}))

	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/", nil))

	if rr.Header().Get("Content-Encoding") == "gzip" {
		t.Fatalf("must not compress without Accept-Encoding")
	}
	if rr.Body.String() != "plain" {
		t.Fatalf("unexpected body: %q", rr.Body.String())
	}
}

func TestWithGzip_DecompressesRequestBody(t *testing.T) {
	var buf bytes.Buffer
	zw := gzip.NewWriter(&buf)
	_, _ = zw.Write([]byte("4 Lightning Bolt"))
	_ = zw.Close()

	h := WithGzip(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		if string(body) != "4 Lightning Bolt" {
			t.Fatalf("request body not decompressed: %q", body)
		}
	}))

	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(buf.String()))
	req.Header.Set("Content-Encoding", "gzip")
	h.ServeHTTP(httptest.NewRecorder(), req)
}
