package helpers

import (
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
)

// UpstreamStub is an inference service double that answers every request
// with a fixed status and body and records the request bodies it received.
type UpstreamStub struct {
	*httptest.Server

	mu       sync.Mutex
	requests [][]byte
	headers  []http.Header
}

func NewUpstreamStub(t *testing.T, status int, body string) *UpstreamStub {
	t.Helper()

	stub := &UpstreamStub{}
	stub.Server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		data, _ := io.ReadAll(r.Body)
		stub.mu.Lock()
		stub.requests = append(stub.requests, data)
		stub.headers = append(stub.headers, r.Header.Clone())
		stub.mu.Unlock()

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = io.WriteString(w, body)
	}))
	t.Cleanup(stub.Close)

	return stub
}

// Calls returns the number of requests received.
func (u *UpstreamStub) Calls() int {
	u.mu.Lock()
	defer u.mu.Unlock()
	return len(u.requests)
}

// LastRequest returns the body of the most recent request.
func (u *UpstreamStub) LastRequest() []byte {
	u.mu.Lock()
	defer u.mu.Unlock()
	if len(u.requests) == 0 {
		return nil
	}
	return u.requests[len(u.requests)-1]
}

// LastHeader returns the headers of the most recent request.
func (u *UpstreamStub) LastHeader() http.Header {
	u.mu.Lock()
	defer u.mu.Unlock()
	if len(u.headers) == 0 {
		return nil
	}
	return u.headers[len(u.headers)-1]
}
