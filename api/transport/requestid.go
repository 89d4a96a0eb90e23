package transport

import (
	"fmt"
	"net/http"
	"sync/atomic"

	"github.com/vvduth/food-boot-client/random"
)

const RequestIDHeader = "X-Request-Id"

var reqID int64

var reqPrefix = random.String(10)

type ridTripper struct {
	next http.RoundTripper
}

// RequestID stamps every outgoing request with a unique id so client
// logs can be correlated with backend logs.
func RequestID(next http.RoundTripper) http.RoundTripper {
	if next == nil {
		next = http.DefaultTransport
	}
	return &ridTripper{next: next}
}

func (t *ridTripper) RoundTrip(r *http.Request) (*http.Response, error) {
	if r.Header.Get(RequestIDHeader) == "" {
		r = r.Clone(r.Context())
		r.Header.Set(RequestIDHeader, fmt.Sprintf("%s-%d", reqPrefix, atomic.AddInt64(&reqID, 1)))
	}
	return t.next.RoundTrip(r)
}
