package testutil

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync"
	"testing"
)

// Reply is a canned upstream answer.
type Reply struct {
	Status int    // defaults to 200
	Body   string // JSON text
	SSE    bool   // wrap Body as a single "data:" event
}

// Upstream is a fake local map service.
type Upstream struct {
	*httptest.Server

	mu       sync.Mutex
	replies  map[string]Reply
	requests []*http.Request
}

// NewUpstream starts a fake service answering path -> reply. Unknown paths
// get a 404. The server is closed when the test ends.
func NewUpstream(t *testing.T, replies map[string]Reply) *Upstream {
	t.Helper()
	u := &Upstream{replies: replies}
	u.Server = httptest.NewServer(http.HandlerFunc(u.serve))
	t.Cleanup(u.Close)
	return u
}

func (u *Upstream) serve(w http.ResponseWriter, r *http.Request) {
	u.mu.Lock()
	u.requests = append(u.requests, r.Clone(r.Context()))
	reply, ok := u.replies[r.URL.Path]
	u.mu.Unlock()

	if !ok {
		http.NotFound(w, r)
		return
	}

	status := reply.Status
	if status == 0 {
		status = http.StatusOK
	}

	if reply.SSE {
		w.Header().Set("Content-Type", "text/event-stream")
		w.Header().Set("Cache-Control", "no-cache")
		w.WriteHeader(status)
		fmt.Fprintf(w, "data: %s\n\n", reply.Body)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	fmt.Fprint(w, reply.Body)
}

// Requests returns the number of requests received so far.
func (u *Upstream) Requests() int {
	u.mu.Lock()
	defer u.mu.Unlock()
	return len(u.requests)
}

// LastQuery returns the query of the most recent request.
func (u *Upstream) LastQuery() url.Values {
	u.mu.Lock()
	defer u.mu.Unlock()
	if len(u.requests) == 0 {
		return nil
	}
	return u.requests[len(u.requests)-1].URL.Query()
}

// LastRequest returns the most recent request, or nil.
func (u *Upstream) LastRequest() *http.Request {
	u.mu.Lock()
	defer u.mu.Unlock()
	if len(u.requests) == 0 {
		return nil
	}
	return u.requests[len(u.requests)-1]
}
