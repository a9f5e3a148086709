package tools

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/NERVsystems/kmapmcp/pkg/kakao"
	"github.com/NERVsystems/kmapmcp/pkg/testutil"
)

// fakeFetcher records calls and returns a canned response.
type fakeFetcher struct {
	calls     int
	last      kakao.Request
	requestID string
	resp      *kakao.Response
	err       error
	panicWith any
}

func (f *fakeFetcher) Fetch(ctx context.Context, req kakao.Request) (*kakao.Response, error) {
	f.calls++
	f.last = req
	f.requestID = kakao.RequestIDFromContext(ctx)
	if f.panicWith != nil {
		panic(f.panicWith)
	}
	if f.err != nil {
		return nil, f.err
	}
	return f.resp, nil
}

func jsonReply(body string) *kakao.Response {
	return &kakao.Response{StatusCode: http.StatusOK, Status: "200 OK", Body: []byte(body)}
}

func newTestAdapter(t *testing.T, tool string, f Fetcher) *Adapter {
	t.Helper()
	a, err := NewAdapter(definition(t, tool), f, testutil.DiscardLogger())
	require.NoError(t, err)
	return a
}

func TestInvokeAddressFound(t *testing.T) {
	f := &fakeFetcher{resp: jsonReply(`{"documents":[{"address_name":"Coex","x":"127.05","y":"37.51"}]}`)}
	a := newTestAdapter(t, ToolAddressSearch, f)

	out := a.Invoke(context.Background(), map[string]any{"query": "coex"})
	assert.Equal(t, "Address: Coex, Latitude: 37.51, Longitude: 127.05", out)

	assert.Equal(t, 1, f.calls)
	assert.Equal(t, kakao.EndpointSearchAddress, f.last.Endpoint)
	assert.Equal(t, "query=coex", f.last.Encode())
	assert.NotEmpty(t, f.requestID, "invocation id should be propagated")
}

func TestInvokeAddressNoResults(t *testing.T) {
	f := &fakeFetcher{resp: jsonReply(`{"documents":[]}`)}
	a := newTestAdapter(t, ToolAddressSearch, f)

	out := a.Invoke(context.Background(), map[string]any{"query": "xyz"})
	assert.Equal(t, "No results found for the given address.", out)
}

func TestInvokeValidationSkipsNetwork(t *testing.T) {
	for _, def := range Definitions(CatalogOptions{}) {
		t.Run(def.Spec.Name, func(t *testing.T) {
			f := &fakeFetcher{resp: jsonReply(`{"documents":[]}`)}
			a := newTestAdapter(t, def.Spec.Name, f)

			out := a.Invoke(context.Background(), map[string]any{})
			assert.True(t, strings.HasPrefix(out, "Invalid input for "+def.Spec.Name), out)
			assert.Contains(t, out, "missing required field")
			assert.Zero(t, f.calls)
		})
	}
}

func TestInvokeHTTPErrorStatus(t *testing.T) {
	f := &fakeFetcher{resp: &kakao.Response{
		StatusCode: http.StatusInternalServerError,
		Status:     "500 Internal Server Error",
		Body:       []byte(`{"errorType":"InternalError"}`),
	}}
	a := newTestAdapter(t, ToolAddressSearch, f)

	var out string
	assert.NotPanics(t, func() {
		out = a.Invoke(context.Background(), map[string]any{"query": "coex"})
	})
	assert.True(t, strings.HasPrefix(out, "Error calling the API:"), out)
	assert.Contains(t, out, "500 Internal Server Error")

	_, err := a.Run(context.Background(), map[string]any{"query": "coex"})
	var terr *TransportError
	require.True(t, errors.As(err, &terr))
	assert.Equal(t, http.StatusInternalServerError, terr.StatusCode)
	assert.Equal(t, kakao.EndpointSearchAddress, terr.Endpoint)
}

func TestInvokeTransportFailure(t *testing.T) {
	f := &fakeFetcher{err: errors.New("dial tcp 127.0.0.1:8080: connect: connection refused")}
	a := newTestAdapter(t, ToolCoordToAddress, f)

	out := a.Invoke(context.Background(), map[string]any{"latitude": 37.5143, "longitude": 127.0628})
	assert.True(t, strings.HasPrefix(out, "Error calling the API:"), out)
	assert.Contains(t, out, "connection refused")
	assert.Contains(t, out, GuidanceNetworkError)
}

func TestInvokeTimeoutGuidance(t *testing.T) {
	f := &fakeFetcher{err: context.DeadlineExceeded}
	a := newTestAdapter(t, ToolCoordToAddress, f)

	out := a.Invoke(context.Background(), map[string]any{"latitude": 37.5, "longitude": 127})
	assert.Contains(t, out, GuidanceTimeout)
}

func TestInvokeMalformedBody(t *testing.T) {
	f := &fakeFetcher{resp: jsonReply("not json")}
	a := newTestAdapter(t, ToolKeywordSearch, f)

	out := a.Invoke(context.Background(), map[string]any{"query": "coex"})
	assert.Equal(t, "Error parsing server response. The response was not valid JSON: not json", out)

	_, err := a.Run(context.Background(), map[string]any{"query": "coex"})
	var derr *DecodeError
	require.True(t, errors.As(err, &derr))
	assert.Equal(t, "not json", derr.Raw)
}

func TestInvokeFramedAndPlainAgree(t *testing.T) {
	body := `{"documents":[{"place_name":"스타벅스 코엑스점","address_name":"서울 강남구 삼성동 159"}]}`

	plain := newTestAdapter(t, ToolKeywordSearch, &fakeFetcher{resp: jsonReply(body)})
	framed := newTestAdapter(t, ToolKeywordSearch, &fakeFetcher{resp: jsonReply("data: " + body + "\n\n")})

	args := map[string]any{"query": "스타벅스"}
	want := "Place: 스타벅스 코엑스점, Address: 서울 강남구 삼성동 159"
	assert.Equal(t, want, plain.Invoke(context.Background(), args))
	assert.Equal(t, want, framed.Invoke(context.Background(), args))
}

func TestInvokeRecoversPanics(t *testing.T) {
	f := &fakeFetcher{panicWith: "boom"}
	a := newTestAdapter(t, ToolAddressSearch, f)

	var out string
	assert.NotPanics(t, func() {
		out = a.Invoke(context.Background(), map[string]any{"query": "coex"})
	})
	assert.Contains(t, out, "internal error")
	assert.Contains(t, out, "boom")
}

func TestInvokeLogsUpstreamErrorPayload(t *testing.T) {
	logger, buf := testutil.CaptureLogger()
	f := &fakeFetcher{resp: jsonReply(`{"errorType":"AccessDeniedError","message":"App(kmap) disabled OPEN_MAP_AND_LOCAL service."}`)}
	a, err := NewAdapter(definition(t, ToolAddressSearch), f, logger)
	require.NoError(t, err)

	out := a.Invoke(context.Background(), map[string]any{"query": "coex"})
	assert.Equal(t, "No results found for the given address.", out)
	assert.Contains(t, buf.String(), "AccessDeniedError")
	assert.Contains(t, buf.String(), "tool="+ToolAddressSearch)
	assert.Contains(t, buf.String(), "invocation_id=")
}

func TestNewAdapterRejectsBadDefinitions(t *testing.T) {
	good := definition(t, ToolAddressSearch)

	_, err := NewAdapter(good, nil, nil)
	assert.Error(t, err, "nil fetcher")

	unnamed := good
	unnamed.Spec.Name = ""
	_, err = NewAdapter(unnamed, &fakeFetcher{}, nil)
	assert.Error(t, err, "empty name")

	stray := good
	stray.Params = []ParamMapping{Map("latitude", "y")}
	_, err = NewAdapter(stray, &fakeFetcher{}, nil)
	assert.Error(t, err, "mapping of undeclared field")
}

func TestAdapterAgainstUpstream(t *testing.T) {
	up := testutil.NewUpstream(t, map[string]testutil.Reply{
		kakao.EndpointSearchAddress: {
			Body: `{"documents":[{"address_name":"서울 강남구 삼성동 159","x":"127.0588","y":"37.5130"}]}`,
			SSE:  true,
		},
		kakao.EndpointSearchCategory: {
			Body: `{"documents":[{"place_name":"코엑스약국","address_name":"서울 강남구 삼성동 159"}]}`,
		},
		kakao.EndpointCoord2RegionCode: {
			Status: http.StatusBadGateway,
			Body:   "bad gateway",
		},
	})

	client, err := kakao.NewClient(kakao.Options{BaseURL: up.URL})
	require.NoError(t, err)
	reg, err := NewRegistry(testutil.DiscardLogger(), client, CatalogOptions{DefaultRadius: 300})
	require.NoError(t, err)

	address, _ := reg.Lookup(ToolAddressSearch)
	out := address.Invoke(context.Background(), map[string]any{"query": "서울 강남구 삼성동 159"})
	assert.Equal(t, "Address: 서울 강남구 삼성동 159, Latitude: 37.5130, Longitude: 127.0588", out)
	assert.NotEmpty(t, up.LastRequest().Header.Get(kakao.RequestIDHeader))

	category, _ := reg.Lookup(ToolCategorySearch)
	out = category.Invoke(context.Background(), map[string]any{
		"category_group_code": "PM9",
		"latitude":            "37.5130",
		"longitude":           "127.0588",
	})
	assert.Equal(t, "Place: 코엑스약국, Address: 서울 강남구 삼성동 159", out)
	q := up.LastQuery()
	assert.Equal(t, "PM9", q.Get("category_group_code"))
	assert.Equal(t, "37.513", q.Get("y"))
	assert.Equal(t, "127.0588", q.Get("x"))
	assert.Equal(t, "300", q.Get("radius"))

	region, _ := reg.Lookup(ToolCoordToRegionCode)
	out = region.Invoke(context.Background(), map[string]any{"latitude": 37.5, "longitude": 127.0})
	assert.True(t, strings.HasPrefix(out, "Error calling the API:"), out)
	assert.Contains(t, out, "502")

	requests := up.Requests()
	out = region.Invoke(context.Background(), map[string]any{"latitude": 137.5, "longitude": 127.0})
	assert.True(t, strings.HasPrefix(out, "Invalid input for "+ToolCoordToRegionCode), out)
	assert.Equal(t, requests, up.Requests(), "invalid input must not reach the upstream")
}
