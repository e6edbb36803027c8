package proxy

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/cuemby/baliusd/pkg/consumer"
	"github.com/cuemby/baliusd/pkg/ratelimit"
	"github.com/cuemby/baliusd/pkg/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type staticSource struct {
	consumers []types.Consumer
}

func (s *staticSource) List(ctx context.Context) ([]types.Consumer, error) {
	return s.consumers, nil
}

func newTestProxy(t *testing.T, upstream string, consumers []types.Consumer, tiers []types.Tier) *Proxy {
	t.Helper()

	reg := consumer.NewRegistry(&staticSource{consumers: consumers})
	require.NoError(t, reg.Refresh(context.Background()))

	limiter := ratelimit.New(tiers)

	dns, port := splitUpstream(upstream)
	return New("127.0.0.1:0", dns, port, "/healthz", "default", reg, limiter)
}

// splitUpstream pulls host/port apart from an httptest server URL so
// tests can feed it straight into Proxy's dns/port constructor args,
// masquerading the stub server as the "balius-<network>.<dns>:<port>"
// upstream host proxy.go constructs.
func splitUpstream(rawurl string) (string, int) {
	u := rawurl[len("http://"):]
	for i := 0; i < len(u); i++ {
		if u[i] == ':' {
			port := 0
			for _, c := range u[i+1:] {
				port = port*10 + int(c-'0')
			}
			return u[:i], port
		}
	}
	return u, 0
}

func TestHandleHealthShortCircuits(t *testing.T) {
	p := newTestProxy(t, "http://127.0.0.1:1", nil, nil)

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	rec := httptest.NewRecorder()
	p.http.Handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "OK", rec.Body.String())
}

func TestHandleProxyUnknownConsumerIsUnauthorized(t *testing.T) {
	p := newTestProxy(t, "http://127.0.0.1:1", nil, nil)

	req := httptest.NewRequest(http.MethodPost, "/jsonrpc", nil)
	req.Header.Set(dmtrAPIKeyHeader, "no-such-key")
	rec := httptest.NewRecorder()
	p.http.Handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestHandleProxyRateLimitedConsumerIsTooManyRequests(t *testing.T) {
	tiers := []types.Tier{{Name: "free", Rates: []types.Rate{{Interval: time.Second, Limit: 0}}}}
	p := newTestProxy(t, "http://127.0.0.1:1", []types.Consumer{
		{Key: "k1", Network: "cardano-mainnet", Tier: "free"},
	}, tiers)

	req := httptest.NewRequest(http.MethodPost, "/jsonrpc", nil)
	req.Header.Set(dmtrAPIKeyHeader, "k1")
	rec := httptest.NewRecorder()
	p.http.Handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
}

func TestForwardProxiesToUpstream(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("hello from worker"))
	}))
	defer upstream.Close()

	p := newTestProxy(t, upstream.URL, nil, nil)

	req := httptest.NewRequest(http.MethodPost, "/jsonrpc", nil)
	rec := httptest.NewRecorder()
	p.forward(rec, req, "k1", upstream.Listener.Addr().String())

	assert.Equal(t, http.StatusOK, rec.Code)
	body, _ := io.ReadAll(rec.Body)
	assert.Equal(t, "hello from worker", string(body))
}

func TestExtractKeyPrefersHeaderOverHost(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/", nil)
	req.Host = "hostkey.example.com"
	req.Header.Set(dmtrAPIKeyHeader, "headerkey")
	assert.Equal(t, "headerkey", extractKey(req))
}

func TestExtractKeyFallsBackToHost(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/", nil)
	req.Host = "hostkey.example.com"
	assert.Equal(t, "hostkey", extractKey(req))
}
