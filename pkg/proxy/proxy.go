package proxy

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httputil"
	"net/url"
	"regexp"
	"strings"

	"github.com/cuemby/baliusd/pkg/chainnetwork"
	"github.com/cuemby/baliusd/pkg/consumer"
	"github.com/cuemby/baliusd/pkg/log"
	"github.com/cuemby/baliusd/pkg/metrics"
	"github.com/cuemby/baliusd/pkg/ratelimit"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
)

const dmtrAPIKeyHeader = "dmtr-api-key"

// hostKeyPattern extracts the leading label of a request's Host header as
// a fallback consumer key, mirroring the original's permissive
// `([baliusworker]?[\w\d-]+)?\.?.+` host_regex.
var hostKeyPattern = regexp.MustCompile(`^([\w-]+)\.`)

// Proxy is baliusd's edge proxy: one process per cluster, routing every
// tenant's traffic to its shard's JSON-RPC server.
type Proxy struct {
	consumers      *consumer.Registry
	limiter        *ratelimit.Limiter
	dns            string
	port           int
	healthPath     string
	proxyNamespace string

	http *http.Server
}

// New builds a Proxy listening on addr. dns and port compose the upstream
// host (balius-{network}.{dns}:{port}); healthPath is answered locally
// with "OK" without consulting consumers or rate limits.
func New(addr, dns string, port int, healthPath, proxyNamespace string, consumers *consumer.Registry, limiter *ratelimit.Limiter) *Proxy {
	p := &Proxy{
		consumers:      consumers,
		limiter:        limiter,
		dns:            dns,
		port:           port,
		healthPath:     healthPath,
		proxyNamespace: proxyNamespace,
	}

	router := chi.NewRouter()
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{http.MethodPost},
		AllowedHeaders: []string{"Content-Type", dmtrAPIKeyHeader},
	}))
	router.Get(healthPath, p.handleHealth)
	router.HandleFunc("/*", p.handleProxy)

	p.http = &http.Server{Addr: addr, Handler: router}
	return p
}

// ListenAndServe blocks until the server is shut down.
func (p *Proxy) ListenAndServe() error {
	log.Info("edge proxy listening on " + p.http.Addr)
	if err := p.http.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("edge proxy: %w", err)
	}
	return nil
}

// Shutdown gracefully drains in-flight requests.
func (p *Proxy) Shutdown(ctx context.Context) error {
	return p.http.Shutdown(ctx)
}

func (p *Proxy) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("OK"))
}

func (p *Proxy) handleProxy(w http.ResponseWriter, r *http.Request) {
	key := extractKey(r)
	cons, ok := p.consumers.Get(key)
	if !ok {
		log.Debug("rejecting request: unknown consumer key")
		http.Error(w, "unknown consumer", http.StatusUnauthorized)
		return
	}

	if p.limiter.Exceeded(cons) {
		metrics.RateLimitExceededTotal.WithLabelValues(cons.Tier).Inc()
		http.Error(w, "rate limit exceeded", http.StatusTooManyRequests)
		return
	}

	upstream := fmt.Sprintf("balius-%s.%s:%d", chainnetwork.Normalize(cons.Network), p.dns, p.port)
	timer := metrics.NewTimer()
	p.forward(w, r, cons.Key, upstream)
	timer.ObserveDurationVec(metrics.ProxyRequestDuration, cons.Network)
}

// forward reverse-proxies r to upstream and records the proxy request
// counter, mirroring BaliusProxy.logging's inc_http_total_request call.
func (p *Proxy) forward(w http.ResponseWriter, r *http.Request, consumerKey, upstream string) {
	target := &url.URL{Scheme: "http", Host: upstream}
	rp := httputil.NewSingleHostReverseProxy(target)

	status := 0
	rp.ModifyResponse = func(resp *http.Response) error {
		status = resp.StatusCode
		return nil
	}
	rp.ErrorHandler = func(w http.ResponseWriter, r *http.Request, err error) {
		status = http.StatusBadGateway
		log.Error("proxying request to " + upstream + ": " + err.Error())
		http.Error(w, "upstream unavailable", http.StatusBadGateway)
	}

	rp.ServeHTTP(w, r)
	metrics.ProxyRequestsTotal.WithLabelValues(consumerKey, p.proxyNamespace, upstream, statusLabel(status)).Inc()
}

func statusLabel(status int) string {
	if status == 0 {
		return "unknown"
	}
	return fmt.Sprintf("%d", status)
}

// extractKey mirrors BaliusProxy.extract_key: the dmtr-api-key header
// takes precedence, falling back to the leading label of the request's
// host.
func extractKey(r *http.Request) string {
	if key := r.Header.Get(dmtrAPIKeyHeader); key != "" {
		return key
	}

	host := r.Host
	if i := strings.IndexByte(host, ':'); i >= 0 {
		host = host[:i]
	}
	if m := hostKeyPattern.FindStringSubmatch(host); m != nil {
		return m[1]
	}
	return ""
}
