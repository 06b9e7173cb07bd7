// Package proxy exposes the API under the application's own origin so
// browser code can call it without tripping CORS. The bearer credential is
// attached server-side; the browser never sees or sends it.
package proxy

import (
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
	"github.com/rs/zerolog/hlog"
)

type Options struct {
	Upstream      *url.URL // API base URL, e.g. https://api.notion.com
	Token         string
	Version       string
	AllowedOrigin string
	HTTPClient    *http.Client
}

type Proxy struct {
	Router *chi.Mux

	upstream      *url.URL
	token         string
	version       string
	allowedOrigin string
	client        *http.Client
}

func New(opts Options) *Proxy {
	p := &Proxy{
		upstream:      opts.Upstream,
		token:         opts.Token,
		version:       opts.Version,
		allowedOrigin: opts.AllowedOrigin,
		client:        opts.HTTPClient,
	}
	if p.allowedOrigin == "" {
		p.allowedOrigin = "*"
	}
	if p.client == nil {
		p.client = &http.Client{Timeout: 30 * time.Second}
	}

	r := chi.NewRouter()
	r.Use(chimw.RealIP)
	r.Use(requestID)
	r.Use(p.cors)

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	r.Handle("/v1/*", http.HandlerFunc(p.forward))

	p.Router = r
	return p
}

func (p *Proxy) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	p.Router.ServeHTTP(w, r)
}

// requestID tags each request with a uuid for log correlation.
func requestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get("X-Request-Id")
		if id == "" {
			id = uuid.NewString()
		}
		w.Header().Set("X-Request-Id", id)
		next.ServeHTTP(w, r)
	})
}

func (p *Proxy) cors(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		h := w.Header()
		h.Set("Access-Control-Allow-Origin", p.allowedOrigin)
		h.Set("Access-Control-Allow-Methods", "GET, POST, PATCH, DELETE, OPTIONS")
		h.Set("Access-Control-Allow-Headers", "Content-Type")
		h.Set("Access-Control-Max-Age", "86400")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// hop-by-hop headers per RFC 9110; never forwarded in either direction.
var hopHeaders = []string{
	"Connection", "Keep-Alive", "Proxy-Authenticate", "Proxy-Authorization",
	"Te", "Trailer", "Transfer-Encoding", "Upgrade",
}

func (p *Proxy) forward(w http.ResponseWriter, r *http.Request) {
	log := hlog.FromRequest(r)

	u := *p.upstream
	u.Path = singleJoiningSlash(u.Path, r.URL.Path)
	u.RawQuery = r.URL.RawQuery

	req, err := http.NewRequestWithContext(r.Context(), r.Method, u.String(), r.Body)
	if err != nil {
		http.Error(w, "bad upstream request", http.StatusBadGateway)
		return
	}
	if ct := r.Header.Get("Content-Type"); ct != "" {
		req.Header.Set("Content-Type", ct)
	}
	req.Header.Set("Accept", "application/json")
	// Credentials live here and only here. Anything the browser sent under
	// Authorization is discarded.
	req.Header.Set("Authorization", "Bearer "+p.token)
	req.Header.Set("Notion-Version", p.version)

	resp, err := p.client.Do(req)
	if err != nil {
		log.Error().Str("path", r.URL.Path).Msg("upstream unreachable")
		http.Error(w, "upstream unreachable", http.StatusBadGateway)
		return
	}
	defer resp.Body.Close()

	header := w.Header()
	for k, vv := range resp.Header {
		if isHopHeader(k) {
			continue
		}
		for _, v := range vv {
			header.Add(k, v)
		}
	}
	w.WriteHeader(resp.StatusCode)
	if _, err := io.Copy(w, resp.Body); err != nil {
		log.Warn().Str("path", r.URL.Path).Msg("response copy interrupted")
	}

	log.Info().
		Str("method", r.Method).
		Str("path", r.URL.Path).
		Int("status", resp.StatusCode).
		Msg("proxied")
}

func isHopHeader(name string) bool {
	for _, h := range hopHeaders {
		if strings.EqualFold(h, name) {
			return true
		}
	}
	return false
}

func singleJoiningSlash(a, b string) string {
	switch {
	case strings.HasSuffix(a, "/") && strings.HasPrefix(b, "/"):
		return a + b[1:]
	case !strings.HasSuffix(a, "/") && !strings.HasPrefix(b, "/"):
		return a + "/" + b
	}
	return a + b
}
