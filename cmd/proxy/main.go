// cmd/proxy/main.go
package main

import (
	"log"
	"net/http"
	"net/url"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/hlog"

	"github.com/mwhitfield/notionbridge/internal/config"
	"github.com/mwhitfield/notionbridge/internal/proxy"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config error: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("config error: %v", err)
	}

	// Logger
	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()

	upstream, err := url.Parse(cfg.BaseURL)
	if err != nil {
		log.Fatalf("invalid NOTION_BASE_URL: %v", err)
	}

	p := proxy.New(proxy.Options{
		Upstream:      upstream,
		Token:         cfg.Token,
		Version:       cfg.Version,
		AllowedOrigin: cfg.AllowedOrigin,
	})
	h := hlog.NewHandler(logger)(p)

	logger.Info().Str("addr", cfg.ProxyAddr).Str("upstream", cfg.BaseURL).Msg("starting proxy")

	srv := &http.Server{
		Addr:              cfg.ProxyAddr,
		Handler:           h,
		ReadHeaderTimeout: 10 * time.Second,
	}
	log.Fatal(srv.ListenAndServe())
}
