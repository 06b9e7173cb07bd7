package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"os"

	"github.com/mwhitfield/notionbridge/cache"
	"github.com/mwhitfield/notionbridge/internal/config"
	"github.com/mwhitfield/notionbridge/notion"
)

func main() {
	if err := runCLI(os.Args[1:]); err != nil {
		log.Fatalf("Error: %v", err)
	}
}

func runCLI(args []string) error {
	if len(args) == 0 {
		args = []string{"help"}
	}

	switch args[0] {
	case "help", "--help", "-h":
		fmt.Println("Usage: notionbridge <command> [args]")
		fmt.Println("Commands:")
		fmt.Println("  me                  Show the bot user the token belongs to")
		fmt.Println("  user <id>           Fetch one user")
		fmt.Println("  users               List workspace users")
		fmt.Println("  page <id>           Fetch a page")
		fmt.Println("  db <id>             Fetch a database")
		fmt.Println("  query <id>          Query a database")
		fmt.Println("  blocks <id>         List a block's children")
		fmt.Println("  search <text>       Search pages and databases")
		fmt.Println("  cache-clear         Drop all cached responses")
		fmt.Println("Environment:")
		fmt.Println("  NOTION_TOKEN        Integration secret (required)")
		fmt.Println("  NOTION_VERSION      API version date (default 2022-06-28)")
		fmt.Println("  NOTION_CACHE_TTL    How long GET responses are reused (default 5m)")
		return nil
	case "version", "--version", "-v":
		fmt.Println("notionbridge v0.1.0")
		return nil
	}

	app, err := newApp()
	if err != nil {
		return err
	}
	ctx := context.Background()

	switch args[0] {
	case "me":
		return app.cachedGet(ctx, "/v1/users/me", nil)
	case "user":
		if len(args) < 2 {
			return fmt.Errorf("usage: notionbridge user <id>")
		}
		return app.cachedGet(ctx, "/v1/users/"+args[1], nil)
	case "users":
		return app.cachedGet(ctx, "/v1/users", nil)
	case "page":
		if len(args) < 2 {
			return fmt.Errorf("usage: notionbridge page <id>")
		}
		return app.cachedGet(ctx, "/v1/pages/"+args[1], nil)
	case "db":
		if len(args) < 2 {
			return fmt.Errorf("usage: notionbridge db <id>")
		}
		return app.cachedGet(ctx, "/v1/databases/"+args[1], nil)
	case "query":
		if len(args) < 2 {
			return fmt.Errorf("usage: notionbridge query <id>")
		}
		pages, err := app.client.QueryDatabase(ctx, args[1], notion.DatabaseQuery{})
		if err != nil {
			return err
		}
		return printJSON(pages)
	case "blocks":
		if len(args) < 2 {
			return fmt.Errorf("usage: notionbridge blocks <id>")
		}
		return app.cachedGet(ctx, fmt.Sprintf("/v1/blocks/%s/children", args[1]), nil)
	case "search":
		if len(args) < 2 {
			return fmt.Errorf("usage: notionbridge search <text>")
		}
		res, err := app.client.Search(ctx, notion.SearchParams{Query: args[1]})
		if err != nil {
			return err
		}
		return printJSON(res)
	case "cache-clear":
		app.store.Clear()
		fmt.Println("cache cleared")
		return nil
	default:
		return fmt.Errorf("unknown command: %s", args[0])
	}
}

type app struct {
	cfg    config.Config
	client *notion.Client
	store  cache.Store
}

func newApp() (*app, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	client, err := notion.New(cfg.Token, cfg.Version,
		notion.WithBaseURL(cfg.BaseURL),
		notion.WithMaxRetries(cfg.MaxRetries),
	)
	if err != nil {
		return nil, err
	}

	store, err := cache.NewFileStore(cfg.CacheDir)
	if err != nil {
		return nil, err
	}

	return &app{cfg: cfg, client: client, store: store}, nil
}

// cachedGet layers the response cache over a GET: consult first, call the
// API on a miss, save the body afterwards. The client itself never touches
// the cache.
func (a *app) cachedGet(ctx context.Context, path string, query map[string]string) error {
	key := cache.KeyFor(path, query)
	if v, ok := a.store.Get(key); ok {
		return printRaw(v)
	}

	raw, err := a.client.Do(ctx, http.MethodGet, path, &notion.RequestOptions{Query: query})
	if err != nil {
		return err
	}
	a.store.Set(key, raw, a.cfg.CacheTTL)
	return printRaw(raw)
}

func printRaw(raw json.RawMessage) error {
	var buf any
	if err := json.Unmarshal(raw, &buf); err != nil {
		return err
	}
	return printJSON(buf)
}

func printJSON(v any) error {
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(out))
	return nil
}
