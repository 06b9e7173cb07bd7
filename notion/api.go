package notion

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
)

// Typed wrappers over Do for the endpoints the integration guides exercise.
// Each performs exactly one logical call.

func (c *Client) get(ctx context.Context, p string, query map[string]string, out any) error {
	raw, err := c.Do(ctx, http.MethodGet, p, &RequestOptions{Query: query})
	if err != nil {
		return err
	}
	return json.Unmarshal(raw, out)
}

func (c *Client) send(ctx context.Context, method, p string, body, out any) error {
	raw, err := c.Do(ctx, method, p, &RequestOptions{Body: body})
	if err != nil {
		return err
	}
	if out == nil {
		return nil
	}
	return json.Unmarshal(raw, out)
}

// Me returns the bot user the token belongs to.
func (c *Client) Me(ctx context.Context) (*User, error) {
	var u User
	if err := c.get(ctx, "/v1/users/me", nil, &u); err != nil {
		return nil, err
	}
	return &u, nil
}

func (c *Client) User(ctx context.Context, id string) (*User, error) {
	var u User
	if err := c.get(ctx, "/v1/users/"+id, nil, &u); err != nil {
		return nil, err
	}
	return &u, nil
}

// ListUsers returns one page of workspace users. cursor may be empty;
// pageSize <= 0 leaves the server default in place.
func (c *Client) ListUsers(ctx context.Context, cursor string, pageSize int) (*UserList, error) {
	q := pageQuery(cursor, pageSize)
	var l list[User]
	if err := c.get(ctx, "/v1/users", q, &l); err != nil {
		return nil, err
	}
	return &UserList{Results: l.Results, NextCursor: l.NextCursor, HasMore: l.HasMore}, nil
}

func (c *Client) Page(ctx context.Context, id string) (*Page, error) {
	var p Page
	if err := c.get(ctx, "/v1/pages/"+id, nil, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

func (c *Client) CreatePage(ctx context.Context, params CreatePageParams) (*Page, error) {
	var p Page
	if err := c.send(ctx, http.MethodPost, "/v1/pages", params, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

func (c *Client) UpdatePage(ctx context.Context, id string, params UpdatePageParams) (*Page, error) {
	var p Page
	if err := c.send(ctx, http.MethodPatch, "/v1/pages/"+id, params, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

func (c *Client) Database(ctx context.Context, id string) (*Database, error) {
	var d Database
	if err := c.get(ctx, "/v1/databases/"+id, nil, &d); err != nil {
		return nil, err
	}
	return &d, nil
}

func (c *Client) QueryDatabase(ctx context.Context, id string, query DatabaseQuery) (*PageList, error) {
	var l list[Page]
	if err := c.send(ctx, http.MethodPost, fmt.Sprintf("/v1/databases/%s/query", id), query, &l); err != nil {
		return nil, err
	}
	return &PageList{Results: l.Results, NextCursor: l.NextCursor, HasMore: l.HasMore}, nil
}

func (c *Client) BlockChildren(ctx context.Context, id, cursor string, pageSize int) (*BlockList, error) {
	q := pageQuery(cursor, pageSize)
	var l list[Block]
	if err := c.get(ctx, fmt.Sprintf("/v1/blocks/%s/children", id), q, &l); err != nil {
		return nil, err
	}
	return &BlockList{Results: l.Results, NextCursor: l.NextCursor, HasMore: l.HasMore}, nil
}

func (c *Client) AppendBlockChildren(ctx context.Context, id string, children []json.RawMessage) (*BlockList, error) {
	body := map[string]any{"children": children}
	var l list[Block]
	if err := c.send(ctx, http.MethodPatch, fmt.Sprintf("/v1/blocks/%s/children", id), body, &l); err != nil {
		return nil, err
	}
	return &BlockList{Results: l.Results, NextCursor: l.NextCursor, HasMore: l.HasMore}, nil
}

// DeleteBlock archives a block. The API models deletion as archival, so the
// block comes back in the response with Archived set.
func (c *Client) DeleteBlock(ctx context.Context, id string) (*Block, error) {
	raw, err := c.Do(ctx, http.MethodDelete, "/v1/blocks/"+id, nil)
	if err != nil {
		return nil, err
	}
	var b Block
	if err := json.Unmarshal(raw, &b); err != nil {
		return nil, err
	}
	return &b, nil
}

func (c *Client) Search(ctx context.Context, params SearchParams) (*SearchResult, error) {
	var l list[json.RawMessage]
	if err := c.send(ctx, http.MethodPost, "/v1/search", params, &l); err != nil {
		return nil, err
	}
	return &SearchResult{Results: l.Results, NextCursor: l.NextCursor, HasMore: l.HasMore}, nil
}

func pageQuery(cursor string, pageSize int) map[string]string {
	q := map[string]string{}
	if cursor != "" {
		q["start_cursor"] = cursor
	}
	if pageSize > 0 {
		q["page_size"] = strconv.Itoa(pageSize)
	}
	if len(q) == 0 {
		return nil
	}
	return q
}
