package notion

import "encoding/json"

// Wire types mirror the API JSON loosely: nullable fields as pointers and
// open-ended property payloads as raw JSON, decoded further by the caller
// when needed.

type User struct {
	Object    string  `json:"object"`
	ID        string  `json:"id"`
	Type      string  `json:"type,omitempty"` // "person" or "bot"
	Name      string  `json:"name,omitempty"`
	AvatarURL *string `json:"avatar_url,omitempty"`
	Person    *Person `json:"person,omitempty"`
	Bot       *Bot    `json:"bot,omitempty"`
}

type Person struct {
	Email string `json:"email,omitempty"`
}

type Bot struct {
	Owner         json.RawMessage `json:"owner,omitempty"`
	WorkspaceName string          `json:"workspace_name,omitempty"`
}

type Parent struct {
	Type       string `json:"type"`
	PageID     string `json:"page_id,omitempty"`
	DatabaseID string `json:"database_id,omitempty"`
	Workspace  bool   `json:"workspace,omitempty"`
}

type Page struct {
	Object         string                     `json:"object"`
	ID             string                     `json:"id"`
	CreatedTime    string                     `json:"created_time"`
	LastEditedTime string                     `json:"last_edited_time"`
	Archived       bool                       `json:"archived"`
	URL            string                     `json:"url,omitempty"`
	Parent         Parent                     `json:"parent"`
	Icon           json.RawMessage            `json:"icon,omitempty"`
	Cover          json.RawMessage            `json:"cover,omitempty"`
	Properties     map[string]json.RawMessage `json:"properties"`
}

type Database struct {
	Object         string                     `json:"object"`
	ID             string                     `json:"id"`
	CreatedTime    string                     `json:"created_time"`
	LastEditedTime string                     `json:"last_edited_time"`
	Title          []RichText                 `json:"title"`
	Description    []RichText                 `json:"description,omitempty"`
	Parent         Parent                     `json:"parent"`
	URL            string                     `json:"url,omitempty"`
	Archived       bool                       `json:"archived"`
	Properties     map[string]json.RawMessage `json:"properties"`
}

type RichText struct {
	Type      string          `json:"type"`
	PlainText string          `json:"plain_text"`
	Href      *string         `json:"href,omitempty"`
	Text      *TextContent    `json:"text,omitempty"`

	Annotations json.RawMessage `json:"annotations,omitempty"`
}

type TextContent struct {
	Content string `json:"content"`
	Link    *Link  `json:"link,omitempty"`
}

type Link struct {
	URL string `json:"url"`
}

type Block struct {
	Object         string          `json:"object"`
	ID             string          `json:"id"`
	Type           string          `json:"type"`
	CreatedTime    string          `json:"created_time"`
	LastEditedTime string          `json:"last_edited_time"`
	HasChildren    bool            `json:"has_children"`
	Archived       bool            `json:"archived"`
}

// list is the API's generic paginated envelope.
type list[T any] struct {
	Object     string  `json:"object"`
	Results    []T     `json:"results"`
	NextCursor *string `json:"next_cursor"`
	HasMore    bool    `json:"has_more"`
}

type UserList struct {
	Results    []User
	NextCursor *string
	HasMore    bool
}

type BlockList struct {
	Results    []Block
	NextCursor *string
	HasMore    bool
}

type PageList struct {
	Results    []Page
	NextCursor *string
	HasMore    bool
}

// SearchResult holds one hit without committing to page-vs-database shape.
type SearchResult struct {
	Results    []json.RawMessage
	NextCursor *string
	HasMore    bool
}

// CreatePageParams is the body of POST /v1/pages.
type CreatePageParams struct {
	Parent     Parent                     `json:"parent"`
	Properties map[string]json.RawMessage `json:"properties"`
	Children   []json.RawMessage          `json:"children,omitempty"`
	Icon       json.RawMessage            `json:"icon,omitempty"`
	Cover      json.RawMessage            `json:"cover,omitempty"`
}

// UpdatePageParams is the body of PATCH /v1/pages/{id}. Nil maps and
// pointers are omitted so partial updates stay partial.
type UpdatePageParams struct {
	Properties map[string]json.RawMessage `json:"properties,omitempty"`
	Archived   *bool                      `json:"archived,omitempty"`
	Icon       json.RawMessage            `json:"icon,omitempty"`
	Cover      json.RawMessage            `json:"cover,omitempty"`
}

// DatabaseQuery is the body of POST /v1/databases/{id}/query.
type DatabaseQuery struct {
	Filter      json.RawMessage   `json:"filter,omitempty"`
	Sorts       []json.RawMessage `json:"sorts,omitempty"`
	StartCursor string            `json:"start_cursor,omitempty"`
	PageSize    int               `json:"page_size,omitempty"`
}

// SearchParams is the body of POST /v1/search.
type SearchParams struct {
	Query       string          `json:"query,omitempty"`
	Filter      json.RawMessage `json:"filter,omitempty"`
	Sort        json.RawMessage `json:"sort,omitempty"`
	StartCursor string          `json:"start_cursor,omitempty"`
	PageSize    int             `json:"page_size,omitempty"`
}
