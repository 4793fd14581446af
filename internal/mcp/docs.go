package mcp

import (
	"context"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
)

const serverInstructions = `jot stores journal entries and makes them searchable.

Core concepts:
- Entry: a note with optional title, rich-text content, tags, a mood value (1 sad to 5 happy) and favorite/archived flags.
- Scope: an optional namespace (one journal per scope). Pass scope_id in tool params, the X-Jot-Scope header (HTTP), or _meta.scope_id (stdio).
- Archived entries are hidden from list_entries by default but still show up in search_entries.

Searching:
- search_entries accepts free text plus optional structured filters; the two are merged, with structured filters taking precedence.
- Free text may embed filter tokens anywhere: tag:work,health  mood:happy  date:2024-02  date:2024-02-29  is:favorite  is:archived.
- Unrecognized tokens (unknown mood words, malformed dates, unknown is: values) stay in the free text and are matched literally.
- Matches report which field hit (title beats content beats tags) and a bounded snippet with the matched span marked.

Docs:
- jot://docs/query-syntax (full filter token grammar)
`

type docResource struct {
	URI         string
	Name        string
	Title       string
	Description string
	Content     string
}

var docResources = []docResource{
	{
		URI:         "jot://docs/query-syntax",
		Name:        "docs_query_syntax",
		Title:       "Search query syntax",
		Description: "Filter token grammar accepted by search_entries free text.",
		Content: `# Search query syntax

Free text is matched case-insensitively as a substring against entry titles,
content (with markup stripped) and tags. Whitespace-separated tokens of the
forms below are lifted out of the free text and applied as filters instead.
Tokens may appear anywhere and in any order.

## tag:

` + "`tag:work`" + ` requires the tag. ` + "`tag:work,health`" + ` requires every listed
tag (comma separated, no spaces). Repeating the token unions the lists.

## mood:

Accepts a mood word:

| word | value |
|------|-------|
| happy | 5 |
| good | 4 |
| neutral | 3 |
| bad | 2 |
| sad | 1 |

Anything else after ` + "`mood:`" + ` stays in the free text. When the same
filter appears twice the last occurrence wins.

## date:

` + "`date:2024-02-29`" + ` matches entries created that calendar day.
` + "`date:2024-02`" + ` matches the whole month, leap years included. Bounds are
inclusive. Malformed dates are not treated as filters and stay in the text.

## is:

` + "`is:favorite`" + ` and ` + "`is:archived`" + ` require the corresponding flag to be
set. Any other value after ` + "`is:`" + ` stays in the free text.
`,
	},
}

func registerDocResources(server *sdkmcp.Server) {
	for _, doc := range docResources {
		doc := doc

		server.AddResource(&sdkmcp.Resource{
			URI:         doc.URI,
			Name:        doc.Name,
			Title:       doc.Title,
			Description: doc.Description,
			MIMEType:    "text/markdown",
			Size:        int64(len(doc.Content)),
		}, func(_ context.Context, req *sdkmcp.ReadResourceRequest) (*sdkmcp.ReadResourceResult, error) {
			uri := doc.URI
			if req != nil && req.Params != nil && req.Params.URI != "" {
				uri = req.Params.URI
			}
			return &sdkmcp.ReadResourceResult{
				Contents: []*sdkmcp.ResourceContents{{
					URI:      uri,
					MIMEType: "text/markdown",
					Text:     doc.Content,
				}},
			}, nil
		})
	}
}
