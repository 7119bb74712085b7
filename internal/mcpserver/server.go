// Package mcpserver implements an MCP (Model Context Protocol) server
// that exposes the outdiff text and JSON comparisons as MCP tools over stdio.
package mcpserver

import (
	"context"
	"fmt"
	"log/slog"
	"path"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/erraggy/outdiff"
	"github.com/erraggy/outdiff/diffconfig"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

const serverInstructions = `outdiff MCP server. Compares the expected and actual output of a program, either line by line (diff_text) or structurally as JSON (diff_json).

Configuration: defaults are configurable via environment variables set in your MCP client config. The Go MCP SDK does not support initializationOptions; use env vars instead.

Diff defaults (shared with the outdiff CLI):
- OUTDIFF_WHITESPACE_MODE (default: exact) - exact, ignore_trailing or ignore_all
- OUTDIFF_CASE_SENSITIVE (default: true)
- OUTDIFF_DETECT_MODIFICATIONS (default: true) - pair adjacent removals and additions
- OUTDIFF_ARRAY_DIFF_STRATEGY (default: positional) - positional or lcs
- OUTDIFF_MAX_DEPTH (default: 1000) - JSON nesting limit, 0 for unbounded
- OUTDIFF_SIZE_FALLBACK_THRESHOLD (default: 10000) - inputs above this size use a faster, possibly non-minimal alignment

Server settings:
- OUTDIFF_MCP_CACHE_ENABLED (default: true) - cache resolved documents
- OUTDIFF_MCP_CACHE_FILE_TTL (default: 15m) - cache TTL for local files
- OUTDIFF_MCP_CACHE_URL_TTL (default: 5m) - cache TTL for fetched URLs
- OUTDIFF_MCP_EDIT_LIMIT (default: 100) - default page size for edits and changes
- OUTDIFF_MCP_MAX_INLINE_SIZE (default: 10MiB) - largest inline content accepted

Caching: Documents are cached per session. File entries use path+mtime as key (auto-invalidated on change). A background sweeper removes expired entries every 60s.`

// Run starts the MCP server over stdio and blocks until the client disconnects
// or the context is cancelled.
func Run(ctx context.Context) error {
	if cfg.CacheEnabled {
		docCache.startSweeper(ctx, cfg.CacheSweepInterval)
	}

	server := mcp.NewServer(
		&mcp.Implementation{Name: "outdiff", Version: outdiff.Version()},
		&mcp.ServerOptions{
			Instructions: serverInstructions,
		},
	)
	registerAllTools(server)
	return server.Run(ctx, &mcp.StdioTransport{})
}

func registerAllTools(server *mcp.Server) {
	mcp.AddTool(server, &mcp.Tool{
		Name:        "diff_text",
		Description: "Compare two texts line by line, typically the expected and actual output of a program. Returns line-numbered edits (insert, delete, modify) and counts. Unchanged lines are omitted unless include_equal=true. Use whitespace_mode and ignore_case to ignore formatting noise. Use offset/limit to paginate through long edit lists.",
	}, handleDiffText)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "diff_json",
		Description: "Compare two JSON documents structurally. Returns path-addressed changes (added, removed, changed, type_changed) with old and new values as compact JSON. Object key order and number formatting (1 vs 1.0) are ignored. Use array_strategy=lcs when array elements may have been inserted or removed rather than edited in place. Use path to focus on a subtree (JSON Pointer glob, e.g. /items/*) and group_by=kind or group_by=root for distribution counts.",
	}, handleDiffJSON)
}

// diffConfig builds the per-call configuration: server defaults from the
// environment, then the caller's overrides.
func diffConfig(opts ...diffconfig.Option) (diffconfig.DiffConfig, error) {
	all := make([]diffconfig.Option, 0, len(cfg.DiffOptions)+len(opts)+1)
	all = append(all, cfg.DiffOptions...)
	all = append(all, opts...)
	all = append(all, diffconfig.WithLogger(diffconfig.NewSlogAdapter(slog.Default())))
	return diffconfig.New(all...)
}

// paginate applies offset/limit pagination to a slice, returning the
// requested page. A non-positive limit defaults to cfg.EditLimit.
func paginate[T any](items []T, offset, limit int) []T {
	if limit <= 0 {
		limit = cfg.EditLimit
	}
	if limit > cfg.MaxLimit {
		limit = cfg.MaxLimit
	}
	if offset < 0 || offset >= len(items) {
		return nil
	}
	end := offset + limit
	if end < offset || end > len(items) { // overflow or beyond slice
		end = len(items)
	}
	return items[offset:end]
}

// makeSlice returns nil when n is 0 (preserving omitempty JSON semantics),
// otherwise returns make([]T, 0, n) for pre-allocated appending.
func makeSlice[T any](n int) []T {
	if n == 0 {
		return nil
	}
	return make([]T, 0, n)
}

// sanitizeError strips absolute filesystem paths from error messages
// to prevent leaking internal directory structure to MCP clients.
var pathPattern = regexp.MustCompile(`(?:/(?:home|tmp|var|Users|etc|opt|usr|private|root|mnt|srv|run|snap|nix)[a-zA-Z0-9._/-]*)`)

func sanitizeError(err error) string {
	if err == nil {
		return ""
	}
	return pathPattern.ReplaceAllString(err.Error(), "<path>")
}

// errResult creates an MCP error result from an error.
func errResult(err error) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		IsError: true,
		Content: []mcp.Content{&mcp.TextContent{Text: sanitizeError(err)}},
	}
}

// groupCount represents a single group in group_by results.
type groupCount struct {
	Key   string `json:"key"`
	Count int    `json:"count"`
}

// groupAndSort groups items by key, sorts by count descending (ties
// broken alphabetically by key), and returns the sorted groups.
func groupAndSort[T any](items []T, keyFn func(T) string) []groupCount {
	counts := make(map[string]int)
	for _, item := range items {
		counts[keyFn(item)]++
	}
	groups := make([]groupCount, 0, len(counts))
	for key, count := range counts {
		groups = append(groups, groupCount{Key: key, Count: count})
	}
	sort.Slice(groups, func(i, j int) bool {
		if groups[i].Count != groups[j].Count {
			return groups[i].Count > groups[j].Count
		}
		return groups[i].Key < groups[j].Key
	})
	return groups
}

// validateGroupBy checks that group_by is empty or one of allowed.
func validateGroupBy(groupBy string, allowed []string) error {
	if groupBy == "" {
		return nil
	}
	for _, a := range allowed {
		if strings.EqualFold(groupBy, a) {
			return nil
		}
	}
	return fmt.Errorf("invalid group_by value %q; valid values: %s", groupBy, strings.Join(allowed, ", "))
}

// validateGlobPattern checks whether a glob pattern is syntactically valid.
// Call this once before a filter loop so matchPointer never encounters an
// invalid pattern at match time.
func validateGlobPattern(pattern string) error {
	if pattern == "" || !strings.ContainsAny(pattern, "*?[") {
		return nil
	}
	if _, err := path.Match(pattern, ""); err != nil {
		return fmt.Errorf("invalid glob pattern %q: %w", pattern, err)
	}
	return nil
}

// matchPointer reports whether pattern matches pointer or one of its
// ancestors, so "/items/*" selects everything below each item. Each "*"
// spans a single pointer segment.
func matchPointer(pattern, pointer string) bool {
	if pattern == "" {
		return true
	}
	for i := len(pointer); i >= 0; i-- {
		if i != len(pointer) && pointer[i] != '/' {
			continue
		}
		if ok, _ := path.Match(pattern, pointer[:i]); ok {
			return true
		}
	}
	return false
}

func formatCount(n int, noun string) string {
	if n == 1 {
		return "1 " + noun
	}
	return strconv.Itoa(n) + " " + noun + "s"
}
