// Package images resolves display images for products coming out of the
// upstream import feed. The feed is inconsistent: the same logical field
// may hold a bare URL, a JSON-encoded object, a JSON-encoded array, or a
// corrupted legacy JSONB string. Every resolver here is total — parse
// failures mean "field absent", never an error.
package images

import (
	"encoding/json"
	"net/url"
	"strings"
)

// Placeholder is returned when no usable cover image exists.
const Placeholder = "/images/placeholder-game.jpg"

// ProxyPath is the local route external CDN images are rewritten through,
// so the storefront never loads them cross-origin.
const ProxyPath = "/api/v1/images/proxy?url="

var proxiedHosts = map[string]struct{}{
	"images.kinguin.net": {},
	"cdn.kinguin.net":    {},
}

// ResolveCoverImage picks a display image from the product's raw fields.
// Priority: the direct `image` field (URL or JSON object), then
// `images_cover`, then `images_cover_thumbnail`, then the flat legacy
// `coverUrl`/`cover_url` fields, then the placeholder.
func ResolveCoverImage(fields map[string]any) string {
	for _, key := range []string{"image", "images_cover", "images_cover_thumbnail"} {
		if u, ok := coverFromField(fields[key]); ok {
			return rewriteCDN(u)
		}
	}

	for _, key := range []string{"coverUrl", "cover_url"} {
		if s, ok := asString(fields[key]); ok && looksLikeURL(s) {
			return rewriteCDN(s)
		}
	}

	return Placeholder
}

// coverFromField accepts a bare URL string, a JSON-encoded object, or an
// already-decoded object, reading the sub-keys thumbnail, url and cover
// in that order.
func coverFromField(v any) (string, bool) {
	if v == nil {
		return "", false
	}

	if s, ok := asString(v); ok {
		if looksLikeURL(s) {
			return s, true
		}
		var decoded map[string]any
		if err := json.Unmarshal([]byte(s), &decoded); err == nil {
			return coverFromObject(decoded)
		}
		return "", false
	}

	if obj, ok := v.(map[string]any); ok {
		return coverFromObject(obj)
	}

	return "", false
}

func coverFromObject(obj map[string]any) (string, bool) {
	for _, key := range []string{"thumbnail", "url", "cover"} {
		if s, ok := asString(obj[key]); ok && s != "" {
			return s, true
		}
	}
	return "", false
}

// ResolveScreenshots gathers screenshot URLs from three independently
// parsed sources. A source yielding more than one screenshot wins
// outright; otherwise the richest non-empty source wins. The tie-break on
// richness, rather than a fixed priority, accommodates feeds where the
// primary field was truncated to a single entry.
func ResolveScreenshots(fields map[string]any) []string {
	sources := [][]string{
		parseScreenshotSource(fields["images_screenshots_url"]),
		parseScreenshotSource(fields["images_screenshots"]),
		parseScreenshotSource(fields["screenshots"]),
	}

	for _, src := range sources {
		if len(src) > 1 {
			return src
		}
	}

	var best []string
	for _, src := range sources {
		if len(src) > len(best) {
			best = src
		}
	}
	if len(best) > 0 {
		return best
	}

	if s, ok := asString(fields["screenshot_url"]); ok && looksLikeURL(s) {
		return []string{s}
	}

	// final legacy structure: {"images": {"screenshots": [...]}}
	if imgs, ok := fields["images"].(map[string]any); ok {
		if legacy := parseScreenshotSource(imgs["screenshots"]); len(legacy) > 0 {
			return legacy
		}
	}

	return nil
}

// parseScreenshotSource normalizes one candidate source into a URL list.
// Accepted shapes: []string, []any of strings, []any of {url: ...}
// objects, or any of those JSON-encoded — including corrupted legacy
// JSONB that RepairLegacyJSON can patch up.
func parseScreenshotSource(v any) []string {
	switch val := v.(type) {
	case nil:
		return nil
	case []string:
		return nonEmpty(val)
	case []any:
		return fromAnySlice(val)
	case string:
		var decoded []any
		if err := json.Unmarshal([]byte(val), &decoded); err != nil {
			repaired := RepairLegacyJSON(val)
			if err := json.Unmarshal([]byte(repaired), &decoded); err != nil {
				return nil
			}
		}
		return fromAnySlice(decoded)
	default:
		return nil
	}
}

func fromAnySlice(items []any) []string {
	urls := make([]string, 0, len(items))
	for _, item := range items {
		switch entry := item.(type) {
		case string:
			if entry != "" {
				urls = append(urls, entry)
			}
		case map[string]any:
			if s, ok := asString(entry["url"]); ok && s != "" {
				urls = append(urls, s)
			}
		}
	}
	return urls
}

func nonEmpty(in []string) []string {
	out := make([]string, 0, len(in))
	for _, s := range in {
		if s != "" {
			out = append(out, s)
		}
	}
	return out
}

func asString(v any) (string, bool) {
	s, ok := v.(string)
	if !ok {
		return "", false
	}
	s = strings.TrimSpace(s)
	if s == "" {
		return "", false
	}
	return s, true
}

func looksLikeURL(s string) bool {
	return strings.HasPrefix(s, "http://") ||
		strings.HasPrefix(s, "https://") ||
		strings.HasPrefix(s, "/")
}

// rewriteCDN routes known external CDN hosts through the local proxy so
// the browser never hits them cross-origin. Unknown hosts pass through.
func rewriteCDN(raw string) string {
	u, err := url.Parse(raw)
	if err != nil {
		return raw
	}
	if _, proxied := proxiedHosts[u.Host]; !proxied {
		return raw
	}
	return ProxyPath + url.QueryEscape(raw)
}
