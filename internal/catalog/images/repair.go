package images

import (
	"regexp"
	"strings"
)

// The import pipeline historically wrote screenshot lists into a JSONB
// column through a template that produced almost-JSON: single quotes,
// unquoted keys, unquoted URL values and trailing commas. That data still
// exists in production rows, so we patch those specific defects before
// parsing. This is a best-effort repair for that one known corruption,
// not a general-purpose JSON fixer.
var (
	bareKeyRe       = regexp.MustCompile(`([{,]\s*)([A-Za-z_][A-Za-z0-9_]*)\s*:`)
	bareURLRe       = regexp.MustCompile(`:\s*(https?://[^",\s}\]]+)`)
	trailingCommaRe = regexp.MustCompile(`,\s*([}\]])`)
)

// RepairLegacyJSON rewrites a corrupted legacy JSONB string into parseable
// JSON. The output is only as trustworthy as the heuristic; callers must
// still treat a parse failure of the repaired string as "no data".
func RepairLegacyJSON(s string) string {
	out := strings.ReplaceAll(s, "'", `"`)
	out = bareKeyRe.ReplaceAllString(out, `${1}"${2}":`)
	out = bareURLRe.ReplaceAllString(out, `:"${1}"`)
	out = trailingCommaRe.ReplaceAllString(out, `${1}`)

	// some rows were cut off mid-array; close what we can
	if opens, closes := strings.Count(out, "["), strings.Count(out, "]"); opens > closes {
		out += strings.Repeat("]", opens-closes)
	}
	if opens, closes := strings.Count(out, "{"), strings.Count(out, "}"); opens > closes {
		// a truncated object inside an array is unrecoverable; drop the tail
		if idx := strings.LastIndex(out, "{"); idx > 0 {
			out = out[:idx]
			out = strings.TrimRight(out, ", \t\n")
			if !strings.HasSuffix(out, "]") && strings.HasPrefix(out, "[") {
				out += "]"
			}
		}
	}

	return out
}
