// Package target picks the debuggable surface most likely to be the app's
// visible page. The heuristic is a plain additive score so it stays trivially
// unit-testable away from any live connection.
package target

import (
	"strings"

	"github.com/samber/lo"

	"github.com/vburojevic/brainbar/internal/cdp"
)

// appNameHint is matched case-insensitively against target titles; the
// Brain.fm window always carries it.
const appNameHint = "brain"

// Score rates a single target. Pages outrank everything, a preferred
// substring and the app name add smaller boosts, and extension/devtools
// surfaces are pushed down so they never beat a real page.
func Score(t cdp.Target, prefer string) int {
	score := 0
	if t.Type == "page" {
		score += 10
	}
	haystack := strings.ToLower(t.Title + " " + t.URL)
	if prefer != "" && strings.Contains(haystack, strings.ToLower(prefer)) {
		score += 5
	}
	if strings.Contains(strings.ToLower(t.Title), appNameHint) {
		score += 3
	}
	if strings.HasPrefix(t.URL, "chrome-extension://") {
		score -= 5
	}
	if strings.HasPrefix(t.URL, "devtools://") {
		score -= 10
	}
	return score
}

// Choose returns the highest-scoring target. Ties keep the earliest entry in
// the input order. ok is false for an empty list.
func Choose(targets []cdp.Target, prefer string) (best cdp.Target, ok bool) {
	if len(targets) == 0 {
		return cdp.Target{}, false
	}
	// MaxBy replaces the candidate only on a strictly greater score, which is
	// exactly the stable tie-break we want.
	best = lo.MaxBy(targets, func(a, b cdp.Target) bool {
		return Score(a, prefer) > Score(b, prefer)
	})
	return best, true
}
