package timer

import (
	"strings"
	"testing"
)

func TestFindBasicFormats(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"12:34", "12:34"},
		{"1:02:03", "1:02:03"},
		{"Focus session 4:59 remaining", "4:59"},
		{"abc 5:5 def", ""},   // seconds must be two digits
		{"99:99", ""},         // seconds tens digit out of range
		{"", ""},
		{"no digits here", ""},
	}
	for _, c := range cases {
		if got := Find(c.in); got != c.want {
			t.Errorf("Find(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestFindPrefersMoreQualifiedMatch(t *testing.T) {
	// Two candidates: the one with more colon separators wins regardless of
	// position.
	if got := Find("track 3:45 of session 01:02:03"); got != "01:02:03" {
		t.Fatalf("expected long form to win, got %q", got)
	}
	if got := Find("01:02:03 then 3:45"); got != "01:02:03" {
		t.Fatalf("expected long form to win, got %q", got)
	}
}

func TestFindTiesGoToFirstOccurrence(t *testing.T) {
	if got := Find("4:59 and later 3:45"); got != "4:59" {
		t.Fatalf("expected first occurrence on tie, got %q", got)
	}
}

func TestExpressionInjectsSelectorLiteral(t *testing.T) {
	expr := Expression(`[data-testid="timer"]`)
	if !strings.Contains(expr, `var s="[data-testid=\"timer\"]";`) {
		t.Fatalf("selector not injected as JSON literal:\n%s", expr)
	}
}

func TestExpressionWithoutSelector(t *testing.T) {
	expr := Expression("")
	if !strings.Contains(expr, "var s=null;") {
		t.Fatalf("empty selector should inject null:\n%s", expr)
	}
}

func TestExpressionScanOrderMarkers(t *testing.T) {
	// The script contract: inline tabular-nums styles first, selector second,
	// body text last.
	expr := Expression("")
	style := strings.Index(expr, "font-variant-numeric")
	tabular := strings.Index(expr, "tabular-nums")
	body := strings.Index(expr, "document.body")
	if style < 0 || tabular < 0 || body < 0 {
		t.Fatalf("expression missing scan markers:\n%s", expr)
	}
	if body < style {
		t.Fatal("body fallback must come after inline-style scan")
	}
}
