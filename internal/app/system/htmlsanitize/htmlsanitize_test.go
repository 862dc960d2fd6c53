package htmlsanitize_test

import (
	"strings"
	"testing"

	"github.com/shuzaifak/crowd/internal/app/system/htmlsanitize"
)

func TestSanitizePreservesFormatting(t *testing.T) {
	// Markup an organizer can legitimately put in an event description
	// comes back unchanged.
	tests := []struct {
		name  string
		input string
	}{
		{"empty", ""},
		{"plain text", "Doors open at 7pm."},
		{"emphasis", "<p><strong>Two nights</strong> of <em>live demos</em></p>"},
		{"inline styling", "<u>underlined</u> <s>sold out</s> <sub>a</sub> <sup>b</sup> <mark>new</mark>"},
		{"headings", "<h2>Schedule</h2><h3>Day One</h3>"},
		{"unordered list", "<ul><li>Keynote</li><li>Lightning talks</li></ul>"},
		{"ordered list", "<ol><li>Check in</li><li>Pick up badge</li></ol>"},
		{"blockquote", "<blockquote>Best event of the year.</blockquote>"},
		{"code block", "<pre><code>GET /events/public</code></pre>"},
		{"line breaks", "Doors 7pm<br>Show 8pm"},
		{"divider", "<p>Friday</p><hr><p>Saturday</p>"},
		{"table", "<table><thead><tr><th>Tier</th></tr></thead><tbody><tr><td>VIP</td></tr></tbody></table>"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := htmlsanitize.Sanitize(tc.input); got != tc.input {
				t.Errorf("Sanitize(%q) = %q, want unchanged", tc.input, got)
			}
		})
	}
}

func TestSanitizeStripsDangerousMarkup(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		removed string // must not survive
		kept    string // must still be present, "" when nothing should survive
	}{
		{"script tag", "<p>Lineup</p><script>alert(1)</script>", "script", "Lineup"},
		{"script body", "<script>document.cookie</script>", "document.cookie", ""},
		{"iframe", `<p>Venue map</p><iframe src="https://evil.example"></iframe>`, "iframe", "Venue map"},
		{"style tag", "<style>body{display:none}</style><p>Agenda</p>", "<style>", "Agenda"},
		{"event handler", `<img src="https://cdn.example/a.png" onerror="alert(1)">`, "onerror", "a.png"},
		{"javascript href", `<a href="javascript:alert(1)">tickets</a>`, "javascript:", "tickets"},
		{"form", `<form action="/steal"><input name="card"></form>`, "<form", ""},
		{"data url image", `<img src="data:text/html,<script>x</script>">`, "data:text/html", ""},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := htmlsanitize.Sanitize(tc.input)
			if strings.Contains(got, tc.removed) {
				t.Errorf("output %q still contains %q", got, tc.removed)
			}
			if tc.kept != "" && !strings.Contains(got, tc.kept) {
				t.Errorf("output %q lost %q", got, tc.kept)
			}
		})
	}
}

func TestSanitizeAddsNofollowToLinks(t *testing.T) {
	got := htmlsanitize.Sanitize(`<a href="https://venue.example/directions">Directions</a>`)
	if !strings.Contains(got, `href="https://venue.example/directions"`) {
		t.Errorf("link lost: %q", got)
	}
	if !strings.Contains(got, `rel="nofollow"`) {
		t.Errorf("rel=nofollow missing: %q", got)
	}
}

func TestSanitizeKeepsImages(t *testing.T) {
	got := htmlsanitize.Sanitize(`<img src="https://cdn.example/banner.png" alt="Banner">`)
	if !strings.Contains(got, "src=") || !strings.Contains(got, "alt=") {
		t.Errorf("image attributes lost: %q", got)
	}
}

func TestSanitizeKeepsCellSpans(t *testing.T) {
	got := htmlsanitize.Sanitize(`<table><tr><td colspan="2" rowspan="2">Held</td></tr></table>`)
	if !strings.Contains(got, `colspan="2"`) || !strings.Contains(got, `rowspan="2"`) {
		t.Errorf("cell spans lost: %q", got)
	}
}

func TestSanitizeTableClassAndStyle(t *testing.T) {
	// Rich-text editors decorate seating tables with class/style; those
	// survive on table elements only.
	got := htmlsanitize.Sanitize(`<table class="seating" style="width:100%"><tr><td style="text-align:center">Stage</td></tr></table>`)
	if !strings.Contains(got, `class="seating"`) {
		t.Errorf("table class lost: %q", got)
	}
	if !strings.Contains(got, "style=") {
		t.Errorf("table style lost: %q", got)
	}

	got = htmlsanitize.Sanitize(`<p class="promo">Early bird pricing ends Friday.</p>`)
	if strings.Contains(got, "class=") {
		t.Errorf("class survived outside a table: %q", got)
	}
	if !strings.Contains(got, "Early bird pricing") {
		t.Errorf("text lost: %q", got)
	}
}
