// Package markup turns raw post text into the small HTML dialect the views
// render: escaped text, greentext line spans and >>N quotelinks. Escaping runs
// first and all pattern matching happens against the escaped form, so raw
// markup never survives into the output.
package markup

import (
	"regexp"
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

var (
	// ampRegex matches a bare ampersand that does not open a character
	// entity. Leaving entities alone keeps Format idempotent on already
	// escaped text.
	ampRegex = regexp.MustCompile(`&(?:amp;|lt;|gt;|#34;|#39;)?`)

	quotelinkRegex = regexp.MustCompile(`&gt;&gt;(\d+)`)
)

type Formatter struct {
	policy *bluemonday.Policy
}

func New() *Formatter {
	p := bluemonday.NewPolicy()
	p.AllowElements("span", "a")
	p.AllowAttrs("class").Matching(regexp.MustCompile(`^greentext$`)).OnElements("span")
	p.AllowAttrs("class").Matching(regexp.MustCompile(`^quotelink$`)).OnElements("a")
	p.AllowAttrs("href").Matching(regexp.MustCompile(`^#p\d+$`)).OnElements("a")
	p.AllowAttrs("data-post").Matching(regexp.MustCompile(`^\d+$`)).OnElements("a")
	return &Formatter{policy: p}
}

// Format applies, in order: HTML escaping, greentext line wrapping, quotelink
// anchors, and a final sanitizer pass pinning the output to exactly the
// elements this package produces.
func (f *Formatter) Format(raw string) string {
	escaped := escapeHTML(raw)

	lines := strings.Split(escaped, "\n")
	for i, line := range lines {
		if strings.HasPrefix(line, "&gt;") && !strings.HasPrefix(line, "&gt;&gt;") {
			lines[i] = `<span class="greentext">` + line + `</span>`
		}
	}
	withGreentext := strings.Join(lines, "\n")

	withLinks := quotelinkRegex.ReplaceAllString(withGreentext,
		`<a href="#p$1" class="quotelink" data-post="$1">&gt;&gt;$1</a>`)

	return f.policy.Sanitize(withLinks)
}

// escapeHTML escapes HTML-significant characters. Unlike html.EscapeString it
// recognizes entities it already emitted and leaves them intact, so running it
// twice never produces &amp;amp; artifacts.
func escapeHTML(s string) string {
	s = ampRegex.ReplaceAllStringFunc(s, func(m string) string {
		if m == "&" {
			return "&amp;"
		}
		return m
	})
	replacer := strings.NewReplacer(
		"<", "&lt;",
		">", "&gt;",
		`"`, "&#34;",
		"'", "&#39;",
	)
	return replacer.Replace(s)
}
