package email

import (
	"html"
	"strings"
	"sync"

	"github.com/microcosm-cc/bluemonday"
)

var (
	strictPolicy *bluemonday.Policy
	policyOnce   sync.Once

	// Block-level closers become line breaks before tags are stripped
	blockBreaks = strings.NewReplacer(
		"<br>", "\n<br>",
		"</p>", "</p>\n",
		"</div>", "</div>\n",
		"</h1>", "</h1>\n",
		"</li>", "</li>\n",
		"</tr>", "</tr>\n",
	)
)

// PlainText derives the text/plain alternative of a rendered HTML email.
func PlainText(htmlBody string) string {
	policyOnce.Do(func() {
		// StrictPolicy strips ALL HTML, returns plain text
		strictPolicy = bluemonday.StrictPolicy()
	})

	stripped := strictPolicy.Sanitize(blockBreaks.Replace(htmlBody))
	text := html.UnescapeString(stripped)

	var lines []string
	blank := false
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			if !blank && len(lines) > 0 {
				lines = append(lines, "")
			}
			blank = true
			continue
		}
		blank = false
		lines = append(lines, line)
	}
	return strings.TrimSpace(strings.Join(lines, "\n"))
}
