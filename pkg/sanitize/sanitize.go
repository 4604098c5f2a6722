// Package sanitize neutralizes HTML-significant sequences in user-submitted
// text before it is interpolated into generated HTML, such as notification
// email bodies. Sanitization strips markup instead of escaping it so the
// transform is idempotent: sanitizing already-sanitized text is a no-op.
package sanitize

import (
	"regexp"
	"strings"
)

var (
	scriptTagRegex = regexp.MustCompile(`(?is)<script\b[^>]*>.*?</script>`)
	eventAttrRegex = regexp.MustCompile(`(?i)\bon\w+\s*=`)
	jsProtoRegex   = regexp.MustCompile(`(?i)javascript\s*:`)
	angleRegex     = regexp.MustCompile(`[<>]`)
)

// Text returns s with HTML tag syntax and attribute-triggerable content
// removed. Script blocks are dropped with their contents, inline event
// handler fragments (onerror=, onclick=, ...) and javascript: protocol
// prefixes are stripped, and any remaining angle brackets are removed so
// no tag syntax survives. Readable text content is preserved.
//
// The passes repeat until the string is stable. Deleting a match can splice
// the surrounding characters into a new match for ANY of the passes, angle
// removal included ("o<>nerror=" becomes "onerror=" once the brackets are
// gone), so every pass has to see the output of every other pass before the
// result can be trusted.
func Text(s string) string {
	if s == "" {
		return s
	}

	for {
		next := scriptTagRegex.ReplaceAllString(s, "")
		next = eventAttrRegex.ReplaceAllString(next, "")
		next = jsProtoRegex.ReplaceAllString(next, "")
		next = angleRegex.ReplaceAllString(next, "")
		if next == s {
			break
		}
		s = next
	}
	return strings.TrimSpace(s)
}
