package render

import (
	"regexp"

	"github.com/microcosm-cc/bluemonday"
)

var (
	classNames  = regexp.MustCompile(`^[a-zA-Z0-9 _-]+$`)
	columnWidth = regexp.MustCompile(`^[0-9.]+px$`)
)

// Sanitizer strips anything outside the markup the HTML writer produces.
//
// Thread-safe for concurrent use.
type Sanitizer struct {
	policy *bluemonday.Policy
}

// NewSanitizer starts from the UGC policy and opens it up for rendered posts: class
// names, column widths, link targets, collapsible toggles, figures and videos.
func NewSanitizer() *Sanitizer {
	policy := bluemonday.UGCPolicy()
	policy.AllowDataURIImages()

	policy.AllowAttrs("class").Matching(classNames).Globally()
	policy.AllowAttrs("data-columns").Matching(bluemonday.Integer).OnElements("div")
	policy.AllowStyles("width").Matching(columnWidth).OnElements("div")
	policy.AllowAttrs("target").Matching(regexp.MustCompile(`^_blank$`)).OnElements("a")
	policy.AllowAttrs("loading").Matching(regexp.MustCompile(`^lazy$`)).OnElements("img")
	policy.AllowElements("article", "details", "summary", "figure", "figcaption")
	policy.AllowAttrs("src").OnElements("video")
	policy.AllowAttrs("controls").Matching(regexp.MustCompile(`^$`)).OnElements("video")

	return &Sanitizer{policy: policy}
}

// Sanitize removes dangerous HTML while preserving rendered post markup
func (s *Sanitizer) Sanitize(html string) (string, error) {
	return s.policy.Sanitize(html), nil
}
