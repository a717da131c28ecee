package generator

import (
	"errors"
	"regexp"
	"strings"
)

const digestLimit = 120

// PostProcess validates the model output and fills the Draft fields.
func PostProcess(raw string) (Draft, error) {
	md := unwrapMarkdownFence(strings.TrimSpace(raw))
	if md == "" {
		return Draft{}, errors.New("model returned empty markdown")
	}

	digest := extractDigest(md)
	if digest == "" {
		digest = md
	}
	digest = defaultDigest(digest, digestLimit)

	return Draft{
		Title:    extractTitle(md),
		Digest:   digest,
		Markdown: md,
	}, nil
}

// unwrapMarkdownFence removes a ```markdown wrapper some models put around
// the whole document. Fences with other language tags are real content and
// stay put.
func unwrapMarkdownFence(md string) string {
	for _, tag := range []string{"```markdown", "```md"} {
		if !strings.HasPrefix(md, tag) {
			continue
		}
		rest := strings.TrimPrefix(md, tag)
		rest = strings.TrimLeft(rest, "\r\n")
		if i := strings.LastIndex(rest, "```"); i >= 0 {
			rest = rest[:i]
		}
		return strings.TrimSpace(rest)
	}
	return md
}

var draftTitleRe = regexp.MustCompile(`(?m)^#\s+(.+)$`)

func extractTitle(md string) string {
	if m := draftTitleRe.FindStringSubmatch(md); len(m) >= 2 {
		return strings.TrimSpace(m[1])
	}
	return ""
}

// extractDigest takes the first paragraph line below any headings.
func extractDigest(md string) string {
	for _, line := range strings.Split(md, "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" || strings.HasPrefix(trimmed, "#") {
			continue
		}
		return trimmed
	}
	return ""
}

func defaultDigest(md string, limit int) string {
	joined := strings.Join(strings.Fields(md), " ")
	if len(joined) <= limit {
		return joined
	}
	return joined[:limit]
}
