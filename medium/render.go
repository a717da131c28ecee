package medium

import (
	"fmt"
	"regexp"
	"strings"
)

const (
	maxBlocksPerSection = 3
	maxFilenameLength   = 50
	sectionDelimiter    = "\n\n---\n\n"
)

// htmlEscaper rewrites the five significant characters in one pass so
// already-escaped text never gets escaped twice.
var htmlEscaper = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	`"`, "&quot;",
	"'", "&#39;",
)

var (
	codeSpanRe = regexp.MustCompile("`([^`]+)`")
	boldRe     = regexp.MustCompile(`\*\*([^*]+)\*\*`)
	emphasisRe = regexp.MustCompile(`\*([^*]+)\*`)
	emUnderRe  = regexp.MustCompile(`\b_([^_]+)_\b`)
	linkRe     = regexp.MustCompile(`\[([^\]]+)\]\(([^)]+)\)`)
)

// renderInline escapes text and converts the minimal markdown Medium's
// editor understands when pasted as HTML.
func renderInline(text string) string {
	out := htmlEscaper.Replace(text)
	out = boldRe.ReplaceAllString(out, "<strong>$1</strong>")
	out = emphasisRe.ReplaceAllString(out, "<em>$1</em>")
	out = emUnderRe.ReplaceAllString(out, "<em>$1</em>")
	out = codeSpanRe.ReplaceAllString(out, "<code>$1</code>")
	out = linkRe.ReplaceAllString(out, `<a href="$2">$1</a>`)
	return out
}

type renderedBlock struct {
	typ    BlockType
	markup string
}

// renderBlockSequence produces the markup for every section in order.
// Code ordinals advance across both code and gist-reference blocks so the
// language lookup stays aligned after artifact binding.
func renderBlockSequence(doc Document) []renderedBlock {
	out := make([]renderedBlock, 0, len(doc.Sections))
	codeOrdinal := 0
	for _, blk := range doc.Sections {
		rb := renderedBlock{typ: blk.Type}
		switch blk.Type {
		case BlockHeader:
			rb.markup = "<h2>" + renderInline(blk.Content) + "</h2>"
		case BlockParagraph:
			rb.markup = "<p>" + renderInline(blk.Content) + "</p>"
		case BlockList:
			rb.markup = renderFlatList(blk.Content)
		case BlockQuote:
			rb.markup = "<blockquote>" + renderInline(blk.Content) + "</blockquote>"
		case BlockCode:
			lang := "text"
			if codeOrdinal < len(doc.CodeBlocks) {
				lang = doc.CodeBlocks[codeOrdinal].Language
			}
			codeOrdinal++
			rb.markup = fmt.Sprintf("<pre><code class=\"language-%s\">%s</code></pre>", lang, htmlEscaper.Replace(blk.Content))
		case BlockGistReference:
			codeOrdinal++
			if ref, ok := findArtifact(doc.Artifacts, blk.GistID); ok {
				rb.markup = fmt.Sprintf("<p><a href=%q>View code on GitHub Gist</a></p>\n<script src=%q></script>", ref.URL, ref.EmbedURL)
			}
		}
		out = append(out, rb)
	}
	return out
}

func findArtifact(refs []ArtifactRef, id string) (ArtifactRef, bool) {
	for _, ref := range refs {
		if ref.ID == id {
			return ref, true
		}
	}
	return ArtifactRef{}, false
}

// renderFlatList emits one single-level unordered list no matter how the
// source items were nested or numbered.
func renderFlatList(content string) string {
	var b strings.Builder
	b.WriteString("<ul>\n")
	for _, line := range strings.Split(content, "\n") {
		item := listMarkerRe.ReplaceAllString(line, "")
		if strings.TrimSpace(item) == "" {
			continue
		}
		b.WriteString("<li>" + renderInline(strings.TrimSpace(item)) + "</li>\n")
	}
	b.WriteString("</ul>")
	return b.String()
}

func joinMarkup(blocks []renderedBlock) string {
	parts := make([]string, 0, len(blocks))
	for _, blk := range blocks {
		if blk.markup == "" {
			continue
		}
		parts = append(parts, blk.markup)
	}
	return strings.Join(parts, "\n\n")
}

// renderOptimized is the paste-into-Medium format: one markup string with
// every heading at level 2 and all lists flattened.
func renderOptimized(doc Document) string {
	return joinMarkup(renderBlockSequence(doc))
}

// renderSectionGroups splits the article into paste-sized chunks. Runs of
// same-type blocks share a group up to the cap, headings always open a new
// one, and the tail group flushes whatever remains.
func renderSectionGroups(doc Document) ([]string, string) {
	rendered := renderBlockSequence(doc)
	var groups [][]renderedBlock
	var cur []renderedBlock
	for _, rb := range rendered {
		startNew := len(cur) > 0 &&
			(rb.typ == BlockHeader || cur[len(cur)-1].typ != rb.typ || len(cur) >= maxBlocksPerSection)
		if startNew {
			groups = append(groups, cur)
			cur = nil
		}
		cur = append(cur, rb)
	}
	if len(cur) > 0 {
		groups = append(groups, cur)
	}

	sections := make([]string, 0, len(groups))
	for _, g := range groups {
		sections = append(sections, joinMarkup(g))
	}
	return sections, strings.Join(sections, sectionDelimiter)
}

const richStyles = `body{margin:0;padding:2rem 1rem;background:#fafafa;color:#242424;font-family:Georgia,"Times New Roman",serif;line-height:1.7}
article{max-width:680px;margin:0 auto;background:#fff;padding:3rem;border-radius:4px;box-shadow:0 1px 4px rgba(0,0,0,.08)}
h1{font-size:2.2rem;line-height:1.2;margin:0 0 .4rem}
h2{font-size:1.5rem;margin:2rem 0 .8rem}
p.subtitle{color:#6b6b6b;font-size:1.2rem;margin-top:0}
pre{background:#f2f2f2;padding:1rem;overflow-x:auto;border-radius:4px;font-size:.9rem}
code{font-family:"SF Mono",Menlo,Consolas,monospace}
blockquote{border-left:3px solid #242424;margin-left:0;padding-left:1.2rem;font-style:italic}
footer{margin-top:3rem;padding-top:1rem;border-top:1px solid #e6e6e6;color:#6b6b6b;font-size:.85rem}
`

// renderRichHTML wraps the optimized body in a standalone page with inline
// styles and a metadata footer, for previewing outside the Medium editor.
func renderRichHTML(doc Document) string {
	var b strings.Builder
	b.WriteString("<!DOCTYPE html>\n<html lang=\"en\">\n<head>\n<meta charset=\"utf-8\">\n")
	b.WriteString("<title>" + htmlEscaper.Replace(doc.Title) + "</title>\n")
	b.WriteString("<style>\n" + richStyles + "</style>\n</head>\n<body>\n<article>\n")
	b.WriteString("<h1>" + renderInline(doc.Title) + "</h1>\n")
	if doc.Subtitle != "" {
		b.WriteString("<p class=\"subtitle\">" + renderInline(doc.Subtitle) + "</p>\n")
	}
	b.WriteString(renderOptimized(doc))
	b.WriteString("\n<footer>")
	b.WriteString(fmt.Sprintf("%d min read · %d words", doc.Metadata.ReadingTime, doc.Metadata.WordCount))
	if len(doc.Metadata.Tags) > 0 {
		b.WriteString(" · " + strings.Join(doc.Metadata.Tags, ", "))
	}
	if len(doc.Artifacts) > 0 {
		b.WriteString(fmt.Sprintf(" · %d code gists", len(doc.Artifacts)))
	}
	b.WriteString("</footer>\n</article>\n</body>\n</html>\n")
	return b.String()
}

var (
	filenameStripRe = regexp.MustCompile(`[^a-z0-9\s-]`)
	whitespaceRe    = regexp.MustCompile(`\s+`)
)

// GenerateFilename slugs a title for the exported file: lowercase, stripped
// of punctuation, whitespace as underscores, capped at 50 characters.
func GenerateFilename(title string) string {
	name := strings.ToLower(title)
	name = filenameStripRe.ReplaceAllString(name, "")
	name = whitespaceRe.ReplaceAllString(strings.TrimSpace(name), "_")
	if len(name) > maxFilenameLength {
		name = name[:maxFilenameLength]
	}
	if name == "" {
		return "untitled"
	}
	return name
}
