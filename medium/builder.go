package medium

import (
	"regexp"
	"sort"
	"strings"
)

// WordsPerMinute is the reading speed behind the ReadingTime estimate.
const WordsPerMinute = 200

// DefaultTitle is used when the content has no level-1 heading.
const DefaultTitle = "Untitled Article"

const maxTags = 5

var titleRe = regexp.MustCompile(`(?m)^#\s+(.+)$`)

// BuildDocument turns raw markdown into the structured article model.
// It never fails: missing pieces get placeholders or stay empty and the
// validator reports on them separately.
func BuildDocument(raw string) Document {
	sections := parseBlocks(raw)
	codeBlocks := ExtractCodeBlocks(raw)

	title := extractTitle(raw)
	if title == "" {
		title = DefaultTitle
	}

	wordCount := len(strings.Fields(raw))
	return Document{
		Title:      title,
		Subtitle:   extractSubtitle(raw),
		Sections:   sections,
		CodeBlocks: codeBlocks,
		Metadata: Metadata{
			Tags:        extractTags(raw, maxTags),
			WordCount:   wordCount,
			ReadingTime: readingTime(wordCount),
		},
	}
}

func readingTime(wordCount int) int {
	return (wordCount + WordsPerMinute - 1) / WordsPerMinute
}

func extractTitle(raw string) string {
	if m := titleRe.FindStringSubmatch(raw); len(m) >= 2 {
		return strings.TrimSpace(m[1])
	}
	return ""
}

// extractSubtitle takes the first paragraph directly below the title line,
// before any other structural element. Articles that open with a heading,
// list, or fence have no subtitle.
func extractSubtitle(raw string) string {
	lines := strings.Split(raw, "\n")
	titleSeen := false
	var para []string
	for _, line := range lines {
		trimmed := strings.TrimSpace(line)
		if !titleSeen {
			if strings.HasPrefix(line, "# ") {
				titleSeen = true
			}
			continue
		}
		if trimmed == "" {
			if len(para) > 0 {
				break
			}
			continue
		}
		if strings.HasPrefix(trimmed, "#") || strings.HasPrefix(trimmed, ">") ||
			strings.HasPrefix(trimmed, "```") || listMarkerRe.MatchString(line) {
			break
		}
		para = append(para, trimmed)
	}
	return strings.Join(para, " ")
}

var tagWordRe = regexp.MustCompile(`[a-z][a-z0-9]{3,}`)

var tagStopwords = map[string]struct{}{
	"about": {}, "after": {}, "also": {}, "been": {}, "being": {}, "between": {},
	"both": {}, "could": {}, "does": {}, "doing": {}, "down": {}, "each": {},
	"every": {}, "first": {}, "from": {}, "have": {}, "here": {}, "into": {},
	"just": {}, "like": {}, "made": {}, "make": {}, "many": {}, "more": {},
	"most": {}, "much": {}, "need": {}, "only": {}, "other": {}, "over": {},
	"same": {}, "should": {}, "some": {}, "still": {}, "such": {}, "than": {},
	"that": {}, "their": {}, "them": {}, "then": {}, "there": {}, "these": {},
	"they": {}, "this": {}, "those": {}, "through": {}, "under": {}, "using": {},
	"very": {}, "were": {}, "what": {}, "when": {}, "where": {}, "which": {},
	"while": {}, "will": {}, "with": {}, "without": {}, "would": {}, "your": {},
}

// extractTags picks the most frequent meaningful words outside code fences.
// Ties break alphabetically so the result is stable for identical input.
func extractTags(raw string, limit int) []string {
	prose := fenceRe.ReplaceAllString(raw, " ")
	counts := make(map[string]int)
	for _, word := range tagWordRe.FindAllString(strings.ToLower(prose), -1) {
		if _, skip := tagStopwords[word]; skip {
			continue
		}
		counts[word]++
	}
	words := make([]string, 0, len(counts))
	for word := range counts {
		words = append(words, word)
	}
	sort.Slice(words, func(i, j int) bool {
		if counts[words[i]] != counts[words[j]] {
			return counts[words[i]] > counts[words[j]]
		}
		return words[i] < words[j]
	})
	if len(words) > limit {
		words = words[:limit]
	}
	return words
}

// AttachArtifacts swaps the code sections named by each ref for
// gist-reference blocks and records the refs on the document. Refs whose
// BlockIndex does not name a code block are dropped.
func AttachArtifacts(doc *Document, refs []ArtifactRef) {
	if len(refs) == 0 {
		return
	}
	var codeSections []int
	for i, blk := range doc.Sections {
		if blk.Type == BlockCode {
			codeSections = append(codeSections, i)
		}
	}
	for _, ref := range refs {
		if ref.BlockIndex < 0 || ref.BlockIndex >= len(codeSections) {
			continue
		}
		idx := codeSections[ref.BlockIndex]
		doc.Sections[idx] = ContentBlock{
			Type:    BlockGistReference,
			Content: doc.Sections[idx].Content,
			GistID:  ref.ID,
		}
		doc.Artifacts = append(doc.Artifacts, ref)
	}
}
