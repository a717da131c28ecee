package medium

import (
	"regexp"
	"strings"
)

var (
	fenceRe      = regexp.MustCompile("(?s)```([A-Za-z0-9+#_-]*)[ \t]*\r?\n(.*?)```")
	headingRe    = regexp.MustCompile(`^(#{1,6})\s+(.*)$`)
	listMarkerRe = regexp.MustCompile(`^\s*(?:[-*+\x{2022}]|\d+\.)\s+`)
)

// ExtractCodeBlocks scans raw markdown for fenced code spans. Line numbers
// are 1-indexed and count the fence lines. A fence without a closing marker
// is not a code span and is left alone.
func ExtractCodeBlocks(raw string) []CodeBlock {
	var blocks []CodeBlock
	for _, loc := range fenceRe.FindAllStringSubmatchIndex(raw, -1) {
		match := raw[loc[0]:loc[1]]
		lang := strings.ToLower(raw[loc[2]:loc[3]])
		if lang == "" {
			lang = "text"
		}
		code := strings.TrimSuffix(raw[loc[4]:loc[5]], "\n")
		start := strings.Count(raw[:loc[0]], "\n") + 1
		blocks = append(blocks, CodeBlock{
			Language:  lang,
			Code:      code,
			StartLine: start,
			EndLine:   start + strings.Count(match, "\n"),
		})
	}
	return blocks
}

// parseBlocks tokenizes raw markdown into an ordered block sequence using a
// line scanner. Blank lines end the pending block; fences suspend all other
// classification until closed.
func parseBlocks(raw string) []ContentBlock {
	var (
		blocks  []ContentBlock
		para    []string
		list    []string
		quote   []string
		code    []string
		inFence bool
	)

	flushPara := func() {
		if len(para) > 0 {
			blocks = append(blocks, ContentBlock{Type: BlockParagraph, Content: strings.Join(para, "\n")})
			para = nil
		}
	}
	flushList := func() {
		if len(list) > 0 {
			blocks = append(blocks, ContentBlock{Type: BlockList, Content: strings.Join(list, "\n")})
			list = nil
		}
	}
	flushQuote := func() {
		if len(quote) > 0 {
			blocks = append(blocks, ContentBlock{Type: BlockQuote, Content: strings.Join(quote, "\n")})
			quote = nil
		}
	}
	flushAll := func() {
		flushPara()
		flushList()
		flushQuote()
	}

	for _, line := range strings.Split(raw, "\n") {
		trimmed := strings.TrimSpace(line)

		if inFence {
			if strings.HasPrefix(trimmed, "```") {
				blocks = append(blocks, ContentBlock{Type: BlockCode, Content: strings.Join(code, "\n")})
				code = nil
				inFence = false
				continue
			}
			code = append(code, line)
			continue
		}

		switch {
		case strings.HasPrefix(trimmed, "```"):
			flushAll()
			inFence = true
		case trimmed == "":
			flushAll()
		case headingRe.MatchString(trimmed):
			flushAll()
			m := headingRe.FindStringSubmatch(trimmed)
			blocks = append(blocks, ContentBlock{Type: BlockHeader, Content: strings.TrimSpace(m[2])})
		case strings.HasPrefix(trimmed, ">"):
			flushPara()
			flushList()
			text := strings.TrimPrefix(strings.TrimPrefix(trimmed, ">"), " ")
			quote = append(quote, text)
		case listMarkerRe.MatchString(line):
			flushPara()
			flushQuote()
			list = append(list, line)
		default:
			flushList()
			flushQuote()
			para = append(para, trimmed)
		}
	}

	// an unterminated fence keeps its lines as a paragraph rather than
	// dropping them
	if inFence && len(code) > 0 {
		para = append(para, code...)
	}
	flushAll()
	return blocks
}
