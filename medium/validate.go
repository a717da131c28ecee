package medium

import (
	"fmt"
	"regexp"
	"strings"
)

const (
	maxContentLength = 100000
	maxCodeBlocks    = 10
	maxCodeChars     = 5000
	maxTitleLength   = 100
	maxSubtitle      = 200
	maxSections      = 50
	maxHeaderRun     = 2
	maxReadingTime   = 20
)

var (
	nestedListRe = regexp.MustCompile(`(?m)^ {2,}(?:[-*+]|\d+\.)\s`)
	tableRowRe   = regexp.MustCompile(`(?m)^.*\|.*\|`)
	gistTokenRe  = regexp.MustCompile(`^(?:gh[pousr]_[A-Za-z0-9]{36,}|github_pat_[A-Za-z0-9_]{22,})$`)
)

// ValidGistTokenFormat reports whether tok looks like a GitHub personal
// access token, classic or fine-grained.
func ValidGistTokenFormat(tok string) bool {
	return gistTokenRe.MatchString(tok)
}

// ValidateRawContent checks the markdown before any structure is built.
// Empty content is the only fatal condition and short-circuits the rest.
func ValidateRawContent(raw string) ValidationResult {
	var res ValidationResult
	if strings.TrimSpace(raw) == "" {
		res.Errors = append(res.Errors, "content is empty")
		return res
	}
	if len(raw) > maxContentLength {
		res.Warnings = append(res.Warnings, fmt.Sprintf("content is very long (%d characters); consider splitting it into a series", len(raw)))
	}
	if !strings.HasPrefix(strings.TrimSpace(raw), "# ") {
		res.Warnings = append(res.Warnings, "content does not start with a # title heading")
	}
	blocks := ExtractCodeBlocks(raw)
	if len(blocks) > maxCodeBlocks {
		res.Warnings = append(res.Warnings, fmt.Sprintf("%d code blocks found; Medium reads better with %d or fewer", len(blocks), maxCodeBlocks))
	}
	if nestedListRe.MatchString(raw) {
		res.Warnings = append(res.Warnings, "nested lists are not supported by Medium and will be flattened")
	}
	if tableRowRe.MatchString(raw) {
		res.Warnings = append(res.Warnings, "tables are not supported by Medium; convert them to lists or images")
	}
	if run := longestFenceRun(raw, blocks); run >= 3 {
		res.Warnings = append(res.Warnings, fmt.Sprintf("%d consecutive code blocks; interleave some explanatory text", run))
	}
	return res
}

// longestFenceRun counts adjacent code spans separated only by blank lines.
func longestFenceRun(raw string, blocks []CodeBlock) int {
	if len(blocks) == 0 {
		return 0
	}
	lines := strings.Split(raw, "\n")
	run, longest := 1, 1
	for i := 1; i < len(blocks); i++ {
		adjacent := true
		for ln := blocks[i-1].EndLine; ln <= blocks[i].StartLine-2 && ln < len(lines); ln++ {
			if strings.TrimSpace(lines[ln]) != "" {
				adjacent = false
				break
			}
		}
		if adjacent {
			run++
		} else {
			run = 1
		}
		if run > longest {
			longest = run
		}
	}
	return longest
}

// ValidateGistToken checks the credential shape only; liveness is the gist
// client's concern. A missing token is fine, code just stays inline.
func ValidateGistToken(tok string) ValidationResult {
	var res ValidationResult
	tok = strings.TrimSpace(tok)
	if tok == "" {
		res.Warnings = append(res.Warnings, "no GitHub token configured; code blocks will stay inline instead of becoming gists")
		return res
	}
	if !ValidGistTokenFormat(tok) {
		res.Errors = append(res.Errors, "GitHub token has an invalid format")
	}
	return res
}

type sensitivePattern struct {
	re    *regexp.Regexp
	label string
}

var sensitivePatterns = []sensitivePattern{
	{regexp.MustCompile(`(?i)(?:password|passwd|secret|api[_-]?key|token)\s*[:=]\s*['"][^'"]{4,}['"]`), "credential assignment"},
	{regexp.MustCompile(`\bsk-[A-Za-z0-9_-]{20,}`), "API key"},
	{regexp.MustCompile(`\bgh[pousr]_[A-Za-z0-9]{36,}`), "GitHub token"},
	{regexp.MustCompile(`\bAKIA[0-9A-Z]{16}\b`), "AWS access key"},
	{regexp.MustCompile(`\bAIza[0-9A-Za-z_-]{35}\b`), "Google API key"},
	{regexp.MustCompile(`\bxox[baprs]-[A-Za-z0-9-]{10,}`), "Slack token"},
	{regexp.MustCompile(`-----BEGIN [A-Z ]*PRIVATE KEY-----`), "private key"},
	{regexp.MustCompile(`[A-Za-z0-9+/=]{40,}`), "high-entropy string"},
	{regexp.MustCompile(`\b[\w.+-]+@[\w-]+\.[\w.-]+\b`), "email address"},
	{regexp.MustCompile(`\b\d{1,3}\.\d{1,3}\.\d{1,3}\.\d{1,3}\b`), "IP address"},
}

// ValidateCodeBlocks screens every extracted block. Sensitive-looking data
// is fatal; size issues are advisory.
func ValidateCodeBlocks(blocks []CodeBlock) ValidationResult {
	var res ValidationResult
	for i, block := range blocks {
		if strings.TrimSpace(block.Code) == "" {
			res.Warnings = append(res.Warnings, fmt.Sprintf("code block %d is empty", i+1))
			continue
		}
		if len(block.Code) > maxCodeChars {
			res.Warnings = append(res.Warnings, fmt.Sprintf("code block %d is %d characters; consider trimming or linking it", i+1, len(block.Code)))
		}
		for _, p := range sensitivePatterns {
			if p.re.MatchString(block.Code) {
				res.Errors = append(res.Errors, fmt.Sprintf("code block %d may contain sensitive data (%s)", i+1, p.label))
				break
			}
		}
	}
	return res
}

// ValidateDocument checks the built model against Medium's editorial limits.
// Everything here is advisory.
func ValidateDocument(doc Document) ValidationResult {
	var res ValidationResult
	if len(doc.Title) > maxTitleLength {
		res.Warnings = append(res.Warnings, fmt.Sprintf("title is %d characters; Medium truncates past %d", len(doc.Title), maxTitleLength))
	}
	if len(doc.Subtitle) > maxSubtitle {
		res.Warnings = append(res.Warnings, fmt.Sprintf("subtitle is %d characters; keep it under %d", len(doc.Subtitle), maxSubtitle))
	}
	if len(doc.Sections) > maxSections {
		res.Warnings = append(res.Warnings, fmt.Sprintf("%d content blocks; consider splitting the article", len(doc.Sections)))
	}
	headerRun := 0
	flagged := false
	for _, blk := range doc.Sections {
		if blk.Type == BlockHeader {
			headerRun++
			if headerRun > maxHeaderRun && !flagged {
				res.Warnings = append(res.Warnings, "more than two consecutive headings; add text between them")
				flagged = true
			}
		} else {
			headerRun = 0
		}
	}
	if doc.Metadata.ReadingTime > maxReadingTime {
		res.Warnings = append(res.Warnings, fmt.Sprintf("estimated reading time is %d minutes; long reads lose Medium readers", doc.Metadata.ReadingTime))
	}
	return res
}
