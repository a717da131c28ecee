package medium

import (
	"encoding/json"
	"strings"
)

// BlockType identifies the structural kind of a content block.
type BlockType string

const (
	BlockHeader        BlockType = "header"
	BlockParagraph     BlockType = "paragraph"
	BlockList          BlockType = "list"
	BlockQuote         BlockType = "quote"
	BlockCode          BlockType = "code"
	BlockGistReference BlockType = "gist-reference"
)

// ContentBlock is one structural unit of an article, in source order.
type ContentBlock struct {
	Type    BlockType `json:"type"`
	Content string    `json:"content"`
	GistID  string    `json:"gistId,omitempty"`
}

// CodeBlock is a fenced code span lifted out of raw markdown.
// StartLine and EndLine are 1-indexed and include the fence lines.
type CodeBlock struct {
	Language  string `json:"language"`
	Code      string `json:"code"`
	StartLine int    `json:"startLine"`
	EndLine   int    `json:"endLine"`
}

// ArtifactRef points at an externally published code artifact.
// BlockIndex is the ordinal of the code block it was created from.
type ArtifactRef struct {
	ID         string `json:"id"`
	URL        string `json:"url"`
	EmbedURL   string `json:"embedUrl"`
	Language   string `json:"language"`
	BlockIndex int    `json:"blockIndex"`
}

// Metadata carries derived article statistics.
type Metadata struct {
	Tags        []string `json:"tags"`
	WordCount   int      `json:"wordCount"`
	ReadingTime int      `json:"readingTime"`
}

// Document is the structured form of one article. It is built fresh for
// every export call and never shared between calls.
type Document struct {
	Title      string         `json:"title"`
	Subtitle   string         `json:"subtitle,omitempty"`
	Sections   []ContentBlock `json:"sections"`
	CodeBlocks []CodeBlock    `json:"codeBlocks"`
	Artifacts  []ArtifactRef  `json:"artifacts,omitempty"`
	Metadata   Metadata       `json:"metadata"`
}

// ValidationResult accumulates fatal errors and advisory warnings.
type ValidationResult struct {
	Errors   []string `json:"errors"`
	Warnings []string `json:"warnings"`
}

// IsValid reports whether no fatal errors were recorded. Warnings never
// affect validity.
func (v ValidationResult) IsValid() bool { return len(v.Errors) == 0 }

// Merge combines results by concatenating their error and warning lists.
func (v ValidationResult) Merge(others ...ValidationResult) ValidationResult {
	out := ValidationResult{
		Errors:   append([]string(nil), v.Errors...),
		Warnings: append([]string(nil), v.Warnings...),
	}
	for _, o := range others {
		out.Errors = append(out.Errors, o.Errors...)
		out.Warnings = append(out.Warnings, o.Warnings...)
	}
	return out
}

// MarshalJSON adds the derived isValid field to the wire form.
func (v ValidationResult) MarshalJSON() ([]byte, error) {
	type wire struct {
		IsValid  bool     `json:"isValid"`
		Errors   []string `json:"errors"`
		Warnings []string `json:"warnings"`
	}
	out := wire{IsValid: v.IsValid(), Errors: v.Errors, Warnings: v.Warnings}
	if out.Errors == nil {
		out.Errors = []string{}
	}
	if out.Warnings == nil {
		out.Warnings = []string{}
	}
	return json.Marshal(out)
}

// ExportFormat selects the output rendering.
type ExportFormat string

const (
	FormatOptimized ExportFormat = "optimized"
	FormatSections  ExportFormat = "sections"
	FormatRichHTML  ExportFormat = "rich-html"
)

// IsValid reports whether f names a known format.
func (f ExportFormat) IsValid() bool {
	switch f {
	case FormatOptimized, FormatSections, FormatRichHTML:
		return true
	}
	return false
}

// ParseFormat maps a wire value to an ExportFormat.
func ParseFormat(s string) (ExportFormat, bool) {
	f := ExportFormat(strings.ToLower(strings.TrimSpace(s)))
	if f.IsValid() {
		return f, true
	}
	return "", false
}

// ExportResult is the outcome of one export call. Failures are reported
// here rather than as Go errors so the caller always gets the validation
// detail that produced them.
type ExportResult struct {
	Format     ExportFormat     `json:"format"`
	Content    string           `json:"content"`
	Filename   string           `json:"filename,omitempty"`
	Sections   []string         `json:"sections,omitempty"`
	Artifacts  []ArtifactRef    `json:"artifacts,omitempty"`
	Success    bool             `json:"success"`
	Error      string           `json:"error,omitempty"`
	Validation ValidationResult `json:"validation"`
}
