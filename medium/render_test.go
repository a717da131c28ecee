package medium

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderInline(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{
			name: "bold",
			in:   "a **bold** word",
			want: "a <strong>bold</strong> word",
		},
		{
			name: "emphasis star",
			in:   "an *emphasized* word",
			want: "an <em>emphasized</em> word",
		},
		{
			name: "emphasis underscore",
			in:   "an _emphasized_ word",
			want: "an <em>emphasized</em> word",
		},
		{
			name: "code span",
			in:   "run `go vet` first",
			want: "run <code>go vet</code> first",
		},
		{
			name: "link",
			in:   "see [the docs](https://go.dev/doc)",
			want: `see <a href="https://go.dev/doc">the docs</a>`,
		},
		{
			name: "html escaped",
			in:   `<b> & "quotes" </b>`,
			want: "&lt;b&gt; &amp; &quot;quotes&quot; &lt;/b&gt;",
		},
		{
			name: "bold not eaten by emphasis",
			in:   "**all bold**",
			want: "<strong>all bold</strong>",
		},
		{
			name: "snake_case untouched",
			in:   "use snake_case names",
			want: "use snake_case names",
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, renderInline(tc.in))
		})
	}
}

func TestRenderOptimized_ForcesLevelTwoHeadings(t *testing.T) {
	doc := BuildDocument("# Top\n\nIntro.\n\n### Deep Heading\n\nText.")
	out := renderOptimized(doc)
	assert.Contains(t, out, "<h2>Top</h2>")
	assert.Contains(t, out, "<h2>Deep Heading</h2>")
	assert.NotContains(t, out, "<h1>")
	assert.NotContains(t, out, "<h3>")
}

func TestRenderOptimized_BlockMarkup(t *testing.T) {
	doc := BuildDocument("# T\n\nA paragraph.\n\n> A quote.\n\n- one\n- two\n\n```go\nx < 1\n```\n")
	out := renderOptimized(doc)

	assert.Contains(t, out, "<p>A paragraph.</p>")
	assert.Contains(t, out, "<blockquote>A quote.</blockquote>")
	assert.Contains(t, out, "<ul>\n<li>one</li>\n<li>two</li>\n</ul>")
	assert.Contains(t, out, `<pre><code class="language-go">x &lt; 1</code></pre>`)
}

func TestRenderOptimized_Deterministic(t *testing.T) {
	doc := BuildDocument(sampleArticle)
	assert.Equal(t, renderOptimized(doc), renderOptimized(doc))
}

func TestRenderFlatList(t *testing.T) {
	content := "- one\n  - nested\n* star\n+ plus\n7. numbered"
	want := "<ul>\n<li>one</li>\n<li>nested</li>\n<li>star</li>\n<li>plus</li>\n<li>numbered</li>\n</ul>"
	assert.Equal(t, want, renderFlatList(content), "nesting and marker style are flattened away")
}

func TestRenderBlockSequence_GistReference(t *testing.T) {
	doc := Document{
		Sections: []ContentBlock{
			{Type: BlockGistReference, Content: "x := 1", GistID: "abc"},
		},
		CodeBlocks: []CodeBlock{{Language: "go", Code: "x := 1"}},
		Artifacts: []ArtifactRef{
			{ID: "abc", URL: "https://gist.github.com/u/abc", EmbedURL: "https://gist.github.com/u/abc.js"},
		},
	}
	out := renderOptimized(doc)
	assert.Contains(t, out, `<a href="https://gist.github.com/u/abc">View code on GitHub Gist</a>`)
	assert.Contains(t, out, `<script src="https://gist.github.com/u/abc.js"></script>`)
	assert.NotContains(t, out, "<pre>", "referenced code is not rendered inline")
}

func TestRenderBlockSequence_OrphanGistReferenceOmitted(t *testing.T) {
	doc := Document{
		Sections: []ContentBlock{
			{Type: BlockParagraph, Content: "before"},
			{Type: BlockGistReference, Content: "x := 1", GistID: "ghost"},
			{Type: BlockParagraph, Content: "after"},
		},
	}
	out := renderOptimized(doc)
	assert.Equal(t, "<p>before</p>\n\n<p>after</p>", out)
}

func TestRenderBlockSequence_LanguageOrdinalsSurviveBinding(t *testing.T) {
	doc := BuildDocument("# T\n\n```go\nfirst()\n```\n\ntext\n\n```python\nsecond()\n```\n")
	AttachArtifacts(&doc, []ArtifactRef{{ID: "g1", URL: "https://g/1", EmbedURL: "https://g/1.js", BlockIndex: 0}})

	out := renderOptimized(doc)
	assert.Contains(t, out, `<a href="https://g/1">`)
	assert.Contains(t, out, `<pre><code class="language-python">second()</code></pre>`,
		"second block keeps its own language after the first became a gist")
}

func TestRenderSectionGroups(t *testing.T) {
	var doc Document
	for i := 0; i < 7; i++ {
		doc.Sections = append(doc.Sections, ContentBlock{Type: BlockParagraph, Content: "p"})
	}
	doc.Sections = append(doc.Sections, ContentBlock{Type: BlockHeader, Content: "h"})

	sections, joined := renderSectionGroups(doc)
	require.Len(t, sections, 4)
	assert.Equal(t, strings.Count(sections[0], "<p>"), 3)
	assert.Equal(t, strings.Count(sections[1], "<p>"), 3)
	assert.Equal(t, strings.Count(sections[2], "<p>"), 1)
	assert.Equal(t, "<h2>h</h2>", sections[3])
	assert.Equal(t, strings.Join(sections, "\n\n---\n\n"), joined)
}

func TestRenderSectionGroups_HeaderStartsNewGroup(t *testing.T) {
	doc := Document{Sections: []ContentBlock{
		{Type: BlockParagraph, Content: "a"},
		{Type: BlockHeader, Content: "h1"},
		{Type: BlockHeader, Content: "h2"},
		{Type: BlockParagraph, Content: "b"},
	}}
	sections, _ := renderSectionGroups(doc)
	require.Len(t, sections, 4, "every header opens its own group")
}

func TestRenderSectionGroups_TypeChangeStartsNewGroup(t *testing.T) {
	doc := Document{Sections: []ContentBlock{
		{Type: BlockParagraph, Content: "a"},
		{Type: BlockQuote, Content: "q"},
		{Type: BlockParagraph, Content: "b"},
	}}
	sections, _ := renderSectionGroups(doc)
	require.Len(t, sections, 3)
}

func TestRenderRichHTML(t *testing.T) {
	doc := BuildDocument("# Rich Title\n\nThe subtitle.\n\n## Body\n\nSome text.")
	doc.Artifacts = []ArtifactRef{{ID: "g"}}
	out := renderRichHTML(doc)

	assert.True(t, strings.HasPrefix(out, "<!DOCTYPE html>"))
	assert.Contains(t, out, "<title>Rich Title</title>")
	assert.Contains(t, out, "<h1>Rich Title</h1>")
	assert.Contains(t, out, `<p class="subtitle">The subtitle.</p>`)
	assert.Contains(t, out, "<h2>Body</h2>")
	assert.Contains(t, out, "1 min read")
	assert.Contains(t, out, "9 words")
	assert.Contains(t, out, "1 code gists")
	assert.Contains(t, out, "<style>")
}

func TestRenderRichHTML_NoSubtitleNoArtifacts(t *testing.T) {
	out := renderRichHTML(BuildDocument("# Plain\n\n## Straight to it\n\nText."))
	assert.NotContains(t, out, `class="subtitle"`)
	assert.NotContains(t, out, "code gists")
}

func TestGenerateFilename(t *testing.T) {
	tests := []struct {
		name  string
		title string
		want  string
	}{
		{"basic", "Hello, World! 2024", "hello_world_2024"},
		{"hyphen kept", "Go - The Good Parts", "go_-_the_good_parts"},
		{"collapses whitespace", "a   lot\tof space", "a_lot_of_space"},
		{"strips symbols", "Why $$$ Isn't Everything", "why_isnt_everything"},
		{"only symbols", "!!!", "untitled"},
		{"empty", "", "untitled"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, GenerateFilename(tc.title))
		})
	}
}

func TestGenerateFilename_Truncates(t *testing.T) {
	got := GenerateFilename(strings.Repeat("word ", 30))
	assert.Len(t, got, 50)
}
