package medium

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleArticle = "# Title\n\nSome intro.\n\n```go\nfmt.Println(\"hi\")\n```\n\nMore text.\n\n```\nplain\n```\n"

func TestExtractCodeBlocks(t *testing.T) {
	blocks := ExtractCodeBlocks(sampleArticle)
	require.Len(t, blocks, 2)

	assert.Equal(t, "go", blocks[0].Language)
	assert.Equal(t, `fmt.Println("hi")`, blocks[0].Code)
	assert.Equal(t, 5, blocks[0].StartLine)
	assert.Equal(t, 7, blocks[0].EndLine)

	assert.Equal(t, "text", blocks[1].Language, "missing language tag defaults to text")
	assert.Equal(t, "plain", blocks[1].Code)
	assert.Equal(t, 11, blocks[1].StartLine)
	assert.Equal(t, 13, blocks[1].EndLine)
}

func TestExtractCodeBlocks_LowercasesLanguage(t *testing.T) {
	blocks := ExtractCodeBlocks("```GO\nx := 1\n```")
	require.Len(t, blocks, 1)
	assert.Equal(t, "go", blocks[0].Language)
	assert.Equal(t, 1, blocks[0].StartLine)
	assert.Equal(t, 3, blocks[0].EndLine)
}

func TestExtractCodeBlocks_MultilineCode(t *testing.T) {
	blocks := ExtractCodeBlocks("intro\n\n```python\ndef f():\n    return 1\n```\n")
	require.Len(t, blocks, 1)
	assert.Equal(t, "def f():\n    return 1", blocks[0].Code)
	assert.Equal(t, 3, blocks[0].StartLine)
	assert.Equal(t, 6, blocks[0].EndLine)
}

func TestExtractCodeBlocks_NoFences(t *testing.T) {
	assert.Empty(t, ExtractCodeBlocks("# Just prose\n\nNothing fenced here."))
	assert.Empty(t, ExtractCodeBlocks(""))
}

func TestExtractCodeBlocks_UnterminatedFence(t *testing.T) {
	assert.Empty(t, ExtractCodeBlocks("text\n\n```go\nnever closed"))
}

func TestParseBlocks(t *testing.T) {
	blocks := parseBlocks(sampleArticle)
	require.Len(t, blocks, 5)

	assert.Equal(t, BlockHeader, blocks[0].Type)
	assert.Equal(t, "Title", blocks[0].Content)
	assert.Equal(t, BlockParagraph, blocks[1].Type)
	assert.Equal(t, "Some intro.", blocks[1].Content)
	assert.Equal(t, BlockCode, blocks[2].Type)
	assert.Equal(t, `fmt.Println("hi")`, blocks[2].Content)
	assert.Equal(t, BlockParagraph, blocks[3].Type)
	assert.Equal(t, BlockCode, blocks[4].Type)
	assert.Equal(t, "plain", blocks[4].Content)
}

func TestParseBlocks_ListsAndQuotes(t *testing.T) {
	raw := "## Points\n\n- one\n- two\n1. three\n\n> quoted line\n> second line\n\nTail para\ncontinues here."
	blocks := parseBlocks(raw)
	require.Len(t, blocks, 4)

	assert.Equal(t, BlockHeader, blocks[0].Type)
	assert.Equal(t, "Points", blocks[0].Content)

	assert.Equal(t, BlockList, blocks[1].Type)
	assert.Equal(t, "- one\n- two\n1. three", blocks[1].Content)

	assert.Equal(t, BlockQuote, blocks[2].Type)
	assert.Equal(t, "quoted line\nsecond line", blocks[2].Content, "quote markers are stripped")

	assert.Equal(t, BlockParagraph, blocks[3].Type)
	assert.Equal(t, "Tail para\ncontinues here.", blocks[3].Content)
}

func TestParseBlocks_BulletVariants(t *testing.T) {
	raw := "- dash\n* star\n+ plus\n• dot\n7. numbered"
	blocks := parseBlocks(raw)
	require.Len(t, blocks, 1)
	assert.Equal(t, BlockList, blocks[0].Type)
}

func TestParseBlocks_UnterminatedFenceKeptAsParagraph(t *testing.T) {
	blocks := parseBlocks("intro\n\n```go\ncode line")
	require.Len(t, blocks, 2)
	assert.Equal(t, BlockParagraph, blocks[0].Type)
	assert.Equal(t, "intro", blocks[0].Content)
	assert.Equal(t, BlockParagraph, blocks[1].Type)
	assert.Equal(t, "code line", blocks[1].Content)
}

func TestParseBlocks_HeadingLevels(t *testing.T) {
	blocks := parseBlocks("# One\n## Two\n###### Six\n####### NotAHeading")
	require.Len(t, blocks, 4)
	for i := 0; i < 3; i++ {
		assert.Equal(t, BlockHeader, blocks[i].Type)
	}
	assert.Equal(t, BlockParagraph, blocks[3].Type, "seven hashes is not a heading")
}

func TestParseBlocks_Empty(t *testing.T) {
	assert.Empty(t, parseBlocks(""))
	assert.Empty(t, parseBlocks("\n\n\n"))
}
