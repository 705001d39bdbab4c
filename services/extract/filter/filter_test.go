package filter

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AleutianAI/blockextract/services/extract/block"
)

func validCode(content string) block.ValidatedBlock {
	return block.ValidatedBlock{
		CandidateBlock: block.CandidateBlock{
			Content:   content,
			StartLine: 1,
			EndLine:   len(content),
		},
		BlockType:       block.BlockCode,
		Language:        "python",
		ConfidenceScore: 0.90,
	}
}

func TestAccept_ConfidenceGate(t *testing.T) {
	v := validCode("def add(a, b):\n    return a + b\n    # padding line\n")
	v.ConfidenceScore = 0.10

	got := Accept(v)
	assert.False(t, got.FilterPassed)
	assert.Equal(t, "confidence_gate", got.FilteredBy)
}

func TestAccept_SizeFloor(t *testing.T) {
	v := validCode("x = 1\n")
	got := Accept(v)
	require.False(t, got.FilterPassed)
	assert.Equal(t, "size_floor", got.FilteredBy)
}

func TestAccept_InlineVariableRejected(t *testing.T) {
	v := validCode("total_count = 1\nmax_retries = 2\ntimeout_secs = 3\n")
	got := Accept(v)
	require.False(t, got.FilterPassed)
	assert.Equal(t, "inline_variable", got.FilteredBy)
}

func TestAccept_SyntaxIntegrityUnbalanced(t *testing.T) {
	v := validCode("def add(a, b:\n    return a + b\n    print(add(1, 2))\n")
	got := Accept(v)
	require.False(t, got.FilterPassed)
	assert.Equal(t, "syntax_integrity", got.FilteredBy)
}

func TestAccept_ProseDetectionRejected(t *testing.T) {
	content := "The quick brown fox and the lazy dog are here.\n" +
		"However, this is not code, but it is a sentence.\n" +
		"Therefore this block should be rejected as prose.\n"
	v := validCode(content)
	got := Accept(v)
	require.False(t, got.FilterPassed)
	assert.Equal(t, "prose_detection", got.FilteredBy)
}

func TestAccept_IndentationConsistencyRejected(t *testing.T) {
	content := "def add(a, b):\n\treturn a + b\n    print(add(1, 2))\n"
	v := validCode(content)
	v.Language = "python"
	got := Accept(v)
	require.False(t, got.FilterPassed)
	assert.Equal(t, "indentation_consistency", got.FilteredBy)
}

func TestAccept_WellFormedCodeSurvives(t *testing.T) {
	content := "def add(x, y):\n    total = x + y\n    return total\n"
	v := validCode(content)
	got := Accept(v)
	assert.True(t, got.FilterPassed)
	assert.Empty(t, got.RejectionReason)
}

func TestBatchFilter_PreservesOrderAndAnnotatesRejections(t *testing.T) {
	survivor := validCode("def add(x, y):\n    total = x + y\n    return total\n")
	rejected := validCode("x = 1\n")

	out := BatchFilter([]block.ValidatedBlock{rejected, survivor})
	require.Len(t, out, 2)
	assert.False(t, out[0].FilterPassed)
	assert.True(t, out[1].FilterPassed)
}

func TestBatchFilter_IdempotentOnAlreadyAcceptedList(t *testing.T) {
	survivor := validCode("def add(x, y):\n    total = x + y\n    return total\n")
	first := BatchFilter([]block.ValidatedBlock{survivor})
	second := BatchFilter([]block.ValidatedBlock{first[0].ValidatedBlock})
	require.Len(t, second, 1)
	assert.Equal(t, first[0].FilterPassed, second[0].FilterPassed)
}
