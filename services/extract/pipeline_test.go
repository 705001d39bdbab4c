package extract

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPipeline_EmptyInputYieldsEmptyList(t *testing.T) {
	p := NewPipeline()
	out, err := p.Extract(context.Background(), "", "")
	require.NoError(t, err)
	assert.Empty(t, out)
}

func TestPipeline_PlainProseYieldsEmptyList(t *testing.T) {
	p := NewPipeline()
	text := "This document is entirely ordinary prose.\n" +
		"It describes nothing technical whatsoever.\n" +
		"There is no code, no configuration, and no structured data here.\n"
	out, err := p.Extract(context.Background(), text, "")
	require.NoError(t, err)
	assert.Empty(t, out)
}

func TestPipeline_FencedPythonScenario(t *testing.T) {
	p := NewPipeline()
	text := "Here is an example:\n\n```python\ndef f():\n    return 1\n    # trailing\n```\n"
	out, err := p.Extract(context.Background(), text, "")
	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.Equal(t, BlockType("code"), out[0].BlockType)
	assert.Equal(t, "python", out[0].Language)
	assert.GreaterOrEqual(t, out[0].ConfidenceScore, 0.90)
}

func TestPipeline_JSONWithFilenameScenario(t *testing.T) {
	p := NewPipeline()
	text := "{\n  \"id\": 1,\n  \"name\": \"widget\",\n  \"tags\": [\"a\", \"b\", \"c\"],\n  \"active\": true\n}\n"
	out, err := p.Extract(context.Background(), text, "data.json")
	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.Equal(t, "json", out[0].Language)
	assert.Equal(t, 0.99, out[0].ConfidenceScore)
}

func TestPipeline_RepeatedAssignmentsScenario(t *testing.T) {
	p := NewPipeline()
	text := "x = 1\ny = 2\nz = 3\nw = 4\nv = 5\n"
	out, err := p.Extract(context.Background(), text, "")
	require.NoError(t, err)
	assert.Empty(t, out)
}

func TestPipeline_CiscoConfigScenario(t *testing.T) {
	p := NewPipeline()
	text := "! Sample config\n" +
		"access-list 10 permit 192.168.1.1\n" +
		"vlan 20\n" +
		"interface GigabitEthernet0/1\n" +
		"router bgp 65000\n" +
		"interface Vlan20\n" +
		"description uplink\n" +
		"end\n"
	out, err := p.Extract(context.Background(), text, "")
	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.Equal(t, "cisco_ios", out[0].Language)
	assert.Equal(t, 0.85, out[0].ConfidenceScore)
}

func TestPipeline_DeterministicAcrossRuns(t *testing.T) {
	p := NewPipeline()
	text := "```go\nfunc add(a, b int) int {\n    return a + b\n}\n```\n\nsome discussion.\n"

	first, err := p.Extract(context.Background(), text, "")
	require.NoError(t, err)
	second, err := p.Extract(context.Background(), text, "")
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestPipeline_OutputSortedByStartLine(t *testing.T) {
	p := NewPipeline()
	text := "```go\nfunc add(a, b int) int {\n    return a + b\n}\n```\n\n" +
		"    def mul(a, b):\n        return a * b\n    print(mul(2, 3))\n"
	out, err := p.Extract(context.Background(), text, "")
	require.NoError(t, err)
	for i := 1; i < len(out); i++ {
		assert.LessOrEqual(t, out[i-1].StartLine, out[i].StartLine)
	}
}

func TestPipeline_ContentMatchesLineSlice(t *testing.T) {
	p := NewPipeline()
	text := "```go\nfunc add(x, y int) int {\n    return x + y\n}\n```\n"
	out, err := p.Extract(context.Background(), text, "")
	require.NoError(t, err)
	require.Len(t, out, 1)

	lines := strings.Split(text, "\n")
	want := strings.Join(lines[out[0].StartLine-1:out[0].EndLine], "\n")
	assert.Equal(t, want, out[0].Content)
}

func TestPipeline_InvalidUTF8IsFatal(t *testing.T) {
	p := NewPipeline()
	_, err := p.Extract(context.Background(), string([]byte{0xff, 0xfe, 0xfd}), "")
	assert.Error(t, err)
}
