package validator

import (
	"context"
	"testing"

	"github.com/AleutianAI/blockextract/services/extract/block"
	"github.com/AleutianAI/blockextract/services/extract/registry"
)

func TestValidate_HintStep(t *testing.T) {
	reg := registry.New()
	v := New(reg)

	candidate := block.CandidateBlock{
		Content:      "def add(a, b):\n    return a + b\n",
		StartLine:    1,
		EndLine:      2,
		Confidence:   0.95,
		LanguageHint: "python",
	}

	got := v.Validate(context.Background(), candidate, "")
	if got.BlockType != block.BlockCode {
		t.Fatalf("expected code, got %v", got.BlockType)
	}
	if got.Language != registry.Python {
		t.Errorf("expected python, got %q", got.Language)
	}
	if got.ValidationMethod != block.MethodTreeSitterHint {
		t.Errorf("expected tree-sitter-hint, got %q", got.ValidationMethod)
	}
	if got.ConfidenceScore < 0.90 {
		t.Errorf("expected confidence >= 0.90, got %v", got.ConfidenceScore)
	}
}

func TestValidate_ExtensionMarkdown(t *testing.T) {
	reg := registry.New()
	v := New(reg)

	candidate := block.CandidateBlock{Content: "# heading\n\nsome text\n", StartLine: 1, EndLine: 3, Confidence: 0.5}
	got := v.Validate(context.Background(), candidate, "README.md")
	if got.BlockType != block.BlockMarkup || got.Language != block.LangMarkdown {
		t.Fatalf("expected markup/markdown, got %+v", got)
	}
	if got.ConfidenceScore != 0.90 {
		t.Errorf("expected confidence 0.90, got %v", got.ConfidenceScore)
	}
}

func TestValidate_StructuredJSON(t *testing.T) {
	reg := registry.New()
	v := New(reg)

	candidate := block.CandidateBlock{
		Content:   "{\n  \"name\": \"widget\",\n  \"count\": 42,\n  \"active\": true\n}\n",
		StartLine: 1,
		EndLine:   5,
		Confidence: 0.5,
	}
	got := v.Validate(context.Background(), candidate, "data.json")
	if got.BlockType != block.BlockStructured || got.Language != block.LangJSON {
		t.Fatalf("expected structured/json, got %+v", got)
	}
	if got.ConfidenceScore != 0.99 {
		t.Errorf("expected extension-branch json confidence 0.99, got %v", got.ConfidenceScore)
	}
}

func TestValidate_ConfigCisco(t *testing.T) {
	reg := registry.New()
	v := New(reg)

	candidate := block.CandidateBlock{
		Content: "access-list 10 permit 192.168.1.0\n" +
			"vlan 20\n" +
			"interface GigabitEthernet0/1\n" +
			"router bgp 65000\n",
		StartLine:  1,
		EndLine:    4,
		Confidence: 0.5,
	}
	got := v.Validate(context.Background(), candidate, "")
	if got.BlockType != block.BlockConfig || got.Language != block.LangCiscoIOS {
		t.Fatalf("expected config/cisco_ios, got %+v", got)
	}
	if got.ConfidenceScore != 0.85 {
		t.Errorf("expected confidence 0.85, got %v", got.ConfidenceScore)
	}
}

func TestValidate_Log(t *testing.T) {
	reg := registry.New()
	v := New(reg)

	candidate := block.CandidateBlock{
		Content: "2024-01-15T10:22:31 INFO starting worker\n" +
			"2024-01-15T10:22:32 ERROR connection refused\n",
		StartLine:  1,
		EndLine:    2,
		Confidence: 0.5,
	}
	got := v.Validate(context.Background(), candidate, "")
	if got.BlockType != block.BlockLog || got.Language != block.LangLog {
		t.Fatalf("expected log, got %+v", got)
	}
}

func TestValidate_UnknownFallback(t *testing.T) {
	reg := registry.New()
	v := New(reg)

	candidate := block.CandidateBlock{
		Content:    "this is just some ordinary prose with no markers at all",
		StartLine:  1,
		EndLine:    1,
		Confidence: 0.4,
	}
	got := v.Validate(context.Background(), candidate, "")
	if got.BlockType != block.BlockUnknown {
		t.Fatalf("expected unknown, got %+v", got)
	}
	if got.ConfidenceScore != 0.5*candidate.Confidence {
		t.Errorf("expected halved confidence, got %v", got.ConfidenceScore)
	}
}

func TestValidate_JSONPreferredOverYAML(t *testing.T) {
	// A JSON object is also valid YAML; spec §8 requires json to win
	// because the structured step tries JSON first.
	reg := registry.New()
	v := New(reg)

	candidate := block.CandidateBlock{
		Content:    "{\"a\": 1, \"b\": 2}\n",
		StartLine:  1,
		EndLine:    1,
		Confidence: 0.5,
	}
	got := v.Validate(context.Background(), candidate, "")
	if got.Language != block.LangJSON {
		t.Fatalf("expected json to win over yaml, got %q", got.Language)
	}
}
