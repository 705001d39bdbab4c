// Package block defines the data model shared by every stage of the
// extraction pipeline (Segmenter, Validator, Precision Filter): the
// CandidateBlock / ValidatedBlock / AcceptedBlock progression from spec
// §3. It lives in its own package, separate from the top-level pipeline
// orchestration in package extract, so that the stage packages
// (segmenter, validator, filter) can depend on these types without
// importing the package that depends on them.
package block

import "fmt"

// DetectionMethod records which Segmenter strategy produced a candidate.
type DetectionMethod string

const (
	DetectionMarkdown     DetectionMethod = "markdown"
	DetectionIndentation  DetectionMethod = "indentation"
	DetectionDensity      DetectionMethod = "density"
)

// BlockType is the Validator's top-level classification of a block's
// content. This is the closed-variant discriminant the REDESIGN FLAGS call
// for ("the Validator produces one of {Code, Structured, Config, Log,
// Markup, Unknown} rather than a free-form map"); Go has no sum types, so
// the variant is modeled as an enum paired with the language/confidence
// fields it gates, rather than a map[string]interface{}.
type BlockType string

const (
	BlockCode       BlockType = "code"
	BlockStructured BlockType = "structured"
	BlockConfig     BlockType = "config"
	BlockLog        BlockType = "log"
	BlockMarkup     BlockType = "markup"
	BlockUnknown    BlockType = "unknown"
)

// ValidationMethod records which cascade step produced a block's
// classification, for provenance and debugging.
type ValidationMethod string

const (
	MethodTreeSitterHint         ValidationMethod = "tree-sitter-hint"
	MethodTreeSitterContext      ValidationMethod = "tree-sitter-context"
	MethodTreeSitterAuto         ValidationMethod = "tree-sitter-auto"
	MethodTreeSitterAutoPriority ValidationMethod = "tree-sitter-auto-priority"
	MethodSchema                 ValidationMethod = "schema"
	MethodPattern                ValidationMethod = "pattern"
	MethodExtension              ValidationMethod = "extension"
	MethodNone                   ValidationMethod = ""
)

// Fixed identifier vocabulary, spec §6.
const (
	LangJSON     = "json"
	LangYAML     = "yaml"
	LangXML      = "xml"
	LangCiscoIOS = "cisco_ios"
	LangNginx    = "nginx"
	LangLog      = "log"
	LangMarkdown = "markdown"
)

// CandidateBlock is a contiguous line range the Segmenter proposes as
// possibly containing machine-readable content. Line indices are 1-based
// and inclusive (Decision recorded in SPEC_FULL.md §3: matches the
// Grammar Registry's tree-sitter row+1 convention and editor/LSP
// conventions).
type CandidateBlock struct {
	Content         string          `json:"content"`
	StartLine       int             `json:"start_line"`
	EndLine         int             `json:"end_line"`
	DetectionMethod DetectionMethod `json:"detection_method"`
	Confidence      float64         `json:"confidence"`
	LanguageHint    string          `json:"language_hint,omitempty"`
}

// ValidatedBlock extends CandidateBlock with the Validator's classification.
type ValidatedBlock struct {
	CandidateBlock

	BlockType        BlockType        `json:"block_type"`
	Language         string           `json:"language"`
	ConfidenceScore  float64          `json:"confidence_score"`
	ValidationMethod ValidationMethod `json:"validation_method"`

	// ASTNodes is only meaningful when BlockType == BlockCode.
	ASTNodes int `json:"ast_nodes,omitempty"`
}

// AcceptedBlock is a ValidatedBlock annotated with the Precision Filter's
// verdict. Rejected blocks are still represented (callers may want to
// inspect why something was dropped); only FilterPassed blocks make it
// into a pipeline's final returned list.
type AcceptedBlock struct {
	ValidatedBlock

	FilterPassed    bool   `json:"filter_passed"`
	RejectionReason string `json:"rejection_reason,omitempty"`
	FilteredBy      string `json:"filtered_by,omitempty"`
}

// LineCount returns the inclusive number of lines the block spans.
func (c CandidateBlock) LineCount() int {
	return c.EndLine - c.StartLine + 1
}

// Validate checks the data-model invariants from spec §3 (I2 and I4; I1,
// I3, and I5 are cross-block or cross-document properties checked by the
// pipeline and its tests, not by a single block in isolation).
func (c CandidateBlock) Validate() error {
	if c.StartLine > c.EndLine {
		return fmt.Errorf("candidate block: start_line %d > end_line %d", c.StartLine, c.EndLine)
	}
	if c.Confidence < 0 || c.Confidence > 1 {
		return fmt.Errorf("candidate block: confidence %.4f out of [0,1]", c.Confidence)
	}
	return nil
}

// Validate additionally checks I2 for the refined confidence score and I5
// for code blocks.
func (v ValidatedBlock) Validate() error {
	if err := v.CandidateBlock.Validate(); err != nil {
		return err
	}
	if v.ConfidenceScore < 0 || v.ConfidenceScore > 1 {
		return fmt.Errorf("validated block: confidence_score %.4f out of [0,1]", v.ConfidenceScore)
	}
	if v.BlockType == BlockCode && v.Language == "" {
		return fmt.Errorf("validated block: block_type=code requires a non-empty language")
	}
	return nil
}

// Overlaps reports whether two blocks share at least one line, the
// relation the Segmenter's deduplication pass (spec §4.1) and the
// pipeline's disjointness invariant (I1) are both defined in terms of.
func (c CandidateBlock) Overlaps(other CandidateBlock) bool {
	return c.StartLine <= other.EndLine && other.StartLine <= c.EndLine
}
