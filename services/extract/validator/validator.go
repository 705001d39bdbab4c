// Package validator implements the pipeline's second stage: for each
// candidate block, cascade through classification attempts and assign a
// block type, language, and refined confidence. See spec §4.3.
//
// The cascade is expressed as an ordered list of strategy objects sharing
// one capability, a structure grounded on the teacher's PatternMatcher /
// DefaultMatchers arrangement (services/code_buddy/patterns/matcher.go):
// each step is a struct carrying just the function(s) it needs, and the
// Validator walks the list and returns on the first hit.
package validator

import (
	"context"
	"strings"

	"github.com/AleutianAI/blockextract/services/extract/block"
	"github.com/AleutianAI/blockextract/services/extract/registry"
)

// step is the cascade's shared capability: attempt to classify a
// candidate in some context, short-circuiting the cascade on success.
type step interface {
	tryClassify(ctx context.Context, c classifyContext) (block.ValidatedBlock, bool)
}

// classifyContext bundles everything a cascade step may need. Plain
// parameter-passing would work too, but every step in the teacher's
// cascade-shaped code takes a context bundle rather than a growing
// argument list, and the filename is only meaningful to some steps.
type classifyContext struct {
	candidate block.CandidateBlock
	filename  string
}

// Validator runs the seven-step cascade from spec §4.3 against a shared
// Grammar Registry.
type Validator struct {
	registry *registry.Registry
	steps    []step
}

// New builds a Validator backed by reg. reg must already have its
// grammars constructed; Validator never builds parsers itself.
func New(reg *registry.Registry) *Validator {
	v := &Validator{registry: reg}
	v.steps = []step{
		hintStep{registry: reg},
		autoDetectPriorityStep{registry: reg},
		extensionStep{registry: reg},
		autoDetectFallbackStep{registry: reg},
		structuredStep{},
		configStep{},
		logStep{},
	}
	return v
}

// Validate runs the cascade for one candidate and returns its
// classification. On total cascade failure it returns block_type=unknown
// with confidence_score halved, per spec §4.3, rather than an error —
// the Validator never raises for malformed content.
func (v *Validator) Validate(ctx context.Context, candidate block.CandidateBlock, filename string) block.ValidatedBlock {
	cctx := classifyContext{candidate: candidate, filename: filename}

	for _, s := range v.steps {
		if vb, ok := s.tryClassify(ctx, cctx); ok {
			return vb
		}
	}

	return block.ValidatedBlock{
		CandidateBlock:   candidate,
		BlockType:        block.BlockUnknown,
		Language:         "",
		ConfidenceScore:  0.5 * candidate.Confidence,
		ValidationMethod: block.MethodNone,
	}
}

// codeConfidence implements spec §4.3's code confidence formula:
//
//	conf = min(0.99, 0.90 + min(0.09, n/500))
//
// minus 0.15 (clamped to [0,1]) if the bracket scan fails.
func codeConfidence(nodeCount int, balanced bool) float64 {
	conf := 0.90 + minFloat(0.09, float64(nodeCount)/500.0)
	if conf > 0.99 {
		conf = 0.99
	}
	if !balanced {
		conf -= 0.15
	}
	if conf < 0 {
		conf = 0
	}
	if conf > 1 {
		conf = 1
	}
	return conf
}

func minFloat(a, b float64) float64 {
	if a < b {
		return a
	}
	return b
}

func capFloat(v, max float64) float64 {
	if v > max {
		return max
	}
	return v
}

// filenameExtension returns the lowercase extension (without the dot) of
// filename, or "" if filename has none.
func filenameExtension(filename string) string {
	idx := strings.LastIndex(filename, ".")
	if idx == -1 || idx == len(filename)-1 {
		return ""
	}
	return strings.ToLower(filename[idx+1:])
}
