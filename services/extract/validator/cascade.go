package validator

import (
	"context"
	"strings"

	"github.com/AleutianAI/blockextract/services/extract/block"
	"github.com/AleutianAI/blockextract/services/extract/registry"
)

// hintStep implements spec §4.3 step 1: classify using the fence's
// captured language hint, if any.
type hintStep struct {
	registry *registry.Registry
}

func (s hintStep) tryClassify(ctx context.Context, c classifyContext) (block.ValidatedBlock, bool) {
	if c.candidate.LanguageHint == "" {
		return block.ValidatedBlock{}, false
	}
	lang := registry.Canonicalize(c.candidate.LanguageHint)
	valid, nodes := s.registry.Validate(ctx, c.candidate.Content, lang)
	if !valid {
		return block.ValidatedBlock{}, false
	}
	return block.ValidatedBlock{
		CandidateBlock:   c.candidate,
		BlockType:        block.BlockCode,
		Language:         lang,
		ConfidenceScore:  codeConfidence(nodes, registry.BalancedBrackets(c.candidate.Content)),
		ValidationMethod: block.MethodTreeSitterHint,
		ASTNodes:         nodes,
	}, true
}

// autoDetectPriorityStep implements spec §4.3 step 2: let a
// high-confidence auto-detect result override a filename's extension, so
// content wins over a misleading label.
type autoDetectPriorityStep struct {
	registry *registry.Registry
}

func (s autoDetectPriorityStep) tryClassify(ctx context.Context, c classifyContext) (block.ValidatedBlock, bool) {
	if vb, ok := shebangOverride(c); ok {
		vb.ValidationMethod = block.MethodTreeSitterAutoPriority
		return vb, true
	}

	lang, nodes, ok := autoDetect(ctx, s.registry, c.candidate.Content)
	if !ok {
		return block.ValidatedBlock{}, false
	}
	conf := codeConfidence(nodes, registry.BalancedBrackets(c.candidate.Content))
	if conf <= 0.75 {
		return block.ValidatedBlock{}, false
	}
	return block.ValidatedBlock{
		CandidateBlock:   c.candidate,
		BlockType:        block.BlockCode,
		Language:         lang,
		ConfidenceScore:  conf,
		ValidationMethod: block.MethodTreeSitterAutoPriority,
		ASTNodes:         nodes,
	}, true
}

// extensionStep implements spec §4.3 step 3: classify from the filename's
// extension, branching on whether the mapped language is markup,
// structured, or a code grammar.
type extensionStep struct {
	registry *registry.Registry
}

func (s extensionStep) tryClassify(ctx context.Context, c classifyContext) (block.ValidatedBlock, bool) {
	if c.filename == "" {
		return block.ValidatedBlock{}, false
	}
	ext := filenameExtension(c.filename)
	lang, ok := registry.ExtensionLanguage[ext]
	if !ok {
		return block.ValidatedBlock{}, false
	}

	if lang == block.LangMarkdown {
		return block.ValidatedBlock{
			CandidateBlock:   c.candidate,
			BlockType:        block.BlockMarkup,
			Language:         block.LangMarkdown,
			ConfidenceScore:  0.90,
			ValidationMethod: block.MethodExtension,
		}, true
	}

	if lang == block.LangJSON || lang == block.LangXML || lang == block.LangYAML {
		detected, ok := detectStructured(c.candidate.Content)
		if !ok || detected != lang {
			return block.ValidatedBlock{}, false
		}
		return block.ValidatedBlock{
			CandidateBlock:   c.candidate,
			BlockType:        block.BlockStructured,
			Language:         lang,
			ConfidenceScore:  0.99,
			ValidationMethod: block.MethodSchema,
		}, true
	}

	canonical := registry.Canonicalize(lang)
	valid, nodes := s.registry.Validate(ctx, c.candidate.Content, canonical)
	if !valid {
		return block.ValidatedBlock{}, false
	}
	conf := capFloat(codeConfidence(nodes, registry.BalancedBrackets(c.candidate.Content))+0.15, 0.99)
	return block.ValidatedBlock{
		CandidateBlock:   c.candidate,
		BlockType:        block.BlockCode,
		Language:         canonical,
		ConfidenceScore:  conf,
		ValidationMethod: block.MethodTreeSitterContext,
		ASTNodes:         nodes,
	}, true
}

// autoDetectFallbackStep implements spec §4.3 step 4: try the stable
// auto-detect language order and keep the best-scoring grammar, with a
// shebang short-circuit to bash.
type autoDetectFallbackStep struct {
	registry *registry.Registry
}

func (s autoDetectFallbackStep) tryClassify(ctx context.Context, c classifyContext) (block.ValidatedBlock, bool) {
	if vb, ok := shebangOverride(c); ok {
		vb.ValidationMethod = block.MethodTreeSitterAuto
		return vb, true
	}

	lang, nodes, ok := autoDetect(ctx, s.registry, c.candidate.Content)
	if !ok {
		return block.ValidatedBlock{}, false
	}
	return block.ValidatedBlock{
		CandidateBlock:   c.candidate,
		BlockType:        block.BlockCode,
		Language:         lang,
		ConfidenceScore:  codeConfidence(nodes, registry.BalancedBrackets(c.candidate.Content)),
		ValidationMethod: block.MethodTreeSitterAuto,
		ASTNodes:         nodes,
	}, true
}

// shebangOverride implements the `#!` shortcut to bash that is part of
// step 4's auto-detect logic (spec §4.3) but, per spec's step 2 text
// ("run auto-detect (step 4 logic)"), must also fire at step 2's
// priority. Without it a shebang script whose extension happens to
// validate under some other grammar in step 3 could be misclassified
// before ever reaching bash here. ValidationMethod is left unset;
// callers tag it with their own step's method before returning.
func shebangOverride(c classifyContext) (block.ValidatedBlock, bool) {
	if !strings.HasPrefix(c.candidate.Content, "#!") {
		return block.ValidatedBlock{}, false
	}
	return block.ValidatedBlock{
		CandidateBlock:  c.candidate,
		BlockType:       block.BlockCode,
		Language:        registry.Bash,
		ConfidenceScore: 1.0,
	}, true
}

// autoDetect runs registry.AutoDetectOrder in its fixed order and keeps
// the highest-confidence valid result. Shared by steps 2 and 4 (via
// shebangOverride and the fallback below), which differ only in the
// confidence threshold and method tag they apply.
func autoDetect(ctx context.Context, reg *registry.Registry, content string) (lang string, nodes int, ok bool) {
	bestConf := -1.0
	for _, l := range registry.AutoDetectOrder {
		valid, n := reg.Validate(ctx, content, l)
		if !valid {
			continue
		}
		conf := codeConfidence(n, registry.BalancedBrackets(content))
		if conf > bestConf {
			bestConf, lang, nodes, ok = conf, l, n, true
		}
	}
	return lang, nodes, ok
}
