// Package filter implements the pipeline's third stage: seven
// independent accept/reject rules applied to each validated block, the
// first rejection winning. See spec §4.4.
package filter

import (
	"regexp"
	"strings"

	"github.com/AleutianAI/blockextract/services/extract/block"
	"github.com/AleutianAI/blockextract/services/extract/registry"
)

const (
	minConfidence = 0.50
	minLines      = 3
	minChars      = 30
)

var (
	inlineAssignRe    = regexp.MustCompile(`^\s*\w+\s*=\s*.+$`)
	sentenceBoundary  = regexp.MustCompile(`\.\s+[A-Z]`)
	wordRe            = regexp.MustCompile(`\b\w+\b`)
	contextDensitySet = "{}[]()<>;:="
	mixedIndentWordRe = regexp.MustCompile(`\b(def|class|import|from|if|elif|else|try|except)\b`)
	proseWords        = map[string]struct{}{
		"the": {}, "a": {}, "an": {}, "is": {}, "are": {}, "was": {}, "were": {},
		"and": {}, "or": {}, "but": {}, "however": {}, "therefore": {}, "this": {},
		"that": {}, "these": {}, "those": {},
	}
)

// Accept runs all seven rules against one validated block and reports
// the verdict, annotating the reason on rejection.
func Accept(v block.ValidatedBlock) block.AcceptedBlock {
	if reason, rule, ok := reject(v); ok {
		return block.AcceptedBlock{
			ValidatedBlock:  v,
			FilterPassed:    false,
			RejectionReason: reason,
			FilteredBy:      rule,
		}
	}
	return block.AcceptedBlock{ValidatedBlock: v, FilterPassed: true}
}

// BatchFilter applies Accept to every block in order, preserving input
// order. Rejected blocks are still present in the returned slice,
// annotated; callers that only want survivors should filter on
// FilterPassed.
func BatchFilter(blocks []block.ValidatedBlock) []block.AcceptedBlock {
	out := make([]block.AcceptedBlock, len(blocks))
	for i, v := range blocks {
		out[i] = Accept(v)
	}
	return out
}

// reject evaluates the seven rules in order, returning on the first hit.
func reject(v block.ValidatedBlock) (reason string, rule string, rejected bool) {
	if v.ConfidenceScore < minConfidence {
		return "confidence_score below 0.50", "confidence_gate", true
	}

	trimmed := strings.TrimSpace(v.Content)
	lineCount := strings.Count(v.Content, "\n") + 1
	if lineCount < minLines || len(trimmed) < minChars {
		return "block smaller than the size floor", "size_floor", true
	}

	isCode := v.BlockType == block.BlockCode
	if isCode && lineCount < 5 {
		if reason, ok := inlineVariableReject(v.Content); ok {
			return reason, "inline_variable", true
		}
	}

	if isCode {
		if !registry.BalancedBrackets(v.Content) {
			return "unmatched brackets", "syntax_integrity", true
		}
		if oddQuoteCount(v.Content) {
			return "odd count of quote characters", "syntax_integrity", true
		}
	}

	if isCode {
		if fraction := proseWordFraction(v.Content); fraction > 0.20 {
			return "prose word fraction exceeds 0.20", "prose_detection", true
		}
		if len(sentenceBoundary.FindAllStringIndex(v.Content, -1)) > 2 {
			return "too many sentence boundaries for code", "prose_detection", true
		}
	}

	if v.ConfidenceScore < 0.75 {
		if contextCharDensity(v.Content) < 0.05 {
			return "context character density below 0.05", "context_density", true
		}
	}

	if indentationApplies(v) && mixedIndentation(v.Content) {
		return "mixed tab and space indentation", "indentation_consistency", true
	}

	return "", "", false
}

func nonEmptyLines(content string) []string {
	var out []string
	for _, line := range strings.Split(content, "\n") {
		if strings.TrimSpace(line) != "" {
			out = append(out, line)
		}
	}
	return out
}

// inlineVariableReject implements spec §4.4 rule 3.
func inlineVariableReject(content string) (string, bool) {
	lines := nonEmptyLines(content)
	if len(lines) == 1 && inlineAssignRe.MatchString(lines[0]) {
		return "single inline variable assignment", true
	}
	if len(lines) > 0 && len(lines) <= 3 {
		for _, l := range lines {
			if !inlineAssignRe.MatchString(l) {
				return "", false
			}
		}
		return "all lines are inline variable assignments", true
	}
	return "", false
}

func oddQuoteCount(content string) bool {
	singles := strings.Count(content, "'")
	doubles := strings.Count(content, "\"")
	return singles%2 == 1 || doubles%2 == 1
}

func proseWordFraction(content string) float64 {
	words := wordRe.FindAllString(strings.ToLower(content), -1)
	if len(words) == 0 {
		return 0
	}
	count := 0
	for _, word := range words {
		if _, ok := proseWords[word]; ok {
			count++
		}
	}
	return float64(count) / float64(len(words))
}

func contextCharDensity(content string) float64 {
	if len(content) == 0 {
		return 0
	}
	count := 0
	for _, r := range content {
		if strings.ContainsRune(contextDensitySet, r) {
			count++
		}
	}
	return float64(count) / float64(len(content))
}

// indentationApplies implements spec §4.4 rule 7's gate: the rule only
// runs for python blocks, or content carrying a block-structuring keyword
// alongside a colon.
func indentationApplies(v block.ValidatedBlock) bool {
	if v.Language == registry.Python {
		return true
	}
	return mixedIndentWordRe.MatchString(v.Content) && strings.Contains(v.Content, ":")
}

func mixedIndentation(content string) bool {
	hasTab, hasLeadingSpace := false, false
	for _, line := range strings.Split(content, "\n") {
		if strings.Contains(line, "\t") {
			hasTab = true
		}
		if strings.HasPrefix(line, " ") {
			hasLeadingSpace = true
		}
	}
	return hasTab && hasLeadingSpace
}
