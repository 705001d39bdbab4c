package segmenter

import (
	"regexp"
	"strings"
)

// technicalChars is the punctuation set spec §4.1 weighs into the
// technical-character-density formula.
const technicalChars = "{}[]()<>;:=+-*/%&|!~^#@$"

// keywordSet is the fixed, case-insensitive keyword vocabulary the density
// formula's k/w term counts against. Compiled once as a package-level
// table, per the REDESIGN FLAGS' "global regex constants... never
// re-compile per call" guidance applied to lookup tables generally.
var keywordSet = buildKeywordSet([]string{
	"def", "class", "function", "var", "let", "const", "import", "export",
	"if", "else", "for", "while", "return", "void", "int", "string",
	"public", "private", "static", "async", "await", "try", "catch",
})

func buildKeywordSet(words []string) map[string]struct{} {
	m := make(map[string]struct{}, len(words))
	for _, w := range words {
		m[w] = struct{}{}
	}
	return m
}

// technicalDensity implements spec §4.1's weighted density formula:
//
//	density = 0.7*(t/max(|s|,1)) + 0.3*(k/max(w,1))
//
// where t is the count of technicalChars characters, w is the number of
// whitespace-split tokens, and k is the number of those tokens (lowered)
// found in keywordSet.
func technicalDensity(s string) float64 {
	if s == "" {
		return 0
	}

	t := 0
	for _, r := range s {
		if strings.ContainsRune(technicalChars, r) {
			t++
		}
	}

	tokens := strings.Fields(s)
	w := len(tokens)
	k := 0
	for _, tok := range tokens {
		if _, ok := keywordSet[strings.ToLower(tok)]; ok {
			k++
		}
	}

	lengthTerm := float64(t) / float64(maxInt(len(s), 1))
	keywordTerm := float64(k) / float64(maxInt(w, 1))
	return 0.7*lengthTerm + 0.3*keywordTerm
}

// Complexity-score regex constants, compiled once per the REDESIGN FLAGS
// global-regex-constants guidance.
var (
	functionMarkerRe = regexp.MustCompile(`\bdef\b|\bfunction\b|\bpublic\b|\bprivate\b`)
	controlFlowRe    = regexp.MustCompile(`\bif\b|\bfor\b|\bwhile\b|\bswitch\b`)
	typeMarkerRe     = regexp.MustCompile(`\bclass\b|\binterface\b|\bstruct\b`)
)

// complexityScore implements spec §4.1's complexity-score formula: the sum
// of function/control-flow/type-marker match counts, plus 1 if both '{'
// and '}' appear, plus 1 if both '(' and ')' appear.
func complexityScore(s string) int {
	score := len(functionMarkerRe.FindAllStringIndex(s, -1))
	score += len(controlFlowRe.FindAllStringIndex(s, -1))
	score += len(typeMarkerRe.FindAllStringIndex(s, -1))

	if strings.Contains(s, "{") && strings.Contains(s, "}") {
		score++
	}
	if strings.Contains(s, "(") && strings.Contains(s, ")") {
		score++
	}
	return score
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
