// Package segmenter implements the first pipeline stage: proposing
// candidate blocks from a normalized document via three layered
// strategies (fenced regions, indented regions, a density sliding
// window), each operating only on lines not already claimed by a
// higher-priority strategy, followed by a confidence-ordered
// deduplication pass. See spec §4.1.
package segmenter

import (
	"regexp"
	"strings"

	"github.com/AleutianAI/blockextract/services/extract/block"
)

// MinLines is the minimum candidate length in lines, below which a
// fenced, indented, or density-detected run is discarded outright.
const MinLines = 3

var (
	fenceOpenRe  = regexp.MustCompile("^```(\\w+)?\\s*$")
	fenceCloseRe = regexp.MustCompile(`^\s*` + "```" + `\s*$`)
)

// Segment runs the three detection strategies in priority order and
// returns the deduplicated candidate list, sorted by start_line
// ascending, satisfying the pairwise-disjoint invariant (I1).
func Segment(text string) []block.CandidateBlock {
	lines := strings.Split(text, "\n")
	claimed := make([]bool, len(lines))

	var candidates []block.CandidateBlock
	candidates = append(candidates, fencedRegions(lines, claimed)...)
	candidates = append(candidates, indentedRegions(lines, claimed)...)
	candidates = append(candidates, densityWindows(lines, claimed)...)

	return deduplicate(candidates)
}

// fencedRegions implements spec §4.1 Strategy 1. Fence markers themselves
// are excluded from the emitted content but their lines are claimed so
// later strategies never reconsider them.
func fencedRegions(lines []string, claimed []bool) []block.CandidateBlock {
	var out []block.CandidateBlock

	for i := 0; i < len(lines); i++ {
		if claimed[i] {
			continue
		}
		open := fenceOpenRe.FindStringSubmatch(lines[i])
		if open == nil {
			continue
		}

		closeIdx := -1
		for j := i + 1; j < len(lines); j++ {
			if fenceCloseRe.MatchString(lines[j]) {
				closeIdx = j
				break
			}
		}
		if closeIdx == -1 {
			// Unclosed fence at end of input yields no block.
			continue
		}

		for k := i; k <= closeIdx; k++ {
			claimed[k] = true
		}

		contentStart, contentEnd := i+1, closeIdx-1
		if contentEnd < contentStart || (contentEnd-contentStart+1) < MinLines {
			i = closeIdx
			continue
		}

		out = append(out, block.CandidateBlock{
			Content:         strings.Join(lines[contentStart:contentEnd+1], "\n"),
			StartLine:       contentStart + 1,
			EndLine:         contentEnd + 1,
			DetectionMethod: block.DetectionMarkdown,
			Confidence:      0.95,
			LanguageHint:    open[1],
		})

		i = closeIdx
	}

	return out
}

// isIndentedLine reports whether a line begins with at least four spaces
// or with a tab, per spec §4.1 Strategy 2.
func isIndentedLine(line string) bool {
	if strings.HasPrefix(line, "\t") {
		return true
	}
	count := 0
	for _, r := range line {
		if r != ' ' {
			break
		}
		count++
	}
	return count >= 4
}

func isBlankLine(line string) bool {
	return strings.TrimSpace(line) == ""
}

// indentedRegions implements spec §4.1 Strategy 2.
func indentedRegions(lines []string, claimed []bool) []block.CandidateBlock {
	var out []block.CandidateBlock

	runStart := -1
	flush := func(runEnd int) {
		if runStart == -1 {
			return
		}
		start, end := runStart, runEnd
		// Trim trailing blank lines absorbed into the run so a block
		// never dangles on whitespace at its tail.
		for end > start && isBlankLine(lines[end]) {
			end--
		}
		runStart = -1
		if end < start || (end-start+1) < MinLines {
			return
		}

		content := strings.Join(lines[start:end+1], "\n")
		if technicalDensity(content) <= 0.15 && complexityScore(content) < 2 {
			return
		}

		for k := start; k <= end; k++ {
			claimed[k] = true
		}
		out = append(out, block.CandidateBlock{
			Content:         content,
			StartLine:       start + 1,
			EndLine:         end + 1,
			DetectionMethod: block.DetectionIndentation,
			Confidence:      0.85,
		})
	}

	for i := 0; i < len(lines); i++ {
		if claimed[i] {
			flush(i - 1)
			continue
		}
		switch {
		case isIndentedLine(lines[i]):
			if runStart == -1 {
				runStart = i
			}
		case isBlankLine(lines[i]) && runStart != -1:
			// Blank lines only continue a run that is already open.
		default:
			flush(i - 1)
		}
	}
	flush(len(lines) - 1)

	return out
}

// densityWindows implements spec §4.1 Strategy 3.
func densityWindows(lines []string, claimed []bool) []block.CandidateBlock {
	const windowSize = 5
	var out []block.CandidateBlock

	for i := 0; i <= len(lines)-windowSize; i++ {
		if anyClaimed(claimed, i, i+windowSize-1) {
			continue
		}

		windowContent := strings.Join(lines[i:i+windowSize], "\n")
		if technicalDensity(windowContent) <= 0.15 {
			continue
		}

		end := i + windowSize - 1
		for end+1 < len(lines) && !claimed[end+1] {
			if technicalDensity(lines[end+1]) <= 0.12 {
				break
			}
			end++
		}

		fullContent := strings.Join(lines[i:end+1], "\n")
		density := technicalDensity(fullContent)
		complexity := complexityScore(fullContent)
		if complexity >= 3 || density > 0.30 {
			for k := i; k <= end; k++ {
				claimed[k] = true
			}
			out = append(out, block.CandidateBlock{
				Content:         fullContent,
				StartLine:       i + 1,
				EndLine:         end + 1,
				DetectionMethod: block.DetectionDensity,
				Confidence:      minFloat(0.60, density),
			})
			i = end
		}
	}

	return out
}

func anyClaimed(claimed []bool, from, to int) bool {
	for i := from; i <= to; i++ {
		if claimed[i] {
			return true
		}
	}
	return false
}

func minFloat(a, b float64) float64 {
	if a < b {
		return a
	}
	return b
}
