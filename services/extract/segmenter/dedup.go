package segmenter

import (
	"sort"

	"github.com/AleutianAI/blockextract/services/extract/block"
)

// deduplicate implements spec §4.1's final deduplication pass: sort
// candidates by confidence descending, greedily keep each one whose line
// range is disjoint from the union of already-kept ranges, then re-sort
// the survivors by start_line ascending. It is applied after all three
// strategies run, on top of each strategy already only considering lines
// unclaimed by a higher-priority strategy — the two mechanisms overlap in
// effect by construction, but this pass is what spec §8's idempotence
// property ("feeding its output back yields the same set") is stated
// against, so it is kept as an explicit, independently-correct step
// rather than relied upon implicitly.
func deduplicate(candidates []block.CandidateBlock) []block.CandidateBlock {
	byConfidence := make([]block.CandidateBlock, len(candidates))
	copy(byConfidence, candidates)
	sort.SliceStable(byConfidence, func(i, j int) bool {
		return byConfidence[i].Confidence > byConfidence[j].Confidence
	})

	kept := make([]block.CandidateBlock, 0, len(byConfidence))
	for _, c := range byConfidence {
		if disjointFromAll(c, kept) {
			kept = append(kept, c)
		}
	}

	sort.SliceStable(kept, func(i, j int) bool {
		return kept[i].StartLine < kept[j].StartLine
	})
	return kept
}

func disjointFromAll(c block.CandidateBlock, kept []block.CandidateBlock) bool {
	for _, k := range kept {
		if c.Overlaps(k) {
			return false
		}
	}
	return true
}
