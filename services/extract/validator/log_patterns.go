package validator

import (
	"context"
	"regexp"

	"github.com/AleutianAI/blockextract/services/extract/block"
)

var (
	logTimestampRe = regexp.MustCompile(`\d{4}-\d{2}-\d{2}[T\s]\d{2}:\d{2}:\d{2}`)
	logSeverityRe  = regexp.MustCompile(`\b(DEBUG|INFO|WARN|WARNING|ERROR|ERR|CRITICAL|FATAL)\b`)
)

// logStep implements spec §4.3 step 7: classify as a log excerpt when
// both a timestamp and a severity keyword appear at least once.
type logStep struct{}

func (logStep) tryClassify(_ context.Context, c classifyContext) (block.ValidatedBlock, bool) {
	content := c.candidate.Content
	if len(logTimestampRe.FindAllStringIndex(content, -1)) == 0 {
		return block.ValidatedBlock{}, false
	}
	if len(logSeverityRe.FindAllStringIndex(content, -1)) == 0 {
		return block.ValidatedBlock{}, false
	}
	return block.ValidatedBlock{
		CandidateBlock:   c.candidate,
		BlockType:        block.BlockLog,
		Language:         block.LangLog,
		ConfidenceScore:  0.80,
		ValidationMethod: block.MethodPattern,
	}, true
}
