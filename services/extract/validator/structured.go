package validator

import (
	"context"
	"encoding/xml"
	"strings"

	goccyjson "github.com/goccy/go-json"
	"gopkg.in/yaml.v3"

	"github.com/AleutianAI/blockextract/services/extract/block"
)

// structuredStep implements spec §4.3 step 5: attempt strict JSON, then
// guarded YAML, then XML, in that fixed order — a JSON document that also
// happens to be valid YAML must be labeled json (spec §8 boundary case).
type structuredStep struct{}

func (structuredStep) tryClassify(_ context.Context, c classifyContext) (block.ValidatedBlock, bool) {
	lang, ok := detectStructured(c.candidate.Content)
	if !ok {
		return block.ValidatedBlock{}, false
	}

	var confidence float64
	switch lang {
	case block.LangJSON:
		confidence = 0.98
	case block.LangYAML:
		confidence = 0.95
	case block.LangXML:
		confidence = 0.96
	}

	return block.ValidatedBlock{
		CandidateBlock:   c.candidate,
		BlockType:        block.BlockStructured,
		Language:         lang,
		ConfidenceScore:  confidence,
		ValidationMethod: block.MethodSchema,
	}, true
}

// detectStructured implements the ordered JSON → YAML → XML attempt
// shared by the extension step (§4.3 step 3) and the structured step
// (§4.3 step 5). JSON parsing uses goccy/go-json for its drop-in
// encoding/json-compatible strict decoder; YAML uses yaml.v3's
// safe-by-default Unmarshal; XML uses the standard library decoder since
// no example repo in the pack carries a third-party XML parser.
func detectStructured(content string) (string, bool) {
	trimmed := strings.TrimSpace(content)
	if trimmed == "" {
		return "", false
	}

	var anyJSON interface{}
	if err := goccyjson.Unmarshal([]byte(content), &anyJSON); err == nil {
		return block.LangJSON, true
	}

	var anyYAML interface{}
	if err := yaml.Unmarshal([]byte(content), &anyYAML); err == nil {
		if strings.Contains(content, ":") && strings.Contains(content, "\n") {
			return block.LangYAML, true
		}
	}

	var anyXML struct {
		XMLName xml.Name
	}
	if err := xml.Unmarshal([]byte(content), &anyXML); err == nil {
		return block.LangXML, true
	}

	return "", false
}
