package validator

import (
	"context"
	"regexp"

	"github.com/AleutianAI/blockextract/services/extract/block"
)

// configPattern names one regex in a pattern bank, grounded on the
// teacher's compiledSecretPattern (services/code_buddy/validate/secrets.go):
// a named pattern compiled once at package init, never per call.
type configPattern struct {
	name string
	re   *regexp.Regexp
}

var ciscoPatterns = []configPattern{
	{"access-list", regexp.MustCompile(`(?im)access-list\s+\d+\s+(permit|deny)`)},
	{"vlan", regexp.MustCompile(`(?im)vlan\s+\d+`)},
	{"interface", regexp.MustCompile(`(?im)interface\s+\w+`)},
	{"ipv4-literal", regexp.MustCompile(`\b(?:\d{1,3}\.){3}\d{1,3}\b`)},
	{"router-protocol", regexp.MustCompile(`(?im)router\s+(bgp|ospf|eigrp)`)},
}

var nginxPatterns = []configPattern{
	{"server-block", regexp.MustCompile(`(?m)server\s*\{`)},
	{"location-block", regexp.MustCompile(`(?m)location\s+[~*^]*\s*[\w/]+\s*\{`)},
	{"listen", regexp.MustCompile(`(?m)listen\s+\d+`)},
	{"proxy-pass", regexp.MustCompile(`(?m)proxy_pass\s+https?://`)},
}

// distinctMatchCount returns how many patterns in bank match content at
// least once, counting each pattern at most once regardless of how many
// times it matches — spec §4.3 steps 6 count distinct pattern hits, not
// total occurrences.
func distinctMatchCount(content string, bank []configPattern) int {
	count := 0
	for _, p := range bank {
		if p.re.MatchString(content) {
			count++
		}
	}
	return count
}

// configStep implements spec §4.3 step 6: Cisco IOS pattern bank first
// (case-insensitive), then Nginx (case-sensitive), each requiring at
// least 2 distinct pattern hits.
type configStep struct{}

func (configStep) tryClassify(_ context.Context, c classifyContext) (block.ValidatedBlock, bool) {
	content := c.candidate.Content

	if distinctMatchCount(content, ciscoPatterns) >= 2 {
		return block.ValidatedBlock{
			CandidateBlock:   c.candidate,
			BlockType:        block.BlockConfig,
			Language:         block.LangCiscoIOS,
			ConfidenceScore:  0.85,
			ValidationMethod: block.MethodPattern,
		}, true
	}

	if distinctMatchCount(content, nginxPatterns) >= 2 {
		return block.ValidatedBlock{
			CandidateBlock:   c.candidate,
			BlockType:        block.BlockConfig,
			Language:         block.LangNginx,
			ConfidenceScore:  0.85,
			ValidationMethod: block.MethodPattern,
		}, true
	}

	return block.ValidatedBlock{}, false
}
