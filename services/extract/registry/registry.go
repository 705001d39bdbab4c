// Package registry implements the Grammar Registry: a process-wide,
// concurrency-safe collection of memoized tree-sitter parsers plus the two
// primitives the Validator builds on top of them — parse-and-count and
// bracket-balance checking.
//
// The construction pattern (sitter.NewParser, SetLanguage, ParseCtx,
// tree.Close(), rootNode.HasError()) is the one the teacher's per-language
// AST parsers use; this package collapses thirteen bespoke symbol-extraction
// files into one generic entry point because the Validator never needs
// symbols, only "does this parse" and "how big is the tree" (spec.md's
// Non-goals explicitly rule out symbol resolution and semantic analysis).
package registry

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	sitter "github.com/smacker/go-tree-sitter"
)

// DefaultMaxInputSize bounds how much content a single Validate call will
// hand to tree-sitter. Oversized input is rejected rather than parsed, the
// same defensive ceiling the teacher's per-language parsers apply.
const DefaultMaxInputSize = 2 * 1024 * 1024

// entry holds one language's memoized parser behind its own mutex. A
// sitter.Parser is not safe for concurrent reuse across goroutines, so the
// registry pools one instance per language and synchronizes access to it
// rather than constructing a parser per call (spec §4.2/§5: "either by
// building all parsers up-front (preferred) or by protecting lazy
// initialization with a mutex per language" — this does both: eager
// construction, still mutex-guarded because the instance is shared).
type entry struct {
	mu     sync.Mutex
	parser *sitter.Parser
}

// Registry is the shared, read-only (from the pipeline's perspective)
// dependency described in spec.md §2: it has no internal dependencies of
// its own and is safe for concurrent use by multiple document workers.
type Registry struct {
	logger      *slog.Logger
	maxInput    int
	entries     map[string]*entry
}

// Option configures a Registry at construction time.
type Option func(*Registry)

// WithLogger attaches a structured logger used to report infrastructural
// failures (spec §7 condition 3: grammar missing, parser panic) without
// ever propagating them to the caller.
func WithLogger(l *slog.Logger) Option {
	return func(r *Registry) {
		if l != nil {
			r.logger = l
		}
	}
}

// WithMaxInputSize overrides DefaultMaxInputSize.
func WithMaxInputSize(n int) Option {
	return func(r *Registry) {
		if n > 0 {
			r.maxInput = n
		}
	}
}

// New builds a Registry with every supported grammar constructed up front,
// per the preferred concurrency strategy in spec §5. Construction never
// fails: a language whose grammar getter panics is stored with a nil
// parser and behaves as "not valid" for every later call, consistent
// with §7's crash-handling semantics.
func New(opts ...Option) *Registry {
	r := &Registry{
		logger:   slog.Default(),
		maxInput: DefaultMaxInputSize,
		entries:  make(map[string]*entry, len(languageGetters)),
	}
	for _, opt := range opts {
		opt(r)
	}

	for lang, getter := range languageGetters {
		r.entries[lang] = &entry{parser: buildParser(r.logger, lang, getter)}
	}

	return r
}

func buildParser(logger *slog.Logger, lang string, getter languageGetter) (p *sitter.Parser) {
	defer func() {
		if rec := recover(); rec != nil {
			logger.Warn("grammar construction panicked; language will report as invalid",
				slog.String("language", lang), slog.Any("recover", rec))
			p = nil
		}
	}()
	parser := sitter.NewParser()
	parser.SetLanguage(getter())
	return parser
}

// Validate parses code under the named (already-canonicalized) grammar and
// reports whether the grammar accepts it plus the total AST node count.
// An unavailable grammar, a parser panic, or a context cancellation all
// report valid=false rather than propagating an error — the Validator
// cascade treats every one of these identically to "not valid for that
// language" (spec §4.3/§7).
func (r *Registry) Validate(ctx context.Context, code string, language string) (valid bool, nodeCount int) {
	e, ok := r.entries[language]
	if !ok || e.parser == nil {
		return false, 0
	}
	if len(code) > r.maxInput {
		r.logger.Warn("input exceeds registry max size; treating as invalid",
			slog.String("language", language), slog.Int("size", len(code)))
		return false, 0
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	return r.parseAndCount(ctx, e.parser, language, code)
}

func (r *Registry) parseAndCount(ctx context.Context, parser *sitter.Parser, language, code string) (valid bool, nodeCount int) {
	defer func() {
		if rec := recover(); rec != nil {
			r.logger.Warn("tree-sitter parse panicked; treating as invalid",
				slog.String("language", language), slog.Any("recover", rec))
			valid, nodeCount = false, 0
		}
	}()

	tree, err := parser.ParseCtx(ctx, nil, []byte(code))
	if err != nil {
		return false, 0
	}
	defer tree.Close()

	root := tree.RootNode()
	if root == nil {
		return false, 0
	}

	return !root.HasError(), countNodes(root)
}

// countNodes walks the tree iteratively (an explicit stack, not recursion)
// to avoid stack overflow on deeply nested or adversarially generated
// input — the same defensive shape the teacher's ParseResult.SymbolCount
// uses for symbol trees, applied here to raw syntax nodes instead.
func countNodes(root *sitter.Node) int {
	count := 0
	stack := []*sitter.Node{root}
	for len(stack) > 0 {
		n := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if n == nil {
			continue
		}
		count++
		for i := int(n.ChildCount()) - 1; i >= 0; i-- {
			stack = append(stack, n.Child(i))
		}
	}
	return count
}

// BalancedBrackets performs a stack-based scan over the entire string
// treating (), [], {} as matched pairs. Quoted substrings are NOT excluded
// from the scan — this intentionally replicates the current pipeline's
// behavior (spec §4.2, §9 Open Questions) rather than "fixing" it, since
// doing so would change confidence scoring for content already calibrated
// against the old behavior.
func BalancedBrackets(code string) bool {
	var stack []byte
	pairs := map[byte]byte{')': '(', ']': '[', '}': '{'}
	for i := 0; i < len(code); i++ {
		c := code[i]
		switch c {
		case '(', '[', '{':
			stack = append(stack, c)
		case ')', ']', '}':
			if len(stack) == 0 || stack[len(stack)-1] != pairs[c] {
				return false
			}
			stack = stack[:len(stack)-1]
		}
	}
	return len(stack) == 0
}

// String renders a compact summary for logging/diagnostics.
func (r *Registry) String() string {
	return fmt.Sprintf("registry(languages=%d)", len(r.entries))
}
