package registry

import (
	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/bash"
	"github.com/smacker/go-tree-sitter/c"
	"github.com/smacker/go-tree-sitter/cpp"
	"github.com/smacker/go-tree-sitter/csharp"
	"github.com/smacker/go-tree-sitter/golang"
	"github.com/smacker/go-tree-sitter/java"
	"github.com/smacker/go-tree-sitter/javascript"
	"github.com/smacker/go-tree-sitter/kotlin"
	tree_sitter_markdown "github.com/smacker/go-tree-sitter/markdown/tree-sitter-markdown"
	"github.com/smacker/go-tree-sitter/php"
	"github.com/smacker/go-tree-sitter/python"
	"github.com/smacker/go-tree-sitter/ruby"
	"github.com/smacker/go-tree-sitter/rust"
	"github.com/smacker/go-tree-sitter/typescript/tsx"
	"github.com/smacker/go-tree-sitter/typescript/typescript"
	"github.com/smacker/go-tree-sitter/yaml"
)

// Code languages the registry can validate content against. This is the
// fixed vocabulary from the specification's external interface; adding a
// language means adding both an entry here and a grammar getter below.
const (
	Python     = "python"
	JavaScript = "javascript"
	TypeScript = "typescript"
	TSX        = "tsx"
	Java       = "java"
	C          = "c"
	Cpp        = "cpp"
	Go         = "go"
	Rust       = "rust"
	CSharp     = "c_sharp"
	PHP        = "php"
	Ruby       = "ruby"
	Kotlin     = "kotlin"
	Bash       = "bash"

	// Markdown and YAML are not part of the "code" vocabulary, but the
	// registry memoizes parsers for both so that a fence hint naming
	// either one can be validated by the Validator's hint step.
	Markdown = "markdown"
	YAML     = "yaml"
)

// aliases canonicalizes filename-extension and fence-hint spellings onto
// the fixed vocabulary above, per the specification's alias table.
var aliases = map[string]string{
	"py":   Python,
	"js":   JavaScript,
	"jsx":  JavaScript,
	"ts":   TypeScript,
	"c++":  Cpp,
	"cs":   CSharp,
	"rb":   Ruby,
	"sh":   Bash,
	"zsh":  Bash,
	"kt":   Kotlin,
	"yml":  YAML,
	"md":   Markdown,
	"tsx":  TSX,
}

// Canonicalize maps a raw language spelling (a fence hint, a file
// extension with the dot stripped, or an already-canonical name) onto the
// registry's fixed vocabulary. Unknown spellings are returned unchanged
// (lowercased) so that a later registry lookup fails cleanly rather than
// silently mapping to the wrong grammar.
func Canonicalize(raw string) string {
	lower := toLower(raw)
	if canon, ok := aliases[lower]; ok {
		return canon
	}
	return lower
}

// languageGetter returns the tree-sitter grammar for a canonical language
// name. Parsers are built once, eagerly, at registry construction time, not
// per call — see buildParser.
type languageGetter func() *sitter.Language

var languageGetters = map[string]languageGetter{
	Python:     python.GetLanguage,
	JavaScript: javascript.GetLanguage,
	TypeScript: typescript.GetLanguage,
	TSX:        tsx.GetLanguage,
	Java:       java.GetLanguage,
	C:          c.GetLanguage,
	Cpp:        cpp.GetLanguage,
	Go:         golang.GetLanguage,
	Rust:       rust.GetLanguage,
	CSharp:     csharp.GetLanguage,
	PHP:        php.GetLanguage,
	Ruby:       ruby.GetLanguage,
	Kotlin:     kotlin.GetLanguage,
	Bash:       bash.GetLanguage,
	Markdown:   tree_sitter_markdown.GetLanguage,
	YAML:       yaml.GetLanguage,
}

// SupportedLanguages lists the canonical code languages the registry has a
// grammar for, in the order §4.2 of the specification names them. The two
// auxiliary grammars (Markdown, YAML) are not included.
func SupportedLanguages() []string {
	return []string{
		Python, JavaScript, TypeScript, TSX, Java, C, Cpp, Go, Rust, CSharp, PHP, Ruby, Kotlin, Bash,
	}
}

// AutoDetectOrder is the stable language order the Validator's fallback
// auto-detect step (spec §4.3 step 4) tries grammars in. Order matters:
// it is part of the specification, not an implementation detail.
var AutoDetectOrder = []string{Python, JavaScript, Java, Go, Bash, PHP, Ruby}

func toLower(s string) string {
	b := []byte(s)
	for i, c := range b {
		if c >= 'A' && c <= 'Z' {
			b[i] = c + ('a' - 'A')
		}
	}
	return string(b)
}

// ExtensionLanguage maps a filename extension (without the leading dot,
// already lowercased) onto a canonical language or structured-data kind,
// per spec §6's extension table.
var ExtensionLanguage = map[string]string{
	"py":       Python,
	"js":       JavaScript,
	"jsx":      JavaScript,
	"ts":       TypeScript,
	"tsx":      TSX,
	"java":     Java,
	"c":        C,
	"cpp":      Cpp,
	"cc":       Cpp,
	"go":       Go,
	"rs":       Rust,
	"php":      PHP,
	"rb":       Ruby,
	"cs":       CSharp,
	"sh":       Bash,
	"bash":     Bash,
	"zsh":      Bash,
	"kt":       Kotlin,
	"json":     "json",
	"xml":      "xml",
	"yaml":     "yaml",
	"yml":      "yaml",
	"md":       Markdown,
}
