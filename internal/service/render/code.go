package render

import "strings"

const (
	diagramLanguage = "mermaid"
	plainLanguage   = "plaintext"
)

// highlighterLanguages maps lower-cased source language tags to highlighter ids.
// The set follows the grammars the blog ships with.
var highlighterLanguages = map[string]string{
	"bash":          "bash",
	"shell":         "bash",
	"sh":            "bash",
	"powershell":    "powershell",
	"c":             "c",
	"c++":           "cpp",
	"cpp":           "cpp",
	"c#":            "csharp",
	"csharp":        "csharp",
	"coffeescript":  "coffeescript",
	"css":           "css",
	"diff":          "diff",
	"docker":        "docker",
	"dockerfile":    "docker",
	"git":           "git",
	"go":            "go",
	"graphql":       "graphql",
	"handlebars":    "handlebars",
	"html":          "markup",
	"xml":           "markup",
	"markup":        "markup",
	"java":          "java",
	"javascript":    "javascript",
	"js":            "javascript",
	"typescript":    "typescript",
	"ts":            "typescript",
	"json":          "json",
	"less":          "less",
	"makefile":      "makefile",
	"markdown":      "markdown",
	"objective-c":   "objectivec",
	"objectivec":    "objectivec",
	"ocaml":         "ocaml",
	"python":        "python",
	"reason":        "reason",
	"rust":          "rust",
	"sass":          "sass",
	"scss":          "scss",
	"solidity":      "solidity",
	"sql":           "sql",
	"stylus":        "stylus",
	"swift":         "swift",
	"webassembly":   "wasm",
	"wasm":          "wasm",
	"yaml":          "yaml",
	"plain text":    plainLanguage,
	"plaintext":     plainLanguage,
}

// IsDiagram reports whether a code block holds diagram source
func IsDiagram(language string) bool {
	return strings.EqualFold(strings.TrimSpace(language), diagramLanguage)
}

// HighlighterLanguage maps a language tag, case-insensitively, defaulting to plaintext
func HighlighterLanguage(language string) string {
	if id, ok := highlighterLanguages[strings.ToLower(strings.TrimSpace(language))]; ok {
		return id
	}
	return plainLanguage
}
