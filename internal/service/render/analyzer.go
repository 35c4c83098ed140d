package render

import (
	"math"
	"strings"
	"unicode"
)

// DefaultWordsPerMinute is the reading speed used for reading time estimates
const DefaultWordsPerMinute = 200

var markdownMarkers = strings.NewReplacer(
	"`", "",
	"**", "", "*", "",
	"__", "", "_", "",
	"~~", "",
	"#", "",
	">", "",
	"|", " ",
)

// Analyzer derives reading statistics from exported Markdown
type Analyzer struct {
	wordsPerMinute int
}

// NewAnalyzer creates an analyzer; non-positive speeds fall back to the default
func NewAnalyzer(wordsPerMinute int) *Analyzer {
	if wordsPerMinute <= 0 {
		wordsPerMinute = DefaultWordsPerMinute
	}
	return &Analyzer{wordsPerMinute: wordsPerMinute}
}

// CountWords counts whitespace-separated words in markdown, ignoring syntax and fenced code
func (a *Analyzer) CountWords(markdown string) int {
	return len(strings.FieldsFunc(CleanMarkdown(markdown), unicode.IsSpace))
}

// ReadingMinutes estimates reading time, rounding up; any non-empty text takes a minute
func (a *Analyzer) ReadingMinutes(words int) int {
	if words <= 0 {
		return 0
	}
	return int(math.Ceil(float64(words) / float64(a.wordsPerMinute)))
}

// CleanMarkdown strips markdown syntax, leaving prose
func CleanMarkdown(markdown string) string {
	text := markdownMarkers.Replace(stripFences(markdown))

	lines := strings.Split(text, "\n")
	for i, line := range lines {
		line = strings.TrimSpace(line)
		line = strings.TrimPrefix(line, "- ")
		line = strings.TrimPrefix(line, "+ ")
		if j := strings.IndexByte(line, '.'); j > 0 && j < 4 && isDigits(line[:j]) {
			line = line[j+1:]
		}
		if isRule(line) {
			line = ""
		}
		lines[i] = line
	}
	return strings.Join(lines, " ")
}

// stripFences drops ``` fenced blocks; an unterminated fence is kept
func stripFences(text string) string {
	for {
		start := strings.Index(text, "```")
		if start == -1 {
			return text
		}
		end := strings.Index(text[start+3:], "```")
		if end == -1 {
			return text
		}
		text = text[:start] + text[start+end+6:]
	}
}

func isDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return s != ""
}

func isRule(line string) bool {
	return len(line) >= 3 && strings.Trim(line, "-") == ""
}
