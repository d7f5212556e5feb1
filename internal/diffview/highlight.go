package diffview

import (
	"path/filepath"
	"strings"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/formatters"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"
)

// Highlighter colorizes diff line text per file extension via chroma.
// Lexers are cached per path base name since a diff revisits the same
// files row after row.
type Highlighter struct {
	style     *chroma.Style
	formatter chroma.Formatter
	lexers    map[string]chroma.Lexer
}

func NewHighlighter(styleName string) *Highlighter {
	style := styles.Get(styleName)
	if style == nil {
		style = styles.Fallback
	}
	formatter := formatters.Get("terminal256")
	if formatter == nil {
		formatter = formatters.Fallback
	}
	return &Highlighter{
		style:     style,
		formatter: formatter,
		lexers:    make(map[string]chroma.Lexer),
	}
}

// Line returns text with ANSI color for the language matched from path.
// Any tokenize or format failure falls back to the raw text; diff
// rendering never depends on highlighting succeeding.
func (h *Highlighter) Line(path, text string) string {
	if h == nil || text == "" {
		return text
	}

	lexer := h.lexerFor(path)
	if lexer == nil {
		return text
	}

	it, err := lexer.Tokenise(nil, text)
	if err != nil {
		return text
	}
	var sb strings.Builder
	if err := h.formatter.Format(&sb, h.style, it); err != nil {
		return text
	}
	// Lexers with EnsureNL append a newline the input never had; the
	// projector already split lines, so any newline would break row
	// alignment.
	return strings.ReplaceAll(sb.String(), "\n", "")
}

func (h *Highlighter) lexerFor(path string) chroma.Lexer {
	base := filepath.Base(path)
	if lexer, ok := h.lexers[base]; ok {
		return lexer
	}
	lexer := lexers.Match(base)
	if lexer != nil {
		lexer = chroma.Coalesce(lexer)
	}
	h.lexers[base] = lexer
	return lexer
}
