package render

import (
	"github.com/youngkeol/notion-blog/internal/domain/models/content"
	"github.com/youngkeol/notion-blog/internal/domain/models/render"
)

const (
	defaultColor = "default"
	nbsp         = " "
	linkTarget   = "_blank"
)

// Compose turns one annotated run into a wrapper chain.
//
// Wrapping order is fixed: bold, italic, strikethrough, underline, each around the
// previous result. A code annotation discards those wrappers and wraps the raw text
// instead. A non-default color then wraps whatever was produced, and a link wraps last.
func Compose(run content.RichTextRun) render.Node {
	text := render.Node{Kind: render.KindText, Text: run.PlainText}
	a := run.Annotations

	var node render.Node
	if a.Code {
		node = wrap(render.KindInlineCode, text)
	} else {
		node = text
		if a.Bold {
			node = wrap(render.KindBold, node)
		}
		if a.Italic {
			node = wrap(render.KindItalic, node)
		}
		if a.Strikethrough {
			node = wrap(render.KindStrikethrough, node)
		}
		if a.Underline {
			node = wrap(render.KindUnderline, node)
		}
	}

	if a.Color != "" && a.Color != defaultColor {
		node = wrap(render.KindColor, node)
		node.Color = a.Color
	}
	if run.Href != "" {
		node = wrap(render.KindLink, node)
		node.Href = run.Href
		node.Target = linkTarget
	}
	return node
}

// ComposeRuns composes runs in order. With placeholder set, an empty input
// yields a single non-breaking space so empty paragraphs keep their height.
func ComposeRuns(runs []content.RichTextRun, placeholder bool) []render.Node {
	if len(runs) == 0 {
		if placeholder {
			return []render.Node{{Kind: render.KindText, Text: nbsp}}
		}
		return nil
	}
	out := make([]render.Node, len(runs))
	for i, r := range runs {
		out[i] = Compose(r)
	}
	return out
}

func wrap(kind render.Kind, inner render.Node) render.Node {
	return render.Node{Kind: kind, Inlines: []render.Node{inner}}
}
