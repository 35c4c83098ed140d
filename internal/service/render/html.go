package render

import (
	"bytes"
	"fmt"
	"io"
	"strconv"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/youngkeol/notion-blog/internal/domain/models/render"
)

const classPrefix = "notion-"

// WriteHTML writes n as an HTML fragment
func WriteHTML(w io.Writer, n *render.Node) error {
	if n == nil {
		return nil
	}
	for _, h := range toHTML(*n) {
		if err := html.Render(w, h); err != nil {
			return fmt.Errorf("write html: %w", err)
		}
	}
	return nil
}

// HTML renders n as an HTML fragment string
func HTML(n *render.Node) (string, error) {
	var buf bytes.Buffer
	if err := WriteHTML(&buf, n); err != nil {
		return "", err
	}
	return buf.String(), nil
}

func toHTML(n render.Node) []*html.Node {
	switch n.Kind {
	case render.KindText:
		return []*html.Node{{Type: html.TextNode, Data: n.Text}}
	case render.KindBold:
		return inline(atom.Strong, n)
	case render.KindItalic:
		return inline(atom.Em, n)
	case render.KindStrikethrough:
		return inline(atom.S, n)
	case render.KindUnderline:
		return inline(atom.U, n)
	case render.KindInlineCode:
		return inline(atom.Code, n)
	case render.KindColor:
		return inline(atom.Span, n, colorClass(n.Color))
	case render.KindLink:
		return inline(atom.A, n, attr("href", n.Href), attr("target", n.Target), attr("rel", "noopener noreferrer"))
	}

	var el *html.Node
	switch n.Kind {
	case render.KindDocument:
		el = element(atom.Article, class("page"))
	case render.KindParagraph:
		el = withColor(element(atom.P), n.Color)
		appendNodes(el, n.Inlines)
	case render.KindHeading:
		el = withColor(element(headingAtom(n.Level)), n.Color)
		appendNodes(el, n.Inlines)
	case render.KindList:
		el = element(atom.Ul, class("list-bulleted"))
		if n.Variant == render.VariantNumbered {
			el = element(atom.Ol, class("list-numbered"))
		}
	case render.KindListItem:
		el = withColor(element(atom.Li), n.Color)
		appendNodes(el, n.Inlines)
	case render.KindToDo:
		el = element(atom.Div, class("to-do"))
		box := element(atom.Span, class("checkbox"))
		if n.Checked != nil && *n.Checked {
			el = element(atom.Div, class("to-do to-do-checked"))
			box.AppendChild(textNode("☑"))
		} else {
			box.AppendChild(textNode("☐"))
		}
		el.AppendChild(box)
		label := element(atom.Span)
		appendNodes(label, n.Inlines)
		el.AppendChild(label)
	case render.KindToggle:
		el = element(atom.Details, class("toggle"))
		summary := element(atom.Summary)
		appendNodes(summary, n.Inlines)
		el.AppendChild(summary)
	case render.KindQuote:
		el = withColor(element(atom.Blockquote), n.Color)
		appendNodes(el, n.Inlines)
	case render.KindCallout:
		el = withColor(element(atom.Div, class("callout")), n.Color)
		if n.Icon != "" {
			icon := element(atom.Span, class("callout-icon"))
			icon.AppendChild(textNode(n.Icon))
			el.AppendChild(icon)
		}
		text := element(atom.Div, class("callout-text"))
		appendNodes(text, n.Inlines)
		el.AppendChild(text)
	case render.KindCode:
		el = codeBlock(n.Language, n.Text, class("code"))
		if len(n.Caption) > 0 {
			el = figure(el, n.Caption)
		}
	case render.KindDiagram:
		el = codeBlock(n.Language, n.Text, attr("class", n.Language))
	case render.KindImage:
		img := element(atom.Img, attr("src", n.Src), attr("alt", plainInline(n.Caption)), attr("loading", "lazy"))
		el = figure(img, n.Caption)
	case render.KindVideo:
		video := element(atom.Video, attr("src", n.Src), attr("controls", ""))
		el = figure(video, n.Caption)
	case render.KindDivider:
		el = element(atom.Hr)
	case render.KindBookmark:
		el = element(atom.Div, class("bookmark"))
		a := element(atom.A, attr("href", n.Href), attr("target", n.Target), attr("rel", "noopener noreferrer"))
		if len(n.Caption) > 0 {
			appendNodes(a, n.Caption)
		} else {
			a.AppendChild(textNode(n.Href))
		}
		el.AppendChild(a)
	case render.KindEquation:
		el = element(atom.Div, class("equation"))
		el.AppendChild(textNode(n.Text))
	case render.KindColumnList:
		el = element(atom.Div, class("row"), attr("data-columns", strconv.Itoa(n.ColumnCount)))
	case render.KindColumn:
		el = element(atom.Div, class("column"), attr("style", fmt.Sprintf("width: %.0fpx", n.Width)))
	case render.KindTable:
		return []*html.Node{tableHTML(n)}
	default:
		return nil
	}
	appendNodes(el, n.Children)
	return []*html.Node{el}
}

func tableHTML(n render.Node) *html.Node {
	table := element(atom.Table, class("table"))
	body := element(atom.Tbody)
	for r, row := range n.Children {
		tr := element(atom.Tr)
		for c, cell := range row.Children {
			tag := atom.Td
			if (n.HasColumnHeader && r == 0) || (n.HasRowHeader && c == 0) {
				tag = atom.Th
			}
			td := element(tag)
			appendNodes(td, cell.Inlines)
			tr.AppendChild(td)
		}
		body.AppendChild(tr)
	}
	table.AppendChild(body)
	return table
}

func codeBlock(language, source string, preAttrs ...html.Attribute) *html.Node {
	pre := element(atom.Pre, preAttrs...)
	code := element(atom.Code, attr("class", "language-"+language))
	code.AppendChild(textNode(source))
	pre.AppendChild(code)
	return pre
}

func figure(content *html.Node, caption []render.Node) *html.Node {
	fig := element(atom.Figure)
	fig.AppendChild(content)
	if len(caption) > 0 {
		fc := element(atom.Figcaption)
		appendNodes(fc, caption)
		fig.AppendChild(fc)
	}
	return fig
}

func inline(a atom.Atom, n render.Node, attrs ...html.Attribute) []*html.Node {
	el := element(a, attrs...)
	appendNodes(el, n.Inlines)
	return []*html.Node{el}
}

func appendNodes(parent *html.Node, nodes []render.Node) {
	for _, c := range nodes {
		for _, h := range toHTML(c) {
			parent.AppendChild(h)
		}
	}
}

// plainInline flattens composed runs back to text
func plainInline(nodes []render.Node) string {
	var buf bytes.Buffer
	for i := range nodes {
		nodes[i].Walk(func(n *render.Node) bool {
			if n.Kind == render.KindText {
				buf.WriteString(n.Text)
			}
			return true
		})
	}
	return buf.String()
}

func headingAtom(level int) atom.Atom {
	switch level {
	case 1:
		return atom.H1
	case 2:
		return atom.H2
	default:
		return atom.H3
	}
}

func withColor(el *html.Node, color string) *html.Node {
	if color != "" && color != defaultColor {
		el.Attr = append(el.Attr, colorClass(color))
	}
	return el
}

func colorClass(color string) html.Attribute {
	return class("color-" + color)
}

func class(names string) html.Attribute {
	return attr("class", prefixClasses(names))
}

func prefixClasses(names string) string {
	var buf bytes.Buffer
	for i, f := range bytes.Fields([]byte(names)) {
		if i > 0 {
			buf.WriteByte(' ')
		}
		buf.WriteString(classPrefix)
		buf.Write(f)
	}
	return buf.String()
}

func element(a atom.Atom, attrs ...html.Attribute) *html.Node {
	return &html.Node{Type: html.ElementNode, DataAtom: a, Data: a.String(), Attr: attrs}
}

func attr(key, val string) html.Attribute {
	return html.Attribute{Key: key, Val: val}
}

func textNode(s string) *html.Node {
	return &html.Node{Type: html.TextNode, Data: s}
}
