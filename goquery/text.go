package goquery

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// blockElements start and end a line of rendered text.
var blockElements = map[atom.Atom]bool{
	atom.Address: true, atom.Article: true, atom.Aside: true,
	atom.Blockquote: true, atom.Button: true, atom.Dd: true,
	atom.Div: true, atom.Dl: true, atom.Dt: true,
	atom.Fieldset: true, atom.Figcaption: true, atom.Figure: true,
	atom.Footer: true, atom.Form: true, atom.H1: true,
	atom.H2: true, atom.H3: true, atom.H4: true,
	atom.H5: true, atom.H6: true, atom.Header: true,
	atom.Hr: true, atom.Li: true, atom.Main: true,
	atom.Nav: true, atom.Ol: true, atom.P: true,
	atom.Pre: true, atom.Section: true, atom.Table: true,
	atom.Td: true, atom.Th: true, atom.Tr: true,
	atom.Ul: true,
}

// hiddenElements never contribute visible text.
var hiddenElements = map[atom.Atom]bool{
	atom.Head: true, atom.Noscript: true, atom.Script: true,
	atom.Style: true, atom.Template: true, atom.Title: true,
}

// Text renders the visible text of a selection the way a browser lays it
// out: block elements and <br> break lines, whitespace inside a line is
// collapsed. Lines are separated by "\n" and may be blank.
func Text(sel *goquery.Selection) string {
	var w textWriter
	for _, n := range sel.Nodes {
		w.walk(n)
	}
	return w.String()
}

type textWriter struct {
	b strings.Builder
	// pendingSpace records collapsed whitespace not yet written.
	pendingSpace bool
}

func (w *textWriter) walk(n *html.Node) {
	switch n.Type {
	case html.TextNode:
		w.text(n.Data)
		return
	case html.ElementNode:
		if hiddenElements[n.DataAtom] {
			return
		}
		if n.DataAtom == atom.Br {
			w.newline()
			return
		}
	case html.CommentNode, html.DoctypeNode:
		return
	}

	block := n.Type == html.ElementNode && blockElements[n.DataAtom]
	if block {
		w.newline()
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		w.walk(c)
	}
	if block {
		w.newline()
	}
}

func (w *textWriter) text(s string) {
	for i, field := range strings.Fields(s) {
		if i > 0 || (w.pendingSpace && w.b.Len() > 0) || startsWithSpace(s) {
			w.space()
		}
		w.b.WriteString(field)
		w.pendingSpace = false
	}
	if endsWithSpace(s) {
		w.pendingSpace = true
	}
}

func (w *textWriter) space() {
	str := w.b.String()
	if str == "" || strings.HasSuffix(str, "\n") || strings.HasSuffix(str, " ") {
		return
	}
	w.b.WriteByte(' ')
}

func (w *textWriter) newline() {
	w.pendingSpace = false
	if w.b.Len() == 0 || strings.HasSuffix(w.b.String(), "\n") {
		return
	}
	w.b.WriteByte('\n')
}

func (w *textWriter) String() string {
	return strings.TrimSpace(w.b.String())
}

func startsWithSpace(s string) bool {
	return s != "" && strings.TrimLeft(s, " \t\r\n\f") != s
}

func endsWithSpace(s string) bool {
	return s != "" && strings.TrimRight(s, " \t\r\n\f") != s
}
