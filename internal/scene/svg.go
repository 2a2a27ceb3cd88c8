package scene

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	svg "github.com/ajstarks/svgo/float"
)

// WriteSVG serializes doc with every attribute sampled at at. Pass a time
// past all transitions to get the settled picture.
func WriteSVG(w io.Writer, doc *Document, at time.Time) error {
	bw := bufio.NewWriter(w)
	canvas := svg.New(bw)

	root := doc.SVG
	width, height := number(root.AttrAt("width", at)), number(root.AttrAt("height", at))
	var extra []string
	for _, a := range root.Attrs(at) {
		if a.Name == "width" || a.Name == "height" {
			continue
		}
		extra = append(extra, attr(a))
	}
	canvas.Start(width, height, extra...)
	for _, c := range root.Children() {
		if err := writeElement(canvas, c, at); err != nil {
			return err
		}
	}
	canvas.End()
	return bw.Flush()
}

func writeElement(canvas *svg.SVG, e *Element, at time.Time) error {
	attrs := e.Attrs(at)
	switch e.Tag {
	case "g":
		s := rest(attrs)
		if e.ID != "" {
			s = append([]string{attr(Attr{Name: "id", Value: e.ID})}, s...)
		}
		canvas.Group(s...)
		for _, c := range e.Children() {
			if err := writeElement(canvas, c, at); err != nil {
				return err
			}
		}
		canvas.Gend()
	case "rect":
		canvas.Rect(num(attrs, "x"), num(attrs, "y"), num(attrs, "width"), num(attrs, "height"),
			rest(attrs, "x", "y", "width", "height")...)
	case "path":
		canvas.Path(escapeXML(str(attrs, "d")), rest(attrs, "d")...)
	case "line":
		canvas.Line(num(attrs, "x1"), num(attrs, "y1"), num(attrs, "x2"), num(attrs, "y2"),
			rest(attrs, "x1", "y1", "x2", "y2")...)
	case "text":
		canvas.Text(num(attrs, "x"), num(attrs, "y"), e.Text, rest(attrs, "x", "y")...)
	default:
		return fmt.Errorf("cannot serialize <%s>", e.Tag)
	}
	return nil
}

// rest renders every attribute except skip as name="value" strings, which
// svgo emits verbatim.
func rest(attrs []Attr, skip ...string) []string {
	var out []string
	for _, a := range attrs {
		if contains(skip, a.Name) {
			continue
		}
		out = append(out, attr(a))
	}
	return out
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}

func attr(a Attr) string {
	return a.Name + `="` + escapeXML(a.Value) + `"`
}

func str(attrs []Attr, name string) string {
	for _, a := range attrs {
		if a.Name == name {
			return a.Value
		}
	}
	return ""
}

func num(attrs []Attr, name string) float64 {
	return number(str(attrs, name))
}

func number(s string) float64 {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0
	}
	return v
}

// escapeXML escapes special XML characters in attribute values.
func escapeXML(s string) string {
	s = strings.ReplaceAll(s, "&", "&amp;")
	s = strings.ReplaceAll(s, "<", "&lt;")
	s = strings.ReplaceAll(s, ">", "&gt;")
	s = strings.ReplaceAll(s, "\"", "&quot;")
	s = strings.ReplaceAll(s, "'", "&apos;")
	return s
}
