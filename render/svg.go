// Package render turns layout geometry into SVG markup. It consumes the
// engraver's output and the glyph table; it never computes spacing itself.
package render

import (
	"fmt"
	"strings"
)

// Rect is an SVG rect element.
type Rect struct {
	X, Y          int
	Width, Height int
	Rx, Ry        int
	Fill          string
}

func (r Rect) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "<rect x='%d' y='%d' width='%d' height='%d'",
		r.X, r.Y, r.Width, r.Height)
	if r.Rx != 0 {
		fmt.Fprintf(&b, " rx='%d'", r.Rx)
	}
	if r.Ry != 0 {
		fmt.Fprintf(&b, " ry='%d'", r.Ry)
	}
	if r.Fill != "" {
		fmt.Fprintf(&b, " fill='%s'", r.Fill)
	}
	b.WriteString("/>")
	return b.String()
}

// Use is an SVG use element referencing a glyph by codepoint id.
type Use struct {
	X, Y int
	ID   uint32
}

func (u Use) String() string {
	return fmt.Sprintf("<use x='%d' y='%d' xlink:href='#%x'/>", u.X, u.Y, u.ID)
}

// Path is an SVG path element.
type Path struct {
	ID string
	D  string
}

func (p Path) String() string {
	if p.ID != "" {
		return fmt.Sprintf("<path id='%s' d='%s'/>", p.ID, p.D)
	}
	return fmt.Sprintf("<path d='%s'/>", p.D)
}

// Group is an SVG g element with a translate transform.
type Group struct {
	X, Y     int
	Elements []fmt.Stringer
}

func (g *Group) Push(e fmt.Stringer) {
	g.Elements = append(g.Elements, e)
}

func (g *Group) String() string {
	var b strings.Builder
	if g.X != 0 || g.Y != 0 {
		fmt.Fprintf(&b, "<g transform='translate(%d %d)'>", g.X, g.Y)
	} else {
		b.WriteString("<g>")
	}
	for _, e := range g.Elements {
		b.WriteString(e.String())
	}
	b.WriteString("</g>")
	return b.String()
}
