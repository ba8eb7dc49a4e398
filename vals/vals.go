// Package vals provides the composite value types recognized by the
// serialization coercion rules: filesystem paths, RGBA colors, and font
// descriptions. They are plain value types with no behavior beyond
// conversion, shared by controls and the serializer.
package vals

import "fmt"

// Path is a filesystem path attribute value. It serializes as its string
// form.
type Path string

func (p Path) String() string { return string(p) }

// Color is an RGBA color. It serializes as the sequence [r, g, b, a].
type Color struct {
	R, G, B, A uint8
}

// White is the default color for freshly constructed color controls.
var White = Color{R: 255, G: 255, B: 255, A: 255}

// Hex renders the color as #rrggbb, ignoring alpha.
func (c Color) Hex() string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

// Font describes a font selection. It serializes as an ordered field
// structure keyed family, pointSize, bold, italic, underline, strikeOut.
type Font struct {
	Family    string
	PointSize int
	Bold      bool
	Italic    bool
	Underline bool
	StrikeOut bool
}

// DefaultFont is the value freshly constructed font controls start from.
var DefaultFont = Font{Family: "Sans", PointSize: 10}

func (f Font) String() string {
	return fmt.Sprintf("%s %d", f.Family, f.PointSize)
}
