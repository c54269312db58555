package component

// Visual is what a renderer needs besides the Transform: a glyph, a colour as
// 0xRRGGBB, and a size in world units.
type Visual struct {
	Glyph rune
	Color uint32
	Size  float32
}
