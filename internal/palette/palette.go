package palette

import "fmt"

// RGBA is one color, byte channels, straight (non-premultiplied) alpha.
type RGBA struct {
	R, G, B, A uint8
}

// Palette is a named, ordered color list. Vertex-groups index into it
// cyclically, so a palette shorter than the group count repeats.
// Palettes are built once at startup and never mutated.
type Palette struct {
	Name   string
	Colors []RGBA
}

// ColorAt returns the color for vertex-group g.
func (p Palette) ColorAt(g int) RGBA {
	return p.Colors[g%len(p.Colors)]
}

// Table is an ordered sequence of palettes. Elapsed time indexes into it
// cyclically (see Indices).
type Table []Palette

// Len returns the palette count P.
func (t Table) Len() int { return len(t) }

// Trio is the default 3-entry table.
var Trio = Table{
	{Name: "Stella", Colors: []RGBA{
		{255, 214, 112, 255},
		{255, 183, 77, 255},
		{255, 241, 184, 255},
		{236, 160, 62, 255},
		{255, 226, 140, 255},
		{214, 143, 52, 255},
	}},
	{Name: "Revalx", Colors: []RGBA{
		{201, 66, 166, 255},
		{156, 39, 176, 255},
		{233, 96, 202, 255},
		{121, 32, 140, 255},
		{244, 143, 219, 255},
		{94, 21, 110, 255},
	}},
	{Name: "Neo", Colors: []RGBA{
		{57, 255, 136, 255},
		{0, 230, 190, 255},
		{112, 255, 97, 255},
		{0, 179, 149, 255},
		{168, 255, 171, 255},
		{0, 138, 105, 255},
	}},
}

// Hexad extends Trio with three more palettes for the 6-entry variant.
var Hexad = Table{
	Trio[0],
	Trio[1],
	Trio[2],
	{Name: "Ember", Colors: []RGBA{
		{255, 87, 34, 255},
		{229, 57, 53, 255},
		{255, 138, 101, 255},
		{191, 54, 12, 255},
		{255, 171, 145, 255},
		{141, 30, 11, 255},
	}},
	{Name: "Glacier", Colors: []RGBA{
		{129, 212, 250, 255},
		{79, 163, 232, 255},
		{179, 229, 252, 255},
		{41, 121, 199, 255},
		{225, 245, 254, 255},
		{21, 90, 160, 255},
	}},
	{Name: "Verdant", Colors: []RGBA{
		{124, 179, 66, 255},
		{85, 139, 47, 255},
		{174, 213, 129, 255},
		{51, 105, 30, 255},
		{220, 237, 200, 255},
		{27, 67, 14, 255},
	}},
}

// TableByName resolves a config/flag table name.
func TableByName(name string) (Table, error) {
	switch name {
	case "trio":
		return Trio, nil
	case "hexad":
		return Hexad, nil
	default:
		return nil, fmt.Errorf("unknown palette table: %q", name)
	}
}
