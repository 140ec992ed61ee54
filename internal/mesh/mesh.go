package mesh

import "fmt"

// Mesh identifies a polyhedron variant by its triangle (vertex-group)
// count. Geometry and the view transform live with the rendering
// collaborator; the engine only needs the group count.
type Mesh struct {
	Name   string
	Groups int
}

// Vertices is the fixed draw-call vertex count: 3 per group.
func (m Mesh) Vertices() int { return m.Groups * 3 }

var (
	// Cube: 6 faces split into 12 triangles, 36 vertices.
	Cube = Mesh{Name: "cube", Groups: 12}
	// Prism: 6 triangles, 18 vertices.
	Prism = Mesh{Name: "prism", Groups: 6}
)

// ByName resolves a config/flag mesh name.
func ByName(name string) (Mesh, error) {
	switch name {
	case "cube":
		return Cube, nil
	case "prism":
		return Prism, nil
	default:
		return Mesh{}, fmt.Errorf("unknown mesh: %q", name)
	}
}
