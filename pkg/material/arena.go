package material

import (
	"github.com/df07/go-pathtracer/pkg/core"
)

// Arena stores the materials of one scene. Shapes refer to entries by
// core.MaterialID, an index, so appending never invalidates earlier handles.
type Arena struct {
	materials []Material
}

// NewArena creates an arena with room for capacity materials
func NewArena(capacity int) *Arena {
	return &Arena{materials: make([]Material, 0, max(0, capacity))}
}

// Add stores a material and returns its handle
func (a *Arena) Add(m Material) core.MaterialID {
	a.materials = append(a.materials, m)
	return core.MaterialID(len(a.materials) - 1)
}

// Len returns the number of stored materials
func (a *Arena) Len() int {
	return len(a.materials)
}

// Lookup returns the material for id and whether it exists
func (a *Arena) Lookup(id core.MaterialID) (Material, bool) {
	if a == nil || id < 0 || int(id) >= len(a.materials) {
		return Material{}, false
	}
	return a.materials[id], true
}

// Resolve returns the material for id, falling back to DefaultMaterial
// for core.NoMaterial and unknown handles
func (a *Arena) Resolve(id core.MaterialID) Material {
	if m, ok := a.Lookup(id); ok {
		return m
	}
	return DefaultMaterial()
}
