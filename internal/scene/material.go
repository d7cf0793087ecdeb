// material.go - Namens-indizierte Materialbibliothek
//
// Append-only: waehrend des Renderns wird nur gelesen, das Anlegen
// neuer Eintraege gehoert ausschliesslich zur Szenen-Ladephase.
package scene

import "github.com/mantaray/manta/internal/bsdf"

// Material pairs a BSDF with an emitted radiance, resolved by index
// from each face's auxiliary data.
type Material struct {
	Name     string
	BSDF     bsdf.BSDF
	Emission bsdf.RGB
}

// MaterialLibrary is an append-only, name-indexed table populated
// during scene load and never mutated during render.
type MaterialLibrary struct {
	materials []Material
	byName    map[string]int32
}

func NewMaterialLibrary() *MaterialLibrary {
	return &MaterialLibrary{byName: make(map[string]int32)}
}

// Add appends a material and returns its index. A duplicate name
// overwrites the lookup but the old entry's index remains valid
// (append-only: indices already handed out to faces are never
// invalidated).
func (l *MaterialLibrary) Add(m Material) int32 {
	idx := int32(len(l.materials))
	l.materials = append(l.materials, m)
	l.byName[m.Name] = idx
	return idx
}

// IndexOf resolves a material name to its index, or ok=false if
// unknown; callers fall back to a caller-supplied default index.
func (l *MaterialLibrary) IndexOf(name string) (int32, bool) {
	idx, ok := l.byName[name]
	return idx, ok
}

// At returns the material at idx; out-of-range idx (unassigned faces,
// -1 sentinel) returns the zero Material.
func (l *MaterialLibrary) At(idx int32) Material {
	if idx < 0 || int(idx) >= len(l.materials) {
		return Material{}
	}
	return l.materials[idx]
}

func (l *MaterialLibrary) Len() int { return len(l.materials) }
