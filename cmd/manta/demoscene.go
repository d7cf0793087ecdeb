// demoscene.go - Eingebaute Beispielszene fuer `manta render`
//
// Die OBJ-Lade- und SDL-Compiler-Schichten liegen explizit ausserhalb
// des Kernumfangs: core konsumiert bereits gebaute
// Scene/Camera/MaterialLibrary-Objekte. Fuer ein lauffaehiges CLI ohne
// Szenen-Sprache baut dieses Modul stattdessen eine kleine feste
// Cornell-Box-artige Demo-Szene direkt aus internal/mesh +
// internal/accel, so wie ein Testfall es taete, nur gross genug um
// etwas Sichtbares zu rendern.
package main

import (
	"github.com/mantaray/manta/internal/accel"
	"github.com/mantaray/manta/internal/bsdf"
	"github.com/mantaray/manta/internal/mesh"
	"github.com/mantaray/manta/internal/scene"
	"github.com/mantaray/manta/internal/vecmath"
)

func buildDemoScene() (*scene.Scene, error) {
	floor, err := quadMesh(
		vecmath.Vector3{X: -5, Y: -1, Z: -5},
		vecmath.Vector3{X: 5, Y: -1, Z: -5},
		vecmath.Vector3{X: 5, Y: -1, Z: 5},
		vecmath.Vector3{X: -5, Y: -1, Z: 5},
	)
	if err != nil {
		return nil, err
	}

	back, err := quadMesh(
		vecmath.Vector3{X: -5, Y: -1, Z: 5},
		vecmath.Vector3{X: 5, Y: -1, Z: 5},
		vecmath.Vector3{X: 5, Y: 5, Z: 5},
		vecmath.Vector3{X: -5, Y: 5, Z: 5},
	)
	if err != nil {
		return nil, err
	}

	library := scene.NewMaterialLibrary()
	white := library.Add(scene.Material{
		Name: "white_diffuse",
		BSDF: &bsdf.Lambertian{Reflectance: bsdf.ConstantNode{Value: vecmath.Gray(0.72)}},
	})

	floorObj := newSceneObject(floor, white)
	backObj := newSceneObject(back, white)

	light := &scene.SphereLight{
		Center:   vecmath.Vector3{X: 0, Y: 3.5, Z: 0},
		Radius:   0.75,
		Radiance: vecmath.RGB{R: 8, G: 8, B: 7},
	}

	return &scene.Scene{
		Objects: []*scene.SceneObject{floorObj, backObj},
		Lights:  []scene.Light{light},
		Library: library,
	}, nil
}

func quadMesh(a, b, c, d vecmath.Vector3) (*mesh.Mesh, error) {
	vertices := []vecmath.Vector3{a, b, c, d}
	triangles := [][3]int32{{0, 1, 2}, {0, 2, 3}}
	aux := []mesh.TriangleAux{
		{NormalIdx: [3]int32{-1, -1, -1}, UVIdx: [3]int32{-1, -1, -1}, Material: -1},
		{NormalIdx: [3]int32{-1, -1, -1}, UVIdx: [3]int32{-1, -1, -1}, Material: -1},
	}
	return mesh.New(vertices, nil, nil, triangles, aux)
}

func newSceneObject(m *mesh.Mesh, defaultMaterial int32) *scene.SceneObject {
	bounds := accel.EmptyAABB()
	for i := 0; i < m.NumFaces(); i++ {
		bounds = bounds.Union(m.FaceBounds(i))
	}
	tree := accel.Build(m, bounds, accel.BuildOptions{MaxLeafSize: 2})
	return &scene.SceneObject{Geometry: m, Tree: tree, DefaultMaterial: defaultMaterial}
}
