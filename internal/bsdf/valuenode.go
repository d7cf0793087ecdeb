// valuenode.go - Wertknoten-Graph fuer texturgetriebene BSDF-Eingaben
//
// Ein kleiner, azyklischer Ausdrucksgraph anstelle eines intrusiven
// Node-Systems mit Register-Input/Register-Output/Evaluate/Destroy:
// jeder Knoten ist nur ein Wert, der bei jedem Sample neu ausgewertet
// wird, ohne gespeicherten Zustand oder Rueckkanten.
package bsdf

import "github.com/mantaray/manta/internal/imaging"

// Node evaluates to an RGB value at a surface point (reflectance,
// transmittance, tint, or any other vector-valued BSDF input).
type Node interface {
	Evaluate(surf Surface) RGB
}

// ScalarNode evaluates to a single float, used by nodes that need a
// scalar drive signal (a ramp's position, a vector-split's output).
type ScalarNode interface {
	EvaluateScalar(surf Surface) float32
}

// ConstantNode is a fixed RGB value, the graph's leaf case.
type ConstantNode struct {
	Value RGB
}

func (n ConstantNode) Evaluate(Surface) RGB { return n.Value }

// ConstantScalarNode is a fixed scalar value.
type ConstantScalarNode struct {
	Value float32
}

func (n ConstantScalarNode) EvaluateScalar(Surface) float32 { return n.Value }

// TextureNode samples a raster image at the surface's UV coordinate,
// wrapping (tiling) both axes to [0, 1) before lookup.
type TextureNode struct {
	Map *imaging.VectorMap2D
}

func (n TextureNode) Evaluate(surf Surface) RGB {
	u := float64(wrap01(surf.UV.X))
	v := float64(wrap01(surf.UV.Y))
	c := n.Map.BilinearSample(u, v)
	return RGB{R: c.X, G: c.Y, B: c.Z}
}

func wrap01(v float32) float32 {
	v -= float32(int(v))
	if v < 0 {
		v++
	}
	return v
}

// UVWrapNode rescales (tiles) the surface UV before evaluating its
// child, letting a single texture repeat across a larger surface.
type UVWrapNode struct {
	Child            Node
	RepeatU, RepeatV float32
}

func (n UVWrapNode) Evaluate(surf Surface) RGB {
	scaled := Surface{UV: Vector2{X: surf.UV.X * n.RepeatU, Y: surf.UV.Y * n.RepeatV}}
	return n.Child.Evaluate(scaled)
}

// BinaryOp names the elementwise arithmetic a BinaryOpNode performs.
type BinaryOp int

const (
	OpAdd BinaryOp = iota
	OpSub
	OpMin
	OpMax
)

// BinaryOpNode combines two child nodes elementwise.
type BinaryOpNode struct {
	A, B Node
	Op   BinaryOp
}

func (n BinaryOpNode) Evaluate(surf Surface) RGB {
	a, b := n.A.Evaluate(surf), n.B.Evaluate(surf)
	switch n.Op {
	case OpAdd:
		return a.Add(b)
	case OpSub:
		return a.Sub(b)
	case OpMin:
		return RGB{R: minf(a.R, b.R), G: minf(a.G, b.G), B: minf(a.B, b.B)}
	default:
		return RGB{R: maxf(a.R, b.R), G: maxf(a.G, b.G), B: maxf(a.B, b.B)}
	}
}

// UnaryOp names the elementwise transform a UnaryOpNode performs.
type UnaryOp int

const (
	OpAbs UnaryOp = iota
	OpOneMinus
	OpSqrt
)

// UnaryOpNode applies a single-child elementwise transform.
type UnaryOpNode struct {
	A  Node
	Op UnaryOp
}

func (n UnaryOpNode) Evaluate(surf Surface) RGB {
	v := n.A.Evaluate(surf)
	switch n.Op {
	case OpAbs:
		return RGB{R: absf(v.R), G: absf(v.G), B: absf(v.B)}
	case OpOneMinus:
		return RGB{R: 1, G: 1, B: 1}.Sub(v)
	default:
		return RGB{R: sqrtClamped(v.R), G: sqrtClamped(v.G), B: sqrtClamped(v.B)}
	}
}

// MultiplyNode scales a vector node by a scalar node, the graph's
// dedicated tint/intensity combinator.
type MultiplyNode struct {
	A      Node
	Scalar ScalarNode
}

func (n MultiplyNode) Evaluate(surf Surface) RGB {
	return n.A.Evaluate(surf).Scale(n.Scalar.EvaluateScalar(surf))
}

// RampStop is one control point of a RampNode's piecewise-linear
// gradient, ordered by Position.
type RampStop struct {
	Position float32
	Color    RGB
}

// RampNode maps a scalar drive signal through a piecewise-linear color
// gradient; Stops must be sorted by Position.
type RampNode struct {
	Drive ScalarNode
	Stops []RampStop
}

func (n RampNode) Evaluate(surf Surface) RGB {
	t := n.Drive.EvaluateScalar(surf)
	if len(n.Stops) == 0 {
		return RGB{}
	}
	if t <= n.Stops[0].Position {
		return n.Stops[0].Color
	}
	last := len(n.Stops) - 1
	if t >= n.Stops[last].Position {
		return n.Stops[last].Color
	}
	for i := 0; i < last; i++ {
		a, b := n.Stops[i], n.Stops[i+1]
		if t >= a.Position && t <= b.Position {
			span := b.Position - a.Position
			if span == 0 {
				return a.Color
			}
			frac := (t - a.Position) / span
			return a.Color.Add(b.Color.Sub(a.Color).Scale(frac))
		}
	}
	return n.Stops[last].Color
}

// VectorSplitNode extracts one channel of a vector node as a scalar,
// the inverse of composing scalars into a color.
type VectorSplitNode struct {
	Source  Node
	Channel int // 0=R, 1=G, 2=B
}

func (n VectorSplitNode) EvaluateScalar(surf Surface) float32 {
	v := n.Source.Evaluate(surf)
	switch n.Channel {
	case 0:
		return v.R
	case 1:
		return v.G
	default:
		return v.B
	}
}

func minf(a, b float32) float32 {
	if a < b {
		return a
	}
	return b
}

func maxf(a, b float32) float32 {
	if a > b {
		return a
	}
	return b
}
