// fresnel.go - Dielektrisches Medien-Interface: Fresnel-Reflexionsgrad
package bsdf

import "github.com/chewxy/math32"

// Direction tags which side of a dielectric boundary a ray is
// travelling, matching the In/Out sense of a resolved intersection
// point.
type Direction int

const (
	In Direction = iota
	Out
)

// DielectricInterface models a boundary between two dielectric media by
// their indices of refraction (IORs). IORIncident is the medium the ray
// started in; IORTransmitted is the medium on the far side.
type DielectricInterface struct {
	IORIncident, IORTransmitted float32
}

// Eta returns the relative index of refraction incident/transmitted for
// the given direction of travel.
func (d DielectricInterface) Eta(dir Direction) float32 {
	if dir == In {
		return d.IORIncident / d.IORTransmitted
	}
	return d.IORTransmitted / d.IORIncident
}

// FresnelTerm evaluates the unpolarized Fresnel reflectance for a ray
// with incidence cosine cosThetaI (measured against the macro or micro
// surface normal, always positive), supporting total internal
// reflection when sin²θₜ ≥ 1.
func (d DielectricInterface) FresnelTerm(cosThetaI float32, dir Direction) float32 {
	ni, no := d.IORIncident, d.IORTransmitted
	if dir == Out {
		ni, no = no, ni
	}
	cosThetaI = clamp01(absf(cosThetaI))

	sin2ThetaT := (ni / no) * (ni / no) * max32(0, 1-cosThetaI*cosThetaI)
	if sin2ThetaT >= 1 {
		return 1
	}
	cosThetaT := math32.Sqrt(1 - sin2ThetaT)

	rParl := (no*cosThetaI - ni*cosThetaT) / (no*cosThetaI + ni*cosThetaT)
	rPerp := (ni*cosThetaI - no*cosThetaT) / (ni*cosThetaI + no*cosThetaT)
	return (rParl*rParl + rPerp*rPerp) / 2
}

// SchlickR0 is the normal-incidence reflectance implied by a pair of
// IORs, the base reflectance Schlick's approximation interpolates from.
func SchlickR0(iorIncident, iorTransmitted float32) float32 {
	r0 := (iorTransmitted - iorIncident) / (iorTransmitted + iorIncident)
	return r0 * r0
}

// SchlickFresnel is Schlick's polynomial approximation to the Fresnel
// term, used by the bilayer BSDF's coat-over-diffuse blend where the
// full dielectric formula would be overkill.
func SchlickFresnel(r0, cosTheta float32) float32 {
	return r0 + (1-r0)*pow5(1-clamp01(absf(cosTheta)))
}
