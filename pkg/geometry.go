package reco

import "gonum.org/v1/gonum/spatial/r3"

// Lines whose |a*c - b*b| is below this are treated as parallel.
const parallelTolerance = 1e-6

// ClosestPointBetweenLines returns the midpoint of the points of closest
// approach of the lines p1 + s*v1 and p2 + t*v2. Directions do not need to be
// unit vectors. For parallel or nearly parallel lines the midpoint of p1 and p2
// is returned.
func ClosestPointBetweenLines(p1, v1, p2, v2 r3.Vec) r3.Vec {
	w0 := r3.Sub(p1, p2)
	a := r3.Dot(v1, v1)
	b := r3.Dot(v1, v2)
	c := r3.Dot(v2, v2)
	d := r3.Dot(v1, w0)
	e := r3.Dot(v2, w0)

	denom := a*c - b*b
	if denom < parallelTolerance && denom > -parallelTolerance {
		return midpoint(p1, p2)
	}

	sc := (b*e - c*d) / denom
	tc := (a*e - b*d) / denom
	point1 := r3.Add(p1, r3.Scale(sc, v1))
	point2 := r3.Add(p2, r3.Scale(tc, v2))
	return midpoint(point1, point2)
}

func midpoint(p, q r3.Vec) r3.Vec {
	return r3.Scale(0.5, r3.Add(p, q))
}

// unit returns the zero vector for a zero-length input instead of NaNs.
func unit(v r3.Vec) r3.Vec {
	norm := r3.Norm(v)
	if norm == 0 {
		return r3.Vec{}
	}
	return r3.Scale(1/norm, v)
}
