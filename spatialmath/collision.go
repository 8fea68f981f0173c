package spatialmath

import (
	"math"

	"github.com/golang/geo/r2"
	"github.com/pkg/errors"
)

const (
	// segmentEpsilon is the minimum segment length that still defines a
	// direction of motion.
	segmentEpsilon = 1e-10

	// rootEpsilon pads the valid [0,1] root interval so grazing contacts at
	// the segment endpoints still count as collisions.
	rootEpsilon = 1e-9
)

// ErrDegenerateSegment is returned when a segment's endpoints are too close
// together to define a direction. Passing such a segment indicates a caller
// bug, not an environmental failure.
var ErrDegenerateSegment = errors.New("degenerate segment: endpoints are closer than 1e-10")

// CollisionFreeDistSegmentCircRobot computes whether a circular robot of the
// given radius, moving in a straight line from pStart to pEnd, comes within
// its radius of the point obstacle, and if so at what distance along the
// segment the first contact happens.
//
// If the obstacle is already within the robot disc at pStart the collision
// distance is zero. colDist is meaningful only when collides is true.
func CollisionFreeDistSegmentCircRobot(
	pStart, pEnd r2.Point,
	robotRadius float64,
	obstacle r2.Point,
) (collides bool, colDist float64, err error) {
	seg := pEnd.Sub(pStart)
	segLen := seg.Norm()
	if segLen < segmentEpsilon {
		return false, 0, errors.Wrapf(ErrDegenerateSegment, "pStart=%v pEnd=%v", pStart, pEnd)
	}

	rel := obstacle.Sub(pStart)
	if rel.Norm() <= robotRadius {
		// Already in contact before any motion.
		return true, 0, nil
	}

	// If the obstacle clears the infinite line by more than the radius it
	// clears every point of the segment, so skip the quadratic.
	if math.Abs(seg.Cross(rel))/segLen > robotRadius {
		return false, 0, nil
	}

	// |pStart + t*seg - obstacle|^2 = radius^2, quadratic in t.
	a := seg.Dot(seg)
	b := -2 * seg.Dot(rel)
	c := rel.Dot(rel) - robotRadius*robotRadius

	disc := b*b - 4*a*c
	if disc < 0 {
		return false, 0, nil
	}

	t := (-b - math.Sqrt(disc)) / (2 * a)
	if t < -rootEpsilon || t > 1+rootEpsilon {
		// First contact happens before the segment start or past its end.
		return false, 0, nil
	}
	return true, math.Min(math.Max(t, 0), 1) * segLen, nil
}

// DistPointToSegment returns the distance from point p to the closest point
// of the segment between segA and segB. Degenerate segments collapse to
// point-to-point distance.
func DistPointToSegment(p, segA, segB r2.Point) float64 {
	seg := segB.Sub(segA)
	segLen2 := seg.Dot(seg)
	if segLen2 < segmentEpsilon*segmentEpsilon {
		return p.Sub(segA).Norm()
	}
	t := p.Sub(segA).Dot(seg) / segLen2
	t = math.Min(math.Max(t, 0), 1)
	return p.Sub(segA.Add(seg.Mul(t))).Norm()
}
