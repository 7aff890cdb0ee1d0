package constraint

import (
	"math"

	"github.com/tphakala/go-xr-interact/internal/mathutil"
)

// CanonicalAngle maps degrees into (-180, 180].
func CanonicalAngle(deg float64) float64 {
	return mathutil.WrapDegrees(deg)
}

// ClampAngle canonicalises angle and clamps it to [minDeg, maxDeg].
// Applying it twice gives the same result as once.
func ClampAngle(angle, minDeg, maxDeg float64) float64 {
	return mathutil.Clamp(CanonicalAngle(angle), minDeg, maxDeg)
}

// ReflectAngularVelocity removes the part of w that pushes further into a
// limit. A body pinned at its minimum keeps w >= 0 and one pinned at its
// maximum keeps w <= 0.
func ReflectAngularVelocity(w float64, hitMin, hitMax bool) float64 {
	return stopAtLimit(w, hitMin, hitMax)
}

// BounceAngularVelocity reverses the part of w that pushes into a limit,
// scaled by restitution in [0, 1]. Zero restitution matches
// ReflectAngularVelocity.
func BounceAngularVelocity(w float64, hitMin, hitMax bool, restitution float64) float64 {
	restitution = mathutil.Clamp01(restitution)
	if (hitMin && w < 0) || (hitMax && w > 0) {
		return -w * restitution
	}
	return w
}

// angleOfPlanarDirection returns the signed angle in degrees about +Y that
// carries +Z onto the direction (x, z).
func angleOfPlanarDirection(x, z float64) float64 {
	if x == 0 && z == 0 {
		return 0
	}
	return CanonicalAngle(math.Atan2(x, z) * 180 / math.Pi)
}
