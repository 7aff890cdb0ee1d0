package mathutil

// SmoothDamp moves current toward target with a critically damped spring
// that never overshoots. velocity carries the spring state between calls.
//
// smoothTime is roughly the time to reach the target. A non-positive
// smoothTime snaps to the target and zeroes velocity; a non-positive dt
// returns current without touching velocity. maxSpeed <= 0 means unbounded.
func SmoothDamp(current, target float64, velocity *float64, smoothTime, maxSpeed, dt float64) float64 {
	var scratch float64
	if velocity == nil {
		velocity = &scratch
	}
	if dt <= 0 || !IsFinite(dt) {
		return current
	}
	if smoothTime <= 0 {
		*velocity = 0
		return target
	}
	if maxSpeed <= 0 {
		maxSpeed = unboundedSpeed
	}

	omega := smoothDampOmegaFactor / smoothTime
	x := omega * dt
	decay := 1 / (1 + x + smoothDampCoeff2*x*x + smoothDampCoeff3*x*x*x)

	originalTarget := target
	maxChange := maxSpeed * smoothTime
	change := Clamp(current-target, -maxChange, maxChange)
	target = current - change

	temp := (*velocity + omega*change) * dt
	*velocity = (*velocity - omega*temp) * decay
	out := target + (change+temp)*decay

	// Never pass the original target.
	if (originalTarget-current > 0) == (out > originalTarget) {
		out = originalTarget
		*velocity = 0
	}
	if !IsFinite(out) {
		*velocity = 0
		return originalTarget
	}
	return out
}

// SmoothDampAngle is SmoothDamp over degrees, following the shortest arc.
func SmoothDampAngle(current, target float64, velocity *float64, smoothTime, maxSpeed, dt float64) float64 {
	target = current + DeltaAngle(current, target)
	return SmoothDamp(current, target, velocity, smoothTime, maxSpeed, dt)
}
