// Package pose chooses authored hand poses for an interaction and tracks
// which pose animation a hand should be showing.
package pose

import (
	"fmt"
	"math"
	"strings"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/tphakala/go-xr-interact/internal/blend"
	"github.com/tphakala/go-xr-interact/internal/mathutil"
)

// Hand is a set of hands.
type Hand uint8

const (
	HandLeft Hand = 1 << iota
	HandRight

	HandNone Hand = 0
	HandBoth      = HandLeft | HandRight
)

// ParseHand converts "left", "right" or "both" to a Hand.
func ParseHand(s string) (Hand, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "left":
		return HandLeft, nil
	case "right":
		return HandRight, nil
	case "both", "":
		return HandBoth, nil
	default:
		return HandNone, fmt.Errorf("unknown hand %q", s)
	}
}

// String returns the hand set name.
func (h Hand) String() string {
	switch h {
	case HandLeft:
		return "left"
	case HandRight:
		return "right"
	case HandBoth:
		return "both"
	default:
		return "none"
	}
}

// Interaction is a set of interaction kinds a pose applies to.
type Interaction uint8

const (
	InteractionGrab Interaction = 1 << iota
	InteractionHover

	InteractionAll = InteractionGrab | InteractionHover
)

// ParseInteractions converts a list such as ["grab", "hover"] to a set.
// An empty list means all interactions.
func ParseInteractions(names []string) (Interaction, error) {
	if len(names) == 0 {
		return InteractionAll, nil
	}
	var out Interaction
	for _, n := range names {
		switch strings.ToLower(strings.TrimSpace(n)) {
		case "grab", "select":
			out |= InteractionGrab
		case "hover":
			out |= InteractionHover
		default:
			return 0, fmt.Errorf("unknown interaction %q", n)
		}
	}
	return out, nil
}

// Candidate is an authored hand pose attached to an interactable.
type Candidate struct {
	ID           string
	Hands        Hand
	Interactions Interaction

	HasPosition bool
	Position    mgl64.Vec3
	HasRotation bool
	Rotation    mgl64.Quat

	// Radius, when positive, lets the hand slide within a sphere around
	// Position instead of snapping to it. Surface keeps it on the shell.
	Radius  float64
	Surface bool

	// Animation names the pose clip the hand plays while in this pose.
	Animation string
}

// Supports reports whether the pose may be used by hand for interaction kind.
func (c Candidate) Supports(hand Hand, kind Interaction) bool {
	return c.Interactions&kind == kind && c.Hands&hand == hand
}

// Target returns the attach target for this pose, with the pose's local
// position and rotation placed in frame. Poses with a radius give a
// spherical target, others pin the hand.
func (c Candidate) Target(frame mathutil.Pose) blend.Target {
	anchor := frame.Transform(mathutil.NewPose(c.Position, c.Rotation))
	if c.Radius > 0 {
		return blend.Spherical{
			Anchor:            anchor,
			Radius:            c.Radius,
			Surface:           c.Surface,
			ConstrainPosition: c.HasPosition,
			ConstrainRotation: c.HasRotation,
		}
	}
	return blend.Fixed{
		Anchor:            anchor,
		ConstrainPosition: c.HasPosition,
		ConstrainRotation: c.HasRotation,
	}
}

// Select picks the best pose for a hand beginning an interaction of the given
// kind with the interactor at position. Among supporting poses the one with a
// position closest to the interactor wins, earlier poses winning ties; a pose
// without a position is only used when no positioned pose supports the hand.
func Select(candidates []Candidate, hand Hand, kind Interaction, position mgl64.Vec3) (Candidate, bool) {
	best := -1
	bestDist := math.Inf(1)

	for i, c := range candidates {
		if !c.Supports(hand, kind) {
			continue
		}
		d := math.Inf(1)
		if c.HasPosition {
			diff := c.Position.Sub(position)
			d = diff.Dot(diff)
		}
		if best == -1 || d < bestDist {
			best, bestDist = i, d
		}
	}

	if best == -1 {
		return Candidate{}, false
	}
	return candidates[best], true
}
