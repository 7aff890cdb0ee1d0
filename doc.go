// Package interact is the engine-independent core of a hand interaction
// toolkit for VR and XR: picking objects up, moving them under constraints
// and throwing them, while a rendered hand blends onto authored grab poses.
//
// # Features
//
//   - Grabbable objects that follow an interactor instantly, kinematically or
//     by velocity tracking, with attach ease-in and optional smoothing
//   - Throw velocity estimated over a recency-weighted time window
//   - Slider, fixed-stop slider and hinged door constraints
//   - Hand visuals that blend onto the best matching hand pose and cancel the
//     interaction when the pose strays too far from the tracked hand
//   - Frame-stepped and deterministic: no goroutines, no wall clock
//
// # Quick Start
//
//	ball, err := interact.NewThrowable("ball", interact.At(0, 1, 0.3))
//	if err != nil {
//	    log.Fatal(err)
//	}
//	cfg := interact.DefaultHandConfig(interact.HandRight)
//	hand, err := interact.NewHand(&cfg)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	hand.Grab(ball, tracked, now)
//	for each frame {
//	    frame := hand.Step(dt, now, tracked)
//	    draw(frame.Visual, ball.Pose())
//	}
//	detach, _ := hand.Release(now)
//
// Released objects are advanced with [Grabbable.Step].
//
// # Frames
//
// Poses are world-space unless noted. Constraint poses are expressed in the
// constrained object's parent frame, given by [Config.Parent]. The frame is
// right-handed and Y-up with +Z forward; angles are in degrees and angular
// velocities in radians per second.
//
// # Scenario Replay
//
// The xrsim command replays YAML or HJSON scenario files: a scripted
// interactor path plus grab, release and hover events against a small world
// of objects. It prints release velocities, final slider values, stop
// indices and door angles, and an optional trace digest that changes
// whenever any simulated pose does:
//
//	xrsim -digest drawer.hjson throw.yaml
//	xrsim -watch -speed 0.5 drawer.hjson
package interact
