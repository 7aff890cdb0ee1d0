package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/tphakala/go-xr-interact/internal/loader"
	"github.com/tphakala/go-xr-interact/internal/scene"
)

var testdata = filepath.Join("..", "..", "internal", "loader", "testdata")

func TestReplayAll_PreservesOrder(t *testing.T) {
	paths := []string{
		filepath.Join(testdata, "throw.yaml"),
		filepath.Join(testdata, "drawer.hjson"),
		filepath.Join(testdata, "throw.yaml"),
	}
	reports, err := replayAll(context.Background(), paths, 2, zaptest.NewLogger(t))
	require.NoError(t, err)
	require.Len(t, reports, 3)

	assert.Equal(t, "throw", reports[0].Scenario)
	assert.Equal(t, "drawer", reports[1].Scenario)
	assert.Equal(t, reports[0].Digest, reports[2].Digest, "replays are deterministic")
	assert.Len(t, reports[0].Releases, 1)
}

func TestReplayAll_FirstErrorWins(t *testing.T) {
	bad := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(bad, []byte("duration: -1\n"), 0o600))

	paths := []string{filepath.Join(testdata, "throw.yaml"), bad}
	_, err := replayAll(context.Background(), paths, 0, zaptest.NewLogger(t))
	require.ErrorIs(t, err, loader.ErrInvalidScenario)
	assert.Contains(t, err.Error(), "bad.yaml")
}

func TestReplayFile_Missing(t *testing.T) {
	_, err := replayFile(context.Background(), "missing.yaml", zaptest.NewLogger(t))
	require.ErrorIs(t, err, os.ErrNotExist)
}

func TestWriteReport(t *testing.T) {
	r := &scene.Report{
		Scenario: "lab",
		Frames:   90,
		Duration: 1,
		Releases: []scene.Release{
			{Object: "ball", Time: 0.5, Velocity: mgl64.Vec3{1.5, 0, 0}},
			{Object: "drawer", Time: 0.8, Cancelled: true},
		},
		Cancellations: 1,
		Skipped: []scene.Skipped{
			{Event: loader.Event{Time: 1, Action: loader.ActionRelease}, Reason: "object not held"},
		},
		Objects: []scene.ObjectState{
			{Name: "ball", Kind: loader.KindThrowable},
			{Name: "drawer", Kind: loader.KindFixedSlider, Value: 0.5, Index: 1},
			{Name: "door", Kind: loader.KindHinge, Value: 42},
		},
		Digest: "0123456789abcdef",
	}

	var buf bytes.Buffer
	require.NoError(t, writeReport(&buf, "lab.yaml", r, false))
	out := buf.String()
	assert.Contains(t, out, "lab (lab.yaml): 90 frames, 1.000s")
	assert.Contains(t, out, "released ball at 0.500s: velocity (1.500 0.000 0.000) m/s")
	assert.Contains(t, out, "dropped drawer")
	assert.Contains(t, out, "drawer: slider at 0.500, stop 1")
	assert.Contains(t, out, "door: door at 42.0°")
	assert.Contains(t, out, "cancellations: 1")
	assert.Contains(t, out, "skipped release")
	assert.NotContains(t, out, "digest")

	buf.Reset()
	require.NoError(t, writeReport(&buf, "lab.yaml", r, true))
	assert.Contains(t, buf.String(), "digest: 0123456789abcdef")
}
