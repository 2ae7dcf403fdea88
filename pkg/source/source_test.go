/*****************************************************************************************************************/

//	@package	artrack

/*****************************************************************************************************************/

package source

/*****************************************************************************************************************/

import (
	"context"
	"testing"

	"github.com/quietloom/artrack/pkg/ellipse"
	"github.com/quietloom/artrack/pkg/keypoint"
)

/*****************************************************************************************************************/

func TestSyntheticFrameSourceRequiresStart(t *testing.T) {
	s := NewSyntheticFrameSource(4, 4)

	_, err := s.Update(context.Background())
	if err == nil {
		t.Fatalf("expected an error updating a frame source that has not been started")
	}

	if err := s.Start(); err != nil {
		t.Fatalf("unexpected error starting: %v", err)
	}

	status, err := s.Update(context.Background())
	if err != nil {
		t.Fatalf("unexpected error updating: %v", err)
	}
	if status != StatusNewFrame {
		t.Fatalf("expected StatusNewFrame, got %v", status)
	}

	if len(s.FrameBuffer()) != 4*4*3 {
		t.Fatalf("expected a width*height*3 buffer, got %d bytes", len(s.FrameBuffer()))
	}
}

/*****************************************************************************************************************/

func TestSyntheticFrameSourceRespectsContextCancellation(t *testing.T) {
	s := NewSyntheticFrameSource(2, 2)
	s.Start()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	status, err := s.Update(ctx)
	if err == nil {
		t.Fatalf("expected an error from a cancelled context")
	}
	if status != StatusNoChange {
		t.Fatalf("expected StatusNoChange on cancellation, got %v", status)
	}
}

/*****************************************************************************************************************/

func TestScriptedFeatureDetectorHoldsLastFrame(t *testing.T) {
	first := []keypoint.Keypoint{{X: 1, Y: 1}}
	second := []keypoint.Keypoint{{X: 2, Y: 2}}

	d := &ScriptedFeatureDetector{Frames: [][]keypoint.Keypoint{first, second}}

	got := d.Keypoints(nil)
	if len(got) != 1 || got[0].X != 1 {
		t.Fatalf("expected the first scripted frame, got %v", got)
	}

	got = d.Keypoints(nil)
	if len(got) != 1 || got[0].X != 2 {
		t.Fatalf("expected the second scripted frame, got %v", got)
	}

	got = d.Keypoints(nil)
	if len(got) != 1 || got[0].X != 2 {
		t.Fatalf("expected the last scripted frame to be held once exhausted, got %v", got)
	}
}

/*****************************************************************************************************************/

func TestScriptedFeatureDetectorWithNoFrames(t *testing.T) {
	d := &ScriptedFeatureDetector{}
	if got := d.Keypoints(nil); got != nil {
		t.Fatalf("expected nil keypoints with an empty script, got %v", got)
	}
}

/*****************************************************************************************************************/

func TestFixedRegionDetectorAlwaysReturnsTheSameRegions(t *testing.T) {
	fixed := []ellipse.Ellipse{{CenterX: 1, CenterY: 2, SemiMajor: 3, SemiMinor: 4}}
	d := &FixedRegionDetector{Fixed: fixed}

	if got := d.Regions([]byte{1, 2, 3}); len(got) != 1 || got[0] != fixed[0] {
		t.Fatalf("expected the fixed region set back, got %v", got)
	}
	if got := d.Regions(nil); len(got) != 1 || got[0] != fixed[0] {
		t.Fatalf("expected the fixed region set back regardless of frame content, got %v", got)
	}
}

/*****************************************************************************************************************/

func TestTranslateShiftsEveryKeypointByTheSameOffset(t *testing.T) {
	in := []keypoint.Keypoint{{X: 1, Y: 1}, {X: -3, Y: 4}}
	out := Translate(in, 10, -2)

	if out[0].X != 11 || out[0].Y != -1 {
		t.Fatalf("expected (11, -1), got (%f, %f)", out[0].X, out[0].Y)
	}
	if out[1].X != 7 || out[1].Y != 2 {
		t.Fatalf("expected (7, 2), got (%f, %f)", out[1].X, out[1].Y)
	}
	if in[0].X != 1 {
		t.Fatalf("expected Translate not to mutate its input")
	}
}

/*****************************************************************************************************************/

func TestJitterPerturbsEveryKeypointAndLeavesInputUntouched(t *testing.T) {
	in := []keypoint.Keypoint{{X: 5, Y: 5}, {X: 5, Y: 5}, {X: 5, Y: 5}}
	out := Jitter(in, 2.0)

	if len(out) != len(in) {
		t.Fatalf("expected Jitter to preserve length")
	}

	allUnchanged := true
	for i := range out {
		if out[i].X != 5 || out[i].Y != 5 {
			allUnchanged = false
		}
	}
	if allUnchanged {
		t.Fatalf("expected at least one jittered coordinate to differ from the input across %d samples", len(in))
	}

	if in[0].X != 5 || in[0].Y != 5 {
		t.Fatalf("expected Jitter not to mutate its input")
	}
}

/*****************************************************************************************************************/
