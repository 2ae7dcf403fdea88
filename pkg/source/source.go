/*****************************************************************************************************************/

//	@package	artrack

/*****************************************************************************************************************/

// Package source defines the external collaborator contracts pkg/pipeline
// depends on - a frame source, a feature detector, and a region detector -
// none of which are implemented by this module's core. They are interfaces
// only; the rest of this package supplies synthetic, in-memory stand-ins
// used by the CLI's "run" and "bench" subcommands and by tests that need a
// detector without a real camera or SIFT/MSER implementation behind it.
package source

/*****************************************************************************************************************/

import (
	"context"
	"fmt"

	"github.com/quietloom/artrack/pkg/ellipse"
	"github.com/quietloom/artrack/pkg/keypoint"
)

/*****************************************************************************************************************/

// Status reports whether a FrameSource update produced a new frame.
type Status int

/*****************************************************************************************************************/

const (
	// StatusNoChange means FrameBuffer still holds the previously returned
	// frame; the caller should skip the update cycle.
	StatusNoChange Status = iota

	// StatusNewFrame means a new frame is available in FrameBuffer.
	StatusNewFrame
)

/*****************************************************************************************************************/

// FrameSource produces the raw RGB frame buffer the pipeline feeds to its
// feature and region detectors. Implementations own their own capture
// device or decoder; the pipeline never inspects the buffer's encoding
// beyond its documented width*height*3 byte layout.
type FrameSource interface {
	Start() error
	Stop() error

	// Update blocks until the next frame is ready or ctx is done.
	Update(ctx context.Context) (Status, error)

	// FrameBuffer returns width*height*3 bytes, interleaved R, G, B.
	FrameBuffer() []byte
}

/*****************************************************************************************************************/

// FeatureDetector extracts keypoints from a raw frame buffer. The returned
// slice is only valid until the next call; the pipeline copies every
// keypoint it retains (see keypoint.Keypoint.Clone).
type FeatureDetector interface {
	Keypoints(frame []byte) []keypoint.Keypoint
}

/*****************************************************************************************************************/

// RegionDetector extracts candidate planar regions from a raw frame buffer,
// each a fitted ellipse suitable for NewAugmentation.
type RegionDetector interface {
	Regions(frame []byte) []ellipse.Ellipse
}

/*****************************************************************************************************************/

// SyntheticFrameSource is a FrameSource stand-in that never touches a real
// capture device: it hands back a fixed-size, zeroed frame buffer on every
// call and always reports a new frame. It exists so the CLI's "run" and
// "bench" subcommands, and package tests, can drive a pipeline end-to-end
// without camera hardware.
type SyntheticFrameSource struct {
	Width, Height int

	buffer  []byte
	started bool
}

/*****************************************************************************************************************/

// NewSyntheticFrameSource allocates a source producing width*height*3 zeroed
// bytes per frame.
func NewSyntheticFrameSource(width, height int) *SyntheticFrameSource {
	return &SyntheticFrameSource{
		Width:  width,
		Height: height,
		buffer: make([]byte, width*height*3),
	}
}

/*****************************************************************************************************************/

func (s *SyntheticFrameSource) Start() error {
	s.started = true
	return nil
}

/*****************************************************************************************************************/

func (s *SyntheticFrameSource) Stop() error {
	s.started = false
	return nil
}

/*****************************************************************************************************************/

func (s *SyntheticFrameSource) Update(ctx context.Context) (Status, error) {
	if !s.started {
		return StatusNoChange, fmt.Errorf("source: frame source not started")
	}
	select {
	case <-ctx.Done():
		return StatusNoChange, ctx.Err()
	default:
		return StatusNewFrame, nil
	}
}

/*****************************************************************************************************************/

func (s *SyntheticFrameSource) FrameBuffer() []byte {
	return s.buffer
}

/*****************************************************************************************************************/

// ScriptedFeatureDetector replays a fixed sequence of keypoint sets, one per
// call to Keypoints, holding the last one once the script is exhausted. It
// is the detector stand-in used to drive a deterministic, scripted scenario
// (e.g. a registration frame followed by a pure-translation frame) through
// a real pipeline in tests and the CLI's "run" subcommand.
type ScriptedFeatureDetector struct {
	Frames [][]keypoint.Keypoint

	cursor int
}

/*****************************************************************************************************************/

func (d *ScriptedFeatureDetector) Keypoints(frame []byte) []keypoint.Keypoint {
	if len(d.Frames) == 0 {
		return nil
	}
	if d.cursor >= len(d.Frames) {
		return d.Frames[len(d.Frames)-1]
	}
	out := d.Frames[d.cursor]
	d.cursor++
	return out
}

/*****************************************************************************************************************/

// FixedRegionDetector always returns the same set of regions, regardless of
// frame content - the synthetic stand-in for a region detector.
type FixedRegionDetector struct {
	Fixed []ellipse.Ellipse
}

/*****************************************************************************************************************/

func (d *FixedRegionDetector) Regions(frame []byte) []ellipse.Ellipse {
	return d.Fixed
}

/*****************************************************************************************************************/
