/*****************************************************************************************************************/

//	@package	artrack

/*****************************************************************************************************************/

// Package pipeline wires configuration, the external collaborators
// (pkg/source), the augmentation registry, and the per-frame tracker core
// into the single process-wide facade an operator or CLI talks to.
//
// Pipeline owns no tracked state itself beyond the registry: every
// augmentation instance's reference set, transform, and status live on the
// *augmentation.Instance the registry holds, never here. Per SPEC_FULL.md
// §6/§12, each UpdateFrame call builds one immutable snapshot of the
// current frame's detector output and fans it out to every live instance in
// ascending id order, replacing the source library's pair of
// "calculated this frame" boolean flags with a single struct that is either
// present (this frame's snapshot) or not yet taken.
package pipeline

/*****************************************************************************************************************/

import (
	"context"
	"fmt"

	"github.com/quietloom/artrack/internal/augmentation"
	"github.com/quietloom/artrack/internal/config"
	"github.com/quietloom/artrack/internal/tracker"
	"github.com/quietloom/artrack/pkg/ellipse"
	"github.com/quietloom/artrack/pkg/keypoint"
	"github.com/quietloom/artrack/pkg/registry"
	"github.com/quietloom/artrack/pkg/source"
	"github.com/quietloom/artrack/pkg/trackerr"
)

/*****************************************************************************************************************/

// ID identifies a live augmentation instance. It is a re-export of
// registry.ID so callers of this package never need to import pkg/registry
// directly.
type ID = registry.ID

/*****************************************************************************************************************/

// frameSnapshot is the immutable per-frame detector output every live
// instance is updated against. It is rebuilt once per UpdateFrame call and
// never mutated afterward.
type frameSnapshot struct {
	keypoints []keypoint.Keypoint
}

/*****************************************************************************************************************/

// Pipeline is the process-wide facade: one configuration, one set of
// external collaborators, one registry of augmentation instances.
//
// A Pipeline is not safe for concurrent use; callers that want several
// independent pipelines running concurrently (see cmd/artrack bench) must
// give each its own Pipeline value.
type Pipeline struct {
	cfg *config.Config

	frames   source.FrameSource
	features source.FeatureDetector
	regions  source.RegionDetector

	registry *registry.Registry[augmentation.Instance]

	initialized bool
	running     bool

	snapshot frameSnapshot
}

/*****************************************************************************************************************/

// New constructs an uninitialized Pipeline wired to the given external
// collaborators. Init must be called before any other method.
func New(frames source.FrameSource, features source.FeatureDetector, regions source.RegionDetector) *Pipeline {
	return &Pipeline{
		frames:   frames,
		features: features,
		regions:  regions,
		registry: registry.New[augmentation.Instance](),
	}
}

/*****************************************************************************************************************/

// Init stores cfg and marks the pipeline ready for Start. It fails with
// ErrAlreadyInitialized on a second call.
func (p *Pipeline) Init(cfg *config.Config) error {
	if p.initialized {
		return trackerr.ErrAlreadyInitialized
	}
	p.cfg = cfg
	p.initialized = true
	return nil
}

/*****************************************************************************************************************/

// Start starts the underlying frame source. It fails with
// ErrNotInitialized if Init has not been called.
func (p *Pipeline) Start() error {
	if !p.initialized {
		return trackerr.ErrNotInitialized
	}
	if err := p.frames.Start(); err != nil {
		return fmt.Errorf("pipeline: failed to start frame source: %w", err)
	}
	p.running = true
	return nil
}

/*****************************************************************************************************************/

// Stop stops the underlying frame source.
func (p *Pipeline) Stop() error {
	if !p.initialized {
		return trackerr.ErrNotInitialized
	}
	p.running = false
	if err := p.frames.Stop(); err != nil {
		return fmt.Errorf("pipeline: failed to stop frame source: %w", err)
	}
	return nil
}

/*****************************************************************************************************************/

// StartAugmentation is an alias kept for symmetry with StopAugmentation; it
// forwards to NewAugmentation. SPEC_FULL.md's external contract names both
// verbs, and some callers prefer the Start/Stop pairing over
// New/Free.
func (p *Pipeline) StartAugmentation(e ellipse.Ellipse) (ID, error) {
	return p.NewAugmentation(e)
}

/*****************************************************************************************************************/

// StopAugmentation is an alias for FreeAugmentation.
func (p *Pipeline) StopAugmentation(id ID) error {
	return p.FreeAugmentation(id)
}

/*****************************************************************************************************************/

// NewAugmentation registers a new tracked patch from e against the most
// recently captured frame's keypoints, failing with ErrTooFewKeypoints if
// fewer than augmentation.MinRegistrationKeypoints fall inside e, or
// ErrNoResources if the registry is full.
//
// UpdateFrame must have been called at least once before this, so that a
// frame snapshot exists to seed the reference set from; calling it before
// any frame has been captured registers against an empty keypoint set and
// always fails with ErrTooFewKeypoints.
func (p *Pipeline) NewAugmentation(e ellipse.Ellipse) (ID, error) {
	if !p.initialized {
		return registry.NoID, trackerr.ErrNotInitialized
	}

	inst, err := augmentation.New(e, p.snapshot.keypoints)
	if err != nil {
		return registry.NoID, err
	}

	id, err := p.registry.Create(*inst)
	if err != nil {
		return registry.NoID, err
	}

	return id, nil
}

/*****************************************************************************************************************/

// FreeAugmentation destroys a previously registered augmentation instance.
func (p *Pipeline) FreeAugmentation(id ID) error {
	if !p.initialized {
		return trackerr.ErrNotInitialized
	}
	return p.registry.Destroy(id)
}

/*****************************************************************************************************************/

// UpdateFrame pulls the next frame from the frame source, runs the feature
// detector over it, takes a fresh immutable snapshot of the resulting
// keypoints, and runs the tracker core against every live instance in
// ascending id order against that one snapshot. The region detector is not
// run here; RegionCandidates runs it on demand. Per-instance failures never
// surface here; they are recorded on each instance's own status (see
// GetError). UpdateFrame only returns an error when the pipeline is not
// initialized or not running, or when the frame source fails.
func (p *Pipeline) UpdateFrame(ctx context.Context) error {
	if !p.initialized {
		return trackerr.ErrNotInitialized
	}
	if !p.running {
		return fmt.Errorf("pipeline: not running: %w", trackerr.ErrNotInitialized)
	}

	status, err := p.frames.Update(ctx)
	if err != nil {
		return fmt.Errorf("pipeline: frame source update failed: %w", err)
	}
	if status == source.StatusNoChange {
		return nil
	}

	buf := p.frames.FrameBuffer()
	detected := p.features.Keypoints(buf)

	keypoints := make([]keypoint.Keypoint, len(detected))
	for i, kp := range detected {
		keypoints[i] = kp.Clone()
	}
	p.snapshot = frameSnapshot{keypoints: keypoints}

	p.registry.ForEach(func(id registry.ID, inst *augmentation.Instance) {
		tracker.UpdateInstance(inst, p.snapshot.keypoints)
	})

	return nil
}

/*****************************************************************************************************************/

// RegionCandidates runs the configured region detector over the most
// recently captured frame, returning candidate ellipses an operator (or the
// CLI's registration flow) can pass to NewAugmentation.
func (p *Pipeline) RegionCandidates() []ellipse.Ellipse {
	if p.regions == nil {
		return nil
	}
	return p.regions.Regions(p.frames.FrameBuffer())
}

/*****************************************************************************************************************/

// GetTransformation returns id's current transform, lifted into a
// column-major 4x4 matrix suitable for a 3-D rendering pipeline (z held at
// identity).
func (p *Pipeline) GetTransformation(id ID) ([16]float64, error) {
	inst, err := p.registry.Get(id)
	if err != nil {
		return [16]float64{}, err
	}
	return inst.CurrentTransform().ToColumnMajor4x4(), nil
}

/*****************************************************************************************************************/

// GetError returns id's most recently recorded status.
func (p *Pipeline) GetError(id ID) (augmentation.Status, error) {
	inst, err := p.registry.Get(id)
	if err != nil {
		return 0, err
	}
	return inst.LastStatus(), nil
}

/*****************************************************************************************************************/

// Len returns the number of currently registered augmentation instances.
func (p *Pipeline) Len() int {
	return p.registry.Len()
}

/*****************************************************************************************************************/
