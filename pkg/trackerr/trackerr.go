/*****************************************************************************************************************/

//	@package	artrack

/*****************************************************************************************************************/

// Package trackerr defines the sentinel error values shared across the
// pipeline. Per-frame per-instance failures never surface as a returned
// error from UpdateFrame; they are recorded on the instance's own status
// field instead (see pkg/pipeline). These sentinels cover everything else:
// lifecycle misuse, resource exhaustion, and registration failure.
package trackerr

/*****************************************************************************************************************/

import "errors"

/*****************************************************************************************************************/

var (
	// ErrNotInitialized is returned by Pipeline's Start, Stop,
	// NewAugmentation, FreeAugmentation and UpdateFrame when called before
	// Init. GetTransformation, GetError, RegionCandidates and Len do not
	// check for Init.
	ErrNotInitialized = errors.New("artrack: pipeline not initialized")

	// ErrAlreadyInitialized is returned by a second call to Init.
	ErrAlreadyInitialized = errors.New("artrack: pipeline already initialized")

	// ErrReadingConfig is returned when the configuration source could not
	// be parsed.
	ErrReadingConfig = errors.New("artrack: error reading configuration")

	// ErrUnknownID is returned when an augmentation id refers to an empty
	// registry slot.
	ErrUnknownID = errors.New("artrack: unknown augmentation id")

	// ErrNoResources is returned when the registry has no free slot left
	// for a new augmentation.
	ErrNoResources = errors.New("artrack: no free augmentation slots")

	// ErrTooFewKeypoints is returned when registration could not seed the
	// minimum number of reference keypoints from the selected ellipse.
	ErrTooFewKeypoints = errors.New("artrack: too few keypoints in selection to register")

	// ErrInsufficientMatches is returned by affine.SolveAffine when it is
	// given fewer than affine.MinMatches correspondences. The per-frame
	// outcome is not this error: a frame with too few accepted matches, or
	// whose fit fails the skew or scale-ratio validation, is recorded as
	// augmentation.StatusInsufficientMatches on the instance, the same
	// status for both causes.
	ErrInsufficientMatches = errors.New("artrack: insufficient matches for a confident fit")
)

/*****************************************************************************************************************/
