/*****************************************************************************************************************/

//	@package	artrack

/*****************************************************************************************************************/

package source

/*****************************************************************************************************************/

import (
	"math/rand"

	"github.com/quietloom/artrack/pkg/keypoint"
)

/*****************************************************************************************************************/

// normalDistributedRandomNumber draws a normally-distributed sample with the
// given mean and standard deviation. It is adapted from the generator the
// source corpus uses to synthesize Gaussian pixel noise for astrometric test
// fixtures; here it drives positional jitter for synthetic keypoint
// scenarios instead of sensor noise.
func normalDistributedRandomNumber(mean, stdDev float64) float64 {
	return rand.NormFloat64()*stdDev + mean
}

/*****************************************************************************************************************/

// Jitter returns a copy of keypoints with each coordinate perturbed by an
// independent normally-distributed offset of the given standard deviation.
// It is used to build a "same scene, slightly noisy re-detection" frame for
// each of the CLI's "bench" subcommand's tracked frames.
func Jitter(keypoints []keypoint.Keypoint, stdDev float64) []keypoint.Keypoint {
	out := make([]keypoint.Keypoint, len(keypoints))
	for i, kp := range keypoints {
		out[i] = kp
		out[i].X += normalDistributedRandomNumber(0, stdDev)
		out[i].Y += normalDistributedRandomNumber(0, stdDev)
	}
	return out
}

/*****************************************************************************************************************/

// Translate returns a copy of keypoints shifted by (dx, dy), the synthetic
// stand-in for a patch undergoing pure translation between frames.
func Translate(keypoints []keypoint.Keypoint, dx, dy float64) []keypoint.Keypoint {
	out := make([]keypoint.Keypoint, len(keypoints))
	for i, kp := range keypoints {
		out[i] = kp
		out[i].X += dx
		out[i].Y += dy
	}
	return out
}

/*****************************************************************************************************************/
