/*****************************************************************************************************************/

//	@package	artrack

/*****************************************************************************************************************/

package cli

/*****************************************************************************************************************/

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/quietloom/artrack/internal/config"
	"github.com/quietloom/artrack/pkg/ellipse"
	"github.com/quietloom/artrack/pkg/keypoint"
	"github.com/quietloom/artrack/pkg/pipeline"
	"github.com/quietloom/artrack/pkg/source"
)

/*****************************************************************************************************************/

var (
	runFrames int
	runDriftX float64
	runDriftY float64
)

/*****************************************************************************************************************/

var runCommand = &cobra.Command{
	Use:   "run",
	Short: "run a synthetic registration-and-track session",
	Long:  "run seeds one augmentation instance from a synthetic grid of keypoints and tracks it across a number of synthetic frames, printing the resulting transform and status after each frame.",
	Run: func(cmd *cobra.Command, args []string) {
		if err := runSession(runFrames, runDriftX, runDriftY); err != nil {
			fmt.Println("Error:", err)
			cmd.Usage()
		}
	},
}

/*****************************************************************************************************************/

func init() {
	runCommand.Flags().IntVarP(&runFrames, "frames", "n", 5, "the number of synthetic frames to track after registration")
	runCommand.Flags().Float64Var(&runDriftX, "drift-x", 0, "per-frame x translation applied to the synthetic scene")
	runCommand.Flags().Float64Var(&runDriftY, "drift-y", 0, "per-frame y translation applied to the synthetic scene")
}

/*****************************************************************************************************************/

// syntheticGrid builds a 3x4 grid of keypoints inside an ellipse, with
// one-hot descriptors along dimensions 0..len-1, mirroring the registration
// scenario in spec.md §8.
func syntheticGrid(e ellipse.Ellipse) []keypoint.Keypoint {
	grid := make([]keypoint.Keypoint, 0, 12)
	dim := 0
	for i := 0; i < 3; i++ {
		for j := 0; j < 4; j++ {
			kp := keypoint.Keypoint{
				X: e.CenterX + e.SemiMajor*0.3*float64(i-1),
				Y: e.CenterY + e.SemiMinor*0.3*float64(j-1),
			}
			kp.Descriptor[dim%keypoint.DescriptorSize] = 1
			grid = append(grid, kp)
			dim++
		}
	}
	return grid
}

/*****************************************************************************************************************/

func runSession(frames int, driftX, driftY float64) error {
	cfg := config.Default()

	e := ellipse.Ellipse{CenterX: 100, CenterY: 100, SemiMajor: 20, SemiMinor: 20}
	registration := syntheticGrid(e)

	fmt.Printf("Registering synthetic patch: ellipse center (%.1f, %.1f), radius %.1f, %d keypoints\n",
		e.CenterX, e.CenterY, e.SemiMajor, len(registration))

	frameSource := source.NewSyntheticFrameSource(cfg.Frame.Width, cfg.Frame.Height)
	detector := &source.ScriptedFeatureDetector{}
	regions := &source.FixedRegionDetector{Fixed: []ellipse.Ellipse{e}}

	p := pipeline.New(frameSource, detector, regions)
	if err := p.Init(cfg); err != nil {
		return err
	}
	if err := p.Start(); err != nil {
		return err
	}
	defer p.Stop()

	detector.Frames = append(detector.Frames, registration)
	if err := p.UpdateFrame(context.Background()); err != nil {
		return err
	}

	id, err := p.NewAugmentation(e)
	if err != nil {
		return fmt.Errorf("registration failed: %w", err)
	}
	fmt.Printf("Registered augmentation id=%d\n", id)

	current := registration
	for f := 1; f <= frames; f++ {
		current = source.Translate(current, driftX, driftY)
		detector.Frames = append(detector.Frames, current)

		if err := p.UpdateFrame(context.Background()); err != nil {
			return err
		}

		status, err := p.GetError(id)
		if err != nil {
			return err
		}
		transform, err := p.GetTransformation(id)
		if err != nil {
			return err
		}
		fmt.Printf("frame %d: status=%v transform=%v\n", f, status, transform)
	}

	return nil
}

/*****************************************************************************************************************/
