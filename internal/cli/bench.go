/*****************************************************************************************************************/

//	@package	artrack

/*****************************************************************************************************************/

package cli

/*****************************************************************************************************************/

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/quietloom/artrack/internal/config"
	"github.com/quietloom/artrack/pkg/ellipse"
	"github.com/quietloom/artrack/pkg/pipeline"
	"github.com/quietloom/artrack/pkg/source"
)

/*****************************************************************************************************************/

var (
	benchPipelines int
	benchFrames    int
)

/*****************************************************************************************************************/

var benchCommand = &cobra.Command{
	Use:   "bench",
	Short: "benchmark N independent pipelines tracking concurrently",
	Long:  "bench spins up N independent pipelines - each its own single-threaded registry per SPEC_FULL.md §5 - and runs them concurrently via an errgroup, reporting the elapsed time for all of them to finish their synthetic sessions.",
	Run: func(cmd *cobra.Command, args []string) {
		if err := runBench(benchPipelines, benchFrames); err != nil {
			fmt.Println("Error:", err)
			cmd.Usage()
		}
	},
}

/*****************************************************************************************************************/

func init() {
	benchCommand.Flags().IntVarP(&benchPipelines, "pipelines", "p", 4, "the number of independent pipelines to run concurrently")
	benchCommand.Flags().IntVarP(&benchFrames, "frames", "n", 20, "the number of synthetic frames each pipeline tracks")
}

/*****************************************************************************************************************/

// runOnePipeline runs a single pipeline's synthetic registration-and-track
// session to completion. Each call owns its own Pipeline value, its own
// registry, and its own synthetic frame source; nothing is shared across
// goroutines, so the single-threaded-per-registry contract in
// SPEC_FULL.md §5 holds even though bench drives many of these concurrently.
func runOnePipeline(frames int) error {
	cfg := config.Default()
	e := ellipse.Ellipse{CenterX: 100, CenterY: 100, SemiMajor: 20, SemiMinor: 20}
	registration := syntheticGrid(e)

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

	current := registration
	for f := 0; f < frames; f++ {
		current = source.Jitter(current, 0.1)
		detector.Frames = append(detector.Frames, current)
		if err := p.UpdateFrame(context.Background()); err != nil {
			return err
		}
	}

	_, err = p.GetError(id)
	return err
}

/*****************************************************************************************************************/

func runBench(pipelines, frames int) error {
	start := time.Now()

	var g errgroup.Group
	for i := 0; i < pipelines; i++ {
		g.Go(func() error {
			return runOnePipeline(frames)
		})
	}

	if err := g.Wait(); err != nil {
		return fmt.Errorf("bench: a pipeline failed: %w", err)
	}

	elapsed := time.Since(start)
	fmt.Printf("ran %d pipelines x %d frames in %v\n", pipelines, frames, elapsed)
	return nil
}

/*****************************************************************************************************************/
