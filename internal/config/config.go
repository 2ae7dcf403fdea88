/*****************************************************************************************************************/

//	@package	artrack

/*****************************************************************************************************************/

// Package config loads the pipeline's configuration from an optional YAML
// file, filling in the documented defaults for any key - or the whole file -
// that is absent. Nothing in pkg/pipeline or the tracker core reads the
// filesystem directly; they only ever see a fully-populated *Config.
package config

/*****************************************************************************************************************/

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/quietloom/artrack/pkg/trackerr"
)

/*****************************************************************************************************************/

// Frame holds the fixed dimensions of the frame buffer the pipeline expects
// from its FrameSource.
type Frame struct {
	Width  int `yaml:"width"`
	Height int `yaml:"height"`
}

/*****************************************************************************************************************/

// RegionDetector configures the external region detector collaborator
// (e.g. an MSER-style blob extractor). The pipeline passes these values
// through; it never reads them itself.
type RegionDetector struct {
	Delta        int     `yaml:"delta"`
	MinArea      float64 `yaml:"min_area"`
	MaxArea      float64 `yaml:"max_area"`
	MinDiversity float64 `yaml:"min_diversity"`
	MaxVariation float64 `yaml:"max_variation"`
}

/*****************************************************************************************************************/

// FeatureDetector configures the external feature detector collaborator
// (e.g. a SIFT-style descriptor extractor). Octaves of -1 means "as many
// octaves as the image pyramid supports".
type FeatureDetector struct {
	Octaves       int     `yaml:"octaves"`
	Levels        int     `yaml:"levels"`
	FirstOctave   int     `yaml:"first_octave"`
	PeakThreshold float64 `yaml:"peak_threshold"`
	EdgeThreshold float64 `yaml:"edge_threshold"`
}

/*****************************************************************************************************************/

// Config is the fully-resolved configuration consumed by pkg/pipeline.Init.
type Config struct {
	Frame           Frame           `yaml:"frame"`
	RegionDetector  RegionDetector  `yaml:"region_detector"`
	FeatureDetector FeatureDetector `yaml:"feature_detector"`
}

/*****************************************************************************************************************/

// Default returns the documented default configuration, used whenever no
// configuration file is supplied.
func Default() *Config {
	return &Config{
		Frame: Frame{
			Width:  320,
			Height: 240,
		},
		RegionDetector: RegionDetector{
			Delta:        6,
			MinArea:      0.005,
			MaxArea:      0.4,
			MinDiversity: 0.7,
			MaxVariation: 0.2,
		},
		FeatureDetector: FeatureDetector{
			Octaves:       -1,
			Levels:        3,
			FirstOctave:   0,
			PeakThreshold: 0,
			EdgeThreshold: 100,
		},
	}
}

/*****************************************************************************************************************/

// Load reads path as YAML and overlays it onto Default(), so a file that
// specifies only a handful of keys (or none at all) still produces a
// complete configuration. It fails with ErrReadingConfig if path exists but
// cannot be parsed.
func Load(path string) (*Config, error) {
	cfg := Default()

	bytes, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, fmt.Errorf("config: failed to read %s: %w", path, trackerr.ErrReadingConfig)
	}

	if err := yaml.Unmarshal(bytes, cfg); err != nil {
		return nil, fmt.Errorf("config: failed to parse %s: %w", path, trackerr.ErrReadingConfig)
	}

	return cfg, nil
}

/*****************************************************************************************************************/
