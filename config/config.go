// Package config defines the input file of a lighthouse estimation.
package config

import (
	"fmt"
	"slices"

	"github.com/golang/geo/r3"
	"github.com/pkg/errors"
	"go.uber.org/multierr"
	"go.viam.com/utils"

	"go.viam.com/lighthouse/lighthouse"
	"go.viam.com/lighthouse/logging"
	rutils "go.viam.com/lighthouse/utils"
)

// minSensors is the fewest sensors a pose can be solved from.
const minSensors = 4

// Config describes a set of recorded samples and how to estimate from them.
type Config struct {
	ConfigFilePath string `json:"-"`

	ReferenceSample int           `json:"reference_sample"`
	LogLevel        logging.Level `json:"log_level"`
	// SensorPositions are the sensor positions in the rig frame, in meters. The lighthouse deck
	// is used when empty.
	SensorPositions [][3]float64 `json:"sensor_positions,omitempty"`
	Samples         []Sample     `json:"samples"`
}

// Sample holds the sweep angles of one sample, by base station.
type Sample struct {
	BaseStations map[lighthouse.BaseStationID]Observation `json:"base_stations"`
}

// Observation holds the sweep angles measured by every sensor for one base station. Exactly one of
// LH1 and LH2 is set.
type Observation struct {
	// LH1 holds horizontal and vertical sweep angles.
	LH1 [][2]float64 `json:"lh1,omitempty"`
	// LH2 holds the angles of the two tilted light planes.
	LH2 [][2]float64 `json:"lh2,omitempty"`
}

// Validate returns every problem found in the config.
func (c *Config) Validate(path string) error {
	var allErrs error
	if len(c.Samples) == 0 {
		allErrs = multierr.Append(allErrs, utils.NewConfigValidationFieldRequiredError(path, "samples"))
	} else if c.ReferenceSample < 0 || c.ReferenceSample >= len(c.Samples) {
		allErrs = multierr.Append(allErrs, utils.NewConfigValidationError(path,
			rutils.NewOutOfRangeError("reference_sample", c.ReferenceSample, len(c.Samples))))
	}

	numSensors := len(c.Geometry())
	if numSensors < minSensors {
		allErrs = multierr.Append(allErrs, utils.NewConfigValidationError(path,
			errors.Errorf("need at least %d sensor_positions, have %d", minSensors, numSensors)))
	}

	for i, sample := range c.Samples {
		samplePath := fmt.Sprintf("%s.samples.%d", path, i)
		for _, id := range rutils.SortedKeys(sample.BaseStations) {
			bsPath := fmt.Sprintf("%s.base_stations.%d", samplePath, id)
			if id < 0 {
				allErrs = multierr.Append(allErrs, utils.NewConfigValidationError(bsPath,
					errors.Errorf("base station id %d is negative", id)))
			}
			if err := sample.BaseStations[id].Validate(bsPath, numSensors); err != nil {
				allErrs = multierr.Append(allErrs, err)
			}
		}
	}
	return allErrs
}

// Validate checks that exactly one kind of angles is set, with one pair per sensor.
func (o Observation) Validate(path string, numSensors int) error {
	switch {
	case o.LH1 == nil && o.LH2 == nil:
		return utils.NewConfigValidationFieldRequiredError(path, "lh1")
	case o.LH1 != nil && o.LH2 != nil:
		return utils.NewConfigValidationError(path, errors.New("only one of lh1 and lh2 can be set"))
	}
	if n := len(o.angles()); n != numSensors {
		return utils.NewConfigValidationError(path, errors.Errorf("have %d angle pairs for %d sensors", n, numSensors))
	}
	return nil
}

func (o Observation) angles() [][2]float64 {
	if o.LH2 != nil {
		return o.LH2
	}
	return o.LH1
}

// BsVectors converts the angles to LH1 vectors.
func (o Observation) BsVectors() lighthouse.BsVectors {
	vectors := make(lighthouse.BsVectors, 0, len(o.angles()))
	for _, a := range o.angles() {
		if o.LH2 != nil {
			vectors = append(vectors, lighthouse.NewBsVectorLH2(a[0], a[1]))
		} else {
			vectors = append(vectors, lighthouse.NewBsVectorLH1(a[0], a[1]))
		}
	}
	return vectors
}

// Geometry returns the sensor positions of the rig.
func (c *Config) Geometry() lighthouse.SensorGeometry {
	if len(c.SensorPositions) == 0 {
		return lighthouse.DeckSensorPositions()
	}
	geometry := make(lighthouse.SensorGeometry, 0, len(c.SensorPositions))
	for _, p := range c.SensorPositions {
		geometry = append(geometry, r3.Vector{X: p[0], Y: p[1], Z: p[2]})
	}
	return geometry
}

// PoseSamples converts the samples for estimation.
func (c *Config) PoseSamples() []*lighthouse.PoseSample {
	samples := make([]*lighthouse.PoseSample, 0, len(c.Samples))
	for _, s := range c.Samples {
		sample := &lighthouse.PoseSample{Angles: make(map[lighthouse.BaseStationID]lighthouse.Observation, len(s.BaseStations))}
		for id, obs := range s.BaseStations {
			sample.Angles[id] = obs.BsVectors()
		}
		samples = append(samples, sample)
	}
	return samples
}

// FromPoseSamples builds a config holding the given samples, with angles in LH2 form when lh2 is set.
// Only BsVectors observations can be stored.
func FromPoseSamples(samples []*lighthouse.PoseSample, geometry lighthouse.SensorGeometry, lh2 bool) (*Config, error) {
	cfg := &Config{LogLevel: logging.INFO}
	if !slices.Equal(geometry, lighthouse.DeckSensorPositions()) {
		for _, p := range geometry {
			cfg.SensorPositions = append(cfg.SensorPositions, [3]float64{p.X, p.Y, p.Z})
		}
	}

	for i, s := range samples {
		sample := Sample{BaseStations: map[lighthouse.BaseStationID]Observation{}}
		for _, id := range s.BaseStations() {
			vectors, ok := s.Angles[id].(lighthouse.BsVectors)
			if !ok {
				return nil, errors.Errorf("sample %d base station %d: cannot store observation of type %T", i, id, s.Angles[id])
			}
			var obs Observation
			for _, v := range vectors {
				if lh2 {
					a1, a2 := v.LH2Angles()
					obs.LH2 = append(obs.LH2, [2]float64{a1, a2})
				} else {
					obs.LH1 = append(obs.LH1, [2]float64{v.Horizontal, v.Vertical})
				}
			}
			sample.BaseStations[id] = obs
		}
		cfg.Samples = append(cfg.Samples, sample)
	}
	return cfg, nil
}
