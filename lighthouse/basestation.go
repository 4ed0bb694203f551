// Package lighthouse estimates initial poses of lighthouse base stations and of the observing sensor rig
// from per-sample sweep angle observations.
//
// The estimate is rough. It solves every (sample, base station) pair independently and stitches the
// results into one frame anchored to a reference sample. It is intended as a starting point for a
// later refinement stage.
package lighthouse

import (
	"github.com/golang/geo/r2"
	"github.com/golang/geo/r3"
	"github.com/pkg/errors"
)

// BaseStationID identifies a base station.
type BaseStationID int

// SensorGeometry holds the positions of the rig's light sensors in the rig frame.
type SensorGeometry []r3.Vector

// Lighthouse deck sensor layout, in meters.
const (
	deckSensorDistanceWidth  = 0.015
	deckSensorDistanceLength = 0.03
)

// DeckSensorPositions returns the sensor positions of the four sensor lighthouse deck.
func DeckSensorPositions() SensorGeometry {
	l := deckSensorDistanceLength / 2
	w := deckSensorDistanceWidth / 2
	return SensorGeometry{
		{X: -l, Y: w, Z: 0},
		{X: -l, Y: -w, Z: 0},
		{X: l, Y: w, Z: 0},
		{X: l, Y: -w, Z: 0},
	}
}

// Correspondence pairs a sensor position in the rig frame with its observed projection on the plane
// one meter in front of a base station.
type Correspondence struct {
	Sensor     r3.Vector
	Projection r2.Point
}

// Observation is a calibrated measurement of one base station from one sample.
type Observation interface {
	Correspondences(geometry SensorGeometry) ([]Correspondence, error)
}

// BsVectors holds one sweep angle vector per sensor, in sensor order. It implements Observation.
type BsVectors []BsVector

// Correspondences pairs each sensor of the geometry with the projection of its vector.
func (vs BsVectors) Correspondences(geometry SensorGeometry) ([]Correspondence, error) {
	if len(vs) != len(geometry) {
		return nil, errors.Errorf("have %d angle vectors for %d sensors", len(vs), len(geometry))
	}
	corr := make([]Correspondence, 0, len(vs))
	for i, v := range vs {
		corr = append(corr, Correspondence{Sensor: geometry[i], Projection: v.Projection()})
	}
	return corr, nil
}
