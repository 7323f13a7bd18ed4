/*
 * Copyright (c) 2024. Anton Starikov -- All Rights Reserved
 *
 * This file is part of ROTORTUNE project.
 *
 * ROTORTUNE is free software: you can redistribute it and/or modify
 * it under the terms of the GNU General Public License as the Free Software Foundation,
 * either version 3 of the License, or (at your option) any later version.
 *
 * This program is distributed in the hope that it will be useful,
 * but WITHOUT ANY WARRANTY; without even the implied warranty of
 * MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
 * GNU General Public License for more details.
 *
 * You should have received a copy of the GNU General Public License
 * along with this program.  If not, see <http://www.gnu.org/licenses/>.
 */

package turbine

import (
	"os"

	"github.com/pkg/errors"
	"gonum.org/v1/gonum/mat"
	"gopkg.in/yaml.v3"
)

const defaultAirDensity = 1.225

type deckSurfaces struct {
	Pitch []float64   `yaml:"pitch"` // rad
	TSR   []float64   `yaml:"tsr"`
	CP    [][]float64 `yaml:"cp"` // rows follow tsr
	CT    [][]float64 `yaml:"ct,omitempty"`
	CQ    [][]float64 `yaml:"cq,omitempty"`
}

type deck struct {
	Label       string       `yaml:"label"`
	Inertia     *float64     `yaml:"inertia"`
	AirDensity  *float64     `yaml:"air_density"`
	RotorRadius *float64     `yaml:"rotor_radius"`
	GearRatio   *float64     `yaml:"gear_ratio"`
	RatedSpeed  *float64     `yaml:"rated_speed"`
	CutIn       *float64     `yaml:"cut_in"`
	RatedWind   *float64     `yaml:"rated_wind"`
	CutOut      *float64     `yaml:"cut_out"`
	TSROpt      *float64     `yaml:"tsr_opt"`
	Surfaces    deckSurfaces `yaml:"surfaces"`
}

// Load reads a turbine deck from a YAML file and builds the model,
// deriving the torque-coefficient surface from CP when the deck does not
// carry one.
func Load(path string) (*Model, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "read turbine deck")
	}

	var d deck
	if err := yaml.Unmarshal(data, &d); err != nil {
		return nil, errors.Wrap(err, "unmarshal turbine deck")
	}
	if d.AirDensity == nil {
		ad := defaultAirDensity
		d.AirDensity = &ad
	}

	for _, c := range []struct {
		name string
		val  *float64
	}{
		{"inertia", d.Inertia},
		{"rotor_radius", d.RotorRadius},
		{"gear_ratio", d.GearRatio},
		{"rated_speed", d.RatedSpeed},
		{"cut_in", d.CutIn},
		{"rated_wind", d.RatedWind},
		{"cut_out", d.CutOut},
		{"tsr_opt", d.TSROpt},
	} {
		if c.val == nil {
			return nil, errors.Errorf("turbine deck is missing `%s`", c.name)
		}
	}

	m := &Model{
		Label:       d.Label,
		Inertia:     *d.Inertia,
		AirDensity:  *d.AirDensity,
		RotorRadius: *d.RotorRadius,
		GearRatio:   *d.GearRatio,
		RatedSpeed:  *d.RatedSpeed,
		Vmin:        *d.CutIn,
		Vrated:      *d.RatedWind,
		Vmax:        *d.CutOut,
		TSROpt:      *d.TSROpt,
	}

	s := &d.Surfaces
	if len(s.CP) == 0 {
		return nil, errors.New("turbine deck has no cp surface")
	}
	if m.CP, err = gridSurface(s.Pitch, s.TSR, s.CP); err != nil {
		return nil, errors.WithMessage(err, "cp surface")
	}
	if len(s.CT) > 0 {
		if m.CT, err = gridSurface(s.Pitch, s.TSR, s.CT); err != nil {
			return nil, errors.WithMessage(err, "ct surface")
		}
	}
	switch {
	case len(s.CQ) > 0:
		if m.CQ, err = gridSurface(s.Pitch, s.TSR, s.CQ); err != nil {
			return nil, errors.WithMessage(err, "cq surface")
		}
	default:
		if m.CQ, err = torqueFromPower(s.Pitch, s.TSR, s.CP); err != nil {
			return nil, errors.WithMessage(err, "derived cq surface")
		}
	}

	if err := m.Validate(); err != nil {
		return nil, errors.WithMessage(err, path)
	}
	return m, nil
}

func gridSurface(pitch, tsr []float64, rows [][]float64) (*Surface, error) {
	if len(rows) != len(tsr) {
		return nil, errors.Errorf("grid has %d rows, tsr axis has %d samples", len(rows), len(tsr))
	}
	vals := mat.NewDense(len(tsr), len(pitch), nil)
	for i, row := range rows {
		if len(row) != len(pitch) {
			return nil, errors.Errorf("row %d has %d samples, pitch axis has %d", i, len(row), len(pitch))
		}
		vals.SetRow(i, row)
	}
	return NewSurface(pitch, tsr, vals)
}

// torqueFromPower derives Cq = Cp/tsr rowwise.
func torqueFromPower(pitch, tsr []float64, cp [][]float64) (*Surface, error) {
	if len(cp) != len(tsr) {
		return nil, errors.Errorf("grid has %d rows, tsr axis has %d samples", len(cp), len(tsr))
	}
	rows := make([][]float64, len(cp))
	for i, row := range cp {
		if tsr[i] <= 0 {
			return nil, errors.Errorf("cannot derive cq: tsr sample %d is not positive", i)
		}
		out := make([]float64, len(row))
		for j, v := range row {
			out[j] = v / tsr[i]
		}
		rows[i] = out
	}
	return gridSurface(pitch, tsr, rows)
}
