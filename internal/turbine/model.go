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
	"math"

	"github.com/pkg/errors"
)

// Model is the read-only aerodynamic and mechanical turbine description a
// tuning run works from. CP is required; CT and CQ may be nil when the
// deck does not carry them.
type Model struct {
	Label       string
	Inertia     float64 // total rotor inertia, kg m^2
	AirDensity  float64 // kg/m^3
	RotorRadius float64 // m
	GearRatio   float64
	RatedSpeed  float64 // rated rotor speed, rad/s

	Vmin   float64 // cut-in wind speed, m/s
	Vrated float64 // rated wind speed, m/s
	Vmax   float64 // cut-out wind speed, m/s

	TSROpt float64 // tip-speed ratio tracked below rated

	CP *Surface
	CT *Surface
	CQ *Surface
}

func (m *Model) RotorArea() float64 {
	return math.Pi * m.RotorRadius * m.RotorRadius
}

func (m *Model) CPMax() float64 {
	return m.CP.Max()
}

func (m *Model) Validate() error {
	for _, c := range []struct {
		name string
		val  float64
	}{
		{"inertia", m.Inertia},
		{"air_density", m.AirDensity},
		{"rotor_radius", m.RotorRadius},
		{"gear_ratio", m.GearRatio},
		{"rated_speed", m.RatedSpeed},
		{"tsr_opt", m.TSROpt},
	} {
		if c.val <= 0 {
			return errors.Errorf("turbine %s must be positive, got %v", c.name, c.val)
		}
	}
	if !(m.Vmin < m.Vrated && m.Vrated < m.Vmax) {
		return errors.Errorf(
			"wind envelope must satisfy cut-in < rated < cut-out, got %v/%v/%v",
			m.Vmin, m.Vrated, m.Vmax,
		)
	}
	if m.CP == nil {
		return errors.New("turbine model has no CP surface")
	}
	return nil
}
