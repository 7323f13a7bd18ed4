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

package tuner

import (
	"github.com/antst/rotortune/internal/config"

	"github.com/pkg/errors"
)

// Params are the loop-shaping targets the tuning run designs for. They
// come either from the built-in set or, completely, from the controller
// section of the run config; the two paths never mix.
type Params struct {
	PitchZeta   float64 // pitch loop damping ratio
	PitchOmega  float64 // pitch loop natural frequency, rad/s
	TorqueZeta  float64 // torque loop damping ratio
	TorqueOmega float64 // torque loop natural frequency, rad/s
	KssPitch    float64 // setpoint smoother pitch gain bias
	KssTorque   float64 // setpoint smoother torque gain bias
}

// DefaultParams is the hard-coded set for the NREL 5MW reference turbine.
func DefaultParams() Params {
	return Params{
		PitchZeta:   0.7,
		PitchOmega:  0.6,
		TorqueZeta:  0.7,
		TorqueOmega: 0.3,
		KssPitch:    1.0,
		KssTorque:   1.0,
	}
}

// ParamsFromConfig resolves the parameter set for a run. A nil controller
// section selects the built-in defaults; a present one must be complete.
func ParamsFromConfig(c *config.ControllerConfig) (Params, error) {
	if c == nil {
		return DefaultParams(), nil
	}
	if !c.Complete() {
		return Params{}, errors.New(
			"controller config section is incomplete: pitch_zeta, pitch_omega, torque_zeta and torque_omega are all required",
		)
	}
	c.FillDefaults()
	return Params{
		PitchZeta:   *c.PitchZeta,
		PitchOmega:  *c.PitchOmega,
		TorqueZeta:  *c.TorqueZeta,
		TorqueOmega: *c.TorqueOmega,
		KssPitch:    *c.KssPitch,
		KssTorque:   *c.KssTorque,
	}, nil
}

func (p Params) Validate() error {
	for _, c := range []struct {
		name string
		val  float64
	}{
		{"pitch_zeta", p.PitchZeta},
		{"pitch_omega", p.PitchOmega},
		{"torque_zeta", p.TorqueZeta},
		{"torque_omega", p.TorqueOmega},
	} {
		if c.val <= 0 {
			return errors.Errorf("controller %s must be positive, got %v", c.name, c.val)
		}
	}
	return nil
}
