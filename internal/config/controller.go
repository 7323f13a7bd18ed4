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

package config

const defaultSmootherBias = 1.0

// ControllerConfig is the controller section of the run config. When the
// section is present it replaces the built-in parameter set entirely: the
// four loop-shaping values are required, only the smoother biases default.
type ControllerConfig struct {
	PitchZeta   *float64 `yaml:"pitch_zeta"`
	PitchOmega  *float64 `yaml:"pitch_omega"`
	TorqueZeta  *float64 `yaml:"torque_zeta"`
	TorqueOmega *float64 `yaml:"torque_omega"`
	KssPitch    *float64 `yaml:"kss_pitch"`
	KssTorque   *float64 `yaml:"kss_torque"`
}

func NewControllerConfig() *ControllerConfig {
	cfg := &ControllerConfig{}
	cfg.FillDefaults()
	return cfg
}

func (c *ControllerConfig) FillDefaults() {
	if c.KssPitch == nil {
		c.KssPitch = GetPTR(defaultSmootherBias)
	}
	if c.KssTorque == nil {
		c.KssTorque = GetPTR(defaultSmootherBias)
	}
}

// Complete reports whether all required loop-shaping values are set.
func (c *ControllerConfig) Complete() bool {
	return c.PitchZeta != nil && c.PitchOmega != nil &&
		c.TorqueZeta != nil && c.TorqueOmega != nil
}
