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
	"testing"

	"github.com/antst/rotortune/internal/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParamsFromConfig_NilSelectsDefaults(t *testing.T) {
	p, err := ParamsFromConfig(nil)
	require.NoError(t, err)
	assert.Equal(t, DefaultParams(), p)
}

func TestParamsFromConfig_IncompleteSectionFails(t *testing.T) {
	c := &config.ControllerConfig{
		PitchZeta:  config.GetPTR(0.7),
		PitchOmega: config.GetPTR(0.6),
		// torque loop values missing
	}
	_, err := ParamsFromConfig(c)
	assert.Error(t, err)
}

func TestParamsFromConfig_CompleteSectionWins(t *testing.T) {
	c := &config.ControllerConfig{
		PitchZeta:   config.GetPTR(1.0),
		PitchOmega:  config.GetPTR(0.5),
		TorqueZeta:  config.GetPTR(0.8),
		TorqueOmega: config.GetPTR(0.2),
	}

	p, err := ParamsFromConfig(c)
	require.NoError(t, err)
	assert.Equal(t, 1.0, p.PitchZeta)
	assert.Equal(t, 0.5, p.PitchOmega)
	assert.Equal(t, 0.8, p.TorqueZeta)
	assert.Equal(t, 0.2, p.TorqueOmega)
	// smoother biases default when the section leaves them out
	assert.Equal(t, 1.0, p.KssPitch)
	assert.Equal(t, 1.0, p.KssTorque)
}

func TestParams_Validate(t *testing.T) {
	require.NoError(t, DefaultParams().Validate())

	p := DefaultParams()
	p.TorqueZeta = -0.1
	assert.Error(t, p.Validate())
}
