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

	"github.com/antst/rotortune/internal/turbine"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGainSchedule_CoversAboveRatedRange(t *testing.T) {
	m, res := tunedFixture(t)

	g := res.Gains
	require.NotNil(t, g)

	nAR := 0
	for _, v := range res.Points.V {
		if v >= m.Vrated {
			nAR++
		}
	}
	require.Len(t, g.V, nAR)
	require.Len(t, g.PitchKp, nAR)
	require.Len(t, g.PitchKi, nAR)
	assert.InDelta(t, m.Vrated, g.V[0], 1e-9)
}

func TestGainSchedule_PitchGainsNegative(t *testing.T) {
	_, res := tunedFixture(t)

	// dCp/dpitch < 0 on the feathering branch, so the designed gains are
	// negative; the empirical surface misbehaves near cut-out, stay below
	g := res.Gains
	for k, v := range g.V {
		if v > 20.0 {
			break
		}
		assert.Less(t, g.PitchKp[k], 0.0, "Kp at v=%.1f", v)
		assert.Less(t, g.PitchKi[k], 0.0, "Ki at v=%.1f", v)
	}
}

func TestGainSchedule_TorqueGainsNegative(t *testing.T) {
	_, res := tunedFixture(t)

	assert.Less(t, res.Gains.TorqueKp, 0.0)
	assert.Less(t, res.Gains.TorqueKi, 0.0)
}

func TestGainSchedule_CarriesSmootherBiases(t *testing.T) {
	m := turbine.NREL5MW()
	p := DefaultParams()
	p.KssPitch = 0.8
	p.KssTorque = 1.2

	res, err := Tune(m, p)
	require.NoError(t, err)
	assert.Equal(t, 0.8, res.Gains.KssPitch)
	assert.Equal(t, 1.2, res.Gains.KssTorque)
}
