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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"
)

func gridded(t *testing.T, pitch, tsr []float64, f func(p, l float64) float64) *Surface {
	t.Helper()
	vals := mat.NewDense(len(tsr), len(pitch), nil)
	for i, l := range tsr {
		for j, p := range pitch {
			vals.Set(i, j, f(p, l))
		}
	}
	s, err := NewSurface(pitch, tsr, vals)
	require.NoError(t, err)
	return s
}

func planeSurface(t *testing.T) *Surface {
	return gridded(t,
		[]float64{0.0, 0.1, 0.2, 0.3, 0.4},
		[]float64{2.0, 4.0, 6.0, 8.0},
		func(p, l float64) float64 { return 2*p + 3*l },
	)
}

func TestSurface_At_ReproducesPlane(t *testing.T) {
	s := planeSurface(t)

	// off-grid queries; a cubic spline through a plane stays on the plane
	for _, q := range []struct{ p, l float64 }{
		{0.05, 3.0}, {0.17, 5.5}, {0.33, 7.1}, {0.0, 2.0}, {0.4, 8.0},
	} {
		assert.InDelta(t, 2*q.p+3*q.l, s.At(q.p, q.l), 1e-9, "at (%v, %v)", q.p, q.l)
	}
}

func TestSurface_At_SaturatesToDomain(t *testing.T) {
	s := planeSurface(t)

	// queries beyond the axes land on the boundary, no extrapolation
	assert.InDelta(t, s.At(0.0, 2.0), s.At(-1.0, -5.0), 1e-12)
	assert.InDelta(t, s.At(0.4, 8.0), s.At(2.0, 50.0), 1e-12)
	assert.InDelta(t, s.At(0.2, 8.0), s.At(0.2, 9.9), 1e-12)
}

func TestSurface_PitchCurve_MatchesPointQueries(t *testing.T) {
	s := planeSurface(t)

	curve := s.PitchCurve(5.0)
	require.Len(t, curve, len(s.Pitch()))
	for j, p := range s.Pitch() {
		assert.InDelta(t, s.At(p, 5.0), curve[j], 1e-9)
	}
}

func TestSurface_Gradient_OfPlaneIsConstant(t *testing.T) {
	s := planeSurface(t)

	dp, dt, err := s.Gradient()
	require.NoError(t, err)

	for _, q := range []struct{ p, l float64 }{{0.1, 3.0}, {0.25, 6.5}, {0.4, 2.0}} {
		assert.InDelta(t, 2.0, dp.At(q.p, q.l), 1e-9)
		assert.InDelta(t, 3.0, dt.At(q.p, q.l), 1e-9)
	}
}

func TestSurface_Max(t *testing.T) {
	s := planeSurface(t)
	assert.InDelta(t, 2*0.4+3*8.0, s.Max(), 1e-12)
}

func TestNewSurface_RejectsBadInput(t *testing.T) {
	pitch := []float64{0.0, 0.1, 0.2}
	tsr := []float64{2.0, 4.0}

	_, err := NewSurface(pitch, tsr, mat.NewDense(3, 3, nil))
	assert.Error(t, err, "grid/axes mismatch")

	_, err = NewSurface([]float64{0.0, 0.1, 0.1}, tsr, mat.NewDense(2, 3, nil))
	assert.Error(t, err, "non-increasing pitch axis")

	_, err = NewSurface(pitch, []float64{4.0, 2.0}, mat.NewDense(2, 3, nil))
	assert.Error(t, err, "descending tsr axis")

	_, err = NewSurface([]float64{0.0}, tsr, mat.NewDense(2, 1, nil))
	assert.Error(t, err, "single-sample axis")
}
