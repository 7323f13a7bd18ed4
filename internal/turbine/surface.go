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
	"github.com/pkg/errors"
	"gonum.org/v1/gonum/interp"
	"gonum.org/v1/gonum/mat"
)

// Surface is an aerodynamic coefficient sampled on a (pitch, tsr) grid,
// with cubic interpolation between samples. Queries outside the sampled
// domain saturate to the nearest axis bound instead of extrapolating.
type Surface struct {
	pitch []float64  // ascending, rad
	tsr   []float64  // ascending
	vals  *mat.Dense // rows follow tsr, columns follow pitch

	rowFit []interp.NaturalCubic // per tsr row, over the pitch axis
	colFit []interp.NaturalCubic // per pitch column, over the tsr axis
}

func NewSurface(pitch, tsr []float64, vals *mat.Dense) (*Surface, error) {
	nr, nc := vals.Dims()
	if nr != len(tsr) || nc != len(pitch) {
		return nil, errors.Errorf(
			"surface grid is %dx%d, axes are %d tsr x %d pitch", nr, nc, len(tsr), len(pitch),
		)
	}
	if len(pitch) < 2 || len(tsr) < 2 {
		return nil, errors.New("surface needs at least two samples per axis")
	}
	if !ascending(pitch) {
		return nil, errors.New("pitch axis must be strictly increasing")
	}
	if !ascending(tsr) {
		return nil, errors.New("tsr axis must be strictly increasing")
	}

	s := &Surface{
		pitch:  pitch,
		tsr:    tsr,
		vals:   vals,
		rowFit: make([]interp.NaturalCubic, nr),
		colFit: make([]interp.NaturalCubic, nc),
	}
	for i := 0; i < nr; i++ {
		if err := s.rowFit[i].Fit(pitch, mat.Row(nil, i, vals)); err != nil {
			return nil, errors.Wrapf(err, "fit of tsr row %d", i)
		}
	}
	for j := 0; j < nc; j++ {
		if err := s.colFit[j].Fit(tsr, mat.Col(nil, j, vals)); err != nil {
			return nil, errors.Wrapf(err, "fit of pitch column %d", j)
		}
	}
	return s, nil
}

func (s *Surface) Pitch() []float64 { return s.pitch }
func (s *Surface) TSR() []float64   { return s.tsr }

// At evaluates the surface at (pitch, tsr). The query is first saturated
// to the sampled domain, then interpolated with a cubic spline along each
// tsr row and a cubic spline across the resulting column.
func (s *Surface) At(pitch, tsr float64) float64 {
	p := clampTo(pitch, s.pitch)
	t := clampTo(tsr, s.tsr)

	col := make([]float64, len(s.tsr))
	for i := range s.rowFit {
		col[i] = s.rowFit[i].Predict(p)
	}
	var c interp.NaturalCubic
	if err := c.Fit(s.tsr, col); err != nil {
		// axes were validated at construction
		panic(err)
	}
	return c.Predict(t)
}

// PitchCurve slices the surface at a fixed tsr, returning the coefficient
// at every pitch sample. The tsr saturates to the sampled domain.
func (s *Surface) PitchCurve(tsr float64) []float64 {
	t := clampTo(tsr, s.tsr)
	out := make([]float64, len(s.pitch))
	for j := range s.colFit {
		out[j] = s.colFit[j].Predict(t)
	}
	return out
}

// Max returns the largest sampled value.
func (s *Surface) Max() float64 {
	max := s.vals.At(0, 0)
	nr, nc := s.vals.Dims()
	for i := 0; i < nr; i++ {
		for j := 0; j < nc; j++ {
			if v := s.vals.At(i, j); v > max {
				max = v
			}
		}
	}
	return max
}

// Gradient differentiates the sampled grid numerically along both axes:
// central differences in the interior, one-sided at the edges, scaled by
// the axis spacing. The results come back as surfaces of their own, so
// the derivatives can be interpolated at arbitrary operating points.
func (s *Surface) Gradient() (dPitch, dTSR *Surface, err error) {
	nr, nc := s.vals.Dims()
	gp := mat.NewDense(nr, nc, nil)
	gt := mat.NewDense(nr, nc, nil)

	for i := 0; i < nr; i++ {
		for j := 0; j < nc; j++ {
			gp.Set(i, j, diff1D(s.pitch, func(k int) float64 { return s.vals.At(i, k) }, j))
			gt.Set(i, j, diff1D(s.tsr, func(k int) float64 { return s.vals.At(k, j) }, i))
		}
	}

	if dPitch, err = NewSurface(s.pitch, s.tsr, gp); err != nil {
		return nil, nil, errors.WithMessage(err, "pitch gradient")
	}
	if dTSR, err = NewSurface(s.pitch, s.tsr, gt); err != nil {
		return nil, nil, errors.WithMessage(err, "tsr gradient")
	}
	return dPitch, dTSR, nil
}

func diff1D(x []float64, f func(int) float64, i int) float64 {
	switch i {
	case 0:
		return (f(1) - f(0)) / (x[1] - x[0])
	case len(x) - 1:
		return (f(i) - f(i-1)) / (x[i] - x[i-1])
	default:
		return (f(i+1) - f(i-1)) / (x[i+1] - x[i-1])
	}
}

func clampTo(v float64, axis []float64) float64 {
	if v < axis[0] {
		return axis[0]
	}
	if last := axis[len(axis)-1]; v > last {
		return last
	}
	return v
}

func ascending(x []float64) bool {
	for i := 1; i < len(x); i++ {
		if x[i] <= x[i-1] {
			return false
		}
	}
	return true
}
