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

	"gonum.org/v1/gonum/mat"
)

const r2d = 180.0 / math.Pi

// Empirical Cp(lambda, beta) coefficient set (Heier), beta in degrees.
var heierCoeff = [6]float64{0.5176, 116.0, 0.4, 5.0, 21.0, 0.0068}

func heierCP(lambda, betaDeg float64) float64 {
	c := &heierCoeff
	li := 1.0/(lambda+0.08*betaDeg) - 0.035/(betaDeg*betaDeg*betaDeg+1.0)
	return c[0]*(c[1]*li-c[2]*betaDeg-c[3])*math.Exp(-c[4]*li) + c[5]*lambda
}

// NREL5MW returns the built-in reference model: NREL 5MW mechanical
// parameters with the empirical Cp surface sampled on a dense grid. Used
// when no turbine deck is given, and as the fixture for the test suite.
func NREL5MW() *Model {
	// the empirical formula is singular at beta = -1 deg, keep the axis at 0+
	pitch := sampleAxis(0.0, 25.0/r2d, 0.5/r2d) // rad
	tsr := sampleAxis(1.0, 15.0, 0.25)

	cp := mat.NewDense(len(tsr), len(pitch), nil)
	cq := mat.NewDense(len(tsr), len(pitch), nil)
	for i, l := range tsr {
		for j, b := range pitch {
			v := heierCP(l, b*r2d)
			cp.Set(i, j, v)
			cq.Set(i, j, v/l)
		}
	}

	cpSurf, err := NewSurface(pitch, tsr, cp)
	if err != nil {
		panic(err)
	}
	cqSurf, err := NewSurface(pitch, tsr, cq)
	if err != nil {
		panic(err)
	}

	return &Model{
		Label:       "NREL-5MW",
		Inertia:     38677040.613,
		AirDensity:  defaultAirDensity,
		RotorRadius: 63.0,
		GearRatio:   97.0,
		RatedSpeed:  1.26711, // 12.1 rpm
		Vmin:        3.0,
		Vrated:      11.4,
		Vmax:        25.0,
		TSROpt:      8.1,
		CP:          cpSurf,
		CQ:          cqSurf,
	}
}

func sampleAxis(start, stop, step float64) []float64 {
	n := int(math.Ceil((stop-start)/step - 1e-9))
	out := make([]float64, n+1)
	for i := range out {
		out[i] = start + float64(i)*step
	}
	return out
}
