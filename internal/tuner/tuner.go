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
	"math"

	"github.com/antst/rotortune/internal/logger"
	"github.com/antst/rotortune/internal/turbine"

	"github.com/pkg/errors"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/interp"
)

// WindStep is the wind-speed sampling step of the operating schedule, m/s.
const WindStep = 0.1

const cpEqEps = 1e-12

// OperatingPoints is the linearization schedule: one entry per sampled
// wind speed over [Vmin, Vmax). Immutable once Tune returns it.
type OperatingPoints struct {
	V     []float64 // wind speed, m/s
	TSR   []float64 // operating tip-speed ratio
	CPLin []float64 // linearization target Cp, clamped to the achievable range
	CPOp  []float64 // Cp achieved at the solved operating point
	Pitch []float64 // operating pitch, rad
}

// Len returns the number of operating points.
func (op *OperatingPoints) Len() int { return len(op.V) }

type Result struct {
	Turbine  string
	TSRRated float64
	Points   *OperatingPoints
	Gains    *GainSchedule
}

// Tune computes the linearized operating schedule for the turbine and
// derives the scheduled PI gains from it.
//
// Below rated the rotor tracks the optimal tip-speed ratio at the peak of
// the Cp surface. Above rated the rotor speed is pinned, so the tip-speed
// ratio falls off as RatedSpeed*R/v and the target Cp scales down with
// (tsr/tsrRated)^3. At every sample the target Cp is saturated into the
// range achievable by pitching at that tip-speed ratio, then the pitch
// sweep is inverted to find the operating pitch angle.
func Tune(m *turbine.Model, p Params) (*Result, error) {
	if err := m.Validate(); err != nil {
		return nil, errors.WithMessage(err, "turbine model")
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}

	tsrRated := m.RatedSpeed * m.RotorRadius / m.Vrated

	vBR := arange(m.Vmin, m.Vrated, WindStep)
	vAR := arange(m.Vrated, m.Vmax, WindStep)
	nBR := len(vBR)
	n := nBR + len(vAR)

	op := &OperatingPoints{
		V:     append(vBR, vAR...),
		TSR:   make([]float64, n),
		CPLin: make([]float64, n),
		CPOp:  make([]float64, n),
		Pitch: make([]float64, n),
	}

	cpMax := m.CPMax()
	// Cp during rated operation (not the optimum); cut-in pitch assumed 0.
	cpRated := m.CP.At(0, tsrRated)

	for i := 0; i < nBR; i++ {
		op.TSR[i] = m.TSROpt
		op.CPLin[i] = cpMax
	}
	for i := nBR; i < n; i++ {
		tsr := m.RatedSpeed * m.RotorRadius / op.V[i]
		op.TSR[i] = tsr
		r := tsr / tsrRated
		op.CPLin[i] = cpRated * r * r * r
	}

	// Derivative surfaces for the gain derivation.
	dCPdPitch, dCPdTSR, err := m.CP.Gradient()
	if err != nil {
		return nil, errors.WithMessage(err, "cp gradient")
	}

	pitchAxis := m.CP.Pitch()
	for i := 0; i < n; i++ {
		tsr := op.TSR[i]
		curve := m.CP.PitchCurve(tsr)

		lo, hi := floats.Min(curve), floats.Max(curve)
		if op.CPLin[i] > hi || op.CPLin[i] < lo {
			logger.L().Debugf(
				"v=%.1f: target Cp %.4f outside achievable [%.4f, %.4f], saturating",
				op.V[i], op.CPLin[i], lo, hi,
			)
		}
		op.CPLin[i] = math.Max(math.Min(op.CPLin[i], hi), lo)

		pitch, err := invertCurve(pitchAxis, curve, op.CPLin[i])
		if err != nil {
			return nil, errors.WithMessagef(err, "pitch solve at v=%.1f", op.V[i])
		}
		op.Pitch[i] = pitch
		op.CPOp[i] = m.CP.At(pitch, tsr)
	}

	gains, err := deriveGains(m, p, op, dCPdPitch, dCPdTSR, nBR)
	if err != nil {
		return nil, err
	}

	return &Result{
		Turbine:  m.Label,
		TSRRated: tsrRated,
		Points:   op,
		Gains:    gains,
	}, nil
}

// invertCurve solves pitch for a Cp target on a fixed-tsr pitch sweep by
// inverse interpolation: the (cp, pitch) pairs are ordered by cp and the
// pitch is read off the piecewise-linear inverse. The target must already
// lie within the sweep's range.
func invertCurve(pitch, cp []float64, target float64) (float64, error) {
	sorted := append([]float64(nil), cp...)
	idx := make([]int, len(cp))
	floats.Argsort(sorted, idx)

	xs := make([]float64, 0, len(cp))
	ys := make([]float64, 0, len(cp))
	for k, v := range sorted {
		if len(xs) > 0 && v <= xs[len(xs)-1]+cpEqEps {
			continue
		}
		xs = append(xs, v)
		ys = append(ys, pitch[idx[k]])
	}

	if len(xs) < 2 {
		// flat sweep, any pitch achieves the target
		return ys[0], nil
	}

	var inv interp.PiecewiseLinear
	if err := inv.Fit(xs, ys); err != nil {
		return 0, errors.Wrap(err, "inverse cp curve")
	}
	return inv.Predict(target), nil
}

// arange samples [start, stop) at the given step, numpy-style.
func arange(start, stop, step float64) []float64 {
	n := int(math.Ceil((stop - start - 1e-9) / step))
	if n < 0 {
		n = 0
	}
	out := make([]float64, n)
	for i := range out {
		out[i] = start + float64(i)*step
	}
	return out
}
