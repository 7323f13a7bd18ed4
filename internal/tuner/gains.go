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
	"github.com/antst/rotortune/internal/turbine"

	"github.com/pkg/errors"
)

// GainSchedule holds the PI gains designed from the linearized plant at
// each above-rated operating point (pitch loop) and at rated (torque
// loop). Pitch gains are scheduled over wind speed; the torque loop gets
// a single gain pair.
type GainSchedule struct {
	V       []float64 // above-rated wind speeds, m/s
	PitchKp []float64 // rad per (rad/s), negative
	PitchKi []float64 // rad per rad, negative

	TorqueKp float64 // Nm per (rad/s)
	TorqueKi float64 // Nm per rad

	KssPitch  float64 // setpoint smoother biases, carried for downstream use
	KssTorque float64
}

// deriveGains evaluates the linearized rotor dynamics at every operating
// point and shapes the closed loop to the requested damping ratio and
// natural frequency:
//
//	dτ/dβ = Ng/2 ρ Ar R (1/λ) dCp/dβ v²
//	dτ/dλ = Ng/2 ρ Ar R v² (1/λ²) (λ dCp/dλ − Cp)
//	dλ/dΩ = R / (v Ng)
//	A  = (dτ/dλ · dλ/dΩ) / J      plant pole
//	Bβ = (dτ/dβ) / J              pitch input gain
//	Bτ = −Ng² / J                 torque input gain
//	Kp = (2ζω + A)/B,  Ki = ω²/B
//
// iRated is the index of the first above-rated sample.
func deriveGains(
	m *turbine.Model, p Params, op *OperatingPoints,
	dCPdPitch, dCPdTSR *turbine.Surface, iRated int,
) (*GainSchedule, error) {
	if iRated >= op.Len() {
		return nil, errors.New("no above-rated operating points to schedule gains over")
	}

	ar := m.RotorArea()
	rho := m.AirDensity
	ng := m.GearRatio
	j := m.Inertia
	r := m.RotorRadius

	pole := func(i int) float64 {
		v, tsr := op.V[i], op.TSR[i]
		dCpdL := dCPdTSR.At(op.Pitch[i], tsr)
		dtdl := ng / 2 * rho * ar * r * v * v * (1 / (tsr * tsr)) * (dCpdL*tsr - op.CPOp[i])
		dldo := r / v / ng
		return dtdl * dldo / j
	}

	nAR := op.Len() - iRated
	g := &GainSchedule{
		V:         make([]float64, nAR),
		PitchKp:   make([]float64, nAR),
		PitchKi:   make([]float64, nAR),
		KssPitch:  p.KssPitch,
		KssTorque: p.KssTorque,
	}

	for k := 0; k < nAR; k++ {
		i := iRated + k
		v, tsr := op.V[i], op.TSR[i]

		dCpdB := dCPdPitch.At(op.Pitch[i], tsr)
		dtdb := ng / 2 * rho * ar * r * (1 / tsr) * dCpdB * v * v
		bb := dtdb / j
		if bb == 0 {
			return nil, errors.Errorf("pitch input gain vanishes at v=%.1f", v)
		}

		a := pole(i)
		g.V[k] = v
		g.PitchKp[k] = (2*p.PitchZeta*p.PitchOmega + a) / bb
		g.PitchKi[k] = p.PitchOmega * p.PitchOmega / bb
	}

	bt := -ng * ng / j
	aRated := pole(iRated)
	g.TorqueKp = (2*p.TorqueZeta*p.TorqueOmega + aRated) / bt
	g.TorqueKi = p.TorqueOmega * p.TorqueOmega / bt

	return g, nil
}
