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

package publish

import (
	"encoding/json"

	"github.com/antst/rotortune/internal/config"
	"github.com/antst/rotortune/internal/logger"
	"github.com/antst/rotortune/internal/tuner"

	"github.com/google/uuid"
	"github.com/pkg/errors"
)

const mqttQoS = 1

type schedulePayload struct {
	Run     string    `json:"run"`
	Turbine string    `json:"turbine"`
	V       []float64 `json:"v"`
	TSR     []float64 `json:"tsr"`
	CPLin   []float64 `json:"cp_lin"`
	CPOp    []float64 `json:"cp_op"`
	Pitch   []float64 `json:"pitch"`
}

type gainsPayload struct {
	Run       string    `json:"run"`
	Turbine   string    `json:"turbine"`
	V         []float64 `json:"v"`
	PitchKp   []float64 `json:"pitch_kp"`
	PitchKi   []float64 `json:"pitch_ki"`
	TorqueKp  float64   `json:"torque_kp"`
	TorqueKi  float64   `json:"torque_ki"`
	KssPitch  float64   `json:"kss_pitch"`
	KssTorque float64   `json:"kss_torque"`
}

// Schedule publishes the finished run retained on <control_topic>/schedule
// and <control_topic>/gains, so supervisory controllers pick the new
// parameter set up whenever they (re)connect.
func Schedule(cfg *config.MQTTConfig, runID string, res *tuner.Result) error {
	client, err := InitMQTTClient(cfg.URL, "rotortune-"+uuid.New().String())
	if err != nil {
		return errors.WithMessage(err, "connect for schedule publication")
	}
	defer client.Disconnect()

	op := res.Points
	sched, err := json.Marshal(schedulePayload{
		Run: runID, Turbine: res.Turbine,
		V: op.V, TSR: op.TSR, CPLin: op.CPLin, CPOp: op.CPOp, Pitch: op.Pitch,
	})
	if err != nil {
		return errors.Wrap(err, "marshal schedule")
	}

	g := res.Gains
	gains, err := json.Marshal(gainsPayload{
		Run: runID, Turbine: res.Turbine,
		V: g.V, PitchKp: g.PitchKp, PitchKi: g.PitchKi,
		TorqueKp: g.TorqueKp, TorqueKi: g.TorqueKi,
		KssPitch: g.KssPitch, KssTorque: g.KssTorque,
	})
	if err != nil {
		return errors.Wrap(err, "marshal gains")
	}

	for _, m := range []struct {
		topic   string
		payload []byte
	}{
		{cfg.ControlTopic + "/schedule", sched},
		{cfg.ControlTopic + "/gains", gains},
	} {
		if token := client.SafePublish(m.topic, mqttQoS, true, m.payload); token.Wait() && token.Error() != nil {
			return errors.Wrapf(token.Error(), "publish %s", m.topic)
		}
		logger.L().Infof("Published %d bytes to %s", len(m.payload), m.topic)
	}
	return nil
}
