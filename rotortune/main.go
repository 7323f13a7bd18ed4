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

package main

import (
	"context"

	"github.com/antst/rotortune/internal/config"
	"github.com/antst/rotortune/internal/db"
	"github.com/antst/rotortune/internal/logger"
	"github.com/antst/rotortune/internal/publish"
	"github.com/antst/rotortune/internal/report"
	"github.com/antst/rotortune/internal/tuner"
	"github.com/antst/rotortune/internal/turbine"

	"github.com/google/uuid"
)

// Build version, overridden with flag during build.
var version = "devel"

func main() {
	logger.L().Warnf("Rotor control tuning utility, version: %+v", version)
	defer logger.Close()

	cfg := config.Get()

	var (
		model *turbine.Model
		err   error
	)
	if cfg.TurbineFile != "" {
		if model, err = turbine.Load(cfg.TurbineFile); err != nil {
			logger.L().Fatal(err)
		}
		logger.L().Infof("Loaded turbine deck `%s` (%s)", cfg.TurbineFile, model.Label)
	} else {
		model = turbine.NREL5MW()
		logger.L().Infof("No turbine deck given, using built-in %s model", model.Label)
	}

	params, err := tuner.ParamsFromConfig(cfg.Controller)
	if err != nil {
		logger.L().Fatal(err)
	}

	res, err := tuner.Tune(model, params)
	if err != nil {
		logger.L().Fatal(err)
	}
	op := res.Points
	logger.L().Infof(
		"Tuned %s: %d operating points over [%.1f, %.1f) m/s, tsr_rated=%.3f",
		res.Turbine, op.Len(), model.Vmin, model.Vmax, res.TSRRated,
	)
	g := res.Gains
	logger.L().Infof(
		"Torque loop: Kp=%.4g Ki=%.4g; pitch Kp schedule [%.4g .. %.4g]",
		g.TorqueKp, g.TorqueKi, g.PitchKp[0], g.PitchKp[len(g.PitchKp)-1],
	)

	runID := uuid.New().String()
	store := db.Open(cfg.DBFile)
	defer store.Close()
	if err := store.SaveRun(context.Background(), runID, res); err != nil {
		logger.L().Fatal(err)
	}
	logger.L().Infof("Archived run %s to `%s`", runID, cfg.DBFile)

	if cfg.PlotFile != "" {
		if err := report.SchedulePlot(cfg.PlotFile, res); err != nil {
			logger.L().Error(err)
		} else {
			logger.L().Infof("Wrote schedule plot to `%s`", cfg.PlotFile)
		}
	}

	if cfg.Publish {
		if err := publish.Schedule(cfg.MQTTConfig, runID, res); err != nil {
			logger.L().Error(err)
		}
	}
}
