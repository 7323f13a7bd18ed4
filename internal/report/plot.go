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

package report

import (
	"math"
	"os"

	"github.com/antst/rotortune/internal/tuner"

	"github.com/pkg/errors"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"
)

const r2d = 180.0 / math.Pi

// SchedulePlot renders the operating schedule (pitch and tip-speed ratio
// over wind speed, Cp targets vs achieved) to a PNG file.
func SchedulePlot(path string, res *tuner.Result) error {
	op := res.Points

	top := plot.New()
	top.Title.Text = "Operating schedule: " + res.Turbine
	top.X.Label.Text = "wind speed (m/s)"
	top.Y.Label.Text = "pitch (deg) / tsr"
	if err := plotutil.AddLinePoints(top,
		"pitch", series(op.V, op.Pitch, r2d),
		"tsr", series(op.V, op.TSR, 1),
	); err != nil {
		return errors.Wrap(err, "pitch/tsr plot")
	}

	bottom := plot.New()
	bottom.X.Label.Text = "wind speed (m/s)"
	bottom.Y.Label.Text = "Cp"
	if err := plotutil.AddLinePoints(bottom,
		"target", series(op.V, op.CPLin, 1),
		"achieved", series(op.V, op.CPOp, 1),
	); err != nil {
		return errors.Wrap(err, "cp plot")
	}

	canvas := vgimg.New(8*vg.Inch, 8*vg.Inch)
	dc := draw.New(canvas)
	tiles := draw.Tiles{Rows: 2, Cols: 1}
	top.Draw(tiles.At(dc, 0, 0))
	bottom.Draw(tiles.At(dc, 0, 1))

	f, err := os.Create(path)
	if err != nil {
		return errors.Wrap(err, "create plot file")
	}
	defer f.Close()

	png := vgimg.PngCanvas{Canvas: canvas}
	if _, err := png.WriteTo(f); err != nil {
		return errors.Wrap(err, "write plot file")
	}
	return nil
}

func series(x, y []float64, scale float64) plotter.XYs {
	pts := make(plotter.XYs, len(x))
	for i := range x {
		pts[i].X = x[i]
		pts[i].Y = y[i] * scale
	}
	return pts
}
