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

package db

import (
	"context"
	"time"

	"github.com/antst/rotortune/internal/logger"
	"github.com/antst/rotortune/internal/tuner"

	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3"
	"github.com/pkg/errors"
)

const schema = `
CREATE TABLE IF NOT EXISTS runs (
	id         TEXT PRIMARY KEY,
	created_at TIMESTAMP NOT NULL,
	turbine    TEXT NOT NULL,
	tsr_rated  REAL NOT NULL
);
CREATE TABLE IF NOT EXISTS operating_points (
	run_id TEXT NOT NULL REFERENCES runs(id),
	v      REAL NOT NULL,
	tsr    REAL NOT NULL,
	cp_lin REAL NOT NULL,
	cp_op  REAL NOT NULL,
	pitch  REAL NOT NULL
);
CREATE TABLE IF NOT EXISTS pitch_gains (
	run_id TEXT NOT NULL REFERENCES runs(id),
	v      REAL NOT NULL,
	kp     REAL NOT NULL,
	ki     REAL NOT NULL
);
CREATE TABLE IF NOT EXISTS torque_gains (
	run_id TEXT PRIMARY KEY REFERENCES runs(id),
	kp     REAL NOT NULL,
	ki     REAL NOT NULL
);
`

// Store archives finished tuning runs in SQLite.
type Store struct {
	db *sqlx.DB
}

// Open opens (or creates) the archive. Like the rest of startup, failure
// to open the configured DB file is fatal.
func Open(dbFile string) *Store {
	sqlDB, err := sqlx.Open("sqlite3", dbFile)
	if err != nil {
		logger.L().Panic(err)
	}
	if err := sqlDB.Ping(); err != nil {
		logger.L().Panicf("%s: %v", dbFile, err)
	}

	// a fresh sqlite connection would see a fresh DB under :memory:
	sqlDB.SetMaxOpenConns(1)

	if _, err := sqlDB.Exec(schema); err != nil {
		logger.L().Panic(err)
	}

	return &Store{db: sqlDB}
}

func (s *Store) Close() error {
	return s.db.Close()
}

type Run struct {
	ID        string    `db:"id"`
	CreatedAt time.Time `db:"created_at"`
	Turbine   string    `db:"turbine"`
	TSRRated  float64   `db:"tsr_rated"`
}

type OperatingPointRow struct {
	RunID string  `db:"run_id"`
	V     float64 `db:"v"`
	TSR   float64 `db:"tsr"`
	CPLin float64 `db:"cp_lin"`
	CPOp  float64 `db:"cp_op"`
	Pitch float64 `db:"pitch"`
}

// SaveRun archives a tuning result in one transaction.
func (s *Store) SaveRun(ctx context.Context, runID string, res *tuner.Result) error {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return errors.Wrap(err, "begin run archive tx")
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx,
		`INSERT INTO runs (id, created_at, turbine, tsr_rated) VALUES (?, ?, ?, ?)`,
		runID, time.Now().UTC(), res.Turbine, res.TSRRated,
	); err != nil {
		return errors.Wrap(err, "insert run")
	}

	op := res.Points
	for i := 0; i < op.Len(); i++ {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO operating_points (run_id, v, tsr, cp_lin, cp_op, pitch) VALUES (?, ?, ?, ?, ?, ?)`,
			runID, op.V[i], op.TSR[i], op.CPLin[i], op.CPOp[i], op.Pitch[i],
		); err != nil {
			return errors.Wrapf(err, "insert operating point %d", i)
		}
	}

	g := res.Gains
	for i := range g.V {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO pitch_gains (run_id, v, kp, ki) VALUES (?, ?, ?, ?)`,
			runID, g.V[i], g.PitchKp[i], g.PitchKi[i],
		); err != nil {
			return errors.Wrapf(err, "insert pitch gain %d", i)
		}
	}
	if _, err := tx.ExecContext(ctx,
		`INSERT INTO torque_gains (run_id, kp, ki) VALUES (?, ?, ?)`,
		runID, g.TorqueKp, g.TorqueKi,
	); err != nil {
		return errors.Wrap(err, "insert torque gain")
	}

	return errors.Wrap(tx.Commit(), "commit run archive tx")
}

func (s *Store) GetRun(ctx context.Context, runID string) (Run, error) {
	var r Run
	err := s.db.GetContext(ctx, &r, `SELECT id, created_at, turbine, tsr_rated FROM runs WHERE id = ?`, runID)
	return r, errors.Wrapf(err, "run %s", runID)
}

func (s *Store) GetOperatingPoints(ctx context.Context, runID string) ([]OperatingPointRow, error) {
	var rows []OperatingPointRow
	err := s.db.SelectContext(ctx, &rows,
		`SELECT run_id, v, tsr, cp_lin, cp_op, pitch FROM operating_points WHERE run_id = ? ORDER BY v`, runID)
	return rows, errors.Wrapf(err, "operating points of run %s", runID)
}
