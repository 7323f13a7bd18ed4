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

package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFillDefaults(t *testing.T) {
	cfg := &Config{}
	cfg.FillDefaults()

	require.NotNil(t, cfg.MQTTConfig)
	assert.Equal(t, defaultMQTTURL, cfg.MQTTConfig.URL)
	assert.Equal(t, defaultControlTopic, cfg.MQTTConfig.ControlTopic)
	assert.Equal(t, defaultDBFile, cfg.DBFile)
	assert.Nil(t, cfg.Controller)
}

func TestReadFile_FullConfig(t *testing.T) {
	body := `
log_level: debug
db_file: runs.db
turbine_file: my_turbine.yaml
publish: true
mqtt:
  url: tcp://broker:1883
controller:
  pitch_zeta: 0.7
  pitch_omega: 0.6
  torque_zeta: 0.7
  torque_omega: 0.3
  kss_pitch: 0.9
`
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))

	cfg := defConfig()
	require.NoError(t, readFile(cfg, path))
	cfg.FillDefaults()

	assert.Equal(t, "runs.db", cfg.DBFile)
	assert.Equal(t, "my_turbine.yaml", cfg.TurbineFile)
	assert.True(t, cfg.Publish)
	assert.Equal(t, "tcp://broker:1883", cfg.MQTTConfig.URL)
	assert.Equal(t, defaultControlTopic, cfg.MQTTConfig.ControlTopic)

	require.NotNil(t, cfg.Controller)
	assert.True(t, cfg.Controller.Complete())
	assert.Equal(t, 0.7, *cfg.Controller.PitchZeta)
	assert.Equal(t, 0.9, *cfg.Controller.KssPitch)
	// omitted bias filled with its default
	require.NotNil(t, cfg.Controller.KssTorque)
	assert.Equal(t, defaultSmootherBias, *cfg.Controller.KssTorque)
}

func TestReadFile_MissingFileIsFine(t *testing.T) {
	cfg := defConfig()
	require.NoError(t, readFile(cfg, filepath.Join(t.TempDir(), "absent.yaml")))
	assert.Equal(t, defaultDBFile, cfg.DBFile)
}

func TestControllerConfig_Complete(t *testing.T) {
	c := &ControllerConfig{}
	assert.False(t, c.Complete())

	c.PitchZeta = GetPTR(0.7)
	c.PitchOmega = GetPTR(0.6)
	c.TorqueZeta = GetPTR(0.7)
	assert.False(t, c.Complete())

	c.TorqueOmega = GetPTR(0.3)
	assert.True(t, c.Complete())
}
