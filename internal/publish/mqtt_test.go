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
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitMQTTClient_UnreachableBrokerFails(t *testing.T) {
	// nothing listens on a reserved port; a one-shot run must give up
	// after the bounded retries instead of looping forever
	start := time.Now()
	client, err := InitMQTTClient("tcp://127.0.0.1:1", "rotortune-test")

	require.Error(t, err)
	assert.Nil(t, client)
	assert.Contains(t, err.Error(), "broker unreachable")
	assert.Less(t, time.Since(start), time.Duration(maxConnectRetries)*(reconnectInterval+10*time.Second))
}
