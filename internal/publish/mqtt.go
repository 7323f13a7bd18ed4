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
	"sync"
	"time"

	"github.com/antst/rotortune/internal/logger"

	mqtt "github.com/eclipse/paho.mqtt.golang"
	"github.com/pkg/errors"
)

const (
	reconnectInterval = 2 * time.Second
	maxConnectRetries = 3
)

// MqttClient is bridge between our app and MQTT
type MqttClient interface {
	SafePublish(topic string, qos byte, retained bool, payload interface{}) mqtt.Token
	Disconnect()
}

type mqttClient struct {
	mutex sync.Mutex
	mqtt  mqtt.Client
}

var (
	connectHandler = func(client mqtt.Client) {
		or := client.OptionsReader()
		logger.L().Infof("Connected to MQTT broker: %v as %s", or.Servers(), or.ClientID())
	}

	connectLostHandler = func(client mqtt.Client, err error) {
		logger.L().Warnf("Connection to MQTT broker lost: %v", err)
	}
)

// InitMQTTClient connects with a bounded number of attempts; a one-shot
// run must fail instead of waiting for a broker that never comes up.
func InitMQTTClient(url, clientID string) (MqttClient, error) {
	opts := mqtt.NewClientOptions().
		AddBroker(url).
		SetClientID(clientID).
		SetAutoReconnect(true).
		SetMaxReconnectInterval(reconnectInterval)

	opts.OnConnect = connectHandler
	opts.OnConnectionLost = connectLostHandler

	client := mqtt.NewClient(opts)
	if err := connectMQTT(client); err != nil {
		return nil, err
	}

	return &mqttClient{
		mqtt: client,
	}, nil
}

func connectMQTT(client mqtt.Client) error {
	var err error
	for attempt := 1; attempt <= maxConnectRetries; attempt++ {
		token := client.Connect()
		if token.Wait() && token.Error() == nil {
			return nil
		}
		err = token.Error()
		if attempt < maxConnectRetries {
			logger.L().Warnf("Connection failed, retrying in %v: %v", reconnectInterval, err)
			time.Sleep(reconnectInterval)
		}
	}
	return errors.Wrapf(err, "broker unreachable after %d attempts", maxConnectRetries)
}

func (m *mqttClient) SafePublish(topic string, qos byte, retained bool, payload interface{}) mqtt.Token {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	return m.mqtt.Publish(topic, qos, retained, payload)
}

func (m *mqttClient) Disconnect() {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	m.mqtt.Disconnect(250)
}
