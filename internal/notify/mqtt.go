package notify

import (
	"encoding/json"
	"fmt"

	mqtt "github.com/eclipse/paho.mqtt.golang"

	"github.com/txsvc/stdlib/v2"

	"github.com/wanship-fleet/fleetops/internal"
)

const (
	// expected ENV variables
	MQTT_HOST     = "mqtt_host"
	MQTT_PROTOCOL = "mqtt_protocol"
	MQTT_PORT     = "mqtt_port"
	MQTT_USER     = "mqtt_user"
	MQTT_PASSWORD = "mqtt_password"

	ALERT_TOPIC = "alert_topic"

	DefaultAlertTopic = "fleetops/alerts"
)

type (
	MqttPublisher struct {
		client mqtt.Client
		topic  string
	}
)

// NewMqttPublisher connects to the broker configured in the environment
func NewMqttPublisher(clientID string) (*MqttPublisher, error) {
	host := stdlib.GetString(MQTT_HOST, "")
	if host == "" {
		return nil, fmt.Errorf("missing env MQTT_HOST")
	}

	cl := internal.CreateMqttClient(
		stdlib.GetString(MQTT_PROTOCOL, "tcp"),
		host,
		stdlib.GetString(MQTT_PORT, "1883"),
		clientID,
		stdlib.GetString(MQTT_USER, ""),
		stdlib.GetString(MQTT_PASSWORD, ""),
	)
	if token := cl.Connect(); token.Wait() && token.Error() != nil {
		return nil, token.Error()
	}

	return &MqttPublisher{
		client: cl,
		topic:  stdlib.GetString(ALERT_TOPIC, DefaultAlertTopic),
	}, nil
}

func (p *MqttPublisher) Publish(evt *internal.AlertEvent) error {
	data, err := json.Marshal(evt)
	if err != nil {
		return err
	}

	token := p.client.Publish(p.topic, internal.AtLeastOnce, false, data)
	token.Wait()
	return token.Error()
}

func (p *MqttPublisher) Close() {
	p.client.Disconnect(250)
}
