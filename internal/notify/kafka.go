package notify

import (
	"encoding/json"
	"fmt"

	"github.com/confluentinc/confluent-kafka-go/kafka"
	"github.com/rs/zerolog/log"

	"github.com/txsvc/stdlib/v2"

	"github.com/wanship-fleet/fleetops/internal"
)

const (
	// expected ENV variables
	KAFKA_SERVICE      = "kafka_service"
	KAFKA_SERVICE_PORT = "kafka_service_port"
)

type (
	KafkaPublisher struct {
		producer *kafka.Producer
		topic    string
		evts     chan kafka.Event
	}
)

// NewKafkaPublisher connects to the broker configured in the environment
func NewKafkaPublisher(clientID string) (*KafkaPublisher, error) {
	kafkaService := stdlib.GetString(KAFKA_SERVICE, "")
	if kafkaService == "" {
		return nil, fmt.Errorf("missing env KAFKA_SERVICE")
	}
	kafkaServicePort := stdlib.GetString(KAFKA_SERVICE_PORT, "9092")
	kafkaServer := fmt.Sprintf("%s:%s", kafkaService, kafkaServicePort)

	// https://github.com/edenhill/librdkafka/blob/master/CONFIGURATION.md
	kp, err := kafka.NewProducer(&kafka.ConfigMap{
		"bootstrap.servers":     kafkaServer,
		"client.id":             clientID,
		"broker.address.family": "v4",
	})
	if err != nil {
		return nil, err
	}

	p := &KafkaPublisher{
		producer: kp,
		topic:    stdlib.GetString(ALERT_TOPIC, DefaultAlertTopic),
		evts:     make(chan kafka.Event, 1000),
	}

	// responder for delivery notifications
	go func() {
		for e := range p.evts {
			switch ev := e.(type) {
			case *kafka.Message:
				if ev.TopicPartition.Error != nil {
					log.Error().Err(ev.TopicPartition.Error).Str("topic", p.topic).Msg("delivery error")
				}
			}
		}
	}()

	return p, nil
}

func (p *KafkaPublisher) Publish(evt *internal.AlertEvent) error {
	data, err := json.Marshal(evt)
	if err != nil {
		return err
	}

	return p.producer.Produce(&kafka.Message{
		TopicPartition: kafka.TopicPartition{
			Topic:     &p.topic,
			Partition: kafka.PartitionAny,
		},
		Value: data,
	}, p.evts)
}

func (p *KafkaPublisher) Close() {
	p.producer.Flush(1000)
	p.producer.Close()
	close(p.evts)
}
