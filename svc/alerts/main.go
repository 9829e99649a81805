package main

import (
	"encoding/json"
	"fmt"

	"github.com/confluentinc/confluent-kafka-go/kafka"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"

	"github.com/txsvc/stdlib/v2"

	"github.com/wanship-fleet/fleetops/internal"
	"github.com/wanship-fleet/fleetops/internal/notify"
)

const (
	// expected ENV variables
	CLIENT_ID         = "client_id"
	GROUP_ID          = "group_id"
	KAFKA_AUTO_OFFSET = "auto_offset"
)

var (
	kc *kafka.Consumer
)

func init() {

	// load a local .env file, if any
	godotenv.Load()

	// setup logging
	internal.SetLogLevel()

	clientID := stdlib.GetString(CLIENT_ID, "fleetops-alerts-svc")
	groupID := stdlib.GetString(GROUP_ID, "fleetops-alerts")
	autoOffset := stdlib.GetString(KAFKA_AUTO_OFFSET, "end") // smallest, earliest, beginning, largest, latest, end

	// kafka setup
	kafkaService := stdlib.GetString(notify.KAFKA_SERVICE, "")
	if kafkaService == "" {
		log.Fatal().Err(fmt.Errorf("missing env KAFKA_SERVICE")).Msg("aborting")
	}
	kafkaServicePort := stdlib.GetString(notify.KAFKA_SERVICE_PORT, "9092")
	kafkaServer := fmt.Sprintf("%s:%s", kafkaService, kafkaServicePort)

	// https://github.com/edenhill/librdkafka/blob/master/CONFIGURATION.md
	_kc, err := kafka.NewConsumer(&kafka.ConfigMap{
		"bootstrap.servers":       kafkaServer,
		"client.id":               clientID,
		"group.id":                groupID,
		"connections.max.idle.ms": 0,
		"auto.offset.reset":       autoOffset,
		"broker.address.family":   "v4",
	})
	if err != nil {
		log.Fatal().Err(err).Msg(err.Error())
	}
	kc = _kc

	// prometheus endpoint setup
	internal.StartPrometheusListener()
}

func main() {

	topic := stdlib.GetString(notify.ALERT_TOPIC, notify.DefaultAlertTopic)

	// metrics collectors
	opsAlertsReceived := promauto.NewCounter(prometheus.CounterOpts{
		Name: "fleetops_alerts_received_total",
		Help: "The number of alert events received",
	})

	// subscribe to the topic
	if err := kc.SubscribeTopics([]string{topic}, nil); err != nil {
		log.Fatal().Err(err).Msg(err.Error())
	}
	defer kc.Close()

	log.Info().Str("topic", topic).Msg("start listening")

	for {
		msg, err := kc.ReadMessage(-1)

		if err == nil {
			var evt internal.AlertEvent
			if err := json.Unmarshal(msg.Value, &evt); err != nil {
				log.Err(err).Msg("")
				continue
			}

			log.Info().Int64("ts", evt.EventTime).Msg(evt.String())
			opsAlertsReceived.Inc()

		} else {
			// The client will automatically try to recover from all errors.
			log.Error().Err(err).Msg("error")
		}
	}
}
