package mqtt

import (
	"encoding/json"
	"fmt"
	"time"

	pahomqtt "github.com/eclipse/paho.mqtt.golang"

	"github.com/Mavwarf/pushicons/internal/generator"
)

const timeout = 5 * time.Second

// Summary is the payload published after a run.
type Summary struct {
	SDK      string   `json:"sdk"`
	Source   string   `json:"source"`
	Created  int      `json:"created"`
	Failed   int      `json:"failed"`
	Failures []string `json:"failures,omitempty"`
}

// Summarize builds the published payload for rep.
func Summarize(rep generator.Report) Summary {
	s := Summary{
		SDK:     rep.SDK.ID,
		Source:  rep.Source,
		Created: rep.Created(),
		Failed:  rep.Failed(),
	}
	for _, f := range rep.Failures() {
		s.Failures = append(s.Failures, f.Err.Error())
	}
	return s
}

// Topic returns the topic a run for sdkID is published to.
func Topic(sdkID string) string {
	return "pushicons/" + sdkID
}

// PublishReport connects to broker, publishes rep's summary and
// disconnects. Each call uses a fresh connection.
func PublishReport(broker string, rep generator.Report) error {
	payload, err := json.Marshal(Summarize(rep))
	if err != nil {
		return fmt.Errorf("mqtt: encode: %w", err)
	}
	return Publish(broker, "pushicons", Topic(rep.SDK.ID), payload)
}

// Publish sends message to topic with QoS 0.
func Publish(broker, clientID, topic string, message []byte) error {
	opts := pahomqtt.NewClientOptions().
		AddBroker(broker).
		SetClientID(clientID).
		SetConnectTimeout(timeout)

	client := pahomqtt.NewClient(opts)
	tok := client.Connect()
	if !tok.WaitTimeout(timeout) {
		return fmt.Errorf("mqtt: connect timeout")
	}
	if tok.Error() != nil {
		return fmt.Errorf("mqtt: connect: %w", tok.Error())
	}
	defer client.Disconnect(250)

	pub := client.Publish(topic, 0, false, message)
	if !pub.WaitTimeout(timeout) {
		return fmt.Errorf("mqtt: publish timeout")
	}
	if pub.Error() != nil {
		return fmt.Errorf("mqtt: publish: %w", pub.Error())
	}
	return nil
}
