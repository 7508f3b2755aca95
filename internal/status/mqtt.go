package status

import (
	"fmt"
	"strconv"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	pahomqtt "github.com/eclipse/paho.mqtt.golang"
	"github.com/samber/lo"

	"github.com/wheelibin/lume/internal/concurrency"
	"github.com/wheelibin/lume/internal/models"
)

const (
	topicMode       = "lume/mode"
	topicColour     = "lume/colour"
	topicBrightness = "lume/brightness"
	topicTransition = "lume/transition"
)

// MQTTPublisher mirrors the pod state onto retained MQTT topics so other
// things in the house can follow along.
type MQTTPublisher struct {
	logger *log.Logger
	client pahomqtt.Client

	mu       sync.Mutex
	retained map[string]string
}

func NewMQTTPublisher(logger *log.Logger, broker string, clientID string) *MQTTPublisher {
	p := &MQTTPublisher{
		logger:   logger,
		retained: map[string]string{},
	}

	opts := pahomqtt.NewClientOptions()
	opts.AddBroker(broker)
	if clientID == "" {
		clientID = fmt.Sprintf("lume-%d", time.Now().Unix())
	}
	opts.SetClientID(clientID)
	opts.SetCleanSession(true)
	opts.SetAutoReconnect(true)
	opts.SetConnectRetry(true)
	opts.SetConnectRetryInterval(5 * time.Second)
	opts.SetMaxReconnectInterval(30 * time.Second)

	opts.OnConnect = func(c pahomqtt.Client) {
		logger.Info("connected to MQTT broker", "broker", broker)
		// the broker may have missed updates while we were away
		go p.republish()
	}
	opts.OnConnectionLost = func(c pahomqtt.Client, err error) {
		logger.Warn("MQTT connection lost", "err", err)
	}

	p.client = pahomqtt.NewClient(opts)
	return p
}

// Connect starts the connection attempt; with retry enabled it keeps trying
// in the background until the broker appears.
func (p *MQTTPublisher) Connect() {
	p.logger.Info("connecting to MQTT broker...")
	token := p.client.Connect()
	go func() {
		token.Wait()
		if token.Error() != nil {
			p.logger.Error("MQTT connect failed", "err", token.Error())
		}
	}()
}

func (p *MQTTPublisher) Close() {
	p.client.Disconnect(250)
}

func (p *MQTTPublisher) PublishFrame(f models.Frame) {
	p.publish(topicMode, string(f.Mode))
	p.publish(topicColour, f.Colour.String())
	p.publish(topicBrightness, strconv.Itoa(f.Brightness))
}

func (p *MQTTPublisher) PublishTransition(t models.Transition) {
	p.publish(topicTransition, fmt.Sprintf("%s>%s", t.From, t.To))
}

func (p *MQTTPublisher) publish(topic string, payload string) {
	p.mu.Lock()
	unchanged := p.retained[topic] == payload
	p.retained[topic] = payload
	p.mu.Unlock()
	if unchanged || !p.client.IsConnected() {
		return
	}
	p.client.Publish(topic, 0, true, payload)
}

// republish pushes every retained topic again after a (re)connect, paced so
// the burst doesn't swamp the broker.
func (p *MQTTPublisher) republish() {
	p.mu.Lock()
	topics := lo.Keys(p.retained)
	p.mu.Unlock()

	tw := concurrency.NewThrottledWorker(100*time.Millisecond, func(topic string) error {
		p.mu.Lock()
		payload := p.retained[topic]
		p.mu.Unlock()
		p.client.Publish(topic, 0, true, payload)
		return nil
	})
	tw.Run(topics)
}
