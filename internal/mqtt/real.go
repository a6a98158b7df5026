package mqtt

import (
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	paho "github.com/eclipse/paho.mqtt.golang"

	"github.com/sweeney/desk-clock/internal/mode"
)

// BufferSize is how many messages are kept while the broker is unreachable.
const BufferSize = 256

const publishTimeout = 5 * time.Second

var errPublishTimeout = errors.New("publish timeout")

// client is the part of paho.Client the publisher uses.
type client interface {
	IsConnectionOpen() bool
	Publish(topic string, qos byte, retained bool, payload interface{}) paho.Token
	Disconnect(quiesce uint)
}

// RealPublisher publishes to an actual MQTT broker. Messages published
// while the connection is down are buffered and replayed, oldest first,
// when it comes back.
type RealPublisher struct {
	client client
	topics Topics
	now    func() time.Time

	mu            sync.Mutex
	buf           *ringBuffer
	everConnected bool
}

// NewRealPublisher starts connecting to the broker in the background and
// returns immediately. The will message marks the clock OFFLINE if the
// connection drops without a clean Close.
func NewRealPublisher(broker, clientID string, topics Topics) *RealPublisher {
	p := newPublisher(nil, topics)

	will, _ := FormatSystemPayload(SystemEvent{
		Timestamp: p.now(),
		Event:     "OFFLINE",
		Reason:    "CONNECTION_LOST",
	})

	opts := paho.NewClientOptions().
		AddBroker(broker).
		SetClientID(clientID).
		SetAutoReconnect(true).
		SetConnectRetry(true).
		SetConnectRetryInterval(5*time.Second).
		SetBinaryWill(topics.System, will, 1, true).
		SetOnConnectHandler(func(paho.Client) { p.onConnect() }).
		SetConnectionLostHandler(func(_ paho.Client, err error) {
			log.Printf("mqtt: connection lost: %v", err)
		})

	c := paho.NewClient(opts)
	p.client = c
	c.Connect()
	return p
}

func newPublisher(c client, topics Topics) *RealPublisher {
	return &RealPublisher{
		client: c,
		topics: topics,
		now:    time.Now,
		buf:    newRingBuffer(BufferSize),
	}
}

// Publish sends a controller event to the MQTT broker.
func (p *RealPublisher) Publish(event mode.Event) error {
	payload, err := FormatPayload(event)
	if err != nil {
		return fmt.Errorf("format payload: %w", err)
	}
	// QoS 0 (at-most-once), not retained
	return p.send(message{topic: p.topics.Events, payload: payload})
}

// PublishSystem sends a system lifecycle event to the MQTT broker.
func (p *RealPublisher) PublishSystem(event SystemEvent) error {
	payload, err := FormatSystemPayload(event)
	if err != nil {
		return fmt.Errorf("format system payload: %w", err)
	}
	// QoS 1 (at-least-once) so lifecycle events survive a flaky link
	return p.send(message{topic: p.topics.System, payload: payload, qos: 1, retained: event.Retained})
}

// send publishes msg, or buffers it if the connection is down or the
// publish does not complete.
func (p *RealPublisher) send(msg message) error {
	if !p.client.IsConnectionOpen() {
		p.queue(msg)
		return nil
	}

	token := p.client.Publish(msg.topic, msg.qos, msg.retained, msg.payload)
	if !token.WaitTimeout(publishTimeout) {
		p.queue(msg)
		return errPublishTimeout
	}
	if err := token.Error(); err != nil {
		p.queue(msg)
		return fmt.Errorf("publish: %w", err)
	}
	return nil
}

func (p *RealPublisher) queue(msg message) {
	p.mu.Lock()
	p.buf.push(msg)
	p.mu.Unlock()
}

// onConnect replays the offline buffer and, after the first connection,
// announces the reconnect.
func (p *RealPublisher) onConnect() {
	p.mu.Lock()
	pending := p.buf.drain()
	reconnect := p.everConnected
	p.everConnected = true
	p.mu.Unlock()

	if len(pending) > 0 {
		log.Printf("mqtt: connected, replaying %d buffered messages", len(pending))
	} else {
		log.Printf("mqtt: connected")
	}
	for _, msg := range pending {
		if err := p.send(msg); err != nil {
			log.Printf("mqtt: replay failed: %v", err)
		}
	}

	if reconnect {
		err := p.PublishSystem(SystemEvent{Timestamp: p.now(), Event: "RECONNECTED"})
		if err != nil {
			log.Printf("mqtt: reconnect event failed: %v", err)
		}
	}
}

// IsConnected reports whether the broker connection is up.
func (p *RealPublisher) IsConnected() bool {
	return p.client.IsConnectionOpen()
}

// Buffered returns the number of messages waiting for a connection.
func (p *RealPublisher) Buffered() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.buf.len()
}

// Dropped returns how many buffered messages were discarded because the
// buffer was full.
func (p *RealPublisher) Dropped() uint64 {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.buf.dropped
}

// Close disconnects from the broker.
func (p *RealPublisher) Close() error {
	p.client.Disconnect(1000) // 1 second quiesce
	return nil
}
