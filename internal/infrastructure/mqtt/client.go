package mqtt

import (
	"fmt"
	"sync"
	"time"

	pahomqtt "github.com/eclipse/paho.mqtt.golang"

	"github.com/nerrad567/padbridge-core/internal/infrastructure/config"
)

// Operation timeouts and limits.
const (
	defaultConnectTimeout = 10 * time.Second
	defaultPublishTimeout = 5 * time.Second

	// maxPayloadSize caps publishes at 256KB; registry event payloads
	// are tiny, anything larger indicates a bug.
	maxPayloadSize = 256 << 10

	maxQoS = 2
)

// Client wraps paho.mqtt.golang with PadBridge-specific functionality.
//
// It publishes registry events to the broker and maintains the
// connection with automatic reconnection and a Last Will message so
// subscribers can detect an offline PadBridge instance.
//
// Thread Safety:
//   - All methods are safe for concurrent use from multiple goroutines.
type Client struct {
	client pahomqtt.Client
	cfg    config.MQTTConfig

	// connected tracks current connection state.
	connected bool
	connMu    sync.RWMutex
}

// Connect establishes a connection to the MQTT broker.
//
// It builds connection options from config (broker URL, auth, client
// ID), configures the Last Will and Testament on the system status
// topic, enables auto-reconnect and attempts the initial connection
// with a timeout. On success the online status is published retained.
func Connect(cfg config.MQTTConfig) (*Client, error) {
	opts := buildClientOptions(cfg)

	c := &Client{cfg: cfg}

	opts.SetOnConnectHandler(func(_ pahomqtt.Client) {
		c.setConnected(true)
	})
	opts.SetConnectionLostHandler(func(_ pahomqtt.Client, _ error) {
		c.setConnected(false)
	})

	c.client = pahomqtt.NewClient(opts)
	token := c.client.Connect()
	if !token.WaitTimeout(defaultConnectTimeout) {
		return nil, fmt.Errorf("%w: timeout after %v", ErrConnectionFailed, defaultConnectTimeout)
	}
	if err := token.Error(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrConnectionFailed, err)
	}

	// The OnConnect callback runs asynchronously and may not have
	// fired yet; record the state now.
	c.setConnected(true)

	// Announce presence; subscribers pair this with the LWT offline
	// message.
	_ = c.Publish(Topics{}.SystemStatus(), []byte(`{"status":"online"}`), byte(cfg.QoS), true) //nolint:errcheck // Advisory

	return c, nil
}

// buildClientOptions assembles paho options from the configuration.
func buildClientOptions(cfg config.MQTTConfig) *pahomqtt.ClientOptions {
	scheme := "tcp"
	if cfg.Broker.TLS {
		scheme = "ssl"
	}
	broker := fmt.Sprintf("%s://%s:%d", scheme, cfg.Broker.Host, cfg.Broker.Port)

	opts := pahomqtt.NewClientOptions().
		AddBroker(broker).
		SetClientID(cfg.Broker.ClientID).
		SetAutoReconnect(true).
		SetMaxReconnectInterval(time.Duration(cfg.Reconnect.MaxDelay) * time.Second).
		SetConnectRetryInterval(time.Duration(cfg.Reconnect.InitialDelay) * time.Second).
		SetOrderMatters(false)

	if cfg.Auth.Username != "" {
		opts.SetUsername(cfg.Auth.Username)
		opts.SetPassword(cfg.Auth.Password)
	}

	// Last Will: mark this instance offline if the connection drops
	// without a clean disconnect.
	opts.SetWill(Topics{}.SystemStatus(), `{"status":"offline"}`, byte(cfg.QoS), true)

	return opts
}

// Publish sends a message to the specified MQTT topic.
//
// Payloads are typically small JSON event documents. Retained should
// be true for state topics (device status) and false for transition
// events (slot assigned).
func (c *Client) Publish(topic string, payload []byte, qos byte, retained bool) error {
	if topic == "" {
		return ErrInvalidTopic
	}
	if qos > maxQoS {
		return ErrInvalidQoS
	}
	if len(payload) > maxPayloadSize {
		return fmt.Errorf("%w: payload size %d exceeds maximum %d bytes",
			ErrPublishFailed, len(payload), maxPayloadSize)
	}
	if !c.IsConnected() {
		return ErrNotConnected
	}

	token := c.client.Publish(topic, qos, retained, payload)
	if !token.WaitTimeout(defaultPublishTimeout) {
		return fmt.Errorf("%w: timeout after %v", ErrPublishFailed, defaultPublishTimeout)
	}
	if err := token.Error(); err != nil {
		return fmt.Errorf("%w: %w", ErrPublishFailed, err)
	}
	return nil
}

// IsConnected reports whether the client currently holds a broker
// connection.
func (c *Client) IsConnected() bool {
	c.connMu.RLock()
	defer c.connMu.RUnlock()
	return c.connected && c.client.IsConnected()
}

// Disconnect publishes the offline status and closes the connection
// gracefully.
func (c *Client) Disconnect() {
	if c.IsConnected() {
		_ = c.Publish(Topics{}.SystemStatus(), []byte(`{"status":"offline"}`), byte(c.cfg.QoS), true) //nolint:errcheck // Advisory
	}
	c.client.Disconnect(uint(defaultPublishTimeout.Milliseconds()))
	c.setConnected(false)
}

func (c *Client) setConnected(connected bool) {
	c.connMu.Lock()
	c.connected = connected
	c.connMu.Unlock()
}
