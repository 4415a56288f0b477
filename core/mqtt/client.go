package mqtt

// Publisher sends payloads to an MQTT broker.
type Publisher interface {
	// Publish sends payload to topic, retrying according to the client
	// configuration. Retained messages are replayed by the broker to
	// controllers that subscribe later.
	Publish(topic string, payload []byte, retained bool) error

	// Disconnect closes the connection.
	Disconnect()
}
