package messaging

import "github.com/segmentio/kafka-go"

// HeaderCarrier adapts kafka message headers to a propagation.TextMapCarrier
type HeaderCarrier struct {
	msg *kafka.Message
}

// NewHeaderCarrier wraps msg; Set mutates its headers in place
func NewHeaderCarrier(msg *kafka.Message) HeaderCarrier {
	return HeaderCarrier{msg: msg}
}

// Get returns the first header value for key
func (c HeaderCarrier) Get(key string) string {
	for _, h := range c.msg.Headers {
		if h.Key == key {
			return string(h.Value)
		}
	}
	return ""
}

// Set replaces or appends a header
func (c HeaderCarrier) Set(key, value string) {
	for i, h := range c.msg.Headers {
		if h.Key == key {
			c.msg.Headers[i].Value = []byte(value)
			return
		}
	}
	c.msg.Headers = append(c.msg.Headers, kafka.Header{Key: key, Value: []byte(value)})
}

// Keys lists header keys in order
func (c HeaderCarrier) Keys() []string {
	keys := make([]string, len(c.msg.Headers))
	for i, h := range c.msg.Headers {
		keys[i] = h.Key
	}
	return keys
}
