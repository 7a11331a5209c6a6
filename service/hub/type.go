package hub

import "net/http"

// Message is the JSON envelope pushed to every dashboard client.
type Message struct {
	Type      string      `json:"type"`
	Payload   interface{} `json:"payload"`
	Timestamp int64       `json:"timestamp"`
}

type IService interface {
	Handler() http.HandlerFunc
	Broadcast(msgType string, payload interface{})
	ClientCount() int
	Close()
}
