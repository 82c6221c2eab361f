package ports

// Broadcaster fans a structured change event out to connected viewers.
// Implementations must tolerate having no subscribers and must never block
// the calling use case on a slow client.
type Broadcaster interface {
	Broadcast(eventType string, payload map[string]any)
}

// NopBroadcaster satisfies Broadcaster for wiring where no live viewers
// exist, e.g. tests and one-shot tooling.
type NopBroadcaster struct{}

func (NopBroadcaster) Broadcast(string, map[string]any) {}
