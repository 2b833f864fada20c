package messaging

// Config holds configuration for the NATS load queue.
type Config struct {
	// URL is the NATS server URL.
	URL string `mapstructure:"url" default:"nats://127.0.0.1:4222"`
	// Subject is the subject vendor batches are published on.
	Subject string `mapstructure:"subject" default:"adherence.loads"`
	// Queue is the queue group name; several listeners in one group share the feed.
	Queue string `mapstructure:"queue" default:"adherence-loader"`
	// Name identifies this connection on the server.
	Name string `mapstructure:"name" default:"adherence-sync"`
}
