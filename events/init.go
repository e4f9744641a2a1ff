package events

import "github.com/r3labs/sse/v2"

// New returns an SSE server with the given streams already created. Clients
// connect with ?stream=<name> and only see events published after they join.
func New(streams ...string) *sse.Server {
	server := sse.New()
	server.AutoReplay = false
	for _, stream := range streams {
		server.CreateStream(stream)
	}
	return server
}
