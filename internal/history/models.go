package history

import "time"

const SchemaVersion = 1

// Snapshot is one recorded inspection run: how much the pipeline found and
// how much of it resolved to a URL.
type Snapshot struct {
	ID            string    `json:"id"`
	Timestamp     time.Time `json:"timestamp"`
	Project       string    `json:"project"`
	AppCount      int       `json:"app_count"`
	EndpointCount int       `json:"endpoint_count"`
	ResolvedCount int       `json:"resolved_count"`
}
