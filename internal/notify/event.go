package notify

import (
	"encoding/json"
	"fmt"
	"time"
)

// Wire-level event types. Clients re-fetch affected data when one arrives.
const (
	EventConnected       = "connected"
	EventPing            = "ping"
	EventFolderCreated   = "folder_created"
	EventFolderUpdated   = "folder_updated"
	EventFolderDeleted   = "folder_deleted"
	EventCheckoutCreated = "checkout_created"
	EventCheckoutUpdated = "checkout_updated"
)

// encodeFrame serializes {type, ...payload, timestamp} as one SSE data frame.
func encodeFrame(eventType string, payload map[string]any) ([]byte, error) {
	m := make(map[string]any, len(payload)+2)
	for k, v := range payload {
		m[k] = v
	}
	m["type"] = eventType
	m["timestamp"] = time.Now().UTC().Format(time.RFC3339)

	data, err := json.Marshal(m)
	if err != nil {
		return nil, fmt.Errorf("encode event: %w", err)
	}
	return []byte("data: " + string(data) + "\n\n"), nil
}
