// Package cache provides persistent stores for directions results, keyed by
// the ordered stop coordinates of the query.
package cache

import (
	"encoding/json"
	"fmt"

	"company-map-service/internal/ports"
)

// Results are stored as JSON so all backends share one payload format.
func encodeResult(result *ports.RouteResult) ([]byte, error) {
	raw, err := json.Marshal(result)
	if err != nil {
		return nil, fmt.Errorf("encode route result: %w", err)
	}
	return raw, nil
}

func decodeResult(raw []byte) (*ports.RouteResult, error) {
	var result ports.RouteResult
	if err := json.Unmarshal(raw, &result); err != nil {
		return nil, fmt.Errorf("decode route result: %w", err)
	}
	return &result, nil
}
