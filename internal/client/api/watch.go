package api

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
)

// Snapshot is one live-update frame from a watch stream. The raw data
// is the full collection state at notification time.
type Snapshot struct {
	Collection string
	Data       json.RawMessage
}

// Watch opens an SSE stream for the named collection ("tasks" or
// "users") and sends each snapshot on the returned channel until the
// context is cancelled or the stream ends. The channel is closed on
// exit; read the error from the returned function afterwards.
func (c *Client) Watch(ctx context.Context, collection string) (<-chan Snapshot, func() error, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/v1/watch/"+collection, nil)
	if err != nil {
		return nil, nil, err
	}
	req.Header.Set("Accept", "text/event-stream")
	if access, _ := c.tokens(); access != "" {
		req.Header.Set("Authorization", "Bearer "+access)
	}

	// The stream stays open indefinitely, so it cannot share the
	// timeout-bound client used for request/response calls.
	stream := &http.Client{Transport: c.http.Transport}
	resp, err := stream.Do(req)
	if err != nil {
		return nil, nil, fmt.Errorf("request failed: %w", err)
	}
	if resp.StatusCode >= 400 {
		defer resp.Body.Close()
		return nil, nil, statusError(resp.StatusCode, nil)
	}

	ch := make(chan Snapshot)
	var streamErr error
	done := make(chan struct{})

	go func() {
		defer close(ch)
		defer close(done)
		defer resp.Body.Close()

		scanner := bufio.NewScanner(resp.Body)
		scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
		for scanner.Scan() {
			line := scanner.Text()
			if !strings.HasPrefix(line, "data: ") {
				continue
			}
			data := json.RawMessage(strings.TrimPrefix(line, "data: "))
			select {
			case ch <- Snapshot{Collection: collection, Data: data}:
			case <-ctx.Done():
				return
			}
		}
		if err := scanner.Err(); err != nil && ctx.Err() == nil {
			streamErr = err
		}
	}()

	wait := func() error {
		<-done
		return streamErr
	}
	return ch, wait, nil
}
