// Package staffdex provides a Go client for the staffdex employee retrieval API.
//
//	client, _ := staffdex.New("http://localhost:8000", staffdex.WithAPIKey(key))
//	res, err := client.Hybrid(ctx, "golang kubernetes fintech 5+ years", 5)
//	if errors.Is(err, staffdex.ErrIndexUnavailable) {
//	    res2, _ := client.Keyword(ctx, "golang kubernetes fintech 5+ years", 5)
//	    ...
//	}
//
// Keyword search needs no vector index or embedding provider and keeps
// working when the server reports a degraded health status.
package staffdex
