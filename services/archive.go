package services

import (
	"context"
)

// ResultArchiver stores a JSON document and returns its public URL.
type ResultArchiver interface {
	PutJSON(ctx context.Context, key string, v any) (string, error)
}

func archiveKey(eventID string) string {
	return "drafts/" + eventID + "/picks.json"
}
