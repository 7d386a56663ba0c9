package service

import "github.com/google/uuid"

// parseID parses the string form of an entity ID.
func parseID(id string) (uuid.UUID, error) {
	return uuid.Parse(id)
}
