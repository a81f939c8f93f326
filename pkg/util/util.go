package util

import (
	"github.com/google/uuid"
)

// GenerateUUID returns a standard v4 UUID string, used for point ids.
func GenerateUUID() string {
	return uuid.New().String()
}
