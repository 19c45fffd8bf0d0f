package factory

import (
	"time"

	fab "github.com/Goldziher/fabricator"
)

func NewUser[T any](customData ...map[string]any) T {
	instance := fab.New(*new(T))

	return instance.Build(customData...)
}

// NewTodo defaults both timestamps to now unless the caller supplies
// them; the service persists whatever the caller sends.
func NewTodo[T any](customData ...map[string]any) T {
	instance := fab.New(*new(T))

	hasCreatedAt := false
	hasUpdatedAt := false

	for _, data := range customData {
		if _, exists := data["CreatedAt"]; exists {
			hasCreatedAt = true
		}

		if _, exists := data["UpdatedAt"]; exists {
			hasUpdatedAt = true
		}
	}

	now := time.Now().UTC().Truncate(time.Second)
	defaults := map[string]any{}

	if !hasCreatedAt {
		defaults["CreatedAt"] = now
	}

	if !hasUpdatedAt {
		defaults["UpdatedAt"] = now
	}

	customData = append(customData, defaults)

	return instance.Build(customData...)
}
