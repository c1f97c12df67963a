package main

import (
	"fmt"
	"strings"
)

// flagValue represents a flag name and its current value for validation.
type flagValue struct {
	name  string
	value string
}

// requireAll returns an error naming every flag that is empty.
func requireAll(flags ...flagValue) error {
	var missing []string
	for _, f := range flags {
		if strings.TrimSpace(f.value) == "" {
			missing = append(missing, f.name)
		}
	}

	switch len(missing) {
	case 0:
		return nil
	case 1:
		return fmt.Errorf("%s is required", missing[0])
	default:
		return fmt.Errorf("%s are required", strings.Join(missing, ", "))
	}
}
