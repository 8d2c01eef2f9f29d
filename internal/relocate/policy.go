package relocate

import (
	"fmt"
	"strings"
)

// ConflictPolicy decides what happens when the target folder of a move already exists.
type ConflictPolicy string

const (
	// ConflictError fails the move of the project.
	ConflictError ConflictPolicy = "error"
	// ConflictSkip leaves the project where it is.
	ConflictSkip ConflictPolicy = "skip"
	// ConflictOverwrite replaces the existing folder.
	ConflictOverwrite ConflictPolicy = "overwrite"
	// ConflictRename moves the project next to the existing folder, under the first free name-N.
	ConflictRename ConflictPolicy = "rename"
)

var allConflictPolicies = []ConflictPolicy{ConflictError, ConflictSkip, ConflictOverwrite, ConflictRename}

func AllConflictPolicies() []ConflictPolicy {
	return append([]ConflictPolicy(nil), allConflictPolicies...)
}

// ParseConflictPolicy parses a policy name. An empty name selects ConflictError.
func ParseConflictPolicy(value string) (ConflictPolicy, error) {
	if value == "" {
		return ConflictError, nil
	}

	for _, policy := range allConflictPolicies {
		if strings.EqualFold(string(policy), value) {
			return policy, nil
		}
	}

	return "", fmt.Errorf("unknown conflict policy '%s'", value)
}
