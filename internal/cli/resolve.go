package cli

import (
	"fmt"
	"strings"
)

// resolveID matches input against known ids: exact first, then
// case-insensitive, then a unique case-insensitive prefix.
func resolveID(kind, input string, ids []string) (string, error) {
	if input == "" {
		return "", fmt.Errorf("%s ID is required", kind)
	}
	for _, id := range ids {
		if id == input {
			return id, nil
		}
	}
	for _, id := range ids {
		if strings.EqualFold(id, input) {
			return id, nil
		}
	}

	var matches []string
	lower := strings.ToLower(input)
	for _, id := range ids {
		if strings.HasPrefix(strings.ToLower(id), lower) {
			matches = append(matches, id)
		}
	}
	switch len(matches) {
	case 0:
		return "", fmt.Errorf("%s not found: %q", kind, input)
	case 1:
		return matches[0], nil
	default:
		return "", fmt.Errorf("%s ID prefix %q is ambiguous (%d matches)", kind, input, len(matches))
	}
}
