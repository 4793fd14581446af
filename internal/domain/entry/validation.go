package entry

import (
	"fmt"
	"strings"
)

const (
	maxTitleLen   = 512
	maxContentLen = 1 << 20
	maxTags       = 64
)

// ValidateCreateInput checks a creation request before persisting.
func ValidateCreateInput(req CreateRequest) error {
	if strings.TrimSpace(req.Content) == "" {
		return fmt.Errorf("%w: content is required", ErrInvalidInput)
	}
	if len(req.Title) > maxTitleLen {
		return fmt.Errorf("%w: title exceeds %d characters", ErrInvalidInput, maxTitleLen)
	}
	if len(req.Content) > maxContentLen {
		return fmt.Errorf("%w: content exceeds %d bytes", ErrInvalidInput, maxContentLen)
	}
	if len(req.Tags) > maxTags {
		return fmt.Errorf("%w: too many tags (max %d)", ErrInvalidInput, maxTags)
	}
	if err := validateMood(req.Mood); err != nil {
		return err
	}
	return nil
}

func validateMood(mood *int) error {
	if mood != nil && (*mood < 1 || *mood > 5) {
		return fmt.Errorf("%w: mood must be between 1 and 5", ErrInvalidInput)
	}
	return nil
}

// normalizeTags trims whitespace, drops empties and deduplicates while
// preserving the order tags were given in.
func normalizeTags(tags []string) []string {
	var out []string
	seen := make(map[string]struct{}, len(tags))
	for _, tag := range tags {
		tag = strings.TrimSpace(tag)
		if tag == "" {
			continue
		}
		if _, ok := seen[tag]; ok {
			continue
		}
		seen[tag] = struct{}{}
		out = append(out, tag)
	}
	return out
}
