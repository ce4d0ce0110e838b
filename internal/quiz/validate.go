package quiz

import (
	"fmt"
	"strings"
)

// ValidateBundle performs structural checks on a bundle and returns a combined
// error describing every problem found, or nil if the bundle is usable.
// Sets with no questions are allowed here; StartAttempt rejects them.
func ValidateBundle(b *TopicBundle) error {
	if b == nil {
		return fmt.Errorf("%w: nil bundle", ErrInvalidBundle)
	}

	var errs []string
	if strings.TrimSpace(b.Topic) == "" {
		errs = append(errs, "topic name is empty")
	}

	setIDs := make(map[string]bool, len(b.Sets))
	for i, s := range b.Sets {
		if s.ID == "" {
			errs = append(errs, fmt.Sprintf("set %d has an empty setId", i))
		} else if setIDs[s.ID] {
			errs = append(errs, fmt.Sprintf("duplicate set ID: %q", s.ID))
		}
		setIDs[s.ID] = true

		qIDs := make(map[ID]bool, len(s.Questions))
		for _, q := range s.Questions {
			prefix := fmt.Sprintf("set %q question %q", s.ID, q.ID)
			if q.ID == "" {
				errs = append(errs, fmt.Sprintf("set %q has a question with an empty id", s.ID))
			} else if qIDs[q.ID] {
				errs = append(errs, fmt.Sprintf("%s: duplicate question ID", prefix))
			}
			qIDs[q.ID] = true

			if len(q.Options) < 2 {
				errs = append(errs, fmt.Sprintf("%s: needs at least 2 options, got %d", prefix, len(q.Options)))
			}
			if q.Correct < 0 || q.Correct >= len(q.Options) {
				errs = append(errs, fmt.Sprintf("%s: correct index %d out of range", prefix, q.Correct))
			}
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("%w:\n  %s", ErrInvalidBundle, strings.Join(errs, "\n  "))
	}
	return nil
}
