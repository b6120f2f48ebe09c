package domain

import "fmt"

// ValidateCatalog checks the shape invariants of a question set: exactly
// QuestionCount questions with unique, contiguous ordinals 1..QuestionCount,
// OptionCount options each, and a correct index in range.
func ValidateCatalog(questions []Question) error {
	if len(questions) != QuestionCount {
		return fmt.Errorf("%w: expected %d questions, got %d", ErrCatalogInvalid, QuestionCount, len(questions))
	}
	seen := make(map[int]bool, len(questions))
	for _, q := range questions {
		if q.Ordinal < 1 || q.Ordinal > QuestionCount {
			return fmt.Errorf("%w: ordinal %d out of range", ErrCatalogInvalid, q.Ordinal)
		}
		if seen[q.Ordinal] {
			return fmt.Errorf("%w: duplicate ordinal %d", ErrCatalogInvalid, q.Ordinal)
		}
		seen[q.Ordinal] = true
		if q.ID == "" {
			return fmt.Errorf("%w: question %d has no id", ErrCatalogInvalid, q.Ordinal)
		}
		if len(q.Options) != OptionCount {
			return fmt.Errorf("%w: question %d has %d options", ErrCatalogInvalid, q.Ordinal, len(q.Options))
		}
		if q.CorrectOption < 0 || q.CorrectOption >= OptionCount {
			return fmt.Errorf("%w: question %d correct option %d out of range", ErrCatalogInvalid, q.Ordinal, q.CorrectOption)
		}
	}
	return nil
}
