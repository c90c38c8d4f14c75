package engine

import "fmt"

// UnknownQuestionError reports a question identifier that is not in the
// catalog or not a column of the table being queried.
type UnknownQuestionError struct {
	ID string
}

func (e *UnknownQuestionError) Error() string {
	return fmt.Sprintf("question %q not found in survey data", e.ID)
}
