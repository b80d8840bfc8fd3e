package extract

import "fmt"

// Error reports an unreadable document. It aborts the current pipeline
// action without mutating any state; the surface shows Reason to the
// teacher, who can retry with a different file.
type Error struct {
	Name   string
	Reason string
}

func (e *Error) Error() string {
	if e.Name != "" {
		return fmt.Sprintf("cannot read %q: %s", e.Name, e.Reason)
	}
	return fmt.Sprintf("cannot read document: %s", e.Reason)
}
