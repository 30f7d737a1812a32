package skills

import "fmt"

// NotFoundError reports a descriptor path with no file behind it.
type NotFoundError struct {
	Path string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("skill file not found: %s", e.Path)
}
