package funcmatch

import "fmt"

// ShapeError reports a length mismatch between the shared x grid and a
// measured series or candidate curve. It is raised before any scoring begins,
// never after partial results exist.
type ShapeError struct {
	What string
	Got  int
	Want int
}

func (e ShapeError) Error() string {
	return fmt.Sprintf("funcmatch: %s has %d points, want %d", e.What, e.Got, e.Want)
}

// EmptyInputError reports a grid with no points or a candidate library with no
// curves. Selection cannot proceed on empty input.
type EmptyInputError struct {
	What string
}

func (e EmptyInputError) Error() string {
	return fmt.Sprintf("funcmatch: %s is empty", e.What)
}
