package menu

import "errors"

var (
	ErrUnknownRadioMember = errors.New("unknown radio member")
	ErrUnknownItem        = errors.New("unknown menu item")
	ErrMenuDeleted        = errors.New("menu deleted")
)

// LoadError is returned when a menu document cannot be turned into a native
// menu. Nothing from a failed load stays attached to the toolkit.
type LoadError struct {
	Op  string
	Err error
}

func (e *LoadError) Error() string {
	return "menu " + e.Op + ": " + e.Err.Error()
}

func (e *LoadError) Unwrap() error {
	return e.Err
}
