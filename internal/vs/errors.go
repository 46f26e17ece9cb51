package vs

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrInvalidInputKind is returned when an argument is of the wrong kind,
	// e.g. an empty source collection or a label where a number is required.
	ErrInvalidInputKind = errors.New("vs: invalid input kind")

	// ErrShape matches every *ShapeError.
	ErrShape = errors.New("vs: unexpected column count")

	// ErrSchema matches every *SchemaError.
	ErrSchema = errors.New("vs: unexpected columns")
)

// InvalidKind wraps ErrInvalidInputKind with the failing operation.
func InvalidKind(op, format string, args ...any) error {
	return fmt.Errorf("%s: %w: %s", op, ErrInvalidInputKind, fmt.Sprintf(format, args...))
}

// ShapeError reports a table whose column count is not what the operation
// needs. Want is a lower bound when AtLeast is set.
type ShapeError struct {
	Op      string
	Want    int
	Got     int
	AtLeast bool
}

// Direction returns "too few" or "too many".
func (e *ShapeError) Direction() string {
	if e.Got < e.Want {
		return "too few"
	}
	return "too many"
}

func (e *ShapeError) Error() string {
	want := fmt.Sprint(e.Want)
	if e.AtLeast {
		want = "at least " + want
	}
	return fmt.Sprintf("%s: %s columns: want %s, got %d", e.Op, e.Direction(), want, e.Got)
}

func (e *ShapeError) Is(target error) bool {
	return target == ErrShape
}

// SchemaError reports a table with the right number of columns but the wrong
// names or order.
type SchemaError struct {
	Op   string
	Want []string
	Got  []string
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("%s: columns [%s] do not match [%s]", e.Op,
		strings.Join(e.Got, ", "), strings.Join(e.Want, ", "))
}

func (e *SchemaError) Is(target error) bool {
	return target == ErrSchema
}
