package savegame

import (
	"errors"
	"fmt"
)

var (
	// ErrCorrupt matches every *CorruptError.
	ErrCorrupt = errors.New("corrupt save")

	// ErrIO matches every *IOError.
	ErrIO = errors.New("save i/o failure")

	// ErrSlotNotFound is returned for an out-of-range slot or a slot with
	// no save file.
	ErrSlotNotFound = errors.New("save slot not found")
)

// CorruptError indicates save data that cannot be parsed, fails schema
// validation, or decodes to an out-of-range state.
type CorruptError struct {
	Slot int // 0 for imported data
	Err  error
}

func (e *CorruptError) Error() string {
	if e.Slot == 0 {
		return fmt.Sprintf("corrupt save data: %v", e.Err)
	}
	return fmt.Sprintf("corrupt save in slot %d: %v", e.Slot, e.Err)
}

func (e *CorruptError) Unwrap() error { return e.Err }

// Is makes errors.Is(err, ErrCorrupt) true for any *CorruptError.
func (e *CorruptError) Is(target error) bool { return target == ErrCorrupt }

// IOError indicates a file-system failure while reading or writing a save.
type IOError struct {
	Op   string
	Path string
	Err  error
}

func (e *IOError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err)
}

func (e *IOError) Unwrap() error { return e.Err }

// Is makes errors.Is(err, ErrIO) true for any *IOError.
func (e *IOError) Is(target error) bool { return target == ErrIO }

func corrupt(slot int, format string, args ...any) error {
	return &CorruptError{Slot: slot, Err: fmt.Errorf(format, args...)}
}
