package domain

import "fmt"

// Mode is the annotation mode of the host UI. It selects the wording of the
// mode-dependent steps.
type Mode string

const (
	ModeLabels        Mode = "labels"
	ModePoints        Mode = "points"
	ModeBoundingBoxes Mode = "boundingBoxes"
)

// Modes lists the known annotation modes in declaration order.
func Modes() []Mode {
	return []Mode{ModeLabels, ModePoints, ModeBoundingBoxes}
}

// ParseMode validates a raw mode tag.
func ParseMode(raw string) (Mode, error) {
	for _, m := range Modes() {
		if string(m) == raw {
			return m, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownMode, raw)
}

func (m Mode) String() string {
	return string(m)
}
