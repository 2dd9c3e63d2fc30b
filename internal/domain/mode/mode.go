package mode

import (
	"fmt"

	"github.com/kailas-cloud/regexboard/internal/domain"
)

// Mode is the operating mode of the dashboard.
type Mode string

// Operating modes.
const (
	// Edit manages the pattern set.
	Edit Mode = "edit"
	// Approval reviews the matches of one pattern.
	Approval Mode = "approval"
)

// Default is the mode shown when none is chosen.
const Default = Approval

// IsValid checks if the mode is one of the supported values.
func (m Mode) IsValid() bool {
	return m == Edit || m == Approval
}

// Parse converts s to a Mode. The empty string yields Default.
func Parse(s string) (Mode, error) {
	if s == "" {
		return Default, nil
	}
	m := Mode(s)
	if !m.IsValid() {
		return "", fmt.Errorf("%w: %q (want %q or %q)", domain.ErrInvalidMode, s, Edit, Approval)
	}
	return m, nil
}
