//go:build !windows

package input

// DS4 is unavailable off Windows; NewDS4 always fails.
type DS4 struct {
	NopGamepad
}

// NewDS4 returns ErrGamepadUnsupported.
func NewDS4() (*DS4, error) {
	return nil, ErrGamepadUnsupported
}
