//go:build !darwin

package keyboard

type unsupportedPoster struct{}

func newPoster() poster { return unsupportedPoster{} }

func (unsupportedPoster) key(uint16, Flags, bool, int) error { return ErrUnsupported }
func (unsupportedPoster) text([]uint16, bool, int) error     { return ErrUnsupported }
