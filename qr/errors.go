package qr

import "errors"

var (
	// ErrDataTooLong is returned when the payload does not fit in the
	// largest allowed version at the requested level.
	ErrDataTooLong = errors.New("qr: data too long")

	// ErrInvalidCharacter is returned when the payload contains a
	// character the forced encoding mode cannot represent.
	ErrInvalidCharacter = errors.New("qr: invalid character for mode")

	errInvalidOption = errors.New("qr: invalid option")
)
