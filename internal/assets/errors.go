package assets

import "errors"

// ErrDecode indicates an image file could not be decoded.
var ErrDecode = errors.New("cannot decode image")
