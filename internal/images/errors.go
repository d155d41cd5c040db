package images

import "errors"

// ErrUnsupportedFormat is returned when downloaded file is not a supported image.
var ErrUnsupportedFormat = errors.New("unsupported image format")
