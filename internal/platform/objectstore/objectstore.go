package objectstore

import (
	"errors"
	"time"
)

// ErrNotExist is returned when requested object doesn't exist.
var ErrNotExist = errors.New("object doesn't exist")

// Object is a stored object with its last modification time.
type Object struct {
	Name    string
	Updated time.Time
}
