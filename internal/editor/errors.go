package editor

import "errors"

// Advisory errors. None of them are fatal; callers surface them to the user
// and carry on with the document unchanged.
var (
	ErrNoElement       = errors.New("no such element")
	ErrNothingSelected = errors.New("nothing selected")
	ErrEmptyText       = errors.New("text is empty")
	ErrInvalidFontSize = errors.New("font size out of range")
	ErrInvalidStroke   = errors.New("stroke width out of range")
	ErrInvalidColor    = errors.New("invalid color")
	ErrInvalidSize     = errors.New("canvas size out of range")
)
