package universe

import "errors"

var (
	//ErrInvalidDimension is returned when a grid is created with a non-positive height or width
	ErrInvalidDimension = errors.New("invalid dimension")
	//ErrSizeMismatch is returned when an explicit cell sequence does not cover the grid exactly
	ErrSizeMismatch = errors.New("size mismatch")
	//ErrOutOfBounds is returned when a row or column lies outside the grid
	ErrOutOfBounds = errors.New("out of bounds")
	//ErrUnknownFill is returned by ParseFill for unsupported policy names
	ErrUnknownFill = errors.New("unknown fill policy")
	//ErrUnknownEngine is returned by ParseEngine and Grid.SetEngine for unsupported engine names
	ErrUnknownEngine = errors.New("unknown engine")
	//ErrUnknownTemplate is returned when settling a template that was never added
	ErrUnknownTemplate = errors.New("unknown template")
	//ErrInvalidInterval is returned by Options.Validate for a non-positive step interval
	ErrInvalidInterval = errors.New("invalid interval")
)
