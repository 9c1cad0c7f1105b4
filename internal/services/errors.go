package services

import "errors"

// Report service errors
var (
	ErrNoRunDirectories = errors.New("no run directories found")
	ErrNoInputs         = errors.New("no input directory or input files given")
)
