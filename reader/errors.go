package reader

import "fmt"

// ConfigNotFoundError indicates that a pose model configuration could not
// be located. When both Local and Shared are set, neither candidate model
// directory exists; otherwise Local names the missing config file.
type ConfigNotFoundError struct {
	Local  string
	Shared string
}

func (e *ConfigNotFoundError) Error() string {
	if e.Shared == "" {
		return fmt.Sprintf("reader: cannot find model config file in %s", e.Local)
	}
	return fmt.Sprintf("reader: cannot find model dir in either local (%s) or shared (%s) directories", e.Local, e.Shared)
}

// UnsupportedConfigError indicates a model config file whose name does
// not match any supported naming convention.
type UnsupportedConfigError struct {
	Path string
}

func (e *UnsupportedConfigError) Error() string {
	return fmt.Sprintf("reader: the model config file %q is not supported", e.Path)
}

// MissingKeyError indicates that a required key could not be found
// anywhere in a model config document.
type MissingKeyError struct {
	Key  string
	Path string
}

func (e *MissingKeyError) Error() string {
	return fmt.Sprintf("reader: cannot find %q in %s", e.Key, e.Path)
}
