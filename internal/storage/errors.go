package storage

import "fmt"

// ConfigLoadError means no usable configuration could be read.
type ConfigLoadError struct {
	Path string
	Err  error
}

func (err *ConfigLoadError) Error() string {
	return fmt.Sprintf("load config %s: %v", err.Path, err.Err)
}

func (err *ConfigLoadError) Unwrap() error {
	return err.Err
}

// EventStoreLoadError means neither the primary nor the bundled event list could be read.
type EventStoreLoadError struct {
	Path string
	Err  error
}

func (err *EventStoreLoadError) Error() string {
	return fmt.Sprintf("load events %s: %v", err.Path, err.Err)
}

func (err *EventStoreLoadError) Unwrap() error {
	return err.Err
}

// EventStoreCorruptError means the primary event list exists but is not valid JSON.
type EventStoreCorruptError struct {
	Path string
	Err  error
}

func (err *EventStoreCorruptError) Error() string {
	return fmt.Sprintf("events file %s is corrupt: %v", err.Path, err.Err)
}

func (err *EventStoreCorruptError) Unwrap() error {
	return err.Err
}

// ReadOnlyConfigError is returned by every attempt to change a loaded config.
type ReadOnlyConfigError struct {
	Key string
}

func (err *ReadOnlyConfigError) Error() string {
	return fmt.Sprintf("config is read-only: cannot set %q", err.Key)
}

// FileWriteError wraps a failure to seed or save a primary file.
type FileWriteError struct {
	Path string
	Err  error
}

func (err *FileWriteError) Error() string {
	return fmt.Sprintf("write %s: %v", err.Path, err.Err)
}

func (err *FileWriteError) Unwrap() error {
	return err.Err
}
