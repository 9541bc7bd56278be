package internal

import "fmt"

// SessionError represents a failure while extracting a single session. It is
// isolated to that session; batch processing continues past it.
type SessionError struct {
	SessionID string
	Op        string // "read", "stat", "write"
	Err       error
}

func (e *SessionError) Error() string {
	return fmt.Sprintf("session %s: %s: %v", e.SessionID, e.Op, e.Err)
}

func (e *SessionError) Unwrap() error {
	return e.Err
}

// IndexError represents errors accessing the local session index.
type IndexError struct {
	Op  string // "open", "record", "query"
	Err error
}

func (e *IndexError) Error() string {
	return fmt.Sprintf("index error: %s: %v", e.Op, e.Err)
}

func (e *IndexError) Unwrap() error {
	return e.Err
}

// ConfigError represents errors loading the config file.
type ConfigError struct {
	Path string
	Err  error
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("config error: %s: %v", e.Path, e.Err)
}

func (e *ConfigError) Unwrap() error {
	return e.Err
}
