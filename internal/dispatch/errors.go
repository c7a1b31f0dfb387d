package dispatch

import (
	"errors"
	"fmt"
)

// EngineError is returned by internal (non-ABI) dispatch operations that
// can fail in a way worth logging structurally, matched with errors.As.
// ABI trampolines never return it to the application; they report
// xrtypes.Result codes and log failures as slog attributes.
type EngineError struct {
	Code    EngineErrorCode
	Message string

	Session string
	Side    string
	Joint   string
	Path    string
}

// EngineErrorCode categorizes EngineError for errors.As-based matching.
type EngineErrorCode string

const (
	ErrCodeNegotiationFailed    EngineErrorCode = "NEGOTIATION_FAILED"
	ErrCodeLayerInfoInvalid     EngineErrorCode = "LAYER_INFO_INVALID"
	ErrCodeExtensionUnavailable EngineErrorCode = "EXTENSION_UNAVAILABLE"
	ErrCodeHandSamplingFailed   EngineErrorCode = "HAND_SAMPLING_FAILED"
	ErrCodeNotArmed             EngineErrorCode = "NOT_ARMED"
)

// Error implements the error interface.
func (e *EngineError) Error() string {
	switch {
	case e.Side != "" && e.Joint != "":
		return fmt.Sprintf("%s: %s (side=%s, joint=%s)", e.Code, e.Message, e.Side, e.Joint)
	case e.Path != "":
		return fmt.Sprintf("%s: %s (path=%s)", e.Code, e.Message, e.Path)
	case e.Session != "":
		return fmt.Sprintf("%s: %s (session=%s)", e.Code, e.Message, e.Session)
	default:
		return fmt.Sprintf("%s: %s", e.Code, e.Message)
	}
}

// IsNotArmed reports whether err is an EngineError for an engine that has
// not yet completed instance creation.
func IsNotArmed(err error) bool {
	var ee *EngineError
	if errors.As(err, &ee) {
		return ee.Code == ErrCodeNotArmed
	}
	return false
}
