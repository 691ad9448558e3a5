package game

import "errors"

// ErrInvalidTransition is returned when a command does not apply to the
// current phase, such as restarting a round that has not ended.
var ErrInvalidTransition = errors.New("invalid round transition")

// ErrorKind classifies the terminal failures of a session.
type ErrorKind string

const (
	// ErrorNone means no failure has occurred.
	ErrorNone ErrorKind = ""
	// ErrorCameraPermissionDenied means the device exists but may not be opened.
	ErrorCameraPermissionDenied ErrorKind = "camera_permission_denied"
	// ErrorCameraNotFound means there is no device to open.
	ErrorCameraNotFound ErrorKind = "camera_not_found"
	// ErrorInitialization covers landmark-source load failures and any other camera error.
	ErrorInitialization ErrorKind = "initialization_failure"
)

// Message returns the text shown to the player for the kind.
func (k ErrorKind) Message() string {
	switch k {
	case ErrorNone:
		return ""
	case ErrorCameraPermissionDenied:
		return "Allow camera access for this application, then reload."
	case ErrorCameraNotFound:
		return "No camera was found. Connect one, then reload."
	default:
		return "The game failed to load. Reload to try again."
	}
}
