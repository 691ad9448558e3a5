package capture

import (
	"fmt"
	"os"
	"runtime"
)

// probeDevice checks the device node before handing it to OpenCV, which
// reports every failure the same way. Only Linux exposes a node to check.
var probeDevice = func(deviceID int) error {
	if runtime.GOOS != "linux" {
		return nil
	}
	return probePath(fmt.Sprintf("/dev/video%d", deviceID))
}

// probePath classifies access to a device node.
func probePath(path string) error {
	f, err := os.Open(path)
	if err == nil {
		f.Close()
		return nil
	}
	switch {
	case os.IsNotExist(err):
		return fmt.Errorf("%s: %w", path, ErrDeviceNotFound)
	case os.IsPermission(err):
		return fmt.Errorf("%s: %w", path, ErrPermissionDenied)
	default:
		return fmt.Errorf("%s: %w", path, err)
	}
}
