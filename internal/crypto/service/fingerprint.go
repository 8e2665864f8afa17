package service

import (
	"fmt"
	"os"
	"runtime"
	"strings"
)

// DeviceFingerprint returns a stable description of the current device. It is
// hashed into the root key, so it must return the same value on every unlock
// of the same device.
type DeviceFingerprint func() (string, error)

// StaticFingerprint returns a DeviceFingerprint that always yields value.
func StaticFingerprint(value string) DeviceFingerprint {
	return func() (string, error) {
		return value, nil
	}
}

// HostFingerprint returns the configured fingerprint when set, and otherwise
// hostname, GOOS and GOARCH joined with "|".
func HostFingerprint(configured string) DeviceFingerprint {
	return func() (string, error) {
		if configured != "" {
			return configured, nil
		}
		host, err := os.Hostname()
		if err != nil {
			return "", fmt.Errorf("failed to read hostname: %w", err)
		}
		return strings.Join([]string{host, runtime.GOOS, runtime.GOARCH}, "|"), nil
	}
}
