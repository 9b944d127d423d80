package core

import (
	"errors"
	"fmt"
)

// Probe errors. Instance creation, device discovery and device creation
// errors are fatal to a probe run, resource creation errors are confined
// to the check that triggered them.
var (
	ErrInstanceCreation      = errors.New("vulkan instance creation failed")
	ErrNoDeviceFound         = errors.New("no vulkan physical device found")
	ErrNoSuitableQueueFamily = errors.New("no suitable queue family found")
	ErrDeviceCreation        = errors.New("vulkan device creation failed")
	ErrResourceCreation      = errors.New("vulkan resource creation failed")
)

// CreationMode tells which path device creation took.
type CreationMode int

const (
	// CreatedFull means the device carries every requested
	// extension and feature.
	CreatedFull CreationMode = iota

	// CreatedBare means the first attempt failed and the device was
	// recreated with all extension and feature requests stripped.
	CreatedBare
)

func (m CreationMode) String() string {
	if m == CreatedBare {
		return "bare"
	}
	return "full"
}

// CapabilityResult is the outcome of a single capability check.
// Notes carry human readable diagnostics for the report.
type CapabilityResult struct {
	Supported bool
	Notes     []string
}

// Notef appends a formatted diagnostic line.
func (r *CapabilityResult) Notef(format string, args ...interface{}) {
	r.Notes = append(r.Notes, fmt.Sprintf(format, args...))
}
