package assessment

import (
	"context"
	"errors"
	"fmt"
	"os"
)

// Permission grants access to the capture device.
type Permission interface {
	Request(ctx context.Context) error
}

// PermissionFunc adapts a function to Permission.
type PermissionFunc func(ctx context.Context) error

func (f PermissionFunc) Request(ctx context.Context) error { return f(ctx) }

// CameraPermission checks that the capture device can be opened for
// reading. An empty Device grants access without a check.
type CameraPermission struct {
	Device string
}

// Request implements Permission.
func (c CameraPermission) Request(context.Context) error {
	if c.Device == "" {
		return nil
	}
	f, err := os.Open(c.Device)
	if err != nil {
		return fmt.Errorf("%s: %w", c.Device, ErrPermissionDenied)
	}
	return f.Close()
}

// BootState is the readiness of the workout path.
type BootState int

const (
	BootPending BootState = iota
	BootOK
	BootFail
)

// Status is the outcome of BootCheck.
type Status struct {
	State BootState
	Err   error
}

// Message is the one-line status shown in the workout view.
func (s Status) Message() string {
	switch s.State {
	case BootOK:
		return "Engine ready!"
	case BootFail:
		if errors.Is(s.Err, ErrPermissionDenied) {
			return "Camera permission denied"
		}
		return s.Err.Error()
	}
	return "Initialising..."
}

// BootCheck requests camera permission and then configures the engine.
// A denial stops here and affects only the workout path.
func BootCheck(ctx context.Context, perm Permission, engine Engine, key string) Status {
	if perm != nil {
		if err := perm.Request(ctx); err != nil {
			if !errors.Is(err, ErrPermissionDenied) {
				err = fmt.Errorf("%w: %v", ErrPermissionDenied, err)
			}
			return Status{State: BootFail, Err: err}
		}
	}
	if err := engine.Configure(ctx, key); err != nil {
		return Status{State: BootFail, Err: err}
	}
	return Status{State: BootOK}
}
