package core

import (
	"errors"
	"testing"

	vk "github.com/goki/vulkan"
)

func TestCreateWithFallbackFullFeatures(t *testing.T) {
	calls := 0
	_, mode, note, err := createWithFallback(func(bare bool) (vk.Device, error) {
		calls++
		if bare {
			t.Error("bare attempt made although full creation succeeded")
		}
		return nil, nil
	})
	if err != nil {
		t.Error(err)
	}
	if mode != CreatedFull {
		t.Errorf("mode = %s, want full", mode)
	}
	if note != "" {
		t.Errorf("unexpected fallback note: %q", note)
	}
	if calls != 1 {
		t.Errorf("create called %d times, want 1", calls)
	}
}

func TestCreateWithFallbackRetriesBareExactlyOnce(t *testing.T) {
	var attempts []bool
	_, mode, note, err := createWithFallback(func(bare bool) (vk.Device, error) {
		attempts = append(attempts, bare)
		if !bare {
			return nil, errors.New("vk.CreateDevice(): extension not present")
		}
		return nil, nil
	})
	if err != nil {
		t.Error(err)
	}
	if mode != CreatedBare {
		t.Errorf("mode = %s, want bare", mode)
	}
	if note == "" {
		t.Error("fallback must leave a diagnostic note")
	}
	if len(attempts) != 2 || attempts[0] || !attempts[1] {
		t.Errorf("attempts = %v, want [false true]", attempts)
	}
}

func TestCreateWithFallbackSecondFailureIsFatal(t *testing.T) {
	calls := 0
	_, _, _, err := createWithFallback(func(bare bool) (vk.Device, error) {
		calls++
		return nil, errors.New("vk.CreateDevice(): device lost")
	})
	if !errors.Is(err, ErrDeviceCreation) {
		t.Errorf("err = %v, want ErrDeviceCreation", err)
	}
	if calls != 2 {
		t.Errorf("create called %d times, want 2", calls)
	}
}

func TestReleaseIdempotent(t *testing.T) {
	var c Context
	c.Release()
	c.Release()

	var nilContext *Context
	nilContext.Release()
}

func TestFormatDriverVersion(t *testing.T) {
	const packed = uint32(1)<<22 | uint32(2)<<12 | 3
	if got := FormatDriverVersion(packed); got != "1.2.3" {
		t.Errorf("FormatDriverVersion = %q, want 1.2.3", got)
	}
}
