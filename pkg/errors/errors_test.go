// Error taxonomy tests
//
// Copyright (C) 2026  Go Migration Team
//
// This file may be distributed under the terms of the GNU GPLv3 license.

package errors

import (
	"fmt"
	"strings"
	"testing"
)

func TestDeltaErrorMessage(t *testing.T) {
	err := MaxNegativeAngleError(-7.5, -5).SetLeg(2).SetPose(3)

	msg := err.Error()
	for _, want := range []string{"[MAX_NEGATIVE_ANGLE]", "pose 3", "leg 2", "-7.500"} {
		if !strings.Contains(msg, want) {
			t.Errorf("expected %q in message, got: %s", want, msg)
		}
	}
	if err.Context["phi"] != -7.5 {
		t.Errorf("expected phi context -7.5, got %v", err.Context["phi"])
	}
}

func TestDeltaErrorConfigMessage(t *testing.T) {
	err := ConfigValidationError("delta_robot", "upper_arm_length", "must be above 0")
	if got := err.Error(); got != "[CONFIG_VALIDATION:delta_robot.upper_arm_length] must be above 0" {
		t.Errorf("unexpected message: %s", got)
	}
}

func TestIsThroughWrapping(t *testing.T) {
	base := LegUnreachableError("arm cannot close")
	wrapped := fmt.Errorf("solve batch: %w", base)

	if !Is(wrapped, ErrLegUnreachable) {
		t.Error("expected wrapped error to match LEG_UNREACHABLE")
	}
	if Is(wrapped, ErrMaxNegativeAngle) {
		t.Error("did not expect MAX_NEGATIVE_ANGLE match")
	}
	if !IsInverse(wrapped) {
		t.Error("expected IsInverse to be true")
	}
	if IsForward(wrapped) {
		t.Error("expected IsForward to be false")
	}
	if CodeOf(wrapped) != ErrLegUnreachable {
		t.Errorf("expected code LEG_UNREACHABLE, got %s", CodeOf(wrapped))
	}
}

func TestIsNestedDeltaErrors(t *testing.T) {
	inner := NoRealSolutionError(-1)
	outer := Wrap(inner, ErrConfigValidation, "outer")

	if !Is(outer, ErrNoRealSolution) {
		t.Error("expected nested code to match")
	}
	if !IsConfig(outer) || !IsForward(outer) {
		t.Error("expected both config and forward classification")
	}
	if CodeOf(outer) != ErrConfigValidation {
		t.Errorf("expected outer code, got %s", CodeOf(outer))
	}
}

func TestIsNilAndForeign(t *testing.T) {
	if Is(nil, ErrLegUnreachable) {
		t.Error("nil must not match")
	}
	if Is(fmt.Errorf("plain"), ErrLegUnreachable) {
		t.Error("foreign error must not match")
	}
	if CodeOf(nil) != "" {
		t.Error("expected empty code for nil")
	}
}
