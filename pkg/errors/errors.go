// Unified error handling for delta robot kinematics
//
// Copyright (C) 2026  Go Migration Team
//
// This file may be distributed under the terms of the GNU GPLv3 license.

package errors

import (
	stderrors "errors"
	"fmt"
	"strings"
)

// ErrorCode represents the category of error
type ErrorCode string

const (
	// Inverse kinematics failures
	ErrLegUnreachable      ErrorCode = "LEG_UNREACHABLE"
	ErrUniversalJointLimit ErrorCode = "UNIVERSAL_JOINT_LIMIT"
	ErrDirectionConstraint ErrorCode = "DIRECTION_CONSTRAINT"
	ErrMaxNegativeAngle    ErrorCode = "MAX_NEGATIVE_ANGLE"

	// Forward kinematics failures
	ErrDegenerateGeometry    ErrorCode = "DEGENERATE_GEOMETRY"
	ErrNoRealSolution        ErrorCode = "NO_REAL_SOLUTION"
	ErrSingularConfiguration ErrorCode = "SINGULAR_CONFIGURATION"

	// Configuration errors
	ErrConfigSection    ErrorCode = "CONFIG_SECTION"
	ErrConfigOption     ErrorCode = "CONFIG_OPTION"
	ErrConfigValidation ErrorCode = "CONFIG_VALIDATION"
	ErrConfigType       ErrorCode = "CONFIG_TYPE"
)

// NoLeg and NoPose mark an error that is not tied to a leg or a batch index.
const (
	NoLeg  = 0
	NoPose = -1
)

// DeltaError is the error type shared by the solver, config and batch layers.
type DeltaError struct {
	// Code is the error category
	Code ErrorCode

	// Message is a human-readable error description
	Message string

	// Leg is the 1-based leg number, or NoLeg
	Leg int

	// Pose is the index of the pose inside a batch, or NoPose
	Pose int

	// Section is the config section (if applicable)
	Section string

	// Option is the config option name (if applicable)
	Option string

	// Err wraps the underlying error
	Err error

	// Context provides additional context
	Context map[string]interface{}
}

// Error implements the error interface
func (e *DeltaError) Error() string {
	var sb strings.Builder
	sb.WriteString("[")
	sb.WriteString(string(e.Code))
	switch {
	case e.Option != "":
		sb.WriteString(":" + e.Section + "." + e.Option)
	case e.Section != "":
		sb.WriteString(":" + e.Section)
	}
	sb.WriteString("] ")
	if e.Pose != NoPose {
		fmt.Fprintf(&sb, "pose %d: ", e.Pose)
	}
	if e.Leg != NoLeg {
		fmt.Fprintf(&sb, "leg %d: ", e.Leg)
	}
	sb.WriteString(e.Message)
	if e.Err != nil {
		sb.WriteString(": ")
		sb.WriteString(e.Err.Error())
	}
	return sb.String()
}

// Unwrap returns the underlying error
func (e *DeltaError) Unwrap() error {
	return e.Err
}

// SetLeg sets the leg number
func (e *DeltaError) SetLeg(leg int) *DeltaError {
	e.Leg = leg
	return e
}

// SetPose sets the batch index
func (e *DeltaError) SetPose(index int) *DeltaError {
	e.Pose = index
	return e
}

// SetSection sets the config section
func (e *DeltaError) SetSection(section string) *DeltaError {
	e.Section = section
	return e
}

// SetOption sets the config option
func (e *DeltaError) SetOption(option string) *DeltaError {
	e.Option = option
	return e
}

// SetContext adds additional context
func (e *DeltaError) SetContext(key string, value interface{}) *DeltaError {
	if e.Context == nil {
		e.Context = make(map[string]interface{})
	}
	e.Context[key] = value
	return e
}

// New creates a new DeltaError
func New(code ErrorCode, message string) *DeltaError {
	return &DeltaError{
		Code:    code,
		Message: message,
		Leg:     NoLeg,
		Pose:    NoPose,
	}
}

// Wrap wraps an existing error with a code
func Wrap(err error, code ErrorCode, message string) *DeltaError {
	e := New(code, message)
	e.Err = err
	return e
}

// Inverse kinematics errors

// LegUnreachableError reports a parallelogram or two-link closure failure
func LegUnreachableError(reason string) *DeltaError {
	return New(ErrLegUnreachable, reason)
}

// UniversalJointLimitError reports a parallelogram angle below the joint limit
func UniversalJointLimitError(angle, limit float64) *DeltaError {
	return New(ErrUniversalJointLimit, fmt.Sprintf("parallelogram angle %.3f below limit %.3f", angle, limit)).
		SetContext("angle", angle)
}

// DirectionConstraintError reports a platform joint that is not below the base reference
func DirectionConstraintError(dz float64) *DeltaError {
	return New(ErrDirectionConstraint, fmt.Sprintf("platform joint %.3f above base reference", dz))
}

// MaxNegativeAngleError reports a joint angle beyond the negative limit
func MaxNegativeAngleError(phi, limit float64) *DeltaError {
	return New(ErrMaxNegativeAngle, fmt.Sprintf("joint angle %.3f below limit %.3f", phi, limit)).
		SetContext("phi", phi)
}

// Forward kinematics errors

// DegenerateGeometryError reports a singular elimination or linear system
func DegenerateGeometryError(stage string) *DeltaError {
	return New(ErrDegenerateGeometry, "singular "+stage)
}

// NoRealSolutionError reports a negative discriminant
func NoRealSolutionError(discriminant float64) *DeltaError {
	return New(ErrNoRealSolution, fmt.Sprintf("negative discriminant %g", discriminant))
}

// SingularConfigurationError reports that no candidate passed validation
func SingularConfigurationError() *DeltaError {
	return New(ErrSingularConfiguration, "no candidate below the base passes inverse validation")
}

// Config errors

// ConfigSectionError creates an error for missing config section
func ConfigSectionError(section string) *DeltaError {
	return New(ErrConfigSection, fmt.Sprintf("section '%s' not found", section)).
		SetSection(section)
}

// ConfigOptionError creates an error for missing config option
func ConfigOptionError(section, option string) *DeltaError {
	return New(ErrConfigOption, "must be specified").
		SetSection(section).
		SetOption(option)
}

// ConfigValidationError creates an error for config validation failure
func ConfigValidationError(section, option string, reason string) *DeltaError {
	return New(ErrConfigValidation, reason).
		SetSection(section).
		SetOption(option)
}

// ConfigTypeError creates an error for config type conversion failure
func ConfigTypeError(section, option, value string, targetType string, err error) *DeltaError {
	return Wrap(err, ErrConfigType, fmt.Sprintf("failed to parse '%s' as %s", value, targetType)).
		SetSection(section).
		SetOption(option)
}

// Is checks if err, or any error it wraps, carries the given code
func Is(err error, code ErrorCode) bool {
	var de *DeltaError
	for err != nil {
		if !stderrors.As(err, &de) {
			return false
		}
		if de.Code == code {
			return true
		}
		err = de.Err
	}
	return false
}

// CodeOf returns the code of the outermost DeltaError in err, or "".
func CodeOf(err error) ErrorCode {
	var de *DeltaError
	if stderrors.As(err, &de) {
		return de.Code
	}
	return ""
}

// IsInverse checks if error is an inverse kinematics failure
func IsInverse(err error) bool {
	return Is(err, ErrLegUnreachable) ||
		Is(err, ErrUniversalJointLimit) ||
		Is(err, ErrDirectionConstraint) ||
		Is(err, ErrMaxNegativeAngle)
}

// IsForward checks if error is a forward kinematics failure
func IsForward(err error) bool {
	return Is(err, ErrDegenerateGeometry) ||
		Is(err, ErrNoRealSolution) ||
		Is(err, ErrSingularConfiguration)
}

// IsConfig checks if error is a config error
func IsConfig(err error) bool {
	return Is(err, ErrConfigSection) ||
		Is(err, ErrConfigOption) ||
		Is(err, ErrConfigValidation) ||
		Is(err, ErrConfigType)
}
