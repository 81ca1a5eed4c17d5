package errors

import (
	"fmt"
	"path/filepath"
	"runtime"
	"strconv"

	"github.com/google/uuid"

	"github.com/neuronlabs/neuron-graph/errors/class"
)

// compile time check for DetailedError interfaces.
var _ ClassError = &DetailedError{}

// ClassError is the interface used for all errors that uses classification system.
type ClassError interface {
	error
	// Class gets current error classification.
	Class() class.Class
}

// DetailedError is the class based error definition.
// Each instance has it's own trackable ID.
type DetailedError struct {
	// ID is a unique error instance identification number.
	ID uuid.UUID
	// Classification defines the error classification.
	Classification class.Class
	// Details contains the detailed information.
	Details string
	// Message is a message used as a string for the golang error interface implementation.
	Message string
	// Operation is the operation name when the error occurred.
	Operation string

	cause error
}

// NewDet creates DetailedError with given 'class' and message 'message'.
func NewDet(c class.Class, message string) *DetailedError {
	err := newDetailed(c)
	err.Message = message
	return err
}

// NewDetf creates DetailedError instance with provided 'class' with formatted message.
func NewDetf(c class.Class, format string, args ...interface{}) *DetailedError {
	err := newDetailed(c)
	err.Message = fmt.Sprintf(format, args...)
	return err
}

// Wrap creates DetailedError with given class 'c' caused by the 'cause' error.
// The message is prefixed to the cause message.
func Wrap(c class.Class, cause error, message string) *DetailedError {
	err := newDetailed(c)
	err.cause = cause
	if cause != nil {
		err.Message = message + ": " + cause.Error()
	} else {
		err.Message = message
	}
	return err
}

// Wrapf creates DetailedError with given class caused by the 'cause' and formatted message.
func Wrapf(c class.Class, cause error, format string, args ...interface{}) *DetailedError {
	return Wrap(c, cause, fmt.Sprintf(format, args...))
}

// Class implements ClassError.
func (e *DetailedError) Class() class.Class {
	return e.Classification
}

// Error implements error interface.
func (e *DetailedError) Error() string {
	return e.Message
}

// Unwrap returns the cause of the error.
func (e *DetailedError) Unwrap() error {
	return e.cause
}

// SetDetails sets the error details and returns itself.
func (e *DetailedError) SetDetails(details string) *DetailedError {
	e.Details = details
	return e
}

// SetDetailsf sets the error's formatted details and returns itself.
func (e *DetailedError) SetDetailsf(format string, args ...interface{}) *DetailedError {
	e.Details = fmt.Sprintf(format, args...)
	return e
}

// WrapDetails prepends the 'details' to the error details message.
func (e *DetailedError) WrapDetails(details string) *DetailedError {
	if e.Details == "" {
		e.Details = details
	} else {
		e.Details = details + " " + e.Details
	}
	return e
}

func newDetailed(c class.Class) *DetailedError {
	err := &DetailedError{
		ID:             uuid.New(),
		Classification: c,
	}
	pc, _, _, ok := runtime.Caller(2)
	details := runtime.FuncForPC(pc)
	if ok && details != nil {
		file, line := details.FileLine(pc)
		_, singleFile := filepath.Split(file)
		err.Operation = details.Name() + "#" + singleFile + ":" + strconv.Itoa(line)
	}
	return err
}
