package errors

import (
	stderrors "errors"

	"github.com/neuronlabs/neuron-graph/errors/class"
)

// ClassOf gets the classification of the first ClassError found in the 'err' chain.
// Returns zero class if none is found.
func ClassOf(err error) class.Class {
	var classError ClassError
	if !stderrors.As(err, &classError) {
		return class.Class(0)
	}
	return classError.Class()
}

// IsClass checks if given error is of given 'class'.
func IsClass(err error, c class.Class) bool {
	if err == nil {
		return false
	}
	return ClassOf(err) == c
}

// IsMajor checks if given error classification is composed of provided major.
func IsMajor(err error, m class.Major) bool {
	if err == nil {
		return false
	}
	return ClassOf(err).IsMajor(m)
}

// IsNotFound checks if the error states that a node or a connection doesn't exist.
func IsNotFound(err error) bool {
	switch ClassOf(err) {
	case class.NodeNotFound, class.ConnectionDeleteNotFound:
		return true
	}
	return false
}
