// Package class contains the error classification used by the neuron-graph packages.
//
// A Class is composed of a Major - the global scope division like 'Schema', 'Node' or 'Store' -
// and a minor index unique within given major - i.e. Node - Not Found.
package class

import (
	"strings"
)

const minorBitSize = 8

// Major is the top level error classification.
type Major uint8

// Name returns the major registered name.
func (m Major) Name() string {
	if int(m) >= len(majorNames) {
		return ""
	}
	return majorNames[m]
}

// Class is the error classification composed of the major and minor values.
type Class uint16

// Major gets the class major.
func (c Class) Major() Major {
	return Major(c >> minorBitSize)
}

// IsMajor checks if the given class is composed of provided major 'm'.
func (c Class) IsMajor(m Major) bool {
	return c.Major() == m
}

// Minor gets the minor value of the class, unique within its major.
func (c Class) Minor() uint8 {
	return uint8(c & (1<<minorBitSize - 1))
}

// String implements fmt.Stringer interface.
func (c Class) String() string {
	name, ok := classNames[c]
	if !ok {
		return c.Major().Name()
	}
	return c.Major().Name() + strings.Replace(name, " ", "", -1)
}

func newClass(m Major, minor uint8, name string) Class {
	c := Class(uint16(m)<<minorBitSize | uint16(minor))
	classNames[c] = name
	return c
}

// Majors.
const (
	MjrUnknown Major = iota
	MjrSchema
	MjrNode
	MjrConnection
	MjrHook
	MjrStore
	MjrConfig
	MjrCommon
)

var majorNames = []string{"Unknown", "Schema", "Node", "Connection", "Hook", "Store", "Config", "Common"}

var classNames = map[Class]string{}

// Schema classifications.
var (
	// SchemaDuplicate is the class for entities, collections or connections registered more than once.
	SchemaDuplicate = newClass(MjrSchema, 1, "Duplicate")
	// SchemaUnknown is the class used when a schema entity, connection or slot is not registered.
	SchemaUnknown = newClass(MjrSchema, 2, "Unknown")
	// SchemaInvalid is the class used for malformed schema definitions.
	SchemaInvalid = newClass(MjrSchema, 3, "Invalid")
	// SchemaFrozen is the class used for registrations after the schema was frozen.
	SchemaFrozen = newClass(MjrSchema, 4, "Frozen")
)

// Node classifications.
var (
	// NodeNotFound is the class used when the node with given key doesn't exist.
	NodeNotFound = newClass(MjrNode, 1, "Not Found")
	// NodeConflict is the class used by the strict create policy for already existing keys.
	NodeConflict = newClass(MjrNode, 2, "Conflict")
	// NodeValidation is the class used by the strict create policy when the key value is missing.
	NodeValidation = newClass(MjrNode, 3, "Validation")
	// NodeCreateFailed is the class used when the index or the raw node creation failed.
	NodeCreateFailed = newClass(MjrNode, 4, "Create Failed")
	// NodeDeleteFailed is the class used when the relationship cleanup of a deleted node failed.
	NodeDeleteFailed = newClass(MjrNode, 5, "Delete Failed")
)

// Connection classifications.
var (
	// ConnectionStartMissing is the class used when the start node of a connection doesn't exist.
	ConnectionStartMissing = newClass(MjrConnection, 1, "Start Missing")
	// ConnectionCreateFailed is the class used when the far side node could not be resolved.
	ConnectionCreateFailed = newClass(MjrConnection, 2, "Create Failed")
	// ConnectionUpdateNoProperties is the class used when an existing connection is posted without properties.
	ConnectionUpdateNoProperties = newClass(MjrConnection, 3, "Update No Properties")
	// ConnectionDeleteNotFound is the class used when the deleted connection doesn't exist.
	ConnectionDeleteNotFound = newClass(MjrConnection, 4, "Delete Not Found")
	// ConnectionDeleteFailed is the class used when the matched connections could not be deleted.
	ConnectionDeleteFailed = newClass(MjrConnection, 5, "Delete Failed")
)

// Hook classifications.
var (
	// HookRejection is the class used when a hook aborts the operation.
	HookRejection = newClass(MjrHook, 1, "Rejection")
)

// Store classifications.
var (
	// StoreRemoteCall is the class for undistinguished network or store failures.
	StoreRemoteCall = newClass(MjrStore, 1, "Remote Call")
	// StoreBatchEmpty is the class used when an empty batch is submitted.
	StoreBatchEmpty = newClass(MjrStore, 2, "Batch Empty")
	// StoreInvalidPattern is the class used for query patterns that could not be executed.
	StoreInvalidPattern = newClass(MjrStore, 3, "Invalid Pattern")
)

// Config classifications.
var (
	// ConfigRead is the class used when reading the configuration failed.
	ConfigRead = newClass(MjrConfig, 1, "Read")
	// ConfigInvalid is the class used for configuration validation failures.
	ConfigInvalid = newClass(MjrConfig, 2, "Invalid")
)

// Common classifications.
var (
	// CommonLoggerUnknownLevel is the class used for unknown logger levels.
	CommonLoggerUnknownLevel = newClass(MjrCommon, 1, "Logger Unknown Level")
	// CommonLoggerNotImplement is the class used for loggers that doesn't implement some interface.
	CommonLoggerNotImplement = newClass(MjrCommon, 2, "Logger Not Implement")
	// CommonInvalidOptions is the class used for invalid operation options.
	CommonInvalidOptions = newClass(MjrCommon, 3, "Invalid Options")
	// CommonInvalidPath is the class used when a request path could not be classified.
	CommonInvalidPath = newClass(MjrCommon, 4, "Invalid Path")
)
