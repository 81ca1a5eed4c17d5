package hooks

import (
	"strings"
)

// Operation is the logical operation the hooks are bound to.
type Operation uint8

// Enumerated operations.
const (
	Create Operation = iota + 1
	Read
	Update
	Delete
	Connect
	Disconnect
)

var operationNames = map[Operation]string{
	Create:     "create",
	Read:       "read",
	Update:     "update",
	Delete:     "delete",
	Connect:    "connect",
	Disconnect: "disconnect",
}

// String implements fmt.Stringer interface.
func (o Operation) String() string {
	if name, ok := operationNames[o]; ok {
		return name
	}
	return "unknown"
}

// OperationSet is the set of operations.
type OperationSet uint8

// AllOperations is the set of all the operations.
var AllOperations = Ops(Create, Read, Update, Delete, Connect, Disconnect)

// Ops creates the operation set.
func Ops(operations ...Operation) OperationSet {
	var s OperationSet
	for _, o := range operations {
		s |= 1 << o
	}
	return s
}

// Has checks if the set contains the operation.
func (s OperationSet) Has(o Operation) bool {
	return s&(1<<o) != 0
}

// String implements fmt.Stringer interface.
func (s OperationSet) String() string {
	var names []string
	for o := Create; o <= Disconnect; o++ {
		if s.Has(o) {
			names = append(names, o.String())
		}
	}
	return strings.Join(names, "|")
}

// Phase is the hook execution phase.
type Phase uint8

// Enumerated phases.
const (
	Before Phase = iota + 1
	After
)

// String implements fmt.Stringer interface.
func (p Phase) String() string {
	switch p {
	case Before:
		return "before"
	case After:
		return "after"
	default:
		return "unknown"
	}
}
