package hooks

import (
	"context"
	"sync"

	"github.com/neuronlabs/neuron-graph/errors"
	"github.com/neuronlabs/neuron-graph/errors/class"
	"github.com/neuronlabs/neuron-graph/log"
	"github.com/neuronlabs/neuron-graph/mapping"
)

// Wildcard is the path matching all the requests.
const Wildcard = "*"

var logger = log.NewModuleLogger("hooks")

// Payload is the hook payload of the logical operation.
type Payload struct {
	Operation Operation
	Phase     Phase
	// Path is the entity name or the connection path of the request.
	Path string
	// Entity is the entity of the request node.
	Entity *mapping.Entity
	// Key is the request node key value.
	Key interface{}
	// Data is the node data of the operation.
	Data mapping.Properties
	// List is the list of the related nodes.
	List []mapping.Properties
	// Meta contains the additional request values shared between the hooks.
	Meta map[string]interface{}
}

// Func is the hook function. A non nil error rejects the operation.
type Func func(ctx context.Context, payload *Payload) error

type hook struct {
	phase      Phase
	operations OperationSet
	path       string
	fn         Func
}

func (h *hook) matches(phase Phase, op Operation, path string) bool {
	return h.phase == phase && h.operations.Has(op) && (h.path == Wildcard || h.path == path)
}

// Pipeline is the ordered collection of the registered hooks.
type Pipeline struct {
	lock  sync.RWMutex
	hooks []*hook
}

// New creates new empty hook pipeline.
func New() *Pipeline {
	return &Pipeline{}
}

// Register adds the hook function 'fn' executed in the 'phase' of the operations 'ops' for the 'path'.
func (p *Pipeline) Register(phase Phase, ops OperationSet, path string, fn Func) error {
	if phase != Before && phase != After {
		return errors.NewDetf(class.CommonInvalidOptions, "invalid hook phase: '%d'", phase)
	}
	if ops == 0 || ops&^AllOperations != 0 {
		return errors.NewDet(class.CommonInvalidOptions, "invalid hook operations")
	}
	if path == "" {
		return errors.NewDet(class.CommonInvalidOptions, "hook path must not be empty")
	}
	if fn == nil {
		return errors.NewDet(class.CommonInvalidOptions, "hook function must not be nil")
	}
	p.lock.Lock()
	defer p.lock.Unlock()

	p.hooks = append(p.hooks, &hook{phase: phase, operations: ops, path: path, fn: fn})
	logger.Debug2f("registered %s %s hook for: '%s'", phase, ops, path)
	return nil
}

// Len gets the number of registered hooks.
func (p *Pipeline) Len() int {
	p.lock.RLock()
	defer p.lock.RUnlock()
	return len(p.hooks)
}

// Run executes the hooks matching the 'phase', operation 'op' and the payload path.
// The hooks are executed sequentially in their registration order. The first hook error stops
// the execution and is returned as the class.HookRejection error. The payload mutations done
// by the preceding hooks are kept.
func (p *Pipeline) Run(ctx context.Context, phase Phase, op Operation, payload *Payload) error {
	payload.Phase, payload.Operation = phase, op

	p.lock.RLock()
	var matched []*hook
	for _, h := range p.hooks {
		if h.matches(phase, op, payload.Path) {
			matched = append(matched, h)
		}
	}
	p.lock.RUnlock()

	for i, h := range matched {
		if err := ctx.Err(); err != nil {
			return errors.Wrapf(class.HookRejection, err, "%s %s '%s'", phase, op, payload.Path)
		}
		if err := h.fn(ctx, payload); err != nil {
			logger.Debugf("%s %s hook %d for: '%s' rejected: %v", phase, op, i, payload.Path, err)
			if errors.IsClass(err, class.HookRejection) {
				return err
			}
			return errors.Wrapf(class.HookRejection, err, "%s %s '%s'", phase, op, payload.Path)
		}
	}
	return nil
}

// Reject creates the hook rejection error.
func Reject(format string, args ...interface{}) error {
	return errors.NewDetf(class.HookRejection, format, args...)
}
