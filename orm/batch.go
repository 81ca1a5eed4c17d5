package orm

import (
	"context"

	"github.com/neuronlabs/neuron-graph/errors"
	"github.com/neuronlabs/neuron-graph/errors/class"
	"github.com/neuronlabs/neuron-graph/repository"
)

// Batch is the ordered queue of the store operations submitted in a single call.
// A batch is scoped to a single logical operation and must not be shared.
type Batch struct {
	store      repository.Batcher
	operations []repository.BatchOperation
}

// NewBatch creates new empty batch for the store.
func NewBatch(store repository.Batcher) *Batch {
	return &Batch{store: store}
}

// DeleteRelationship queues the deletion of the relationship.
func (b *Batch) DeleteRelationship(id string) {
	b.operations = append(b.operations, repository.BatchOperation{Method: repository.MethodDeleteRelationship, Target: id})
}

// Len gets the number of queued operations.
func (b *Batch) Len() int {
	return len(b.operations)
}

// Submit sends the queued operations to the store and clears the queue.
// If any of the operations failed, the returned error is of class.StoreRemoteCall
// with the failures listed in its details.
func (b *Batch) Submit(ctx context.Context) ([]repository.BatchResult, error) {
	if len(b.operations) == 0 {
		return nil, errors.NewDet(class.StoreBatchEmpty, "no batch operations to submit")
	}
	operations := b.operations
	b.operations = nil

	results, err := b.store.Batch(ctx, operations)
	if err != nil {
		return results, err
	}
	if failed := repository.FailedResults(results); len(failed) > 0 {
		multi := make(errors.MultiError, len(failed))
		for i, result := range failed {
			multi[i] = result.Err
		}
		return results, errors.NewDetf(class.StoreRemoteCall, "%d of %d batch operations failed", len(failed), len(operations)).SetDetails(multi.Error())
	}
	return results, nil
}
