package state

import (
	"context"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/erazemk/najdeno/internal/api"
	"github.com/erazemk/najdeno/internal/logger"
	"github.com/erazemk/najdeno/internal/metrics"
)

// Slice names, used in errors, logs, metrics and change notifications.
const (
	SliceAuth    = "auth"
	SliceUser    = "user"
	SliceItem    = "item"
	SliceComment = "comment"
	SliceReward  = "reward"
	SliceAdmin   = "admin"
)

const (
	outcomeFulfilled = "fulfilled"
	outcomeRejected  = "rejected"
)

// OpError is returned by a rejected operation. Message is what the slice
// recorded as its error.
type OpError struct {
	Slice   string
	Op      string
	Message string
	Err     error
}

func (e *OpError) Error() string {
	return e.Slice + "/" + e.Op + ": " + e.Message
}

func (e *OpError) Unwrap() error { return e.Err }

// tracker is a loading/error pair. Loading holds while any request it
// started is unsettled; the error is whatever the latest phase left.
type tracker struct {
	inflight map[uuid.UUID]string
	err      string
}

func (t *tracker) begin(op string) uuid.UUID {
	if t.inflight == nil {
		t.inflight = make(map[uuid.UUID]string)
	}
	id := uuid.New()
	t.inflight[id] = op
	t.err = ""
	return id
}

func (t *tracker) fulfill(id uuid.UUID) {
	delete(t.inflight, id)
}

func (t *tracker) reject(id uuid.UUID, msg string) {
	delete(t.inflight, id)
	t.err = msg
}

func (t *tracker) loading() bool {
	return len(t.inflight) > 0
}

// base is embedded in every slice.
type base struct {
	name    string
	log     *zap.Logger
	metrics *metrics.Metrics
	notify  func(slice string)

	mu sync.Mutex
}

func (b *base) init(name string, log *zap.Logger, m *metrics.Metrics, notify func(string)) {
	b.name = name
	b.log = logger.OrNop(log).Named(name)
	b.metrics = m
	b.notify = notify
}

// changed notifies listeners. Never call it with mu held.
func (b *base) changed() {
	if b.notify != nil {
		b.notify(b.name)
	}
}

// clearError resets the error on tr, which must belong to b.
func (b *base) clearError(tr *tracker) {
	b.mu.Lock()
	tr.err = ""
	b.mu.Unlock()
	b.changed()
}

// operation describes one async operation of a slice.
type operation[T any] struct {
	name     string
	fallback string
	// message extracts the recorded error text; api.ErrorMessage if nil.
	message func(err error, fallback string) string
	call    func(ctx context.Context) (T, error)
	// fulfilled and rejected run with the slice mutex held.
	fulfilled func(T)
	rejected  func()
}

// run drives op through its lifecycle on tr, which must belong to b.
func run[T any](ctx context.Context, b *base, tr *tracker, op operation[T]) (T, error) {
	b.mu.Lock()
	id := tr.begin(op.name)
	b.mu.Unlock()
	b.metrics.OperationStarted(b.name)
	b.changed()

	result, err := op.call(ctx)

	var opErr *OpError
	b.mu.Lock()
	if err != nil {
		extract := op.message
		if extract == nil {
			extract = api.ErrorMessage
		}
		opErr = &OpError{Slice: b.name, Op: op.name, Message: extract(err, op.fallback), Err: err}
		tr.reject(id, opErr.Message)
		if op.rejected != nil {
			op.rejected()
		}
	} else {
		tr.fulfill(id)
		if op.fulfilled != nil {
			op.fulfilled(result)
		}
	}
	b.mu.Unlock()

	if opErr != nil {
		b.metrics.OperationSettled(b.name, op.name, outcomeRejected)
		b.log.Info("operation rejected", zap.String("op", op.name), zap.String("message", opErr.Message), zap.Error(err))
	} else {
		b.metrics.OperationSettled(b.name, op.name, outcomeFulfilled)
		b.log.Debug("operation fulfilled", zap.String("op", op.name))
	}
	b.changed()

	if opErr != nil {
		var zero T
		return zero, opErr
	}
	return result, nil
}

// replaceByID swaps the element with the same id as v. It reports whether
// one was found.
func replaceByID[T any](list []T, v T, id func(T) int64) bool {
	for i := range list {
		if id(list[i]) == id(v) {
			list[i] = v
			return true
		}
	}
	return false
}
