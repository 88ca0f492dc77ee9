package queue

import (
	"context"
	"hash/fnv"

	"github.com/rs/zerolog"

	"github.com/openhire/recruitment-api/internal/api/metrics"
	"github.com/openhire/recruitment-api/internal/core/ports"
)

const (
	defaultWorkers = 8
	channelBuffer  = 256
)

// Dispatcher fans post-commit domain events out to its registered consumers
// on a fixed set of workers, sharded by target id so that events about the
// same record are always processed in publish order.
type Dispatcher struct {
	workers   []chan ports.DomainEvent
	consumers []ports.EventConsumer
	log       zerolog.Logger
}

// NewDispatcher creates a Dispatcher with numWorkers sharded workers.
// If numWorkers <= 0, defaultWorkers is used.
func NewDispatcher(numWorkers int, log zerolog.Logger, consumers ...ports.EventConsumer) *Dispatcher {
	if numWorkers <= 0 {
		numWorkers = defaultWorkers
	}
	d := &Dispatcher{
		workers:   make([]chan ports.DomainEvent, numWorkers),
		consumers: consumers,
		log:       log,
	}
	for i := range d.workers {
		d.workers[i] = make(chan ports.DomainEvent, channelBuffer)
	}
	return d
}

// Start launches all worker goroutines. Workers stop when ctx is cancelled.
func (d *Dispatcher) Start(ctx context.Context) {
	for i, ch := range d.workers {
		go d.runWorker(ctx, i, ch)
	}
}

// Publish hands an event to the worker responsible for its target.
// The call is non-blocking up to channelBuffer capacity.
func (d *Dispatcher) Publish(event ports.DomainEvent) {
	d.workers[d.shardIndex(event.TargetID)] <- event
}

// shardIndex maps a target id deterministically to a worker index.
func (d *Dispatcher) shardIndex(targetID string) int {
	h := fnv.New32a()
	_, _ = h.Write([]byte(targetID))
	return int(h.Sum32()) % len(d.workers)
}

func (d *Dispatcher) runWorker(ctx context.Context, id int, ch <-chan ports.DomainEvent) {
	for {
		select {
		case <-ctx.Done():
			return
		case event, ok := <-ch:
			if !ok {
				return
			}
			for _, c := range d.consumers {
				if err := c.Consume(ctx, event); err != nil {
					metrics.EventsErrorsTotal.WithLabelValues(c.Name()).Inc()
					d.log.Error().Err(err).
						Str("consumer", c.Name()).
						Str("action", event.Action).
						Str("target_id", event.TargetID).
						Int("worker_id", id).
						Msg("event processing failed")
					continue
				}
				metrics.EventsProcessedTotal.WithLabelValues(c.Name(), event.Action).Inc()
			}
		}
	}
}
