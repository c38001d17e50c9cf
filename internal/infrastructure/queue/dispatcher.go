package queue

import (
	"context"
	"hash/fnv"
	"strconv"

	"github.com/rs/zerolog"

	"github.com/urbanrenew/renewal-platform/internal/api/metrics"
	"github.com/urbanrenew/renewal-platform/internal/core/ports"
)

const (
	defaultWorkers = 4
	channelBuffer  = 256
)

// Dispatcher routes messages to a fixed set of workers using consistent
// hashing on the conversation ID, guaranteeing in-order delivery within
// each conversation.
type Dispatcher struct {
	workers []chan ports.MessageInput
	service ports.MessageService
	log     zerolog.Logger
}

// NewDispatcher creates a Dispatcher with numWorkers sharded workers.
// If numWorkers <= 0, defaultWorkers is used.
func NewDispatcher(numWorkers int, service ports.MessageService, log zerolog.Logger) *Dispatcher {
	if numWorkers <= 0 {
		numWorkers = defaultWorkers
	}
	d := &Dispatcher{
		workers: make([]chan ports.MessageInput, numWorkers),
		service: service,
		log:     log,
	}
	for i := range d.workers {
		d.workers[i] = make(chan ports.MessageInput, channelBuffer)
	}
	return d
}

// Start launches all worker goroutines. Workers stop when ctx is cancelled.
func (d *Dispatcher) Start(ctx context.Context) {
	for i, ch := range d.workers {
		go d.runWorker(ctx, i, ch)
	}
}

// Enqueue hands a message to the worker responsible for its conversation.
// Never blocks: when the shard's buffer is full the message is shed and
// false is returned, so a slow consumer cannot wedge request handlers.
func (d *Dispatcher) Enqueue(msg ports.MessageInput) bool {
	idx := d.shardIndex(msg.ConversationID)
	select {
	case d.workers[idx] <- msg:
		metrics.MessageQueueDepth.WithLabelValues(strconv.Itoa(idx)).Set(float64(len(d.workers[idx])))
		return true
	default:
		metrics.MessagesDeliveredTotal.WithLabelValues("shed").Inc()
		d.log.Warn().
			Str("conversation_id", msg.ConversationID).
			Int("worker_id", idx).
			Msg("delivery queue full, message shed")
		return false
	}
}

// shardIndex maps a conversation ID deterministically to a worker index.
func (d *Dispatcher) shardIndex(conversationID string) int {
	h := fnv.New32a()
	_, _ = h.Write([]byte(conversationID))
	return int(h.Sum32()) % len(d.workers)
}

func (d *Dispatcher) runWorker(ctx context.Context, id int, ch <-chan ports.MessageInput) {
	workerLabel := strconv.Itoa(id)
	for {
		select {
		case <-ctx.Done():
			return
		case msg, ok := <-ch:
			if !ok {
				return
			}
			if err := d.service.Deliver(ctx, msg); err != nil {
				metrics.MessagesDeliveredTotal.WithLabelValues("error").Inc()
				d.log.Error().Err(err).
					Str("conversation_id", msg.ConversationID).
					Int("worker_id", id).
					Msg("message delivery failed")
			} else {
				metrics.MessagesDeliveredTotal.WithLabelValues("ok").Inc()
			}
			metrics.MessageQueueDepth.WithLabelValues(workerLabel).Set(float64(len(ch)))
		}
	}
}
