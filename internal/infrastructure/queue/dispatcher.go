package queue

import (
	"context"
	"hash/fnv"
	"time"

	"github.com/rs/zerolog"
)

const (
	defaultWorkers = 4
	channelBuffer  = 256
	writeTimeout   = 5 * time.Second
)

// LastLoginWriter is the persistence call the dispatcher fans out to.
type LastLoginWriter interface {
	UpdateLastLogin(ctx context.Context, accountID string, ts time.Time) error
}

type lastLogin struct {
	accountID string
	at        time.Time
}

// Dispatcher records last-login timestamps off the request path. Updates are
// sharded by account ID so writes for one account stay ordered.
type Dispatcher struct {
	workers []chan lastLogin
	writer  LastLoginWriter
	log     zerolog.Logger
}

// NewDispatcher creates a Dispatcher with numWorkers shards.
// If numWorkers <= 0, defaultWorkers is used.
func NewDispatcher(numWorkers int, writer LastLoginWriter, log zerolog.Logger) *Dispatcher {
	if numWorkers <= 0 {
		numWorkers = defaultWorkers
	}
	d := &Dispatcher{
		workers: make([]chan lastLogin, numWorkers),
		writer:  writer,
		log:     log,
	}
	for i := range d.workers {
		d.workers[i] = make(chan lastLogin, channelBuffer)
	}
	return d
}

// Start launches the workers. They stop when ctx is cancelled.
func (d *Dispatcher) Start(ctx context.Context) {
	for i, ch := range d.workers {
		go d.runWorker(ctx, i, ch)
	}
}

// Record enqueues an update without blocking. When the shard is full the
// update is dropped and logged; a login never waits on it.
func (d *Dispatcher) Record(_ context.Context, accountID string, ts time.Time) {
	select {
	case d.workers[d.shardIndex(accountID)] <- lastLogin{accountID: accountID, at: ts}:
	default:
		d.log.Warn().Str("account_id", accountID).Msg("last login queue full, update dropped")
	}
}

// Depth returns the number of queued updates across all shards.
func (d *Dispatcher) Depth() int {
	n := 0
	for _, ch := range d.workers {
		n += len(ch)
	}
	return n
}

func (d *Dispatcher) shardIndex(accountID string) int {
	h := fnv.New32a()
	_, _ = h.Write([]byte(accountID))
	return int(h.Sum32() % uint32(len(d.workers)))
}

func (d *Dispatcher) runWorker(ctx context.Context, id int, ch <-chan lastLogin) {
	for {
		select {
		case <-ctx.Done():
			return
		case item, ok := <-ch:
			if !ok {
				return
			}
			writeCtx, cancel := context.WithTimeout(ctx, writeTimeout)
			if err := d.writer.UpdateLastLogin(writeCtx, item.accountID, item.at); err != nil {
				d.log.Error().Err(err).
					Str("account_id", item.accountID).
					Int("worker_id", id).
					Msg("last login update failed")
			}
			cancel()
		}
	}
}
