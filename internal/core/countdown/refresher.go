package countdown

import (
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	"countdown/internal/core/model"

	"github.com/robfig/cron/v3"
)

// ErrNotRunning is returned by requests made while the Refresher is stopped.
var ErrNotRunning = errors.New("refresher not running")

// DefaultRolloverSchedule fires at local midnight, when every day count changes.
const DefaultRolloverSchedule = "0 0 * * *"

// Config contains runtime options for Refresher.
type Config struct {
	UpdateInterval   time.Duration
	RolloverSchedule string
}

type requestKind int

const (
	requestRefresh requestKind = iota
	requestReload
	requestAppend
)

type request struct {
	kind   requestKind
	record model.EventRecord
	done   chan error
}

// Refresher is the control loop that owns the Projector. Periodic ticks,
// the midnight rollover, storage changes and user requests are all handled
// on its goroutine, and the resulting labels are published to subscribers.
type Refresher struct {
	mu        sync.Mutex
	projector *Projector
	options   Config
	events    []chan Event
	requests  chan request
	stopCh    chan struct{}
	finished  chan struct{}
	scheduler *cron.Cron
	running   bool
}

// NewRefresher creates a Refresher for an already loaded projector.
func NewRefresher(projector *Projector, options Config) *Refresher {
	if options.UpdateInterval <= 0 {
		options.UpdateInterval = time.Minute
	}
	if options.RolloverSchedule == "" {
		options.RolloverSchedule = DefaultRolloverSchedule
	}
	return &Refresher{
		projector: projector,
		options:   options,
		requests:  make(chan request, 8),
	}
}

// Subscribe registers a new observer channel.
func (refresher *Refresher) Subscribe(buffer int) <-chan Event {
	if buffer <= 0 {
		buffer = 1
	}
	ch := make(chan Event, buffer)
	refresher.mu.Lock()
	refresher.events = append(refresher.events, ch)
	refresher.mu.Unlock()
	return ch
}

// Start launches the loop and publishes the current labels.
func (refresher *Refresher) Start() error {
	refresher.mu.Lock()
	defer refresher.mu.Unlock()
	if refresher.running {
		return nil
	}

	scheduler := cron.New()
	if _, err := scheduler.AddFunc(refresher.options.RolloverSchedule, refresher.Refresh); err != nil {
		return fmt.Errorf("schedule rollover %q: %w", refresher.options.RolloverSchedule, err)
	}
	scheduler.Start()

	refresher.scheduler = scheduler
	refresher.stopCh = make(chan struct{})
	refresher.finished = make(chan struct{})
	refresher.running = true

	go refresher.run(refresher.stopCh, refresher.finished)
	return nil
}

// Stop terminates the loop and closes observers.
func (refresher *Refresher) Stop() {
	refresher.mu.Lock()
	if !refresher.running {
		refresher.mu.Unlock()
		return
	}
	close(refresher.stopCh)
	refresher.running = false
	scheduler := refresher.scheduler
	refresher.scheduler = nil
	finished := refresher.finished
	refresher.mu.Unlock()

	<-scheduler.Stop().Done()
	<-finished

	refresher.mu.Lock()
	events := refresher.events
	refresher.events = nil
	refresher.mu.Unlock()
	for _, ch := range events {
		close(ch)
	}
}

// Refresh asks the loop to publish labels for the current date.
func (refresher *Refresher) Refresh() {
	refresher.post(request{kind: requestRefresh})
}

// Reload asks the loop to reload the event list from storage.
func (refresher *Refresher) Reload() {
	refresher.post(request{kind: requestReload})
}

// Append adds a record through the loop and waits until it is saved.
func (refresher *Refresher) Append(record model.EventRecord) error {
	done := make(chan error, 1)
	if !refresher.post(request{kind: requestAppend, record: record, done: done}) {
		return ErrNotRunning
	}

	refresher.mu.Lock()
	finished := refresher.finished
	refresher.mu.Unlock()

	select {
	case err := <-done:
		return err
	case <-finished:
		select {
		case err := <-done:
			return err
		default:
			return ErrNotRunning
		}
	}
}

func (refresher *Refresher) post(req request) bool {
	refresher.mu.Lock()
	running := refresher.running
	stopCh := refresher.stopCh
	refresher.mu.Unlock()
	if !running {
		return false
	}

	select {
	case refresher.requests <- req:
		return true
	case <-stopCh:
		return false
	}
}

func (refresher *Refresher) run(stopCh, finished chan struct{}) {
	defer close(finished)
	ticker := time.NewTicker(refresher.options.UpdateInterval)
	defer ticker.Stop()

	refresher.publish(EventRefresh, nil)

	for {
		select {
		case <-stopCh:
			return
		case <-ticker.C:
			refresher.publish(EventRefresh, nil)
		case req := <-refresher.requests:
			refresher.handle(req)
		}
	}
}

func (refresher *Refresher) handle(req request) {
	switch req.kind {
	case requestRefresh:
		refresher.publish(EventRefresh, nil)
	case requestReload:
		if err := refresher.projector.Load(); err != nil {
			log.Printf("[refresher] reload failed: %v", err)
			refresher.publish(EventReloadError, err)
			return
		}
		refresher.publish(EventReload, nil)
	case requestAppend:
		err := refresher.projector.Add(req.record)
		if err != nil {
			log.Printf("[refresher] add %q failed: %v", req.record.Name, err)
		} else {
			refresher.publish(EventSaved, nil)
		}
		req.done <- err
	}
}

func (refresher *Refresher) publish(eventType EventType, err error) {
	event := Event{
		Type:   eventType,
		Labels: refresher.projector.Labels(),
		Err:    err,
		At:     time.Now(),
	}

	refresher.mu.Lock()
	events := append([]chan Event(nil), refresher.events...)
	refresher.mu.Unlock()

	for _, ch := range events {
		deliverLatest(ch, event)
	}
}

// deliverLatest sends event, dropping the oldest queued events while ch is
// full. Every event carries the whole label list, so the newest one is enough.
func deliverLatest(ch chan Event, event Event) {
	for {
		select {
		case ch <- event:
			return
		default:
		}
		select {
		case <-ch:
		default:
		}
	}
}
