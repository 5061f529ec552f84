package countdown

import (
	"fmt"
	"iter"
	"log"
	"math/rand"
	"slices"
	"time"

	"countdown/internal/core/model"
)

// Store persists the event list.
type Store interface {
	ReadEvents() ([]model.EventRecord, error)
	WriteEvents(records []model.EventRecord) error
}

// Options contains injectable sources for Projector.
type Options struct {
	Now  func() time.Time
	Rand *rand.Rand
}

// Projector turns the stored event list into display labels.
// It is not safe for concurrent use; Refresher owns it in the running app.
type Projector struct {
	store    Store
	config   model.Config
	now      func() time.Time
	rng      *rand.Rand
	records  []model.EventRecord
	resolved []model.EventRecord
}

// NewProjector creates a Projector. Call Load before reading labels.
func NewProjector(store Store, config model.Config, options Options) *Projector {
	if options.Now == nil {
		options.Now = time.Now
	}
	if options.Rand == nil {
		options.Rand = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &Projector{
		store:  store,
		config: config,
		now:    options.Now,
		rng:    options.Rand,
	}
}

// Load replaces the in-memory list with the stored one and assigns palette
// colors to records without a concrete bgcolor. On error the previous list is kept.
func (projector *Projector) Load() error {
	records, err := projector.store.ReadEvents()
	if err != nil {
		return err
	}
	for _, record := range records {
		if _, ok := record.Date(); !ok {
			log.Printf("[projector] skipping %q: %d/%d/%d is not a calendar date", record.Name, record.Year, record.Month, record.Day)
		}
	}
	projector.records = records
	projector.resolved = ResolveColors(records, projector.config.Display.BgColors, projector.rng)
	return nil
}

// Save writes the list as loaded. Colors picked for "random" records stay in memory only.
func (projector *Projector) Save() error {
	if err := projector.store.WriteEvents(projector.records); err != nil {
		return fmt.Errorf("save events: %w", err)
	}
	return nil
}

// Add appends record, resolves its color and saves the list.
func (projector *Projector) Add(record model.EventRecord) error {
	records := append(slices.Clone(projector.records), record)
	if err := projector.store.WriteEvents(records); err != nil {
		return fmt.Errorf("save events: %w", err)
	}
	projector.records = records
	projector.resolved = append(slices.Clone(projector.resolved),
		ResolveColors([]model.EventRecord{record}, projector.config.Display.BgColors, projector.rng)...)
	return nil
}

// Records returns a copy of the loaded records with colors resolved.
func (projector *Projector) Records() []model.EventRecord {
	return slices.Clone(projector.resolved)
}

// DaysList yields a label for every visible record in list order. The
// sequence can be ranged over repeatedly; each pass reads the clock again.
func (projector *Projector) DaysList() iter.Seq[model.Label] {
	records := projector.resolved
	autoHiddenDays := projector.config.Days.AutoHiddenDays
	now := projector.now
	return func(yield func(model.Label) bool) {
		today := Today(now())
		for _, record := range records {
			label, ok := Project(record, today, autoHiddenDays)
			if !ok {
				continue
			}
			if !yield(label) {
				return
			}
		}
	}
}

// Labels collects DaysList.
func (projector *Projector) Labels() []model.Label {
	return slices.Collect(projector.DaysList())
}

// ResolveColors returns a copy of records where every record without a
// concrete bgcolor gets one drawn uniformly from palette. With an empty
// palette the sentinel is left in place.
func ResolveColors(records []model.EventRecord, palette []string, rng *rand.Rand) []model.EventRecord {
	resolved := make([]model.EventRecord, len(records))
	copy(resolved, records)
	if len(palette) == 0 {
		return resolved
	}
	for i := range resolved {
		if resolved[i].NeedsColor() {
			resolved[i].BgColor = palette[rng.Intn(len(palette))]
		}
	}
	return resolved
}
