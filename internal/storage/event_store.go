package storage

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"countdown/internal/core/model"
)

// EventStore reads and writes the event list file.
type EventStore struct {
	path     string
	defaults []byte
}

// NewEventStore creates a store for path that seeds from defaults on first run.
func NewEventStore(path string, defaults []byte) *EventStore {
	return &EventStore{path: path, defaults: defaults}
}

// Path returns the primary event list path.
func (store *EventStore) Path() string {
	return store.path
}

// ReadEvents returns the records in the primary file. When the file does not
// exist the bundled list is written to the primary path and returned.
func (store *EventStore) ReadEvents() ([]model.EventRecord, error) {
	rawData, err := os.ReadFile(store.path)
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("read events file: %w", err)
		}
		return store.seed()
	}

	var records []model.EventRecord
	if err := json.Unmarshal(rawData, &records); err != nil {
		return nil, &EventStoreCorruptError{Path: store.path, Err: err}
	}
	return records, nil
}

// WriteEvents overwrites the primary file with records.
func (store *EventStore) WriteEvents(records []model.EventRecord) error {
	if records == nil {
		records = []model.EventRecord{}
	}
	serialized, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal events json: %w", err)
	}
	return writeFile(store.path, append(serialized, '\n'))
}

func (store *EventStore) seed() ([]model.EventRecord, error) {
	var records []model.EventRecord
	if err := json.Unmarshal(store.defaults, &records); err != nil {
		return nil, &EventStoreLoadError{Path: "bundled dates.json", Err: err}
	}
	if err := writeFile(store.path, store.defaults); err != nil {
		return nil, err
	}
	return records, nil
}
