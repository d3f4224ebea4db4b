package state

import (
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"github.com/sirupsen/logrus"
)

// Storage keys, one per state slice. Each slice is serialized as one full
// JSON document under its key; there is no partial diffing.
const (
	KeyProfile    = "profile"
	KeyMilestones = "milestones"
	KeyMoods      = "moods"
	KeySymptoms   = "symptoms"
	KeyJournal    = "journal"
)

var ErrSliceNotLoaded = errors.New("slice must be loaded before it can be saved")

// SnapshotStore is the persistence backend for slice documents.
type SnapshotStore interface {
	Load(userID uint, key string) ([]byte, bool, error)
	Save(userID uint, key string, body []byte) error
}

// Gateway enforces the load-before-save discipline: a slice's save is only
// permitted after its load attempt completed (successfully or by falling back
// to defaults). Saving earlier would let in-memory defaults overwrite
// previously persisted state.
type Gateway struct {
	store SnapshotStore
	log   *logrus.Logger

	mu    sync.Mutex
	ready map[sliceRef]bool
}

type sliceRef struct {
	userID uint
	key    string
}

func NewGateway(store SnapshotStore, log *logrus.Logger) *Gateway {
	return &Gateway{
		store: store,
		log:   log,
		ready: make(map[sliceRef]bool),
	}
}

// LoadSlice fills target from the persisted snapshot and marks the slice
// ready for saving. A missing, unreadable or corrupt snapshot leaves target
// untouched (the caller's defaults) and still counts as a completed load.
func (gateway *Gateway) LoadSlice(userID uint, key string, target any) error {
	defer gateway.markReady(userID, key)

	body, found, err := gateway.store.Load(userID, key)
	if err != nil {
		gateway.warn(key, "load snapshot failed, using defaults", err)
		return nil
	}
	if !found {
		return nil
	}

	if err := json.Unmarshal(body, target); err != nil {
		gateway.warn(key, "corrupt snapshot, using defaults", err)
		return nil
	}
	return nil
}

// SaveSlice serializes the slice as a full snapshot. It fails with
// ErrSliceNotLoaded if LoadSlice has not completed for this slice yet.
func (gateway *Gateway) SaveSlice(userID uint, key string, value any) error {
	if !gateway.isReady(userID, key) {
		return fmt.Errorf("%w: %s", ErrSliceNotLoaded, key)
	}

	body, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("serialize slice %s: %w", key, err)
	}
	if err := gateway.store.Save(userID, key, body); err != nil {
		return fmt.Errorf("save slice %s: %w", key, err)
	}
	return nil
}

// Loaded reports whether the slice has completed its load attempt.
func (gateway *Gateway) Loaded(userID uint, key string) bool {
	return gateway.isReady(userID, key)
}

// Reset forgets the ready flags for a user, forcing a fresh load pass. Used
// when a user's data is cleared.
func (gateway *Gateway) Reset(userID uint) {
	gateway.mu.Lock()
	defer gateway.mu.Unlock()
	for ref := range gateway.ready {
		if ref.userID == userID {
			delete(gateway.ready, ref)
		}
	}
}

func (gateway *Gateway) markReady(userID uint, key string) {
	gateway.mu.Lock()
	defer gateway.mu.Unlock()
	gateway.ready[sliceRef{userID: userID, key: key}] = true
}

func (gateway *Gateway) isReady(userID uint, key string) bool {
	gateway.mu.Lock()
	defer gateway.mu.Unlock()
	return gateway.ready[sliceRef{userID: userID, key: key}]
}

func (gateway *Gateway) warn(key string, message string, err error) {
	if gateway.log == nil {
		return
	}
	gateway.log.WithFields(logrus.Fields{
		"slice": key,
		"error": err.Error(),
	}).Warn(message)
}
