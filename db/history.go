package db

import (
	"time"

	"github.com/jonboulle/clockwork"
)

const (
	DB_TABLE_LAUNCH_HISTORY = "launch-history"
)

type LaunchRecord struct {
	LastLaunched time.Time
	Count        int
}

// LaunchHistory remembers when each executable was last started. Entries are
// keyed by executable path so they survive reordering of the library.
type LaunchHistory struct {
	db    *PersistentDB
	clock clockwork.Clock
}

func NewLaunchHistory(pdb *PersistentDB, clock clockwork.Clock) *LaunchHistory {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	return &LaunchHistory{db: pdb, clock: clock}
}

func (h *LaunchHistory) RecordLaunch(game Game) (LaunchRecord, error) {
	record, _, err := h.Get(game)
	if err != nil {
		return LaunchRecord{}, err
	}
	record.LastLaunched = h.clock.Now()
	record.Count++
	if err := h.db.AddEntry(DB_TABLE_LAUNCH_HISTORY, game.ExePath, record); err != nil {
		return LaunchRecord{}, err
	}
	return record, nil
}

func (h *LaunchHistory) Get(game Game) (LaunchRecord, bool, error) {
	var record LaunchRecord
	found, err := h.db.GetEntry(DB_TABLE_LAUNCH_HISTORY, game.ExePath, &record)
	return record, found, err
}
