//go:generate go run go.uber.org/mock/mockgen -source=settings.go -destination=../mocks/mock_settings_repository.go -package=mocks
package repositories

import (
	"encoding/json"
	"log/slog"
	"sync"

	"github.com/dgraph-io/badger/v4"

	"chat-deck/domain"
)

// Keys under which preferences live. The theme is a raw string, the UI
// settings a JSON object; readers treat absent or malformed values as
// defaults, never as errors.
const (
	KeyTheme    = "settings:theme"
	KeySettings = "settings:ui"

	probeKey = "settings:probe"
)

type ISettingsRepository interface {
	GetTheme() domain.Theme
	SetTheme(theme domain.Theme)
	GetSettings() domain.UISettings
	SetSettings(partial domain.UISettings)
	ClearAll()
}

// SettingsRepository persists user preferences in BadgerDB with total
// failure containment: no method returns an error, every failure degrades
// to a documented default and a warn log. The worst possible outcome for a
// caller is stale or default preferences.
type SettingsRepository struct {
	db  *badger.DB
	log *slog.Logger

	probeOnce sync.Once
	usable    bool
}

func NewSettingsRepository(db *badger.DB, log *slog.Logger) *SettingsRepository {
	return &SettingsRepository{db: db, log: log}
}

// available probes the store once with a write/delete cycle. When the probe
// fails every subsequent operation degrades to its safe default without
// touching the store again.
func (r *SettingsRepository) available() bool {
	r.probeOnce.Do(func() {
		if r.db == nil || r.db.IsClosed() {
			r.log.Warn("settings store unavailable, preferences will not persist")
			return
		}
		err := r.db.Update(func(txn *badger.Txn) error {
			if err := txn.Set([]byte(probeKey), nil); err != nil {
				return err
			}
			return txn.Delete([]byte(probeKey))
		})
		if err != nil {
			r.log.Warn("settings store probe failed, preferences will not persist", "error", err)
			return
		}
		r.usable = true
	})
	return r.usable
}

// GetTheme returns the stored theme, or the default on any failure or
// unknown stored value.
func (r *SettingsRepository) GetTheme() domain.Theme {
	raw, ok := r.get(KeyTheme)
	if !ok {
		return domain.DefaultTheme
	}
	return domain.ParseTheme(string(raw))
}

// SetTheme writes the theme best-effort.
func (r *SettingsRepository) SetTheme(theme domain.Theme) {
	r.set(KeyTheme, []byte(theme))
}

// GetSettings returns the stored UI settings, or a zero record when the key
// is missing, unreadable, or holds corrupt JSON.
func (r *SettingsRepository) GetSettings() domain.UISettings {
	raw, ok := r.get(KeySettings)
	if !ok {
		return domain.UISettings{}
	}
	var settings domain.UISettings
	if err := json.Unmarshal(raw, &settings); err != nil {
		r.log.Warn("stored settings are corrupt, falling back to defaults", "error", err)
		return domain.UISettings{}
	}
	return settings
}

// SetSettings shallow-merges partial over the stored record and writes the
// result: non-nil fields win, everything else is retained.
func (r *SettingsRepository) SetSettings(partial domain.UISettings) {
	merged := r.GetSettings().Merge(partial)
	bytes, err := json.Marshal(merged)
	if err != nil {
		r.log.Warn("failed to encode settings", "error", err)
		return
	}
	r.set(KeySettings, bytes)
}

// ClearAll removes both managed keys best-effort.
func (r *SettingsRepository) ClearAll() {
	if !r.available() {
		return
	}
	err := r.db.Update(func(txn *badger.Txn) error {
		if err := txn.Delete([]byte(KeyTheme)); err != nil {
			return err
		}
		return txn.Delete([]byte(KeySettings))
	})
	if err != nil {
		r.log.Warn("failed to clear settings", "error", err)
	}
}

func (r *SettingsRepository) get(key string) ([]byte, bool) {
	if !r.available() {
		return nil, false
	}
	var value []byte
	err := r.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(key))
		if err != nil {
			return err
		}
		value, err = item.ValueCopy(nil)
		return err
	})
	if err != nil {
		if err != badger.ErrKeyNotFound {
			r.log.Warn("failed to read setting", "key", key, "error", err)
		}
		return nil, false
	}
	return value, true
}

func (r *SettingsRepository) set(key string, value []byte) {
	if !r.available() {
		return
	}
	err := r.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(key), value)
	})
	if err != nil {
		r.log.Warn("failed to write setting", "key", key, "error", err)
	}
}
