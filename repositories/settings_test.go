package repositories

import (
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/dgraph-io/badger/v4"
	"github.com/samber/lo"
	"github.com/stretchr/testify/require"

	"chat-deck/domain"
)

func openTestDB(t *testing.T) *badger.DB {
	t.Helper()
	db, err := badger.Open(badger.DefaultOptions(t.TempDir()).WithLoggingLevel(badger.ERROR))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func TestSettingsRepository_ThemeRoundTrip(t *testing.T) {
	req := require.New(t)
	repo := NewSettingsRepository(openTestDB(t), slog.Default())

	req.Equal(domain.DefaultTheme, repo.GetTheme())

	repo.SetTheme(domain.ThemeDark)
	req.Equal(domain.ThemeDark, repo.GetTheme())

	repo.SetTheme(domain.ThemeSystem)
	req.Equal(domain.ThemeSystem, repo.GetTheme())
}

func TestSettingsRepository_UnknownStoredThemeFallsBack(t *testing.T) {
	req := require.New(t)
	db := openTestDB(t)
	repo := NewSettingsRepository(db, slog.Default())

	err := db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(KeyTheme), []byte("neon"))
	})
	req.NoError(err)

	req.Equal(domain.DefaultTheme, repo.GetTheme())
}

func TestSettingsRepository_MergeRetainsUnspecifiedFields(t *testing.T) {
	req := require.New(t)
	repo := NewSettingsRepository(openTestDB(t), slog.Default())

	repo.SetSettings(domain.UISettings{LastActiveChannel: lo.ToPtr("tech")})
	repo.SetSettings(domain.UISettings{SidebarOpen: lo.ToPtr(false)})

	got := repo.GetSettings()
	req.NotNil(got.SidebarOpen)
	req.False(*got.SidebarOpen)
	req.NotNil(got.LastActiveChannel)
	req.Equal("tech", *got.LastActiveChannel)

	// New values win over old on conflict.
	repo.SetSettings(domain.UISettings{SidebarOpen: lo.ToPtr(true)})
	got = repo.GetSettings()
	req.True(*got.SidebarOpen)
	req.Equal("tech", *got.LastActiveChannel)
}

func TestSettingsRepository_CorruptJSONFallsBack(t *testing.T) {
	req := require.New(t)
	db := openTestDB(t)
	repo := NewSettingsRepository(db, slog.Default())

	err := db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(KeySettings), []byte("{not json"))
	})
	req.NoError(err)

	req.Equal(domain.UISettings{}, repo.GetSettings())

	// A merge write over the corrupt record heals it.
	repo.SetSettings(domain.UISettings{SidebarOpen: lo.ToPtr(true)})
	req.True(*repo.GetSettings().SidebarOpen)
}

func TestSettingsRepository_ClearAll(t *testing.T) {
	req := require.New(t)
	repo := NewSettingsRepository(openTestDB(t), slog.Default())

	repo.SetTheme(domain.ThemeDark)
	repo.SetSettings(domain.UISettings{SidebarOpen: lo.ToPtr(false)})
	repo.ClearAll()

	req.Equal(domain.DefaultTheme, repo.GetTheme())
	req.Equal(domain.UISettings{}, repo.GetSettings())
}

func TestSettingsRepository_UnavailableStoreDegradesSilently(t *testing.T) {
	req := require.New(t)
	db, err := badger.Open(badger.DefaultOptions(t.TempDir()).WithLoggingLevel(badger.ERROR))
	req.NoError(err)
	req.NoError(db.Close())

	repo := NewSettingsRepository(db, slog.Default())

	// Every operation must fall back without panicking or erroring.
	repo.SetTheme(domain.ThemeDark)
	repo.SetSettings(domain.UISettings{SidebarOpen: lo.ToPtr(false)})
	repo.ClearAll()

	req.Equal(domain.DefaultTheme, repo.GetTheme())
	req.Equal(domain.UISettings{}, repo.GetSettings())
}

func TestSettingsRepository_NilDBDegradesSilently(t *testing.T) {
	req := require.New(t)
	repo := NewSettingsRepository(nil, slog.Default())

	repo.SetTheme(domain.ThemeSystem)
	repo.SetSettings(domain.UISettings{LastActiveChannel: lo.ToPtr("general")})
	repo.ClearAll()

	req.Equal(domain.DefaultTheme, repo.GetTheme())
	req.Equal(domain.UISettings{}, repo.GetSettings())
}

func TestSettingsRepository_StoredLayout(t *testing.T) {
	req := require.New(t)
	db := openTestDB(t)
	repo := NewSettingsRepository(db, slog.Default())

	repo.SetTheme(domain.ThemeDark)
	repo.SetSettings(domain.UISettings{
		SidebarOpen:       lo.ToPtr(true),
		LastActiveChannel: lo.ToPtr("general"),
	})

	// The theme key holds the raw enum string.
	err := db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(KeyTheme))
		if err != nil {
			return err
		}
		raw, err := item.ValueCopy(nil)
		req.Equal("dark", string(raw))
		return err
	})
	req.NoError(err)

	// The settings key holds a JSON object.
	err = db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(KeySettings))
		if err != nil {
			return err
		}
		raw, err := item.ValueCopy(nil)
		if err != nil {
			return err
		}
		var decoded map[string]any
		req.NoError(json.Unmarshal(raw, &decoded))
		req.Equal(true, decoded["sidebarOpen"])
		req.Equal("general", decoded["lastActiveChannel"])
		return nil
	})
	req.NoError(err)
}
