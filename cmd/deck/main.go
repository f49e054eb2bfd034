package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"runtime"
	"strings"
	"time"

	"github.com/Netflix/go-env"
	"github.com/dgraph-io/badger/v4"
	"github.com/gookit/color"
	"github.com/joho/godotenv"
	"github.com/mama165/sdk-go/logs"
	"github.com/olekukonko/tablewriter"
	"github.com/shirou/gopsutil/process"

	"chat-deck/domain"
	"chat-deck/mockdata"
	"chat-deck/moderation"
	"chat-deck/projection"
	"chat-deck/repositories"
	"chat-deck/search"
	"chat-deck/state"
)

func main() {
	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "Fatal error: %v\n", err)
		os.Exit(1)
	}
}

// run wires the whole session and renders it once: preferences come from
// Badger, channels and messages from the mock snapshot, and an optional
// trailing argument is treated as a search command. Returning the error to
// main keeps defers (database close, index close) running on every path.
func run(args []string) error {
	// 1. Configuration & Logger
	_ = godotenv.Load()
	var config Config
	if _, err := env.UnmarshalFromEnviron(&config); err != nil {
		return fmt.Errorf("config error: %w", err)
	}
	log := logs.GetLoggerFromString(config.LogLevel)

	// 2. Preferences database. An unopenable store is not fatal: the
	// repository degrades to defaults and the session simply won't persist.
	db, err := badger.Open(badger.DefaultOptions(config.BadgerFilepath).
		WithLoggingLevel(badger.ERROR))
	if err != nil {
		log.Warn("preferences store unavailable", "path", config.BadgerFilepath, "error", err)
		db = nil
	} else {
		defer func() {
			log.Info("Closing BadgerDB...")
			_ = db.Close()
		}()
	}
	settings := repositories.NewSettingsRepository(db, log)

	// 3. Optional collaborators
	opts := []state.Option{}
	if words := config.CensoredWordList(); len(words) > 0 {
		replacement, err := config.ReplacementRune()
		if err != nil {
			return err
		}
		moderator, err := moderation.NewModerator(words, replacement, log)
		if err != nil {
			return fmt.Errorf("moderator setup failed: %w", err)
		}
		opts = append(opts, state.WithModerator(moderator))
	}
	index, err := repositories.NewMessageIndex(log)
	if err != nil {
		log.Warn("message index unavailable, search falls back to scan", "error", err)
	} else {
		defer index.Close()
		opts = append(opts, state.WithIndex(index))
	}

	// 4. Store + snapshot
	store := state.NewStore(settings, log, opts...)
	store.Initialize()

	now := time.Now()
	store.LoadChannels(mockdata.Channels(now), mockdata.Messages(now))

	// 5. Render
	query := search.ParseQuery(strings.Join(args, " "))
	store.SetSearchQuery(query.Terms)

	renderHeader(store, config)
	renderChannels(store)
	renderTimeline(store, config, now)
	if query.Terms != "" {
		renderSearch(store, query)
	}
	renderStats(store, log)
	return nil
}

func renderHeader(store *state.Store, config Config) {
	theme := store.Theme().Resolve(config.SystemDark)
	color.Bold.Printf("chat-deck — theme %s (stored: %s)\n", theme, store.Theme())
	if !store.SidebarOpen() {
		color.Gray.Println("sidebar hidden")
	}
	fmt.Println()
}

func renderChannels(store *state.Store) {
	if !store.SidebarOpen() {
		return
	}
	table := tablewriter.NewWriter(os.Stdout)
	table.SetHeader([]string{"Channel", "Visibility", "Members", "Description"})
	active := store.ActiveChannel()
	for _, ch := range store.FilteredChannels() {
		name := "#" + ch.Name
		if ch.ID == active {
			name = color.Green.Sprint(name + " *")
		}
		table.Append([]string{
			name,
			string(ch.Visibility),
			fmt.Sprintf("%d", ch.Members),
			ch.Description,
		})
	}
	table.Render()
	fmt.Println()
}

func renderTimeline(store *state.Store, config Config, now time.Time) {
	activeID := store.ActiveChannel()
	if activeID == "" {
		color.Gray.Println("no active channel")
		return
	}
	users := mockdata.Users()

	color.Bold.Printf("#%s\n", activeID)
	entries := projection.BuildTimeline(store.ChannelMessages(activeID), now)
	for _, entry := range entries {
		switch e := entry.(type) {
		case projection.DateSeparator:
			color.Cyan.Printf("--- %s ---\n", e.Label)
		case projection.MessageEntry:
			printMessage(e, users, store.SearchQuery(), config, now)
		}
	}
	fmt.Println()
}

func printMessage(entry projection.MessageEntry, users map[string]domain.User, term string, config Config, now time.Time) {
	msg := entry.Message
	content := search.HighlightWith(msg.Content, term, func(match string) string {
		return color.Yellow.Sprint(match)
	})

	if msg.Kind == domain.KindSystem {
		color.Gray.Printf("      · %s\n", content)
		return
	}
	if entry.Compact {
		fmt.Printf("      %s\n", content)
		return
	}

	author := msg.UserID
	if user, ok := users[msg.UserID]; ok {
		author = user.Name
	}
	stamp := projection.FormatTimestamp(msg.CreatedAt, config.DetailedTimestamps, now)
	fmt.Printf("%s %s  %s\n", color.Bold.Sprint(author), color.Gray.Sprint(stamp), content)
}

func renderSearch(store *state.Store, query *search.Query) {
	color.Bold.Printf("search: %q", query.Terms)
	if query.Channel != "" {
		fmt.Printf(" in #%s", query.Channel)
	}
	fmt.Println()

	results := store.SearchMessages(context.Background(), query.Terms, query.Channel, query.Limit)
	if len(results) == 0 {
		color.Gray.Println("no matches")
		return
	}
	for _, msg := range results {
		highlighted := search.HighlightWith(msg.Content, query.Terms, func(match string) string {
			return color.Yellow.Sprint(match)
		})
		fmt.Printf("  #%s %s: %s\n", msg.ChannelID, msg.UserID, highlighted)
	}
	fmt.Println()
}

func renderStats(store *state.Store, log *slog.Logger) {
	total := 0
	for _, ch := range store.Channels() {
		total += len(store.ChannelMessages(ch.ID))
	}

	line := fmt.Sprintf("%d channels, %d messages", len(store.Channels()), total)
	proc, err := process.NewProcess(int32(os.Getpid()))
	if err == nil {
		if memInfo, err := proc.MemoryInfo(); err == nil {
			line += fmt.Sprintf(", rss %d MB", memInfo.RSS/1024/1024)
		}
	}
	var ms runtime.MemStats
	runtime.ReadMemStats(&ms)
	line += fmt.Sprintf(", heap %d MB", ms.Alloc/1024/1024)

	color.Gray.Println(line)
	log.Debug("session stats", "summary", line)
}
