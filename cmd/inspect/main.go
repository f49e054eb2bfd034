package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/dgraph-io/badger/v4"
	"github.com/olekukonko/tablewriter"

	"chat-deck/domain"
	"chat-deck/repositories"
)

// Read-only dump of the preference keys chat-deck keeps in Badger.
func main() {
	dbPath := flag.String("db", "./data/deck", "Path to badger DB")
	prefix := flag.String("prefix", "settings:", "Prefix to scan")
	flag.Parse()

	db, err := badger.Open(badger.DefaultOptions(*dbPath).
		WithReadOnly(true).
		WithBypassLockGuard(true).
		WithLoggingLevel(badger.WARNING))
	if err != nil {
		log.Fatal("Error while opening Badger: ", err)
	}
	defer db.Close()

	table := tablewriter.NewWriter(os.Stdout)
	table.SetHeader([]string{"Key", "Value", "Decoded"})
	table.SetAutoWrapText(false)
	table.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.SetBorder(false)

	err = db.View(func(txn *badger.Txn) error {
		it := txn.NewIterator(badger.DefaultIteratorOptions)
		defer it.Close()

		prefixBytes := []byte(*prefix)
		for it.Seek(prefixBytes); it.ValidForPrefix(prefixBytes); it.Next() {
			item := it.Item()
			key := string(item.Key())
			err := item.Value(func(v []byte) error {
				table.Append([]string{key, string(v), decode(key, v)})
				return nil
			})
			if err != nil {
				// Keep scanning; one bad value should not hide the rest.
				fmt.Printf("Error reading key %s: %v\n", key, err)
			}
		}
		return nil
	})
	if err != nil {
		log.Fatal("Error while scanning: ", err)
	}

	table.Render()
}

func decode(key string, value []byte) string {
	switch key {
	case repositories.KeyTheme:
		return fmt.Sprintf("theme=%s", domain.ParseTheme(string(value)))
	case repositories.KeySettings:
		var settings domain.UISettings
		if err := json.Unmarshal(value, &settings); err != nil {
			return "corrupt JSON (readers fall back to defaults)"
		}
		out := ""
		if settings.SidebarOpen != nil {
			out += fmt.Sprintf("sidebarOpen=%t ", *settings.SidebarOpen)
		}
		if settings.LastActiveChannel != nil {
			out += fmt.Sprintf("lastActiveChannel=%s", *settings.LastActiveChannel)
		}
		return out
	default:
		return ""
	}
}
