package internal

import (
	"embed"
	"fmt"
	"html/template"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/dgraph-io/badger/v4"
)

//go:embed inspect.html
var templatesFS embed.FS

type InspectRow struct {
	Key       string
	Type      string
	Timestamp string
	EntityID  string
	Detail    string
}

type RowMapper func(key string, val []byte) InspectRow
type StatsProvider func() map[string]any

// StartDebugServer exposes a read-only HTML view over the gateway's Badger
// keyspaces plus a live stats block. It listens in the background; failures
// to bind are ignored since the inspector is an operator convenience, never
// part of the serving path.
func StartDebugServer(db *badger.DB, port int, endpoint string, mapper RowMapper, statsProvider StatsProvider) {
	mux := http.NewServeMux()
	tmpl := template.Must(template.ParseFS(templatesFS, "inspect.html"))

	if mapper == nil {
		mapper = DefaultMapper
	}

	mux.HandleFunc(endpoint, func(w http.ResponseWriter, r *http.Request) {
		prefix := r.URL.Query().Get("prefix")
		if prefix == "" {
			prefix = "presence:"
		}

		data := struct {
			Prefix string
			Items  []InspectRow
			Stats  map[string]any
		}{
			Prefix: prefix,
			Stats:  make(map[string]any),
		}

		if statsProvider != nil {
			data.Stats = statsProvider()
		}

		_ = db.View(func(txn *badger.Txn) error {
			it := txn.NewIterator(badger.DefaultIteratorOptions)
			defer it.Close()
			for it.Seek([]byte(prefix)); it.ValidForPrefix([]byte(prefix)); it.Next() {
				item := it.Item()
				_ = item.Value(func(val []byte) error {
					data.Items = append(data.Items, mapper(string(item.Key()), val))
					return nil
				})
			}
			return nil
		})

		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		_ = tmpl.Execute(w, data)
	})

	go func() {
		_ = http.ListenAndServe(fmt.Sprintf("0.0.0.0:%d", port), mux)
	}()
}

// DefaultMapper decodes the gateway key schemes: "presence:{user}",
// "token:{user}:{kind}", "notification:{uuid}", "idx:notif:{user}:{ts}:{uuid}",
// "conversation:{id}" and "user:{id}".
func DefaultMapper(key string, val []byte) InspectRow {
	parts := strings.Split(key, ":")
	row := InspectRow{
		Key:       key,
		Type:      "RAW",
		Timestamp: "--:--:--",
		EntityID:  "--------",
		Detail:    "Size: " + strconv.Itoa(len(val)) + " bytes",
	}
	if len(parts) < 2 {
		return row
	}

	row.Type = strings.ToUpper(parts[0])
	row.EntityID = parts[1]

	switch parts[0] {
	case "token":
		if len(parts) >= 3 {
			row.Detail = "kind=" + parts[2]
		}
	case "presence":
		row.Detail = "online"
	case "idx":
		row.Type = "INDEX"
		if len(parts) >= 5 {
			row.EntityID = parts[2]
			if tsNano, err := strconv.ParseInt(parts[3], 10, 64); err == nil {
				row.Timestamp = time.Unix(0, tsNano).Format("15:04:05")
			}
			row.Detail = parts[4]
		}
	default:
		row.Detail = string(val)
	}

	if len(row.EntityID) > 8 {
		row.EntityID = row.EntityID[:8]
	}
	return row
}
