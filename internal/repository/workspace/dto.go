package workspace

import (
	"strconv"
	"time"

	domws "github.com/kailas-cloud/notedex/internal/domain/workspace"
)

const (
	fieldName           = "name"
	fieldOwnerID        = "owner_id"
	fieldPersonal       = "personal"
	fieldCreatedAt      = "created_at"
	fieldLatestActivity = "latest_activity"
)

// buildHashFields converts a domain Workspace into a flat map for HSET.
// Roster sets live in their own keys and are not part of the hash.
func buildHashFields(w *domws.Workspace) map[string]string {
	personal := "0"
	if w.IsPersonal() {
		personal = "1"
	}
	return map[string]string{
		fieldName:           w.Name(),
		fieldOwnerID:        w.OwnerID(),
		fieldPersonal:       personal,
		fieldCreatedAt:      formatTime(w.CreatedAt()),
		fieldLatestActivity: formatTime(w.LatestActivity()),
	}
}

// parseHashFields hydrates a domain Workspace from its hash and roster sets.
func parseHashFields(id string, m map[string]string, members, banned []string) domws.Workspace {
	return domws.Reconstruct(
		id,
		m[fieldName],
		m[fieldOwnerID],
		members,
		banned,
		m[fieldPersonal] == "1",
		parseTime(m[fieldLatestActivity]),
		parseTime(m[fieldCreatedAt]),
	)
}

func formatTime(t time.Time) string {
	return strconv.FormatInt(t.UnixMilli(), 10)
}

func parseTime(s string) time.Time {
	ms, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return time.Time{}
	}
	return time.UnixMilli(ms)
}
