package battle

import (
	"fmt"
	"strings"
)

// SimLogEntry is one recorded event during a headless run.
type SimLogEntry struct {
	Tick     int
	Unit     string  // label e.g. "B0", "R3", or "--" for global events
	Faction  string  // "blue", "red", or "--"
	Category string  // combat, fire, move, battle
	Key      string  // specific event name within the category
	Value    string  // human-readable detail
	NumVal   float64 // optional numeric value for threshold checks
}

// String formats the entry as a fixed-width log line.
//
//	[T=042] R17  combat    kill             at (612,340)
func (e SimLogEntry) String() string {
	return fmt.Sprintf("[T=%03d] %-4s %-9s %-16s %s",
		e.Tick, e.Unit, e.Category, e.Key, e.Value)
}

// SimLog collects structured events during a headless run. It is unbounded
// and machine-readable, unlike the on-screen event panel.
type SimLog struct {
	entries []SimLogEntry
	verbose bool
}

// NewSimLog creates a SimLog. If verbose is true, per-tick position entries
// are also recorded.
func NewSimLog(verbose bool) *SimLog {
	return &SimLog{verbose: verbose}
}

// Add records a new entry.
func (sl *SimLog) Add(tick int, unit, faction, category, key, value string, numVal float64) {
	sl.entries = append(sl.entries, SimLogEntry{
		Tick:     tick,
		Unit:     unit,
		Faction:  faction,
		Category: category,
		Key:      key,
		Value:    value,
		NumVal:   numVal,
	})
}

// AddVerbose records an entry only when verbose mode is on.
func (sl *SimLog) AddVerbose(tick int, unit, faction, category, key, value string, numVal float64) {
	if !sl.verbose {
		return
	}
	sl.Add(tick, unit, faction, category, key, value, numVal)
}

func (sl *SimLog) Entries() []SimLogEntry { return sl.entries }

// Filter returns entries matching category and key. Empty matches anything.
func (sl *SimLog) Filter(category, key string) []SimLogEntry {
	var out []SimLogEntry
	for _, e := range sl.entries {
		if category != "" && e.Category != category {
			continue
		}
		if key != "" && e.Key != key {
			continue
		}
		out = append(out, e)
	}
	return out
}

// FilterUnit returns entries for one unit label.
func (sl *SimLog) FilterUnit(label string) []SimLogEntry {
	var out []SimLogEntry
	for _, e := range sl.entries {
		if e.Unit == label {
			out = append(out, e)
		}
	}
	return out
}

// CountCategory returns how many entries match category and key.
func (sl *SimLog) CountCategory(category, key string) int {
	return len(sl.Filter(category, key))
}

// LastOf returns the most recent entry matching category and key.
func (sl *SimLog) LastOf(category, key string) (SimLogEntry, bool) {
	entries := sl.Filter(category, key)
	if len(entries) == 0 {
		return SimLogEntry{}, false
	}
	return entries[len(entries)-1], true
}

// HasEntry reports whether an entry matches category, key and value substring.
func (sl *SimLog) HasEntry(category, key, valueSubstr string) bool {
	for _, e := range sl.entries {
		if category != "" && e.Category != category {
			continue
		}
		if key != "" && e.Key != key {
			continue
		}
		if valueSubstr != "" && !strings.Contains(e.Value, valueSubstr) {
			continue
		}
		return true
	}
	return false
}

// Format returns the full log as a single string for t.Log output.
func (sl *SimLog) Format() string {
	var sb strings.Builder
	for _, e := range sl.entries {
		sb.WriteString(e.String())
		sb.WriteByte('\n')
	}
	return sb.String()
}

// Summary returns a short human-readable summary of w.
func (sl *SimLog) Summary(w *World) string {
	var sb strings.Builder
	st := w.Stats()
	fmt.Fprintf(&sb, "--- Summary at T=%03d ---\n", w.TickCount())
	for _, f := range []Faction{FactionBlue, FactionRed} {
		fmt.Fprintf(&sb, "%s: alive=%d lost=%d fired=%d hits=%d\n",
			f, w.Alive(f), st.Losses[f], st.Fired[f], st.Hits[f])
	}
	fmt.Fprintf(&sb, "Projectiles in flight: %d\n", len(w.Projectiles()))
	fmt.Fprintf(&sb, "Log: %d kills, %d hits\n",
		sl.CountCategory("combat", EventKill.String())+sl.CountCategory("combat", EventZoneKill.String()),
		sl.CountCategory("combat", EventHit.String()))
	return sb.String()
}

// UnitLabel returns the short display label for a unit, e.g. "B12".
func UnitLabel(u *Unit) string {
	prefix := "B"
	if u.Faction == FactionRed {
		prefix = "R"
	}
	return fmt.Sprintf("%s%d", prefix, u.ID)
}
