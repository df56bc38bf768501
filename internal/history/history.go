// Package history keeps the calculations a user chose to save. A History is a
// value: Add returns a new History and never touches the receiver.
package history

import (
	"io"
	"time"

	json "github.com/goccy/go-json"
	"github.com/google/uuid"
	"github.com/rotisserie/eris"

	"github.com/cloud-ru/mcp-recouvrement-go/internal/calculations"
)

const autoNameLayout = "02/01/2006 15:04:05"

// Entry is one saved calculation.
type Entry struct {
	ID        uuid.UUID                    `json:"id"`
	Name      string                       `json:"name"`
	CreatedAt time.Time                    `json:"created_at"`
	Mode      calculations.CalculationMode `json:"mode"`
	Total     float64                      `json:"total"`
	Mention   string                       `json:"mention"`
	Result    calculations.Result          `json:"result"`
}

// History is an append-only, most-recent-first list of entries.
type History struct {
	entries []Entry
	now     func() time.Time
	newID   func() uuid.UUID
}

// Option configures a History.
type Option func(*History)

// WithClock sets the time source used to stamp entries.
func WithClock(now func() time.Time) Option {
	return func(h *History) { h.now = now }
}

// WithIDGenerator sets the entry id source.
func WithIDGenerator(gen func() uuid.UUID) Option {
	return func(h *History) { h.newID = gen }
}

// New returns an empty History.
func New(opts ...Option) History {
	h := History{now: time.Now, newID: uuid.New}
	for _, opt := range opts {
		opt(&h)
	}
	return h
}

// Add returns a History with the result saved in front. An empty name is
// replaced by "Calcul du <date heure>".
func (h History) Add(name string, r calculations.Result) (History, Entry, error) {
	if r == nil {
		return h, Entry{}, eris.New("history: nil result")
	}

	now, newID := h.now, h.newID
	if now == nil {
		now = time.Now
	}
	if newID == nil {
		newID = uuid.New
	}

	created := now()
	if name == "" {
		name = "Calcul du " + created.Format(autoNameLayout)
	}
	e := Entry{
		ID:        newID(),
		Name:      name,
		CreatedAt: created,
		Mode:      r.Mode(),
		Total:     r.GrandTotal(),
		Mention:   calculations.RenderLegalMention(r),
		Result:    r,
	}

	entries := make([]Entry, 0, len(h.entries)+1)
	entries = append(entries, e)
	entries = append(entries, h.entries...)
	return History{entries: entries, now: h.now, newID: h.newID}, e, nil
}

// Entries returns a copy of the saved entries, most recent first. It is never nil.
func (h History) Entries() []Entry {
	return append([]Entry{}, h.entries...)
}

// Len returns the number of saved entries.
func (h History) Len() int {
	return len(h.entries)
}

// Find returns the entry with the given id.
func (h History) Find(id uuid.UUID) (Entry, bool) {
	for _, e := range h.entries {
		if e.ID == id {
			return e, true
		}
	}
	return Entry{}, false
}

// Export writes the entries as an indented JSON array.
func (h History) Export(w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(h.Entries()); err != nil {
		return eris.Wrap(err, "history: encode entries")
	}
	return nil
}
