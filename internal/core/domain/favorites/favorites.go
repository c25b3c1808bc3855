package favorites

import (
	"encoding/json"
	"fmt"
)

// Entry is one favorited event. Two persisted shapes exist side by side: the
// legacy one is a bare event id, the current one is an {id, city} object.
// Equality between entries is defined solely by the event id.
type Entry struct {
	ID   int    `json:"id"`
	City string `json:"city,omitempty"`

	// legacy marks entries read from the bare-number shape; they are written
	// back in the same shape so rehydration round-trips losslessly.
	legacy bool
}

// Legacy builds an entry in the historical bare-id shape.
func Legacy(id int) Entry {
	return Entry{ID: id, legacy: true}
}

// Tagged builds an entry in the current {id, city} shape.
func Tagged(id int, city string) Entry {
	return Entry{ID: id, City: city}
}

// EventID is the single normalization point for entry equality.
func (e Entry) EventID() int { return e.ID }

// IsLegacy reports whether the entry came from the bare-id shape.
func (e Entry) IsLegacy() bool { return e.legacy }

func (e *Entry) UnmarshalJSON(data []byte) error {
	var id int
	if err := json.Unmarshal(data, &id); err == nil {
		*e = Legacy(id)
		return nil
	}
	var obj struct {
		ID   int    `json:"id"`
		City string `json:"city"`
	}
	if err := json.Unmarshal(data, &obj); err != nil {
		return fmt.Errorf("favorite entry is neither an id nor an object: %w", err)
	}
	*e = Tagged(obj.ID, obj.City)
	return nil
}

func (e Entry) MarshalJSON() ([]byte, error) {
	if e.legacy {
		return json.Marshal(e.ID)
	}
	return json.Marshal(struct {
		ID   int    `json:"id"`
		City string `json:"city"`
	}{e.ID, e.City})
}

// List is an ordered favorites list. Insertion order is add order; at most
// one entry per event id regardless of shape.
type List []Entry

// ParseList decodes a persisted favorites payload in either shape mix.
func ParseList(data []byte) (List, error) {
	var l List
	if err := json.Unmarshal(data, &l); err != nil {
		return nil, fmt.Errorf("decode favorites list: %w", err)
	}
	return l, nil
}

// Has reports whether any entry matches the event id, shape-agnostic.
func (l List) Has(eventID int) bool {
	return l.indexOf(eventID) >= 0
}

// Add appends a tagged entry unless the id is already present. It returns the
// resulting list and whether it changed.
func (l List) Add(eventID int, city string) (List, bool) {
	if l.Has(eventID) {
		return l, false
	}
	return append(l, Tagged(eventID, city)), true
}

// Remove drops the first entry matching the event id. It returns the
// resulting list and whether it changed.
func (l List) Remove(eventID int) (List, bool) {
	i := l.indexOf(eventID)
	if i < 0 {
		return l, false
	}
	return append(l[:i:i], l[i+1:]...), true
}

func (l List) indexOf(eventID int) int {
	for i, e := range l {
		if e.EventID() == eventID {
			return i
		}
	}
	return -1
}
