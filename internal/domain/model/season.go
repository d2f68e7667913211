package model

import "sort"

// Season is a chronologically ordered selection of events. Trend and fold
// order depend on it, so it can only be built through NewSeason.
type Season struct {
	events []EventData
}

// NewSeason orders events by start date. Events without a date sort first;
// events sharing a date keep the caller's order.
func NewSeason(events []EventData) Season {
	ordered := make([]EventData, len(events))
	copy(ordered, events)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].StartDate.Before(ordered[j].StartDate)
	})
	return Season{events: ordered}
}

// Events returns the ordered events. The slice must not be modified.
func (s Season) Events() []EventData { return s.events }

// Len returns the number of events.
func (s Season) Len() int { return len(s.events) }

// Codes returns the event codes in chronological order.
func (s Season) Codes() []string {
	codes := make([]string, len(s.events))
	for i, e := range s.events {
		codes[i] = e.Code
	}
	return codes
}

// Event returns the event with the given code.
func (s Season) Event(code string) (EventData, bool) {
	for _, e := range s.events {
		if e.Code == code {
			return e, true
		}
	}
	return EventData{}, false
}
