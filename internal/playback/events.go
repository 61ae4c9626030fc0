package playback

import "time"

// EventType names a playback notification.
type EventType string

const (
	EventSectionChanged   EventType = "section_changed"
	EventPlayStateChanged EventType = "play_state_changed"
	EventSectionFinished  EventType = "section_finished"
	EventCompleted        EventType = "completed"
	EventSpeedChanged     EventType = "speed_changed"
)

// Event is sent to subscribers when the transport state changes.
type Event struct {
	Type            EventType
	SectionIndex    int
	SectionCount    int
	PercentComplete int
	Status          Status
	Playing         bool
	Speed           float64
	At              time.Time
}

// diffEvents lists the notifications implied by moving from prev to next.
func diffEvents(prev, next Scheduler, at time.Time) []Event {
	var types []EventType
	if prev.Index() != next.Index() {
		types = append(types, EventSectionChanged)
	}
	if !prev.SectionFinished() && next.SectionFinished() {
		types = append(types, EventSectionFinished)
	}
	if prev.Playing() != next.Playing() {
		types = append(types, EventPlayStateChanged)
	}
	if !prev.Completed() && next.Completed() {
		types = append(types, EventCompleted)
	}
	if prev.Speed() != next.Speed() {
		types = append(types, EventSpeedChanged)
	}
	if len(types) == 0 {
		return nil
	}
	events := make([]Event, 0, len(types))
	for _, t := range types {
		events = append(events, Event{
			Type:            t,
			SectionIndex:    next.Index(),
			SectionCount:    next.SectionCount(),
			PercentComplete: next.PercentComplete(),
			Status:          next.Status(),
			Playing:         next.Playing(),
			Speed:           next.Speed(),
			At:              at,
		})
	}
	return events
}
