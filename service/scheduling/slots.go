package scheduling

import "time"

// Window is one weekday's working window in minutes since midnight.
type Window struct {
	StartMinutes int
	EndMinutes   int
	Duration     int
	TimeBreak    int
}

// Interval is a half-open busy period [Start, End).
type Interval struct {
	Start time.Time
	End   time.Time
}

// SlotStarts packs slots greedily from the window start: each slot takes
// Duration minutes and the cursor then advances by Duration+TimeBreak. A
// window exactly one duration long yields a single slot; a shorter window
// yields none, which is a valid configuration rather than an error.
func (w Window) SlotStarts() []int {
	if w.Duration <= 0 || w.TimeBreak < 0 {
		return nil
	}
	step := w.Duration + w.TimeBreak
	var starts []int
	for cursor := w.StartMinutes; cursor+w.Duration <= w.EndMinutes; cursor += step {
		starts = append(starts, cursor)
	}
	return starts
}

// SlotTimes materializes a window's slot starts on a calendar date in the
// mentor's timezone, dropping starts already in the past and slots that
// overlap a busy interval.
func SlotTimes(w Window, date time.Time, loc *time.Location, busy []Interval, now time.Time) []time.Time {
	year, month, day := date.In(loc).Date()

	var slots []time.Time
	for _, start := range w.SlotStarts() {
		t := time.Date(year, month, day, start/60, start%60, 0, 0, loc)
		if t.Before(now) {
			continue
		}
		if overlapsAny(t, t.Add(time.Duration(w.Duration)*time.Minute), busy) {
			continue
		}
		slots = append(slots, t)
	}
	return slots
}

func overlapsAny(start, end time.Time, busy []Interval) bool {
	for _, b := range busy {
		// Half-open intervals: [start,end) overlaps [b.Start,b.End) iff
		// start < b.End && b.Start < end.
		if start.Before(b.End) && b.Start.Before(end) {
			return true
		}
	}
	return false
}

// WindowOf builds a Window from stored "HH:MM" bounds. It returns false when
// either bound fails to parse, which only happens if invalid rows bypassed
// validation.
func WindowOf(startTime, endTime string, duration, timeBreak int) (Window, bool) {
	start, err := ParseClock(startTime)
	if err != nil {
		return Window{}, false
	}
	end, err := ParseClock(endTime)
	if err != nil {
		return Window{}, false
	}
	return Window{
		StartMinutes: start,
		EndMinutes:   end,
		Duration:     duration,
		TimeBreak:    timeBreak,
	}, true
}
