package usecase

import "time"

// Schedule decides whether a source is due for a new fetch, given the
// timestamp of its last persisted fact. A zero last value means no fact has
// ever been recorded, which is always due.
type Schedule interface {
	IsDue(now, last time.Time) bool
}

// RollingSchedule is a pure cooldown cadence: due once the cooldown has
// elapsed since the last fact.
type RollingSchedule struct {
	Cooldown time.Duration
}

func (s RollingSchedule) IsDue(now, last time.Time) bool {
	if last.IsZero() {
		return true
	}
	return !last.After(now.Add(-s.Cooldown))
}

// CutoffSchedule models feeds with a fixed daily publication cutover
// (NBP tables at 12:30, the ECB reference rates at 16:15). Before today's
// cutoff the 8h cooldown applies; from the cutoff onward the source is due
// until a fact recorded after the cutoff exists.
type CutoffSchedule struct {
	Hour     int
	Minute   int
	Cooldown time.Duration
}

func (s CutoffSchedule) IsDue(now, last time.Time) bool {
	if last.IsZero() {
		return true
	}
	cutoff := time.Date(now.Year(), now.Month(), now.Day(), s.Hour, s.Minute, 0, 0, now.Location())
	if now.Before(cutoff) {
		return last.Before(now.Add(-s.Cooldown))
	}
	return last.Before(cutoff)
}
