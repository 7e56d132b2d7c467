package entity

import "time"

// LogEntry is one diagnostic record received from a worker.
type LogEntry struct {
	ID        uint
	Level     int
	Message   string
	Timestamp time.Time
	Source    int
}
