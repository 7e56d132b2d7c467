package dto

import "time"

// LogRequest is the wire shape workers POST to /api/logs.
type LogRequest struct {
	Level     int       `json:"level"`
	Message   string    `json:"message"`
	Timestamp time.Time `json:"timestamp"`
	LogSource int       `json:"logSource"`
}

// LogItem is one entry in list responses.
type LogItem struct {
	ID        uint      `json:"id"`
	Level     int       `json:"level"`
	Message   string    `json:"message"`
	Timestamp time.Time `json:"timestamp"`
	LogSource int       `json:"logSource"`
}
