package api

import "github.com/avenkat/caprelay/internal/forwarder"

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

// FormatRequest carries a raw caption to normalize
type FormatRequest struct {
	Caption string `json:"caption" binding:"required"`
	Forward bool   `json:"forward,omitempty"`
}

// FormatResponse carries the normalized caption and, when forwarding was
// requested, the delivery outcome
type FormatResponse struct {
	Formatted string            `json:"formatted"`
	Forward   *forwarder.Result `json:"forward,omitempty"`
}

// CommandRequest carries a bot command to run
type CommandRequest struct {
	Command string `json:"command" binding:"required"`
	Args    string `json:"args,omitempty"`
}

// CommandResponse carries the command reply text
type CommandResponse struct {
	Reply string `json:"reply"`
}

// StatsResponse represents pipeline statistics
type StatsResponse struct {
	Processed     uint64 `json:"processed"`
	Formatted     uint64 `json:"formatted"`
	Forwarded     uint64 `json:"forwarded"`
	ForwardFailed uint64 `json:"forward_failed"`
	UptimeSeconds int64  `json:"uptime_seconds"`
}
