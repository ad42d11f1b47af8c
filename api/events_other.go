//go:build !unix

// File: api/events_other.go
// Author: momentics <momentics@gmail.com>
//
// WSAPoll bit values, used wherever poll(2) is unavailable.

package api

const (
	EventIn   Events = 0x0300 // POLLRDNORM | POLLRDBAND
	EventPri  Events = 0x0400
	EventOut  Events = 0x0010 // POLLWRNORM
	EventErr  Events = 0x0001
	EventHup  Events = 0x0002
	EventNval Events = 0x0004
)
