//go:build unix

// File: api/events_unix.go
// Author: momentics <momentics@gmail.com>
//
// poll(2) bit values.

package api

import "golang.org/x/sys/unix"

const (
	EventIn   Events = unix.POLLIN
	EventPri  Events = unix.POLLPRI
	EventOut  Events = unix.POLLOUT
	EventErr  Events = unix.POLLERR
	EventHup  Events = unix.POLLHUP
	EventNval Events = unix.POLLNVAL
)
