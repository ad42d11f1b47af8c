//go:build windows

// File: poller/handles_windows.go
// Author: momentics <momentics@gmail.com>
//
// WaitForMultipleObjects handle waiter.

package poller

import (
	"golang.org/x/sys/windows"
)

const (
	maximumWaitObjects = 64

	waitObject0   uint32 = 0x00000000
	waitAbandoned uint32 = 0x00000080
	waitTimeout   uint32 = 0x00000102
	infinite      uint32 = 0xFFFFFFFF
)

// MultipleObjects waits on kernel handles with WaitForMultipleObjects.
type MultipleObjects struct{}

// MaxHandles implements HandleWaiter.
func (MultipleObjects) MaxHandles() int { return maximumWaitObjects }

// WaitAny implements HandleWaiter. Abandoned mutexes count as fired.
func (MultipleObjects) WaitAny(handles []uintptr, timeout int) (int, error) {
	ms := infinite
	if timeout >= 0 {
		ms = uint32(timeout)
	}
	hs := make([]windows.Handle, len(handles))
	for i, h := range handles {
		hs[i] = windows.Handle(h)
	}
	ret, err := windows.WaitForMultipleObjects(hs, false, ms)
	if err != nil {
		return -1, err
	}
	n := uint32(len(hs))
	switch {
	case ret == waitTimeout:
		return -1, nil
	case ret >= waitObject0 && ret < waitObject0+n:
		return int(ret - waitObject0), nil
	case ret >= waitAbandoned && ret < waitAbandoned+n:
		return int(ret - waitAbandoned), nil
	}
	return -1, nil
}

func sleepAlertable(ms uint32) {
	windows.SleepEx(ms, true)
}
