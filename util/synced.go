package util

import "sync/atomic"

// SafeCounter is safe to use concurrently.
type SafeCounter struct {
	value int32
}

// NewSafeInt creates a new SafeInt.
func NewSafeInt() *SafeCounter {
	return &SafeCounter{}
}

// Increment increments the counter's value and returns the new value.
func (si *SafeCounter) Increment() int {
	return int(atomic.AddInt32(&si.value, 1))
}

// Value returns the current value of the counter.
func (si *SafeCounter) Value() int {
	return int(atomic.LoadInt32(&si.value))
}

// SafeFlag is safe to use concurrently.
type SafeFlag struct {
	value int32
}

// NewSafeBool creates a new SafeBool.
func NewSafeBool() *SafeFlag {
	return &SafeFlag{}
}

// Set sets the value of the SafeBool and returns the new value.
func (sb *SafeFlag) Set(newValue bool) bool {
	atomic.StoreInt32(&sb.value, boolToInt32(newValue))
	return newValue
}

// Value returns the current value of the SafeBool.
func (sb *SafeFlag) Value() bool {
	return atomic.LoadInt32(&sb.value) != 0
}

// CompareAndSwap sets the flag to newValue only if it currently equals oldValue, and reports
// whether it did.
func (sb *SafeFlag) CompareAndSwap(oldValue, newValue bool) bool {
	return atomic.CompareAndSwapInt32(&sb.value, boolToInt32(oldValue), boolToInt32(newValue))
}

func boolToInt32(b bool) int32 {
	if b {
		return 1
	}
	return 0
}
