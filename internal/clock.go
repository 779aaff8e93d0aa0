package internal

import "time"

// Clock supplies "today" to anything that needs a default reference date
type Clock interface {
	Today() Date
}

// SystemClock reads the local wall clock
type SystemClock struct{}

func (SystemClock) Today() Date {
	return DateOf(time.Now())
}

// FixedClock always returns the same date
type FixedClock Date

func (c FixedClock) Today() Date {
	return Date(c)
}
