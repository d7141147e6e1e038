package goroutines

import (
	"log"
	"runtime/debug"
)

// Spawn runs fn on a new goroutine. A panic is written to the logger with a
// stack trace before re-panicking, since the curses UI owns the terminal and
// panic output to stderr would be lost behind it.
func Spawn(logger *log.Logger, fn func()) {
	go func() {
		defer func() {
			if r := recover(); r != nil {
				logger.Printf("PANIC: %v\n%s", r, debug.Stack())
				panic(r)
			}
		}()
		fn()
	}()
}
