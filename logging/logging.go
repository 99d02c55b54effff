/*package logging controls how much the qrng binary reports about itself.*/
package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"runtime"
	"strings"
)

type Flag int

const (
	Nil Flag = iota
	Performance
	Debug
)

// This is handled this way so that GlobalConfig doesn't need to be passed to
// literally every function in the project.
var (
	Mode Flag = Nil
	// Output is where Logger() writes.
	Output io.Writer = os.Stderr
)

// ParseFlag converts the name of a logging mode ("nil", "performance", or
// "debug") to a Flag.
func ParseFlag(s string) (Flag, error) {
	switch strings.ToLower(s) {
	case "", "nil", "none":
		return Nil, nil
	case "performance", "perf":
		return Performance, nil
	case "debug":
		return Debug, nil
	}
	return Nil, fmt.Errorf("The logging mode '%s' isn't one I recognize. "+
		"The supported modes are nil, performance, and debug.", s)
}

func (f Flag) String() string {
	switch f {
	case Nil:
		return "nil"
	case Performance:
		return "performance"
	case Debug:
		return "debug"
	}
	return fmt.Sprintf("Flag(%d)", int(f))
}

// Level is the slog level corresponding to the logging mode. Nil only lets
// warnings through.
func (f Flag) Level() slog.Level {
	switch f {
	case Debug:
		return slog.LevelDebug
	case Performance:
		return slog.LevelInfo
	}
	return slog.LevelWarn
}

// Logger returns a text logger writing to Output at the level set by Mode.
func Logger() *slog.Logger {
	return slog.New(slog.NewTextHandler(Output,
		&slog.HandlerOptions{Level: Mode.Level()}))
}

// MemString returns a string containing various statistics on the current
// memory usage of qrng.
func MemString() string {
	ms := runtime.MemStats{}
	runtime.ReadMemStats(&ms)
	return fmt.Sprintf(
		"Alloc - %d MB; Sys - %d MB Integrated - %d MB",
		ms.Alloc>>20, ms.Sys>>20, ms.TotalAlloc>>20,
	)
}
