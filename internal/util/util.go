package util

import (
	"fmt"
	"runtime"
	"strings"
)

// GetTrace produces the string representation of a stack trace
func GetTrace() string {
	var name, file string
	var line int
	var pc [16]uintptr
	var res strings.Builder
	n := runtime.Callers(3, pc[:])
	for _, pc := range pc[:n] {
		fn := runtime.FuncForPC(pc)
		if fn == nil {
			continue
		}
		file, line = fn.FileLine(pc)
		name = fn.Name()
		if !strings.HasPrefix(name, "runtime.") {
			fmt.Fprintf(&res, "%s\n\t%s:%d\n", name, file, line)
		}
	}
	return res.String()
}

// recovered turns a recovered panic value into an error describing the failed operation
func recovered(kind string, r interface{}, subject string) error {
	if anErr, ok := r.(error); ok {
		return fmt.Errorf("%s Panic: %w\n%s\n%s", kind, anErr, subject, GetTrace())
	}
	return fmt.Errorf("%s Panic: %v\n%s\n%s", kind, r, subject, GetTrace())
}
