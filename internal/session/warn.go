package session

import (
	"fmt"
	"io"
	"os"
	"sync"
)

var (
	warnMu sync.Mutex
	// warnOut receives persistence warnings. Tests swap it out.
	warnOut io.Writer = os.Stderr
)

func warnf(format string, args ...any) {
	warnMu.Lock()
	defer warnMu.Unlock()
	fmt.Fprintf(warnOut, "warning: "+format+"\n", args...)
}

// SetWarningOutput redirects persistence warnings, e.g. away from the
// terminal while the full-screen UI is running. It returns the previous writer.
func SetWarningOutput(w io.Writer) io.Writer {
	warnMu.Lock()
	defer warnMu.Unlock()
	prev := warnOut
	warnOut = w
	return prev
}
