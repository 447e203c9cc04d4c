package server

import (
	"fmt"
	"log"
	"strings"

	"github.com/df07/go-pathtracer/pkg/core"
)

// WebLogger implements core.Logger by tagging renderer output with the
// render it belongs to, so concurrent requests stay distinguishable in the log
type WebLogger struct {
	renderID string
	out      *log.Logger
}

// NewWebLogger creates a new web logger for a specific render
func NewWebLogger(renderID string, out *log.Logger) core.Logger {
	if out == nil {
		out = log.Default()
	}
	return &WebLogger{renderID: renderID, out: out}
}

// Printf implements core.Logger interface
func (wl *WebLogger) Printf(format string, args ...interface{}) {
	message := strings.TrimRight(fmt.Sprintf(format, args...), "\n")
	wl.out.Printf("[%s] %s", wl.renderID, message)
}
