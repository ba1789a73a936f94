// Package frontend runs the interactive MindTrack shell.
package frontend

import (
	"github.com/mindtrack/mindtrack/data"
	"github.com/mindtrack/mindtrack/frontend/cmd"
)

// Run wires the data service into the shell commands and blocks until the
// user exits.
func Run(svc *data.Service) {
	cmd.Init(svc)
	cmd.Execute()
}
