package commands

import (
	"strings"

	"github.com/goliatone/go-methodlib/internal/logging"
	"github.com/goliatone/go-methodlib/pkg/interfaces"
)

// CommandLogger returns the logger for a command module, named
// methods.commands.<module>.
func CommandLogger(provider interfaces.LoggerProvider, module string) interfaces.Logger {
	name := strings.TrimSpace(module)
	if name == "" {
		name = "core"
	}
	return logging.WithFields(logging.ModuleLogger(provider, "methods.commands."+name), map[string]any{
		"component":      "command",
		"command_module": name,
	})
}
