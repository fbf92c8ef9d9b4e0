package commands

import (
	"context"
	"strings"

	"github.com/goliatone/go-langneg/internal/logging"
	"github.com/goliatone/go-langneg/pkg/interfaces"
)

const commandModuleRoot = "langneg.commands"

// CommandLogger returns the logger for a command module, registered as
// "langneg.commands.<module>". An empty module maps to "core".
func CommandLogger(provider interfaces.LoggerProvider, module string) interfaces.Logger {
	name := strings.ToLower(strings.TrimSpace(module))
	if name == "" {
		name = "core"
	}
	logger := logging.ModuleLogger(provider, commandModuleRoot+"."+name)
	return logging.WithFields(logger, map[string]any{
		"component":      "command",
		"command_module": name,
	})
}

// bindExecution stores the execution fields on ctx so loggers the wrapped
// function derives through WithContext carry them, and returns the handler
// logger bound to that context.
func bindExecution(ctx context.Context, logger interfaces.Logger, fields map[string]any) (context.Context, interfaces.Logger) {
	ctx = logging.ContextWithFields(ctx, fields)
	return ctx, logging.Ensure(logger).WithContext(ctx)
}
