package commands

import (
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/spf13/cobra"

	"tableflip.dev/diary/pkg/commands/options"
	"tableflip.dev/diary/pkg/config"
	"tableflip.dev/diary/pkg/kv"
	"tableflip.dev/diary/pkg/store"
)

// now is the clock used to resolve --on and today's date.
var now = time.Now

// openStore is replaced in tests.
var openStore = loadStore

func New() *cobra.Command {

	cmd := &cobra.Command{
		Use:   "diary",
		Short: options.Wrap80("A daily diary on the command line, one entry per calendar day."),
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	AddCommands(cmd)
	return cmd
}

func AddCommands(topLevel *cobra.Command) {
	addWrite(topLevel)
	addRead(topLevel)
	addDelete(topLevel)
	addList(topLevel)
	addCal(topLevel)
	addReindex(topLevel)
	addExport(topLevel)
	addUI(topLevel)
	addVersion(topLevel)
}

// loadStore reads the config, installs the default logger and opens the
// configured backend.
func loadStore() (*store.Store, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: cfg.LogLevel()}))
	slog.SetDefault(logger)

	backend, err := kv.Open(cfg.Backend(), cfg.BasePath())
	if err != nil {
		return nil, fmt.Errorf("open %s store at %s: %w", cfg.Backend(), cfg.BasePath(), err)
	}
	logger.Debug("store opened", "backend", cfg.Backend(), "path", cfg.BasePath())
	return store.New(backend, store.WithLogger(logger)), nil
}
