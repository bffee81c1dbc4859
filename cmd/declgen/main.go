package main

import (
	"fmt"
	"os"
	"runtime/debug"

	"github.com/cockroachdb/errors"
	"github.com/spf13/cobra"

	"github.com/calumari/declgen/internal/logger"
)

// deriveVersion inspects build info for module version or vcs revision.
// preference order: module semantic version -> short commit hash -> "devel".
func deriveVersion() string {
	if bi, ok := debug.ReadBuildInfo(); ok {
		if bi.Main.Version != "" && bi.Main.Version != "(devel)" {
			return bi.Main.Version
		}
		var revision string
		for _, s := range bi.Settings {
			if s.Key == "vcs.revision" && s.Value != "" {
				revision = s.Value
				break
			}
		}
		if len(revision) >= 12 { // short hash for readability
			return revision[:12]
		}
		if revision != "" {
			return revision
		}
	}
	return "devel"
}

func newRootCmd() *cobra.Command {
	var (
		logJSON  bool
		logLevel string
	)
	root := &cobra.Command{
		Use:   "declgen",
		Short: "declgen - declaration paths and generated API types",
		Long: `declgen derives path identifiers for the declarations of a package and
generates the typed API classes of an image-loading library from a
description of its types.

Available commands:
  paths     - Print the path identifier of every declaration
  overrides - Print return-narrowing overrides of a base type
  generate  - Generate the typed API classes
  version   - Print the build version

Examples:
  declgen paths --dir ./pkg
  declgen generate --config declgen.yaml`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if err := logger.Initialize(logJSON, logLevel); err != nil {
				return errors.Wrap(err, "initialize logger")
			}
			return nil
		},
	}
	root.PersistentFlags().BoolVar(&logJSON, "log-json", false, "Log as JSON instead of console text")
	root.PersistentFlags().StringVar(&logLevel, "log-level", "warn", "Log level (debug, info, warn, error)")

	root.AddCommand(newPathsCmd())
	root.AddCommand(newOverridesCmd())
	root.AddCommand(newGenerateCmd())
	root.AddCommand(newVersionCmd())
	return root
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "declgen: %v\n", err)
		if hint := errors.FlattenHints(err); hint != "" {
			fmt.Fprintf(os.Stderr, "hint: %s\n", hint)
		}
		os.Exit(1)
	}
}
