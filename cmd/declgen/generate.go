package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/calumari/declgen/internal/config"
	"github.com/calumari/declgen/internal/generator"
	"github.com/calumari/declgen/internal/logger"
	"github.com/calumari/declgen/internal/render"
	"github.com/calumari/declgen/internal/typeq"
)

func newGenerateCmd() *cobra.Command {
	var (
		configFile string
		library    string
	)
	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate the typed API classes",
		Long: `generate reads the run configuration and the library type table and
prints every generated class, each preceded by a "// file:" line naming
its path below the source root.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(configFile)
			if err != nil {
				return err
			}
			if library != "" {
				cfg.Library = library
			}
			if err := cfg.Validate(); err != nil {
				return err
			}
			tbl, err := typeq.LoadTableFile(cfg.Library)
			if err != nil {
				return err
			}
			logger.Logger.Infow("generating", "package", cfg.Package, "library", cfg.Library)
			res, err := generator.Run(tbl, cfg.Generator())
			if err != nil {
				return err
			}

			var r render.Renderer = render.NewKotlin()
			out := cmd.OutOrStdout()
			for _, spec := range res.Types {
				src, err := r.Render(spec)
				if err != nil {
					return err
				}
				fmt.Fprintf(out, "// file: %s\n", r.FileName(spec))
				if _, err := out.Write(src); err != nil {
					return err
				}
			}
			logger.Logger.Infow("generated", "types", len(res.Types))
			return nil
		},
	}
	cmd.Flags().StringVar(&configFile, "config", "declgen.yaml", "Run configuration file")
	cmd.Flags().StringVar(&library, "library", "", "YAML type table (overrides the configured one)")
	return cmd
}
