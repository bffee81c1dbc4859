package main

import (
	"fmt"
	"os"

	"github.com/cockroachdb/errors"
	"github.com/spf13/cobra"

	"github.com/calumari/declgen/internal/golang"
	"github.com/calumari/declgen/internal/logger"
	"github.com/calumari/declgen/internal/pathid"
	"github.com/calumari/declgen/internal/symtree"
)

func newPathsCmd() *cobra.Command {
	var (
		treeFile string
		dir      string
		full     bool
	)
	cmd := &cobra.Command{
		Use:   "paths",
		Short: "Print the path identifier of every declaration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			tree, err := loadTree(treeFile, dir)
			if err != nil {
				return err
			}
			mode := pathid.Structural
			if full {
				mode = pathid.Full
			}
			paths := pathid.Traverse(tree, pathid.WithMode(mode))
			logger.Logger.Infow("traversed declarations", "package", tree.Package(), "paths", len(paths))
			out := cmd.OutOrStdout()
			for _, p := range paths {
				fmt.Fprintln(out, p)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&treeFile, "tree", "", "YAML declaration tree snapshot")
	cmd.Flags().StringVar(&dir, "dir", "", "Go package directory")
	cmd.Flags().BoolVar(&full, "full", false, "Descend into function bodies")
	cmd.MarkFlagsMutuallyExclusive("tree", "dir")
	cmd.MarkFlagsOneRequired("tree", "dir")
	return cmd
}

func loadTree(treeFile, dir string) (*symtree.Tree, error) {
	if dir != "" {
		pkg, err := golang.Load(dir)
		if err != nil {
			return nil, err
		}
		return pkg.Tree(), nil
	}
	f, err := os.Open(treeFile)
	if err != nil {
		return nil, errors.Wrapf(err, "open tree %s", treeFile)
	}
	defer f.Close()
	return symtree.Decode(f)
}
