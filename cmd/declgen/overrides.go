package main

import (
	"github.com/cockroachdb/errors"
	"github.com/spf13/cobra"

	"github.com/calumari/declgen/internal/generator"
	"github.com/calumari/declgen/internal/golang"
	"github.com/calumari/declgen/internal/logger"
	"github.com/calumari/declgen/internal/render"
	"github.com/calumari/declgen/internal/typeq"
)

func newOverridesCmd() *cobra.Command {
	var (
		library     string
		dir         string
		base        string
		returns     string
		as          string
		statics     bool
		contextType string
	)
	cmd := &cobra.Command{
		Use:   "overrides",
		Short: "Print return-narrowing overrides of a base type",
		Long: `overrides emits a subtype of --base that overrides every public instance
method returning --returns so that it returns --as instead. With --statics
it also mirrors the static factories of --base that return --returns.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			q, err := loadQuery(library, dir)
			if err != nil {
				return err
			}
			spec, err := overrideSpec(q, base, returns, as, statics, contextType)
			if err != nil {
				return err
			}
			src, err := render.NewKotlin().Render(spec)
			if err != nil {
				return err
			}
			_, err = cmd.OutOrStdout().Write(src)
			return err
		},
	}
	cmd.Flags().StringVar(&library, "library", "", "YAML type table")
	cmd.Flags().StringVar(&dir, "dir", "", "Go package directory")
	cmd.Flags().StringVar(&base, "base", "", "Qualified name of the type whose methods are overridden")
	cmd.Flags().StringVar(&returns, "returns", "", "Qualified return type selecting the methods (defaults to --base)")
	cmd.Flags().StringVar(&as, "as", "", "Qualified name of the generated subtype")
	cmd.Flags().BoolVar(&statics, "statics", false, "Also mirror static factories")
	cmd.Flags().StringVar(&contextType, "context-type", generator.DefaultContextType, "Parameter type that makes a one-argument factory memoizable")
	cmd.MarkFlagsMutuallyExclusive("library", "dir")
	cmd.MarkFlagsOneRequired("library", "dir")
	_ = cmd.MarkFlagRequired("base")
	_ = cmd.MarkFlagRequired("as")
	return cmd
}

func loadQuery(library, dir string) (typeq.Query, error) {
	if dir != "" {
		pkg, err := golang.Load(dir)
		if err != nil {
			return nil, err
		}
		return pkg.Query(), nil
	}
	tbl, err := typeq.LoadTableFile(library)
	if err != nil {
		return nil, err
	}
	return tbl, nil
}

// overrideSpec builds the subtype named as: overrides of the methods of base
// returning returns, and optionally mirrors of its static factories.
func overrideSpec(q typeq.Query, base, returns, as string, statics bool, contextType string) (generator.TypeSpec, error) {
	baseType, ok := q.Lookup(base)
	if !ok {
		return generator.TypeSpec{}, errors.Newf("type %s not found", base)
	}
	target := baseType
	if returns != "" {
		if target, ok = q.Lookup(returns); !ok {
			return generator.TypeSpec{}, errors.Newf("type %s not found", returns)
		}
	}
	self := typeq.ClassName(as)
	spec := generator.TypeSpec{
		Name:       self.Simple(),
		Package:    self.Package(),
		Visibility: generator.Public,
		Superclass: &baseType,
	}
	mp := generator.NewMapper(q, contextType)
	for _, m := range generator.FindInstanceMethodsReturning(q, baseType, target) {
		spec.Decls = append(spec.Decls, mp.GenerateOverride(m, self))
	}
	if statics {
		for _, m := range generator.FindStaticMethodsReturning(q, baseType, target) {
			d, slot, err := mp.GenerateStaticFactoryEquivalent(m, self)
			if err != nil {
				return generator.TypeSpec{}, err
			}
			spec.Statics = append(spec.Statics, d)
			if slot != nil {
				spec.Fields = append(spec.Fields, *slot)
			}
		}
	}
	logger.Logger.Infow("built overrides", "type", as, "overrides", len(spec.Decls), "statics", len(spec.Statics))
	return spec, nil
}
