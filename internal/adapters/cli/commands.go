package cli

import (
	"errors"
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"localesync/internal/domain/entities"
	"localesync/internal/infrastructure/jsonfile"
)

var errIncomplete = errors.New("some locales are incomplete")

func newScaffoldCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "scaffold [locale...]",
		Short: "Regenerate target locale files from the reference",
		Long: `Writes every target locale file afresh: the reference structure with
override batch values substituted where present. Existing target files
are replaced; use sync to keep translations already in them.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			targets, err := a.targets(args)
			if err != nil {
				return err
			}
			svc, closeFn, err := a.service(cmd.Context(), false)
			if err != nil {
				return err
			}
			defer closeFn()
			_, err = svc.Scaffold(cmd.Context(), a.reference, targets)
			return err
		},
	}
}

func newSyncCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "sync [locale...]",
		Short: "Bring target locale files in line with the reference, keeping translations",
		Long: `Rebuilds every target locale file in the shape of the reference. Values
come from the override batch first, then from the existing target file,
then from the reference. Keys no longer in the reference are dropped.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			targets, err := a.targets(args)
			if err != nil {
				return err
			}
			svc, closeFn, err := a.service(cmd.Context(), false)
			if err != nil {
				return err
			}
			defer closeFn()
			_, err = svc.Sync(cmd.Context(), a.reference, targets)
			return err
		},
	}
}

func newCheckCommand(a *app) *cobra.Command {
	var (
		lookups bool
		strict  bool
	)
	cmd := &cobra.Command{
		Use:   "check [locale...]",
		Short: "Report translation coverage of target locale files",
		RunE: func(cmd *cobra.Command, args []string) error {
			targets, err := a.targets(args)
			if err != nil {
				return err
			}
			svc, closeFn, err := a.service(cmd.Context(), lookups)
			if err != nil {
				return err
			}
			defer closeFn()
			coverages, err := svc.Check(cmd.Context(), a.reference, targets)
			if err != nil {
				return err
			}
			if strict {
				for _, c := range coverages {
					if !c.Complete() {
						return errIncomplete
					}
				}
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&lookups, "i18n-lookups", false, "resolve every reference key through a go-i18n bundle")
	cmd.Flags().BoolVar(&strict, "strict", false, "exit non-zero when a locale has missing or unresolved keys")
	return cmd
}

func newLocalesCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "locales",
		Short: "List the target locales of the catalog",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := a.catalog()
			if err != nil {
				return err
			}
			tw := tabwriter.NewWriter(a.out, 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "CODE\tENGLISH\tNATIVE")
			for _, loc := range c.Locales() {
				fmt.Fprintf(tw, "%s\t%s\t%s\n", loc.Code, loc.EnglishName, loc.NativeName)
			}
			return tw.Flush()
		},
	}
}

func newOverridesCommand(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "overrides",
		Short: "Manage override batches stored in PostgreSQL",
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "import <locale> <file.json>",
		Short: "Store a JSON override batch for a locale",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			targets, err := a.targets(args[:1])
			if err != nil {
				return err
			}
			batch, err := jsonfile.ReadFile(args[1])
			if err != nil {
				return err
			}
			svc, closeFn, err := a.service(cmd.Context(), false)
			if err != nil {
				return err
			}
			defer closeFn()
			n, err := svc.ImportOverrides(cmd.Context(), targets[0].Code, batch)
			if err != nil {
				return err
			}
			fmt.Fprintf(a.out, "✓ %d overrides stored for %s\n", n, targets[0])
			return nil
		},
	})
	return cmd
}

func (a *app) targets(codes []string) ([]entities.Locale, error) {
	c, err := a.catalog()
	if err != nil {
		return nil, err
	}
	return c.Select(codes...)
}
