package main

import (
	"errors"
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"rescathena.com/web/internal/config"
	"rescathena.com/web/internal/i18n"
)

func newI18nCmd(opts []config.Option) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "i18n",
		Short: "Inspect the translation dictionaries",
	}
	cmd.AddCommand(
		&cobra.Command{
			Use:   "check",
			Short: "Fail when the dictionaries do not define the same keys",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				b, err := loadBundle(opts)
				if err != nil {
					return err
				}
				err = i18n.CheckParity(b)
				var parity *i18n.ParityError
				if errors.As(err, &parity) {
					langs := make([]string, 0, len(parity.Missing))
					for l := range parity.Missing {
						langs = append(langs, l)
					}
					sort.Strings(langs)
					for _, l := range langs {
						for _, k := range parity.Missing[l] {
							fmt.Fprintf(cmd.ErrOrStderr(), "%s: missing %s\n", l, k)
						}
					}
					return err
				}
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "ok: %d languages in sync\n", len(b.Supported()))
				return nil
			},
		},
		&cobra.Command{
			Use:   "keys [lang]",
			Short: "Print the flattened keys and values of a dictionary",
			Args:  cobra.MaximumNArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				b, err := loadBundle(opts)
				if err != nil {
					return err
				}
				lang := b.Fallback()
				if len(args) == 1 {
					lang = args[0]
				}
				d, ok := b.Dictionary(lang)
				if !ok {
					return fmt.Errorf("no dictionary for %q (supported: %v)", lang, b.Supported())
				}
				flat := i18n.Flatten(d)
				for _, k := range i18n.Keys(d) {
					fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\n", k, flat[k])
				}
				return nil
			},
		},
	)
	return cmd
}

func loadBundle(opts []config.Option) (*i18n.Bundle, error) {
	cfg, err := config.Load(opts...)
	if err != nil {
		return nil, err
	}
	return i18n.Load(i18n.Locales(), cfg.FallbackLang, []string{i18n.English, i18n.Spanish})
}
