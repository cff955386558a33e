package cli

import (
	"errors"
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/dmitrymomot/ibankit/pkg/iban"
)

func validateCmd(st *state) *cobra.Command {
	return &cobra.Command{
		Use:   "validate <iban>...",
		Short: "Check IBAN format and checksum",
		Long: "Check each argument as an IBAN. Whitespace inside an argument is ignored.\n" +
			"Exits with status 1 if any IBAN is invalid.",
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			failed := 0
			for _, arg := range args {
				value := iban.New(arg)
				if err := st.registry.Validate(value); err != nil {
					failed++
					fmt.Fprintf(cmd.OutOrStdout(), "INVALID  %q: %v\n", value.String(), err)
					continue
				}
				fmt.Fprintf(cmd.OutOrStdout(), "VALID    %s\n", value.Format())
			}
			if failed > 0 {
				return fmt.Errorf("%w: %d of %d IBANs", ErrInvalidInput, failed, len(args))
			}
			return nil
		},
	}
}

func clearingCmd(st *state) *cobra.Command {
	var trim bool

	c := &cobra.Command{
		Use:   "clearing <iban>",
		Short: "Print the bank clearing number of a valid IBAN",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			value := iban.New(args[0])

			extract := st.registry.ClearingNumber
			if trim {
				extract = st.registry.ClearingNumberWithoutLeadingZeros
			}
			cn, err := extract(value)
			if err != nil {
				if errors.Is(err, iban.ErrInvalidArgument) {
					return fmt.Errorf("%q: %w", value.String(), err)
				}
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), cn)
			return nil
		},
	}

	c.Flags().BoolVar(&trim, "trim", false, "Strip leading zeros")
	return c
}

func countriesCmd(st *state) *cobra.Command {
	return &cobra.Command{
		Use:   "countries",
		Short: "List registered country rules",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "CODE\tNAME\tLENGTH\tFORMAT\tCLEARING")
			for _, rule := range st.registry.Countries() {
				clearing := "-"
				if rule.HasClearingNumber() {
					clearing = fmt.Sprintf("%d+%d", rule.ClearingOffset, rule.ClearingLength)
				}
				fmt.Fprintf(w, "%s\t%s\t%d\t%s\t%s\n", rule.Code, rule.Name, rule.Length, rule.Format, clearing)
			}
			return w.Flush()
		},
	}
}
