package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/dmitrymomot/ibankit/pkg/config"
	"github.com/dmitrymomot/ibankit/pkg/iban"
)

// ErrInvalidInput is returned by validate when at least one IBAN is rejected.
// The per-IBAN result has already been printed, so Execute does not repeat it.
var ErrInvalidInput = errors.New("invalid input")

func Execute() {
	cmd := NewRootCmd()
	if err := cmd.ExecuteContext(context.Background()); err != nil {
		if !errors.Is(err, ErrInvalidInput) {
			fmt.Fprintln(os.Stderr, "error:", err)
		}
		os.Exit(1)
	}
}

type state struct {
	registryFile string

	cfg      Config
	registry *iban.Registry
}

func NewRootCmd() *cobra.Command {
	st := &state{}

	cmd := &cobra.Command{
		Use:           "ibankit",
		Short:         "Validate IBANs and extract bank clearing numbers",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
			return st.load()
		},
	}

	cmd.PersistentFlags().StringVar(&st.registryFile, "registry", "",
		"YAML file with country rules merged over the built-in registry (env IBAN_REGISTRY_FILE)")

	cmd.AddCommand(validateCmd(st))
	cmd.AddCommand(clearingCmd(st))
	cmd.AddCommand(countriesCmd(st))
	cmd.AddCommand(serveCmd(st))
	return cmd
}

func (st *state) load() error {
	cfg, err := config.Load[Config]()
	if err != nil {
		return err
	}
	cfg.AllowedCountries = normalizeCountries(cfg.AllowedCountries)
	st.cfg = cfg

	path := st.registryFile
	if path == "" {
		path = cfg.RegistryFile
	}
	reg, err := loadRegistry(path)
	if err != nil {
		return err
	}
	st.registry = reg
	return nil
}

// normalizeCountries trims and upper-cases country codes, dropping empty entries,
// so that "ch, NL," allows CH and NL.
func normalizeCountries(codes []string) []string {
	out := make([]string, 0, len(codes))
	for _, c := range codes {
		if c = strings.ToUpper(strings.TrimSpace(c)); c != "" {
			out = append(out, c)
		}
	}
	return out
}

func loadRegistry(path string) (*iban.Registry, error) {
	if path == "" {
		return iban.DefaultRegistry(), nil
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open registry: %w", err)
	}
	defer f.Close()

	custom, err := iban.LoadRegistry(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return iban.DefaultRegistry().With(custom.Countries()...)
}
