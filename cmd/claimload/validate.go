package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/eyther/claimstats/internal/exitcode"
	"github.com/eyther/claimstats/internal/logging"
)

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate the payer mapping table",
	RunE:  runValidate,
}

func init() {
	rootCmd.AddCommand(validateCmd)
}

func runValidate(cmd *cobra.Command, args []string) error {
	log := logging.Setup(cfg.LogFormat)

	mappings, err := loadMappings()
	if err != nil {
		log.Error().Err(err).Msg("mapping table invalid")
		os.Exit(exitcode.ValidationError)
	}

	source := cfg.MappingsPath
	if source == "" {
		source = "(embedded)"
	}
	fmt.Printf("Mapping table %s: OK\n", source)
	for _, m := range mappings {
		fmt.Printf("  %-22s kind=%-15s id-headers=%d columns=%d\n",
			m.PayerName, m.Kind, len(m.IdentificationHeaders), len(m.ColumnMapping))
	}
	return nil
}
