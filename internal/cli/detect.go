package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/quintile-data/edive/internal/ingest"
)

var detectCmd = &cobra.Command{
	Use:   "detect <file>",
	Short: "Classify a file's source type from its header without validating",
	Args:  requireFileArg,
	RunE: func(cmd *cobra.Command, args []string) error {
		source, err := ingest.DetectSource(args[0])
		if err != nil {
			return err
		}
		fmt.Println(source)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(detectCmd)
}
