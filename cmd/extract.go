package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/mnordin/planverk/internal/extract"
	"github.com/spf13/cobra"
)

var extractCmd = &cobra.Command{
	Use:   "extract <file>",
	Short: "Print the text Planverk would extract from a document",
	Long:  "Runs the same PDF/plain-text extraction used by calibration and the workbench, and prints the result. Useful for checking what the model will actually see.",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		data, err := os.ReadFile(args[0])
		if err != nil {
			return fmt.Errorf("read file: %w", err)
		}

		doc := extract.Document{Name: filepath.Base(args[0]), Data: data}
		text, err := extract.Text(doc)
		if err != nil {
			return err
		}

		fmt.Println(text)
		return nil
	},
}
