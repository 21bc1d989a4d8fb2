package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/acadops/syllabus-etl/internal/pdftext"
)

var extractCmd = &cobra.Command{
	Use:   "extract <pdf>",
	Short: "Dump the extracted text of one syllabus PDF",
	Long: `Extract runs the text extraction stage alone and prints the result,
one page at a time. Useful for checking what the parser actually sees
when a document misbehaves.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ex, err := pdftext.NewPdftotextExtractor()
		if err != nil {
			return err
		}
		pages, err := ex.Extract(args[0])
		if err != nil {
			return err
		}
		for i, page := range pages {
			if i > 0 {
				fmt.Println()
			}
			fmt.Printf("--- page %d ---\n%s\n", i+1, page)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(extractCmd)
}
