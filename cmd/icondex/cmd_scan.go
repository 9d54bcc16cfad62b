package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"icondex/internal/scan"
)

// scanCmd reports the pairing state of an icon directory without
// touching the dataset or calling any external service.
var scanCmd = &cobra.Command{
	Use:   "scan <icon-dir>",
	Short: "Report complete and incomplete icon pairs in a directory",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		pairs, err := scan.NewScanner(logger).Scan(args[0])
		if err != nil {
			return err
		}

		complete, incomplete := 0, 0
		for i := range pairs {
			if pairs[i].Complete() {
				complete++
			} else {
				incomplete++
			}
		}
		fmt.Printf("%d pairs: %d complete, %d incomplete\n", len(pairs), complete, incomplete)
		return nil
	},
}
