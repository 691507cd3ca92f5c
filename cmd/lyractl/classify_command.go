package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/lyra-ai/lyra-backend/internal/domain"
	"github.com/lyra-ai/lyra-backend/internal/service/assistant"
)

func newClassifyCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "classify <utterance...>",
		Short: "Classify an utterance locally without contacting the server",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			command := assistant.Classify(strings.Join(args, " "))
			fmt.Fprintln(cmd.OutOrStdout(), renderCommand(command))
			return nil
		},
	}
}

func renderCommand(command domain.Command) string {
	rows := [][]string{
		{"intent", string(command.Intent)},
		{"confidence", formatConfidence(command.Confidence)},
	}
	for _, e := range command.Entities {
		rows = append(rows, []string{string(e.Type), fmt.Sprint(e.Value)})
	}
	return renderTable([]string{"Field", "Value"}, rows, nil)
}

func formatConfidence(c float64) string {
	return fmt.Sprintf("%.2f", c)
}
