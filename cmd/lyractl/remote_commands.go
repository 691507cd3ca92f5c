package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/lyra-ai/lyra-backend/internal/domain"
)

func newAskCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "ask <utterance...>",
		Short: "Send an utterance to the assistant and show its reply",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			body := map[string]any{"transcription": strings.Join(args, " ")}
			var resp domain.AssistantResponse
			if err := ctx.call("POST", "/assistant/voice", body, &resp); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), renderResponse(resp))
			return nil
		},
	}
}

func newInsightsCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "insights",
		Short: "Show priorities, suggestions and overall progress",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var insights domain.UserInsights
			if err := ctx.call("GET", "/assistant/insights", nil, &insights); err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Progress: %d%%\n", insights.Progress)
			fmt.Fprintln(out, renderList("Priorities", insights.Priorities))
			fmt.Fprintln(out, renderList("Suggestions", insights.Suggestions))
			return nil
		},
	}
}

func newSummaryCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "summary",
		Short: "Show today's activity summary",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var summary domain.DailySummary
			if err := ctx.call("GET", "/assistant/summary", nil, &summary); err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, renderTable(
				[]string{"Metric", "Today"},
				[][]string{
					{"Tasks completed", strconv.Itoa(summary.TasksCompleted)},
					{"Tasks created", strconv.Itoa(summary.TasksCreated)},
					{"Goals progressed", strconv.Itoa(summary.GoalsProgress)},
					{"Notes taken", strconv.Itoa(summary.NotesTaken)},
				},
				[]columnAlignment{alignLeft, alignRight},
			))
			fmt.Fprintln(out, renderList("Recommendations", summary.Recommendations))
			return nil
		},
	}
}

func renderResponse(resp domain.AssistantResponse) string {
	var b strings.Builder
	b.WriteString(resp.Text)
	b.WriteString("\n")
	b.WriteString(renderTable(
		[]string{"Intent", "Outcome", "Confidence"},
		[][]string{{string(resp.Intent), string(resp.Outcome), formatConfidence(resp.Confidence)}},
		nil,
	))
	if len(resp.Actions) > 0 {
		rows := make([][]string, 0, len(resp.Actions))
		for _, a := range resp.Actions {
			rows = append(rows, []string{string(a.Type), string(a.Status), a.Target.EntityID, a.Description})
		}
		b.WriteString("\n")
		b.WriteString(renderTable([]string{"Action", "Status", "Target", "Description"}, rows, nil))
	}
	if len(resp.Suggestions) > 0 {
		b.WriteString("\n")
		b.WriteString(renderList("Suggestions", resp.Suggestions))
	}
	return b.String()
}
