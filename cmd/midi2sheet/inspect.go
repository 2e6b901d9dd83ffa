package main

import (
	"fmt"

	. "github.com/JeanRibes/midi2sheet/shared"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
)

var (
	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#00ff9f"))
	labelStyle = lipgloss.NewStyle().Width(12)
	valueStyle = lipgloss.NewStyle().Width(10).Align(lipgloss.Right)
	dimStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#6e7681"))
)

func init() {
	rootCmd.AddCommand(inspectCmd)
}

var inspectCmd = &cobra.Command{
	Use:   "inspect <take.mid>",
	Short: "Show what every pipeline stage did to a take",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		p, err := process(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		w := cmd.OutOrStdout()

		fmt.Fprintln(w, titleStyle.Render(baseName(args[0])))
		fmt.Fprintln(w, labelStyle.Render("tempo")+valueStyle.Render(fmt.Sprintf("%.1f", p.Tempo)))
		fmt.Fprintln(w, labelStyle.Render("downbeat")+valueStyle.Render(fmt.Sprintf("%.3fs", p.Downbeat)))
		fmt.Fprintln(w, labelStyle.Render("grid unit")+valueStyle.Render(fmt.Sprintf("%.4fs", p.Result.Grid.Unit)))
		fmt.Fprintln(w, labelStyle.Render("key")+valueStyle.Render(p.Key.String()))
		fmt.Fprintln(w)

		fmt.Fprintln(w, titleStyle.Render("stages"))
		fmt.Fprintln(w, dimStyle.Render(labelStyle.Render("stage")+valueStyle.Render("segments")+valueStyle.Render("sounding")))
		for i := 0; i < NUM_STAGES; i++ {
			stage := Stage(i)
			if !p.State.Recorded(stage) {
				continue
			}
			fmt.Fprintln(w, labelStyle.Render(stage.String())+
				valueStyle.Render(fmt.Sprint(p.State.Stat(stage)))+
				valueStyle.Render(fmt.Sprintf("%.3fs", p.State.Stages[stage].TotalDuration())))
		}
		fmt.Fprintln(w)

		fmt.Fprintln(w, titleStyle.Render("elements"))
		for _, el := range p.Result.Elements {
			line := labelStyle.Render(el.Name) + valueStyle.Render(el.Pitch) + valueStyle.Render(fmt.Sprintf("%g", el.Duration))
			if el.IsRest() {
				line = dimStyle.Render(line)
			}
			fmt.Fprintln(w, line)
		}
		return nil
	},
}
