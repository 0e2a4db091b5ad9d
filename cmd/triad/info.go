package main

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/justyntemme/triadgo/pkg/framework/bus"
	"github.com/justyntemme/triadgo/pkg/framework/plugin"
	"github.com/justyntemme/triadgo/pkg/host"
	vst3plugin "github.com/justyntemme/triadgo/pkg/plugin"
	"github.com/justyntemme/triadgo/pkg/triad"
)

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#5fafff"))
	yesStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#5faf5f"))
	noStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#555"))
)

func init() {
	rootCmd.AddCommand(infoCmd)
}

var infoCmd = &cobra.Command{
	Use:   "info",
	Short: "Prints plugin metadata, buses and capabilities",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return printInfo(cmd.OutOrStdout(), &triad.Plugin{})
	},
}

func printInfo(w io.Writer, p vst3plugin.Plugin) error {
	info := p.GetInfo()
	if err := info.ValidateUID(); err != nil {
		return err
	}

	proc := p.CreateProcessor(host.NewRecorder(0, 0), vst3plugin.GetConfig())
	factory := vst3plugin.GetFactoryInfo()

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, headerStyle.Render("Plugin"))
	fmt.Fprintf(tw, "Name:\t%s\n", info.Name)
	fmt.Fprintf(tw, "ID:\t%s\n", info.ID)
	fmt.Fprintf(tw, "UID:\t%s\n", info.UIDString())
	fmt.Fprintf(tw, "Unique ID:\t%d\n", info.UniqueID)
	fmt.Fprintf(tw, "Version:\t%s\n", info.Version)
	fmt.Fprintf(tw, "Vendor:\t%s (%s)\n", factory.Vendor, factory.URL)
	fmt.Fprintf(tw, "Category:\t%s\n", info.Category)

	fmt.Fprintf(tw, "\n%s\n", headerStyle.Render("Buses"))
	for _, b := range proc.GetBuses().All() {
		if b.MediaType == bus.MediaTypeAudio {
			fmt.Fprintf(tw, "  %s\t%s %s\t%d ch\n", b.Name, b.MediaType, b.Direction, b.ChannelCount)
		} else {
			fmt.Fprintf(tw, "  %s\t%s %s\t\n", b.Name, b.MediaType, b.Direction)
		}
	}

	fmt.Fprintf(tw, "\n%s\n", headerStyle.Render("Capabilities"))
	for _, c := range plugin.AllCanDos() {
		answer := proc.CanDo(c)
		style := noStyle
		if answer == plugin.Yes {
			style = yesStyle
		}
		fmt.Fprintf(tw, "  %s\t%s\n", c, style.Render(answer.String()))
	}

	return tw.Flush()
}
