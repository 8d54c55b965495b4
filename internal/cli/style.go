package cli

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"

	"github.com/forPelevin/ytdigest/internal/pipeline"
	"github.com/forPelevin/ytdigest/internal/types"
)

var (
	TitleStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("3"))
	BulletStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("8")).PaddingRight(1)
	TextStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("15"))
	DimTextStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	WarnStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))
	ErrorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	SuccessStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
)

func bullet(s string) string { return BulletStyle.Render(s) }

func printReport(w io.Writer, rep pipeline.Report, estimateOnly bool) {
	fmt.Fprintln(w, bullet("┌")+TitleStyle.Render("ytdigest"))
	for _, v := range rep.Manifest.Videos {
		if v.Error != "" {
			fmt.Fprintln(w, bullet("├")+ErrorStyle.Render(v.VideoID)+DimTextStyle.Render("  "+v.Error))
			continue
		}
		fmt.Fprintln(w, bullet("├")+TextStyle.Render(v.Title)+DimTextStyle.Render("  "+v.VideoID))
		fmt.Fprintln(w, bullet("├────")+DimTextStyle.Render(fmt.Sprintf("%d tokens, %s", v.Tokens, v.Cost)))
		switch {
		case estimateOnly:
		case v.Degraded:
			fmt.Fprintln(w, bullet("├────")+WarnStyle.Render("demonstration data (completion service unavailable)"))
		case v.Source == types.SourceModel:
			fmt.Fprintln(w, bullet("├────")+SuccessStyle.Render("analyzed"))
		}
	}
	fmt.Fprintln(w, bullet("│"))
	fmt.Fprintln(w, bullet("└")+TextStyle.Render("Manifest: ")+DimTextStyle.Render(rep.ManifestPath))
}
