package cmd

import (
	"github.com/samsaffron/mdreveal/internal/config"
	"github.com/samsaffron/mdreveal/internal/ui"
	"github.com/spf13/cobra"
)

// AddRenderFlags adds --style, --theme and --width with completion
func AddRenderFlags(cmd *cobra.Command, style, theme *string, width *int) {
	cmd.Flags().StringVar(style, "style", "", "Render style: theme or a glamour style (overrides render.style)")
	cmd.Flags().StringVar(theme, "theme", "", "Color preset for the theme style (overrides render.theme)")
	cmd.Flags().IntVar(width, "width", 0, "Wrap width, 0 for terminal width (overrides render.word_wrap)")
	if err := cmd.RegisterFlagCompletionFunc("style", styleCompletion); err != nil {
		panic("failed to register style completion: " + err.Error())
	}
	if err := cmd.RegisterFlagCompletionFunc("theme", themeCompletion); err != nil {
		panic("failed to register theme completion: " + err.Error())
	}
}

func applyRenderFlags(cmd *cobra.Command, cfg *config.Config, style, theme string, width int) {
	flags := cmd.Flags()
	if flags.Changed("style") {
		cfg.Render.Style = style
	}
	if flags.Changed("theme") {
		cfg.Render.Theme = theme
	}
	if flags.Changed("width") {
		cfg.Render.WordWrap = width
	}
}

func styleCompletion(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
	return ui.StyleNames(), cobra.ShellCompDirectiveNoFileComp
}

func themeCompletion(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
	names := make([]string, 0, len(ui.PresetThemeNames))
	for _, name := range ui.PresetThemeNames {
		names = append(names, name+"\t"+ui.PresetThemes[name].Description)
	}
	return names, cobra.ShellCompDirectiveNoFileComp
}
