package cli

import (
	"github.com/spf13/cobra"
)

// completionCommand generates shell completion scripts. Script paths are
// completed with the extensions script.ReadFile understands.
func (c *CLI) completionCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "completion [bash|zsh|fish|powershell]",
		Short: "Generate shell completion scripts",
		Long: `Generate shell completion scripts for viewdock.

To load completions:

Bash:
  $ source <(viewdock completion bash)

  # To load completions for each session, execute once:
  # Linux:
  $ viewdock completion bash > /etc/bash_completion.d/viewdock
  # macOS:
  $ viewdock completion bash > $(brew --prefix)/etc/bash_completion.d/viewdock

Zsh:
  # If shell completion is not already enabled in your environment,
  # you will need to enable it. You can execute the following once:
  $ echo "autoload -U compinit; compinit" >> ~/.zshrc

  # To load completions for each session, execute once:
  $ viewdock completion zsh > "${fpath[1]}/_viewdock"

  # You will need to start a new shell for this setup to take effect.

Fish:
  $ viewdock completion fish | source

  # To load completions for each session, execute once:
  $ viewdock completion fish > ~/.config/fish/completions/viewdock.fish

PowerShell:
  PS> viewdock completion powershell | Out-String | Invoke-Expression

  # To load completions for every new session, run:
  PS> viewdock completion powershell > viewdock.ps1
  # and source this file from your PowerShell profile.
`,
		DisableFlagsInUseLine: true,
		ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
		Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			switch args[0] {
			case "bash":
				return cmd.Root().GenBashCompletion(cmd.OutOrStdout())
			case "zsh":
				return cmd.Root().GenZshCompletion(cmd.OutOrStdout())
			case "fish":
				return cmd.Root().GenFishCompletion(cmd.OutOrStdout(), true)
			case "powershell":
				return cmd.Root().GenPowerShellCompletionWithDesc(cmd.OutOrStdout())
			}
			return nil
		},
	}

	return cmd
}

// completeScripts completes script file arguments.
func completeScripts(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	if len(args) > 0 {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
	return []string{"json", "toml", "yaml", "yml"}, cobra.ShellCompDirectiveFilterFileExt
}
