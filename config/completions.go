package config

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"
)

// GenCompletions writes the completion script for shell to w.
func GenCompletions(root *cobra.Command, shell string, w io.Writer) error {
	switch shell {
	case "bash":
		return root.GenBashCompletion(w)
	case "zsh":
		return root.GenZshCompletion(w)
	case "fish":
		return root.GenFishCompletion(w, true)
	case "powershell":
		return root.GenPowerShellCompletionWithDesc(w)
	default:
		return fmt.Errorf("unsupported shell %q (want bash, zsh, fish or powershell)", shell)
	}
}

const CompletionHelp = `To load completions:

Bash:

  $ source <(taskpilot completion bash)

  # To load completions for each session, execute once:
  # Linux:
  $ taskpilot completion bash > /etc/bash_completion.d/taskpilot
  # macOS:
  $ taskpilot completion bash > /usr/local/etc/bash_completion.d/taskpilot

Zsh:

  # If shell completion is not already enabled in your environment,
  # you will need to enable it.  You can execute the following once:

  $ echo "autoload -U compinit; compinit" >> ~/.zshrc

  # To load completions for each session, execute once:
  $ taskpilot completion zsh > "${fpath[1]}/_taskpilot"

fish:

  $ taskpilot completion fish | source

  # To load completions for each session, execute once:
  $ taskpilot completion fish > ~/.config/fish/completions/taskpilot.fish

PowerShell:

  PS> taskpilot completion powershell | Out-String | Invoke-Expression
`
