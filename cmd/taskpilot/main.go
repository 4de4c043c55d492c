package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"time"

	"github.com/chzyer/readline"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/kardolus/taskpilot/cmd/taskpilot/utils"
	"github.com/kardolus/taskpilot/config"
	"github.com/kardolus/taskpilot/internal"
	"github.com/kardolus/taskpilot/terminal"
)

const (
	exitInterrupted      = 130
	doubleInterruptDelay = 2 * time.Second
	defaultPrompt        = "> "
)

var (
	flagAutoApprove bool
	flagDryRun      bool
	flagNoFormat    bool
	flagDebug       bool
	flagMaxRetries  int
	flagTimeout     int
	flagWorkDir     string
	flagModel       string
)

func main() {
	internal.InitLogger()

	rootCmd := &cobra.Command{
		Use:           "taskpilot [task]",
		Short:         "Plan and run coding tasks with a language model",
		Long:          "taskpilot turns a task described in plain language into a plan of file and shell steps, then runs it in your workspace, asking before anything dangerous.",
		Args:          cobra.ArbitraryArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if flagDebug {
				internal.SetAllowedLogLevels(zapcore.InfoLevel, zapcore.DebugLevel)
			}
		},
		RunE: runRoot,
	}

	flags := rootCmd.PersistentFlags()
	flags.BoolVar(&flagAutoApprove, "auto-approve", false, "Run dangerous actions without asking")
	flags.BoolVar(&flagDryRun, "dry-run", false, "Describe each action instead of performing it")
	flags.BoolVar(&flagNoFormat, "no-format", false, "Show raw tool output instead of a model summary")
	flags.BoolVar(&flagDebug, "debug", false, "Print debug output")
	flags.IntVar(&flagMaxRetries, "max-retries", 0, "Attempts per step, including the first")
	flags.IntVar(&flagTimeout, "timeout", 0, "Default command timeout in seconds")
	flags.StringVar(&flagWorkDir, "workdir", "", "Workspace root (default: current directory)")
	flags.StringVar(&flagModel, "model", "", "Model to use")

	rootCmd.AddCommand(
		&cobra.Command{
			Use:   "run <task>",
			Short: "Plan and run a single task",
			Args:  cobra.MinimumNArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				return withApplication(appOptions{}, func(app *application) error {
					return runTask(app, strings.Join(args, " "))
				})
			},
		},
		&cobra.Command{
			Use:   "chat <message>",
			Short: "Ask the assistant a question without running any tools",
			Args:  cobra.MinimumNArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				return withApplication(appOptions{stream: cmd.OutOrStdout()}, func(app *application) error {
					_, err := app.orch.Chat(context.Background(), strings.Join(args, " "))
					return err
				})
			},
		},
		newConfigCommand(),
		&cobra.Command{
			Use:       "completion [bash|zsh|fish|powershell]",
			Short:     "Generate a shell completion script",
			Long:      config.CompletionHelp,
			Args:      cobra.ExactArgs(1),
			ValidArgs: []string{"bash", "zsh", "fish", "powershell"},
			RunE: func(cmd *cobra.Command, args []string) error {
				return config.GenCompletions(cmd.Root(), args[0], cmd.OutOrStdout())
			},
		},
	)

	viper.AutomaticEnv()

	if err := rootCmd.Execute(); err != nil {
		zap.S().Error(err)
		os.Exit(1)
	}
}

func newConfigCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Show the effective configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			cm, err := loadConfig()
			if err != nil {
				return err
			}
			applyFlags(&cm.Config)

			out, err := cm.ShowConfig()
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), out)
			return nil
		},
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "init",
		Short: "Write the default configuration file",
		RunE: func(cmd *cobra.Command, args []string) error {
			cm, err := loadConfig()
			if err != nil {
				return err
			}
			if err := cm.WriteDefaults(); err != nil {
				return err
			}

			path, _ := internal.GetConfigFile()
			zap.S().Infof("Wrote %s", path)
			return nil
		},
	})

	return cmd
}

func runRoot(cmd *cobra.Command, args []string) error {
	return withApplication(appOptions{}, func(app *application) error {
		if len(args) > 0 {
			return runTask(app, strings.Join(args, " "))
		}
		return interactive(app)
	})
}

func withApplication(opts appOptions, fn func(*application) error) error {
	cm, err := loadConfig()
	if err != nil {
		return err
	}

	app, err := newApplication(cm, opts)
	if err != nil {
		return err
	}
	defer app.Close()

	return fn(app)
}

// runTask runs one task. The first Ctrl-C stops the task before its next step,
// the second exits.
func runTask(app *application, task string) error {
	sig := make(chan os.Signal, 2)
	signal.Notify(sig, os.Interrupt)
	defer signal.Stop(sig)

	interrupts := utils.NewInterrupts(app.clock, 0)
	done := make(chan struct{})
	defer close(done)

	go func() {
		for {
			select {
			case <-done:
				return
			case <-sig:
				if interrupts.Hit() {
					zap.S().Warn("Interrupted, exiting")
					app.Close()
					os.Exit(exitInterrupted)
				}
				zap.S().Warn("Cancelling after the current step, press Ctrl-C again to exit")
				app.orch.Cancel()
			}
		}
	}()

	return app.orch.Run(context.Background(), task)
}

func interactive(app *application) error {
	out := app.rl.Stdout()
	fmt.Fprintln(out, "taskpilot: describe a task, or /help for commands")

	idle := utils.NewInterrupts(app.clock, doubleInterruptDelay)

	for counter := 1; ; {
		prompt := config.FormatPrompt(app.cfg.CommandPrompt, config.PromptVars{
			Counter: counter,
			Now:     app.clock.Now(),
			WorkDir: app.cfg.Agent.WorkDir,
		})
		if prompt == "" {
			prompt = defaultPrompt
		}
		app.rl.SetPrompt(prompt)

		line, err := app.rl.Readline()
		switch {
		case errors.Is(err, readline.ErrInterrupt):
			if idle.Hit() {
				return nil
			}
			fmt.Fprintln(out, "Press Ctrl-C again to exit")
			continue
		case errors.Is(err, io.EOF):
			return nil
		case err != nil:
			return err
		}
		idle.Reset()

		in := utils.ParseInput(line)
		switch in.Kind {
		case utils.InputEmpty:
			continue
		case utils.InputExit:
			return nil
		case utils.InputHelp:
			fmt.Fprintln(out, utils.HelpText)
		case utils.InputUnknown:
			fmt.Fprintln(out, in.Arg)
		case utils.InputClear:
			app.orch.Clear()
			fmt.Fprintln(out, "Cleared.")
		case utils.InputHistory:
			fmt.Fprintln(out, terminal.FormatHistory(app.orch.History()))
		case utils.InputState:
			fmt.Fprintln(out, terminal.FormatState(app.orch.State()))
		case utils.InputChat:
			// failures are rendered from state
			_, _ = app.orch.Chat(context.Background(), in.Arg)
		case utils.InputTask:
			if err := runTask(app, in.Arg); err != nil {
				fmt.Fprintln(out, err)
			}
		}
		counter++
	}
}
