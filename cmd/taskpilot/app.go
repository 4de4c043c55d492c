package main

import (
	"fmt"
	"io"
	"path/filepath"

	"github.com/chzyer/readline"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/kardolus/taskpilot/advisor"
	"github.com/kardolus/taskpilot/agent"
	apihttp "github.com/kardolus/taskpilot/api/http"
	"github.com/kardolus/taskpilot/cmd/taskpilot/utils"
	"github.com/kardolus/taskpilot/config"
	"github.com/kardolus/taskpilot/internal"
	"github.com/kardolus/taskpilot/internal/fsio"
	"github.com/kardolus/taskpilot/terminal"
	"github.com/kardolus/taskpilot/workspace"
)

const historyFileName = "history"

// application is one wired orchestrator and the terminal it talks through.
type application struct {
	cfg   config.Config
	orch  *agent.Orchestrator
	rl    *readline.Instance
	logs  *agent.Logs
	clock agent.Clock
}

type appOptions struct {
	// stream receives chat replies as they arrive; nil disables streaming.
	stream io.Writer
}

func loadConfig() (*config.Manager, error) {
	configFile, err := internal.GetConfigFile()
	if err != nil {
		return nil, err
	}

	cm, err := config.NewManager(config.NewFileIO(configFile))
	if err != nil {
		return nil, err
	}
	return cm.WithEnvironment(), nil
}

func newApplication(cm *config.Manager, opts appOptions) (*application, error) {
	cfg := cm.Config
	applyFlags(&cfg)

	key := viper.GetString(cm.APIKeyEnvVarName())
	if key == "" {
		var err error
		if key, err = cm.ResolveAPIKey(); err != nil {
			return nil, err
		}
	}
	cfg.APIKey = key

	workDir, err := filepath.Abs(cfg.Agent.WorkDir)
	if err != nil {
		return nil, fmt.Errorf("resolve workdir: %w", err)
	}
	cfg.Agent.WorkDir = workDir

	logs, err := agent.NewLogs(cfg.Agent.LogDir)
	if err != nil {
		return nil, fmt.Errorf("open logs: %w", err)
	}

	runID := internal.GenerateUniqueSlug("run_")
	debug := logs.DebugLogger.With("run_id", runID)
	zap.S().Debugf("run %s, logs in %s", runID, logs.Dir)

	rl, err := readline.NewEx(&readline.Config{
		Prompt:            "> ",
		HistoryFile:       filepath.Join(logs.Dir, historyFileName),
		InterruptPrompt:   "^C",
		EOFPrompt:         "exit",
		HistorySearchFold: true,
		HistoryLimit:      1000,
	})
	if err != nil {
		logs.Close()
		return nil, fmt.Errorf("init readline: %w", err)
	}

	clock := agent.NewRealClock()
	agentCfg := utils.ToAgentConfig(cfg.Agent)
	host := terminal.NewHost(terminal.NewReadlinePrompter(rl), rl.Stdout())
	budget := agent.NewDefaultBudget(utils.ToBudgetLimits(cfg.Agent))
	reader := fsio.NewRealReader()

	var logged *advisor.LoggingAdvisor
	clientOpts := []advisor.Option{
		advisor.WithDebugLogger(debug),
		advisor.WithPlanRawSink(func(raw string) { logged.WriteRaw(raw) }),
	}
	if opts.stream != nil {
		clientOpts = append(clientOpts, advisor.WithStreamWriter(opts.stream))
	}
	logged = advisor.NewLoggingAdvisor(advisor.New(apihttp.New(cfg), cfg, clientOpts...), logs)

	queue := agent.NewCommandQueue(agent.NewExecShellRunner(), clock, workDir,
		agent.WithQueueLogger(debug),
		agent.WithDefaultTimeout(agentCfg.CommandTimeout),
	)

	dispatcher := agent.NewToolDispatcher(agentCfg,
		agent.NewFileManager(workDir, reader, fsio.NewRealWriter()),
		queue, host, clock,
		agent.WithPolicy(agent.NewDefaultPolicy(utils.ToPolicyLimits(cfg.Agent))),
		agent.WithBudget(budget),
		agent.WithDispatcherLoggers(logs.HumanLogger, debug),
	)

	orch, err := agent.New(agent.Deps{
		Clock:      clock,
		Advisor:    logged,
		Host:       host,
		Context:    workspace.NewProvider(workDir, reader, workspace.WithDebugLogger(debug)),
		Dispatcher: dispatcher,
		Budget:     budget,
	},
		agent.WithConfig(agentCfg),
		agent.WithHumanLogger(logs.HumanLogger, func() { _ = logs.HumanZap.Sync() }),
		agent.WithDebugLogger(debug, func() { _ = logs.DebugZap.Sync() }),
	)
	if err != nil {
		_ = rl.Close()
		logs.Close()
		return nil, err
	}

	// streamed replies are already on screen
	if opts.stream == nil {
		orch.Subscribe(terminal.NewRenderer(rl.Stdout()).Render)
	}

	return &application{
		cfg:   cfg,
		orch:  orch,
		rl:    rl,
		logs:  logs,
		clock: clock,
	}, nil
}

func (a *application) Close() {
	_ = a.rl.Close()
	a.logs.Close()
}

func applyFlags(cfg *config.Config) {
	if flagAutoApprove {
		cfg.Agent.AutoApprove = true
	}
	if flagDryRun {
		cfg.Agent.DryRun = true
	}
	if flagNoFormat {
		cfg.Agent.FormatResults = false
	}
	if flagMaxRetries > 0 {
		cfg.Agent.MaxRetries = flagMaxRetries
	}
	if flagTimeout > 0 {
		cfg.Agent.CommandTimeout = flagTimeout
	}
	if flagWorkDir != "" {
		cfg.Agent.WorkDir = flagWorkDir
	}
	if flagModel != "" {
		cfg.Model = flagModel
	}
	if cfg.Agent.WorkDir == "" {
		cfg.Agent.WorkDir = "."
	}
}
