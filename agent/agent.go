package agent

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"
)

var ErrTaskRunning = errors.New("a task is already running")

// Deps are the collaborators of an Orchestrator. Executor may be left nil, in
// which case a Recoverer over Dispatcher is built.
type Deps struct {
	Clock      Clock
	Advisor    Advisor
	Host       Host
	Context    ContextProvider
	Dispatcher Dispatcher
	Executor   Executor
	Budget     Budget
	Record     *ExecutionRecord
}

type BaseAgent struct {
	clock  Clock
	config Config

	out   *zap.SugaredLogger
	debug *zap.SugaredLogger

	syncOut   func()
	syncDebug func()
}

type BaseOption func(*BaseAgent)

func DefaultConfig() Config {
	return Config{
		WorkDir:        ".",
		MaxRetries:     DefaultMaxRetries,
		CommandTimeout: DefaultCommandTimeout,
		FormatResults:  true,
	}
}

func WithConfig(cfg Config) BaseOption {
	return func(b *BaseAgent) {
		if strings.TrimSpace(cfg.WorkDir) == "" {
			cfg.WorkDir = b.config.WorkDir
		}
		if cfg.CommandTimeout <= 0 {
			cfg.CommandTimeout = DefaultCommandTimeout
		}
		b.config = cfg
	}
}

func WithHumanLogger(l *zap.SugaredLogger, sync func()) BaseOption {
	return func(b *BaseAgent) {
		if l != nil {
			b.out = l
		}
		if sync != nil {
			b.syncOut = sync
		}
	}
}

func WithDebugLogger(l *zap.SugaredLogger, sync func()) BaseOption {
	return func(b *BaseAgent) {
		if l != nil {
			b.debug = l
		}
		if sync != nil {
			b.syncDebug = sync
		}
	}
}

func validateDeps(deps Deps) error {
	if deps.Clock == nil {
		return fmt.Errorf("agent deps: Clock is required")
	}
	if deps.Advisor == nil {
		return fmt.Errorf("agent deps: Advisor is required")
	}
	if deps.Host == nil {
		return fmt.Errorf("agent deps: Host is required")
	}
	if deps.Executor == nil && deps.Dispatcher == nil {
		return fmt.Errorf("agent deps: Executor or Dispatcher is required")
	}
	return nil
}

func New(deps Deps, baseOpts ...BaseOption) (*Orchestrator, error) {
	if err := validateDeps(deps); err != nil {
		return nil, err
	}

	base := NewBaseAgent(deps.Clock)
	for _, o := range baseOpts {
		o(base)
	}

	record := deps.Record
	if record == nil {
		record = NewExecutionRecord()
	}

	executor := deps.Executor
	if executor == nil {
		executor = NewRecoverer(deps.Dispatcher, NewClassifier(deps.Clock), record, deps.Clock, base.debug)
	}

	budget := deps.Budget
	if budget == nil {
		budget = UnlimitedBudget{}
	}

	return &Orchestrator{
		BaseAgent: base,
		advisor:   deps.Advisor,
		host:      deps.Host,
		contexts:  deps.Context,
		executor:  executor,
		budget:    budget,
		record:    record,
	}, nil
}

func NewBaseAgent(clock Clock) *BaseAgent {
	return &BaseAgent{
		clock:  clock,
		config: DefaultConfig(),
		out:    zap.NewNop().Sugar(),
		debug:  zap.NewNop().Sugar(),
	}
}

func (b *BaseAgent) logGoal(task string) {
	b.out.Infof("Task: %s", task)
	b.debug.Debugf("run: start task=%q workdir=%q auto_approve=%t dry_run=%t max_retries=%d",
		task, b.config.WorkDir, b.config.AutoApprove, b.config.DryRun, b.config.MaxRetries)
}

func (b *BaseAgent) startTimer() time.Time {
	return b.clock.Now()
}

func (b *BaseAgent) finishTimer(start time.Time) {
	dur := elapsed(b.clock, start)
	b.out.Infof("Total duration: %s", dur)
	b.debug.Infof("Total duration: %s", dur)

	if b.syncOut != nil {
		b.syncOut()
	}
	if b.syncDebug != nil {
		b.syncDebug()
	}
}
