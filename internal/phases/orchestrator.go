// Package phases sequences one specretry attempt: load configuration,
// resolve the spec files, run the test runner, record failures and decide
// whether to re-invoke.
package phases

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/CodexForgeBR/spec-retry/internal/banner"
	"github.com/CodexForgeBR/spec-retry/internal/config"
	"github.com/CodexForgeBR/spec-retry/internal/exitcode"
	"github.com/CodexForgeBR/spec-retry/internal/logging"
	"github.com/CodexForgeBR/spec-retry/internal/retry"
	"github.com/CodexForgeBR/spec-retry/internal/runner"
	"github.com/CodexForgeBR/spec-retry/internal/runnerconf"
	"github.com/CodexForgeBR/spec-retry/internal/state"
)

// CommandChecker is a function type that checks tool availability.
// It takes a list of tool names and returns a map of tool name to availability.
type CommandChecker func(tools ...string) map[string]bool

// Orchestrator runs the phases of a single attempt.
type Orchestrator struct {
	Config *config.Config
	// Invocation is how this process was started; re-invocations are
	// derived from it.
	Invocation retry.Invocation
	// Runner overrides the runner built from the runner config.
	Runner         runner.TestRunner
	Launcher       retry.Launcher
	CommandChecker CommandChecker
	// Now defaults to time.Now.
	Now func() time.Time

	runnerCfg *runnerconf.Config
	retrier   *retry.Retrier
	known     retry.KnownUnits
	session   *state.Session
	startTime time.Time
}

// NewOrchestrator creates a new orchestrator with the given config.
func NewOrchestrator(cfg *config.Config, inv retry.Invocation) *Orchestrator {
	return &Orchestrator{
		Config:     cfg,
		Invocation: inv,
	}
}

// Run executes the attempt and returns the process exit code.
func (o *Orchestrator) Run(ctx context.Context) int {
	if o.Now == nil {
		o.Now = time.Now
	}
	o.startTime = o.Now()

	// Phase 1: Init
	if code := o.phaseInit(); code >= 0 {
		return code
	}

	// Phase 2: Runner config
	if code := o.phaseLoadRunnerConfig(); code >= 0 {
		return code
	}

	// Phase 3: Command checks
	if code := o.phaseCommandChecks(); code >= 0 {
		return code
	}

	// Phase 4: Resolve units
	if code := o.phaseResolveUnits(); code >= 0 {
		return code
	}

	// Phase 5: Prepare result directory and session
	if code := o.phasePrepare(); code >= 0 {
		return code
	}

	// Phase 6: Banner
	o.phaseBanner()

	// Phase 7: Run the tests and collect failures
	exitCode, code := o.phaseRunTests(ctx)
	if code >= 0 {
		return code
	}

	// Phase 8: Decide and maybe re-invoke
	return o.phaseDecide(ctx, exitCode)
}

func (o *Orchestrator) phaseInit() int {
	logging.SetVerbose(o.Config.Verbose)
	if err := logging.SetFormat(o.Config.LogFormat); err != nil {
		logging.Error(err.Error())
		return exitcode.Error
	}

	logging.Phase(fmt.Sprintf("Initializing attempt %d", o.Config.Retry))

	o.retrier = retry.New(o.Config.Retry)
	o.retrier.Invocation = o.Invocation
	o.retrier.Launcher = o.Launcher
	if err := o.retrier.Configure(retry.Options{
		MaxAttempts: o.Config.MaxAttempts,
		ResultDir:   o.Config.ResultDir,
	}); err != nil {
		logging.Error(fmt.Sprintf("Invalid retry settings: %v", err))
		return exitcode.Error
	}
	if !o.retrier.Enabled() {
		logging.Debug("Retries disabled")
	}
	return -1
}

func (o *Orchestrator) phaseLoadRunnerConfig() int {
	logging.Phase("Loading runner config")

	rc, err := runnerconf.Load(o.Config.RunnerConfig)
	if err != nil {
		logging.Error(fmt.Sprintf("Failed to load runner config: %v", err))
		return exitcode.Error
	}
	o.runnerCfg = rc

	if o.Config.DisableChecks {
		logging.Debug("Runner config checks disabled")
		return -1
	}
	if err := rc.Check(o.selection()); err != nil {
		logging.Error(fmt.Sprintf("Invalid spec selection: %v", err))
		return exitcode.Error
	}
	return -1
}

func (o *Orchestrator) phaseCommandChecks() int {
	if o.Runner != nil {
		return -1
	}

	logging.Phase("Checking required commands")
	checker := o.CommandChecker
	if checker == nil {
		checker = runner.CheckAvailability
	}
	tool := o.runnerCfg.Command[0]
	if !checker(tool)[tool] {
		logging.Error(fmt.Sprintf("Required tool not found: %s", tool))
		return exitcode.Error
	}

	o.Runner = &runner.CommandRunner{
		Command:   o.runnerCfg.Command,
		UnitFlag:  o.runnerCfg.UnitFlag,
		ExtraArgs: o.Invocation.Args,
	}
	return -1
}

func (o *Orchestrator) phaseResolveUnits() int {
	logging.Phase("Resolving spec files")

	units, err := o.runnerCfg.ResolveUnits(o.selection())
	if err != nil {
		logging.Error(fmt.Sprintf("Failed to resolve spec files: %v", err))
		return exitcode.Error
	}
	o.known = retry.NewKnownUnits(units)
	logging.Debug(fmt.Sprintf("Resolved %d spec files", o.known.Len()))
	return -1
}

func (o *Orchestrator) phasePrepare() int {
	if err := o.retrier.Prepare(o.known); err != nil {
		logging.Error(fmt.Sprintf("Failed to prepare result directory: %v", err))
		return exitcode.Error
	}
	if !o.retrier.Enabled() {
		return -1
	}

	session, created := state.LoadOrCreate(o.Config.ResultDir, o.Config.MaxAttempts, o.known.Len(), o.Now())
	o.session = session
	if created && o.Config.Retry > 0 {
		logging.Warn("No session record found for this retry chain, starting a new one")
	}
	if err := state.SaveSession(o.session, o.Config.ResultDir); err != nil {
		logging.Warn(fmt.Sprintf("Failed to save session: %v", err))
	}
	return -1
}

func (o *Orchestrator) phaseBanner() {
	sessionID := ""
	if o.session != nil {
		sessionID = o.session.SessionID
	}
	banner.PrintStartupBanner(
		sessionID,
		o.Config.Retry,
		o.Config.MaxAttempts,
		o.known.Len(),
		strings.Join(o.runnerCfg.Command, " "),
	)
}

func (o *Orchestrator) selection() runnerconf.Selection {
	return runnerconf.Selection{
		Specs: runnerconf.SplitList(o.Config.Specs),
		Suite: o.Config.Suite,
	}
}

// record stores how this attempt ended in the session file.
func (o *Orchestrator) record(exitCode, failed int, outcome string) {
	if o.session == nil {
		return
	}
	o.session.RecordAttempt(state.AttemptEntry{
		Attempt:     o.Config.Retry,
		ExitCode:    exitCode,
		FailedUnits: failed,
		Outcome:     outcome,
	}, o.Now())
	if err := state.SaveSession(o.session, o.Config.ResultDir); err != nil {
		logging.Warn(fmt.Sprintf("Failed to save session: %v", err))
	}
}

func (o *Orchestrator) elapsedSecs() int {
	return int(o.Now().Sub(o.startTime).Seconds())
}
