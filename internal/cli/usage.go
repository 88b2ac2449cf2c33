package cli

import (
	"github.com/spf13/cobra"
)

const helpTemplate = `specretry - re-run only the failed spec files of a test run

USAGE
  specretry [flags] [-- runner args...]

FLAGS
  Retry:
    --max-attempts <int>          Re-invocations allowed after the first run (default: 2, <= 0 disables)
    --result-dir <path>           Failure records directory (default: ./protractorFailedSpecs)

  Runner:
    --runner-config <path>        Runner YAML config (default: specretry.yaml)
    --specs <a,b,...>             Spec files or patterns to run, overrides the config
    --suite <name,...>            Suites from the runner config (mutually exclusive with --specs)

  Config & Output:
    --config <path>               Path to additional config file
    -v, --verbose                 Enable debug logging
    --log-format <text|structured> Log format (default: text)

  Set on re-invocation:
    --retry <int>                 Current attempt number (default: 0)
    --disable-checks              Skip runner config checks

  Help:
    -h, --help                    Show this help text

CONFIG FILES
  KEY=VALUE files read in order: $XDG_CONFIG_HOME/specretry/config, ./.specretry, --config.
  Keys: MAX_ATTEMPTS, RESULT_DIR, RUNNER_CONFIG, VERBOSE, LOG_FORMAT.
  Flags given on the command line win over every file.

EXIT CODES
  0   Success              The run or a later attempt passed
  1   Error                Invalid arguments, bad runner config, launch failure
  130 Interrupted          SIGINT or SIGTERM received while the runner was active
  *   Passthrough          Any other code is the runner's own exit code

EXAMPLES
  # Run the configured specs, retrying failures up to twice
  specretry

  # Only the smoke suite, three retries
  specretry --suite smoke --max-attempts 3

  # Forward arguments to the runner
  specretry -- --grep login
`

// SetCustomHelp configures the cobra command to use our custom help template.
func SetCustomHelp(cmd *cobra.Command) {
	cmd.SetHelpTemplate(helpTemplate)
}
