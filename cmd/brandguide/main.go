package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/jtohta/creative-direction-decks-skill/internal/apierr"
	"github.com/jtohta/creative-direction-decks-skill/internal/brand"
	"github.com/jtohta/creative-direction-decks-skill/internal/cli"
	"github.com/jtohta/creative-direction-decks-skill/internal/color"
	"github.com/jtohta/creative-direction-decks-skill/internal/config"
	"github.com/jtohta/creative-direction-decks-skill/internal/imagegen"
	"github.com/jtohta/creative-direction-decks-skill/internal/lang"
	"github.com/jtohta/creative-direction-decks-skill/internal/llm"
	"github.com/jtohta/creative-direction-decks-skill/internal/logging"
	"github.com/jtohta/creative-direction-decks-skill/internal/prompt"
	"github.com/jtohta/creative-direction-decks-skill/internal/skill"
)

// Injected at build time via ldflags.
var (
	version = "dev"
	commit  = "unknown"
)

// Exit codes.
const (
	ExitOK         = 0
	ExitGeneral    = 1
	ExitSetup      = 3
	ExitValidation = 4
	ExitAPI        = 5
	ExitInterrupt  = 130
)

func main() {
	// Load .env file if present (ignore error if missing).
	_ = godotenv.Load()

	ctx, cancel := signal.NotifyContext(context.Background(),
		syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	env := cli.DefaultEnv()

	if err := newRootCmd(env).ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(exitCode(err))
	}
}

// newRootCmd wires every subcommand to env.
func newRootCmd(env *cli.Env) *cobra.Command {
	var verbose bool

	rootCmd := &cobra.Command{
		Use:   "brandguide",
		Short: "Build a DJ brand guide deck from a questionnaire",
		Long: `Build a DJ brand guide deck from a questionnaire.

Typical flow:
  brandguide moodboard dj.json --complete   # image prompts
  brandguide images dj_prompts.json dj.json # moodboard images
  brandguide palette dj.json --complete     # color palette
  brandguide deck dj.json                   # presentation`,
		Version: fmt.Sprintf("%s (commit: %s)", version, commit),
		// Silence Cobra's default error/usage printing; we handle it ourselves.
		SilenceErrors: true,
		SilenceUsage:  true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			env.Log = logging.New(env.Stderr, verbose)
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			_ = env.Log.Sync()
		},
	}
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Show debug diagnostics")

	rootCmd.AddCommand(cli.MetaPromptCmd(env, prompt.MoodboardKind))
	rootCmd.AddCommand(cli.MetaPromptCmd(env, prompt.PaletteKind))
	rootCmd.AddCommand(cli.NarrativeCmd(env))
	rootCmd.AddCommand(cli.ImagesCmd(env))
	rootCmd.AddCommand(cli.DeckCmd(env))
	rootCmd.AddCommand(cli.SkillCmd(env))
	rootCmd.AddCommand(cli.ConfigCmd(env))

	return rootCmd
}

// exitCode maps errors to exit codes.
func exitCode(err error) int {
	if err == nil {
		return ExitOK
	}

	if errors.Is(err, context.Canceled) {
		return ExitInterrupt
	}

	// Wrong argument counts and bad flags are general failures.
	if isCobraUsageError(err) {
		return ExitGeneral
	}

	if isAny(err, cli.ErrAPIKeyMissing, llm.ErrEmptyAPIKey, imagegen.ErrEmptyAPIKey, skill.ErrEmptyAPIKey) {
		return ExitSetup
	}

	if isAny(err,
		color.ErrFormat, brand.ErrMissingField, brand.ErrInvalidDocument, brand.ErrInvalidPalette,
		prompt.ErrUnknown, lang.ErrInvalid, cli.ErrInvalidProvider, cli.ErrOutputExists,
		config.ErrUnknownKey, skill.ErrInvalidManifest, skill.ErrNoFiles,
	) {
		return ExitValidation
	}

	if isAny(err,
		apierr.ErrRateLimit, apierr.ErrQuotaExceeded, apierr.ErrTimeout, apierr.ErrAuthFailed,
		apierr.ErrBadRequest, apierr.ErrServer, apierr.ErrBadResponse,
		llm.ErrInvalidAnswer, imagegen.ErrNoImage, imagegen.ErrIncomplete,
	) {
		return ExitAPI
	}

	return ExitGeneral
}

func isAny(err error, targets ...error) bool {
	for _, t := range targets {
		if errors.Is(err, t) {
			return true
		}
	}
	return false
}

// cobraUsageErrorPatterns contains error message substrings that indicate Cobra usage errors.
// Cobra doesn't expose typed errors, so string matching is the only reliable approach.
var cobraUsageErrorPatterns = []string{
	"unknown command",
	"unknown flag",
	"unknown shorthand",
	"flag needs an argument",
	"invalid argument",
	"accepts ",
	"requires at least",
	"requires at most",
}

// isCobraUsageError checks if an error is a Cobra usage/parsing error.
func isCobraUsageError(err error) bool {
	msg := err.Error()
	for _, pattern := range cobraUsageErrorPatterns {
		if strings.Contains(msg, pattern) {
			return true
		}
	}
	return false
}
