package cli

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/jtohta/creative-direction-decks-skill/internal/brand"
	"github.com/jtohta/creative-direction-decks-skill/internal/config"
	"github.com/jtohta/creative-direction-decks-skill/internal/lang"
	"github.com/jtohta/creative-direction-decks-skill/internal/llm"
	"github.com/jtohta/creative-direction-decks-skill/internal/prompt"
)

// metaPromptOptions holds validated options for the moodboard and palette commands.
type metaPromptOptions struct {
	kind       prompt.Kind
	inputPath  string
	output     string
	outputLang lang.Language
	complete   bool
	provider   Provider
	force      bool
}

// metaPromptHelp holds the per-kind command text.
var metaPromptHelp = map[prompt.Kind]struct {
	short, long, example, answer string
}{
	prompt.MoodboardKind: {
		short: "Write the moodboard image meta-prompt",
		long: `Write the moodboard meta-prompt for a DJ questionnaire.

The meta-prompt asks an LLM for four labeled image prompts as JSON.
Paste it into any LLM, or pass --complete to have OpenAI or DeepSeek
answer it and save the JSON next to the meta-prompt.`,
		example: `  brandguide moodboard aqua_voyager.json
  brandguide moodboard aqua_voyager.yaml -o prompts.txt
  brandguide moodboard aqua_voyager.json --complete --provider deepseek -T fr`,
		answer: "image prompts",
	},
	prompt.PaletteKind: {
		short: "Write the color palette meta-prompt",
		long: `Write the color palette meta-prompt for a DJ questionnaire.

The meta-prompt asks an LLM for a primary color, a six-color palette and
a description as JSON. Pass --complete to have OpenAI or DeepSeek answer
it and save the JSON next to the meta-prompt.`,
		example: `  brandguide palette aqua_voyager.json
  brandguide palette aqua_voyager.json --complete`,
		answer: "color palette",
	},
}

// MetaPromptCmd creates the moodboard or palette command.
// The env parameter provides injectable dependencies for testing.
func MetaPromptCmd(env *Env, kind prompt.Kind) *cobra.Command {
	var (
		output     string
		outputLang string
		complete   bool
		provider   string
		force      bool
	)

	help := metaPromptHelp[kind]
	cmd := &cobra.Command{
		Use:     kind.String() + " <questionnaire>",
		Short:   help.short,
		Long:    help.long,
		Example: help.example,
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := parseMetaPromptOptions(kind, args[0], output, outputLang, provider, complete, force)
			if err != nil {
				return err
			}
			return runMetaPrompt(cmd, env, opts)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "Meta-prompt file path (default: "+kind.OutputName("<input>")+")")
	cmd.Flags().StringVarP(&outputLang, "lang", "T", "", "Language of the LLM-written text (ISO 639-1 code, e.g., fr)")
	cmd.Flags().BoolVar(&complete, "complete", false, "Send the meta-prompt to an LLM and save its JSON answer")
	cmd.Flags().StringVar(&provider, "provider", ProviderOpenAI, "LLM provider for --complete: openai, deepseek")
	cmd.Flags().BoolVarP(&force, "force", "f", false, "Overwrite existing output files")

	return cmd
}

// parseMetaPromptOptions validates and parses CLI inputs into metaPromptOptions.
func parseMetaPromptOptions(kind prompt.Kind, inputPath, output, outputLang, provider string, complete, force bool) (metaPromptOptions, error) {
	parsedLang, err := lang.Parse(outputLang)
	if err != nil {
		return metaPromptOptions{}, err
	}

	var parsedProvider Provider
	if provider != "" {
		parsedProvider, err = ParseProvider(provider)
		if err != nil {
			return metaPromptOptions{}, err
		}
	}

	return metaPromptOptions{
		kind:       kind,
		inputPath:  inputPath,
		output:     output,
		outputLang: parsedLang,
		complete:   complete,
		provider:   parsedProvider,
		force:      force,
	}, nil
}

// runMetaPrompt executes the moodboard or palette command with validated options.
func runMetaPrompt(cmd *cobra.Command, env *Env, opts metaPromptOptions) error {
	ctx := cmd.Context()

	// === VALIDATION (fail-fast) ===

	if err := checkInput(opts.inputPath); err != nil {
		return err
	}

	cfg, err := env.ConfigLoader.Load()
	if err != nil {
		fmt.Fprintf(env.Stderr, "Warning: failed to load config: %v\n", err)
	}

	base := filepath.Base(opts.inputPath)
	output := config.ResolveOutputPath(opts.output, cfg.OutputDir, opts.kind.OutputName(base))

	var completer llm.Completer
	if opts.complete {
		completer, err = newCompleter(env, opts.provider.OrDefault())
		if err != nil {
			return err
		}
	}

	// === BUILD ===

	fmt.Fprintf(env.Stderr, "Reading %s...\n", opts.inputPath)
	q, err := brand.LoadQuestionnaire(opts.inputPath)
	if err != nil {
		return err
	}

	text, err := opts.kind.Build(q, opts.outputLang)
	if err != nil {
		return err
	}

	if err := writeOutput(output, []byte(text), opts.force); err != nil {
		return err
	}
	fmt.Fprintf(env.Stderr, "Meta-prompt saved: %s\n", output)

	if completer == nil {
		fmt.Fprintf(env.Stderr, "Paste it into an LLM and save the JSON answer as %s\n", opts.kind.AnswerName(base))
		return nil
	}

	// === COMPLETE ===

	fmt.Fprintf(env.Stderr, "Asking %s for the %s...\n", opts.provider.OrDefault(), metaPromptHelp[opts.kind].answer)
	start := env.Now()
	answer, err := completer.Complete(ctx, text)
	if err != nil {
		return err
	}
	env.Log.Debug("completion received", zap.Int("bytes", len(answer)), zap.Duration("elapsed", env.Now().Sub(start)))

	answerPath := config.ResolveOutputPath("", cfg.OutputDir, opts.kind.AnswerName(base))
	if err := writeOutput(answerPath, answer, opts.force); err != nil {
		return err
	}

	fmt.Fprintf(env.Stderr, "Done: %s\n", answerPath)
	return nil
}

// newCompleter checks the provider's API key and builds its client.
func newCompleter(env *Env, p Provider) (llm.Completer, error) {
	key := env.Getenv(p.APIKeyEnv())
	if key == "" {
		return nil, fmt.Errorf("%s not set (required for --complete with %s): %w", p.APIKeyEnv(), p, ErrAPIKeyMissing)
	}
	return env.CompleterFactory.NewCompleter(p, key)
}
