package cli

import (
	"errors"
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/jtohta/creative-direction-decks-skill/internal/brand"
	"github.com/jtohta/creative-direction-decks-skill/internal/format"
	"github.com/jtohta/creative-direction-decks-skill/internal/imagegen"
)

// imagesOptions holds validated options for the images command.
type imagesOptions struct {
	promptsPath string
	inputPath   string
	provider    ImageProvider
}

// ImagesCmd creates the images command.
// The env parameter provides injectable dependencies for testing.
func ImagesCmd(env *Env) *cobra.Command {
	var provider string

	cmd := &cobra.Command{
		Use:   "images <prompts.json> <questionnaire>",
		Short: "Generate the moodboard images",
		Long: `Generate one image per moodboard prompt.

Images are written next to the prompts file as <dj_name>_<label>.png.
An image that already exists is reused. Each prompt's image_path is
recorded back into the prompts file, which the deck command reads.

Every image is required: the command fails if any prompt could not be
generated after retries. Uses fal.ai (FAL_KEY) by default, or Gemini
(GEMINI_API_KEY) with --provider gemini.`,
		Example: `  brandguide images aqua_voyager_prompts.json aqua_voyager.json
  brandguide images prompts.json dj.yaml --provider gemini`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := parseImagesOptions(args[0], args[1], provider)
			if err != nil {
				return err
			}
			return runImages(cmd, env, opts)
		},
	}

	cmd.Flags().StringVar(&provider, "provider", ProviderFal, "Image provider: fal, gemini")

	return cmd
}

// parseImagesOptions validates and parses CLI inputs into imagesOptions.
func parseImagesOptions(promptsPath, inputPath, provider string) (imagesOptions, error) {
	var parsed ImageProvider
	if provider != "" {
		var err error
		parsed, err = ParseImageProvider(provider)
		if err != nil {
			return imagesOptions{}, err
		}
	}
	return imagesOptions{promptsPath: promptsPath, inputPath: inputPath, provider: parsed}, nil
}

// runImages executes the images command with validated options.
func runImages(cmd *cobra.Command, env *Env, opts imagesOptions) error {
	ctx := cmd.Context()
	provider := opts.provider.OrDefault()

	// === VALIDATION (fail-fast) ===

	for _, p := range []string{opts.promptsPath, opts.inputPath} {
		if err := checkInput(p); err != nil {
			return err
		}
	}

	key := env.Getenv(provider.APIKeyEnv())
	if key == "" {
		return fmt.Errorf("%s not set (required for %s image generation): %w", provider.APIKeyEnv(), provider, ErrAPIKeyMissing)
	}

	// === LOAD ===

	fmt.Fprintf(env.Stderr, "Loading %s...\n", opts.promptsPath)
	prompts, err := brand.LoadImagePrompts(opts.promptsPath)
	if err != nil {
		return err
	}

	fmt.Fprintf(env.Stderr, "Loading %s...\n", opts.inputPath)
	q, err := brand.LoadQuestionnaire(opts.inputPath)
	if err != nil {
		return err
	}
	if err := q.Require(brand.FieldDJName); err != nil {
		return err
	}

	gen, err := env.ImageFactory.NewGenerator(ctx, provider, key, env.Log)
	if err != nil {
		return err
	}

	// === GENERATE ===

	fmt.Fprintf(env.Stderr, "Generating %d images for %s (provider: %s)...\n", len(prompts.Prompts), q.DJName, provider)
	start := env.Now()
	res, runErr := imagegen.Run(ctx, gen, &prompts, q.DJName, filepath.Dir(opts.promptsPath), env.Log)

	// Saved even on failure or interrupt: a rerun only regenerates what is
	// missing.
	fmt.Fprintf(env.Stderr, "Updating %s with image paths...\n", opts.promptsPath)
	if err := brand.SaveImagePrompts(opts.promptsPath, prompts); err != nil {
		return errors.Join(runErr, err)
	}

	ok := res.Generated + res.Cached
	fmt.Fprintf(env.Stderr, "%d/%d images ready (%d generated, %d cached) in %s\n",
		ok, len(prompts.Prompts), res.Generated, res.Cached, format.Elapsed(env.Now().Sub(start)))
	for _, f := range res.Failed {
		fmt.Fprintf(env.Stderr, "  - %s: %v\n", f.Label, f.Err)
	}

	return runErr
}
