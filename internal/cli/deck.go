package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/jtohta/creative-direction-decks-skill/internal/assets"
	"github.com/jtohta/creative-direction-decks-skill/internal/brand"
	"github.com/jtohta/creative-direction-decks-skill/internal/config"
	"github.com/jtohta/creative-direction-decks-skill/internal/format"
	"github.com/jtohta/creative-direction-decks-skill/internal/prompt"
	"github.com/jtohta/creative-direction-decks-skill/internal/slides"
)

// deckOutputSuffix is appended to the DJ name slug for the default output.
const deckOutputSuffix = "_brand_guide.pptx"

// deckOptions holds validated options for the deck command.
type deckOptions struct {
	inputPath   string
	promptsPath string
	colorsPath  string
	pillarsPath string
	imageDirs   []string
	output      string
	force       bool
}

// DeckCmd creates the deck command.
// The env parameter provides injectable dependencies for testing.
func DeckCmd(env *Env) *cobra.Command {
	var (
		opts      deckOptions
		imageDirs []string
	)

	cmd := &cobra.Command{
		Use:   "deck <questionnaire>",
		Short: "Compose the brand guide presentation",
		Long: `Compose the brand guide deck: a moodboard slide, then a color palette
slide and a visual pillars slide when their inputs are given.

The image prompts and colors default to <input>_prompts.json and
<input>_colors.json next to the questionnaire, as written by the
moodboard and palette commands. Moodboard images are taken from the
image directories in name order, then from each prompt's image_path.

Image directories default to the image-dirs setting, then to the
usual upload locations and the current directory.`,
		Example: `  brandguide deck aqua_voyager.json
  brandguide deck aqua_voyager.json --pillars pillars.json -o guide.pptx
  brandguide deck dj.yaml --prompts p.json --colors c.json --image-dir ./shots`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.inputPath = args[0]
			opts.imageDirs = imageDirs
			return runDeck(env, opts)
		},
	}

	cmd.Flags().StringVar(&opts.promptsPath, "prompts", "", "Moodboard prompts JSON (default: <input>_prompts.json)")
	cmd.Flags().StringVar(&opts.colorsPath, "colors", "", "Color palette JSON (default: <input>_colors.json, if present)")
	cmd.Flags().StringVar(&opts.pillarsPath, "pillars", "", "Visual pillars JSON")
	cmd.Flags().StringArrayVar(&imageDirs, "image-dir", nil, "Directory to search for moodboard images (repeatable)")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "Output file path (default: <dj_name>"+deckOutputSuffix+")")
	cmd.Flags().BoolVarP(&opts.force, "force", "f", false, "Overwrite an existing output file")

	return cmd
}

// siblingIfExists returns the file named name in dir, or "" when absent.
func siblingIfExists(dir, name string) string {
	p := filepath.Join(dir, name)
	if info, err := os.Stat(p); err == nil && info.Mode().IsRegular() {
		return p
	}
	return ""
}

// runDeck executes the deck command.
func runDeck(env *Env, opts deckOptions) error {
	// === VALIDATION (fail-fast) ===

	if err := checkInput(opts.inputPath); err != nil {
		return err
	}

	dir, base := filepath.Dir(opts.inputPath), filepath.Base(opts.inputPath)
	if opts.promptsPath == "" {
		opts.promptsPath = siblingIfExists(dir, prompt.MoodboardKind.AnswerName(base))
		if opts.promptsPath == "" {
			return fmt.Errorf("no --prompts given and %s not found: %w",
				filepath.Join(dir, prompt.MoodboardKind.AnswerName(base)), ErrFileNotFound)
		}
	}
	if opts.colorsPath == "" {
		opts.colorsPath = siblingIfExists(dir, prompt.PaletteKind.AnswerName(base))
	}
	for _, p := range []string{opts.promptsPath, opts.colorsPath, opts.pillarsPath} {
		if p == "" {
			continue
		}
		if err := checkInput(p); err != nil {
			return err
		}
	}

	cfg, err := env.ConfigLoader.Load()
	if err != nil {
		fmt.Fprintf(env.Stderr, "Warning: failed to load config: %v\n", err)
	}

	// === LOAD ===

	fmt.Fprintf(env.Stderr, "Reading %s...\n", opts.inputPath)
	deck := slides.Deck{}
	deck.Questionnaire, err = brand.LoadQuestionnaire(opts.inputPath)
	if err != nil {
		return err
	}
	if err := deck.Questionnaire.Require(brand.FieldDJName); err != nil {
		return err
	}

	fmt.Fprintf(env.Stderr, "Reading %s...\n", opts.promptsPath)
	prompts, err := brand.LoadImagePrompts(opts.promptsPath)
	if err != nil {
		return err
	}
	deck.Prompts = prompts.Prompts

	if opts.colorsPath != "" {
		fmt.Fprintf(env.Stderr, "Reading %s...\n", opts.colorsPath)
		palette, err := brand.LoadPalette(opts.colorsPath)
		if err != nil {
			return err
		}
		deck.Palette = &palette
	}

	if opts.pillarsPath != "" {
		fmt.Fprintf(env.Stderr, "Reading %s...\n", opts.pillarsPath)
		deck.Pillars, err = brand.LoadPillars(opts.pillarsPath)
		if err != nil {
			return err
		}
	}

	dirs := opts.imageDirs
	if len(dirs) == 0 {
		dirs = cfg.ImageDirs
	}
	if len(dirs) == 0 {
		dirs = assets.DefaultSearchDirs
	}
	deck.Images, err = assets.Discover(dirs, assets.DefaultExtensions)
	if err != nil {
		return err
	}
	env.Log.Info("discovered images", zap.Strings("dirs", dirs), zap.Strings("images", deck.Images))

	// === COMPOSE ===

	output := config.ResolveOutputPath(opts.output, cfg.OutputDir, brand.Slug(deck.Questionnaire.DJName)+deckOutputSuffix)

	fmt.Fprintf(env.Stderr, "Composing brand guide for %s...\n", deck.Questionnaire.DJName)
	pres, err := slides.NewComposer(env.ImageLoader, env.Log).Compose(deck)
	if err != nil {
		return err
	}
	data, err := pres.Bytes()
	if err != nil {
		return err
	}

	if err := writeOutput(output, data, opts.force); err != nil {
		return err
	}

	fmt.Fprintf(env.Stderr, "Done: %s (%d slides, %s)\n", output, pres.Slides(), format.Size(int64(len(data))))
	return nil
}
