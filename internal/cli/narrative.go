package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jtohta/creative-direction-decks-skill/internal/brand"
	"github.com/jtohta/creative-direction-decks-skill/internal/narrative"
)

// NarrativeCmd creates the narrative command.
// The env parameter provides injectable dependencies for testing.
func NarrativeCmd(env *Env) *cobra.Command {
	return &cobra.Command{
		Use:   "narrative <questionnaire>",
		Short: "Print the brand narrative",
		Long: `Print the two-paragraph brand narrative assembled from a questionnaire.

This is the text placed on the moodboard slide when the questionnaire
does not carry its own brand_narrative.`,
		Example: `  brandguide narrative aqua_voyager.json
  brandguide narrative aqua_voyager.yaml > narrative.txt`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runNarrative(env, args[0])
		},
	}
}

// runNarrative writes the narrative for inputPath to stdout.
func runNarrative(env *Env, inputPath string) error {
	if err := checkInput(inputPath); err != nil {
		return err
	}

	q, err := brand.LoadQuestionnaire(inputPath)
	if err != nil {
		return err
	}

	text, err := narrative.Generate(q)
	if err != nil {
		return err
	}

	_, err = fmt.Fprintln(env.Stdout, text)
	return err
}
