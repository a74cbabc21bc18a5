package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jtohta/creative-direction-decks-skill/internal/format"
	"github.com/jtohta/creative-direction-decks-skill/internal/skill"
)

// SkillCmd creates the skill command with subcommands.
// The env parameter provides injectable dependencies for testing.
func SkillCmd(env *Env) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "skill",
		Short: "Package and publish the skill bundle",
		Long: `Package a skill directory and publish it to the hosted skills API.

The bundle is every top-level file of the directory, minus the names and
extensions excluded by the built-in list and by an optional skill.yaml:

  display_title: DJ Brand Guide Generator
  folder_name: dj-brand-guide-generator
  exclude_names: [notes.md]
  exclude_extensions: [.psd]`,
	}

	cmd.AddCommand(skillUploadCmd(env))
	cmd.AddCommand(skillFilesCmd(env))

	return cmd
}

// skillUploadCmd creates the "skill upload" subcommand.
func skillUploadCmd(env *Env) *cobra.Command {
	return &cobra.Command{
		Use:   "upload [dir]",
		Short: "Upload the skill bundle",
		Long: `Upload the skill bundle.

A skill with the same display title gets a new version; otherwise a new
skill is created. Requires ANTHROPIC_API_KEY.`,
		Example: `  brandguide skill upload
  brandguide skill upload ./skill`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSkillUpload(cmd, env, dirArg(args))
		},
	}
}

// skillFilesCmd creates the "skill files" subcommand.
func skillFilesCmd(env *Env) *cobra.Command {
	return &cobra.Command{
		Use:   "files [dir]",
		Short: "List the files that would be uploaded",
		Example: `  brandguide skill files
  brandguide skill files ./skill`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSkillFiles(env, dirArg(args))
		},
	}
}

func dirArg(args []string) string {
	if len(args) == 0 {
		return "."
	}
	return args[0]
}

// collectSkill loads the manifest and bundle files of dir.
func collectSkill(dir string) (skill.Manifest, []skill.File, error) {
	if err := checkInput(dir); err != nil {
		return skill.Manifest{}, nil, err
	}
	m, err := skill.LoadManifest(dir)
	if err != nil {
		return skill.Manifest{}, nil, err
	}
	files, err := skill.Collect(dir, m)
	if err != nil {
		return skill.Manifest{}, nil, err
	}
	return m, files, nil
}

// runSkillFiles prints the bundle of dir, one path per line.
func runSkillFiles(env *Env, dir string) error {
	m, files, err := collectSkill(dir)
	if err != nil {
		return err
	}

	var total int64
	for _, f := range files {
		fmt.Fprintf(env.Stdout, "%s\t%s\t%s\n", f.Path, f.MIMEType, format.Size(int64(len(f.Content))))
		total += int64(len(f.Content))
	}
	fmt.Fprintf(env.Stderr, "%d files, %s (%s)\n", len(files), format.Size(total), m.DisplayTitle)
	return nil
}

// runSkillUpload publishes the bundle of dir.
func runSkillUpload(cmd *cobra.Command, env *Env, dir string) error {
	ctx := cmd.Context()

	// === VALIDATION (fail-fast) ===

	key := env.Getenv(EnvAnthropicAPIKey)
	if key == "" {
		return fmt.Errorf("%s not set: %w", EnvAnthropicAPIKey, ErrAPIKeyMissing)
	}

	m, files, err := collectSkill(dir)
	if err != nil {
		return err
	}
	if len(files) == 0 {
		return fmt.Errorf("%s: %w", dir, skill.ErrNoFiles)
	}

	// === UPLOAD ===

	fmt.Fprintf(env.Stderr, "Uploading %d files as %q...\n", len(files), m.DisplayTitle)
	for _, f := range files {
		fmt.Fprintf(env.Stderr, "  %s (%s)\n", f.Path, format.Size(int64(len(f.Content))))
	}

	uploader, err := env.SkillFactory.NewUploader(key, env.Log)
	if err != nil {
		return err
	}
	res, err := uploader.Upload(ctx, files, m)
	if err != nil {
		return err
	}

	if res.Created {
		fmt.Fprintf(env.Stderr, "Created skill %s\n", res.Skill.ID)
	} else {
		fmt.Fprintf(env.Stderr, "Created version %s of skill %s\n", res.Version, res.Skill.ID)
	}
	fmt.Fprintf(env.Stdout, "%s\n", res.Skill.ID)
	return nil
}
