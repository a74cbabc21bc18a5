package skill

import (
	"context"
	"fmt"

	"go.uber.org/zap"
)

// Result describes what Upload did.
type Result struct {
	Skill   Skill
	Created bool
	// Version is set when an existing skill got a new version.
	Version string
}

// FindByTitle returns the first skill whose display title is title.
// A listing failure is logged and reported as not found.
func (c *Client) FindByTitle(ctx context.Context, title string) (Skill, bool) {
	skills, err := c.ListSkills(ctx)
	if err != nil {
		c.log.Warn("could not list skills", zap.Error(err))
		return Skill{}, false
	}
	for _, s := range skills {
		if s.DisplayTitle == title {
			return s, true
		}
	}
	return Skill{}, false
}

// Upload publishes files under m.DisplayTitle: a new version when a skill
// with that title exists, a new skill otherwise.
func (c *Client) Upload(ctx context.Context, files []File, m Manifest) (Result, error) {
	if len(files) == 0 {
		return Result{}, ErrNoFiles
	}

	existing, ok := c.FindByTitle(ctx, m.DisplayTitle)
	if !ok {
		c.log.Info("no existing skill, creating", zap.String("title", m.DisplayTitle))
		s, err := c.CreateSkill(ctx, m.DisplayTitle, files)
		if err != nil {
			return Result{}, fmt.Errorf("failed to create skill: %w", err)
		}
		return Result{Skill: s, Created: true}, nil
	}

	c.log.Info("found existing skill, creating new version", zap.String("id", existing.ID))
	v, err := c.CreateVersion(ctx, existing.ID, files)
	if err != nil {
		return Result{}, fmt.Errorf("failed to create version of %s: %w", existing.ID, err)
	}
	s, err := c.GetSkill(ctx, existing.ID)
	if err != nil {
		return Result{}, fmt.Errorf("failed to fetch skill %s: %w", existing.ID, err)
	}
	return Result{Skill: s, Version: v.Version}, nil
}
