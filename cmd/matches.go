package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/spigell/hire-assistant/internal/ai"
	"github.com/spigell/hire-assistant/internal/matching"
	"github.com/spigell/hire-assistant/internal/pages"
)

var matchesCmd = &cobra.Command{
	Use:   "matches",
	Short: "Match resumes against job postings",
}

var matchesCalculateCmd = &cobra.Command{
	Use:   "calculate",
	Short: "Rank resumes for a job",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		jobID, _ := cmd.Flags().GetString("job")
		resumeIDs, _ := cmd.Flags().GetStringSlice("resume")
		draft, _ := cmd.Flags().GetBool("draft")

		return withMatchesPage(cmd, draft, func(ctx context.Context, e *env, page *pages.MatchesPage) error {
			views, err := page.Calculate(ctx, jobID, resumeIDs)
			if err != nil {
				fmt.Println(page.Message())
				return err
			}

			pages.RenderMatches(os.Stdout, views)

			if draft {
				return draftOutreach(ctx, e, page, jobID, views)
			}
			return nil
		})
	},
}

var matchesJobCmd = &cobra.Command{
	Use:   "job ID",
	Short: "Show stored matches of a job",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withMatchesPage(cmd, false, func(ctx context.Context, _ *env, page *pages.MatchesPage) error {
			views, err := page.History(ctx, args[0])
			if err != nil {
				fmt.Println(page.Message())
				return err
			}

			pages.RenderMatches(os.Stdout, views)
			return nil
		})
	},
}

var matchesResumeCmd = &cobra.Command{
	Use:   "resume ID",
	Short: "Show stored matches of a resume",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withMatchesPage(cmd, false, func(ctx context.Context, e *env, page *pages.MatchesPage) error {
			matches, err := e.client.MatchesForResume(ctx, args[0])
			if err != nil {
				e.logger.Error("getting matches of a resume", zap.String("id", args[0]), zap.Error(err))
				return err
			}

			pages.RenderResumeMatches(os.Stdout, matches, page.Jobs.Items())
			return nil
		})
	},
}

func init() {
	rootCmd.AddCommand(matchesCmd)
	matchesCmd.AddCommand(matchesCalculateCmd, matchesJobCmd, matchesResumeCmd)

	matchesCalculateCmd.Flags().String("job", "", "job posting id")
	matchesCalculateCmd.Flags().StringSlice("resume", nil, "resume ids to rank (default is every resume)")
	matchesCalculateCmd.Flags().Bool("draft", false, "draft an outreach note for every known candidate")
	_ = matchesCalculateCmd.MarkFlagRequired("job")
}

func withMatchesPage(cmd *cobra.Command, withDrafter bool, fn func(ctx context.Context, e *env, page *pages.MatchesPage) error) error {
	e, err := newEnv()
	if err != nil {
		return err
	}
	ctx := cmd.Context()

	var drafter ai.Drafter
	if withDrafter {
		drafter, err = newDrafter(ctx, e.config.AI, e.logger)
		if err != nil {
			e.logger.Error("preparing the outreach drafter", zap.Error(err))
			return err
		}
	}

	cfg := e.config.Matches
	if cfg.MissingSkillCap <= 0 {
		cfg.MissingSkillCap = matching.DefaultMissingSkillCap
	}

	page := pages.NewMatchesPage(e.client.Jobs(), e.client.Resumes(), e.client, cfg, drafter, e.logger)
	if err := page.Mount(ctx); err != nil {
		fmt.Println(page.Message())
		e.logger.Warn("continuing without some of jobs and resumes", zap.Error(err))
	}

	return fn(ctx, e, page)
}

func draftOutreach(ctx context.Context, e *env, page *pages.MatchesPage, jobID string, views []matching.View) error {
	for _, v := range views {
		if !v.Known {
			e.logger.Warn("skipping outreach for an unknown candidate", zap.String("resume_id", v.ResumeID))
			continue
		}

		outreach, err := page.Draft(ctx, jobID, v)
		if err != nil {
			e.logger.Warn("drafting outreach failed", zap.String("resume_id", v.ResumeID), zap.Error(err))
			continue
		}

		fmt.Printf("\n--- %s <%s>\nSubject: %s\n\n%s\n", v.CandidateName, v.Email, outreach.Subject, outreach.Message)
	}

	return nil
}
