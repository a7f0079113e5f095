package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/spigell/hire-assistant/internal/jobform"
	"github.com/spigell/hire-assistant/internal/pages"
	"github.com/spigell/hire-assistant/internal/recruitapi"
)

var jobsCmd = &cobra.Command{
	Use:   "jobs",
	Short: "Manage job postings",
}

var jobsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List job postings",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		return withJobsPage(cmd, func(ctx context.Context, e *env, page *pages.JobsPage) error {
			if p, _ := cmd.Flags().GetInt("page"); p > 1 && !page.List.SetPage(p) {
				e.logger.Warn("page is out of range, showing the first one", zap.Int("page", p), zap.Int("pages", len(page.List.Pages())))
			}

			if browseMode, _ := cmd.Flags().GetBool("browse"); browseMode {
				return browse(ctx, page.List, pages.JobLabel, func(j recruitapi.Job) string { return j.ID }, func(ctx context.Context, id string) error {
					job, err := page.List.Get(ctx, id)
					if err != nil {
						return err
					}
					pages.RenderJobDetail(os.Stdout, job)
					return nil
				})
			}

			pages.RenderJobs(os.Stdout, page.List.State())
			return nil
		})
	},
}

var jobsShowCmd = &cobra.Command{
	Use:   "show ID",
	Short: "Show a job posting",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := newEnv()
		if err != nil {
			return err
		}

		job, err := e.client.GetJob(cmd.Context(), args[0])
		if err != nil {
			e.logger.Error("getting a job posting", zap.String("id", args[0]), zap.Error(err))
			return err
		}

		pages.RenderJobDetail(os.Stdout, job)
		return nil
	},
}

var jobsCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Create a job posting (interactive without flags)",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		return withJobsPage(cmd, func(ctx context.Context, e *env, page *pages.JobsPage) error {
			if err := fillJobForm(cmd, page.Form, recruitapi.JobInput{JobType: recruitapi.DefaultJobType}); err != nil {
				return err
			}

			job, err := page.Submit(ctx)
			pages.RenderAlert(os.Stdout, page.Form.Alert())
			if err != nil {
				return err
			}

			e.logger.Info("created a job posting", zap.String("id", job.ID))
			pages.RenderJobs(os.Stdout, page.List.State())
			return nil
		})
	},
}

var jobsUpdateCmd = &cobra.Command{
	Use:   "update ID",
	Short: "Update a job posting (interactive without flags)",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := newEnv()
		if err != nil {
			return err
		}
		ctx := cmd.Context()

		job, err := e.client.GetJob(ctx, args[0])
		if err != nil {
			e.logger.Error("getting a job posting", zap.String("id", args[0]), zap.Error(err))
			return err
		}

		form := jobform.New(e.logger, e.config.tagOptions()...)
		form.Load(job)

		if err := fillJobForm(cmd, form, job.Input()); err != nil {
			return err
		}

		in, err := form.Payload()
		if err != nil {
			return err
		}

		updated, err := e.client.UpdateJob(ctx, job.ID, in)
		if err != nil {
			fmt.Println(recruitapi.UserMessage(err, "Error updating job posting. Please try again."))
			return err
		}

		e.logger.Info("updated a job posting", zap.String("id", updated.ID))
		pages.RenderJobDetail(os.Stdout, updated)
		return nil
	},
}

var jobsDeleteCmd = &cobra.Command{
	Use:   "delete ID",
	Short: "Delete a job posting",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withJobsPage(cmd, func(ctx context.Context, e *env, page *pages.JobsPage) error {
			yes, _ := cmd.Flags().GetBool("yes")

			removed, err := page.Delete(ctx, args[0], confirmer(yes))
			if err != nil {
				fmt.Println(page.List.State().Error)
				return err
			}
			if !removed {
				e.logger.Info("delete cancelled", zap.String("id", args[0]))
				return nil
			}

			pages.RenderJobs(os.Stdout, page.List.State())
			return nil
		})
	},
}

func init() {
	rootCmd.AddCommand(jobsCmd)
	jobsCmd.AddCommand(jobsListCmd, jobsShowCmd, jobsCreateCmd, jobsUpdateCmd, jobsDeleteCmd)

	jobsListCmd.Flags().IntP("page", "p", 1, "page to show")
	jobsListCmd.Flags().BoolP("browse", "b", false, "browse pages interactively")

	for _, c := range []*cobra.Command{jobsCreateCmd, jobsUpdateCmd} {
		c.Flags().String("title", "", "job title")
		c.Flags().String("company", "", "company name")
		c.Flags().String("description", "", "job description")
		c.Flags().String("location", "", "job location")
		c.Flags().String("type", "", fmt.Sprintf("job type, one of %v", recruitapi.JobTypes))
		c.Flags().String("experience", "", "required years of experience")
		c.Flags().String("salary", "", "salary range")
		c.Flags().StringArray("skill", nil, "required skill, repeatable")
		c.Flags().StringArray("requirement", nil, "requirement, repeatable")
		c.Flags().StringArray("qualification", nil, "qualification, repeatable")
	}

	jobsDeleteCmd.Flags().BoolP("yes", "y", false, "do not ask for confirmation")
}

func withJobsPage(cmd *cobra.Command, fn func(ctx context.Context, e *env, page *pages.JobsPage) error) error {
	e, err := newEnv()
	if err != nil {
		return err
	}
	ctx := cmd.Context()

	page := pages.NewJobsPage(e.client.Jobs(), e.logger, e.config.PageSize, e.config.tagOptions()...)
	defer page.Close()

	if err := page.Mount(ctx); err != nil {
		fmt.Println(page.List.State().Error)
		return err
	}

	return fn(ctx, e, page)
}

var jobFlagFields = map[string]jobform.Field{
	"title":       jobform.Title,
	"company":     jobform.Company,
	"description": jobform.Description,
	"location":    jobform.Location,
	"type":        jobform.JobType,
	"experience":  jobform.Experience,
	"salary":      jobform.SalaryRange,
}

var jobFlagTags = map[string]jobform.Field{
	"skill":         jobform.Skills,
	"requirement":   jobform.Requirements,
	"qualification": jobform.Qualifications,
}

// fillJobForm applies the flags that were set. Without any flag it falls back to prompts.
func fillJobForm(cmd *cobra.Command, form *jobform.Form, defaults recruitapi.JobInput) error {
	if !anyChanged(cmd, jobFlagFields) && !anyChanged(cmd, jobFlagTags) {
		return promptJobForm(form, defaults)
	}

	for name, field := range jobFlagFields {
		if !cmd.Flags().Changed(name) {
			continue
		}
		value, _ := cmd.Flags().GetString(name)
		if err := form.Set(field, value); err != nil {
			return err
		}
	}

	for name, field := range jobFlagTags {
		if !cmd.Flags().Changed(name) {
			continue
		}
		values, _ := cmd.Flags().GetStringArray(name)
		form.Editor(field).Reset()
		for _, v := range values {
			if err := form.Set(field, v); err != nil {
				return err
			}
			form.Enter(field)
		}
	}

	return nil
}

func anyChanged(cmd *cobra.Command, flags map[string]jobform.Field) bool {
	for name := range flags {
		if cmd.Flags().Changed(name) {
			return true
		}
	}
	return false
}
