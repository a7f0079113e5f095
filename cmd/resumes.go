package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/spigell/hire-assistant/internal/pages"
	"github.com/spigell/hire-assistant/internal/recruitapi"
)

var resumesCmd = &cobra.Command{
	Use:   "resumes",
	Short: "Manage candidate resumes",
}

var resumesListCmd = &cobra.Command{
	Use:   "list",
	Short: "List resumes",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		return withResumesPage(cmd, func(ctx context.Context, e *env, page *pages.ResumesPage) error {
			if p, _ := cmd.Flags().GetInt("page"); p > 1 && !page.List.SetPage(p) {
				e.logger.Warn("page is out of range, showing the first one", zap.Int("page", p), zap.Int("pages", len(page.List.Pages())))
			}

			if browseMode, _ := cmd.Flags().GetBool("browse"); browseMode {
				return browse(ctx, page.List, pages.ResumeLabel, func(r recruitapi.Resume) string { return r.ID }, func(ctx context.Context, id string) error {
					resume, err := page.List.Get(ctx, id)
					if err != nil {
						return err
					}
					pages.RenderResumeDetail(os.Stdout, resume)
					return nil
				})
			}

			pages.RenderResumes(os.Stdout, page.List.State())
			return nil
		})
	},
}

var resumesShowCmd = &cobra.Command{
	Use:   "show ID",
	Short: "Show a resume",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := newEnv()
		if err != nil {
			return err
		}

		resume, err := e.client.GetResume(cmd.Context(), args[0])
		if err != nil {
			e.logger.Error("getting a resume", zap.String("id", args[0]), zap.Error(err))
			return err
		}

		pages.RenderResumeDetail(os.Stdout, resume)
		return nil
	},
}

var resumesUploadCmd = &cobra.Command{
	Use:   "upload FILE",
	Short: "Upload a PDF or JSON resume",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withResumesPage(cmd, func(ctx context.Context, e *env, page *pages.ResumesPage) error {
			upload := recruitapi.ResumeUpload{Filename: args[0]}

			f, err := os.Open(args[0])
			if err != nil {
				e.logger.Error("opening a resume file", zap.String("file", args[0]), zap.Error(err))
				return err
			}
			defer f.Close()

			if info, err := f.Stat(); err == nil {
				upload.Size = info.Size()
			}
			upload.Content = f

			resume, err := page.Upload(ctx, upload)
			pages.RenderAlert(os.Stdout, page.Alert())
			if err != nil {
				return err
			}

			e.logger.Info("uploaded a resume", zap.String("id", resume.ID))
			pages.RenderResumes(os.Stdout, page.List.State())
			return nil
		})
	},
}

var resumesDeleteCmd = &cobra.Command{
	Use:   "delete ID",
	Short: "Delete a resume",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withResumesPage(cmd, func(ctx context.Context, e *env, page *pages.ResumesPage) error {
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

			pages.RenderResumes(os.Stdout, page.List.State())
			return nil
		})
	},
}

func init() {
	rootCmd.AddCommand(resumesCmd)
	resumesCmd.AddCommand(resumesListCmd, resumesShowCmd, resumesUploadCmd, resumesDeleteCmd)

	resumesListCmd.Flags().IntP("page", "p", 1, "page to show")
	resumesListCmd.Flags().BoolP("browse", "b", false, "browse pages interactively")
	resumesDeleteCmd.Flags().BoolP("yes", "y", false, "do not ask for confirmation")
}

func withResumesPage(cmd *cobra.Command, fn func(ctx context.Context, e *env, page *pages.ResumesPage) error) error {
	e, err := newEnv()
	if err != nil {
		return err
	}
	ctx := cmd.Context()

	page := pages.NewResumesPage(e.client.Resumes(), e.logger, e.config.PageSize)
	defer page.Close()

	if err := page.Mount(ctx); err != nil {
		fmt.Println(page.List.State().Error)
		return err
	}

	return fn(ctx, e, page)
}
