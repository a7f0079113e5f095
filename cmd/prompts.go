package cmd

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/manifoldco/promptui"

	"github.com/spigell/hire-assistant/internal/jobform"
	"github.com/spigell/hire-assistant/internal/listview"
	"github.com/spigell/hire-assistant/internal/recruitapi"
	"github.com/spigell/hire-assistant/internal/resource"
)

const (
	PromptYes      = "Yes"
	PromptNo       = "No"
	PromptBack     = "back"
	PromptDone     = "done"
	PromptNextPage = "next page"
	PromptPrevPage = "previous page"
)

// promptConfirmer is the interactive confirmation gate in front of deletes.
var promptConfirmer = resource.ConfirmFunc(func(_ context.Context, message string) (bool, error) {
	prompt := promptui.Select{
		Label: message,
		Items: []string{PromptNo, PromptYes},
	}

	_, answer, err := prompt.Run()
	return confirmAnswer(answer, err)
})

// confirmAnswer treats Ctrl-C and Ctrl-D at the prompt as a declined confirmation.
func confirmAnswer(answer string, err error) (bool, error) {
	if errors.Is(err, promptui.ErrInterrupt) || errors.Is(err, promptui.ErrAbort) || errors.Is(err, promptui.ErrEOF) {
		return false, nil
	}
	if err != nil {
		return false, err
	}

	return answer == PromptYes, nil
}

func confirmer(yes bool) resource.Confirmer {
	if yes {
		return resource.AlwaysConfirm
	}
	return promptConfirmer
}

type scalarPrompt struct {
	field    jobform.Field
	label    string
	validate promptui.ValidateFunc
}

var scalarPrompts = []scalarPrompt{
	{field: jobform.Title, label: "Job title", validate: required},
	{field: jobform.Company, label: "Company", validate: required},
	{field: jobform.Description, label: "Description", validate: required},
	{field: jobform.Location, label: "Location"},
	{field: jobform.Experience, label: "Years of experience", validate: wholeNumber},
	{field: jobform.SalaryRange, label: "Salary range"},
}

var tagPrompts = []struct {
	field jobform.Field
	label string
}{
	{field: jobform.Skills, label: "Skill"},
	{field: jobform.Requirements, label: "Requirement"},
	{field: jobform.Qualifications, label: "Qualification"},
}

func required(s string) error {
	if strings.TrimSpace(s) == "" {
		return errors.New("this field is required")
	}
	return nil
}

func wholeNumber(s string) error {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	if n, err := strconv.Atoi(strings.TrimSpace(s)); err != nil || n < 0 {
		return errors.New("enter a whole number of years")
	}
	return nil
}

// promptJobForm fills form interactively. defaults holds the current values when editing.
func promptJobForm(form *jobform.Form, defaults recruitapi.JobInput) error {
	current := map[jobform.Field]string{
		jobform.Title:       defaults.Title,
		jobform.Company:     defaults.Company,
		jobform.Description: defaults.Description,
		jobform.Location:    defaults.Location,
		jobform.SalaryRange: defaults.SalaryRange,
	}
	if defaults.ExperienceRequired > 0 {
		current[jobform.Experience] = strconv.Itoa(defaults.ExperienceRequired)
	}

	for _, p := range scalarPrompts {
		prompt := promptui.Prompt{
			Label:     p.label,
			Default:   current[p.field],
			AllowEdit: true,
			Validate:  p.validate,
		}

		value, err := prompt.Run()
		if err != nil {
			return err
		}
		if err := form.Set(p.field, value); err != nil {
			return err
		}
	}

	jobType := promptui.Select{
		Label:     "Job type",
		Items:     recruitapi.JobTypes,
		CursorPos: indexOf(recruitapi.JobTypes, defaults.JobType),
	}
	_, value, err := jobType.Run()
	if err != nil {
		return err
	}
	if err := form.Set(jobform.JobType, value); err != nil {
		return err
	}

	for _, p := range tagPrompts {
		if err := promptTags(form, p.field, p.label); err != nil {
			return err
		}
	}

	return nil
}

// promptTags adds entries one by one until an empty line, then offers to remove any of them.
func promptTags(form *jobform.Form, field jobform.Field, label string) error {
	editor := form.Editor(field)

	for {
		prompt := promptui.Prompt{
			Label: fmt.Sprintf("%s (empty line to finish, %d added)", label, editor.Len()),
		}

		value, err := prompt.Run()
		if err != nil {
			return err
		}
		if strings.TrimSpace(value) == "" {
			break
		}

		if err := form.Set(field, value); err != nil {
			return err
		}
		form.Enter(field)
	}

	for editor.Len() > 0 {
		items := append(editor.Items(), PromptDone)
		remove := promptui.Select{
			Label: fmt.Sprintf("Select a %s to remove or %s", strings.ToLower(label), PromptDone),
			Items: items,
		}

		idx, value, err := remove.Run()
		if err != nil {
			return err
		}
		if value == PromptDone && idx == len(items)-1 {
			return nil
		}
		if err := editor.RemoveAt(idx); err != nil {
			return err
		}
	}

	return nil
}

func indexOf(items []string, value string) int {
	for i, item := range items {
		if item == value {
			return i
		}
	}
	return 0
}

// browse shows one page at a time and opens the detail view of a selected item.
func browse[T any](ctx context.Context, list *listview.ListView[T], label func(T) string, id func(T) string, show func(context.Context, string) error) error {
	for {
		state := list.State()
		if state.Error != "" {
			return errors.New(state.Error)
		}
		if state.Empty != "" {
			fmt.Println(state.Empty)
			return nil
		}

		items := make([]string, 0, len(state.Window.Items)+3)
		for _, item := range state.Window.Items {
			items = append(items, fmt.Sprintf("%s %s", id(item), label(item)))
		}
		if state.Window.HasNext() {
			items = append(items, PromptNextPage)
		}
		if state.Window.HasPrev() {
			items = append(items, PromptPrevPage)
		}
		items = append(items, PromptBack)

		prompt := promptui.Select{
			Label: fmt.Sprintf("Page %d of %d, choose an item and press ENTER", state.Window.CurrentPage, state.Window.TotalPages),
			Items: items,
			Size:  len(items),
		}

		idx, selected, err := prompt.Run()
		if err != nil {
			return err
		}

		switch {
		case idx < len(state.Window.Items):
			if err := show(ctx, id(state.Window.Items[idx])); err != nil {
				return err
			}
		case selected == PromptNextPage:
			list.SetPage(state.Window.CurrentPage + 1)
		case selected == PromptPrevPage:
			list.SetPage(state.Window.CurrentPage - 1)
		default:
			return nil
		}
	}
}
