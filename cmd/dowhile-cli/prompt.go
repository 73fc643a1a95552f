package main

import (
	"context"
	"errors"

	"github.com/AlecAivazis/survey/v2"
	"github.com/AlecAivazis/survey/v2/terminal"
)

// PromptDriver abstracts the overwrite confirmation so runs without a
// terminal fail closed and tests can script answers.
type PromptDriver interface {
	Confirm(ctx context.Context, message string, def bool) (bool, error)
}

// newPromptDriver returns an interactive driver when a terminal is
// attached, otherwise one that declines everything.
func newPromptDriver(interactive bool) PromptDriver {
	if interactive {
		return surveyDriver{}
	}
	return denyDriver{}
}

type surveyDriver struct{}

func (surveyDriver) Confirm(ctx context.Context, message string, def bool) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	var out bool
	prompt := &survey.Confirm{
		Message: message,
		Default: def,
	}
	if err := survey.AskOne(prompt, &out); err != nil {
		return false, translateSurveyErr(err)
	}
	return out, nil
}

func translateSurveyErr(err error) error {
	if errors.Is(err, terminal.InterruptErr) {
		return context.Canceled
	}
	return err
}

// denyDriver answers no without prompting.
type denyDriver struct{}

func (denyDriver) Confirm(context.Context, string, bool) (bool, error) {
	return false, nil
}
