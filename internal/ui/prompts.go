package ui

import (
	"errors"
	"os"

	"github.com/AlecAivazis/survey/v2"
	"github.com/mattn/go-isatty"
)

// ErrNotInteractive is returned when a prompt is needed but stdin is not a terminal
var ErrNotInteractive = errors.New("stdin is not a terminal")

// IsInteractive reports whether stdin is a terminal
func IsInteractive() bool {
	fd := os.Stdin.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

// PromptToken prompts for a workspace access token without echoing it
func PromptToken() (string, error) {
	if !IsInteractive() {
		return "", ErrNotInteractive
	}
	var token string
	prompt := &survey.Password{
		Message: "Token:",
		Help:    "Access token of the workspace, from the workspace settings page",
	}
	if err := survey.AskOne(prompt, &token, survey.WithValidator(survey.Required)); err != nil {
		return "", err
	}
	return token, nil
}

// PromptConfirmation prompts for yes/no confirmation, defaulting to yes
func PromptConfirmation(message string) (bool, error) {
	if !IsInteractive() {
		return false, ErrNotInteractive
	}
	var confirmed bool
	prompt := &survey.Confirm{
		Message: message,
		Default: true,
	}
	if err := survey.AskOne(prompt, &confirmed); err != nil {
		return false, err
	}
	return confirmed, nil
}
