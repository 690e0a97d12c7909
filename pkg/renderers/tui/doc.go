// Package tui drives a form session from the terminal. Each field is
// prompted through a PromptDriver (survey by default), fed to the session as
// a change followed by a blur, and re-prompted while invalid. The collected
// values serialise as JSON, form-urlencoded or pretty text.
package tui
