package cmd

import (
	"errors"
	"fmt"

	"github.com/gaurav-prasanna/wikiq/core/output"
	"github.com/gaurav-prasanna/wikiq/core/wiki"
)

// usageError marks bad arguments or flags.
type usageError struct {
	err error
}

func (e *usageError) Error() string { return e.err.Error() }
func (e *usageError) Unwrap() error { return e.err }

// lookupError attaches the title being looked up to a failed API call.
type lookupError struct {
	Title string
	Err   error
}

func (e *lookupError) Error() string { return fmt.Sprintf("%s: %v", e.Title, e.Err) }
func (e *lookupError) Unwrap() error { return e.Err }

// toCLIError maps any error returned by a command to its user-facing form.
func toCLIError(err error) *output.CLIError {
	var cliErr *output.CLIError
	if errors.As(err, &cliErr) {
		return cliErr
	}

	var title string
	var le *lookupError
	if errors.As(err, &le) {
		title = le.Title
	}

	var (
		usage  *usageError
		oor    *wiki.IndexOutOfRangeError
		dnf    *wiki.DisambiguationNotFoundError
		apiErr *wiki.APIError
	)
	switch {
	case errors.As(err, &usage):
		return &output.CLIError{
			Summary:    usage.Error(),
			Suggestion: "Run 'wikiq --help' for usage",
			ExitCode:   output.ExitUsageError,
			Err:        err,
		}

	case errors.As(err, &oor):
		return &output.CLIError{
			Summary:    fmt.Sprintf("Disambiguation index %d is out of range", oor.Index),
			Detail:     fmt.Sprintf("'%s' has %d disambiguation entries", title, oor.Len),
			Suggestion: fmt.Sprintf("Run 'wikiq \"%s\" -l' to list them", title),
			ExitCode:   output.ExitUsageError,
			Err:        err,
		}

	case errors.As(err, &dnf):
		return &output.CLIError{
			Summary:    fmt.Sprintf("No disambiguation page found for: '%s'", dnf.Title),
			Suggestion: fmt.Sprintf("Run 'wikiq \"%s\"' for the page itself", dnf.Title),
			ExitCode:   output.ExitUsageError,
			Err:        err,
		}

	case errors.Is(err, wiki.ErrPageNotFound):
		return &output.CLIError{
			Summary:    fmt.Sprintf("No page found for: '%s'", title),
			Suggestion: "Check the spelling, or add a qualifier such as \"(planet)\"",
			ExitCode:   output.ExitUsageError,
			Err:        err,
		}

	case errors.As(err, &apiErr):
		return &output.CLIError{
			Summary:  "Wikipedia API returned an error",
			Detail:   apiErr.Error(),
			ExitCode: output.ExitGeneral,
			Err:      err,
		}

	default:
		return &output.CLIError{
			Summary:  err.Error(),
			ExitCode: output.ExitGeneral,
			Err:      err,
		}
	}
}
