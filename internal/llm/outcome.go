// Package llm talks to the remote text-generation endpoint and turns every
// reply, including failures, into an Outcome the chat log can display.
package llm

import (
	"context"
	"fmt"
)

const (
	NoResponseText = "No response from AI"
	EmptyText      = "Empty response"
	UnknownError   = "Unknown error"
	ApologyText    = "Sorry, I couldn't process your request. Please try again."
)

type OutcomeKind int

const (
	Success OutcomeKind = iota
	APIError
	TransportError
)

func (k OutcomeKind) String() string {
	switch k {
	case Success:
		return "success"
	case APIError:
		return "api_error"
	case TransportError:
		return "transport_error"
	}
	return "unknown"
}

// Outcome is the result of exactly one generation request.
type Outcome struct {
	Kind    OutcomeKind
	Text    string // Success: reply text, already defaulted
	Message string // APIError: message reported by the endpoint, may be empty
	Err     error  // TransportError: cause
}

func Succeeded(text string) Outcome {
	return Outcome{Kind: Success, Text: text}
}

func Failed(message string) Outcome {
	return Outcome{Kind: APIError, Message: message}
}

func Unreachable(err error) Outcome {
	return Outcome{Kind: TransportError, Err: err}
}

// EntryText is the text of the assistant entry appended for this outcome.
func (o Outcome) EntryText() string {
	switch o.Kind {
	case APIError:
		msg := o.Message
		if msg == "" {
			msg = UnknownError
		}
		return "Error: " + msg
	case TransportError:
		return ApologyText
	}
	return o.Text
}

// Cause is the failure behind a non-success outcome.
func (o Outcome) Cause() error {
	switch o.Kind {
	case APIError:
		if o.Message == "" {
			return fmt.Errorf("api error: %s", UnknownError)
		}
		return fmt.Errorf("api error: %s", o.Message)
	case TransportError:
		return o.Err
	}
	return nil
}

// Generator sends one prompt and always resolves to one Outcome.
type Generator interface {
	Generate(ctx context.Context, prompt string) Outcome
}

// Options are the generation parameters sent with every request.
type Options struct {
	Model           string
	Temperature     float64
	MaxOutputTokens int
}
