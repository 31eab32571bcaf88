// Package analyzer provides options pattern for per-call analysis parameters.
//
// This file implements functional options for runtime overrides while the
// client itself stays immutable between calls.
package analyzer

import "github.com/landdoc/landdoc-ai/pkg/llm"

// Options holds per-call parameters for Analyze.
type Options struct {
	// CustomPrompt replaces the fixed extraction prompt for this call.
	// Empty string means "use the default prompt".
	CustomPrompt string

	// History is an ordered sequence of pre-built messages appended
	// verbatim after the initial vision message.
	History []llm.Message

	// IncludeFollowUp controls the trailing follow-up user message.
	// Default true; only an explicit WithoutFollowUp() suppresses it.
	IncludeFollowUp bool
}

// Option is a functional option for configuring Options.
type Option func(*Options)

// WithPrompt overrides the fixed extraction prompt for this call.
func WithPrompt(prompt string) Option {
	return func(o *Options) {
		o.CustomPrompt = prompt
	}
}

// WithHistory appends pre-built conversation messages after the
// initial vision message, in the given order.
func WithHistory(messages ...llm.Message) Option {
	return func(o *Options) {
		o.History = messages
	}
}

// WithoutFollowUp suppresses the trailing follow-up message.
func WithoutFollowUp() Option {
	return func(o *Options) {
		o.IncludeFollowUp = false
	}
}

// buildOptions applies opts over the defaults.
func buildOptions(opts []Option) Options {
	options := Options{
		IncludeFollowUp: true,
	}
	for _, opt := range opts {
		opt(&options)
	}
	return options
}
