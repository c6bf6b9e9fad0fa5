package model

import "errors"

var ErrUnknownModel = errors.New("unknown model")

// ModerationError reports a backend refusal to produce an image for policy
// reasons, as opposed to a technical failure.
type ModerationError struct {
	Reason string
}

func (e *ModerationError) Error() string {
	return "content blocked: " + e.Reason
}

type GenerationError struct {
	Reason string
}

func (e *GenerationError) Error() string {
	return "generation failed: " + e.Reason
}
