package model

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"strings"

	"github.com/go-logr/logr"
)

const (
	sdxlModelID   = "stability.stable-diffusion-xl-v1"
	sdxlMaxPrompt = 2000
	sdxlMaxSeed   = 4294967294
	sdxlSize      = 1024
)

// SDXL adapts Stability Stable Diffusion XL 1.0. Output is always
// 1024x1024; the negative prompt rides along as a negatively weighted
// text prompt.
type SDXL struct{}

type sdxlTextPrompt struct {
	Text   string  `json:"text"`
	Weight float64 `json:"weight"`
}

type sdxlRequest struct {
	TextPrompts []sdxlTextPrompt `json:"text_prompts"`
	CfgScale    int              `json:"cfg_scale"`
	Seed        int64            `json:"seed"`
	Steps       int              `json:"steps"`
	Width       int              `json:"width"`
	Height      int              `json:"height"`
}

type sdxlArtifact struct {
	Base64       string `json:"base64"`
	FinishReason string `json:"finishReason"`
}

type sdxlResponse struct {
	Artifacts []sdxlArtifact `json:"artifacts"`
}

func (*SDXL) MaxPromptLength() int { return sdxlMaxPrompt }

func (*SDXL) SupportedSizes() []int { return []int{sdxlSize} }

func (*SDXL) ModelID() string { return sdxlModelID }

func (s *SDXL) Generate(ctx context.Context, invoker Invoker, modelID string, req Request) ([]byte, *int64, error) {
	seed := effectiveSeed(req.Seed, sdxlMaxSeed)
	negative := truncate(req.Negative, sdxlMaxPrompt)

	body := sdxlRequest{
		TextPrompts: []sdxlTextPrompt{
			{Text: truncate(req.Prompt, sdxlMaxPrompt), Weight: 1.0},
		},
		CfgScale: 7,
		Seed:     seed,
		Steps:    50,
		Width:    sdxlSize,
		Height:   sdxlSize,
	}
	if strings.TrimSpace(negative) != "" {
		body.TextPrompts = append(body.TextPrompts, sdxlTextPrompt{Text: negative, Weight: -1.0})
	}

	log := logr.FromContextOrDiscard(ctx).WithValues("modelID", modelID, "seed", seed)
	log.Info("invoking stability sdxl")

	out, err := invokeJSON(ctx, invoker, modelID, body)
	if err != nil {
		return nil, nil, err
	}

	var resp sdxlResponse
	if err := json.Unmarshal(out, &resp); err != nil {
		return nil, nil, &GenerationError{Reason: "malformed response: " + err.Error()}
	}
	if len(resp.Artifacts) == 0 {
		return nil, nil, &GenerationError{Reason: "no artifacts in response"}
	}

	artifact := resp.Artifacts[0]
	switch artifact.FinishReason {
	case "CONTENT_FILTERED":
		return nil, nil, &ModerationError{Reason: "content blocked by safety filter"}
	case "SUCCESS", "END_OF_TEXT", "":
	default:
		return nil, nil, &GenerationError{Reason: artifact.FinishReason}
	}

	if artifact.Base64 == "" {
		return nil, nil, &GenerationError{Reason: "no image data in response"}
	}
	data, err := base64.StdEncoding.DecodeString(artifact.Base64)
	if err != nil {
		return nil, nil, &GenerationError{Reason: "undecodable image payload: " + err.Error()}
	}

	return data, &seed, nil
}
