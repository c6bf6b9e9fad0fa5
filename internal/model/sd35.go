package model

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"strings"

	"github.com/go-logr/logr"
)

const (
	sd35ModelID   = "stability.sd3-5-large-v1:0"
	sd35MaxPrompt = 10000
	sd35MaxSeed   = 4294967294
)

// SD35 adapts Stability Stable Diffusion 3.5 Large. The model is driven by
// aspect ratio rather than explicit dimensions, so requested width and
// height are ignored and portraits are always asked for at 1:1.
type SD35 struct{}

type sd35Request struct {
	Prompt         string `json:"prompt"`
	Mode           string `json:"mode"`
	AspectRatio    string `json:"aspect_ratio"`
	OutputFormat   string `json:"output_format"`
	Seed           int64  `json:"seed"`
	NegativePrompt string `json:"negative_prompt,omitempty"`
}

type sd35Response struct {
	Images        []string  `json:"images"`
	Seeds         []int64   `json:"seeds"`
	FinishReasons []*string `json:"finish_reasons"`
}

func (*SD35) MaxPromptLength() int { return sd35MaxPrompt }

func (*SD35) SupportedSizes() []int { return []int{1024} }

func (*SD35) ModelID() string { return sd35ModelID }

func (s *SD35) Generate(ctx context.Context, invoker Invoker, modelID string, req Request) ([]byte, *int64, error) {
	seed := effectiveSeed(req.Seed, sd35MaxSeed)
	negative := truncate(req.Negative, sd35MaxPrompt)

	body := sd35Request{
		Prompt:       truncate(req.Prompt, sd35MaxPrompt),
		Mode:         "text-to-image",
		AspectRatio:  "1:1",
		OutputFormat: "png",
		Seed:         seed,
	}
	if strings.TrimSpace(negative) != "" {
		body.NegativePrompt = negative
	}

	log := logr.FromContextOrDiscard(ctx).WithValues("modelID", modelID, "seed", seed)
	log.Info("invoking stability sd3.5 large")

	out, err := invokeJSON(ctx, invoker, modelID, body)
	if err != nil {
		return nil, nil, err
	}

	var resp sd35Response
	if err := json.Unmarshal(out, &resp); err != nil {
		return nil, nil, &GenerationError{Reason: "malformed response: " + err.Error()}
	}

	if len(resp.FinishReasons) > 0 && resp.FinishReasons[0] != nil {
		reason := *resp.FinishReasons[0]
		lower := strings.ToLower(reason)
		if strings.Contains(lower, "filter") || strings.Contains(lower, "blocked") {
			return nil, nil, &ModerationError{Reason: reason}
		}
		return nil, nil, &GenerationError{Reason: reason}
	}

	if len(resp.Images) == 0 {
		return nil, nil, &GenerationError{Reason: "no images in response"}
	}
	data, err := base64.StdEncoding.DecodeString(resp.Images[0])
	if err != nil {
		return nil, nil, &GenerationError{Reason: "undecodable image payload: " + err.Error()}
	}

	used := seed
	if len(resp.Seeds) > 0 {
		used = resp.Seeds[0]
	}
	return data, &used, nil
}
