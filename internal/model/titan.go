package model

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/bedrockruntime"
	"github.com/go-logr/logr"
	"github.com/samber/lo"
)

const (
	titanModelID   = "amazon.titan-image-generator-v1"
	titanMaxPrompt = 512
	titanMaxSeed   = 2147483646
)

// Titan adapts the Amazon Titan Image Generator V1. It accepts several
// native output sizes up to 1408px and reports failures through an error
// field rather than a per-image finish reason.
type Titan struct{}

type titanTextParams struct {
	Text         string `json:"text"`
	NegativeText string `json:"negativeText,omitempty"`
}

type titanImageConfig struct {
	NumberOfImages int     `json:"numberOfImages"`
	Quality        string  `json:"quality"`
	Height         int     `json:"height"`
	Width          int     `json:"width"`
	CfgScale       float64 `json:"cfgScale"`
	Seed           int64   `json:"seed"`
}

type titanRequest struct {
	TaskType              string           `json:"taskType"`
	TextToImageParams     titanTextParams  `json:"textToImageParams"`
	ImageGenerationConfig titanImageConfig `json:"imageGenerationConfig"`
}

type titanResponse struct {
	Images []string `json:"images"`
	Error  string   `json:"error"`
}

func (*Titan) MaxPromptLength() int { return titanMaxPrompt }

func (*Titan) SupportedSizes() []int { return []int{512, 768, 1024, 1152, 1408} }

func (*Titan) ModelID() string { return titanModelID }

func (t *Titan) Generate(ctx context.Context, invoker Invoker, modelID string, req Request) ([]byte, *int64, error) {
	maxDim := lo.Max(t.SupportedSizes())
	width := min(req.Width, maxDim)
	height := min(req.Height, maxDim)

	seed := effectiveSeed(req.Seed, titanMaxSeed)
	negative := truncate(req.Negative, titanMaxPrompt)

	body := titanRequest{
		TaskType: "TEXT_IMAGE",
		TextToImageParams: titanTextParams{
			Text: truncate(req.Prompt, titanMaxPrompt),
		},
		ImageGenerationConfig: titanImageConfig{
			NumberOfImages: 1,
			Quality:        "premium",
			Height:         height,
			Width:          width,
			CfgScale:       8.0,
			Seed:           seed,
		},
	}
	if strings.TrimSpace(negative) != "" {
		body.TextToImageParams.NegativeText = negative
	}

	log := logr.FromContextOrDiscard(ctx).WithValues("modelID", modelID, "seed", seed, "width", width, "height", height)
	log.Info("invoking titan image generator")

	out, err := invokeJSON(ctx, invoker, modelID, body)
	if err != nil {
		return nil, nil, err
	}

	var resp titanResponse
	if err := json.Unmarshal(out, &resp); err != nil {
		return nil, nil, &GenerationError{Reason: "malformed response: " + err.Error()}
	}

	if resp.Error != "" {
		lower := strings.ToLower(resp.Error)
		if strings.Contains(lower, "blocked") || strings.Contains(lower, "moderat") {
			return nil, nil, &ModerationError{Reason: resp.Error}
		}
		return nil, nil, &GenerationError{Reason: resp.Error}
	}
	if len(resp.Images) == 0 {
		return nil, nil, &GenerationError{Reason: "no images in response"}
	}

	data, err := base64.StdEncoding.DecodeString(resp.Images[0])
	if err != nil {
		return nil, nil, &GenerationError{Reason: "undecodable image payload: " + err.Error()}
	}

	// Titan does not echo the seed, so the one we sent is the one used.
	return data, &seed, nil
}

func invokeJSON(ctx context.Context, invoker Invoker, modelID string, body any) ([]byte, error) {
	payload, err := json.Marshal(body)
	if err != nil {
		return nil, &GenerationError{Reason: err.Error()}
	}
	out, err := invoker.InvokeModel(ctx, &bedrockruntime.InvokeModelInput{
		ModelId:     aws.String(modelID),
		Body:        payload,
		Accept:      aws.String("application/json"),
		ContentType: aws.String("application/json"),
	})
	if err != nil {
		return nil, &GenerationError{Reason: err.Error()}
	}
	return out.Body, nil
}
