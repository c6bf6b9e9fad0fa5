package model

import (
	"context"
	"math/rand"
	"unicode/utf8"

	"github.com/aws/aws-sdk-go-v2/service/bedrockruntime"
)

// Invoker is the slice of the Bedrock runtime client the adapters need.
// Transport, auth and retry policy belong to the concrete client.
type Invoker interface {
	InvokeModel(ctx context.Context, params *bedrockruntime.InvokeModelInput, optFns ...func(*bedrockruntime.Options)) (*bedrockruntime.InvokeModelOutput, error)
}

type Request struct {
	Prompt   string
	Negative string
	Seed     *int64
	Width    int
	Height   int
}

// Adapter translates a canonical generation request into one model's wire
// format and maps its success, failure and content-filter signals onto the
// shared error set. The returned seed is whatever the backend reports as
// actually used, falling back to the locally drawn one.
type Adapter interface {
	Generate(ctx context.Context, invoker Invoker, modelID string, req Request) ([]byte, *int64, error)
	MaxPromptLength() int
	SupportedSizes() []int
	ModelID() string
}

// truncate caps s at max characters. Backend prompt limits count
// characters, not bytes, and a byte slice could split a rune.
func truncate(s string, max int) string {
	if utf8.RuneCountInString(s) <= max {
		return s
	}
	return string([]rune(s)[:max])
}

// effectiveSeed returns the requested seed, or draws one uniformly from
// [0, maxSeed] when none was supplied. maxSeed must be below MaxInt64.
func effectiveSeed(seed *int64, maxSeed int64) int64 {
	if seed != nil {
		return *seed
	}
	return rand.Int63n(maxSeed + 1)
}
