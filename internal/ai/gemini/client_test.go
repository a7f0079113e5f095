package gemini

import (
	"context"
	"errors"
	"testing"

	"google.golang.org/genai"
)

type fakeModels struct {
	resp   *genai.GenerateContentResponse
	err    error
	model  string
	prompt string
	config *genai.GenerateContentConfig
}

func (f *fakeModels) GenerateContent(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error) {
	f.model = model
	f.config = config
	if len(contents) > 0 && len(contents[0].Parts) > 0 {
		f.prompt = contents[0].Parts[0].Text
	}
	return f.resp, f.err
}

func textResponse(parts ...string) *genai.GenerateContentResponse {
	content := &genai.Content{}
	for _, p := range parts {
		content.Parts = append(content.Parts, &genai.Part{Text: p})
	}
	return &genai.GenerateContentResponse{Candidates: []*genai.Candidate{{Content: content}, nil}}
}

func TestGeneratorJoinsParts(t *testing.T) {
	fake := &fakeModels{resp: textResponse(" first ", "", "second")}
	g := &Generator{models: fake, modelName: "gemini-test"}

	out, err := g.GenerateContent(context.Background(), "be brief", "  hello ")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out != "first\nsecond" {
		t.Fatalf("unexpected output %q", out)
	}
	if fake.model != "gemini-test" || fake.prompt != "hello" {
		t.Fatalf("unexpected call %q %q", fake.model, fake.prompt)
	}
	if fake.config == nil || fake.config.SystemInstruction.Parts[0].Text != "be brief" {
		t.Fatalf("expected system instruction to be set")
	}
}

func TestGeneratorWithoutSystemInstruction(t *testing.T) {
	fake := &fakeModels{resp: textResponse("ok")}
	g := &Generator{models: fake, modelName: "gemini-test"}

	if _, err := g.GenerateContent(context.Background(), " ", "hello"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if fake.config != nil {
		t.Fatalf("expected no config without system instruction")
	}
}

func TestGeneratorErrors(t *testing.T) {
	tests := []struct {
		name   string
		g      *Generator
		prompt string
	}{
		{name: "nil generator", g: nil, prompt: "x"},
		{name: "empty prompt", g: &Generator{models: &fakeModels{}}, prompt: "  "},
		{name: "api error", g: &Generator{models: &fakeModels{err: errors.New("quota")}}, prompt: "x"},
		{name: "empty response", g: &Generator{models: &fakeModels{resp: textResponse(" ")}}, prompt: "x"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := tt.g.GenerateContent(context.Background(), "", tt.prompt); err == nil {
				t.Fatalf("expected error")
			}
		})
	}
}

func TestNewGeneratorRequiresKey(t *testing.T) {
	if _, err := NewGenerator(context.Background(), "  ", ""); err == nil {
		t.Fatalf("expected error for empty api key")
	}
}

func TestModel(t *testing.T) {
	var g *Generator
	if g.Model() != "" {
		t.Fatalf("nil generator must report empty model")
	}
	if (&Generator{modelName: "m"}).Model() != "m" {
		t.Fatalf("unexpected model")
	}
}
