// Package ai adapts the OpenAI API to the coordinator's Assistant port:
// Whisper for transcription, chat completions for expense questions.
package ai

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"

	openai "github.com/sashabaranov/go-openai"
)

const (
	defaultChatModel       = openai.GPT4oMini
	defaultTranscribeModel = openai.Whisper1
)

type OpenAI struct {
	client          *openai.Client
	chatModel       string
	transcribeModel string
}

type Option func(*OpenAI)

func WithChatModel(model string) Option {
	return func(o *OpenAI) { o.chatModel = model }
}

func WithTranscribeModel(model string) Option {
	return func(o *OpenAI) { o.transcribeModel = model }
}

func NewOpenAI(apiKey string, opts ...Option) *OpenAI {
	o := &OpenAI{
		client:          openai.NewClient(apiKey),
		chatModel:       defaultChatModel,
		transcribeModel: defaultTranscribeModel,
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// Transcribe converts recorded audio to text. The caller bounds the call
// with its context; cancellation propagates to the HTTP request.
func (o *OpenAI) Transcribe(ctx context.Context, audio []byte) (string, error) {
	if len(audio) == 0 {
		return "", errors.New("empty audio payload")
	}
	resp, err := o.client.CreateTranscription(ctx, openai.AudioRequest{
		Model:    o.transcribeModel,
		Reader:   bytes.NewReader(audio),
		FilePath: "recording.wav",
	})
	if err != nil {
		return "", fmt.Errorf("transcription: %w", err)
	}
	return strings.TrimSpace(resp.Text), nil
}

// Complete sends the prepared expense context and the user's question to the
// chat model and returns the answer verbatim.
func (o *OpenAI) Complete(ctx context.Context, systemContext, question string) (string, error) {
	resp, err := o.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: o.chatModel,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: systemContext},
			{Role: openai.ChatMessageRoleUser, Content: question},
		},
	})
	if err != nil {
		return "", fmt.Errorf("chat completion: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", errors.New("empty completion response")
	}
	return resp.Choices[0].Message.Content, nil
}
