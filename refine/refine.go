/*
 * Copyright 2025 Humaid Alqasimi
 * SPDX-License-Identifier: Apache-2.0
 */

// Package refine rephrases a finished analysis into patient-friendly text
// through an OpenAI-compatible chat endpoint such as Ollama.
package refine

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/humaidq/lablens/analysis"
	"github.com/humaidq/lablens/logging"
)

var logger = logging.Logger(logging.SourceRefine)

const systemPrompt = "You are a medical communication assistant. Convert technical lab result analysis into clear, " +
	"patient-friendly language. Do not add new medical claims or advice. Simply rephrase the existing findings " +
	"in an accessible way. Always remind users to consult their healthcare provider."

// Config holds the chat server configuration
type Config struct {
	URL   string
	Model string
	// Timeout bounds a whole request, including a streamed body.
	Timeout time.Duration
}

// Client talks to an OpenAI-compatible chat completions endpoint
type Client struct {
	cfg  Config
	http *http.Client
}

// New returns a client, or ErrNotConfigured when URL or model is missing.
func New(cfg Config) (*Client, error) {
	if strings.TrimSpace(cfg.URL) == "" || strings.TrimSpace(cfg.Model) == "" {
		return nil, ErrNotConfigured
	}

	if cfg.Timeout <= 0 {
		cfg.Timeout = 300 * time.Second
	}

	return &Client{
		cfg:  cfg,
		http: &http.Client{Timeout: cfg.Timeout},
	}, nil
}

// OpenAI-compatible request/response structures
type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model    string        `json:"model"`
	Messages []chatMessage `json:"messages"`
	Stream   bool          `json:"stream,omitempty"`
}

type chatChoice struct {
	Message chatMessage `json:"message"`
	Delta   chatMessage `json:"delta,omitempty"`
}

type chatResponse struct {
	Choices []chatChoice `json:"choices"`
	Error   *struct {
		Message string `json:"message"`
	} `json:"error,omitempty"`
}

// buildPrompt renders the result without the patient identifier.
func buildPrompt(result analysis.AnalysisResult) (string, error) {
	payload, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to marshal analysis result: %w", err)
	}

	var sb strings.Builder
	sb.WriteString("Please convert this lab analysis into patient-friendly language:\n\n")
	sb.Write(payload)

	return sb.String(), nil
}

func (c *Client) newRequest(ctx context.Context, result analysis.AnalysisResult, stream bool) (*http.Request, error) {
	prompt, err := buildPrompt(result)
	if err != nil {
		return nil, err
	}

	body, err := json.Marshal(chatRequest{
		Model:  c.cfg.Model,
		Stream: stream,
		Messages: []chatMessage{
			{Role: "system", Content: systemPrompt},
			{Role: "user", Content: prompt},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	endpoint := strings.TrimSuffix(c.cfg.URL, "/") + "/v1/chat/completions"

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	return req, nil
}

func (c *Client) do(req *http.Request) (*http.Response, error) {
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrUnavailable, err)
	}

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		resp.Body.Close()

		return nil, fmt.Errorf("%w: status %d: %s", ErrUnavailable, resp.StatusCode, strings.TrimSpace(string(body)))
	}

	return resp, nil
}

// Refine returns the rephrased text of a finished analysis.
func (c *Client) Refine(ctx context.Context, result analysis.AnalysisResult) (string, error) {
	start := time.Now()

	req, err := c.newRequest(ctx, result, false)
	if err != nil {
		return "", err
	}

	resp, err := c.do(req)
	if err != nil {
		logger.Warn("refine request failed", "model", c.cfg.Model, "error", err)
		return "", err
	}
	defer resp.Body.Close()

	var chatResp chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&chatResp); err != nil {
		return "", fmt.Errorf("%w: failed to decode response: %w", ErrUnavailable, err)
	}

	if chatResp.Error != nil {
		return "", fmt.Errorf("%w: %s", ErrUnavailable, chatResp.Error.Message)
	}

	if len(chatResp.Choices) == 0 || strings.TrimSpace(chatResp.Choices[0].Message.Content) == "" {
		return "", ErrEmptyResponse
	}

	logger.Info("refined analysis", "model", c.cfg.Model, "duration_ms", time.Since(start).Milliseconds())

	return chatResp.Choices[0].Message.Content, nil
}

// Stream rephrases a finished analysis and passes each text chunk to
// onChunk as it arrives. Returning an error from onChunk stops the stream.
func (c *Client) Stream(ctx context.Context, result analysis.AnalysisResult, onChunk func(string) error) error {
	req, err := c.newRequest(ctx, result, true)
	if err != nil {
		return err
	}

	resp, err := c.do(req)
	if err != nil {
		logger.Warn("refine stream failed", "model", c.cfg.Model, "error", err)
		return err
	}
	defer resp.Body.Close()

	reader := bufio.NewReader(resp.Body)
	for {
		line, err := reader.ReadBytes('\n')
		if err != nil && !errors.Is(err, io.EOF) {
			return fmt.Errorf("failed to read stream: %w", err)
		}

		done, chunkErr := handleStreamLine(line, onChunk)
		if chunkErr != nil {
			return chunkErr
		}

		if done || errors.Is(err, io.EOF) {
			return nil
		}
	}
}

// handleStreamLine processes one SSE line of the form "data: {...}".
func handleStreamLine(line []byte, onChunk func(string) error) (bool, error) {
	lineStr := strings.TrimSpace(string(line))
	if !strings.HasPrefix(lineStr, "data: ") {
		return false, nil
	}

	data := strings.TrimPrefix(lineStr, "data: ")
	if data == "[DONE]" {
		return true, nil
	}

	var chatResp chatResponse
	if err := json.Unmarshal([]byte(data), &chatResp); err != nil {
		// Skip malformed chunks
		return false, nil
	}

	if chatResp.Error != nil {
		return false, fmt.Errorf("%w: %s", ErrUnavailable, chatResp.Error.Message)
	}

	if len(chatResp.Choices) > 0 && chatResp.Choices[0].Delta.Content != "" {
		if err := onChunk(chatResp.Choices[0].Delta.Content); err != nil {
			return false, err
		}
	}

	return false, nil
}
