package blueprint

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/blues/ideachain/internal/config"
	"github.com/blues/ideachain/internal/logger"
)

// Generator 把一段创意描述交给上游AI,换回结构化蓝图文档
//
// 引擎只把生成器当成不透明的上游: 不重试、不退避,失败就报通用错误。
type Generator interface {
	Generate(ctx context.Context, text string) (string, error)
}

// ErrGenerateFailed 蓝图生成失败的通用错误,不向调用方暴露上游细节
var ErrGenerateFailed = errors.New("blueprint generation failed")

const systemPrompt = "You are a product architect. Turn the user's idea into a structured blueprint with sections: Overview, Core Features, Technical Approach, Milestones. Answer in Markdown."

// HTTPGenerator 基于 chat-completions 协议的生成器实现
type HTTPGenerator struct {
	apiURL     string
	apiKey     string
	model      string
	httpClient *http.Client
}

// New 创建生成器,未启用时返回 nil
func New(cfg config.BlueprintConfig) *HTTPGenerator {
	if !cfg.Enabled {
		return nil
	}
	timeout := time.Duration(cfg.Timeout) * time.Second
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	apiURL := cfg.ApiUrl
	if apiURL == "" {
		apiURL = "https://api.openai.com/v1/chat/completions"
	}
	return &HTTPGenerator{
		apiURL:     apiURL,
		apiKey:     cfg.ApiKey,
		model:      cfg.Model,
		httpClient: &http.Client{Timeout: timeout},
	}
}

// Generate 生成蓝图
func (g *HTTPGenerator) Generate(ctx context.Context, text string) (string, error) {
	reqBody := map[string]interface{}{
		"model": g.model,
		"messages": []map[string]string{
			{"role": "system", "content": systemPrompt},
			{"role": "user", "content": text},
		},
	}
	b, _ := json.Marshal(reqBody)

	req, err := http.NewRequestWithContext(ctx, "POST", g.apiURL, bytes.NewBuffer(b))
	if err != nil {
		logger.Error("blueprint: build request failed: %v", err)
		return "", ErrGenerateFailed
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+g.apiKey)

	resp, err := g.httpClient.Do(req)
	if err != nil {
		logger.Error("blueprint: upstream request failed: %v", err)
		return "", ErrGenerateFailed
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		logger.Error("blueprint: read response failed: %v", err)
		return "", ErrGenerateFailed
	}
	if resp.StatusCode != http.StatusOK {
		logger.Error("blueprint: upstream returned %d: %s", resp.StatusCode, string(body))
		return "", ErrGenerateFailed
	}

	var result struct {
		Choices []struct {
			Message struct {
				Content string `json:"content"`
			} `json:"message"`
		} `json:"choices"`
	}
	if err := json.Unmarshal(body, &result); err != nil || len(result.Choices) == 0 {
		logger.Error("blueprint: unexpected upstream response: %s", string(body))
		return "", ErrGenerateFailed
	}

	return result.Choices[0].Message.Content, nil
}
