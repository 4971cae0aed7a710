package llm

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/firebase/genkit/go/ai"
)

// NOTE: Для просмотра LLM запросов/ответов используй GenKit DevUI!
// Запусти: genkit start -- go run cmd/main.go
// Затем открой: http://localhost:4000

// RetryMiddleware создает middleware для автоматического retry при транспортных
// ошибках. Эти повторы вложены ПОД workflow-уровень: контроллер о них не знает,
// для него это одна попытка генерации.
func RetryMiddleware(maxAttempts int, initialDelay time.Duration) ai.ModelMiddleware {
	return func(next ai.ModelFunc) ai.ModelFunc {
		return func(ctx context.Context, req *ai.ModelRequest, cb ai.ModelStreamCallback) (*ai.ModelResponse, error) {
			var lastErr error

			for attempt := 1; attempt <= maxAttempts; attempt++ {
				resp, err := next(ctx, req, cb)
				if err == nil {
					if attempt > 1 {
						log.Printf("✅ LLM retry успешен на попытке %d/%d", attempt, maxAttempts)
					}
					return resp, nil
				}

				lastErr = err

				if attempt == maxAttempts {
					log.Printf("❌ LLM: все retry попытки исчерпаны (%d/%d): %v", attempt, maxAttempts, err)
					break
				}

				// Exponential backoff: 1s → 2s → 4s (cap at 30s)
				delay := initialDelay * time.Duration(1<<uint(attempt-1))
				if delay > 30*time.Second {
					delay = 30 * time.Second
				}

				log.Printf("⚠️ LLM ошибка на попытке %d/%d: %v. Retry через %v...",
					attempt, maxAttempts, err, delay)

				select {
				case <-ctx.Done():
					return nil, fmt.Errorf("context cancelled during retry: %w", ctx.Err())
				case <-time.After(delay):
				}
			}

			return nil, fmt.Errorf("failed after %d attempts: %w", maxAttempts, lastErr)
		}
	}
}
