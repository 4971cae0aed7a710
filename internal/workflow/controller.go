package workflow

import (
	"context"
	"fmt"
	"log"

	"github.com/BetterCallFirewall/Certscope/internal/models"
)

// ═══════════════════════════════════════════════════════════════════════════════
// Summary Workflow Controller - Generate → Validate retry loop
// ═══════════════════════════════════════════════════════════════════════════════

// Generator produces one summary attempt. Implemented by llm.Provider.
type Generator interface {
	GenerateSummary(ctx context.Context, req *models.SummaryRequest) (*models.SummaryRecord, error)
}

// Notifier observes workflow progress. All methods are optional to act on;
// the controller never depends on what observers do with the events.
type Notifier interface {
	OnAttempt(attempt, maxAttempts int)
	OnValidation(valid bool, feedback string)
	OnFinish(state State, st *WorkflowState)
}

// ExhaustedError reports that the attempt ceiling was reached without a
// valid record. LastFeedback carries the final validator output so the
// caller can see why the last attempt was rejected.
type ExhaustedError struct {
	Attempts     int
	LastFeedback string
}

func (e *ExhaustedError) Error() string {
	if e.LastFeedback != "" {
		return fmt.Sprintf("summary generation failed after %d attempts: %s", e.Attempts, e.LastFeedback)
	}
	return fmt.Sprintf("summary generation failed after %d attempts", e.Attempts)
}

const defaultMaxAttempts = 3

// Controller drives the generate/validate state machine. One Controller can
// serve many runs; each run owns its own WorkflowState exclusively.
type Controller struct {
	generator   Generator
	maxAttempts int
	notifier    Notifier
}

type Option func(*Controller)

// WithMaxAttempts sets the total attempt ceiling (first attempt included)
func WithMaxAttempts(n int) Option {
	return func(c *Controller) {
		if n > 0 {
			c.maxAttempts = n
		}
	}
}

// WithNotifier attaches a progress observer
func WithNotifier(n Notifier) Option {
	return func(c *Controller) {
		c.notifier = n
	}
}

func NewController(gen Generator, opts ...Option) *Controller {
	c := &Controller{
		generator:   gen,
		maxAttempts: defaultMaxAttempts,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Run executes one workflow for the given asset and returns the first valid
// summary, or an error once the attempt budget is exhausted.
func (c *Controller) Run(ctx context.Context, asset models.AssetRecord, assetType models.AssetType) (*models.SummaryRecord, error) {
	st, err := c.RunState(ctx, asset, assetType)
	if err != nil {
		return nil, err
	}
	return st.Summary, nil
}

// RunState is Run with the final WorkflowState exposed, for callers that
// need the attempt count (report building, web layer).
func (c *Controller) RunState(ctx context.Context, asset models.AssetRecord, assetType models.AssetType) (*WorkflowState, error) {
	if !assetType.Valid() {
		return nil, fmt.Errorf("unknown asset type %q (expected web|host)", assetType)
	}

	st := &WorkflowState{
		Asset:     asset,
		AssetType: assetType,
	}
	state := StateGenerating

	for {
		if err := ctx.Err(); err != nil {
			return st, fmt.Errorf("workflow cancelled: %w", err)
		}

		switch state {

		case StateGenerating:
			attempt := st.AttemptCount + 1
			log.Printf("🔄 Generating summary (attempt %d/%d) for asset %s", attempt, c.maxAttempts, asset.ID)
			if c.notifier != nil {
				c.notifier.OnAttempt(attempt, c.maxAttempts)
			}

			summary, err := c.generator.GenerateSummary(ctx, &models.SummaryRequest{
				Asset:              asset,
				AssetType:          assetType,
				ValidationFeedback: st.ValidationFeedback,
			})
			st.AttemptCount++

			if err != nil {
				// A failed generation is an invalid attempt: the error text
				// feeds back into the next prompt, or propagates when the
				// budget is spent.
				if st.AttemptCount >= c.maxAttempts {
					if c.notifier != nil {
						c.notifier.OnFinish(StateFailed, st)
					}
					return st, fmt.Errorf("generation failed on final attempt %d: %w", st.AttemptCount, err)
				}
				log.Printf("⚠️ Generation attempt %d failed: %v. Retrying...", st.AttemptCount, err)
				st.Summary = nil
				st.IsValid = false
				st.ValidationFeedback = fmt.Sprintf("Previous attempt produced no structured output: %v", err)
				continue
			}

			st.Summary = summary
			state = StateValidating

		case StateValidating:
			log.Printf("🔍 Validating summary for asset %s", asset.ID)
			valid, feedback := Validate(st.Summary)
			st.IsValid = valid
			st.ValidationFeedback = feedback
			if c.notifier != nil {
				c.notifier.OnValidation(valid, feedback)
			}

			switch {
			case valid:
				state = StateSucceeded
			case st.AttemptCount < c.maxAttempts:
				log.Printf("⚠️ Validation rejected attempt %d:\n%s", st.AttemptCount, feedback)
				state = StateGenerating
			default:
				state = StateFailed
			}

		case StateSucceeded:
			log.Printf("✅ Summary generation completed in %d attempt(s)", st.AttemptCount)
			if c.notifier != nil {
				c.notifier.OnFinish(StateSucceeded, st)
			}
			return st, nil

		case StateFailed:
			log.Printf("❌ Summary generation failed after %d attempts", st.AttemptCount)
			if c.notifier != nil {
				c.notifier.OnFinish(StateFailed, st)
			}
			return st, &ExhaustedError{
				Attempts:     st.AttemptCount,
				LastFeedback: st.ValidationFeedback,
			}
		}
	}
}
