package web

import (
	"github.com/BetterCallFirewall/Certscope/internal/websocket"
	"github.com/BetterCallFirewall/Certscope/internal/workflow"
)

// HubNotifier транслирует прогресс workflow в websocket события для UI
type HubNotifier struct {
	hub *websocket.Hub
}

func NewHubNotifier(hub *websocket.Hub) *HubNotifier {
	return &HubNotifier{hub: hub}
}

func (n *HubNotifier) OnAttempt(attempt, maxAttempts int) {
	n.hub.BroadcastEvent("progress", map[string]interface{}{
		"stage":        "generating",
		"attempt":      attempt,
		"max_attempts": maxAttempts,
	})
}

func (n *HubNotifier) OnValidation(valid bool, feedback string) {
	n.hub.BroadcastEvent("progress", map[string]interface{}{
		"stage":    "validating",
		"is_valid": valid,
		"feedback": feedback,
	})
}

func (n *HubNotifier) OnFinish(state workflow.State, st *workflow.WorkflowState) {
	n.hub.BroadcastEvent("progress", map[string]interface{}{
		"stage":    state.String(),
		"attempts": st.AttemptCount,
	})
}
