package ui

import (
	"fmt"
	"strings"

	"ingredi/model"
)

// payloadText is the clipboard form of one analysis
func payloadText(p *model.AIPayload) string {
	return stripANSI(renderAICard(p, 80, plainSection))
}

// conversationText is the clipboard form of the whole log
func conversationText(messages []model.Message) string {
	var b strings.Builder
	for _, msg := range messages {
		role := "You"
		body := msg.Content
		if msg.Role == model.RoleAI {
			role = "ingredi"
			body = payloadText(msg.AI)
		}
		b.WriteString(fmt.Sprintf("[%s] %s:\n%s\n\n", msg.Timestamp.Format("15:04"), role, body))
	}
	return strings.TrimRight(b.String(), "\n") + "\n"
}
