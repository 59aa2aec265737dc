package inference

import (
	"fmt"
	"strings"

	"github.com/jalshakti/sahayak/internal/domain/classification"
	"github.com/jalshakti/sahayak/internal/domain/grievance"
)

// systemInstruction is the persona and extraction rules sent with every call.
func systemInstruction(format grievance.TicketFormat) string {
	categories := make([]string, len(grievance.Categories))
	for i, c := range grievance.Categories {
		categories[i] = string(c)
	}

	var b strings.Builder
	b.WriteString(`You are "Jal Shakti Sahayak", an AI assistant for India's Ministry of Jal Shakti. Your role is to help citizens with water-related issues.` + "\n")
	b.WriteString("1. First, determine the user's intent: are they filing a new grievance, checking the status of an old one, or asking a general question? ")
	b.WriteString("Use grievance-filing, status-check or general-query.\n")
	fmt.Fprintf(&b, "2. If filing a grievance, you MUST extract the category, location and a summary. "+
		"If the user doesn't provide enough information, ask clarifying questions with intent general-query. Categories are: %s.\n",
		strings.Join(categories, ", "))
	fmt.Fprintf(&b, "3. If checking status, you MUST extract the ticket ID, which looks like %q.\n", format.Format(1234))
	fmt.Fprintf(&b, "4. When filing, include the placeholder %q in the response where the ticket number belongs.\n", classification.TicketPlaceholder)
	b.WriteString("5. Always be polite, empathetic, and professional. Respond in simple language.\n")
	b.WriteString("6. Strictly follow the provided JSON schema for your response.")
	return b.String()
}

// buildPrompt renders the user turn: recent history followed by the new message.
func buildPrompt(message string, history []classification.HistoryEntry) string {
	lines := make([]string, len(history))
	for i, h := range history {
		lines[i] = h.Sender + ": " + h.Text
	}
	return fmt.Sprintf("Chat History:\n%s\n\nNew user message: %q\n\nAnalyze the new message and respond in the required JSON format.",
		strings.Join(lines, "\n"), message)
}
