package service

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/ahmednasr/autoguide-ai/server/internal/models"
)

// ChatHistoryWindow is how many trailing chat messages go into a follow-up prompt.
const ChatHistoryWindow = 10

func buildGuidePrompt(v models.Vehicle, question string) string {
	return fmt.Sprintf(`
You are an automotive maintenance assistant.

Vehicle: %s
User question: %s

Return a clear, structured maintenance guide with these sections (use headings exactly):

## Summary
## Safety Warnings
## Tools Needed
## Parts / Supplies
## Step-by-step Instructions
## Common Mistakes to Avoid
## Estimated Time + Difficulty
## When to Stop and Call a Mechanic

Rules:
- Keep it practical and beginner-friendly.
- Avoid dangerous advice.
- If unsure, say what to verify in the owner's manual or with a mechanic.
`, v, question)
}

// buildChatPrompt renders the follow-up prompt. chat must already contain
// the new user message.
func buildChatPrompt(g models.Guide, chat []models.ChatMessage, followUp string) string {
	if len(chat) > ChatHistoryWindow {
		chat = chat[len(chat)-ChatHistoryWindow:]
	}
	lines := make([]string, 0, len(chat))
	for _, m := range chat {
		lines = append(lines, fmt.Sprintf("%s: %s", strings.ToUpper(m.Role), m.Text))
	}
	history := strings.Join(lines, "\n")
	if history == "" {
		history = "(none)"
	}

	return fmt.Sprintf(`
You are a helpful automotive assistant.
Answer using ONLY the provided context. If context is missing, ask a clarifying question.

Vehicle: %s

Original question: %s

Original guide answer:
%s

Recent chat history:
%s

User follow-up question:
%s

Reply clearly and concisely. Use bullet points when helpful.
`, g.Vehicle, g.Question, g.AIAnswer, history, followUp)
}

// buildStructuredPrompt asks for the StructuredGuide JSON shape. catalog
// entries are handed to the model as reference data.
func buildStructuredPrompt(v models.Vehicle, question string, catalog []models.ServiceCatalogEntry) string {
	var ref strings.Builder
	if len(catalog) == 0 {
		ref.WriteString("(none)")
	}
	for _, e := range catalog {
		b, err := json.Marshal(struct {
			Service string        `json:"service"`
			Parts   []models.Part `json:"parts"`
			Tools   []models.Tool `json:"tools"`
		}{e.Service, e.Parts, e.Tools})
		if err != nil {
			continue
		}
		ref.Write(b)
		ref.WriteByte('\n')
	}

	return fmt.Sprintf(`
You are an automotive maintenance assistant.

Vehicle: %s
User question: %s

Reference parts and tools (use them when relevant and list their "service" keys in sourcesUsed):
%s
Respond with a single JSON object and nothing else, using exactly this shape:
{
  "title": string,
  "vehicle": {"make": string, "model": string, "year": string},
  "difficulty": "Easy" | "Medium" | "Hard",
  "warnings": [string],
  "tools": [{"name": string, "notes": string}],
  "parts": [{"name": string, "qty": number, "notes": string}],
  "steps": [{"step": number, "text": string, "tips": [string]}],
  "notes": [string],
  "sourcesUsed": [string]
}

Rules:
- Keep it practical and beginner-friendly.
- Avoid dangerous advice.
- If unsure, say what to verify in the owner's manual or with a mechanic.
`, v, question, ref.String())
}
