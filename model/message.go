package model

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// Role identifies who produced a message in the conversation
type Role string

const (
	RoleUser Role = "user"
	RoleAI   Role = "ai"
)

// Severity is the attention tier attached to an ingredient finding.
// Stored lower-case; the zero value means no severity.
type Severity string

const (
	SeverityNone   Severity = ""
	SeverityLow    Severity = "low"
	SeverityMedium Severity = "medium"
	SeverityHigh   Severity = "high"
)

// ParseSeverity folds case and maps known aliases. Unknown values yield SeverityNone.
func ParseSeverity(s string) Severity {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "low":
		return SeverityLow
	case "medium", "moderate":
		return SeverityMedium
	case "high":
		return SeverityHigh
	default:
		return SeverityNone
	}
}

// Label returns the presentation form (upper-case) of the severity
func (s Severity) Label() string {
	return strings.ToUpper(string(s))
}

// IngredientFinding is one structured explanation unit returned by the reasoning service
type IngredientFinding struct {
	Name        string
	Severity    Severity
	WhatItIs    string
	WhyItIsUsed string
	Tradeoffs   string
	Uncertainty string
}

// AIPayload is the canonical body of an AI message
type AIPayload struct {
	Greeting          string
	Ingredients       []IngredientFinding
	OverallNutrition  string
	OverallConclusion string
}

// IsEmpty reports whether no field of the payload carries data
func (p AIPayload) IsEmpty() bool {
	return p.Greeting == "" && len(p.Ingredients) == 0 && p.OverallNutrition == "" && p.OverallConclusion == ""
}

// ErrorConclusion is the fixed apology shown when an analysis could not be completed
const ErrorConclusion = "I couldn't analyze this right now. Please try again."

// ErrorPayload returns the reserved payload used for every transport or parse failure
func ErrorPayload() AIPayload {
	return AIPayload{
		Ingredients:       []IngredientFinding{},
		OverallConclusion: ErrorConclusion,
	}
}

// IsError reports whether the payload is the reserved error payload
func (p AIPayload) IsError() bool {
	return p.OverallConclusion == ErrorConclusion && len(p.Ingredients) == 0 && p.OverallNutrition == "" && p.Greeting == ""
}

// Message represents an entry in the conversation log. Messages are never
// modified after creation.
type Message struct {
	ID        string
	Role      Role
	Timestamp time.Time
	Content   string     // role=user
	AI        *AIPayload // role=ai
}

// NewUserMessage creates a user message holding the exact submitted text
func NewUserMessage(content string) Message {
	return Message{
		ID:        uuid.New().String(),
		Role:      RoleUser,
		Timestamp: time.Now(),
		Content:   content,
	}
}

// NewAIMessage creates an AI message for the given payload
func NewAIMessage(payload AIPayload) Message {
	p := payload
	if p.Ingredients == nil {
		p.Ingredients = []IngredientFinding{}
	}
	return Message{
		ID:        uuid.New().String(),
		Role:      RoleAI,
		Timestamp: time.Now(),
		AI:        &p,
	}
}

// clone returns a deep copy so snapshots never share the AI payload slice
func (m Message) clone() Message {
	if m.AI == nil {
		return m
	}
	p := *m.AI
	p.Ingredients = append([]IngredientFinding(nil), m.AI.Ingredients...)
	if p.Ingredients == nil {
		p.Ingredients = []IngredientFinding{}
	}
	m.AI = &p
	return m
}
