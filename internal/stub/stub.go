// Package stub is a canned stand-in for the real Debater backend. It
// reproduces the backend's intent heuristics and response shapes without
// any model calls, so the client can be run, demoed and tested offline.
// It backs both the debaterd binary and the in-memory transport fixture.
package stub

import (
	"fmt"
	"strings"

	"debater/internal/transport"
)

// greetings and vague openers that never carry enough context to analyze.
var smallTalk = []string{
	"hi", "hello", "hey", "yo", "good morning", "good afternoon",
	"good evening", "how are you", "what's up", "thanks", "thank you",
	"help", "help me", "start", "i have an idea", "ok", "okay",
}

// Classify applies the backend's readiness heuristic: short inputs,
// greetings and vague statements are conversational; anything that reads
// like a concrete idea goes to analysis.
func Classify(idea string) transport.Intent {
	trimmed := strings.TrimSpace(idea)
	if len(trimmed) < 10 {
		return transport.IntentChat
	}

	lowered := strings.ToLower(strings.Trim(trimmed, ".!?, "))
	for _, phrase := range smallTalk {
		if lowered == phrase {
			return transport.IntentChat
		}
	}

	if len(strings.Fields(trimmed)) < 5 {
		return transport.IntentChat
	}
	return transport.IntentAnalysis
}

// Reply returns a conversational nudge toward sharing a concrete idea.
func Reply(idea string) string {
	lowered := strings.ToLower(strings.TrimSpace(idea))
	switch {
	case strings.HasPrefix(lowered, "hi") || strings.HasPrefix(lowered, "hello") || strings.HasPrefix(lowered, "hey"):
		return "Hi there! I'm ready when you are — describe an idea, a startup concept or a problem, and I'll take it apart from every angle."
	case strings.Contains(lowered, "thank"):
		return "Any time! If another idea is brewing, just describe it and I'll dig in."
	case strings.Contains(lowered, "idea"):
		return "Great — tell me about it! A sentence or two on what it does and who it's for is enough to start a full analysis."
	default:
		return "I can chat, but what I'm really good at is dissecting ideas. Give me something concrete — say, \"a marketplace for renting tools\" — and I'll run the full analysis."
	}
}

// ReportFor builds a deterministic five-field report for idea. All five
// fields are always populated.
func ReportFor(idea string) transport.Report {
	subject := strings.TrimSpace(idea)
	return transport.Report{
		Advocate: fmt.Sprintf(
			"There is real promise in %q. It addresses an underserved need, the core value proposition is easy to explain, and an early niche audience could be reached with modest marketing spend. A lean pilot would validate demand quickly.",
			subject),
		Critic: fmt.Sprintf(
			"The obvious risks of %q: incumbents can replicate the offering, unit economics are unproven, and customer acquisition may cost more than early revenue supports. Regulatory or liability questions need checking before any launch.",
			subject),
		Research: fmt.Sprintf(
			"Comparable attempts at %q show a pattern: ventures that survived focused on a narrow initial segment and expanded only after retention stabilised. Market sizing suggests starting regional rather than global.",
			subject),
		Conversational: fmt.Sprintf(
			"Here's the short version: %q is worth pursuing as a small, focused experiment. The upside is real but so are the acquisition-cost risks, so validate demand before committing serious resources.",
			subject),
		Conclusion: "Proceed with a limited pilot. Define one target segment, set a retention threshold ahead of time, and treat the first quarter purely as a demand test.",
	}
}
