// Package answer fuses match score, entity agreement and reasoning-path
// completeness into a discrete confidence level and renders the structured
// answer record, including the canonical "no data" refusal.
package answer
