package answer

import (
	"time"

	"github.com/vietlaw/trafficqa/pkg/types"
)

// NoDataMessage is the canonical refusal returned when no candidate cleared
// the similarity threshold. No legal content accompanies it, ever.
const NoDataMessage = "Không biết / Không có dữ liệu. Hệ thống không tìm thấy thông tin phù hợp với câu hỏi của bạn."

// noDataSuggestions accompany the refusal.
var noDataSuggestions = []string{
	"Hãy thử diễn đạt câu hỏi theo cách khác",
	"Cung cấp thêm chi tiết về hành vi vi phạm",
	"Sử dụng từ khóa chính xác hơn",
}

// Thresholds are the tunable confidence cut-offs. They are empirically tuned
// constants, carried in configuration rather than code.
type Thresholds struct {
	High   float64 // match score for high confidence
	Medium float64 // match score for medium confidence
}

// DefaultThresholds returns the tuned defaults.
func DefaultThresholds() Thresholds {
	return Thresholds{High: 0.8, Medium: 0.6}
}

// Synthesizer fuses the pipeline's signals into a confidence level and
// renders the structured answer. Rendering is a pure function of the query
// context; it has no side effects and holds no state beyond the thresholds.
type Synthesizer struct {
	thresholds Thresholds
}

// NewSynthesizer creates a synthesizer with the given thresholds.
func NewSynthesizer(thresholds Thresholds) *Synthesizer {
	return &Synthesizer{thresholds: thresholds}
}

// Level maps the top match score, entity agreement and reasoning-path
// completeness to a discrete confidence level.
func (s *Synthesizer) Level(score float64, entityAgreement, pathComplete bool) types.Confidence {
	switch {
	case score >= s.thresholds.High && pathComplete:
		return types.ConfidenceHigh
	case score >= s.thresholds.High:
		return types.ConfidenceMedium
	case score >= s.thresholds.Medium && pathComplete && entityAgreement:
		return types.ConfidenceMedium
	default:
		return types.ConfidenceLow
	}
}

// Render produces the final answer from a completed query context. An empty
// candidate list yields the canonical no-data answer with confidence none.
func (s *Synthesizer) Render(qc *types.QueryContext) *types.Answer {
	a := &types.Answer{
		RequestID:      qc.RequestID,
		Question:       qc.Query,
		Intent:         qc.Intent,
		Entities:       qc.Entities,
		ProcessingTime: time.Since(qc.StartedAt),
	}

	if len(qc.Candidates) == 0 {
		a.Confidence = types.ConfidenceNone
		a.Message = NoDataMessage
		a.Suggestions = noDataSuggestions
		return a
	}

	top := qc.Candidates[0]
	a.MatchScore = top.Score

	entityAgreement := vehicleAgreement(qc.Entities, top)
	pathComplete := false

	if qc.Intent == types.SimilarCasesIntent {
		a.SimilarCases = qc.Similar
		pathComplete = len(qc.Similar) > 0
		if len(qc.Paths) > 0 {
			s.fillFromPath(a, qc.Paths[0])
		}
	} else if len(qc.Paths) > 0 {
		path := qc.Paths[0]
		pathComplete = path.Complete()
		s.fillFromPath(a, path)
	}

	a.Confidence = s.Level(top.Score, entityAgreement, pathComplete)

	// lexical fallback scores are not calibrated cosine similarities
	if qc.KeywordOnly && a.Confidence != types.ConfidenceNone {
		a.Confidence = types.ConfidenceLow
	}

	return a
}

// fillFromPath copies behavior, penalty, measure and citation content out of
// a reasoning path into the answer.
func (s *Synthesizer) fillFromPath(a *types.Answer, path *types.ReasoningPath) {
	for _, node := range path.Nodes {
		switch node.Type {
		case types.BehaviorNodeType:
			a.Behavior = node.Label
			a.Category = node.Category
		case types.PenaltyNodeType:
			if a.Penalty == nil {
				a.Penalty = &types.PenaltyInfo{
					FineMin:  node.FineMin,
					FineMax:  node.FineMax,
					Currency: node.Currency,
					Text:     node.PenaltyText,
				}
			}
		case types.AdditionalMeasureNodeType:
			a.AdditionalMeasures = append(a.AdditionalMeasures, node.Label)
		case types.LawArticleNodeType:
			a.Citations = append(a.Citations, types.Citation{
				Article:  node.Article,
				Document: node.DocumentSource,
			})
		}
	}
}

// vehicleAgreement reports whether the extracted vehicle entities, if any,
// agree with the top candidate. No vehicle entity means nothing to disagree
// with.
func vehicleAgreement(entities []types.Entity, top types.Candidate) bool {
	for _, e := range entities {
		if e.Kind == types.VehicleEntity {
			return top.VehicleMatch
		}
	}
	return true
}
