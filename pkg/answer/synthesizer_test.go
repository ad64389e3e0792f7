package answer_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vietlaw/trafficqa/pkg/answer"
	"github.com/vietlaw/trafficqa/pkg/types"
)

func TestLevel(t *testing.T) {
	s := answer.NewSynthesizer(answer.DefaultThresholds())

	tests := []struct {
		name            string
		score           float64
		entityAgreement bool
		pathComplete    bool
		want            types.Confidence
	}{
		{"high score complete path", 0.9, true, true, types.ConfidenceHigh},
		{"high score exactly at boundary", 0.8, true, true, types.ConfidenceHigh},
		{"high score incomplete path", 0.9, true, false, types.ConfidenceMedium},
		{"high score no agreement still high", 0.85, false, true, types.ConfidenceHigh},
		{"medium score complete and agreeing", 0.7, true, true, types.ConfidenceMedium},
		{"medium boundary complete and agreeing", 0.6, true, true, types.ConfidenceMedium},
		{"medium score without agreement", 0.7, false, true, types.ConfidenceLow},
		{"medium score incomplete path", 0.7, true, false, types.ConfidenceLow},
		{"low score", 0.5, true, true, types.ConfidenceLow},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := s.Level(tt.score, tt.entityAgreement, tt.pathComplete)
			assert.Equal(t, tt.want, got)
		})
	}
}

func baseContext() *types.QueryContext {
	return &types.QueryContext{
		RequestID: "req-1",
		Query:     "Vượt đèn đỏ phạt bao nhiêu?",
		Intent:    types.PenaltyInquiryIntent,
		StartedAt: time.Now(),
	}
}

func fullPath() *types.ReasoningPath {
	return &types.ReasoningPath{
		BehaviorID: "behavior_vd001",
		Nodes: []*types.Node{
			{ID: "behavior_vd001", Type: types.BehaviorNodeType, Label: "Vượt đèn đỏ", Category: "đèn tín hiệu"},
			{ID: "penalty_vd001", Type: types.PenaltyNodeType, FineMin: 800000, FineMax: 1000000, Currency: "VND"},
			{ID: "law_dieu6", Type: types.LawArticleNodeType, Article: "Điều 6", DocumentSource: "Nghị định 100/2019/NĐ-CP"},
			{ID: "measure_tuoc", Type: types.AdditionalMeasureNodeType, Label: "Tước giấy phép lái xe"},
		},
	}
}

func TestRenderNoData(t *testing.T) {
	s := answer.NewSynthesizer(answer.DefaultThresholds())

	qc := baseContext()
	a := s.Render(qc)

	assert.Equal(t, types.ConfidenceNone, a.Confidence)
	assert.False(t, a.HasData())
	assert.Equal(t, answer.NoDataMessage, a.Message)
	assert.NotEmpty(t, a.Suggestions)
	// a refusal never carries legal content
	assert.Empty(t, a.Behavior)
	assert.Nil(t, a.Penalty)
	assert.Empty(t, a.Citations)
	assert.Equal(t, "req-1", a.RequestID)
}

func TestRenderFillsAnswerFromPath(t *testing.T) {
	s := answer.NewSynthesizer(answer.DefaultThresholds())

	qc := baseContext()
	qc.Candidates = []types.Candidate{{BehaviorID: "behavior_vd001", Score: 0.92}}
	qc.Paths = []*types.ReasoningPath{fullPath()}

	a := s.Render(qc)

	assert.Equal(t, types.ConfidenceHigh, a.Confidence)
	assert.True(t, a.HasData())
	assert.Equal(t, "Vượt đèn đỏ", a.Behavior)
	assert.Equal(t, "đèn tín hiệu", a.Category)
	require.NotNil(t, a.Penalty)
	assert.Equal(t, int64(800000), a.Penalty.FineMin)
	assert.Equal(t, int64(1000000), a.Penalty.FineMax)
	require.Len(t, a.Citations, 1)
	assert.Equal(t, "Điều 6", a.Citations[0].Article)
	assert.Equal(t, []string{"Tước giấy phép lái xe"}, a.AdditionalMeasures)
	assert.InDelta(t, 0.92, a.MatchScore, 1e-9)
}

func TestRenderIncompletePathLowersConfidence(t *testing.T) {
	s := answer.NewSynthesizer(answer.DefaultThresholds())

	path := fullPath()
	path.Missing = []types.NodeType{types.AdditionalMeasureNodeType}

	qc := baseContext()
	qc.Candidates = []types.Candidate{{BehaviorID: "behavior_vd001", Score: 0.92}}
	qc.Paths = []*types.ReasoningPath{path}

	a := s.Render(qc)
	assert.Equal(t, types.ConfidenceMedium, a.Confidence)
}

func TestRenderVehicleDisagreementLowersConfidence(t *testing.T) {
	s := answer.NewSynthesizer(answer.DefaultThresholds())

	qc := baseContext()
	qc.Entities = []types.Entity{{Kind: types.VehicleEntity, Text: "xe máy", Canonical: "motorcycle"}}
	// medium-score candidate whose vehicle edges do not agree
	qc.Candidates = []types.Candidate{{BehaviorID: "behavior_vd001", Score: 0.7, VehicleMatch: false}}
	qc.Paths = []*types.ReasoningPath{fullPath()}

	a := s.Render(qc)
	assert.Equal(t, types.ConfidenceLow, a.Confidence)

	// with agreement the same score is medium
	qc.Candidates[0].VehicleMatch = true
	a = s.Render(qc)
	assert.Equal(t, types.ConfidenceMedium, a.Confidence)
}

func TestRenderKeywordOnlyCapsConfidence(t *testing.T) {
	s := answer.NewSynthesizer(answer.DefaultThresholds())

	qc := baseContext()
	qc.KeywordOnly = true
	qc.Candidates = []types.Candidate{{BehaviorID: "behavior_vd001", Score: 1.0}}
	qc.Paths = []*types.ReasoningPath{fullPath()}

	a := s.Render(qc)
	assert.Equal(t, types.ConfidenceLow, a.Confidence)
}

func TestRenderSimilarCases(t *testing.T) {
	s := answer.NewSynthesizer(answer.DefaultThresholds())

	qc := baseContext()
	qc.Intent = types.SimilarCasesIntent
	qc.Candidates = []types.Candidate{{BehaviorID: "behavior_vd001", Score: 0.9}}
	qc.Paths = []*types.ReasoningPath{fullPath()}
	qc.Similar = []types.SimilarCase{
		{BehaviorID: "behavior_vd004", Description: "Vượt đèn đỏ gây tai nạn", Weight: 0.5},
	}

	a := s.Render(qc)
	require.Len(t, a.SimilarCases, 1)
	assert.Equal(t, "behavior_vd004", a.SimilarCases[0].BehaviorID)
	assert.Equal(t, types.ConfidenceHigh, a.Confidence)
}

func TestRenderSimilarCasesEmptyNeighborhood(t *testing.T) {
	s := answer.NewSynthesizer(answer.DefaultThresholds())

	qc := baseContext()
	qc.Intent = types.SimilarCasesIntent
	qc.Candidates = []types.Candidate{{BehaviorID: "behavior_vd001", Score: 0.9}}
	qc.Paths = []*types.ReasoningPath{fullPath()}

	a := s.Render(qc)
	assert.Empty(t, a.SimilarCases)
	// an isolated behavior cannot support a confident similar-cases answer
	assert.Equal(t, types.ConfidenceMedium, a.Confidence)
}

func TestCustomThresholds(t *testing.T) {
	s := answer.NewSynthesizer(answer.Thresholds{High: 0.95, Medium: 0.9})

	assert.Equal(t, types.ConfidenceMedium, s.Level(0.92, true, true))
	assert.Equal(t, types.ConfidenceLow, s.Level(0.85, true, true))
	assert.Equal(t, types.ConfidenceHigh, s.Level(0.96, true, true))
}
