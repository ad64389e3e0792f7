package graph_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vietlaw/trafficqa/pkg/graph"
	"github.com/vietlaw/trafficqa/pkg/types"
)

// testRecords is a small corpus exercising shared law articles, shared
// measures and keyword overlap between behaviors.
func testRecords() []types.ViolationRecord {
	return []types.ViolationRecord{
		{
			ID:                 "vd001",
			Description:        "Vượt đèn đỏ khi tham gia giao thông",
			Category:           "đèn tín hiệu",
			FineMin:            800000,
			FineMax:            1000000,
			AdditionalMeasures: []string{"Tước giấy phép lái xe từ 1 đến 3 tháng"},
			LegalBasis:         types.LegalBasis{Document: "Nghị định 100/2019/NĐ-CP", Article: "Điều 6"},
			Severity:           "medium",
			Keywords:           []string{"vượt", "đèn đỏ", "tín hiệu"},
			VehicleTypes:       []string{"xe máy"},
		},
		{
			ID:          "vd002",
			Description: "Không chấp hành hiệu lệnh của đèn tín hiệu giao thông",
			Category:    "đèn tín hiệu",
			FineMin:     4000000,
			FineMax:     6000000,
			AdditionalMeasures: []string{
				"Tước giấy phép lái xe từ 1 đến 3 tháng",
				"Tạm giữ phương tiện 07 ngày",
			},
			LegalBasis:   types.LegalBasis{Document: "Nghị định 100/2019/NĐ-CP", Article: "Điều 6"},
			Severity:     "medium",
			Keywords:     []string{"đèn đỏ", "tín hiệu", "chấp hành"},
			VehicleTypes: []string{"ô tô"},
		},
		{
			ID:           "vd003",
			Description:  "Không đội mũ bảo hiểm khi điều khiển xe máy",
			Category:     "mũ bảo hiểm",
			FineMin:      400000,
			FineMax:      600000,
			LegalBasis:   types.LegalBasis{Document: "Nghị định 100/2019/NĐ-CP", Article: "Điều 7"},
			Severity:     "low",
			Keywords:     []string{"mũ bảo hiểm", "đội"},
			VehicleTypes: []string{"xe máy"},
		},
		{
			ID:           "vd004",
			Description:  "Vượt đèn đỏ gây tai nạn giao thông",
			Category:     "đèn tín hiệu",
			FineMin:      10000000,
			FineMax:      12000000,
			LegalBasis:   types.LegalBasis{Document: "Nghị định 100/2019/NĐ-CP", Article: "Điều 6"},
			Severity:     "high",
			Keywords:     []string{"vượt", "đèn đỏ", "tai nạn"},
			VehicleTypes: []string{"xe máy"},
		},
	}
}

func buildTestStore(t *testing.T) *graph.Store {
	t.Helper()
	store := graph.NewStore()
	require.NoError(t, store.Build(testRecords()))
	return store
}

func TestBuildCounts(t *testing.T) {
	store := buildTestStore(t)
	stats := store.Stats()

	assert.Equal(t, 4, stats.NodesByType[types.BehaviorNodeType])
	assert.Equal(t, 4, stats.NodesByType[types.PenaltyNodeType])
	// Điều 6 is cited by three records but yields one node
	assert.Equal(t, 2, stats.NodesByType[types.LawArticleNodeType])
	// the revocation measure is shared between vd001 and vd002
	assert.Equal(t, 2, stats.NodesByType[types.AdditionalMeasureNodeType])
	assert.Equal(t, 2, stats.NodesByType[types.VehicleTypeNodeType])
	assert.Equal(t, 14, stats.TotalNodes)

	assert.Equal(t, 4, stats.EdgesByType[types.LeadsToPenaltyEdge])
	assert.Equal(t, 4, stats.EdgesByType[types.BasedOnLawEdge])
	assert.Equal(t, 3, stats.EdgesByType[types.HasAdditionalEdge])
	assert.Equal(t, 4, stats.EdgesByType[types.AppliesToVehicleEdge])
	// two similar pairs, each stored in both directions
	assert.Equal(t, 4, stats.EdgesByType[types.SimilarToEdge])
	assert.Equal(t, 19, stats.TotalEdges)
}

func TestEveryBehaviorLeadsToPenalty(t *testing.T) {
	store := buildTestStore(t)

	for _, id := range store.BehaviorIDs() {
		neighbors, err := store.Neighbors(id, types.LeadsToPenaltyEdge, types.Outgoing)
		require.NoError(t, err)
		require.NotEmpty(t, neighbors, "behavior %s has no penalty", id)
		assert.Equal(t, types.PenaltyNodeType, neighbors[0].Type)
	}
}

func TestSimilarToSymmetric(t *testing.T) {
	store := buildTestStore(t)

	w1, ok := store.SimilarityWeight("behavior_vd001", "behavior_vd002")
	require.True(t, ok)
	w2, ok := store.SimilarityWeight("behavior_vd002", "behavior_vd001")
	require.True(t, ok)
	assert.Equal(t, w1, w2)
	assert.InDelta(t, 0.5, w1, 1e-9)

	// vd003 shares no keywords with anything
	_, ok = store.SimilarityWeight("behavior_vd003", "behavior_vd001")
	assert.False(t, ok)
}

func TestLawArticleDeduplicated(t *testing.T) {
	store := buildTestStore(t)

	law1, err := store.Neighbors("penalty_vd001", types.BasedOnLawEdge, types.Outgoing)
	require.NoError(t, err)
	law2, err := store.Neighbors("penalty_vd002", types.BasedOnLawEdge, types.Outgoing)
	require.NoError(t, err)
	require.Len(t, law1, 1)
	require.Len(t, law2, 1)
	assert.Equal(t, law1[0].ID, law2[0].ID)
	assert.Equal(t, "Điều 6", law1[0].Article)

	law3, err := store.Neighbors("penalty_vd003", types.BasedOnLawEdge, types.Outgoing)
	require.NoError(t, err)
	require.Len(t, law3, 1)
	assert.NotEqual(t, law1[0].ID, law3[0].ID)
}

func TestNeighborsInsertionOrder(t *testing.T) {
	store := buildTestStore(t)

	measures, err := store.Neighbors("penalty_vd002", types.HasAdditionalEdge, types.Outgoing)
	require.NoError(t, err)
	require.Len(t, measures, 2)
	assert.Equal(t, "Tước giấy phép lái xe từ 1 đến 3 tháng", measures[0].Label)
	assert.Equal(t, "Tạm giữ phương tiện 07 ngày", measures[1].Label)
}

func TestSimilarBehaviorsOrdering(t *testing.T) {
	store := buildTestStore(t)

	// vd002 and vd004 both sit at weight 0.5; the tie breaks by node ID
	similar, err := store.SimilarBehaviors("behavior_vd001", 0)
	require.NoError(t, err)
	require.Len(t, similar, 2)
	assert.Equal(t, "behavior_vd002", similar[0].Node.ID)
	assert.Equal(t, "behavior_vd004", similar[1].Node.ID)

	limited, err := store.SimilarBehaviors("behavior_vd001", 1)
	require.NoError(t, err)
	require.Len(t, limited, 1)
	assert.Equal(t, "behavior_vd002", limited[0].Node.ID)

	_, err = store.SimilarBehaviors("behavior_missing", 0)
	assert.ErrorIs(t, err, graph.ErrNotFound)
}

func TestBuildDeterministic(t *testing.T) {
	first := graph.NewStore()
	require.NoError(t, first.Build(testRecords()))
	second := graph.NewStore()
	require.NoError(t, second.Build(testRecords()))

	assert.Equal(t, first.Stats(), second.Stats())
	assert.Equal(t, first.BehaviorIDs(), second.BehaviorIDs())
}

func TestBuildTwiceFails(t *testing.T) {
	store := graph.NewStore()
	require.NoError(t, store.Build(testRecords()))
	assert.ErrorIs(t, store.Build(testRecords()), graph.ErrAlreadyBuilt)
}

func TestBuildRejectsMalformedRecords(t *testing.T) {
	base := types.ViolationRecord{
		ID:          "vd100",
		Description: "Chạy quá tốc độ quy định",
		FineMin:     300000,
		FineMax:     400000,
	}

	tests := []struct {
		name   string
		mutate func(*types.ViolationRecord)
	}{
		{
			name:   "missing id",
			mutate: func(r *types.ViolationRecord) { r.ID = "" },
		},
		{
			name: "no penalty",
			mutate: func(r *types.ViolationRecord) {
				r.FineMin, r.FineMax, r.PenaltyText = 0, 0, ""
			},
		},
		{
			name:   "inverted fine range",
			mutate: func(r *types.ViolationRecord) { r.FineMin, r.FineMax = 400000, 300000 },
		},
		{
			name:   "unknown vehicle type",
			mutate: func(r *types.ViolationRecord) { r.VehicleTypes = []string{"xe tăng"} },
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			record := base
			tt.mutate(&record)

			store := graph.NewStore()
			err := store.Build([]types.ViolationRecord{record})
			require.Error(t, err)

			var buildErr *graph.BuildError
			assert.True(t, errors.As(err, &buildErr))
		})
	}
}

func TestBuildRejectsDuplicateID(t *testing.T) {
	records := []types.ViolationRecord{
		{ID: "vd200", Description: "Đi ngược chiều", FineMin: 1000000, FineMax: 2000000},
		{ID: "vd200", Description: "Đi ngược chiều trên cao tốc", FineMin: 16000000, FineMax: 18000000},
	}

	store := graph.NewStore()
	err := store.Build(records)
	require.Error(t, err)

	var buildErr *graph.BuildError
	require.True(t, errors.As(err, &buildErr))
	assert.Equal(t, "vd200", buildErr.RecordID)
}

func TestGetNodeNotFound(t *testing.T) {
	store := buildTestStore(t)

	_, err := store.GetNode("behavior_unknown")
	assert.ErrorIs(t, err, graph.ErrNotFound)

	node, err := store.GetNode("behavior_vd001")
	require.NoError(t, err)
	assert.Equal(t, types.BehaviorNodeType, node.Type)
	assert.Equal(t, "vd001", node.RecordID)
}

func TestBehaviorText(t *testing.T) {
	store := buildTestStore(t)

	text, err := store.BehaviorText("behavior_vd001")
	require.NoError(t, err)
	assert.Contains(t, text, "Vượt đèn đỏ khi tham gia giao thông")
	assert.Contains(t, text, "tín hiệu")
}

func TestFindNodesByKeywords(t *testing.T) {
	store := buildTestStore(t)

	matched := store.FindNodesByKeywords([]string{"mũ bảo hiểm"})
	require.Len(t, matched, 1)
	assert.Equal(t, "behavior_vd003", matched[0].ID)

	matched = store.FindNodesByKeywords([]string{"đèn đỏ"})
	assert.Len(t, matched, 3)

	assert.Empty(t, store.FindNodesByKeywords([]string{"đỗ xe"}))
	assert.Empty(t, store.FindNodesByKeywords(nil))
}

func TestDerivedKeywordsWhenMissing(t *testing.T) {
	records := []types.ViolationRecord{{
		ID:          "vd300",
		Description: "Điều khiển xe máy không có gương chiếu hậu",
		FineMin:     100000,
		FineMax:     200000,
	}}

	store := graph.NewStore()
	require.NoError(t, store.Build(records))

	node, err := store.GetNode("behavior_vd300")
	require.NoError(t, err)
	assert.NotEmpty(t, node.Keywords)
	// stopwords and short words are skipped
	assert.NotContains(t, node.Keywords, "có")
	assert.Contains(t, node.Keywords, "gương")
}
