package graph

import (
	"fmt"
	"strings"

	"github.com/vietlaw/trafficqa/pkg/types"
)

// similarityFloor is the minimum keyword Jaccard similarity for two behaviors
// to be linked by a similar_to edge pair.
const similarityFloor = 0.3

// vehicleTaxonomy maps the vehicle names appearing in ETL records to their
// canonical values. Records referencing a vehicle outside this taxonomy fail
// the build.
var vehicleTaxonomy = map[string]string{
	"xe máy":     "motorcycle",
	"xe gắn máy": "motorcycle",
	"motorcycle": "motorcycle",
	"ô tô":       "car",
	"xe hơi":     "car",
	"car":        "car",
	"xe tải":     "truck",
	"truck":      "truck",
	"xe buýt":    "bus",
	"bus":        "bus",
	"xe đạp":     "bicycle",
	"bicycle":    "bicycle",
	"container":  "container",
	"xe khách":   "coach",
	"coach":      "coach",
}

// stopWords are common Vietnamese function words skipped during keyword
// derivation.
var stopWords = map[string]bool{
	"của": true, "và": true, "với": true, "trong": true, "trên": true,
	"tại": true, "để": true, "cho": true, "từ": true, "khi": true,
	"không": true, "có": true, "là": true, "được": true, "bị": true,
	"theo": true, "như": true, "này": true, "đó": true, "các": true,
	"những": true, "về": true, "hoặc": true, "sẽ": true, "đã": true,
}

// Build constructs the graph from the full violation corpus. Construction is
// deterministic: node insertion order follows record order, and nodes of
// non-behavior types are shared across records by canonical text. A record
// without any penalty information, or one referencing a vehicle outside the
// taxonomy, aborts the build.
func (s *Store) Build(records []types.ViolationRecord) error {
	if s.built {
		return ErrAlreadyBuilt
	}

	for _, record := range records {
		if err := s.addRecord(record); err != nil {
			return err
		}
	}

	s.linkSimilarBehaviors()
	s.built = true
	return nil
}

func (s *Store) addRecord(record types.ViolationRecord) error {
	if record.ID == "" {
		return buildErrorf(record.ID, "missing record id")
	}
	if record.FineMin == 0 && record.FineMax == 0 && record.PenaltyText == "" {
		return buildErrorf(record.ID, "violation has no penalty")
	}
	if record.FineMin > record.FineMax {
		return buildErrorf(record.ID, "fine range inverted: %d > %d", record.FineMin, record.FineMax)
	}

	keywords := record.Keywords
	if len(keywords) == 0 {
		keywords = deriveKeywords(record.Description)
	}

	behaviorID := "behavior_" + record.ID
	if _, exists := s.nodes[behaviorID]; exists {
		return buildErrorf(record.ID, "duplicate record id")
	}
	s.addNode(&types.Node{
		ID:       behaviorID,
		Type:     types.BehaviorNodeType,
		Label:    record.Description,
		Category: record.Category,
		Severity: record.Severity,
		Keywords: keywords,
		RecordID: record.ID,
	})

	currency := record.Currency
	if currency == "" {
		currency = "VND"
	}
	penaltyID := "penalty_" + record.ID
	s.addNode(&types.Node{
		ID:          penaltyID,
		Type:        types.PenaltyNodeType,
		Label:       fmt.Sprintf("Phạt tiền từ %d đến %d %s", record.FineMin, record.FineMax, currency),
		FineMin:     record.FineMin,
		FineMax:     record.FineMax,
		Currency:    currency,
		PenaltyText: record.PenaltyText,
	})
	s.addEdge(behaviorID, penaltyID, types.LeadsToPenaltyEdge)

	if record.LegalBasis.Article != "" || record.LegalBasis.Document != "" {
		label := strings.TrimSpace(record.LegalBasis.Article + " " + record.LegalBasis.Document)
		lawID := "law_" + canonicalSlug(label)
		s.addNode(&types.Node{
			ID:             lawID,
			Type:           types.LawArticleNodeType,
			Label:          label,
			Article:        record.LegalBasis.Article,
			DocumentSource: record.LegalBasis.Document,
		})
		s.addEdge(penaltyID, lawID, types.BasedOnLawEdge)
	}

	for _, measure := range record.AdditionalMeasures {
		measure = strings.TrimSpace(measure)
		if measure == "" {
			continue
		}
		measureID := "measure_" + canonicalSlug(measure)
		s.addNode(&types.Node{
			ID:    measureID,
			Type:  types.AdditionalMeasureNodeType,
			Label: measure,
		})
		s.addEdge(penaltyID, measureID, types.HasAdditionalEdge)
	}

	for _, vehicle := range record.VehicleTypes {
		canonical, ok := vehicleTaxonomy[canonicalText(vehicle)]
		if !ok {
			return buildErrorf(record.ID, "unknown vehicle type %q", vehicle)
		}
		vehicleID := "vehicle_" + canonical
		s.addNode(&types.Node{
			ID:    vehicleID,
			Type:  types.VehicleTypeNodeType,
			Label: canonical,
		})
		s.addEdge(behaviorID, vehicleID, types.AppliesToVehicleEdge)
	}

	for _, context := range record.Contexts {
		context = strings.TrimSpace(context)
		if context == "" {
			continue
		}
		contextID := "context_" + canonicalSlug(context)
		s.addNode(&types.Node{
			ID:    contextID,
			Type:  types.ViolationContextNodeType,
			Label: context,
		})
		s.addEdge(behaviorID, contextID, types.InContextEdge)
	}

	return nil
}

// linkSimilarBehaviors creates symmetric similar_to edge pairs between
// behaviors whose keyword sets overlap enough.
func (s *Store) linkSimilarBehaviors() {
	behaviors := s.BehaviorIDs()
	for i, a := range behaviors {
		for _, b := range behaviors[i+1:] {
			weight := jaccard(s.nodes[a].Keywords, s.nodes[b].Keywords)
			if weight < similarityFloor {
				continue
			}
			s.addEdge(a, b, types.SimilarToEdge)
			s.addEdge(b, a, types.SimilarToEdge)
			if s.simWeights[a] == nil {
				s.simWeights[a] = make(map[string]float64)
			}
			if s.simWeights[b] == nil {
				s.simWeights[b] = make(map[string]float64)
			}
			s.simWeights[a][b] = weight
			s.simWeights[b][a] = weight
		}
	}
}

func jaccard(a, b []string) float64 {
	if len(a) == 0 || len(b) == 0 {
		return 0
	}
	setA := make(map[string]bool, len(a))
	for _, kw := range a {
		setA[canonicalText(kw)] = true
	}
	setB := make(map[string]bool, len(b))
	for _, kw := range b {
		setB[canonicalText(kw)] = true
	}

	intersection := 0
	for kw := range setB {
		if setA[kw] {
			intersection++
		}
	}
	union := len(setA) + len(setB) - intersection
	if union == 0 {
		return 0
	}
	return float64(intersection) / float64(union)
}

// deriveKeywords extracts index keywords from a description when the ETL did
// not supply any.
func deriveKeywords(description string) []string {
	words := strings.Fields(strings.ToLower(description))
	var keywords []string
	seen := make(map[string]bool)
	for _, word := range words {
		word = strings.Trim(word, ".,;:!?()\"'")
		if len([]rune(word)) < 3 || stopWords[word] || seen[word] {
			continue
		}
		seen[word] = true
		keywords = append(keywords, word)
	}
	return keywords
}

// canonicalText lowercases and collapses whitespace so that textually equal
// values share one node.
func canonicalText(text string) string {
	return strings.Join(strings.Fields(strings.ToLower(text)), " ")
}

// canonicalSlug turns canonical text into an ID-safe fragment.
func canonicalSlug(text string) string {
	return strings.ReplaceAll(canonicalText(text), " ", "_")
}
