package nlp

import (
	"regexp"
	"sort"
	"strings"

	"github.com/vietlaw/trafficqa/pkg/types"
)

// vehicleRecognizers map lexical patterns to canonical vehicle values.
var vehicleRecognizers = []struct {
	pattern   *regexp.Regexp
	canonical string
}{
	{regexp.MustCompile(`xe\s+(gắn\s+)?máy|motorbike|motor`), "motorcycle"},
	{regexp.MustCompile(`ô\s+tô|xe\s+hơi|\boto\b`), "car"},
	{regexp.MustCompile(`xe\s+tải`), "truck"},
	{regexp.MustCompile(`xe\s+buýt|xe\s+bus`), "bus"},
	{regexp.MustCompile(`xe\s+đạp`), "bicycle"},
	{regexp.MustCompile(`container`), "container"},
	{regexp.MustCompile(`xe\s+khách`), "coach"},
}

var speedRecognizers = []*regexp.Regexp{
	regexp.MustCompile(`(\d+)\s*(?:km/h|kmh|km/giờ)`),
	regexp.MustCompile(`tốc\s+độ\s+(\d+)`),
	regexp.MustCompile(`vượt\s+quá\s+(\d+)`),
	regexp.MustCompile(`chạy\s+(\d+)`),
}

var alcoholValueRecognizers = []*regexp.Regexp{
	regexp.MustCompile(`(\d+(?:[.,]\d+)?)\s*(?:mg/l|miligam)`),
	regexp.MustCompile(`nồng\s+độ\s+cồn\s+(\d+(?:[.,]\d+)?)`),
}

var alcoholMentionRecognizer = regexp.MustCompile(`say\s+rượu|uống\s+rượu|rượu\s+bia|\bcồn\b`)

// trafficKeywords are domain terms recognized as KEYWORD entities when they
// appear verbatim in the normalized query.
var trafficKeywords = []string{
	"vượt đèn đỏ", "mũ bảo hiểm", "nồng độ cồn", "tốc độ", "bằng lái",
	"giấy tờ", "làn đường", "vỉa hè", "đèn tín hiệu", "biển báo",
	"đỗ xe", "ngược chiều", "giao thông", "phương tiện",
}

// ExtractEntities pulls typed entities out of normalized query text. The
// per-kind recognizers are independent; within a kind, entities are ordered
// by first occurrence. Extraction never fails; a kind with no match simply
// contributes nothing.
func ExtractEntities(normalized string) []types.Entity {
	var entities []types.Entity
	entities = append(entities, extractVehicles(normalized)...)
	entities = append(entities, extractSpeeds(normalized)...)
	entities = append(entities, extractAlcohol(normalized)...)
	entities = append(entities, extractKeywords(normalized)...)
	return entities
}

func extractVehicles(text string) []types.Entity {
	var found []types.Entity
	seen := make(map[string]bool)
	for _, rec := range vehicleRecognizers {
		loc := rec.pattern.FindStringIndex(text)
		if loc == nil || seen[rec.canonical] {
			continue
		}
		seen[rec.canonical] = true
		found = append(found, types.Entity{
			Kind:      types.VehicleEntity,
			Text:      text[loc[0]:loc[1]],
			Canonical: rec.canonical,
			Position:  loc[0],
		})
	}
	sortByPosition(found)
	return found
}

func extractSpeeds(text string) []types.Entity {
	var found []types.Entity
	seen := make(map[string]bool)
	for _, pattern := range speedRecognizers {
		for _, match := range pattern.FindAllStringSubmatchIndex(text, -1) {
			value := text[match[2]:match[3]]
			if seen[value] {
				continue
			}
			seen[value] = true
			found = append(found, types.Entity{
				Kind:      types.SpeedEntity,
				Text:      text[match[0]:match[1]],
				Canonical: value,
				Position:  match[0],
			})
		}
	}
	sortByPosition(found)
	return found
}

func extractAlcohol(text string) []types.Entity {
	var found []types.Entity
	seen := make(map[string]bool)
	for _, pattern := range alcoholValueRecognizers {
		for _, match := range pattern.FindAllStringSubmatchIndex(text, -1) {
			value := strings.ReplaceAll(text[match[2]:match[3]], ",", ".")
			if seen[value] {
				continue
			}
			seen[value] = true
			found = append(found, types.Entity{
				Kind:      types.AlcoholEntity,
				Text:      text[match[0]:match[1]],
				Canonical: value,
				Position:  match[0],
			})
		}
	}
	// a bare mention of drinking still counts, without a measured level
	if len(found) == 0 {
		if loc := alcoholMentionRecognizer.FindStringIndex(text); loc != nil {
			found = append(found, types.Entity{
				Kind:      types.AlcoholEntity,
				Text:      text[loc[0]:loc[1]],
				Canonical: "alcohol",
				Position:  loc[0],
			})
		}
	}
	sortByPosition(found)
	return found
}

func extractKeywords(text string) []types.Entity {
	var found []types.Entity
	for _, kw := range trafficKeywords {
		pos := strings.Index(text, kw)
		if pos < 0 {
			continue
		}
		found = append(found, types.Entity{
			Kind:      types.KeywordEntity,
			Text:      kw,
			Canonical: kw,
			Position:  pos,
		})
	}
	sortByPosition(found)
	return found
}

func sortByPosition(entities []types.Entity) {
	sort.SliceStable(entities, func(i, j int) bool {
		return entities[i].Position < entities[j].Position
	})
}

// Vehicles returns the canonical values of all VEHICLE entities, in order.
func Vehicles(entities []types.Entity) []string {
	var vehicles []string
	for _, e := range entities {
		if e.Kind == types.VehicleEntity {
			vehicles = append(vehicles, e.Canonical)
		}
	}
	return vehicles
}

// Keywords returns the canonical values of all KEYWORD entities, in order.
func Keywords(entities []types.Entity) []string {
	var keywords []string
	for _, e := range entities {
		if e.Kind == types.KeywordEntity {
			keywords = append(keywords, e.Canonical)
		}
	}
	return keywords
}
