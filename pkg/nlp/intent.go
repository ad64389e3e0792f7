package nlp

import (
	"regexp"

	"github.com/vietlaw/trafficqa/pkg/types"
)

// IntentRule pairs a pattern set with the intent it selects. Rules are
// evaluated in order and the first rule with any matching pattern wins; the
// order of Rules is part of the classifier contract, pinned by tests.
type IntentRule struct {
	Name     string
	Intent   types.Intent
	Patterns []*regexp.Regexp
}

func compileAll(patterns ...string) []*regexp.Regexp {
	compiled := make([]*regexp.Regexp, len(patterns))
	for i, p := range patterns {
		compiled[i] = regexp.MustCompile(p)
	}
	return compiled
}

// Rules is the ordered intent rule table, applied to normalized query text.
// A question that explicitly asks about penalties, laws, extra sanctions,
// similar cases or permissibility is classified by its question form; a bare
// violation description is read as asking for its penalty; everything else
// falls through to general_info.
var Rules = []IntentRule{
	{
		Name:   "penalty_terms",
		Intent: types.PenaltyInquiryIntent,
		Patterns: compileAll(
			`phạt\s+(bao nhiêu|mức nào|như thế nào)`,
			`mức\s+phạt`,
			`tiền\s+phạt`,
			`bị\s+phạt`,
			`phạt\s+tiền`,
			`xử\s+phạt`,
		),
	},
	{
		Name:   "law_terms",
		Intent: types.LawReferenceIntent,
		Patterns: compileAll(
			`điều\s+\d+`,
			`khoản\s+\d+`,
			`nghị\s+định`,
			`luật\s+giao\s+thông`,
			`quy\s+định\s+nào`,
			`theo\s+luật`,
			`căn\s+cứ\s+pháp`,
		),
	},
	{
		Name:   "additional_measure_terms",
		Intent: types.AdditionalMeasuresIntent,
		Patterns: compileAll(
			`hình\s+thức\s+bổ\s+sung`,
			`biện\s+pháp\s+bổ\s+sung`,
			`tước\s+(bằng|giấy\s+phép)`,
			`tạm\s+giữ\s+(xe|phương\s+tiện)`,
			`trừ\s+điểm`,
		),
	},
	{
		Name:   "similar_terms",
		Intent: types.SimilarCasesIntent,
		Patterns: compileAll(
			`tương\s+tự`,
			`giống\s+(như|với)`,
			`trường\s+hợp\s+khác`,
			`hành\s+vi\s+nào\s+khác`,
		),
	},
	{
		Name:   "behavior_check_terms",
		Intent: types.BehaviorCheckIntent,
		Patterns: compileAll(
			`có\s+được\s+phép`,
			`có\s+vi\s+phạm\s+không`,
			`được\s+phép\s+không`,
			`có\s+bị\s+cấm`,
			`có\s+sao\s+không`,
			`hành\s+vi\s+này`,
			`trường\s+hợp\s+này`,
		),
	},
	{
		// A bare description of a violation, with no question form, is a
		// penalty inquiry about that violation.
		Name:   "violation_mention",
		Intent: types.PenaltyInquiryIntent,
		Patterns: compileAll(
			`vượt\s+đèn\s+đỏ`,
			`đèn\s+đỏ`,
			`mũ\s+bảo\s+hiểm`,
			`quá\s+tốc\s+độ`,
			`nồng\s+độ\s+cồn`,
			`rượu\s+bia`,
			`ngược\s+chiều`,
			`lấn\s+làn`,
			`không\s+(có\s+)?(bằng|giấy\s+phép)`,
			`đỗ\s+xe\s+sai`,
			`đi\s+trên\s+vỉa\s+hè`,
		),
	},
}

// DetectIntent classifies normalized query text. Deterministic: equal input
// always yields the same intent.
func DetectIntent(normalized string) types.Intent {
	for _, rule := range Rules {
		for _, pattern := range rule.Patterns {
			if pattern.MatchString(normalized) {
				return rule.Intent
			}
		}
	}
	return types.GeneralInfoIntent
}
