package types

// LegalBasis is the citation attached to a violation record by the ETL
// pipeline: the document (decree/law) and the article/clause inside it.
type LegalBasis struct {
	Document string `json:"document"`
	Article  string `json:"article"`
}

// ViolationRecord is the normalized input unit produced by the document ETL.
// One record yields exactly one behavior node plus its downstream penalty,
// law-article, additional-measure, vehicle-type and context nodes.
type ViolationRecord struct {
	ID                 string     `json:"id"`
	Description        string     `json:"description"`
	Category           string     `json:"category"`
	FineMin            int64      `json:"fine_min"`
	FineMax            int64      `json:"fine_max"`
	Currency           string     `json:"currency"`
	PenaltyText        string     `json:"penalty_text"`
	AdditionalMeasures []string   `json:"additional_measures"`
	LegalBasis         LegalBasis `json:"legal_basis"`
	Severity           string     `json:"severity"`
	Keywords           []string   `json:"keywords"`
	VehicleTypes       []string   `json:"vehicle_types"`
	Contexts           []string   `json:"contexts"`
}
