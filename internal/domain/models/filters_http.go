package models

// Requests for screener HTTP endpoints. Defined in domain for consistency and reuse.

// SaveFilterRequest mirrors the preset form: numeric thresholds arrive as
// strings and an empty string leaves the bound unset. Deeper parsing (decimal
// conversion, volume range) happens in FilterDraft.Parse.
type SaveFilterRequest struct {
	Name       string `json:"name" validate:"required,max=255"`
	MinVolume  string `json:"minVolume" validate:"omitempty,number"`
	MaxRSI4    string `json:"maxRSI4" validate:"omitempty,number"`
	MaxRSI14   string `json:"maxRSI14" validate:"omitempty,number"`
	MinIV      string `json:"minIV" validate:"omitempty,number"`
	MaxIV      string `json:"maxIV" validate:"omitempty,number"`
	MinWillr4  string `json:"minWillr4" validate:"omitempty,number"`
	MaxWillr4  string `json:"maxWillr4" validate:"omitempty,number"`
	MinWillr14 string `json:"minWillr14" validate:"omitempty,number"`
	MaxWillr14 string `json:"maxWillr14" validate:"omitempty,number"`
	MinStochK  string `json:"minStochK" validate:"omitempty,number"`
	MaxStochK  string `json:"maxStochK" validate:"omitempty,number"`

	MACDIncreasing      bool `json:"macdIncreasing"`
	MACDLineAboveSignal bool `json:"macdLineAboveSignal"`
	CloseAboveEMAStack  bool `json:"closeAboveEma20AboveEma50"`
	StochKAboveD        bool `json:"stochasticsKAboveD"`
}

// Draft converts the request into the domain draft form.
func (r SaveFilterRequest) Draft() FilterDraft {
	return FilterDraft{
		Name:       r.Name,
		MinVolume:  r.MinVolume,
		MaxRSI4:    r.MaxRSI4,
		MaxRSI14:   r.MaxRSI14,
		MinIV:      r.MinIV,
		MaxIV:      r.MaxIV,
		MinWillr4:  r.MinWillr4,
		MaxWillr4:  r.MaxWillr4,
		MinWillr14: r.MinWillr14,
		MaxWillr14: r.MaxWillr14,
		MinStochK:  r.MinStochK,
		MaxStochK:  r.MaxStochK,

		MACDIncreasing:      r.MACDIncreasing,
		MACDLineAboveSignal: r.MACDLineAboveSignal,
		CloseAboveEMAStack:  r.CloseAboveEMAStack,
		StochKAboveD:        r.StochKAboveD,
	}
}

// ScreenRequest selects which preset to apply. An empty FilterID falls back
// to the team's default preset, then the earliest saved one, then a
// match-everything filter.
type ScreenRequest struct {
	FilterID string `query:"filter_id" json:"filterId" validate:"omitempty,uuid4"`
}

// SavedFilterResponse is the id payload returned on successful save.
type SavedFilterResponse struct {
	FilterID string `json:"filterId"`
}
