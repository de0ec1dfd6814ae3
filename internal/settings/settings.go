package settings

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// ErrMalformed marks configuration documents that fail structural
// validation; callers fall back to Default() and keep running.
var ErrMalformed = errors.New("malformed settings document")

// Condition is a tagged variant: either a default fallback or a
// contains-check against the full item text. Exactly one applies.
type Condition struct {
	Default  bool
	Contains string
	Result   string
}

func (c *Condition) UnmarshalJSON(data []byte) error {
	var raw struct {
		Default  *bool   `json:"default,omitempty"`
		Contains *string `json:"contains,omitempty"`
		Result   *string `json:"result,omitempty"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	switch {
	case raw.Default != nil && *raw.Default:
		c.Default = true
	case raw.Contains != nil && strings.TrimSpace(*raw.Contains) != "":
		c.Contains = *raw.Contains
	default:
		return fmt.Errorf("%w: condition needs default=true or a contains text", ErrMalformed)
	}

	if raw.Result == nil || strings.TrimSpace(*raw.Result) == "" {
		return fmt.Errorf("%w: condition is missing a result", ErrMalformed)
	}
	c.Result = *raw.Result
	return nil
}

func (c Condition) MarshalJSON() ([]byte, error) {
	if c.Default {
		return json.Marshal(struct {
			Default bool   `json:"default"`
			Result  string `json:"result"`
		}{true, c.Result})
	}
	return json.Marshal(struct {
		Contains string `json:"contains"`
		Result   string `json:"result"`
	}{c.Contains, c.Result})
}

type Rule struct {
	Pattern    string      `json:"pattern"`
	Conditions []Condition `json:"conditions"`
}

type Settings struct {
	ProductTypes     []string `json:"product_types"`
	ShorteningRules  []Rule   `json:"shortening_rules"`
	MaxBins          int      `json:"max_bins"`
	OverflowName     string   `json:"overflow_name"`
	DefaultLabelSize string   `json:"default_label_size"`
}

// Default is the compiled-in fallback used when no stored document
// exists or the stored one is unreadable.
func Default() Settings {
	return Settings{
		ProductTypes: []string{
			"Soft Premium Tee - Black",
			"Soft Premium Tee - White",
			"Luxury Heavy Tee - Black",
			"Luxury Heavy Tee - Vintage Black",
			"Luxury Heavy Tee - Stone Wash",
			"Vintage Crew Sweatshirt - Pepper",
			"Luxury Hoodie - Vintage Black",
			"Unisex Fleece Sweat Shorts",
			"Insulated Can Cooler",
			"Trucker Hat",
		},
		ShorteningRules:  []Rule{},
		MaxBins:          12,
		OverflowName:     "THEPIT",
		DefaultLabelSize: "2x1",
	}
}

func Parse(data []byte) (Settings, error) {
	var s Settings
	if err := json.Unmarshal(data, &s); err != nil {
		if errors.Is(err, ErrMalformed) {
			return Settings{}, err
		}
		return Settings{}, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	if err := s.Validate(); err != nil {
		return Settings{}, err
	}
	return s, nil
}

func (s Settings) Validate() error {
	if s.ProductTypes == nil {
		return fmt.Errorf("%w: product_types must be a list", ErrMalformed)
	}
	if s.MaxBins < 1 {
		return fmt.Errorf("%w: max_bins must be >= 1", ErrMalformed)
	}
	if strings.TrimSpace(s.OverflowName) == "" {
		return fmt.Errorf("%w: overflow_name must be a non-empty string", ErrMalformed)
	}
	if s.DefaultLabelSize != "" && s.DefaultLabelSize != "2x1" && s.DefaultLabelSize != "3x1" {
		return fmt.Errorf("%w: default_label_size must be 2x1 or 3x1", ErrMalformed)
	}
	for i, rule := range s.ShorteningRules {
		if strings.TrimSpace(rule.Pattern) == "" {
			return fmt.Errorf("%w: rule %d has an empty pattern", ErrMalformed, i)
		}
		if len(rule.Conditions) == 0 {
			return fmt.Errorf("%w: rule %d has no conditions", ErrMalformed, i)
		}
	}
	return nil
}
