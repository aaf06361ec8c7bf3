package regulation

import (
	"fmt"
	"strings"
)

// Tier is an EU AI Act risk class.
type Tier string

const (
	Unacceptable Tier = "unacceptable"
	High         Tier = "high"
	Limited      Tier = "limited"
	Minimal      Tier = "minimal"
)

// DefaultTier is used when a caller does not name one.
const DefaultTier = Limited

// Tiers lists the valid tiers from most to least severe.
var Tiers = []Tier{Unacceptable, High, Limited, Minimal}

// InvalidTierError reports a tier name outside Tiers.
type InvalidTierError struct {
	Name string
}

func (e *InvalidTierError) Error() string {
	names := make([]string, len(Tiers))
	for i, t := range Tiers {
		names[i] = string(t)
	}
	return fmt.Sprintf("Invalid risk category: %s. Valid: [%s]", e.Name, strings.Join(names, ", "))
}

// ParseTier validates name. Matching is exact.
func ParseTier(name string) (Tier, error) {
	for _, t := range Tiers {
		if string(t) == name {
			return t, nil
		}
	}
	return "", &InvalidTierError{Name: name}
}

// RiskCategory describes one tier and the obligations attached to it.
type RiskCategory struct {
	Tier         Tier
	Description  string
	Requirements []string
}

var riskTable = []RiskCategory{
	{
		Tier:         Unacceptable,
		Description:  "Prohibited systems (manipulation, social scoring, mass surveillance)",
		Requirements: []string{"Prohibited system - do not deploy"},
	},
	{
		Tier:        High,
		Description: "High-risk systems (recruitment, credit scoring, law enforcement)",
		Requirements: []string{
			"Complete technical documentation",
			"Risk management system",
			"Data quality and governance",
			"Transparency and information to users",
			"Human oversight",
			"Robustness, accuracy and cybersecurity",
			"Quality management system",
			"Registration in the EU database",
		},
	},
	{
		Tier:        Limited,
		Description: "Limited-risk systems (chatbots, deepfakes)",
		Requirements: []string{
			"Transparency obligations",
			"Clear information to users about interacting with an AI system",
			"Marking of AI-generated content",
		},
	},
	{
		Tier:        Minimal,
		Description: "Minimal-risk systems (spam filters, video games)",
		Requirements: []string{
			"No specific obligations",
			"Voluntary code of conduct encouraged",
		},
	},
}
