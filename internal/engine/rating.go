package engine

import "github.com/kayfabe/promoter/internal/domain"

// Attribute weights used by SkillFactor. A style-matched context puts half
// the weight on its signature attribute and splits the rest evenly.
const (
	emphasisWeight = 0.5
	remainderSplit = emphasisWeight / 3
)

// SkillFactor derives a [0,100] skill rating from a wrestler's four core
// attributes, weighted by the scoring context. Deterministic: no
// randomness enters here.
func SkillFactor(w domain.WrestlerSnapshot, context domain.Style) float64 {
	s := float64(w.Strength)
	a := float64(w.Agility)
	c := float64(w.Charisma)
	t := float64(w.Technical)

	switch context {
	case domain.StyleTechnical:
		return t*emphasisWeight + (s+a+c)*remainderSplit
	case domain.StyleHighFlyer:
		return a*emphasisWeight + (s+c+t)*remainderSplit
	case domain.StylePowerhouse:
		return s*emphasisWeight + (a+c+t)*remainderSplit
	default:
		return t*0.3 + a*0.2 + s*0.2 + c*0.3
	}
}
