package service

import (
	"strings"

	"github.com/ncaillard/dentoplan-api/internal/models"
)

// Classifier derives scheduling behaviour from a treatment label. Matching is
// keyword-based over the French vocabulary used in treatment plans; unknown
// labels fall back to the routine profile.
type Classifier struct {
	keywords []categoryKeywords
	profiles map[models.TreatmentCategory]models.TreatmentClassification
}

type categoryKeywords struct {
	category models.TreatmentCategory
	words    []string
}

// NewClassifier builds the classifier with its built-in vocabulary.
func NewClassifier() *Classifier {
	return &Classifier{
		// Order matters: surgery outranks the restorative categories,
		// emergencies only catch what nothing clinical matched.
		keywords: []categoryKeywords{
			{models.CategorySurgical, []string{"extraction", "chirurgie", "implant", "greffe", "avulsion", "sinus lift"}},
			{models.CategoryEndodontic, []string{"endodontie", "dévitalisation", "traitement endodontique", "pulpotomie"}},
			{models.CategoryProsthetic, []string{"couronne", "bridge", "prothèse", "facette", "onlay", "inlay"}},
			{models.CategoryEmergency, []string{"urgence", "douleur", "abcès", "trauma", "fracture"}},
			{models.CategoryRoutine, []string{"détartrage", "obturation", "composite", "polissage", "contrôle"}},
		},
		profiles: map[models.TreatmentCategory]models.TreatmentClassification{
			models.CategorySurgical: {
				Category:       models.CategorySurgical,
				PreferredTime:  models.PreferMorning,
				BufferMinutes:  30,
				MinSpacingDays: 7,
				MaxSpacingDays: 14,
				AvoidFriday:    true,
			},
			models.CategoryEndodontic: {
				Category:       models.CategoryEndodontic,
				PreferredTime:  models.PreferMorning,
				BufferMinutes:  15,
				MinSpacingDays: 3,
				MaxSpacingDays: 10,
			},
			models.CategoryProsthetic: {
				Category:       models.CategoryProsthetic,
				PreferredTime:  models.PreferMorning,
				BufferMinutes:  15,
				MinSpacingDays: 14,
				MaxSpacingDays: 21,
			},
			models.CategoryRoutine: {
				Category:       models.CategoryRoutine,
				PreferredTime:  models.PreferAfternoon,
				BufferMinutes:  10,
				MinSpacingDays: 7,
				MaxSpacingDays: 30,
			},
			models.CategoryEmergency: {
				Category:       models.CategoryEmergency,
				PreferredTime:  models.PreferAny,
				BufferMinutes:  20,
				MinSpacingDays: 0,
				MaxSpacingDays: 7,
			},
		},
	}
}

// Classify returns the scheduling profile for a treatment label.
func (c *Classifier) Classify(label string) models.TreatmentClassification {
	text := strings.ToLower(strings.TrimSpace(label))
	for _, group := range c.keywords {
		for _, word := range group.words {
			if strings.Contains(text, word) {
				return c.profiles[group.category]
			}
		}
	}
	return c.profiles[models.CategoryRoutine]
}
