package domain

import (
	"golang.org/x/text/cases"
	"gorm.io/gorm"
)

// Fold returns the Unicode case folding of s. Stored search columns and
// search terms both go through it, so matching never depends on the
// database's own notion of case.
func Fold(s string) string {
	// A Caser keeps state; one per call.
	return cases.Fold().String(s)
}

// BeforeSave keeps the folded search columns in step with Title and
// Performer on Create and Save.
func (s *Song) BeforeSave(*gorm.DB) error {
	s.TitleFolded = Fold(s.Title)
	s.PerformerFolded = Fold(s.Performer)
	return nil
}
