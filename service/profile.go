package service

import (
	"strings"

	"campus-events/data/models"
	"campus-events/data/repository"
)

// ProfileService edits student profiles. The interest field feeds the
// recommendation scorer, so edits here change what Recommend surfaces.
type ProfileService struct {
	Repo repository.DBRepo
}

// UpdateProfile replaces the profile's fields. The interest is stored
// trimmed; case is preserved for display and normalised at scoring time.
func (s *ProfileService) UpdateProfile(p models.StudentProfile) error {
	p.Interest = strings.TrimSpace(p.Interest)
	return s.Repo.UpdateProfile(p)
}
