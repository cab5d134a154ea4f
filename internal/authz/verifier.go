package authz

import (
	"context"
	"errors"

	"github.com/sirupsen/logrus"

	"github.com/rabnifoundation/rabni-api/internal/domain/entity"
	"github.com/rabnifoundation/rabni-api/internal/domain/repository"
)

// ProfileVerifier resolves roles from the admin profile store.
type ProfileVerifier struct {
	Repo   repository.ProfileRepository
	Logger *logrus.Logger
}

func NewProfileVerifier(repo repository.ProfileRepository, logger *logrus.Logger) *ProfileVerifier {
	return &ProfileVerifier{Repo: repo, Logger: logger}
}

// RoleOf never fails: a missing record and a store fault both read as absent.
func (v *ProfileVerifier) RoleOf(ctx context.Context, subjectID string) entity.Role {
	if v.Repo == nil || subjectID == "" {
		return entity.RoleAbsent
	}
	label, err := v.Repo.GetRole(ctx, subjectID)
	if err != nil {
		if !errors.Is(err, repository.ErrNotFound) && v.Logger != nil {
			v.Logger.WithError(err).WithField("subject_id", subjectID).Warn("role lookup failed")
		}
		return entity.RoleAbsent
	}
	return entity.ParseRole(label)
}

var _ RoleVerifier = (*ProfileVerifier)(nil)
