package services

import (
	"context"
	"errors"

	"github.com/dmitrijs2005/gopherflow/internal/common"
	"github.com/dmitrijs2005/gopherflow/internal/logging"
	"github.com/dmitrijs2005/gopherflow/internal/server/models"
	"github.com/dmitrijs2005/gopherflow/internal/server/repositories/repomanager"
)

type ProfileService struct {
	repomanager repomanager.RepositoryManager
	guard       *Guard
	log         logging.Logger
}

func NewProfileService(m repomanager.RepositoryManager, guard *Guard, log logging.Logger) *ProfileService {
	return &ProfileService{repomanager: m, guard: guard, log: log}
}

// Get returns the user record of userID to any signed-in caller.
func (s *ProfileService) Get(ctx context.Context, token, userID string) (*models.User, error) {
	if _, err := s.guard.AuthorizeTo(ctx, token, "get user details", SignedInOnly); err != nil {
		return nil, err
	}

	user, err := s.repomanager.Users(s.repomanager.Conn()).GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.Fail(common.ErrUserProfileNotFound, "User with entered uuid does not exist")
		}
		return nil, internalError(ctx, s.log, "get profile", err)
	}

	return user, nil
}

// AdminService holds operations reserved for administrators.
type AdminService struct {
	repomanager repomanager.RepositoryManager
	guard       *Guard
	log         logging.Logger
}

func NewAdminService(m repomanager.RepositoryManager, guard *Guard, log logging.Logger) *AdminService {
	return &AdminService{repomanager: m, guard: guard, log: log}
}

// DeleteUser removes userID together with its sessions, questions and answers.
func (s *AdminService) DeleteUser(ctx context.Context, token, userID string) error {
	check := RoleCheck{Role: models.RoleAdmin, Message: "Unauthorized Access, Entered user is not an admin"}
	caller, err := s.guard.AuthorizeTo(ctx, token, "delete a user", check)
	if err != nil {
		return err
	}

	if err := s.repomanager.Users(s.repomanager.Conn()).Delete(ctx, userID); err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return common.Fail(common.ErrUserProfileNotFound, "User with entered uuid to be deleted does not exist")
		}
		return internalError(ctx, s.log, "delete user", err)
	}

	s.log.Info(ctx, "user deleted", "user_id", userID, "admin_id", caller.ID)
	return nil
}
