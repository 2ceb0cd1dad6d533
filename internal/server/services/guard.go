package services

import (
	"context"
	"errors"

	"github.com/dmitrijs2005/gopherflow/internal/common"
	"github.com/dmitrijs2005/gopherflow/internal/logging"
	"github.com/dmitrijs2005/gopherflow/internal/server/repositories/repomanager"
)

// AuthenticatedUser is the caller behind a live session.
type AuthenticatedUser struct {
	ID       string
	UserName string
	Role     string
}

// Check is the operation specific part of an authorization decision. It runs
// only after the caller is known to hold a live session.
type Check interface {
	Evaluate(ctx context.Context, caller *AuthenticatedUser) error
}

type signedInOnly struct{}

func (signedInOnly) Evaluate(context.Context, *AuthenticatedUser) error { return nil }

// SignedInOnly admits any caller with a live session.
var SignedInOnly Check = signedInOnly{}

// RoleCheck admits callers whose role equals Role.
type RoleCheck struct {
	Role    string
	Message string
}

func (c RoleCheck) Evaluate(_ context.Context, caller *AuthenticatedUser) error {
	if caller.Role != c.Role {
		return common.Fail(common.ErrForbidden, c.Message)
	}
	return nil
}

// OwnerOrRoleCheck admits the owner of a resource and, when OverrideRole is
// set, callers holding that role.
type OwnerOrRoleCheck struct {
	OwnerUserID  string
	OverrideRole string
	Message      string
}

func (c OwnerOrRoleCheck) Evaluate(_ context.Context, caller *AuthenticatedUser) error {
	if caller.ID == c.OwnerUserID {
		return nil
	}
	if c.OverrideRole != "" && caller.Role == c.OverrideRole {
		return nil
	}
	return common.Fail(common.ErrForbidden, c.Message)
}

// OwnerLoader returns the owner id of the resource a request targets.
type OwnerLoader func(ctx context.Context) (string, error)

type ownerOrRoleOf struct {
	load OwnerLoader
	OwnerOrRoleCheck
}

func (c ownerOrRoleOf) Evaluate(ctx context.Context, caller *AuthenticatedUser) error {
	owner, err := c.load(ctx)
	if err != nil {
		return err
	}
	check := c.OwnerOrRoleCheck
	check.OwnerUserID = owner
	return check.Evaluate(ctx, caller)
}

// OwnerOrRoleOf is OwnerOrRoleCheck with the owner looked up lazily, so a
// missing resource is reported only to callers that are signed in.
func OwnerOrRoleOf(load OwnerLoader, overrideRole, message string) Check {
	return ownerOrRoleOf{load: load, OwnerOrRoleCheck: OwnerOrRoleCheck{OverrideRole: overrideRole, Message: message}}
}

// Guard authorizes protected operations.
type Guard struct {
	sessions    *SessionManager
	repomanager repomanager.RepositoryManager
	log         logging.Logger
}

func NewGuard(sessions *SessionManager, m repomanager.RepositoryManager, log logging.Logger) *Guard {
	return &Guard{sessions: sessions, repomanager: m, log: log}
}

// Authorize runs AuthorizeTo with a generic description of the action.
func (g *Guard) Authorize(ctx context.Context, token string, check Check) (*AuthenticatedUser, error) {
	return g.AuthorizeTo(ctx, token, "", check)
}

// AuthorizeTo resolves token and applies check. The steps run in a fixed
// order and stop at the first failure:
//
//  1. unknown token: ErrNotSignedIn
//  2. logged out session: ErrAlreadySignedOut
//  3. expired session: ErrNotSignedIn
//  4. session owner no longer exists: ErrNotSignedIn
//  5. check
//
// action completes the sentence "Sign in first to ..." in the signed-out
// message.
func (g *Guard) AuthorizeTo(ctx context.Context, token, action string, check Check) (*AuthenticatedUser, error) {
	session, err := g.sessions.Resolve(ctx, token)
	if err != nil {
		if errors.Is(err, ErrSessionNotFound) {
			return nil, common.Fail(common.ErrNotSignedIn, "User has not signed in")
		}
		return nil, internalError(ctx, g.log, "resolve session", err)
	}

	if session.LoggedOut() {
		msg := "User has signed out"
		if action != "" {
			msg += ". Sign in first to " + action
		}
		return nil, common.Fail(common.ErrAlreadySignedOut, msg)
	}

	if session.Expired(g.sessions.now()) {
		return nil, common.Fail(common.ErrNotSignedIn, "User session has expired")
	}

	user, err := g.repomanager.Users(g.repomanager.Conn()).GetByID(ctx, session.UserID)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.Fail(common.ErrNotSignedIn, "User has not signed in")
		}
		return nil, internalError(ctx, g.log, "load session user", err)
	}

	caller := &AuthenticatedUser{ID: user.ID, UserName: user.UserName, Role: user.Role}

	if check == nil {
		check = SignedInOnly
	}
	if err := check.Evaluate(ctx, caller); err != nil {
		var failure *common.Error
		if errors.As(err, &failure) {
			if errors.Is(err, common.ErrForbidden) {
				g.log.Info(ctx, "access denied", "user_id", caller.ID, "reason", failure.Message)
			}
			return nil, err
		}
		if errors.Is(err, common.ErrorInternal) {
			return nil, err
		}
		return nil, internalError(ctx, g.log, "authorization check", err)
	}

	return caller, nil
}

// internalError logs err and hides it behind common.ErrorInternal.
func internalError(ctx context.Context, log logging.Logger, op string, err error) error {
	log.Error(ctx, op+" failed", "error", err)
	return common.ErrorInternal
}
