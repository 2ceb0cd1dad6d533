package services

import (
	"context"
	"errors"

	"github.com/dmitrijs2005/gopherflow/internal/common"
	"github.com/dmitrijs2005/gopherflow/internal/logging"
	"github.com/dmitrijs2005/gopherflow/internal/server/models"
	"github.com/dmitrijs2005/gopherflow/internal/server/repositories/repomanager"
	"github.com/google/uuid"
)

func questionNotFound() error {
	return common.Fail(common.ErrQuestionNotFound, "Entered question uuid does not exist")
}

func answerNotFound() error {
	return common.Fail(common.ErrAnswerNotFound, "Entered answer uuid does not exist")
}

// QuestionService posts, edits, deletes and lists questions.
type QuestionService struct {
	repomanager repomanager.RepositoryManager
	guard       *Guard
	log         logging.Logger
}

func NewQuestionService(m repomanager.RepositoryManager, guard *Guard, log logging.Logger) *QuestionService {
	return &QuestionService{repomanager: m, guard: guard, log: log}
}

// Create posts a question owned by the caller.
func (s *QuestionService) Create(ctx context.Context, token, content string) (*models.Question, error) {
	caller, err := s.guard.AuthorizeTo(ctx, token, "post a question", SignedInOnly)
	if err != nil {
		return nil, err
	}

	q := &models.Question{ID: uuid.NewString(), Content: content, OwnerUserID: caller.ID}
	q, err = s.repomanager.Questions(s.repomanager.Conn()).Create(ctx, q)
	if err != nil {
		return nil, internalError(ctx, s.log, "create question", err)
	}
	return q, nil
}

func (s *QuestionService) List(ctx context.Context, token string) ([]*models.Question, error) {
	if _, err := s.guard.AuthorizeTo(ctx, token, "get all questions", SignedInOnly); err != nil {
		return nil, err
	}

	list, err := s.repomanager.Questions(s.repomanager.Conn()).List(ctx)
	if err != nil {
		return nil, internalError(ctx, s.log, "list questions", err)
	}
	return list, nil
}

// ListByUser lists the questions posted by userID.
func (s *QuestionService) ListByUser(ctx context.Context, token, userID string) ([]*models.Question, error) {
	if _, err := s.guard.AuthorizeTo(ctx, token, "get all questions posted by a specific user", SignedInOnly); err != nil {
		return nil, err
	}

	db := s.repomanager.Conn()
	if _, err := s.repomanager.Users(db).GetByID(ctx, userID); err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.Fail(common.ErrUserProfileNotFound, "User with entered uuid whose question details are to be seen does not exist")
		}
		return nil, internalError(ctx, s.log, "list user questions", err)
	}

	list, err := s.repomanager.Questions(db).ListByOwner(ctx, userID)
	if err != nil {
		return nil, internalError(ctx, s.log, "list user questions", err)
	}
	return list, nil
}

// Edit replaces the content of a question. Only its owner may edit it.
func (s *QuestionService) Edit(ctx context.Context, token, questionID, content string) (*models.Question, error) {
	var q *models.Question
	check := OwnerOrRoleOf(func(ctx context.Context) (string, error) {
		var err error
		q, err = s.load(ctx, questionID)
		if err != nil {
			return "", err
		}
		return q.OwnerUserID, nil
	}, "", "Only the question owner can edit the question")

	if _, err := s.guard.AuthorizeTo(ctx, token, "edit the question", check); err != nil {
		return nil, err
	}

	if err := s.repomanager.Questions(s.repomanager.Conn()).UpdateContent(ctx, questionID, content); err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, questionNotFound()
		}
		return nil, internalError(ctx, s.log, "edit question", err)
	}

	q.Content = content
	return q, nil
}

// Delete removes a question and its answers. Owners and admins may delete.
func (s *QuestionService) Delete(ctx context.Context, token, questionID string) error {
	check := OwnerOrRoleOf(func(ctx context.Context) (string, error) {
		q, err := s.load(ctx, questionID)
		if err != nil {
			return "", err
		}
		return q.OwnerUserID, nil
	}, models.RoleAdmin, "Only the question owner or admin can delete the question")

	caller, err := s.guard.AuthorizeTo(ctx, token, "delete a question", check)
	if err != nil {
		return err
	}

	if err := s.repomanager.Questions(s.repomanager.Conn()).Delete(ctx, questionID); err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return questionNotFound()
		}
		return internalError(ctx, s.log, "delete question", err)
	}

	s.log.Info(ctx, "question deleted", "question_id", questionID, "user_id", caller.ID)
	return nil
}

func (s *QuestionService) load(ctx context.Context, questionID string) (*models.Question, error) {
	q, err := s.repomanager.Questions(s.repomanager.Conn()).GetByID(ctx, questionID)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, questionNotFound()
		}
		return nil, internalError(ctx, s.log, "load question", err)
	}
	return q, nil
}

// AnswerService posts, edits, deletes and lists answers.
type AnswerService struct {
	repomanager repomanager.RepositoryManager
	guard       *Guard
	log         logging.Logger
}

func NewAnswerService(m repomanager.RepositoryManager, guard *Guard, log logging.Logger) *AnswerService {
	return &AnswerService{repomanager: m, guard: guard, log: log}
}

// Create answers questionID on behalf of the caller.
func (s *AnswerService) Create(ctx context.Context, token, questionID, content string) (*models.Answer, error) {
	caller, err := s.guard.AuthorizeTo(ctx, token, "post an answer", SignedInOnly)
	if err != nil {
		return nil, err
	}

	a := &models.Answer{ID: uuid.NewString(), Content: content, QuestionID: questionID, OwnerUserID: caller.ID}
	a, err = s.repomanager.Answers(s.repomanager.Conn()).Create(ctx, a)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.Fail(common.ErrQuestionNotFound, "The question entered is invalid")
		}
		return nil, internalError(ctx, s.log, "create answer", err)
	}
	return a, nil
}

// Edit replaces the content of an answer. Only its owner may edit it.
func (s *AnswerService) Edit(ctx context.Context, token, answerID, content string) (*models.Answer, error) {
	var a *models.Answer
	check := OwnerOrRoleOf(func(ctx context.Context) (string, error) {
		var err error
		a, err = s.load(ctx, answerID)
		if err != nil {
			return "", err
		}
		return a.OwnerUserID, nil
	}, "", "Only the answer owner can edit the answer")

	if _, err := s.guard.AuthorizeTo(ctx, token, "edit an answer", check); err != nil {
		return nil, err
	}

	if err := s.repomanager.Answers(s.repomanager.Conn()).UpdateContent(ctx, answerID, content); err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, answerNotFound()
		}
		return nil, internalError(ctx, s.log, "edit answer", err)
	}

	a.Content = content
	return a, nil
}

// Delete removes an answer. Owners and admins may delete.
func (s *AnswerService) Delete(ctx context.Context, token, answerID string) error {
	check := OwnerOrRoleOf(func(ctx context.Context) (string, error) {
		a, err := s.load(ctx, answerID)
		if err != nil {
			return "", err
		}
		return a.OwnerUserID, nil
	}, models.RoleAdmin, "Only the answer owner or admin can delete the answer")

	caller, err := s.guard.AuthorizeTo(ctx, token, "delete an answer", check)
	if err != nil {
		return err
	}

	if err := s.repomanager.Answers(s.repomanager.Conn()).Delete(ctx, answerID); err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return answerNotFound()
		}
		return internalError(ctx, s.log, "delete answer", err)
	}

	s.log.Info(ctx, "answer deleted", "answer_id", answerID, "user_id", caller.ID)
	return nil
}

// ListByQuestion lists the answers to questionID.
func (s *AnswerService) ListByQuestion(ctx context.Context, token, questionID string) ([]*models.Answer, error) {
	if _, err := s.guard.AuthorizeTo(ctx, token, "get all answers", SignedInOnly); err != nil {
		return nil, err
	}

	db := s.repomanager.Conn()
	if _, err := s.repomanager.Questions(db).GetByID(ctx, questionID); err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.Fail(common.ErrQuestionNotFound, "The question with entered uuid whose details are to be seen does not exist")
		}
		return nil, internalError(ctx, s.log, "list answers", err)
	}

	list, err := s.repomanager.Answers(db).ListByQuestion(ctx, questionID)
	if err != nil {
		return nil, internalError(ctx, s.log, "list answers", err)
	}
	return list, nil
}

func (s *AnswerService) load(ctx context.Context, answerID string) (*models.Answer, error) {
	a, err := s.repomanager.Answers(s.repomanager.Conn()).GetByID(ctx, answerID)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, answerNotFound()
		}
		return nil, internalError(ctx, s.log, "load answer", err)
	}
	return a, nil
}
