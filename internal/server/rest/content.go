package rest

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

func (s *Server) createQuestion(c *gin.Context) {
	var req questionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		s.respondBadRequest(c, err)
		return
	}

	q, err := s.services.Questions.Create(c.Request.Context(), tokenFrom(c), req.Content)
	if err != nil {
		s.respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, statusResponse{ID: q.ID, Status: "QUESTION CREATED"})
}

func (s *Server) listQuestions(c *gin.Context) {
	qs, err := s.services.Questions.List(c.Request.Context(), tokenFrom(c))
	if err != nil {
		s.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, questionsFrom(qs))
}

func (s *Server) listQuestionsByUser(c *gin.Context) {
	qs, err := s.services.Questions.ListByUser(c.Request.Context(), tokenFrom(c), c.Param("userId"))
	if err != nil {
		s.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, questionsFrom(qs))
}

func (s *Server) editQuestion(c *gin.Context) {
	var req questionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		s.respondBadRequest(c, err)
		return
	}

	q, err := s.services.Questions.Edit(c.Request.Context(), tokenFrom(c), c.Param("questionId"), req.Content)
	if err != nil {
		s.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, statusResponse{ID: q.ID, Status: "QUESTION EDITED"})
}

func (s *Server) deleteQuestion(c *gin.Context) {
	id := c.Param("questionId")
	if err := s.services.Questions.Delete(c.Request.Context(), tokenFrom(c), id); err != nil {
		s.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, statusResponse{ID: id, Status: "QUESTION DELETED"})
}

func (s *Server) createAnswer(c *gin.Context) {
	var req answerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		s.respondBadRequest(c, err)
		return
	}

	a, err := s.services.Answers.Create(c.Request.Context(), tokenFrom(c), c.Param("questionId"), req.Answer)
	if err != nil {
		s.respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, statusResponse{ID: a.ID, Status: "ANSWER CREATED"})
}

func (s *Server) editAnswer(c *gin.Context) {
	var req answerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		s.respondBadRequest(c, err)
		return
	}

	a, err := s.services.Answers.Edit(c.Request.Context(), tokenFrom(c), c.Param("answerId"), req.Answer)
	if err != nil {
		s.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, statusResponse{ID: a.ID, Status: "ANSWER EDITED"})
}

func (s *Server) deleteAnswer(c *gin.Context) {
	id := c.Param("answerId")
	if err := s.services.Answers.Delete(c.Request.Context(), tokenFrom(c), id); err != nil {
		s.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, statusResponse{ID: id, Status: "ANSWER DELETED"})
}

func (s *Server) listAnswers(c *gin.Context) {
	as, err := s.services.Answers.ListByQuestion(c.Request.Context(), tokenFrom(c), c.Param("questionId"))
	if err != nil {
		s.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, answersFrom(as))
}
