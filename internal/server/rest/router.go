package rest

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

func (s *Server) newRouter() *gin.Engine {
	r := gin.New()
	r.Use(requestID(), s.requestLogger(), gin.Recovery())

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	user := r.Group("/user")
	user.POST("/signup", s.signup)
	user.POST("/signin", s.signin)
	user.POST("/signout", accessToken(), s.signout)

	protected := r.Group("", accessToken())

	protected.GET("/userprofile/:userId", s.userProfile)
	protected.DELETE("/admin/user/:userId", s.deleteUser)

	question := protected.Group("/question")
	question.POST("/create", s.createQuestion)
	question.GET("/all", s.listQuestions)
	question.GET("/all/:userId", s.listQuestionsByUser)
	question.PUT("/edit/:questionId", s.editQuestion)
	question.DELETE("/delete/:questionId", s.deleteQuestion)
	question.POST("/:questionId/answer/create", s.createAnswer)

	answer := protected.Group("/answer")
	answer.PUT("/edit/:answerId", s.editAnswer)
	answer.DELETE("/delete/:answerId", s.deleteAnswer)
	answer.GET("/all/:questionId", s.listAnswers)

	return r
}
