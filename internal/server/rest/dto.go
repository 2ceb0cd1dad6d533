package rest

import "github.com/dmitrijs2005/gopherflow/internal/server/models"

type signupRequest struct {
	FirstName     string `json:"firstName"`
	LastName      string `json:"lastName"`
	UserName      string `json:"userName" binding:"required"`
	EmailAddress  string `json:"emailAddress" binding:"required"`
	Password      string `json:"password" binding:"required"`
	Country       string `json:"country"`
	AboutMe       string `json:"aboutMe"`
	DOB           string `json:"dob"`
	ContactNumber string `json:"contactNumber"`
}

func (r signupRequest) profile() models.Profile {
	return models.Profile{
		FirstName:     r.FirstName,
		LastName:      r.LastName,
		UserName:      r.UserName,
		Email:         r.EmailAddress,
		Country:       r.Country,
		AboutMe:       r.AboutMe,
		DOB:           r.DOB,
		ContactNumber: r.ContactNumber,
	}
}

// statusResponse answers mutating calls.
type statusResponse struct {
	ID     string `json:"id"`
	Status string `json:"status"`
}

type messageResponse struct {
	ID      string `json:"id"`
	Message string `json:"message"`
}

type profileResponse struct {
	UserName      string `json:"userName"`
	FirstName     string `json:"firstName"`
	LastName      string `json:"lastName"`
	EmailAddress  string `json:"emailAddress"`
	Country       string `json:"country"`
	AboutMe       string `json:"aboutMe"`
	DOB           string `json:"dob"`
	ContactNumber string `json:"contactNumber"`
}

func profileFrom(u *models.User) profileResponse {
	return profileResponse{
		UserName:      u.UserName,
		FirstName:     u.FirstName,
		LastName:      u.LastName,
		EmailAddress:  u.Email,
		Country:       u.Country,
		AboutMe:       u.AboutMe,
		DOB:           u.DOB,
		ContactNumber: u.ContactNumber,
	}
}

type questionRequest struct {
	Content string `json:"content" binding:"required"`
}

type questionResponse struct {
	ID      string `json:"id"`
	Content string `json:"content"`
}

func questionsFrom(qs []*models.Question) []questionResponse {
	out := make([]questionResponse, 0, len(qs))
	for _, q := range qs {
		out = append(out, questionResponse{ID: q.ID, Content: q.Content})
	}
	return out
}

type answerRequest struct {
	Answer string `json:"answer" binding:"required"`
}

type answerResponse struct {
	ID     string `json:"id"`
	Answer string `json:"answer"`
}

func answersFrom(as []*models.Answer) []answerResponse {
	out := make([]answerResponse, 0, len(as))
	for _, a := range as {
		out = append(out, answerResponse{ID: a.ID, Answer: a.Content})
	}
	return out
}
