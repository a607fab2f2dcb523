package controllers

import (
	"net/http"

	"starlog/app/auth"
)

// AuthController handles registration and login.
type AuthController struct {
	authService *auth.Service
}

// NewAuthController creates a new AuthController.
func NewAuthController(authService *auth.Service) *AuthController {
	return &AuthController{authService: authService}
}

type registerRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Register creates a new account.
func (ac *AuthController) Register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if !decodeBody(w, r, &req) {
		return
	}
	user, err := ac.authService.Register(req.Username, req.Email, req.Password)
	if err != nil {
		sendError(w, err)
		return
	}
	sendJSON(w, http.StatusCreated, user)
}

// Login verifies credentials and returns a bearer token.
func (ac *AuthController) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if !decodeBody(w, r, &req) {
		return
	}
	result, err := ac.authService.Login(req.Email, req.Password)
	if err != nil {
		sendError(w, err)
		return
	}
	sendJSON(w, http.StatusOK, result)
}
