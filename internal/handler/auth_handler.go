package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"

	"socialhub/internal/models"
	"socialhub/internal/service"
)

type RegisterRequest struct {
	FirstName  string `validate:"required,min=2,max=50"`
	LastName   string `validate:"required,min=2,max=50"`
	Email      string `validate:"required,email,max=50"`
	Password   string `validate:"required,min=6"`
	Location   string `validate:"max=100"`
	Occupation string `validate:"max=100"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type RefreshTokenRequest struct {
	RefreshToken string `json:"refreshToken" validate:"required"`
}

type AuthResponse struct {
	Token        string       `json:"token"`
	RefreshToken string       `json:"refreshToken"`
	User         *models.User `json:"user"`
}

// Register creates an account from a multipart form with an optional picture.
func (h *Handlers) Register(w http.ResponseWriter, r *http.Request) {
	form, err := h.parseMultipart(w, r)
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	defer form.Close()

	req := RegisterRequest{
		FirstName:  form.Value("firstName"),
		LastName:   form.Value("lastName"),
		Email:      form.Value("email"),
		Password:   form.Raw("password"),
		Location:   form.Value("location"),
		Occupation: form.Value("occupation"),
	}
	if err := h.Validate.Struct(req); err != nil {
		h.writeServiceError(w, r, fmt.Errorf("%w: %w", service.ErrValidation, err))
		return
	}

	picture, err := form.File("picture")
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}

	user, err := h.AuthService.Register(r.Context(), service.RegisterInput{
		FirstName:  req.FirstName,
		LastName:   req.LastName,
		Email:      req.Email,
		Password:   req.Password,
		Location:   req.Location,
		Occupation: req.Occupation,
		Picture:    picture,
	})
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}

	writeSuccess(w, user, http.StatusCreated)
}

func (h *Handlers) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, "Invalid request format", http.StatusBadRequest)
		return
	}

	if err := h.Validate.Struct(req); err != nil {
		WriteError(w, "Invalid email or password", http.StatusBadRequest)
		return
	}

	user, accessToken, refreshToken, err := h.AuthService.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}

	writeSuccess(w, AuthResponse{Token: accessToken, RefreshToken: refreshToken, User: user}, http.StatusOK)
}

func (h *Handlers) RefreshToken(w http.ResponseWriter, r *http.Request) {
	var req RefreshTokenRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, "Invalid request format", http.StatusBadRequest)
		return
	}

	if err := h.Validate.Struct(req); err != nil {
		WriteError(w, "Refresh token is required", http.StatusBadRequest)
		return
	}

	user, accessToken, refreshToken, err := h.AuthService.RefreshTokens(r.Context(), req.RefreshToken)
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}

	writeSuccess(w, AuthResponse{Token: accessToken, RefreshToken: refreshToken, User: user}, http.StatusOK)
}
