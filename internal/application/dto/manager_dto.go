package dto

import "time"

// RegisterRequest entrada para registro (auth). El rol siempre es manager.
type RegisterRequest struct {
	Firstname   string `json:"firstname" validate:"required,max=100"`
	Lastname    string `json:"lastname" validate:"required,max=100"`
	Email       string `json:"email" validate:"required,email"`
	PhoneNumber string `json:"phonenumber" validate:"required,max=11"`
	Password    string `json:"password" validate:"required,strongpassword"`
}

// LoginRequest credenciales de login.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// ChangePasswordRequest cambio de credencial del manager autenticado.
type ChangePasswordRequest struct {
	CurrentPassword string `json:"currentPassword" validate:"required"`
	NewPassword     string `json:"newPassword" validate:"required,strongpassword,nefield=CurrentPassword"`
}

// ManagerResponse salida de un manager (sin password).
type ManagerResponse struct {
	ID          string    `json:"id"`
	Firstname   string    `json:"firstname"`
	Lastname    string    `json:"lastname"`
	Email       string    `json:"email"`
	PhoneNumber string    `json:"phonenumber"`
	Role        string    `json:"role"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// ManagerRefResponse referencia poblada (id, nombre y email).
type ManagerRefResponse struct {
	ID        string `json:"id"`
	Firstname string `json:"firstname,omitempty"`
	Lastname  string `json:"lastname,omitempty"`
	Email     string `json:"email,omitempty"`
}

// AuthResponse salida de registro y login.
type AuthResponse struct {
	Token   string          `json:"token"`
	Manager ManagerResponse `json:"manager"`
}
