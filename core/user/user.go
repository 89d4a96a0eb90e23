package user

import "io"

type Profile struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Email       string   `json:"email"`
	PhoneNumber string   `json:"phoneNumber"`
	ProfileURL  string   `json:"profileUrl"`
	Address     string   `json:"address"`
	Active      bool     `json:"active"`
	Roles       []string `json:"roles"`
}

type Registration struct {
	Name        string   `json:"name" validate:"required"`
	PhoneNumber string   `json:"phoneNumber" validate:"required"`
	Address     string   `json:"address" validate:"required"`
	Email       string   `json:"email" validate:"required,email"`
	Password    string   `json:"password" validate:"required,min=8"`
	Roles       []string `json:"roles" validate:"omitempty,dive,oneof=ADMIN CUSTOMER DELIVERY"`
}

type Login struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// Auth is the payload a successful login returns.
type Auth struct {
	Token string   `json:"token"`
	Roles []string `json:"roles"`
}

type Update struct {
	Name        *string `json:"name"`
	Email       *string `json:"email" validate:"omitempty,email"`
	PhoneNumber *string `json:"phoneNumber"`
	Address     *string `json:"address"`

	// Image, when set, switches the update to a multipart upload.
	Image     io.Reader `json:"-"`
	ImageName string    `json:"-"`
}
