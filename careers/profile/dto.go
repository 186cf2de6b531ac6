package profile

import "strings"

type VerifyLoginRequest struct {
	IDToken string `json:"idToken"`
	Name    string `json:"name"`
}

func (r VerifyLoginRequest) Validate() error {
	if strings.TrimSpace(r.IDToken) == "" {
		return ErrMissingIDToken()
	}
	return nil
}

type LoginResponse struct {
	UID      string  `json:"uid"`
	Email    string  `json:"email"`
	Role     string  `json:"role"`
	Name     string  `json:"name"`
	Provider string  `json:"provider"`
	Profile  Profile `json:"profile"`
	Created  bool    `json:"created"`
}

func NewLoginResponse(u *User, created bool) LoginResponse {
	return LoginResponse{
		UID:      u.UID.String(),
		Email:    u.Email.String(),
		Role:     string(u.Role),
		Name:     u.Name,
		Provider: u.Provider,
		Profile:  u.Profile,
		Created:  created,
	}
}
