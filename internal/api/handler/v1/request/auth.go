package request

import (
	"errors"

	"github.com/dlclark/regexp2"
	validation "github.com/go-ozzo/ozzo-validation"
)

// At least 8 characters with one letter and one digit. Needs lookahead,
// which the standard regexp package does not support.
const passwordRegexPattern = `^(?=.*[A-Za-z])(?=.*\d).{8,}$`

var passwordExp = regexp2.MustCompile(passwordRegexPattern, regexp2.None)

var (
	errInvalidPassword         = errors.New("the password must be at least 8 characters and contain at least 1 letter and 1 number")
	errConfirmPasswordMismatch = errors.New("confirm password doesn't match the password")
	errSamePassword            = errors.New("the new password must differ from the current one")
)

type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

func (req *LoginRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.Username, validation.Required, validation.Length(1, 64)),
		validation.Field(&req.Password, validation.Required),
	)
}

type ChangePasswordRequest struct {
	CurrentPassword string `json:"current_password"`
	NewPassword     string `json:"new_password"`
	ConfirmPassword string `json:"confirm_password"`
}

func (req *ChangePasswordRequest) Validate() error {
	err := validation.ValidateStruct(
		req,
		validation.Field(&req.CurrentPassword, validation.Required),
		validation.Field(&req.NewPassword, validation.Required, validation.By(strongPassword)),
		validation.Field(&req.ConfirmPassword, validation.Required),
	)
	if err != nil {
		return err
	}

	if req.NewPassword != req.ConfirmPassword {
		return errConfirmPasswordMismatch
	}
	if req.NewPassword == req.CurrentPassword {
		return errSamePassword
	}

	return nil
}

func strongPassword(value interface{}) error {
	s, _ := value.(string)

	ok, err := passwordExp.MatchString(s)
	if err != nil || !ok {
		return errInvalidPassword
	}

	return nil
}
