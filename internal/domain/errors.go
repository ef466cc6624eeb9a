package domain

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidInput = errors.New("invalid input")
	ErrOverSell     = errors.New("requested quantity or weight exceeds stock on hand")
)

func invalid(err error) error {
	return fmt.Errorf("%w: %s", ErrInvalidInput, err.Error())
}
