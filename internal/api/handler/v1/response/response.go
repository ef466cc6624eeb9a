package response

import (
	"time"

	"github.com/sphenegem/gem-inventory-api/internal/domain"
)

type LoginResponse struct {
	Token     string       `json:"token"`
	ExpiresAt time.Time    `json:"expires_at"`
	Admin     domain.Admin `json:"admin"`
}

type MessageResponse struct {
	Message string `json:"message"`
}

type HealthResponse struct {
	Status string `json:"status"`
}
