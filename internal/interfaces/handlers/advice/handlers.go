package advice

import (
	"errors"

	"mandi-core/internal/advisory"
	"mandi-core/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// Handlers exposes the price advisory client.
type Handlers struct {
	Client *advisory.Client
}

// PriceAdviceRequest body.
type PriceAdviceRequest struct {
	CropType   string  `json:"crop_type"`
	QuantityKg float64 `json:"quantity_kg"`
}

// PriceAdvice POST /api/v1/advice/price.
func (h *Handlers) PriceAdvice(c *fiber.Ctx) error {
	var req PriceAdviceRequest
	if err := c.BodyParser(&req); err != nil {
		return response.Error(c, "Invalid request body", fiber.StatusBadRequest, nil)
	}
	if req.CropType == "" {
		return response.Error(c, "Missing required field: crop_type", fiber.StatusBadRequest, nil)
	}
	if req.QuantityKg <= 0 {
		return response.Error(c, "quantity_kg must be greater than zero", fiber.StatusBadRequest, nil)
	}

	advice, err := h.Client.GetAdvice(c.UserContext(), req.CropType, req.QuantityKg)
	if err != nil {
		if errors.Is(err, advisory.ErrTransport) {
			return response.Error(c, err.Error(), fiber.StatusBadGateway, nil)
		}
		return response.Error(c, "Internal Server Error", fiber.StatusInternalServerError, nil)
	}
	return response.Success(c, "Price advice generated", fiber.Map{"advice": advice}, nil)
}
