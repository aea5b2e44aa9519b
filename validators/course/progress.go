package courseValidator

import (
	"encoding/json"
	"strconv"

	"github.com/gofiber/fiber/v2"
)

// UpdateProgress validates the watch-event body. The contract is exact:
// malformed JSON or missing fields answer 400 "Invalid request", a percent
// that cannot be read as a number answers 400 "Invalid percent_watched".
// Nothing is written before these checks pass.
func UpdateProgress() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var data map[string]json.RawMessage
		if err := json.Unmarshal(c.Body(), &data); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request"})
		}

		rawSegmentID, hasSegment := data["segment_id"]
		rawPercent, hasPercent := data["percent_watched"]
		if !hasSegment || !hasPercent || isNull(rawSegmentID) || isNull(rawPercent) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request"})
		}

		var segmentID uint
		if err := json.Unmarshal(rawSegmentID, &segmentID); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request"})
		}

		percent, ok := parseNumber(rawPercent)
		if !ok {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid percent_watched"})
		}

		c.Locals("segmentID", segmentID)
		c.Locals("percentWatched", percent)
		return c.Next()
	}
}

func isNull(raw json.RawMessage) bool {
	return string(raw) == "null"
}

// parseNumber accepts a JSON number or a numeric string
func parseNumber(raw json.RawMessage) (float64, bool) {
	var f float64
	if err := json.Unmarshal(raw, &f); err == nil {
		return f, true
	}

	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		if f, err := strconv.ParseFloat(s, 64); err == nil {
			return f, true
		}
	}

	return 0, false
}
