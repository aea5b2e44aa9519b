package courseValidator

import (
	"encoding/json"
	"strconv"
	"strings"

	"github.com/openvisualizationacademy/ova-site/middleware"

	"github.com/gofiber/fiber/v2"
)

// SubmitQuiz validates the quiz id and normalizes the answers mapping to
// numeric ids. Grading must be total over all inputs, so an unreadable body
// or junk entries degrade to an empty/partial mapping instead of erroring.
func SubmitQuiz() fiber.Handler {
	return func(c *fiber.Ctx) error {
		quizIDStr := strings.TrimSpace(c.Params("quiz_id"))
		if quizIDStr == "" {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Quiz ID is required!", nil)
		}

		quizID, err := strconv.Atoi(quizIDStr)
		if err != nil || quizID <= 0 {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid Quiz ID!", nil)
		}

		answers := make(map[uint]uint)

		var body struct {
			Answers map[string]json.RawMessage `json:"answers"`
		}
		if err := json.Unmarshal(c.Body(), &body); err == nil {
			for key, raw := range body.Answers {
				qid, err := strconv.ParseUint(key, 10, 64)
				if err != nil {
					continue
				}
				if choiceID, ok := parseChoiceID(raw); ok {
					answers[uint(qid)] = choiceID
				}
			}
		}

		c.Locals("quizID", uint(quizID))
		c.Locals("quizAnswers", answers)
		return c.Next()
	}
}

// parseChoiceID accepts a JSON number or numeric string choice id
func parseChoiceID(raw json.RawMessage) (uint, bool) {
	f, ok := parseNumber(raw)
	if !ok || f < 0 {
		return 0, false
	}
	return uint(f), true
}
