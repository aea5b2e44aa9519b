package controllers

import (
	"encoding/json"
	"math"
	"strconv"

	"github.com/openvisualizationacademy/ova-site/database"
	courseModels "github.com/openvisualizationacademy/ova-site/models/course"

	"github.com/gofiber/fiber/v2"
)

// questionResult is one graded question in the submission response
type questionResult struct {
	Question        string `json:"question"`
	SubmittedChoice *uint  `json:"submitted_choice"`
	IsCorrect       bool   `json:"is_correct"`
}

// answersSnapshot is the persisted shape of a graded submission, keyed by
// decimal question-id strings on both write and read so the page can be
// rehydrated after a reload.
type answersSnapshot struct {
	Answers map[string]uint `json:"answers"`
	Results map[string]bool `json:"results"`
}

// SubmitQuiz grades a submission and, for authenticated users, persists the
// result and marks the owning segment fully watched. Grading is total:
// missing answers and foreign choice ids are simply incorrect.
func SubmitQuiz(c *fiber.Ctx) error {
	quizID := c.Locals("quizID").(uint)
	answers := c.Locals("quizAnswers").(map[uint]uint)

	// Check if quiz exists
	var quiz courseModels.Quiz
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", quizID, false).First(&quiz).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Quiz not found"})
	}

	score, correct, total, details := gradeQuiz(&quiz, answers)

	userID, authenticated := c.Locals("userId").(uint)

	// Save progress only for authenticated users
	if authenticated {
		saveQuizProgress(userID, &quiz, score, answers, details)

		// Quiz completion implies segment completion: mark the owning
		// segment fully watched and run the chapter/course cascade
		var segment courseModels.Segment
		if err := database.Database.Db.Where("id = ? AND is_deleted = ?", quiz.SegmentID, false).First(&segment).Error; err == nil {
			applyWatchEvent(userID, &segment, 100)
		}
	}

	// Details keyed by question id, serialized as strings
	detailsOut := make(map[string]questionResult, len(details))
	for qid, res := range details {
		detailsOut[strconv.FormatUint(uint64(qid), 10)] = res
	}

	return c.JSON(fiber.Map{
		"quiz_id": quiz.ID,
		"correct": correct,
		"total":   total,
		"score":   score,
		"details": detailsOut,
		"saved":   authenticated,
	})
}

// gradeQuiz evaluates submitted choices against the quiz's questions.
// A missing answer, an unknown choice id, or a choice belonging to another
// question all grade as incorrect; grading never fails.
// score = round(100 * correct / total), 0 for an empty quiz.
func gradeQuiz(quiz *courseModels.Quiz, answers map[uint]uint) (int, int, int, map[uint]questionResult) {
	db := database.Database.Db

	var questions []courseModels.Question
	db.Where("quiz_id = ? AND is_deleted = ?", quiz.ID, false).Order("order_index asc").Find(&questions)

	total := len(questions)
	correctCount := 0
	details := make(map[uint]questionResult, total)

	for _, q := range questions {
		submittedID, submitted := answers[q.ID]

		isCorrect := false
		var submittedChoice *uint

		// Evaluate submitted answer, scoped to this question
		if submitted && submittedID != 0 {
			id := submittedID
			submittedChoice = &id

			var choice courseModels.Choice
			if err := db.Where("id = ? AND question_id = ? AND is_deleted = ?", submittedID, q.ID, false).First(&choice).Error; err == nil {
				isCorrect = choice.IsCorrect
			}
		}

		if isCorrect {
			correctCount++
		}

		details[q.ID] = questionResult{
			Question:        q.Text,
			SubmittedChoice: submittedChoice,
			IsCorrect:       isCorrect,
		}
	}

	score := 0
	if total > 0 {
		score = int(math.Round(float64(correctCount) / float64(total) * 100))
	}

	return score, correctCount, total, details
}

// saveQuizProgress upserts the (user, quiz) row with the score and a
// structured snapshot of the submission. Resubmission overwrites.
func saveQuizProgress(userID uint, quiz *courseModels.Quiz, score int, answers map[uint]uint, details map[uint]questionResult) {
	db := database.Database.Db

	snapshot := answersSnapshot{
		Answers: make(map[string]uint, len(answers)),
		Results: make(map[string]bool, len(details)),
	}
	for qid, choiceID := range answers {
		snapshot.Answers[strconv.FormatUint(uint64(qid), 10)] = choiceID
	}
	for qid, res := range details {
		snapshot.Results[strconv.FormatUint(uint64(qid), 10)] = res.IsCorrect
	}

	raw, err := json.Marshal(snapshot)
	if err != nil {
		return
	}

	var qp courseModels.QuizProgress
	if err := db.Where("user_id = ? AND quiz_id = ?", userID, quiz.ID).First(&qp).Error; err != nil {
		qp = courseModels.QuizProgress{UserID: userID, QuizID: quiz.ID}
	}
	qp.Completed = true
	qp.Score = score
	qp.AnswersSnapshot = raw
	db.Save(&qp)
}

// quizSubmissionView mirrors the shape a fresh grading produces so the
// segment page can show "already submitted" state without re-grading.
type quizSubmissionView struct {
	Answers   map[uint]uint `json:"answers"`
	Results   map[uint]bool `json:"results"`
	Submitted bool          `json:"submitted"`
	Score     int           `json:"score"`
}

// hydrateQuizFromProgress reloads the latest snapshot for a (user, quiz)
// pair. Snapshot keys are normalized back to numeric question ids. Returns
// nil when there is no previous submission; absence is not an error.
func hydrateQuizFromProgress(userID uint, quizID uint) *quizSubmissionView {
	var qp courseModels.QuizProgress
	err := database.Database.Db.Where("user_id = ? AND quiz_id = ? AND is_deleted = ?", userID, quizID, false).First(&qp).Error
	if err != nil || len(qp.AnswersSnapshot) == 0 {
		return nil
	}

	var snapshot answersSnapshot
	if err := json.Unmarshal(qp.AnswersSnapshot, &snapshot); err != nil {
		return nil
	}

	view := quizSubmissionView{
		Answers:   make(map[uint]uint, len(snapshot.Answers)),
		Results:   make(map[uint]bool, len(snapshot.Results)),
		Submitted: true,
		Score:     qp.Score,
	}
	for k, v := range snapshot.Answers {
		qid, err := strconv.ParseUint(k, 10, 64)
		if err != nil {
			continue
		}
		view.Answers[uint(qid)] = v
	}
	for k, v := range snapshot.Results {
		qid, err := strconv.ParseUint(k, 10, 64)
		if err != nil {
			continue
		}
		view.Results[uint(qid)] = v
	}

	return &view
}
