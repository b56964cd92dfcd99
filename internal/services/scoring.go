package services

import (
	"github.com/satmock-platform/exam-service/internal/models"
)

// ScorePolicy maps per-section correct counts onto the reported scale.
// Each section starts at SectionBase, earns PointsPerCorrect per correct
// response, and is clamped at SectionMax.
type ScorePolicy struct {
	SectionBase      int
	SectionMax       int
	PointsPerCorrect int
}

// DefaultScorePolicy is the digital SAT scale: 200-800 per section,
// 10 points per correct answer.
var DefaultScorePolicy = ScorePolicy{
	SectionBase:      200,
	SectionMax:       800,
	PointsPerCorrect: 10,
}

// SectionScores is the result of scoring one attempt.
type SectionScores struct {
	ReadingWriting int `json:"rw_score"`
	Math           int `json:"math_score"`
	Total          int `json:"total_score"`
}

// Compute scores a full response set. It is a pure function of its inputs:
// the same responses always produce the same scores, which is what makes
// finishing an attempt safely repeatable. Responses whose Question did not
// resolve carry no section tag and are not counted.
func (p ScorePolicy) Compute(responses []*models.Response) SectionScores {
	var rwCorrect, mathCorrect int
	for _, r := range responses {
		if !r.IsCorrect || r.Question == nil {
			continue
		}
		switch r.Question.Section {
		case models.SectionReadingWriting:
			rwCorrect++
		case models.SectionMath:
			mathCorrect++
		}
	}

	scores := SectionScores{
		ReadingWriting: p.sectionScore(rwCorrect),
		Math:           p.sectionScore(mathCorrect),
	}
	scores.Total = scores.ReadingWriting + scores.Math
	return scores
}

func (p ScorePolicy) sectionScore(correct int) int {
	score := p.SectionBase + correct*p.PointsPerCorrect
	if score > p.SectionMax {
		return p.SectionMax
	}
	return score
}
