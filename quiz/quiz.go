/*
Package quiz implements the four-question career discovery quiz.

PURPOSE:
  Each answer points at one of four traits. Scoring counts the traits,
  converts the counts to rounded percentages and names the strongest trait,
  which selects the career profile shown to the student.

QUESTIONS:
  1. Interests          - What type of activities do you enjoy most?
  2. Skills             - Which skill comes most naturally to you?
  3. Work Environment   - What work environment appeals to you most?
  4. Goals              - What motivates you the most?

  Every question has options "a".."d", one per trait.

SCORING:
  percentage(trait) = round(count(trait) / answered * 100), half away from zero
  best              = highest percentage; ties go to the earlier trait in
                      Traits order (analytical, creative, social, leadership)
  No answers        = every percentage 0, best = analytical

SEE ALSO:
  - api/handlers_quiz.go:   HTTP endpoints
  - store/sqlite/sqlite.go: quiz_results table
*/
package quiz

import (
	"errors"
	"fmt"
	"math"
	"sort"
)

// ID identifies this quiz in stored results.
const ID = "career-quiz-1"

// ErrInvalidAnswer is returned for unknown question ids or option ids.
var ErrInvalidAnswer = errors.New("invalid quiz answer")

// =============================================================================
// TRAITS AND PROFILES
// =============================================================================

// Trait is the disposition an answer points at.
type Trait string

const (
	Analytical Trait = "analytical"
	Creative   Trait = "creative"
	Social     Trait = "social"
	Leadership Trait = "leadership"
)

// Traits is the fixed tie-break order.
var Traits = []Trait{Analytical, Creative, Social, Leadership}

// Profile is the career archetype shown for a trait.
type Profile struct {
	Trait       Trait  `json:"trait"`
	Title       string `json:"title"`
	Description string `json:"description"`
}

var profiles = map[Trait]Profile{
	Analytical: {Analytical, "The Analytical Thinker", "You excel at problem-solving, research, and logical thinking."},
	Creative:   {Creative, "The Creative Innovator", "You thrive on creativity, innovation, and artistic expression."},
	Social:     {Social, "The People Helper", "You are passionate about helping others and making a difference."},
	Leadership: {Leadership, "The Natural Leader", "You excel at leading teams, making decisions, and driving results."},
}

// ProfileFor returns the profile of a trait.
func ProfileFor(t Trait) (Profile, bool) {
	p, ok := profiles[t]
	return p, ok
}

// =============================================================================
// QUESTIONS
// =============================================================================

// Option is one selectable answer.
type Option struct {
	ID    string `json:"id"`
	Text  string `json:"text"`
	Trait Trait  `json:"value"`
}

// Question is one quiz item.
type Question struct {
	ID       int      `json:"id"`
	Category string   `json:"category"`
	Text     string   `json:"question"`
	Options  []Option `json:"options"`
}

var questions = []Question{
	{
		ID:       1,
		Category: "Interests",
		Text:     "What type of activities do you enjoy most?",
		Options: []Option{
			{"a", "Solving complex problems and puzzles", Analytical},
			{"b", "Creating art, music, or writing", Creative},
			{"c", "Helping and supporting others", Social},
			{"d", "Leading teams and making decisions", Leadership},
		},
	},
	{
		ID:       2,
		Category: "Skills",
		Text:     "Which skill comes most naturally to you?",
		Options: []Option{
			{"a", "Mathematical and logical thinking", Analytical},
			{"b", "Communication and presentation", Social},
			{"c", "Innovation and creative thinking", Creative},
			{"d", "Organization and planning", Leadership},
		},
	},
	{
		ID:       3,
		Category: "Work Environment",
		Text:     "What work environment appeals to you most?",
		Options: []Option{
			{"a", "Quiet office with focus on research", Analytical},
			{"b", "Creative studio or flexible workspace", Creative},
			{"c", "Community center or healthcare facility", Social},
			{"d", "Corporate office or boardroom", Leadership},
		},
	},
	{
		ID:       4,
		Category: "Goals",
		Text:     "What motivates you the most?",
		Options: []Option{
			{"a", "Solving big challenges", Analytical},
			{"b", "Expressing creativity", Creative},
			{"c", "Making a difference in people's lives", Social},
			{"d", "Leading projects to success", Leadership},
		},
	},
}

// Questions returns the quiz items in order.
func Questions() []Question {
	out := make([]Question, len(questions))
	for i, q := range questions {
		q.Options = append([]Option(nil), q.Options...)
		out[i] = q
	}
	return out
}

// =============================================================================
// SCORING
// =============================================================================

// TraitScore is one trait's share of the answers.
type TraitScore struct {
	Trait      Trait `json:"trait"`
	Count      int   `json:"count"`
	Percentage int   `json:"percentage"`
}

// Outcome is the scored quiz.
type Outcome struct {
	Answered int          `json:"answered"`
	Complete bool         `json:"complete"`
	Scores   []TraitScore `json:"scores"`
	Best     Profile      `json:"best"`
}

// Score evaluates answers keyed by question id with option ids as values.
func Score(answers map[int]string) (Outcome, error) {
	counts := make(map[Trait]int, len(Traits))

	ids := make([]int, 0, len(answers))
	for id := range answers {
		ids = append(ids, id)
	}
	sort.Ints(ids)

	for _, id := range ids {
		trait, err := traitFor(id, answers[id])
		if err != nil {
			return Outcome{}, err
		}
		counts[trait]++
	}

	total := len(answers)
	out := Outcome{
		Answered: total,
		Complete: total == len(questions),
		Scores:   make([]TraitScore, len(Traits)),
	}

	best := Analytical
	bestPct := -1
	for i, t := range Traits {
		pct := 0
		if total > 0 {
			pct = int(math.Round(float64(counts[t]) / float64(total) * 100))
		}
		out.Scores[i] = TraitScore{Trait: t, Count: counts[t], Percentage: pct}
		if pct > bestPct {
			best, bestPct = t, pct
		}
	}
	out.Best = profiles[best]
	return out, nil
}

func traitFor(questionID int, optionID string) (Trait, error) {
	for _, q := range questions {
		if q.ID != questionID {
			continue
		}
		for _, o := range q.Options {
			if o.ID == optionID {
				return o.Trait, nil
			}
		}
		return "", fmt.Errorf("%w: question %d has no option %q", ErrInvalidAnswer, questionID, optionID)
	}
	return "", fmt.Errorf("%w: no question %d", ErrInvalidAnswer, questionID)
}
