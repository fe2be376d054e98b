/*
Package advisor provides the scripted guidance assistant.

PURPOSE:
  Answers free-text questions with canned, role-aware replies. There is no
  language model: a message is lower-cased and matched against keyword
  groups in a fixed order; the first group that matches wins.

KEYWORD GROUPS (in match order):
  roi        roi, return, investment
  career     career, job, profession
  dashboard  dashboard, feature, navigate
  course     course, degree, college
  salary     salary, earning, income
  (none)     role-specific default reply

  Matching is by substring, so "jobs" matches "job" and "returning" matches
  "return".

ROLES:
  Wording differs per role. Every role-dependent choice is an exhaustive
  switch over role.Role.

SEE ALSO:
  - conversation.go: Message history persisted through session.Context
*/
package advisor

import (
	"strings"

	"github.com/warp/careerpath/role"
)

// Topic names the keyword group a reply came from.
type Topic string

const (
	TopicWelcome   Topic = "welcome"
	TopicROI       Topic = "roi"
	TopicCareer    Topic = "career"
	TopicDashboard Topic = "dashboard"
	TopicCourse    Topic = "course"
	TopicSalary    Topic = "salary"
	TopicDefault   Topic = "default"
)

// Reply is the assistant's answer to one message.
type Reply struct {
	Topic       Topic    `json:"topic"`
	Content     string   `json:"content"`
	Suggestions []string `json:"suggestions,omitempty"`
}

type keywordGroup struct {
	topic    Topic
	keywords []string
}

var groups = []keywordGroup{
	{TopicROI, []string{"roi", "return", "investment"}},
	{TopicCareer, []string{"career", "job", "profession"}},
	{TopicDashboard, []string{"dashboard", "feature", "navigate"}},
	{TopicCourse, []string{"course", "degree", "college"}},
	{TopicSalary, []string{"salary", "earning", "income"}},
}

// Classify returns the topic of a message.
func Classify(message string) Topic {
	m := strings.ToLower(message)
	for _, g := range groups {
		for _, kw := range g.keywords {
			if strings.Contains(m, kw) {
				return g.topic
			}
		}
	}
	return TopicDefault
}

// Welcome is the opening message of a conversation.
func Welcome(r role.Role) Reply {
	var content string
	switch r {
	case role.Student:
		content = "Hi! I'm your AI Career Advisor. I can help you explore career paths, understand course options, calculate education ROI, and guide you through your academic journey. What would you like to know?"
	case role.Parent:
		content = "Hello! I'm here to help you guide your child's educational journey. I can explain ROI calculations, compare degree options, discuss career prospects, and help you make informed investment decisions. How can I assist you today?"
	case role.Government:
		content = "Greetings! I can help you understand educational trends, analyze enrollment data, and provide insights into career market dynamics. What information are you looking for?"
	default:
		panic("advisor: unhandled role " + r.String())
	}
	return Reply{Topic: TopicWelcome, Content: content, Suggestions: InitialSuggestions(r)}
}

// InitialSuggestions are the prompts offered before the first question.
func InitialSuggestions(r role.Role) []string {
	switch r {
	case role.Student:
		return []string{
			"What career is right for me?",
			"How do I calculate education ROI?",
			"Which courses have the best job prospects?",
			"Help me explore the dashboard features",
		}
	case role.Parent:
		return []string{
			"How do I evaluate my child's career options?",
			"What does ROI mean in education?",
			"Which degrees offer the best returns?",
			"How can I support my child's career planning?",
		}
	case role.Government:
		return []string{
			"Show me enrollment trends",
			"What are the skill gaps in the market?",
			"How can we improve career guidance?",
			"Explain the dashboard analytics",
		}
	}
	panic("advisor: unhandled role " + r.String())
}

// Respond produces the canned reply for a message.
func Respond(r role.Role, message string) Reply {
	if !r.Valid() {
		panic("advisor: unhandled role " + r.String())
	}

	topic := Classify(message)
	switch topic {
	case TopicROI:
		return Reply{
			Topic:       topic,
			Content:     roiReply(r),
			Suggestions: []string{"Show me the ROI calculator", "Compare different degree ROIs", "What factors affect ROI?"},
		}
	case TopicCareer:
		return Reply{
			Topic:       topic,
			Content:     careerReply(r),
			Suggestions: []string{"Take the career quiz", "Show me trending careers", "What skills are in demand?"},
		}
	case TopicDashboard:
		return Reply{
			Topic:       topic,
			Content:     dashboardReply(r),
			Suggestions: []string{"Show me the ROI calculator", "Explain the recommendations", "How do I use the career path?"},
		}
	case TopicCourse:
		return Reply{
			Topic:       topic,
			Content:     courseReply(r),
			Suggestions: []string{"Compare engineering vs medical", "Show me course ROI data", "What are emerging fields?"},
		}
	case TopicSalary:
		return Reply{
			Topic:       topic,
			Content:     "Salary expectations vary by field and experience. Here are average starting salaries in India: Software Engineer (₹6-12 LPA), Data Scientist (₹8-15 LPA), Doctor (₹6-10 LPA), MBA Graduate (₹8-20 LPA), Civil Engineer (₹4-8 LPA). Remember, these grow significantly with experience. Location, company size, and skills also impact earnings.",
			Suggestions: []string{"Show salary trends by field", "Calculate my earning potential", "What skills increase salary?"},
		}
	}
	return Reply{Topic: TopicDefault, Content: defaultReply(r), Suggestions: InitialSuggestions(r)}
}

// =============================================================================
// ROLE-SPECIFIC WORDING
// =============================================================================

func roiReply(r role.Role) string {
	switch r {
	case role.Parent:
		return "ROI (Return on Investment) in education measures how much financial return you can expect from your child's educational investment. It's calculated as: (Expected Career Earnings - Total Education Cost) ÷ Total Education Cost × 100. For example, if a degree costs ₹10 lakhs and leads to ₹15 lakhs higher lifetime earnings, the ROI is 50%. Use our ROI Calculator to get personalized calculations!"
	case role.Student, role.Government:
		return "ROI helps you understand the financial value of your education. It compares what you'll earn in your career versus what you spend on education. Higher ROI means better financial returns. Check the ROI Calculator tab to see projections for different career paths!"
	}
	panic("advisor: unhandled role " + r.String())
}

func careerReply(r role.Role) string {
	switch r {
	case role.Student:
		return "Great question! Career choice depends on your interests, skills, and market demand. I recommend: 1) Take our Career Discovery Quiz, 2) Explore high-demand fields like AI/ML, Data Science, Healthcare, and Renewable Energy, 3) Consider salary prospects and growth potential. What subjects do you enjoy most?"
	case role.Parent, role.Government:
		return "When helping your child choose a career, consider their natural interests, academic strengths, and future market trends. Growing fields include Technology (AI, Cybersecurity), Healthcare, Green Energy, and Digital Marketing. The key is balancing passion with practical prospects."
	}
	panic("advisor: unhandled role " + r.String())
}

func dashboardReply(r role.Role) string {
	switch r {
	case role.Student:
		return "Your dashboard has 4 main sections: 1) Overview - see your progress and quick stats, 2) ROI Calculator - calculate education returns, 3) Recommendations - AI-suggested careers and courses, 4) Career Path - visualize your journey. Click any tab to explore!"
	case role.Parent:
		return "Your dashboard includes: Home (overview), Degree Comparison (compare options), Success Stories (real examples), Career Explorer (market insights), ROI Insights (financial analysis), and Resources (helpful guides). Use the sidebar to navigate between sections."
	case role.Government:
		return "Your dashboard provides enrollment analytics, student interest trends, supply-demand analysis, and policy insights. Use the charts and filters to drill down into specific data points."
	}
	panic("advisor: unhandled role " + r.String())
}

func courseReply(r role.Role) string {
	switch r {
	case role.Parent:
		return "When choosing courses, consider: 1) Market demand and job availability, 2) Your child's interests and aptitudes, 3) ROI and earning potential, 4) College reputation and placement records. Engineering, Medicine, Business, and emerging fields like Data Science offer good prospects. Would you like specific course recommendations?"
	case role.Student, role.Government:
		return "Course selection should align with your career goals. High-demand courses include Computer Science, Data Science, AI/ML, Healthcare, Business Analytics, and Digital Marketing. Consider factors like your interests, job market, salary potential, and course duration. What field interests you most?"
	}
	panic("advisor: unhandled role " + r.String())
}

func defaultReply(r role.Role) string {
	switch r {
	case role.Student:
		return "I'm here to help with your career planning! I can assist with career exploration, course selection, ROI calculations, skill development advice, and navigating your dashboard. What specific area would you like to explore?"
	case role.Parent:
		return "I'm here to support your child's educational journey! I can help you understand career options, calculate education ROI, compare degrees, and make informed investment decisions. What would you like to know more about?"
	case role.Government:
		return "I can help you analyze educational data, understand market trends, and develop policy insights. What specific information or analysis would you like to explore?"
	}
	panic("advisor: unhandled role " + r.String())
}
