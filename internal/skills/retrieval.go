package skills

import (
	"context"

	"tablebot/internal/classifier"
	"tablebot/internal/intent"
	"tablebot/internal/session"
)

// QuestionSkill answers general knowledge questions from the corpus.
type QuestionSkill struct {
	retriever Retriever
	threshold float64
	fallbacks []string
	pick      Picker
}

func NewQuestionSkill(retriever Retriever, threshold float64, fallbacks []string, pick Picker) *QuestionSkill {
	return &QuestionSkill{retriever: retriever, threshold: threshold, fallbacks: fallbacks, pick: pick}
}

func (s *QuestionSkill) Label() intent.Label { return intent.QuestionAnswering }

func (s *QuestionSkill) Handle(_ context.Context, input string, _ *session.Context) string {
	if answer, score := s.retriever.BestMatch(input); answer != "" && score >= s.threshold {
		return answer
	}
	return choose(s.pick, s.fallbacks)
}

// SmallTalkSkill keeps up informal conversation.
type SmallTalkSkill struct {
	retriever Retriever
	threshold float64
	fallbacks []string
	sentiment SentimentAnalyzer
	pick      Picker
}

func NewSmallTalkSkill(retriever Retriever, threshold float64, fallbacks []string, sentiment SentimentAnalyzer, pick Picker) *SmallTalkSkill {
	return &SmallTalkSkill{retriever: retriever, threshold: threshold, fallbacks: fallbacks, sentiment: sentiment, pick: pick}
}

func (s *SmallTalkSkill) Label() intent.Label { return intent.SmallTalk }

func (s *SmallTalkSkill) Handle(_ context.Context, input string, sess *session.Context) string {
	reply, score := s.retriever.BestMatch(input)
	if reply == "" || score < s.threshold {
		reply = choose(s.pick, s.fallbacks)
	}
	reply = classifier.Fill(reply, map[string]string{"agent": sess.AgentName})
	return reply + s.sentiment.Sentiment(input).Emoji()
}

// UnknownSkill answers turns no other skill claimed.
type UnknownSkill struct {
	text string
}

func NewUnknownSkill(text string) *UnknownSkill {
	return &UnknownSkill{text: text}
}

func (s *UnknownSkill) Label() intent.Label { return intent.Unknown }

func (s *UnknownSkill) Handle(context.Context, string, *session.Context) string {
	return s.text
}
