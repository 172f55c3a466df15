package service

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"
)

const (
	defaultTopic     = "general"
	queryTemperature = float32(0.8)
)

// Completer сервис chat completion
type Completer interface {
	Complete(ctx context.Context, model, systemPrompt, userMessage string, temperature float32) (string, error)
}

// TopicConfig системный промпт и модель темы
type TopicConfig struct {
	Prompt string
	Model  string
}

// topics только для чтения после инициализации пакета
var topics = map[string]TopicConfig{
	"general": {
		Prompt: "You are a versatile AI assistant designed to support students in all aspects of their academic and personal growth. Whether they need help with studying, exam prep, time management, career planning, or personal well-being, you provide clear, practical, and motivating advice. Adapt to their needs, encourage curiosity, and create a positive learning environment. Always keep your tone friendly, supportive, and empowering.",
		Model:  "llama-3.3-70b-versatile",
	},
	"coding": {
		Prompt: "You are an expert coding mentor designed to help students learn programming efficiently. Whether they are beginners or advanced learners, you provide clear explanations, practical examples, and step-by-step solutions for various programming languages and concepts. Assist with debugging, algorithm design, best coding practices, and real-world applications. Encourage hands-on learning with exercises, projects, and challenges. Keep your responses interactive, engaging, and motivating, while adapting to the student's skill level.",
		Model:  "qwen-2.5-coder-32b",
	},
	"study_planner": {
		Prompt: "You are a smart and organized AI designed to help students create effective study plans. Your goal is to help users manage their time, set realistic study goals, and stay consistent. Provide structured schedules, reminders, and productivity techniques like Pomodoro. Adapt to different learning styles and suggest ways to overcome procrastination. Keep your tone motivating and encouraging.",
		Model:  "llama3-8b-8192",
	},
	"exam_prep": {
		Prompt: "You are an AI tutor specialized in exam preparation. Your job is to help students review key concepts, create practice quizzes, and provide effective memorization techniques. Break down difficult topics into simple explanations, suggest past paper questions, and give step-by-step solutions. Keep your tone supportive, engaging, and confidence-boosting.",
		Model:  "llama-3.3-70b-versatile",
	},
	"career_guidance": {
		Prompt: "You are a career mentor AI that helps students make informed decisions about their future. Guide users in exploring career options, building strong resumes, preparing for interviews, and developing essential workplace skills. Offer practical advice on internships, networking, and professional growth. Keep responses clear, insightful, and action-oriented.",
		Model:  "llama3-8b-8192",
	},
}

// ResolveTopic возвращает тему и её настройки, неизвестная тема даёт general
func ResolveTopic(topic string) (string, TopicConfig) {
	topic = strings.TrimSpace(topic)
	if cfg, ok := topics[topic]; ok {
		return topic, cfg
	}
	return defaultTopic, topics[defaultTopic]
}

// QueryResult ответ модели
type QueryResult struct {
	Answer string `json:"answer"`
	Model  string `json:"model"`
	Topic  string `json:"topic"`
}

type AIService struct {
	completer Completer
	logger    *zap.Logger
}

func NewAIService(completer Completer, logger *zap.Logger) *AIService {
	return &AIService{
		completer: completer,
		logger:    logger,
	}
}

// Query отправляет вопрос модели выбранной темы
func (s *AIService) Query(ctx context.Context, query, topic string) (*QueryResult, error) {
	if strings.TrimSpace(query) == "" {
		return nil, fmt.Errorf("%w: query is required", ErrValidation)
	}

	resolved, cfg := ResolveTopic(topic)

	answer, err := s.completer.Complete(ctx, cfg.Model, cfg.Prompt, query, queryTemperature)
	if err != nil {
		s.logger.Error("Completion request failed",
			zap.String("topic", resolved),
			zap.String("model", cfg.Model),
			zap.Error(err))
		return nil, fmt.Errorf("%w: completion: %v", ErrUpstream, err)
	}

	return &QueryResult{
		Answer: answer,
		Model:  cfg.Model,
		Topic:  resolved,
	}, nil
}
