package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/Kanishk-03-Jain/QuizMaster/internal/config"
	"github.com/Kanishk-03-Jain/QuizMaster/internal/database"
	"github.com/Kanishk-03-Jain/QuizMaster/internal/domain"
	"github.com/Kanishk-03-Jain/QuizMaster/internal/logger"
	"github.com/Kanishk-03-Jain/QuizMaster/internal/repository"
	"github.com/Kanishk-03-Jain/QuizMaster/internal/util"

	"go.uber.org/zap"
)

const seedFilePath = "configs/seed_data/demo_quizzes.json"

type seedOption struct {
	Text    string `json:"text"`
	Correct bool   `json:"correct"`
}

type seedQuestion struct {
	Text          string       `json:"text"`
	Type          string       `json:"type"`
	Options       []seedOption `json:"options"`
	CorrectAnswer string       `json:"correct_answer"`
	Points        int          `json:"points"`
}

type seedQuiz struct {
	TeacherID       string         `json:"teacher_id"`
	Title           string         `json:"title"`
	Description     string         `json:"description"`
	DurationSeconds int            `json:"duration_seconds"`
	Questions       []seedQuestion `json:"questions"`
}

func main() {
	ctx := context.Background()
	cfg, err := config.LoadConfig()
	if err != nil {
		fmt.Printf("Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	if err := logger.Initialize(cfg.Logger); err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()
	log := logger.Get()

	log.Info("Starting demo data seeding...")
	db, err := database.NewSQLXPostgresDB(cfg.GetDSN())
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	byteValue, err := os.ReadFile(seedFilePath)
	if err != nil {
		log.Fatal("Failed to read seed file", zap.String("path", seedFilePath), zap.Error(err))
	}

	var quizzes []seedQuiz
	if err := json.Unmarshal(byteValue, &quizzes); err != nil {
		log.Fatal("Failed to unmarshal seed data", zap.Error(err))
	}
	log.Info("Loaded seed data", zap.Int("quizzes", len(quizzes)))

	repo := repository.NewSQLXQuizRepository(db)
	for _, sq := range quizzes {
		if err := seedOne(ctx, repo, sq); err != nil {
			log.Error("Failed to seed quiz", zap.String("title", sq.Title), zap.Error(err))
			continue
		}
		log.Info("Seeded quiz", zap.String("title", sq.Title), zap.Int("questions", len(sq.Questions)))
	}
	log.Info("Demo data seeding completed.")
}

func seedOne(ctx context.Context, repo domain.QuizRepository, sq seedQuiz) error {
	quiz := domain.NewQuiz(sq.TeacherID, sq.Title, sq.Description, sq.DurationSeconds)
	quiz.ID = util.NewULID()
	if err := quiz.Validate(); err != nil {
		return err
	}
	if err := repo.SaveQuiz(ctx, quiz); err != nil {
		return err
	}

	for i, sqq := range sq.Questions {
		question := domain.NewQuestion(quiz.ID, sqq.Text, domain.QuestionType(sqq.Type), sqq.CorrectAnswer, sqq.Points, i)
		question.ID = util.NewULID()
		for j, opt := range sqq.Options {
			option := domain.Option{
				ID:         util.NewULID(),
				QuestionID: question.ID,
				Text:       opt.Text,
				OrderIndex: j,
			}
			question.Options = append(question.Options, option)
			if opt.Correct {
				question.CorrectAnswer = option.ID
			}
		}
		if err := question.Validate(); err != nil {
			return err
		}
		if err := repo.SaveQuestion(ctx, question); err != nil {
			return err
		}
	}
	return nil
}
