package comments

import (
	"context"
	"log/slog"
	"time"

	"github.com/AndresBaldeonMora/SM-Buscador-Peliculas/internal/domain/models"
	"github.com/AndresBaldeonMora/SM-Buscador-Peliculas/internal/metrics"
)

type CommentsStorage interface {
	InsertComment(ctx context.Context, movieID, userEmail, text string) error
	ListComments(ctx context.Context, movieID string) ([]models.Comment, error)
}

type TaskExecutor interface {
	Add(task func())
}

const writeTimeout = 5 * time.Second

// CommentService is the write/read surface over the remote comment
// collection. Writes are fire-and-forget: a failed insert is logged and the
// caller only finds out by re-querying.
type CommentService struct {
	log          *slog.Logger
	storage      CommentsStorage
	taskExecutor TaskExecutor
}

func New(log *slog.Logger, storage CommentsStorage, taskExecutor TaskExecutor) *CommentService {
	return &CommentService{
		log:          log,
		storage:      storage,
		taskExecutor: taskExecutor,
	}
}

// Add enqueues one immutable comment record. The creation timestamp is
// assigned by the storage layer.
func (s *CommentService) Add(movieID, userEmail, text string) {
	const op = "comments.CommentService.Add"
	log := s.log.With("op", op, "movie_id", movieID, "user_email", userEmail)
	s.taskExecutor.Add(func() {
		ctx, cancel := context.WithTimeout(context.Background(), writeTimeout)
		defer cancel()
		if err := s.storage.InsertComment(ctx, movieID, userEmail, text); err != nil {
			metrics.CommentWrites.WithLabelValues("error").Inc()
			log.Error("Error inserting comment", "errMsg", err.Error())
			return
		}
		metrics.CommentWrites.WithLabelValues("ok").Inc()
	})
}

// List returns the movie's comments newest-first. A failed read degrades to
// an empty sequence, indistinguishable from "no comments yet".
func (s *CommentService) List(ctx context.Context, movieID string) []models.Comment {
	const op = "comments.CommentService.List"
	log := s.log.With("op", op, "movie_id", movieID)
	comments, err := s.storage.ListComments(ctx, movieID)
	if err != nil {
		log.Error("Error listing comments", "errMsg", err.Error())
		return []models.Comment{}
	}
	return comments
}
