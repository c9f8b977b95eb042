package mongodb

import (
	"context"
	"errors"
	"time"

	"github.com/AndresBaldeonMora/SM-Buscador-Peliculas/internal/domain/models"
	"github.com/AndresBaldeonMora/SM-Buscador-Peliculas/internal/storage"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	commentsCollection = "comments"
	usersCollection    = "users"
)

type MongoDB struct {
	Client *mongo.Client
	db     *mongo.Database
}

func New(ctx context.Context, uri, database string) (*MongoDB, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, err
	}
	if err := client.Ping(ctx, nil); err != nil {
		return nil, err
	}
	return &MongoDB{Client: client, db: client.Database(database)}, nil
}

func (m *MongoDB) Close(ctx context.Context) error {
	return m.Client.Disconnect(ctx)
}

// EnsureIndexes creates the indexes the query paths rely on: comments are
// looked up by movie id ordered by creation time descending, users by
// unique email.
func (m *MongoDB) EnsureIndexes(ctx context.Context) error {
	_, err := m.db.Collection(commentsCollection).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "movieId", Value: 1}, {Key: "createdAt", Value: -1}},
	})
	if err != nil {
		return err
	}
	_, err = m.db.Collection(usersCollection).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	return err
}

// InsertComment stores one immutable comment record. CreatedAt is assigned
// here, server-side.
func (m *MongoDB) InsertComment(ctx context.Context, movieID, userEmail, text string) error {
	comment := models.Comment{
		MovieID:   movieID,
		UserEmail: userEmail,
		Text:      text,
		CreatedAt: time.Now().UTC(),
	}
	_, err := m.db.Collection(commentsCollection).InsertOne(ctx, comment)
	return err
}

// ListComments returns all comments for the movie, newest first.
func (m *MongoDB) ListComments(ctx context.Context, movieID string) ([]models.Comment, error) {
	cursor, err := m.db.Collection(commentsCollection).Find(
		ctx,
		bson.M{"movieId": movieID},
		options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}}),
	)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)
	comments := []models.Comment{}
	if err := cursor.All(ctx, &comments); err != nil {
		return nil, err
	}
	return comments, nil
}

func (m *MongoDB) InsertUser(ctx context.Context, user *models.User) error {
	user.CreatedAt = time.Now().UTC()
	user.UpdatedAt = user.CreatedAt
	_, err := m.db.Collection(usersCollection).InsertOne(ctx, user)
	if mongo.IsDuplicateKeyError(err) {
		return storage.ErrConflict
	}
	return err
}

func (m *MongoDB) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	return m.getUser(ctx, bson.M{"email": email})
}

func (m *MongoDB) GetUserByID(ctx context.Context, id string) (*models.User, error) {
	return m.getUser(ctx, bson.M{"_id": id})
}

func (m *MongoDB) getUser(ctx context.Context, filter bson.M) (*models.User, error) {
	var user models.User
	err := m.db.Collection(usersCollection).FindOne(ctx, filter).Decode(&user)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, storage.ErrNotFound
		}
		return nil, err
	}
	return &user, nil
}

// UpdateUserPassword replaces the stored password hash.
func (m *MongoDB) UpdateUserPassword(ctx context.Context, id string, passwordHash []byte) error {
	res, err := m.db.Collection(usersCollection).UpdateOne(
		ctx,
		bson.M{"_id": id},
		bson.M{"$set": bson.M{"passwordHash": passwordHash, "updatedAt": time.Now().UTC()}},
	)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return storage.ErrNotFound
	}
	return nil
}
