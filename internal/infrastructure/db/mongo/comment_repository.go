package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/webware/award-board/internal/core/domain"
)

const commentCollection = "comments"

type MongoCommentRepository struct {
	coll *mongo.Collection
}

func NewCommentRepository(db *mongo.Database) *MongoCommentRepository {
	return &MongoCommentRepository{coll: db.Collection(commentCollection)}
}

// Comments carry their own opaque id separate from Mongo's _id, so handlers
// never leak ObjectIDs to clients.
type mongoComment struct {
	OID       primitive.ObjectID `bson:"_id,omitempty"`
	ID        string             `bson:"id"`
	Username  string             `bson:"username"`
	Message   string             `bson:"message"`
	Timestamp int64              `bson:"timestamp"`
}

// EnsureIndexes creates the comment id and timestamp indexes. Call once at startup.
func (r *MongoCommentRepository) EnsureIndexes(ctx context.Context) error {
	_, err := r.coll.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "id", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{
			Keys: bson.D{{Key: "timestamp", Value: -1}},
		},
	})
	if err != nil {
		return fmt.Errorf("create comment indexes: %w", err)
	}
	return nil
}

func (r *MongoCommentRepository) Insert(ctx context.Context, comment *domain.Comment) error {
	doc := mongoComment{
		ID:        comment.ID,
		Username:  comment.Username,
		Message:   comment.Message,
		Timestamp: comment.Timestamp.UnixMilli(),
	}

	if _, err := r.coll.InsertOne(ctx, doc); err != nil {
		return fmt.Errorf("insert comment: %w", err)
	}
	return nil
}

func (r *MongoCommentRepository) FindByID(ctx context.Context, id string) (*domain.Comment, error) {
	var mc mongoComment
	if err := r.coll.FindOne(ctx, bson.M{"id": id}).Decode(&mc); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, domain.ErrCommentNotFound
		}
		return nil, fmt.Errorf("find comment: %w", err)
	}
	return toDomainComment(mc), nil
}

func (r *MongoCommentRepository) Delete(ctx context.Context, id string) error {
	res, err := r.coll.DeleteOne(ctx, bson.M{"id": id})
	if err != nil {
		return fmt.Errorf("delete comment: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrCommentNotFound
	}
	return nil
}

func (r *MongoCommentRepository) ListByRecency(ctx context.Context) ([]domain.Comment, error) {
	cursor, err := r.coll.Find(ctx, bson.M{},
		options.Find().SetSort(bson.D{{Key: "timestamp", Value: -1}}))
	if err != nil {
		return nil, fmt.Errorf("list comments: %w", err)
	}
	defer cursor.Close(ctx)

	var docs []mongoComment
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode comments: %w", err)
	}

	comments := make([]domain.Comment, 0, len(docs))
	for _, mc := range docs {
		comments = append(comments, *toDomainComment(mc))
	}
	return comments, nil
}

func toDomainComment(mc mongoComment) *domain.Comment {
	return &domain.Comment{
		ID:        mc.ID,
		Username:  mc.Username,
		Message:   mc.Message,
		Timestamp: unixMilliToTime(mc.Timestamp),
	}
}

func unixMilliToTime(ts int64) time.Time {
	if ts == 0 {
		return time.Time{}
	}
	return time.UnixMilli(ts).UTC()
}
