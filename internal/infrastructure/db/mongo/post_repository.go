package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/constellation/social-api/internal/core/domain"
)

const postsCollection = "posts"

type PostRepository struct {
	coll *mongo.Collection
}

func NewPostRepository(db *mongo.Database) *PostRepository {
	return &PostRepository{coll: db.Collection(postsCollection)}
}

type commentDocument struct {
	ID        string    `bson:"id"`
	AuthorID  string    `bson:"author_id"`
	Content   string    `bson:"content"`
	CreatedAt time.Time `bson:"created_at"`
}

type postDocument struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"`
	AuthorID  string             `bson:"author_id"`
	Content   string             `bson:"content"`
	Likes     []string           `bson:"likes"`
	Comments  []commentDocument  `bson:"comments"`
	CreatedAt time.Time          `bson:"created_at"`
}

func (r *PostRepository) Create(ctx context.Context, post *domain.Post) (*domain.Post, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc := postDocument{
		AuthorID:  post.AuthorID,
		Content:   post.Content,
		Likes:     append([]string{}, post.Likes...),
		Comments:  []commentDocument{},
		CreatedAt: post.CreatedAt.UTC(),
	}

	res, err := r.coll.InsertOne(ctx, doc)
	if err != nil {
		return nil, fmt.Errorf("insert post: %w", err)
	}

	doc.ID, _ = res.InsertedID.(primitive.ObjectID)
	return doc.toDomain(), nil
}

// List returns posts newest first.
func (r *PostRepository) List(ctx context.Context, page, limit int) ([]*domain.Post, int64, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	total, err := r.coll.CountDocuments(ctx, bson.M{})
	if err != nil {
		return nil, 0, fmt.Errorf("count posts: %w", err)
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}, {Key: "_id", Value: -1}}).
		SetSkip(int64((page - 1) * limit)).
		SetLimit(int64(limit))

	cur, err := r.coll.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, 0, fmt.Errorf("list posts: %w", err)
	}
	defer cur.Close(ctx)

	var docs []postDocument
	if err := cur.All(ctx, &docs); err != nil {
		return nil, 0, fmt.Errorf("decode posts: %w", err)
	}

	posts := make([]*domain.Post, 0, len(docs))
	for _, d := range docs {
		posts = append(posts, d.toDomain())
	}
	return posts, total, nil
}

func (r *PostRepository) Like(ctx context.Context, postID, userID string) error {
	return r.update(ctx, postID, bson.M{"$addToSet": bson.M{"likes": userID}})
}

func (r *PostRepository) AddComment(ctx context.Context, postID string, comment *domain.Comment) (*domain.Comment, error) {
	doc := commentDocument{
		ID:        comment.ID,
		AuthorID:  comment.AuthorID,
		Content:   comment.Content,
		CreatedAt: comment.CreatedAt.UTC(),
	}
	if err := r.update(ctx, postID, bson.M{"$push": bson.M{"comments": doc}}); err != nil {
		return nil, err
	}
	out := doc.toDomain()
	return &out, nil
}

func (r *PostRepository) update(ctx context.Context, postID string, update bson.M) error {
	oid, err := primitive.ObjectIDFromHex(postID)
	if err != nil {
		return domain.ErrPostNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.coll.UpdateOne(ctx, bson.M{"_id": oid}, update)
	if err != nil {
		return fmt.Errorf("update post: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrPostNotFound
	}
	return nil
}

func (r *PostRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	_, err := r.coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "created_at", Value: -1}},
	})
	return err
}

func (d commentDocument) toDomain() domain.Comment {
	return domain.Comment{
		ID:        d.ID,
		AuthorID:  d.AuthorID,
		Content:   d.Content,
		CreatedAt: d.CreatedAt.UTC(),
	}
}

func (d postDocument) toDomain() *domain.Post {
	likes := d.Likes
	if likes == nil {
		likes = []string{}
	}
	comments := make([]domain.Comment, 0, len(d.Comments))
	for _, c := range d.Comments {
		comments = append(comments, c.toDomain())
	}
	return &domain.Post{
		ID:        d.ID.Hex(),
		AuthorID:  d.AuthorID,
		Content:   d.Content,
		Likes:     likes,
		Comments:  comments,
		CreatedAt: d.CreatedAt.UTC(),
	}
}
