package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/constellation/social-api/internal/core/domain"
)

const usersCollection = "users"

type UserRepository struct {
	coll *mongo.Collection
}

func NewUserRepository(db *mongo.Database) *UserRepository {
	return &UserRepository{coll: db.Collection(usersCollection)}
}

type userDocument struct {
	ID           primitive.ObjectID       `bson:"_id,omitempty"`
	Name         string                   `bson:"name"`
	Email        string                   `bson:"email"`
	PasswordHash string                   `bson:"password_hash"`
	Role         string                   `bson:"role"`
	Status       string                   `bson:"status"`
	IsBanned     bool                     `bson:"is_banned"`
	Rewards      []domain.Reward          `bson:"rewards"`
	Moderation   []domain.ModerationEvent `bson:"moderation_events"`
	CreatedAt    time.Time                `bson:"created_at"`
	UpdatedAt    time.Time                `bson:"updated_at"`
}

func (r *UserRepository) Create(ctx context.Context, user *domain.User) (*domain.User, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc := userDocument{
		Name:         user.Name,
		Email:        user.Email,
		PasswordHash: user.PasswordHash,
		Role:         string(user.Role),
		Status:       user.Status,
		IsBanned:     user.IsBanned,
		// Arrays must exist for later $push updates.
		Rewards:    append([]domain.Reward{}, user.Rewards...),
		Moderation: append([]domain.ModerationEvent{}, user.Moderation...),
		CreatedAt:  user.CreatedAt.UTC(),
		UpdatedAt:  user.UpdatedAt.UTC(),
	}

	res, err := r.coll.InsertOne(ctx, doc)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, domain.ErrUserExists
		}
		return nil, fmt.Errorf("insert user: %w", err)
	}

	doc.ID, _ = res.InsertedID.(primitive.ObjectID)
	return doc.toDomain(), nil
}

func (r *UserRepository) FindByID(ctx context.Context, id string) (*domain.User, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrUserNotFound
	}
	return r.findOne(ctx, bson.M{"_id": oid})
}

func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	return r.findOne(ctx, bson.M{"email": email})
}

func (r *UserRepository) findOne(ctx context.Context, filter bson.M) (*domain.User, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var doc userDocument
	if err := r.coll.FindOne(ctx, filter).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("find user: %w", err)
	}
	return doc.toDomain(), nil
}

// List returns users newest first.
func (r *UserRepository) List(ctx context.Context, page, limit int) ([]*domain.User, int64, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	total, err := r.coll.CountDocuments(ctx, bson.M{})
	if err != nil {
		return nil, 0, fmt.Errorf("count users: %w", err)
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}, {Key: "_id", Value: -1}}).
		SetSkip(int64((page - 1) * limit)).
		SetLimit(int64(limit)).
		SetProjection(bson.M{"moderation_events": 0})

	cur, err := r.coll.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, 0, fmt.Errorf("list users: %w", err)
	}
	defer cur.Close(ctx)

	users := make([]*domain.User, 0, limit)
	for cur.Next(ctx) {
		var doc userDocument
		if err := cur.Decode(&doc); err != nil {
			return nil, 0, fmt.Errorf("decode user: %w", err)
		}
		users = append(users, doc.toDomain())
	}
	if err := cur.Err(); err != nil {
		return nil, 0, fmt.Errorf("iterate users: %w", err)
	}
	return users, total, nil
}

// Apply sets the mutated fields and appends the reward and moderation event in
// a single document update. The filter includes the expected role, so the
// update only lands on the snapshot the access decision was made against.
func (r *UserRepository) Apply(ctx context.Context, id string, expectedRole domain.Role, m domain.UserMutation) (*domain.User, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrUserNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	filter, update := guardedUpdate(oid, expectedRole, m)
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var doc userDocument
	if err := r.coll.FindOneAndUpdate(ctx, filter, update, opts).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrStaleRecord
		}
		return nil, fmt.Errorf("update user: %w", err)
	}
	return doc.toDomain(), nil
}

// guardedUpdate builds the filter and update of Apply. Rewards and moderation
// events are only ever appended.
func guardedUpdate(oid primitive.ObjectID, expectedRole domain.Role, m domain.UserMutation) (bson.M, bson.M) {
	set := bson.M{"updated_at": m.At.UTC()}
	if m.Role != nil {
		set["role"] = string(*m.Role)
	}
	if m.IsBanned != nil {
		set["is_banned"] = *m.IsBanned
	}
	push := bson.M{"moderation_events": m.Event}
	if m.Reward != nil {
		push["rewards"] = *m.Reward
	}

	filter := bson.M{"_id": oid, "role": string(expectedRole)}
	return filter, bson.M{"$set": set, "$push": push}
}

// EnsureIndexes creates the unique email index and the listing index.
func (r *UserRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "email", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "created_at", Value: -1}}},
	}

	_, err := r.coll.Indexes().CreateMany(ctx, indexes)
	return err
}

func (d userDocument) toDomain() *domain.User {
	rewards := d.Rewards
	if rewards == nil {
		rewards = []domain.Reward{}
	}
	return &domain.User{
		ID:           d.ID.Hex(),
		Name:         d.Name,
		Email:        d.Email,
		PasswordHash: d.PasswordHash,
		Role:         domain.Role(d.Role),
		Status:       d.Status,
		IsBanned:     d.IsBanned,
		Rewards:      rewards,
		Moderation:   d.Moderation,
		CreatedAt:    d.CreatedAt.UTC(),
		UpdatedAt:    d.UpdatedAt.UTC(),
	}
}
