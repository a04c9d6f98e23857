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

const groupsCollection = "groups"

type GroupRepository struct {
	coll *mongo.Collection
}

func NewGroupRepository(db *mongo.Database) *GroupRepository {
	return &GroupRepository{coll: db.Collection(groupsCollection)}
}

type groupDocument struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"`
	Name      string             `bson:"name"`
	CreatedBy string             `bson:"created_by"`
	Members   []string           `bson:"members"`
	CreatedAt time.Time          `bson:"created_at"`
}

// Create inserts the group together with its initial members.
func (r *GroupRepository) Create(ctx context.Context, group *domain.Group) (*domain.Group, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc := groupDocument{
		Name:      group.Name,
		CreatedBy: group.CreatedBy,
		Members:   append([]string{}, group.Members...),
		CreatedAt: group.CreatedAt.UTC(),
	}

	res, err := r.coll.InsertOne(ctx, doc)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, domain.ErrGroupExists
		}
		return nil, fmt.Errorf("insert group: %w", err)
	}

	doc.ID, _ = res.InsertedID.(primitive.ObjectID)
	return doc.toDomain(), nil
}

func (r *GroupRepository) FindByID(ctx context.Context, id string) (*domain.Group, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrGroupNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var doc groupDocument
	if err := r.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrGroupNotFound
		}
		return nil, fmt.Errorf("find group: %w", err)
	}
	return doc.toDomain(), nil
}

// AddMember uses $addToSet so concurrent or repeated adds never duplicate.
func (r *GroupRepository) AddMember(ctx context.Context, groupID, userID string) (*domain.Group, error) {
	oid, err := primitive.ObjectIDFromHex(groupID)
	if err != nil {
		return nil, domain.ErrGroupNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	update := bson.M{"$addToSet": bson.M{"members": userID}}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var doc groupDocument
	if err := r.coll.FindOneAndUpdate(ctx, bson.M{"_id": oid}, update, opts).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrGroupNotFound
		}
		return nil, fmt.Errorf("add group member: %w", err)
	}
	return doc.toDomain(), nil
}

func (r *GroupRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "name", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "members", Value: 1}}},
	}

	_, err := r.coll.Indexes().CreateMany(ctx, indexes)
	return err
}

func (d groupDocument) toDomain() *domain.Group {
	members := d.Members
	if members == nil {
		members = []string{}
	}
	return &domain.Group{
		ID:        d.ID.Hex(),
		Name:      d.Name,
		CreatedBy: d.CreatedBy,
		Members:   members,
		CreatedAt: d.CreatedAt.UTC(),
	}
}
