package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

const (
	defaultTimeout         = 10 * time.Second
	serverSelectionTimeout = 5 * time.Second
)

// Config describes the MongoDB deployment holding users, posts and groups.
type Config struct {
	URI         string
	Database    string
	AppName     string
	MaxPoolSize uint64
}

func (c Config) clientOptions() *options.ClientOptions {
	opts := options.Client().
		ApplyURI(c.URI).
		SetServerSelectionTimeout(serverSelectionTimeout).
		SetRetryWrites(true)
	if c.AppName != "" {
		opts.SetAppName(c.AppName)
	}
	if c.MaxPoolSize > 0 {
		opts.SetMaxPoolSize(c.MaxPoolSize)
	}
	return opts
}

// Connect opens the client and pings the primary before handing back the
// database, so a misconfigured URI surfaces at startup.
func Connect(ctx context.Context, cfg Config) (*mongo.Client, *mongo.Database, error) {
	if cfg.Database == "" {
		return nil, nil, errors.New("mongo: database name is required")
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	client, err := mongo.Connect(ctx, cfg.clientOptions())
	if err != nil {
		return nil, nil, fmt.Errorf("mongo: connect: %w", err)
	}
	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, nil, fmt.Errorf("mongo: ping primary: %w", err)
	}
	return client, client.Database(cfg.Database), nil
}

// EnsureIndexes creates the indexes every repository relies on, including the
// unique constraints on user email and group name.
func EnsureIndexes(ctx context.Context, db *mongo.Database) error {
	steps := []struct {
		name string
		fn   func(context.Context) error
	}{
		{usersCollection, NewUserRepository(db).EnsureIndexes},
		{groupsCollection, NewGroupRepository(db).EnsureIndexes},
		{postsCollection, NewPostRepository(db).EnsureIndexes},
	}
	for _, s := range steps {
		if err := s.fn(ctx); err != nil {
			return fmt.Errorf("ensure %s indexes: %w", s.name, err)
		}
	}
	return nil
}
