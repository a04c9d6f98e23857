package mongo

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestConfig_ClientOptions(t *testing.T) {
	opts := Config{
		URI:         "mongodb://db.internal:27017",
		AppName:     "social-api",
		MaxPoolSize: 25,
	}.clientOptions()

	assert.Equal(t, []string{"db.internal:27017"}, opts.Hosts)
	if assert.NotNil(t, opts.AppName) {
		assert.Equal(t, "social-api", *opts.AppName)
	}
	if assert.NotNil(t, opts.MaxPoolSize) {
		assert.Equal(t, uint64(25), *opts.MaxPoolSize)
	}
	if assert.NotNil(t, opts.ServerSelectionTimeout) {
		assert.Equal(t, serverSelectionTimeout, *opts.ServerSelectionTimeout)
	}
}

func TestConfig_ClientOptionsLeavesDriverDefaults(t *testing.T) {
	opts := Config{URI: "mongodb://localhost:27017"}.clientOptions()

	assert.Nil(t, opts.AppName)
	assert.Nil(t, opts.MaxPoolSize)
}

func TestConnect_RequiresDatabase(t *testing.T) {
	_, _, err := Connect(context.Background(), Config{URI: "mongodb://localhost:27017"})
	assert.ErrorContains(t, err, "database name")
}

func TestConnect_InvalidURI(t *testing.T) {
	_, _, err := Connect(context.Background(), Config{URI: "not-a-uri", Database: "social"})
	assert.ErrorContains(t, err, "mongo: connect")
}
