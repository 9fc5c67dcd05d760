package utils

import (
	"context"
	"fmt"
	"time"

	"github.com/raushankrgupta/virtual-closet/config"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
)

var Client *mongo.Client

// ConnectMongo initializes the MongoDB connection
func ConnectMongo(uri string) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	clientOptions := options.Client().ApplyURI(uri)
	client, err := mongo.Connect(ctx, clientOptions)
	if err != nil {
		return fmt.Errorf("failed to connect to mongodb: %w", err)
	}

	// Ping the database
	err = client.Ping(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to ping mongodb: %w", err)
	}

	Client = client
	zap.L().Info("connected to MongoDB")
	return nil
}

// DisconnectMongo closes the shared client, if any
func DisconnectMongo(ctx context.Context) error {
	if Client == nil {
		return nil
	}
	return Client.Disconnect(ctx)
}

// GetCollection returns a handle to a collection in the configured database
func GetCollection(collectionName string) *mongo.Collection {
	if Client == nil {
		zap.L().Fatal("MongoDB client is not initialized")
	}
	return Client.Database(config.DatabaseName).Collection(collectionName)
}
