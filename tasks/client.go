package tasks

import (
	"errors"
	"fmt"

	"text2phenotype.com/ukstem/redis"
)

// Client groups the three task stores the worker reads and updates.
type Client struct {
	Documents DocumentTasks
	Chunks    ChunkTasks
	Jobs      JobTasks
}

func NewClient() (Client, error) {
	var stores [3]redis.Client
	for i, db := range []redis.DB{DocumentsDB, JobsDB, ChunksDB} {
		client, err := redis.NewClient(db)
		if err != nil {
			return Client{}, fmt.Errorf("redis db %d: %w", db, err)
		}
		stores[i] = client
	}
	return Client{
		Documents: DocumentTasks{client: stores[0]},
		Jobs:      JobTasks{client: stores[1]},
		Chunks:    ChunkTasks{client: stores[2]},
	}, nil
}

func (client *Client) Close() error {
	return errors.Join(
		client.Chunks.client.Close(),
		client.Documents.client.Close(),
		client.Jobs.client.Close(),
	)
}

func cachedPropertiesKey(redisKey string) string {
	return redisKey + "-cached-properties"
}
