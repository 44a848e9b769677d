package worker

import (
	"text2phenotype.com/ukstem/s3client"
)

// s3Transactions moves chunk text in and stemming results out.
type s3Transactions interface {
	getProcessedData(task *Task) ([]byte, error)
	saveResultsFile(task *Task, result string) error
	close()
}

type s3Storage struct {
	client *s3client.Client
}

func (storage *s3Storage) getProcessedData(task *Task) ([]byte, error) {
	return storage.client.Download(task.chunkTask.TextFileKey)
}

func (storage *s3Storage) saveResultsFile(task *Task, result string) error {
	return storage.client.Upload([]byte(result), getResultsFileKey(task))
}

func (storage *s3Storage) close() {
	storage.client.Close()
}
