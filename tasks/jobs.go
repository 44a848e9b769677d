package tasks

import (
	"text2phenotype.com/ukstem/redis"
)

const JobsDB redis.DB = 1

// JobTask holds the job flags that decide whether a chunk is worth stemming.
type JobTask struct {
	UserCanceled           bool `json:"user_canceled"`
	StopDocumentsOnFailure bool `json:"stop_documents_on_failure"`
}

type JobTasks struct {
	client redis.Client
}

// GetCached reads the job's cached properties document.
func (jobs JobTasks) GetCached(jobID string) (*JobTask, error) {
	job := new(JobTask)
	if err := jobs.client.GetDocument(cachedPropertiesKey(jobID), job); err != nil {
		return nil, err
	}
	return job, nil
}
