package tasks

import (
	"fmt"
	"time"

	"text2phenotype.com/ukstem/redis"
)

const ChunksDB redis.DB = 2

// StemmerTaskName is this service's key in chunk task statuses and in the
// failed task lists of documents.
const StemmerTaskName = "stemmer"

// TimestampLayout is RFC 3339 with microseconds, as the sequencer writes it.
const TimestampLayout = "2006-01-02T15:04:05.000000-07:00"

type TaskStatus string

const (
	TaskStatusProcessing       TaskStatus = "processing"
	TaskStatusSubmitted        TaskStatus = "submitted"
	TaskStatusStarted          TaskStatus = "started"
	TaskStatusFailed           TaskStatus = "failed"
	TaskStatusCompletedSuccess TaskStatus = "completed - success"
	TaskStatusCompletedFailure TaskStatus = "completed - failure"
	TaskStatusCanceled         TaskStatus = "canceled"
)

// Complete reports a terminal status.
func (s TaskStatus) Complete() bool {
	switch s {
	case TaskStatusCompletedSuccess, TaskStatusCompletedFailure, TaskStatusCanceled:
		return true
	}
	return false
}

func (s TaskStatus) Submitted() bool {
	switch s {
	case TaskStatusSubmitted, TaskStatusStarted, TaskStatusProcessing:
		return true
	}
	return false
}

type ChunkTask struct {
	DocID        string            `json:"document_id"`
	JobID        string            `json:"job_id"`
	TextFileKey  string            `json:"text_file_key"`
	TaskStatuses ChunkTaskStatuses `json:"task_statuses"`
}

// ChunkTaskStatuses only declares this service's entry; entries of other
// services survive updates untouched.
type ChunkTaskStatuses struct {
	Stemmer ChunkTaskInfo `json:"stemmer"`
}

type ChunkTaskInfo struct {
	ResultsFileKey    string     `json:"results_file_key"`
	StartedAt         *string    `json:"started_at"`
	CompletedAt       *string    `json:"completed_at"`
	Attempts          int        `json:"attempts"`
	Status            TaskStatus `json:"status"`
	Dependencies      []string   `json:"dependencies"`
	ModelDependencies []float64  `json:"model_dependencies"`
	ErrorMessages     []string   `json:"error_messages"`
}

func Timestamp(t time.Time) *string {
	s := t.UTC().Format(TimestampLayout)
	return &s
}

// Start counts a new attempt and clears the completion time of earlier ones.
func (info *ChunkTaskInfo) Start(now time.Time) {
	info.Status = TaskStatusStarted
	info.Attempts++
	info.StartedAt = Timestamp(now)
	info.CompletedAt = nil
}

// Cancel closes the task without running it. Skipped runs still count as
// attempts.
func (info *ChunkTaskInfo) Cancel(now time.Time, messages ...string) {
	info.Status = TaskStatusCanceled
	info.Attempts++
	info.StartedAt = Timestamp(now)
	info.CompletedAt = info.StartedAt
	info.ErrorMessages = append(info.ErrorMessages, messages...)
}

func (info *ChunkTaskInfo) ExhaustRetries(now time.Time, maxRetries int) {
	info.Status = TaskStatusCompletedFailure
	info.Attempts++
	info.StartedAt = Timestamp(now)
	info.CompletedAt = info.StartedAt
	info.ErrorMessages = append(info.ErrorMessages, fmt.Sprintf(
		"Task has exceeded retries. (Attempts: %d, max retries: %d )", info.Attempts, maxRetries,
	))
}

// Fail leaves the task open for another attempt.
func (info *ChunkTaskInfo) Fail(now time.Time, err error) {
	info.Status = TaskStatusFailed
	info.CompletedAt = Timestamp(now)
	info.ErrorMessages = append(info.ErrorMessages, err.Error())
}

// Complete records the results file. A status that is already terminal is
// kept.
func (info *ChunkTaskInfo) Complete(now time.Time, resultsFileKey string) {
	if !info.Status.Complete() {
		info.Status = TaskStatusCompletedSuccess
	}
	info.CompletedAt = Timestamp(now)
	info.ResultsFileKey = resultsFileKey
}

type ChunkTasks struct {
	client redis.Client
}

func (chunks ChunkTasks) Get(redisKey string) (*ChunkTask, error) {
	task := new(ChunkTask)
	if err := chunks.client.GetDocument(redisKey, task); err != nil {
		return nil, err
	}
	return task, nil
}

// UpdateStemmer changes this service's status entry under the chunk's lock.
func (chunks ChunkTasks) UpdateStemmer(redisKey string, update func(info *ChunkTaskInfo)) error {
	var task ChunkTask
	return chunks.client.UpdateDocument(redisKey, &task, func() { update(&task.TaskStatuses.Stemmer) })
}
