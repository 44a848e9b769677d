package tasks

import (
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"text2phenotype.com/ukstem/redis"
)

func TestTaskStatus(t *testing.T) {
	for _, s := range []TaskStatus{TaskStatusCompletedSuccess, TaskStatusCompletedFailure, TaskStatusCanceled} {
		assert.True(t, s.Complete(), s)
		assert.False(t, s.Submitted(), s)
	}
	for _, s := range []TaskStatus{TaskStatusSubmitted, TaskStatusStarted, TaskStatusProcessing} {
		assert.False(t, s.Complete(), s)
		assert.True(t, s.Submitted(), s)
	}
	assert.False(t, TaskStatusFailed.Complete())
	assert.False(t, TaskStatusFailed.Submitted())
}

func TestChunkTaskDecoding(t *testing.T) {
	raw := `{
		"document_id": "doc-1", "job_id": "job-1", "text_file_key": "doc-1/chunk-1.txt",
		"task_statuses": {
			"stemmer": {"status": "submitted", "attempts": 2, "started_at": null},
			"annotate": {"status": "completed - success"}
		}
	}`
	var task ChunkTask
	require.NoError(t, json.Unmarshal([]byte(raw), &task))
	assert.Equal(t, "doc-1", task.DocID)
	assert.Equal(t, "doc-1/chunk-1.txt", task.TextFileKey)
	assert.Equal(t, TaskStatusSubmitted, task.TaskStatuses.Stemmer.Status)
	assert.Equal(t, 2, task.TaskStatuses.Stemmer.Attempts)
	assert.Nil(t, task.TaskStatuses.Stemmer.StartedAt)
}

func TestDocumentTaskUpdateKeepsOtherFields(t *testing.T) {
	raw := `{"failed_tasks": ["annotate"], "failed_chunks": {}, "document_info": {"source": "a.txt"}}`
	var task DocumentTask
	merged, err := redis.MergeUpdate([]byte(raw), &task, func() {
		task.addFailure("chunk-1", StemmerTaskName)
	})
	require.NoError(t, err)
	assert.JSONEq(t, `{
		"failed_tasks": ["annotate", "stemmer"],
		"failed_chunks": {"chunk-1": ["stemmer"]},
		"document_info": {"source": "a.txt"}
	}`, string(merged))
}

func TestCachedPropertiesKey(t *testing.T) {
	assert.Equal(t, "job-1-cached-properties", cachedPropertiesKey("job-1"))
}

func TestChunkTaskInfoTransitions(t *testing.T) {
	now := time.Date(2024, 3, 1, 12, 30, 0, 123456000, time.FixedZone("EET", 2*3600))
	stamp := "2024-03-01T10:30:00.123456+00:00"

	var info ChunkTaskInfo
	info.Start(now)
	assert.Equal(t, TaskStatusStarted, info.Status)
	assert.Equal(t, 1, info.Attempts)
	require.NotNil(t, info.StartedAt)
	assert.Equal(t, stamp, *info.StartedAt)
	assert.Nil(t, info.CompletedAt)

	info.Fail(now, errors.New("s3 is down"))
	assert.Equal(t, TaskStatusFailed, info.Status)
	assert.False(t, info.Status.Complete())
	assert.Equal(t, []string{"s3 is down"}, info.ErrorMessages)

	info.Start(now)
	assert.Equal(t, 2, info.Attempts)
	assert.Nil(t, info.CompletedAt)

	info.Complete(now, "processed/documents/doc-1/chunks/c/c.stem_results.json")
	assert.Equal(t, TaskStatusCompletedSuccess, info.Status)
	assert.Equal(t, "processed/documents/doc-1/chunks/c/c.stem_results.json", info.ResultsFileKey)
	require.NotNil(t, info.CompletedAt)
	assert.Equal(t, stamp, *info.CompletedAt)
}

func TestChunkTaskInfoTerminalStates(t *testing.T) {
	now := time.Now()

	var cancelled ChunkTaskInfo
	cancelled.Cancel(now, "job canceled")
	assert.Equal(t, TaskStatusCanceled, cancelled.Status)
	assert.Equal(t, 1, cancelled.Attempts)
	assert.Equal(t, []string{"job canceled"}, cancelled.ErrorMessages)
	assert.Equal(t, cancelled.StartedAt, cancelled.CompletedAt)

	cancelled.Complete(now, "key")
	assert.Equal(t, TaskStatusCanceled, cancelled.Status)

	exhausted := ChunkTaskInfo{Attempts: 3}
	exhausted.ExhaustRetries(now, 3)
	assert.Equal(t, TaskStatusCompletedFailure, exhausted.Status)
	assert.Equal(t, 4, exhausted.Attempts)
	assert.Equal(t, []string{"Task has exceeded retries. (Attempts: 4, max retries: 3 )"}, exhausted.ErrorMessages)
}

func TestDocumentTaskAddFailure(t *testing.T) {
	var doc DocumentTask
	doc.addFailure("chunk-1", StemmerTaskName)
	doc.addFailure("chunk-2", StemmerTaskName)
	assert.Equal(t, []string{StemmerTaskName, StemmerTaskName}, doc.FailedTasks)
	assert.Equal(t, map[string][]string{
		"chunk-1": {StemmerTaskName},
		"chunk-2": {StemmerTaskName},
	}, doc.FailedChunks)
}
