package worker

import (
	"time"

	"text2phenotype.com/ukstem/tasks"
)

type redisTransactions interface {
	getChunkTask(redisKey string) (*tasks.ChunkTask, error)
	getJobTask(task *Task) (*tasks.JobTask, error)
	getDocTask(task *Task) (*tasks.DocumentTaskCached, error)
	onTaskStarted(task *Task) error
	onTaskCancelled(task *Task, errorMessages ...string) error
	onTaskExceededRetries(task *Task, maxRetries int) error
	onTaskFailedWithError(task *Task, err error) error
	onTaskComplete(task *Task) error
	close()
}

// redisClientWrapper moves the chunk's stemmer status through its states.
type redisClientWrapper struct {
	tasksClient *tasks.Client
}

func (wrapper *redisClientWrapper) close() {
	_ = wrapper.tasksClient.Close()
}

func (wrapper *redisClientWrapper) updateInfo(task *Task, update func(info *tasks.ChunkTaskInfo)) error {
	return wrapper.tasksClient.Chunks.UpdateStemmer(task.redisKey, update)
}

func (wrapper *redisClientWrapper) onTaskStarted(task *Task) error {
	return wrapper.updateInfo(task, func(info *tasks.ChunkTaskInfo) {
		info.Start(time.Now())
	})
}

func (wrapper *redisClientWrapper) onTaskCancelled(task *Task, errorMessages ...string) error {
	return wrapper.updateInfo(task, func(info *tasks.ChunkTaskInfo) {
		info.Cancel(time.Now(), errorMessages...)
	})
}

// onTaskExceededRetries fails the whole document before closing the chunk,
// so other workers see the failure and stop.
func (wrapper *redisClientWrapper) onTaskExceededRetries(task *Task, maxRetries int) error {
	err := wrapper.tasksClient.Documents.RecordFailure(task.chunkTask.DocID, task.redisKey, tasks.StemmerTaskName)
	if err != nil {
		return err
	}
	return wrapper.updateInfo(task, func(info *tasks.ChunkTaskInfo) {
		info.ExhaustRetries(time.Now(), maxRetries)
	})
}

func (wrapper *redisClientWrapper) onTaskFailedWithError(task *Task, err error) error {
	return wrapper.updateInfo(task, func(info *tasks.ChunkTaskInfo) {
		info.Fail(time.Now(), err)
	})
}

func (wrapper *redisClientWrapper) onTaskComplete(task *Task) error {
	resultsKey := getResultsFileKey(task)
	return wrapper.updateInfo(task, func(info *tasks.ChunkTaskInfo) {
		info.Complete(time.Now(), resultsKey)
	})
}

func (wrapper *redisClientWrapper) getChunkTask(redisKey string) (*tasks.ChunkTask, error) {
	return wrapper.tasksClient.Chunks.Get(redisKey)
}

func (wrapper *redisClientWrapper) getJobTask(task *Task) (*tasks.JobTask, error) {
	return wrapper.tasksClient.Jobs.GetCached(task.chunkTask.JobID)
}

func (wrapper *redisClientWrapper) getDocTask(task *Task) (*tasks.DocumentTaskCached, error) {
	return wrapper.tasksClient.Documents.GetCached(task.chunkTask.DocID)
}
