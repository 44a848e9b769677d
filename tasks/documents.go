package tasks

import (
	"text2phenotype.com/ukstem/redis"
)

const DocumentsDB redis.DB = 0

type DocumentTask struct {
	FailedTasks  []string            `json:"failed_tasks"`
	FailedChunks map[string][]string `json:"failed_chunks"`
}

// addFailure lists taskName as failed for the document and for chunkKey.
func (doc *DocumentTask) addFailure(chunkKey, taskName string) {
	doc.FailedTasks = append(doc.FailedTasks, taskName)
	if doc.FailedChunks == nil {
		doc.FailedChunks = map[string][]string{}
	}
	doc.FailedChunks[chunkKey] = append(doc.FailedChunks[chunkKey], taskName)
}

// DocumentTaskCached is the document's cached properties. Workers read
// FailedTasks from here to stop early once any task failed the document.
type DocumentTaskCached struct {
	DocInfo     map[string]interface{} `json:"document_info"`
	FailedTasks []string               `json:"failed_tasks"`
	JobID       string                 `json:"job_id"`
	WorkType    string                 `json:"work_type"`
}

type DocumentTasks struct {
	client redis.Client
}

func (docs DocumentTasks) Get(docID string) (*DocumentTask, error) {
	doc := new(DocumentTask)
	if err := docs.client.GetDocument(docID, doc); err != nil {
		return nil, err
	}
	return doc, nil
}

func (docs DocumentTasks) GetCached(docID string) (*DocumentTaskCached, error) {
	cached := new(DocumentTaskCached)
	if err := docs.client.GetDocument(cachedPropertiesKey(docID), cached); err != nil {
		return nil, err
	}
	return cached, nil
}

// RecordFailure marks taskName as failed on chunkKey and mirrors the
// document's failed task list into its cached properties. Both writes happen
// under the document's lock.
func (docs DocumentTasks) RecordFailure(docID, chunkKey, taskName string) (err error) {
	releaseLock, err := docs.client.Lock(docID)
	if err != nil {
		return err
	}
	defer func() {
		if releaseErr := releaseLock(); err == nil {
			err = releaseErr
		}
	}()

	var doc DocumentTask
	if err = docs.client.PatchDocument(docID, &doc, func() { doc.addFailure(chunkKey, taskName) }); err != nil {
		return err
	}

	var cached DocumentTaskCached
	return docs.client.PatchDocument(cachedPropertiesKey(docID), &cached, func() {
		cached.FailedTasks = doc.FailedTasks
	})
}
