package worker

import (
	"path"
)

const resultsFileSuffix = ".stem_results.json"

// getResultsFileKey places the stemming results next to the chunk's other
// processed files.
func getResultsFileKey(task *Task) string {
	return path.Join("processed", "documents", task.chunkTask.DocID, "chunks", task.redisKey, task.redisKey+resultsFileSuffix)
}
