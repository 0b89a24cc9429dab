package config

import (
	"fmt"
)

type CacheKeyStruct struct{}

func NewCacheKeyStruct() *CacheKeyStruct {
	return &CacheKeyStruct{}
}

// QuizDocKey returns the cache key for a quiz document used by grading.
func (r *CacheKeyStruct) QuizDocKey(quizID string) string {
	return fmt.Sprintf("quiz:%s:doc", quizID)
}

var CacheKey = NewCacheKeyStruct()

type WorkerKeyStruct struct {
	PersistResultsQueue string
}

// WorkerKey names the Redis lists consumed by background workers.
var WorkerKey = &WorkerKeyStruct{
	PersistResultsQueue: "persist_results_queue",
}
