package worker

import (
	"errors"

	"github.com/rs/zerolog"
	"github.com/streadway/amqp"
	"text2phenotype.com/ukstem/pipeline"
	"text2phenotype.com/ukstem/tasks"
)

type failingMethod struct {
	fail bool
}

func (method failingMethod) result(message string) error {
	if method.fail {
		return errors.New(message)
	}
	return nil
}

type withValue struct {
	fail          bool
	returnedValue interface{}
}

// valueOf returns the configured value, or the zero T when none of that type
// was set.
func valueOf[T any](method withValue) (*T, error) {
	if method.fail {
		return nil, errors.New("mock: configured to fail")
	}
	v, _ := method.returnedValue.(T)
	return &v, nil
}

type pipelineMock struct {
	ppln    pipeline.Pipeline
	config  pipelineMockConfig
	calls   pipelineCall
	request pipeline.Request
}

type pipelineMockConfig struct {
	fail   bool
	result string
	// real, when set, serves the request instead of result
	real pipeline.Pipeline
}

type pipelineCall struct {
	pipeline bool
}

type redisMock struct {
	config redisMockConfig
	calls  redisMockCalls
}

type redisMockConfig struct {
	getChunkTask          withValue
	getJobTask            withValue
	getDocTask            withValue
	onTaskCancelled       failingMethod
	onTaskStarted         failingMethod
	onTaskExceededRetries failingMethod
	onTaskFailedWithError failingMethod
	onTaskComplete        failingMethod
}

type redisMockCalls struct {
	getChunkTask          bool
	getJobTask            bool
	getDocTask            bool
	onTaskCancelled       bool
	onTaskStarted         bool
	onTaskExceededRetries bool
	onTaskFailedWithError bool
	onTaskComplete        bool
}

type rmqMock struct {
	config rmqMockConfig
	calls  rmqMockCalls
}

type rmqMockConfig struct {
	pingSequencer       failingMethod
	acknowledgeDelivery failingMethod
}

type rmqMockCalls struct {
	pingSequencer       bool
	acknowledgeDelivery bool
	rejectDelivery      bool
}

type s3Mock struct {
	config s3MockConfig
	calls  s3MockCalls
	saved  string
}

type s3MockConfig struct {
	getProcessedData withValue
	saveResultsFile  failingMethod
}

type s3MockCalls struct {
	getProcessedData bool
	saveResultsFile  bool
}

func (mock *s3Mock) close() {}

func (mock *rmqMock) close() {}

func (mock *redisMock) close() {}

func getPipelineMock(config pipelineMockConfig) *pipelineMock {
	mock := pipelineMock{config: config}
	mock.ppln = func(request pipeline.Request) <-chan string {
		mock.calls.pipeline = true
		mock.request = request
		ch := make(chan string, 1)
		if !mock.config.fail {
			ch <- mock.config.result
		}
		close(ch)
		return ch
	}
	if config.real != nil {
		mock.ppln = func(request pipeline.Request) <-chan string {
			mock.calls.pipeline = true
			mock.request = request
			return config.real(request)
		}
	}
	return &mock
}

func (mock *redisMock) getChunkTask(redisKey string) (*tasks.ChunkTask, error) {
	mock.calls.getChunkTask = true
	return valueOf[tasks.ChunkTask](mock.config.getChunkTask)
}

func (mock *redisMock) getJobTask(task *Task) (*tasks.JobTask, error) {
	mock.calls.getJobTask = true
	return valueOf[tasks.JobTask](mock.config.getJobTask)
}

func (mock *redisMock) getDocTask(task *Task) (*tasks.DocumentTaskCached, error) {
	mock.calls.getDocTask = true
	return valueOf[tasks.DocumentTaskCached](mock.config.getDocTask)
}

func (mock *redisMock) onTaskStarted(task *Task) error {
	mock.calls.onTaskStarted = true
	return mock.config.onTaskStarted.result("failed to update chunk task on start")
}

func (mock *redisMock) onTaskCancelled(task *Task, errorMessages ...string) error {
	mock.calls.onTaskCancelled = true
	return mock.config.onTaskCancelled.result("failed to update chunk task on cancel")
}

func (mock *redisMock) onTaskExceededRetries(task *Task, maxRetries int) error {
	mock.calls.onTaskExceededRetries = true
	return mock.config.onTaskExceededRetries.result("failed to update chunk task on exceeded retries")
}

func (mock *redisMock) onTaskFailedWithError(task *Task, err error) error {
	mock.calls.onTaskFailedWithError = true
	return mock.config.onTaskFailedWithError.result("failed to update chunk task on fail with error")
}

func (mock *redisMock) onTaskComplete(task *Task) error {
	mock.calls.onTaskComplete = true
	return mock.config.onTaskComplete.result("failed to update chunk task on complete")
}

func (mock *rmqMock) rejectDelivery(delivery *amqp.Delivery, log *zerolog.Logger) {
	mock.calls.rejectDelivery = true
}

func (mock *rmqMock) getDeliveriesCh() <-chan amqp.Delivery { return nil }

func (mock *rmqMock) getReqChanErrorsCh() <-chan *amqp.Error { return nil }

func (mock *rmqMock) getRespChanErrorsCh() <-chan *amqp.Error { return nil }

func (mock *rmqMock) pingSequencer(task *Task, message Message) error {
	mock.calls.pingSequencer = true
	return mock.config.pingSequencer.result("failed to ping sequencer")
}

func (mock *rmqMock) acknowledgeDelivery(delivery *amqp.Delivery) error {
	mock.calls.acknowledgeDelivery = true
	return mock.config.acknowledgeDelivery.result("failed to acknowledge delivery")
}

func (mock *s3Mock) getProcessedData(task *Task) ([]byte, error) {
	mock.calls.getProcessedData = true
	data, err := valueOf[[]byte](mock.config.getProcessedData)
	if err != nil {
		return nil, err
	}
	if *data == nil {
		return []byte("some input"), nil
	}
	return *data, nil
}

func (mock *s3Mock) saveResultsFile(task *Task, result string) error {
	mock.calls.saveResultsFile = true
	if err := mock.config.saveResultsFile.result("failed to upload results"); err != nil {
		return err
	}
	mock.saved = result
	return nil
}
