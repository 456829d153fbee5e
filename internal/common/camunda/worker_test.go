package camunda

import (
	"context"
	"encoding/json"
	"fmt"
	"testing"
	"time"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/pb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"wordpress-posts/internal/common/errors"
	"wordpress-posts/internal/common/logger"
)

type MockExecutor struct {
	mock.Mock
}

func (m *MockExecutor) Execute(ctx context.Context, variables map[string]interface{}) (map[string]interface{}, error) {
	args := m.Called(ctx, variables)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]interface{}), args.Error(1)
}

func createMockJob(key int64, variables string) entities.Job {
	activatedJob := &pb.ActivatedJob{
		Key:                      key,
		Type:                     "wordpress.posts.get",
		ProcessInstanceKey:       key * 10,
		BpmnProcessId:            "test-process",
		ProcessDefinitionVersion: 1,
		ProcessDefinitionKey:     1,
		ElementId:                "Activity_GetPost",
		ElementInstanceKey:       1,
		CustomHeaders:            "{}",
		Worker:                   "test-worker",
		Retries:                  3,
		Deadline:                 0,
		Variables:                variables,
	}
	return entities.Job{ActivatedJob: activatedJob}
}

func jobVariables(t *testing.T, vars map[string]interface{}) string {
	t.Helper()
	raw, err := json.Marshal(vars)
	require.NoError(t, err)
	return string(raw)
}

func newTestAdapter(t *testing.T, exec Executor) *JobAdapter {
	t.Helper()
	adapter, err := NewJobAdapter(WorkerOptions{
		TaskType: "wordpress.posts.get",
		Executor: exec,
		Logger:   logger.NewTestLogger(t),
	})
	require.NoError(t, err)
	return adapter
}

func TestNewJobAdapter_Validation(t *testing.T) {
	_, err := NewJobAdapter(WorkerOptions{Executor: &MockExecutor{}})
	assert.Error(t, err)

	_, err = NewJobAdapter(WorkerOptions{TaskType: "wordpress.posts.get"})
	assert.Error(t, err)

	adapter, err := NewJobAdapter(WorkerOptions{TaskType: "wordpress.posts.get", Executor: &MockExecutor{}})
	require.NoError(t, err)
	assert.Equal(t, 5, adapter.maxJobsActive)
	assert.Equal(t, 60*time.Second, adapter.timeout)
	assert.Equal(t, "wordpress.posts.get", adapter.TaskType())
}

func TestJobAdapter_Run_Success(t *testing.T) {
	exec := &MockExecutor{}
	exec.On("Execute", mock.Anything, map[string]interface{}{"postId": float64(7)}).
		Return(map[string]interface{}{"id": int64(7), "title": "Hello"}, nil)

	adapter := newTestAdapter(t, exec)
	out, err := adapter.Run(context.Background(), createMockJob(1, jobVariables(t, map[string]interface{}{"postId": 7})))

	require.NoError(t, err)
	assert.Equal(t, "Hello", out["title"])
	exec.AssertExpectations(t)
}

func TestJobAdapter_Run_NilOutputBecomesEmpty(t *testing.T) {
	exec := &MockExecutor{}
	exec.On("Execute", mock.Anything, mock.Anything).Return(map[string]interface{}(nil), nil)

	adapter := newTestAdapter(t, exec)
	out, err := adapter.Run(context.Background(), createMockJob(2, "{}"))

	require.NoError(t, err)
	assert.NotNil(t, out)
	assert.Empty(t, out)
}

func TestJobAdapter_Run_BadVariables(t *testing.T) {
	exec := &MockExecutor{}
	adapter := newTestAdapter(t, exec)

	_, err := adapter.Run(context.Background(), createMockJob(3, "not-json"))

	require.Error(t, err)
	assert.True(t, errors.HasCode(err, errors.ErrCodeInputParsingFailed))
	exec.AssertNotCalled(t, "Execute", mock.Anything, mock.Anything)
}

func TestJobAdapter_Run_ExecutorError(t *testing.T) {
	exec := &MockExecutor{}
	exec.On("Execute", mock.Anything, mock.Anything).
		Return(nil, errors.NewWordPressAPIError("get post", fmt.Errorf("boom")))

	adapter := newTestAdapter(t, exec)
	_, err := adapter.Run(context.Background(), createMockJob(4, "{}"))

	require.Error(t, err)
	assert.True(t, errors.HasCode(err, errors.ErrCodeWordPressAPI))
}

func TestJobAdapter_RemoteFailureIsThrownNotRetried(t *testing.T) {
	exec := &MockExecutor{}
	exec.On("Execute", mock.Anything, mock.Anything).
		Return(nil, errors.NewWordPressAPIError("create post", fmt.Errorf("Invalid parameter(s): categories")))

	adapter := newTestAdapter(t, exec)
	job := createMockJob(5, "{}")
	_, err := adapter.Run(context.Background(), job)

	require.Error(t, err)
	require.Greater(t, job.Retries, int32(0))
	assert.False(t, errors.WillRetry(job, err))
}

func TestJobAdapter_NoCodeIsRetried(t *testing.T) {
	job := createMockJob(6, "{}")
	for _, err := range []error{
		errors.NewWordPressAPIError("update post", fmt.Errorf("timeout")),
		errors.NewMediaUploadError("hero.png", fmt.Errorf("rejected")),
		errors.NewValidationError([]string{"title: required"}),
		fmt.Errorf("socket closed"),
	} {
		assert.False(t, errors.WillRetry(job, err), err.Error())
	}
}
