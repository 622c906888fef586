package jobs_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"dispatch/internal/core/application/usecases/queries"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/resource"
	"dispatch/internal/jobs"

	"github.com/sirupsen/logrus"
	logtest "github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type anomalyFinderMock struct {
	mock.Mock
}

func (m *anomalyFinderMock) Handle(
	ctx context.Context,
	query queries.GetAllocationAnomaliesQuery,
) ([]queries.GetAllocationAnomaliesQueryResponse, error) {
	args := m.Called(ctx, query)
	found, _ := args.Get(0).([]queries.GetAllocationAnomaliesQueryResponse)
	return found, args.Error(1)
}

type jobMock struct {
	mock.Mock
}

func (m *jobMock) Start() error { return m.Called().Error(0) }
func (m *jobMock) Stop()        { m.Called() }

func Test_AllocationAuditJob_LogsEachAnomaly(t *testing.T) {
	logger, hook := logtest.NewNullLogger()
	tourID := kernel.NewUUID()
	finder := &anomalyFinderMock{}
	finder.On("Handle", mock.Anything, mock.Anything).Return([]queries.GetAllocationAnomaliesQueryResponse{
		{Reason: queries.AllocatedWithoutAllocation, Kind: resource.Driver, ResourceID: kernel.NewUUID()},
		{Reason: queries.ActiveTourWithoutAllocation, Kind: resource.Vehicle, ResourceID: kernel.NewUUID(), TourID: &tourID},
	}, nil).Once()

	job := jobs.NewAllocationAuditJob(finder, "", logger)
	found, err := job.RunOnce(context.Background())

	require.NoError(t, err)
	assert.Len(t, found, 2)
	entries := hook.AllEntries()
	require.Len(t, entries, 2)
	assert.Equal(t, logrus.WarnLevel, entries[0].Level)
	assert.Equal(t, "allocated_without_allocation", entries[0].Data["reason"])
	assert.NotContains(t, entries[0].Data, "tour_id")
	assert.Equal(t, tourID.String(), entries[1].Data["tour_id"])
	assert.Equal(t, "allocation_audit_job", entries[1].Data["component"])
	finder.AssertExpectations(t)
}

func Test_AllocationAuditJob_PropagatesQueryError(t *testing.T) {
	logger, _ := logtest.NewNullLogger()
	finder := &anomalyFinderMock{}
	finder.On("Handle", mock.Anything, mock.Anything).Return(nil, errors.New("db down")).Once()

	_, err := jobs.NewAllocationAuditJob(finder, "", logger).RunOnce(context.Background())

	assert.EqualError(t, err, "db down")
}

func Test_AllocationAuditJob_RunsOnSchedule(t *testing.T) {
	logger, _ := logtest.NewNullLogger()
	ran := make(chan struct{}, 1)
	finder := &anomalyFinderMock{}
	finder.On("Handle", mock.Anything, mock.Anything).
		Run(func(mock.Arguments) {
			select {
			case ran <- struct{}{}:
			default:
			}
		}).
		Return([]queries.GetAllocationAnomaliesQueryResponse{}, nil)

	job := jobs.NewAllocationAuditJob(finder, "* * * * * *", logger)
	require.NoError(t, job.Start())
	defer job.Stop()

	select {
	case <-ran:
	case <-time.After(3 * time.Second):
		t.Fatal("audit did not run")
	}
}

func Test_AllocationAuditJob_RejectsBadSchedule(t *testing.T) {
	logger, _ := logtest.NewNullLogger()

	err := jobs.NewAllocationAuditJob(&anomalyFinderMock{}, "every minute", logger).Start()

	assert.Error(t, err)
}

func Test_JobManager_StopsStartedJobsWhenOneFails(t *testing.T) {
	first, second := &jobMock{}, &jobMock{}
	first.On("Start").Return(nil).Once()
	first.On("Stop").Once()
	second.On("Start").Return(errors.New("bad schedule")).Once()

	err := jobs.NewJobManager(first, second).StartAll()

	require.Error(t, err)
	first.AssertExpectations(t)
	second.AssertNotCalled(t, "Stop")
}

func Test_JobManager_StopAllInReverseOrder(t *testing.T) {
	var stopped []string
	first, second := &jobMock{}, &jobMock{}
	first.On("Start").Return(nil)
	second.On("Start").Return(nil)
	first.On("Stop").Run(func(mock.Arguments) { stopped = append(stopped, "first") })
	second.On("Stop").Run(func(mock.Arguments) { stopped = append(stopped, "second") })

	manager := jobs.NewJobManager(first, second)
	require.NoError(t, manager.StartAll())
	manager.StopAll()
	manager.StopAll()

	assert.Equal(t, []string{"second", "first"}, stopped)
}
