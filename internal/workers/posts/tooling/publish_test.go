package tooling

import (
	"context"
	stderrors "errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"wordpress-posts/internal/common/aws"
	"wordpress-posts/internal/common/logger"
	"wordpress-posts/internal/common/publications"
	"wordpress-posts/internal/models"
)

type mockRecorder struct {
	mock.Mock
}

func (m *mockRecorder) Record(ctx context.Context, rec publications.Record) error {
	return m.Called(ctx, rec).Error(0)
}

type mockNotifier struct {
	mock.Mock
}

func (m *mockNotifier) NotifyPublished(ctx context.Context, ev aws.PublishedEvent) (string, error) {
	args := m.Called(ctx, ev)
	return args.String(0), args.Error(1)
}

func TestPublications_AfterWrite(t *testing.T) {
	tests := []struct {
		name       string
		status     string
		ledgerErr  error
		notifyErr  error
		wantNotify bool
	}{
		{name: "published post is announced", status: models.StatusPublish, wantNotify: true},
		{name: "draft is only recorded", status: models.StatusDraft},
		{name: "ledger failure does not block notification", status: models.StatusPublish, ledgerErr: stderrors.New("db down"), wantNotify: true},
		{name: "notification failure is swallowed", status: models.StatusPublish, notifyErr: stderrors.New("sns down"), wantNotify: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			post := &models.Post{ID: 42, Status: tt.status, Title: models.Rendered{Rendered: "Hi"}, FeaturedMedia: 501}

			rec := &mockRecorder{}
			rec.On("Record", mock.Anything, mock.MatchedBy(func(r publications.Record) bool {
				return r.PostID == 42 && r.Operation == publications.OperationCreate &&
					r.SiteURL == "https://blog.example.com" && r.FeaturedMedia == 501 &&
					r.ImagesTotal == 2 && r.ImagesFailed == 1 && r.Status == tt.status
			})).Return(tt.ledgerErr)

			notifier := &mockNotifier{}
			if tt.wantNotify {
				notifier.On("NotifyPublished", mock.Anything, mock.MatchedBy(func(ev aws.PublishedEvent) bool {
					return ev.PostID == 42 && ev.Title == "Hi" && ev.Operation == publications.OperationCreate
				})).Return("msg-1", tt.notifyErr)
			}

			Publications{Ledger: rec, Notifier: notifier}.AfterWrite(context.Background(), logger.NewTestLogger(t), WriteSummary{
				SiteURL:      "https://blog.example.com",
				Operation:    publications.OperationCreate,
				Post:         post,
				ImagesTotal:  2,
				ImagesFailed: 1,
			})

			rec.AssertExpectations(t)
			notifier.AssertExpectations(t)
			if !tt.wantNotify {
				notifier.AssertNotCalled(t, "NotifyPublished", mock.Anything, mock.Anything)
			}
		})
	}
}

func TestPublications_AfterWrite_NothingConfigured(t *testing.T) {
	assert.NotPanics(t, func() {
		Publications{}.AfterWrite(context.Background(), logger.NewNoOpLogger(), WriteSummary{
			Post: &models.Post{ID: 1, Status: models.StatusPublish},
		})
	})
}
