package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/doconnect/doconnect-web/config"
	domainauth "github.com/doconnect/doconnect-web/internal/domain/auth"
	"github.com/doconnect/doconnect-web/internal/domain/model"
	apperrors "github.com/doconnect/doconnect-web/internal/errors"
	"github.com/doconnect/doconnect-web/internal/mocks"
	"github.com/doconnect/doconnect-web/internal/testutil"
)

const apiOrigin = "http://api.example.com"

func newQuestionService(api *mocks.MockQuestionAPI) *QuestionService {
	return NewQuestionService(QuestionServiceOptions{
		API:    api,
		Origin: apiOrigin,
		UI:     config.UIConfig{PageSize: 5, MaxPageSize: 20, SnippetLength: 200},
	})
}

func TestQuestionService_List_ResolvesImages(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	api := mocks.NewMockQuestionAPI(ctrl)
	svc := newQuestionService(api)
	sess := testutil.NewSession().Build()

	api.EXPECT().
		List(gomock.Any(), sess.Token, model.ListQuery{Page: 1, PageSize: 5}).
		Return(model.QuestionPage{
			Items: []model.Question{
				testutil.NewQuestion("q1").WithImages("/uploads/a.png", "https://cdn.example.com/b.png").Build(),
			},
			Total: 1,
		}, nil)

	page, err := svc.List(context.Background(), sess, model.ListQuery{})
	require.NoError(t, err)
	require.Len(t, page.Items, 1)
	assert.Equal(t, []string{
		apiOrigin + "/uploads/a.png",
		"https://cdn.example.com/b.png",
	}, page.Items[0].Images)
}

func TestQuestionService_List_ClampsQuery(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	api := mocks.NewMockQuestionAPI(ctrl)
	svc := newQuestionService(api)
	sess := testutil.NewSession().Build()

	api.EXPECT().
		List(gomock.Any(), sess.Token, model.ListQuery{Search: "x", Page: 1, PageSize: 20}).
		Return(model.QuestionPage{}, nil)

	_, err := svc.List(context.Background(), sess, model.ListQuery{Search: "x", Page: -3, PageSize: 500})
	require.NoError(t, err)
}

func TestQuestionService_List_StaleResponseDiscarded(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	api := mocks.NewMockQuestionAPI(ctrl)
	svc := newQuestionService(api)
	sess := testutil.NewSession().Build()

	entered := make(chan struct{})
	release := make(chan struct{})

	// The first request's upstream call stalls until the second completes.
	api.EXPECT().
		List(gomock.Any(), sess.Token, model.ListQuery{Search: "wid", Page: 1, PageSize: 5}).
		DoAndReturn(func(context.Context, domainauth.Credential, model.ListQuery) (model.QuestionPage, error) {
			close(entered)
			<-release
			return model.QuestionPage{Items: []model.Question{{ID: "old"}}, Total: 1}, nil
		})
	api.EXPECT().
		List(gomock.Any(), sess.Token, model.ListQuery{Search: "widget", Page: 1, PageSize: 5}).
		Return(model.QuestionPage{Items: []model.Question{{ID: "new"}}, Total: 1}, nil)

	firstDone := make(chan struct{})
	var firstPage model.QuestionPage
	var firstErr error
	go func() {
		defer close(firstDone)
		firstPage, firstErr = svc.List(context.Background(), sess, model.ListQuery{Search: "wid"})
	}()
	<-entered

	newer, err := svc.List(context.Background(), sess, model.ListQuery{Search: "widget"})
	require.NoError(t, err)
	require.Len(t, newer.Items, 1)
	assert.Equal(t, "new", newer.Items[0].ID)

	close(release)
	<-firstDone
	assert.ErrorIs(t, firstErr, ErrStale)
	assert.Empty(t, firstPage.Items)
}

func TestQuestionService_List_StaleFailureAlsoDiscarded(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	api := mocks.NewMockQuestionAPI(ctrl)
	svc := newQuestionService(api)
	sess := testutil.NewSession().Build()

	entered := make(chan struct{})
	release := make(chan struct{})

	api.EXPECT().
		List(gomock.Any(), sess.Token, model.ListQuery{Search: "a", Page: 1, PageSize: 5}).
		DoAndReturn(func(context.Context, domainauth.Credential, model.ListQuery) (model.QuestionPage, error) {
			close(entered)
			<-release
			return model.QuestionPage{}, apperrors.Upstream("boom")
		})
	api.EXPECT().
		List(gomock.Any(), sess.Token, model.ListQuery{Search: "ab", Page: 1, PageSize: 5}).
		Return(model.QuestionPage{}, nil)

	firstDone := make(chan error, 1)
	go func() {
		_, err := svc.List(context.Background(), sess, model.ListQuery{Search: "a"})
		firstDone <- err
	}()
	<-entered

	_, err := svc.List(context.Background(), sess, model.ListQuery{Search: "ab"})
	require.NoError(t, err)

	close(release)
	assert.ErrorIs(t, <-firstDone, ErrStale, "a superseded failure never surfaces a notice")
}

func TestQuestionService_List_SequencesArePerSession(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	api := mocks.NewMockQuestionAPI(ctrl)
	svc := newQuestionService(api)
	sessA := testutil.NewSession().WithID("a").Build()
	sessB := testutil.NewSession().WithID("b").Build()

	entered := make(chan struct{})
	release := make(chan struct{})

	api.EXPECT().
		List(gomock.Any(), sessA.Token, gomock.Any()).
		DoAndReturn(func(context.Context, domainauth.Credential, model.ListQuery) (model.QuestionPage, error) {
			close(entered)
			<-release
			return model.QuestionPage{Total: 1}, nil
		})
	api.EXPECT().
		List(gomock.Any(), sessB.Token, gomock.Any()).
		Return(model.QuestionPage{}, nil)

	firstDone := make(chan error, 1)
	go func() {
		_, err := svc.List(context.Background(), sessA, model.ListQuery{})
		firstDone <- err
	}()
	<-entered

	// Another session's request does not supersede session A's.
	_, err := svc.List(context.Background(), sessB, model.ListQuery{})
	require.NoError(t, err)

	close(release)
	assert.NoError(t, <-firstDone)
}

func TestQuestionService_Get_InlineAnswers(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	api := mocks.NewMockQuestionAPI(ctrl)
	svc := newQuestionService(api)
	sess := testutil.NewSession().Build()

	api.EXPECT().
		Get(gomock.Any(), sess.Token, "q1").
		Return(
			testutil.NewQuestion("q1").WithImages("/uploads/q.png").Build(),
			[]model.Answer{{ID: "a1", Images: []string{"/uploads/a.png"}}},
			true, nil,
		)

	q, answers, err := svc.Get(context.Background(), sess, "q1")
	require.NoError(t, err)
	assert.Equal(t, []string{apiOrigin + "/uploads/q.png"}, q.Images)
	require.Len(t, answers, 1)
	assert.Equal(t, []string{apiOrigin + "/uploads/a.png"}, answers[0].Images)
}

func TestQuestionService_Get_FetchesAnswersSeparately(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	api := mocks.NewMockQuestionAPI(ctrl)
	svc := newQuestionService(api)
	sess := testutil.NewSession().Build()

	api.EXPECT().
		Get(gomock.Any(), sess.Token, "q1").
		Return(testutil.NewQuestion("q1").Build(), nil, false, nil)
	api.EXPECT().
		Answers(gomock.Any(), sess.Token, "q1").
		Return([]model.Answer{{ID: "a1"}, {ID: "a2"}}, nil)

	_, answers, err := svc.Get(context.Background(), sess, "q1")
	require.NoError(t, err)
	assert.Len(t, answers, 2)
}

func TestQuestionService_Get_NotFound(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	api := mocks.NewMockQuestionAPI(ctrl)
	svc := newQuestionService(api)
	sess := testutil.NewSession().Build()

	api.EXPECT().
		Get(gomock.Any(), sess.Token, "missing").
		Return(model.Question{}, nil, false, apperrors.NotFound("no such question"))

	_, _, err := svc.Get(context.Background(), sess, "missing")
	assert.True(t, apperrors.IsNotFound(err))
}
