// Package mocks provides mock implementations for testing the web client's
// upstream ports.
//
// This package uses go.uber.org/mock (gomock) to generate type-safe mocks
// for the interfaces in internal/ports. The mocks are generated using
// go:generate directives and provide a fluent API for setting up test
// expectations.
//
// To regenerate mocks after interface changes, run:
//
//	go generate ./internal/mocks
//
// Usage in tests:
//
//	ctrl := gomock.NewController(t)
//	defer ctrl.Finish()
//	mockAPI := mocks.NewMockQuestionAPI(ctrl)
//	mockAPI.EXPECT().List(gomock.Any(), gomock.Any(), gomock.Any()).Return(page, nil)
package mocks

// Generate mock for QuestionAPI, the public upstream surface:
// List, Get, Answers, Create, PostAnswer
//go:generate go run go.uber.org/mock/mockgen@v0.6.0 -package=mocks -destination=question_api_mock.go github.com/doconnect/doconnect-web/internal/ports QuestionAPI

// Generate mock for AdminAPI, the elevated upstream surface:
// CreateQuestion, PostAnswer, PendingQuestions, PendingAnswers,
// ApproveQuestion, RejectQuestion, ApproveAnswer, RejectAnswer, DeleteQuestion
//go:generate go run go.uber.org/mock/mockgen@v0.6.0 -package=mocks -destination=admin_api_mock.go github.com/doconnect/doconnect-web/internal/ports AdminAPI

// Generate mock for IdentityAPI:
// Login, Me
//go:generate go run go.uber.org/mock/mockgen@v0.6.0 -package=mocks -destination=identity_api_mock.go github.com/doconnect/doconnect-web/internal/ports IdentityAPI

// Generate mock for SessionStore:
// Save, Get, Delete
//go:generate go run go.uber.org/mock/mockgen@v0.6.0 -package=mocks -destination=session_store_mock.go github.com/doconnect/doconnect-web/internal/ports SessionStore
