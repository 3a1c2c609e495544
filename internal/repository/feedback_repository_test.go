package repository

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestFindQuestionByIDForUpdate_GeneratesRowLock(t *testing.T) {
	var queries []string
	repo := NewFeedbackRepository(dryRunDB(t, &queries))

	repo.FindQuestionByIDForUpdate(context.Background(), uuid.New())

	assert.Contains(t, lastQuery(t, queries), "FOR UPDATE")
}

func TestFindQuestionByID_TakesNoLock(t *testing.T) {
	var queries []string
	repo := NewFeedbackRepository(dryRunDB(t, &queries))

	repo.FindQuestionByID(context.Background(), uuid.New())

	assert.NotContains(t, lastQuery(t, queries), "FOR UPDATE")
}
