package tui

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestErrors_AreDistinct(t *testing.T) {
	assert.NotEqual(t, ErrMissingTaggingService.Error(), ErrMissingTableView.Error())
}

func TestErrMissingTaggingService_Message(t *testing.T) {
	assert.Contains(t, ErrMissingTaggingService.Error(), "tagging service")
}

func TestErrMissingTableView_Message(t *testing.T) {
	assert.Contains(t, ErrMissingTableView.Error(), "table view")
}
