package domain

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCode(t *testing.T) {
	assert.Equal(t, "", Code(nil))
	assert.Equal(t, "", Code(errors.New("boom")))
	assert.Equal(t, "reference_not_found", Code(ErrReferenceNotFound))
	assert.Equal(t, "malformed_document", Code(fmt.Errorf("parse en.json: %w", ErrMalformedDocument)))
	assert.Equal(t, "unknown_locale", Code(fmt.Errorf("select: %w", fmt.Errorf("%w: fr", ErrUnknownLocale))))
}
