package app

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/quoteflow/quoteflow/pkg/apperr"
	"github.com/quoteflow/quoteflow/ports"
)

func TestStoreErrClassification(t *testing.T) {
	assert.NoError(t, storeErr(nil, "customer"))

	err := storeErr(ports.ErrNotFound, "customer")
	assert.Equal(t, apperr.KindNotFound, apperr.KindOf(err))
	assert.Contains(t, err.Error(), "customer")

	err = storeErr(ports.ErrDuplicate, "customer")
	assert.Equal(t, apperr.KindForbidden, apperr.KindOf(err))

	cause := errors.New("database is locked")
	err = storeErr(cause, "customer")
	assert.Equal(t, apperr.KindUpstream, apperr.KindOf(err))
	assert.True(t, errors.Is(err, cause), "the cause stays reachable for logging")
}
