package errors_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	dnderr "github.com/KirkDiggler/mmo-db-gateway/internal/errors"
)

func TestWrapKeepsCodeAndMeta(t *testing.T) {
	base := dnderr.Conflict("held").WithReason(dnderr.ReasonStorageLocked)
	wrapped := dnderr.Wrap(base, "read for update")

	assert.True(t, dnderr.IsConflict(wrapped))
	assert.Equal(t, dnderr.ReasonStorageLocked, dnderr.Reason(wrapped))
	assert.Equal(t, "read for update: held", wrapped.Error())
	assert.True(t, errors.Is(wrapped, base))
}

func TestWrapNil(t *testing.T) {
	assert.Nil(t, dnderr.Wrap(nil, "x"))
	assert.Nil(t, dnderr.WrapWithCode(nil, dnderr.CodeInternal, "x"))
	assert.NoError(t, dnderr.WrapStore(nil, "x"))
}

func TestWrapStore(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want dnderr.Code
	}{
		{"driver failure", errors.New("connection refused"), dnderr.CodeInternal},
		{"not found", dnderr.NotFound("gone"), dnderr.CodeNotFound},
		{"invalid argument", dnderr.InvalidArgument("bad"), dnderr.CodeInvalidArgument},
		{"already exists", dnderr.AlreadyExistsf("taken"), dnderr.CodeAlreadyExists},
		{"unknown wrapped", fmt.Errorf("ctx: %w", errors.New("eof")), dnderr.CodeInternal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, dnderr.GetCode(dnderr.WrapStore(tt.err, "store")))
		})
	}
}

func TestReasonMissing(t *testing.T) {
	assert.Empty(t, dnderr.Reason(errors.New("plain")))
	assert.Empty(t, dnderr.Reason(dnderr.NotFound("x")))
}

func TestWrapCopiesMeta(t *testing.T) {
	base := dnderr.Forbidden("no").WithMeta("mail_id", int64(3))
	wrapped := dnderr.Wrap(base, "outer").WithReason(dnderr.ReasonMailReadNotAllowed)

	assert.Empty(t, dnderr.Reason(base))
	assert.Equal(t, dnderr.ReasonMailReadNotAllowed, dnderr.Reason(wrapped))
	assert.Equal(t, int64(3), dnderr.GetMeta(wrapped)["mail_id"])
}
