package cachesql

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"

	"github.com/openkcm/selfservice-datamanager/internal/serviceerr"
)

var errUnknown = errors.New("unknown error")

func Test_handlePgError(t *testing.T) {
	tests := []struct {
		name      string
		inputErr  error
		assertErr assert.ErrorAssertionFunc
		wantOk    bool
	}{
		{
			name:     "23505 error",
			inputErr: &pgconn.PgError{Code: "23505"},
			assertErr: func(t assert.TestingT, err error, msgAndArgs ...any) bool {
				return assert.ErrorIs(t, err, serviceerr.ErrConflict, msgAndArgs...)
			},
			wantOk: true,
		},
		{
			name:     "Other pg error",
			inputErr: &pgconn.PgError{Code: "42P01"},
			assertErr: func(t assert.TestingT, err error, msgAndArgs ...any) bool {
				return assert.NotErrorIs(t, err, serviceerr.ErrConflict, msgAndArgs...)
			},
			wantOk: false,
		},
		{
			name:     "Unknown error",
			inputErr: errUnknown,
			assertErr: func(t assert.TestingT, err error, msgAndArgs ...any) bool {
				return assert.ErrorIs(t, err, errUnknown, msgAndArgs...)
			},
			wantOk: false,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gotErr, ok := handlePgError(tt.inputErr)
			if !tt.assertErr(t, gotErr, fmt.Sprintf("handlePgError() error %v", gotErr)) {
				return
			}

			assert.Equal(t, tt.wantOk, ok, "handlePgError() OK = %v, want = %v", ok, tt.wantOk)
		})
	}
}
