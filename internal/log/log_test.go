package log_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/slok/tasktracker/internal/log"
)

func TestCtxValues(t *testing.T) {
	tests := map[string]struct {
		ctx       func() context.Context
		expValues log.Kv
	}{
		"A context without values should return empty values.": {
			ctx:       context.Background,
			expValues: log.Kv{},
		},
		"Values set on the context should be returned.": {
			ctx: func() context.Context {
				return log.CtxWithValues(context.Background(), log.Kv{"cmd": "add"})
			},
			expValues: log.Kv{"cmd": "add"},
		},
		"Values set multiple times should be merged, the latest winning.": {
			ctx: func() context.Context {
				ctx := log.CtxWithValues(context.Background(), log.Kv{"cmd": "add", "id": 1})
				return log.CtxWithValues(ctx, log.Kv{"id": 2})
			},
			expValues: log.Kv{"cmd": "add", "id": 2},
		},
	}

	for name, test := range tests {
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, test.expValues, log.ValuesFromCtx(test.ctx()))
		})
	}
}

func TestNoopSetValuesOnCtx(t *testing.T) {
	ctx := context.Background()
	got := log.Noop.SetValuesOnCtx(ctx, log.Kv{"k": "v"})
	assert.Equal(t, ctx, got)
	assert.Equal(t, log.Noop, log.Noop.WithValues(log.Kv{"k": "v"}))
}
