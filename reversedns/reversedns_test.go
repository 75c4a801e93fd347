// Unless explicitly stated otherwise all files in this repository are licensed
// under the Apache License Version 2.0.

package reversedns

import (
	"context"
	"errors"
	"net"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLookup(t *testing.T) {
	tests := []struct {
		name      string
		addr      string
		fakeNames []string
		fakeErr   error
		want      []string
		wantErr   string
	}{
		{
			name:      "single name",
			addr:      "1.1.1.1",
			fakeNames: []string{"one.one.one.one."},
			want:      []string{"one.one.one.one"},
		},
		{
			name:      "multiple names keep order",
			addr:      "1.1.1.1",
			fakeNames: []string{"foo.example.", "bar.example."},
			want:      []string{"foo.example", "bar.example"},
		},
		{
			name:    "lookup error",
			addr:    "1.1.1.1",
			fakeErr: errors.New("some error"),
			wantErr: "failed to get reverse dns: some error",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			LookupAddrFn = func(_ context.Context, _ string) ([]string, error) {
				return tt.fakeNames, tt.fakeErr
			}
			defer func() { LookupAddrFn = net.DefaultResolver.LookupAddr }()

			got, err := Lookup(tt.addr)
			if tt.wantErr != "" {
				require.EqualError(t, err, tt.wantErr)
				assert.Nil(t, got)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
