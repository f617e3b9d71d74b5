package cluster

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"k8s.io/client-go/kubernetes/fake"

	apperrors "github.com/example/shipctl/pkg/errors"
)

func TestCheckToolVersion(t *testing.T) {
	tests := []struct {
		name     string
		out      string
		runErr   error
		wantCode apperrors.ErrorCode
	}{
		{
			name: "current release",
			out:  `{"commit":"210b148df93a80eb872ecbeb7e35281b3c582c61","minikubeVersion":"v1.34.0"}`,
		},
		{
			name: "exact minimum",
			out:  fmt.Sprintf(`{"minikubeVersion":"v%s"}`, MinToolVersion.String()),
		},
		{
			name:     "too old",
			out:      `{"minikubeVersion":"v1.18.1"}`,
			wantCode: apperrors.ErrCodeUnavailable,
		},
		{
			name:     "query fails",
			runErr:   assert.AnError,
			wantCode: apperrors.ErrCodeCommandFailed,
		},
		{
			name:     "garbage output",
			out:      "minikube version: v1.34.0",
			wantCode: apperrors.ErrCodeInternal,
		},
		{
			name:     "unparseable version",
			out:      `{"minikubeVersion":"devel"}`,
			wantCode: apperrors.ErrCodeInternal,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			runner := &fakeRunner{responses: map[string]fakeResponse{
				"version": {out: tc.out, err: tc.runErr},
			}}
			r := NewReconciler(fake.NewClientset(), runner, nil, "minikube")

			err := r.CheckToolVersion(t.Context())
			if tc.wantCode == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Equal(t, tc.wantCode, apperrors.CodeOf(err))
		})
	}
}
