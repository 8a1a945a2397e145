package main_test

import (
	"bytes"
	"context"
	"testing"

	"github.com/fwojciec/lighterceptor"
	main "github.com/fwojciec/lighterceptor/cmd/lighterceptor"
	"github.com/fwojciec/lighterceptor/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDeleteCmd_Run(t *testing.T) {
	t.Parallel()

	t.Run("deletes capture when --force is set", func(t *testing.T) {
		t.Parallel()

		var deletedID string
		captures := &mock.CaptureService{
			DeleteCaptureFn: func(_ context.Context, id string) error {
				deletedID = id
				return nil
			},
		}

		stdout := &bytes.Buffer{}
		deps := &main.Dependencies{
			Ctx:      context.Background(),
			Stdout:   stdout,
			Stderr:   &bytes.Buffer{},
			Captures: captures,
		}

		cmd := &main.DeleteCmd{ID: "cap-1", Force: true}
		require.NoError(t, cmd.Run(deps))

		assert.Equal(t, "cap-1", deletedID)
		assert.Contains(t, stdout.String(), "Deleted")
	})

	t.Run("requires --force flag", func(t *testing.T) {
		t.Parallel()

		stderr := &bytes.Buffer{}
		deps := &main.Dependencies{
			Ctx:      context.Background(),
			Stdout:   &bytes.Buffer{},
			Stderr:   stderr,
			Captures: &mock.CaptureService{},
		}

		cmd := &main.DeleteCmd{ID: "cap-1"}
		err := cmd.Run(deps)

		require.Error(t, err)
		assert.Contains(t, stderr.String(), "--force")
	})

	t.Run("reports missing capture", func(t *testing.T) {
		t.Parallel()

		captures := &mock.CaptureService{
			DeleteCaptureFn: func(_ context.Context, _ string) error {
				return lighterceptor.Errorf(lighterceptor.ENOTFOUND, "capture not found")
			},
		}

		stderr := &bytes.Buffer{}
		deps := &main.Dependencies{
			Ctx:      context.Background(),
			Stdout:   &bytes.Buffer{},
			Stderr:   stderr,
			Captures: captures,
		}

		cmd := &main.DeleteCmd{ID: "nope", Force: true}
		err := cmd.Run(deps)

		assert.Equal(t, lighterceptor.ENOTFOUND, lighterceptor.ErrorCode(err))
		assert.Contains(t, stderr.String(), "not found")
	})
}
