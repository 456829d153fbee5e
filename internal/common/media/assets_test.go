package media

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"wordpress-posts/internal/common/errors"
	"wordpress-posts/internal/common/wordpress"
	"wordpress-posts/internal/common/wordpress/wptest"
)

func writeImage(t *testing.T, name string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte("\x89PNG\r\n\x1a\nfake"), 0o600))
	return path
}

func TestUploader_Upload(t *testing.T) {
	srv := wptest.NewServer()
	defer srv.Close()
	api := wordpress.NewClient(srv.Credentials(), srv.Client())
	uploader := NewUploader(api, nil)

	t.Run("success uses extension content type", func(t *testing.T) {
		path := writeImage(t, "source.bin")
		id, err := uploader.Upload(context.Background(), path, "renamed.webp")
		require.NoError(t, err)

		stored, ok := srv.Media(id)
		require.True(t, ok)
		assert.Equal(t, "image/webp", stored.MimeType)
		assert.Contains(t, stored.SourceURL, "renamed.webp")
	})

	t.Run("missing file", func(t *testing.T) {
		missing := filepath.Join(t.TempDir(), "gone.png")
		_, err := uploader.Upload(context.Background(), missing, "gone.png")
		require.Error(t, err)
		assert.True(t, errors.HasCode(err, errors.ErrCodeFileNotFound))
		assert.Equal(t, "File not found: "+missing, errors.Summarize(err))
	})

	t.Run("directory is not a file", func(t *testing.T) {
		_, err := uploader.Upload(context.Background(), t.TempDir(), "dir.png")
		assert.True(t, errors.HasCode(err, errors.ErrCodeFileNotFound))
	})

	t.Run("file removed between calls is rechecked", func(t *testing.T) {
		path := writeImage(t, "flaky.png")
		_, err := uploader.Upload(context.Background(), path, "flaky.png")
		require.NoError(t, err)

		require.NoError(t, os.Remove(path))
		_, err = uploader.Upload(context.Background(), path, "flaky.png")
		assert.True(t, errors.HasCode(err, errors.ErrCodeFileNotFound))
	})

	t.Run("unreadable file keeps the os error", func(t *testing.T) {
		path := writeImage(t, "locked.png")
		locked := NewUploader(api, nil)
		locked.readFile = func(string) ([]byte, error) {
			return nil, &os.PathError{Op: "open", Path: path, Err: os.ErrPermission}
		}

		_, err := locked.Upload(context.Background(), path, "locked.png")
		require.Error(t, err)
		assert.True(t, errors.HasCode(err, errors.ErrCodeFileNotFound))
		assert.ErrorIs(t, err, os.ErrPermission)
		assert.Contains(t, errors.Summarize(err), "File could not be read: "+path)
		assert.Contains(t, errors.Summarize(err), "permission denied")
	})

	t.Run("remote rejection carries remote message", func(t *testing.T) {
		srv.RejectUploads["blocked.gif"] = "Sorry, you are not allowed to upload this file type."
		path := writeImage(t, "blocked.gif")

		_, err := uploader.Upload(context.Background(), path, "blocked.gif")
		require.Error(t, err)
		assert.True(t, errors.HasCode(err, errors.ErrCodeMediaUploadFailed))
		assert.Equal(t, "Media upload error: Sorry, you are not allowed to upload this file type.", errors.Summarize(err))
	})
}

func TestResolver_Resolve(t *testing.T) {
	srv := wptest.NewServer()
	defer srv.Close()
	api := wordpress.NewClient(srv.Credentials(), srv.Client())

	id, err := NewUploader(api, nil).Upload(context.Background(), writeImage(t, "a.png"), "a.png")
	require.NoError(t, err)

	resolver := NewResolver(api, nil)

	asset, err := resolver.Resolve(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, id, asset.AssetID)
	assert.Equal(t, srv.URL+"/wp-content/uploads/a.png", asset.SourceURL)
	assert.Equal(t, "image/png", asset.MimeType)
	assert.Contains(t, asset.Metadata, "filesize")

	_, err = resolver.Resolve(context.Background(), 987654)
	require.Error(t, err)
	assert.True(t, errors.HasCode(err, errors.ErrCodeMediaResolveFailed))
	assert.Equal(t, "Media lookup error: Invalid post ID.", errors.Summarize(err))
}
