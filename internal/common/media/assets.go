package media

import (
	"context"
	"fmt"
	"os"

	"go.opentelemetry.io/otel/attribute"

	"wordpress-posts/internal/common/errors"
	"wordpress-posts/internal/common/observability"
	"wordpress-posts/internal/models"
)

// MediaAPI is the part of the WordPress client the uploader and resolver need.
type MediaAPI interface {
	UploadMedia(ctx context.Context, filename, contentType string, data []byte) (*models.Media, error)
	GetMedia(ctx context.Context, id int64) (*models.Media, error)
}

// ResolvedAsset is an uploaded asset after its canonical URL has been looked up.
type ResolvedAsset struct {
	AssetID   int64
	SourceURL string
	// MimeType is what WordPress reports for the stored file. Uploads are sent
	// with ContentTypeFor(filename) instead.
	MimeType string
	Metadata map[string]interface{}
}

type Uploader struct {
	api      MediaAPI
	tracer   *observability.TracerProvider
	readFile func(name string) ([]byte, error)
}

func NewUploader(api MediaAPI, tracer *observability.TracerProvider) *Uploader {
	return &Uploader{api: api, tracer: tracer, readFile: os.ReadFile}
}

// Upload sends the file at filePath as filename and returns the remote asset
// id. The file is checked on every call.
func (u *Uploader) Upload(ctx context.Context, filePath, filename string) (id int64, err error) {
	ctx, span := u.tracer.StartSpan(ctx, observability.SpanMediaUpload, attribute.String("filename", filename))
	defer func() { observability.EndSpan(span, err) }()

	info, statErr := os.Stat(filePath)
	if statErr != nil || info.IsDir() {
		return 0, errors.NewFileNotFoundError(filePath)
	}

	data, readErr := u.readFile(filePath)
	if readErr != nil {
		return 0, errors.NewFileReadError(filePath, readErr)
	}

	media, uploadErr := u.api.UploadMedia(ctx, filename, ContentTypeFor(filename), data)
	if uploadErr != nil {
		return 0, errors.NewMediaUploadError(filename, uploadErr)
	}
	if media.ID == 0 {
		return 0, errors.NewMediaUploadError(filename, fmt.Errorf("response carried no media id"))
	}

	span.SetAttributes(attribute.Int64(observability.AttrAssetID, media.ID))
	return media.ID, nil
}

type Resolver struct {
	api    MediaAPI
	tracer *observability.TracerProvider
}

func NewResolver(api MediaAPI, tracer *observability.TracerProvider) *Resolver {
	return &Resolver{api: api, tracer: tracer}
}

// Resolve fetches the canonical source URL of an uploaded asset.
func (r *Resolver) Resolve(ctx context.Context, assetID int64) (asset *ResolvedAsset, err error) {
	ctx, span := r.tracer.StartSpan(ctx, observability.SpanMediaResolve, attribute.Int64(observability.AttrAssetID, assetID))
	defer func() { observability.EndSpan(span, err) }()

	media, getErr := r.api.GetMedia(ctx, assetID)
	if getErr != nil {
		return nil, errors.NewMediaResolveError(assetID, getErr)
	}
	if media.SourceURL == "" {
		return nil, errors.NewMediaResolveError(assetID, fmt.Errorf("media %d has no source_url", assetID))
	}

	return &ResolvedAsset{
		AssetID:   assetID,
		SourceURL: media.SourceURL,
		MimeType:  media.MimeType,
		Metadata:  media.Details(),
	}, nil
}
