package media

import (
	"context"
	"path/filepath"

	"wordpress-posts/internal/common/errors"
)

// ImageRequest is one image to upload and inline.
type ImageRequest struct {
	FilePath    string `json:"filePath"`
	Filename    string `json:"filename,omitempty"`
	Placeholder string `json:"placeholder"`
}

// EffectiveFilename is Filename, or the base name of FilePath when unset.
func (r ImageRequest) EffectiveFilename() string {
	if r.Filename != "" {
		return r.Filename
	}
	return filepath.Base(r.FilePath)
}

type AssetUploader interface {
	Upload(ctx context.Context, filePath, filename string) (int64, error)
}

type AssetResolver interface {
	Resolve(ctx context.Context, assetID int64) (*ResolvedAsset, error)
}

// ImageOutcome records what happened to one ImageRequest. AssetID is set
// whenever the upload succeeded, even if the resolve step then failed.
type ImageOutcome struct {
	Placeholder string
	Filename    string
	AssetID     int64
	SourceURL   string
	Replaced    bool
	Err         error
}

func (o ImageOutcome) Succeeded() bool {
	return o.Err == nil
}

type PipelineResult struct {
	FinalContent    string
	FeaturedAssetID int64
	Outcomes        []ImageOutcome
}

func (r *PipelineResult) Succeeded() int {
	n := 0
	for _, o := range r.Outcomes {
		if o.Succeeded() {
			n++
		}
	}
	return n
}

func (r *PipelineResult) Failed() int {
	return len(r.Outcomes) - r.Succeeded()
}

type Pipeline struct {
	uploader AssetUploader
	resolver AssetResolver
	sink     EventSink
}

func NewPipeline(uploader AssetUploader, resolver AssetResolver, sink EventSink) *Pipeline {
	if sink == nil {
		sink = NopSink{}
	}
	return &Pipeline{uploader: uploader, resolver: resolver, sink: sink}
}

// Run processes images strictly in order. Each image ends in exactly one
// replacement attempt: the image markup on success, a failure marker
// otherwise. A failing image never stops the run.
//
// explicitFeatured, when non-zero, is returned as the featured asset
// unchanged. Otherwise the first successful upload claims the slot, even if
// its URL lookup fails afterwards.
func (p *Pipeline) Run(ctx context.Context, content string, images []ImageRequest, explicitFeatured int64) *PipelineResult {
	result := &PipelineResult{
		FinalContent:    content,
		FeaturedAssetID: explicitFeatured,
		Outcomes:        make([]ImageOutcome, 0, len(images)),
	}
	featuredClaimed := explicitFeatured != 0

	for i, img := range images {
		outcome := ImageOutcome{
			Placeholder: img.Placeholder,
			Filename:    img.EffectiveFilename(),
		}
		ev := Event{Index: i, Placeholder: img.Placeholder, Filename: outcome.Filename}

		var replacement string

		p.emit(ctx, ev, EventUploadAttempted)
		assetID, err := p.uploader.Upload(ctx, img.FilePath, outcome.Filename)
		if err != nil {
			outcome.Err = err
			ev.Err = err
			p.emit(ctx, ev, EventUploadFailed)
		} else {
			outcome.AssetID = assetID
			ev.AssetID = assetID
			p.emit(ctx, ev, EventUploadSucceeded)

			if !featuredClaimed {
				featuredClaimed = true
				result.FeaturedAssetID = assetID
				p.emit(ctx, ev, EventFeaturedSelected)
			}

			asset, resolveErr := p.resolver.Resolve(ctx, assetID)
			if resolveErr != nil {
				outcome.Err = resolveErr
				ev.Err = resolveErr
				p.emit(ctx, ev, EventResolveFailed)
			} else {
				outcome.SourceURL = asset.SourceURL
				ev.SourceURL = asset.SourceURL
				replacement = ImageMarkup(asset.SourceURL, outcome.Filename, assetID)
			}
		}

		if outcome.Err != nil {
			replacement = FailureMarker(outcome.Filename, errors.Summarize(outcome.Err))
		}

		result.FinalContent, outcome.Replaced = ReplaceFirst(result.FinalContent, img.Placeholder, replacement)
		if outcome.Replaced {
			p.emit(ctx, ev, EventSubstitutionApplied)
		} else {
			p.emit(ctx, ev, EventPlaceholderMissing)
		}

		result.Outcomes = append(result.Outcomes, outcome)
	}

	return result
}

func (p *Pipeline) emit(ctx context.Context, ev Event, t EventType) {
	ev.Type = t
	p.sink.Emit(ctx, ev)
}
