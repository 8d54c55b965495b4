package usecase

import (
	"context"
	"errors"
	"fmt"
	"io"
	"math/rand/v2"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/forPelevin/ytdigest/internal/domain/cost"
	"github.com/forPelevin/ytdigest/internal/domain/prompt"
	"github.com/forPelevin/ytdigest/internal/domain/wordcloud"
	"github.com/forPelevin/ytdigest/internal/ports"
	"github.com/forPelevin/ytdigest/internal/types"
)

// ErrInvalidTranscript is returned before any completion call when the
// flattened transcript is empty or shorter than prompt.MinTranscriptChars.
var ErrInvalidTranscript = prompt.ErrInvalidTranscript

// Rand is the source for the cosmetic confidence score and coverage backfill.
type Rand interface {
	IntN(n int) int
}

type Deps struct {
	// LLM may be nil: no key configured means every analysis uses mock data.
	LLM  ports.Completer
	Log  logrus.FieldLogger
	Rand Rand
}

type Usecase struct{ d Deps }

func New(d Deps) Usecase {
	if d.Log == nil {
		l := logrus.New()
		l.SetOutput(io.Discard)
		d.Log = l
	}
	if d.Rand == nil {
		d.Rand = rand.New(rand.NewPCG(uint64(time.Now().UnixNano()), rand.Uint64()))
	}
	return Usecase{d: d}
}

type Input struct {
	VideoID string
	// Title is the metadata title, if known; it wins over the model's title.
	Title       string
	Transcript  []types.Segment
	DetailLevel types.DetailLevel
	Options     types.Options
}

// ProcessTranscript runs cost estimation, prompt build, completion, response
// normalization, word cloud and assembly for one video. The only error it
// returns is ErrInvalidTranscript; completion and parse failures degrade to
// mock data and are flagged on the result.
func (u Usecase) ProcessTranscript(ctx context.Context, in Input) (types.Result, error) {
	level := in.DetailLevel
	if level == "" {
		level = in.Options.DetailLevel
	}
	level = level.OrDefault()

	log := u.d.Log.WithFields(logrus.Fields{
		"request_id": uuid.NewString(),
		"video_id":   in.VideoID,
		"detail":     level,
		"segments":   len(in.Transcript),
	})

	est := cost.Estimate(in.Transcript, level)
	if in.Options.EstimateCostOnly {
		log.WithField("tokens", est.Tokens).Debug("cost estimate only")
		return estimateOnly(in, level, est), nil
	}

	p, err := prompt.Build(level, in.Transcript, in.Options.CustomPrompt, in.Options.TranslateTo)
	if err != nil {
		log.WithError(err).Warn("rejecting transcript")
		return types.Result{}, fmt.Errorf("video %s: %w", in.VideoID, err)
	}

	an, src := invoker{llm: u.d.LLM, log: log}.Invoke(ctx, in.VideoID, p)
	wc := wordcloud.Summarize(types.JoinText(in.Transcript), in.Options.GenerateWordCloud)

	res := assemble(assembly{
		in:        in,
		level:     level,
		analysis:  an,
		source:    src,
		cost:      est,
		prompt:    p,
		wordCloud: wc,
	}, u.d.Rand)

	log.WithFields(logrus.Fields{
		"source":   res.Source,
		"degraded": res.Degraded,
		"tokens":   est.Tokens,
	}).Info("analysis complete")
	return res, nil
}

type PlaylistFailure struct {
	VideoID string
	Err     error
}

type PlaylistResult struct {
	Results  []types.Result
	Failures []PlaylistFailure
}

// Fetch loads one video's transcript and metadata right before it is analyzed.
type Fetch func(ctx context.Context, videoID string) Input

// ProcessPlaylist runs fetch then analysis for each video, strictly one after
// another. A failing video is logged and skipped; earlier results are kept. On
// cancellation the results gathered so far are returned with ctx.Err().
func (u Usecase) ProcessPlaylist(ctx context.Context, videoIDs []string, fetch Fetch) (PlaylistResult, error) {
	var out PlaylistResult
	for i, id := range videoIDs {
		if err := ctx.Err(); err != nil {
			return out, err
		}
		log := u.d.Log.WithFields(logrus.Fields{
			"video_id": id,
			"position": i + 1,
			"total":    len(videoIDs),
		})
		log.Info("processing video")
		in := fetch(ctx, id)
		res, err := u.ProcessTranscript(ctx, in)
		// a video interrupted mid-cycle is neither a result nor a failure
		if ctxErr := ctx.Err(); ctxErr != nil {
			return out, ctxErr
		}
		if err != nil {
			log.WithError(err).Error("playlist video failed, continuing")
			out.Failures = append(out.Failures, PlaylistFailure{VideoID: id, Err: err})
			continue
		}
		out.Results = append(out.Results, res)
	}
	return out, nil
}

// IsInvalidTranscript reports whether err came from the transcript length check.
func IsInvalidTranscript(err error) bool {
	return errors.Is(err, ErrInvalidTranscript)
}
