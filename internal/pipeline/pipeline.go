package pipeline

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"
	"unicode"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"google.golang.org/api/option"

	"github.com/forPelevin/ytdigest/internal/domain/export"
	"github.com/forPelevin/ytdigest/internal/domain/mockdata"
	"github.com/forPelevin/ytdigest/internal/ports"
	"github.com/forPelevin/ytdigest/internal/ports/adapters/openrouter"
	"github.com/forPelevin/ytdigest/internal/ports/adapters/youtube"
	"github.com/forPelevin/ytdigest/internal/types"
	"github.com/forPelevin/ytdigest/internal/usecase"
)

var ErrPlaylistNeedsKey = errors.New("playlist URLs require YOUTUBE_API_KEY")

type Config struct {
	Input   string `validate:"required"`
	OutDir  string
	Formats []string `validate:"dive,oneof=markdown html text json"`
	Lang    string   `validate:"omitempty,min=2,max=12"`
	Options types.Options
	Log     logrus.FieldLogger `validate:"-"`

	OpenRouterAPIKey       string
	OpenRouterModel        string
	OpenRouterBaseURL      string
	OpenRouterAllowedHosts []string

	// YouTubeAPIKey enables titles, caption language lookup and playlists.
	YouTubeAPIKey  string
	YouTubeOptions []option.ClientOption `validate:"-"`
	// TimedtextURL overrides the caption endpoint.
	TimedtextURL string `validate:"omitempty,url"`
}

var validate = validator.New()

func (c Config) Validate() error {
	if strings.TrimSpace(c.Input) == "" {
		return errors.New("input is empty")
	}
	if err := validate.Struct(c); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			return errors.New(formatValidationErrors(verrs))
		}
		return err
	}
	if _, err := youtube.ParseURL(c.Input); err != nil {
		return err
	}
	return openrouter.ValidateBaseURL(
		c.OpenRouterBaseURL,
		c.OpenRouterAllowedHosts,
	)
}

func formatValidationErrors(verrs validator.ValidationErrors) string {
	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		msg := fmt.Sprintf("%s failed on %q", fe.Namespace(), fe.Tag())
		if fe.Param() != "" {
			msg = fmt.Sprintf("%s (%s)", msg, fe.Param())
		}
		if v, ok := fe.Value().(string); ok && v != "" {
			msg = fmt.Sprintf("%s: got %q", msg, v)
		}
		msgs = append(msgs, msg)
	}
	return strings.Join(msgs, "; ")
}

// Report describes what a run wrote.
type Report struct {
	RunDir       string
	ManifestPath string
	Manifest     types.Manifest
	Results      []types.Result
}

type env struct {
	llm         ports.Completer
	catalog     ports.VideoCatalog
	transcripts ports.TranscriptSource
	log         logrus.FieldLogger
	now         func() time.Time
}

func Run(ctx context.Context, cfg Config) (Report, error) {
	log := cfg.Log
	if log == nil {
		l := logrus.New()
		l.SetOutput(io.Discard)
		log = l
	}

	e := env{
		transcripts: youtube.NewTimedtext(cfg.TimedtextURL),
		log:         log,
		now:         time.Now,
	}
	if cfg.OpenRouterAPIKey != "" {
		llm := openrouter.New(cfg.OpenRouterAPIKey, cfg.OpenRouterModel, cfg.OpenRouterBaseURL)
		log.WithField("model", llm.Model()).Debug("completion service configured")
		e.llm = llm
	} else if !cfg.Options.EstimateCostOnly {
		log.Warn("no OPENROUTER_API_KEY configured, results will use demonstration data")
	}
	if cfg.YouTubeAPIKey != "" {
		cat, err := youtube.NewCatalog(ctx, cfg.YouTubeAPIKey, cfg.YouTubeOptions...)
		if err != nil {
			return Report{}, err
		}
		e.catalog = cat
	}
	return run(ctx, cfg, e)
}

func run(ctx context.Context, cfg Config, e env) (Report, error) {
	log := e.log
	target, err := youtube.ParseURL(cfg.Input)
	if err != nil {
		return Report{}, err
	}

	ids, err := resolveVideoIDs(ctx, target, e)
	if err != nil {
		return Report{}, err
	}
	log.WithField("videos", len(ids)).Info("resolved input")

	titles := make(map[string]string, len(ids))
	fetch := func(ctx context.Context, id string) usecase.Input {
		in := collect(ctx, id, cfg.Lang, cfg.Options, e)
		titles[id] = in.Title
		return in
	}

	uc := usecase.New(usecase.Deps{LLM: e.llm, Log: log})
	pr, runErr := uc.ProcessPlaylist(ctx, ids, fetch)
	if len(pr.Results) == 0 && len(pr.Failures) == 0 {
		return Report{}, runErr
	}
	if runErr != nil {
		log.WithError(runErr).WithField("finished", len(pr.Results)+len(pr.Failures)).Warn("run interrupted, writing finished videos")
	}

	outDir := cfg.OutDir
	if outDir == "" {
		outDir = "out"
	}
	runOutDir := buildRunOutDir(outDir, runName(target, ids, titles), e.now().UTC())
	if err := os.MkdirAll(runOutDir, 0o755); err != nil {
		return Report{}, err
	}
	log.WithField("dir", runOutDir).Info("output run dir")

	formats := cfg.Formats
	if len(formats) == 0 {
		formats = []string{string(export.Markdown)}
	}

	manifest := types.Manifest{RunID: uuid.NewString(), Input: cfg.Input}
	for _, res := range pr.Results {
		files, err := writeExports(runOutDir, res, formats)
		if err != nil {
			return Report{}, err
		}
		mv := types.ManifestVideo{
			VideoID:  res.VideoID,
			Title:    res.Title,
			Source:   res.Source,
			Degraded: res.Degraded,
			Files:    files,
		}
		if res.ProcessingCost != nil {
			mv.Tokens = res.ProcessingCost.Tokens
			mv.Cost = res.ProcessingCost.EstimatedCost
		}
		manifest.Videos = append(manifest.Videos, mv)
	}
	for _, f := range pr.Failures {
		manifest.Videos = append(manifest.Videos, types.ManifestVideo{VideoID: f.VideoID, Error: f.Err.Error()})
	}

	b, err := json.MarshalIndent(manifest, "", "  ")
	if err != nil {
		return Report{}, fmt.Errorf("marshal manifest: %w", err)
	}
	manifestPath := filepath.Join(runOutDir, "manifest.json")
	if err := os.WriteFile(manifestPath, b, 0o644); err != nil {
		return Report{}, err
	}
	log.WithFields(logrus.Fields{
		"videos":   len(pr.Results),
		"failures": len(pr.Failures),
		"path":     manifestPath,
	}).Info("manifest written")

	rep := Report{RunDir: runOutDir, ManifestPath: manifestPath, Manifest: manifest, Results: pr.Results}
	if runErr != nil {
		return rep, runErr
	}
	if len(pr.Results) == 0 && len(pr.Failures) > 0 {
		return rep, pr.Failures[0].Err
	}
	return rep, nil
}

func resolveVideoIDs(ctx context.Context, target youtube.Target, e env) ([]string, error) {
	if !target.IsPlaylist() {
		return []string{target.VideoID}, nil
	}
	if e.catalog == nil {
		if target.VideoID != "" {
			e.log.WithField("playlist_id", target.PlaylistID).Warn("no YOUTUBE_API_KEY, analyzing the linked video only")
			return []string{target.VideoID}, nil
		}
		return nil, ErrPlaylistNeedsKey
	}
	return e.catalog.PlaylistVideoIDs(ctx, target.PlaylistID)
}

// collect never fails: missing metadata leaves the title empty and missing
// captions fall back to the demonstration transcript.
func collect(ctx context.Context, videoID, lang string, opts types.Options, e env) usecase.Input {
	log := e.log.WithField("video_id", videoID)
	if lang == "" {
		lang = "en"
	}
	in := usecase.Input{VideoID: videoID, DetailLevel: opts.DetailLevel, Options: opts}

	if e.catalog != nil {
		title, err := e.catalog.VideoTitle(ctx, videoID)
		if err != nil {
			log.WithError(err).Warn("title lookup failed")
		}
		in.Title = title
		picked, err := e.catalog.CaptionLanguage(ctx, videoID, lang)
		if err != nil {
			log.WithError(err).Debug("caption track lookup failed")
		}
		lang = picked
	}

	segs, err := e.transcripts.Transcript(ctx, videoID, lang)
	switch {
	case err != nil:
		log.WithError(err).Warn("caption fetch failed, using demonstration transcript")
		segs = mockdata.Transcript(videoID)
	case len(segs) == 0:
		log.Warn("captions are empty, using demonstration transcript")
		segs = mockdata.Transcript(videoID)
	default:
		log.WithFields(logrus.Fields{"lang": lang, "segments": len(segs)}).Debug("captions fetched")
	}
	in.Transcript = segs
	return in
}

func writeExports(dir string, res types.Result, formats []string) (map[string]string, error) {
	files := make(map[string]string, len(formats))
	for _, f := range formats {
		ext, err := export.Extension(export.Format(f))
		if err != nil {
			return nil, err
		}
		b, err := export.Render(export.Format(f), res)
		if err != nil {
			return nil, fmt.Errorf("video %s: %w", res.VideoID, err)
		}
		name := res.VideoID + ext
		if err := os.WriteFile(filepath.Join(dir, name), b, 0o644); err != nil {
			return nil, err
		}
		files[f] = name
	}
	return files, nil
}

func runName(target youtube.Target, ids []string, titles map[string]string) string {
	if target.IsPlaylist() && len(ids) > 1 {
		return "playlist-" + target.PlaylistID
	}
	if len(ids) == 1 && titles[ids[0]] != "" {
		return titles[ids[0]]
	}
	if target.VideoID != "" {
		return target.VideoID
	}
	return target.PlaylistID
}

func buildRunOutDir(outRoot, name string, now time.Time) string {
	seed := name
	name = normalizePathSegment(name)
	if name == "" {
		name = "video"
	}
	ts := now.UTC().Format("20060102-150405Z")
	runSeed := fmt.Sprintf("%s|%d", seed, now.UTC().UnixNano())
	suffix := hash(runSeed)[:6]
	return filepath.Join(outRoot, fmt.Sprintf("%s-%s-%s", name, ts, suffix))
}

func normalizePathSegment(s string) string {
	var b strings.Builder
	prevDash := false
	for _, r := range strings.ToLower(strings.TrimSpace(s)) {
		switch {
		case unicode.IsLetter(r), unicode.IsDigit(r):
			b.WriteRune(r)
			prevDash = false
		default:
			if !prevDash {
				b.WriteByte('-')
				prevDash = true
			}
		}
	}
	return strings.Trim(b.String(), "-")
}

func hash(s string) string {
	sum := sha256.Sum256([]byte(s))
	return hex.EncodeToString(sum[:])[:12]
}

// ensure adapters implement ports
var _ ports.Completer = (*openrouter.Adapter)(nil)
var _ ports.VideoCatalog = (*youtube.Catalog)(nil)
var _ ports.TranscriptSource = (*youtube.Timedtext)(nil)
