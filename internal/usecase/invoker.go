package usecase

import (
	"context"

	"github.com/sirupsen/logrus"

	"github.com/forPelevin/ytdigest/internal/domain/mockdata"
	"github.com/forPelevin/ytdigest/internal/domain/normalize"
	"github.com/forPelevin/ytdigest/internal/domain/prompt"
	"github.com/forPelevin/ytdigest/internal/ports"
	"github.com/forPelevin/ytdigest/internal/types"
)

type invoker struct {
	llm ports.Completer
	log logrus.FieldLogger
}

// Invoke makes at most one completion call. No client, a failed call or
// unparseable output all end in the content-addressed mock for videoID.
func (i invoker) Invoke(ctx context.Context, videoID string, p prompt.Prompt) (types.Analysis, types.Source) {
	if i.llm == nil {
		i.log.Debug("no completion client configured, using mock analysis")
		return mockdata.Analysis(videoID), types.SourceMock
	}

	raw, err := i.llm.Complete(ctx, p.System, p.User)
	if err != nil {
		i.log.WithError(err).Warn("completion failed, using mock analysis")
		return mockdata.Analysis(videoID), types.SourceMock
	}

	an, src := normalize.Normalize(raw, videoID)
	if src == types.SourceMock {
		i.log.WithField("response_chars", len(raw)).Warn("completion output not parseable, using mock analysis")
	}
	return an, src
}
