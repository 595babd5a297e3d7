package cmd

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/service/bedrockruntime"
	"go.uber.org/zap"

	"github.com/quizforge/quizforge/internal/config"
	"github.com/quizforge/quizforge/internal/jobs"
	"github.com/quizforge/quizforge/pkg/agent"
	"github.com/quizforge/quizforge/pkg/dispatch"
	"github.com/quizforge/quizforge/pkg/extract"
	"github.com/quizforge/quizforge/pkg/jobstore"
	"github.com/quizforge/quizforge/pkg/presign"
)

// runtime bundles the process-wide collaborators built once at startup and
// treated as read-only handles afterwards.
type runtime struct {
	cfg       *config.Config
	jobs      *jobs.Service
	presigner *presign.Presigner
	extractor *extract.Extractor
	invoker   agent.Invoker
	mockMode  bool
}

// buildRuntime constructs every collaborator the selected command needs.
// A missing jobs bucket is not fatal here: persistence-dependent operations
// surface it per-request instead, so read-only surfaces keep working.
func buildRuntime(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*runtime, error) {
	storeCfg := jobstore.Config{
		Bucket:         cfg.Store.Bucket,
		Prefix:         cfg.Store.Prefix,
		Region:         cfg.AWS.Region,
		Endpoint:       cfg.Store.Endpoint,
		Profile:        cfg.AWS.Profile,
		ForcePathStyle: cfg.Store.ForcePathStyle,
	}

	awsCfg, err := jobstore.LoadAWSConfig(ctx, storeCfg)
	if err != nil {
		return nil, fmt.Errorf("load AWS config: %w", err)
	}

	var store jobstore.Store
	if cfg.Store.Bucket != "" {
		s3Store, err := jobstore.New(ctx, storeCfg)
		if err != nil {
			return nil, fmt.Errorf("build job store: %w", err)
		}
		store = s3Store
	} else {
		logger.Warn("jobs bucket is not set; job persistence is disabled")
	}

	mockMode := cfg.Agent.Mode == config.ModeMock

	var invoker agent.Invoker
	if mockMode {
		invoker = agent.Mock{}
	} else {
		live, err := agent.NewRuntime(awsCfg, agent.RuntimeConfig{
			RuntimeARN: cfg.Agent.RuntimeARN,
			Qualifier:  cfg.Agent.Qualifier,
		})
		if err != nil {
			return nil, fmt.Errorf("build agent invoker: %w", err)
		}
		invoker = live
	}

	svc := &jobs.Service{}
	var dispatcher dispatch.Dispatcher
	switch cfg.Dispatch.Mode {
	case config.DispatchLambda:
		dispatcher, err = dispatch.NewLambda(awsCfg, cfg.Dispatch.Function)
		if err != nil {
			return nil, fmt.Errorf("build dispatcher: %w", err)
		}
	default:
		// The closure lets the inline dispatcher reference the service that
		// is constructed after it.
		dispatcher = dispatch.NewInline(func(ctx context.Context, jobID string) error {
			return svc.Process(ctx, jobID)
		}, cfg.Dispatch.ProcessTimeout, logger)
	}

	*svc = *jobs.New(store, invoker, dispatcher, logger)

	s3Client, err := jobstore.NewClient(ctx, storeCfg)
	if err != nil {
		return nil, fmt.Errorf("build s3 client: %w", err)
	}

	presigner := presign.New(s3Client, cfg.PresignBucket(), cfg.Presign.Expiry)

	// The extractor's quiz fallback goes through the live invoker only;
	// mock echoes would masquerade as generated quizzes.
	var extractInvoker agent.Invoker
	if !mockMode {
		extractInvoker = invoker
	}
	extractor := extract.New(
		s3Client,
		bedrockruntime.NewFromConfig(awsCfg),
		extractInvoker,
		cfg.Extract.ModelID,
		logger,
	)

	return &runtime{
		cfg:       cfg,
		jobs:      svc,
		presigner: presigner,
		extractor: extractor,
		invoker:   invoker,
		mockMode:  mockMode,
	}, nil
}
