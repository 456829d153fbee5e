package getpost

import (
	"context"
	"fmt"

	"wordpress-posts/internal/common/cache"
	"wordpress-posts/internal/common/config"
	"wordpress-posts/internal/common/errors"
	"wordpress-posts/internal/common/logger"
	"wordpress-posts/internal/mcp"
	"wordpress-posts/internal/workers/posts/tooling"
	"wordpress-posts/pkg/registry"
)

const (
	ToolName = "get-post"
	TaskType = "wordpress.posts.get"

	verb = "retrieving post"
)

type Handler struct {
	config    *Config
	logger    logger.Logger
	wordpress config.WordPressConfig
	service   *Service
}

type HandlerOptions struct {
	AppConfig    *config.Config
	CustomConfig *Config
	Logger       logger.Logger
	Clients      tooling.ClientFactory
	Cache        *cache.PostCache
}

func NewHandler(opts HandlerOptions) (*Handler, error) {
	workerConfig := createConfigFromAppConfig(opts.AppConfig, opts.CustomConfig)
	if err := workerConfig.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration for %s: %w", ToolName, err)
	}

	loggerInstance := opts.Logger
	if loggerInstance == nil {
		loggerInstance = logger.NewStructured("info", "json", "stderr")
	}
	loggerInstance = loggerInstance.WithFields(map[string]interface{}{"worker": ToolName})

	h := &Handler{
		config: workerConfig,
		logger: loggerInstance,
	}
	if opts.AppConfig != nil {
		h.wordpress = opts.AppConfig.WordPress
	}
	h.service = NewService(ServiceDependencies{
		Logger:  loggerInstance,
		Clients: opts.Clients,
		Cache:   opts.Cache,
	}, workerConfig)

	return h, nil
}

func (h *Handler) Descriptor() registry.ToolDescriptor {
	return tooling.Descriptor(ToolName, "Get Post", "Get a specific WordPress post by ID", TaskType,
		GetInputSchema(),
		[]errors.ErrorCode{errors.ErrCodeValidationFailed, errors.ErrCodeCredentialsMissing, errors.ErrCodeWordPressAPI},
		h.config.Timeout.String(),
	)
}

// Call serves the tool over MCP.
func (h *Handler) Call(ctx context.Context, args map[string]interface{}) *mcp.ToolCallResult {
	out, err := h.run(ctx, args)
	if err != nil {
		return mcp.ErrorResult(tooling.ErrorText(verb, err))
	}
	return mcp.TextResult(FormatOutput(out), tooling.ToMap(out))
}

// Execute serves the tool as a job; variables are the tool arguments.
func (h *Handler) Execute(ctx context.Context, variables map[string]interface{}) (map[string]interface{}, error) {
	out, err := h.run(ctx, variables)
	if err != nil {
		return nil, err
	}
	return tooling.ToMap(out), nil
}

func (h *Handler) run(ctx context.Context, args map[string]interface{}) (*Output, error) {
	var input Input
	if err := tooling.ParseArgs(args, GetInputSchema(), &input); err != nil {
		return nil, err
	}

	creds, err := input.Resolve(h.wordpress)
	if err != nil {
		return nil, err
	}

	return h.service.Execute(ctx, creds, &input)
}

func (h *Handler) GetTaskType() string {
	return TaskType
}

func (h *Handler) IsEnabled() bool {
	return h.config.Enabled
}

func (h *Handler) GetConfig() *Config {
	return h.config
}
