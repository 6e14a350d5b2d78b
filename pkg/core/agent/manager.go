package agent

import (
	"context"
	"errors"
	"fmt"
	"os"
	"sort"
	"sync"

	"github.com/rs/zerolog"
	"gopkg.in/yaml.v2"

	"alight_calculator/pkg/core/llm"
	"alight_calculator/pkg/logger"
)

// Agent types that route to a provider.
const (
	AgentNarrative = "narrative" // short streamed verdict
	AgentMemo      = "memo"      // long-form memo analysis
)

const DefaultProvider = "gemini"

var ErrNoProvider = errors.New("no llm provider configured")

type Config struct {
	ActiveProvider string                    `yaml:"active_provider"`
	Agents         map[string]AgentConfig    `yaml:"agents"`
	Providers      map[string]ProviderConfig `yaml:"providers"`
}

type AgentConfig struct {
	Provider    string `yaml:"provider"` // Optional override
	Model       string `yaml:"model"`    // Optional override
	Description string `yaml:"description"`
}

// ProviderConfig tunes a built-in provider.
type ProviderConfig struct {
	Model string `yaml:"model"`
	URL   string `yaml:"url"`
}

// LoadConfig reads the YAML model config. A missing file yields the default config.
func LoadConfig(path string) (Config, error) {
	cfg := Config{ActiveProvider: DefaultProvider}
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return cfg, fmt.Errorf("read model config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse model config %s: %w", path, err)
	}
	if cfg.ActiveProvider == "" {
		cfg.ActiveProvider = DefaultProvider
	}
	return cfg, nil
}

// DefaultProviders builds the built-in providers, applying per-provider overrides from cfg.
func DefaultProviders(cfg Config) map[string]llm.Provider {
	pc := func(name string) ProviderConfig { return cfg.Providers[name] }
	return map[string]llm.Provider{
		"gemini":   &llm.GeminiProvider{Model: pc("gemini").Model},
		"openai":   llm.NewOpenAIProvider(pc("openai").Model),
		"deepseek": llm.NewDeepSeekProvider(pc("deepseek").Model),
		"gateway":  llm.NewGatewayProvider(pc("gateway").URL, pc("gateway").Model),
	}
}

type Manager struct {
	mu        sync.RWMutex
	config    Config
	providers map[string]llm.Provider
	log       zerolog.Logger
}

// NewManager uses DefaultProviders(config) when providers is nil.
func NewManager(config Config, providers map[string]llm.Provider, log zerolog.Logger) *Manager {
	if providers == nil {
		providers = DefaultProviders(config)
	}
	if config.ActiveProvider == "" {
		config.ActiveProvider = DefaultProvider
	}
	return &Manager{
		config:    config,
		providers: providers,
		log:       logger.Component(log, "agent"),
	}
}

// GetProvider resolves the provider for an agent type and the model override to use with it.
func (m *Manager) GetProvider(agentType string) (llm.Provider, string) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	// 1. Check for agent-specific override
	agentConfig := m.config.Agents[agentType]
	if agentConfig.Provider != "" {
		if p, ok := m.providers[agentConfig.Provider]; ok {
			return p, agentConfig.Model
		}
	}

	// 2. Use global active provider
	if p, ok := m.providers[m.config.ActiveProvider]; ok {
		return p, agentConfig.Model
	}

	// 3. Fallback
	if p, ok := m.providers[DefaultProvider]; ok {
		return p, agentConfig.Model
	}
	return nil, ""
}

func (m *Manager) resolve(agentType, systemPrompt string, options map[string]interface{}) (llm.Provider, string, map[string]interface{}, error) {
	provider, model := m.GetProvider(agentType)
	if provider == nil {
		return nil, "", nil, ErrNoProvider
	}

	opts := make(map[string]interface{}, len(options)+1)
	for k, v := range options {
		opts[k] = v
	}
	if _, ok := opts[llm.OptModel]; !ok && model != "" {
		opts[llm.OptModel] = model
	}

	m.log.Debug().
		Str("agent", agentType).
		Str("active_provider", m.GetActiveProvider()).
		Str("provider_type", fmt.Sprintf("%T", provider)).
		Msg("dispatching prompt")

	// Adapt instructions based on the model's specialized "teaching" style
	return provider, provider.AdaptInstructions(systemPrompt), opts, nil
}

// ExecutePrompt handles instruction adaptation before sending to the model
func (m *Manager) ExecutePrompt(ctx context.Context, agentType string, rawPrompt string, rawSystemPrompt string, options map[string]interface{}) (string, error) {
	provider, system, opts, err := m.resolve(agentType, rawSystemPrompt, options)
	if err != nil {
		return "", err
	}
	return provider.GenerateResponse(ctx, rawPrompt, system, opts)
}

// StreamPrompt is ExecutePrompt with a streamed response.
func (m *Manager) StreamPrompt(ctx context.Context, agentType string, rawPrompt string, rawSystemPrompt string, options map[string]interface{}) (<-chan llm.Chunk, error) {
	provider, system, opts, err := m.resolve(agentType, rawSystemPrompt, options)
	if err != nil {
		return nil, err
	}
	return provider.StreamResponse(ctx, rawPrompt, system, opts)
}

func (m *Manager) SetGlobalProvider(newProvider string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.providers[newProvider]; !ok {
		return fmt.Errorf("provider %s not found", newProvider)
	}
	m.config.ActiveProvider = newProvider
	m.log.Info().Str("provider", newProvider).Msg("global provider switched")
	return nil
}

func (m *Manager) GetActiveProvider() string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.config.ActiveProvider
}

// Available lists registered provider names, sorted.
func (m *Manager) Available() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()

	names := make([]string, 0, len(m.providers))
	for name := range m.providers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
