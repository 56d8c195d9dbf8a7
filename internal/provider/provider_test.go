package provider_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/petasbytes/go-chat-agent/internal/provider"
	"github.com/petasbytes/go-chat-agent/memory"
)

type stubProvider struct {
	calls int
}

func (s *stubProvider) Name() string { return "stub" }

func (s *stubProvider) Complete(ctx context.Context, req provider.Request) (memory.Message, error) {
	s.calls++
	return memory.AssistantMessage("ok"), nil
}

func TestNew_KnownAndUnknown(t *testing.T) {
	p, err := provider.New(provider.NameOpenRouter, "k", "")
	require.NoError(t, err)
	assert.Equal(t, provider.NameOpenRouter, p.Name())

	p, err = provider.New(provider.NameAnthropic, "k", "")
	require.NoError(t, err)
	assert.Equal(t, provider.NameAnthropic, p.Name())

	_, err = provider.New("gemini", "k", "")
	require.Error(t, err)
}

func TestDefaults(t *testing.T) {
	assert.Equal(t, "OPENROUTER_API_KEY", provider.CredentialEnv(provider.NameOpenRouter))
	assert.Equal(t, "ANTHROPIC_API_KEY", provider.CredentialEnv(provider.NameAnthropic))
	assert.Equal(t, "https://openrouter.ai/api/v1", provider.DefaultBaseURL(provider.NameOpenRouter))
	assert.Equal(t, "google/gemini-2.0-flash-exp:free", provider.DefaultModel(provider.NameOpenRouter))
	assert.NotEmpty(t, provider.DefaultModel(provider.NameAnthropic))
	assert.True(t, provider.Supported("anthropic"))
	assert.False(t, provider.Supported("ollama"))
}

func TestNewRateLimited_DisabledReturnsInner(t *testing.T) {
	inner := &stubProvider{}
	assert.Same(t, inner, provider.NewRateLimited(inner, 0))
}

func TestRateLimited_WaitsAndDelegates(t *testing.T) {
	inner := &stubProvider{}
	p := provider.NewRateLimited(inner, 6000) // one token every 10ms
	assert.Equal(t, "stub", p.Name())

	for i := 0; i < 2; i++ {
		msg, err := p.Complete(context.Background(), provider.Request{})
		require.NoError(t, err)
		assert.Equal(t, "ok", msg.Content)
	}
	assert.Equal(t, 2, inner.calls)
}

func TestRateLimited_ContextCancelled(t *testing.T) {
	inner := &stubProvider{}
	p := provider.NewRateLimited(inner, 1) // one request per minute

	_, err := p.Complete(context.Background(), provider.Request{})
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	_, err = p.Complete(ctx, provider.Request{})
	require.Error(t, err)
	assert.Equal(t, 1, inner.calls)
}
