package networkdefinition

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingLogger struct {
	warnings []string
}

func (l *recordingLogger) Info(string, ...any)  {}
func (l *recordingLogger) Debug(string, ...any) {}
func (l *recordingLogger) Warn(msg string, args ...any) {
	l.warnings = append(l.warnings, fmt.Sprint(msg))
}
func (l *recordingLogger) Error(string, ...any) {}

func TestDefaultChainIdentifiers(t *testing.T) {
	p := NewNetworkDefinitionProvider(&recordingLogger{}, DefaultChainIdentifiers)
	defs := p.GetAllNetworkDefinitions()

	require.Len(t, defs, 3)
	assert.Equal(t, "sepolia", defs[0].Identifier)
	assert.Equal(t, uint64(11155111), defs[0].ChainID)
	assert.Equal(t, "bsc_testnet", defs[1].Identifier)
	assert.Equal(t, uint64(97), defs[1].ChainID)
	assert.Equal(t, "polygon_mumbai", defs[2].Identifier)
	assert.Equal(t, uint64(80001), defs[2].ChainID)
	for _, def := range defs {
		assert.True(t, def.IsTestnet(), def.Identifier)
		assert.NotEmpty(t, def.RPCURLs(), def.Identifier)
	}
}

func TestProviderSkipsUnknownAndDuplicates(t *testing.T) {
	log := &recordingLogger{}
	p := NewNetworkDefinitionProvider(log, []string{"polygon_mumbai", "atlantis", " Sepolia ", "polygon_mumbai"})

	defs := p.GetAllNetworkDefinitions()
	require.Len(t, defs, 2)
	assert.Equal(t, "polygon_mumbai", defs[0].Identifier)
	assert.Equal(t, "sepolia", defs[1].Identifier)
	assert.Len(t, log.warnings, 2)
}

func TestProviderNoNetworks(t *testing.T) {
	log := &recordingLogger{}
	p := NewNetworkDefinitionProvider(log, nil)
	assert.Empty(t, p.GetAllNetworkDefinitions())
	assert.Len(t, log.warnings, 1)

	var nilProvider *NetworkDefinitionProvider
	assert.Empty(t, nilProvider.GetAllNetworkDefinitions())
	_, ok := nilProvider.GetNetworkDefinitionByName("sepolia")
	assert.False(t, ok)
}

func TestProviderLookups(t *testing.T) {
	log := &recordingLogger{}
	p := NewNetworkDefinitionProvider(log, DefaultChainIdentifiers)

	def, ok := p.GetNetworkDefinitionByName("BSC_TESTNET")
	require.True(t, ok)
	assert.Equal(t, BSCTestnet.ChainID, def.ChainID)

	_, ok = p.GetNetworkDefinitionByName("ethereum")
	assert.False(t, ok, "inactive networks are not returned by name")

	_, ok = p.GetNetworkDefinitionByName("polygon_amoy")
	assert.False(t, ok)

	_, ok = p.GetNetworkDefinitionByName("unknown")
	assert.False(t, ok)
	assert.Empty(t, log.warnings)
}

func TestProviderReturnsCopies(t *testing.T) {
	p := NewNetworkDefinitionProvider(&recordingLogger{}, DefaultChainIdentifiers)
	defs := p.GetAllNetworkDefinitions()
	defs[0].FallbackRPCURLs[0] = "https://evil.example"
	defs[1].Name = "changed"

	fresh := p.GetAllNetworkDefinitions()
	assert.Equal(t, Sepolia.FallbackRPCURLs[0], fresh[0].FallbackRPCURLs[0])
	assert.Equal(t, BSCTestnet.Name, fresh[1].Name)
}
