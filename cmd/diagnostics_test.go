// file: cmd/diagnostics_test.go
// version: 2.0.0
// guid: 3d1b7e4a-5c8f-4a2d-9e6b-0f7c2a4d8b15

package cmd

import (
	"bytes"
	"testing"

	"github.com/jdfalk/user-service/internal/auth"
	"github.com/jdfalk/user-service/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestMaskSecret(t *testing.T) {
	assert.Equal(t, "", maskSecret(""))
	assert.Equal(t, "***", maskSecret("abc"))
	assert.Equal(t, "yo******", maskSecret("your_key"))
}

func TestWriteConfig_MasksSecret(t *testing.T) {
	cfg := config.Default()
	buf := &bytes.Buffer{}

	require.NoError(t, writeConfig(buf, cfg, false))
	assert.NotContains(t, buf.String(), cfg.Auth.Secret)

	var decoded map[string]map[string]any
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &decoded))
	assert.Equal(t, "5m0s", decoded["cache"]["ttl"])
	assert.Equal(t, "8080", decoded["server"]["port"])
	assert.Equal(t, false, decoded["auth"]["enforce"])

	buf.Reset()
	require.NoError(t, writeConfig(buf, cfg, true))
	assert.Contains(t, buf.String(), cfg.Auth.Secret)
}

func TestRunVerifyToken(t *testing.T) {
	cfg := config.Default()
	issuer, err := auth.NewIssuer(cfg.Auth.Secret, cfg.Auth.Issuer, cfg.Auth.Audience, cfg.Auth.TokenTTL)
	require.NoError(t, err)
	token, err := issuer.Issue("bob")
	require.NoError(t, err)

	buf := &bytes.Buffer{}
	require.NoError(t, runVerifyToken(buf, cfg, token))
	assert.Contains(t, buf.String(), "subject:  bob")

	err = runVerifyToken(&bytes.Buffer{}, cfg, token+"x")
	assert.ErrorIs(t, err, auth.ErrInvalidToken)
}
