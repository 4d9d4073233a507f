package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/h0rv/sdq/internal/config"
	"github.com/h0rv/sdq/internal/domain"
	"github.com/h0rv/sdq/internal/jira"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const testQueueURL = "https://x.atlassian.net/jira/servicedesk/projects/SD/queues/custom/42"

func TestReadPayload_Stdin(t *testing.T) {
	req, err := readPayload("-", strings.NewReader(`{"queueUrl": " `+testQueueURL+` "}`))
	require.NoError(t, err)
	assert.Equal(t, testQueueURL, req.QueueURL)
}

func TestReadPayload_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "payload.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"queueUrl":"`+testQueueURL+`"}`), 0o600))

	req, err := readPayload(path, nil)
	require.NoError(t, err)
	assert.Equal(t, testQueueURL, req.QueueURL)
}

func TestReadPayload_Invalid(t *testing.T) {
	_, err := readPayload("-", strings.NewReader(`not json`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse payload")

	_, err = readPayload(filepath.Join(t.TempDir(), "missing.json"), nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to open payload")
}

func TestWriteResult_JSON(t *testing.T) {
	var buf bytes.Buffer
	err := writeResult(&buf, domain.Failed(domain.ErrorKindInputMissing, "Queue URL is required", ""), outputJSON)
	require.NoError(t, err)
	assert.JSONEq(t, `{"success":false,"error":"Queue URL is required"}`, buf.String())
}

func TestWriteResult_Text(t *testing.T) {
	var buf bytes.Buffer
	err := writeResult(&buf, domain.Succeeded(domain.Queue{Name: "My Queue", JQL: "project = SD", ServiceDeskID: "SD", QueueID: "42"}), outputText)
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "My Queue")
	assert.Contains(t, buf.String(), "project = SD")
}

func TestNewLogger(t *testing.T) {
	logger, err := newLogger("debug")
	require.NoError(t, err)
	assert.True(t, logger.Core().Enabled(zap.DebugLevel))

	_, err = newLogger("loud")
	require.Error(t, err)
}

func TestNewTransport_RejectedURLNeedsNoCredentials(t *testing.T) {
	t.Setenv(config.EnvAPIToken, "")

	for _, u := range []string{"", "not a url", "https://x.atlassian.net/jira/servicedesk/projects/SD"} {
		tr, err := newTransport(&config.Config{}, u, zap.NewNop())
		require.NoError(t, err)
		assert.Nil(t, tr)
	}
}

func TestNewTransport_DerivesSiteFromQueueURL(t *testing.T) {
	t.Setenv(config.EnvAPIToken, "tok")

	tr, err := newTransport(&config.Config{Timeout: time.Second}, testQueueURL, zap.NewNop())
	require.NoError(t, err)

	client, ok := tr.(*jira.Client)
	require.True(t, ok)
	assert.Equal(t, "https://x.atlassian.net", client.BaseURL())
}

func TestNewTransport_ConfiguredSiteWins(t *testing.T) {
	t.Setenv(config.EnvAPIToken, "tok")

	tr, err := newTransport(&config.Config{Site: "https://proxy.example.com"}, testQueueURL, zap.NewNop())
	require.NoError(t, err)

	client, ok := tr.(*jira.Client)
	require.True(t, ok)
	assert.Equal(t, "https://proxy.example.com", client.BaseURL())
}

func TestNewTransport_MissingCredentials(t *testing.T) {
	t.Setenv(config.EnvAPIToken, "")

	_, err := newTransport(&config.Config{}, testQueueURL, zap.NewNop())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to obtain Jira credentials")
}

func TestRun_NegativeTimeoutFlagRejected(t *testing.T) {
	for _, k := range []string{config.EnvSite, config.EnvTimeout, config.EnvLogLevel} {
		t.Setenv(k, "")
	}
	oldConfig, oldOutput, oldPayload, oldTimeout := configFlag, outputFlag, payloadFlag, timeoutFlag
	t.Cleanup(func() {
		configFlag, outputFlag, payloadFlag, timeoutFlag = oldConfig, oldOutput, oldPayload, oldTimeout
	})
	configFlag = filepath.Join(t.TempDir(), "missing.yaml")
	outputFlag = outputText
	payloadFlag = ""

	cmd := &cobra.Command{RunE: run, SilenceUsage: true, SilenceErrors: true}
	cmd.Flags().DurationVar(&timeoutFlag, "timeout", 0, "")
	cmd.SetArgs([]string{"--timeout=-5s", testQueueURL})
	var out bytes.Buffer
	cmd.SetOut(&out)

	err := cmd.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "must not be negative")
	assert.Empty(t, out.String())
}
